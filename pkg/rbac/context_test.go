package rbac_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authkit/pkg/rbac"
)

func TestManagerContext(t *testing.T) {
	auth := rbac.NewAuthorizerFromTables(getTestTables())

	t.Run("set and get manager", func(t *testing.T) {
		m := auth.Manager(rbac.Claims{Roles: []rbac.Role{"user"}})
		ctx := rbac.WithManager(context.Background(), m)

		got, ok := rbac.ManagerFromContext(ctx)
		assert.True(t, ok)
		assert.Same(t, m, got)
	})

	t.Run("get manager from empty context", func(t *testing.T) {
		got, ok := rbac.ManagerFromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("nil manager is not found", func(t *testing.T) {
		ctx := rbac.WithManager(context.Background(), nil)
		_, ok := rbac.ManagerFromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("override manager in context", func(t *testing.T) {
		first := auth.Manager(rbac.Claims{Roles: []rbac.Role{"user"}})
		second := auth.Manager(rbac.Claims{Roles: []rbac.Role{"admin"}})

		ctx := rbac.WithManager(context.Background(), first)
		ctx = rbac.WithManager(ctx, second)

		got, ok := rbac.ManagerFromContext(ctx)
		assert.True(t, ok)
		assert.True(t, got.HasRole("admin"))
	})
}
