package rbac_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/rbac"
)

func getTestTables() rbac.Tables {
	return rbac.Tables{
		Hierarchy: map[rbac.Role][]rbac.Role{
			"admin":   {"manager"},
			"manager": {"user"},
			"user":    {},
			"auditor": {},
		},
		Permissions: map[rbac.Role][]rbac.Permission{
			"admin":   {},
			"manager": {"update"},
			"user":    {"read"},
			"auditor": {"audit"},
		},
	}
}

func TestHierarchy_Closure(t *testing.T) {
	h := rbac.NewHierarchy(getTestTables())

	tests := []struct {
		name string
		role rbac.Role
		want []rbac.Role
	}{
		{
			name: "role without inheritance resolves to itself",
			role: "user",
			want: []rbac.Role{"user"},
		},
		{
			name: "direct inheritance",
			role: "manager",
			want: []rbac.Role{"manager", "user"},
		},
		{
			name: "transitive inheritance",
			role: "admin",
			want: []rbac.Role{"admin", "manager", "user"},
		},
		{
			name: "unknown role resolves to itself",
			role: "ghost",
			want: []rbac.Role{"ghost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, h.Closure(tt.role).Sorted())
		})
	}
}

func TestHierarchy_ClosureAlwaysContainsRole(t *testing.T) {
	tables := rbac.DefaultTables()
	h := rbac.NewHierarchy(tables)

	for role := range tables.Hierarchy {
		assert.True(t, h.Closure(role).Has(role), "closure of %s must contain itself", role)
	}
}

func TestHierarchy_ReferenceConfiguration(t *testing.T) {
	h := rbac.NewHierarchy(rbac.DefaultTables())

	closure := h.Closure(rbac.RoleSuperAdmin)
	assert.Equal(t, 9, closure.Len())

	editor := h.Closure(rbac.RoleEditor)
	assert.ElementsMatch(t,
		[]rbac.Role{rbac.RoleEditor, rbac.RoleUser, rbac.RolePremiumUser, rbac.RoleGuest},
		editor.Sorted(),
	)
	assert.False(t, editor.Has(rbac.RoleManager))
}

func TestHierarchy_Cycles(t *testing.T) {
	t.Run("self reference", func(t *testing.T) {
		h := rbac.NewHierarchy(rbac.Tables{
			Hierarchy: map[rbac.Role][]rbac.Role{"loop": {"loop"}},
		})
		assert.ElementsMatch(t, []rbac.Role{"loop"}, h.Closure("loop").Sorted())
	})

	t.Run("mutual reference", func(t *testing.T) {
		h := rbac.NewHierarchy(rbac.Tables{
			Hierarchy: map[rbac.Role][]rbac.Role{
				"a": {"b"},
				"b": {"a"},
			},
		})
		assert.ElementsMatch(t, []rbac.Role{"a", "b"}, h.Closure("a").Sorted())
		assert.ElementsMatch(t, []rbac.Role{"a", "b"}, h.Closure("b").Sorted())
	})

	t.Run("longer cycle with tail", func(t *testing.T) {
		h := rbac.NewHierarchy(rbac.Tables{
			Hierarchy: map[rbac.Role][]rbac.Role{
				"a": {"b"},
				"b": {"c"},
				"c": {"a", "d"},
				"d": {},
			},
		})
		assert.ElementsMatch(t, []rbac.Role{"a", "b", "c", "d"}, h.Closure("b").Sorted())
		assert.ElementsMatch(t, []rbac.Role{"d"}, h.Closure("d").Sorted())
	})
}

func TestHierarchy_DeepChain(t *testing.T) {
	// Every closure is materialised, so memory grows with depth squared.
	const depth = 300

	hierarchy := make(map[rbac.Role][]rbac.Role, depth)
	for i := range depth - 1 {
		hierarchy[chainRole(i)] = []rbac.Role{chainRole(i + 1)}
	}
	hierarchy[chainRole(depth-1)] = nil

	h := rbac.NewHierarchy(rbac.Tables{Hierarchy: hierarchy})
	require.Equal(t, depth, h.Closure(chainRole(0)).Len())
	assert.True(t, h.Includes(chainRole(0), chainRole(depth-1)))
	assert.False(t, h.Includes(chainRole(depth-1), chainRole(0)))
}

func chainRole(i int) rbac.Role {
	return rbac.Role("r" + strconv.Itoa(i))
}

func TestHierarchy_Roles(t *testing.T) {
	h := rbac.NewHierarchy(rbac.Tables{
		Hierarchy: map[rbac.Role][]rbac.Role{
			"b": {"c"},
			"a": {},
		},
	})
	assert.Equal(t, []rbac.Role{"a", "b", "c"}, h.Roles())
}

func TestPermissionResolver_PermissionsFor(t *testing.T) {
	tables := getTestTables()
	h := rbac.NewHierarchy(tables)
	r := rbac.NewPermissionResolver(h, tables)

	assert.ElementsMatch(t, []rbac.Permission{"read"}, r.PermissionsFor("user").Sorted())
	assert.ElementsMatch(t, []rbac.Permission{"read", "update"}, r.PermissionsFor("manager").Sorted())
	assert.ElementsMatch(t, []rbac.Permission{"read", "update"}, r.PermissionsFor("admin").Sorted())
	assert.Zero(t, r.PermissionsFor("ghost").Len())
}

func TestPermissionResolver_InheritedIsSuperset(t *testing.T) {
	tables := rbac.DefaultTables()
	h := rbac.NewHierarchy(tables)
	r := rbac.NewPermissionResolver(h, tables)

	for role := range tables.Hierarchy {
		perms := r.PermissionsFor(role)
		for inherited := range h.Closure(role) {
			for _, p := range tables.Permissions[inherited] {
				assert.True(t, perms.Has(p), "%s should inherit %s from %s", role, p, inherited)
			}
		}
	}
}

func TestPermissionResolver_ConfigurationGaps(t *testing.T) {
	tables := rbac.Tables{
		Hierarchy: map[rbac.Role][]rbac.Role{
			"lead":   {"member"},
			"member": {"orphan"},
		},
		Permissions: map[rbac.Role][]rbac.Permission{
			"member":   {"read"},
			"detached": {"write"},
		},
	}
	h := rbac.NewHierarchy(tables)
	r := rbac.NewPermissionResolver(h, tables)

	assert.ElementsMatch(t, []rbac.Permission{"read"}, r.PermissionsFor("lead").Sorted(),
		"role missing from the permission table still inherits")
	assert.Zero(t, r.PermissionsFor("orphan").Len())
	assert.ElementsMatch(t, []rbac.Permission{"write"}, r.PermissionsFor("detached").Sorted(),
		"role missing from the hierarchy keeps its direct grants")
	assert.True(t, r.Grants("lead", "read"))
	assert.False(t, r.Grants("ghost", "read"))
}
