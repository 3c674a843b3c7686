package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/cmd/rbacctl/commands"
	"github.com/dmitrymomot/authkit/pkg/rbac"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCheck(t *testing.T) {
	t.Run("built-in tables", func(t *testing.T) {
		out, _, err := run(t, "check", "--roles", "editor", "--permissions", "product:create,product:read")
		require.NoError(t, err)
		assert.Contains(t, out, "permission product:create: granted")
		assert.Contains(t, out, "permission product:read: granted")
		assert.Contains(t, out, "max role: editor")
		assert.Contains(t, out, "result: allowed")
	})

	t.Run("denied", func(t *testing.T) {
		out, _, err := run(t, "check", "--roles", "guest", "--permissions", "product:read,product:delete")
		assert.ErrorIs(t, err, commands.ErrAccessDenied)
		assert.Contains(t, out, "permission product:delete: denied")
	})

	t.Run("any of", func(t *testing.T) {
		_, _, err := run(t, "check", "--roles", "guest", "--permissions", "product:read,product:delete", "--any")
		assert.NoError(t, err)
	})

	t.Run("role through inheritance", func(t *testing.T) {
		out, _, err := run(t, "check", "--roles", "admin", "--role", "guest")
		require.NoError(t, err)
		assert.Contains(t, out, "role guest: granted")

		_, _, err = run(t, "check", "--roles", "guest", "--role", "admin")
		assert.ErrorIs(t, err, commands.ErrAccessDenied)
	})

	t.Run("direct permissions need the flag", func(t *testing.T) {
		_, _, err := run(t, "check", "--claimed", "product:delete", "--permissions", "product:delete")
		assert.ErrorIs(t, err, commands.ErrAccessDenied)

		_, _, err = run(t, "--direct", "check", "--claimed", "product:delete", "--permissions", "product:delete")
		assert.NoError(t, err)
	})

	t.Run("tables from file", func(t *testing.T) {
		out, _, err := run(t, "--tables", "../testdata/roles.yaml",
			"check", "--roles", "manager", "--permissions", "article:read,ticket:reply")
		require.NoError(t, err)
		assert.Contains(t, out, "effective: article:read,article:write,ticket:reply,user:invite")
	})

	t.Run("tables from env file", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte("AUTHKIT_TABLES=../testdata/roles.yaml\n"), 0o600))

		out, _, err := run(t, "--env-file", envFile, "check", "--roles", "viewer")
		require.NoError(t, err)
		assert.Contains(t, out, "effective: article:read")
	})

	t.Run("missing tables file", func(t *testing.T) {
		_, _, err := run(t, "--tables", filepath.Join(t.TempDir(), "missing.yaml"), "check", "--roles", "viewer")
		assert.ErrorIs(t, err, rbac.ErrLoadTables)
	})

	t.Run("invalid log format", func(t *testing.T) {
		_, _, err := run(t, "--log-format", "xml", "check")
		assert.Error(t, err)
	})
}

func TestClosure(t *testing.T) {
	out, _, err := run(t, "closure", "manager")
	require.NoError(t, err)
	assert.Contains(t, out, "roles: editor,guest,manager,premium_user,proof_reader,sales_manager,user")
	assert.Contains(t, out, "permissions: product:approve,product:create,product:read,product:review,product:update,user:create,user:edit,user:read,user:update")

	out, _, err = run(t, "closure", "nobody")
	require.NoError(t, err)
	assert.Contains(t, out, "roles: nobody")
	assert.Contains(t, out, "permissions: -")
}

func TestRoles(t *testing.T) {
	out, _, err := run(t, "--tables", "../testdata/roles.yaml", "roles")
	require.NoError(t, err)
	assert.Contains(t, out, "ROLE")
	assert.Regexp(t, `support\s+article:read,ticket:reply`, out)
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, "--tables", "../testdata/roles.yaml", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 5 roles")

	_, _, err = run(t, "--tables", "../testdata/cyclic.yaml", "validate")
	assert.ErrorIs(t, err, rbac.ErrCircularInheritance)
}

func TestTrial(t *testing.T) {
	t.Run("in-memory lists", func(t *testing.T) {
		t.Setenv("AUTHKIT_BLOCKED_EMAILS", "a@x.com")
		t.Setenv("AUTHKIT_TRIAL_USED_IDS", "user3,user4")

		out, _, err := run(t, "trial", "--user-id", "user1", "--email", "A@X.com")
		assert.ErrorIs(t, err, commands.ErrAccessDenied)
		assert.Contains(t, out, "policy: RegistrationPolicy")
		assert.Contains(t, out, "reason: User is blocked")

		out, _, err = run(t, "trial", "--user-id", "user4", "--email", "b@x.com")
		assert.ErrorIs(t, err, commands.ErrAccessDenied)
		assert.Contains(t, out, "reason: User already used the free trial")

		out, _, err = run(t, "trial", "--user-id", "user9", "--email", "b@x.com")
		require.NoError(t, err)
		assert.Contains(t, out, "policy: FreeTrialPolicyGroup")
		assert.Contains(t, out, "allowed: true")
	})

	t.Run("redis lists", func(t *testing.T) {
		mr := miniredis.RunT(t)
		_, err := mr.SAdd("authkit:blocked_ids", "user1")
		require.NoError(t, err)
		t.Setenv("AUTHKIT_REDIS_URL", "redis://"+mr.Addr()+"/0")

		out, _, err := run(t, "trial", "--user-id", "user1", "--email", "b@x.com")
		assert.ErrorIs(t, err, commands.ErrAccessDenied)
		assert.Contains(t, out, "policy: FreeTrialPolicy")

		_, _, err = run(t, "trial", "--user-id", "user2", "--email", "b@x.com")
		assert.NoError(t, err)
	})

	t.Run("debug logging", func(t *testing.T) {
		_, stderr, err := run(t, "--log-level", "debug", "--log-format", "text", "trial", "--user-id", "u", "--email", "e@x.com")
		require.NoError(t, err)
		assert.Contains(t, stderr, "evaluation_id=")
		assert.Contains(t, stderr, "service=rbacctl")
		assert.Contains(t, stderr, "user_id=u")
	})
}
