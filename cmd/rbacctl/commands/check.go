package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/rbac"
)

// ErrAccessDenied is returned by check when the principal does not satisfy the request.
var ErrAccessDenied = errors.New("access denied")

func newCheckCommand(a *app) *cobra.Command {
	var (
		roles       string
		permissions string
		claimed     string
		role        string
		anyOf       bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a principal holds permissions or a role",
		Example: `  rbacctl check --roles editor --permissions product:create,product:read
  rbacctl check --roles sales_manager,proof_reader --role manager
  rbacctl check --roles guest --permissions product:delete,product:read --any`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth, err := a.settings.authorizer(cmd.Context(), a.log)
			if err != nil {
				return err
			}

			claims := rbac.Claims{
				Roles:       rbac.ParseRoles(roles),
				Permissions: rbac.ParsePermissions(claimed),
			}
			m := auth.Manager(claims)
			required := rbac.ParsePermissions(permissions)

			out := a.stdout
			for _, p := range required {
				fmt.Fprintf(out, "permission %s: %s\n", p, verdict(m.HasPermission(p)))
			}

			allowed := true
			if len(required) > 0 {
				if anyOf {
					allowed = m.HasAnyPermission(required...)
				} else {
					allowed = m.HasPermissions(required...)
				}
			}
			if role != "" {
				held := m.HasRole(rbac.Role(role))
				fmt.Fprintf(out, "role %s: %s\n", role, verdict(held))
				allowed = allowed && held
			}
			if top, ok := m.MaxRole(); ok {
				fmt.Fprintf(out, "max role: %s\n", top)
			}
			fmt.Fprintf(out, "effective: %s\n", joinPermissions(m.EffectivePermissions().Sorted()))

			a.log.DebugContext(cmd.Context(), "check evaluated",
				logger.Roles(claims.Roles),
				logger.Decision("check", allowed, ""),
			)

			if !allowed {
				return ErrAccessDenied
			}
			fmt.Fprintln(out, "result: allowed")
			return nil
		},
	}

	cmd.Flags().StringVar(&roles, "roles", "", "claimed roles in claim order")
	cmd.Flags().StringVar(&permissions, "permissions", "", "permissions to check")
	cmd.Flags().StringVar(&claimed, "claimed", "", "directly claimed permissions (used with --direct)")
	cmd.Flags().StringVar(&role, "role", "", "role that must be held directly or through inheritance")
	cmd.Flags().BoolVar(&anyOf, "any", false, "require any of the permissions instead of all")

	return cmd
}

func verdict(ok bool) string {
	if ok {
		return "granted"
	}
	return "denied"
}

func joinPermissions(ps []rbac.Permission) string {
	if len(ps) == 0 {
		return "-"
	}
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}

func joinRoles(rs []rbac.Role) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}
