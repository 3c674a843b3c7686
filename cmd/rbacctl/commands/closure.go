package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authkit/pkg/rbac"
)

func newClosureCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "closure <role>",
		Short: "Print the roles a role inherits and the permissions it resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := a.settings.authorizer(cmd.Context(), a.log)
			if err != nil {
				return err
			}

			role := rbac.Role(args[0])
			fmt.Fprintf(a.stdout, "roles: %s\n", joinRoles(auth.Closure(role).Sorted()))
			fmt.Fprintf(a.stdout, "permissions: %s\n", joinPermissions(auth.PermissionsFor(role).Sorted()))
			return nil
		},
	}
}

func newRolesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List every known role with its resolved permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth, err := a.settings.authorizer(cmd.Context(), a.log)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tPERMISSIONS")
			for _, role := range auth.Roles() {
				fmt.Fprintf(w, "%s\t%s\n", role, joinPermissions(auth.PermissionsFor(role).Sorted()))
			}
			return w.Flush()
		},
	}
}
