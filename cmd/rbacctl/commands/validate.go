package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/rbac"
)

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report cycles and undefined roles in the configured tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := a.settings.roleSource().Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := rbac.Validate(tables); err != nil {
				a.log.WarnContext(cmd.Context(), "tables are invalid", logger.Error(err))
				return err
			}
			fmt.Fprintf(a.stdout, "ok: %d roles\n", len(rbac.NewHierarchy(tables).Roles()))
			return nil
		},
	}
}
