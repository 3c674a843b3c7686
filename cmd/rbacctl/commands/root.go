package commands

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
)

// app carries state shared by subcommands of one invocation.
type app struct {
	settings Settings
	log      *slog.Logger
	stdout   io.Writer
	stderr   io.Writer
}

// NewRootCommand builds the rbacctl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	var (
		envFiles   []string
		tablesPath string
		direct     bool
		logLevel   string
		logFormat  string
	)

	root := &cobra.Command{
		Use:   "rbacctl",
		Short: "Inspect role hierarchies and evaluate authorization rules",
		Long: `rbacctl loads a role hierarchy and permission table and answers authorization
questions against it: effective permissions, role closures and policy chains.

Settings come from AUTHKIT_* environment variables and optional dotenv files;
flags take precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			overrides := map[string]string{}
			if cmd.Flags().Changed("tables") {
				overrides[envPrefix+"TABLES"] = tablesPath
			}
			if cmd.Flags().Changed("direct") {
				overrides[envPrefix+"DIRECT_PERMISSIONS"] = strconv.FormatBool(direct)
			}
			if cmd.Flags().Changed("log-level") {
				overrides[envPrefix+"LOG_LEVEL"] = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				overrides[envPrefix+"LOG_FORMAT"] = logFormat
			}

			s, err := loadSettings(envFiles, overrides)
			if err != nil {
				return err
			}
			if err := s.validateFormat(); err != nil {
				return err
			}

			a.settings = s
			a.stdout = cmd.OutOrStdout()
			a.stderr = cmd.ErrOrStderr()
			a.log = s.logger(a)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&envFiles, "env-file", nil, "dotenv file to read settings from (repeatable)")
	flags.StringVar(&tablesPath, "tables", "", "YAML file with hierarchy and permissions (default: built-in tables)")
	flags.BoolVar(&direct, "direct", false, "count directly claimed permissions in checks")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		newCheckCommand(a),
		newClosureCommand(a),
		newRolesCommand(a),
		newValidateCommand(a),
		newTrialCommand(a),
	)

	return root
}
