package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/rbac"
	"github.com/dmitrymomot/authkit/pkg/redis"
)

// envPrefix is prepended to every variable read into Settings.
const envPrefix = "AUTHKIT_"

// Settings are read from AUTHKIT_* variables and optional dotenv files.
// Command-line flags override them.
type Settings struct {
	TablesPath        string `env:"TABLES"` // empty selects the built-in tables
	DirectPermissions bool   `env:"DIRECT_PERMISSIONS"`

	Env       string `env:"ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	BlockedIDs      []string `env:"BLOCKED_IDS" envSeparator:","`
	BlockedEmails   []string `env:"BLOCKED_EMAILS" envSeparator:","`
	TrialUsedIDs    []string `env:"TRIAL_USED_IDS" envSeparator:","`
	TrialUsedEmails []string `env:"TRIAL_USED_EMAILS" envSeparator:","`

	Redis redis.Config
}

func loadSettings(envFiles []string, overrides map[string]string) (Settings, error) {
	opts := []config.Option{config.WithPrefix(envPrefix), config.WithValues(overrides)}
	if len(envFiles) > 0 {
		opts = append(opts, config.WithEnvFiles(envFiles...))
	}
	return config.Parse[Settings](opts...)
}

func (s Settings) logger(app *app) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(s.Env, "rbacctl"),
		logger.WithOutput(app.stderr),
		logger.WithContextExtractors(logger.UserIDExtractor()),
	}
	if s.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(s.LogLevel))
	} else {
		opts = append(opts, logger.WithLevel(slog.LevelWarn))
	}
	if s.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(s.LogFormat)))
	}
	return logger.New(opts...)
}

func (s Settings) validateFormat() error {
	switch logger.Format(s.LogFormat) {
	case "", logger.FormatJSON, logger.FormatText:
		return nil
	default:
		return fmt.Errorf("invalid log format %q", s.LogFormat)
	}
}

func (s Settings) roleSource() rbac.RoleSource {
	if s.TablesPath == "" {
		return rbac.NewInMemRoleSource(rbac.DefaultTables())
	}
	return rbac.NewFileSource(s.TablesPath)
}

func (s Settings) authorizer(ctx context.Context, log *slog.Logger) (*rbac.Authorizer, error) {
	opts := []rbac.Option{rbac.WithLogger(log)}
	if s.DirectPermissions {
		opts = append(opts, rbac.WithDirectPermissions())
	}
	return rbac.NewAuthorizer(ctx, s.roleSource(), opts...)
}
