// Package config reads typed configuration from environment variables and
// dotenv files.
//
// It is a thin layer over github.com/caarlos0/env/v11 and github.com/joho/godotenv.
// Annotate a struct with env tags and parse it:
//
//	type Settings struct {
//	    TablesPath string `env:"TABLES" envDefault:"roles.yaml"`
//	    LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	s, err := config.Parse[Settings](
//	    config.WithPrefix("AUTHKIT_"),
//	    config.WithEnvFiles(".env"),
//	)
//
// Parse never caches and never touches the process environment. Load caches one
// value per type for process-wide settings; Reload and ResetCache exist for tests.
//
// Errors wrap ErrParsingConfig or ErrLoadingEnvFile and can be checked with errors.Is.
package config
