// Package bootstrap loads configuration and initializes the process-wide
// logger, business clock and database for CLI commands.
package bootstrap

import (
	"fmt"

	"cardly/internal/infrastructure/config"
	"cardly/internal/infrastructure/database"
	"cardly/internal/shared/biztime"
	"cardly/internal/shared/logger"
)

// Options selects what a command needs.
type Options struct {
	// Env is a deployment environment name; it selects the gin mode.
	Env        string
	ConfigPath string
	// WithDatabase opens the configured database.
	WithDatabase bool
}

// Init loads the config and sets up shared infrastructure. Callers that asked for
// the database must call database.Close.
func Init(opts Options) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(MapEnvToGinMode(opts.Env), opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	debug := cfg.Server.Mode == "debug"
	if err := logger.Init(&cfg.Logger, debug); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// analytics buckets and export timestamps use the business timezone
	if err := biztime.Init(cfg.Analytics.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if opts.WithDatabase {
		if err := database.Init(&cfg.Database, debug); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return cfg, logger.NewLogger(), nil
}

// MapEnvToGinMode translates deployment environment names to gin modes.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
