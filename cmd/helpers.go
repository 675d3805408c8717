package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ziadkadry99/casegallery/internal/config"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `casegallery init` to create a config file", err)
	}
	if verbose {
		cfg.Log.Level = config.LogDebug
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the configured logger. The returned func flushes it and
// closes the log destination.
func newLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, closeLog, err := cfg.Log.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("building logger: %w", err)
	}
	return log, func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "closing log destination: %v\n", err)
		}
	}, nil
}
