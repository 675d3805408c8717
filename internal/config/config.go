package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides. A double underscore selects a
// nested key: CASEGALLERY_SERVER__PORT -> server.port.
const EnvPrefix = "CASEGALLERY_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CASEGALLERY_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: CASEGALLERY_OUTPUT_DIR -> output_dir, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// A configured video list replaces the demo list rather than merging into it.
	if k.Exists("videos") {
		cfg.Videos = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validHighlightModes is the set of recognized code_highlight values.
var validHighlightModes = map[HighlightMode]bool{
	HighlightClient: true,
	HighlightServer: true,
}

// validLogLevels is the set of recognized log.level values.
var validLogLevels = map[LogLevel]bool{
	LogNone:   true,
	LogNormal: true,
	LogDebug:  true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data) == "" {
		return fmt.Errorf("data is required")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.CodeHighlight != "" && !validHighlightModes[c.CodeHighlight] {
		return fmt.Errorf("invalid code_highlight %q: must be one of client, server", c.CodeHighlight)
	}

	if c.Log.Level != "" && !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log.level %q: must be one of none, normal, debug", c.Log.Level)
	}

	if c.Thumbnails.Enabled && c.Thumbnails.MaxWidth <= 0 {
		return fmt.Errorf("thumbnails.max_width must be positive when thumbnails are enabled")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	for i, v := range c.Videos {
		if v.Src == "" {
			return fmt.Errorf("videos[%d]: src is required", i)
		}
	}

	return nil
}
