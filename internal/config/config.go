package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/waabox/snatch/internal/auth"
	"github.com/waabox/snatch/internal/output"
	"github.com/waabox/snatch/internal/tui"
)

// AzureConfig holds the identity provider settings. Every field has a default,
// so an empty section is valid.
type AzureConfig struct {
	Authority string `toml:"authority"`
	ClientID  string `toml:"client_id"`
	Resource  string `toml:"resource"`
}

// OutputConfig holds presentation settings.
type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// Config holds all snatch configuration.
type Config struct {
	Azure       AzureConfig   `toml:"azure"`
	Output      OutputConfig  `toml:"output"`
	HTTPTimeout time.Duration `toml:"http_timeout"`
	LogLevel    string        `toml:"log_level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Azure: AzureConfig{
			Authority: auth.DefaultAuthority,
			ClientID:  auth.DefaultClientID,
			Resource:  auth.DefaultResource,
		},
		Output: OutputConfig{
			Format: string(output.FormatText),
			Color:  tui.ColorAuto,
		},
		LogLevel: "warn",
	}
}

// LoadFrom reads configuration from the given TOML file path on top of Default.
// If the file does not exist, it returns the defaults without error.
// The result is validated.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	fillDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfigPath returns the default path for the snatch config file.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "snatch", "config.toml")
}

// Validate reports the first setting that has an unsupported value.
func (c Config) Validate() error {
	switch output.Format(c.Output.Format) {
	case output.FormatText, output.FormatJSON, output.FormatYAML:
	default:
		return fmt.Errorf("output.format must be text, json or yaml, got %q", c.Output.Format)
	}
	switch c.Output.Color {
	case tui.ColorAuto, tui.ColorAlways, tui.ColorNever:
	default:
		return fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative, got %s", c.HTTPTimeout)
	}
	return nil
}

// fillDefaults restores defaults for keys explicitly set to empty strings.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Azure.Authority == "" {
		cfg.Azure.Authority = def.Azure.Authority
	}
	if cfg.Azure.ClientID == "" {
		cfg.Azure.ClientID = def.Azure.ClientID
	}
	if cfg.Azure.Resource == "" {
		cfg.Azure.Resource = def.Azure.Resource
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = def.Output.Format
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = def.Output.Color
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
}
