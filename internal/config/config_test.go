package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/waabox/snatch/internal/config"
	"github.com/waabox/snatch/internal/output"
	"github.com/waabox/snatch/internal/tui"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func TestLoad_FromFile(t *testing.T) {
	configPath := writeConfig(t, `
http_timeout = "30s"
log_level = "debug"

[azure]
authority = "https://login.example.com"

[output]
format = "json"
color = "never"
`)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Azure.Authority != "https://login.example.com" {
		t.Errorf("expected authority 'https://login.example.com', got '%s'", cfg.Azure.Authority)
	}
	if cfg.Azure.ClientID != "1950a258-227b-4e31-a9cf-717495945fc2" {
		t.Errorf("expected default client id, got '%s'", cfg.Azure.ClientID)
	}
	if output.Format(cfg.Output.Format) != output.FormatJSON {
		t.Errorf("expected format 'json', got '%s'", cfg.Output.Format)
	}
	if cfg.Output.Color != tui.ColorNever {
		t.Errorf("expected color 'never', got '%s'", cfg.Output.Color)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %s", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.LogLevel)
	}
}

func TestLoad_MissingFileIsNotError(t *testing.T) {
	cfg, err := config.LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("missing file should not be an error, got: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_EmptyValuesFallBackToDefaults(t *testing.T) {
	configPath := writeConfig(t, `
[azure]
client_id = ""
resource = ""
`)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Azure.ClientID != config.Default().Azure.ClientID {
		t.Errorf("expected default client id, got '%s'", cfg.Azure.ClientID)
	}
	if cfg.Azure.Resource != "https://graph.microsoft.com" {
		t.Errorf("expected default resource, got '%s'", cfg.Azure.Resource)
	}
}

func TestLoad_RejectsUnknownFormat(t *testing.T) {
	configPath := writeConfig(t, `
[output]
format = "xml"
`)

	_, err := config.LoadFrom(configPath)
	if err == nil {
		t.Fatal("expected error for unknown format, got nil")
	}
	if !strings.Contains(err.Error(), "output.format") {
		t.Errorf("expected error to name the key, got: %v", err)
	}
}

func TestLoad_RejectsMalformedFile(t *testing.T) {
	configPath := writeConfig(t, `[azure`)

	if _, err := config.LoadFrom(configPath); err == nil {
		t.Fatal("expected error for malformed TOML, got nil")
	}
}

func TestValidate_RejectsNegativeTimeout(t *testing.T) {
	cfg := config.Default()
	cfg.HTTPTimeout = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative timeout, got nil")
	}
}

func TestDefaultConfigPath_EndsWithSnatchConfig(t *testing.T) {
	path := config.DefaultConfigPath()
	if !strings.HasSuffix(path, filepath.Join(".config", "snatch", "config.toml")) {
		t.Errorf("unexpected default path: %s", path)
	}
}

func TestValidate_AcceptsEveryOutputFormatAndColorMode(t *testing.T) {
	for _, format := range []output.Format{output.FormatText, output.FormatJSON, output.FormatYAML} {
		for _, color := range []string{tui.ColorAuto, tui.ColorAlways, tui.ColorNever} {
			cfg := config.Default()
			cfg.Output.Format = string(format)
			cfg.Output.Color = color
			if err := cfg.Validate(); err != nil {
				t.Errorf("format %s color %s: unexpected error: %v", format, color, err)
			}
		}
	}
}
