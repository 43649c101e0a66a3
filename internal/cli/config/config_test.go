package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `environments:
  - alias: production
    url: https://api.schedulr.app
  - alias: staging
    url: https://staging.api.schedulr.app
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Environments) != 2 {
		t.Fatalf("expected 2 environments, got %d", len(cfg.Environments))
	}

	env, err := cfg.GetEnvironmentByAlias("staging")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.URL != "https://staging.api.schedulr.app" {
		t.Errorf("unexpected url: %s", env.URL)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name: "missing alias",
			contents: `environments:
  - url: https://api.schedulr.app
`,
		},
		{
			name: "missing url",
			contents: `environments:
  - alias: production
`,
		},
		{
			name: "duplicate alias",
			contents: `environments:
  - alias: production
    url: https://one.example.com
  - alias: production
    url: https://two.example.com
`,
		},
		{
			name:     "not yaml",
			contents: `{{{`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.contents)
			if _, err := LoadFromFile(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGetEnvironmentByAlias_NotFound(t *testing.T) {
	cfg := &Config{Environments: []Environment{{Alias: "production", URL: "https://api.schedulr.app"}}}
	if _, err := cfg.GetEnvironmentByAlias("missing"); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("SCHEDULR_LOG_LEVEL", "")
	t.Setenv("SCHEDULR_LOG_FORMAT", "")
	t.Setenv("SCHEDULR_TOKEN_BACKEND", "")

	s := LoadSettings()
	if s.LogLevel != "warn" || s.LogFormat != "console" || s.TokenBackend != "keyring" {
		t.Errorf("unexpected defaults: %+v", s)
	}
}
