package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ConfigFileName = "schedulr.yaml"

// Environment is a named Schedulr API endpoint (e.g. production, staging).
type Environment struct {
	Alias string `yaml:"alias"`
	URL   string `yaml:"url"`
}

// Config represents the project configuration stored in schedulr.yaml
type Config struct {
	Environments []Environment `yaml:"environments"`
}

// Settings holds process-level settings read from the environment.
type Settings struct {
	LogLevel     string
	LogFormat    string
	TokenBackend string // "keyring" or "file"
}

// LoadSettings reads process settings from .env files and environment variables.
func LoadSettings() Settings {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	logLevel := os.Getenv("SCHEDULR_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	logFormat := os.Getenv("SCHEDULR_LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	backend := os.Getenv("SCHEDULR_TOKEN_BACKEND")
	if backend == "" {
		backend = "keyring"
	}

	return Settings{
		LogLevel:     logLevel,
		LogFormat:    logFormat,
		TokenBackend: backend,
	}
}

// LoadFromCurrentDir reads schedulr.yaml from the working directory.
func LoadFromCurrentDir() (*Config, error) {
	return LoadFromFile(ConfigFileName)
}

// LoadFromFile reads and parses a project configuration file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every environment has an alias and a URL,
// and that aliases are unique.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, env := range c.Environments {
		if env.Alias == "" {
			return fmt.Errorf("environment %d is missing an alias", i)
		}
		if env.URL == "" {
			return fmt.Errorf("environment %q is missing a url", env.Alias)
		}
		if seen[env.Alias] {
			return fmt.Errorf("duplicate environment alias %q", env.Alias)
		}
		seen[env.Alias] = true
	}
	return nil
}

// GetEnvironmentByAlias returns the environment with the given alias.
func (c *Config) GetEnvironmentByAlias(alias string) (*Environment, error) {
	for i := range c.Environments {
		if c.Environments[i].Alias == alias {
			return &c.Environments[i], nil
		}
	}
	return nil, fmt.Errorf("environment %q not found in %s", alias, ConfigFileName)
}
