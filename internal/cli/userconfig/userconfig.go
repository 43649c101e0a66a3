package userconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName  = "schedulr"
	configFileName = "config.json"
)

// UserConfig represents the user's local preferences stored in
// ~/.config/schedulr/config.json: the active environment and the email last
// used to sign in, offered as the default on the next login.
type UserConfig struct {
	SelectedEnvironment string `json:"selected_environment,omitempty"`
	DefaultEmail        string `json:"default_email,omitempty"`
}

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", configDirName)
	return filepath.Join(configDir, configFileName), nil
}

// Load reads the user configuration file
func Load() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// If config doesn't exist, return empty config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the user configuration to a file
func Save(cfg *UserConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}

	return nil
}

// SetSelectedEnvironment updates the selected environment alias and saves the config
func SetSelectedEnvironment(alias string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	cfg.SelectedEnvironment = alias
	return Save(cfg)
}

// GetSelectedEnvironment returns the selected environment alias, or empty string if not set
func GetSelectedEnvironment() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}

	return cfg.SelectedEnvironment, nil
}

// SetDefaultEmail remembers the email last used to sign in
func SetDefaultEmail(email string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	cfg.DefaultEmail = email
	return Save(cfg)
}

// GetDefaultEmail returns the remembered sign-in email, or empty string if not set
func GetDefaultEmail() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}

	return cfg.DefaultEmail, nil
}
