package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type UserConfig struct {
	User User `toml:"user"`
}

type User struct {
	// InstallID identifies this lockbox installation. It is mixed into
	// the key derivation so blobs are bound to this install in addition
	// to the user and machine identity.
	InstallID string    `toml:"install_id"`
	CreatedAt time.Time `toml:"created_at"`
}

// LoadUserConfig loads the user configuration from the config file.
// A missing file yields an empty config, not an error.
func LoadUserConfig() (*UserConfig, error) {
	configPath := filepath.Join(UserLockboxSettings.UserConfigPath, "config.toml")

	config := &UserConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	configPath := filepath.Join(UserLockboxSettings.UserConfigPath, "config.toml")

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// GenerateInstallID generates a new install identifier.
func GenerateInstallID() string {
	return uuid.New().String()
}

// EnsureUserConfig ensures the user configuration exists and has an install ID.
func EnsureUserConfig() (*UserConfig, error) {
	config, err := LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if config.User.InstallID == "" {
		config.User.InstallID = GenerateInstallID()
		config.User.CreatedAt = time.Now().UTC()
		if err := SaveUserConfig(config); err != nil {
			return nil, fmt.Errorf("failed to save user config: %w", err)
		}
	}

	return config, nil
}
