package configs

import (
	"log"
	"os"
	"os/user"
	"path/filepath"
)

type UserSettings struct {
	// UserConfigPath holds config.toml and the secret store.
	UserConfigPath string

	// UserDataPath holds the fallback key file and the audit log.
	UserDataPath string

	Username string
}

var UserLockboxSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := currentUsername()
	if err != nil {
		log.Fatalf("error getting username: %s", err)
	}

	// Everything here is per-user and independent of the working
	// directory, so it is ok to resolve once at startup. Tests override
	// the fields directly.
	UserLockboxSettings = &UserSettings{
		UserConfigPath: filepath.Join(configDir, "lockbox"),
		UserDataPath:   filepath.Join(dataDir, "lockbox"),
		Username:       username,
	}
}

func currentUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// SecretStorePath returns the path of the TOML secret store.
func SecretStorePath() string {
	return filepath.Join(UserLockboxSettings.UserConfigPath, "secrets.toml")
}

// KeyFilePath returns the path of the fallback master key file.
func KeyFilePath() string {
	return filepath.Join(UserLockboxSettings.UserDataPath, "master.key")
}

// AuditLogPath returns the path of the audit log.
func AuditLogPath() string {
	return filepath.Join(UserLockboxSettings.UserDataPath, "audit.jsonl")
}
