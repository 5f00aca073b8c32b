package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	serviceName      = "calcctl"
	defaultServerURL = "http://localhost:8080"

	dirPermissions  = 0o700
	filePermissions = 0o600
)

// DefaultServerURL exposes the server address used unless a profile
// overrides it.
func DefaultServerURL() string {
	return defaultServerURL
}

// profileDir returns the directory where we persist profile metadata.
func profileDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "calcctl"), nil
}

// ensureProfileDir ensures the metadata directory exists with restricted
// permissions.
func ensureProfileDir() (string, error) {
	dir, err := profileDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// SaveAPIKey stores the server API key for the provided profile in the OS
// keyring and records the server URL alongside it.
func SaveAPIKey(profile, apiKey, serverURL string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return errors.New("api key cannot be empty")
	}
	if profile == "" {
		return errors.New("profile name cannot be empty")
	}
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	if err := keyring.Set(serviceName, profile, apiKey); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	return SaveServerURL(profile, serverURL)
}

// SaveServerURL persists the target server address for a profile.
func SaveServerURL(profile, serverURL string) error {
	if profile == "" {
		return errors.New("profile name cannot be empty")
	}
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	dir, err := ensureProfileDir()
	if err != nil {
		return err
	}

	cfg := viper.New()
	configPath := filepath.Join(dir, "config.yaml")
	cfg.SetConfigFile(configPath)
	readErr := cfg.ReadInConfig()
	if readErr != nil && !isConfigNotFound(readErr) {
		return fmt.Errorf("read profiles: %w", readErr)
	}

	key := fmt.Sprintf("profiles.%s.server_url", profile)
	cfg.Set(key, serverURL)

	if err := cfg.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("write profiles: %w", err)
	}
	if err := os.Chmod(configPath, filePermissions); err != nil {
		return fmt.Errorf("restrict profile permissions: %w", err)
	}
	return nil
}

// ErrNoCredentials reports that a profile has no stored API key. Callers may
// proceed anonymously against servers that do not enforce auth.
var ErrNoCredentials = errors.New("no stored credentials")

// LoadCredentials returns the stored API key and server URL for a profile.
func LoadCredentials(profile string) (apiKey, serverURL string, err error) {
	if profile == "" {
		return "", "", errors.New("profile name cannot be empty")
	}

	key, err := keyring.Get(serviceName, profile)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", "", fmt.Errorf("profile %q: %w", profile, ErrNoCredentials)
		}
		return "", "", fmt.Errorf("load api key: %w", err)
	}

	url, err := LoadServerURL(profile)
	if err != nil {
		return "", "", err
	}
	return key, url, nil
}

// LoadServerURL fetches the configured server address for a profile, falling
// back to the default.
func LoadServerURL(profile string) (string, error) {
	if profile == "" {
		return "", errors.New("profile name cannot be empty")
	}

	dir, err := ensureProfileDir()
	if err != nil {
		return "", err
	}

	cfg := viper.New()
	configPath := filepath.Join(dir, "config.yaml")
	cfg.SetConfigFile(configPath)
	readErr := cfg.ReadInConfig()
	if readErr != nil {
		if isConfigNotFound(readErr) {
			return defaultServerURL, nil
		}
		return "", fmt.Errorf("read profiles: %w", readErr)
	}

	key := fmt.Sprintf("profiles.%s.server_url", profile)
	url := cfg.GetString(key)
	if url == "" {
		return defaultServerURL, nil
	}
	return url, nil
}
