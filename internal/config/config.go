// Package config loads application settings from a TOML file merged with
// environment overrides, and manages keyring-backed profile credentials.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultConfigFile = "config.toml"

	defaultPort            = 8080
	defaultShutdownTimeout = 10 * time.Second
	defaultRatePerSecond   = 100
	defaultRateBurst       = 100
	defaultMaxBodyBytes    = 4 * 1024 * 1024
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"

	maxPort = 65535
)

// envBindings maps config keys to the environment variables that override
// them. The APP__SECTION__KEY naming matches the service's deployment
// convention.
var envBindings = map[string]string{
	"http_server.port":                  "APP__HTTP_SERVER__PORT",
	"http_server.api_key":               "APP__HTTP_SERVER__API_KEY",
	"http_server.shutdown_timeout":      "APP__HTTP_SERVER__SHUTDOWN_TIMEOUT",
	"http_server.rate_limit_per_second": "APP__HTTP_SERVER__RATE_LIMIT_PER_SECOND",
	"http_server.rate_limit_burst":      "APP__HTTP_SERVER__RATE_LIMIT_BURST",
	"http_server.max_body_bytes":        "APP__HTTP_SERVER__MAX_BODY_BYTES",
	"log.level":                         "APP__LOG__LEVEL",
	"log.format":                        "APP__LOG__FORMAT",
}

// HTTPServerConfig holds the listener settings for calcctl serve.
type HTTPServerConfig struct {
	Port               int
	APIKey             string
	ShutdownTimeout    time.Duration
	RateLimitPerSecond int
	RateLimitBurst     int
	MaxBodyBytes       int64
}

// LogConfig selects the slog handler level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the full configuration for the HTTP service.
type AppConfig struct {
	HTTPServer HTTPServerConfig
	Log        LogConfig
}

// LoadApp reads settings from the given TOML file (default config.toml)
// merged with APP__ environment variables; the environment wins. A missing
// file is only an error when the path was set explicitly.
func LoadApp(path string) (AppConfig, error) {
	v := viper.New()

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		if explicit || !isConfigNotFound(err) {
			return AppConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return AppConfig{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	return buildAppConfig(v)
}

func buildAppConfig(v *viper.Viper) (AppConfig, error) {
	var cfg AppConfig
	var err error

	if cfg.HTTPServer.Port, err = intSetting(v, "http_server.port", defaultPort); err != nil {
		return AppConfig{}, err
	}
	if cfg.HTTPServer.Port <= 0 || cfg.HTTPServer.Port > maxPort {
		return AppConfig{}, fmt.Errorf("http_server.port out of range: %d", cfg.HTTPServer.Port)
	}

	cfg.HTTPServer.APIKey = v.GetString("http_server.api_key")

	if cfg.HTTPServer.ShutdownTimeout, err = durationSetting(
		v, "http_server.shutdown_timeout", defaultShutdownTimeout); err != nil {
		return AppConfig{}, err
	}
	if cfg.HTTPServer.RateLimitPerSecond, err = intSetting(
		v, "http_server.rate_limit_per_second", defaultRatePerSecond); err != nil {
		return AppConfig{}, err
	}
	if cfg.HTTPServer.RateLimitBurst, err = intSetting(
		v, "http_server.rate_limit_burst", defaultRateBurst); err != nil {
		return AppConfig{}, err
	}

	maxBody, err := intSetting(v, "http_server.max_body_bytes", defaultMaxBodyBytes)
	if err != nil {
		return AppConfig{}, err
	}
	cfg.HTTPServer.MaxBodyBytes = int64(maxBody)

	cfg.Log.Level = stringSetting(v, "log.level", defaultLogLevel)
	cfg.Log.Format = stringSetting(v, "log.format", defaultLogFormat)

	return cfg, nil
}

// intSetting parses an integer setting strictly: a present but malformed
// value (typically from the environment) is an error, never a silent default.
func intSetting(v *viper.Viper, key string, fallback int) (int, error) {
	if !v.IsSet(key) {
		return fallback, nil
	}
	raw := v.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func durationSetting(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	if !v.IsSet(key) {
		return fallback, nil
	}
	raw := v.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func stringSetting(v *viper.Viper, key, fallback string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}

func isConfigNotFound(err error) bool {
	if err == nil {
		return false
	}
	var nf viper.ConfigFileNotFoundError
	if errors.As(err, &nf) {
		return true
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist) {
		return true
	}
	return errors.Is(err, os.ErrNotExist)
}
