package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yourorg/calcctl/internal/config"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadAppDefaults(t *testing.T) {
	cfg, err := config.LoadApp(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatalf("explicit missing config file should error")
	}

	// Default path resolution with no file present falls back to defaults.
	dir := t.TempDir()
	t.Chdir(dir)
	cfg, err = config.LoadApp("")
	if err != nil {
		t.Fatalf("LoadApp returned error: %v", err)
	}
	if cfg.HTTPServer.Port != 8080 {
		t.Fatalf("default port = %d, want 8080", cfg.HTTPServer.Port)
	}
	if cfg.HTTPServer.ShutdownTimeout != 10*time.Second {
		t.Fatalf("default shutdown timeout = %v, want 10s", cfg.HTTPServer.ShutdownTimeout)
	}
	if cfg.Log.Format != "json" {
		t.Fatalf("default log format = %q, want json", cfg.Log.Format)
	}
}

func TestLoadAppFromFile(t *testing.T) {
	path := writeConfigFile(t, `
[http_server]
port = 9100
api_key = "sekrit"
shutdown_timeout = "5s"
rate_limit_per_second = 10
rate_limit_burst = 20
max_body_bytes = 1024

[log]
level = "debug"
format = "text"
`)

	cfg, err := config.LoadApp(path)
	if err != nil {
		t.Fatalf("LoadApp returned error: %v", err)
	}
	if cfg.HTTPServer.Port != 9100 {
		t.Fatalf("port = %d, want 9100", cfg.HTTPServer.Port)
	}
	if cfg.HTTPServer.APIKey != "sekrit" {
		t.Fatalf("api key = %q, want sekrit", cfg.HTTPServer.APIKey)
	}
	if cfg.HTTPServer.ShutdownTimeout != 5*time.Second {
		t.Fatalf("shutdown timeout = %v, want 5s", cfg.HTTPServer.ShutdownTimeout)
	}
	if cfg.HTTPServer.RateLimitPerSecond != 10 || cfg.HTTPServer.RateLimitBurst != 20 {
		t.Fatalf("rate limit = %d/%d, want 10/20",
			cfg.HTTPServer.RateLimitPerSecond, cfg.HTTPServer.RateLimitBurst)
	}
	if cfg.HTTPServer.MaxBodyBytes != 1024 {
		t.Fatalf("max body bytes = %d, want 1024", cfg.HTTPServer.MaxBodyBytes)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Fatalf("log config = %+v, want debug/text", cfg.Log)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "[http_server]\nport = 8080\n")

	t.Setenv("APP__HTTP_SERVER__PORT", "9090")

	cfg, err := config.LoadApp(path)
	if err != nil {
		t.Fatalf("LoadApp returned error: %v", err)
	}
	if cfg.HTTPServer.Port != 9090 {
		t.Fatalf("port = %d, want env override 9090", cfg.HTTPServer.Port)
	}
}

func TestInvalidEnvPort(t *testing.T) {
	path := writeConfigFile(t, "[http_server]\nport = 8080\n")

	t.Setenv("APP__HTTP_SERVER__PORT", "invalid")

	if _, err := config.LoadApp(path); err == nil {
		t.Fatalf("expected error for invalid port")
	} else if !strings.Contains(err.Error(), "http_server.port") {
		t.Fatalf("error should name the offending key, got %q", err)
	}
}

func TestPortOutOfRange(t *testing.T) {
	path := writeConfigFile(t, "[http_server]\nport = 70000\n")

	if _, err := config.LoadApp(path); err == nil {
		t.Fatalf("expected error for out-of-range port")
	}
}
