package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	for _, key := range []string{
		"BOT_PREFIX", "LOG_LEVEL", "COMMAND_COOLDOWN",
		"WEATHER_API_CACHE_MINUTES", "CONSOLE_TIMEOUT", "WEATHER_API_KEY",
	} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unsetenv %s: %v", key, err)
		}
	}

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if cfg.Prefix != "/" {
		t.Errorf("Prefix = %q, want /", cfg.Prefix)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Cooldown() != 3*time.Second {
		t.Errorf("Cooldown() = %v, want 3s", cfg.Cooldown())
	}
	if cfg.CacheTTL() != 30*time.Minute {
		t.Errorf("CacheTTL() = %v, want 30m", cfg.CacheTTL())
	}
	if cfg.ConsoleTimeout != 10*time.Second {
		t.Errorf("ConsoleTimeout = %v, want 10s", cfg.ConsoleTimeout)
	}
}

func TestOverrides(t *testing.T) {
	t.Setenv("COMMAND_COOLDOWN", "7")
	t.Setenv("WEATHER_API_CACHE_MINUTES", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if cfg.Cooldown() != 7*time.Second {
		t.Errorf("Cooldown() = %v, want 7s", cfg.Cooldown())
	}
	if cfg.CacheTTL() != 5*time.Minute {
		t.Errorf("CacheTTL() = %v, want 5m", cfg.CacheTTL())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestTokenFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token.txt")
	if err := os.WriteFile(path, []byte("  secret-token\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TOKEN_FILE", path)

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	token, err := cfg.Token()
	if err != nil {
		t.Fatalf("Token() error: %v", err)
	}
	if token != "secret-token" {
		t.Errorf("Token() = %q, want trimmed secret-token", token)
	}
}

func TestTokenMissingFile(t *testing.T) {
	t.Setenv("TOKEN_FILE", filepath.Join(t.TempDir(), "does-not-exist.txt"))

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := cfg.Token(); err == nil {
		t.Error("expected error for missing token file")
	}
}

func TestWeatherKeyFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apikey.txt")
	if err := os.WriteFile(path, []byte("weather-key\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WEATHER_API_KEY", "")
	_ = os.Unsetenv("WEATHER_API_KEY")
	t.Setenv("APIKEY_FILE", path)

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := cfg.WeatherKey(); got != "weather-key" {
		t.Errorf("WeatherKey() = %q, want weather-key", got)
	}

	t.Setenv("WEATHER_API_KEY", "env-key")
	cfg, _ = New()
	if got := cfg.WeatherKey(); got != "env-key" {
		t.Errorf("WeatherKey() = %q, want env var to win", got)
	}
}

func TestWeatherKeyAbsent(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "")
	_ = os.Unsetenv("WEATHER_API_KEY")
	t.Setenv("APIKEY_FILE", filepath.Join(t.TempDir(), "missing.txt"))

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := cfg.WeatherKey(); got != "" {
		t.Errorf("WeatherKey() = %q, want empty when nothing is configured", got)
	}
}
