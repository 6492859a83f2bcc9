// Package config loads runtime configuration from the environment and local
// credential files. A .env file is honored when present.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable. All environment variables are optional except
// the bot token, which lives in its own file and is checked at startup.
type Config struct {
	Prefix         string        `env:"BOT_PREFIX" envDefault:"/"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogDir         string        `env:"LOG_DIR" envDefault:"logs"`
	TokenFile      string        `env:"TOKEN_FILE" envDefault:"token.txt"`
	APIKeyFile     string        `env:"APIKEY_FILE" envDefault:"apikey.txt"`
	WeatherAPIKey  string        `env:"WEATHER_API_KEY"`
	CooldownSecs   int           `env:"COMMAND_COOLDOWN" envDefault:"3"`
	CacheMinutes   int           `env:"WEATHER_API_CACHE_MINUTES" envDefault:"30"`
	ConsoleTimeout time.Duration `env:"CONSOLE_TIMEOUT" envDefault:"10s"`
	StatusAddr     string        `env:"STATUS_ADDR" envDefault:":8787"`
}

// New reads .env (when present) and the process environment.
func New() (*Config, error) {
	_ = godotenv.Load() // no .env file is fine, system env applies

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Cooldown returns the default command cooldown window.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSecs) * time.Second
}

// CacheTTL returns how long weather responses stay fresh.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheMinutes) * time.Minute
}

// Token reads the gateway token from the token file. A missing or empty
// token is a startup-fatal condition for the caller.
func (c *Config) Token() (string, error) {
	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		return "", fmt.Errorf("read token file %s: %w", c.TokenFile, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", c.TokenFile)
	}
	return token, nil
}

// WeatherKey returns the weather API key from the environment, falling back
// to the key file. An empty result disables the weather feature.
func (c *Config) WeatherKey() string {
	if c.WeatherAPIKey != "" {
		return c.WeatherAPIKey
	}
	data, err := os.ReadFile(c.APIKeyFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
