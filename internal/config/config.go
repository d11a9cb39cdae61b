package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the ReviewLens server.
type Config struct {
	Server  ServerConfig
	Dataset DatasetConfig
	Redis   RedisConfig
	API     APIConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type DatasetConfig struct {
	Path string
}

// RedisConfig configures the optional summary cache. An empty URL
// disables caching; the service stays fully functional without it.
type RedisConfig struct {
	URL        string
	SummaryTTL time.Duration
}

type APIConfig struct {
	RateLimitPerMin int
}

// Load reads configuration from environment variables and returns a
// validated Config. Returns an error with a descriptive message if any
// required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("REVIEWLENS_PORT", 8080),
			Env:  envString("REVIEWLENS_ENV", "development"),
		},
		Dataset: DatasetConfig{
			Path: os.Getenv("DATASET_PATH"),
		},
		Redis: RedisConfig{
			URL:        os.Getenv("REDIS_URL"),
			SummaryTTL: envDuration("CACHE_TTL", 5*time.Minute),
		},
		API: APIConfig{
			RateLimitPerMin: envInt("RATE_LIMIT_PER_MIN", 120),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Dataset.Path == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("REVIEWLENS_PORT must be a valid port, got %d", c.Server.Port)
	}
	if c.API.RateLimitPerMin < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN must be positive, got %d", c.API.RateLimitPerMin)
	}
	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
