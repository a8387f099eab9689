package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that take precedence over the file.
const (
	EnvStorageDSN = "HLTV_STORAGE_DSN"
	EnvBaseURL    = "HLTV_BASE_URL"
	EnvLogLevel   = "HLTV_LOG_LEVEL"
)

// LoadConfig reads the YAML file, applies .env and environment overrides and
// validates the result.
func LoadConfig(filePath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg.finish()
}

// LoadDefaults is LoadConfig without a file: built-in defaults plus .env and
// environment overrides.
func LoadDefaults() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return Default().finish()
}

func (c *Config) finish() (*Config, error) {
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return c, nil
}

// Default returns the values used when the file leaves a field out.
func Default() *Config {
	return &Config{
		BaseURL: "https://www.hltv.org/",
		HTTP: HttpConfig{
			UserAgent:                 "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			AcceptLanguage:            "en-US,en;q=0.9",
			ConnectTimeoutMS:          5000,
			TotalTimeoutMS:            20000,
			MaxRetries:                3,
			MaxIdleConnections:        10,
			MaxIdleConnectionsPerHost: 2,
			IdleConnectionTimeoutS:    90,
		},
		Backoff:   BackoffConfig{MinMS: 1000, MaxMS: 30000, JitterPct: 20},
		RateLimit: RateLimitConfig{MaxConcurrentPerHost: 1, RPM: 20},
		Robots:    RobotsConfig{Enabled: true, CacheTTLHours: 24},
		Rod:       RodConfig{PageTimeoutS: 60, WaitLoadTimeoutS: 30},
		Sync: SyncConfig{
			MaxResultPages:        5,
			StopOnKnownChainPages: 2,
			Upcoming:              true,
		},
		Storage:       StorageConfig{Driver: "mssql", CommandTimeoutMS: 30000},
		Scheduler:     SchedulerConfig{Mode: "oneshot"},
		Observability: ObservabilityConfig{LogLevel: "info", Console: true},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvStorageDSN); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Observability.LogLevel = v
	}
}

// loadDotEnv is a no-op when the file does not exist. Variables already set
// in the environment are not overwritten.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}
