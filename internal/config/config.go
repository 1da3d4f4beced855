package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zombar/readability-analyzer/internal/aidetect"
)

// Config is the full service configuration
type Config struct {
	Server   ServerConfig         `yaml:"server"`
	Redis    RedisConfig          `yaml:"redis"`
	History  HistoryConfig        `yaml:"history"`
	Tracing  TracingConfig        `yaml:"tracing"`
	Analysis AnalysisConfig       `yaml:"analysis"`
	Scoring  aidetect.ScoreConfig `yaml:"scoring"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// RedisConfig configures the result cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// HistoryConfig configures the run history store. DSN is a SQLite path or
// a PostgreSQL connection string; empty disables history.
type HistoryConfig struct {
	DSN       string        `yaml:"dsn"`
	Retention time.Duration `yaml:"retention"`
}

// TracingConfig configures OpenTelemetry export
type TracingConfig struct {
	Endpoint   string  `yaml:"endpoint"`
	Insecure   bool    `yaml:"insecure"`
	SampleRate float64 `yaml:"sample_rate"`
}

// AnalysisConfig holds request defaults
type AnalysisConfig struct {
	DefaultSensitivity string `yaml:"default_sensitivity"`
	DefaultCount       int    `yaml:"default_count"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Redis: RedisConfig{
			TTL: time.Hour,
		},
		History: HistoryConfig{
			DSN:       "readability-history.db",
			Retention: 30 * 24 * time.Hour,
		},
		Tracing: TracingConfig{
			Insecure:   true,
			SampleRate: 1,
		},
		Analysis: AnalysisConfig{
			DefaultSensitivity: "medium",
			DefaultCount:       5,
		},
		Scoring: aidetect.DefaultScoreConfig(),
	}
}

// Load reads a YAML config file on top of the defaults. A missing file is
// not an error. ${VAR} references are expanded before parsing.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		return cfg, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables
func (c *Config) ApplyEnv() error {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.History.DSN = getEnv("HISTORY_DB", c.History.DSN)
	c.Tracing.Endpoint = getEnv("OTEL_ENDPOINT", c.Tracing.Endpoint)
	c.Analysis.DefaultSensitivity = getEnv("DEFAULT_SENSITIVITY", c.Analysis.DefaultSensitivity)

	if v := os.Getenv("REDIS_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_TTL %q: %w", v, err)
		}
		c.Redis.TTL = ttl
	}
	if v := os.Getenv("OTEL_SAMPLE_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid OTEL_SAMPLE_RATE %q: %w", v, err)
		}
		c.Tracing.SampleRate = rate
	}
	return nil
}

// Save writes the configuration as YAML
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
