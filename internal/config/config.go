package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/GriffinCanCode/funcsys/internal/providers/math/common"
	"github.com/kelseyhightower/envconfig"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration.
type Config struct {
	Series    SeriesConfig
	Export    ExportConfig
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// SeriesConfig holds the construction-time parameters of the series
// primitives.
type SeriesConfig struct {
	Epsilon       float64 `envconfig:"SERIES_EPSILON" default:"1e-6"`
	MaxIterations int     `envconfig:"SERIES_MAX_ITERATIONS" default:"100"`
}

// ExportConfig holds range sweep and export defaults.
type ExportConfig struct {
	Precision float64 `envconfig:"EXPORT_PRECISION" default:"1e-6"`
	Step      float64 `envconfig:"EXPORT_STEP" default:"0.1"`
	Format    string  `envconfig:"EXPORT_FORMAT" default:"csv"`
	Separator string  `envconfig:"EXPORT_SEPARATOR" default:","`
	Workers   int     `envconfig:"EXPORT_WORKERS" default:"4"`
	Dir       string  `envconfig:"EXPORT_DIR" default:"."`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	// CORSOrigins is a comma-separated list in the environment.
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Series: SeriesConfig{
			Epsilon:       common.DefaultEpsilon,
			MaxIterations: common.DefaultMaxIterations,
		},
		Export: ExportConfig{
			Precision: 1e-6,
			Step:      0.1,
			Format:    "csv",
			Separator: ",",
			Workers:   4,
			Dir:       ".",
		},
		Server: ServerConfig{
			Port:        "8000",
			Host:        "0.0.0.0",
			CORSOrigins: []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// Validate checks the values that the rest of the system relies on.
func (c *Config) Validate() error {
	if _, err := c.SeriesConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !common.ValidPrecision(c.Export.Precision) {
		return fmt.Errorf("%w: export precision must be in (0, 1), got %v", ErrInvalidConfig, c.Export.Precision)
	}
	if c.Export.Step <= 0 {
		return fmt.Errorf("%w: export step must be positive, got %v", ErrInvalidConfig, c.Export.Step)
	}
	if c.Export.Workers < 1 {
		return fmt.Errorf("%w: export workers must be at least 1, got %d", ErrInvalidConfig, c.Export.Workers)
	}
	if utf8.RuneCountInString(c.Export.Separator) != 1 {
		return fmt.Errorf("%w: export separator must be a single character, got %q", ErrInvalidConfig, c.Export.Separator)
	}
	return nil
}

// SeriesConfig converts the series section into a validated common.Config.
func (c *Config) SeriesConfig() (common.Config, error) {
	return common.NewConfig(c.Series.Epsilon, c.Series.MaxIterations)
}

// SeparatorRune returns the export separator as a rune.
func (c *Config) SeparatorRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Export.Separator)
	return r
}

// Address returns host:port for the HTTP server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + c.Server.Port
}
