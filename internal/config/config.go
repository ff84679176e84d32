package config

import (
	"fmt"

	"github.com/soltixdb/tsfunc/internal/aggregation"
	"github.com/soltixdb/tsfunc/internal/interval"
	"github.com/soltixdb/tsfunc/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Transform TransformConfig `mapstructure:"transform"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// AuthConfig represents API key authentication for the /v1 routes
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	APIKeys []string `mapstructure:"api_keys"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host      string `mapstructure:"host"`       // Bind address for server (e.g., 0.0.0.0 for all interfaces)
	HTTPPort  int    `mapstructure:"http_port"`  // HTTP server port
	BodyLimit int    `mapstructure:"body_limit"` // Max request body size in bytes
}

// TransformConfig holds defaults and limits for transform requests
type TransformConfig struct {
	DefaultAggregation string `mapstructure:"default_aggregation"` // used by steps that name no aggregation
	DefaultInterval    string `mapstructure:"default_interval"`    // used by steps that name no interval
	MaxSeries          int    `mapstructure:"max_series"`
	MaxPointsPerSeries int    `mapstructure:"max_points_per_series"`
	Workers            int    `mapstructure:"workers"` // series transformed concurrently per step, 0 = one per CPU

	// Pipeline runs when a request carries no steps. Empty means a single
	// downsample step with the default interval and aggregation.
	Pipeline []models.StepConfig `mapstructure:"pipeline"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, RFC3339Nano, Unix, Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Transform.Validate(); err != nil {
		return fmt.Errorf("transform config: %w", err)
	}

	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates auth configuration
func (c *AuthConfig) Validate() error {
	if c.Enabled && len(c.APIKeys) == 0 {
		return fmt.Errorf("auth.api_keys is required when auth is enabled")
	}
	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	if c.BodyLimit < 0 {
		return fmt.Errorf("body_limit cannot be negative")
	}

	return nil
}

// Validate validates transform configuration
func (c *TransformConfig) Validate() error {
	if !aggregation.IsValid(c.DefaultAggregation) {
		return fmt.Errorf("default_aggregation: %w: %q", aggregation.ErrUnknownAggregation, c.DefaultAggregation)
	}

	if _, err := interval.Parse(c.DefaultInterval); err != nil {
		return fmt.Errorf("default_interval: %w", err)
	}

	if c.MaxSeries < 1 {
		return fmt.Errorf("max_series must be at least 1")
	}

	if c.MaxPointsPerSeries < 1 {
		return fmt.Errorf("max_points_per_series must be at least 1")
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}

	for i, step := range c.Pipeline {
		if !models.IsStepFunc(step.Func) {
			return fmt.Errorf("pipeline[%d]: unknown func %q", i, step.Func)
		}
		if !aggregation.IsValid(step.Aggregation) {
			return fmt.Errorf("pipeline[%d]: %w: %q", i, aggregation.ErrUnknownAggregation, step.Aggregation)
		}
		if step.Interval == "" {
			continue
		}
		parse := interval.Parse
		if step.Func == models.StepTimeShift {
			parse = interval.ParseSigned
		}
		if _, err := parse(step.Interval); err != nil {
			return fmt.Errorf("pipeline[%d]: %w", i, err)
		}
	}

	return nil
}

// DefaultPipeline returns the configured pipeline with empty intervals and
// aggregations filled from the defaults.
func (c *TransformConfig) DefaultPipeline() []models.StepConfig {
	if len(c.Pipeline) == 0 {
		return []models.StepConfig{{
			Func:        models.StepDownsample,
			Interval:    c.DefaultInterval,
			Aggregation: c.DefaultAggregation,
		}}
	}
	return c.ApplyDefaults(c.Pipeline)
}

// ApplyDefaults returns a copy of steps where steps that read an interval
// and name none get DefaultInterval, and empty aggregations get
// DefaultAggregation.
func (c *TransformConfig) ApplyDefaults(steps []models.StepConfig) []models.StepConfig {
	out := make([]models.StepConfig, len(steps))
	for i, step := range steps {
		if step.Interval == "" && step.NeedsInterval() && step.Func != models.StepTimeShift {
			step.Interval = c.DefaultInterval
		}
		if step.Aggregation == "" {
			step.Aggregation = c.DefaultAggregation
		}
		out[i] = step
	}
	return out
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Logging.Level == "debug" && c.Logging.Format == "console"
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}
