package config

import (
	"fmt"
	"strings"

	"github.com/soltixdb/tsfunc/internal/utils"
	"github.com/spf13/viper"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/tsfunc")
	}

	setDefaults(v)

	// TSFUNC_TRANSFORM_MAX_SERIES overrides transform.max_series
	v.SetEnvPrefix("TSFUNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.http_port", d.Server.HTTPPort)
	v.SetDefault("server.body_limit", d.Server.BodyLimit)

	v.SetDefault("transform.default_aggregation", d.Transform.DefaultAggregation)
	v.SetDefault("transform.default_interval", d.Transform.DefaultInterval)
	v.SetDefault("transform.max_series", d.Transform.MaxSeries)
	v.SetDefault("transform.max_points_per_series", d.Transform.MaxPointsPerSeries)
	v.SetDefault("transform.workers", d.Transform.Workers)

	v.SetDefault("auth.enabled", d.Auth.Enabled)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)
	v.SetDefault("logging.time_format", d.Logging.TimeFormat)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			HTTPPort:  5580,
			BodyLimit: utils.DefaultBodyLimit,
		},
		Transform: TransformConfig{
			DefaultAggregation: "avg",
			DefaultInterval:    "1m",
			MaxSeries:          utils.DefaultMaxSeries,
			MaxPointsPerSeries: utils.DefaultMaxPointsPerSeries,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
			TimeFormat: "RFC3339",
		},
	}
}
