// Package config holds the ambient configuration for hssctl: simulation
// defaults and logging, resolved through viper from HSS_-prefixed
// environment variables and an optional config file. Command-line flags are
// not bound into it.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration: simulation defaults and the log
// level, resolved through a Default()/Load() split.
type Config struct {
	Epsilon        float64 `mapstructure:"epsilon"`
	DefaultHorizon float64 `mapstructure:"default_horizon"`
	LogLevel       string  `mapstructure:"log_level"`
}

// Default returns the built-in configuration before any flag/env/file
// overrides are applied.
func Default() *Config {
	return &Config{
		Epsilon:        1e-9,
		DefaultHorizon: 0, // 0 means "use the topology's hyperperiod"
		LogLevel:       "info",
	}
}

// Load builds a viper instance seeded with Default(), reads HSS_-prefixed
// environment variables, and optionally merges a config file at path (a
// missing path is not an error: callers pass "" when none was given).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HSS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("epsilon", def.Epsilon)
	v.SetDefault("default_horizon", def.DefaultHorizon)
	v.SetDefault("log_level", def.LogLevel)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
