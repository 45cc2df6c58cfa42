// Package config loads application configuration for the compositor CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
	Debug  DebugConfig  `mapstructure:"debug"`
}

// OutputConfig controls how results are encoded and where they are written
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Dir    string `mapstructure:"dir"`
}

// LogConfig controls log verbosity and encoding
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DebugConfig controls mask stage instrumentation
type DebugConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	StageDir string `mapstructure:"stage_dir"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "png",
			Dir:    "./output",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Debug: DebugConfig{
			Enabled:  false,
			StageDir: "./debug",
		},
	}
}

// LoadConfig reads the configuration file into a viper instance. An empty
// path searches the working directory and the per-user config directory
// for a config.yaml.
func LoadConfig(path string) (*viper.Viper, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseConfig decodes a viper instance over the defaults, so keys absent
// from the file keep their default values.
func ParseConfig(v *viper.Viper) (*Config, error) {
	c := Default()
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return c, nil
}

// Load reads, parses and validates configuration. A missing file is only
// an error when an explicit path was given.
func Load(path string) (*Config, error) {
	v, err := LoadConfig(path)
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	c, err := ParseConfig(v)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the configured values are usable
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "png", "jpg", "jpeg", "webp":
	default:
		return fmt.Errorf("output.format must be png, jpg or webp")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json")
	}

	if c.Debug.Enabled && c.Debug.StageDir == "" {
		return fmt.Errorf("debug.stage_dir must be set when debug is enabled")
	}
	return nil
}

// GetEnv returns the value of an environment variable or a fallback
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// DefaultConfigDir returns the per-user configuration directory
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "image-compositor")
}
