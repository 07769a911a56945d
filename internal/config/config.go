// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/codr1/themevars/internal/colors"
	"github.com/codr1/themevars/internal/darkmode"
	"github.com/codr1/themevars/internal/preset"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type PresetConfig struct {
	Prefix        string   `yaml:"prefix"`
	ColorFormat   string   `yaml:"color_format"`
	DarkMode      string   `yaml:"dark_mode"`
	DarkSelectors []string `yaml:"dark_selectors"`
	Strict        bool     `yaml:"strict"`
}

type RateLimitConfig struct {
	// WritesPerMinute caps PUT and DELETE requests per client. Zero disables
	// the limit.
	WritesPerMinute int  `yaml:"writes_per_minute"`
	TrustProxy      bool `yaml:"trust_proxy"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		// ShutdownTimeoutSeconds bounds graceful HTTP shutdown.
		ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Preset PresetConfig `yaml:"preset"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.App.Name = "themevars"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.App.ShutdownTimeoutSeconds = 30
	cfg.Database.Driver = "sqlite"
	cfg.Database.Filename = filepath.Join("data", "themevars.db")
	cfg.RateLimit.WritesPerMinute = 30
	cfg.Preset = PresetConfig{
		Prefix:      preset.DefaultPrefix,
		ColorFormat: string(colors.FormatRGB),
		DarkMode:    string(darkmode.StrategyMedia),
	}
	return &cfg
}

// Load loads both .env and yaml configuration. An empty configPath loads
// defaults plus environment overrides.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		// Load .env file if it exists
		envPath := filepath.Join(filepath.Dir(configPath), ".env")
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}

		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if value, ok := os.LookupEnv("THEMEVARS_ENVIRONMENT"); ok {
		c.App.Environment = value
	}
	if value, ok := os.LookupEnv("THEMEVARS_DATABASE"); ok {
		c.Database.Filename = value
	}
	if value, ok := os.LookupEnv("THEMEVARS_PORT"); ok {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid THEMEVARS_PORT %q: %w", value, err)
		}
		c.App.Port = port
	}
	return nil
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app port must be between 1 and 65535")
	}
	if c.App.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("app shutdown timeout must be positive")
	}
	if c.RateLimit.WritesPerMinute < 0 {
		return fmt.Errorf("rate limit writes_per_minute must not be negative")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if _, err := colors.ParseFormat(c.Preset.ColorFormat); err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	if _, err := darkmode.ParseStrategy(c.Preset.DarkMode); err != nil {
		return fmt.Errorf("preset: %w", err)
	}

	return nil
}

// PresetOptions converts the preset section into builder options.
func (c *Config) PresetOptions() preset.Options {
	format, _ := colors.ParseFormat(c.Preset.ColorFormat)
	strategy, _ := darkmode.ParseStrategy(c.Preset.DarkMode)
	return preset.Options{
		Prefix:        c.Preset.Prefix,
		ColorFormat:   format,
		DarkMode:      strategy,
		DarkSelectors: append([]string(nil), c.Preset.DarkSelectors...),
		Strict:        c.Preset.Strict,
	}
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.App.ShutdownTimeoutSeconds) * time.Second
}

// IsDevelopment reports whether human readable logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
