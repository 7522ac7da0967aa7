// Package config provides configuration loading and validation for the goform CLI.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	goform "github.com/reoring/goform"
)

// Config is the root configuration structure.
type Config struct {
	Language   string        `yaml:"language"`
	ValidateOn string        `yaml:"validate_on"`
	Now        string        `yaml:"now"` // fixed clock, RFC3339 or YYYY-MM-DD
	Log        LoggingConfig `yaml:"log"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, applies environment overrides and
// defaults, and validates the result.
func Parse(data []byte) (*Config, error) {
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadWithFallback loads path when it is set, otherwise defaults plus environment.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	var cfg Config
	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GOFORM_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("GOFORM_VALIDATE_ON"); v != "" {
		cfg.ValidateOn = v
	}
	if v := os.Getenv("GOFORM_NOW"); v != "" {
		cfg.Now = v
	}
	if v := os.Getenv("GOFORM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GOFORM_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.ValidateOn == "" {
		cfg.ValidateOn = "submit"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// Validate checks that every field holds a supported value.
func (c *Config) Validate() error {
	validLanguages := map[string]bool{"en": true, "ja": true}
	if !validLanguages[c.Language] {
		return fmt.Errorf("language must be 'en' or 'ja', got %q", c.Language)
	}
	if _, err := goform.ParseValidateMode(c.ValidateOn); err != nil {
		return fmt.Errorf("validate_on: %w", err)
	}
	if c.Now != "" {
		if _, err := c.FixedNow(); err != nil {
			return fmt.Errorf("now: %w", err)
		}
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("log.format must be 'console' or 'json', got %q", c.Log.Format)
	}
	return nil
}

// Mode returns the parsed validate_on value.
func (c *Config) Mode() goform.ValidateMode {
	m, _ := goform.ParseValidateMode(c.ValidateOn)
	return m
}

// FixedNow parses Now. A zero time means no fixed clock is configured.
func (c *Config) FixedNow() (time.Time, error) {
	if c.Now == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, c.Now); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", c.Now)
}

// Clock returns a clock pinned to Now, or time.Now when Now is unset.
func (c *Config) Clock() func() time.Time {
	t, err := c.FixedNow()
	if err != nil || t.IsZero() {
		return time.Now
	}
	return func() time.Time { return t }
}

// Logger builds a zerolog logger writing to w in the configured format.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.Log.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
