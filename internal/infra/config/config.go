// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Player  PlayerConfig            `yaml:"player"`
	Engine  EngineConfig            `yaml:"engine"`
	Filters map[string]FilterConfig `yaml:"filters"`
	Log     LogConfig               `yaml:"log"`
}

// PlayerConfig represents playlist and playback configuration.
type PlayerConfig struct {
	Directory      string   `yaml:"directory"`
	Loop           bool     `yaml:"loop"`
	Extensions     []string `yaml:"extensions" default:"[\".mp3\"]" validate:"min=1,dive,startswith=.,min=2"`
	PollIntervalMs int      `yaml:"poll_interval_ms" default:"500" validate:"gte=50,lte=5000"`
}

// EngineConfig represents audio engine configuration.
// Settings are decoded by the engine factory for the selected type.
type EngineConfig struct {
	Type     string         `yaml:"type" default:"speaker" validate:"oneof=speaker silent"`
	Settings map[string]any `yaml:"settings"`
}

// FilterConfig represents a scan filter's configuration.
type FilterConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn warning error"`
	Output string `yaml:"output" default:"stderr"`
}

// Default returns a configuration with every default applied.
func Default() (*Config, error) {
	var cfg Config
	cfg.overrideFromEnv()
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return &cfg, nil
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("DIRBOX_DIRECTORY"); v != "" {
		c.Player.Directory = v
	}
	if v := os.Getenv("DIRBOX_LOOP"); v != "" {
		if loop, err := strconv.ParseBool(v); err == nil {
			c.Player.Loop = loop
		}
	}
	if v := os.Getenv("DIRBOX_ENGINE"); v != "" {
		c.Engine.Type = v
	}
	if v := os.Getenv("DIRBOX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// PollInterval returns the monitor polling interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Player.PollIntervalMs) * time.Millisecond
}

// NormalizedExtensions returns the configured extensions lower-cased.
func (c *Config) NormalizedExtensions() []string {
	exts := make([]string, len(c.Player.Extensions))
	for i, ext := range c.Player.Extensions {
		exts[i] = strings.ToLower(ext)
	}
	return exts
}

// ValidateExtensions checks every configured extension against the ones the
// audio decoders accept.
func (c *Config) ValidateExtensions(supported []string) error {
	allowed := make(map[string]bool, len(supported))
	for _, ext := range supported {
		allowed[strings.ToLower(ext)] = true
	}
	for _, ext := range c.NormalizedExtensions() {
		if !allowed[ext] {
			return errors.Newf("unsupported extension %s (supported: %s)", ext, strings.Join(supported, ", "))
		}
	}
	return nil
}

// IsFilterEnabled reports whether a filter is enabled.
// Filters missing from the configuration use fallback.
func (c *Config) IsFilterEnabled(filterName string, fallback bool) bool {
	if f, ok := c.Filters[filterName]; ok {
		return f.Enabled
	}
	return fallback
}

// FilterSettings returns the settings for a filter.
func (c *Config) FilterSettings(filterName string) map[string]any {
	if f, ok := c.Filters[filterName]; ok {
		return f.Settings
	}
	return nil
}
