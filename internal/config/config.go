// Package config loads the demo driver configuration from an optional YAML
// file, an optional .env file and FLOWDEMO_ environment variables, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lguimbarda/pullflow/internal/logger"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. FLOWDEMO_RANGE_END or FLOWDEMO_LOGGING_LEVEL.
const EnvPrefix = "FLOWDEMO"

// Config is the demo driver configuration.
type Config struct {
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Metrics bool          `yaml:"metrics" mapstructure:"metrics"`
	Range   RangeConfig   `yaml:"range" mapstructure:"range"`
	// Repeat is how many times the distinct-strings scenario cycles its input.
	Repeat int `yaml:"repeat" mapstructure:"repeat" validate:"gte=1,lte=1000"`
	// Sample feeds the stats scenario.
	Sample []float64 `yaml:"sample" mapstructure:"sample" validate:"min=1"`
}

// OutputConfig selects how scenario reports are printed.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=text yaml"`
}

// RangeConfig bounds the integer sources used by the evens and
// all-positive scenarios. End is exclusive.
type RangeConfig struct {
	Start int `yaml:"start" mapstructure:"start"`
	End   int `yaml:"end" mapstructure:"end" validate:"gtefield=Start"`
}

// Options holds optional file overrides for Load.
type Options struct {
	ConfigFile string // YAML config file (optional)
	EnvFile    string // .env file (optional, ignored when missing)
}

// Option is a functional option for Load.
type Option func(*Options)

// WithConfigFile sets an explicit config file path. A missing file is an error.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile sets the .env file path.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

var defaults = map[string]any{
	"logging.level":     "info",
	"logging.format":    "console",
	"logging.output":    "stderr",
	"logging.no_color":  false,
	"logging.timestamp": true,
	"output.format":     "text",
	"metrics":           false,
	"range.start":       1,
	"range.end":         101,
	"repeat":            5,
	"sample":            []float64{3, 1, 4, 1, 5, 9, 2, 6},
}

// Load resolves the configuration.
func Load(opts ...Option) (*Config, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if o.ConfigFile != "" {
		v.SetConfigFile(o.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", o.ConfigFile, err)
		}
	}

	if o.EnvFile != "" {
		if err := godotenv.Load(o.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", o.EnvFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Logging.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct constraints and the logging section.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
