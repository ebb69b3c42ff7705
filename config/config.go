// SPDX-License-Identifier: MIT

// Package config holds sparsecalc's YAML configuration and its environment
// overrides. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sparsecalc/sparse"
)

// Environment variables that override file values.
const (
	EnvEpsilon      = "SPARSECALC_EPSILON"
	EnvOutput       = "SPARSECALC_OUTPUT"
	EnvLogLevel     = "SPARSECALC_LOG_LEVEL"
	EnvStrictBounds = "SPARSECALC_STRICT_BOUNDS"
)

// DefaultOutput is where results go when nothing else is configured.
const DefaultOutput = "result.txt"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds all sparsecalc configuration.
type Config struct {
	// Compute settings
	Compute ComputeConfig `yaml:"compute"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Sparsity plot rendering
	Spy SpyConfig `yaml:"spy"`
}

// ComputeConfig configures parsing, arithmetic and the result destination.
type ComputeConfig struct {
	Epsilon      float64 `yaml:"epsilon"`       // Mul zero tolerance
	StrictBounds bool    `yaml:"strict_bounds"` // reject out-of-shape coordinates
	Output       string  `yaml:"output"`        // result path, "-" for stdout
}

// LoggingConfig configures the zap logger built by the CLI.
type LoggingConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // console encoder, stack traces on warn
}

// SpyConfig configures sparsity plot images.
type SpyConfig struct {
	WidthInches  float64 `yaml:"width_inches"`
	HeightInches float64 `yaml:"height_inches"`
	Format       string  `yaml:"format"` // png, svg, pdf, ...
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Compute: ComputeConfig{
			Epsilon: sparse.DefaultEpsilon,
			Output:  DefaultOutput,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Spy: SpyConfig{
			WidthInches:  5,
			HeightInches: 5,
			Format:       "png",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults; environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvEpsilon); v != "" {
		eps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvEpsilon, err)
		}
		c.Compute.Epsilon = eps
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Compute.Output = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvStrictBounds); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrictBounds, err)
		}
		c.Compute.StrictBounds = b
	}

	return nil
}

// Validate checks the configuration for values the rest of the program
// would reject or panic on.
func (c *Config) Validate() error {
	eps := c.Compute.Epsilon
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		return fmt.Errorf("compute.epsilon %v must be finite and >= 0: %w", eps, ErrInvalid)
	}
	if strings.TrimSpace(c.Compute.Output) == "" {
		return fmt.Errorf("compute.output is empty: %w", ErrInvalid)
	}
	if _, err := c.Logging.ZapLevel(); err != nil {
		return fmt.Errorf("logging.level: %v: %w", err, ErrInvalid)
	}
	if c.Spy.WidthInches <= 0 || c.Spy.HeightInches <= 0 {
		return fmt.Errorf("spy size %vx%v must be positive: %w", c.Spy.WidthInches, c.Spy.HeightInches, ErrInvalid)
	}

	return nil
}

// ZapLevel parses Level into a zap level.
func (l LoggingConfig) ZapLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(l.Level)
}

// MulOptions converts the compute settings into arithmetic options.
func (c *Config) MulOptions() []sparse.Option {
	return []sparse.Option{sparse.WithEpsilon(c.Compute.Epsilon)}
}
