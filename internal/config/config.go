// Package config loads engine selection and worker settings from YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/arith/internal/parallel"
	"github.com/born-ml/arith/internal/tensor"
)

// Config represents the complete arith configuration.
type Config struct {
	Selector SelectorConfig `yaml:"selector"`
	Parallel ParallelConfig `yaml:"parallel"`
	Log      LogConfig      `yaml:"log"`
}

// SelectorConfig contains engine selection settings.
type SelectorConfig struct {
	Threshold int    `yaml:"threshold"` // Cost above which the heavy engine runs
	Heavy     string `yaml:"heavy"`     // native, parallel
}

// ParallelConfig contains parallel engine settings.
type ParallelConfig struct {
	Enabled      bool `yaml:"enabled"`
	Workers      int  `yaml:"workers"` // 0 = runtime.NumCPU()
	MinChunkSize int  `yaml:"min_chunk_size"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Selector: SelectorConfig{
			Threshold: 100,
			Heavy:     tensor.Native.String(),
		},
		Parallel: ParallelConfig{
			Enabled:      runtime.NumCPU() > 1,
			MinChunkSize: 64,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
// Keys missing from data keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Selector.Threshold < 0 {
		return fmt.Errorf("selector.threshold must be >= 0, got %d", c.Selector.Threshold)
	}
	kind, ok := tensor.ParseEngineKind(c.Selector.Heavy)
	if !ok || kind == tensor.Interpreted {
		return fmt.Errorf("selector.heavy must be native or parallel, got %q", c.Selector.Heavy)
	}
	if c.Parallel.Workers < 0 {
		return fmt.Errorf("parallel.workers must be >= 0, got %d", c.Parallel.Workers)
	}
	if c.Parallel.MinChunkSize < 0 {
		return fmt.Errorf("parallel.min_chunk_size must be >= 0, got %d", c.Parallel.MinChunkSize)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// HeavyEngine returns the engine kind used above the threshold.
func (c *Config) HeavyEngine() tensor.EngineKind {
	kind, _ := tensor.ParseEngineKind(c.Selector.Heavy)
	return kind
}

// Options returns the work splitting settings of the parallel engine.
func (p ParallelConfig) Options() parallel.Config {
	return parallel.Config{
		Enabled:      p.Enabled,
		NumWorkers:   p.Workers,
		MinChunkSize: p.MinChunkSize,
	}
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("log.level: unknown level %q", l.Level)
	}
	return level, nil
}
