// Package config loads benchmark parameters from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mknyszek/intlist-bench/cell"
	"github.com/mknyszek/intlist-bench/stride"
	"github.com/mknyszek/intlist-bench/sweep"
)

// Config holds the parameters of every benchmark.
type Config struct {
	// Seed initializes the generator that fills every collection.
	Seed       int64            `yaml:"seed"`
	Timing     TimingConfig     `yaml:"timing"`
	Throughput ThroughputConfig `yaml:"throughput"`
	Locality   LocalityConfig   `yaml:"locality"`
	Stride     stride.Config    `yaml:"stride"`
	Cells      cell.Config      `yaml:"cells"`
}

// Sizes selects the collection sizes of a run: a named sweep, or the
// decades from MinSize to MaxSize when Sweep is empty.
type Sizes struct {
	Sweep   string `yaml:"sweep"`
	MinSize int    `yaml:"min_size"`
	MaxSize int    `yaml:"max_size"`
}

// Resolve returns the sizes in increasing order.
func (s Sizes) Resolve() ([]int, error) {
	if s.Sweep != "" {
		return sweep.Generate(s.Sweep)
	}
	if s.MinSize < 1 || s.MaxSize < s.MinSize {
		return nil, fmt.Errorf("invalid size range [%d, %d]", s.MinSize, s.MaxSize)
	}
	return sweep.Range(s.MinSize, s.MaxSize), nil
}

type TimingConfig struct {
	Sizes `yaml:",inline"`
	// TotalIterations is the number of elements touched per measurement
	// when not adapting.
	TotalIterations int `yaml:"total_iterations"`
	// Adaptive targets TargetTime per measurement once a mean is known.
	Adaptive   bool          `yaml:"adaptive"`
	TargetTime time.Duration `yaml:"target_time"`
	StablePass int           `yaml:"stable_pass"`
	WarmupReps int           `yaml:"warmup_reps"`
	// LogDir receives the result log; empty disables it.
	LogDir string `yaml:"log_dir"`
	// Chart, if set, is the path of an HTML chart written at the end.
	Chart string `yaml:"chart"`
}

type ThroughputConfig struct {
	Sizes    `yaml:",inline"`
	Duration time.Duration `yaml:"duration"`
	Settle   time.Duration `yaml:"settle"`
	Interval time.Duration `yaml:"interval"`
	Chart    string        `yaml:"chart"`
}

type LocalityConfig struct {
	Sizes           `yaml:",inline"`
	MinPageShift    uint `yaml:"min_page_shift"`
	MaxPageShift    uint `yaml:"max_page_shift"`
	Shuffle         bool `yaml:"shuffle"`
	TotalIterations int  `yaml:"total_iterations"`
	StablePass      int  `yaml:"stable_pass"`
}

// Default returns the standard parameters.
func Default() Config {
	decades := Sizes{MinSize: 1000, MaxSize: 10_000_000}
	return Config{
		Seed: 1,
		Timing: TimingConfig{
			Sizes:           decades,
			TotalIterations: 100_000_000,
			TargetTime:      500 * time.Millisecond,
			StablePass:      2,
			WarmupReps:      3,
			LogDir:          ".",
		},
		Throughput: ThroughputConfig{
			Sizes:    decades,
			Duration: 20 * time.Second,
			Settle:   3 * time.Second,
			Interval: time.Second,
		},
		Locality: LocalityConfig{
			Sizes:           decades,
			MinPageShift:    6,
			MaxPageShift:    12,
			TotalIterations: 100_000_000,
			StablePass:      2,
		},
		Stride: stride.Config{
			LogN:         25,
			Reps:         10,
			Passes:       20,
			StablePass:   3,
			MaxSmallStep: 25,
			Parallelism:  4,
			Seed:         1,
		},
		Cells: cell.Config{
			N:      100_000,
			Reps:   1000,
			Passes: 5,
			Seed:   1,
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Encode writes cfg to w as YAML.
func Encode(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// Write stores cfg as YAML at path.
func Write(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Validate reports every out-of-range parameter.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	for name, s := range map[string]Sizes{
		"timing":     c.Timing.Sizes,
		"throughput": c.Throughput.Sizes,
		"locality":   c.Locality.Sizes,
	} {
		if _, err := s.Resolve(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	check(c.Timing.TotalIterations > 0, "timing.total_iterations must be positive")
	check(c.Timing.TargetTime > 0, "timing.target_time must be positive")
	check(c.Timing.StablePass >= 1, "timing.stable_pass must be at least 1")
	check(c.Timing.WarmupReps >= 0, "timing.warmup_reps must not be negative")
	check(c.Throughput.Interval > 0, "throughput.interval must be positive")
	check(c.Throughput.Settle >= 0 && c.Throughput.Settle < c.Throughput.Duration,
		"throughput.settle must be within [0, duration)")
	check(c.Locality.MinPageShift <= c.Locality.MaxPageShift && c.Locality.MaxPageShift < 32,
		"locality page shifts must satisfy min <= max < 32")
	check(c.Locality.TotalIterations > 0, "locality.total_iterations must be positive")
	check(c.Stride.LogN >= 2 && c.Stride.LogN <= 30, "stride.log_n must be within [2, 30]")
	check(c.Stride.Reps > 0 && c.Stride.Passes > 0, "stride.reps and stride.passes must be positive")
	check(c.Stride.Parallelism > 0, "stride.parallelism must be positive")
	check(c.Cells.N > 0 && c.Cells.Reps > 0, "cells.n and cells.reps must be positive")
	return errors.Join(errs...)
}
