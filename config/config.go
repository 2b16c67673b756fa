// Package config loads the JSON defaults used by the voxpath command.
//
// Every field is a pointer so a partial file only overrides what it names;
// the Get* accessors fall back to the built-in defaults for the rest.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/voxpath/distmap"
	"github.com/katalvlaran/voxpath/volume"
)

// ErrInvalidConfig is returned by Validate and Load for out-of-range values.
var ErrInvalidConfig = errors.New("config: invalid value")

// Extraction methods.
const (
	MethodGreedy   = "greedy"
	MethodThinning = "thinning"
)

// Threshold senses.
const (
	SenseAbove = "above"
	SenseBelow = "below"
)

const maxFileSize = 1 << 20

// Config holds CLI defaults for building fields and extracting paths.
type Config struct {
	// Field construction
	Connectivity   *string  `json:"connectivity,omitempty"` // "6" or "26"
	Cost           *string  `json:"cost,omitempty"`         // "unit" or "euclidean"
	Threshold      *float64 `json:"threshold,omitempty"`
	ThresholdSense *string  `json:"threshold_sense,omitempty"`

	// Extraction
	MinQuotientStop *float64 `json:"min_quotient_stop,omitempty"`
	MaxIterations   *int     `json:"max_iterations,omitempty"`
	Method          *string  `json:"method,omitempty"`

	// Logging
	LogFile  *string `json:"log_file,omitempty"`
	LogLevel *string `json:"log_level,omitempty"`
}

// Load reads a Config from a .json file no larger than 1 MiB and validates it.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field that is set.
func (c *Config) Validate() error {
	if c.Connectivity != nil {
		if _, err := volume.ParseConnectivity(*c.Connectivity); err != nil {
			return fmt.Errorf("%w: connectivity %q", ErrInvalidConfig, *c.Connectivity)
		}
	}
	if c.Cost != nil {
		if _, err := distmap.ParseCost(*c.Cost); err != nil {
			return fmt.Errorf("%w: cost %q", ErrInvalidConfig, *c.Cost)
		}
	}
	if c.Threshold != nil && (math.IsNaN(*c.Threshold) || math.IsInf(*c.Threshold, 0)) {
		return fmt.Errorf("%w: threshold must be finite", ErrInvalidConfig)
	}
	if c.ThresholdSense != nil && *c.ThresholdSense != SenseAbove && *c.ThresholdSense != SenseBelow {
		return fmt.Errorf("%w: threshold_sense %q", ErrInvalidConfig, *c.ThresholdSense)
	}
	if c.MinQuotientStop != nil {
		if q := *c.MinQuotientStop; !(q >= 0 && q <= 1) {
			return fmt.Errorf("%w: min_quotient_stop must be in [0,1], got %v", ErrInvalidConfig, q)
		}
	}
	if c.MaxIterations != nil && *c.MaxIterations < 1 {
		return fmt.Errorf("%w: max_iterations must be positive, got %d", ErrInvalidConfig, *c.MaxIterations)
	}
	if c.Method != nil && *c.Method != MethodGreedy && *c.Method != MethodThinning {
		return fmt.Errorf("%w: method %q", ErrInvalidConfig, *c.Method)
	}
	if c.LogLevel != nil {
		if _, err := zapcore.ParseLevel(*c.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, *c.LogLevel)
		}
	}
	return nil
}

// GetConnectivity returns the connectivity or Conn6.
func (c *Config) GetConnectivity() volume.Connectivity {
	if c.Connectivity == nil {
		return volume.Conn6
	}
	conn, err := volume.ParseConnectivity(*c.Connectivity)
	if err != nil {
		return volume.Conn6
	}
	return conn
}

// GetCost returns the step cost or CostUnit.
func (c *Config) GetCost() distmap.Cost {
	if c.Cost == nil {
		return distmap.CostUnit
	}
	cost, err := distmap.ParseCost(*c.Cost)
	if err != nil {
		return distmap.CostUnit
	}
	return cost
}

// GetThreshold returns the admissibility level or 0.5.
func (c *Config) GetThreshold() float64 {
	if c.Threshold == nil {
		return 0.5
	}
	return *c.Threshold
}

// GetThresholdSense returns "above" or "below"; the default is "above".
func (c *Config) GetThresholdSense() string {
	if c.ThresholdSense == nil {
		return SenseAbove
	}
	return *c.ThresholdSense
}

// Predicate combines threshold and sense into an admissibility predicate.
func (c *Config) Predicate() volume.Predicate {
	if c.GetThresholdSense() == SenseBelow {
		return volume.Below(c.GetThreshold())
	}
	return volume.Above(c.GetThreshold())
}

func (c *Config) GetMinQuotientStop() float64 {
	if c.MinQuotientStop == nil {
		return 0
	}
	return *c.MinQuotientStop
}

func (c *Config) GetMaxIterations() int {
	if c.MaxIterations == nil {
		return 100
	}
	return *c.MaxIterations
}

func (c *Config) GetMethod() string {
	if c.Method == nil {
		return MethodGreedy
	}
	return *c.Method
}

// GetLogFile returns the rotated log file path; empty means stderr.
func (c *Config) GetLogFile() string {
	if c.LogFile == nil {
		return ""
	}
	return *c.LogFile
}

func (c *Config) GetLogLevel() zapcore.Level {
	if c.LogLevel == nil {
		return zapcore.InfoLevel
	}
	lvl, err := zapcore.ParseLevel(*c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
