package common

import (
	"errors"
	"fmt"
	gomath "math"
)

const (
	// DefaultEpsilon is the convergence tolerance used when none is configured.
	DefaultEpsilon = 1e-6
	// DefaultMaxIterations bounds the number of series terms.
	DefaultMaxIterations = 100
)

var (
	ErrInvalidEpsilon    = errors.New("epsilon must be in (0, 1)")
	ErrInvalidIterations = errors.New("max iterations must be at least 1")
	ErrInvalidBase       = errors.New("logarithm base must be positive and not equal to 1")
)

// Function is a real function evaluated to a per-call precision.
type Function interface {
	Calculate(x, precision float64) float64
}

// Series is a Function computed directly by a truncated power series.
type Series interface {
	Function
	Config() Config
}

// FunctionFunc adapts a plain func to Function.
type FunctionFunc func(x, precision float64) float64

// Calculate calls f(x, precision).
func (f FunctionFunc) Calculate(x, precision float64) float64 {
	return f(x, precision)
}

// Config is the construction-time configuration of a series primitive.
// It is copied by value and never mutated after construction.
type Config struct {
	Epsilon       float64
	MaxIterations int
}

// DefaultConfig returns {1e-6, 100}.
func DefaultConfig() Config {
	return Config{
		Epsilon:       DefaultEpsilon,
		MaxIterations: DefaultMaxIterations,
	}
}

// NewConfig builds a validated Config.
func NewConfig(epsilon float64, maxIterations int) (Config, error) {
	cfg := Config{Epsilon: epsilon, MaxIterations: maxIterations}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks 0 < Epsilon < 1 and MaxIterations >= 1.
func (c Config) Validate() error {
	if !ValidPrecision(c.Epsilon) {
		return fmt.Errorf("%w: got %v", ErrInvalidEpsilon, c.Epsilon)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidIterations, c.MaxIterations)
	}
	return nil
}

// ValidateNumber checks if a number is finite.
func ValidateNumber(x float64, name string) error {
	if gomath.IsNaN(x) {
		return fmt.Errorf("%s is NaN", name)
	}
	if gomath.IsInf(x, 0) {
		return fmt.Errorf("%s is infinite", name)
	}
	return nil
}

// ValidPrecision reports whether p lies strictly inside (0, 1).
// NaN fails both comparisons and is rejected.
func ValidPrecision(p float64) bool {
	return p > 0 && p < 1
}

// ValidArgs is the entry guard of the series primitives: x must be finite
// and precision must be inside (0, 1).
func ValidArgs(x, precision float64) bool {
	return ValidateNumber(x, "x") == nil && ValidPrecision(precision)
}

// AnyNaN reports whether any of the values is NaN.
func AnyNaN(values ...float64) bool {
	for _, v := range values {
		if gomath.IsNaN(v) {
			return true
		}
	}
	return false
}

// NaN returns the evaluation-time failure sentinel.
func NaN() float64 {
	return gomath.NaN()
}
