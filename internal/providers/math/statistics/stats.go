package statistics

import (
	gomath "math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the defined values of a sweep.
type Summary struct {
	Count     int      `json:"count" yaml:"count" toml:"count"`
	Defined   int      `json:"defined" yaml:"defined" toml:"defined"`
	Undefined int      `json:"undefined" yaml:"undefined" toml:"undefined"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
	Mean      *float64 `json:"mean,omitempty" yaml:"mean,omitempty" toml:"mean,omitempty"`
	StdDev    *float64 `json:"stdev,omitempty" yaml:"stdev,omitempty" toml:"stdev,omitempty"`
}

// Summarize computes statistics over the finite values. NaN and ±Inf are
// counted as undefined and excluded. Fields that need at least one value
// (two for StdDev) stay nil otherwise, as do results that overflow.
func Summarize(values []float64) Summary {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
			continue
		}
		finite = append(finite, v)
	}

	s := Summary{
		Count:     len(values),
		Defined:   len(finite),
		Undefined: len(values) - len(finite),
	}
	if len(finite) == 0 {
		return s
	}

	s.Min = ptr(floats.Min(finite))
	s.Max = ptr(floats.Max(finite))
	// Mean and StdDev overflow for values near the float64 limit.
	s.Mean = ptr(stat.Mean(finite, nil))
	if len(finite) > 1 {
		s.StdDev = ptr(stat.StdDev(finite, nil))
	}
	return s
}

// ptr returns nil for non-finite v so a Summary always encodes as JSON.
func ptr(v float64) *float64 {
	if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
		return nil
	}
	return &v
}
