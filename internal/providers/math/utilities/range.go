package utilities

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/GriffinCanCode/funcsys/internal/providers/math/common"
)

// MaxPoints caps the number of grid points a single range may produce.
const MaxPoints = 1_000_000

var ErrInvalidRange = errors.New("invalid range")

// Range is the closed interval [Start, End] sampled every Step.
type Range struct {
	Start float64 `json:"start" yaml:"start" toml:"start"`
	End   float64 `json:"end" yaml:"end" toml:"end"`
	Step  float64 `json:"step" yaml:"step" toml:"step"`
}

// Validate checks that the bounds are finite, ordered and the step positive.
func (r Range) Validate() error {
	for name, v := range map[string]float64{"start": r.Start, "end": r.End, "step": r.Step} {
		if err := common.ValidateNumber(v, name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
	}
	if r.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %v", ErrInvalidRange, r.Step)
	}
	if r.Start > r.End {
		return fmt.Errorf("%w: start %v is after end %v", ErrInvalidRange, r.Start, r.End)
	}
	if n := r.count(); n > MaxPoints {
		return fmt.Errorf("%w: %d points exceeds limit of %d", ErrInvalidRange, n, MaxPoints)
	}
	return nil
}

// Count returns the number of grid points, or 0 for an invalid range.
func (r Range) Count() int {
	if r.Validate() != nil {
		return 0
	}
	return r.count()
}

// Points returns Start + i·Step for every i that stays within End.
// Points are computed from the index rather than accumulated so that
// rounding error does not grow along the sweep.
func (r Range) Points() ([]float64, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	n := r.count()
	points := make([]float64, n)
	for i := range points {
		points[i] = r.At(i)
	}
	return points, nil
}

// At returns the i-th grid point.
func (r Range) At(i int) float64 {
	return r.Start + float64(i)*r.Step
}

func (r Range) count() int {
	// Tolerate a last point that lands a hair past End through rounding.
	span := (r.End-r.Start)/r.Step + 1e-9
	if span > MaxPoints {
		return MaxPoints + 1
	}
	return int(gomath.Floor(span)) + 1
}
