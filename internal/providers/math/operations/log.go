package operations

import (
	"fmt"
	gomath "math"

	"github.com/GriffinCanCode/funcsys/internal/providers/math/common"
	"github.com/GriffinCanCode/funcsys/internal/shared/types"
)

// Ln computes the natural logarithm through the series
// ln(x) = 2·(z + z³/3 + z⁵/5 + ...), z = (x-1)/(x+1).
type Ln struct {
	cfg common.Config
}

// NewLn creates a natural logarithm primitive.
func NewLn(cfg common.Config) (*Ln, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Ln{cfg: cfg}, nil
}

// Config returns the construction-time configuration.
func (l *Ln) Config() common.Config {
	return l.cfg
}

// Calculate evaluates ln(x). Inputs above 2 are divided by e until they
// drop to 2 or below; every division adds one to the result.
func (l *Ln) Calculate(x, precision float64) float64 {
	if !common.ValidArgs(x, precision) || x <= 0 {
		return common.NaN()
	}

	k := 0
	for x > 2 {
		x /= gomath.E
		k++
	}
	return l.series(x, precision) + float64(k)
}

// series expects x in (0, 2].
func (l *Ln) series(x, precision float64) float64 {
	if gomath.Abs(x-1) < precision {
		return 0
	}

	z := (x - 1) / (x + 1)
	z2 := z * z

	sum := 0.0
	term := z
	for i := 1; i <= l.cfg.MaxIterations && gomath.Abs(term) > precision; i += 2 {
		sum += term
		term = term * z2 * float64(i) / float64(i+2)
	}
	return 2 * sum
}

// Log is the logarithm to a fixed base, ln(x)/ln(base).
type Log struct {
	ln     common.Function
	base   float64
	lnBase float64
}

// NewLog creates a base-B logarithm over a shared natural logarithm.
// ln(base) is computed once, at the epsilon of ln itself; the numerator
// uses whatever precision each call supplies.
func NewLog(ln common.Series, base float64) (*Log, error) {
	if gomath.IsNaN(base) || gomath.IsInf(base, 0) || base <= 0 || base == 1 {
		return nil, fmt.Errorf("%w: got %v", common.ErrInvalidBase, base)
	}
	return &Log{
		ln:     ln,
		base:   base,
		lnBase: ln.Calculate(base, ln.Config().Epsilon),
	}, nil
}

// Base returns the logarithm base.
func (l *Log) Base() float64 {
	return l.base
}

// Calculate evaluates log_base(x).
func (l *Log) Calculate(x, precision float64) float64 {
	if x <= 0 {
		return common.NaN()
	}
	lnX := l.ln.Calculate(x, precision)
	if gomath.IsNaN(lnX) {
		return common.NaN()
	}
	return lnX / l.lnBase
}

// LogTools returns logarithm tool definitions
func LogTools() []types.Tool {
	return []types.Tool{
		unaryTool("math.ln", "Natural Logarithm", "ln(x) by inverse hyperbolic tangent series; undefined for x <= 0"),
		unaryTool("math.log", "Logarithm", "Logarithm to an arbitrary base",
			types.Parameter{Name: "base", Type: "number", Description: "Base, positive and not 1", Required: true}),
		unaryTool("math.log10", "Logarithm Base 10", "ln(x)/ln(10)"),
		unaryTool("math.log2", "Logarithm Base 2", "ln(x)/ln(2)"),
		unaryTool("math.log3", "Logarithm Base 3", "ln(x)/ln(3)"),
	}
}
