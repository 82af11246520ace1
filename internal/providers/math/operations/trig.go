package operations

import (
	gomath "math"

	"github.com/GriffinCanCode/funcsys/internal/providers/math/common"
	"github.com/GriffinCanCode/funcsys/internal/shared/types"
)

// Sin computes sine by Maclaurin series after reducing x into [-π, π].
type Sin struct {
	cfg common.Config
}

// NewSin creates a sine primitive with the given series configuration.
func NewSin(cfg common.Config) (*Sin, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sin{cfg: cfg}, nil
}

// Config returns the construction-time configuration.
func (s *Sin) Config() common.Config {
	return s.cfg
}

// Calculate sums x - x³/3! + x⁵/5! - ... until a term drops to precision
// or the iteration budget is spent. Each term is derived from the previous
// one, so no factorial is ever formed.
func (s *Sin) Calculate(x, precision float64) float64 {
	if !common.ValidArgs(x, precision) {
		return common.NaN()
	}

	// IEEE remainder keeps the reduced argument centred on zero.
	x = gomath.Remainder(x, 2*gomath.Pi)
	x2 := x * x

	sum := 0.0
	term := x
	n := 1
	for i := 0; i < s.cfg.MaxIterations && gomath.Abs(term) > precision; i++ {
		sum += term
		n += 2
		term = -term * x2 / float64(n*(n-1))
	}
	return sum
}

// Cos is sin(x + π/2).
type Cos struct {
	sin common.Function
}

// NewCos creates a cosine over a shared sine.
func NewCos(sin common.Function) *Cos {
	return &Cos{sin: sin}
}

// Calculate evaluates cos(x).
func (c *Cos) Calculate(x, precision float64) float64 {
	return c.sin.Calculate(x+gomath.Pi/2, precision)
}

// Sec is 1/cos(x), undefined where |cos(x)| < precision.
type Sec struct {
	cos common.Function
}

// NewSec creates a secant over a shared cosine.
func NewSec(cos common.Function) *Sec {
	return &Sec{cos: cos}
}

// Calculate evaluates sec(x).
func (s *Sec) Calculate(x, precision float64) float64 {
	return reciprocal(s.cos.Calculate(x, precision), precision)
}

// Csc is 1/sin(x), undefined where |sin(x)| < precision.
type Csc struct {
	sin common.Function
}

// NewCsc creates a cosecant over a shared sine.
func NewCsc(sin common.Function) *Csc {
	return &Csc{sin: sin}
}

// Calculate evaluates csc(x).
func (c *Csc) Calculate(x, precision float64) float64 {
	return reciprocal(c.sin.Calculate(x, precision), precision)
}

// Tan is sin(x)/cos(x), undefined where |cos(x)| < precision.
type Tan struct {
	sin common.Function
	cos common.Function
}

// NewTan creates a tangent over a shared sine and cosine.
func NewTan(sin, cos common.Function) *Tan {
	return &Tan{sin: sin, cos: cos}
}

// Calculate evaluates tan(x).
func (t *Tan) Calculate(x, precision float64) float64 {
	return ratio(t.sin.Calculate(x, precision), t.cos.Calculate(x, precision), precision)
}

// Cot is cos(x)/sin(x), undefined where |sin(x)| < precision.
type Cot struct {
	sin common.Function
	cos common.Function
}

// NewCot creates a cotangent over a shared sine and cosine.
func NewCot(sin, cos common.Function) *Cot {
	return &Cot{sin: sin, cos: cos}
}

// Calculate evaluates cot(x).
func (c *Cot) Calculate(x, precision float64) float64 {
	return ratio(c.cos.Calculate(x, precision), c.sin.Calculate(x, precision), precision)
}

func reciprocal(d, precision float64) float64 {
	return ratio(1, d, precision)
}

// ratio divides n by d unless |d| is below precision. A NaN d falls
// through the guard and NaN propagates from the division.
func ratio(n, d, precision float64) float64 {
	if gomath.Abs(d) < precision {
		return common.NaN()
	}
	return n / d
}

// TrigTools returns trig tool definitions
func TrigTools() []types.Tool {
	return []types.Tool{
		unaryTool("math.sin", "Sine", "Sine by Maclaurin series (radians)"),
		unaryTool("math.cos", "Cosine", "Cosine as sin(x + π/2)"),
		unaryTool("math.tan", "Tangent", "Tangent as sin(x)/cos(x); undefined where |cos(x)| < precision"),
		unaryTool("math.cot", "Cotangent", "Cotangent as cos(x)/sin(x); undefined where |sin(x)| < precision"),
		unaryTool("math.sec", "Secant", "Secant as 1/cos(x); undefined where |cos(x)| < precision"),
		unaryTool("math.csc", "Cosecant", "Cosecant as 1/sin(x); undefined where |sin(x)| < precision"),
	}
}

func unaryTool(id, name, description string, extra ...types.Parameter) types.Tool {
	params := []types.Parameter{
		{Name: "x", Type: "number", Description: "Argument", Required: true},
		{Name: "precision", Type: "number", Description: "Per-call tolerance in (0, 1)", Required: false},
	}
	return types.Tool{
		ID:          id,
		Name:        name,
		Description: description,
		Parameters:  append(params, extra...),
		Returns:     "number",
	}
}
