package advanced

import (
	gomath "math"

	"github.com/GriffinCanCode/funcsys/internal/providers/math/common"
	"github.com/GriffinCanCode/funcsys/internal/shared/types"
)

// TrigSet holds the trigonometric collaborators of the x <= 0 branch.
type TrigSet struct {
	Cos common.Function
	Sec common.Function
	Cot common.Function
	Tan common.Function
	Csc common.Function
}

// LogSet holds the logarithmic collaborators of the x > 0 branch.
type LogSet struct {
	Ln    common.Function
	Log10 common.Function
	Log2  common.Function
	Log3  common.Function
}

// System is the piecewise composite function:
//
//	x <= 0: ((cos³(x)·sec(x))² + cot(x)·(tan(x)+csc(x)) - csc²(x)) - sec(x)/cot²(x)
//	x > 0:  ((log10(x) - ln(x)) / (log2(x)/log3(x)))²
//
// The positive branch is the reduced form of an expression that multiplies
// and then divides by log10(x); the two factors cancel and are not evaluated.
type System struct {
	trig TrigSet
	logs LogSet
}

// NewSystem creates the composite over the given collaborators.
func NewSystem(trig TrigSet, logs LogSet) *System {
	return &System{trig: trig, logs: logs}
}

// Calculate dispatches on the sign of x. It never panics: a fault inside
// either branch yields NaN.
func (s *System) Calculate(x, precision float64) float64 {
	if x <= 0 {
		return s.trigonometric(x, precision)
	}
	return s.logarithmic(x, precision)
}

func (s *System) trigonometric(x, precision float64) (result float64) {
	defer recoverNaN(&result)

	cos := s.trig.Cos.Calculate(x, precision)
	sec := s.trig.Sec.Calculate(x, precision)
	cot := s.trig.Cot.Calculate(x, precision)
	tan := s.trig.Tan.Calculate(x, precision)
	csc := s.trig.Csc.Calculate(x, precision)

	if common.AnyNaN(cos, sec, cot, tan, csc) {
		return common.NaN()
	}

	head := gomath.Pow(gomath.Pow(cos, 3)*sec, 2)
	mid := cot*(tan+csc) - csc*csc
	// cot == 0 is not masked; IEEE division yields ±Inf or NaN.
	tail := sec / gomath.Pow(cot, 2)

	return head + mid - tail
}

func (s *System) logarithmic(x, precision float64) (result float64) {
	defer recoverNaN(&result)

	log10 := s.logs.Log10.Calculate(x, precision)
	ln := s.logs.Ln.Calculate(x, precision)
	log2 := s.logs.Log2.Calculate(x, precision)
	log3 := s.logs.Log3.Calculate(x, precision)

	if common.AnyNaN(log10, ln, log2, log3) {
		return common.NaN()
	}
	if gomath.Abs(log2) < precision || gomath.Abs(log3) < precision {
		return common.NaN()
	}

	return gomath.Pow((log10-ln)/(log2/log3), 2)
}

func recoverNaN(result *float64) {
	if r := recover(); r != nil {
		*result = common.NaN()
	}
}

// SystemTools returns the composite tool definition
func SystemTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "math.system",
			Name:        "Function System",
			Description: "Piecewise system: trigonometric formula for x <= 0, logarithmic formula for x > 0",
			Parameters: []types.Parameter{
				{Name: "x", Type: "number", Description: "Argument", Required: true},
				{Name: "precision", Type: "number", Description: "Per-call tolerance in (0, 1)", Required: false},
			},
			Returns: "number",
		},
	}
}
