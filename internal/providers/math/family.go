package math

import (
	"fmt"

	"github.com/GriffinCanCode/funcsys/internal/providers/math/advanced"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/common"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/operations"
)

// Family is a consistent set of functions built over one shared sine and
// one shared natural logarithm, so every member sees the same epsilon and
// iteration budget.
type Family struct {
	Sin *operations.Sin
	Cos *operations.Cos
	Sec *operations.Sec
	Csc *operations.Csc
	Tan *operations.Tan
	Cot *operations.Cot

	Ln    *operations.Ln
	Log10 *operations.Log
	Log2  *operations.Log
	Log3  *operations.Log

	System *advanced.System
}

// NewFamily builds the whole function family for cfg.
func NewFamily(cfg common.Config) (*Family, error) {
	sin, err := operations.NewSin(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create sine: %w", err)
	}
	ln, err := operations.NewLn(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create natural logarithm: %w", err)
	}

	f := &Family{Sin: sin, Ln: ln}
	f.Cos = operations.NewCos(sin)
	f.Sec = operations.NewSec(f.Cos)
	f.Csc = operations.NewCsc(sin)
	f.Tan = operations.NewTan(sin, f.Cos)
	f.Cot = operations.NewCot(sin, f.Cos)

	for base, dst := range map[float64]**operations.Log{10: &f.Log10, 2: &f.Log2, 3: &f.Log3} {
		log, err := operations.NewLog(ln, base)
		if err != nil {
			return nil, err
		}
		*dst = log
	}

	f.System = advanced.NewSystem(
		advanced.TrigSet{Cos: f.Cos, Sec: f.Sec, Cot: f.Cot, Tan: f.Tan, Csc: f.Csc},
		advanced.LogSet{Ln: ln, Log10: f.Log10, Log2: f.Log2, Log3: f.Log3},
	)
	return f, nil
}

// DefaultFamily builds the family with common.DefaultConfig.
func DefaultFamily() *Family {
	f, err := NewFamily(common.DefaultConfig())
	if err != nil {
		// DefaultConfig is always valid
		panic(err)
	}
	return f
}

// Config returns the configuration shared by the family's primitives.
func (f *Family) Config() common.Config {
	return f.Sin.Config()
}

// Functions returns the family members keyed by short name.
func (f *Family) Functions() map[string]common.Function {
	return map[string]common.Function{
		"sin":    f.Sin,
		"cos":    f.Cos,
		"sec":    f.Sec,
		"csc":    f.Csc,
		"tan":    f.Tan,
		"cot":    f.Cot,
		"ln":     f.Ln,
		"log10":  f.Log10,
		"log2":   f.Log2,
		"log3":   f.Log3,
		"system": f.System,
	}
}

// Log builds a logarithm to an arbitrary base over the family's ln.
func (f *Family) Log(base float64) (*operations.Log, error) {
	return operations.NewLog(f.Ln, base)
}
