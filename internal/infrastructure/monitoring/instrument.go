package monitoring

import (
	gomath "math"
	"time"

	"github.com/GriffinCanCode/funcsys/internal/providers/math/common"
)

type instrumented struct {
	name    string
	fn      common.Function
	metrics *Metrics
}

// Instrument wraps fn so that every evaluation is counted and timed under
// name. A nil metrics returns fn unchanged.
func Instrument(metrics *Metrics, name string, fn common.Function) common.Function {
	if metrics == nil {
		return fn
	}
	return &instrumented{name: name, fn: fn, metrics: metrics}
}

func (i *instrumented) Calculate(x, precision float64) float64 {
	start := time.Now()
	y := i.fn.Calculate(x, precision)
	defined := !gomath.IsNaN(y) && !gomath.IsInf(y, 0)
	i.metrics.RecordEvaluation(i.name, defined, time.Since(start))
	return y
}
