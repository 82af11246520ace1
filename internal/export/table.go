package export

import (
	"github.com/GriffinCanCode/funcsys/internal/providers/math/common"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/statistics"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/utilities"
)

// Column is one evaluated quantity of a sweep. Label names the column in
// metrics and defaults to Name.
type Column struct {
	Name  string
	Label string
	Fn    common.Function
}

func (c Column) label() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

// Sample holds the column values at one grid point
type Sample struct {
	X      float64
	Values []float64
}

// Table is the result of a sweep. Samples are in grid order.
type Table struct {
	RunID     string
	Range     utilities.Range
	Precision float64
	Columns   []string
	Samples   []Sample
}

// Values returns column i across all samples.
func (t *Table) Values(i int) []float64 {
	values := make([]float64, len(t.Samples))
	for j, s := range t.Samples {
		values[j] = s.Values[i]
	}
	return values
}

// Summary describes the last column, the function being exported.
func (t *Table) Summary() statistics.Summary {
	if len(t.Columns) == 0 {
		return statistics.Summary{}
	}
	return statistics.Summarize(t.Values(len(t.Columns) - 1))
}
