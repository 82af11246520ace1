package export

import (
	"encoding/csv"
	"fmt"
	"io"
	gomath "math"
	"strconv"

	"github.com/GriffinCanCode/funcsys/internal/providers/math/statistics"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Document is the structured form of a table. Undefined values are nil.
type Document struct {
	RunID     string             `json:"run_id" yaml:"run_id"`
	Precision float64            `json:"precision" yaml:"precision"`
	Columns   []string           `json:"columns" yaml:"columns"`
	Summary   statistics.Summary `json:"summary" yaml:"summary"`
	Samples   []Point            `json:"samples" yaml:"samples"`
}

// Point is one row of a Document
type Point struct {
	X      float64    `json:"x" yaml:"x"`
	Values []*float64 `json:"values" yaml:"values"`
}

// tomlDocument keeps NaN, which TOML can represent.
type tomlDocument struct {
	RunID     string             `toml:"run_id"`
	Precision float64            `toml:"precision"`
	Columns   []string           `toml:"columns"`
	Summary   statistics.Summary `toml:"summary"`
	Samples   []tomlPoint        `toml:"samples"`
}

type tomlPoint struct {
	X      float64   `toml:"x"`
	Values []float64 `toml:"values"`
}

// NewDocument converts a table for JSON or YAML encoding.
func NewDocument(t *Table) Document {
	points := make([]Point, len(t.Samples))
	for i, s := range t.Samples {
		values := make([]*float64, len(s.Values))
		for j, v := range s.Values {
			if !gomath.IsNaN(v) && !gomath.IsInf(v, 0) {
				values[j] = &v
			}
		}
		points[i] = Point{X: s.X, Values: values}
	}
	return Document{
		RunID:     t.RunID,
		Precision: t.Precision,
		Columns:   t.Columns,
		Summary:   t.Summary(),
		Samples:   points,
	}
}

// Write encodes table to w in the given format.
func (e *Exporter) Write(w io.Writer, t *Table, format Format) error {
	var err error
	switch format {
	case FormatCSV:
		err = e.writeCSV(w, t)
	case FormatJSON:
		err = writeJSON(w, t)
	case FormatYAML:
		err = writeYAML(w, t)
	case FormatTOML:
		err = writeTOML(w, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("%s encoding error: %w", format, err)
	}
	return nil
}

func (e *Exporter) writeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = e.separator

	header := append([]string{"X"}, t.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(t.Columns)+1)
	for _, s := range t.Samples {
		record[0] = formatFloat(s.X)
		for i, v := range s.Values {
			record[i+1] = formatFloat(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, t *Table) error {
	return sonic.ConfigDefault.NewEncoder(w).Encode(NewDocument(t))
}

func writeYAML(w io.Writer, t *Table) error {
	data, err := yaml.Marshal(NewDocument(t))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writeTOML(w io.Writer, t *Table) error {
	points := make([]tomlPoint, len(t.Samples))
	for i, s := range t.Samples {
		points[i] = tomlPoint{X: s.X, Values: s.Values}
	}
	return toml.NewEncoder(w).Encode(tomlDocument{
		RunID:     t.RunID,
		Precision: t.Precision,
		Columns:   t.Columns,
		Summary:   t.Summary(),
		Samples:   points,
	})
}

// formatFloat uses the shortest representation that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
