package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GriffinCanCode/funcsys/internal/infrastructure/logging"
	"github.com/GriffinCanCode/funcsys/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/common"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/utilities"
	"github.com/GriffinCanCode/funcsys/internal/shared/id"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Column header of the exported function
const FunctionColumn = "f(X)"

// DefaultWorkers bounds concurrent chunk evaluation
const DefaultWorkers = 4

var ErrNoColumns = errors.New("sweep needs at least one column")

// Exporter sweeps functions over ranges and encodes the results
type Exporter struct {
	separator rune
	workers   int
	logger    *logging.Logger
	metrics   *monitoring.Metrics
}

// Option configures an Exporter
type Option func(*Exporter)

// WithSeparator sets the CSV field separator
func WithSeparator(sep rune) Option {
	return func(e *Exporter) {
		e.separator = sep
	}
}

// WithWorkers sets the number of concurrent sweep workers
func WithWorkers(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records sweeps in metrics
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(e *Exporter) {
		e.metrics = metrics
	}
}

// New creates an exporter. The default separator is a comma.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		separator: ',',
		workers:   DefaultWorkers,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Separator returns the CSV field separator
func (e *Exporter) Separator() rune {
	return e.separator
}

// SetSeparator changes the CSV field separator
func (e *Exporter) SetSeparator(sep rune) {
	e.separator = sep
}

// Sweep evaluates every column at every grid point of r.
func (e *Exporter) Sweep(ctx context.Context, r utilities.Range, precision float64, cols ...Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}

	var timer *monitoring.Timer
	if e.metrics != nil {
		timer = monitoring.NewTimer(e.metrics, cols[len(cols)-1].label())
	}

	start := time.Now()
	points, err := r.Points()
	if err != nil {
		timer.Stop("error", 0)
		return nil, err
	}

	samples := make([]Sample, len(points))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	size := chunkSize(len(points), e.workers)
	for lo := 0; lo < len(points); lo += size {
		hi := min(lo+size, len(points))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				samples[i] = evaluate(points[i], precision, cols)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		timer.Stop("canceled", 0)
		return nil, fmt.Errorf("sweep interrupted: %w", err)
	}

	table := &Table{
		RunID:     id.NewRunID().String(),
		Range:     r,
		Precision: precision,
		Columns:   columnNames(cols),
		Samples:   samples,
	}
	timer.Stop("success", len(samples))

	e.logger.Debug("Sweep completed",
		zap.String("run_id", table.RunID),
		zap.String("function", table.Columns[len(table.Columns)-1]),
		zap.Int("points", len(samples)),
		zap.Duration("duration", time.Since(start)))

	return table, nil
}

// Stream evaluates fn along r in grid order and hands each sample to emit.
// It stops at the first emit error or when ctx is done.
func (e *Exporter) Stream(ctx context.Context, r utilities.Range, precision float64, fn common.Function, emit func(Sample) error) (int, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	n := r.Count()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		x := r.At(i)
		if err := emit(Sample{X: x, Values: []float64{fn.Calculate(x, precision)}}); err != nil {
			return i, err
		}
	}
	return n, nil
}

// ExportFunction writes fn as CSV with header "X,f(X)".
func (e *Exporter) ExportFunction(ctx context.Context, w io.Writer, fn common.Function, r utilities.Range, precision float64) error {
	return e.export(ctx, w, r, precision, Column{Name: FunctionColumn, Fn: fn})
}

// ExportWithIntermediate writes fn as CSV alongside an intermediate
// function, with header "X,<name>,f(X)".
func (e *Exporter) ExportWithIntermediate(ctx context.Context, w io.Writer, fn common.Function, name string, intermediate common.Function, r utilities.Range, precision float64) error {
	return e.export(ctx, w, r, precision,
		Column{Name: name, Fn: intermediate},
		Column{Name: FunctionColumn, Fn: fn},
	)
}

// ExportModule writes a named function as CSV with header "X,<name>(X)".
func (e *Exporter) ExportModule(ctx context.Context, w io.Writer, name string, module common.Function, r utilities.Range, precision float64) error {
	return e.export(ctx, w, r, precision, Column{Name: name + "(X)", Fn: module})
}

func (e *Exporter) export(ctx context.Context, w io.Writer, r utilities.Range, precision float64, cols ...Column) error {
	table, err := e.Sweep(ctx, r, precision, cols...)
	if err != nil {
		return err
	}
	return e.Write(w, table, FormatCSV)
}

// WriteFile encodes table into path, creating parent directories. The
// format is taken from the extension; a .gz suffix compresses the output.
func (e *Exporter) WriteFile(path string, table *Table) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}

	if err := e.Write(w, table, format); err != nil {
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("failed to finish gzip stream: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	e.logger.Info("Export written",
		zap.String("run_id", table.RunID),
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("points", len(table.Samples)))
	return nil
}

func evaluate(x, precision float64, cols []Column) Sample {
	values := make([]float64, len(cols))
	for i, col := range cols {
		values[i] = col.Fn.Calculate(x, precision)
	}
	return Sample{X: x, Values: values}
}

func columnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	return names
}

// chunkSize splits n points into roughly four chunks per worker.
func chunkSize(n, workers int) int {
	size := n / (workers * 4)
	if size < 1 {
		return 1
	}
	return size
}
