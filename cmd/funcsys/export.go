package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/funcsys/internal/client"
	"github.com/GriffinCanCode/funcsys/internal/config"
	"github.com/GriffinCanCode/funcsys/internal/export"
	"github.com/GriffinCanCode/funcsys/internal/providers/math"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/common"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/utilities"
	"github.com/GriffinCanCode/funcsys/internal/shared/types"
)

type exportOptions struct {
	start        float64
	end          float64
	step         float64
	precision    float64
	base         float64
	format       string
	out          string
	intermediate string
	separator    string
	workers      int
	remote       string
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export <function>",
		Short: "Sweep a function over a range and export the samples",
		Long: `Evaluates a function at start, start+step, ... up to end and writes the
samples as CSV, JSON, YAML or TOML. With --out the format follows the file
extension and a trailing .gz compresses the output; relative paths are
resolved against EXPORT_DIR. Without --out the table goes to stdout.`,
		Example: `  funcsys export system --start -3.14159 --end 10 --step 0.1 --out results.csv
  funcsys export system --start 0.1 --end 10 --intermediate ln --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.remote != "" {
				return runRemoteExport(cmd, opts, args[0])
			}
			return runExport(cmd, opts, args[0])
		},
	}
	cmd.Flags().Float64Var(&opts.start, "start", 0, "Range start")
	cmd.Flags().Float64Var(&opts.end, "end", 0, "Range end")
	cmd.Flags().Float64Var(&opts.step, "step", 0, "Range step (default from EXPORT_STEP)")
	cmd.Flags().Float64Var(&opts.precision, "precision", 0, "Per-call precision (default from EXPORT_PRECISION)")
	cmd.Flags().Float64Var(&opts.base, "base", 0, `Logarithm base, used with function "log"`)
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format for stdout: csv, json, yaml, toml (default from EXPORT_FORMAT)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file")
	cmd.Flags().StringVar(&opts.intermediate, "intermediate", "", "Also export this function as a middle column")
	cmd.Flags().StringVar(&opts.separator, "separator", "", "CSV separator (default from EXPORT_SEPARATOR)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Sweep workers (default from EXPORT_WORKERS)")
	cmd.Flags().StringVar(&opts.remote, "remote", "", "Run the sweep on a funcsys server at this URL")
	return cmd
}

// applyExportFlags folds the export flags into cfg and revalidates it.
func applyExportFlags(cfg *config.Config, opts *exportOptions) error {
	if opts.step != 0 {
		cfg.Export.Step = opts.step
	}
	if opts.precision != 0 {
		cfg.Export.Precision = opts.precision
	}
	if opts.format != "" {
		cfg.Export.Format = opts.format
	}
	if opts.separator != "" {
		cfg.Export.Separator = opts.separator
	}
	if opts.workers != 0 {
		cfg.Export.Workers = opts.workers
	}
	return cfg.Validate()
}

func runExport(cmd *cobra.Command, opts *exportOptions, name string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyExportFlags(cfg, opts); err != nil {
		return err
	}
	family, err := newFamily(cfg)
	if err != nil {
		return err
	}

	fn, err := resolveFunction(family, name, opts.base)
	if err != nil {
		return err
	}
	cols := []export.Column{{Name: export.FunctionColumn, Fn: fn}}
	if opts.intermediate != "" {
		inter, err := resolveFunction(family, opts.intermediate, opts.base)
		if err != nil {
			return err
		}
		cols = append([]export.Column{{Name: opts.intermediate, Fn: inter}}, cols...)
	}

	exporter := export.New(
		export.WithSeparator(cfg.SeparatorRune()),
		export.WithWorkers(cfg.Export.Workers),
		export.WithLogger(newLogger(cmd)),
	)
	r := utilities.Range{Start: opts.start, End: opts.end, Step: cfg.Export.Step}
	table, err := exporter.Sweep(cmd.Context(), r, cfg.Export.Precision, cols...)
	if err != nil {
		return err
	}

	if opts.out == "" {
		format, err := export.ParseFormat(cfg.Export.Format)
		if err != nil {
			return err
		}
		return exporter.Write(cmd.OutOrStdout(), table, format)
	}

	path := resolvePath(cfg.Export.Dir, opts.out)
	if err := exporter.WriteFile(path, table); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d samples to %s (run %s)\n", len(table.Samples), path, table.RunID)
	return nil
}

func runRemoteExport(cmd *cobra.Command, opts *exportOptions, name string) error {
	if opts.intermediate != "" || name == "log" {
		return fmt.Errorf("remote export supports family functions only")
	}
	format := opts.format
	if opts.out != "" {
		f, err := export.FormatFromPath(opts.out)
		if err != nil {
			return err
		}
		format = string(f)
	}

	c := client.New(client.DefaultConfig(opts.remote))
	body, err := c.SweepRaw(cmd.Context(), types.SweepRequest{
		Function:  name,
		Start:     opts.start,
		End:       opts.end,
		Step:      opts.step,
		Precision: opts.precision,
		Format:    format,
	})
	if err != nil {
		return err
	}
	if opts.out == "" {
		_, err = cmd.OutOrStdout().Write(body)
		return err
	}
	return writeRaw(opts.out, body)
}

// writeRaw writes an already encoded body, compressing it for .gz paths.
func writeRaw(path string, body []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".gz") {
		if _, err := f.Write(body); err != nil {
			return err
		}
		return f.Close()
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write(body); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return f.Close()
}

func resolveFunction(family *math.Family, name string, base float64) (common.Function, error) {
	if name == "log" {
		log, err := family.Log(base)
		if err != nil {
			return nil, err
		}
		return log, nil
	}
	fn, ok := family.Functions()[name]
	if !ok {
		return nil, fmt.Errorf("unknown function: %s", name)
	}
	return fn, nil
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
