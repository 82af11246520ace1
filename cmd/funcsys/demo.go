package main

import (
	"fmt"
	gomath "math"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/funcsys/internal/export"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/utilities"
)

// demoExport is one file written by the demo.
type demoExport struct {
	file  string
	start float64
	end   float64
}

var demoExports = []demoExport{
	{file: "negative_function_results.csv", start: -gomath.Pi, end: -0.1},
	{file: "positive_function_results.csv", start: 0.1, end: 10},
	{file: "all_function_results.csv", start: -gomath.Pi, end: 10},
}

var demoPoints = []float64{-gomath.Pi, -1, -0.5, 0, 0.5, 1, 2}

func newDemoCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Export the system function over its branches and print sample values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Export.Dir
			}
			family, err := newFamily(cfg)
			if err != nil {
				return err
			}

			exporter := export.New(
				export.WithSeparator(cfg.SeparatorRune()),
				export.WithWorkers(cfg.Export.Workers),
				export.WithLogger(newLogger(cmd)),
			)
			out := cmd.OutOrStdout()
			precision := cfg.Export.Precision

			fmt.Fprintln(out, "Exported files:")
			for _, e := range demoExports {
				r := utilities.Range{Start: e.start, End: e.end, Step: cfg.Export.Step}
				table, err := exporter.Sweep(cmd.Context(), r, precision,
					export.Column{Name: export.FunctionColumn, Fn: family.System})
				if err != nil {
					return err
				}
				path := filepath.Join(dir, e.file)
				if err := exporter.WriteFile(path, table); err != nil {
					return err
				}
				fmt.Fprintf(out, "  %s\n", path)
			}

			fmt.Fprintln(out, "Sample values:")
			for _, x := range demoPoints {
				fmt.Fprintf(out, "  f(%.4f) = %.8f\n", x, family.System.Calculate(x, precision))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default from EXPORT_DIR)")
	return cmd
}
