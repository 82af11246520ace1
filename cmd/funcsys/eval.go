package main

import (
	"context"
	"fmt"
	"io"
	gomath "math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/funcsys/internal/client"
	"github.com/GriffinCanCode/funcsys/internal/providers/math/common"
)

type evalOptions struct {
	base      float64
	precision float64
	remote    string
}

func newEvalCmd() *cobra.Command {
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval <function> <x>...",
		Short: "Evaluate a function at one or more points",
		Long: `Evaluates a function of the family (sin, cos, sec, csc, tan, cot, ln,
log10, log2, log3, system) or "log" with --base. Undefined results print
as "undefined". Put "--" before negative arguments.`,
		Example: `  funcsys eval system -- -1 0.5 2
  funcsys eval log --base 5 25
  funcsys eval sin 1 --remote http://localhost:8000`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs := make([]float64, 0, len(args)-1)
			for _, arg := range args[1:] {
				x, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid x %q: %w", arg, err)
				}
				xs = append(xs, x)
			}
			if opts.remote != "" {
				return runRemoteEval(cmd.Context(), cmd.OutOrStdout(), opts, args[0], xs)
			}
			return runEval(cmd, opts, args[0], xs)
		},
	}
	cmd.Flags().Float64Var(&opts.base, "base", 0, `Logarithm base, used with function "log"`)
	cmd.Flags().Float64Var(&opts.precision, "precision", 0, "Per-call precision (default from EXPORT_PRECISION)")
	cmd.Flags().StringVar(&opts.remote, "remote", "", "Evaluate on a funcsys server at this URL")
	return cmd
}

func runEval(cmd *cobra.Command, opts *evalOptions, name string, xs []float64) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
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

	precision := opts.precision
	if precision == 0 {
		precision = cfg.Export.Precision
	}
	for _, x := range xs {
		printResult(cmd.OutOrStdout(), name, x, fn.Calculate(x, precision))
	}
	return nil
}

func runRemoteEval(ctx context.Context, w io.Writer, opts *evalOptions, name string, xs []float64) error {
	c := client.New(client.DefaultConfig(opts.remote))
	for _, x := range xs {
		var (
			eval *client.Evaluation
			err  error
		)
		if name == "log" {
			eval, err = c.EvaluateLog(ctx, opts.base, x, opts.precision)
		} else {
			eval, err = c.Evaluate(ctx, name, x, opts.precision)
		}
		if err != nil {
			return err
		}
		y := common.NaN()
		if eval.Result != nil {
			y = *eval.Result
		}
		printResult(w, name, x, y)
	}
	return nil
}

func printResult(w io.Writer, name string, x, y float64) {
	result := "undefined"
	if !gomath.IsNaN(y) && !gomath.IsInf(y, 0) {
		result = strconv.FormatFloat(y, 'g', -1, 64)
	}
	fmt.Fprintf(w, "%s(%s) = %s\n", name, strconv.FormatFloat(x, 'g', -1, 64), result)
}
