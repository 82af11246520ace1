package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/funcsys/internal/config"
	"github.com/GriffinCanCode/funcsys/internal/infrastructure/logging"
	"github.com/GriffinCanCode/funcsys/internal/providers/math"
)

// newRootCmd builds the command tree. Commands are built fresh per call so
// that flag state never leaks between invocations.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "funcsys",
		Short: "Series-based trigonometric and logarithmic function system",
		Long: `funcsys evaluates sine and natural logarithm by truncated power series,
derives the other trigonometric and logarithmic functions from them and
combines them into one piecewise system function.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().Float64("epsilon", 0, "Series epsilon in (0, 1) (default from SERIES_EPSILON)")
	root.PersistentFlags().Int("iterations", 0, "Series iteration budget (default from SERIES_MAX_ITERATIONS)")
	root.PersistentFlags().Bool("verbose", false, "Log to stderr at debug level")

	root.AddCommand(
		newEvalCmd(),
		newExportCmd(),
		newDemoCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("epsilon") {
		cfg.Series.Epsilon, _ = flags.GetFloat64("epsilon")
	}
	if flags.Changed("iterations") {
		cfg.Series.MaxIterations, _ = flags.GetInt("iterations")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newFamily(cfg *config.Config) (*math.Family, error) {
	series, err := cfg.SeriesConfig()
	if err != nil {
		return nil, err
	}
	return math.NewFamily(series)
}

func newLogger(cmd *cobra.Command) *logging.Logger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return logging.NewDevelopment()
	}
	return logging.NewNop()
}
