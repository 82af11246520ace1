package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/funcsys/internal/config"
	"github.com/GriffinCanCode/funcsys/internal/infrastructure/logging"
	"github.com/GriffinCanCode/funcsys/internal/infrastructure/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Flags override environment
	flag.StringVar(&cfg.Server.Port, "port", cfg.Server.Port, "Server port")
	flag.StringVar(&cfg.Server.Host, "host", cfg.Server.Host, "Server host")
	flag.Float64Var(&cfg.Series.Epsilon, "epsilon", cfg.Series.Epsilon, "Series epsilon in (0, 1)")
	flag.IntVar(&cfg.Series.MaxIterations, "iterations", cfg.Series.MaxIterations, "Series iteration budget")
	flag.Float64Var(&cfg.Export.Precision, "precision", cfg.Export.Precision, "Default per-call precision")
	flag.BoolVar(&cfg.Logging.Development, "dev", cfg.Logging.Development, "Development mode (console logs, debug level)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logCfg := logging.DefaultConfig()
		logCfg.Level = cfg.Logging.Level
		logger, err = logging.New(logCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("Server error", zap.Error(err))
		srv.Close()
		os.Exit(1)
	}
	srv.Close()
	logger.Info("Server stopped")
}
