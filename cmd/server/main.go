// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/aspectpad/internal/api"
	"github.com/tomtom215/aspectpad/internal/aspect"
	"github.com/tomtom215/aspectpad/internal/config"
	"github.com/tomtom215/aspectpad/internal/fetch"
	"github.com/tomtom215/aspectpad/internal/logging"
	"github.com/tomtom215/aspectpad/internal/pipeline"
	"github.com/tomtom215/aspectpad/internal/storage"
	"github.com/tomtom215/aspectpad/internal/supervisor"
	"github.com/tomtom215/aspectpad/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Default logger until config is available
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCfg := logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	}
	var files *logging.DailyFileWriter
	if cfg.Logging.Dir != "" {
		files, err = logging.NewDailyFileWriter(cfg.Logging.Dir)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open log directory")
		}
		logCfg.Files = files
	}
	logging.Init(logCfg)

	// run must not exit the process; files is closed below
	runErr := run(cfg)
	if runErr != nil {
		logging.Error().Err(runErr).Msg("Server failed")
	} else {
		logging.Info().Msg("Server stopped")
	}

	if files != nil {
		if err := files.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing log file: %v\n", err)
		}
	}
	if runErr != nil {
		os.Exit(1)
	}
}

// run wires the components and blocks until the supervisor tree stops.
func run(cfg *config.Config) error {
	logging.Info().
		Str("upload_dir", cfg.Storage.Dir).
		Str("logs_dir", cfg.Logging.Dir).
		Float64("target_ratio", cfg.Image.TargetRatio).
		Bool("fetch_breaker", cfg.Fetch.BreakerEnabled).
		Bool("trust_proxy_headers", cfg.Server.TrustProxyHeaders).
		Msg("Configuration loaded")

	store, err := storage.New(cfg.Storage)
	if err != nil {
		return fmt.Errorf("initialize artifact store %s: %w", cfg.Storage.Dir, err)
	}

	processor := pipeline.NewProcessor(
		fetch.New(cfg.Fetch),
		aspect.NewPadder(cfg.Image),
		store,
		pipeline.LogObserver{},
		pipeline.MetricsObserver{},
	)

	handler := api.NewHandler(processor, store, cfg.Server)
	router := api.NewRouter(handler, cfg.Server)

	server := &http.Server{
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Bridges zerolog to slog for sutureslog
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddStorageService(services.NewStorageJanitorService(store, cfg.Storage))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within shutdown timeout")
		}
	}
	return nil
}
