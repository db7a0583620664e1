// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

// Command server runs the video discovery aggregation service: it fronts the
// opaque upstream video API with ranked listings, composed detail views, and
// similarity graphs, under a supervised HTTP server.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/videographus/internal/api"
	"github.com/tomtom215/videographus/internal/config"
	"github.com/tomtom215/videographus/internal/detail"
	"github.com/tomtom215/videographus/internal/logging"
	"github.com/tomtom215/videographus/internal/sources"
	"github.com/tomtom215/videographus/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("upstream", cfg.Upstream.BaseURL).
		Int("port", cfg.Server.Port).
		Msg("starting videographus")

	// Data path: upstream source -> detail orchestrator -> API handlers.
	source := sources.NewHTTPSource(cfg.Upstream, cfg.Breaker, nil)
	orchestrator := detail.NewOrchestrator(source, cfg.Detail)
	handler := api.NewHandler(source, orchestrator, cfg.API)
	router := api.NewRouter(handler, cfg.API)

	// Supervision: sutureslog needs an slog.Logger, bridged to zerolog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.Timeout,
	})
	tree.AddAPIService(supervisor.NewHTTPServerService(cfg.Server, router, cfg.Server.Timeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := tree.ServeBackground(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor stopped with error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Fatal().Err(err).Msg("supervisor terminated unexpectedly")
		}
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, s := range report {
			logging.Warn().Str("service", s.Name).Msg("service did not stop in time")
		}
	}

	logging.Info().Msg("videographus stopped")
}
