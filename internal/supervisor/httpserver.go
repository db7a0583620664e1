// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/tomtom215/videographus/internal/config"
	"github.com/tomtom215/videographus/internal/logging"
)

// HTTPServerService runs an http.Server under supervision. Serve blocks until
// the context is canceled, then shuts the server down gracefully.
type HTTPServerService struct {
	addr            string
	handler         http.Handler
	shutdownTimeout time.Duration
}

// NewHTTPServerService creates a supervised HTTP server service.
func NewHTTPServerService(cfg config.ServerConfig, handler http.Handler, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		addr:            net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port)),
		handler:         handler,
		shutdownTimeout: shutdownTimeout,
	}
}

// Serve implements suture.Service.
func (s *HTTPServerService) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", s.addr).Msg("http server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logging.Warn().Err(err).Msg("http server shutdown incomplete")
			return err
		}
		logging.Info().Msg("http server stopped")
		return ctx.Err()

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}

// String names the service in supervisor logs.
func (s *HTTPServerService) String() string {
	return "http-server(" + s.addr + ")"
}
