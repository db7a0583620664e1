// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

// Package config defines the application configuration and its layered
// loading: struct defaults, optional YAML file, environment variables.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root configuration for Videographus.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Upstream UpstreamConfig `koanf:"upstream"`
	Search   SearchConfig   `koanf:"search"`
	Detail   DetailConfig   `koanf:"detail"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// UpstreamConfig configures the opaque video backend the service aggregates.
type UpstreamConfig struct {
	// BaseURL is the root of the upstream video API, e.g.
	// "http://127.0.0.1:8000/api".
	BaseURL string `koanf:"base_url"`

	// Timeout bounds a single upstream request.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the sustained outbound requests-per-second budget toward
	// the upstream; RateBurst is the burst allowance. Aggregation fans out
	// several requests per user action, so the client enforces this itself
	// rather than trusting callers to pace.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`
}

// SearchConfig configures the debounced search coordinator.
type SearchConfig struct {
	// DebounceWindow is the quiet period after the last keystroke before a
	// query is issued.
	DebounceWindow time.Duration `koanf:"debounce_window"`
}

// DetailConfig configures the detail-view orchestrator.
type DetailConfig struct {
	// FallbackScore is the nominal similarity assigned to trending items when
	// the similarity source is unavailable.
	FallbackScore float64 `koanf:"fallback_score"`

	// FallbackLimit caps how many trending items the fallback graph uses.
	FallbackLimit int `koanf:"fallback_limit"`
}

// BreakerConfig configures the per-source circuit breakers on the upstream
// client.
type BreakerConfig struct {
	// MinRequests is the minimum observed requests before the failure ratio
	// is considered statistically meaningful.
	MinRequests uint32 `koanf:"min_requests"`

	// FailureRatio at or above which the breaker opens.
	FailureRatio float64 `koanf:"failure_ratio"`

	// Interval resets the closed-state counts; Timeout is the open-state
	// duration before probing half-open.
	Interval time.Duration `koanf:"interval"`
	Timeout  time.Duration `koanf:"timeout"`
}

// APIConfig configures the HTTP API surface.
type APIConfig struct {
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	MaxPageSize     int           `koanf:"max_page_size"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for values that cannot work at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	if _, err := url.Parse(c.Upstream.BaseURL); err != nil {
		return fmt.Errorf("upstream.base_url invalid: %w", err)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive")
	}
	if c.Upstream.RateLimit <= 0 {
		return fmt.Errorf("upstream.rate_limit must be positive")
	}
	if c.Search.DebounceWindow <= 0 {
		return fmt.Errorf("search.debounce_window must be positive")
	}
	if c.Detail.FallbackScore < 0 || c.Detail.FallbackScore > 1 {
		return fmt.Errorf("detail.fallback_score %v outside [0,1]", c.Detail.FallbackScore)
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("breaker.failure_ratio %v outside (0,1]", c.Breaker.FailureRatio)
	}
	return nil
}
