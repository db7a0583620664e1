// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

// Package middleware provides the HTTP cross-cutting layers applied around
// every API handler: request-ID propagation, Prometheus instrumentation, and
// response compression. Each middleware wraps an http.HandlerFunc so they
// compose freely in the router.
package middleware
