// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

// Package sources provides the pluggable data-source boundary to the opaque
// upstream video API. The core never sees transport details; it consumes the
// DataSource interface and receives well-typed, normalized values.
package sources

import (
	"context"
	"errors"

	"github.com/tomtom215/videographus/internal/models"
)

// Source names used in logs, metrics, and breaker identities.
const (
	SourceRandom   = "random"
	SourceSearch   = "search"
	SourceVideo    = "video"
	SourceComments = "comments"
	SourceSimilar  = "similar"
	SourceGraph    = "graph"
	SourceAnalyze  = "analyze"
)

// Common source errors.
var (
	// ErrNotFound indicates the upstream has no record for the requested ID.
	ErrNotFound = errors.New("upstream resource not found")

	// ErrUnavailable indicates the source is currently unusable (transport
	// failure, bad status, or open circuit breaker).
	ErrUnavailable = errors.New("upstream source unavailable")
)

// DataSource is the fetch capability injected into the aggregation core.
// Implementations must be safe for concurrent use: the detail orchestrator
// issues several calls at once.
type DataSource interface {
	// Video fetches the summary record for a single video.
	Video(ctx context.Context, id string) (models.VideoSummary, error)

	// RandomVideos fetches the trending/random listing.
	RandomVideos(ctx context.Context) ([]models.VideoSummary, error)

	// SearchVideos runs a prompt search. quickMode requests the upstream's
	// cheaper, lower-recall search path.
	SearchVideos(ctx context.Context, prompt string, quickMode bool) ([]models.VideoSummary, error)

	// Comments fetches the comment list for a video.
	Comments(ctx context.Context, id string) ([]models.Comment, error)

	// SimilarVideos fetches the scored similarity listing for a video.
	SimilarVideos(ctx context.Context, id string) ([]models.SimilarVideo, error)

	// Graph fetches the upstream's prebuilt relationship graph for a video.
	Graph(ctx context.Context, id string) (models.Graph, error)

	// AnalyzeYouTube submits a raw YouTube URL for analysis and returns the
	// analyzed video plus its classified comments.
	AnalyzeYouTube(ctx context.Context, url string) (models.VideoSummary, []models.Comment, error)
}
