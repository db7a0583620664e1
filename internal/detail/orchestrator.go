// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

package detail

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/videographus/internal/config"
	"github.com/tomtom215/videographus/internal/logging"
	"github.com/tomtom215/videographus/internal/metrics"
	"github.com/tomtom215/videographus/internal/models"
	"github.com/tomtom215/videographus/internal/sentiment"
	"github.com/tomtom215/videographus/internal/simgraph"
	"github.com/tomtom215/videographus/internal/sources"
)

// ErrSuperseded is returned when a load completed after a newer load was
// already accepted. The caller must discard the result; no view was published.
var ErrSuperseded = errors.New("detail load superseded by a newer request")

// Orchestrator coordinates the concurrent source fetches behind a detail view
// and owns the single current view. Safe for concurrent use.
type Orchestrator struct {
	source  sources.DataSource
	builder simgraph.Builder

	fallbackScore float64
	fallbackLimit int

	seq atomic.Uint64

	mu      sync.RWMutex
	current *models.DetailView
}

// NewOrchestrator creates an orchestrator reading from source, configured by
// cfg for similarity-fallback behavior.
func NewOrchestrator(source sources.DataSource, cfg config.DetailConfig) *Orchestrator {
	return &Orchestrator{
		source:        source,
		fallbackScore: cfg.FallbackScore,
		fallbackLimit: cfg.FallbackLimit,
	}
}

// Current returns the most recently accepted detail view, or nil when no load
// has succeeded yet.
func (o *Orchestrator) Current() *models.DetailView {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.current
}

// Invalidate clears the current view and bumps the sequence so any in-flight
// load lands superseded. Used when the selection context changes (for example
// a new search) and stale detail must not surface.
func (o *Orchestrator) Invalidate() {
	o.seq.Add(1)
	o.mu.Lock()
	o.current = nil
	o.mu.Unlock()
}

// fetchResult carries one source's outcome across the join point.
type fetchResult[T any] struct {
	value T
	err   error
}

// Load fetches, joins, and composes the detail view for videoID. known, when
// non-nil, is the caller's existing summary for the video (typically from the
// search listing); it backstops a failed metadata fetch.
//
// The returned view is also published as Current unless a newer load was
// accepted first, in which case Load returns ErrSuperseded.
func (o *Orchestrator) Load(ctx context.Context, videoID string, known *models.VideoSummary) (*models.DetailView, error) {
	if videoID == "" {
		return nil, fmt.Errorf("load detail: empty video id")
	}

	seq := o.seq.Add(1)
	start := time.Now()

	view, err := o.compose(ctx, videoID, known)
	duration := time.Since(start)

	if err != nil {
		metrics.DetailLoadsTotal.WithLabelValues("failed").Inc()
		logging.Ctx(ctx).Error().
			Str("video_id", videoID).
			Dur("duration", duration).
			Err(err).
			Msg("detail load failed")
		return nil, err
	}

	if !o.publish(seq, view) {
		metrics.DetailLoadsTotal.WithLabelValues("superseded").Inc()
		logging.Ctx(ctx).Debug().
			Str("video_id", videoID).
			Uint64("seq", seq).
			Msg("detail load superseded")
		return nil, ErrSuperseded
	}

	outcome := "ok"
	if len(view.Warnings) > 0 {
		outcome = "degraded"
	}
	metrics.DetailLoadsTotal.WithLabelValues(outcome).Inc()
	metrics.DetailLoadDuration.Observe(duration.Seconds())

	logging.Ctx(ctx).Info().
		Str("video_id", videoID).
		Dur("duration", duration).
		Int("comments", len(view.Comments)).
		Int("graph_nodes", len(view.Graph.Nodes)).
		Int("warnings", len(view.Warnings)).
		Msg("detail load complete")

	return view, nil
}

// compose runs the three source fetches concurrently and assembles the view.
func (o *Orchestrator) compose(ctx context.Context, videoID string, known *models.VideoSummary) (*models.DetailView, error) {
	var (
		wg          sync.WaitGroup
		videoRes    fetchResult[models.VideoSummary]
		commentsRes fetchResult[[]models.Comment]
		similarRes  fetchResult[[]models.SimilarVideo]
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		videoRes.value, videoRes.err = o.source.Video(ctx, videoID)
	}()
	go func() {
		defer wg.Done()
		commentsRes.value, commentsRes.err = o.source.Comments(ctx, videoID)
	}()
	go func() {
		defer wg.Done()
		similarRes.value, similarRes.err = o.source.SimilarVideos(ctx, videoID)
	}()
	wg.Wait()

	view := &models.DetailView{Warnings: []models.Warning{}}

	video, err := o.resolveVideo(videoRes, known, videoID)
	if err != nil {
		return nil, err
	}
	view.Video = video
	view.Sentiment = sentiment.Aggregate(
		video.PositiveCommentCount,
		video.NegativeCommentCount,
		video.NeutralCommentCount,
	)

	view.Comments = o.resolveComments(ctx, commentsRes, view)
	view.Graph = o.resolveGraph(ctx, similarRes, video, view)

	return view, nil
}

// resolveVideo picks the fetched summary, falling back to the caller's known
// summary when the metadata fetch failed. With neither, the load fails.
func (o *Orchestrator) resolveVideo(res fetchResult[models.VideoSummary], known *models.VideoSummary, videoID string) (models.VideoSummary, error) {
	if res.err == nil {
		return res.value, nil
	}
	if known != nil {
		v := *known
		v.Normalize()
		return v, nil
	}
	return models.VideoSummary{}, fmt.Errorf("load detail %s: metadata unavailable: %w", videoID, res.err)
}

// resolveComments applies the comments fallback: on failure the view gets an
// empty list and a warning instead of an error.
func (o *Orchestrator) resolveComments(ctx context.Context, res fetchResult[[]models.Comment], view *models.DetailView) []models.Comment {
	if res.err == nil {
		if res.value == nil {
			return []models.Comment{}
		}
		return res.value
	}

	metrics.DetailSourceFallbacks.WithLabelValues(string(models.WarningSourceComments)).Inc()
	view.Warnings = append(view.Warnings, models.Warning{
		Source:  models.WarningSourceComments,
		Message: "comments are temporarily unavailable",
	})
	logging.Ctx(ctx).Warn().
		Err(res.err).
		Msg("comments source failed, serving empty list")

	return []models.Comment{}
}

// resolveGraph builds the similarity graph, substituting a trending-based
// fallback graph when the similarity source failed.
func (o *Orchestrator) resolveGraph(ctx context.Context, res fetchResult[[]models.SimilarVideo], video models.VideoSummary, view *models.DetailView) models.Graph {
	focus := simgraph.NodeMeta{Title: video.Title, ThumbnailURL: video.ThumbnailURL}

	if res.err == nil {
		return o.builder.Build(video.ID, focus, simgraph.FromSimilar(res.value))
	}

	metrics.DetailSourceFallbacks.WithLabelValues(string(models.WarningSourceSimilarity)).Inc()
	view.Warnings = append(view.Warnings, models.Warning{
		Source:  models.WarningSourceSimilarity,
		Message: "similarity data unavailable, showing trending videos instead",
	})
	logging.Ctx(ctx).Warn().
		Err(res.err).
		Msg("similarity source failed, building trending fallback graph")

	trending, err := o.source.RandomVideos(ctx)
	if err != nil {
		// Fallback source is down too. A focus-only graph still renders.
		logging.Ctx(ctx).Warn().
			Err(err).
			Msg("trending fallback unavailable, serving focus-only graph")
		return o.builder.Build(video.ID, focus, nil)
	}

	if o.fallbackLimit > 0 && len(trending) > o.fallbackLimit {
		trending = trending[:o.fallbackLimit]
	}
	return o.builder.Build(video.ID, focus, simgraph.FromSummaries(trending, o.fallbackScore))
}

// publish installs view as the current view iff no newer load has been
// accepted since seq was issued. Reports whether the view was accepted.
func (o *Orchestrator) publish(seq uint64, view *models.DetailView) bool {
	if seq != o.seq.Load() {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if seq != o.seq.Load() {
		return false
	}
	o.current = view
	return true
}
