// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/videographus/internal/config"
	"github.com/tomtom215/videographus/internal/detail"
	"github.com/tomtom215/videographus/internal/logging"
	"github.com/tomtom215/videographus/internal/models"
	"github.com/tomtom215/videographus/internal/ranking"
	"github.com/tomtom215/videographus/internal/sentiment"
	"github.com/tomtom215/videographus/internal/simgraph"
	"github.com/tomtom215/videographus/internal/sources"
)

// Handler bridges HTTP to the discovery, ranking, and detail layers.
type Handler struct {
	source       sources.DataSource
	orchestrator *detail.Orchestrator
	cfg          config.APIConfig
}

// NewHandler creates the API handler set.
func NewHandler(source sources.DataSource, orchestrator *detail.Orchestrator, cfg config.APIConfig) *Handler {
	return &Handler{
		source:       source,
		orchestrator: orchestrator,
		cfg:          cfg,
	}
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
}

// RandomVideos handles GET /api/v1/videos/random: the trending listing,
// ranked by positivity score.
func (h *Handler) RandomVideos(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	videos, err := h.source.RandomVideos(r.Context())
	if err != nil {
		rw.ExternalServiceError(sources.SourceRandom, err)
		return
	}

	ranked := h.capPage(ranking.Decorate(videos, ""))
	rw.SuccessWithCount(ranked, len(ranked))
}

// SearchVideos handles POST /api/v1/videos/search. An empty prompt falls
// through to the trending listing; a category narrows the result set before
// ranking.
func (h *Handler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SearchVideosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid JSON body")
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	var (
		videos []models.VideoSummary
		err    error
	)
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		videos, err = h.source.RandomVideos(r.Context())
	} else {
		videos, err = h.source.SearchVideos(r.Context(), prompt, req.QuickMode)
	}
	if err != nil {
		rw.ExternalServiceError(sources.SourceSearch, err)
		return
	}

	ranked := h.capPage(ranking.Decorate(videos, req.Category))
	rw.SuccessWithCount(ranked, len(ranked))
}

// VideoDetail handles GET /api/v1/videos/{id}/detail: the composed view over
// metadata, comments, sentiment, and the similarity graph. Degraded loads
// succeed with warnings in the payload.
func (h *Handler) VideoDetail(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	videoID := chi.URLParam(r, "id")

	view, err := h.orchestrator.Load(r.Context(), videoID, nil)
	switch {
	case err == nil:
		rw.Success(view)
	case errors.Is(err, detail.ErrSuperseded):
		rw.ServiceUnavailable("detail load superseded by a newer request")
	case errors.Is(err, sources.ErrNotFound):
		rw.NotFound("video not found")
	default:
		rw.ExternalServiceError(sources.SourceVideo, err)
	}
}

// VideoGraph handles GET /api/v1/videos/{id}/graph. The upstream's prebuilt
// graph is preferred; when it is unavailable the graph is built locally from
// the similarity listing.
func (h *Handler) VideoGraph(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	videoID := chi.URLParam(r, "id")

	graph, err := h.source.Graph(r.Context(), videoID)
	if err == nil {
		rw.Success(graph)
		return
	}
	if errors.Is(err, sources.ErrNotFound) {
		rw.NotFound("video not found")
		return
	}

	logging.Ctx(r.Context()).Warn().
		Str("video_id", videoID).
		Err(err).
		Msg("upstream graph unavailable, building locally")

	graph, err = h.buildLocalGraph(r, videoID)
	switch {
	case err == nil:
		rw.Success(graph)
	case errors.Is(err, sources.ErrNotFound):
		rw.NotFound("video not found")
	default:
		rw.ExternalServiceError(sources.SourceGraph, err)
	}
}

// Analyze handles POST /api/v1/analyze: submits a raw YouTube URL and returns
// the analyzed video with its sentiment breakdown and classified comments.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid JSON body")
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	video, comments, err := h.source.AnalyzeYouTube(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, sources.ErrNotFound) {
			rw.NotFound("video not found")
			return
		}
		rw.ExternalServiceError(sources.SourceAnalyze, err)
		return
	}

	rw.Success(analyzeResult{
		Video: video,
		Sentiment: sentiment.Aggregate(
			video.PositiveCommentCount,
			video.NegativeCommentCount,
			video.NeutralCommentCount,
		),
		PositivityScore: sentiment.ScoreOf(video),
		Comments:        comments,
	})
}

// analyzeResult is the payload of a successful analyze call.
type analyzeResult struct {
	Video           models.VideoSummary       `json:"video"`
	Sentiment       models.SentimentBreakdown `json:"sentiment"`
	PositivityScore int                       `json:"positivity_score"`
	Comments        []models.Comment          `json:"comments"`
}

// buildLocalGraph reconstructs the similarity graph from the similarity
// listing when the upstream graph endpoint is down.
func (h *Handler) buildLocalGraph(r *http.Request, videoID string) (models.Graph, error) {
	similar, err := h.source.SimilarVideos(r.Context(), videoID)
	if err != nil {
		return models.Graph{}, err
	}

	// Focus metadata is best effort; the graph renders without it.
	var focus simgraph.NodeMeta
	if video, err := h.source.Video(r.Context(), videoID); err == nil {
		focus = simgraph.NodeMeta{Title: video.Title, ThumbnailURL: video.ThumbnailURL}
	}

	var builder simgraph.Builder
	return builder.Build(videoID, focus, simgraph.FromSimilar(similar)), nil
}

// capPage bounds listing responses to the configured page size.
func (h *Handler) capPage(videos []ranking.RankedVideo) []ranking.RankedVideo {
	if h.cfg.MaxPageSize > 0 && len(videos) > h.cfg.MaxPageSize {
		return videos[:h.cfg.MaxPageSize]
	}
	return videos
}
