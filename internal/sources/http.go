// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

package sources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/videographus/internal/config"
	"github.com/tomtom215/videographus/internal/logging"
	"github.com/tomtom215/videographus/internal/metrics"
	"github.com/tomtom215/videographus/internal/models"
)

// HTTPSource implements DataSource against the upstream video API over HTTP.
// It owns outbound pacing (rate limiter) and per-source circuit breakers;
// callers just issue logical fetches.
type HTTPSource struct {
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
	breakers map[string]*gobreaker.CircuitBreaker[any]
}

// NewHTTPSource creates an upstream client. If httpClient is nil a client
// bounded by cfg.Timeout is used.
func NewHTTPSource(cfg config.UpstreamConfig, breakerCfg config.BreakerConfig, httpClient *http.Client) *HTTPSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	breakers := make(map[string]*gobreaker.CircuitBreaker[any])
	for _, name := range []string{SourceRandom, SourceSearch, SourceVideo, SourceComments, SourceSimilar, SourceGraph, SourceAnalyze} {
		breakers[name] = newBreaker(name, breakerCfg)
	}

	return &HTTPSource{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		client:   httpClient,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		breakers: breakers,
	}
}

// videosResponse matches {videos: [...]} returned by the listing endpoints.
type videosResponse struct {
	Videos []models.VideoSummary `json:"videos"`
}

// videoResponse matches {video: {...}} returned by the single-video endpoint.
type videoResponse struct {
	Video models.VideoSummary `json:"video"`
}

// commentsResponse matches {comments: [...]}.
type commentsResponse struct {
	Comments []models.Comment `json:"comments"`
}

// similarResponse matches {similar_videos: [...]}.
type similarResponse struct {
	SimilarVideos []models.SimilarVideo `json:"similar_videos"`
}

// analyzeResponse matches {video: {...}, comments: [...]}.
type analyzeResponse struct {
	Video    models.VideoSummary `json:"video"`
	Comments []models.Comment    `json:"comments"`
}

// searchRequest is the body of POST /videos.
type searchRequest struct {
	Prompt    string `json:"prompt"`
	QuickMode bool   `json:"quick_mode,omitempty"`
}

// analyzeRequest is the body of POST /analyze-youtube.
type analyzeRequest struct {
	URL string `json:"url"`
}

// Video fetches the summary record for a single video.
func (s *HTTPSource) Video(ctx context.Context, id string) (models.VideoSummary, error) {
	var out videoResponse
	path := fmt.Sprintf("/videos/%s/", url.PathEscape(id))
	if err := s.getJSON(ctx, SourceVideo, path, &out); err != nil {
		return models.VideoSummary{}, err
	}
	out.Video.Normalize()
	return out.Video, nil
}

// RandomVideos fetches the trending/random listing.
func (s *HTTPSource) RandomVideos(ctx context.Context) ([]models.VideoSummary, error) {
	var out videosResponse
	if err := s.getJSON(ctx, SourceRandom, "/videos/random/", &out); err != nil {
		return nil, err
	}
	return normalizeAll(out.Videos), nil
}

// SearchVideos runs a prompt search against the upstream.
func (s *HTTPSource) SearchVideos(ctx context.Context, prompt string, quickMode bool) ([]models.VideoSummary, error) {
	var out videosResponse
	if err := s.postJSON(ctx, SourceSearch, "/videos/", searchRequest{Prompt: prompt, QuickMode: quickMode}, &out); err != nil {
		return nil, err
	}
	return normalizeAll(out.Videos), nil
}

// Comments fetches the comment list for a video.
func (s *HTTPSource) Comments(ctx context.Context, id string) ([]models.Comment, error) {
	var out commentsResponse
	path := fmt.Sprintf("/videos/%s/comments/", url.PathEscape(id))
	if err := s.getJSON(ctx, SourceComments, path, &out); err != nil {
		return nil, err
	}
	if out.Comments == nil {
		out.Comments = []models.Comment{}
	}
	return out.Comments, nil
}

// SimilarVideos fetches the scored similarity listing for a video.
func (s *HTTPSource) SimilarVideos(ctx context.Context, id string) ([]models.SimilarVideo, error) {
	var out similarResponse
	path := fmt.Sprintf("/videos/%s/similar/", url.PathEscape(id))
	if err := s.getJSON(ctx, SourceSimilar, path, &out); err != nil {
		return nil, err
	}
	return out.SimilarVideos, nil
}

// Graph fetches the upstream's prebuilt relationship graph for a video.
func (s *HTTPSource) Graph(ctx context.Context, id string) (models.Graph, error) {
	var out models.Graph
	path := fmt.Sprintf("/videos/%s/graph/", url.PathEscape(id))
	if err := s.getJSON(ctx, SourceGraph, path, &out); err != nil {
		return models.Graph{}, err
	}
	return out, nil
}

// AnalyzeYouTube submits a raw YouTube URL for analysis.
func (s *HTTPSource) AnalyzeYouTube(ctx context.Context, rawURL string) (models.VideoSummary, []models.Comment, error) {
	var out analyzeResponse
	if err := s.postJSON(ctx, SourceAnalyze, "/analyze-youtube/", analyzeRequest{URL: rawURL}, &out); err != nil {
		return models.VideoSummary{}, nil, err
	}
	out.Video.Normalize()
	if out.Comments == nil {
		out.Comments = []models.Comment{}
	}
	return out.Video, out.Comments, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, source, path string, out any) error {
	return s.roundTrip(ctx, source, http.MethodGet, path, nil, out)
}

func (s *HTTPSource) postJSON(ctx context.Context, source, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", source, err)
	}
	return s.roundTrip(ctx, source, http.MethodPost, path, payload, out)
}

// roundTrip performs one paced, breaker-protected request and decodes the
// response into out.
func (s *HTTPSource) roundTrip(ctx context.Context, source, method, path string, body []byte, out any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	_, err := s.breakers[source].Execute(func() (any, error) {
		return nil, s.doRequest(ctx, method, path, body, out)
	})
	s.observe(source, start, err)

	if err != nil {
		if isBreakerRejection(err) {
			return fmt.Errorf("%s: circuit open: %w", source, ErrUnavailable)
		}
		return err
	}
	return nil
}

func (s *HTTPSource) doRequest(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, ErrUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// observe records metrics and logs for one completed upstream call.
func (s *HTTPSource) observe(source string, start time.Time, err error) {
	duration := time.Since(start)

	errorType := ""
	switch {
	case err == nil:
	case isBreakerRejection(err):
		errorType = "rejected"
	case strings.Contains(err.Error(), "decode"):
		errorType = "decode"
	case strings.Contains(err.Error(), "status"):
		errorType = "status"
	default:
		errorType = "transport"
	}
	metrics.RecordUpstreamRequest(source, duration, errorType)

	if err != nil {
		logging.Warn().
			Str("source", source).
			Dur("duration", duration).
			Err(err).
			Msg("upstream request failed")
	}
}

func normalizeAll(videos []models.VideoSummary) []models.VideoSummary {
	for i := range videos {
		videos[i].Normalize()
	}
	return videos
}
