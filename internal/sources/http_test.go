// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/videographus/internal/config"
	"github.com/tomtom215/videographus/internal/models"
)

func testUpstreamConfig(baseURL string) config.UpstreamConfig {
	return config.UpstreamConfig{
		BaseURL:   baseURL,
		Timeout:   5 * time.Second,
		RateLimit: 1000,
		RateBurst: 1000,
	}
}

func testBreakerConfig() config.BreakerConfig {
	return config.BreakerConfig{
		MinRequests:  10,
		FailureRatio: 0.6,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
	}
}

func newTestSource(t *testing.T, handler http.Handler) *HTTPSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPSource(testUpstreamConfig(server.URL), testBreakerConfig(), server.Client())
}

func TestVideoFetchesAndNormalizes(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos/abc123/" {
			t.Errorf("path = %q, want /videos/abc123/", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", r.Method)
		}
		_ = json.NewEncoder(w).Encode(videoResponse{
			Video: models.VideoSummary{
				ID:                   "abc123",
				Title:                "Go Tutorial",
				CommentCount:         10,
				PositiveCommentCount: 12, // over count, must be capped
			},
		})
	}))

	video, err := src.Video(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Video() error: %v", err)
	}
	if video.ID != "abc123" {
		t.Errorf("video id = %q", video.ID)
	}
	if video.PositiveCommentCount != 10 {
		t.Errorf("positive count = %d, want capped to 10", video.PositiveCommentCount)
	}
	if video.ThumbnailURL != models.PlaceholderThumbnail {
		t.Errorf("thumbnail = %q, want placeholder", video.ThumbnailURL)
	}
}

func TestVideoNotFound(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := src.Video(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestServerErrorMapsToUnavailable(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := src.RandomVideos(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestSearchVideosSendsPrompt(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos/" || r.Method != http.MethodPost {
			t.Errorf("got %s %s, want POST /videos/", r.Method, r.URL.Path)
		}

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Prompt != "machine learning" {
			t.Errorf("prompt = %q", req.Prompt)
		}
		if !req.QuickMode {
			t.Error("quick_mode not forwarded")
		}

		_ = json.NewEncoder(w).Encode(videosResponse{
			Videos: []models.VideoSummary{
				{ID: "v1", Title: "ML Intro", CommentCount: 5, PositiveCommentCount: 4},
			},
		})
	}))

	videos, err := src.SearchVideos(context.Background(), "machine learning", true)
	if err != nil {
		t.Fatalf("SearchVideos() error: %v", err)
	}
	if len(videos) != 1 || videos[0].ID != "v1" {
		t.Fatalf("videos = %+v", videos)
	}
}

func TestCommentsNilBecomesEmpty(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"comments": null}`))
	}))

	comments, err := src.Comments(context.Background(), "v1")
	if err != nil {
		t.Fatalf("Comments() error: %v", err)
	}
	if comments == nil {
		t.Error("comments is nil, want empty slice")
	}
	if len(comments) != 0 {
		t.Errorf("comments = %+v, want empty", comments)
	}
}

func TestSimilarVideos(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos/v1/similar/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(similarResponse{
			SimilarVideos: []models.SimilarVideo{
				{ID: "v2", Title: "Related", Score: 0.83},
			},
		})
	}))

	similar, err := src.SimilarVideos(context.Background(), "v1")
	if err != nil {
		t.Fatalf("SimilarVideos() error: %v", err)
	}
	if len(similar) != 1 || similar[0].Score != 0.83 {
		t.Fatalf("similar = %+v", similar)
	}
}

func TestAnalyzeYouTube(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze-youtube/" || r.Method != http.MethodPost {
			t.Errorf("got %s %s, want POST /analyze-youtube/", r.Method, r.URL.Path)
		}

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.URL != "https://youtube.com/watch?v=xyz" {
			t.Errorf("url = %q", req.URL)
		}

		_ = json.NewEncoder(w).Encode(analyzeResponse{
			Video: models.VideoSummary{ID: "xyz", Title: "Analyzed"},
		})
	}))

	video, comments, err := src.AnalyzeYouTube(context.Background(), "https://youtube.com/watch?v=xyz")
	if err != nil {
		t.Fatalf("AnalyzeYouTube() error: %v", err)
	}
	if video.ID != "xyz" {
		t.Errorf("video id = %q", video.ID)
	}
	if comments == nil {
		t.Error("comments is nil, want empty slice")
	}
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	ctx := context.Background()
	for i := 0; i < 15; i++ {
		_, _ = src.RandomVideos(ctx)
	}

	// Breaker should now be open; error must still map to ErrUnavailable and
	// the server should not be hit.
	_, err := src.RandomVideos(ctx)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable after breaker opens", err)
	}
}

func TestContextCancellation(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.RandomVideos(ctx)
	if err == nil {
		t.Error("expected error from cancelled context")
	}
}
