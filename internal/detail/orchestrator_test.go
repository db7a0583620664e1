// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

package detail

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tomtom215/videographus/internal/config"
	"github.com/tomtom215/videographus/internal/models"
	"github.com/tomtom215/videographus/internal/sources"
)

// mockSource is a hand-rolled DataSource with per-method stubs.
type mockSource struct {
	mu sync.Mutex

	videoFn    func(ctx context.Context, id string) (models.VideoSummary, error)
	commentsFn func(ctx context.Context, id string) ([]models.Comment, error)
	similarFn  func(ctx context.Context, id string) ([]models.SimilarVideo, error)
	randomFn   func(ctx context.Context) ([]models.VideoSummary, error)

	randomCalls int
}

func (m *mockSource) Video(ctx context.Context, id string) (models.VideoSummary, error) {
	if m.videoFn != nil {
		return m.videoFn(ctx, id)
	}
	return models.VideoSummary{ID: id, Title: "Test Video", CommentCount: 10, PositiveCommentCount: 8}, nil
}

func (m *mockSource) Comments(ctx context.Context, id string) ([]models.Comment, error) {
	if m.commentsFn != nil {
		return m.commentsFn(ctx, id)
	}
	return []models.Comment{{ID: "c1", Text: "great"}}, nil
}

func (m *mockSource) SimilarVideos(ctx context.Context, id string) ([]models.SimilarVideo, error) {
	if m.similarFn != nil {
		return m.similarFn(ctx, id)
	}
	return []models.SimilarVideo{{ID: "sv1", Title: "Related", Score: 0.9}}, nil
}

func (m *mockSource) RandomVideos(ctx context.Context) ([]models.VideoSummary, error) {
	m.mu.Lock()
	m.randomCalls++
	m.mu.Unlock()
	if m.randomFn != nil {
		return m.randomFn(ctx)
	}
	return []models.VideoSummary{{ID: "t1", Title: "Trending One"}, {ID: "t2", Title: "Trending Two"}}, nil
}

func (m *mockSource) SearchVideos(context.Context, string, bool) ([]models.VideoSummary, error) {
	return nil, errors.New("not implemented")
}

func (m *mockSource) Graph(context.Context, string) (models.Graph, error) {
	return models.Graph{}, errors.New("not implemented")
}

func (m *mockSource) AnalyzeYouTube(context.Context, string) (models.VideoSummary, []models.Comment, error) {
	return models.VideoSummary{}, nil, errors.New("not implemented")
}

func testDetailConfig() config.DetailConfig {
	return config.DetailConfig{FallbackScore: 0.5, FallbackLimit: 8}
}

func TestLoadAllSourcesHealthy(t *testing.T) {
	o := NewOrchestrator(&mockSource{}, testDetailConfig())

	view, err := o.Load(context.Background(), "v1", nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if view.Video.ID != "v1" {
		t.Errorf("video id = %q", view.Video.ID)
	}
	if len(view.Comments) != 1 {
		t.Errorf("comments = %d, want 1", len(view.Comments))
	}
	if len(view.Warnings) != 0 {
		t.Errorf("warnings = %+v, want none", view.Warnings)
	}
	// Focus node plus one similar node, one edge with the fetched score.
	if len(view.Graph.Nodes) != 2 || len(view.Graph.Edges) != 1 {
		t.Fatalf("graph = %d nodes %d edges", len(view.Graph.Nodes), len(view.Graph.Edges))
	}
	if view.Graph.Edges[0].Score != 0.9 {
		t.Errorf("edge score = %v, want 0.9", view.Graph.Edges[0].Score)
	}

	if got := o.Current(); got != view {
		t.Error("Current() does not return the accepted view")
	}
}

func TestLoadCommentsFailureDegrades(t *testing.T) {
	src := &mockSource{
		commentsFn: func(context.Context, string) ([]models.Comment, error) {
			return nil, sources.ErrUnavailable
		},
	}
	o := NewOrchestrator(src, testDetailConfig())

	view, err := o.Load(context.Background(), "v1", nil)
	if err != nil {
		t.Fatalf("Load() error: %v, want degraded success", err)
	}

	if view.Comments == nil || len(view.Comments) != 0 {
		t.Errorf("comments = %+v, want empty non-nil", view.Comments)
	}
	if len(view.Warnings) != 1 || view.Warnings[0].Source != models.WarningSourceComments {
		t.Errorf("warnings = %+v, want one comments warning", view.Warnings)
	}
	// The healthy similarity branch must be untouched.
	if len(view.Graph.Edges) != 1 {
		t.Errorf("graph edges = %d, want 1", len(view.Graph.Edges))
	}
}

func TestLoadSimilarityFailureUsesTrendingFallback(t *testing.T) {
	src := &mockSource{
		similarFn: func(context.Context, string) ([]models.SimilarVideo, error) {
			return nil, sources.ErrUnavailable
		},
	}
	o := NewOrchestrator(src, testDetailConfig())

	view, err := o.Load(context.Background(), "v1", nil)
	if err != nil {
		t.Fatalf("Load() error: %v, want degraded success", err)
	}

	if len(view.Warnings) != 1 || view.Warnings[0].Source != models.WarningSourceSimilarity {
		t.Errorf("warnings = %+v, want one similarity warning", view.Warnings)
	}
	if src.randomCalls != 1 {
		t.Errorf("trending fallback called %d times, want 1", src.randomCalls)
	}
	// Two trending items, every fallback edge carries the nominal score.
	if len(view.Graph.Edges) != 2 {
		t.Fatalf("graph edges = %d, want 2", len(view.Graph.Edges))
	}
	for _, e := range view.Graph.Edges {
		if e.Score != 0.5 {
			t.Errorf("fallback edge score = %v, want 0.5", e.Score)
		}
	}
}

func TestLoadSimilarityAndTrendingBothDown(t *testing.T) {
	src := &mockSource{
		similarFn: func(context.Context, string) ([]models.SimilarVideo, error) {
			return nil, sources.ErrUnavailable
		},
		randomFn: func(context.Context) ([]models.VideoSummary, error) {
			return nil, sources.ErrUnavailable
		},
	}
	o := NewOrchestrator(src, testDetailConfig())

	view, err := o.Load(context.Background(), "v1", nil)
	if err != nil {
		t.Fatalf("Load() error: %v, want degraded success", err)
	}

	// Focus-only graph still renders.
	if len(view.Graph.Nodes) != 1 || !view.Graph.Nodes[0].IsFocus {
		t.Errorf("graph nodes = %+v, want focus only", view.Graph.Nodes)
	}
}

func TestLoadFallbackLimitApplied(t *testing.T) {
	src := &mockSource{
		similarFn: func(context.Context, string) ([]models.SimilarVideo, error) {
			return nil, sources.ErrUnavailable
		},
		randomFn: func(context.Context) ([]models.VideoSummary, error) {
			videos := make([]models.VideoSummary, 20)
			for i := range videos {
				videos[i] = models.VideoSummary{ID: string(rune('a' + i)), Title: "Trending"}
			}
			return videos, nil
		},
	}
	o := NewOrchestrator(src, testDetailConfig())

	view, err := o.Load(context.Background(), "v1", nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(view.Graph.Edges) != 8 {
		t.Errorf("fallback edges = %d, want capped at 8", len(view.Graph.Edges))
	}
}

func TestLoadMetadataFailureWithKnownSummary(t *testing.T) {
	src := &mockSource{
		videoFn: func(context.Context, string) (models.VideoSummary, error) {
			return models.VideoSummary{}, sources.ErrUnavailable
		},
	}
	o := NewOrchestrator(src, testDetailConfig())

	known := &models.VideoSummary{ID: "v1", Title: "From Listing", CommentCount: 4, PositiveCommentCount: 3}
	view, err := o.Load(context.Background(), "v1", known)
	if err != nil {
		t.Fatalf("Load() error: %v, want fallback to known summary", err)
	}
	if view.Video.Title != "From Listing" {
		t.Errorf("video title = %q, want known summary", view.Video.Title)
	}
}

func TestLoadMetadataFailureWithoutKnownSummaryFails(t *testing.T) {
	src := &mockSource{
		videoFn: func(context.Context, string) (models.VideoSummary, error) {
			return models.VideoSummary{}, sources.ErrUnavailable
		},
	}
	o := NewOrchestrator(src, testDetailConfig())

	if _, err := o.Load(context.Background(), "v1", nil); err == nil {
		t.Fatal("Load() succeeded, want failure when metadata has no fallback")
	}
	if o.Current() != nil {
		t.Error("Current() non-nil after failed load")
	}
}

func TestLoadEmptyIDRejected(t *testing.T) {
	o := NewOrchestrator(&mockSource{}, testDetailConfig())
	if _, err := o.Load(context.Background(), "", nil); err == nil {
		t.Fatal("Load() accepted empty video id")
	}
}

func TestStaleLoadSuperseded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	src := &mockSource{
		commentsFn: func(ctx context.Context, id string) ([]models.Comment, error) {
			if id == "v1" {
				close(started)
				<-release // hold the first load until the second completes
			}
			return []models.Comment{}, nil
		},
	}
	o := NewOrchestrator(src, testDetailConfig())

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = o.Load(context.Background(), "v1", nil)
	}()
	<-started

	view2, err := o.Load(context.Background(), "v2", nil)
	if err != nil {
		t.Fatalf("second Load() error: %v", err)
	}

	close(release)
	wg.Wait()

	if !errors.Is(firstErr, ErrSuperseded) {
		t.Errorf("first load error = %v, want ErrSuperseded", firstErr)
	}
	if got := o.Current(); got != view2 {
		t.Error("Current() is not the newer view")
	}
}

func TestInvalidateClearsViewAndSupersedes(t *testing.T) {
	o := NewOrchestrator(&mockSource{}, testDetailConfig())

	if _, err := o.Load(context.Background(), "v1", nil); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	o.Invalidate()

	if o.Current() != nil {
		t.Error("Current() non-nil after Invalidate")
	}
}
