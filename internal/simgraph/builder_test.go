// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

package simgraph

import (
	"strings"
	"testing"

	"github.com/tomtom215/videographus/internal/models"
)

func item(id, title string, score float64) ScoredItem {
	return ScoredItem{ID: id, Meta: NodeMeta{Title: title, ThumbnailURL: "https://img/" + id}, Score: score}
}

func TestBuildEmptyRelated(t *testing.T) {
	var b Builder

	for _, related := range [][]ScoredItem{nil, {}} {
		g := b.Build("X", NodeMeta{Title: "Focus"}, related)

		if len(g.Nodes) != 1 {
			t.Fatalf("got %d nodes, want 1", len(g.Nodes))
		}
		if len(g.Edges) != 0 {
			t.Fatalf("got %d edges, want 0", len(g.Edges))
		}
		if !g.Nodes[0].IsFocus || g.Nodes[0].ID != "X" {
			t.Errorf("focus node = %+v", g.Nodes[0])
		}
	}
}

func TestBuildExactlyOneFocusNode(t *testing.T) {
	var b Builder
	g := b.Build("X", NodeMeta{}, []ScoredItem{item("a", "A", 0.9), item("b", "B", 0.2)})

	focusCount := 0
	for _, n := range g.Nodes {
		if n.IsFocus {
			focusCount++
		}
	}
	if focusCount != 1 {
		t.Errorf("got %d focus nodes, want 1", focusCount)
	}
}

func TestBuildDropsSelfAndDuplicates(t *testing.T) {
	var b Builder
	g := b.Build("X", NodeMeta{}, []ScoredItem{
		item("X", "Self", 0.9),
		item("a", "First A", 0.8),
		item("a", "Second A", 0.1),
		item("b", "B", 0.5),
		{ID: "", Score: 0.5},
	})

	if len(g.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3 (focus + a + b)", len(g.Nodes))
	}
	if len(g.Edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(g.Edges))
	}

	for _, e := range g.Edges {
		if e.From == e.To {
			t.Errorf("self edge emitted: %+v", e)
		}
	}

	// First occurrence wins, input order preserved.
	if g.Nodes[1].ID != "a" || g.Nodes[1].Label != "First A" {
		t.Errorf("node[1] = %+v, want first occurrence of a", g.Nodes[1])
	}
	if g.Nodes[2].ID != "b" {
		t.Errorf("node[2] = %+v, want b", g.Nodes[2])
	}
}

func TestBuildColorBands(t *testing.T) {
	tests := []struct {
		score float64
		want  models.ColorBand
	}{
		{0.75, models.ColorBandHigh},
		{0.71, models.ColorBandHigh},
		{0.7, models.ColorBandMedium},
		{0.5, models.ColorBandMedium},
		{0.41, models.ColorBandMedium},
		{0.4, models.ColorBandLow},
		{0.3, models.ColorBandLow},
		{0, models.ColorBandLow},
	}

	var b Builder
	for _, tt := range tests {
		g := b.Build("X", NodeMeta{}, []ScoredItem{item("a", "A", tt.score)})
		if got := g.Edges[0].ColorBand; got != tt.want {
			t.Errorf("score %.2f: color band = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestBuildDisplayWeight(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{0, 2},
		{0.25, 3},
		{0.5, 4},
		{0.75, 5},
		{1.0, 6},
		{2.5, 6},  // clamped to 1
		{-0.3, 2}, // clamped to 0
	}

	var b Builder
	for _, tt := range tests {
		g := b.Build("X", NodeMeta{}, []ScoredItem{item("a", "A", tt.score)})
		if got := g.Edges[0].DisplayWeight; got != tt.want {
			t.Errorf("score %.2f: display weight = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestBuildScoreClamped(t *testing.T) {
	var b Builder
	g := b.Build("X", NodeMeta{}, []ScoredItem{item("a", "A", 1.7), item("b", "B", -2)})

	if g.Edges[0].Score != 1 {
		t.Errorf("score = %v, want clamped to 1", g.Edges[0].Score)
	}
	if g.Edges[1].Score != 0 {
		t.Errorf("score = %v, want clamped to 0", g.Edges[1].Score)
	}
}

func TestBuildLabelTruncation(t *testing.T) {
	long := "A title that is definitely longer than twenty characters"

	var b Builder
	g := b.Build("X", NodeMeta{}, []ScoredItem{item("a", long, 0.5)})

	label := g.Nodes[1].Label
	if !strings.HasSuffix(label, "...") {
		t.Errorf("label %q not truncated with ellipsis", label)
	}
	if got := len([]rune(label)); got != maxLabelLen+3 {
		t.Errorf("label length = %d, want %d", got, maxLabelLen+3)
	}

	g = b.Build("X", NodeMeta{}, []ScoredItem{item("a", "Short", 0.5)})
	if g.Nodes[1].Label != "Short" {
		t.Errorf("short label altered: %q", g.Nodes[1].Label)
	}
}

func TestBuildPlaceholderThumbnail(t *testing.T) {
	var b Builder
	g := b.Build("X", NodeMeta{}, []ScoredItem{{ID: "a", Meta: NodeMeta{Title: "A"}, Score: 0.5}})

	if g.Nodes[0].ImageURL != models.PlaceholderThumbnail {
		t.Errorf("focus image = %q, want placeholder", g.Nodes[0].ImageURL)
	}
	if g.Nodes[1].ImageURL != models.PlaceholderThumbnail {
		t.Errorf("related image = %q, want placeholder", g.Nodes[1].ImageURL)
	}
}

func TestFromSummariesNominalScore(t *testing.T) {
	items := FromSummaries([]models.VideoSummary{
		{ID: "t1", Title: "Trending 1"},
		{ID: "t2", Title: "Trending 2"},
	}, 0.5)

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	for _, it := range items {
		if it.Score != 0.5 {
			t.Errorf("item %s score = %v, want 0.5", it.ID, it.Score)
		}
	}
}
