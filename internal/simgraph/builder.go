// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

// Package simgraph turns scored similarity listings into renderable weighted
// graphs. The builder is pure data shaping: it never fetches, never fails, and
// degrades to a focus-only graph on empty or malformed input.
package simgraph

import (
	"math"

	"github.com/tomtom215/videographus/internal/models"
)

// maxLabelLen is the visual label budget per node; longer titles are truncated
// with an ellipsis.
const maxLabelLen = 20

// focusLabel is the fixed label for the focus node. The focus node uses a
// fixed visual identity and is never scored or color-banded.
const focusLabel = "Selected Video"

// NodeMeta carries the display attributes of a graph node candidate.
type NodeMeta struct {
	Title        string
	ThumbnailURL string
}

// ScoredItem is one related-video candidate with its backend similarity score.
type ScoredItem struct {
	ID    string
	Meta  NodeMeta
	Score float64
}

// Builder constructs similarity graphs. The zero value is ready to use.
type Builder struct{}

// Build produces the graph view model for a focus video and its scored related
// items. Related items are deduplicated by ID keeping the first occurrence,
// items matching the focus ID are dropped, and remaining items keep their input
// order. Each surviving item contributes one node and one focus-to-item edge.
//
// A nil or empty related list yields a graph containing only the focus node.
func (Builder) Build(focusID string, focusMeta NodeMeta, related []ScoredItem) models.Graph {
	g := models.Graph{
		Nodes: []models.GraphNode{
			{
				ID:       focusID,
				Label:    focusLabel,
				ImageURL: imageOrPlaceholder(focusMeta.ThumbnailURL),
				IsFocus:  true,
			},
		},
		Edges: []models.GraphEdge{},
	}

	seen := map[string]struct{}{focusID: {}}
	for _, item := range related {
		if item.ID == "" {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}

		score := clampScore(item.Score)
		g.Nodes = append(g.Nodes, models.GraphNode{
			ID:       item.ID,
			Label:    truncateLabel(item.Meta.Title),
			ImageURL: imageOrPlaceholder(item.Meta.ThumbnailURL),
		})
		g.Edges = append(g.Edges, models.GraphEdge{
			From:          focusID,
			To:            item.ID,
			Score:         score,
			DisplayWeight: displayWeight(score),
			ColorBand:     colorBand(score),
		})
	}

	return g
}

// FromSimilar adapts an upstream similarity listing into builder input.
func FromSimilar(videos []models.SimilarVideo) []ScoredItem {
	items := make([]ScoredItem, 0, len(videos))
	for _, v := range videos {
		items = append(items, ScoredItem{
			ID: v.ID,
			Meta: NodeMeta{
				Title:        v.Title,
				ThumbnailURL: v.ThumbnailURL,
			},
			Score: v.Score,
		})
	}
	return items
}

// FromSummaries adapts a generic video listing into builder input, assigning
// every item the same nominal score. Used for the trending fallback when the
// similarity source is unavailable.
func FromSummaries(videos []models.VideoSummary, nominalScore float64) []ScoredItem {
	items := make([]ScoredItem, 0, len(videos))
	for _, v := range videos {
		items = append(items, ScoredItem{
			ID: v.ID,
			Meta: NodeMeta{
				Title:        v.Title,
				ThumbnailURL: v.ThumbnailURL,
			},
			Score: nominalScore,
		})
	}
	return items
}

// displayWeight maps a clamped score onto the edge thickness scale used by the
// renderer: 2 + round(score*100/25), i.e. 2..6.
func displayWeight(score float64) int {
	return 2 + int(math.Round(score*100/25))
}

func colorBand(score float64) models.ColorBand {
	switch {
	case score > 0.7:
		return models.ColorBandHigh
	case score > 0.4:
		return models.ColorBandMedium
	default:
		return models.ColorBandLow
	}
}

func clampScore(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func truncateLabel(title string) string {
	runes := []rune(title)
	if len(runes) <= maxLabelLen {
		return title
	}
	return string(runes[:maxLabelLen]) + "..."
}

func imageOrPlaceholder(url string) string {
	if url == "" {
		return models.PlaceholderThumbnail
	}
	return url
}
