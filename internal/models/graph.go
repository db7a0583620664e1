// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

package models

// ColorBand is the coarse three-level bucket derived from a continuous
// similarity score, used for visual edge weighting in the rendered graph.
type ColorBand string

const (
	ColorBandHigh   ColorBand = "high"   // score > 0.7
	ColorBandMedium ColorBand = "medium" // 0.4 < score <= 0.7
	ColorBandLow    ColorBand = "low"    // score <= 0.4
)

// GraphNode is a renderable node of the similarity graph. Exactly one node per
// graph has IsFocus set; it represents the currently selected video and uses a
// fixed visual identity rather than a score-derived one.
type GraphNode struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	ImageURL string `json:"image"`
	IsFocus  bool   `json:"is_focus"`
}

// GraphEdge is a renderable focus-to-related edge. DisplayWeight is the visual
// thickness derived from the similarity score.
type GraphEdge struct {
	From          string    `json:"from"`
	To            string    `json:"to"`
	Score         float64   `json:"score"`
	DisplayWeight int       `json:"display_weight"`
	ColorBand     ColorBand `json:"color_band"`
}

// Graph is the complete view model handed to the rendering layer.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// FocusNode returns the focus node of the graph, or nil if the graph is empty.
func (g *Graph) FocusNode() *GraphNode {
	for i := range g.Nodes {
		if g.Nodes[i].IsFocus {
			return &g.Nodes[i]
		}
	}
	return nil
}
