// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

package models

// WarningSource identifies which detail source degraded.
type WarningSource string

const (
	WarningSourceComments   WarningSource = "comments"
	WarningSourceSimilarity WarningSource = "similarity"
	WarningSourceSentiment  WarningSource = "sentiment"
)

// Warning is a non-fatal degradation surfaced alongside a detail view. A
// warning means the named source failed and a local fallback was applied; it
// never indicates a failed load.
type Warning struct {
	Source  WarningSource `json:"source"`
	Message string        `json:"message"`
}

// SentimentBreakdown is a normalized percentage view over sentiment-classified
// comment counts. Percentages are each rounded to the nearest integer and sum
// to 100 within rounding error whenever Total > 0; all are 0 when Total == 0.
type SentimentBreakdown struct {
	Positive        int `json:"positive"`
	Negative        int `json:"negative"`
	Neutral         int `json:"neutral"`
	Total           int `json:"total"`
	PositivePercent int `json:"positive_percent"`
	NegativePercent int `json:"negative_percent"`
	NeutralPercent  int `json:"neutral_percent"`
}

// DetailView is the composed per-video view model: the product of the three
// independently fetched detail sources plus the derived sentiment and graph
// shapes. It is replaced wholesale on every accepted load, never patched.
type DetailView struct {
	Video     VideoSummary       `json:"video"`
	Comments  []Comment          `json:"comments"`
	Sentiment SentimentBreakdown `json:"sentiment"`
	Graph     Graph              `json:"graph"`
	Warnings  []Warning          `json:"warnings"`
}
