// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

// Package ranking orders and filters video listings by their derived
// positivity score and by category predicates.
package ranking

import (
	"sort"
	"strings"

	"github.com/tomtom215/videographus/internal/models"
	"github.com/tomtom215/videographus/internal/sentiment"
)

// CategoryAll is the sentinel category that passes every video unchanged.
const CategoryAll = "all"

// ScoreFunc derives the ranking score of a video. The default is the
// positivity score rule from the sentiment package.
type ScoreFunc func(models.VideoSummary) int

// Rank returns the videos ordered descending by score. The sort is stable:
// ties keep their original relative order. The input slice is not modified.
func Rank(videos []models.VideoSummary, scoreOf ScoreFunc) []models.VideoSummary {
	if scoreOf == nil {
		scoreOf = sentiment.ScoreOf
	}

	ranked := make([]models.VideoSummary, len(videos))
	copy(ranked, videos)

	sort.SliceStable(ranked, func(i, j int) bool {
		return scoreOf(ranked[i]) > scoreOf(ranked[j])
	})

	return ranked
}

// Filter returns the videos whose title or tags contain the category as a
// case-insensitive substring. The CategoryAll sentinel (or an empty category)
// passes every video. Order is preserved.
func Filter(videos []models.VideoSummary, category string) []models.VideoSummary {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == CategoryAll {
		out := make([]models.VideoSummary, len(videos))
		copy(out, videos)
		return out
	}

	out := make([]models.VideoSummary, 0, len(videos))
	for _, v := range videos {
		if matchesCategory(v, category) {
			out = append(out, v)
		}
	}
	return out
}

func matchesCategory(v models.VideoSummary, category string) bool {
	if strings.Contains(strings.ToLower(v.Title), category) {
		return true
	}
	for _, tag := range v.Tags {
		if strings.Contains(strings.ToLower(tag), category) {
			return true
		}
	}
	return false
}

// RankedVideo decorates a summary with its derived score and badge fields for
// the API response.
type RankedVideo struct {
	models.VideoSummary
	PositivityScore int    `json:"positivity_score"`
	HighQuality     bool   `json:"high_quality"`
	ScoreColor      string `json:"score_color"`
}

// Decorate ranks the videos by positivity, optionally filters them by
// category, and attaches the derived score fields to each entry.
func Decorate(videos []models.VideoSummary, category string) []RankedVideo {
	ranked := Rank(Filter(videos, category), nil)

	out := make([]RankedVideo, 0, len(ranked))
	for _, v := range ranked {
		score := sentiment.ScoreOf(v)
		out = append(out, RankedVideo{
			VideoSummary:    v,
			PositivityScore: score,
			HighQuality:     score >= sentiment.HighQualityThreshold,
			ScoreColor:      sentiment.ScoreColor(score),
		})
	}
	return out
}
