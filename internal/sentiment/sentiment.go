// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

// Package sentiment normalizes raw sentiment-classified comment counts into
// comparable percentage breakdowns and derives the positivity score used for
// ranking and quality badges.
//
// Two related but distinct rules live here:
//
//   - Aggregate: percentage share of each sentiment bucket over the bucket
//     total (positive+negative+neutral).
//   - PositivityScore: positive comments over ALL comments on the video.
//
// The second is the canonical ranking rule. The two are not interchangeable;
// a video can have a high bucket share of positive sentiment while most of its
// comments were never classified.
package sentiment

import (
	"math"

	"github.com/tomtom215/videographus/internal/models"
)

// HighQualityThreshold is the positivity score at or above which a video is
// flagged high quality. Downstream badge rendering and ranking assertions
// depend on this exact value.
const HighQualityThreshold = 70

// Aggregate turns raw positive/negative/neutral counts into a normalized
// breakdown. Negative inputs are treated as 0. A zero total yields all-zero
// percentages rather than a division error.
func Aggregate(positive, negative, neutral int) models.SentimentBreakdown {
	positive = max(positive, 0)
	negative = max(negative, 0)
	neutral = max(neutral, 0)

	b := models.SentimentBreakdown{
		Positive: positive,
		Negative: negative,
		Neutral:  neutral,
		Total:    positive + negative + neutral,
	}

	if b.Total == 0 {
		return b
	}

	b.PositivePercent = percent(positive, b.Total)
	b.NegativePercent = percent(negative, b.Total)
	b.NeutralPercent = percent(neutral, b.Total)
	return b
}

// PositivityScore returns round(positive/total*100), or 0 when the video has
// no comments. Inputs below zero are clamped.
func PositivityScore(positive, total int) int {
	if total <= 0 {
		return 0
	}
	positive = max(positive, 0)
	if positive > total {
		positive = total
	}
	return percent(positive, total)
}

// ScoreOf derives the positivity score of a video summary from its comment
// counters.
func ScoreOf(v models.VideoSummary) int {
	return PositivityScore(v.PositiveCommentCount, v.CommentCount)
}

// IsHighQuality reports whether a video's positivity score meets the badge
// threshold.
func IsHighQuality(v models.VideoSummary) bool {
	return ScoreOf(v) >= HighQualityThreshold
}

// ScoreColor buckets a positivity score into the meter color used by the UI:
// green at or above the quality threshold, amber at 50+, red below.
func ScoreColor(score int) string {
	switch {
	case score >= HighQualityThreshold:
		return "green"
	case score >= 50:
		return "amber"
	default:
		return "red"
	}
}

func percent(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}
