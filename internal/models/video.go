// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

package models

import "time"

// PlaceholderThumbnail is substituted when an upstream record carries no
// thumbnail URL, so the view layer never has to special-case missing images.
const PlaceholderThumbnail = "https://via.placeholder.com/300x170?text=No+Thumbnail"

// VideoSummary is the list-level representation of a video as returned by the
// upstream discovery API. Unknown counters default to 0, never negative.
type VideoSummary struct {
	ID                   string   `json:"video_id"`
	Title                string   `json:"title"`
	ThumbnailURL         string   `json:"thumbnail"`
	EmbeddedLink         string   `json:"embedded_link,omitempty"`
	Tags                 []string `json:"tags,omitempty"`
	ViewCount            int64    `json:"views"`
	LikeCount            int64    `json:"likes"`
	CommentCount         int      `json:"comments_count"`
	PositiveCommentCount int      `json:"positive_comments_count"`
	NegativeCommentCount int      `json:"negative_comments_count"`
	NeutralCommentCount  int      `json:"neutral_comments_count"`
}

// Normalize clamps counter fields so the invariants documented above hold even
// when the upstream returns malformed values. PositiveCommentCount is capped at
// CommentCount when both are known.
func (v *VideoSummary) Normalize() {
	if v.ViewCount < 0 {
		v.ViewCount = 0
	}
	if v.LikeCount < 0 {
		v.LikeCount = 0
	}
	if v.CommentCount < 0 {
		v.CommentCount = 0
	}
	if v.PositiveCommentCount < 0 {
		v.PositiveCommentCount = 0
	}
	if v.NegativeCommentCount < 0 {
		v.NegativeCommentCount = 0
	}
	if v.NeutralCommentCount < 0 {
		v.NeutralCommentCount = 0
	}
	if v.CommentCount > 0 && v.PositiveCommentCount > v.CommentCount {
		v.PositiveCommentCount = v.CommentCount
	}
	if v.ThumbnailURL == "" {
		v.ThumbnailURL = PlaceholderThumbnail
	}
}

// Comment is a single upstream comment attached to a video.
type Comment struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
	Sentiment   string    `json:"sentiment,omitempty"`
}

// SimilarVideo is one entry of the upstream similarity listing. Score is an
// opaque value produced by the backend; consumers clamp it into [0,1].
type SimilarVideo struct {
	ID           string  `json:"video_id"`
	Title        string  `json:"title"`
	ThumbnailURL string  `json:"thumbnail"`
	ViewCount    int64   `json:"views"`
	LikeCount    int64   `json:"likes"`
	Score        float64 `json:"similarity_score"`
}

// SearchQuery is an immutable record of one issued search. Seq is the
// monotonically increasing identity used for stale-response suppression: only
// the response whose query carries the highest sequence seen so far may be
// applied to the view.
type SearchQuery struct {
	Text     string    `json:"text"`
	Seq      uint64    `json:"seq"`
	IssuedAt time.Time `json:"issued_at"`
}
