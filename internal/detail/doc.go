// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

// Package detail composes per-video detail views from three independent
// upstream sources: video metadata, comments, and the similarity listing.
//
// The orchestrator fans the three fetches out concurrently, joins them, and
// degrades per source instead of failing the whole view: a failed comments
// fetch yields an empty comment list plus a warning, a failed similarity
// fetch substitutes a trending-based graph with a nominal score. Only the
// loss of video metadata (with no cached summary to fall back on) fails a
// load outright.
//
// Loads carry a monotonically increasing sequence number. A load that
// finishes after a newer one has been accepted returns ErrSuperseded and is
// never published, so the current view can only ever move forward.
package detail
