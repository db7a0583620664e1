// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

// Package models holds the shared data types exchanged between the upstream
// source layer, the aggregation core, and the API surface: video summaries,
// comments, similarity listings, graphs, and the composed detail view.
//
// JSON tags on these types are wire contracts on both sides: they match the
// upstream API's field names and are served to clients unchanged.
package models
