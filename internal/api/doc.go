// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

// Package api provides the HTTP surface of the aggregation service: Chi
// routing, request validation, the standardized response envelope, and the
// handlers that bridge HTTP to the discovery, ranking, and detail layers.
//
// All endpoints respond with the APIResponse envelope so clients handle
// success and error payloads uniformly. Degraded detail loads are still
// successes; their warnings ride inside the data payload.
package api
