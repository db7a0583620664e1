// Videographus - Video Discovery Aggregation and Similarity Graphs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/videographus

// Package search debounces free-text query input and tags every issued query
// with a monotonic sequence number so slow responses can be recognized as
// stale and dropped.
package search

import (
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/videographus/internal/logging"
	"github.com/tomtom215/videographus/internal/metrics"
	"github.com/tomtom215/videographus/internal/models"
)

// Clock abstracts timer creation so the quiet window can be driven manually
// in tests.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// Timer is the stoppable handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// realClock delegates to the time package.
type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
func (realClock) Now() time.Time                            { return time.Now() }

// Handler receives each query that survives the quiet window. Empty query
// text means the trending/random listing should be shown instead of a search.
type Handler func(q models.SearchQuery)

// Debouncer coalesces rapid text changes into single queries. Each text
// change restarts the quiet window; only the text standing when the window
// elapses becomes a query. Safe for concurrent use.
type Debouncer struct {
	clock   Clock
	window  time.Duration
	handler Handler

	mu      sync.Mutex
	timer   Timer
	pending string
	seq     uint64
	gen     uint64
	stopped bool
}

// NewDebouncer creates a debouncer issuing queries to handler after window of
// input silence. A nil clock selects the real time implementation.
func NewDebouncer(window time.Duration, handler Handler, clock Clock) *Debouncer {
	if clock == nil {
		clock = realClock{}
	}
	return &Debouncer{
		clock:   clock,
		window:  window,
		handler: handler,
	}
}

// Submit records a text change and restarts the quiet window. Text is
// trimmed; submitting whitespace is equivalent to clearing the input.
func (d *Debouncer) Submit(text string) {
	metrics.SearchSubmitsTotal.Inc()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending = strings.TrimSpace(text)

	// Bumping the generation invalidates any timer callback already in
	// flight: Stop cannot help once the timer has fired.
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.window, func() { d.fire(gen) })
}

// fire issues the pending text as a query once the window has elapsed
// without further submissions. Callbacks from superseded windows carry a
// stale generation and do nothing.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.seq++
	q := models.SearchQuery{
		Text:     d.pending,
		Seq:      d.seq,
		IssuedAt: d.clock.Now(),
	}
	d.timer = nil
	handler := d.handler
	d.mu.Unlock()

	kind := "search"
	if q.Text == "" {
		kind = "trending"
	}
	metrics.SearchQueriesIssued.WithLabelValues(kind).Inc()

	logging.Debug().
		Uint64("seq", q.Seq).
		Str("kind", kind).
		Msg("issuing debounced query")

	if handler != nil {
		handler(q)
	}
}

// Accept reports whether a response for the query with sequence seq may be
// applied. Only the most recently issued query's response wins; anything
// older is stale and must be discarded.
func (d *Debouncer) Accept(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if seq != d.seq {
		metrics.SearchStaleResponses.Inc()
		logging.Debug().
			Uint64("seq", seq).
			Uint64("latest", d.seq).
			Msg("discarding stale search response")
		return false
	}
	return true
}

// Flush issues any pending text immediately, bypassing the remaining window.
// Used for explicit submit actions (pressing enter).
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.fire(gen)
}

// Stop cancels any pending window and rejects further submissions.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
