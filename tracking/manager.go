/*
   Copyright 2026 The Axisgate Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package tracking

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"axisgate.dev/faultline"
	"axisgate.dev/faultline/apis"
)

// Tunable defaults. All overridable through options (package config surfaces
// them as settings).
const (
	DefaultHistoryCap     = 10000
	DefaultSweepInterval  = 5 * time.Minute
	DefaultStaleAfter     = 1 * time.Hour
	DefaultCorrelationCap = 64
)

// historyTrimRatio is the fill level history is trimmed back to when a sweep
// finds it over capacity.
const historyTrimRatio = 0.8

// correlationKeyLastError is the reserved correlation key the latest error
// summary is stored under.
const correlationKeyLastError = "_faultline_last_error"

// Metadata is the durable summary of one request. It is copied by value
// everywhere; snapshots returned by the manager are safe to retain.
type Metadata struct {
	RequestID     string
	CorrelationID string
	ParentID      string

	// Timestamp is request start; CompletedAt is set by Complete.
	Timestamp   time.Time
	CompletedAt time.Time

	Method    string
	Endpoint  string
	UserAgent string
	ClientIP  string

	Duration      time.Duration
	StatusCode    int
	ErrorOccurred bool
	ErrorCount    int
}

// Entry carries the raw facts of an inbound request. The manager interprets
// them; transports only collect them.
type Entry struct {
	// InboundID is the client-supplied request id candidate, usually from
	// the X-Request-ID header. Adopted only when it passes the conservative
	// shape check, otherwise a fresh id is minted.
	InboundID string

	// CorrelationID and ParentID tie the request into a larger trace.
	CorrelationID string
	ParentID      string

	Method    string
	Path      string
	UserAgent string

	// Client address resolution inputs, in trust order.
	ForwardedFor string
	RealIP       string
	RemoteAddr   string
}

// active wraps metadata with the live correlation store while the request is
// in flight.
type active struct {
	meta        Metadata
	start       time.Time
	correlation map[string]any
}

// Manager owns the active-request map, the completed history and the
// aggregate statistics. Safe for concurrent use.
type Manager struct {
	log apis.Logger

	historyCap     int
	sweepInterval  time.Duration
	staleAfter     time.Duration
	correlationCap int

	seq atomic.Uint64

	mu            sync.Mutex
	actives       map[string]*active
	history       []Metadata
	started       int64
	completed     int64
	errored       int64
	totalDuration time.Duration
	lastActivity  time.Time

	now func() time.Time
}

// Option configures a Manager at construction.
type Option func(*Manager)

// WithLogger supplies the logger for sweep reports and entry faults.
func WithLogger(l apis.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithHistoryCap bounds the completed-history list. Values below 1 are
// ignored.
func WithHistoryCap(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.historyCap = n
		}
	}
}

// WithSweepInterval sets how often Run sweeps stale state.
func WithSweepInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.sweepInterval = d
		}
	}
}

// WithStaleAfter sets the age past which an active context is presumed
// abandoned and swept.
func WithStaleAfter(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.staleAfter = d
		}
	}
}

// WithCorrelationCap bounds per-request correlation entries.
func WithCorrelationCap(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.correlationCap = n
		}
	}
}

// NewManager constructs a Manager with default tuning and applies opts.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		historyCap:     DefaultHistoryCap,
		sweepInterval:  DefaultSweepInterval,
		staleAfter:     DefaultStaleAfter,
		correlationCap: DefaultCorrelationCap,
		actives:        make(map[string]*active),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = apis.NopLogger{}
	}
	return m
}

// Begin performs request entry: resolve or mint the request id, build the
// metadata and register the active context. The returned metadata carries
// the resolved id; transports echo it (and any correlation id) as response
// headers.
//
// Begin never fails. If anything inside entry panics, the request proceeds
// under a minimal UUID-based identity.
func (m *Manager) Begin(e Entry) (meta Metadata) {
	defer func() {
		if r := recover(); r != nil {
			meta = Metadata{
				RequestID: FallbackID(DefaultPrefix),
				Timestamp: time.Now(),
				Method:    e.Method,
				ClientIP:  "unknown",
			}
			m.registerFallback(meta)
		}
	}()

	id := e.InboundID
	if !AcceptableInboundID(id) {
		id = m.GenerateRequestID(DefaultPrefix)
	}

	start := m.now()
	meta = Metadata{
		RequestID:     id,
		CorrelationID: e.CorrelationID,
		ParentID:      e.ParentID,
		Timestamp:     start,
		Method:        e.Method,
		Endpoint:      NormalizeEndpoint(e.Path),
		UserAgent:     e.UserAgent,
		ClientIP:      ClientIP(e.ForwardedFor, e.RealIP, e.RemoteAddr),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.actives[id] = &active{
		meta:        meta,
		start:       start,
		correlation: make(map[string]any),
	}
	m.started++
	m.lastActivity = start
	return meta
}

// registerFallback records the degraded identity so Complete still works.
func (m *Manager) registerFallback(meta Metadata) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actives[meta.RequestID] = &active{
		meta:        meta,
		start:       meta.Timestamp,
		correlation: make(map[string]any),
	}
	m.started++
	m.lastActivity = meta.Timestamp
}

// AddCorrelationData attaches a key/value pair to an active request. No-op
// for unknown ids and once the per-request cap is reached (replacing an
// existing key is always allowed).
func (m *Manager) AddCorrelationData(requestID, key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.actives[requestID]
	if !ok {
		return
	}
	if _, exists := a.correlation[key]; !exists && len(a.correlation) >= m.correlationCap {
		m.log.Warn("correlation store full; entry dropped", apis.Meta{
			"request_id": requestID,
			"key":        key,
		})
		return
	}
	a.correlation[key] = value
}

// GetCorrelationData reads a correlation entry. The second return is false
// for unknown ids and unknown keys alike.
func (m *Manager) GetCorrelationData(requestID, key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.actives[requestID]
	if !ok {
		return nil, false
	}
	v, ok := a.correlation[key]
	return v, ok
}

// MarkRequestError records one error against an active request: bumps the
// error count, sets the flag and stores the latest error summary under a
// reserved correlation key. No-op for unknown ids.
func (m *Manager) MarkRequestError(requestID string, err error) {
	obs := faultline.Observe(err)

	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.actives[requestID]
	if !ok {
		return
	}
	a.meta.ErrorCount++
	a.meta.ErrorOccurred = true
	a.correlation[correlationKeyLastError] = map[string]any{
		"name":      obs.Name,
		"message":   obs.Message,
		"timestamp": m.now(),
	}
}

// Complete finalizes an active request: computes duration, stamps the status
// code, moves the context into history and updates the aggregate counters.
//
// Complete is idempotent per request id; whichever finalization hook fires
// first wins and later calls report false.
func (m *Manager) Complete(requestID string, statusCode int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.actives[requestID]
	if !ok {
		return false
	}
	delete(m.actives, requestID)

	now := m.now()
	a.meta.Duration = now.Sub(a.start)
	a.meta.CompletedAt = now
	a.meta.StatusCode = statusCode

	m.history = append(m.history, a.meta)
	if over := len(m.history) - m.historyCap; over > 0 {
		m.history = append(m.history[:0], m.history[over:]...)
	}

	m.completed++
	if a.meta.ErrorOccurred {
		m.errored++
	}
	m.totalDuration += a.meta.Duration
	m.lastActivity = now
	return true
}

// Stats is a point-in-time aggregate snapshot.
type Stats struct {
	// Started counts all Begin calls; Active is the in-flight count right
	// now; Completed and Errors count finished requests.
	Started   int64
	Active    int
	Completed int64
	Errors    int64

	// AverageDuration is the running mean over all completed requests.
	AverageDuration time.Duration

	// RequestsPerSecond is recomputed from completions within the trailing
	// 60 seconds of history.
	RequestsPerSecond float64

	// LastActivity is the most recent start or completion.
	LastActivity time.Time
}

// Statistics returns the aggregate snapshot.
func (m *Manager) Statistics() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{
		Started:      m.started,
		Active:       len(m.actives),
		Completed:    m.completed,
		Errors:       m.errored,
		LastActivity: m.lastActivity,
	}
	if m.completed > 0 {
		s.AverageDuration = m.totalDuration / time.Duration(m.completed)
	}

	cutoff := m.now().Add(-60 * time.Second)
	recent := 0
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].CompletedAt.Before(cutoff) {
			break
		}
		recent++
	}
	s.RequestsPerSecond = float64(recent) / 60.0
	return s
}

// RecentRequests returns up to n most recent completions, newest first.
func (m *Manager) RecentRequests(n int) []Metadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n <= 0 || n > len(m.history) {
		n = len(m.history)
	}
	out := make([]Metadata, 0, n)
	for i := len(m.history) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.history[i])
	}
	return out
}

// ErrorRequests returns up to n most recent completions that carried errors,
// newest first.
func (m *Manager) ErrorRequests(n int) []Metadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Metadata
	for i := len(m.history) - 1; i >= 0; i-- {
		if !m.history[i].ErrorOccurred {
			continue
		}
		out = append(out, m.history[i])
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

// ClearHistory drops the completed history and its derived counters. Active
// requests and the started counter are untouched.
func (m *Manager) ClearHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = nil
	m.completed = 0
	m.errored = 0
	m.totalDuration = 0
}

// Sweep performs one maintenance pass: evict active contexts older than the
// staleness threshold and trim history back below capacity. Returns the
// number of evicted contexts and trimmed history entries.
func (m *Manager) Sweep() (evicted, trimmed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.staleAfter)
	// snapshot ids first; deleting while ranging a map is legal in Go but
	// the two-phase form keeps the eviction set well-defined
	var stale []string
	for id, a := range m.actives {
		if a.start.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		delete(m.actives, id)
	}
	evicted = len(stale)

	if len(m.history) > m.historyCap {
		target := int(float64(m.historyCap) * historyTrimRatio)
		trimmed = len(m.history) - target
		m.history = append(m.history[:0], m.history[trimmed:]...)
	}

	if evicted > 0 || trimmed > 0 {
		m.log.Info("tracking sweep finished", apis.Meta{
			"evicted": evicted,
			"trimmed": trimmed,
		})
	}
	return evicted, trimmed
}

// Run sweeps periodically until ctx is canceled. Call it on its own
// goroutine:
//
//	go manager.Run(ctx)
func (m *Manager) Run(ctx context.Context) {
	t := time.NewTicker(m.sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}
