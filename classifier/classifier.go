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

package classifier

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"axisgate.dev/faultline"
	"axisgate.dev/faultline/apis"
	"axisgate.dev/faultline/category"
	"axisgate.dev/faultline/internal/window"
)

// Backoff parameters for rate-limit retry suggestions:
//
//	delay = backoffBase * 2^retryCount + random(0, backoffJitter)
//
// The shift is capped so a hostile retry count cannot overflow the delay.
const (
	backoffBase     = 1000 * time.Millisecond
	backoffJitter   = 1000 * time.Millisecond
	backoffMaxShift = 10
)

// DefaultWindowSize is the number of processing-time samples kept for the
// rolling average. The value is inherited from the gateway's historical
// tuning; override it with WithWindowSize if profiling says otherwise.
const DefaultWindowSize = 100

// Pattern source tiers, reported by Explain.
const (
	sourceCustom     = "custom"
	sourceDefault    = "default"
	sourceRegistered = "registered"
	sourceFallback   = "fallback"
)

// Classifier maps errors to classifications using an ordered pattern list
// and keeps rolling statistics about everything it classified.
//
// A Classifier is safe for concurrent use. Each instance owns its pattern
// list and counters exclusively; create separate instances for isolated
// tests instead of sharing a global.
type Classifier struct {
	mu       sync.Mutex
	patterns []Pattern
	sources  []string // parallel to patterns: custom | default | registered

	settings apis.Settings
	log      apis.Logger

	windowSize int
	samples    *window.Window[int64] // processing time, nanoseconds
	total      int64
	retryable  int64
	byCategory map[category.Category]int64
	bySeverity map[category.Severity]int64
	last       time.Time

	// test seams; production uses time.Now and math/rand/v2
	now    func() time.Time
	jitter func() time.Duration
}

// New constructs a Classifier with the built-in default patterns and applies
// the provided options. Patterns added via WithPattern are inserted AHEAD of
// the defaults and therefore take precedence for any error they match.
func New(opts ...Option) *Classifier {
	b := &builder{windowSize: DefaultWindowSize}
	for _, opt := range opts {
		opt(b)
	}

	c := &Classifier{
		settings:   b.settings,
		log:        b.log,
		windowSize: b.windowSize,
		samples:    window.New[int64](b.windowSize),
		byCategory: make(map[category.Category]int64),
		bySeverity: make(map[category.Severity]int64),
		now:        time.Now,
		jitter: func() time.Duration {
			return time.Duration(rand.Int64N(int64(backoffJitter)))
		},
	}
	if c.settings == nil {
		c.settings = apis.StaticSettings{}
	}
	if c.log == nil {
		c.log = apis.NopLogger{}
	}

	for _, p := range b.front {
		c.patterns = append(c.patterns, p)
		c.sources = append(c.sources, sourceCustom)
	}
	for _, p := range defaultPatterns() {
		c.patterns = append(c.patterns, p)
		c.sources = append(c.sources, sourceDefault)
	}
	return c
}

// RegisterPattern appends a pattern to the END of the list: it is consulted
// only after the custom and default patterns. To take precedence over the
// defaults, pass the pattern to New via WithPattern instead.
func (c *Classifier) RegisterPattern(p Pattern) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, p)
	c.sources = append(c.sources, sourceRegistered)
}

// Classify resolves a classification for err. It accepts any error value,
// including nil, and always returns a non-nil classification within the
// sub-10ms budget for typical errors.
//
// Classify never panics. A panicking predicate is skipped (and logged) and
// scanning continues; a panic anywhere else resolves to the conservative
// fallback verdict: server error, high severity, retryable.
func (c *Classifier) Classify(err error, ectx *faultline.ErrorContext) (cl *faultline.Classification) {
	start := c.now()
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("classification panicked; returning fallback",
				apis.Meta{"panic": fmt.Sprint(r)})
			cl = recoveryFallback()
		}
		c.record(cl, c.now().Sub(start))
	}()

	obs := faultline.Observe(err)
	if p, _, ok := c.match(obs); ok {
		return c.enhance(p.Apply.materialize(), obs, ectx)
	}
	return c.enhance(Partial{}.materialize(), obs, ectx)
}

// Explain produces a textual trace of how err would be classified: which
// pattern matched and from which tier it came. Primarily a diagnostic tool.
//
// Example output:
//
//	error name="*errors.errorString" message="quota exhausted"
//	match: source=default pattern="rate_limit" -> category=rate_limit_error http=429
func (c *Classifier) Explain(err error) string {
	obs := faultline.Observe(err)
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "error name=%q message=%q\n", obs.Name, obs.Message)

	if p, src, ok := c.match(obs); ok {
		cl := p.Apply.materialize()
		_, _ = fmt.Fprintf(&b, "match: source=%s pattern=%q -> category=%s http=%d",
			src, p.Name, cl.Category, cl.HTTPStatus)
	} else {
		_, _ = fmt.Fprintf(&b, "match: source=%s -> category=%s http=%d",
			sourceFallback, category.ServerError, category.ServerError.HTTPStatus())
	}
	return b.String()
}

// match scans the pattern list in order and returns the first pattern whose
// predicate reports true without panicking, together with its source tier.
func (c *Classifier) match(obs faultline.ObservedError) (Pattern, string, bool) {
	c.mu.Lock()
	patterns := make([]Pattern, len(c.patterns))
	copy(patterns, c.patterns)
	sources := make([]string, len(c.sources))
	copy(sources, c.sources)
	c.mu.Unlock()

	for i, p := range patterns {
		if c.safeMatch(p, obs) {
			return p, sources[i], true
		}
	}
	return Pattern{}, "", false
}

// safeMatch evaluates one predicate, converting a panic into "no match".
func (c *Classifier) safeMatch(p Pattern, obs faultline.ObservedError) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			matched = false
			c.log.Warn("pattern predicate panicked; skipping",
				apis.Meta{"pattern": p.Name, "panic": fmt.Sprint(r)})
		}
	}()
	return p.Match != nil && p.Match(obs)
}

// enhance applies context-specific adjustments to a base classification:
// a debug payload (debug mode only), the backoff suggestion for rate
// limits, and strengthened wording for critical severity.
func (c *Classifier) enhance(base *faultline.Classification, obs faultline.ObservedError, ectx *faultline.ErrorContext) *faultline.Classification {
	cl := base

	if cl.Category == category.RateLimitError {
		retries := 0
		if ectx != nil && ectx.RetryCount > 0 {
			retries = ectx.RetryCount
		}
		if retries > backoffMaxShift {
			retries = backoffMaxShift
		}
		delay := backoffBase*(1<<retries) + c.jitter()
		cl = cl.WithRetryDelay(delay)
	}

	if cl.Severity == category.SeverityCritical {
		cl = cl.WithImpact(criticalImpact).WithGuidance(criticalGuidance...)
	}

	if c.settings.DebugMode() {
		dbg := map[string]any{
			"error_name":    obs.Name,
			"error_message": obs.Message,
		}
		if len(obs.Fields) > 0 {
			dbg["error_fields"] = obs.Fields
		}
		if ectx != nil {
			if ectx.Endpoint != "" {
				dbg["endpoint"] = ectx.Endpoint
			}
			if ectx.Method != "" {
				dbg["method"] = ectx.Method
			}
			if ectx.RetryCount > 0 {
				dbg["retry_count"] = ectx.RetryCount
			}
			if len(ectx.Extra) > 0 {
				dbg["context"] = ectx.Extra
			}
		}
		cl = cl.WithDebug(dbg)
	}

	return cl
}

// recoveryFallback is the verdict for failures of the classifier itself:
// deliberately more alarmed than the unmatched default.
func recoveryFallback() *faultline.Classification {
	return faultline.New(category.ServerError, fallbackCode, fallbackMessage).
		WithSeverity(category.SeverityHigh).
		WithRetry(category.RetryLinear).
		WithImpact(defaultImpact).
		WithGuidance(defaultGuidance...)
}

// record updates the rolling statistics after one classification.
func (c *Classifier) record(cl *faultline.Classification, elapsed time.Duration) {
	if cl == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total++
	c.byCategory[cl.Category]++
	c.bySeverity[cl.Severity]++
	if cl.Retryable {
		c.retryable++
	}
	c.samples.Add(int64(elapsed))
	c.last = c.now()
}
