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

// Package faultline is the error-handling backbone of an HTTP API gateway.
//
// It turns arbitrary runtime failures into one stable, client-facing error
// contract through a three-stage pipeline: error classification (package
// classifier), field-level payload validation (package validation) and
// per-request correlation (package tracking), assembled at the response
// boundary (package response).
//
// This root package holds the data model the pipeline agrees on: the
// Classification verdict and the ObservedError view of a raw failure.
package faultline

import (
	"fmt"
	"time"

	"axisgate.dev/faultline/category"
)

// Classification is the structured verdict assigned to a raw error.
//
// It carries:
//   - Category: operational error class (required);
//   - Severity: how urgently an operator should care;
//   - Retry: what the client should do about it;
//   - HTTPStatus and Code: the wire projection;
//   - Impact and Guidance: human-oriented operational texts.
//
// A Classification is immutable once produced and attached to exactly one
// classification request; all mutation helpers (WithX) return a shallow
// copy, so instances can be safely shared in a functional style.
type Classification struct {
	// Category is the primary classification of the failure, e.g.
	// category.ServerError or category.RateLimitError.
	Category category.Category

	// Severity grades the failure for operators: low, medium, high, critical.
	Severity category.Severity

	// Retry tells the client whether and how to retry.
	Retry category.RetryStrategy

	// HTTPStatus is the status code the gateway responds with.
	HTTPStatus int

	// Code is the stable, machine-readable error code exposed on the wire,
	// e.g. "RATE_LIMIT_EXCEEDED". This is what clients should branch on.
	Code string

	// Message is the client-safe human description. Internal causes stay in
	// logs; this is what ends up in the "message" field of the response.
	Message string

	// Retryable mirrors Retry for clients that only want a boolean.
	Retryable bool

	// RetryDelay is the suggested wait before the next attempt. Zero means
	// no suggestion. Only rate-limit classifications compute one.
	RetryDelay time.Duration

	// Impact is a short operational-impact description for logs and
	// dashboards, e.g. "single request failed, service healthy".
	Impact string

	// Guidance is an ordered list of client-facing remediation hints.
	Guidance []string

	// Debug is an optional diagnostic payload, attached only when the
	// gateway runs with debug mode enabled. Never populated in production.
	Debug map[string]any
}

// New constructs a Classification for the given category, filling status,
// severity, retry strategy and retryability from the category's fixed
// defaults, then applying the provided options in order.
//
// Usage:
//
//	c := faultline.New(category.RateLimitError, "RATE_LIMIT_EXCEEDED",
//	    "Too many requests",
//	    faultline.WithRetryDelayOption(2*time.Second),
//	)
func New(cat category.Category, code, message string, opts ...Option) *Classification {
	retry := cat.Retry()
	c := &Classification{
		Category:   cat,
		Severity:   cat.DefaultSeverity(),
		Retry:      retry,
		HTTPStatus: cat.HTTPStatus(),
		Code:       code,
		Message:    message,
		Retryable:  retry.Retryable(),
	}
	for _, opt := range opts {
		c = opt(c)
	}
	return c
}

// String renders the classification for logs:
//
//	<category>:<code>: <message>
func (c *Classification) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s:%s: %s", c.Category, c.Code, c.Message)
}

// WithSeverity returns a shallow copy of c with the given severity.
// The original classification is not modified.
func (c *Classification) WithSeverity(s category.Severity) *Classification {
	cp := *c
	cp.Severity = s
	return &cp
}

// WithHTTPStatus returns a shallow copy of c with a replaced HTTP status.
func (c *Classification) WithHTTPStatus(status int) *Classification {
	cp := *c
	cp.HTTPStatus = status
	return &cp
}

// WithMessage returns a shallow copy of c with a replaced client message.
func (c *Classification) WithMessage(msg string) *Classification {
	cp := *c
	cp.Message = msg
	return &cp
}

// WithRetry returns a shallow copy of c with the retry strategy replaced
// and the Retryable flag kept consistent with it.
func (c *Classification) WithRetry(r category.RetryStrategy) *Classification {
	cp := *c
	cp.Retry = r
	cp.Retryable = r.Retryable()
	return &cp
}

// WithRetryDelay returns a shallow copy of c with a suggested retry delay.
func (c *Classification) WithRetryDelay(d time.Duration) *Classification {
	cp := *c
	cp.RetryDelay = d
	return &cp
}

// WithImpact returns a shallow copy of c with a replaced impact text.
func (c *Classification) WithImpact(impact string) *Classification {
	cp := *c
	cp.Impact = impact
	return &cp
}

// WithGuidance returns a shallow copy of c with the guidance list replaced.
// The slice is copied to preserve immutability of the original.
func (c *Classification) WithGuidance(hints ...string) *Classification {
	cp := *c
	cp.Guidance = append([]string(nil), hints...)
	return &cp
}

// WithDebugField returns a shallow copy of c with one extra key/value in the
// debug payload.
//
// The method always copies the map to preserve immutability. This prevents
// surprising modifications across shared classification values.
func (c *Classification) WithDebugField(k string, v any) *Classification {
	cp := *c
	if len(cp.Debug) == 0 {
		cp.Debug = map[string]any{k: v}
		return &cp
	}
	m := make(map[string]any, len(cp.Debug)+1)
	for k0, v0 := range cp.Debug {
		m[k0] = v0
	}
	m[k] = v
	cp.Debug = m
	return &cp
}

// WithDebug returns a shallow copy of c with all provided kv merged into the
// debug payload, kv taking precedence on key conflicts.
func (c *Classification) WithDebug(kv map[string]any) *Classification {
	if len(kv) == 0 {
		return c
	}
	cp := *c
	m := make(map[string]any, len(cp.Debug)+len(kv))
	for k0, v0 := range cp.Debug {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Debug = m
	return &cp
}
