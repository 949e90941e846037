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

package faultline

import (
	"time"

	"axisgate.dev/faultline/category"
)

// Option is a functional option for constructing or transforming a
// Classification. It always takes a *Classification and returns a (possibly
// new) *Classification.
type Option func(*Classification) *Classification

// WithSeverityOption sets the severity on the classification being
// constructed. Intended to be used with New(...).
func WithSeverityOption(s category.Severity) Option {
	return func(c *Classification) *Classification {
		return c.WithSeverity(s)
	}
}

// WithHTTPStatusOption replaces the HTTP status on construction.
// Intended to be used with New(...).
func WithHTTPStatusOption(status int) Option {
	return func(c *Classification) *Classification {
		return c.WithHTTPStatus(status)
	}
}

// WithRetryOption replaces the retry strategy on construction.
// Intended to be used with New(...).
func WithRetryOption(r category.RetryStrategy) Option {
	return func(c *Classification) *Classification {
		return c.WithRetry(r)
	}
}

// WithRetryDelayOption sets a suggested retry delay on construction.
// Intended to be used with New(...).
func WithRetryDelayOption(d time.Duration) Option {
	return func(c *Classification) *Classification {
		return c.WithRetryDelay(d)
	}
}

// WithImpactOption sets the operational-impact text on construction.
// Intended to be used with New(...).
func WithImpactOption(impact string) Option {
	return func(c *Classification) *Classification {
		return c.WithImpact(impact)
	}
}

// WithGuidanceOption sets the client guidance list on construction.
// Intended to be used with New(...).
func WithGuidanceOption(hints ...string) Option {
	return func(c *Classification) *Classification {
		return c.WithGuidance(hints...)
	}
}

// WithDebugOption merges a debug payload on construction.
// Intended to be used with New(...).
func WithDebugOption(kv map[string]any) Option {
	return func(c *Classification) *Classification {
		return c.WithDebug(kv)
	}
}
