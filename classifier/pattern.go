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
	"axisgate.dev/faultline"
	"axisgate.dev/faultline/category"
)

// Pattern is one classification rule: a predicate over the observed error
// and the partial classification to apply when it matches. Patterns are held
// in an ordered list; the first match wins.
type Pattern struct {
	// Name identifies the pattern in logs and in Explain output.
	Name string

	// Description is a human note on what the pattern catches.
	Description string

	// Match reports whether this pattern applies to the observed error.
	// A panicking Match is treated as "no match" and logged; it never
	// aborts classification.
	Match func(faultline.ObservedError) bool

	// Apply is the partial classification merged onto the defaults when
	// the pattern matches.
	Apply Partial
}

// Partial is a classification fragment. Zero-valued fields inherit from the
// category defaults (or, if Category itself is empty, from the fallback
// verdict). This replaces ad-hoc merging of loosely-shaped objects with an
// explicit, typed overlay.
type Partial struct {
	Category   category.Category
	Code       string
	Message    string
	Severity   category.Severity
	Retry      category.RetryStrategy
	HTTPStatus int
	Impact     string
	Guidance   []string
}

// materialize builds the full classification for a partial: category
// defaults first, explicit partial fields on top. The partial's category is
// parsed through the taxonomy, so a pattern declaring "Rate-Limit-Error"
// still lands on rate_limit_error; a category that cannot be normalized into
// a valid identifier falls back to server_error rather than leaking a
// malformed value into responses.
func (p Partial) materialize() *faultline.Classification {
	cat, err := category.Parse(string(p.Category))
	if err != nil {
		cat = category.ServerError
	}
	code := p.Code
	if code == "" {
		code = fallbackCode
	}
	msg := p.Message
	if msg == "" {
		msg = fallbackMessage
	}

	c := faultline.New(cat, code, msg)
	if p.Severity != "" {
		c = c.WithSeverity(p.Severity)
	}
	if p.Retry != "" {
		c = c.WithRetry(p.Retry)
	}
	if p.HTTPStatus != 0 {
		c = c.WithHTTPStatus(p.HTTPStatus)
	}
	if p.Impact != "" {
		c = c.WithImpact(p.Impact)
	} else {
		c = c.WithImpact(defaultImpact)
	}
	if len(p.Guidance) > 0 {
		c = c.WithGuidance(p.Guidance...)
	} else {
		c = c.WithGuidance(defaultGuidance...)
	}
	return c
}
