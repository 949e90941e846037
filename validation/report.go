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

package validation

import (
	"time"

	"axisgate.dev/faultline"
)

// FieldError is one constraint violation. The Value field is already
// redacted and truncated; it is safe to render anywhere.
type FieldError struct {
	// Field is the display name of the offending field.
	Field string

	// Path is the dotted path that located the value.
	Path string

	// Value is the redacted offending value. Nil for absent values.
	Value any

	// Message is the human description of the violation.
	Message string

	// Code is the stable machine code, one of the Code* constants.
	Code string

	// Constraint describes the rule that was violated, when the rule
	// carries a description.
	Constraint string

	// Suggestion is an optional per-field remediation hint.
	Suggestion string
}

// Context carries the request-scoped facts a report is annotated with.
// The validator treats it as read-only.
type Context struct {
	Endpoint  string
	Method    string
	RequestID string
	UserAgent string
	Timestamp time.Time

	// RawBody optionally holds the undecoded request body. It never reaches
	// the report directly; debug mode surfaces a truncated copy.
	RawBody string
}

// Report is the outcome of one validation call. Reports are created fresh
// per call and never mutated after return.
type Report struct {
	// Valid is true when no rule failed.
	Valid bool

	// Errors lists violations in rule declaration order.
	Errors []FieldError

	// ErrorCount mirrors len(Errors) for wire convenience.
	ErrorCount int

	// Classification is the aggregate verdict for an invalid payload,
	// produced through the classifier. Nil when Valid.
	Classification *faultline.Classification

	// Context echoes the request-scoped facts supplied by the caller, with
	// the timestamp filled in when the caller left it zero.
	Context Context

	// Suggestions are free-text remediation hints derived from the error
	// codes present.
	Suggestions []string

	// Debug holds the redacted raw payload, the schema description and
	// timing. Populated only in debug mode.
	Debug map[string]any

	// ProcessingTime is the measured duration of the validation call.
	ProcessingTime time.Duration
}

// ErrorsFor returns the violations recorded for the named field.
func (r *Report) ErrorsFor(field string) []FieldError {
	var out []FieldError
	for _, e := range r.Errors {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// Codes returns the distinct error codes present, in first-seen order.
func (r *Report) Codes() []string {
	seen := make(map[string]bool, len(r.Errors))
	var out []string
	for _, e := range r.Errors {
		if !seen[e.Code] {
			seen[e.Code] = true
			out = append(out, e.Code)
		}
	}
	return out
}
