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
	"fmt"
	"strings"
)

// ObservedError is the narrow view of a raw failure that classifier patterns
// match against: a name, a message and optional attached fields. Patterns
// never probe the underlying error value directly, so arbitrarily weird
// errors (huge messages, self-referential wrappers) cannot break matching.
type ObservedError struct {
	// Name identifies the error kind. For errors implementing NamedError it
	// is the declared name; otherwise it is the dynamic Go type, e.g.
	// "*net.OpError".
	Name string

	// Message is the error text, truncated to ObservedMessageLimit.
	Message string

	// Fields carries optional structured attributes attached by the error
	// (syscall codes, limit names, upstream status). May be nil.
	Fields map[string]any
}

// NamedError lets an error expose a stable classification name instead of
// its Go type. Gateway-internal error types implement this so patterns can
// match on "ValidationError" or "RateLimitError" regardless of wrapping.
type NamedError interface {
	error
	ErrorName() string
}

// FieldedError lets an error expose structured attributes to patterns.
type FieldedError interface {
	error
	ErrorFields() map[string]any
}

// ObservedMessageLimit caps the message length captured from a raw error.
// Pattern predicates only ever look at substrings, so truncation does not
// change matching for sane errors, and it keeps pathological multi-kilobyte
// messages from being dragged through the pipeline.
const ObservedMessageLimit = 2048

// Observe converts a raw error into its observed view. It never fails:
// a nil error observes as an unnamed, empty-message value.
func Observe(err error) ObservedError {
	if err == nil {
		return ObservedError{Name: "nil"}
	}

	o := ObservedError{Name: fmt.Sprintf("%T", err)}
	if ne, ok := err.(NamedError); ok {
		o.Name = ne.ErrorName()
	}
	if fe, ok := err.(FieldedError); ok {
		o.Fields = fe.ErrorFields()
	}

	msg := err.Error()
	if len(msg) > ObservedMessageLimit {
		msg = msg[:ObservedMessageLimit]
	}
	o.Message = msg
	return o
}

// MessageContains reports whether the observed message contains the given
// substring, case-insensitively. This is the primitive most default
// patterns are built from.
func (o ObservedError) MessageContains(sub string) bool {
	return strings.Contains(strings.ToLower(o.Message), strings.ToLower(sub))
}

// NameContains reports whether the observed name contains the given
// substring, case-insensitively.
func (o ObservedError) NameContains(sub string) bool {
	return strings.Contains(strings.ToLower(o.Name), strings.ToLower(sub))
}
