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
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"axisgate.dev/faultline/category"
)

func TestNew_CategoryDefaults(t *testing.T) {
	c := New(category.RateLimitError, "RATE_LIMIT_EXCEEDED", "Too many requests",
		WithRetryDelayOption(2*time.Second),
	)

	if c.HTTPStatus != 429 {
		t.Fatalf("HTTPStatus = %d, want 429", c.HTTPStatus)
	}
	if c.Retry != category.RetryExponential {
		t.Fatalf("Retry = %q, want exponential", c.Retry)
	}
	if !c.Retryable {
		t.Fatal("rate limit classifications must be retryable")
	}
	if c.RetryDelay != 2*time.Second {
		t.Fatalf("RetryDelay = %v, want 2s", c.RetryDelay)
	}

	s := c.String()
	for _, sub := range []string{"rate_limit_error", "RATE_LIMIT_EXCEEDED", "Too many requests"} {
		if !strings.Contains(s, sub) {
			t.Fatalf("String() missing %q in %q", sub, s)
		}
	}
}

func TestClassification_CopyOnWrite(t *testing.T) {
	c1 := New(category.ServerError, "INTERNAL_ERROR", "boom").WithDebugField("k1", 1)
	c2 := c1.WithDebugField("k2", 2)

	if len(c1.Debug) != 1 || len(c2.Debug) != 2 {
		t.Fatal("debug payload size mismatch")
	}
	if _, ok := c1.Debug["k2"]; ok {
		t.Fatal("original mutated")
	}

	c3 := c1.WithSeverity(category.SeverityCritical)
	if c1.Severity == category.SeverityCritical {
		t.Fatal("WithSeverity mutated the original")
	}
	if c3.Severity != category.SeverityCritical {
		t.Fatal("WithSeverity did not apply")
	}
}

func TestClassification_WithRetryKeepsFlagConsistent(t *testing.T) {
	c := New(category.ServerError, "INTERNAL_ERROR", "boom")
	if c.Retryable {
		t.Fatal("server errors default to non-retryable")
	}
	c2 := c.WithRetry(category.RetryAfterDelay)
	if !c2.Retryable {
		t.Fatal("after_delay must flip the retryable flag")
	}
}

func TestClassification_WithGuidanceCopiesSlice(t *testing.T) {
	hints := []string{"check the payload"}
	c := New(category.ValidationError, "VALIDATION_ERROR", "bad payload").WithGuidance(hints...)
	hints[0] = "mutated"
	if c.Guidance[0] != "check the payload" {
		t.Fatal("guidance must be detached from the caller's slice")
	}
}

type namedErr struct{ msg string }

func (e namedErr) Error() string     { return e.msg }
func (e namedErr) ErrorName() string { return "ValidationError" }
func (e namedErr) ErrorFields() map[string]any {
	return map[string]any{"field_count": 3}
}

func TestObserve(t *testing.T) {
	o := Observe(namedErr{msg: "validation failed"})
	if o.Name != "ValidationError" {
		t.Fatalf("Name = %q, want ValidationError", o.Name)
	}
	if o.Fields["field_count"] != 3 {
		t.Fatal("fields not captured")
	}
	if !o.MessageContains("VALIDATION") {
		t.Fatal("MessageContains must be case-insensitive")
	}
}

func TestObserve_PlainError(t *testing.T) {
	o := Observe(errors.New("connection reset by peer"))
	if o.Name != "*errors.errorString" {
		t.Fatalf("Name = %q, want dynamic type", o.Name)
	}
	if !o.MessageContains("connection reset") {
		t.Fatal("message not captured")
	}
}

func TestObserve_NilAndHuge(t *testing.T) {
	o := Observe(nil)
	if o.Name != "nil" || o.Message != "" {
		t.Fatalf("nil observation = %+v", o)
	}

	huge := Observe(fmt.Errorf("%s", strings.Repeat("x", 10000)))
	if len(huge.Message) != ObservedMessageLimit {
		t.Fatalf("huge message must be truncated to %d, got %d",
			ObservedMessageLimit, len(huge.Message))
	}
}
