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

// ErrorContext carries optional, caller-supplied context for one
// classification request: where the failure happened and how often the
// caller has already retried. All fields are optional; a nil *ErrorContext
// is always accepted.
type ErrorContext struct {
	// RequestID correlates the classification with the request that
	// produced the failure.
	RequestID string

	// Endpoint and Method locate the failure in the route space. Endpoint
	// should be the normalized form (see package tracking).
	Endpoint string
	Method   string

	// RetryCount is how many times the caller has already retried the
	// failing operation. Rate-limit classifications feed it into the
	// exponential backoff suggestion. Defaults to 0.
	RetryCount int

	// Extra holds arbitrary additional context. It is only ever surfaced
	// inside debug payloads, never in production responses.
	Extra map[string]any
}
