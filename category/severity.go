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

package category

// Severity expresses how urgently an operator should care about a
// classified failure. It is ordered: Low < Medium < High < Critical.
type Severity string

const (
	// SeverityLow marks expected, client-caused noise (bad payloads,
	// missing fields). No operator action needed.
	SeverityLow Severity = "low"

	// SeverityMedium marks failures worth watching in aggregate but not
	// individually actionable.
	SeverityMedium Severity = "medium"

	// SeverityHigh marks failures that degrade service for some callers,
	// such as unreachable dependencies.
	SeverityHigh Severity = "high"

	// SeverityCritical marks failures that require immediate operator
	// attention. Critical classifications get strengthened impact and
	// guidance wording at the response boundary.
	SeverityCritical Severity = "critical"
)

// severityRank orders severities for comparison. Unknown values rank below
// Low so a malformed severity can never masquerade as critical.
var severityRank = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return severityRank[s] >= severityRank[other]
}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// String returns the canonical string representation of the severity.
func (s Severity) String() string { return string(s) }

// RetryStrategy tells the client what to do after receiving an error of a
// given classification. The strategy is advisory: the gateway never retries
// on the caller's behalf.
type RetryStrategy string

const (
	// RetryNone: do not retry; the request must change (or access must be
	// granted) before it can succeed.
	RetryNone RetryStrategy = "none"

	// RetryImmediate: retry right away; the failure was momentary.
	RetryImmediate RetryStrategy = "immediate"

	// RetryExponential: retry with exponential backoff and jitter. Used for
	// rate limits and flaky network dependencies.
	RetryExponential RetryStrategy = "exponential"

	// RetryLinear: retry with a constant interval between attempts.
	RetryLinear RetryStrategy = "linear"

	// RetryAfterDelay: retry once after the suggested delay carried in the
	// classification (see Classification.RetryDelay).
	RetryAfterDelay RetryStrategy = "after_delay"
)

// Retryable reports whether the strategy permits any retry at all.
func (r RetryStrategy) Retryable() bool {
	return r != RetryNone && r != ""
}

// String returns the canonical string representation of the strategy.
func (r RetryStrategy) String() string { return string(r) }
