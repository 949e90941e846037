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

// Fallback verdict used when no pattern matches, and as the base every
// partial is merged onto. Conservative on purpose: unknown failures are
// server errors the client did not cause.
const (
	fallbackCode    = "INTERNAL_SERVER_ERROR"
	fallbackMessage = "An unexpected error occurred while processing the request"
	defaultImpact   = "Single request failed; service remains healthy"
)

var defaultGuidance = []string{
	"Retry the request once; if the problem persists, contact support",
	"Include the request_id from this response when reporting the issue",
}

// criticalImpact and criticalGuidance replace the pattern-supplied wording
// whenever the resolved severity is critical.
const criticalImpact = "Critical failure; service capability is degraded and requires immediate operator attention"

var criticalGuidance = []string{
	"Do not retry; the failure is not request-specific",
	"Report the request_id to the service operator immediately",
}

// defaultPatterns returns the built-in pattern list, in match order:
// validation, authentication, rate limit, network, system. Anything
// unmatched falls through to the server-error fallback.
//
// The predicates deliberately match on the observed name/message only —
// the gateway sees failures from many sources (JSON decoding, upstream
// SDKs, the OS) and free-text is the one shape they all share.
func defaultPatterns() []Pattern {
	return []Pattern{
		{
			Name:        "validation",
			Description: "schema and payload validation failures",
			Match: func(o faultline.ObservedError) bool {
				return o.NameContains("validation") || o.MessageContains("validation")
			},
			Apply: Partial{
				Category: category.ValidationError,
				Code:     "VALIDATION_ERROR",
				Message:  "The request payload failed validation",
				Impact:   "Request rejected before reaching the upstream model",
				Guidance: []string{
					"Fix the invalid fields listed in details and resend",
					"Consult the endpoint schema documentation",
				},
			},
		},
		{
			Name:        "authentication",
			Description: "credential and token failures",
			Match: func(o faultline.ObservedError) bool {
				return o.MessageContains("auth") || o.MessageContains("token")
			},
			Apply: Partial{
				Category: category.AuthenticationError,
				Code:     "AUTHENTICATION_FAILED",
				Message:  "The request could not be authenticated",
				Impact:   "Request rejected at the gateway edge",
				Guidance: []string{
					"Verify the API key or token and resend",
					"Re-authenticate if the credential has expired",
				},
			},
		},
		{
			Name:        "rate_limit",
			Description: "rate-limit and quota overruns",
			Match: func(o faultline.ObservedError) bool {
				return o.MessageContains("rate limit") || o.MessageContains("quota")
			},
			Apply: Partial{
				Category: category.RateLimitError,
				Code:     "RATE_LIMIT_EXCEEDED",
				Message:  "Too many requests; the rate limit was exceeded",
				Impact:   "Request deferred; capacity protection engaged",
				Guidance: []string{
					"Wait for the suggested delay before retrying",
					"Reduce request concurrency or request a higher quota",
				},
			},
		},
		{
			Name:        "network",
			Description: "unreachable or slow downstream dependencies",
			Match: func(o faultline.ObservedError) bool {
				return o.MessageContains("connection reset") ||
					o.MessageContains("econnreset") ||
					o.MessageContains("timeout")
			},
			Apply: Partial{
				Category: category.NetworkError,
				Code:     "UPSTREAM_UNAVAILABLE",
				Message:  "A downstream dependency did not respond",
				Severity: category.SeverityHigh,
				Impact:   "Requests depending on the upstream are failing",
				Guidance: []string{
					"Retry with exponential backoff",
					"Check the service status page for upstream incidents",
				},
			},
		},
		{
			Name:        "system",
			Description: "host-level faults: missing files, permissions",
			Match: func(o faultline.ObservedError) bool {
				return o.MessageContains("no such file") ||
					o.MessageContains("enoent") ||
					o.MessageContains("permission denied") ||
					o.MessageContains("eacces")
			},
			Apply: Partial{
				Category: category.SystemError,
				Code:     "SYSTEM_ERROR",
				Message:  "The service encountered a system-level fault",
			},
		},
	}
}
