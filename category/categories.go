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

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// The closed faultline taxonomy.
//
// These categories describe high-level, operationally meaningful error
// classes. The gateway's error boundary uses them as the "type" field of the
// wire error payload, so their string values are part of the public contract
// and must stay stable.
const (
	// ClientError indicates a malformed or otherwise unprocessable request
	// that is not covered by a more specific category.
	// Use this as the generic 4xx bucket.
	//
	// Mapped to HTTP 400 by default.
	ClientError Category = "client_error"

	// ServerError indicates an internal, non-classified gateway failure.
	// Use this as the fallback when no more specific category applies; the
	// root cause stays in logs, never in the response body.
	//
	// Mapped to HTTP 500 by default.
	ServerError Category = "server_error"

	// ValidationError indicates that the request payload violates a
	// registered schema: missing fields, wrong types, bad formats.
	// Not retryable — the client must fix the payload first.
	//
	// Mapped to HTTP 400 by default.
	ValidationError Category = "validation_error"

	// AuthenticationError indicates that the caller could not be
	// authenticated: absent, malformed, expired or revoked credentials.
	// Not retryable with the same credentials.
	//
	// Mapped to HTTP 401 by default.
	AuthenticationError Category = "authentication_error"

	// AuthorizationError indicates that the caller is authenticated but not
	// allowed to perform the target operation.
	// Not retryable — access must be granted out of band.
	//
	// Mapped to HTTP 403 by default.
	AuthorizationError Category = "authorization_error"

	// RateLimitError indicates that the caller exceeded a request rate or
	// usage quota. Retryable with exponential backoff; classifications of
	// this category carry a suggested retry delay.
	//
	// Mapped to HTTP 429 by default.
	RateLimitError Category = "rate_limit_error"

	// NetworkError indicates that a downstream dependency was unreachable or
	// timed out. Retryable with exponential backoff.
	//
	// Mapped to HTTP 502 by default.
	NetworkError Category = "network_error"

	// SystemError indicates a host-level fault: missing files, permission
	// problems, resource exhaustion. Not retryable and flagged critical —
	// an operator has to intervene.
	//
	// Mapped to HTTP 500 by default.
	SystemError Category = "system_error"
)

// All lists every category in the taxonomy, in declaration order.
// Useful for exhaustiveness checks in tests and for building registries.
func All() []Category {
	return []Category{
		ClientError,
		ServerError,
		ValidationError,
		AuthenticationError,
		AuthorizationError,
		RateLimitError,
		NetworkError,
		SystemError,
	}
}

// defaultHTTP defines the fixed HTTP mapping for each category.
// These are the defaults the classifier starts from; individual patterns may
// override the status for a specific classification.
var defaultHTTP = map[Category]int{
	ClientError:         http.StatusBadRequest,
	ServerError:         http.StatusInternalServerError,
	ValidationError:     http.StatusBadRequest,
	AuthenticationError: http.StatusUnauthorized,
	AuthorizationError:  http.StatusForbidden,
	RateLimitError:      http.StatusTooManyRequests,
	NetworkError:        http.StatusBadGateway,
	SystemError:         http.StatusInternalServerError,
}

// defaultGRPC defines the gRPC projection for each category. These values
// align with canonical gRPC status codes while preserving the higher-level
// faultline meaning; the grpcx adapter consumes them at the transport edge.
var defaultGRPC = map[Category]codes.Code{
	ClientError:         codes.InvalidArgument,
	ServerError:         codes.Internal,
	ValidationError:     codes.InvalidArgument,
	AuthenticationError: codes.Unauthenticated,
	AuthorizationError:  codes.PermissionDenied,
	RateLimitError:      codes.ResourceExhausted,
	NetworkError:        codes.Unavailable,
	SystemError:         codes.Internal,
}

// defaultRetry defines the fixed retry policy per category:
// validation/auth/authz are never retried, rate-limit and network failures
// back off exponentially, system faults need an operator.
var defaultRetry = map[Category]RetryStrategy{
	ClientError:         RetryNone,
	ServerError:         RetryNone,
	ValidationError:     RetryNone,
	AuthenticationError: RetryNone,
	AuthorizationError:  RetryNone,
	RateLimitError:      RetryExponential,
	NetworkError:        RetryExponential,
	SystemError:         RetryNone,
}

// defaultSeverity defines the baseline severity per category. System faults
// start at critical; everything else starts at medium and patterns raise or
// lower it.
var defaultSeverity = map[Category]Severity{
	ClientError:         SeverityLow,
	ServerError:         SeverityMedium,
	ValidationError:     SeverityLow,
	AuthenticationError: SeverityMedium,
	AuthorizationError:  SeverityMedium,
	RateLimitError:      SeverityMedium,
	NetworkError:        SeverityHigh,
	SystemError:         SeverityCritical,
}

// HTTPStatus returns the fixed default HTTP status for the category.
// Unknown categories resolve to 500: HTTP must never be zero.
func (c Category) HTTPStatus() int {
	if v, ok := defaultHTTP[c]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// GRPCCode returns the default gRPC status code for the category.
// Unknown categories resolve to codes.Internal.
func (c Category) GRPCCode() codes.Code {
	if v, ok := defaultGRPC[c]; ok {
		return v
	}
	return codes.Internal
}

// Retry returns the fixed default retry strategy for the category.
func (c Category) Retry() RetryStrategy {
	if v, ok := defaultRetry[c]; ok {
		return v
	}
	return RetryNone
}

// DefaultSeverity returns the baseline severity for the category.
func (c Category) DefaultSeverity() Severity {
	if v, ok := defaultSeverity[c]; ok {
		return v
	}
	return SeverityMedium
}
