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

package response

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// Response header names of the error contract.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
	HeaderRetryAfter    = "Retry-After"
)

// minimalBody is the hand-built last-resort response, emitted verbatim when
// encoding the assembled payload fails. It bypasses every factory on
// purpose.
const minimalBody = `{"error":{"message":"An unexpected error occurred","type":"server_error"}}`

// SetHeaders stamps the contract headers: X-Request-ID always,
// X-Correlation-ID when present, Retry-After when a delay is suggested.
func SetHeaders(h http.Header, requestID, correlationID string, retryAfter time.Duration) {
	h.Set(HeaderRequestID, requestID)
	if correlationID != "" {
		h.Set(HeaderCorrelationID, correlationID)
	}
	if retryAfter > 0 {
		h.Set(HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(retryAfter)))
	}
}

// Write serializes p to w with the given status. If encoding fails, a
// hand-built minimal JSON body goes out instead; the status is preserved
// either way.
func Write(w http.ResponseWriter, status int, p *Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		body = []byte(minimalBody)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, werr := w.Write(body)
	return werr
}
