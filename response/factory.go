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
	"math"
	"time"

	"axisgate.dev/faultline"
	"axisgate.dev/faultline/category"
	"axisgate.dev/faultline/validation"
)

// Payload is the top-level wire error document.
type Payload struct {
	Error Body `json:"error"`
}

// Body is the error object inside the payload. Message and Type are always
// present; everything else is omitted when empty.
type Body struct {
	Message   string         `json:"message"`
	Type      string         `json:"type"`
	Code      string         `json:"code,omitempty"`
	Param     string         `json:"param,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	DebugInfo map[string]any `json:"debug_info,omitempty"`
}

// InvalidField is one entry of the details.invalid_fields array.
type InvalidField struct {
	Field      string `json:"field"`
	Path       string `json:"path,omitempty"`
	Message    string `json:"message"`
	Code       string `json:"code"`
	Value      any    `json:"value,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// FromClassification builds the wire payload for a classified error.
func FromClassification(cl *faultline.Classification, requestID, correlationID string) *Payload {
	if cl == nil {
		cl = fallbackClassification()
	}

	details := make(map[string]any)
	if len(cl.Guidance) > 0 {
		details["suggestions"] = cl.Guidance
	}
	if cl.RetryDelay > 0 {
		details["retry_after_seconds"] = retryAfterSeconds(cl.RetryDelay)
	}
	if correlationID != "" {
		details["correlation_id"] = correlationID
	}

	return &Payload{Error: Body{
		Message:   cl.Message,
		Type:      string(cl.Category),
		Code:      cl.Code,
		Details:   sanitizeMap(details),
		RequestID: requestID,
		DebugInfo: sanitizeMap(cl.Debug),
	}}
}

// FromValidation builds the wire payload for an invalid payload report.
// Valid reports produce no payload; callers should not be here for them.
func FromValidation(rep *validation.Report, requestID, correlationID string) *Payload {
	if rep == nil {
		return FromClassification(nil, requestID, correlationID)
	}

	cl := rep.Classification
	if cl == nil {
		cl = fallbackClassification()
	}

	fields := make([]any, 0, len(rep.Errors))
	param := ""
	for _, fe := range rep.Errors {
		if param == "" {
			param = fe.Field
		}
		fields = append(fields, InvalidField{
			Field:      fe.Field,
			Path:       fe.Path,
			Message:    fe.Message,
			Code:       fe.Code,
			Value:      fe.Value,
			Suggestion: fe.Suggestion,
		})
	}

	details := map[string]any{
		"invalid_fields": fields,
		"field_count":    rep.ErrorCount,
	}
	if len(rep.Suggestions) > 0 {
		details["suggestions"] = rep.Suggestions
	}
	if correlationID != "" {
		details["correlation_id"] = correlationID
	}

	return &Payload{Error: Body{
		Message:   cl.Message,
		Type:      string(cl.Category),
		Code:      cl.Code,
		Param:     param,
		Details:   sanitizeMap(details),
		RequestID: requestID,
		DebugInfo: sanitizeMap(rep.Debug),
	}}
}

func fallbackClassification() *faultline.Classification {
	return faultline.New(category.ServerError, "INTERNAL_SERVER_ERROR",
		"An unexpected error occurred while processing the request")
}

// retryAfterSeconds rounds the delay up so clients never retry early.
func retryAfterSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

// sanitizeMap drops entries that cannot be serialized, so one bad value
// never aborts the whole response.
func sanitizeMap(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if serializable(v) {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func serializable(v any) bool {
	_, err := json.Marshal(v)
	return err == nil
}
