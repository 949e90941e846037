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
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axisgate.dev/faultline"
	"axisgate.dev/faultline/category"
	"axisgate.dev/faultline/validation"
)

func TestFromClassification(t *testing.T) {
	cl := faultline.New(category.RateLimitError, "RATE_LIMIT_EXCEEDED",
		"Too many requests").
		WithRetryDelay(1500 * time.Millisecond).
		WithGuidance("Wait before retrying")

	p := FromClassification(cl, "req_abc", "corr_123")

	assert.Equal(t, "Too many requests", p.Error.Message)
	assert.Equal(t, "rate_limit_error", p.Error.Type)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", p.Error.Code)
	assert.Equal(t, "req_abc", p.Error.RequestID)
	assert.Equal(t, 2, p.Error.Details["retry_after_seconds"], "1.5s rounds up")
	assert.Equal(t, "corr_123", p.Error.Details["correlation_id"])
	assert.Equal(t, []string{"Wait before retrying"}, p.Error.Details["suggestions"])
	assert.Nil(t, p.Error.DebugInfo)
}

func TestFromClassificationNil(t *testing.T) {
	p := FromClassification(nil, "req_abc", "")
	assert.Equal(t, "server_error", p.Error.Type)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", p.Error.Code)
	assert.NotEmpty(t, p.Error.Message)
}

func TestFromClassificationDropsUnserializable(t *testing.T) {
	cl := faultline.New(category.ServerError, "X", "boom").
		WithDebugField("ok", "fine").
		WithDebugField("bad", func() {}) // functions cannot be marshaled

	p := FromClassification(cl, "req_abc", "")
	require.NotNil(t, p.Error.DebugInfo)
	assert.Equal(t, "fine", p.Error.DebugInfo["ok"])
	assert.NotContains(t, p.Error.DebugInfo, "bad")

	_, err := json.Marshal(p)
	assert.NoError(t, err, "payload must serialize after sanitizing")
}

func TestFromValidation(t *testing.T) {
	v := validation.New()
	rep := v.Validate(map[string]any{"model": "x"}, "chat_completion", nil)
	require.False(t, rep.Valid)

	p := FromValidation(rep, "req_abc", "corr_123")

	assert.Equal(t, "validation_error", p.Error.Type)
	assert.Equal(t, "messages", p.Error.Param)
	assert.Equal(t, 1, p.Error.Details["field_count"])
	assert.Equal(t, "corr_123", p.Error.Details["correlation_id"])

	fields, ok := p.Error.Details["invalid_fields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	fe := fields[0].(InvalidField)
	assert.Equal(t, "messages", fe.Field)
	assert.Equal(t, validation.CodeRequiredMissing, fe.Code)
}

func TestFromValidationNilReport(t *testing.T) {
	p := FromValidation(nil, "req_abc", "")
	assert.Equal(t, "server_error", p.Error.Type)
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	p := FromClassification(faultline.New(category.ClientError, "BAD_REQUEST", "nope"), "req_abc", "")

	require.NoError(t, Write(rec, 400, p))
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, "nope", decoded["error"]["message"])
	assert.Equal(t, "client_error", decoded["error"]["type"])
}

func TestSetHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SetHeaders(rec.Header(), "req_abc", "corr_123", 1500*time.Millisecond)

	assert.Equal(t, "req_abc", rec.Header().Get(HeaderRequestID))
	assert.Equal(t, "corr_123", rec.Header().Get(HeaderCorrelationID))
	assert.Equal(t, "2", rec.Header().Get(HeaderRetryAfter))

	rec = httptest.NewRecorder()
	SetHeaders(rec.Header(), "req_abc", "", 0)
	assert.Empty(t, rec.Header().Get(HeaderCorrelationID))
	assert.Empty(t, rec.Header().Get(HeaderRetryAfter))
}
