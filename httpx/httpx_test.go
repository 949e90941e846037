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

package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axisgate.dev/faultline/classifier"
	"axisgate.dev/faultline/response"
	"axisgate.dev/faultline/tracking"
	"axisgate.dev/faultline/validation"
)

func newMiddleware(t *testing.T) (*Middleware, *tracking.Manager) {
	t.Helper()
	tr := tracking.NewManager()
	return NewMiddleware(tr, WithClassifier(classifier.New())), tr
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Contains(t, doc, "error")
	return doc["error"]
}

func TestWrapStampsHeadersAndCompletes(t *testing.T) {
	m, tr := newMiddleware(t)
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestID(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/models", nil))

	assert.NotEmpty(t, rec.Header().Get(response.HeaderRequestID))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	s := tr.Statistics()
	assert.Equal(t, int64(1), s.Completed)
	assert.Equal(t, 0, s.Active)
	assert.Equal(t, 204, tr.RecentRequests(1)[0].StatusCode)
}

func TestWrapAdoptsInboundRequestID(t *testing.T) {
	m, _ := newMiddleware(t)
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "client-supplied-id-42", RequestID(r.Context()))
	}))

	req := httptest.NewRequest("GET", "/v1/models", nil)
	req.Header.Set(response.HeaderRequestID, "client-supplied-id-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "client-supplied-id-42", rec.Header().Get(response.HeaderRequestID))
}

func TestPanicBoundary(t *testing.T) {
	m, tr := newMiddleware(t)
	h := m.Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("open state: no such file or directory"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/chat/completions", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "system_error", body["type"])
	assert.NotEmpty(t, body["request_id"])

	done := tr.RecentRequests(1)[0]
	assert.True(t, done.ErrorOccurred)
}

func TestPanicBoundaryNonError(t *testing.T) {
	m, _ := newMiddleware(t)
	h := m.Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("plain string panic")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server_error", decodeError(t, rec)["type"])
}

func TestPanicBoundaryStampsRetryAfter(t *testing.T) {
	m, _ := newMiddleware(t)
	h := m.Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("rate limit exceeded for key"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/chat/completions", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(response.HeaderRetryAfter),
		"retryable verdicts carry the header on the panic path too")

	body := decodeError(t, rec)
	assert.Equal(t, "rate_limit_error", body["type"])
	details := body["details"].(map[string]any)
	assert.NotNil(t, details["retry_after_seconds"])
}

func TestPanicAfterBodyStartedWritesNothing(t *testing.T) {
	m, tr := newMiddleware(t)
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial"))
		panic(errors.New("mid-stream failure"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/x", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String(), "no error JSON after body start")
	assert.Equal(t, int64(1), tr.Statistics().Completed, "completion still fires")
}

func TestFailWritesClassifiedResponse(t *testing.T) {
	m, tr := newMiddleware(t)
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.Fail(w, r, errors.New("rate limit exceeded for key"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/chat/completions", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(response.HeaderRetryAfter))

	body := decodeError(t, rec)
	assert.Equal(t, "rate_limit_error", body["type"])
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body["code"])

	done := tr.RecentRequests(1)[0]
	assert.True(t, done.ErrorOccurred)
	assert.Equal(t, 429, done.StatusCode)
}

func TestFailValidation(t *testing.T) {
	m, _ := newMiddleware(t)
	v := validation.New(validation.WithClassifier(classifier.New()))

	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rep := v.Validate(map[string]any{"model": "x"}, "chat_completion", nil)
		m.FailValidation(w, r, rep)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/chat/completions", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "validation_error", body["type"])
	assert.Equal(t, "messages", body["param"])
	details := body["details"].(map[string]any)
	assert.Equal(t, float64(1), details["field_count"])
}
