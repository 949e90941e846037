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

// Package httpx wires the faultline pipeline into net/http.
//
// The middleware performs request entry through the tracking manager, stamps
// the contract headers, guards the handler with a panic boundary that routes
// recovered values through the classifier, and completes the request exactly
// once, whichever finalization path runs first.
package httpx

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"axisgate.dev/faultline"
	"axisgate.dev/faultline/apis"
	"axisgate.dev/faultline/category"
	"axisgate.dev/faultline/response"
	"axisgate.dev/faultline/tracking"
	"axisgate.dev/faultline/validation"
)

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the request id the middleware stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Middleware ties tracking, classification and response assembly to an HTTP
// handler chain.
type Middleware struct {
	tracker    *tracking.Manager
	classifier apis.Classifier
	log        apis.Logger
}

// Option configures a Middleware.
type Option func(*Middleware)

// WithClassifier supplies the classifier for the panic boundary.
func WithClassifier(c apis.Classifier) Option {
	return func(m *Middleware) { m.classifier = c }
}

// WithLogger supplies the logger for panic reports.
func WithLogger(l apis.Logger) Option {
	return func(m *Middleware) { m.log = l }
}

// NewMiddleware constructs the middleware around a tracking manager.
func NewMiddleware(tracker *tracking.Manager, opts ...Option) *Middleware {
	m := &Middleware{tracker: tracker}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = apis.NopLogger{}
	}
	return m
}

// Wrap returns next guarded by the full pipeline: request entry, contract
// headers, panic boundary and idempotent completion.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta := m.tracker.Begin(tracking.Entry{
			InboundID:     r.Header.Get(response.HeaderRequestID),
			CorrelationID: r.Header.Get(response.HeaderCorrelationID),
			Method:        r.Method,
			Path:          r.URL.RequestURI(),
			UserAgent:     r.UserAgent(),
			ForwardedFor:  r.Header.Get("X-Forwarded-For"),
			RealIP:        r.Header.Get("X-Real-IP"),
			RemoteAddr:    r.RemoteAddr,
		})

		response.SetHeaders(w.Header(), meta.RequestID, meta.CorrelationID, 0)

		cw := &completionWriter{ResponseWriter: w, status: http.StatusOK}
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, meta.RequestID))

		defer func() {
			if rec := recover(); rec != nil {
				m.handlePanic(cw, r, meta, rec)
			}
			// body-send and panic paths both end here; the tracker keeps
			// completion first-hook-wins regardless
			m.tracker.Complete(meta.RequestID, cw.status)
		}()

		next.ServeHTTP(cw, r)
	})
}

// Fail classifies err and writes the full contract response. Handlers call
// it instead of http.Error.
func (m *Middleware) Fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := RequestID(r.Context())
	m.tracker.MarkRequestError(requestID, err)

	cl := m.classify(err, &faultline.ErrorContext{
		RequestID: requestID,
		Endpoint:  r.URL.Path,
		Method:    r.Method,
	})

	response.SetHeaders(w.Header(), requestID, "", cl.RetryDelay)
	p := response.FromClassification(cl, requestID, "")
	if werr := response.Write(w, cl.HTTPStatus, p); werr != nil {
		m.log.Warn("writing error response failed", apis.Meta{
			"request_id": requestID,
			"error":      werr.Error(),
		})
	}
}

// FailValidation writes the contract response for an invalid payload report
// and marks the request errored.
func (m *Middleware) FailValidation(w http.ResponseWriter, r *http.Request, rep *validation.Report) {
	requestID := RequestID(r.Context())
	m.tracker.MarkRequestError(requestID,
		fmt.Errorf("request validation failed: %d invalid field(s)", rep.ErrorCount))

	status := http.StatusBadRequest
	if rep.Classification != nil {
		status = rep.Classification.HTTPStatus
	}
	response.SetHeaders(w.Header(), requestID, "", 0)
	p := response.FromValidation(rep, requestID, "")
	if werr := response.Write(w, status, p); werr != nil {
		m.log.Warn("writing validation response failed", apis.Meta{
			"request_id": requestID,
			"error":      werr.Error(),
		})
	}
}

// handlePanic converts a recovered handler panic into a classified response.
func (m *Middleware) handlePanic(cw *completionWriter, r *http.Request, meta tracking.Metadata, rec any) {
	err, ok := rec.(error)
	if !ok {
		err = fmt.Errorf("handler panic: %v", rec)
	}
	m.log.Error("handler panicked", apis.Meta{
		"request_id": meta.RequestID,
		"endpoint":   meta.Endpoint,
		"panic":      fmt.Sprint(rec),
	})
	m.tracker.MarkRequestError(meta.RequestID, err)

	cl := m.classify(err, &faultline.ErrorContext{
		RequestID: meta.RequestID,
		Endpoint:  meta.Endpoint,
		Method:    meta.Method,
	})

	if cw.wrote {
		// headers are gone; nothing safe to write anymore
		return
	}
	response.SetHeaders(cw.Header(), meta.RequestID, meta.CorrelationID, cl.RetryDelay)
	p := response.FromClassification(cl, meta.RequestID, meta.CorrelationID)
	_ = response.Write(cw, cl.HTTPStatus, p)
}

func (m *Middleware) classify(err error, ectx *faultline.ErrorContext) *faultline.Classification {
	if m.classifier != nil {
		return m.classifier.Classify(err, ectx)
	}
	return faultline.New(category.ServerError, "INTERNAL_SERVER_ERROR",
		"An unexpected error occurred while processing the request")
}

// completionWriter records the final status and whether the body started, so
// the panic boundary knows what it may still do.
type completionWriter struct {
	http.ResponseWriter
	once   sync.Once
	status int
	wrote  bool
}

func (w *completionWriter) WriteHeader(status int) {
	w.once.Do(func() {
		w.status = status
		w.wrote = true
	})
	w.ResponseWriter.WriteHeader(status)
}

func (w *completionWriter) Write(b []byte) (int, error) {
	w.once.Do(func() {
		w.wrote = true
	})
	return w.ResponseWriter.Write(b)
}
