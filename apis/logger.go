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

package apis

import (
	"log/slog"
)

// Meta is the free-form structured payload attached to a log line.
type Meta map[string]any

// Logger is the narrow logging surface the pipeline consumes. The composing
// application provides the implementation; the pipeline never configures
// sinks, formats or levels itself.
//
// Implementations MUST be safe for concurrent use and MUST NOT panic —
// classification runs inside recovery boundaries that treat a logging panic
// as an internal fault.
type Logger interface {
	Debug(msg string, meta Meta)
	Info(msg string, meta Meta)
	Warn(msg string, meta Meta)
	Error(msg string, meta Meta)
}

// NopLogger discards everything. It is the default for components
// constructed without an explicit logger, and convenient in tests.
type NopLogger struct{}

func (NopLogger) Debug(string, Meta) {}
func (NopLogger) Info(string, Meta)  {}
func (NopLogger) Warn(string, Meta)  {}
func (NopLogger) Error(string, Meta) {}

// slogLogger adapts a *slog.Logger to the Logger interface.
type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps a *slog.Logger. A nil argument wraps slog.Default().
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return &slogLogger{l: l}
}

func (s *slogLogger) Debug(msg string, meta Meta) { s.l.Debug(msg, attrs(meta)...) }
func (s *slogLogger) Info(msg string, meta Meta)  { s.l.Info(msg, attrs(meta)...) }
func (s *slogLogger) Warn(msg string, meta Meta)  { s.l.Warn(msg, attrs(meta)...) }
func (s *slogLogger) Error(msg string, meta Meta) { s.l.Error(msg, attrs(meta)...) }

// attrs flattens a Meta map into slog key/value arguments.
func attrs(meta Meta) []any {
	if len(meta) == 0 {
		return nil
	}
	out := make([]any, 0, len(meta)*2)
	for k, v := range meta {
		out = append(out, k, v)
	}
	return out
}
