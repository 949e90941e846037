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
	"axisgate.dev/faultline/apis"
)

// builder collects construction-time settings before the Classifier exists.
type builder struct {
	front      []Pattern
	settings   apis.Settings
	log        apis.Logger
	windowSize int
}

// Option configures a Classifier at construction.
type Option func(*builder)

// WithPattern inserts a pattern ahead of the built-in defaults. Multiple
// WithPattern options keep their relative order, and all of them outrank
// every default pattern.
func WithPattern(p Pattern) Option {
	return func(b *builder) {
		b.front = append(b.front, p)
	}
}

// WithSettings supplies runtime settings; controls whether classifications
// carry a debug payload. Defaults to all-off static settings.
func WithSettings(s apis.Settings) Option {
	return func(b *builder) {
		b.settings = s
	}
}

// WithLogger supplies the logger for predicate panics and internal faults.
// Defaults to a no-op logger.
func WithLogger(l apis.Logger) Option {
	return func(b *builder) {
		b.log = l
	}
}

// WithWindowSize overrides the processing-time sample window. Values below 1
// are ignored.
func WithWindowSize(n int) Option {
	return func(b *builder) {
		if n > 0 {
			b.windowSize = n
		}
	}
}
