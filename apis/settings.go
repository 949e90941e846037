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

// Settings is the narrow configuration surface the pipeline consumes.
// Package config provides the viper-backed implementation; tests typically
// use StaticSettings.
type Settings interface {
	// DebugMode reports whether debug payloads (stack traces, raw context,
	// schema descriptions) may be attached to classifications, reports and
	// responses. MUST be false in production.
	DebugMode() bool

	// Verbose reports whether the pipeline should log per-operation detail
	// (matched patterns, per-field validation outcomes).
	Verbose() bool
}

// StaticSettings is a fixed-value Settings implementation.
type StaticSettings struct {
	Debug       bool
	VerboseLogs bool
}

func (s StaticSettings) DebugMode() bool { return s.Debug }
func (s StaticSettings) Verbose() bool   { return s.VerboseLogs }
