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

package validation

import (
	"fmt"
	"strings"
)

// RedactionMarker replaces any value held under a sensitive key.
const RedactionMarker = "[REDACTED]"

// MaxValueLength bounds string values placed into reports; longer strings
// are truncated with an indicator.
const MaxValueLength = 100

// sensitiveKeywords flag a key as secret-bearing when it contains any of
// them, case-insensitively. "apikey" also covers "api_key" and "api-key"
// because keys are squashed before matching.
var sensitiveKeywords = []string{
	"apikey",
	"password",
	"token",
	"secret",
	"auth",
	"credential",
	"sessionkey",
	"privatekey",
}

// sensitiveKey reports whether key names a value that must never appear in
// a report or response.
func sensitiveKey(key string) bool {
	squashed := strings.ToLower(key)
	squashed = strings.NewReplacer("_", "", "-", "", " ", "").Replace(squashed)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(squashed, kw) {
			return true
		}
	}
	return false
}

// redactValue prepares one value, held under key, for inclusion in a report:
// sensitive keys become the redaction marker, long strings are truncated,
// and containers are walked recursively.
func redactValue(key string, v any) any {
	if sensitiveKey(key) {
		return RedactionMarker
	}
	switch t := v.(type) {
	case string:
		return truncate(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = redactValue(k, inner)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = redactValue(key, inner)
		}
		return out
	default:
		return v
	}
}

// redactPayload walks a whole decoded payload for debug inclusion.
func redactPayload(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = redactValue(k, v)
	}
	return out
}

func truncate(s string) string {
	if len(s) <= MaxValueLength {
		return s
	}
	return fmt.Sprintf("%s... (truncated, %d chars)", s[:MaxValueLength], len(s))
}
