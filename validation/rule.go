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
	"regexp"

	"axisgate.dev/faultline/fieldpath"
)

// Stable field-error codes. These appear on the wire in the "code" field of
// invalid_fields entries and must not change.
const (
	CodeRequiredMissing = "REQUIRED_FIELD_MISSING"
	CodeInvalidType     = "INVALID_TYPE"
	CodeTooShort        = "TOO_SHORT"
	CodeTooLong         = "TOO_LONG"
	CodeInvalidFormat   = "INVALID_FORMAT"
	CodeInvalidEnum     = "INVALID_ENUM_VALUE"
	CodeCustomFailed    = "CUSTOM_VALIDATION_FAILED"
	CodeSystemError     = "VALIDATION_SYSTEM_ERROR"
)

// Value types a rule may require. They mirror the JSON type vocabulary; a
// decoded payload is expected to be the output of encoding/json into
// map[string]any, so "number" covers float64 and the integral Go types.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Rule binds one field path to a set of constraints. Constraints are applied
// in a fixed sequence (type, length, pattern, enum, custom) and a single
// value may accumulate several errors; only a missing required value
// short-circuits.
type Rule struct {
	// Field is the display name used in error messages, typically the last
	// path segment.
	Field string

	// Path locates the value inside the decoded payload.
	Path fieldpath.Path

	// Required rejects absent, null and empty-string values.
	Required bool

	// Type, when non-empty, is one of the Type* constants.
	Type string

	// MinLength and MaxLength bound string lengths. Nil means unbounded.
	// Both are ignored for non-string values.
	MinLength *int
	MaxLength *int

	// Pattern, when non-nil, must match string values in full or in part per
	// the expression itself. Ignored for non-string values.
	Pattern *regexp.Regexp

	// Enum, when non-empty, is the closed set of allowed values.
	Enum []any

	// Check is an optional custom predicate. A non-nil return value fails
	// the rule with CUSTOM_VALIDATION_FAILED and the error text as message.
	Check func(value any) error

	// Description documents the constraint for report consumers.
	Description string
}

// MinLen and MaxLen are literal-friendly helpers for rule construction.
func MinLen(n int) *int { return &n }
func MaxLen(n int) *int { return &n }

// typeMatches reports whether v satisfies the named type.
func typeMatches(typ string, v any) bool {
	switch typ {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeNumber:
		switch v.(type) {
		case float64, float32, int, int32, int64:
			return true
		}
		return false
	case TypeInteger:
		switch n := v.(type) {
		case int, int32, int64:
			return true
		case float64:
			return n == float64(int64(n))
		}
		return false
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeArray:
		_, ok := v.([]any)
		return ok
	case TypeObject:
		_, ok := v.(map[string]any)
		return ok
	}
	return false
}
