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
	"regexp"

	"axisgate.dev/faultline/fieldpath"
)

var sessionIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Schema is a named, ordered list of rules plus documentation. Schemas are
// immutable after registration; re-registering a name replaces the whole
// schema.
type Schema struct {
	// Name is set by the registry at registration time.
	Name string

	// Description documents what payloads the schema covers.
	Description string

	// Rules are evaluated in declaration order.
	Rules []Rule

	// Examples holds valid example payloads, referenced by suggestions.
	Examples []map[string]any
}

// ChatCompletionSchema describes the chat-completion request payload.
// Registered out of the box under the name "chat_completion".
func ChatCompletionSchema() *Schema {
	return &Schema{
		Description: "Chat completion request",
		Rules: []Rule{
			{
				Field:       "model",
				Path:        fieldpath.MustParse("model"),
				Required:    true,
				Type:        TypeString,
				Description: "target model identifier",
			},
			{
				Field:       "messages",
				Path:        fieldpath.MustParse("messages"),
				Required:    true,
				Type:        TypeArray,
				Description: "conversation messages",
			},
			{
				Field:       "temperature",
				Path:        fieldpath.MustParse("temperature"),
				Type:        TypeNumber,
				Description: "sampling temperature, 0 to 2",
				Check: func(v any) error {
					n, ok := asFloat(v)
					if !ok {
						return nil // type rule already reported it
					}
					if n < 0 || n > 2 {
						return fmt.Errorf("temperature must be between 0 and 2, got %v", n)
					}
					return nil
				},
			},
			{
				Field:       "max_tokens",
				Path:        fieldpath.MustParse("max_tokens"),
				Type:        TypeNumber,
				Description: "maximum tokens to generate, positive",
				Check: func(v any) error {
					n, ok := asFloat(v)
					if !ok {
						return nil
					}
					if n <= 0 {
						return fmt.Errorf("max_tokens must be positive, got %v", n)
					}
					return nil
				},
			},
		},
		Examples: []map[string]any{
			{
				"model":    "gpt-4",
				"messages": []any{map[string]any{"role": "user", "content": "Hello"}},
			},
		},
	}
}

// SessionSchema describes the session payload. Registered out of the box
// under the name "session".
func SessionSchema() *Schema {
	return &Schema{
		Description: "Session create or update request",
		Rules: []Rule{
			{
				Field:       "session_id",
				Path:        fieldpath.MustParse("session_id"),
				Type:        TypeString,
				Pattern:     sessionIDRe,
				Description: "opaque session token, alphanumeric with _ and -",
			},
			{
				Field:       "title",
				Path:        fieldpath.MustParse("title"),
				Type:        TypeString,
				MaxLength:   MaxLen(200),
				Description: "display title, at most 200 characters",
			},
		},
	}
}

// asFloat widens any numeric payload value to float64.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
