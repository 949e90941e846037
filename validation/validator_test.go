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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axisgate.dev/faultline/apis"
	"axisgate.dev/faultline/category"
	"axisgate.dev/faultline/classifier"
	"axisgate.dev/faultline/fieldpath"
)

func TestValidateChatCompletionValid(t *testing.T) {
	v := New()
	rep := v.Validate(map[string]any{
		"model":    "gpt-4",
		"messages": []any{map[string]any{"role": "user", "content": "hi"}},
	}, "chat_completion", nil)

	require.NotNil(t, rep)
	assert.True(t, rep.Valid)
	assert.Empty(t, rep.Errors)
	assert.Nil(t, rep.Classification)
}

func TestValidateMissingRequiredField(t *testing.T) {
	v := New()
	rep := v.Validate(map[string]any{"model": "x"}, "chat_completion", nil)

	require.False(t, rep.Valid)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, "messages", rep.Errors[0].Field)
	assert.Equal(t, CodeRequiredMissing, rep.Errors[0].Code)
	require.NotNil(t, rep.Classification)
	assert.Equal(t, category.ValidationError, rep.Classification.Category)
	assert.Contains(t, strings.Join(rep.Suggestions, "\n"), "messages")
}

func TestValidateTemperatureRange(t *testing.T) {
	v := New()
	rep := v.Validate(map[string]any{
		"model":       "x",
		"messages":    []any{},
		"temperature": float64(5),
	}, "chat_completion", nil)

	require.False(t, rep.Valid)
	errs := rep.ErrorsFor("temperature")
	require.Len(t, errs, 1)
	assert.Equal(t, CodeCustomFailed, errs[0].Code)
}

func TestValidateRequiredShortCircuits(t *testing.T) {
	v := New()
	v.RegisterSchema("strict", &Schema{
		Rules: []Rule{{
			Field:     "name",
			Path:      fieldpath.MustParse("name"),
			Required:  true,
			Type:      TypeString,
			MinLength: MinLen(3),
		}},
	})

	// Empty string is treated as missing: exactly one error, the required
	// one, with no length or type errors piled on.
	rep := v.Validate(map[string]any{"name": ""}, "strict", nil)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, CodeRequiredMissing, rep.Errors[0].Code)
}

func TestValidateAccumulatesPerField(t *testing.T) {
	v := New()
	v.RegisterSchema("strict", &Schema{
		Rules: []Rule{{
			Field:     "code",
			Path:      fieldpath.MustParse("code"),
			Type:      TypeString,
			MinLength: MinLen(5),
			Pattern:   sessionIDRe,
		}},
	})

	rep := v.Validate(map[string]any{"code": "a b"}, "strict", nil)
	codes := rep.Codes()
	assert.Contains(t, codes, CodeTooShort)
	assert.Contains(t, codes, CodeInvalidFormat)
}

func TestValidateTypeMismatch(t *testing.T) {
	v := New()
	rep := v.Validate(map[string]any{
		"model":    42.0,
		"messages": "not an array",
	}, "chat_completion", nil)

	require.False(t, rep.Valid)
	assert.Equal(t, CodeInvalidType, rep.ErrorsFor("model")[0].Code)
	assert.Equal(t, CodeInvalidType, rep.ErrorsFor("messages")[0].Code)
}

func TestValidateEnum(t *testing.T) {
	v := New()
	v.RegisterSchema("role", &Schema{
		Rules: []Rule{{
			Field: "role",
			Path:  fieldpath.MustParse("role"),
			Enum:  []any{"user", "assistant", "system"},
		}},
	})

	assert.True(t, v.Validate(map[string]any{"role": "user"}, "role", nil).Valid)

	rep := v.Validate(map[string]any{"role": "robot"}, "role", nil)
	require.False(t, rep.Valid)
	assert.Equal(t, CodeInvalidEnum, rep.Errors[0].Code)
}

func TestValidateUnknownSchema(t *testing.T) {
	v := New()
	rep := v.Validate(map[string]any{}, "no_such_schema", nil)

	require.False(t, rep.Valid)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, CodeSystemError, rep.Errors[0].Code)
	assert.NotNil(t, rep.Classification)
}

func TestValidateSessionSchema(t *testing.T) {
	v := New()

	assert.True(t, v.Validate(map[string]any{
		"session_id": "sess_Abc-123",
		"title":      "My chat",
	}, "session", nil).Valid)

	rep := v.Validate(map[string]any{"session_id": "bad id!"}, "session", nil)
	require.False(t, rep.Valid)
	assert.Equal(t, CodeInvalidFormat, rep.Errors[0].Code)

	rep = v.Validate(map[string]any{"title": strings.Repeat("t", 201)}, "session", nil)
	require.False(t, rep.Valid)
	assert.Equal(t, CodeTooLong, rep.Errors[0].Code)
}

func TestValidateNestedPath(t *testing.T) {
	v := New()
	v.RegisterSchema("nested", &Schema{
		Rules: []Rule{{
			Field:    "content",
			Path:     fieldpath.MustParse("messages[0].content"),
			Required: true,
			Type:     TypeString,
		}},
	})

	assert.True(t, v.Validate(map[string]any{
		"messages": []any{map[string]any{"content": "hi"}},
	}, "nested", nil).Valid)

	// Absent array propagates absence to the leaf.
	rep := v.Validate(map[string]any{}, "nested", nil)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, CodeRequiredMissing, rep.Errors[0].Code)
}

func TestRedactionInReport(t *testing.T) {
	v := New(WithSettings(apis.StaticSettings{Debug: true}))
	v.RegisterSchema("keys", &Schema{
		Rules: []Rule{{
			Field:     "api_key",
			Path:      fieldpath.MustParse("api_key"),
			Type:      TypeString,
			MinLength: MinLen(64),
		}},
	})

	rep := v.Validate(map[string]any{"api_key": "sk-live-123"}, "keys", nil)
	require.False(t, rep.Valid)

	// The secret must not appear anywhere in the report.
	flat := fmt.Sprintf("%+v", rep)
	assert.NotContains(t, flat, "sk-live-123")
	assert.Equal(t, RedactionMarker, rep.Errors[0].Value)
	assert.Equal(t, RedactionMarker, rep.Debug["payload"].(map[string]any)["api_key"])
}

func TestRedactionTruncatesLongValues(t *testing.T) {
	long := strings.Repeat("x", 500)
	v := New()
	v.RegisterSchema("short", &Schema{
		Rules: []Rule{{
			Field:     "note",
			Path:      fieldpath.MustParse("note"),
			Type:      TypeString,
			MaxLength: MaxLen(10),
		}},
	})

	rep := v.Validate(map[string]any{"note": long}, "short", nil)
	require.False(t, rep.Valid)
	got, ok := rep.Errors[0].Value.(string)
	require.True(t, ok)
	assert.Less(t, len(got), 200)
	assert.Contains(t, got, "truncated")
}

func TestSensitiveKeyMatching(t *testing.T) {
	for _, key := range []string{"api_key", "API-Key", "Authorization", "client_secret", "refreshToken", "db_password", "credentials"} {
		assert.True(t, sensitiveKey(key), key)
	}
	for _, key := range []string{"model", "title", "messages", "author"} {
		assert.False(t, sensitiveKey(key), key)
	}
}

func TestPanickingCustomCheckFailsOnlyItsRule(t *testing.T) {
	v := New()
	v.RegisterSchema("panicky", &Schema{
		Rules: []Rule{
			{
				Field: "a",
				Path:  fieldpath.MustParse("a"),
				Check: func(any) error { panic("predicate bug") },
			},
			{
				Field:    "b",
				Path:     fieldpath.MustParse("b"),
				Required: true,
			},
		},
	})

	rep := v.Validate(map[string]any{"a": 1.0, "b": "ok"}, "panicky", nil)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, CodeCustomFailed, rep.Errors[0].Code)
	assert.Equal(t, "a", rep.Errors[0].Field)
}

func TestValidatorWithClassifier(t *testing.T) {
	v := New(WithClassifier(classifier.New()))
	rep := v.Validate(map[string]any{}, "chat_completion", &Context{
		Endpoint: "/v1/chat/completions",
		Method:   "POST",
	})

	require.False(t, rep.Valid)
	require.NotNil(t, rep.Classification)
	assert.Equal(t, category.ValidationError, rep.Classification.Category)
	assert.Equal(t, 400, rep.Classification.HTTPStatus)
	assert.False(t, rep.Classification.Retryable)
}

func TestDebugGating(t *testing.T) {
	payload := map[string]any{"model": "x"}

	rep := New().Validate(payload, "chat_completion", nil)
	assert.Nil(t, rep.Debug)

	rep = New(WithSettings(apis.StaticSettings{Debug: true})).Validate(payload, "chat_completion", nil)
	require.NotNil(t, rep.Debug)
	assert.Equal(t, "chat_completion", rep.Debug["schema_name"])
}

func TestDebugRawBody(t *testing.T) {
	payload := map[string]any{"model": "x"}
	ctx := &Context{RawBody: `{"model":"x"}`}

	rep := New().Validate(payload, "chat_completion", ctx)
	assert.Nil(t, rep.Debug, "raw body must not surface outside debug mode")

	v := New(WithSettings(apis.StaticSettings{Debug: true}))
	rep = v.Validate(payload, "chat_completion", ctx)
	require.NotNil(t, rep.Debug)
	assert.Equal(t, `{"model":"x"}`, rep.Debug["raw_body"])

	long := &Context{RawBody: strings.Repeat("a", 500)}
	rep = v.Validate(payload, "chat_completion", long)
	require.NotNil(t, rep.Debug)
	assert.Contains(t, rep.Debug["raw_body"], "truncated, 500 chars")

	rep = v.Validate(payload, "chat_completion", nil)
	require.NotNil(t, rep.Debug)
	assert.NotContains(t, rep.Debug, "raw_body")
}

func TestPerformanceStats(t *testing.T) {
	v := New()
	v.Validate(map[string]any{"model": "x"}, "chat_completion", nil)
	v.Validate(map[string]any{
		"model":    "x",
		"messages": []any{},
	}, "chat_completion", nil)

	s := v.PerformanceStats()
	assert.Equal(t, int64(2), s.Total)
	assert.Equal(t, int64(1), s.Invalid)
	assert.Equal(t, DefaultWindowSize, s.WindowSize)
	assert.False(t, s.LastProcessed.IsZero())
}

func TestRegistryLoadYAML(t *testing.T) {
	doc := []byte(`
name: feedback
description: User feedback payload
rules:
  - field: rating
    path: rating
    required: true
    type: integer
  - path: comment
    type: string
    max_length: 200
  - field: kind
    path: kind
    enum: [bug, praise, question]
examples:
  - rating: 5
    kind: praise
`)
	r := NewRegistry()
	require.NoError(t, r.LoadYAML(doc))

	s, ok := r.Lookup("feedback")
	require.True(t, ok)
	assert.Equal(t, "feedback", s.Name)
	require.Len(t, s.Rules, 3)
	assert.Equal(t, "comment", s.Rules[1].Field) // derived from path

	v := New(WithRegistry(r))
	rep := v.Validate(map[string]any{"rating": 4.0, "kind": "bug"}, "feedback", nil)
	assert.True(t, rep.Valid)

	rep = v.Validate(map[string]any{"kind": "rant"}, "feedback", nil)
	codes := rep.Codes()
	assert.Contains(t, codes, CodeRequiredMissing)
	assert.Contains(t, codes, CodeInvalidEnum)
}

func TestRegistryLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feedback.yaml"), []byte(`
name: feedback
rules:
  - field: rating
    path: rating
    required: true
    type: integer
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	r := NewRegistry()
	require.NoError(t, r.LoadDir(dir))
	_, ok := r.Lookup("feedback")
	assert.True(t, ok)
}

func TestRegistryLoadYAMLRejectsBadDocuments(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.LoadYAML([]byte("rules: []")))                        // no name
	assert.Error(t, r.LoadYAML([]byte("name: x")))                          // no rules
	assert.Error(t, r.LoadYAML([]byte("name: x\nrules:\n  - field: a")))    // no path
	assert.Error(t, r.LoadYAML([]byte("name: x\nrules:\n  - path: \"9a\""))) // bad path
}

func TestRegisterSchemaOverwrites(t *testing.T) {
	v := New()
	v.RegisterSchema("chat_completion", &Schema{
		Rules: []Rule{{
			Field:    "prompt",
			Path:     fieldpath.MustParse("prompt"),
			Required: true,
		}},
	})

	rep := v.Validate(map[string]any{"model": "x"}, "chat_completion", nil)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, "prompt", rep.Errors[0].Field)
}
