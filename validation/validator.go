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
	"reflect"
	"strings"
	"sync"
	"time"

	"axisgate.dev/faultline"
	"axisgate.dev/faultline/apis"
	"axisgate.dev/faultline/category"
	"axisgate.dev/faultline/fieldpath"
	"axisgate.dev/faultline/internal/window"
)

// DefaultWindowSize is the number of processing-time samples kept for the
// validator's rolling average.
const DefaultWindowSize = 1000

// Validator checks decoded payloads against registered schemas. Safe for
// concurrent use; the registry and the statistics each sit behind their own
// lock.
type Validator struct {
	registry *Registry
	cls      apis.Classifier
	settings apis.Settings
	log      apis.Logger

	mu         sync.Mutex
	windowSize int
	samples    *window.Window[int64] // nanoseconds
	total      int64
	invalid    int64
	last       time.Time

	now func() time.Time
}

// Option configures a Validator at construction.
type Option func(*Validator)

// WithRegistry supplies a schema registry. Defaults to NewRegistry with the
// built-in schemas.
func WithRegistry(r *Registry) Option {
	return func(v *Validator) { v.registry = r }
}

// WithClassifier supplies the classifier used for the aggregate verdict of
// invalid payloads. Without one, reports carry a fixed validation-error
// classification.
func WithClassifier(c apis.Classifier) Option {
	return func(v *Validator) { v.cls = c }
}

// WithSettings supplies runtime settings; controls the debug payload on
// reports.
func WithSettings(s apis.Settings) Option {
	return func(v *Validator) { v.settings = s }
}

// WithLogger supplies the logger for internal faults.
func WithLogger(l apis.Logger) Option {
	return func(v *Validator) { v.log = l }
}

// WithWindowSize overrides the processing-time sample window. Values below 1
// are ignored.
func WithWindowSize(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.windowSize = n
		}
	}
}

// New constructs a Validator with the built-in schemas and applies opts.
func New(opts ...Option) *Validator {
	v := &Validator{
		windowSize: DefaultWindowSize,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.registry == nil {
		v.registry = NewRegistry()
	}
	if v.settings == nil {
		v.settings = apis.StaticSettings{}
	}
	if v.log == nil {
		v.log = apis.NopLogger{}
	}
	v.samples = window.New[int64](v.windowSize)
	return v
}

// RegisterSchema stores s under name, replacing any existing entry.
func (v *Validator) RegisterSchema(name string, s *Schema) {
	v.registry.Register(name, s)
}

// Validate checks data against the named schema and returns a report. It
// never returns an error: an unknown schema yields a report with a single
// system-level field error, and a panicking custom predicate fails only its
// own rule.
func (v *Validator) Validate(data map[string]any, schemaName string, vctx *Context) *Report {
	start := v.now()

	ctx := Context{}
	if vctx != nil {
		ctx = *vctx
	}
	if ctx.Timestamp.IsZero() {
		ctx.Timestamp = start
	}

	schema, ok := v.registry.Lookup(schemaName)
	if !ok {
		rep := v.systemReport(schemaName, ctx)
		rep.ProcessingTime = v.now().Sub(start)
		v.record(rep)
		return rep
	}

	var errs []FieldError
	for _, rule := range schema.Rules {
		errs = append(errs, v.checkRule(rule, data)...)
	}

	rep := &Report{
		Valid:      len(errs) == 0,
		Errors:     errs,
		ErrorCount: len(errs),
		Context:    ctx,
	}
	if !rep.Valid {
		rep.Classification = v.classifyAggregate(len(errs), ctx)
		rep.Suggestions = suggestions(errs, schema)
	}
	rep.ProcessingTime = v.now().Sub(start)
	if v.settings.DebugMode() {
		rep.Debug = map[string]any{
			"schema_name":        schemaName,
			"schema_description": schema.Description,
			"payload":            redactPayload(data),
			"processing_time":    rep.ProcessingTime.String(),
		}
		if ctx.RawBody != "" {
			rep.Debug["raw_body"] = truncate(ctx.RawBody)
		}
	}
	if v.settings.Verbose() {
		v.log.Debug("payload validated", apis.Meta{
			"schema":  schemaName,
			"valid":   rep.Valid,
			"errors":  rep.ErrorCount,
			"elapsed": rep.ProcessingTime.String(),
		})
	}
	v.record(rep)
	return rep
}

// checkRule evaluates one rule against the payload. A missing required value
// short-circuits; a present value may accumulate several violations.
func (v *Validator) checkRule(rule Rule, data map[string]any) []FieldError {
	val, present := fieldpath.Resolve(data, rule.Path)
	absent := !present || val == nil
	emptyString := false
	if s, ok := val.(string); ok && s == "" {
		emptyString = true
	}

	if rule.Required && (absent || emptyString) {
		fe := fieldError(rule, nil, CodeRequiredMissing,
			fmt.Sprintf("%s is required", rule.Field))
		fe.Suggestion = fmt.Sprintf("Include %q in the request body", rule.Field)
		return []FieldError{fe}
	}
	if absent {
		return nil
	}

	var out []FieldError
	if rule.Type != "" && !typeMatches(rule.Type, val) {
		out = append(out, fieldError(rule, val, CodeInvalidType,
			fmt.Sprintf("%s must be of type %s", rule.Field, rule.Type)))
	}
	if s, ok := val.(string); ok {
		if rule.MinLength != nil && len(s) < *rule.MinLength {
			out = append(out, fieldError(rule, val, CodeTooShort,
				fmt.Sprintf("%s must be at least %d characters", rule.Field, *rule.MinLength)))
		}
		if rule.MaxLength != nil && len(s) > *rule.MaxLength {
			out = append(out, fieldError(rule, val, CodeTooLong,
				fmt.Sprintf("%s must be at most %d characters", rule.Field, *rule.MaxLength)))
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(s) {
			fe := fieldError(rule, val, CodeInvalidFormat,
				fmt.Sprintf("%s does not match the required format", rule.Field))
			fe.Suggestion = fmt.Sprintf("Match the pattern %s", rule.Pattern.String())
			out = append(out, fe)
		}
	}
	if len(rule.Enum) > 0 && !enumContains(rule.Enum, val) {
		out = append(out, fieldError(rule, val, CodeInvalidEnum,
			fmt.Sprintf("%s must be one of the allowed values", rule.Field)))
	}
	if rule.Check != nil {
		if err := v.safeCheck(rule, val); err != nil {
			out = append(out, fieldError(rule, val, CodeCustomFailed, err.Error()))
		}
	}
	return out
}

// safeCheck runs a custom predicate, converting a panic into a rule failure
// instead of aborting the whole validation call.
func (v *Validator) safeCheck(rule Rule, val any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			v.log.Warn("custom validation predicate panicked", apis.Meta{
				"field": rule.Field,
				"panic": fmt.Sprint(r),
			})
			err = fmt.Errorf("%s failed custom validation", rule.Field)
		}
	}()
	return rule.Check(val)
}

// classifyAggregate produces the report-level verdict for an invalid
// payload. Only the error count crosses into the synthetic error; offending
// values never reach the classifier.
func (v *Validator) classifyAggregate(count int, ctx Context) *faultline.Classification {
	if v.cls == nil {
		return faultline.New(category.ValidationError, "VALIDATION_ERROR",
			"The request payload failed validation")
	}
	err := fmt.Errorf("request validation failed: %d invalid field(s)", count)
	return v.cls.Classify(err, &faultline.ErrorContext{
		RequestID: ctx.RequestID,
		Endpoint:  ctx.Endpoint,
		Method:    ctx.Method,
	})
}

// systemReport is the verdict for a schema name nothing was registered
// under. Surfaced as a report, never as an error return.
func (v *Validator) systemReport(schemaName string, ctx Context) *Report {
	v.log.Error("validation requested against unknown schema", apis.Meta{
		"schema": schemaName,
	})
	fe := FieldError{
		Field:   "schema",
		Code:    CodeSystemError,
		Message: fmt.Sprintf("no schema registered under %q", schemaName),
	}
	return &Report{
		Valid:          false,
		Errors:         []FieldError{fe},
		ErrorCount:     1,
		Classification: v.classifyAggregate(1, ctx),
		Context:        ctx,
		Suggestions:    []string{"Verify the schema name used by this endpoint"},
	}
}

// suggestions derives free-text remediation hints from the codes present.
func suggestions(errs []FieldError, schema *Schema) []string {
	var missing []string
	var hasType, hasFormat bool
	for _, e := range errs {
		switch e.Code {
		case CodeRequiredMissing:
			missing = append(missing, e.Field)
		case CodeInvalidType:
			hasType = true
		case CodeInvalidFormat:
			hasFormat = true
		}
	}

	var out []string
	if len(missing) > 0 {
		out = append(out, fmt.Sprintf("Provide the required field(s): %s", strings.Join(missing, ", ")))
	}
	if hasType {
		out = append(out, "Check that field values match the expected types")
	}
	if hasFormat {
		out = append(out, "Check field formats against the documented patterns")
	}
	if len(schema.Examples) > 0 {
		out = append(out, "Consult the schema examples for a valid payload shape")
	}
	return out
}

// fieldError assembles one violation, redacting the offending value.
func fieldError(rule Rule, val any, code, message string) FieldError {
	fe := FieldError{
		Field:      rule.Field,
		Path:       rule.Path.String(),
		Message:    message,
		Code:       code,
		Constraint: rule.Description,
	}
	if val != nil {
		fe.Value = redactValue(rule.Field, val)
	}
	return fe
}

// enumContains reports membership with numeric widening, so an enum declared
// with ints still matches JSON-decoded float64 values. reflect.DeepEqual
// keeps the comparison safe for non-comparable payload values like arrays.
func enumContains(enum []any, val any) bool {
	vf, vok := asFloat(val)
	for _, allowed := range enum {
		if reflect.DeepEqual(allowed, val) {
			return true
		}
		if af, aok := asFloat(allowed); aok && vok && af == vf {
			return true
		}
	}
	return false
}

// PerformanceStats is a point-in-time snapshot of the validator's rolling
// counters.
type PerformanceStats struct {
	// Total counts validation calls since construction.
	Total int64

	// Invalid counts calls whose report came back invalid.
	Invalid int64

	// AverageProcessing is the mean call latency over the sample window.
	AverageProcessing time.Duration

	// WindowSize is the configured sample capacity.
	WindowSize int

	// LastProcessed is when the most recent call finished.
	LastProcessed time.Time
}

// PerformanceStats returns a snapshot of the rolling counters.
func (v *Validator) PerformanceStats() PerformanceStats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return PerformanceStats{
		Total:             v.total,
		Invalid:           v.invalid,
		AverageProcessing: time.Duration(v.samples.Average()),
		WindowSize:        v.windowSize,
		LastProcessed:     v.last,
	}
}

func (v *Validator) record(rep *Report) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.total++
	if !rep.Valid {
		v.invalid++
	}
	v.samples.Add(int64(rep.ProcessingTime))
	v.last = v.now()
}
