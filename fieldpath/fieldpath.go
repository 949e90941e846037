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

package fieldpath

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Path is the canonical, validated representation of a dotted field path.
//
// Paths are dot-separated member names, each optionally followed by one or
// more bracketed numeric indices. Examples of valid paths:
//
//   - "model"
//   - "messages[0].role"
//   - "choices[0].deltas[2]"
//
// The intent is to make it cheap for validation schemas to address nested
// payload fields, and for reports to echo the exact location back to the
// client.
type Path string

// MaxLength is the maximum length for a valid path. 256 characters is enough
// for deeply nested payloads while preventing unbounded caller input.
const MaxLength = 256

const (
	// pathFmt is the canonical regular expression used to validate paths.
	//
	// Each segment:
	//
	//   - starts with an ASCII letter or underscore;
	//   - continues with letters, digits, underscore or dash;
	//   - may be followed by one or more "[<digits>]" index suffixes.
	//
	// Examples that DO NOT match:
	//
	//	".model"        (leading dot)
	//	"messages[]"    (empty index)
	//	"a..b"          (empty segment)
	//	"items[-1]"     (negative index)
	pathFmt = `^[A-Za-z_][A-Za-z0-9_-]*(\[[0-9]+\])*(\.[A-Za-z_][A-Za-z0-9_-]*(\[[0-9]+\])*)*$`
)

var pathRe = regexp.MustCompile(pathFmt)

var (
	// ErrPathInvalidFormat is returned when a path does not conform to the
	// expected format.
	ErrPathInvalidFormat = errors.New("faultline: invalid field path format")
	// ErrPathInvalidLength is returned when a path is empty or too long.
	ErrPathInvalidLength = errors.New("faultline: invalid field path length")
)

// Segment is one step of a parsed path: either an object member lookup
// (Key) or an array element lookup (Index, with IsIndex set).
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Parse takes a user-provided string, trims it and validates it.
// On success it returns a canonical Path value.
func Parse(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if err := validate(s); err != nil {
		return "", err
	}
	return Path(s), nil
}

// MustParse is the panic-on-error variant of Parse. It is useful for
// declaring schema rules in var blocks.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate checks whether the provided Path is in canonical form.
func Validate(p Path) error {
	return validate(string(p))
}

// String returns the canonical string representation of the path.
func (p Path) String() string { return string(p) }

// Segments splits the path into its lookup steps. The path is assumed to be
// valid; malformed input yields a best-effort split with unparsable pieces
// treated as member names.
func (p Path) Segments() []Segment {
	if p == "" {
		return nil
	}
	parts := strings.Split(string(p), ".")
	segs := make([]Segment, 0, len(parts))
	for _, part := range parts {
		key := part
		var indices []int
		// Peel "[n]" suffixes off the member name, innermost last.
		for {
			open := strings.IndexByte(key, '[')
			if open < 0 {
				break
			}
			closing := strings.IndexByte(key[open:], ']')
			if closing < 0 {
				break
			}
			idxStr := key[open+1 : open+closing]
			n, err := strconv.Atoi(idxStr)
			if err != nil {
				break
			}
			indices = append(indices, n)
			key = key[:open] + key[open+closing+1:]
		}
		if key != "" {
			segs = append(segs, Segment{Key: key})
		}
		for _, n := range indices {
			segs = append(segs, Segment{Index: n, IsIndex: true})
		}
	}
	return segs
}

// Resolve walks the decoded payload along the path and returns the value it
// addresses. The second return value reports presence: it is false as soon
// as any segment is absent — a missing member, an out-of-range index, or a
// container of the wrong shape. Resolution never mutates the payload.
//
// The payload is expected to be JSON-shaped: map[string]any for objects and
// []any for arrays, as produced by encoding/json into an any value.
func Resolve(data any, p Path) (any, bool) {
	cur := data
	for _, seg := range p.Segments() {
		if seg.IsIndex {
			arr, ok := cur.([]any)
			if !ok || seg.Index < 0 || seg.Index >= len(arr) {
				return nil, false
			}
			cur = arr[seg.Index]
			continue
		}
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg.Key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// validate is the internal helper that checks length and format.
func validate(s string) error {
	if len(s) == 0 || len(s) > MaxLength {
		return ErrPathInvalidLength
	}
	if !pathRe.MatchString(s) {
		return ErrPathInvalidFormat
	}
	return nil
}
