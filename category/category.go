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

package category

import (
	"errors"
	"regexp"
	"strings"
)

// Category names one bucket of the error taxonomy. Values are snake_case
// identifiers so they can travel unescaped through JSON bodies, log fields,
// and gRPC metadata. The taxonomy ships a fixed set (see All), but classifier
// patterns may introduce their own categories as long as they satisfy
// Validate; unknown-but-valid categories fall back to the server-error
// defaults when mapped.
type Category string

// categoryRe accepts a lowercase letter followed by 2 to 63 lowercase
// letters, digits, or underscores. The lower bound keeps cryptic
// two-character identifiers out of client-facing responses; the upper bound
// keeps header and log-field values bounded.
var categoryRe = regexp.MustCompile(`^[a-z][a-z0-9_]{2,63}$`)

// ErrCategoryInvalid is returned when a string cannot serve as a category,
// even after normalization.
var ErrCategoryInvalid = errors.New("faultline: invalid category")

// Parse normalizes s and returns it as a Category, or ErrCategoryInvalid if
// the normalized form still fails validation. This is the front door for
// category values arriving from classifier patterns or configuration; the
// declared constants bypass it.
func Parse(s string) (Category, error) {
	c := Category(Normalize(s))
	if err := Validate(c); err != nil {
		return "", err
	}
	return c, nil
}

// Normalize lowercases s, trims surrounding whitespace, and rewrites hyphens
// to underscores. It does not validate; use Parse for that.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "-", "_")
}

// Validate reports whether c is a well-formed category identifier. Shape
// only; it does not require membership in the built-in taxonomy.
func Validate(c Category) error {
	if !categoryRe.MatchString(string(c)) {
		return ErrCategoryInvalid
	}
	return nil
}

// String returns the category identifier.
func (c Category) String() string {
	return string(c)
}
