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

// Package classifier maps arbitrary runtime failures to faultline
// classifications.
//
// The classifier holds an ordered list of patterns. Each pattern is a
// predicate over the observed error plus a partial classification; the first
// pattern whose predicate matches supplies the partial, which is merged onto
// the category defaults. Anything unmatched falls through to a conservative
// server-error verdict.
//
// Resolution order (highest to lowest):
//
//  1. caller patterns registered at construction (ahead of defaults);
//  2. the built-in default patterns, in their fixed order;
//  3. patterns appended later via RegisterPattern;
//  4. the hardcoded fallback (server error, HTTP 500).
//
// Classify never panics: a panicking predicate is skipped and logged, and a
// panic anywhere else inside classification resolves to the fallback
// verdict. The classifier also keeps rolling statistics (totals per category
// and severity, retryable count, average processing time over a bounded
// sample window).
package classifier
