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

// Package category defines the closed error taxonomy used by faultline.
//
// A "category" is the top-level, machine-readable classification of a
// runtime failure, such as "validation_error", "rate_limit_error" or
// "server_error". Categories are meant to be:
//
//   - short and stable;
//   - lowercased;
//   - underscore-separated (not dash-separated);
//   - suitable for use in the "type" field of wire error payloads.
//
// Alongside Category, this package defines the two companion enums that a
// classification always carries: Severity (how bad the failure is for the
// operator) and RetryStrategy (what the client should do about it). Each
// category owns a fixed default HTTP status, gRPC code, severity and retry
// strategy; the classifier merges pattern-specific partials on top of those.
//
// IMPORTANT: Empty categories ("") are NOT allowed. Every classification
// MUST carry a non-empty category.
package category
