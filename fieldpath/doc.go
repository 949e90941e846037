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

// Package fieldpath provides parsing, validation and value resolution for
// dotted field paths into JSON-shaped request payloads.
//
// A path addresses one field inside a decoded payload, with dots for object
// members and bracketed numeric indices for array elements:
//
//   - "model"
//   - "user.profile.email"
//   - "messages[0].role"
//
// Validation schemas bind rules to such paths; the validator resolves each
// path against the payload before applying the rule's constraints. Resolution
// stops as soon as any segment is absent — an absent field is reported as
// "not present", never as an error of this package.
package fieldpath
