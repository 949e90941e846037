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

// Package response assembles the wire error payload from a classification or
// a validation report.
//
// The factory is a pure transformation boundary: it holds no state, never
// fails, and drops any sub-field that cannot be serialized rather than
// aborting the response. Write carries a last-resort hand-built JSON body
// for the case where encoding the payload itself fails.
package response
