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

// Package validation checks decoded request payloads against declarative
// schemas and produces structured error reports.
//
// A Schema is an ordered list of rules, each binding a dotted field path to
// constraints (required, type, string length, pattern, enum, custom
// predicate). Schemas are registered by name in a Registry, either in code or
// loaded from YAML documents, and looked up per validation call.
//
// Validate never returns an error: an unknown schema yields a report carrying
// a single system-level field error, and internal faults degrade to a report
// rather than propagating. Every value placed into a report passes through
// redaction first, so secrets never leak into responses or logs.
package validation
