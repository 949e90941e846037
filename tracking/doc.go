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

// Package tracking correlates every request through a unique identifier and
// records its lifecycle from entry to completion.
//
// A Manager owns the active-request map and a bounded completed history.
// Begin resolves or mints a request id, builds the request metadata
// (normalized endpoint, client IP) and registers an active context.
// Complete is idempotent: whichever response-finalization hook fires first
// wins, later calls are no-ops. A periodic sweep evicts stale active
// contexts and trims history drift.
//
// Begin never fails: if anything inside request entry goes wrong, the
// manager falls back to a minimal UUID-based identity rather than blocking
// the request.
package tracking
