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

// Package apis defines the public Go-level contracts of the faultline
// pipeline.
//
// The goal of this package is to provide *small, composable* interfaces that
// the pipeline packages can depend on without importing each other's
// concrete implementations: the logger the whole pipeline writes to, the
// settings object it reads flags from, and the classification surface the
// validator and transport adapters consume.
//
// This package must remain lightweight and should not introduce heavy
// dependencies, so it only contains interfaces and very small adapters.
package apis
