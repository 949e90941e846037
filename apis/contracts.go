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

package apis

import (
	"axisgate.dev/faultline"
)

// Classifier is the classification surface consumed by the validator and by
// the transport adapters. The concrete implementation lives in package
// classifier.
//
// Classify MUST never panic, MUST accept any error value (including nil)
// and MUST always return a non-nil classification — internal faults resolve
// to a conservative server-error verdict instead of propagating.
type Classifier interface {
	Classify(err error, ectx *faultline.ErrorContext) *faultline.Classification
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(err error, ectx *faultline.ErrorContext) *faultline.Classification

// Classify calls f.
func (f ClassifierFunc) Classify(err error, ectx *faultline.ErrorContext) *faultline.Classification {
	return f(err, ectx)
}
