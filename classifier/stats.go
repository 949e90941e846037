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

package classifier

import (
	"time"

	"axisgate.dev/faultline/category"
	"axisgate.dev/faultline/internal/window"
)

// Statistics is a point-in-time snapshot of everything the classifier has
// processed. The maps are copies; mutating them does not affect the
// classifier.
type Statistics struct {
	// Total is the number of classifications performed since construction
	// or the last reset.
	Total int64

	// Retryable counts classifications whose verdict was retryable.
	Retryable int64

	// ByCategory and BySeverity break Total down by verdict.
	ByCategory map[category.Category]int64
	BySeverity map[category.Severity]int64

	// AverageProcessing is the mean classification latency over the most
	// recent sample window (at most the configured window size).
	AverageProcessing time.Duration

	// LastProcessed is when the most recent classification finished. Zero
	// if nothing was classified yet.
	LastProcessed time.Time
}

// Statistics returns a snapshot of the rolling counters.
func (c *Classifier) Statistics() Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Statistics{
		Total:             c.total,
		Retryable:         c.retryable,
		ByCategory:        make(map[category.Category]int64, len(c.byCategory)),
		BySeverity:        make(map[category.Severity]int64, len(c.bySeverity)),
		AverageProcessing: time.Duration(c.samples.Average()),
		LastProcessed:     c.last,
	}
	for k, v := range c.byCategory {
		s.ByCategory[k] = v
	}
	for k, v := range c.bySeverity {
		s.BySeverity[k] = v
	}
	return s
}

// ResetStatistics zeroes all counters and drops the latency samples. The
// pattern list is unaffected.
func (c *Classifier) ResetStatistics() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = 0
	c.retryable = 0
	c.byCategory = make(map[category.Category]int64)
	c.bySeverity = make(map[category.Severity]int64)
	c.samples = window.New[int64](c.windowSize)
	c.last = time.Time{}
}
