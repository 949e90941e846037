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

// Package window implements a bounded sliding window of numeric samples.
//
// The classifier keeps the last 100 processing-time samples, the validator
// the last 1000; both compute a rolling average from the window. The window
// is a plain ring buffer: once full, every Add evicts the oldest sample.
//
// Window is not safe for concurrent use on its own; each owning component
// guards its window with the same mutex that guards the rest of its
// statistics.
package window

// Number constrains the sample types a window can hold.
type Number interface {
	~int | ~int64 | ~float64
}

// Window is a fixed-capacity ring buffer of numeric samples with a running
// sum, so Average is O(1) regardless of capacity.
type Window[T Number] struct {
	samples []T
	next    int
	filled  bool
	sum     T
}

// New creates a window holding at most capacity samples.
// A capacity below 1 is coerced to 1.
func New[T Number](capacity int) *Window[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Window[T]{samples: make([]T, capacity)}
}

// Add records one sample, evicting the oldest if the window is full.
func (w *Window[T]) Add(v T) {
	if w.filled {
		w.sum -= w.samples[w.next]
	}
	w.samples[w.next] = v
	w.sum += v
	w.next++
	if w.next == len(w.samples) {
		w.next = 0
		w.filled = true
	}
}

// Len returns the number of samples currently held.
func (w *Window[T]) Len() int {
	if w.filled {
		return len(w.samples)
	}
	return w.next
}

// Cap returns the window capacity.
func (w *Window[T]) Cap() int { return len(w.samples) }

// Average returns the mean of the held samples as float64.
// An empty window averages to 0.
func (w *Window[T]) Average() float64 {
	n := w.Len()
	if n == 0 {
		return 0
	}
	return float64(w.sum) / float64(n)
}

// Reset drops all samples.
func (w *Window[T]) Reset() {
	clear(w.samples)
	w.next = 0
	w.filled = false
	w.sum = 0
}
