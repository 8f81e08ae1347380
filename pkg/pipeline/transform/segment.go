/*
 * Copyright (C) 2021 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package transform

import (
	"errors"
	"fmt"
)

const defaultWindowSize = 500

// Window is a fixed-length chunk of a raw series.
type Window []float64

// Segment cuts raw into ceil(len(raw)/size) windows of exactly size samples.
// The last window is padded by repeating the final raw sample.
func Segment(raw []float64, size int) ([]Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}
	if len(raw) == 0 {
		return nil, errors.New("cannot segment an empty series")
	}

	count := (len(raw) + size - 1) / size
	windows := make([]Window, count)
	last := raw[len(raw)-1]
	for i := range windows {
		w := make(Window, size)
		n := copy(w, raw[i*size:])
		for j := n; j < size; j++ {
			w[j] = last
		}
		windows[i] = w
	}
	return windows, nil
}

// WindowSize returns size, or the default window size when unset.
func WindowSize(size int) int {
	if size == 0 {
		return defaultWindowSize
	}
	return size
}
