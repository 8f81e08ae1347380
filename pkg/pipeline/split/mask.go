/*
 * Copyright (C) 2022 IBM, Inc.
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

package split

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// DefaultTrainFraction is the fraction of every class used for training.
const DefaultTrainFraction = 0.75

// Mask marks every window as a training or a testing one. Test is always the negation of Train.
type Mask struct {
	Train []bool
	Test  []bool
}

// Build makes a mask over class blocks laid out one after the other, in counts order. In every block,
// ceil(count*p) windows are marked for training. When rng is nil the training windows are the first ones
// of each block, otherwise their positions are shuffled within the block.
func Build(counts []int, p float64, rng *rand.Rand) (Mask, error) {
	if p < 0 || p > 1 || math.IsNaN(p) {
		return Mask{}, fmt.Errorf("train fraction must be in [0, 1], got %v", p)
	}
	total := 0
	for _, c := range counts {
		if c < 0 {
			return Mask{}, fmt.Errorf("class count must not be negative, got %d", c)
		}
		total += c
	}

	train := make([]bool, 0, total)
	for _, c := range counts {
		trueAmount := int(math.Ceil(float64(c) * p))
		block := make([]bool, c)
		for i := 0; i < trueAmount; i++ {
			block[i] = true
		}
		if rng != nil {
			rng.Shuffle(len(block), func(i, j int) {
				block[i], block[j] = block[j], block[i]
			})
		}
		train = append(train, block...)
	}
	return fromTrain(train), nil
}

func fromTrain(train []bool) Mask {
	test := make([]bool, len(train))
	for i, t := range train {
		test[i] = !t
	}
	return Mask{Train: train, Test: test}
}

// Filter keeps the positions listed in indexes, in that order.
func (m Mask) Filter(indexes []int) (Mask, error) {
	train := make([]bool, len(indexes))
	for i, idx := range indexes {
		if idx < 0 || idx >= len(m.Train) {
			return Mask{}, fmt.Errorf("index %d out of range for a mask of %d windows", idx, len(m.Train))
		}
		train[i] = m.Train[idx]
	}
	return fromTrain(train), nil
}

func (m Mask) Len() int {
	return len(m.Train)
}

func (m Mask) TrainCount() int {
	return count(m.Train)
}

func (m Mask) TestCount() int {
	return count(m.Test)
}

func count(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
