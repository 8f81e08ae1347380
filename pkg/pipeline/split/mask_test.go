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
	"testing"

	"github.com/netobserv/vibration-gcn/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireComplementary(t *testing.T, m Mask) {
	t.Helper()
	require.Len(t, m.Test, len(m.Train))
	for i := range m.Train {
		require.NotEqual(t, m.Train[i], m.Test[i], "position %d", i)
	}
	require.Equal(t, m.Len(), m.TrainCount()+m.TestCount())
}

func TestBuildUnshuffled(t *testing.T) {
	m, err := Build([]int{4, 3}, 0.5, nil)
	require.NoError(t, err)
	require.Equal(t, []bool{true, true, false, false, true, true, false}, m.Train)
	requireComplementary(t, m)
}

func TestBuildCounts(t *testing.T) {
	type tt struct {
		counts []int
		p      float64
		train  []int
	}
	for _, c := range []tt{
		{counts: []int{100, 100}, p: 0.75, train: []int{75, 75}},
		{counts: []int{2, 2}, p: 0.75, train: []int{2, 2}},
		{counts: []int{2, 2}, p: 0.5, train: []int{1, 1}},
		{counts: []int{10, 7}, p: 0.01, train: []int{1, 1}},
		{counts: []int{10, 7}, p: 0, train: []int{0, 0}},
		{counts: []int{10, 7}, p: 1, train: []int{10, 7}},
		{counts: []int{0, 5}, p: 0.5, train: []int{0, 3}},
	} {
		m, err := Build(c.counts, c.p, utils.NewRand(1))
		require.NoError(t, err)
		requireComplementary(t, m)
		start := 0
		for class, n := range c.counts {
			assert.Equal(t, c.train[class], count(m.Train[start:start+n]), "counts %v, p %v, class %d", c.counts, c.p, class)
			start += n
		}
	}
}

func TestBuildShuffleIsSeeded(t *testing.T) {
	a, err := Build([]int{50, 50}, 0.75, utils.NewRand(7))
	require.NoError(t, err)
	b, err := Build([]int{50, 50}, 0.75, utils.NewRand(7))
	require.NoError(t, err)
	require.Equal(t, a, b)

	unshuffled, err := Build([]int{50, 50}, 0.75, nil)
	require.NoError(t, err)
	require.NotEqual(t, unshuffled.Train, a.Train)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build([]int{3}, 1.5, nil)
	require.Error(t, err)
	_, err = Build([]int{3}, -0.1, nil)
	require.Error(t, err)
	_, err = Build([]int{3, -1}, 0.5, nil)
	require.Error(t, err)
}

func TestFilter(t *testing.T) {
	m, err := Build([]int{4, 4}, 0.5, nil)
	require.NoError(t, err)
	filtered, err := m.Filter([]int{0, 2, 3, 4, 7})
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, false, true, false}, filtered.Train)
	requireComplementary(t, filtered)

	_, err = m.Filter([]int{8})
	require.Error(t, err)
}
