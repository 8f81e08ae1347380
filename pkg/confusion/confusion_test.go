/*
 * Copyright (C) 2023 IBM, Inc.
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

package confusion

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	m, err := Compute(
		[]int{1, 1, 0, 0, 1, 0, 0, 1},
		[]int{1, 0, 0, 1, 1, 0, 0, 1},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, m.TP)
	assert.Equal(t, 3, m.TN)
	assert.Equal(t, 1, m.FP)
	assert.Equal(t, 1, m.FN)
	assert.Equal(t, 8, m.Total())
	assert.InDelta(t, 0.75, m.Accuracy, 1e-12)
	assert.InDelta(t, 0.75, m.Precision, 1e-12)
	assert.InDelta(t, 0.75, m.Recall, 1e-12)
	assert.InDelta(t, 0.75, m.F1, 1e-12)
}

func TestComputeLengthMismatch(t *testing.T) {
	_, err := Compute([]int{1, 0}, []int{1})
	require.Error(t, err)
}

func TestUndefinedScores(t *testing.T) {
	m := FromCounts(0, 0, 0, 0)
	assert.True(t, math.IsNaN(m.Accuracy))
	assert.True(t, math.IsNaN(m.Precision))
	assert.True(t, math.IsNaN(m.Recall))
	assert.True(t, math.IsNaN(m.F1))

	// no positive predicted
	m = FromCounts(0, 5, 0, 2)
	assert.InDelta(t, 5.0/7.0, m.Accuracy, 1e-12)
	assert.True(t, math.IsNaN(m.Precision))
	assert.Equal(t, 0.0, m.Recall)
	assert.True(t, math.IsNaN(m.F1))

	// all wrong
	m = FromCounts(0, 0, 3, 2)
	assert.Equal(t, 0.0, m.Precision)
	assert.Equal(t, 0.0, m.Recall)
	assert.True(t, math.IsNaN(m.F1))
}

func TestAccuracyBounds(t *testing.T) {
	for tp := 0; tp < 3; tp++ {
		for tn := 0; tn < 3; tn++ {
			for fp := 0; fp < 3; fp++ {
				for fn := 0; fn < 3; fn++ {
					m := FromCounts(tp, tn, fp, fn)
					if m.Total() == 0 {
						continue
					}
					require.GreaterOrEqual(t, m.Accuracy, 0.0)
					require.LessOrEqual(t, m.Accuracy, 1.0)
				}
			}
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	b, err := json.Marshal(FromCounts(2, 2, 0, 2))
	require.NoError(t, err)
	require.JSONEq(t, `{"tp":2,"tn":2,"fp":0,"fn":2,"accuracy":0.6666666666666666,"precision":1,"recall":0.5,"f1":0.6666666666666666}`, string(b))

	b, err = json.Marshal(FromCounts(0, 0, 0, 0))
	require.NoError(t, err)
	require.JSONEq(t, `{"tp":0,"tn":0,"fp":0,"fn":0,"accuracy":null,"precision":null,"recall":null,"f1":null}`, string(b))
}

func TestTable(t *testing.T) {
	table := FromCounts(7, 5, 2, 1).Table()
	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Actual")
	assert.Contains(t, lines[1], "Positive")
	assert.Contains(t, lines[1], "Negative")
	assert.Equal(t, []string{"Predicted", "Positive", "7", "2"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"Predicted", "Negative", "1", "5"}, strings.Fields(lines[3]))
}
