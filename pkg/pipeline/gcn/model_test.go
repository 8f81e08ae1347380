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

package gcn

import (
	"context"
	"math"
	"testing"

	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/netobserv/vibration-gcn/pkg/config"
	"github.com/netobserv/vibration-gcn/pkg/operational"
	"github.com/netobserv/vibration-gcn/pkg/utils"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// twoClusters lays out n nodes per class, features centered on -1 or +1, linked only within their class.
func twoClusters(n int, seed uint64) *Data {
	rng := utils.NewRand(seed)
	x := mat.NewDense(2*n, 3, nil)
	y := make([]int, 2*n)
	train := make([]bool, 2*n)
	test := make([]bool, 2*n)
	var edges [][2]int
	for i := 0; i < 2*n; i++ {
		class := i / n
		y[i] = class
		center := float64(2*class - 1)
		for j := 0; j < 3; j++ {
			x.Set(i, j, center+0.2*rng.NormFloat64())
		}
		train[i] = i%n < n*3/4
		test[i] = !train[i]
		next := class*n + (i%n+1)%n
		edges = append(edges, [2]int{i, next}, [2]int{next, i})
	}
	return &Data{X: x, Edges: edges, Y: y, TrainMask: train, TestMask: test}
}

func cloneParams(params []*Param) []*mat.Dense {
	out := make([]*mat.Dense, len(params))
	for i, p := range params {
		out[i] = mat.DenseCopyOf(p.Value)
	}
	return out
}

func TestNewModelLayers(t *testing.T) {
	m, err := NewModel(twoClusters(4, 1), api.Model{}, operational.NewMetrics(nil))
	require.NoError(t, err)
	params := m.Params()
	require.Len(t, params, 8)
	shapes := [][2]int{{3, 8}, {1, 8}, {8, 16}, {1, 16}, {16, 8}, {1, 8}, {8, 2}, {1, 2}}
	for i, p := range params {
		r, c := p.Value.Dims()
		assert.Equal(t, shapes[i], [2]int{r, c}, p.Name)
		assert.Equal(t, i%2 == 0, p.Centralize, p.Name)
	}
	// bias starts at zero, weights within the glorot bound
	assert.Zero(t, mat.Sum(params[1].Value))
	limit := math.Sqrt(6.0 / 11.0)
	for _, v := range params[0].Value.RawMatrix().Data {
		assert.LessOrEqual(t, math.Abs(v), limit)
	}
}

func TestNewModelErrors(t *testing.T) {
	opMetrics := operational.NewMetrics(nil)

	d := twoClusters(4, 1)
	d.Y = d.Y[1:]
	_, err := NewModel(d, api.Model{}, opMetrics)
	require.Error(t, err)

	d = twoClusters(4, 1)
	d.TestMask = d.TestMask[1:]
	_, err = NewModel(d, api.Model{}, opMetrics)
	require.Error(t, err)

	d = twoClusters(4, 1)
	d.Y[0] = 2
	_, err = NewModel(d, api.Model{}, opMetrics)
	require.Error(t, err)

	d = twoClusters(4, 1)
	d.Edges = append(d.Edges, [2]int{0, 8})
	_, err = NewModel(d, api.Model{}, opMetrics)
	require.Error(t, err)

	_, err = NewModel(twoClusters(4, 1), api.Model{Dropout: 1}, opMetrics)
	require.Error(t, err)
	_, err = NewModel(&Data{}, api.Model{}, opMetrics)
	require.Error(t, err)
}

func TestModelGradients(t *testing.T) {
	d := twoClusters(5, 3)
	m, err := NewModel(d, api.Model{Hidden: []int{4, 3}, InitSeed: 5}, operational.NewMetrics(nil))
	require.NoError(t, err)

	loss := func() float64 {
		l, _ := crossEntropy(m.forward(false), d.Y, d.TrainMask)
		return l
	}
	m.zeroGrad()
	_, grad := crossEntropy(m.forward(false), d.Y, d.TrainMask)
	m.backward(grad)

	const h = 1e-6
	for _, p := range m.Params() {
		r, c := p.Value.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				orig := p.Value.At(i, j)
				p.Value.Set(i, j, orig+h)
				plus := loss()
				p.Value.Set(i, j, orig-h)
				minus := loss()
				p.Value.Set(i, j, orig)
				assert.InDelta(t, (plus-minus)/(2*h), p.Grad.At(i, j), 1e-6, "%s[%d][%d]", p.Name, i, j)
			}
		}
	}
}

func TestModelLearnsSeparableGraph(t *testing.T) {
	d := twoClusters(20, 7)
	opMetrics := operational.NewMetrics(&config.MetricsSettings{Prefix: "gcn_learn_test_"})
	m, err := NewModel(d, api.Model{LearningRate: 0.01, InitSeed: 1, DropoutSeed: 2}, opMetrics)
	require.NoError(t, err)

	initial, _ := crossEntropy(m.forward(false), d.Y, d.TrainMask)
	require.NoError(t, m.Train(context.Background(), 400))
	final, _ := crossEntropy(m.forward(false), d.Y, d.TrainMask)
	assert.Less(t, final, initial)

	metrics, err := m.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, metrics.Total())
	assert.GreaterOrEqual(t, metrics.Accuracy, 0.9)

	assert.Equal(t, 400.0, testutil.ToFloat64(opMetrics.NewCounter(&trainingEpochs)))
	assert.Equal(t, m.Loss(), testutil.ToFloat64(opMetrics.NewGauge(&trainingLoss)))
}

func TestModelIsDeterministic(t *testing.T) {
	run := func() ([]int, float64) {
		m, err := NewModel(twoClusters(8, 4), api.Model{InitSeed: 9, DropoutSeed: 10}, operational.NewMetrics(nil))
		require.NoError(t, err)
		require.NoError(t, m.Train(context.Background(), 20))
		return m.Predict(), m.Loss()
	}
	p1, l1 := run()
	p2, l2 := run()
	require.Equal(t, p1, p2)
	require.Equal(t, l1, l2)
}

func TestEvaluateUntrained(t *testing.T) {
	d := twoClusters(8, 4)
	m, err := NewModel(d, api.Model{}, operational.NewMetrics(nil))
	require.NoError(t, err)
	before := cloneParams(m.Params())

	require.NoError(t, m.Train(context.Background(), 0))
	metrics, err := m.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, count(d.TestMask), metrics.Total())
	assert.GreaterOrEqual(t, metrics.Accuracy, 0.0)
	assert.LessOrEqual(t, metrics.Accuracy, 1.0)

	for i, p := range m.Params() {
		require.True(t, mat.Equal(before[i], p.Value), p.Name)
	}
}

func TestEvaluateEmptyTestMask(t *testing.T) {
	d := twoClusters(4, 4)
	for i := range d.TestMask {
		d.TrainMask[i] = true
		d.TestMask[i] = false
	}
	m, err := NewModel(d, api.Model{}, operational.NewMetrics(nil))
	require.NoError(t, err)
	metrics, err := m.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, metrics.Total())
	assert.True(t, math.IsNaN(metrics.Accuracy))
}

func TestTrainWithoutTrainingNodes(t *testing.T) {
	d := twoClusters(4, 4)
	for i := range d.TrainMask {
		d.TrainMask[i] = false
		d.TestMask[i] = true
	}
	m, err := NewModel(d, api.Model{}, operational.NewMetrics(nil))
	require.NoError(t, err)
	require.Error(t, m.Train(context.Background(), 1))
	require.NoError(t, m.Train(context.Background(), 0))
	require.Error(t, m.Train(context.Background(), -1))
}
