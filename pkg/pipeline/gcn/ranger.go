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
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	DefaultLearningRate = 1e-3
	defaultBeta1        = 0.95
	defaultBeta2        = 0.999
	defaultEps          = 1e-5
	defaultLookaheadK   = 6
	defaultLookaheadA   = 0.5
	defaultSMAThreshold = 5
)

// Ranger is RAdam with gradient centralization, wrapped in Lookahead: every K steps the parameters are pulled
// back towards a slow copy by a factor Alpha.
type Ranger struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Eps          float64
	WeightDecay  float64
	K            int
	Alpha        float64
	SMAThreshold float64

	state map[*Param]*rangerState
}

type rangerState struct {
	step   int
	expAvg *mat.Dense
	expSq  *mat.Dense
	slow   *mat.Dense
}

func NewRanger(lr float64) *Ranger {
	if lr == 0 {
		lr = DefaultLearningRate
	}
	return &Ranger{
		LearningRate: lr,
		Beta1:        defaultBeta1,
		Beta2:        defaultBeta2,
		Eps:          defaultEps,
		K:            defaultLookaheadK,
		Alpha:        defaultLookaheadA,
		SMAThreshold: defaultSMAThreshold,
		state:        map[*Param]*rangerState{},
	}
}

func (o *Ranger) Step(params []*Param) {
	for _, p := range params {
		o.update(p)
	}
}

func (o *Ranger) update(p *Param) {
	st, ok := o.state[p]
	if !ok {
		r, c := p.Value.Dims()
		st = &rangerState{
			expAvg: mat.NewDense(r, c, nil),
			expSq:  mat.NewDense(r, c, nil),
			slow:   mat.DenseCopyOf(p.Value),
		}
		o.state[p] = st
	}

	grad := mat.DenseCopyOf(p.Grad)
	if p.Centralize {
		centralize(grad)
	}

	st.step++
	b1, b2 := o.Beta1, o.Beta2
	st.expAvg.Apply(func(i, j int, m float64) float64 {
		return b1*m + (1-b1)*grad.At(i, j)
	}, st.expAvg)
	st.expSq.Apply(func(i, j int, v float64) float64 {
		g := grad.At(i, j)
		return b2*v + (1-b2)*g*g
	}, st.expSq)

	t := float64(st.step)
	beta2t := math.Pow(b2, t)
	smaMax := 2/(1-b2) - 1
	sma := smaMax - 2*t*beta2t/(1-beta2t)
	adaptive := sma > o.SMAThreshold
	var stepSize float64
	if adaptive {
		stepSize = math.Sqrt((1-beta2t)*(sma-4)/(smaMax-4)*(sma-2)/sma*smaMax/(smaMax-2)) / (1 - math.Pow(b1, t))
	} else {
		stepSize = 1 / (1 - math.Pow(b1, t))
	}

	lr := o.LearningRate
	if o.WeightDecay != 0 {
		p.Value.Scale(1-o.WeightDecay*lr, p.Value)
	}
	p.Value.Apply(func(i, j int, v float64) float64 {
		m := st.expAvg.At(i, j)
		if adaptive {
			return v - stepSize*lr*m/(math.Sqrt(st.expSq.At(i, j))+o.Eps)
		}
		return v - stepSize*lr*m
	}, p.Value)

	if st.step%o.K == 0 {
		st.slow.Apply(func(i, j int, s float64) float64 {
			return s + o.Alpha*(p.Value.At(i, j)-s)
		}, st.slow)
		p.Value.Copy(st.slow)
	}
}

// centralize removes from every column of a weight gradient its mean over the input dimension.
func centralize(grad *mat.Dense) {
	r, c := grad.Dims()
	for j := 0; j < c; j++ {
		mean := 0.0
		for i := 0; i < r; i++ {
			mean += grad.At(i, j)
		}
		mean /= float64(r)
		for i := 0; i < r; i++ {
			grad.Set(i, j, grad.At(i, j)-mean)
		}
	}
}
