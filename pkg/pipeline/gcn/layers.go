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
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// GraphConv is a graph convolution: out = P·X·W + b, with P the propagation matrix of the graph.
type GraphConv struct {
	prop   *PropagationMatrix
	weight *Param
	bias   *Param
	px     *mat.Dense
}

// NewGraphConv initializes the weights uniformly in ±sqrt(6/(in+out)) and the bias to zero.
func NewGraphConv(name string, prop *PropagationMatrix, in, out int, rng *rand.Rand) *GraphConv {
	limit := math.Sqrt(6 / float64(in+out))
	w := mat.NewDense(in, out, nil)
	for i := 0; i < in; i++ {
		for j := 0; j < out; j++ {
			w.Set(i, j, (2*rng.Float64()-1)*limit)
		}
	}
	return &GraphConv{
		prop:   prop,
		weight: newParam(name+".weight", w, true),
		bias:   newParam(name+".bias", mat.NewDense(1, out, nil), false),
	}
}

func (l *GraphConv) Forward(x *mat.Dense, _ bool) *mat.Dense {
	px := l.prop.Mul(x)
	l.px = px

	z := &mat.Dense{}
	z.Mul(px, l.weight.Value)
	b := l.bias.Value.RawRowView(0)
	r, _ := z.Dims()
	for i := 0; i < r; i++ {
		floats.Add(z.RawRowView(i), b)
	}
	return z
}

func (l *GraphConv) Backward(grad *mat.Dense) *mat.Dense {
	dw := &mat.Dense{}
	dw.Mul(l.px.T(), grad)
	l.weight.Grad.Add(l.weight.Grad, dw)

	db := l.bias.Grad.RawRowView(0)
	r, _ := grad.Dims()
	for i := 0; i < r; i++ {
		floats.Add(db, grad.RawRowView(i))
	}

	dpx := &mat.Dense{}
	dpx.Mul(grad, l.weight.Value.T())
	return l.prop.MulT(dpx)
}

func (l *GraphConv) Params() []*Param {
	return []*Param{l.weight, l.bias}
}

// Mish is the x·tanh(softplus(x)) activation.
type Mish struct {
	input *mat.Dense
}

func softplus(x float64) float64 {
	if x > 20 {
		return x
	}
	return math.Log1p(math.Exp(x))
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func mish(x float64) float64 {
	return x * math.Tanh(softplus(x))
}

func (l *Mish) Forward(x *mat.Dense, _ bool) *mat.Dense {
	l.input = x
	out := &mat.Dense{}
	out.Apply(func(_, _ int, v float64) float64 { return mish(v) }, x)
	return out
}

func (l *Mish) Backward(grad *mat.Dense) *mat.Dense {
	dx := &mat.Dense{}
	dx.Apply(func(i, j int, g float64) float64 {
		x := l.input.At(i, j)
		t := math.Tanh(softplus(x))
		return g * (t + x*sigmoid(x)*(1-t*t))
	}, grad)
	return dx
}

func (l *Mish) Params() []*Param {
	return nil
}

// Dropout zeroes each value with probability rate while training, and scales the kept ones by 1/(1-rate).
// It is the identity otherwise.
type Dropout struct {
	rate float64
	rng  *rand.Rand
	mask *mat.Dense
}

func NewDropout(rate float64, rng *rand.Rand) *Dropout {
	return &Dropout{rate: rate, rng: rng}
}

func (l *Dropout) Forward(x *mat.Dense, training bool) *mat.Dense {
	if !training || l.rate == 0 {
		l.mask = nil
		return x
	}
	r, c := x.Dims()
	scale := 1 / (1 - l.rate)
	l.mask = mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if l.rng.Float64() >= l.rate {
				l.mask.Set(i, j, scale)
			}
		}
	}
	out := &mat.Dense{}
	out.MulElem(x, l.mask)
	return out
}

func (l *Dropout) Backward(grad *mat.Dense) *mat.Dense {
	if l.mask == nil {
		return grad
	}
	dx := &mat.Dense{}
	dx.MulElem(grad, l.mask)
	return dx
}

func (l *Dropout) Params() []*Param {
	return nil
}

// LogSoftmax normalizes every row into log-probabilities.
type LogSoftmax struct {
	output *mat.Dense
}

func (l *LogSoftmax) Forward(x *mat.Dense, _ bool) *mat.Dense {
	out := mat.DenseCopyOf(x)
	r, _ := out.Dims()
	for i := 0; i < r; i++ {
		row := out.RawRowView(i)
		floats.AddConst(-floats.LogSumExp(row), row)
	}
	l.output = out
	return out
}

func (l *LogSoftmax) Backward(grad *mat.Dense) *mat.Dense {
	dx := mat.DenseCopyOf(grad)
	r, _ := dx.Dims()
	for i := 0; i < r; i++ {
		row := dx.RawRowView(i)
		sum := floats.Sum(row)
		for j, y := range l.output.RawRowView(i) {
			row[j] -= math.Exp(y) * sum
		}
	}
	return dx
}

func (l *LogSoftmax) Params() []*Param {
	return nil
}
