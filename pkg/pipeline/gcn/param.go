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
	"gonum.org/v1/gonum/mat"
)

// Param is a trainable tensor and the gradient accumulated for it since the last reset.
type Param struct {
	Name  string
	Value *mat.Dense
	Grad  *mat.Dense
	// Centralize marks weight matrices, whose gradient is re-centered before each optimizer step.
	Centralize bool
}

func newParam(name string, value *mat.Dense, centralize bool) *Param {
	r, c := value.Dims()
	return &Param{
		Name:       name,
		Value:      value,
		Grad:       mat.NewDense(r, c, nil),
		Centralize: centralize,
	}
}

func (p *Param) ZeroGrad() {
	p.Grad.Zero()
}

// Layer is a differentiable step of the network. Backward takes the gradient of the loss with respect to the
// output of the last Forward call, accumulates the gradients of Params and returns the gradient with
// respect to the input.
type Layer interface {
	Forward(x *mat.Dense, training bool) *mat.Dense
	Backward(grad *mat.Dense) *mat.Dense
	Params() []*Param
}

// Optimizer updates parameters from their accumulated gradients.
type Optimizer interface {
	Step(params []*Param)
}
