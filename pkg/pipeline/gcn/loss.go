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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// crossEntropy returns the mean cross entropy of the masked rows of scores against labels, taking scores as
// unnormalized class scores, and its gradient with respect to scores. Unmasked rows get a zero gradient.
func crossEntropy(scores *mat.Dense, labels []int, mask []bool) (float64, *mat.Dense) {
	r, c := scores.Dims()
	grad := mat.NewDense(r, c, nil)
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	if n == 0 {
		return 0, grad
	}

	loss := 0.0
	for i := 0; i < r; i++ {
		if !mask[i] {
			continue
		}
		row := scores.RawRowView(i)
		lse := floats.LogSumExp(row)
		loss += lse - row[labels[i]]
		g := grad.RawRowView(i)
		for j, v := range row {
			g[j] = math.Exp(v-lse) / float64(n)
		}
		g[labels[i]] -= 1 / float64(n)
	}
	return loss / float64(n), grad
}
