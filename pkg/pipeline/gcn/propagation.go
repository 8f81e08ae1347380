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
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type weightedSource struct {
	node   int
	weight float64
}

// PropagationMatrix is the normalized propagation matrix of a graph, stored as one sparse row per node.
// Products cost O(edges·width) rather than O(nodes²·width).
type PropagationMatrix struct {
	n    int
	rows [][]weightedSource
}

// Propagation builds the propagation matrix of a graph of n nodes, after adding a self loop to every node.
// Messages follow the edge direction: row j aggregates the nodes with an edge into j, weighted by
// 1/sqrt(deg(i)*deg(j)) where deg counts the incoming edges, self loop included. Duplicate edges count once.
func Propagation(n int, edges [][2]int) (*PropagationMatrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("graph needs at least one node, got %d", n)
	}
	sources := make([]map[int]struct{}, n)
	for j := range sources {
		sources[j] = map[int]struct{}{j: {}}
	}
	for _, e := range edges {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
			return nil, fmt.Errorf("edge %v out of range for %d nodes", e, n)
		}
		sources[e[1]][e[0]] = struct{}{}
	}

	p := &PropagationMatrix{n: n, rows: make([][]weightedSource, n)}
	for j, in := range sources {
		row := make([]weightedSource, 0, len(in))
		for i := range in {
			w := 1 / math.Sqrt(float64(len(sources[i])*len(in)))
			row = append(row, weightedSource{node: i, weight: w})
		}
		// sums run in node order
		sort.Slice(row, func(a, b int) bool { return row[a].node < row[b].node })
		p.rows[j] = row
	}
	return p, nil
}

func (p *PropagationMatrix) Dims() (int, int) {
	return p.n, p.n
}

func (p *PropagationMatrix) At(i, j int) float64 {
	for _, s := range p.rows[i] {
		if s.node == j {
			return s.weight
		}
	}
	return 0
}

func (p *PropagationMatrix) T() mat.Matrix {
	return mat.Transpose{Matrix: p}
}

// Mul returns P·x.
func (p *PropagationMatrix) Mul(x *mat.Dense) *mat.Dense {
	_, c := x.Dims()
	out := mat.NewDense(p.n, c, nil)
	for j, row := range p.rows {
		dst := out.RawRowView(j)
		for _, s := range row {
			floats.AddScaled(dst, s.weight, x.RawRowView(s.node))
		}
	}
	return out
}

// MulT returns Pᵀ·x.
func (p *PropagationMatrix) MulT(x *mat.Dense) *mat.Dense {
	_, c := x.Dims()
	out := mat.NewDense(p.n, c, nil)
	for j, row := range p.rows {
		src := x.RawRowView(j)
		for _, s := range row {
			floats.AddScaled(out.RawRowView(s.node), s.weight, src)
		}
	}
	return out
}
