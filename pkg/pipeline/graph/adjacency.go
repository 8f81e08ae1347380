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

package graph

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"gonum.org/v1/gonum/mat"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Adjacency is a square 0/1 matrix over the windows of a dataset. A 1 at (i, j) is the directed edge i -> j.
// The diagonal is always 0.
type Adjacency struct {
	m *mat.Dense
}

type adjacencyJSON struct {
	Nodes int      `json:"nodes"`
	Edges [][2]int `json:"edges"`
}

// NewAdjacency returns an adjacency of n nodes without edges.
func NewAdjacency(n int) (*Adjacency, error) {
	if n <= 0 {
		return nil, fmt.Errorf("adjacency needs at least one node, got %d", n)
	}
	return &Adjacency{m: mat.NewDense(n, n, nil)}, nil
}

func (a *Adjacency) Size() int {
	r, _ := a.m.Dims()
	return r
}

func (a *Adjacency) At(i, j int) float64 {
	return a.m.At(i, j)
}

// Set adds the edge i -> j. Self loops are ignored.
func (a *Adjacency) Set(i, j int) {
	if i != j {
		a.m.Set(i, j, 1)
	}
}

// Matrix exposes the underlying matrix, read-only.
func (a *Adjacency) Matrix() mat.Matrix {
	return a.m
}

// Edges lists every nonzero position in row-major order.
func (a *Adjacency) Edges() [][2]int {
	n := a.Size()
	edges := make([][2]int, 0, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if a.m.At(i, j) != 0 {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}

// Symmetrize returns a copy in which every edge also exists in the opposite direction.
func (a *Adjacency) Symmetrize() *Adjacency {
	n := a.Size()
	sym := mat.NewDense(n, n, nil)
	for _, e := range a.Edges() {
		sym.Set(e[0], e[1], 1)
		sym.Set(e[1], e[0], 1)
	}
	return &Adjacency{m: sym}
}

// IsSymmetric reports whether every edge has its reverse.
func (a *Adjacency) IsSymmetric() bool {
	return mat.Equal(a.m, a.m.T())
}

func (a *Adjacency) MarshalJSON() ([]byte, error) {
	return json.Marshal(adjacencyJSON{Nodes: a.Size(), Edges: a.Edges()})
}

func (a *Adjacency) UnmarshalJSON(data []byte) error {
	var in adjacencyJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out, err := NewAdjacency(in.Nodes)
	if err != nil {
		return err
	}
	for _, e := range in.Edges {
		if e[0] < 0 || e[0] >= in.Nodes || e[1] < 0 || e[1] >= in.Nodes {
			return fmt.Errorf("edge %v out of range for %d nodes", e, in.Nodes)
		}
		if e[0] == e[1] {
			return fmt.Errorf("edge %v is a self loop", e)
		}
		out.Set(e[0], e[1])
	}
	a.m = out.m
	return nil
}

// WriteFile saves the adjacency as JSON.
func (a *Adjacency) WriteFile(path string) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ReadFile loads an adjacency saved by WriteFile.
func ReadFile(path string) (*Adjacency, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a := &Adjacency{}
	if err := json.Unmarshal(b, a); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}
