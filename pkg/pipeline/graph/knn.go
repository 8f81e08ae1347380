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
	"errors"
	"fmt"
	"sort"

	"github.com/netobserv/vibration-gcn/pkg/operational"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// DefaultNeighbors is the number of neighbors of a point, the point itself included.
const DefaultNeighbors = 5

var glog = logrus.WithField("component", "graph.KNN")

var graphEdges = operational.DefineMetric(
	"graph_edges",
	"Number of directed edges of the last k-nearest-neighbor graph",
	operational.TypeGauge,
)

type Builder struct {
	neighbors int
	opMetrics *operational.Metrics
}

func NewBuilder(neighbors int, opMetrics *operational.Metrics) *Builder {
	if neighbors == 0 {
		neighbors = DefaultNeighbors
	}
	return &Builder{neighbors: neighbors, opMetrics: opMetrics}
}

func (b *Builder) Build(features [][]float64) (*Adjacency, error) {
	a, err := KNN(features, b.neighbors)
	if err != nil {
		return nil, err
	}
	edges := len(a.Edges())
	b.opMetrics.NewGauge(&graphEdges).Set(float64(edges))
	glog.Infof("built graph of %d nodes and %d edges", a.Size(), edges)
	return a, nil
}

// KNN links every point to its k nearest points by euclidean distance. The search includes the point itself,
// which is then dropped from the result, so that most rows hold k-1 edges. Equal distances are ordered by index.
// The result is not symmetric.
func KNN(features [][]float64, k int) (*Adjacency, error) {
	if len(features) == 0 {
		return nil, errors.New("no features to link")
	}
	if k <= 0 {
		return nil, fmt.Errorf("number of neighbors must be positive, got %d", k)
	}
	dim := len(features[0])
	for i, f := range features {
		if len(f) != dim {
			return nil, fmt.Errorf("feature vector %d has %d values, expected %d", i, len(f), dim)
		}
	}

	m := len(features)
	k = min(k, m)
	a, err := NewAdjacency(m)
	if err != nil {
		return nil, err
	}
	order := make([]int, m)
	dist := make([]float64, m)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			order[j] = j
			dist[j] = floats.Distance(features[i], features[j], 2)
		}
		sort.SliceStable(order, func(x, y int) bool {
			return dist[order[x]] < dist[order[y]]
		})
		for _, j := range order[:k] {
			a.Set(i, j)
		}
	}
	return a, nil
}
