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

package transform

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/netobserv/vibration-gcn/pkg/operational"
	"github.com/netobserv/vibration-gcn/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	defaultContamination = 0.02
	defaultTrees         = 100
	defaultMaxSamples    = 256
	eulerGamma           = 0.5772156649
)

var outlierLog = logrus.WithField("component", "transform.Outlier")

// OutlierFilter detects outlying windows with an isolation forest: points that random axis-aligned
// splits isolate in fewer steps than the others are discarded.
type OutlierFilter struct {
	contamination float64
	trees         int
	maxSamples    int
	seed          uint64
	disabled      bool
	removed       prometheus.Counter
	retained      prometheus.Gauge
}

func NewOutlierFilter(params api.Outlier, opMetrics *operational.Metrics) (*OutlierFilter, error) {
	f := &OutlierFilter{
		contamination: params.Contamination,
		trees:         params.Trees,
		maxSamples:    params.MaxSamples,
		seed:          params.Seed,
		disabled:      params.Disabled,
		removed:       opMetrics.NewCounter(&outliersRemoved),
		retained:      opMetrics.NewGauge(&windowsRetained),
	}
	if f.contamination == 0 {
		f.contamination = defaultContamination
	}
	if f.trees == 0 {
		f.trees = defaultTrees
	}
	if f.contamination < 0 || f.contamination > 0.5 {
		return nil, fmt.Errorf("contamination must be in (0, 0.5], got %v", f.contamination)
	}
	if f.trees < 0 {
		return nil, fmt.Errorf("number of trees must be positive, got %d", f.trees)
	}
	if f.maxSamples < 0 {
		return nil, fmt.Errorf("max samples must be positive, got %d", f.maxSamples)
	}
	outlierLog.Debugf("contamination = %v, trees = %d, maxSamples = %d, disabled = %v", f.contamination, f.trees, f.maxSamples, f.disabled)
	return f, nil
}

// CleanIndexes returns, in ascending order, the indexes of the rows that are not outliers.
func (f *OutlierFilter) CleanIndexes(data [][]float64) ([]int, error) {
	if len(data) == 0 {
		return nil, errors.New("no data to filter")
	}
	clean := make([]int, 0, len(data))
	if f.disabled || len(data) < 2 {
		for i := range data {
			clean = append(clean, i)
		}
		f.retained.Set(float64(len(clean)))
		return clean, nil
	}

	scores, err := f.Scores(data)
	if err != nil {
		return nil, err
	}
	offset := utils.Percentile(scores, 100*f.contamination)
	for i, s := range scores {
		if s >= offset {
			clean = append(clean, i)
		}
	}
	removed := len(data) - len(clean)
	f.removed.Add(float64(removed))
	f.retained.Set(float64(len(clean)))
	outlierLog.Infof("removed %d outliers out of %d windows (offset = %v)", removed, len(data), offset)
	return clean, nil
}

// Scores grows a forest on data and returns the opposite of the anomaly score of every row:
// the lower, the more abnormal. Scores are in [-1, 0).
func (f *OutlierFilter) Scores(data [][]float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, errors.New("no data to score")
	}
	forest := f.fit(data)
	scores := make([]float64, len(data))
	norm := averagePathLength(forest.sampleSize)
	for i, x := range data {
		depth := 0.0
		for _, tree := range forest.trees {
			depth += tree.pathLength(x)
		}
		depth /= float64(len(forest.trees))
		if norm == 0 {
			scores[i] = -1
			continue
		}
		scores[i] = -math.Pow(2, -depth/norm)
	}
	return scores, nil
}

type forest struct {
	trees      []*isolationNode
	sampleSize int
}

type isolationNode struct {
	feature     int
	threshold   float64
	left, right *isolationNode
	size        int
}

func (n *isolationNode) isLeaf() bool {
	return n.left == nil
}

// pathLength is the depth of the leaf reached by x, plus the expected depth of the unbuilt subtree below it.
func (n *isolationNode) pathLength(x []float64) float64 {
	depth := 0
	node := n
	for !node.isLeaf() {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
		depth++
	}
	return float64(depth) + averagePathLength(node.size)
}

func (f *OutlierFilter) fit(data [][]float64) *forest {
	rng := utils.NewRand(f.seed)
	sampleSize := f.maxSamples
	if sampleSize == 0 {
		sampleSize = defaultMaxSamples
	}
	sampleSize = min(sampleSize, len(data))
	maxDepth := int(math.Ceil(math.Log2(float64(max(sampleSize, 2)))))

	fo := &forest{trees: make([]*isolationNode, f.trees), sampleSize: sampleSize}
	for t := range fo.trees {
		sample := rng.Perm(len(data))[:sampleSize]
		fo.trees[t] = grow(rng, data, sample, 0, maxDepth)
	}
	return fo
}

func grow(rng *rand.Rand, data [][]float64, rows []int, depth, maxDepth int) *isolationNode {
	node := &isolationNode{size: len(rows)}
	if len(rows) < 2 || depth >= maxDepth {
		return node
	}

	for _, feature := range rng.Perm(len(data[rows[0]])) {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, r := range rows {
			lo = math.Min(lo, data[r][feature])
			hi = math.Max(hi, data[r][feature])
		}
		if hi <= lo {
			continue
		}
		threshold := lo + rng.Float64()*(hi-lo)
		if threshold >= hi {
			threshold = lo
		}
		var left, right []int
		for _, r := range rows {
			if data[r][feature] <= threshold {
				left = append(left, r)
			} else {
				right = append(right, r)
			}
		}
		node.feature = feature
		node.threshold = threshold
		node.left = grow(rng, data, left, depth+1, maxDepth)
		node.right = grow(rng, data, right, depth+1, maxDepth)
		return node
	}
	// every feature is constant over rows
	return node
}

// averagePathLength is the average depth of an unsuccessful search in a binary search tree of n points.
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	default:
		fn := float64(n)
		return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
	}
}
