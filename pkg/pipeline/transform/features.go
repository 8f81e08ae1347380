/*
 * Copyright (C) 2021 IBM, Inc.
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
	"fmt"
	"math"

	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/netobserv/vibration-gcn/pkg/operational"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FeatureCount is the number of statistics extracted from a window.
const FeatureCount = 9

// float64 resolution, used to detect a variance lost in rounding
const resolution = 1e-15

var featuresLog = logrus.WithField("component", "transform.Features")

// FeatureNames holds the labels of the features, in FeatureVector.Values order.
var FeatureNames = [FeatureCount]string{
	"Standard deviation",
	"Peak",
	"Skewness",
	"Kurtosis",
	"Root mean square",
	"Crest factor",
	"Square root amplitude",
	"Shape factor",
	"Impulse factor",
}

// FeatureVector summarizes one window.
type FeatureVector struct {
	StdDev        float64 `json:"stdDev" yaml:"stdDev"`
	Peak          float64 `json:"peak" yaml:"peak"`
	Skewness      float64 `json:"skewness" yaml:"skewness"`
	Kurtosis      float64 `json:"kurtosis" yaml:"kurtosis"`
	RMS           float64 `json:"rms" yaml:"rms"`
	CrestFactor   float64 `json:"crestFactor" yaml:"crestFactor"`
	SqrtAmplitude float64 `json:"sqrtAmplitude" yaml:"sqrtAmplitude"`
	ShapeFactor   float64 `json:"shapeFactor" yaml:"shapeFactor"`
	ImpulseFactor float64 `json:"impulseFactor" yaml:"impulseFactor"`
}

func (f FeatureVector) Values() [FeatureCount]float64 {
	return [FeatureCount]float64{
		f.StdDev,
		f.Peak,
		f.Skewness,
		f.Kurtosis,
		f.RMS,
		f.CrestFactor,
		f.SqrtAmplitude,
		f.ShapeFactor,
		f.ImpulseFactor,
	}
}

// Rows lays the vectors out as a row per window, a column per feature.
func Rows(features []FeatureVector) [][]float64 {
	rows := make([][]float64, len(features))
	for i := range features {
		v := features[i].Values()
		rows[i] = v[:]
	}
	return rows
}

// DegenerateWindowError reports a window for which a feature ratio or moment is undefined,
// such as an all-zero or a constant window.
type DegenerateWindowError struct {
	Index   int
	Feature string
}

func (e *DegenerateWindowError) Error() string {
	return fmt.Sprintf("window %d is degenerate: %s is undefined", e.Index, e.Feature)
}

type FeatureExtractor struct {
	policy     api.DegeneratePolicy
	degenerate *prometheus.CounterVec
}

func NewFeatureExtractor(params api.Features, opMetrics *operational.Metrics) *FeatureExtractor {
	policy := params.Degenerate
	if policy == "" {
		policy = api.DegenerateError
	}
	featuresLog.Debugf("degenerate policy = %s", policy)
	return &FeatureExtractor{
		policy:     policy,
		degenerate: opMetrics.NewCounterVec(&degenerateWindows),
	}
}

// Extract computes the features of the window found at position index.
func (e *FeatureExtractor) Extract(index int, w Window) (FeatureVector, error) {
	fv, undefined := computeFeatures(w)
	if len(undefined) == 0 {
		return fv, nil
	}
	if e.policy != api.DegenerateZero {
		return fv, &DegenerateWindowError{Index: index, Feature: undefined[0]}
	}
	for _, name := range undefined {
		e.degenerate.WithLabelValues(name).Inc()
	}
	featuresLog.Debugf("window %d: %v replaced by zero", index, undefined)
	return fv, nil
}

// ExtractAll computes the features of every window, preserving order.
func (e *FeatureExtractor) ExtractAll(windows []Window) ([]FeatureVector, error) {
	out := make([]FeatureVector, len(windows))
	for i, w := range windows {
		fv, err := e.Extract(i, w)
		if err != nil {
			return nil, err
		}
		out[i] = fv
	}
	return out, nil
}

// computeFeatures leaves undefined features to zero and returns their names.
func computeFeatures(w Window) (FeatureVector, []string) {
	n := float64(len(w))
	mean, std := stat.PopMeanStdDev(w, nil)
	peak := floats.Norm(w, math.Inf(1))
	sumAbs := floats.Norm(w, 1)
	var sumSqrtAbs float64
	for _, x := range w {
		sumSqrtAbs += math.Sqrt(math.Abs(x))
	}
	sqrtAmplitude := sumSqrtAbs / n

	fv := FeatureVector{
		StdDev:        std,
		Peak:          peak,
		RMS:           floats.Norm(w, 2) / math.Sqrt(n),
		SqrtAmplitude: sqrtAmplitude * sqrtAmplitude,
	}
	var undefined []string

	m2 := std * std
	if m2 <= (resolution*mean)*(resolution*mean) {
		undefined = append(undefined, FeatureNames[2], FeatureNames[3])
	} else {
		fv.Skewness = stat.Moment(3, w, nil) / math.Pow(m2, 1.5)
		fv.Kurtosis = stat.Moment(4, w, nil)/(m2*m2) - 3
	}

	if fv.RMS > 0 {
		fv.CrestFactor = peak / fv.RMS
	} else {
		undefined = append(undefined, FeatureNames[5])
	}
	if sumAbs > 0 {
		fv.ShapeFactor = fv.RMS * n / sumAbs
		fv.ImpulseFactor = peak * n / sumAbs
	} else {
		undefined = append(undefined, FeatureNames[7], FeatureNames[8])
	}
	return fv, undefined
}
