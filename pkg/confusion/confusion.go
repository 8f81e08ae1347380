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

package confusion

import (
	"fmt"
	"math"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Positive is the class counted as a positive, the abnormal one.
const Positive = 1

// Metrics is the binary confusion matrix of a prediction, with the scores derived from it.
// A ratio whose denominator is zero is NaN.
type Metrics struct {
	TP        int     `json:"tp" yaml:"tp"`
	TN        int     `json:"tn" yaml:"tn"`
	FP        int     `json:"fp" yaml:"fp"`
	FN        int     `json:"fn" yaml:"fn"`
	Accuracy  float64 `json:"accuracy" yaml:"accuracy"`
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1" yaml:"f1"`
}

// Compute compares predicted and actual classes position by position.
func Compute(predicted, actual []int) (Metrics, error) {
	if len(predicted) != len(actual) {
		return Metrics{}, fmt.Errorf("got %d predictions for %d actual classes", len(predicted), len(actual))
	}
	var tp, tn, fp, fn int
	for i := range predicted {
		p, a := predicted[i] == Positive, actual[i] == Positive
		switch {
		case p && a:
			tp++
		case !p && !a:
			tn++
		case p:
			fp++
		default:
			fn++
		}
	}
	return FromCounts(tp, tn, fp, fn), nil
}

func FromCounts(tp, tn, fp, fn int) Metrics {
	m := Metrics{TP: tp, TN: tn, FP: fp, FN: fn}
	m.Accuracy = ratio(tp+tn, tp+tn+fp+fn)
	m.Precision = ratio(tp, tp+fp)
	m.Recall = ratio(tp, tp+fn)
	m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	return m
}

func ratio(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den)
}

func (m Metrics) Total() int {
	return m.TP + m.TN + m.FP + m.FN
}

type metricsJSON struct {
	TP        int      `json:"tp"`
	TN        int      `json:"tn"`
	FP        int      `json:"fp"`
	FN        int      `json:"fn"`
	Accuracy  *float64 `json:"accuracy"`
	Precision *float64 `json:"precision"`
	Recall    *float64 `json:"recall"`
	F1        *float64 `json:"f1"`
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// MarshalJSON writes undefined scores as null.
func (m Metrics) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(metricsJSON{
		TP:        m.TP,
		TN:        m.TN,
		FP:        m.FP,
		FN:        m.FN,
		Accuracy:  nullable(m.Accuracy),
		Precision: nullable(m.Precision),
		Recall:    nullable(m.Recall),
		F1:        nullable(m.F1),
	})
}

// Table renders the matrix for a terminal.
func (m Metrics) Table() string {
	const row = "%-20s %10s %10s\n"
	var sb strings.Builder
	fmt.Fprintf(&sb, row, "", "Actual", "")
	fmt.Fprintf(&sb, row, "", "Positive", "Negative")
	fmt.Fprintf(&sb, row, "Predicted Positive", fmt.Sprint(m.TP), fmt.Sprint(m.FP))
	fmt.Fprintf(&sb, row, "Predicted Negative", fmt.Sprint(m.FN), fmt.Sprint(m.TN))
	return sb.String()
}

func (m Metrics) String() string {
	return fmt.Sprintf("accuracy=%.4f precision=%.4f recall=%.4f f1=%.4f (tp=%d tn=%d fp=%d fn=%d)",
		m.Accuracy, m.Precision, m.Recall, m.F1, m.TP, m.TN, m.FP, m.FN)
}
