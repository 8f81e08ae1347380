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

package test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

// ReadExposedMetrics scrapes the default registry the way the metrics server exposes it.
func ReadExposedMetrics(t *testing.T) string {
	req := httptest.NewRequest(http.MethodGet, "http://localhost:9090/metrics", nil)
	w := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

// ExposedLines returns the exposed samples whose name starts with prefix, comments excluded.
func ExposedLines(t *testing.T, prefix string) []string {
	var out []string
	for _, line := range strings.Split(ReadExposedMetrics(t), "\n") {
		if strings.HasPrefix(line, prefix) {
			out = append(out, line)
		}
	}
	return out
}

// HistogramSamples returns the sample count and sum observed so far by a histogram.
func HistogramSamples(t *testing.T, o prometheus.Observer) (uint64, float64) {
	m, ok := o.(prometheus.Metric)
	require.True(t, ok, "observer %T is not a metric", o)
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	require.NotNil(t, out.GetHistogram())
	return out.GetHistogram().GetSampleCount(), out.GetHistogram().GetSampleSum()
}
