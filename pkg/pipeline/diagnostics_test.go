/*
 * Copyright (C) 2024 IBM, Inc.
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

package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/netobserv/vibration-gcn/pkg/confusion"
	"github.com/netobserv/vibration-gcn/pkg/pipeline/ingest"
	"github.com/netobserv/vibration-gcn/pkg/pipeline/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiagnostics(t *testing.T) {
	d, err := NewDiagnostics(api.Diagnostics{Type: api.DiagnosticsDump})
	require.Error(t, err)
	require.Nil(t, d)

	d, err = NewDiagnostics(api.Diagnostics{Type: api.DiagnosticsLog})
	require.NoError(t, err)
	assert.IsType(t, LogDiagnostics{}, d)

	d, err = NewDiagnostics(api.Diagnostics{})
	require.NoError(t, err)
	assert.IsType(t, NoDiagnostics{}, d)

	_, err = NewDiagnostics(api.Diagnostics{Type: "plot"})
	require.Error(t, err)
}

func TestDumpDiagnostics(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "diag")
	d, err := NewDiagnostics(api.Diagnostics{Type: api.DiagnosticsDump, Dir: dir})
	require.NoError(t, err)

	require.NoError(t, d.RawLoaded(&ingest.Signals{Normal: []float64{1, 2}, Abnormal: []float64{3}}))
	raw, err := os.ReadFile(filepath.Join(dir, DumpRawFile))
	require.NoError(t, err)
	var signals map[string][]float64
	require.NoError(t, jsoniter.Unmarshal(raw, &signals))
	assert.Equal(t, []float64{1, 2}, signals["normal"])
	assert.Equal(t, []float64{3}, signals["abnormal"])

	dataset := &Dataset{
		Features: []transform.FeatureVector{{Peak: 1}, {Peak: 4}},
		Labels:   []ClassLabel{Normal, Abnormal},
	}
	require.NoError(t, d.FeaturesExtracted(dataset))
	feats, err := os.ReadFile(filepath.Join(dir, DumpFeaturesFile))
	require.NoError(t, err)
	var dumped struct {
		Labels   []int                     `json:"labels"`
		Features []transform.FeatureVector `json:"features"`
	}
	require.NoError(t, jsoniter.Unmarshal(feats, &dumped))
	assert.Equal(t, []int{0, 1}, dumped.Labels)
	assert.Equal(t, 4.0, dumped.Features[1].Peak)

	require.NoError(t, d.Evaluated(confusion.FromCounts(1, 1, 0, 0)))
	conf, err := os.ReadFile(filepath.Join(dir, DumpConfusionFile))
	require.NoError(t, err)
	assert.Contains(t, string(conf), `"tp":1`)
}

func TestLogDiagnostics(t *testing.T) {
	d := LogDiagnostics{}
	dataset := &Dataset{
		Features: []transform.FeatureVector{{}, {}, {}},
		Labels:   []ClassLabel{Normal, Abnormal, Abnormal},
	}
	assert.NoError(t, d.RawLoaded(&ingest.Signals{}))
	assert.NoError(t, d.FeaturesExtracted(dataset))
	assert.NoError(t, d.Evaluated(confusion.FromCounts(1, 0, 0, 0)))
}

func TestDataset(t *testing.T) {
	d := &Dataset{
		Features: []transform.FeatureVector{{Peak: 1}, {Peak: 2}, {Peak: 3}},
		Labels:   []ClassLabel{Normal, Abnormal, Abnormal},
	}
	assert.Equal(t, 1, d.Count(Normal))
	assert.Equal(t, 2, d.Count(Abnormal))

	f := d.Filter([]int{0, 2})
	assert.Equal(t, []ClassLabel{Normal, Abnormal}, f.Labels)
	assert.Equal(t, 3.0, f.Features[1].Peak)

	m := f.Matrix()
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, transform.FeatureCount, c)
	assert.Equal(t, 3.0, m.At(1, 1))
	assert.Equal(t, "abnormal", Abnormal.String())
}
