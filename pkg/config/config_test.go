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

package config

import (
	"encoding/json"
	"testing"

	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestJsonUnmarshalStrict(t *testing.T) {
	type Message struct {
		Foo int    `json:"F"`
		Bar string `json:"B"`
	}
	msg := `{"F":1, "B":"bbb"}`
	var actualMsg Message
	expectedMsg := Message{Foo: 1, Bar: "bbb"}
	err := JsonUnmarshalStrict([]byte(msg), &actualMsg)
	require.NoError(t, err)
	require.Equal(t, expectedMsg, actualMsg)

	msg = `{"F":1, "B":"bbb", "NewField":0}`
	err = JsonUnmarshalStrict([]byte(msg), &actualMsg)
	require.Error(t, err)
}

func TestUnmarshalConfigFile(t *testing.T) {
	cfg := `{"metricsSettings":{"port":9102,"prefix":"vib_"},"parameters":{"segment":{"windowSize":250},"model":{"epochs":0}}}`
	var cfs ConfigFileStruct
	err := yaml.Unmarshal([]byte(cfg), &cfs)
	require.NoError(t, err)
	require.Equal(t, "vib_", cfs.MetricsSettings.Prefix)
	require.Equal(t, 9102, cfs.MetricsSettings.Port)
	require.Equal(t, 250, cfs.Parameters.Segment.WindowSize)
	require.NotNil(t, cfs.Parameters.Model.Epochs)
	require.Equal(t, 0, *cfs.Parameters.Model.Epochs)

	cfs = ConfigFileStruct{}
	err = json.Unmarshal([]byte(cfg), &cfs)
	require.NoError(t, err)
	require.Equal(t, "vib_", cfs.MetricsSettings.Prefix)
	require.Equal(t, 250, cfs.Parameters.Segment.WindowSize)
}

func TestParseConfig(t *testing.T) {
	opts := Options{
		Parameters: `{"ingest":{"type":"synthetic","synthetic":{"samples":2000,"seed":7}},"split":{"trainFraction":0.5}}`,
	}
	cfg, err := ParseConfig(&opts)
	require.NoError(t, err)
	require.Equal(t, api.IngestSynthetic, cfg.Parameters.Ingest.Type)
	require.Equal(t, 2000, cfg.Parameters.Ingest.Synthetic.Samples)
	require.Equal(t, uint64(7), cfg.Parameters.Ingest.Synthetic.Seed)
	require.Equal(t, 0.5, cfg.Parameters.Split.TrainFraction)
	require.Equal(t, defaultMetricsPrefix, cfg.MetricsSettings.Prefix)

	// file shortcuts win over the configured ingest
	opts.Normal = "normal.txt"
	opts.Abnormal = "abnormal.txt"
	cfg, err = ParseConfig(&opts)
	require.NoError(t, err)
	require.Equal(t, api.IngestFile, cfg.Parameters.Ingest.Type)
	require.Equal(t, "normal.txt", cfg.Parameters.Ingest.Normal)
	require.Equal(t, "abnormal.txt", cfg.Parameters.Ingest.Abnormal)
}

func TestParseConfigDecodesParameterMap(t *testing.T) {
	// viper hands over lower-cased keys; seeds use the whole uint64 range
	opts := Options{
		Parameters: `{"ingest":{"type":"synthetic","synthetic":{"seed":18446744073709551615}},"segment":{"windowsize":250},"model":{"epochs":0,"hidden":[4,4]}}`,
	}
	cfg, err := ParseConfig(&opts)
	require.NoError(t, err)
	require.Equal(t, uint64(18446744073709551615), cfg.Parameters.Ingest.Synthetic.Seed)
	require.Equal(t, 250, cfg.Parameters.Segment.WindowSize)
	require.Equal(t, []int{4, 4}, cfg.Parameters.Model.Hidden)
	require.NotNil(t, cfg.Parameters.Model.Epochs)
	require.Equal(t, 0, *cfg.Parameters.Model.Epochs)

	// decoded values still go through validation
	opts.Parameters = `{"ingest":{"type":"synthetic"},"split":{"trainFraction":1.5}}`
	_, err = ParseConfig(&opts)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "split.trainFraction", vErr.Field)

	opts.Parameters = `{"ingest":`
	_, err = ParseConfig(&opts)
	require.Error(t, err)
}

func TestParseConfigUnknownField(t *testing.T) {
	opts := Options{Parameters: `{"ingest":{"type":"synthetic"},"unknown":{}}`}
	_, err := ParseConfig(&opts)
	require.Error(t, err)
}

func TestDecodeParameters(t *testing.T) {
	// keys come lower-cased from viper
	in := map[string]interface{}{
		"ingest": map[string]interface{}{
			"type":     "file",
			"normal":   "n.txt",
			"abnormal": "a.txt",
		},
		"segment": map[string]interface{}{"windowsize": 100},
		"outlier": map[string]interface{}{"contamination": 0.05, "seed": 3},
		"model": map[string]interface{}{
			"hidden": []interface{}{4, 4},
			"epochs": 10,
		},
	}
	p, err := DecodeParameters(in)
	require.NoError(t, err)
	require.Equal(t, api.IngestFile, p.Ingest.Type)
	require.Equal(t, 100, p.Segment.WindowSize)
	require.Equal(t, 0.05, p.Outlier.Contamination)
	require.Equal(t, uint64(3), p.Outlier.Seed)
	require.Equal(t, []int{4, 4}, p.Model.Hidden)
	require.Equal(t, 10, p.Model.GetEpochs(350))

	_, err = DecodeParameters(map[string]interface{}{"bogus": 1})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	epochs := -1
	tests := []struct {
		name  string
		p     api.API
		field string
	}{
		{"missing ingest", api.API{}, "ingest.type"},
		{"missing abnormal", api.API{Ingest: api.Ingest{Type: api.IngestFile, Normal: "n"}}, "ingest.abnormal"},
		{"window size", synthetic(func(p *api.API) { p.Segment.WindowSize = -1 }), "segment.windowSize"},
		{"percentage", synthetic(func(p *api.API) { p.Split.TrainFraction = 1.5 }), "split.trainFraction"},
		{"contamination", synthetic(func(p *api.API) { p.Outlier.Contamination = 0.7 }), "outlier.contamination"},
		{"policy", synthetic(func(p *api.API) { p.Features.Degenerate = "nan" }), "features.degenerate"},
		{"dropout", synthetic(func(p *api.API) { p.Model.Dropout = 1 }), "model.dropout"},
		{"epochs", synthetic(func(p *api.API) { p.Model.Epochs = &epochs }), "model.epochs"},
		{"hidden", synthetic(func(p *api.API) { p.Model.Hidden = []int{8, 0} }), "model.hidden[1]"},
		{"write path", synthetic(func(p *api.API) { p.Write.Type = api.WriteFile }), "write.path"},
		{"dump dir", synthetic(func(p *api.API) { p.Diagnostics.Type = api.DiagnosticsDump }), "diagnostics.dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.p)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.field, verr.Field)
		})
	}

	ok := synthetic(func(_ *api.API) {})
	require.NoError(t, Validate(&ok))
}

func synthetic(mutate func(p *api.API)) api.API {
	p := api.API{Ingest: api.Ingest{Type: api.IngestSynthetic}}
	mutate(&p)
	return p
}
