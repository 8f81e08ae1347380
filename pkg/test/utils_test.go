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
	"os"
	"testing"

	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/stretchr/testify/require"
)

func Test_InitConfig(t *testing.T) {
	v, cfg := InitConfig(t, `
log-level: debug
parameters:
  ingest:
    type: synthetic
    synthetic:
      samples: 1000
  segment:
    windowSize: 100
  model:
    hidden: [4, 4]
metricsSettings:
  prefix: test_
`)
	require.NotNil(t, v)
	require.NotNil(t, cfg)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, api.IngestSynthetic, cfg.Parameters.Ingest.Type)
	require.Equal(t, 1000, cfg.Parameters.Ingest.Synthetic.Samples)
	require.Equal(t, 100, cfg.Parameters.Segment.WindowSize)
	require.Equal(t, []int{4, 4}, cfg.Parameters.Model.Hidden)
	require.Equal(t, "test_", cfg.MetricsSettings.Prefix)
}

func Test_WriteSeries(t *testing.T) {
	path := WriteSeries(t, t.TempDir(), "series.txt", []float64{0, 1.5, -2})
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "0\n1.5\n-2\n", string(content))
}

func Test_Constant(t *testing.T) {
	require.Equal(t, []float64{5, 5, 5}, Constant(3, 5))
	require.Empty(t, Constant(0, 5))
}
