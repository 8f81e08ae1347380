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
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/vibration-gcn/pkg/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// InitConfig reads a yaml configuration the same way the command line does, and returns the parsed run configuration.
func InitConfig(t *testing.T, conf string) (*viper.Viper, *config.ConfigFileStruct) {
	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	v := viper.New()
	v.SetConfigType("yaml")
	err := v.ReadConfig(bytes.NewReader([]byte(conf)))
	require.NoError(t, err)

	opts := config.Options{}
	if params := v.Get("parameters"); params != nil {
		b, err := json.Marshal(&params)
		require.NoError(t, err)
		opts.Parameters = string(b)
	}
	if settings := v.Get("metricsSettings"); settings != nil {
		b, err := json.Marshal(&settings)
		require.NoError(t, err)
		opts.MetricsSettings = string(b)
	}

	cfg, err := config.ParseConfig(&opts)
	require.NoError(t, err)
	cfg.LogLevel = v.GetString("log-level")
	return v, &cfg
}

// WriteSeries stores values in dir/name, one per line, and returns the file path.
func WriteSeries(t *testing.T, dir, name string, values []float64) string {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		sb.WriteByte('\n')
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o600))
	return path
}

// Constant returns n copies of value.
func Constant(n int, value float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}
