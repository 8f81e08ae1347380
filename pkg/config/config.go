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

package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	ms "github.com/mitchellh/mapstructure"
	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/sirupsen/logrus"
)

const defaultMetricsPrefix = "vibration_gcn_"

type Options struct {
	Parameters      string
	MetricsSettings string
	Normal          string
	Abnormal        string
	Health          Health
	Profile         Profile
	Trace           bool
}

type Health struct {
	Address string
	Port    string
}

type Profile struct {
	Port int
}

// ConfigFileStruct is the full run configuration, as read from a config file or assembled from flags.
type ConfigFileStruct struct {
	LogLevel        string          `yaml:"log-level,omitempty" json:"log-level,omitempty"`
	MetricsSettings MetricsSettings `yaml:"metricsSettings,omitempty" json:"metricsSettings,omitempty"`
	Parameters      api.API         `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

type MetricsSettings struct {
	Address string `yaml:"address,omitempty" json:"address,omitempty" doc:"address to expose the operational metrics on (default: 0.0.0.0)"`
	Port    int    `yaml:"port,omitempty" json:"port,omitempty" doc:"port to expose the operational metrics on; disabled when 0"`
	Prefix  string `yaml:"prefix,omitempty" json:"prefix,omitempty" doc:"prefix for names of the operational metrics"`
	NoPanic bool   `yaml:"noPanic,omitempty" json:"noPanic,omitempty"`
}

// ParseConfig creates the internal unmarshalled representation from the Parameters and MetricsSettings json
func ParseConfig(opts *Options) (ConfigFileStruct, error) {
	out := ConfigFileStruct{}

	logrus.Debugf("opts.Parameters = %v ", opts.Parameters)
	if opts.Parameters != "" {
		params, err := parseParameters(opts.Parameters)
		if err != nil {
			logrus.Errorf("error when parsing pipeline parameters: %v", err)
			return out, err
		}
		out.Parameters = params
	}
	logrus.Debugf("params = %v ", out.Parameters)

	if opts.MetricsSettings != "" {
		if err := JsonUnmarshalStrict([]byte(opts.MetricsSettings), &out.MetricsSettings); err != nil {
			logrus.Errorf("error when parsing global metrics settings: %v", err)
			return out, err
		}
		logrus.Debugf("metrics settings = %v ", out.MetricsSettings)
	}
	if out.MetricsSettings.Prefix == "" {
		out.MetricsSettings.Prefix = defaultMetricsPrefix
	}

	// the shortcut flags override whatever file ingest is configured
	if opts.Normal != "" || opts.Abnormal != "" {
		out.Parameters.Ingest.Type = api.IngestFile
		if opts.Normal != "" {
			out.Parameters.Ingest.Normal = opts.Normal
		}
		if opts.Abnormal != "" {
			out.Parameters.Ingest.Abnormal = opts.Abnormal
		}
	}

	if err := Validate(&out.Parameters); err != nil {
		return out, err
	}
	return out, nil
}

// DecodeParameters converts a generic map, such as the one read by viper from a yaml file, into pipeline parameters.
func DecodeParameters(in interface{}) (api.API, error) {
	out := api.API{}
	decoder, err := ms.NewDecoder(&ms.DecoderConfig{
		TagName:          api.TagYaml,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	if err := decoder.Decode(in); err != nil {
		return out, fmt.Errorf("can't decode parameters: %w", err)
	}
	return out, nil
}

// parseParameters reads the parameters JSON into a generic map, numbers kept as json.Number so that
// 64-bit seeds survive, then decodes the map like any other parameter source.
func parseParameters(in string) (api.API, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(in)))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return api.API{}, err
	}
	return DecodeParameters(raw)
}

// JsonUnmarshalStrict is like Unmarshal except that any fields that are found
// in the data that do not have corresponding struct members, or mapping
// keys that are duplicates, will result in
// an error.
// nolint:revive,stylecheck
func JsonUnmarshalStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
