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

package api

type IngestType string

const (
	IngestFile      IngestType = "file"
	IngestSynthetic IngestType = "synthetic"
)

type IngestTypeEnum struct {
	File      string `yaml:"file" doc:"read normal and abnormal signals from text files, one value per line"`
	Synthetic string `yaml:"synthetic" doc:"generate seeded synthetic vibration signals"`
}

func IngestTypeName(operation string) string {
	return GetEnumName(IngestTypeEnum{}, operation)
}

type Ingest struct {
	Type      IngestType           `yaml:"type,omitempty" json:"type,omitempty" enum:"IngestTypeEnum" doc:"(enum) one of the following:"`
	Normal    string               `yaml:"normal,omitempty" json:"normal,omitempty" doc:"path of the normal-condition signal file"`
	Abnormal  string               `yaml:"abnormal,omitempty" json:"abnormal,omitempty" doc:"path of the abnormal-condition signal file"`
	Synthetic *IngestSyntheticSpec `yaml:"synthetic,omitempty" json:"synthetic,omitempty" doc:"synthetic generator parameters"`
}

type IngestSyntheticSpec struct {
	Samples      int     `yaml:"samples,omitempty" json:"samples,omitempty" doc:"number of samples generated per class (default: 50000)"`
	Frequency    float64 `yaml:"frequency,omitempty" json:"frequency,omitempty" doc:"base vibration frequency in cycles per sample (default: 0.01)"`
	Amplitude    float64 `yaml:"amplitude,omitempty" json:"amplitude,omitempty" doc:"amplitude of the base vibration (default: 1.0)"`
	Noise        float64 `yaml:"noise,omitempty" json:"noise,omitempty" doc:"standard deviation of the additive gaussian noise (default: 0.1)"`
	ImpulseEvery int     `yaml:"impulseEvery,omitempty" json:"impulseEvery,omitempty" doc:"period, in samples, of the fault impulses added to the abnormal signal (default: 97)"`
	ImpulseGain  float64 `yaml:"impulseGain,omitempty" json:"impulseGain,omitempty" doc:"amplitude of the fault impulses (default: 4.0)"`
	Seed         uint64  `yaml:"seed,omitempty" json:"seed,omitempty" doc:"random seed of the generator"`
}
