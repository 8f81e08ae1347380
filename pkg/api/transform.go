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

type DegeneratePolicy string

const (
	DegenerateError DegeneratePolicy = "error"
	DegenerateZero  DegeneratePolicy = "zero"
)

type DegeneratePolicyEnum struct {
	Error string `yaml:"error" doc:"abort on the first window whose ratios or moments are undefined"`
	Zero  string `yaml:"zero" doc:"substitute 0 for every undefined feature"`
}

func DegeneratePolicyName(operation string) string {
	return GetEnumName(DegeneratePolicyEnum{}, operation)
}

type Segment struct {
	WindowSize int `yaml:"windowSize,omitempty" json:"windowSize,omitempty" doc:"number of samples per window (default: 500)"`
}

type Features struct {
	Degenerate DegeneratePolicy `yaml:"degenerate,omitempty" json:"degenerate,omitempty" enum:"DegeneratePolicyEnum" doc:"(enum) behavior on all-zero or constant windows:"`
}

type Outlier struct {
	Contamination float64 `yaml:"contamination,omitempty" json:"contamination,omitempty" doc:"expected fraction of outliers, in (0, 0.5] (default: 0.02)"`
	Trees         int     `yaml:"trees,omitempty" json:"trees,omitempty" doc:"number of isolation trees (default: 100)"`
	MaxSamples    int     `yaml:"maxSamples,omitempty" json:"maxSamples,omitempty" doc:"samples drawn to grow each tree (default: min(256, number of windows))"`
	Seed          uint64  `yaml:"seed,omitempty" json:"seed,omitempty" doc:"random seed of the forest"`
	Disabled      bool    `yaml:"disabled,omitempty" json:"disabled,omitempty" doc:"keep every window"`
}
