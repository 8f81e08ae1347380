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

package api

const TagYaml = "yaml"
const TagDoc = "doc"
const TagEnum = "enum"

// Note: items beginning with doc: "## title" are top level items that get divided into sections inside api.md.

// API holds the parameters of every stage of the classification pipeline.
type API struct {
	Ingest      Ingest      `yaml:"ingest,omitempty" json:"ingest,omitempty" doc:"## Ingest API\nFollowing is the supported API format for loading the raw vibration signals:\n"`
	Segment     Segment     `yaml:"segment,omitempty" json:"segment,omitempty" doc:"## Segment API\nFollowing is the supported API format for splitting signals into windows:\n"`
	Features    Features    `yaml:"features,omitempty" json:"features,omitempty" doc:"## Features API\nFollowing is the supported API format for statistical feature extraction:\n"`
	Outlier     Outlier     `yaml:"outlier,omitempty" json:"outlier,omitempty" doc:"## Outlier API\nFollowing is the supported API format for isolation forest outlier removal:\n"`
	Split       Split       `yaml:"split,omitempty" json:"split,omitempty" doc:"## Split API\nFollowing is the supported API format for the train/test partition:\n"`
	Graph       Graph       `yaml:"graph,omitempty" json:"graph,omitempty" doc:"## Graph API\nFollowing is the supported API format for the k-nearest-neighbor graph:\n"`
	Model       Model       `yaml:"model,omitempty" json:"model,omitempty" doc:"## Model API\nFollowing is the supported API format for the graph convolutional classifier:\n"`
	Write       Write       `yaml:"write,omitempty" json:"write,omitempty" doc:"## Write API\nFollowing is the supported API format for the evaluation report:\n"`
	Diagnostics Diagnostics `yaml:"diagnostics,omitempty" json:"diagnostics,omitempty" doc:"## Diagnostics API\nFollowing is the supported API format for pipeline checkpoint diagnostics:\n"`
}
