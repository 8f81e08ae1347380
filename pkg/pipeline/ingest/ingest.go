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

package ingest

import (
	"fmt"

	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/netobserv/vibration-gcn/pkg/operational"
)

// Series is an ordered sequence of raw sensor samples. It is never modified once read.
type Series []float64

// Signals holds the two raw series of a run.
type Signals struct {
	Normal   Series `json:"normal"`
	Abnormal Series `json:"abnormal"`
}

type Ingester interface {
	Ingest() (*Signals, error)
}

// NewIngester builds the ingester selected by params.Type.
func NewIngester(params api.Ingest, opMetrics *operational.Metrics) (Ingester, error) {
	switch params.Type {
	case api.IngestFile:
		return NewIngestFile(params, opMetrics)
	case api.IngestSynthetic:
		return NewIngestSynthetic(params, opMetrics)
	default:
		return nil, fmt.Errorf("`ingest` type %q not defined", params.Type)
	}
}
