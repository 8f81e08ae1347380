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
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/netobserv/vibration-gcn/pkg/confusion"
	"github.com/netobserv/vibration-gcn/pkg/pipeline/graph"
	"github.com/netobserv/vibration-gcn/pkg/pipeline/ingest"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DumpRawFile       = "raw.json"
	DumpFeaturesFile  = "features.json"
	DumpAdjacencyFile = "adjacency.json"
	DumpConfusionFile = "confusion.json"
)

var dlog = logrus.WithField("component", "pipeline.Diagnostics")

// Diagnostics is notified at every checkpoint of a run. A returned error is logged and the run goes on.
type Diagnostics interface {
	RawLoaded(signals *ingest.Signals) error
	FeaturesExtracted(dataset *Dataset) error
	GraphBuilt(adjacency *graph.Adjacency) error
	Evaluated(metrics confusion.Metrics) error
}

func NewDiagnostics(params api.Diagnostics) (Diagnostics, error) {
	switch params.Type {
	case api.DiagnosticsNone, "":
		return NoDiagnostics{}, nil
	case api.DiagnosticsLog:
		return LogDiagnostics{}, nil
	case api.DiagnosticsDump:
		if params.Dir == "" {
			return nil, fmt.Errorf("diagnostics dump requires a directory")
		}
		return &DumpDiagnostics{Dir: params.Dir}, nil
	}
	return nil, fmt.Errorf("unknown diagnostics type %q", params.Type)
}

type NoDiagnostics struct{}

func (NoDiagnostics) RawLoaded(*ingest.Signals) error { return nil }
func (NoDiagnostics) FeaturesExtracted(*Dataset) error { return nil }
func (NoDiagnostics) GraphBuilt(*graph.Adjacency) error { return nil }
func (NoDiagnostics) Evaluated(confusion.Metrics) error { return nil }

type LogDiagnostics struct{}

func (LogDiagnostics) RawLoaded(signals *ingest.Signals) error {
	dlog.WithFields(logrus.Fields{
		"normal":   len(signals.Normal),
		"abnormal": len(signals.Abnormal),
	}).Info("raw signals loaded")
	return nil
}

func (LogDiagnostics) FeaturesExtracted(dataset *Dataset) error {
	dlog.WithFields(logrus.Fields{
		"normal":   dataset.Count(Normal),
		"abnormal": dataset.Count(Abnormal),
	}).Info("features extracted")
	return nil
}

func (LogDiagnostics) GraphBuilt(adjacency *graph.Adjacency) error {
	dlog.WithFields(logrus.Fields{
		"nodes": adjacency.Size(),
		"edges": len(adjacency.Edges()),
	}).Info("graph built")
	return nil
}

func (LogDiagnostics) Evaluated(metrics confusion.Metrics) error {
	dlog.Infof("confusion matrix:\n%s", metrics.Table())
	return nil
}

// DumpDiagnostics writes every checkpoint as a JSON file under Dir.
type DumpDiagnostics struct {
	Dir string
}

type featuresDump struct {
	Labels   []ClassLabel `json:"labels"`
	Features interface{}  `json:"features"`
}

func (d *DumpDiagnostics) RawLoaded(signals *ingest.Signals) error {
	return d.dump(DumpRawFile, signals)
}

func (d *DumpDiagnostics) FeaturesExtracted(dataset *Dataset) error {
	return d.dump(DumpFeaturesFile, featuresDump{Labels: dataset.Labels, Features: dataset.Features})
}

func (d *DumpDiagnostics) GraphBuilt(adjacency *graph.Adjacency) error {
	return d.dump(DumpAdjacencyFile, adjacency)
}

func (d *DumpDiagnostics) Evaluated(metrics confusion.Metrics) error {
	return d.dump(DumpConfusionFile, metrics)
}

func (d *DumpDiagnostics) dump(name string, v interface{}) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return errors.Wrap(err, "creating diagnostics directory")
	}
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", name)
	}
	path := filepath.Join(d.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	dlog.Debugf("dumped %s", path)
	return nil
}
