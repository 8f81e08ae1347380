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

package config

import (
	"fmt"

	"github.com/netobserv/vibration-gcn/pkg/api"
)

// ValidationError reports a configuration value rejected before any computation starts.
type ValidationError struct {
	Field string
	Value interface{}
	Cause string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Cause)
}

func invalid(field string, value interface{}, cause string) error {
	return &ValidationError{Field: field, Value: value, Cause: cause}
}

// Validate rejects parameters that can never produce a valid run. Zero values stand for defaults and are accepted.
func Validate(p *api.API) error {
	switch p.Ingest.Type {
	case api.IngestFile:
		if p.Ingest.Normal == "" {
			return invalid("ingest.normal", p.Ingest.Normal, "normal signal file must be provided")
		}
		if p.Ingest.Abnormal == "" {
			return invalid("ingest.abnormal", p.Ingest.Abnormal, "abnormal signal file must be provided")
		}
	case api.IngestSynthetic:
		if s := p.Ingest.Synthetic; s != nil {
			if s.Samples < 0 {
				return invalid("ingest.synthetic.samples", s.Samples, "must not be negative")
			}
			if s.Noise < 0 {
				return invalid("ingest.synthetic.noise", s.Noise, "must not be negative")
			}
		}
	case "":
		return invalid("ingest.type", p.Ingest.Type, "ingest type must be provided")
	default:
		return invalid("ingest.type", p.Ingest.Type, "unknown ingest type")
	}

	if p.Segment.WindowSize < 0 {
		return invalid("segment.windowSize", p.Segment.WindowSize, "must be positive")
	}

	switch p.Features.Degenerate {
	case "", api.DegenerateError, api.DegenerateZero:
	default:
		return invalid("features.degenerate", p.Features.Degenerate, "unknown policy")
	}

	if c := p.Outlier.Contamination; c < 0 || c > 0.5 {
		return invalid("outlier.contamination", c, "must be in (0, 0.5]")
	}
	if p.Outlier.Trees < 0 {
		return invalid("outlier.trees", p.Outlier.Trees, "must be positive")
	}
	if p.Outlier.MaxSamples < 0 {
		return invalid("outlier.maxSamples", p.Outlier.MaxSamples, "must be positive")
	}

	if f := p.Split.TrainFraction; f < 0 || f > 1 {
		return invalid("split.trainFraction", f, "must be in [0, 1]")
	}

	if p.Graph.Neighbors < 0 {
		return invalid("graph.neighbors", p.Graph.Neighbors, "must be positive")
	}

	for i, h := range p.Model.Hidden {
		if h <= 0 {
			return invalid(fmt.Sprintf("model.hidden[%d]", i), h, "must be positive")
		}
	}
	if d := p.Model.Dropout; d < 0 || d >= 1 {
		return invalid("model.dropout", d, "must be in [0, 1)")
	}
	if p.Model.Epochs != nil && *p.Model.Epochs < 0 {
		return invalid("model.epochs", *p.Model.Epochs, "must not be negative")
	}
	if p.Model.LearningRate < 0 {
		return invalid("model.learningRate", p.Model.LearningRate, "must be positive")
	}

	switch p.Write.Type {
	case "", api.WriteStdout, api.WriteNone:
	case api.WriteFile:
		if p.Write.Path == "" {
			return invalid("write.path", p.Write.Path, "path must be provided for the file writer")
		}
	default:
		return invalid("write.type", p.Write.Type, "unknown writer")
	}
	switch p.Write.Format {
	case "", api.FormatText, api.FormatJSON, api.FormatYAML:
	default:
		return invalid("write.format", p.Write.Format, "unknown format")
	}

	switch p.Diagnostics.Type {
	case "", api.DiagnosticsNone, api.DiagnosticsLog:
	case api.DiagnosticsDump:
		if p.Diagnostics.Dir == "" {
			return invalid("diagnostics.dir", p.Diagnostics.Dir, "directory must be provided for the dump diagnostics")
		}
	default:
		return invalid("diagnostics.type", p.Diagnostics.Type, "unknown diagnostics")
	}
	return nil
}
