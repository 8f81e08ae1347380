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

package write

import (
	"fmt"
	"io"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/netobserv/vibration-gcn/pkg/confusion"
	"gopkg.in/yaml.v2"
)

// Report is the outcome of a pipeline run.
type Report struct {
	NormalWindows   int                     `json:"normalWindows" yaml:"normalWindows"`
	AbnormalWindows int                     `json:"abnormalWindows" yaml:"abnormalWindows"`
	Retained        int                     `json:"retained" yaml:"retained"`
	Edges           int                     `json:"edges" yaml:"edges"`
	TrainNodes      int                     `json:"trainNodes" yaml:"trainNodes"`
	TestNodes       int                     `json:"testNodes" yaml:"testNodes"`
	Epochs          int                     `json:"epochs" yaml:"epochs"`
	FinalLoss       float64                 `json:"finalLoss" yaml:"finalLoss"`
	Metrics         confusion.Metrics       `json:"metrics" yaml:"metrics"`
	Durations       map[string]api.Duration `json:"durations,omitempty" yaml:"durations,omitempty"`
}

type Writer interface {
	Write(report *Report) error
}

// NewWriter builds the writer selected by params.Type; stdout is the default.
func NewWriter(params api.Write) (Writer, error) {
	switch params.Type {
	case "", api.WriteStdout:
		return NewWriteStdout(params)
	case api.WriteFile:
		return NewWriteFile(params)
	case api.WriteNone:
		return NewWriteNone()
	default:
		return nil, fmt.Errorf("`write` type %q not defined", params.Type)
	}
}

func encode(out io.Writer, report *Report, format api.WriteFormat) error {
	switch format {
	case "", api.FormatText:
		_, err := io.WriteString(out, text(report))
		return err
	case api.FormatJSON:
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case api.FormatYAML:
		b, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		_, err = out.Write(b)
		return err
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func text(r *Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Windows: %d normal, %d abnormal, %d retained after outlier removal\n", r.NormalWindows, r.AbnormalWindows, r.Retained)
	fmt.Fprintf(&sb, "Graph: %d edges\n", r.Edges)
	fmt.Fprintf(&sb, "Split: %d training, %d testing\n", r.TrainNodes, r.TestNodes)
	fmt.Fprintf(&sb, "Training: %d epochs, final loss %.6f\n\n", r.Epochs, r.FinalLoss)
	sb.WriteString(r.Metrics.Table())
	fmt.Fprintf(&sb, "\nAccuracy:  %.4f\nPrecision: %.4f\nRecall:    %.4f\nF1-score:  %.4f\n",
		r.Metrics.Accuracy, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1)
	if len(r.Durations) > 0 {
		stages := make([]string, 0, len(r.Durations))
		for stage := range r.Durations {
			stages = append(stages, stage)
		}
		sort.Strings(stages)
		sb.WriteString("\nDurations:\n")
		for _, stage := range stages {
			fmt.Fprintf(&sb, "  %-10s %s\n", stage, r.Durations[stage])
		}
	}
	return sb.String()
}
