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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/netobserv/vibration-gcn/pkg/operational"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

var flog = log.WithField("component", "ingest.File")

type ingestFile struct {
	normal   string
	abnormal string
	samples  *prometheus.CounterVec
}

// Ingest reads the normal and abnormal files; any unreadable file or malformed line aborts the run
func (r *ingestFile) Ingest() (*Signals, error) {
	normal, err := ReadFile(r.normal)
	if err != nil {
		return nil, err
	}
	abnormal, err := ReadFile(r.abnormal)
	if err != nil {
		return nil, err
	}
	r.samples.WithLabelValues(classNormal).Add(float64(len(normal)))
	r.samples.WithLabelValues(classAbnormal).Add(float64(len(abnormal)))
	return &Signals{Normal: normal, Abnormal: abnormal}, nil
}

// ReadFile loads a series stored as one numeric value per line.
func ReadFile(path string) (Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	series, err := Read(file, path)
	if err != nil {
		return nil, err
	}
	flog.Infof("Ingested %d samples from %s", len(series), path)
	return series, nil
}

// Read parses one float64 per line from r. name only appears in error messages.
func Read(r io.Reader, name string) (Series, error) {
	series := make(Series, 0)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: malformed sample %q: %w", name, line, text, err)
		}
		series = append(series, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%s: no samples", name)
	}
	return series, nil
}

// NewIngestFile create a new ingester
func NewIngestFile(params api.Ingest, opMetrics *operational.Metrics) (Ingester, error) {
	flog.Debugf("entering NewIngestFile")
	if params.Normal == "" || params.Abnormal == "" {
		return nil, fmt.Errorf("ingest filenames not specified")
	}

	flog.Infof("input file names: normal = %s, abnormal = %s", params.Normal, params.Abnormal)

	return &ingestFile{
		normal:   params.Normal,
		abnormal: params.Abnormal,
		samples:  opMetrics.NewCounterVec(&samplesIngested),
	}, nil
}
