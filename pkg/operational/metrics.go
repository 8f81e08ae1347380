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

package operational

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/netobserv/vibration-gcn/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type MetricDefinition struct {
	Name   string
	Help   string
	Type   metricType
	Labels []string
}

type metricType string

const TypeCounter metricType = "counter"
const TypeGauge metricType = "gauge"
const TypeHistogram metricType = "histogram"

var allMetrics = []MetricDefinition{}

// DefineMetric declares an operational metric; the declaration feeds the generated documentation.
func DefineMetric(name, help string, t metricType, labels ...string) MetricDefinition {
	def := MetricDefinition{
		Name:   name,
		Help:   help,
		Type:   t,
		Labels: labels,
	}
	allMetrics = append(allMetrics, def)
	return def
}

func (def *MetricDefinition) mapLabels(labels []string) prometheus.Labels {
	if len(labels) != len(def.Labels) {
		log.Errorf("Could not map labels, length differ in def %s [%v / %v]", def.Name, def.Labels, labels)
	}
	labelsMap := prometheus.Labels{}
	for i, label := range labels {
		labelsMap[def.Labels[i]] = label
	}
	return labelsMap
}

func verifyMetricType(def *MetricDefinition, t metricType) {
	if def.Type != t {
		log.Panicf("operational metric for %s has wrong type. Expected %s, got %s", def.Name, t, def.Type)
	}
}

type Metrics struct {
	settings *config.MetricsSettings
	mu       sync.Mutex
}

func NewMetrics(settings *config.MetricsSettings) *Metrics {
	if settings == nil {
		settings = &config.MetricsSettings{}
	}
	return &Metrics{settings: settings}
}

// register registers a collector, or returns the already registered one when the same metric was
// registered by a previous pipeline of this process.
func register[T prometheus.Collector](c T, name string) T {
	err := prometheus.Register(c)
	if err != nil {
		var castErr prometheus.AlreadyRegisteredError
		if errors.As(err, &castErr) {
			if existing, ok := castErr.ExistingCollector.(T); ok {
				return existing
			}
		}
		log.Errorf("metrics registration error [%s]: %v", name, err)
	}
	return c
}

func (o *Metrics) fullName(def *MetricDefinition) string {
	return o.settings.Prefix + def.Name
}

func (o *Metrics) NewCounter(def *MetricDefinition, labels ...string) prometheus.Counter {
	verifyMetricType(def, TypeCounter)
	fullName := o.fullName(def)
	o.mu.Lock()
	defer o.mu.Unlock()
	return register(prometheus.NewCounter(prometheus.CounterOpts{
		Name:        fullName,
		Help:        def.Help,
		ConstLabels: def.mapLabels(labels),
	}), fullName)
}

func (o *Metrics) NewCounterVec(def *MetricDefinition) *prometheus.CounterVec {
	verifyMetricType(def, TypeCounter)
	fullName := o.fullName(def)
	o.mu.Lock()
	defer o.mu.Unlock()
	return register(prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: fullName,
		Help: def.Help,
	}, def.Labels), fullName)
}

func (o *Metrics) NewGauge(def *MetricDefinition, labels ...string) prometheus.Gauge {
	verifyMetricType(def, TypeGauge)
	fullName := o.fullName(def)
	o.mu.Lock()
	defer o.mu.Unlock()
	return register(prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        fullName,
		Help:        def.Help,
		ConstLabels: def.mapLabels(labels),
	}), fullName)
}

func (o *Metrics) NewGaugeVec(def *MetricDefinition) *prometheus.GaugeVec {
	verifyMetricType(def, TypeGauge)
	fullName := o.fullName(def)
	o.mu.Lock()
	defer o.mu.Unlock()
	return register(prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: fullName,
		Help: def.Help,
	}, def.Labels), fullName)
}

func (o *Metrics) NewHistogramVec(def *MetricDefinition, buckets []float64) *prometheus.HistogramVec {
	verifyMetricType(def, TypeHistogram)
	fullName := o.fullName(def)
	o.mu.Lock()
	defer o.mu.Unlock()
	return register(prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    fullName,
		Help:    def.Help,
		Buckets: buckets,
	}, def.Labels), fullName)
}

func GetDocumentation() string {
	sorted := make([]MetricDefinition, len(allMetrics))
	copy(sorted, allMetrics)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	doc := ""
	for _, opts := range sorted {
		doc += fmt.Sprintf(
			`
### %s
| **Name** | %s | 
|:---|:---|
| **Description** | %s | 
| **Type** | %s | 
| **Labels** | %s | 

`,
			opts.Name,
			opts.Name,
			opts.Help,
			opts.Type,
			strings.Join(opts.Labels, ", "),
		)
	}

	return doc
}
