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

package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"github.com/heptiolabs/healthcheck"
	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/netobserv/vibration-gcn/pkg/config"
	"github.com/netobserv/vibration-gcn/pkg/confusion"
	"github.com/netobserv/vibration-gcn/pkg/operational"
	"github.com/netobserv/vibration-gcn/pkg/pipeline/gcn"
	"github.com/netobserv/vibration-gcn/pkg/pipeline/graph"
	"github.com/netobserv/vibration-gcn/pkg/pipeline/ingest"
	"github.com/netobserv/vibration-gcn/pkg/pipeline/split"
	"github.com/netobserv/vibration-gcn/pkg/pipeline/transform"
	"github.com/netobserv/vibration-gcn/pkg/pipeline/write"
	"github.com/netobserv/vibration-gcn/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"gonum.org/v1/gonum/mat"
)

const (
	StageIngest   = "ingest"
	StageSegment  = "segment"
	StageFeatures = "features"
	StageOutlier  = "outlier"
	StageSplit    = "split"
	StageGraph    = "graph"
	StageTrain    = "train"
	StageEvaluate = "evaluate"
	StageWrite    = "write"
)

var plog = logrus.WithField("component", "pipeline")

var tracer = otel.Tracer("github.com/netobserv/vibration-gcn/pkg/pipeline")

var (
	stageDuration = operational.DefineMetric(
		"stage_duration_seconds",
		"Time spent in every pipeline stage",
		operational.TypeHistogram,
		"stage",
	)
	stageErrors = operational.DefineMetric(
		"stage_errors_total",
		"Number of pipeline runs aborted, per failing stage",
		operational.TypeCounter,
		"stage",
	)
	diagnosticsErrors = operational.DefineMetric(
		"diagnostics_errors_total",
		"Number of failed diagnostics hooks, per checkpoint",
		operational.TypeCounter,
		"checkpoint",
	)
	runsTotal = operational.DefineMetric(
		"runs_total",
		"Number of completed pipeline runs",
		operational.TypeCounter,
	)
)

// Error wraps any error raised by a stage of the pipeline
type Error struct {
	StageName string
	wrapped   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pipeline stage %q: %s", e.StageName, e.wrapped.Error())
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

type ClassLabel int

const (
	Normal   ClassLabel = 0
	Abnormal ClassLabel = 1
)

func (c ClassLabel) String() string {
	if c == Abnormal {
		return "abnormal"
	}
	return "normal"
}

// Dataset holds the features of every window with its label. Normal windows come first.
type Dataset struct {
	Features []transform.FeatureVector
	Labels   []ClassLabel
}

func (d *Dataset) Len() int {
	return len(d.Features)
}

func (d *Dataset) Count(label ClassLabel) int {
	n := 0
	for _, l := range d.Labels {
		if l == label {
			n++
		}
	}
	return n
}

// Filter keeps the windows listed in indexes, in that order.
func (d *Dataset) Filter(indexes []int) *Dataset {
	out := &Dataset{
		Features: make([]transform.FeatureVector, len(indexes)),
		Labels:   make([]ClassLabel, len(indexes)),
	}
	for i, idx := range indexes {
		out.Features[i] = d.Features[idx]
		out.Labels[i] = d.Labels[idx]
	}
	return out
}

// Matrix lays the features out as a row per window.
func (d *Dataset) Matrix() *mat.Dense {
	data := make([]float64, 0, d.Len()*transform.FeatureCount)
	for i := range d.Features {
		v := d.Features[i].Values()
		data = append(data, v[:]...)
	}
	return mat.NewDense(d.Len(), transform.FeatureCount, data)
}

func (d *Dataset) labels() []int {
	out := make([]int, len(d.Labels))
	for i, l := range d.Labels {
		out[i] = int(l)
	}
	return out
}

// Result gathers the intermediate and final products of a run.
type Result struct {
	Dataset      *Dataset
	CleanIndexes []int
	Mask         split.Mask
	Adjacency    *graph.Adjacency
	Predictions  []int
	Metrics      confusion.Metrics
	Report       *write.Report
}

// Pipeline manager
type Pipeline struct {
	running       atomic.Bool
	params        api.API
	opMetrics     *operational.Metrics
	clock         clock.Clock
	diagnostics   Diagnostics
	ingester      ingest.Ingester
	writer        write.Writer
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	runs          prometheus.Counter

	diagnosticsErrors *prometheus.CounterVec
}

type Option func(*Pipeline)

func WithClock(c clock.Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

func WithDiagnostics(d Diagnostics) Option {
	return func(p *Pipeline) { p.diagnostics = d }
}

func WithIngester(i ingest.Ingester) Option {
	return func(p *Pipeline) { p.ingester = i }
}

func WithWriter(w write.Writer) Option {
	return func(p *Pipeline) { p.writer = w }
}

func WithMetrics(m *operational.Metrics) Option {
	return func(p *Pipeline) { p.opMetrics = m }
}

// NewPipeline defines the pipeline elements
func NewPipeline(cfg *config.ConfigFileStruct, opts ...Option) (*Pipeline, error) {
	plog.Debugf("entering NewPipeline")
	p := &Pipeline{params: cfg.Parameters}
	for _, opt := range opts {
		opt(p)
	}
	if p.opMetrics == nil {
		p.opMetrics = operational.NewMetrics(&cfg.MetricsSettings)
	}
	if p.clock == nil {
		p.clock = clock.New()
	}
	var err error
	if p.diagnostics == nil {
		if p.diagnostics, err = NewDiagnostics(p.params.Diagnostics); err != nil {
			return nil, err
		}
	}
	if p.ingester == nil {
		if p.ingester, err = ingest.NewIngester(p.params.Ingest, p.opMetrics); err != nil {
			return nil, &Error{StageName: StageIngest, wrapped: err}
		}
	}
	if p.writer == nil {
		if p.writer, err = write.NewWriter(p.params.Write); err != nil {
			return nil, &Error{StageName: StageWrite, wrapped: err}
		}
	}
	p.stageDuration = p.opMetrics.NewHistogramVec(&stageDuration, prometheus.ExponentialBuckets(0.001, 4, 10))
	p.stageErrors = p.opMetrics.NewCounterVec(&stageErrors)
	p.runs = p.opMetrics.NewCounter(&runsTotal)
	p.diagnosticsErrors = p.opMetrics.NewCounterVec(&diagnosticsErrors)
	return p, nil
}

// stage runs fn as the named stage: timed, traced, and with its error wrapped.
func (p *Pipeline) stage(ctx context.Context, name string, report *write.Report, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return &Error{StageName: name, wrapped: err}
	}
	ctx, span := tracer.Start(ctx, name)
	defer span.End()

	start := p.clock.Now()
	err := fn(ctx)
	elapsed := p.clock.Since(start)
	report.Durations[name] = api.Duration{Duration: elapsed}
	p.stageDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.stageErrors.WithLabelValues(name).Inc()
		return &Error{StageName: name, wrapped: err}
	}
	plog.WithField("stage", name).Debugf("done in %s", elapsed)
	return nil
}

// checkpoint reports a failed diagnostics hook. Diagnostics never abort a run.
func (p *Pipeline) checkpoint(name string, err error) {
	if err == nil {
		return
	}
	p.diagnosticsErrors.WithLabelValues(name).Inc()
	dlog.WithError(err).WithField("checkpoint", name).Warn("diagnostics failed")
}

// Run executes every stage once, from ingestion to the report.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.running.Store(true)
	defer p.running.Store(false)
	ctx, span := tracer.Start(ctx, "pipeline.Run")
	defer span.End()

	res := &Result{Report: &write.Report{Durations: map[string]api.Duration{}}}
	report := res.Report

	var signals *ingest.Signals
	err := p.stage(ctx, StageIngest, report, func(context.Context) error {
		var err error
		if signals, err = p.ingester.Ingest(); err != nil {
			return err
		}
		p.checkpoint("raw loaded", p.diagnostics.RawLoaded(signals))
		return nil
	})
	if err != nil {
		return nil, err
	}

	var normal, abnormal []transform.Window
	err = p.stage(ctx, StageSegment, report, func(context.Context) error {
		size := transform.WindowSize(p.params.Segment.WindowSize)
		var err error
		if normal, err = transform.Segment(signals.Normal, size); err != nil {
			return fmt.Errorf("normal signal: %w", err)
		}
		if abnormal, err = transform.Segment(signals.Abnormal, size); err != nil {
			return fmt.Errorf("abnormal signal: %w", err)
		}
		report.NormalWindows, report.AbnormalWindows = len(normal), len(abnormal)
		return nil
	})
	if err != nil {
		return nil, err
	}

	dirty := &Dataset{}
	err = p.stage(ctx, StageFeatures, report, func(context.Context) error {
		extractor := transform.NewFeatureExtractor(p.params.Features, p.opMetrics)
		features, err := extractor.ExtractAll(append(append([]transform.Window{}, normal...), abnormal...))
		if err != nil {
			return err
		}
		dirty.Features = features
		dirty.Labels = make([]ClassLabel, len(features))
		for i := len(normal); i < len(features); i++ {
			dirty.Labels[i] = Abnormal
		}
		p.checkpoint("features extracted", p.diagnostics.FeaturesExtracted(dirty))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageOutlier, report, func(context.Context) error {
		filter, err := transform.NewOutlierFilter(p.params.Outlier, p.opMetrics)
		if err != nil {
			return err
		}
		if res.CleanIndexes, err = filter.CleanIndexes(transform.Rows(dirty.Features)); err != nil {
			return err
		}
		res.Dataset = dirty.Filter(res.CleanIndexes)
		for _, label := range []ClassLabel{Normal, Abnormal} {
			if res.Dataset.Count(label) == 0 {
				return fmt.Errorf("every %s window was removed as an outlier", label)
			}
		}
		report.Retained = res.Dataset.Len()
		return nil
	})
	if err != nil {
		return nil, err
	}

	epochs := p.params.Model.GetEpochs(gcn.DefaultEpochs)
	err = p.stage(ctx, StageSplit, report, func(context.Context) error {
		fraction := p.params.Split.TrainFraction
		if fraction == 0 {
			fraction = split.DefaultTrainFraction
		}
		rng := utils.NewRand(p.params.Split.Seed)
		if p.params.Split.NoShuffle {
			rng = nil
		}
		mask, err := split.Build([]int{len(normal), len(abnormal)}, fraction, rng)
		if err != nil {
			return err
		}
		if res.Mask, err = mask.Filter(res.CleanIndexes); err != nil {
			return err
		}
		report.TrainNodes, report.TestNodes = res.Mask.TrainCount(), res.Mask.TestCount()
		if report.TestNodes == 0 {
			return fmt.Errorf("no window left for testing with a train fraction of %v", fraction)
		}
		if report.TrainNodes == 0 && epochs > 0 {
			return fmt.Errorf("no window left for training with a train fraction of %v", fraction)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageGraph, report, func(context.Context) error {
		builder := graph.NewBuilder(p.params.Graph.Neighbors, p.opMetrics)
		var err error
		if res.Adjacency, err = builder.Build(transform.Rows(res.Dataset.Features)); err != nil {
			return err
		}
		report.Edges = len(res.Adjacency.Edges())
		if path := p.params.Graph.Persist; path != "" {
			if err := res.Adjacency.WriteFile(path); err != nil {
				return err
			}
			plog.Infof("adjacency saved to %s", path)
		}
		p.checkpoint("graph built", p.diagnostics.GraphBuilt(res.Adjacency))
		return nil
	})
	if err != nil {
		return nil, err
	}

	var model *gcn.Model
	err = p.stage(ctx, StageTrain, report, func(ctx context.Context) error {
		data := &gcn.Data{
			X:         res.Dataset.Matrix(),
			Edges:     res.Adjacency.Edges(),
			Y:         res.Dataset.labels(),
			TrainMask: res.Mask.Train,
			TestMask:  res.Mask.Test,
		}
		var err error
		if model, err = gcn.NewModel(data, p.params.Model, p.opMetrics); err != nil {
			return err
		}
		if err = model.Train(ctx, epochs); err != nil {
			return err
		}
		report.Epochs, report.FinalLoss = epochs, model.Loss()
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageEvaluate, report, func(ctx context.Context) error {
		var err error
		if res.Metrics, err = model.Evaluate(ctx); err != nil {
			return err
		}
		res.Predictions = model.Predict()
		report.Metrics = res.Metrics
		plog.Infof("evaluation: %s", res.Metrics)
		p.checkpoint("evaluated", p.diagnostics.Evaluated(res.Metrics))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageWrite, report, func(context.Context) error {
		return p.writer.Write(report)
	})
	if err != nil {
		return nil, err
	}
	p.runs.Inc()
	return res, nil
}

// IsReady passes while a run is in progress.
func (p *Pipeline) IsReady() healthcheck.Check {
	return func() error {
		if !p.running.Load() {
			return fmt.Errorf("pipeline is not running")
		}
		return nil
	}
}

// IsAlive passes as long as the process is up, between runs included.
func (p *Pipeline) IsAlive() healthcheck.Check {
	return func() error {
		return nil
	}
}
