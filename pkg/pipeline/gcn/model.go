/*
 * Copyright (C) 2023 IBM, Inc.
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

package gcn

import (
	"context"
	"errors"
	"fmt"

	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/netobserv/vibration-gcn/pkg/confusion"
	"github.com/netobserv/vibration-gcn/pkg/operational"
	"github.com/netobserv/vibration-gcn/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/mat"
)

const (
	// Classes is the number of output classes: normal and abnormal.
	Classes              = 2
	DefaultEpochs        = 350
	defaultDropout       = 0.1
	defaultProgressEvery = 50
)

// DefaultHidden holds the widths of the hidden layers.
var DefaultHidden = []int{8, 16, 8}

var glog = logrus.WithField("component", "gcn.Model")

var tracer = otel.Tracer("github.com/netobserv/vibration-gcn/pkg/pipeline/gcn")

// Data is a node classification problem: one row of X per node, a label per node, and the nodes used for
// training and for testing.
type Data struct {
	X         *mat.Dense
	Edges     [][2]int
	Y         []int
	TrainMask []bool
	TestMask  []bool
}

func (d *Data) validate() error {
	if d.X == nil {
		return errors.New("no node features")
	}
	n, _ := d.X.Dims()
	if len(d.Y) != n {
		return fmt.Errorf("got %d labels for %d nodes", len(d.Y), n)
	}
	if len(d.TrainMask) != n || len(d.TestMask) != n {
		return fmt.Errorf("masks of %d/%d positions for %d nodes", len(d.TrainMask), len(d.TestMask), n)
	}
	for i, y := range d.Y {
		if y < 0 || y >= Classes {
			return fmt.Errorf("label %d of node %d out of range", y, i)
		}
	}
	return nil
}

// Model is a stack of graph convolutions with Mish activations and dropout between them, ending with a
// log-softmax over the classes.
type Model struct {
	data          *Data
	layers        []Layer
	optimizer     Optimizer
	progressEvery int
	lastLoss      float64
	loss          prometheus.Gauge
	epochs        prometheus.Counter
}

func NewModel(data *Data, params api.Model, opMetrics *operational.Metrics) (*Model, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}
	hidden := params.Hidden
	if len(hidden) == 0 {
		hidden = DefaultHidden
	}
	dropout := params.Dropout
	if dropout == 0 {
		dropout = defaultDropout
	}
	if dropout < 0 || dropout >= 1 {
		return nil, fmt.Errorf("dropout must be in [0, 1), got %v", dropout)
	}
	progressEvery := params.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = defaultProgressEvery
	}

	n, in := data.X.Dims()
	prop, err := Propagation(n, data.Edges)
	if err != nil {
		return nil, err
	}

	initRng := utils.NewRand(params.InitSeed)
	dropoutRng := utils.NewRand(params.DropoutSeed)
	dims := append(append([]int{in}, hidden...), Classes)
	var layers []Layer
	for i := 0; i < len(dims)-1; i++ {
		if dims[i+1] <= 0 {
			return nil, fmt.Errorf("layer width must be positive, got %d", dims[i+1])
		}
		layers = append(layers, NewGraphConv(fmt.Sprintf("conv%d", i), prop, dims[i], dims[i+1], initRng))
		if i < len(dims)-2 {
			layers = append(layers, &Mish{}, NewDropout(dropout, dropoutRng))
		}
	}
	layers = append(layers, &LogSoftmax{})
	glog.Debugf("layers = %v, dropout = %v, lr = %v", dims, dropout, params.LearningRate)

	return &Model{
		data:          data,
		layers:        layers,
		optimizer:     NewRanger(params.LearningRate),
		progressEvery: progressEvery,
		loss:          opMetrics.NewGauge(&trainingLoss),
		epochs:        opMetrics.NewCounter(&trainingEpochs),
	}, nil
}

// Params lists the trainable parameters, layer by layer.
func (m *Model) Params() []*Param {
	var params []*Param
	for _, l := range m.layers {
		params = append(params, l.Params()...)
	}
	return params
}

// Loss is the training loss of the last epoch.
func (m *Model) Loss() float64 {
	return m.lastLoss
}

func (m *Model) forward(training bool) *mat.Dense {
	x := m.data.X
	for _, l := range m.layers {
		x = l.Forward(x, training)
	}
	return x
}

func (m *Model) backward(grad *mat.Dense) {
	for i := len(m.layers) - 1; i >= 0; i-- {
		grad = m.layers[i].Backward(grad)
	}
}

func (m *Model) zeroGrad() {
	for _, p := range m.Params() {
		p.ZeroGrad()
	}
}

func (m *Model) epoch() float64 {
	m.zeroGrad()
	out := m.forward(true)
	loss, grad := crossEntropy(out, m.data.Y, m.data.TrainMask)
	m.backward(grad)
	m.optimizer.Step(m.Params())
	m.zeroGrad()
	return loss
}

// Train runs exactly epochs full-graph optimization steps on the training nodes.
func (m *Model) Train(ctx context.Context, epochs int) error {
	_, span := tracer.Start(ctx, "gcn.Train")
	defer span.End()

	if epochs < 0 {
		return fmt.Errorf("number of epochs must not be negative, got %d", epochs)
	}
	if epochs > 0 && count(m.data.TrainMask) == 0 {
		return errors.New("no training node")
	}
	for e := 1; e <= epochs; e++ {
		m.lastLoss = m.epoch()
		m.loss.Set(m.lastLoss)
		m.epochs.Inc()
		if e%m.progressEvery == 0 || e == epochs {
			glog.Infof("epoch %d/%d: loss = %.6f", e, epochs, m.lastLoss)
			span.AddEvent("progress", trace.WithAttributes(attribute.Int("epoch", e), attribute.Float64("loss", m.lastLoss)))
		}
	}
	span.SetAttributes(attribute.Int("epochs", epochs), attribute.Float64("loss", m.lastLoss))
	return nil
}

// Predict returns the most likely class of every node, with dropout disabled.
func (m *Model) Predict() []int {
	out := m.forward(false)
	n, _ := out.Dims()
	pred := make([]int, n)
	for i := 0; i < n; i++ {
		row := out.RawRowView(i)
		best := 0
		for c := 1; c < len(row); c++ {
			if row[c] > row[best] {
				best = c
			}
		}
		pred[i] = best
	}
	return pred
}

// Evaluate compares the predictions of the testing nodes with their labels. Parameters are left untouched.
func (m *Model) Evaluate(ctx context.Context) (confusion.Metrics, error) {
	_, span := tracer.Start(ctx, "gcn.Evaluate")
	defer span.End()

	pred := m.Predict()
	var predicted, actual []int
	for i, test := range m.data.TestMask {
		if test {
			predicted = append(predicted, pred[i])
			actual = append(actual, m.data.Y[i])
		}
	}
	metrics, err := confusion.Compute(predicted, actual)
	if err != nil {
		return metrics, err
	}
	span.SetAttributes(attribute.Int("tested", metrics.Total()), attribute.Float64("accuracy", metrics.Accuracy))
	return metrics, nil
}

func count(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}
	return n
}
