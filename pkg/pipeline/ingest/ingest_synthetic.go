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

package ingest

import (
	"math"
	"math/rand/v2"

	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/netobserv/vibration-gcn/pkg/operational"
	"github.com/netobserv/vibration-gcn/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	defaultSamples      = 50000
	defaultFrequency    = 0.01
	defaultAmplitude    = 1.0
	defaultNoise        = 0.1
	defaultImpulseEvery = 97
	defaultImpulseGain  = 4.0
	impulseDecay        = 5.0
	impulseLength       = 20
)

type IngestSynthetic struct {
	params  api.IngestSyntheticSpec
	samples *prometheus.CounterVec
}

// Ingest generates a clean sine vibration for the normal class, and the same vibration with a train of
// decaying impulses, as produced by a damaged bearing, for the abnormal class.
func (s *IngestSynthetic) Ingest() (*Signals, error) {
	log.Debugf("entering IngestSynthetic Ingest, params = %v", s.params)
	rng := utils.NewRand(s.params.Seed)
	normal := s.generate(rng, false)
	abnormal := s.generate(rng, true)
	s.samples.WithLabelValues(classNormal).Add(float64(len(normal)))
	s.samples.WithLabelValues(classAbnormal).Add(float64(len(abnormal)))
	return &Signals{Normal: normal, Abnormal: abnormal}, nil
}

func (s *IngestSynthetic) generate(rng *rand.Rand, faulty bool) Series {
	p := s.params
	out := make(Series, p.Samples)
	for i := range out {
		out[i] = p.Amplitude*math.Sin(2*math.Pi*p.Frequency*float64(i)) + rng.NormFloat64()*p.Noise
	}
	if !faulty {
		return out
	}
	for start := rng.IntN(p.ImpulseEvery); start < len(out); start += p.ImpulseEvery {
		for k := 0; k < impulseLength && start+k < len(out); k++ {
			out[start+k] += p.ImpulseGain * math.Exp(-float64(k)/impulseDecay) * math.Cos(math.Pi*float64(k)/2)
		}
	}
	return out
}

// NewIngestSynthetic create a new ingester
func NewIngestSynthetic(params api.Ingest, opMetrics *operational.Metrics) (Ingester, error) {
	log.Debugf("entering NewIngestSynthetic")
	spec := api.IngestSyntheticSpec{}
	if params.Synthetic != nil {
		spec = *params.Synthetic
	}
	if spec.Samples == 0 {
		spec.Samples = defaultSamples
	}
	if spec.Frequency == 0 {
		spec.Frequency = defaultFrequency
	}
	if spec.Amplitude == 0 {
		spec.Amplitude = defaultAmplitude
	}
	if spec.Noise == 0 {
		spec.Noise = defaultNoise
	}
	if spec.ImpulseEvery <= 0 {
		spec.ImpulseEvery = defaultImpulseEvery
	}
	if spec.ImpulseGain == 0 {
		spec.ImpulseGain = defaultImpulseGain
	}
	log.Debugf("params = %v", spec)

	return &IngestSynthetic{
		params:  spec,
		samples: opMetrics.NewCounterVec(&samplesIngested),
	}, nil
}
