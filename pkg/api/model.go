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

package api

type Split struct {
	TrainFraction float64 `yaml:"trainFraction,omitempty" json:"trainFraction,omitempty" doc:"fraction of each class used for training, in [0, 1] (default: 0.75)"`
	Seed          uint64  `yaml:"seed,omitempty" json:"seed,omitempty" doc:"random seed of the per-class shuffle"`
	NoShuffle     bool    `yaml:"noShuffle,omitempty" json:"noShuffle,omitempty" doc:"keep the first windows of each class for training instead of shuffling"`
}

type Graph struct {
	Neighbors int    `yaml:"neighbors,omitempty" json:"neighbors,omitempty" doc:"number of nearest neighbors, the window itself included (default: 5)"`
	Persist   string `yaml:"persist,omitempty" json:"persist,omitempty" doc:"optional path where the adjacency matrix is saved as JSON"`
}

type Model struct {
	Hidden        []int   `yaml:"hidden,omitempty" json:"hidden,omitempty" doc:"hidden layer widths (default: [8, 16, 8])"`
	Dropout       float64 `yaml:"dropout,omitempty" json:"dropout,omitempty" doc:"dropout rate applied after hidden layers, in [0, 1) (default: 0.1)"`
	Epochs        *int    `yaml:"epochs,omitempty" json:"epochs,omitempty" doc:"number of training epochs (default: 350)"`
	LearningRate  float64 `yaml:"learningRate,omitempty" json:"learningRate,omitempty" doc:"optimizer learning rate (default: 0.001)"`
	InitSeed      uint64  `yaml:"initSeed,omitempty" json:"initSeed,omitempty" doc:"random seed of the weight initialization"`
	DropoutSeed   uint64  `yaml:"dropoutSeed,omitempty" json:"dropoutSeed,omitempty" doc:"random seed of the dropout masks"`
	ProgressEvery int     `yaml:"progressEvery,omitempty" json:"progressEvery,omitempty" doc:"log training progress every N epochs (default: 50)"`
}

// GetEpochs returns the configured number of epochs, or the given default when unset.
func (m *Model) GetEpochs(def int) int {
	if m.Epochs == nil {
		return def
	}
	return *m.Epochs
}
