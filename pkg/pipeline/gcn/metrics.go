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
	"github.com/netobserv/vibration-gcn/pkg/operational"
)

var (
	trainingLoss = operational.DefineMetric(
		"training_loss",
		"Cross entropy of the training windows at the last epoch",
		operational.TypeGauge,
	)
	trainingEpochs = operational.DefineMetric(
		"training_epochs_total",
		"Number of training epochs run",
		operational.TypeCounter,
	)
)
