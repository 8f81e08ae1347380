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

package transform

import (
	"github.com/netobserv/vibration-gcn/pkg/operational"
)

var (
	degenerateWindows = operational.DefineMetric(
		"degenerate_windows_total",
		"Number of undefined window features replaced by zero",
		operational.TypeCounter,
		"feature",
	)
	outliersRemoved = operational.DefineMetric(
		"outliers_removed_total",
		"Number of windows discarded by the isolation forest",
		operational.TypeCounter,
	)
	windowsRetained = operational.DefineMetric(
		"windows_retained",
		"Number of windows kept after outlier filtering on the last run",
		operational.TypeGauge,
	)
)
