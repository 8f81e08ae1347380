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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	doc := render()
	assert.Contains(t, doc, "# vibration-gcn Operational Metrics")
	for _, name := range []string{
		"ingest_samples_total",
		"degenerate_windows_total",
		"outliers_removed_total",
		"graph_edges",
		"training_loss",
		"stage_duration_seconds",
	} {
		assert.Contains(t, doc, "### "+name)
	}
}
