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
	"fmt"
	"strings"

	"github.com/netobserv/vibration-gcn/pkg/operational"
	"github.com/netobserv/vibration-gcn/pkg/pipeline"
)

// the pipeline import pulls in every stage package, and with them their metric definitions
var _ *pipeline.Pipeline

const header = `> Note: this file was automatically generated, to update execute "make docs"

# vibration-gcn Operational Metrics

Each table below documents an operational metric. Exposed names carry the %s prefix unless
metricsSettings.prefix overrides it.
`

func render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, header, "`vibration_gcn_`")
	sb.WriteString(operational.GetDocumentation())
	return sb.String()
}

func main() {
	fmt.Print(render())
}
