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

type WriteType string

const (
	WriteStdout WriteType = "stdout"
	WriteFile   WriteType = "file"
	WriteNone   WriteType = "none"
)

type WriteTypeEnum struct {
	Stdout string `yaml:"stdout" doc:"print the report on the standard output"`
	File   string `yaml:"file" doc:"save the report to a file"`
	None   string `yaml:"none" doc:"discard the report"`
}

func WriteTypeName(operation string) string {
	return GetEnumName(WriteTypeEnum{}, operation)
}

type WriteFormat string

const (
	FormatText WriteFormat = "text"
	FormatJSON WriteFormat = "json"
	FormatYAML WriteFormat = "yaml"
)

type WriteFormatEnum struct {
	Text string `yaml:"text" doc:"human readable summary with the confusion matrix table"`
	JSON string `yaml:"json" doc:"indented JSON document"`
	YAML string `yaml:"yaml" doc:"YAML document"`
}

func WriteFormatName(operation string) string {
	return GetEnumName(WriteFormatEnum{}, operation)
}

type Write struct {
	Type   WriteType   `yaml:"type,omitempty" json:"type,omitempty" enum:"WriteTypeEnum" doc:"(enum) one of the following:"`
	Format WriteFormat `yaml:"format,omitempty" json:"format,omitempty" enum:"WriteFormatEnum" doc:"(enum) report format:"`
	Path   string      `yaml:"path,omitempty" json:"path,omitempty" doc:"report file path, for the file type"`
}

type DiagnosticsType string

const (
	DiagnosticsNone DiagnosticsType = "none"
	DiagnosticsLog  DiagnosticsType = "log"
	DiagnosticsDump DiagnosticsType = "dump"
)

type DiagnosticsTypeEnum struct {
	None string `yaml:"none" doc:"no diagnostics"`
	Log  string `yaml:"log" doc:"log a summary at every checkpoint"`
	Dump string `yaml:"dump" doc:"dump raw signals, features, adjacency and confusion counts as JSON files for plotting"`
}

func DiagnosticsTypeName(operation string) string {
	return GetEnumName(DiagnosticsTypeEnum{}, operation)
}

type Diagnostics struct {
	Type DiagnosticsType `yaml:"type,omitempty" json:"type,omitempty" enum:"DiagnosticsTypeEnum" doc:"(enum) one of the following:"`
	Dir  string          `yaml:"dir,omitempty" json:"dir,omitempty" doc:"output directory, for the dump type"`
}
