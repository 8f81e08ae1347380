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
	"bytes"
	"reflect"
	"testing"

	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/stretchr/testify/require"
)

type DocTags struct {
	Title  string            `yaml:"title" doc:"##title"`
	Field  string            `yaml:"field" doc:"field"`
	Slice  []string          `yaml:"slice" doc:"slice"`
	Map    map[string]string `yaml:"map" doc:"map"`
	Sub    DocSubTags        `yaml:"sub" doc:"sub"`
	SubPtr *DocSubTags       `yaml:"subPtr,omitempty" doc:"subPtr"`
	Hidden string            `yaml:"hidden"`
}

type DocSubTags struct {
	SubField string `yaml:"subField" doc:"subField"`
}

func Test_document(t *testing.T) {
	output := new(bytes.Buffer)
	expected := "\n##title\n<pre>\ntitle:\n</pre>\n" +
		"    field: field\n" +
		"    slice: slice\n" +
		"    map: map\n" +
		"    sub: sub\n" +
		"        subField: subField\n" +
		"    subPtr: subPtr\n" +
		"        subField: subField\n"
	document(output, reflect.TypeOf(DocTags{}), 0)
	require.Equal(t, expected, output.String())
}

func Test_documentEnum(t *testing.T) {
	output := new(bytes.Buffer)
	document(output, reflect.TypeOf(api.Diagnostics{}), 0)
	require.Contains(t, output.String(), "    type: (enum) one of the following:\n        none: no diagnostics\n")
	require.Contains(t, output.String(), "    dir: output directory, for the dump type\n")
}

func Test_main(_ *testing.T) {
	main()
}
