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
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/netobserv/vibration-gcn/pkg/api"
)

const header = `> Note: this file was automatically generated, to update execute "make docs"

# vibration-gcn API

Each section below documents the parameters of one pipeline stage, as found under ` + "`parameters`" + ` in the configuration file.
`

// document writes the doc tags of every field of t, descending into nested structs and enums.
func document(output io.Writer, t reflect.Type, indent int) {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map:
		document(output, t.Elem(), indent)
		return
	case reflect.Struct:
	default:
		return
	}
	pad := strings.Repeat(" ", 4*(indent+1))
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := strings.TrimSuffix(field.Tag.Get(api.TagYaml), ",omitempty")
		doc := field.Tag.Get(api.TagDoc)

		if enum := field.Tag.Get(api.TagEnum); enum != "" {
			fmt.Fprintf(output, "%s%s: %s\n", pad, name, doc)
			document(output, api.GetEnumReflectionTypeByFieldName(enum), indent+1)
			continue
		}
		switch {
		case doc == "":
		case strings.HasPrefix(doc, "#"):
			fmt.Fprintf(output, "\n%s\n<pre>\n%s:\n", doc, name)
			document(output, field.Type, indent)
			fmt.Fprint(output, "</pre>\n")
		default:
			fmt.Fprintf(output, "%s%s: %s\n", pad, name, doc)
			document(output, field.Type, indent+1)
		}
	}
}

func main() {
	output := new(bytes.Buffer)
	output.WriteString(header)
	document(output, reflect.TypeOf(api.API{}), 0)
	fmt.Print(output)
}
