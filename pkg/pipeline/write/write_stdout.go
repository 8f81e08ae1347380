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

package write

import (
	"io"
	"os"

	"github.com/netobserv/vibration-gcn/pkg/api"
	log "github.com/sirupsen/logrus"
)

type writeStdout struct {
	format api.WriteFormat
	out    io.Writer
}

// Write prints the report on the standard output
func (t *writeStdout) Write(report *Report) error {
	log.Debugf("entering writeStdout Write")
	return encode(t.out, report, t.format)
}

// NewWriteStdout create a new write
func NewWriteStdout(params api.Write) (Writer, error) {
	log.Debugf("entering NewWriteStdout")
	return &writeStdout{
		format: params.Format,
		out:    os.Stdout,
	}, nil
}
