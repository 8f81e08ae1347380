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

package write

import (
	"fmt"
	"os"

	"github.com/netobserv/vibration-gcn/pkg/api"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type writeFile struct {
	path   string
	format api.WriteFormat
}

// Write saves the report, replacing any previous file
func (t *writeFile) Write(report *Report) error {
	log.Debugf("entering writeFile Write, path = %s", t.path)
	f, err := os.Create(t.path)
	if err != nil {
		return errors.Wrap(err, "can't create report file")
	}
	if err := encode(f, report, t.format); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "can't write report to %s", t.path)
	}
	return f.Close()
}

// NewWriteFile create a new write
func NewWriteFile(params api.Write) (Writer, error) {
	log.Debugf("entering NewWriteFile")
	if params.Path == "" {
		return nil, fmt.Errorf("write path not specified")
	}
	format := params.Format
	if format == "" {
		format = api.FormatJSON
	}
	return &writeFile{path: params.Path, format: format}, nil
}
