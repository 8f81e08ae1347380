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
	log "github.com/sirupsen/logrus"
)

type writeNone struct{}

// Write discards the report
func (t *writeNone) Write(_ *Report) error {
	return nil
}

// NewWriteNone create a new write
func NewWriteNone() (Writer, error) {
	log.Debugf("entering NewWriteNone")
	return &writeNone{}, nil
}

// WriteFake keeps in memory every report it is given.
type WriteFake struct {
	Reports []*Report
}

func (w *WriteFake) Write(report *Report) error {
	log.Debugf("entering writeFake Write")
	w.Reports = append(w.Reports, report)
	return nil
}
