// Copyright 2026 The TrainFlow Authors. All rights reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package table loads a training file far enough to validate it against the
// job configuration before anything is handed to the AutoML runtime: header
// names, row count, and the feature/target split. The runtime does its own
// full parse later.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Table is the in-memory view of one CSV training file.
type Table struct {
	Path    string
	Columns []string
	Rows    int
}

// TargetNotFoundError reports a configured target column that the training
// table does not have. It is a named type so the orchestrator can log a
// precise diagnosis instead of a generic parse failure.
type TargetNotFoundError struct {
	Column string
	Table  string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("target column %q not found in training file %s", e.Column, e.Table)
}

// Load reads the header and counts the rows of the CSV file at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open training file %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.Errorf("training file %s is empty", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read header of %s", path)
	}

	rows := 0
	for {
		if _, err := r.Read(); err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrapf(err, "read row %d of %s", rows+2, path)
		}
		rows++
	}
	return &Table{Path: path, Columns: header, Rows: rows}, nil
}

// Split returns the feature columns: every column except target, in header
// order. A target that the table does not have is a TargetNotFoundError.
func (t *Table) Split(target string) ([]string, error) {
	features := make([]string, 0, len(t.Columns))
	found := false
	for _, c := range t.Columns {
		if c == target {
			found = true
			continue
		}
		features = append(features, c)
	}
	if !found {
		return nil, &TargetNotFoundError{Column: target, Table: t.Path}
	}
	return features, nil
}
