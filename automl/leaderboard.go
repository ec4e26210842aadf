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

package automl

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

// Leaderboard is the ranked comparison of every model a search evaluated,
// best model first. Rows are kept as strings: scores are only reported, never
// computed on.
type Leaderboard struct {
	Columns    []string
	Rows       [][]string
	SortMetric string
}

// Leader returns the top-ranked entry. The first column is the model id and
// the sort-metric column carries the score.
func (lb *Leaderboard) Leader() (*Leader, error) {
	if len(lb.Rows) == 0 {
		return nil, errors.New("leaderboard is empty: the search produced no models")
	}
	metricCol := 1
	for i, c := range lb.Columns {
		if c == lb.SortMetric {
			metricCol = i
		}
	}
	row := lb.Rows[0]
	if len(row) == 0 {
		return nil, errors.New("leaderboard has a blank leading row")
	}
	leader := &Leader{ModelID: row[0], Metric: lb.SortMetric}
	if metricCol < len(row) {
		// score stays zero if the runtime reports a non-numeric cell
		leader.Score, _ = strconv.ParseFloat(row[metricCol], 64)
	}
	return leader, nil
}

// Format renders the leaderboard as an ASCII table for operator logs.
func (lb *Leaderboard) Format() string {
	var buf bytes.Buffer
	t := tablewriter.NewWriter(&buf)
	t.SetHeader(lb.Columns)
	for _, row := range lb.Rows {
		t.Append(row)
	}
	t.Render()
	return buf.String()
}

// WriteCSV writes the leaderboard with its header row to w.
func (lb *Leaderboard) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(lb.Columns); err != nil {
		return err
	}
	for _, row := range lb.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
