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
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleLeaderboard() *Leaderboard {
	return &Leaderboard{
		Columns:    []string{"model_id", "auc", "logloss"},
		SortMetric: "auc",
		Rows: [][]string{
			{"GBM_1_AutoML_1", "0.987", "0.12"},
			{"DRF_1_AutoML_1", "0.954", "0.19"},
		},
	}
}

func TestLeader(t *testing.T) {
	a := assert.New(t)
	leader, err := sampleLeaderboard().Leader()
	a.NoError(err)
	a.Equal("GBM_1_AutoML_1", leader.ModelID)
	a.Equal("auc", leader.Metric)
	a.Equal(0.987, leader.Score)
}

func TestLeaderOfEmptyLeaderboard(t *testing.T) {
	a := assert.New(t)
	lb := &Leaderboard{Columns: []string{"model_id"}}
	_, err := lb.Leader()
	a.Error(err)
}

func TestFormat(t *testing.T) {
	a := assert.New(t)
	out := sampleLeaderboard().Format()
	a.Contains(out, "GBM_1_AutoML_1")
	a.Contains(out, "DRF_1_AutoML_1")
	a.Contains(out, "AUC") // tablewriter upper-cases headers
}

func TestWriteCSV(t *testing.T) {
	a := assert.New(t)
	var buf bytes.Buffer
	a.NoError(sampleLeaderboard().WriteCSV(&buf))
	a.Equal("model_id,auc,logloss\nGBM_1_AutoML_1,0.987,0.12\nDRF_1_AutoML_1,0.954,0.19\n", buf.String())
}
