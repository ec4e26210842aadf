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

// Package automl defines the contract between the training pipeline and the
// external AutoML runtime. The pipeline never interprets a trained model;
// it only asks an Engine to search, rank and persist.
package automl

import (
	simplejson "github.com/bitly/go-simplejson"
)

// SearchSpec carries everything an Engine needs for one model search.
type SearchSpec struct {
	// RunID identifies the training run in runtime-side object names.
	RunID string
	// TrainingFile is the local path of the single resolved data file.
	TrainingFile string
	// Target is the response column; FeatureColumns is every other column
	// of the training table, in header order.
	Target         string
	FeatureColumns []string
	// CategoricalTarget marks the response column as a factor, switching
	// the search from regression to classification.
	CategoricalTarget bool
	// Options are the opaque search options from the hyperparameters
	// document, forwarded to the runtime as-is.
	Options *simplejson.Json
}

// Leader is the top-ranked model of a finished search.
type Leader struct {
	ModelID string
	Metric  string
	Score   float64
}

// Engine abstracts the external AutoML runtime so the pipeline can run
// against a test double. The production implementation lives in the h2o
// package.
type Engine interface {
	// Init starts or attaches to the runtime with the opaque init options
	// from the hyperparameters document. It is called once per process;
	// teardown is process exit.
	Init(opts *simplejson.Json) error
	// Search runs the model search and returns the leader together with
	// the full leaderboard.
	Search(spec SearchSpec) (*Leader, *Leaderboard, error)
	// SaveLeader persists the leader model into dir using the runtime's
	// native serialization and returns the artifact path.
	SaveLeader(leader *Leader, dir string) (string, error)
}
