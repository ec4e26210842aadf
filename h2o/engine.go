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

// Package h2o binds the training pipeline to an H2O-3 cluster over its REST
// API: the JVM shares the container, so frames are imported by local path
// and models are saved straight into the artifact directory.
package h2o

import (
	simplejson "github.com/bitly/go-simplejson"
	"github.com/pkg/errors"

	"trainflow.org/trainflow/automl"
)

// Engine runs AutoML searches on an H2O cluster. It implements
// automl.Engine.
type Engine struct {
	cluster *Cluster
	client  *Client
}

// NewEngine returns an engine that is not yet attached to a cluster; Init
// starts one.
func NewEngine() *Engine {
	return &Engine{}
}

// Init starts or attaches to the H2O runtime with the opaque init options.
func (e *Engine) Init(opts *simplejson.Json) error {
	cluster, err := Start(opts)
	if err != nil {
		return err
	}
	e.cluster = cluster
	e.client = NewClient(cluster.URL)
	return nil
}

// Search imports and parses the training file, submits the AutoML build and
// returns the leader with the full leaderboard.
func (e *Engine) Search(spec automl.SearchSpec) (*automl.Leader, *automl.Leaderboard, error) {
	rawFrame, err := e.client.ImportFile(spec.TrainingFile)
	if err != nil {
		return nil, nil, err
	}
	setup, err := e.client.ParseSetup(rawFrame)
	if err != nil {
		return nil, nil, err
	}

	overrides := map[string]string{}
	if spec.CategoricalTarget {
		overrides[spec.Target] = "Enum"
	}
	frame, parseJob, err := e.client.Parse(setup, overrides)
	if err != nil {
		return nil, nil, err
	}
	if parseJob != "" {
		if err := e.client.WaitJob(parseJob); err != nil {
			return nil, nil, errors.Wrapf(err, "parse %s", spec.TrainingFile)
		}
	}

	project := "automl-" + spec.RunID
	job, err := e.client.RunAutoML(project, frame, spec)
	if err != nil {
		return nil, nil, err
	}
	if err := e.client.WaitJob(job); err != nil {
		return nil, nil, errors.Wrap(err, "AutoML build")
	}

	leaderboard, err := e.client.Leaderboard(project)
	if err != nil {
		return nil, nil, err
	}
	leader, err := leaderboard.Leader()
	if err != nil {
		return nil, nil, err
	}
	return leader, leaderboard, nil
}

// SaveLeader persists the leader model in H2O's native binary format.
func (e *Engine) SaveLeader(leader *automl.Leader, dir string) (string, error) {
	return e.client.SaveModel(leader.ModelID, dir)
}
