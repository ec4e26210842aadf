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

// Package train runs one AutoML training job end to end under the hosted
// container contract: hyperparameters and data in at fixed paths, a model
// artifact or a failure file out at fixed paths.
package train

import (
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"trainflow.org/trainflow/automl"
	"trainflow.org/trainflow/channel"
	"trainflow.org/trainflow/hyperparams"
	"trainflow.org/trainflow/log"
	"trainflow.org/trainflow/model"
	"trainflow.org/trainflow/table"
)

const trainingChannel = "training"

// Job is one training run.
type Job struct {
	ID     string
	Layout Layout
	Engine automl.Engine

	logger *logrus.Entry
}

// NewJob returns a job rooted at baseDir that trains with the given engine.
func NewJob(baseDir string, engine automl.Engine) *Job {
	id := uuid.New().String()
	return &Job{
		ID:     id,
		Layout: Layout{BaseDir: baseDir},
		Engine: engine,
		logger: log.WithFields(log.Fields{"run_id": id}),
	}
}

// Run executes the pipeline. A non-nil error means the run aborted during
// startup (unreadable hyperparameters, runtime init): those propagate
// uncaught, before the failure path exists. Everything after startup is
// trapped into the Result, and a failed Result has already been written to
// the failure file when Run returns.
func (j *Job) Run() (*Result, error) {
	params, err := hyperparams.Load(j.Layout.HyperparamsPath())
	if err != nil {
		return nil, err
	}
	j.logger.Infof("hyperparameters: target=%q classification=%v",
		params.Target(), params.Classification())

	if err := j.Engine.Init(params.InitOptions()); err != nil {
		return nil, errors.Wrap(err, "initialize AutoML runtime")
	}

	res := j.train(params)
	if res.Err != nil {
		j.writeFailure(res.Err)
	} else {
		j.logger.Infof("model artifact saved to %s", res.Artifact)
	}
	return res, nil
}

// train is the trapped section of the pipeline: any error here becomes the
// failure file and exit code 255.
func (j *Job) train(params *hyperparams.Params) *Result {
	dataFile, err := channel.Resolve(trainingChannel, j.Layout.TrainingDir())
	if err != nil {
		return fail(err)
	}
	j.logger.Infof("resolved training file %s", dataFile)

	tbl, err := table.Load(dataFile)
	if err != nil {
		return fail(err)
	}
	target := params.Target()
	features, err := tbl.Split(target)
	if err != nil {
		// the named validation error carries no stack of its own
		return fail(errors.WithStack(err))
	}
	classification := params.Classification()
	j.logger.WithFields(log.Fields{
		"rows":           tbl.Rows,
		"features":       len(features),
		"target":         target,
		"classification": classification,
	}).Info("training table prepared")

	leader, leaderboard, err := j.Engine.Search(automl.SearchSpec{
		RunID:             j.ID,
		TrainingFile:      dataFile,
		Target:            target,
		FeatureColumns:    features,
		CategoricalTarget: classification,
		Options:           params.SearchOptions(),
	})
	if err != nil {
		return fail(errors.Wrap(err, "AutoML search"))
	}
	j.logger.Infof("leaderboard (sorted by %s):\n%s", leaderboard.SortMetric, leaderboard.Format())

	if err := os.MkdirAll(j.Layout.ModelDir(), 0755); err != nil {
		return fail(errors.Wrap(err, "create model directory"))
	}
	m := model.New(j.Layout.ModelDir())
	m.SetMeta("run_id", j.ID)
	m.SetMeta("leader", leader.ModelID)
	m.SetMeta("sort_metric", leader.Metric)
	m.SetMeta("score", leader.Score)
	m.SetMeta("target", target)
	m.SetMeta("classification", classification)
	m.SetMeta("rows", tbl.Rows)
	if err := m.Save(leaderboard); err != nil {
		return fail(err)
	}

	// the model binary goes last: a run that fails never leaves one behind
	artifact, err := j.Engine.SaveLeader(leader, j.Layout.ModelDir())
	if err != nil {
		return fail(errors.Wrap(err, "save leader model"))
	}
	return &Result{Artifact: artifact}
}
