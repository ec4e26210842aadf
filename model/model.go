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

package model

import (
	"io/ioutil"
	"os"
	"path"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/pkg/errors"

	"trainflow.org/trainflow/automl"
)

const (
	metaFileName        = "model_meta.json"
	leaderboardFileName = "leaderboard.csv"
)

// Model represents one run's artifact directory. The trained model binary
// itself is opaque and written by the runtime; Model adds the metadata and
// leaderboard files the hosting platform archives alongside it.
type Model struct {
	workDir string
	Meta    *simplejson.Json
}

// New returns an empty model rooted at the artifact directory.
func New(workDir string) *Model {
	meta, _ := simplejson.NewJson([]byte("{}"))
	return &Model{workDir: workDir, Meta: meta}
}

// SetMeta records one metadata entry.
func (m *Model) SetMeta(key string, value interface{}) {
	m.Meta.Set(key, value)
}

// GetMetaAsString returns the metadata entry for key, or "" if unset.
func (m *Model) GetMetaAsString(key string) string {
	return m.Meta.Get(key).MustString()
}

// Save writes model_meta.json and, when a leaderboard is given,
// leaderboard.csv into the artifact directory.
func (m *Model) Save(lb *automl.Leaderboard) error {
	data, err := m.Meta.EncodePretty()
	if err != nil {
		return errors.Wrap(err, "encode model metadata")
	}
	if err := ioutil.WriteFile(path.Join(m.workDir, metaFileName), data, 0644); err != nil {
		return errors.Wrap(err, "write model metadata")
	}
	if lb == nil {
		return nil
	}
	f, err := os.Create(path.Join(m.workDir, leaderboardFileName))
	if err != nil {
		return errors.Wrap(err, "create leaderboard file")
	}
	defer f.Close()
	if err := lb.WriteCSV(f); err != nil {
		return errors.Wrap(err, "write leaderboard")
	}
	return nil
}

// Load reads a previously saved model's metadata from dir.
func Load(dir string) (*Model, error) {
	data, err := ioutil.ReadFile(path.Join(dir, metaFileName))
	if err != nil {
		return nil, errors.Wrap(err, "read model metadata")
	}
	meta, err := simplejson.NewJson(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse model metadata")
	}
	return &Model{workDir: dir, Meta: meta}, nil
}
