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

package train

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"trainflow.org/trainflow/automl"
)

const irisSample = `sepal_length,sepal_width,species
5.1,3.5,setosa
7.0,3.2,versicolor
`

const housingSample = `rooms,age,label
6,34,240000
3,71,145000
`

// fakeEngine is the automl.Engine test double: it records what the
// pipeline hands it and fabricates a one-entry leaderboard.
type fakeEngine struct {
	initOpts  *simplejson.Json
	spec      automl.SearchSpec
	searchErr error
}

func (f *fakeEngine) Init(opts *simplejson.Json) error {
	f.initOpts = opts
	return nil
}

func (f *fakeEngine) Search(spec automl.SearchSpec) (*automl.Leader, *automl.Leaderboard, error) {
	f.spec = spec
	if f.searchErr != nil {
		return nil, nil, f.searchErr
	}
	lb := &automl.Leaderboard{
		Columns:    []string{"model_id", "auc"},
		SortMetric: "auc",
		Rows:       [][]string{{"GBM_1_AutoML_1", "0.97"}},
	}
	leader, err := lb.Leader()
	return leader, lb, err
}

func (f *fakeEngine) SaveLeader(leader *automl.Leader, dir string) (string, error) {
	fn := filepath.Join(dir, leader.ModelID)
	return fn, ioutil.WriteFile(fn, []byte("binary model"), 0644)
}

// setupBase lays out a training container root in a scratch directory.
// Empty hyperparams means no hyperparameters file at all.
func setupBase(t *testing.T, hyperparams, csvName, csvContent string) string {
	base := t.TempDir()
	for _, dir := range []string{
		filepath.Join(base, "input", "config"),
		filepath.Join(base, "input", "data", "training"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if hyperparams != "" {
		fn := filepath.Join(base, "input", "config", "hyperparameters.json")
		if err := ioutil.WriteFile(fn, []byte(hyperparams), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if csvName != "" {
		fn := filepath.Join(base, "input", "data", "training", csvName)
		if err := ioutil.WriteFile(fn, []byte(csvContent), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return base
}

func readFailure(t *testing.T, base string) string {
	data, err := ioutil.ReadFile(filepath.Join(base, "output", "failure"))
	if err != nil {
		t.Fatalf("failure file not written: %v", err)
	}
	return string(data)
}

func noFailureFile(t *testing.T, base string) bool {
	_, err := os.Stat(filepath.Join(base, "output", "failure"))
	return os.IsNotExist(err)
}

func TestRunSuccess(t *testing.T) {
	a := assert.New(t)
	base := setupBase(t,
		`{"training": {"classification": "true", "target": "species"}, "aml": {"max_models": 10}}`,
		"iris.csv", irisSample)

	engine := &fakeEngine{}
	res, err := NewJob(base, engine).Run()
	a.NoError(err)
	a.True(res.OK())
	a.Equal(ExitSuccess, res.ExitCode())
	a.True(noFailureFile(t, base))

	// artifact, metadata and leaderboard all land in the model dir
	a.FileExists(res.Artifact)
	a.FileExists(filepath.Join(base, "model", "model_meta.json"))
	a.FileExists(filepath.Join(base, "model", "leaderboard.csv"))

	// the engine got the prepared feature/target split
	a.Equal("species", engine.spec.Target)
	a.Equal([]string{"sepal_length", "sepal_width"}, engine.spec.FeatureColumns)
	a.True(engine.spec.CategoricalTarget)
	a.Equal(10, engine.spec.Options.Get("max_models").MustInt())
}

func TestRunWithDefaultsTrainsOnLabelColumn(t *testing.T) {
	a := assert.New(t)
	base := setupBase(t, "", "housing.csv", housingSample)

	engine := &fakeEngine{}
	res, err := NewJob(base, engine).Run()
	a.NoError(err)
	a.True(res.OK())
	a.Equal("label", engine.spec.Target)
	a.True(engine.spec.CategoricalTarget) // classification defaults on
}

func TestRunRegressionLeavesTargetNumeric(t *testing.T) {
	a := assert.New(t)
	base := setupBase(t,
		`{"training": {"classification": "false", "target": "label"}}`,
		"housing.csv", housingSample)

	engine := &fakeEngine{}
	res, err := NewJob(base, engine).Run()
	a.NoError(err)
	a.True(res.OK())
	a.False(engine.spec.CategoricalTarget)
}

func TestRunEmptyChannelFails(t *testing.T) {
	a := assert.New(t)
	base := setupBase(t, "", "", "")

	res, err := NewJob(base, &fakeEngine{}).Run()
	a.NoError(err)
	a.Equal(ExitFailure, res.ExitCode())

	failure := readFailure(t, base)
	a.Contains(failure, "training")
	a.Contains(failure, filepath.Join(base, "input", "data", "training"))
}

func TestRunHiddenOnlyChannelFails(t *testing.T) {
	a := assert.New(t)
	base := setupBase(t, "", ".part-0.csv", irisSample)

	res, err := NewJob(base, &fakeEngine{}).Run()
	a.NoError(err)
	a.Equal(ExitFailure, res.ExitCode())
	a.Contains(readFailure(t, base), "training")
}

func TestRunMissingTargetColumnFails(t *testing.T) {
	a := assert.New(t)
	base := setupBase(t,
		`{"training": {"target": "price"}}`,
		"iris.csv", irisSample)

	res, err := NewJob(base, &fakeEngine{}).Run()
	a.NoError(err)
	a.Equal(ExitFailure, res.ExitCode())
	a.Contains(readFailure(t, base), `"price"`)
	// no half-finished artifact next to a failure file
	a.Empty(res.Artifact)
}

func TestRunSearchErrorIsTrapped(t *testing.T) {
	a := assert.New(t)
	base := setupBase(t, "", "housing.csv", housingSample)

	engine := &fakeEngine{searchErr: errors.New("out of memory building model")}
	res, err := NewJob(base, engine).Run()
	a.NoError(err)
	a.Equal(ExitFailure, res.ExitCode())
	a.Contains(readFailure(t, base), "out of memory building model")
}

func TestRunBrokenHyperparametersAbortsBeforeFailureFile(t *testing.T) {
	a := assert.New(t)
	base := setupBase(t, `{"training": `, "housing.csv", housingSample)

	_, err := NewJob(base, &fakeEngine{}).Run()
	a.Error(err)
	a.True(noFailureFile(t, base))
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	a := assert.New(t)
	base := setupBase(t, "", "housing.csv", housingSample)

	for i := 0; i < 2; i++ {
		res, err := NewJob(base, &fakeEngine{}).Run()
		a.NoError(err)
		a.True(res.OK())
		a.FileExists(res.Artifact)
	}
}
