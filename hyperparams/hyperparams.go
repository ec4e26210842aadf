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

// Package hyperparams loads the hyperparameters document a hosted training
// job receives at a fixed path. The document has a typed "training" section
// and two opaque sections ("h2o", "aml") forwarded verbatim to the AutoML
// runtime.
package hyperparams

import (
	"io/ioutil"
	"os"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/pkg/errors"
)

// DefaultTarget is the label column assumed when the training section does
// not name one.
const DefaultTarget = "label"

// Params is one training job's hyperparameters, immutable after Load.
type Params struct {
	raw *simplejson.Json
}

// Default returns the built-in configuration used when no hyperparameters
// file is delivered: classification on, target "label", empty runtime
// option sections.
func Default() *Params {
	j, _ := simplejson.NewJson([]byte("{}"))
	return &Params{raw: j}
}

// Load reads the hyperparameters file at path. A missing file yields the
// built-in defaults. A file that exists but does not parse as JSON is an
// error the caller must not trap: the document is operator-provided and a
// broken one has to abort the run before the failure path is set up.
func Load(path string) (*Params, error) {
	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read hyperparameters %s", path)
	}
	j, err := simplejson.NewJson(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse hyperparameters %s", path)
	}
	return &Params{raw: j}, nil
}

// Target returns the name of the label column.
func (p *Params) Target() string {
	return p.raw.Get("training").Get("target").MustString(DefaultTarget)
}

// Classification reports whether the target is to be treated as
// categorical. The flag is compared string-exactly against "true": a JSON
// boolean true does not match and falls back to regression. This mirrors
// the hosted contract's string-typed hyperparameter values; see DESIGN.md
// before changing it.
func (p *Params) Classification() bool {
	v, ok := p.raw.Get("training").CheckGet("classification")
	if !ok {
		return true
	}
	s, err := v.String()
	return err == nil && s == "true"
}

// InitOptions returns the opaque options forwarded to the runtime
// initializer.
func (p *Params) InitOptions() *simplejson.Json {
	return p.raw.Get("h2o")
}

// SearchOptions returns the opaque options forwarded to the AutoML search.
func (p *Params) SearchOptions() *simplejson.Json {
	return p.raw.Get("aml")
}
