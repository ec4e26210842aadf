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

import "path/filepath"

// DefaultBaseDir is where the hosting platform mounts the training
// container's filesystem contract.
const DefaultBaseDir = "/opt/ml"

// Layout maps the fixed paths of the container contract onto a base
// directory, so tests can root the whole contract in a scratch dir.
type Layout struct {
	BaseDir string
}

// HyperparamsPath is the optional hyperparameters document.
func (l Layout) HyperparamsPath() string {
	return filepath.Join(l.BaseDir, "input", "config", "hyperparameters.json")
}

// TrainingDir is the training data channel.
func (l Layout) TrainingDir() string {
	return filepath.Join(l.BaseDir, "input", "data", trainingChannel)
}

// FailurePath is where a trapped failure is recorded for the platform.
func (l Layout) FailurePath() string {
	return filepath.Join(l.BaseDir, "output", "failure")
}

// ModelDir is the artifact directory the platform archives on success.
func (l Layout) ModelDir() string {
	return filepath.Join(l.BaseDir, "model")
}
