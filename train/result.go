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

// Exit codes of the container contract.
const (
	ExitSuccess = 0
	ExitFailure = 255
)

// Result is the terminal state of one training run: either a saved model
// artifact or a trapped error. It is converted to a process exit code only
// at the outermost boundary, so the pipeline itself stays testable.
type Result struct {
	// Artifact is the path of the saved leader model. Set on success only.
	Artifact string
	// Err is the trapped failure, nil on success.
	Err error
}

// OK reports whether the run produced a model artifact.
func (r *Result) OK() bool {
	return r.Err == nil
}

// ExitCode maps the result onto the contract: 0 on success, 255 on any
// trapped failure.
func (r *Result) ExitCode() int {
	if r.Err == nil {
		return ExitSuccess
	}
	return ExitFailure
}

func fail(err error) *Result {
	return &Result{Err: err}
}
