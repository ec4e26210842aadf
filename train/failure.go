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
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
)

// writeFailure records the trapped error at the fixed failure path, where
// the hosting platform picks it up as the job's failure reason, and echoes
// the same text to stderr. Errors built with pkg/errors carry a stack
// trace, which %+v expands.
func (j *Job) writeFailure(trapped error) {
	text := fmt.Sprintf("%+v\n", trapped)

	failurePath := j.Layout.FailurePath()
	if err := os.MkdirAll(filepath.Dir(failurePath), 0755); err != nil {
		j.logger.Errorf("create output directory: %v", err)
	} else if err := ioutil.WriteFile(failurePath, []byte(text), 0644); err != nil {
		j.logger.Errorf("write failure file: %v", err)
	}
	fmt.Fprint(os.Stderr, text)
	j.logger.Errorf("training failed: %v", trapped)
}
