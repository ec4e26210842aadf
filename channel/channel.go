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

// Package channel resolves the input directories a hosted training job
// receives its data through.
package channel

import (
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// List returns the non-hidden file names under the channel directory dir,
// sorted by name. An empty channel is an error, not a default: it means
// data delivery for the job is misconfigured.
func List(name, dir string) ([]string, error) {
	infos, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read channel %q at %s", name, dir)
	}
	var files []string
	for _, fi := range infos {
		if fi.IsDir() || strings.HasPrefix(fi.Name(), ".") {
			continue
		}
		files = append(files, fi.Name())
	}
	if len(files) == 0 {
		return nil, errors.Errorf("channel %q has no data files under %s", name, dir)
	}
	sort.Strings(files)
	return files, nil
}

// Resolve picks the training file for the channel: the first listed name.
// Additional files are ignored. Sorting in List makes the pick stable
// across filesystems.
func Resolve(name, dir string) (string, error) {
	files, err := List(name, dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, files[0]), nil
}
