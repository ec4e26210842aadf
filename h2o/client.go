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

package h2o

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/pkg/errors"

	"trainflow.org/trainflow/automl"
)

const (
	requestTimeout  = 60 * time.Second
	jobPollInterval = time.Second
)

// Client is a minimal H2O-3 REST client covering the calls the training
// pipeline needs: frame import and parse, AutoML build, leaderboard
// retrieval and model export.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient returns a client for the H2O node at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		hc:      &http.Client{Timeout: requestTimeout},
	}
}

// CloudHealthy reports whether the cluster is formed and healthy.
func (c *Client) CloudHealthy() (bool, error) {
	j, err := c.get("/3/Cloud", nil)
	if err != nil {
		return false, err
	}
	return j.Get("cloud_healthy").MustBool(), nil
}

// ImportFile registers a local data file with the cluster and returns the
// raw frame key.
func (c *Client) ImportFile(path string) (string, error) {
	j, err := c.get("/3/ImportFiles", url.Values{"path": {path}})
	if err != nil {
		return "", err
	}
	frames := j.Get("destination_frames").MustStringArray()
	if len(frames) == 0 {
		return "", errors.Errorf("h2o did not import any frame from %s", path)
	}
	return frames[0], nil
}

// ParseSetup asks the cluster to guess parse parameters for a raw frame.
func (c *Client) ParseSetup(rawFrame string) (*simplejson.Json, error) {
	return c.postForm("/3/ParseSetup", url.Values{
		"source_frames": {jsonList(rawFrame)},
	})
}

// Parse turns a raw frame into a parsed H2O frame using the guessed setup,
// with per-column type overrides applied (the categorical-target cast comes
// through here as "Enum"). It returns the parsed frame key and the parse
// job key.
func (c *Client) Parse(setup *simplejson.Json, typeOverrides map[string]string) (string, string, error) {
	names := setup.Get("column_names").MustStringArray()
	types := setup.Get("column_types").MustStringArray()
	for i, name := range names {
		if t, ok := typeOverrides[name]; ok && i < len(types) {
			types[i] = t
		}
	}

	dest := setup.Get("destination_frame").MustString()
	form := url.Values{
		"destination_frame": {dest},
		"source_frames":     {jsonList(sourceFrameNames(setup)...)},
		"parse_type":        {setup.Get("parse_type").MustString("CSV")},
		"separator":         {fmt.Sprint(setup.Get("separator").MustInt(44))},
		"number_columns":    {fmt.Sprint(setup.Get("number_columns").MustInt(len(names)))},
		"single_quotes":     {fmt.Sprint(setup.Get("single_quotes").MustBool())},
		"column_names":      {jsonList(names...)},
		"column_types":      {jsonList(types...)},
		"check_header":      {fmt.Sprint(setup.Get("check_header").MustInt(1))},
		"chunk_size":        {fmt.Sprint(setup.Get("chunk_size").MustInt(4194304))},
		"delete_on_done":    {"true"},
	}
	j, err := c.postForm("/3/Parse", form)
	if err != nil {
		return "", "", err
	}
	return dest, j.GetPath("job", "key", "name").MustString(), nil
}

// RunAutoML submits an AutoML build and returns its job key. The opaque
// search options are forwarded as-is; only the input spec and the project
// name are owned by the pipeline.
func (c *Client) RunAutoML(project, frame string, spec automl.SearchSpec) (string, error) {
	j, err := c.postJSON("/99/AutoMLBuilder", automlBody(project, frame, spec))
	if err != nil {
		return "", err
	}
	key := j.GetPath("job", "key", "name").MustString()
	if key == "" {
		return "", errors.New("h2o did not return an AutoML job key")
	}
	return key, nil
}

// WaitJob polls a job until it finishes, surfacing the runtime's exception
// text on failure. No overall timeout: the job runs to completion or fails.
func (c *Client) WaitJob(key string) error {
	for {
		j, err := c.get("/3/Jobs/"+url.PathEscape(key), nil)
		if err != nil {
			return err
		}
		job := j.Get("jobs").GetIndex(0)
		switch status := job.Get("status").MustString(); status {
		case "DONE":
			return nil
		case "FAILED", "CANCELLED":
			msg := job.Get("exception").MustString(status)
			return errors.Errorf("h2o job %s: %s", key, msg)
		}
		time.Sleep(jobPollInterval)
	}
}

// Leaderboard fetches the ranked model table of an AutoML project.
func (c *Client) Leaderboard(project string) (*automl.Leaderboard, error) {
	j, err := c.get("/99/Leaderboards/"+url.PathEscape(project), nil)
	if err != nil {
		return nil, err
	}
	table := j.Get("table")
	var columns []string
	for i := range table.Get("columns").MustArray() {
		columns = append(columns, table.Get("columns").GetIndex(i).Get("name").MustString())
	}
	// table data is column-major; transpose it into rows
	var rows [][]string
	for ci := range table.Get("data").MustArray() {
		col := table.Get("data").GetIndex(ci)
		for ri := range col.MustArray() {
			for len(rows) <= ri {
				rows = append(rows, make([]string, len(columns)))
			}
			rows[ri][ci] = cellString(col.GetIndex(ri))
		}
	}
	return &automl.Leaderboard{
		Columns:    columns,
		Rows:       rows,
		SortMetric: j.Get("sort_metric").MustString(),
	}, nil
}

// SaveModel makes the cluster persist a model in its native binary format
// under dir and returns the artifact path.
func (c *Client) SaveModel(modelID, dir string) (string, error) {
	_, err := c.get("/99/Models.bin/"+url.PathEscape(modelID), url.Values{
		"dir":   {dir},
		"force": {"true"},
	})
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, modelID), nil
}

func (c *Client) get(path string, params url.Values) (*simplejson.Json, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	resp, err := c.hc.Get(u)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", path)
	}
	return decodeResponse(path, resp)
}

func (c *Client) postForm(path string, form url.Values) (*simplejson.Json, error) {
	resp, err := c.hc.PostForm(c.baseURL+path, form)
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s", path)
	}
	return decodeResponse(path, resp)
}

func (c *Client) postJSON(path string, body interface{}) (*simplejson.Json, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Post(c.baseURL+path, "application/json", strings.NewReader(string(data)))
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s", path)
	}
	return decodeResponse(path, resp)
}

func decodeResponse(path string, resp *http.Response) (*simplejson.Json, error) {
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read response of %s", path)
	}
	if resp.StatusCode/100 != 2 {
		if j, err := simplejson.NewJson(data); err == nil {
			if msg := j.Get("exception_msg").MustString(); msg != "" {
				return nil, errors.Errorf("h2o %s: %s", path, msg)
			}
		}
		return nil, errors.Errorf("h2o %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	j, err := simplejson.NewJson(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode response of %s", path)
	}
	return j, nil
}

// automlBody assembles the AutoMLBuilder request: the opaque options first,
// then the pipeline-owned input spec and project name layered on top. User
// keys inside input_spec and build_control survive unless the pipeline owns
// them.
func automlBody(project, frame string, spec automl.SearchSpec) map[string]interface{} {
	body := map[string]interface{}{}
	for k, v := range spec.Options.MustMap() {
		body[k] = v
	}

	input := map[string]interface{}{}
	if m, ok := body["input_spec"].(map[string]interface{}); ok {
		for k, v := range m {
			input[k] = v
		}
	}
	input["training_frame"] = frame
	input["response_column"] = spec.Target
	body["input_spec"] = input

	control := map[string]interface{}{}
	if m, ok := body["build_control"].(map[string]interface{}); ok {
		for k, v := range m {
			control[k] = v
		}
	}
	control["project_name"] = project
	body["build_control"] = control
	return body
}

func sourceFrameNames(setup *simplejson.Json) []string {
	var names []string
	src := setup.Get("source_frames")
	for i := range src.MustArray() {
		f := src.GetIndex(i)
		if name := f.Get("name").MustString(); name != "" {
			names = append(names, name)
		} else if s, err := f.String(); err == nil {
			names = append(names, s)
		}
	}
	return names
}

func jsonList(items ...string) string {
	data, _ := json.Marshal(items)
	return string(data)
}

func cellString(cell *simplejson.Json) string {
	if s, err := cell.String(); err == nil {
		return s
	}
	if f, err := cell.Float64(); err == nil {
		return fmt.Sprint(f)
	}
	return fmt.Sprint(cell.Interface())
}
