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
	"fmt"
	"os/exec"
	"strconv"
	"time"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"trainflow.org/trainflow/log"
)

const (
	defaultJar  = "/opt/h2o/h2o.jar"
	defaultPort = 54321

	startupTimeout      = 2 * time.Minute
	startupPollInterval = 2 * time.Second
)

// Cluster is the H2O runtime one training run talks to. It is started once
// per process and never explicitly torn down: the container exits and takes
// the JVM with it.
type Cluster struct {
	URL string
	cmd *exec.Cmd
}

// Start launches an H2O JVM configured by the opaque init options, then
// waits for the cloud to report healthy. A "url" init option attaches to an
// already-running cluster instead of launching one.
//
// Recognized launch options: "jar", "port", "name", "max_mem_size",
// "nthreads". Anything else is for the attach path or future flags and is
// ignored here.
func Start(opts *simplejson.Json) (*Cluster, error) {
	if u := opts.Get("url").MustString(); u != "" {
		c := &Cluster{URL: u}
		return c, c.await()
	}

	port := opts.Get("port").MustInt(defaultPort)
	var args []string
	if mem := opts.Get("max_mem_size").MustString(); mem != "" {
		args = append(args, "-Xmx"+mem)
	}
	args = append(args, "-jar", opts.Get("jar").MustString(defaultJar),
		"-ip", "127.0.0.1",
		"-port", strconv.Itoa(port),
		"-name", opts.Get("name").MustString("trainflow"))
	if n := opts.Get("nthreads").MustInt(); n > 0 {
		args = append(args, "-nthreads", strconv.Itoa(n))
	}

	logger := log.WithFields(log.Fields{"package": "h2o"})
	logger.Infof("launching h2o runtime: java %v", args)
	cmd := exec.Command("java", args...)
	cmd.Stdout = logger.WriterLevel(logrus.DebugLevel)
	cmd.Stderr = logger.WriterLevel(logrus.DebugLevel)
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "launch h2o jvm")
	}

	c := &Cluster{URL: fmt.Sprintf("http://127.0.0.1:%d", port), cmd: cmd}
	if err := c.await(); err != nil {
		return nil, err
	}
	logger.Infof("h2o cloud at %s is healthy", c.URL)
	return c, nil
}

func (c *Cluster) await() error {
	client := NewClient(c.URL)
	deadline := time.Now().Add(startupTimeout)
	for {
		healthy, err := client.CloudHealthy()
		if err == nil && healthy {
			return nil
		}
		if time.Now().After(deadline) {
			if err != nil {
				return errors.Wrapf(err, "h2o cloud at %s not healthy after %v", c.URL, startupTimeout)
			}
			return errors.Errorf("h2o cloud at %s not healthy after %v", c.URL, startupTimeout)
		}
		time.Sleep(startupPollInterval)
	}
}
