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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trainflow.org/trainflow/h2o"
	"trainflow.org/trainflow/log"
	"trainflow.org/trainflow/train"
)

func main() {
	if err := newTrainCmd().Execute(); err != nil {
		// Startup aborts (unreadable hyperparameters, runtime init) land
		// here: no failure file, plain non-zero exit.
		fmt.Fprintf(os.Stderr, "train: %v\n", err)
		os.Exit(1)
	}
}

func newTrainCmd() *cobra.Command {
	var baseDir string
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Run one H2O AutoML training job under the hosted container contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.InitLogger("", log.OrderedTextFormatter)
			res, err := train.NewJob(baseDir, h2o.NewEngine()).Run()
			if err != nil {
				return err
			}
			os.Exit(res.ExitCode())
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&baseDir, "basedir", train.DefaultBaseDir,
		"root of the training container filesystem contract")
	return cmd
}
