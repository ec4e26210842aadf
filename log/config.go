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

package log

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// FormatterType selects one of the supported log line formats.
type FormatterType int

const (
	// OrderedTextFormatter writes one-line text records with fields in
	// sorted key order, so log output is stable across runs.
	OrderedTextFormatter FormatterType = iota
	// JSONFormatter writes logrus standard JSON records.
	JSONFormatter
)

// Fields is the set of key/value pairs attached to a log entry.
type Fields = logrus.Fields

// InitLogger configures the process-wide logger. When path is not empty,
// log records go to that file with size-based rotation; otherwise they go
// to stdout.
func InitLogger(path string, formatter FormatterType) {
	switch formatter {
	case JSONFormatter:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&orderedTextFormatter{})
	}
	if path != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
		})
	} else {
		logrus.SetOutput(os.Stdout)
	}
	logrus.SetLevel(logrus.InfoLevel)
}

// WithFields returns a logger entry carrying the given fields.
func WithFields(f Fields) *logrus.Entry {
	return logrus.WithFields(logrus.Fields(f))
}

type orderedTextFormatter struct{}

func (f *orderedTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s msg=%q", entry.Time.Format("2006-01-02T15:04:05"),
		entry.Level.String(), entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := entry.Data[k].(type) {
		case string:
			fmt.Fprintf(&b, " %s=%q", k, v)
		default:
			fmt.Fprintf(&b, " %s=%v", k, v)
		}
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
