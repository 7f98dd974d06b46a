// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package env loads settings from environment variables.
//
// Env loads all environment variables and returns nested map[string]any
// by splitting the names by `_`. E.g. the environment variable
// `BEDROCK_MODEL_ID="id"` is loaded as `{BEDROCK: {MODEL: {ID: "id"}}}`.
// The environment variables with empty value are treated as unset.
//
// The default behavior can be changed with following options:
//   - WithPrefix enables loads environment variables with the given prefix in the name.
//   - WithFilter keeps only the environment variables whose names it accepts.
//   - WithNameSplitter provides the function to split environment variable names into nested keys.
package env

import (
	"os"
	"strings"

	"github.com/nil-go/opskit/internal/maps"
)

// Env is a Provider that loads settings from environment variables.
//
// To create a new Env, call [New].
type Env struct {
	_        [0]func() // Ensure it's incomparable.
	prefix   string
	filter   func(name string) bool
	splitter func(string) []string
}

// New creates an Env with the given Option(s).
func New(opts ...Option) Env {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}

	return Env(*option)
}

func (e Env) Load() (map[string]any, error) {
	splitter := e.splitter
	if splitter == nil {
		splitter = func(s string) []string {
			return strings.Split(s, "_")
		}
	}

	values := make(map[string]any)
	for _, env := range os.Environ() {
		if e.prefix != "" && !strings.HasPrefix(env, e.prefix) {
			continue
		}

		key, value, _ := strings.Cut(env, "=")
		if e.filter != nil && !e.filter(key) {
			continue
		}
		if value == "" {
			// The environment variable with empty value is treated as unset.
			continue
		}
		keys := splitter(key)
		if len(keys) == 0 || len(keys) == 1 && keys[0] == "" {
			continue
		}
		maps.Insert(values, keys, value)
	}

	return values, nil
}

func (e Env) String() string {
	if e.prefix == "" {
		return "env"
	}

	return "env:" + e.prefix
}
