// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package pflag loads settings from command-line flags defined by [spf13/pflag].
//
// Flag names are split by `-` into nested keys, so `--bedrock-model-id=id`
// is loaded as `{bedrock: {model: {id: "id"}}}`.
//
// A flag that is not set on the command line only contributes its default value
// if the default is not zero and no earlier loader has set the same key.
// Zero defaults never override settings from files or the environment.
package pflag

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/nil-go/opskit/internal/maps"
)

// PFlag is a loader that reads settings from a pflag.FlagSet.
//
// To create a new PFlag, call [New].
type PFlag struct {
	config   config
	prefix   string
	set      *pflag.FlagSet
	splitter func(string) []string
}

type config interface {
	Exists(path []string) bool
}

// New creates a PFlag over the given flag set, or pflag.CommandLine if it's nil.
//
// The config tells whether a key has been set by earlier loaders,
// in which case an unchanged flag does not override it with its default.
func New(config config, set *pflag.FlagSet, opts ...Option) PFlag {
	option := &options{
		config: config,
		set:    set,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.set == nil {
		option.set = pflag.CommandLine
	}
	if option.splitter == nil {
		option.splitter = func(name string) []string {
			return strings.Split(name, "-")
		}
	}

	return PFlag(*option)
}

func (f PFlag) Load() (map[string]any, error) {
	values := make(map[string]any)
	f.set.VisitAll(func(flag *pflag.Flag) {
		if !strings.HasPrefix(flag.Name, f.prefix) {
			return
		}
		keys := f.splitter(flag.Name)
		if len(keys) == 0 || len(keys) == 1 && keys[0] == "" {
			return
		}

		value := flagValue(flag)
		if !flag.Changed && (f.exists(keys) || reflect.ValueOf(value).IsZero()) {
			return
		}
		maps.Insert(values, keys, value)
	})

	return values, nil
}

func (f PFlag) exists(keys []string) bool {
	if f.config == nil || reflect.ValueOf(f.config).IsNil() {
		return false
	}

	return f.config.Exists(keys)
}

// flagValue converts the flag value to its Go type where the type is known,
// and falls back to the string form otherwise.
//
//nolint:cyclop
func flagValue(flag *pflag.Flag) any {
	if slice, ok := flag.Value.(pflag.SliceValue); ok {
		return slice.GetSlice()
	}

	text := flag.Value.String()
	switch flag.Value.Type() {
	case "bool":
		if value, err := strconv.ParseBool(text); err == nil {
			return value
		}
	case "int", "int8", "int16", "int32", "int64", "count":
		if value, err := strconv.ParseInt(text, 10, 64); err == nil {
			return int(value)
		}
	case "uint", "uint8", "uint16", "uint32", "uint64":
		if value, err := strconv.ParseUint(text, 10, 64); err == nil {
			return uint(value)
		}
	case "float32", "float64":
		if value, err := strconv.ParseFloat(text, 64); err == nil {
			return value
		}
	case "duration":
		if value, err := time.ParseDuration(text); err == nil {
			return value
		}
	}

	return text
}

func (f PFlag) String() string {
	if f.prefix == "" {
		return "pflag"
	}

	return "pflag:" + f.prefix
}
