// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package config

import (
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
)

// WithLogger provides the slog.Logger for Config.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithDelimiter provides the delimiter when specifying config path.
//
// The default delimiter is `.`, which makes config path like `parent.child.key`.
func WithDelimiter(delimiter string) Option {
	return func(options *options) {
		options.delimiter = delimiter
	}
}

// WithTagName provides the tag name that reads the customized field names from.
//
// The default tag name is `opskit`.
func WithTagName(tagName string) Option {
	return func(options *options) {
		options.tagName = tagName
	}
}

// WithDecodeHook provides the decode hook for [mapstructure] decoding.
//
// The default decode hook composes StringToTimeDurationHookFunc,
// StringToSliceHookFunc(",") and TextUnmarshallerHookFunc.
func WithDecodeHook(decodeHook mapstructure.DecodeHookFunc) Option {
	return func(options *options) {
		options.decodeHook = decodeHook
	}
}

type (
	// Option configures a Config with specific options.
	Option  func(*options)
	options Config
)
