// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package file

import "log/slog"

// IgnoreFileNotExist makes Load return no content, rather than an error, for a missing file.
func IgnoreFileNotExist() Option {
	return func(options *options) {
		options.ignoreNotExist = true
	}
}

// WithLogger sets the logger for reload and watch warnings, slog.Default() if unset.
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type (
	// Option configures a File with specific options.
	Option  func(*options)
	options File
)
