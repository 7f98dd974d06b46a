// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package summary

import (
	"log/slog"
	"text/template"
)

// WithTemplate provides the prompt template, see [ParseTemplate].
//
// By default, it uses the template that asks for the six-line report.
func WithTemplate(tmpl *template.Template) Option {
	return func(options *options) {
		options.template = tmpl
	}
}

// WithLogger provides the slog.Logger for Summarizer.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type (
	// Option configures a Summarizer with specific options.
	Option  func(*options)
	options Summarizer
)
