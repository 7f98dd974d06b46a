// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package env

// WithPrefix limits loading to the environment variables whose names start with prefix.
// The prefix stays part of the key, so with prefix "BEDROCK_",
// BEDROCK_MODEL_ID is still loaded as bedrock.model.id.
//
// By default, every environment variable is loaded.
func WithPrefix(prefix string) Option {
	return func(options *options) {
		options.prefix = prefix
	}
}

// WithFilter skips the environment variables whose names the filter rejects,
// so unrelated variables such as PROMPT or LOG do not leak into settings.
func WithFilter(filter func(name string) bool) Option {
	return func(options *options) {
		options.filter = filter
	}
}

// WithNameSplitter replaces the default `_` splitting of names into nested keys.
// Variables for which the splitter returns no key, or a single empty key, are skipped.
func WithNameSplitter(splitter func(string) []string) Option {
	return func(options *options) {
		options.splitter = splitter
	}
}

type (
	// Option configures an Env with specific options.
	Option  func(*options)
	options Env
)
