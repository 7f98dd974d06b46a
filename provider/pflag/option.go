// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package pflag

// WithPrefix limits loading to the flags whose names start with prefix,
// e.g. "bedrock-" for --bedrock-model-id and --bedrock-maxtokens.
func WithPrefix(prefix string) Option {
	return func(options *options) {
		options.prefix = prefix
	}
}

// WithNameSplitter replaces the default `-` splitting of flag names into nested keys.
// Flags for which the splitter returns no key, or a single empty key, are skipped.
func WithNameSplitter(splitter func(string) []string) Option {
	return func(options *options) {
		options.splitter = splitter
	}
}

type (
	// Option configures a PFlag with specific options.
	Option  func(*options)
	options PFlag
)
