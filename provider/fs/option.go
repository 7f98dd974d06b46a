// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package fs

// WithUnmarshal overrides how the file content is decoded into a map[string]any,
// which otherwise follows the path extension: YAML for .yaml and .yml, JSON for the rest.
func WithUnmarshal(unmarshal func([]byte, any) error) Option {
	return func(options *options) {
		options.unmarshal = unmarshal
	}
}

type (
	// Option configures a FS with specific options.
	Option  func(*options)
	options FS
)
