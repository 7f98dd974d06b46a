// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package fs loads settings from a file in [fs.FS], such as an [embed.FS].
//
// FS loads a file with the given path from the file system and returns
// a nested map[string]any that is parsed with the unmarshal function.
// By default, files with `.yaml` or `.yml` extension are parsed as YAML
// and others are parsed as JSON.
package fs

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// FS is a loader for a single settings file inside an fs.FS.
type FS struct {
	fs        fs.FS
	path      string
	unmarshal func([]byte, any) error
}

// New returns an FS reading path from fsys. A nil fsys or an empty path panics.
func New(fsys fs.FS, path string, opts ...Option) FS {
	if fsys == nil {
		panic("cannot create FS with nil fs")
	}
	if path == "" {
		panic("cannot create FS with empty path")
	}

	option := &options{
		fs:   fsys,
		path: path,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.unmarshal == nil {
		option.unmarshal = unmarshalOf(path)
	}

	return FS(*option)
}

func (f FS) Load() (map[string]any, error) {
	content, err := fs.ReadFile(f.fs, f.path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var values map[string]any
	if err := f.unmarshal(content, &values); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return values, nil
}

func (f FS) String() string {
	return "fs:" + f.path
}

func unmarshalOf(name string) func([]byte, any) error {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal
	default:
		return json.Unmarshal
	}
}
