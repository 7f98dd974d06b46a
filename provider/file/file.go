// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package file reads documents from local disk and watches them for changes with [fsnotify].
//
// A missing file is an error unless [IgnoreFileNotExist] is given.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// File is a document source backed by a local file.
type File struct {
	logger         *slog.Logger
	path           string
	ignoreNotExist bool
}

// New returns a File for path, which must not be empty.
func New(path string, opts ...Option) File {
	if path == "" {
		panic("cannot create File with empty path")
	}

	option := &options{
		path: path,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("opskit.file")

	return File(*option)
}

func (f File) Load(context.Context) ([]byte, error) {
	content, err := os.ReadFile(f.path)
	switch {
	case err == nil:
		return content, nil
	case f.ignoreNotExist && errors.Is(err, fs.ErrNotExist):
		f.logger.Warn("File does not exist.", "file", f.path)

		return nil, nil
	default:
		return nil, fmt.Errorf("read file: %w", err)
	}
}

func (f File) String() string {
	return "file:" + f.path
}
