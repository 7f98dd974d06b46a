// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package config

import (
	"context"
	"fmt"
)

// Source is the interface that wraps the basic Load method
// which returns the raw content, such as a file.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
}

// Decode returns a Loader that loads the content of the given source
// and parses it with the given unmarshal function,
// e.g. yaml.Unmarshal or json.Unmarshal.
func Decode(source Source, unmarshal func([]byte, any) error) Loader {
	return decoder{source: source, unmarshal: unmarshal}
}

type decoder struct {
	source    Source
	unmarshal func([]byte, any) error
}

func (d decoder) Load() (map[string]any, error) {
	bytes, err := d.source.Load(context.Background())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	var values map[string]any
	if err := d.unmarshal(bytes, &values); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return values, nil
}

func (d decoder) String() string {
	return fmt.Sprint(d.source)
}
