// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package document

import (
	"errors"
	"strings"
)

// ErrKind is matched by every [KindError] through errors.Is.
var ErrKind = errors.New("unexpected kind")

// KindError reports an operation on a value of the wrong kind,
// e.g. appending to a member that holds a string instead of an array.
type KindError struct {
	Op   string
	Path string // JSON pointer (RFC 6901) of the value, empty for the root.
	Want Kind
	Got  Kind
}

func (e *KindError) Error() string {
	path := e.Path
	if path == "" {
		path = "root"
	}

	return e.Op + " " + path + ": " + ErrKind.Error() + " " + e.Got.String() + ", want " + e.Want.String()
}

func (e *KindError) Is(target error) bool {
	return target == ErrKind
}

// pointer appends key to the JSON pointer path.
func pointer(path, key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	key = strings.ReplaceAll(key, "/", "~1")

	return path + "/" + key
}
