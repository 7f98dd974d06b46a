// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

import "strings"

// Sub returns the value under the given path in values, which keys are lower case.
// Blank path elements are ignored. It returns nil if the path does not exist.
func Sub(values map[string]any, path []string) any {
	var next any = values
	for _, key := range path {
		if key == "" {
			continue
		}

		mp, ok := next.(map[string]any)
		if !ok {
			return nil
		}
		next = mp[strings.ToLower(key)]
	}

	return next
}
