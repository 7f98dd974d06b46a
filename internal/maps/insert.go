// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

// Insert sets value at the nested keys of dst.
// Missing parents are created and non-map parents are replaced. No keys is a no-op.
func Insert(dst map[string]any, keys []string, value any) {
	if len(keys) == 0 {
		return
	}

	parent := dst
	last := len(keys) - 1
	for _, key := range keys[:last] {
		child, isMap := parent[key].(map[string]any)
		if !isMap {
			child = make(map[string]any)
			parent[key] = child
		}
		parent = child
	}
	parent[keys[last]] = value
}
