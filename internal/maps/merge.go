// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

import "strings"

// Merge folds src into dst with lower-cased keys.
// Nested maps on both sides are merged key by key; any other value in src replaces the one in dst.
// Maps from src are copied rather than shared with dst.
func Merge(dst, src map[string]any) {
	for key, value := range src {
		key = strings.ToLower(key)

		nested, isMap := value.(map[string]any)
		if !isMap {
			dst[key] = value

			continue
		}

		target, isMap := dst[key].(map[string]any)
		if !isMap {
			target = make(map[string]any, len(nested))
			dst[key] = target
		}
		Merge(target, nested)
	}
}
