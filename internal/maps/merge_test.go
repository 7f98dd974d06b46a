// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps_test

import (
	"testing"

	"github.com/nil-go/opskit/internal/assert"
	"github.com/nil-go/opskit/internal/maps"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		dst, src    map[string]any
		expected    map[string]any
	}{
		{
			description: "nothing to merge",
			dst:         map[string]any{"log": "info"},
			expected:    map[string]any{"log": "info"},
		},
		{
			description: "disjoint keys",
			dst:         map[string]any{"aws": map[string]any{"region": "us-east-1"}},
			src:         map[string]any{"sns": map[string]any{"topic": "arn"}},
			expected: map[string]any{
				"aws": map[string]any{"region": "us-east-1"},
				"sns": map[string]any{"topic": "arn"},
			},
		},
		{
			description: "source wins on leaves",
			dst:         map[string]any{"bedrock": map[string]any{"maxtokens": 384, "temperature": 0}},
			src:         map[string]any{"bedrock": map[string]any{"maxtokens": 1024}},
			expected:    map[string]any{"bedrock": map[string]any{"maxtokens": 1024, "temperature": 0}},
		},
		{
			description: "leaf replaces map",
			dst:         map[string]any{"prompt": map[string]any{"template": "a.tmpl"}},
			src:         map[string]any{"prompt": "inline"},
			expected:    map[string]any{"prompt": "inline"},
		},
		{
			description: "map replaces leaf",
			dst:         map[string]any{"prompt": "inline"},
			src:         map[string]any{"prompt": map[string]any{"template": "a.tmpl"}},
			expected:    map[string]any{"prompt": map[string]any{"template": "a.tmpl"}},
		},
		{
			description: "keys are lower cased",
			dst:         map[string]any{"aws": map[string]any{"region": "us-east-1"}},
			src:         map[string]any{"AWS": map[string]any{"Region": "eu-west-1", "Profile": "ops"}},
			expected:    map[string]any{"aws": map[string]any{"region": "eu-west-1", "profile": "ops"}},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			maps.Merge(testcase.dst, testcase.src)
			assert.Equal(t, testcase.expected, testcase.dst)
		})
	}
}

func TestMerge_copiesSource(t *testing.T) {
	t.Parallel()

	src := map[string]any{"ssm": map[string]any{"path": "/opskit"}}
	dst := map[string]any{}
	maps.Merge(dst, src)
	maps.Insert(dst, []string{"ssm", "path"}, "/other")

	assert.Equal(t, map[string]any{"ssm": map[string]any{"path": "/opskit"}}, src)
}
