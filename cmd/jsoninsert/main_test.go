// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"github.com/nil-go/opskit/internal/assert"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRun(t *testing.T) {
	isolate(t)

	testcases := []struct {
		description string
		main        string
		mainName    string
		insert      string
		args        []string
		code        int
		stdout      string
		stderr      string
	}{
		{
			description: "nested array",
			main:        `{"a": {"items": [1, 2]}}`,
			insert:      `3`,
			args:        []string{"items"},
			stdout: `{
  "a": {
    "items": [
      1,
      2,
      3
    ]
  }
}
`,
		},
		{
			description: "first match only",
			main:        `{"x": {"items": []}, "y": {"items": []}}`,
			insert:      `{"name": "<v>"}`,
			args:        []string{"items"},
			stdout: `{
  "x": {
    "items": [
      {
        "name": "<v>"
      }
    ]
  },
  "y": {
    "items": []
  }
}
`,
		},
		{
			description: "every branch",
			main:        `{"x": {"items": []}, "y": {"items": []}}`,
			insert:      `"v"`,
			args:        []string{"--all", "items"},
			stdout: `{
  "x": {
    "items": [
      "v"
    ]
  },
  "y": {
    "items": [
      "v"
    ]
  }
}
`,
		},
		{
			description: "yaml main and output",
			main:        "b:\n  items: [1]\na: {}\n",
			mainName:    "main.yaml",
			insert:      `{"k": "v"}`,
			args:        []string{"--format", "yaml", "items"},
			stdout: `b:
  items:
    - 1
    - k: v
a: {}
`,
		},
		{
			description: "key not found",
			main:        `{"a": [{"items": []}]}`,
			insert:      `"v"`,
			args:        []string{"items"},
			stdout: `{
  "a": [
    {
      "items": []
    }
  ]
}
`,
			stderr: "Insertion key not found, document is unchanged.",
		},
		{
			description: "not an array",
			main:        `{"a": {"items": "text"}}`,
			insert:      `"v"`,
			args:        []string{"items"},
			code:        1,
			stderr:      "append /a/items: unexpected kind string, want array",
		},
		{
			description: "root not an object",
			main:        `[]`,
			insert:      `"v"`,
			args:        []string{"items"},
			code:        1,
			stderr:      "insert root: unexpected kind array, want object",
		},
		{
			description: "malformed main",
			main:        `{"a": `,
			insert:      `"v"`,
			args:        []string{"items"},
			code:        1,
			stderr:      "decode json: unexpected EOF",
		},
		{
			description: "invalid format",
			main:        `{}`,
			insert:      `"v"`,
			args:        []string{"--format", "toml", "items"},
			code:        1,
			stderr:      `unknown document format \"toml\"`,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			dir := t.TempDir()
			mainName := testcase.mainName
			if mainName == "" {
				mainName = "main.json"
			}
			mainFile := write(t, dir, mainName, testcase.main)
			insertFile := write(t, dir, "insert.json", testcase.insert)

			flags, key := testcase.args[:len(testcase.args)-1], testcase.args[len(testcase.args)-1]
			args := append(append([]string{}, flags...), mainFile, insertFile, key)

			var stdout, stderr bytes.Buffer
			code := run(context.Background(), args, &stdout, &stderr)
			assert.Equal(t, testcase.code, code)
			assert.Equal(t, testcase.stdout, stdout.String())
			if !strings.Contains(stderr.String(), testcase.stderr) {
				t.Errorf("expected stderr to contain %q; actual: %s", testcase.stderr, stderr.String())
			}
		})
	}
}

func TestRun_usage(t *testing.T) {
	isolate(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"main.json", "insert.json"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Equal(t, "", stdout.String())
	assert.Equal(t, usage+"\n", stderr.String())
}

func TestRun_missingFile(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	insertFile := write(t, dir, "insert.json", `1`)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{filepath.Join(dir, "missing.json"), insertFile, "k"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.True(t, strings.Contains(stderr.String(), "read file:"))
}

func TestRun_output(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	mainFile := write(t, dir, "main.json", `{"items": []}`)
	insertFile := write(t, dir, "insert.json", `true`)
	output := filepath.Join(dir, "out.json")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-o", output, mainFile, insertFile, "items"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "", stdout.String())

	content, err := os.ReadFile(output)
	assert.NoError(t, err)
	assert.Equal(t, "{\n  \"items\": [\n    true\n  ]\n}\n", string(content))
}

func TestRun_unrelatedEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PROMPT", "$P$G")
	t.Setenv("LOG", "1")
	t.Setenv("AWS", "x")

	dir := t.TempDir()
	mainFile := write(t, dir, "main.json", `{"items": []}`)
	insertFile := write(t, dir, "insert.json", `1`)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{mainFile, insertFile, "items"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "{\n  \"items\": [\n    1\n  ]\n}\n", stdout.String())
	assert.Equal(t, "", stderr.String())
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// isolate clears the environment variables that change how settings are loaded.
func isolate(t *testing.T) {
	t.Helper()

	t.Setenv("SSM_PATH", "")
	t.Setenv("LOG_LEVEL", "")
}
