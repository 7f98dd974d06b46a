// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package file_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nil-go/opskit/provider/file"
)

func TestFile_Load(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		path        string
		opts        []file.Option
		expected    []byte
		err         string
	}{
		{
			description: "file",
			path:        "testdata/main.json",
			expected:    []byte(`{"a": {"items": [1, 2]}}` + "\n"),
		},
		{
			description: "file not exist",
			path:        "not_found.json",
			err:         "read file: open not_found.json: ",
		},
		{
			description: "ignore file not exist",
			path:        "not_found.json",
			opts:        []file.Option{file.IgnoreFileNotExist()},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			bytes, err := file.New(testcase.path, testcase.opts...).Load(context.Background())
			if testcase.err != "" {
				require.Error(t, err)
				require.True(t, strings.HasPrefix(err.Error(), testcase.err))
			} else {
				require.NoError(t, err)
				require.Equal(t, testcase.expected, bytes)
			}
		})
	}
}

func TestFile_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "file:main.json", file.New("main.json").String())
}

func TestFile_New_panic(t *testing.T) {
	t.Parallel()

	require.PanicsWithValue(t, "cannot create File with empty path", func() {
		file.New("")
	})
}

func TestFile_Watch_notExist(t *testing.T) {
	t.Parallel()

	err := file.New(filepath.Join(t.TempDir(), "missing.json")).Watch(context.Background(), func([]byte) {})
	require.Error(t, err)
}

func TestFile_Watch_cancel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, file.New(path).Watch(ctx, func([]byte) {}))
}
