// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package document_test

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/nil-go/opskit/document"
	"github.com/nil-go/opskit/internal/assert"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		data        string
		expected    *document.Value
		err         string
	}{
		{
			description: "scalars",
			data:        `[null, true, false, 1.50, -2e10, "s"]`,
			expected: document.Array(
				document.Null(),
				document.Bool(true),
				document.Bool(false),
				document.Number("1.50"),
				document.Number("-2e10"),
				document.String("s"),
			),
		},
		{
			description: "big integer",
			data:        `{"id": 12345678901234567890123}`,
			expected:    document.Object(document.Member{Key: "id", Value: document.Number("12345678901234567890123")}),
		},
		{
			description: "duplicated keys",
			data:        `{"a": 1, "b": 2, "a": 3}`,
			expected: document.Object(
				document.Member{Key: "a", Value: document.Int(3)},
				document.Member{Key: "b", Value: document.Int(2)},
			),
		},
		{
			description: "empty input",
			data:        ``,
			err:         "decode json: unexpected EOF",
		},
		{
			description: "trailing data",
			data:        `{} {}`,
			err:         "decode json: invalid character after top-level value",
		},
		{
			description: "unterminated object",
			data:        `{"a": 1`,
			err:         "decode json: unexpected EOF",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			value, err := document.DecodeJSON([]byte(testcase.data))
			if testcase.err != "" {
				assert.EqualError(t, err, testcase.err)

				return
			}
			assert.NoError(t, err)
			assert.True(t, testcase.expected.Equal(value))
		})
	}
}

func TestDecodeJSON_order(t *testing.T) {
	t.Parallel()

	value, err := document.DecodeJSON([]byte(`{"z": 1, "a": {"y": 2, "b": 3}, "m": 4}`))
	assert.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, value.Keys())
	nested, _ := value.Get("a")
	assert.Equal(t, []string{"y", "b"}, nested.Keys())
}

func TestDecodeJSON_largeObject(t *testing.T) {
	t.Parallel()

	const size = 200_000

	var data strings.Builder
	data.WriteString(`{"items": []`)
	for i := range size {
		data.WriteString(`, "k` + strconv.Itoa(i) + `": ` + strconv.Itoa(i))
	}
	data.WriteString(`, "k0": "last"}`)

	start := time.Now()
	value, err := document.DecodeJSON([]byte(data.String()))
	elapsed := time.Since(start)
	assert.NoError(t, err)
	assert.True(t, elapsed < 10*time.Second)

	assert.Equal(t, size+1, value.Len())
	keys := value.Keys()
	assert.Equal(t, "items", keys[0])
	assert.Equal(t, "k0", keys[1])
	assert.Equal(t, "k199999", keys[size])
	first, _ := value.Get("k0")
	assert.Equal(t, "last", first.Text())

	assert.True(t, value.Equal(value.Clone()))
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	value, err := document.DecodeJSON([]byte(
		`{"name":"<a&b>","empty":{},"list":[],"nested":{"items":[1,{"k":null}],"ok":true},"n":1.0}`,
	))
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, document.EncodeJSON(&buf, value))
	assert.Equal(t, `{
  "name": "<a&b>",
  "empty": {},
  "list": [],
  "nested": {
    "items": [
      1,
      {
        "k": null
      }
    ],
    "ok": true
  },
  "n": 1.0
}
`, buf.String())
}

func TestJSON_roundTrip(t *testing.T) {
	t.Parallel()

	doc, err := document.DecodeJSON([]byte(`{"a": {"items": [1, 2]}, "s": "é\n", "f": 0.1}`))
	assert.NoError(t, err)
	_, err = document.Insert(doc, document.Object(document.Member{Key: "k", Value: document.Float(3.5)}), "items")
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, document.EncodeJSON(&buf, doc))
	decoded, err := document.DecodeJSON(buf.Bytes())
	assert.NoError(t, err)
	assert.True(t, doc.Equal(decoded))
	assert.Equal(t, doc.String(), decoded.String())
}

func TestValue_json(t *testing.T) {
	t.Parallel()

	var wrapper struct {
		Doc *document.Value `json:"doc"`
	}
	assert.NoError(t, json.Unmarshal([]byte(`{"doc": {"b": 1, "a": [true]}}`), &wrapper))
	assert.Equal(t, []string{"b", "a"}, wrapper.Doc.Keys())

	bytes, err := json.Marshal(wrapper)
	assert.NoError(t, err)
	assert.Equal(t, `{"doc":{"b":1,"a":[true]}}`, string(bytes))
}
