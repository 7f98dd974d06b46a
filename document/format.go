// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package document

import (
	"fmt"
	"io"
	"path"
	"strings"
)

// Format is the serialization format of a document.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatOf returns the format of the document at the given path or URI
// according to its extension. It defaults to JSON.
func FormatOf(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// ParseFormat parses the name of a format, case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch format := Format(strings.ToLower(name)); format {
	case JSON, YAML:
		return format, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown document format %q", name)
	}
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*Value, error) {
	switch format {
	case YAML:
		return DecodeYAML(data)
	case JSON, "":
		return DecodeJSON(data)
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}

// Encode writes v to w in the given format.
func Encode(w io.Writer, v *Value, format Format) error {
	switch format {
	case YAML:
		return EncodeYAML(w, v)
	case JSON, "":
		return EncodeJSON(w, v)
	default:
		return fmt.Errorf("unknown document format %q", format)
	}
}
