// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package document

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodeJSON parses a single JSON value from data.
func DecodeJSON(data []byte) (*Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	value, err := decodeJSON(decoder)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode json: invalid character after top-level value")
	}

	return value, nil
}

func decodeJSON(decoder *json.Decoder) (*Value, error) { //nolint:cyclop,funlen
	token, err := nextToken(decoder)
	if err != nil {
		return nil, err
	}

	switch token := token.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(token), nil
	case json.Number:
		return &Value{kind: KindNumber, text: token.String()}, nil
	case string:
		return String(token), nil
	case json.Delim:
		switch token {
		case '[':
			array := Array()
			for decoder.More() {
				item, err := decodeJSON(decoder)
				if err != nil {
					return nil, err
				}
				array.items = append(array.items, item)
			}
			if _, err := nextToken(decoder); err != nil { // ]
				return nil, err
			}

			return array, nil
		case '{':
			object := newObjectBuilder(0)
			for decoder.More() {
				keyToken, err := nextToken(decoder)
				if err != nil {
					return nil, err
				}
				key, _ := keyToken.(string) // The decoder only yields string keys in objects.
				member, err := decodeJSON(decoder)
				if err != nil {
					return nil, err
				}
				object.set(key, member)
			}
			if _, err := nextToken(decoder); err != nil { // }
				return nil, err
			}

			return object.object, nil
		}
	}

	return nil, fmt.Errorf("unexpected token %v", token)
}

// nextToken reads the next token, where the end of input is always unexpected.
func nextToken(decoder *json.Decoder) (json.Token, error) {
	token, err := decoder.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}

	return token, err //nolint:wrapcheck
}

// EncodeJSON writes v to w as JSON indented with two spaces, followed by a newline.
func EncodeJSON(w io.Writer, v *Value) error {
	writer := bufio.NewWriter(w)
	if err := encodeJSON(writer, v, "\n", "  "); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	if err := writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

// MarshalJSON encodes the value as compact JSON.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	writer := bufio.NewWriter(&buf)
	if err := encodeJSON(writer, v, "", ""); err != nil {
		return nil, err
	}
	if err := writer.Flush(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes JSON data into the value, preserving member order.
func (v *Value) UnmarshalJSON(data []byte) error {
	value, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*v = *value

	return nil
}

//nolint:cyclop,funlen
func encodeJSON(w *bufio.Writer, v *Value, newline, indent string) error {
	switch v.Kind() {
	case KindNull:
		_, err := w.WriteString("null")

		return err //nolint:wrapcheck
	case KindBool:
		text := "false"
		if v.boolean {
			text = "true"
		}
		_, err := w.WriteString(text)

		return err //nolint:wrapcheck
	case KindNumber:
		_, err := w.WriteString(v.text)

		return err //nolint:wrapcheck
	case KindString:
		return writeJSONString(w, v.text)
	case KindArray:
		if len(v.items) == 0 {
			_, err := w.WriteString("[]")

			return err //nolint:wrapcheck
		}

		inner := newline + indent
		_ = w.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				_ = w.WriteByte(',')
			}
			_, _ = w.WriteString(inner)
			if err := encodeJSON(w, item, inner, indent); err != nil {
				return err
			}
		}
		_, _ = w.WriteString(newline)
		err := w.WriteByte(']')

		return err //nolint:wrapcheck
	case KindObject:
		if len(v.members) == 0 {
			_, err := w.WriteString("{}")

			return err //nolint:wrapcheck
		}

		inner := newline + indent
		separator := ":"
		if indent != "" {
			separator = ": "
		}
		_ = w.WriteByte('{')
		for i, member := range v.members {
			if i > 0 {
				_ = w.WriteByte(',')
			}
			_, _ = w.WriteString(inner)
			if err := writeJSONString(w, member.Key); err != nil {
				return err
			}
			_, _ = w.WriteString(separator)
			if err := encodeJSON(w, member.Value, inner, indent); err != nil {
				return err
			}
		}
		_, _ = w.WriteString(newline)
		err := w.WriteByte('}')

		return err //nolint:wrapcheck
	default:
		return fmt.Errorf("unsupported kind %v", v.Kind())
	}
}

func writeJSONString(w *bufio.Writer, s string) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return err //nolint:wrapcheck
	}
	// Encode appends a newline.
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}))

	return err //nolint:wrapcheck
}
