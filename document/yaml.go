// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a single YAML document from data.
//
// Mapping order is preserved and aliases are resolved.
// Values that JSON cannot represent, such as .inf and .nan, are rejected,
// and so are documents that expand mostly through aliases.
func DecodeYAML(data []byte) (*Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	value, err := (&nodeDecoder{}).decode(&node)
	if err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	return value, nil
}

var errExcessiveAliasing = errors.New("document contains excessive aliasing")

// nodeDecoder converts yaml nodes into values, counting the nodes reached
// through aliases to stop alias bombs the same way yaml.v3 does for Go values.
type nodeDecoder struct {
	decodeCount int
	aliasCount  int
	aliasDepth  int
}

//nolint:cyclop,funlen
func (d *nodeDecoder) decode(node *yaml.Node) (*Value, error) {
	d.decodeCount++
	if d.aliasDepth > 0 {
		d.aliasCount++
	}
	if d.aliasCount > 100 && d.decodeCount > 1000 &&
		float64(d.aliasCount)/float64(d.decodeCount) > allowedAliasRatio(d.decodeCount) {
		return nil, errExcessiveAliasing
	}

	switch node.Kind {
	case 0:
		// Empty document.
		return Null(), nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}

		return d.decode(node.Content[0])
	case yaml.AliasNode:
		d.aliasDepth++
		defer func() { d.aliasDepth-- }()

		return d.decode(node.Alias)
	case yaml.SequenceNode:
		array := Array()
		for _, item := range node.Content {
			value, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			array.items = append(array.items, value)
		}

		return array, nil
	case yaml.MappingNode:
		object := newObjectBuilder(len(node.Content) / 2) //nolint:mnd
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := d.decode(node.Content[i])
			if err != nil {
				return nil, err
			}
			value, err := d.decode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			object.set(scalarText(key), value)
		}

		return object.object, nil
	case yaml.ScalarNode:
		return fromScalar(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
	}
}

// allowedAliasRatio is the share of alias-expanded nodes a document may have,
// from 99% for small documents down to 10% past four million nodes.
func allowedAliasRatio(decodeCount int) float64 {
	switch {
	case decodeCount <= 400_000: //nolint:mnd
		return 0.99 //nolint:mnd
	case decodeCount >= 4_000_000: //nolint:mnd
		return 0.10 //nolint:mnd
	default:
		return 0.99 - 0.89*(float64(decodeCount-400_000)/3_600_000) //nolint:mnd
	}
}

func fromScalar(node *yaml.Node) (*Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err //nolint:wrapcheck
		}

		return Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			// Out of int64 range, keep it as a float.
			var f float64
			if err := node.Decode(&f); err != nil {
				return nil, err //nolint:wrapcheck
			}

			return Float(f), nil
		}

		return Int(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err //nolint:wrapcheck
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("line %d: %s cannot be represented in json", node.Line, node.Value)
		}
		if isNumber(node.Value) && json.Valid([]byte(node.Value)) {
			// Keep the literal when it is already a valid JSON number.
			return &Value{kind: KindNumber, text: node.Value}, nil
		}

		return Float(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags are kept as text.
		return String(node.Value), nil
	}
}

func scalarText(value *Value) string {
	switch value.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(value.boolean)
	default:
		return value.text
	}
}

// EncodeYAML writes v to w as YAML indented with two spaces.
func EncodeYAML(w io.Writer, v *Value) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2) //nolint:mnd
	if err := encoder.Encode(toNode(v)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return nil
}

func toNode(v *Value) *yaml.Node {
	switch v.Kind() {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.boolean)}
	case KindNumber:
		tag := "!!float"
		if _, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			tag = "!!int"
		}

		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.text}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.text}
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.items {
			node.Content = append(node.Content, toNode(item))
		}

		return node
	case KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, member := range v.members {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: member.Key},
				toNode(member.Value),
			)
		}

		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
