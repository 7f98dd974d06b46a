// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the type of JSON value held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a node of a JSON document.
//
// Objects keep their members in the order they were added (or decoded),
// and numbers keep their literal text so that encoding is lossless.
// The zero Value is a JSON null.
type Value struct {
	kind    Kind
	boolean bool
	text    string // string content or number literal
	items   []*Value
	members []Member
}

// Member is a key/value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// Null returns a JSON null.
func Null() *Value {
	return &Value{}
}

// Bool returns a JSON boolean.
func Bool(b bool) *Value {
	return &Value{kind: KindBool, boolean: b}
}

// Number returns a JSON number with the given literal text.
//
// It panics if text is not a valid JSON number.
func Number(text string) *Value {
	if strings.TrimSpace(text) != text || !isNumber(text) || !json.Valid([]byte(text)) {
		panic("invalid JSON number " + strconv.Quote(text))
	}

	return &Value{kind: KindNumber, text: text}
}

// Int returns a JSON number holding i.
func Int(i int64) *Value {
	return &Value{kind: KindNumber, text: strconv.FormatInt(i, 10)}
}

// Float returns a JSON number holding f.
//
// It panics if f is NaN or infinite.
func Float(f float64) *Value {
	text, err := json.Marshal(f)
	if err != nil {
		panic(fmt.Sprintf("invalid JSON number %v", f))
	}

	return &Value{kind: KindNumber, text: string(text)}
}

// String returns a JSON string.
func String(s string) *Value {
	return &Value{kind: KindString, text: s}
}

// Array returns a JSON array with the given items.
func Array(items ...*Value) *Value {
	if items == nil {
		items = []*Value{}
	}

	return &Value{kind: KindArray, items: items}
}

// Object returns a JSON object with the given members.
// For duplicated keys, the last value wins at the position of the first key.
func Object(members ...Member) *Value {
	builder := newObjectBuilder(len(members))
	for _, member := range members {
		builder.set(member.Key, member.Value)
	}

	return builder.object
}

// objectBuilder assembles an object in linear time.
// Duplicated keys keep the position of the first key and the last value.
type objectBuilder struct {
	object *Value
	index  map[string]int
}

func newObjectBuilder(size int) *objectBuilder {
	return &objectBuilder{
		object: &Value{kind: KindObject, members: make([]Member, 0, size)},
		index:  make(map[string]int, size),
	}
}

func (b *objectBuilder) set(key string, value *Value) {
	if value == nil {
		value = Null()
	}
	if i, ok := b.index[key]; ok {
		b.object.members[i].Value = value

		return
	}
	b.index[key] = len(b.object.members)
	b.object.members = append(b.object.members, Member{Key: key, Value: value})
}

// Kind returns the kind of the value. A nil Value is a JSON null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}

	return v.kind
}

// Boolean returns the boolean held by the value, false for other kinds.
func (v *Value) Boolean() bool {
	return v.Kind() == KindBool && v.boolean
}

// Text returns the content of a string, or the literal of a number.
// It returns an empty string for other kinds.
func (v *Value) Text() string {
	switch v.Kind() {
	case KindString, KindNumber:
		return v.text
	default:
		return ""
	}
}

// Len returns the number of items of an array, or members of an object.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the i-th item of an array, or nil if out of range.
func (v *Value) Index(i int) *Value {
	if v.Kind() != KindArray || i < 0 || i >= len(v.items) {
		return nil
	}

	return v.items[i]
}

// Items returns the items of an array.
func (v *Value) Items() []*Value {
	if v.Kind() != KindArray {
		return nil
	}

	return v.items
}

// Members returns the members of an object in order.
func (v *Value) Members() []Member {
	if v.Kind() != KindObject {
		return nil
	}

	return v.members
}

// Keys returns the keys of an object in order.
func (v *Value) Keys() []string {
	if v.Kind() != KindObject {
		return nil
	}

	keys := make([]string, 0, len(v.members))
	for _, member := range v.members {
		keys = append(keys, member.Key)
	}

	return keys
}

// Get returns the value of the member with the given key.
func (v *Value) Get(key string) (*Value, bool) {
	if v.Kind() != KindObject {
		return nil, false
	}

	for _, member := range v.members {
		if member.Key == key {
			return member.Value, true
		}
	}

	return nil, false
}

// Set sets the member with the given key, in place if the key exists
// or at the end of the object otherwise.
//
// It panics if the value is not an object.
func (v *Value) Set(key string, value *Value) {
	if v.Kind() != KindObject {
		panic("cannot set member on " + v.Kind().String())
	}
	if value == nil {
		value = Null()
	}

	for i := range v.members {
		if v.members[i].Key == key {
			v.members[i].Value = value

			return
		}
	}
	v.members = append(v.members, Member{Key: key, Value: value})
}

// Append appends items to an array.
// It returns a [KindError] if the value is not an array.
func (v *Value) Append(items ...*Value) error {
	if v.Kind() != KindArray {
		return &KindError{Op: "append", Want: KindArray, Got: v.Kind()}
	}

	for _, item := range items {
		if item == nil {
			item = Null()
		}
		v.items = append(v.items, item)
	}

	return nil
}

// Clone returns a deep copy of the value.
func (v *Value) Clone() *Value {
	if v == nil {
		return Null()
	}

	clone := &Value{kind: v.kind, boolean: v.boolean, text: v.text}
	switch v.kind {
	case KindArray:
		clone.items = make([]*Value, len(v.items))
		for i, item := range v.items {
			clone.items[i] = item.Clone()
		}
	case KindObject:
		clone.members = make([]Member, len(v.members))
		for i, member := range v.members {
			clone.members[i] = Member{Key: member.Key, Value: member.Value.Clone()}
		}
	default:
	}

	return clone
}

// Equal reports whether v and other hold the same JSON value.
// Object member order is not significant and numbers are compared by literal.
func (v *Value) Equal(other *Value) bool { //nolint:cyclop
	if v.Kind() != other.Kind() {
		return false
	}

	switch v.Kind() {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber, KindString:
		return v.text == other.text
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}

		return true
	case KindObject:
		if len(v.members) != len(other.members) {
			return false
		}
		others := make(map[string]*Value, len(other.members))
		for _, member := range other.members {
			others[member.Key] = member.Value
		}
		for _, member := range v.members {
			value, ok := others[member.Key]
			if !ok || !member.Value.Equal(value) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func (v *Value) String() string {
	bytes, err := v.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}

	return string(bytes)
}

func isNumber(text string) bool {
	if text == "" {
		return false
	}
	c := text[0]

	return c == '-' || (c >= '0' && c <= '9')
}
