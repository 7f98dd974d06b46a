// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package document

// Insert appends value to the array held by the first member named key,
// searching doc and its nested objects depth first in member order.
// It returns the number of arrays the value has been appended to.
//
// Only objects nested directly in objects are searched: arrays and scalars
// are never descended into. Once an object has a member named key,
// its other members are not visited. If no object has the key,
// doc is left unchanged and Insert returns 0 without error.
//
// It returns a [KindError] if doc is not an object,
// or if the member found holds a value other than an array.
// In both cases doc is left unchanged.
func Insert(doc, value *Value, key string, opts ...InsertOption) (int, error) {
	if doc.Kind() != KindObject {
		return 0, &KindError{Op: "insert", Want: KindObject, Got: doc.Kind()}
	}

	option := &insertOptions{}
	for _, opt := range opts {
		opt(option)
	}
	if value == nil {
		value = Null()
	}

	inserter := inserter{key: key, value: value, everyBranch: option.everyBranch}
	if option.everyBranch {
		// Validate first so that a kind error does not leave a partial insertion.
		if err := inserter.check(doc, ""); err != nil {
			return 0, err
		}
	}

	return inserter.insert(doc, "")
}

// EveryBranch keeps searching sibling members after an insertion,
// so the first match in every branch of the document receives a copy of the value.
func EveryBranch() InsertOption {
	return func(options *insertOptions) {
		options.everyBranch = true
	}
}

type (
	// InsertOption configures the behavior of [Insert].
	InsertOption  func(*insertOptions)
	insertOptions struct {
		everyBranch bool
	}
)

type inserter struct {
	key         string
	value       *Value
	everyBranch bool
	inserted    int
}

func (i *inserter) insert(object *Value, path string) (int, error) {
	if target, ok := object.Get(i.key); ok {
		if target.Kind() != KindArray {
			return i.inserted, &KindError{Op: "append", Path: pointer(path, i.key), Want: KindArray, Got: target.Kind()}
		}

		value := i.value
		if i.inserted > 0 {
			value = value.Clone()
		}
		target.items = append(target.items, value)
		i.inserted++

		return i.inserted, nil
	}

	for _, member := range object.members {
		if member.Value.Kind() != KindObject {
			continue
		}

		if _, err := i.insert(member.Value, pointer(path, member.Key)); err != nil {
			return i.inserted, err
		}
		if i.inserted > 0 && !i.everyBranch {
			break
		}
	}

	return i.inserted, nil
}

// check walks the document the same way insert does and reports
// the first kind error without mutating anything.
func (i *inserter) check(object *Value, path string) error {
	if target, ok := object.Get(i.key); ok {
		if target.Kind() != KindArray {
			return &KindError{Op: "append", Path: pointer(path, i.key), Want: KindArray, Got: target.Kind()}
		}

		return nil
	}

	for _, member := range object.members {
		if member.Value.Kind() != KindObject {
			continue
		}
		if err := i.check(member.Value, pointer(path, member.Key)); err != nil {
			return err
		}
	}

	return nil
}
