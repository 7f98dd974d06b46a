// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package assert

import (
	"errors"
	"reflect"
	"testing"
)

func Equal[T any](tb testing.TB, expected, actual T) {
	tb.Helper()

	if !reflect.DeepEqual(expected, actual) {
		tb.Errorf("got %#v, want %#v", actual, expected)
	}
}

func NoError(tb testing.TB, err error) {
	tb.Helper()

	if err != nil {
		tb.Errorf("got error %q, want none", err)
	}
}

func EqualError(tb testing.TB, err error, message string) {
	tb.Helper()

	switch {
	case err == nil:
		tb.Errorf("got no error, want %q", message)
	case err.Error() != message:
		tb.Errorf("got error %q, want %q", err.Error(), message)
	}
}

func ErrorIs(tb testing.TB, err, target error) {
	tb.Helper()

	if !errors.Is(err, target) {
		tb.Errorf("got error %v, want one matching %v", err, target)
	}
}

func True(tb testing.TB, value bool) {
	tb.Helper()

	if !value {
		tb.Error("got false, want true")
	}
}
