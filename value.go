package validity

import (
	"reflect"
	"strings"
)

// Indirect follows pointers and interfaces down to the underlying value. A
// nil pointer or nil interface yields nil, which the engine treats as the
// absent value.
func Indirect(value any) any {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

// IsEmpty reports whether a value counts as absent: nil, a whitespace-only
// string, a zero-length sequence or mapping, or a nil pointer. Numeric zero
// and false are present values.
func IsEmpty(value any) bool {
	value = Indirect(value)
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

// NewTypeError builds the single failure a rule returns when the erased
// value cannot be interpreted as the shape it expects. Type mismatches stay
// inside the ordinary validation contract instead of panicking.
func NewTypeError(expected string, value any) *ValidationError {
	value = Indirect(value)
	if value == nil {
		return NewErrorf("must be %s", expected)
	}
	return NewErrorf("must be %s, got %T", expected, value)
}
