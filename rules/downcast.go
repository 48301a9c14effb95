package rules

import (
	"reflect"

	"github.com/dmitrymomot/validity"
)

// str downcasts an erased value to a string, following pointers and named
// string types.
func str(value any) (string, bool) {
	value = validity.Indirect(value)
	if value == nil {
		return "", false
	}
	if s, ok := value.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// num downcasts any numeric kind to float64.
func num(value any) (float64, bool) {
	value = validity.Indirect(value)
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// size extracts the element count of a sequence or mapping. A nil value
// counts as zero elements.
func size(value any) (int, bool) {
	value = validity.Indirect(value)
	if value == nil {
		return 0, true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}
