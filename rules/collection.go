package rules

import (
	"reflect"

	"github.com/dmitrymomot/validity"
)

// MinSize requires a sequence or mapping with at least n elements. A nil
// collection has zero elements.
func MinSize(n int) validity.Rule {
	return validity.RuleFunc(func(value any) error {
		count, ok := size(value)
		if !ok {
			return validity.NewTypeError("a collection", value)
		}
		if count < n {
			return validity.NewErrorf("must contain at least %d items", n)
		}
		return nil
	})
}

// MaxSize requires a sequence or mapping with at most n elements.
func MaxSize(n int) validity.Rule {
	return validity.RuleFunc(func(value any) error {
		count, ok := size(value)
		if !ok {
			return validity.NewTypeError("a collection", value)
		}
		if count > n {
			return validity.NewErrorf("must contain at most %d items", n)
		}
		return nil
	})
}

// ExactSize requires a sequence or mapping with exactly n elements.
func ExactSize(n int) validity.Rule {
	return validity.RuleFunc(func(value any) error {
		count, ok := size(value)
		if !ok {
			return validity.NewTypeError("a collection", value)
		}
		if count != n {
			return validity.NewErrorf("must contain exactly %d items", n)
		}
		return nil
	})
}

// Unique fails a sequence containing duplicate elements. Elements that are
// not comparable at runtime cannot be checked and fail as a type mismatch.
func Unique() validity.Rule {
	return validity.RuleFunc(func(value any) error {
		value = validity.Indirect(value)
		if value == nil {
			return nil
		}
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return validity.NewTypeError("a sequence", value)
		}
		seen := make(map[any]struct{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev := rv.Index(i)
			if !ev.Comparable() {
				return validity.NewTypeError("a sequence of comparable values", value)
			}
			el := ev.Interface()
			if _, dup := seen[el]; dup {
				return validity.NewErrorf("must not contain duplicates (%v)", el)
			}
			seen[el] = struct{}{}
		}
		return nil
	})
}

// Contains requires the sequence to include element.
func Contains[T comparable](element T) validity.Rule {
	return validity.RuleFunc(func(value any) error {
		value = validity.Indirect(value)
		if value == nil {
			return validity.NewErrorf("must contain %v", element)
		}
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return validity.NewTypeError("a sequence", value)
		}
		for i := 0; i < rv.Len(); i++ {
			if el, ok := rv.Index(i).Interface().(T); ok && el == element {
				return nil
			}
		}
		return validity.NewErrorf("must contain %v", element)
	})
}
