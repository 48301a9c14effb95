package rules

import (
	"math"

	"github.com/dmitrymomot/validity"
)

// Numeric is the constraint satisfied by every built-in Go number type.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Min requires a numeric value of at least bound. Any numeric kind is
// accepted; comparison happens in float64.
func Min[T Numeric](bound T) validity.Rule {
	b := float64(bound)
	return validity.RuleFunc(func(value any) error {
		n, ok := num(value)
		if !ok {
			return validity.NewTypeError("a number", value)
		}
		if n < b {
			return validity.NewErrorf("must be at least %v", bound)
		}
		return nil
	})
}

// Max requires a numeric value of at most bound.
func Max[T Numeric](bound T) validity.Rule {
	b := float64(bound)
	return validity.RuleFunc(func(value any) error {
		n, ok := num(value)
		if !ok {
			return validity.NewTypeError("a number", value)
		}
		if n > b {
			return validity.NewErrorf("must be at most %v", bound)
		}
		return nil
	})
}

// Range requires min <= value <= max.
func Range[T Numeric](min, max T) validity.Rule {
	lo, hi := float64(min), float64(max)
	return validity.RuleFunc(func(value any) error {
		n, ok := num(value)
		if !ok {
			return validity.NewTypeError("a number", value)
		}
		if n < lo || n > hi {
			return validity.NewErrorf("must be between %v and %v", min, max)
		}
		return nil
	})
}

// Positive requires a value strictly greater than zero.
func Positive() validity.Rule {
	return validity.RuleFunc(func(value any) error {
		n, ok := num(value)
		if !ok {
			return validity.NewTypeError("a number", value)
		}
		if n <= 0 {
			return validity.NewError("must be positive")
		}
		return nil
	})
}

// Negative requires a value strictly less than zero.
func Negative() validity.Rule {
	return validity.RuleFunc(func(value any) error {
		n, ok := num(value)
		if !ok {
			return validity.NewTypeError("a number", value)
		}
		if n >= 0 {
			return validity.NewError("must be negative")
		}
		return nil
	})
}

// DivisibleBy requires an integer value evenly divisible by divisor. A zero
// divisor fails every value at validation time.
func DivisibleBy(divisor int64) validity.Rule {
	return validity.RuleFunc(func(value any) error {
		n, ok := num(value)
		if !ok {
			return validity.NewTypeError("a number", value)
		}
		if n != math.Trunc(n) {
			return validity.NewError("must be an integer")
		}
		if divisor == 0 {
			return validity.NewError("divisor must not be zero")
		}
		if int64(n)%divisor != 0 {
			return validity.NewErrorf("must be divisible by %d", divisor)
		}
		return nil
	})
}
