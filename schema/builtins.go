package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrymomot/validity"
	"github.com/dmitrymomot/validity/rules"
)

// registerBuiltins wires the stock rule names. Stateless rules share a
// single instance across every compiled source.
func (c *Compiler) registerBuiltins() {
	c.Register("required", plain(rules.Required()))
	c.Register("email", plain(rules.Email()))
	c.Register("uuid", plain(rules.UUID()))
	c.Register("json", plain(rules.JSON()))
	c.Register("phone", plain(rules.Phone()))
	c.Register("domain", plain(rules.Domain()))
	c.Register("semver", plain(rules.SemVer()))
	c.Register("port", plain(rules.Port()))
	c.Register("creditcard", plain(rules.CreditCard()))
	c.Register("positive", plain(rules.Positive()))
	c.Register("negative", plain(rules.Negative()))
	c.Register("unique", plain(rules.Unique()))
	c.Register("ip", plain(rules.IP()))
	c.Register("ipv4", plain(rules.IPv4()))
	c.Register("ipv6", plain(rules.IPv6()))

	c.Register("url", func(args Args, _ validity.Rule) (validity.Rule, error) {
		return rules.URL(args.Strings()...), nil
	})
	c.Register("min", func(args Args, _ validity.Rule) (validity.Rule, error) {
		n, err := singleNumber(args)
		if err != nil {
			return nil, err
		}
		return minRule(n), nil
	})
	c.Register("max", func(args Args, _ validity.Rule) (validity.Rule, error) {
		n, err := singleNumber(args)
		if err != nil {
			return nil, err
		}
		return maxRule(n), nil
	})
	c.Register("size", func(args Args, _ validity.Rule) (validity.Rule, error) {
		n, err := singleNumber(args)
		if err != nil {
			return nil, err
		}
		return sizeRule(n), nil
	})
	c.Register("length", func(args Args, _ validity.Rule) (validity.Rule, error) {
		if err := wantArgs(args, 2); err != nil {
			return nil, err
		}
		min, err := args.Int(0)
		if err != nil {
			return nil, err
		}
		max, err := args.Int(1)
		if err != nil {
			return nil, err
		}
		return rules.Length(min, max), nil
	})
	c.Register("between", func(args Args, _ validity.Rule) (validity.Rule, error) {
		if err := wantArgs(args, 2); err != nil {
			return nil, err
		}
		lo, err := args.Float(0)
		if err != nil {
			return nil, err
		}
		hi, err := args.Float(1)
		if err != nil {
			return nil, err
		}
		return rules.Range(lo, hi), nil
	})
	c.Register("in", func(args Args, _ validity.Rule) (validity.Rule, error) {
		if args.Len() == 0 {
			return nil, fmt.Errorf("%w: in needs at least one option", ErrInvalidArgs)
		}
		return inRule(args.Strings()), nil
	})
	c.Register("contains", func(args Args, _ validity.Rule) (validity.Rule, error) {
		if err := wantArgs(args, 1); err != nil {
			return nil, err
		}
		want, err := args.String(0)
		if err != nil {
			return nil, err
		}
		return containsRule(want), nil
	})
	c.Register("date", func(args Args, _ validity.Rule) (validity.Rule, error) {
		if args.Len() > 1 {
			return nil, fmt.Errorf("%w: date takes at most one layout argument", ErrInvalidArgs)
		}
		layout := time.DateOnly
		if args.Len() == 1 {
			layout, _ = args.String(0)
		}
		return rules.Date(layout), nil
	})
	c.Register("match", func(args Args, _ validity.Rule) (validity.Rule, error) {
		if err := wantArgs(args, 1); err != nil {
			return nil, err
		}
		src, err := args.String(0)
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("%w: bad pattern %q: %v", ErrInvalidArgs, src, err)
		}
		return rules.Match(re), nil
	})
	c.Register("divisible", func(args Args, _ validity.Rule) (validity.Rule, error) {
		if err := wantArgs(args, 1); err != nil {
			return nil, err
		}
		n, err := args.Int(0)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("%w: divisor must not be zero", ErrInvalidArgs)
		}
		return rules.DivisibleBy(int64(n)), nil
	})
	c.Register("password", func(args Args, _ validity.Rule) (validity.Rule, error) {
		if args.Len() > 1 {
			return nil, fmt.Errorf("%w: password takes at most one length argument", ErrInvalidArgs)
		}
		policy := rules.PasswordPolicy{
			MinLength:    8,
			RequireUpper: true,
			RequireLower: true,
			RequireDigit: true,
		}
		if args.Len() == 1 {
			n, err := args.Int(0)
			if err != nil {
				return nil, err
			}
			policy.MinLength = n
		}
		return rules.Password(policy), nil
	})

	c.Register("each", func(args Args, inner validity.Rule) (validity.Rule, error) {
		if args.Len() != 0 {
			return nil, fmt.Errorf("%w: each takes no arguments", ErrInvalidArgs)
		}
		if inner == nil {
			return nil, fmt.Errorf("%w: each needs an inner ruleset, e.g. each(required;email)", ErrInvalidArgs)
		}
		return validity.Each(inner), nil
	})
	c.Register("map", func(args Args, inner validity.Rule) (validity.Rule, error) {
		if args.Len() != 0 {
			return nil, fmt.Errorf("%w: map takes no arguments", ErrInvalidArgs)
		}
		if inner == nil {
			return nil, fmt.Errorf("%w: map needs an inner ruleset for its values", ErrInvalidArgs)
		}
		return validity.Map(nil, inner), nil
	})
	c.Register("optional", func(args Args, inner validity.Rule) (validity.Rule, error) {
		// Bare "optional" is consumed as a marker before constructors run.
		if args.Len() != 0 || inner == nil {
			return nil, fmt.Errorf("%w: optional takes an inner ruleset only", ErrInvalidArgs)
		}
		return validity.Optional(inner), nil
	})

	c.Register("required_with", func(args Args, _ validity.Rule) (validity.Rule, error) {
		if args.Len() == 0 {
			return nil, fmt.Errorf("%w: required_with needs at least one field name", ErrInvalidArgs)
		}
		others := args.Strings()
		if len(others) == 1 {
			return validity.RequiredWith(others[0]), nil
		}
		conds := make([]validity.Condition, len(others))
		for i, other := range others {
			conds[i] = siblingSet(other)
		}
		return validity.RequiredIfAny(conds...), nil
	})
	c.Register("required_without", func(args Args, _ validity.Rule) (validity.Rule, error) {
		if args.Len() == 0 {
			return nil, fmt.Errorf("%w: required_without needs at least one field name", ErrInvalidArgs)
		}
		others := args.Strings()
		if len(others) == 1 {
			return validity.RequiredWithout(others[0]), nil
		}
		conds := make([]validity.Condition, len(others))
		for i, other := range others {
			conds[i] = siblingUnset(other)
		}
		return validity.RequiredIfAny(conds...), nil
	})
	c.Register("required_if", func(args Args, _ validity.Rule) (validity.Rule, error) {
		if err := wantArgs(args, 2); err != nil {
			return nil, err
		}
		field, err := args.String(0)
		if err != nil {
			return nil, err
		}
		want, err := args.String(1)
		if err != nil {
			return nil, err
		}
		return validity.RequiredIf(siblingEquals(field, want)), nil
	})
}

func plain(rule validity.Rule) Constructor {
	return func(args Args, _ validity.Rule) (validity.Rule, error) {
		if args.Len() != 0 {
			return nil, fmt.Errorf("%w: takes no arguments", ErrInvalidArgs)
		}
		return rule, nil
	}
}

func wantArgs(args Args, n int) error {
	if args.Len() != n {
		return fmt.Errorf("%w: want %d arguments, got %d", ErrInvalidArgs, n, args.Len())
	}
	return nil
}

func singleNumber(args Args) (float64, error) {
	if err := wantArgs(args, 1); err != nil {
		return 0, err
	}
	return args.Float(0)
}

// Shape-directed dispatch for min, max and size. The same source works for
// strings, numbers and collections because the comparison is picked per
// value at validation time.

type shape int

const (
	shapeText shape = iota
	shapeNumber
	shapeCollection
)

func shapeOf(value any) shape {
	switch v := reflect.ValueOf(validity.Indirect(value)); v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return shapeNumber
	case reflect.Slice, reflect.Array, reflect.Map:
		return shapeCollection
	default:
		return shapeText
	}
}

func minRule(n float64) validity.Rule {
	number := rules.Min(n)
	count := rules.MinSize(int(n))
	length := rules.Length(int(n), 0)
	return validity.RuleFunc(func(value any) error {
		switch shapeOf(value) {
		case shapeNumber:
			return number.Validate(value)
		case shapeCollection:
			return count.Validate(value)
		default:
			return length.Validate(value)
		}
	})
}

func maxRule(n float64) validity.Rule {
	number := rules.Max(n)
	count := rules.MaxSize(int(n))
	length := rules.Length(0, int(n))
	return validity.RuleFunc(func(value any) error {
		switch shapeOf(value) {
		case shapeNumber:
			return number.Validate(value)
		case shapeCollection:
			return count.Validate(value)
		default:
			return length.Validate(value)
		}
	})
}

func sizeRule(n float64) validity.Rule {
	count := rules.ExactSize(int(n))
	length := rules.Length(int(n), int(n))
	return validity.RuleFunc(func(value any) error {
		switch shapeOf(value) {
		case shapeNumber:
			if numberOf(value) != n {
				return validity.NewErrorf("must be %v", n)
			}
			return nil
		case shapeCollection:
			return count.Validate(value)
		default:
			return length.Validate(value)
		}
	})
}

// numberOf is only called after shapeOf reported a number.
func numberOf(value any) float64 {
	switch v := reflect.ValueOf(validity.Indirect(value)); v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

// inRule compares through fmt.Sprint so the same source accepts both the
// string "2" and the number 2 that JSON decoding produces.
func inRule(allowed []string) validity.Rule {
	return validity.RuleFunc(func(value any) error {
		got := fmt.Sprint(validity.Indirect(value))
		for _, want := range allowed {
			if got == want {
				return nil
			}
		}
		return validity.NewErrorf("must be one of %s", strings.Join(allowed, ", "))
	})
}

// containsRule checks substrings on text and element membership on
// sequences, again comparing elements through fmt.Sprint.
func containsRule(want string) validity.Rule {
	return validity.RuleFunc(func(value any) error {
		value = validity.Indirect(value)
		if s, ok := value.(string); ok {
			if strings.Contains(s, want) {
				return nil
			}
			return validity.NewErrorf("must contain %q", want)
		}
		v := reflect.ValueOf(value)
		switch v.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < v.Len(); i++ {
				if fmt.Sprint(v.Index(i).Interface()) == want {
					return nil
				}
			}
			return validity.NewErrorf("must contain %q", want)
		default:
			return validity.NewTypeError("a string or sequence", value)
		}
	})
}

func siblingEquals(field, want string) validity.Condition {
	return func(siblings *validity.Fields) bool {
		value, ok := siblings.Get(field)
		return ok && fmt.Sprint(validity.Indirect(value)) == want
	}
}

func siblingSet(field string) validity.Condition {
	return func(siblings *validity.Fields) bool {
		value, ok := siblings.Get(field)
		return ok && !validity.IsEmpty(value)
	}
}

func siblingUnset(field string) validity.Condition {
	present := siblingSet(field)
	return func(siblings *validity.Fields) bool { return !present(siblings) }
}
