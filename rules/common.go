package rules

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/validity"
)

// phoneRegexp matches E.164 numbers: optional +, no leading zero, at most
// fifteen digits.
var phoneRegexp = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// Required fails absent values: nil, whitespace-only strings, empty
// sequences and mappings, nil pointers. Numeric zero and false count as
// present.
func Required() validity.Rule {
	return validity.RuleFunc(func(value any) error {
		if validity.IsEmpty(value) {
			return validity.NewError("is required")
		}
		return nil
	})
}

// Length bounds the rune count of a string. A zero bound disables that
// side, so Length(3, 0) sets only a minimum.
func Length(min, max int) validity.Rule {
	return validity.RuleFunc(func(value any) error {
		s, ok := str(value)
		if !ok {
			return validity.NewTypeError("a string", value)
		}
		n := utf8.RuneCountInString(s)
		if min > 0 && n < min {
			return validity.NewErrorf("must be at least %d characters long", min)
		}
		if max > 0 && n > max {
			return validity.NewErrorf("must be at most %d characters long", max)
		}
		return nil
	})
}

// OneOf passes values equal to one of the allowed options.
func OneOf[T comparable](options ...T) validity.Rule {
	opts := slices.Clone(options)
	return validity.RuleFunc(func(value any) error {
		v, ok := validity.Indirect(value).(T)
		if !ok {
			return validity.NewTypeError(fmt.Sprintf("of type %T", *new(T)), value)
		}
		if slices.Contains(opts, v) {
			return nil
		}
		return validity.NewErrorf("must be one of %v", opts)
	})
}

// Email checks address syntax with net/mail plus the structural constraints
// ParseAddress alone lets through: display names, missing domain dot,
// consecutive dots.
func Email() validity.Rule {
	return validity.RuleFunc(func(value any) error {
		s, ok := str(value)
		if !ok {
			return validity.NewTypeError("a string", value)
		}
		addr, err := mail.ParseAddress(s)
		if err != nil || addr.Address != s {
			return validity.NewError("must be a valid email address")
		}
		domain := s[strings.LastIndex(s, "@")+1:]
		if !strings.Contains(domain, ".") ||
			strings.HasPrefix(domain, ".") ||
			strings.HasSuffix(domain, ".") ||
			strings.Contains(s, "..") {
			return validity.NewError("must be a valid email address")
		}
		return nil
	})
}

// URL checks absolute URL syntax. Schemes restricts the accepted schemes;
// none means any.
func URL(schemes ...string) validity.Rule {
	allowed := slices.Clone(schemes)
	return validity.RuleFunc(func(value any) error {
		s, ok := str(value)
		if !ok {
			return validity.NewTypeError("a string", value)
		}
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return validity.NewError("must be a valid URL")
		}
		if len(allowed) > 0 && !slices.Contains(allowed, u.Scheme) {
			return validity.NewErrorf("must use one of the schemes %s", strings.Join(allowed, ", "))
		}
		return nil
	})
}

// JSON passes strings and byte slices containing syntactically valid JSON.
func JSON() validity.Rule {
	return validity.RuleFunc(func(value any) error {
		var data []byte
		switch v := validity.Indirect(value).(type) {
		case string:
			data = []byte(v)
		case []byte:
			data = v
		default:
			return validity.NewTypeError("a string", value)
		}
		if !json.Valid(data) {
			return validity.NewError("must be valid JSON")
		}
		return nil
	})
}

// UUID validates canonical RFC 4122 form. The cheap structural checks
// reject early before uuid.Parse does the full work.
func UUID() validity.Rule {
	return validity.RuleFunc(func(value any) error {
		s, ok := str(value)
		if !ok {
			return validity.NewTypeError("a string", value)
		}
		if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
			return validity.NewError("must be a valid UUID")
		}
		if _, err := uuid.Parse(s); err != nil {
			return validity.NewError("must be a valid UUID")
		}
		return nil
	})
}

// DateOption adjusts a Date rule.
type DateOption func(*dateRule)

// DateAfter requires the parsed date to fall after t.
func DateAfter(t time.Time) DateOption {
	return func(r *dateRule) { r.after = &t }
}

// DateBefore requires the parsed date to fall before t.
func DateBefore(t time.Time) DateOption {
	return func(r *dateRule) { r.before = &t }
}

// Date parses strings with the given time layout and optionally bounds the
// result. A time.Time value skips parsing and only faces the bounds.
func Date(layout string, opts ...DateOption) validity.Rule {
	r := &dateRule{layout: layout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type dateRule struct {
	layout string
	after  *time.Time
	before *time.Time
}

func (r *dateRule) Validate(value any) error {
	if t, ok := validity.Indirect(value).(time.Time); ok {
		return r.check(t)
	}
	s, ok := str(value)
	if !ok {
		return validity.NewTypeError("a string", value)
	}
	t, err := time.Parse(r.layout, s)
	if err != nil {
		return validity.NewErrorf("must be a date in %s format", r.layout)
	}
	return r.check(t)
}

func (r *dateRule) check(t time.Time) error {
	if r.after != nil && !t.After(*r.after) {
		return validity.NewErrorf("must be after %s", r.after.Format(r.layout))
	}
	if r.before != nil && !t.Before(*r.before) {
		return validity.NewErrorf("must be before %s", r.before.Format(r.layout))
	}
	return nil
}

// Phone validates E.164 phone numbers such as +14155552671.
func Phone() validity.Rule {
	return validity.RuleFunc(func(value any) error {
		s, ok := str(value)
		if !ok {
			return validity.NewTypeError("a string", value)
		}
		if !phoneRegexp.MatchString(s) {
			return validity.NewError("must be a valid phone number")
		}
		return nil
	})
}
