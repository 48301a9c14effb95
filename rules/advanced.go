package rules

import (
	"math"
	"net"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/validity"
)

var (
	// semverRegexp is the semver.org 2.0.0 grammar, without a leading v.
	semverRegexp = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`)
	// domainRegexp requires at least one label plus a two-letter-or-longer
	// TLD, with RFC 1035 label shapes.
	domainRegexp = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)
)

// PasswordPolicy configures the Password rule. A zero MinLength disables
// the length requirement.
type PasswordPolicy struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireDigit   bool
	RequireSpecial bool
}

// Password enforces character-class complexity on top of a minimum length.
func Password(policy PasswordPolicy) validity.Rule {
	return validity.RuleFunc(func(value any) error {
		s, ok := str(value)
		if !ok {
			return validity.NewTypeError("a string", value)
		}
		if policy.MinLength > 0 && utf8.RuneCountInString(s) < policy.MinLength {
			return validity.NewErrorf("must be at least %d characters long", policy.MinLength)
		}
		var upper, lower, digit, special bool
		for _, r := range s {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			case unicode.IsPunct(r) || unicode.IsSymbol(r):
				special = true
			}
		}
		switch {
		case policy.RequireUpper && !upper:
			return validity.NewError("must contain an uppercase letter")
		case policy.RequireLower && !lower:
			return validity.NewError("must contain a lowercase letter")
		case policy.RequireDigit && !digit:
			return validity.NewError("must contain a digit")
		case policy.RequireSpecial && !special:
			return validity.NewError("must contain a special character")
		}
		return nil
	})
}

// CreditCard checks card numbers with the Luhn algorithm. Spaces and
// dashes are ignored.
func CreditCard() validity.Rule {
	return validity.RuleFunc(func(value any) error {
		s, ok := str(value)
		if !ok {
			return validity.NewTypeError("a string", value)
		}
		digits := strings.NewReplacer(" ", "", "-", "").Replace(s)
		if len(digits) < 13 || len(digits) > 19 {
			return validity.NewError("must be a valid card number")
		}
		sum := 0
		double := false
		for i := len(digits) - 1; i >= 0; i-- {
			c := digits[i]
			if c < '0' || c > '9' {
				return validity.NewError("must be a valid card number")
			}
			d := int(c - '0')
			if double {
				d *= 2
				if d > 9 {
					d -= 9
				}
			}
			sum += d
			double = !double
		}
		if sum%10 != 0 {
			return validity.NewError("must be a valid card number")
		}
		return nil
	})
}

// SemVer validates strict semantic versions such as 1.2.3-alpha.1+build5.
func SemVer() validity.Rule {
	return validity.RuleFunc(func(value any) error {
		s, ok := str(value)
		if !ok {
			return validity.NewTypeError("a string", value)
		}
		if !semverRegexp.MatchString(s) {
			return validity.NewError("must be a valid semantic version")
		}
		return nil
	})
}

// Domain validates fully qualified domain names such as api.example.com.
func Domain() validity.Rule {
	return validity.RuleFunc(func(value any) error {
		s, ok := str(value)
		if !ok {
			return validity.NewTypeError("a string", value)
		}
		if len(s) > 253 || !domainRegexp.MatchString(s) {
			return validity.NewError("must be a valid domain name")
		}
		return nil
	})
}

// Port accepts integer values in the port range 1-65535.
func Port() validity.Rule {
	return validity.RuleFunc(func(value any) error {
		n, ok := num(value)
		if !ok {
			return validity.NewTypeError("a number", value)
		}
		if n != math.Trunc(n) || n < 1 || n > 65535 {
			return validity.NewError("must be a port between 1 and 65535")
		}
		return nil
	})
}

// IP accepts any IPv4 or IPv6 address.
func IP() validity.Rule {
	return ipRule(nil, "must be a valid IP address")
}

// IPv4 accepts dotted-quad IPv4 addresses only.
func IPv4() validity.Rule {
	return ipRule(func(ip net.IP) bool { return ip.To4() != nil }, "must be a valid IPv4 address")
}

// IPv6 accepts IPv6 addresses only.
func IPv6() validity.Rule {
	return ipRule(func(ip net.IP) bool { return ip.To4() == nil }, "must be a valid IPv6 address")
}

func ipRule(accept func(net.IP) bool, message string) validity.Rule {
	return validity.RuleFunc(func(value any) error {
		s, ok := str(value)
		if !ok {
			return validity.NewTypeError("a string", value)
		}
		ip := net.ParseIP(s)
		if ip == nil || (accept != nil && !accept(ip)) {
			return validity.NewError(message)
		}
		return nil
	})
}

// Match requires the string to match re. The caller compiles the pattern,
// keeping pattern errors at construction time.
func Match(re *regexp.Regexp) validity.Rule {
	if re == nil {
		panic("rules: Match requires a compiled pattern")
	}
	return validity.RuleFunc(func(value any) error {
		s, ok := str(value)
		if !ok {
			return validity.NewTypeError("a string", value)
		}
		if !re.MatchString(s) {
			return validity.NewErrorf("must match pattern %s", re.String())
		}
		return nil
	})
}
