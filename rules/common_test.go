package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validity/rules"
)

func TestRequired(t *testing.T) {
	rule := rules.Required()

	t.Run("fails absent values", func(t *testing.T) {
		for name, value := range map[string]any{
			"nil":               nil,
			"empty string":      "",
			"whitespace string": "   \t\n",
			"empty slice":       []string{},
			"empty map":         map[string]int{},
			"nil pointer":       (*string)(nil),
		} {
			err := rule.Validate(value)
			require.Error(t, err, name)
			assert.Equal(t, "is required", err.Error(), name)
		}
	})

	t.Run("passes present values", func(t *testing.T) {
		for name, value := range map[string]any{
			"string":       "x",
			"numeric zero": 0,
			"false":        false,
			"slice":        []int{1},
			"pointer":      ptr("x"),
		} {
			assert.NoError(t, rule.Validate(value), name)
		}
	})
}

func TestLength(t *testing.T) {
	rule := rules.Length(3, 20)

	t.Run("rejects strings below the minimum", func(t *testing.T) {
		err := rule.Validate("ab")
		require.Error(t, err)
		assert.Equal(t, "must be at least 3 characters long", err.Error())
	})

	t.Run("accepts strings within bounds", func(t *testing.T) {
		assert.NoError(t, rule.Validate("johndoe"))
		assert.NoError(t, rule.Validate("abc"))
		assert.NoError(t, rule.Validate("aaaaaaaaaaaaaaaaaaaa"))
	})

	t.Run("rejects strings above the maximum", func(t *testing.T) {
		err := rule.Validate("aaaaaaaaaaaaaaaaaaaaa")
		require.Error(t, err)
		assert.Equal(t, "must be at most 20 characters long", err.Error())
	})

	t.Run("counts runes, not bytes", func(t *testing.T) {
		assert.NoError(t, rules.Length(5, 5).Validate("héllo"))
	})

	t.Run("zero bounds are disabled", func(t *testing.T) {
		assert.NoError(t, rules.Length(0, 5).Validate(""))
		assert.NoError(t, rules.Length(2, 0).Validate("a very long string with no upper bound"))
	})

	t.Run("non-strings fail as a type mismatch", func(t *testing.T) {
		err := rule.Validate(42)
		require.Error(t, err)
		assert.Equal(t, "must be a string, got int", err.Error())
	})

	t.Run("follows pointers", func(t *testing.T) {
		assert.NoError(t, rule.Validate(ptr("johndoe")))
	})
}

func TestOneOf(t *testing.T) {
	rule := rules.OneOf("admin", "editor", "viewer")

	t.Run("accepts listed options", func(t *testing.T) {
		assert.NoError(t, rule.Validate("admin"))
		assert.NoError(t, rule.Validate("viewer"))
	})

	t.Run("rejects everything else", func(t *testing.T) {
		err := rule.Validate("owner")
		require.Error(t, err)
		assert.Equal(t, "must be one of [admin editor viewer]", err.Error())
	})

	t.Run("wrong types fail as a type mismatch", func(t *testing.T) {
		err := rule.Validate(42)
		require.Error(t, err)
		assert.Equal(t, "must be of type string, got int", err.Error())
	})

	t.Run("works with numbers", func(t *testing.T) {
		assert.NoError(t, rules.OneOf(1, 2, 3).Validate(2))
		assert.Error(t, rules.OneOf(1, 2, 3).Validate(4))
	})
}

func TestEmail(t *testing.T) {
	rule := rules.Email()

	t.Run("accepts plain addresses", func(t *testing.T) {
		for _, addr := range []string{
			"john@example.com",
			"user.name+tag@sub.example.co.uk",
			"a@b.io",
		} {
			assert.NoError(t, rule.Validate(addr), addr)
		}
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, addr := range []string{
			"",
			"not-an-email",
			"missing@domain",
			"@example.com",
			"a@.com",
			"a@example.com.",
			"a..b@example.com",
			"Display Name <john@example.com>",
		} {
			err := rule.Validate(addr)
			require.Error(t, err, addr)
			assert.Equal(t, "must be a valid email address", err.Error(), addr)
		}
	})

	t.Run("non-strings fail as a type mismatch", func(t *testing.T) {
		assert.EqualError(t, rule.Validate(1), "must be a string, got int")
	})
}

func TestURL(t *testing.T) {
	t.Run("accepts absolute URLs", func(t *testing.T) {
		rule := rules.URL()
		assert.NoError(t, rule.Validate("https://example.com"))
		assert.NoError(t, rule.Validate("http://example.com/path?q=1"))
		assert.NoError(t, rule.Validate("ftp://files.example.com"))
	})

	t.Run("rejects relative and broken URLs", func(t *testing.T) {
		rule := rules.URL()
		for _, raw := range []string{"", "example.com", "/path/only", "https://", "://bad"} {
			err := rule.Validate(raw)
			require.Error(t, err, raw)
			assert.Equal(t, "must be a valid URL", err.Error(), raw)
		}
	})

	t.Run("restricts schemes when asked", func(t *testing.T) {
		rule := rules.URL("https")
		assert.NoError(t, rule.Validate("https://example.com"))

		err := rule.Validate("http://example.com")
		require.Error(t, err)
		assert.Equal(t, "must use one of the schemes https", err.Error())
	})
}

func TestJSON(t *testing.T) {
	rule := rules.JSON()

	t.Run("accepts valid documents", func(t *testing.T) {
		assert.NoError(t, rule.Validate(`{"a": 1, "b": [true, null]}`))
		assert.NoError(t, rule.Validate(`[1,2,3]`))
		assert.NoError(t, rule.Validate(`"scalar"`))
		assert.NoError(t, rule.Validate([]byte(`{"ok":true}`)))
	})

	t.Run("rejects broken documents", func(t *testing.T) {
		err := rule.Validate(`{"a": }`)
		require.Error(t, err)
		assert.Equal(t, "must be valid JSON", err.Error())
	})

	t.Run("non-text values fail as a type mismatch", func(t *testing.T) {
		assert.EqualError(t, rule.Validate(42), "must be a string, got int")
	})
}

func TestUUID(t *testing.T) {
	rule := rules.UUID()

	t.Run("accepts canonical form", func(t *testing.T) {
		assert.NoError(t, rule.Validate("f47ac10b-58cc-4372-a567-0e02b2c3d479"))
		assert.NoError(t, rule.Validate("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"f47ac10b58cc4372a5670e02b2c3d479",
			"f47ac10b-58cc-4372-a567-0e02b2c3d47",
			"zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz",
		} {
			err := rule.Validate(raw)
			require.Error(t, err, raw)
			assert.Equal(t, "must be a valid UUID", err.Error(), raw)
		}
	})
}

func TestDate(t *testing.T) {
	t.Run("parses with the configured layout", func(t *testing.T) {
		rule := rules.Date("2006-01-02")
		assert.NoError(t, rule.Validate("2024-02-29"))

		err := rule.Validate("2024-13-01")
		require.Error(t, err)
		assert.Equal(t, "must be a date in 2006-01-02 format", err.Error())
		assert.Error(t, rule.Validate("02/01/2024"))
	})

	t.Run("accepts time values directly", func(t *testing.T) {
		rule := rules.Date("2006-01-02")
		assert.NoError(t, rule.Validate(time.Now()))
	})

	t.Run("bounds with after", func(t *testing.T) {
		cutoff := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		rule := rules.Date("2006-01-02", rules.DateAfter(cutoff))

		assert.NoError(t, rule.Validate("2021-06-15"))

		err := rule.Validate("2019-06-15")
		require.Error(t, err)
		assert.Equal(t, "must be after 2020-01-01", err.Error())
		assert.Error(t, rule.Validate("2020-01-01"), "the bound itself is excluded")
	})

	t.Run("bounds with before", func(t *testing.T) {
		cutoff := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		rule := rules.Date("2006-01-02", rules.DateBefore(cutoff))

		assert.NoError(t, rule.Validate("2019-12-31"))

		err := rule.Validate("2020-06-15")
		require.Error(t, err)
		assert.Equal(t, "must be before 2020-01-01", err.Error())
	})
}

func TestPhone(t *testing.T) {
	rule := rules.Phone()

	t.Run("accepts E.164 numbers", func(t *testing.T) {
		assert.NoError(t, rule.Validate("+14155552671"))
		assert.NoError(t, rule.Validate("14155552671"))
		assert.NoError(t, rule.Validate("+442071838750"))
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"+1",
			"0123456789",
			"+1 415 555 2671",
			"phone",
			"+123456789012345678",
		} {
			err := rule.Validate(raw)
			require.Error(t, err, raw)
			assert.Equal(t, "must be a valid phone number", err.Error(), raw)
		}
	})
}

func ptr[T any](v T) *T { return &v }
