package validity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validity"
	"github.com/dmitrymomot/validity/rules"
)

func TestEach(t *testing.T) {
	t.Run("empty and nil sequences pass", func(t *testing.T) {
		rule := validity.Each(rules.Email())
		assert.NoError(t, rule.Validate([]string{}))
		assert.NoError(t, rule.Validate(nil))
		var emails []string
		assert.NoError(t, rule.Validate(emails))
	})

	t.Run("keys failures by index in sequence order", func(t *testing.T) {
		rule := validity.Each(rules.Email())
		err := rule.Validate([]string{"ok@example.com", "bad", "worse"})
		require.Error(t, err)

		verr, ok := validity.ExtractValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"1", "2"}, verr.Fields())
		assert.Equal(t, "validation failed: 1: must be a valid email address; 2: must be a valid email address", err.Error())
	})

	t.Run("accepts arrays and pointers to slices", func(t *testing.T) {
		rule := validity.Each(rules.Positive())
		assert.NoError(t, rule.Validate([2]int{1, 2}))

		values := []int{3, 4}
		assert.NoError(t, rule.Validate(&values))
	})

	t.Run("non-sequence values fail as a type mismatch", func(t *testing.T) {
		rule := validity.Each(rules.Required())
		err := rule.Validate(42)
		require.Error(t, err)
		assert.Equal(t, "must be a sequence, got int", err.Error())
	})

	t.Run("forwards the sibling lookup to inner rules", func(t *testing.T) {
		rule := validity.Each(validity.RequiredWith("strict"))
		siblings := validity.NewFields().Set("strict", true)

		err := validity.Apply(rule, []string{""}, siblings)
		require.Error(t, err)
		verr, _ := validity.ExtractValidationError(err)
		assert.Equal(t, []string{"0"}, verr.Fields())

		assert.NoError(t, validity.Apply(rule, []string{""}, validity.NewFields()))
	})

	t.Run("panics without a rule", func(t *testing.T) {
		assert.Panics(t, func() { validity.Each(nil) })
	})
}

func TestMap(t *testing.T) {
	t.Run("nil mappings pass", func(t *testing.T) {
		rule := validity.Map(nil, rules.Required())
		assert.NoError(t, rule.Validate(nil))
		var m map[string]string
		assert.NoError(t, rule.Validate(m))
	})

	t.Run("keys failures by stringified map key in sorted order", func(t *testing.T) {
		rule := validity.Map(nil, rules.Required())
		err := rule.Validate(map[int]string{10: "", 2: ""})
		require.Error(t, err)

		verr, _ := validity.ExtractValidationError(err)
		assert.Equal(t, []string{"10", "2"}, verr.Fields())
	})

	t.Run("merges key and value failures for one entry", func(t *testing.T) {
		rule := validity.Map(rules.Length(2, 0), rules.Positive())
		err := rule.Validate(map[string]int{"a": -5})
		require.Error(t, err)

		verr, _ := validity.ExtractValidationError(err)
		entry, ok := verr.Get("a")
		require.True(t, ok)
		assert.Equal(t, "must be at least 2 characters long; must be positive", entry.Message())
	})

	t.Run("keys sharing a label merge in a fixed order", func(t *testing.T) {
		typed := validity.RuleFunc(func(value any) error {
			return validity.NewErrorf("seen %T", value)
		})
		rule := validity.Map(typed, nil)

		for i := 0; i < 20; i++ {
			err := rule.Validate(map[any]any{1: "x", "1": "y"})
			require.Error(t, err)

			verr, _ := validity.ExtractValidationError(err)
			assert.Equal(t, []string{"1"}, verr.Fields())
			entry, ok := verr.Get("1")
			require.True(t, ok)
			assert.Equal(t, "seen int; seen string", entry.Message())
		}
	})

	t.Run("either side may be nil", func(t *testing.T) {
		rule := validity.Map(nil, nil)
		assert.NoError(t, rule.Validate(map[string]string{"anything": "goes"}))
	})

	t.Run("non-mapping values fail as a type mismatch", func(t *testing.T) {
		rule := validity.Map(nil, rules.Required())
		err := rule.Validate([]string{"nope"})
		require.Error(t, err)
		assert.Equal(t, "must be a mapping, got []string", err.Error())
	})
}

func TestAll(t *testing.T) {
	t.Run("stops at the first failure", func(t *testing.T) {
		second := &countingRule{err: validity.NewError("second")}
		rule := validity.All(rules.Required(), second)

		err := rule.Validate("")
		require.Error(t, err)
		assert.Equal(t, "is required", err.Error())
		assert.Equal(t, 0, second.calls)
	})

	t.Run("runs every rule for passing values", func(t *testing.T) {
		first := &countingRule{}
		second := &countingRule{}
		rule := validity.All(first, second)

		assert.NoError(t, rule.Validate("value"))
		assert.Equal(t, 1, first.calls)
		assert.Equal(t, 1, second.calls)
	})

	t.Run("no rules always passes", func(t *testing.T) {
		assert.NoError(t, validity.All().Validate(nil))
	})

	t.Run("panics on a nil member", func(t *testing.T) {
		assert.Panics(t, func() { validity.All(rules.Required(), nil) })
	})
}

func TestOptional(t *testing.T) {
	t.Run("skips absent values", func(t *testing.T) {
		inner := &countingRule{err: validity.NewError("inner failed")}
		rule := validity.Optional(inner)

		assert.NoError(t, rule.Validate(nil))
		assert.NoError(t, rule.Validate(""))
		assert.NoError(t, rule.Validate("   "))
		assert.NoError(t, rule.Validate([]string{}))
		var ptr *string
		assert.NoError(t, rule.Validate(ptr))
		assert.Equal(t, 0, inner.calls)
	})

	t.Run("validates present values", func(t *testing.T) {
		rule := validity.Optional(rules.Length(3, 20))
		assert.Error(t, rule.Validate("ab"))
		assert.NoError(t, rule.Validate("abc"))
	})

	t.Run("numeric zero is present", func(t *testing.T) {
		rule := validity.Optional(rules.Min(18))
		err := rule.Validate(0)
		require.Error(t, err)
		assert.Equal(t, "must be at least 18", err.Error())
	})
}

func TestNested(t *testing.T) {
	address := validity.New().
		Register("street", rules.Required()).
		Register("zip", validity.All(rules.Required(), rules.Length(5, 5)))

	t.Run("validates a fields value", func(t *testing.T) {
		rule := validity.Nested(address)
		err := rule.Validate(validity.NewFields().
			Set("street", "1 Main St").
			Set("zip", "123"))
		require.Error(t, err)

		verr, _ := validity.ExtractValidationError(err)
		assert.Equal(t, []string{"zip"}, verr.Fields())
	})

	t.Run("converts plain maps", func(t *testing.T) {
		rule := validity.Nested(address)
		assert.NoError(t, rule.Validate(map[string]any{
			"street": "1 Main St",
			"zip":    "12345",
		}))
	})

	t.Run("nil validates as an empty object", func(t *testing.T) {
		rule := validity.Nested(address)
		err := rule.Validate(nil)
		require.Error(t, err)

		verr, _ := validity.ExtractValidationError(err)
		assert.Equal(t, []string{"street", "zip"}, verr.Fields())
	})

	t.Run("scalar values fail as a type mismatch", func(t *testing.T) {
		rule := validity.Nested(address)
		err := rule.Validate("not an object")
		require.Error(t, err)
		assert.Equal(t, "must be an object, got string", err.Error())
	})

	t.Run("panics without a validator", func(t *testing.T) {
		assert.Panics(t, func() { validity.Nested(nil) })
	})
}
