package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validity/rules"
)

func TestMinSize(t *testing.T) {
	rule := rules.MinSize(2)

	t.Run("counts slices, arrays and maps", func(t *testing.T) {
		assert.NoError(t, rule.Validate([]int{1, 2}))
		assert.NoError(t, rule.Validate([3]string{}))
		assert.NoError(t, rule.Validate(map[string]int{"a": 1, "b": 2}))
	})

	t.Run("too few elements fail", func(t *testing.T) {
		err := rule.Validate([]int{1})
		require.Error(t, err)
		assert.Equal(t, "must contain at least 2 items", err.Error())
	})

	t.Run("nil counts as zero elements", func(t *testing.T) {
		assert.Error(t, rule.Validate(nil))
		assert.NoError(t, rules.MinSize(0).Validate(nil))
	})

	t.Run("non-collections fail as a type mismatch", func(t *testing.T) {
		assert.EqualError(t, rule.Validate("ab"), "must be a collection, got string")
	})
}

func TestMaxSize(t *testing.T) {
	rule := rules.MaxSize(2)

	assert.NoError(t, rule.Validate([]int{1, 2}))
	assert.NoError(t, rule.Validate(nil))

	err := rule.Validate([]int{1, 2, 3})
	require.Error(t, err)
	assert.Equal(t, "must contain at most 2 items", err.Error())
}

func TestExactSize(t *testing.T) {
	rule := rules.ExactSize(2)

	assert.NoError(t, rule.Validate([]int{1, 2}))

	err := rule.Validate([]int{1})
	require.Error(t, err)
	assert.Equal(t, "must contain exactly 2 items", err.Error())
	assert.Error(t, rule.Validate([]int{1, 2, 3}))
}

func TestUnique(t *testing.T) {
	rule := rules.Unique()

	t.Run("accepts distinct elements", func(t *testing.T) {
		assert.NoError(t, rule.Validate([]string{"a", "b", "c"}))
		assert.NoError(t, rule.Validate([]int{}))
		assert.NoError(t, rule.Validate(nil))
	})

	t.Run("reports the first duplicate", func(t *testing.T) {
		err := rule.Validate([]string{"a", "b", "a"})
		require.Error(t, err)
		assert.Equal(t, "must not contain duplicates (a)", err.Error())
	})

	t.Run("incomparable elements fail as a type mismatch", func(t *testing.T) {
		err := rule.Validate([][]int{{1}, {2}})
		require.Error(t, err)
		assert.Equal(t, "must be a sequence of comparable values, got [][]int", err.Error())
	})

	t.Run("non-sequences fail as a type mismatch", func(t *testing.T) {
		assert.EqualError(t, rule.Validate("abc"), "must be a sequence, got string")
	})
}

func TestContains(t *testing.T) {
	rule := rules.Contains("go")

	t.Run("finds the element", func(t *testing.T) {
		assert.NoError(t, rule.Validate([]string{"rust", "go", "zig"}))
	})

	t.Run("fails when missing", func(t *testing.T) {
		err := rule.Validate([]string{"rust", "zig"})
		require.Error(t, err)
		assert.Equal(t, "must contain go", err.Error())
		assert.Error(t, rule.Validate(nil))
	})

	t.Run("element type must match", func(t *testing.T) {
		err := rules.Contains(5).Validate([]string{"5"})
		require.Error(t, err)
		assert.Equal(t, "must contain 5", err.Error())
	})

	t.Run("non-sequences fail as a type mismatch", func(t *testing.T) {
		assert.EqualError(t, rule.Validate(42), "must be a sequence, got int")
	})
}
