package validity_test

import (
	"testing"

	"github.com/dmitrymomot/validity"
	"github.com/dmitrymomot/validity/rules"
)

func BenchmarkValidator_ValidateAll(b *testing.B) {
	v := validity.New().
		Register("username", validity.All(rules.Required(), rules.Length(3, 20))).
		Register("email", validity.All(rules.Required(), rules.Email())).
		Register("age", rules.Min(18)).
		Register("website", validity.Optional(rules.URL("https"))).
		Register("tags", validity.Each(rules.Length(2, 30)))

	fields := validity.NewFields().
		Set("username", "johndoe").
		Set("email", "john@example.com").
		Set("age", 30).
		Set("website", "https://example.com").
		Set("tags", []string{"go", "validation"})

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = v.ValidateAll(fields)
	}
}

func BenchmarkValidator_ValidateAll_Failing(b *testing.B) {
	v := validity.New().
		Register("username", validity.All(rules.Required(), rules.Length(3, 20))).
		Register("email", validity.All(rules.Required(), rules.Email())).
		Register("age", rules.Min(18))

	fields := validity.NewFields().
		Set("username", "jo").
		Set("email", "not-an-email").
		Set("age", 12)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = v.ValidateAll(fields)
	}
}

func BenchmarkValidationError_Error(b *testing.B) {
	agg := validity.NewAggregate().
		Add("username", validity.NewError("is required")).
		Add("email", validity.NewError("must be a valid email address")).
		Add("address", validity.NewAggregate().
			Add("street", validity.NewError("is required")).
			Add("zip", validity.NewError("must be at least 5 characters long")))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = agg.Error()
	}
}
