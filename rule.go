package validity

// Rule is the capability every validation rule implements: accept an erased
// value and report pass (nil) or fail (a *ValidationError). Every input
// produces exactly one of those outcomes; a value the rule cannot interpret
// fails with a type-mismatch message rather than panicking. Rules hold no
// mutable state after construction and are safe for concurrent use.
type Rule interface {
	Validate(value any) error
}

// RuleFunc adapts a plain function to the Rule interface, the usual way to
// express one-off custom checks.
type RuleFunc func(value any) error

// Validate calls f.
func (f RuleFunc) Validate(value any) error { return f(value) }

// CrossFieldRule is implemented by rules that consult sibling field values.
// Apply prefers ValidateWithSiblings whenever the rule supports it;
// Validate must behave exactly like ValidateWithSiblings with an empty
// lookup.
type CrossFieldRule interface {
	Rule
	ValidateWithSiblings(value any, siblings *Fields) error
}

// Condition is a pure predicate over the sibling-value lookup, evaluated by
// conditional combinators before their gated behavior runs. Conditions must
// be side-effect-free; evaluation order never changes the result.
type Condition func(siblings *Fields) bool

// Apply runs rule against value, routing through the cross-field entry
// point when the rule implements CrossFieldRule. A nil lookup reads as
// empty Fields.
func Apply(rule Rule, value any, siblings *Fields) error {
	if cf, ok := rule.(CrossFieldRule); ok {
		return cf.ValidateWithSiblings(value, siblings)
	}
	return rule.Validate(value)
}
