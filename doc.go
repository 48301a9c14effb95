// Package validity is a struct-field validation engine: it runs named,
// composable rules against type-erased values and reports either success or
// a structured description of every violation.
//
// The package is built from four small pieces. A Rule accepts an erased
// value and returns nil or a *ValidationError. A ValidationError is either a
// single message or an insertion-ordered aggregate of nested errors keyed by
// field, index, or map key, nesting as deep as the validated object graph.
// A Validator is a registry binding field names to rules, with single-field
// and whole-object entry points. Combinators (If, Unless, the Required
// family, Each, Map, All, Optional, Nested) compose rules without touching
// their internals.
//
// # Rules
//
// Any value implementing the one-method Rule interface participates. One-off
// checks are plain functions:
//
//	adult := validity.RuleFunc(func(value any) error {
//		if age, ok := value.(int); !ok || age < 18 {
//			return validity.NewError("must be at least 18")
//		}
//		return nil
//	})
//
// The rules subpackage ships the leaf catalogue (Required, Length, Email,
// Min, Unique, ...). Rules hold configuration fixed at construction, no
// mutable state, and are safe for concurrent use.
//
// # Whole-object validation
//
// Register rules under the field names they guard, then validate an ordered
// field mapping in one pass:
//
//	v := validity.New().
//		Register("username", validity.All(rules.Required(), rules.Length(3, 20))).
//		Register("email", rules.Email())
//
//	err := v.ValidateAll(validity.NewFields().
//		Set("username", "jo").
//		Set("email", "not-an-email"))
//
// Every field is evaluated even after earlier failures; the result is one
// aggregate keyed by field name in registration order, or nil. Repeated runs
// over identical input produce identical error structures.
//
// # Cross-field rules
//
// The field mapping given to ValidateAll doubles as the sibling-value lookup
// for conditional rules:
//
//	v.Register("vat_id", validity.RequiredWith("company"))
//	v.Register("phone", validity.If(func(s *validity.Fields) bool {
//		c, _ := s.Get("country")
//		return c == "US"
//	}, rules.Phone()))
//
// Conditions are pure functions of the currently-known field values. Rules
// invoked without a lookup see empty Fields.
//
// # Error handling
//
// Failures returned from validation are always *ValidationError. Use
// errors.As or the helpers to recover the structure:
//
//	if verr, ok := validity.ExtractValidationError(err); ok {
//		for _, field := range verr.Fields() {
//			nested, _ := verr.Get(field)
//			_ = nested
//		}
//	}
//
// A missing registry name is the distinct sentinel ErrRuleNotFound. A value
// that does not match a rule's expected shape is an ordinary single failure
// naming the shape, never a panic.
//
// # Declarative wiring
//
// The schema subpackage compiles rule strings such as
// "required;length:3,20;each(email)" from struct tags or YAML rulesets into
// the same Rule values, so hand-wired and declarative validation share one
// engine.
package validity
