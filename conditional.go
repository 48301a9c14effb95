package validity

// If gates inner behind cond: while the condition is false the value passes
// without the inner rule running; once it fires, the inner outcome passes
// through unchanged.
func If(cond Condition, inner Rule) Rule {
	if cond == nil || inner == nil {
		panic("validity: If requires a condition and a rule")
	}
	return &conditionalRule{cond: cond, inner: inner}
}

// Unless is the inverse gate: inner runs only while cond is false.
func Unless(cond Condition, inner Rule) Rule {
	if cond == nil || inner == nil {
		panic("validity: Unless requires a condition and a rule")
	}
	return &conditionalRule{cond: cond, inner: inner, invert: true}
}

type conditionalRule struct {
	cond   Condition
	inner  Rule
	invert bool
}

func (r *conditionalRule) Validate(value any) error {
	return r.ValidateWithSiblings(value, nil)
}

func (r *conditionalRule) ValidateWithSiblings(value any, siblings *Fields) error {
	fire := r.cond(siblings)
	if r.invert {
		fire = !fire
	}
	if !fire {
		return nil
	}
	return Apply(r.inner, value, siblings)
}

// RequiredIf demands a non-empty value whenever cond fires. Gating a
// further rule on the same condition is composition:
// All(RequiredIf(cond), If(cond, inner)).
func RequiredIf(cond Condition) Rule {
	if cond == nil {
		panic("validity: RequiredIf requires a condition")
	}
	return &requiredRule{conds: []Condition{cond}}
}

// RequiredWith demands the value when the named sibling field is present
// and non-empty.
func RequiredWith(other string) Rule {
	return &requiredRule{conds: []Condition{siblingPresent(other)}}
}

// RequiredWithout demands the value when the named sibling field is absent
// or empty.
func RequiredWithout(other string) Rule {
	return &requiredRule{conds: []Condition{siblingAbsent(other)}}
}

// RequiredIfAny demands the value when at least one condition holds.
// Conditions are checked left to right, stopping at the first hit.
func RequiredIfAny(conds ...Condition) Rule {
	return &requiredRule{conds: conds}
}

// RequiredIfAll demands the value only when every condition holds, checked
// left to right and stopping at the first miss.
func RequiredIfAll(conds ...Condition) Rule {
	return &requiredRule{conds: conds, all: true}
}

type requiredRule struct {
	conds []Condition
	all   bool
}

func (r *requiredRule) Validate(value any) error {
	return r.ValidateWithSiblings(value, nil)
}

func (r *requiredRule) ValidateWithSiblings(value any, siblings *Fields) error {
	if !r.fired(siblings) {
		return nil
	}
	if IsEmpty(value) {
		return NewError("is required")
	}
	return nil
}

func (r *requiredRule) fired(siblings *Fields) bool {
	if r.all {
		for _, cond := range r.conds {
			if !cond(siblings) {
				return false
			}
		}
		return true
	}
	for _, cond := range r.conds {
		if cond(siblings) {
			return true
		}
	}
	return false
}

func siblingPresent(other string) Condition {
	return func(siblings *Fields) bool {
		value, ok := siblings.Get(other)
		return ok && !IsEmpty(value)
	}
}

func siblingAbsent(other string) Condition {
	return func(siblings *Fields) bool {
		value, ok := siblings.Get(other)
		return !ok || IsEmpty(value)
	}
}
