package validity

import (
	"fmt"
	"slices"
)

// Validator is a registry binding field names to rules. The registration
// name doubles as the field looked up during whole-object validation and as
// the key the failure is reported under; several rules for one field
// compose with All.
//
// Registration and validation are phase-separated: populate the registry
// first, then share it freely for concurrent validation. The registry does
// no locking and keeps no state between calls.
type Validator struct {
	names []string
	rules map[string]Rule
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{rules: make(map[string]Rule)}
}

// Register inserts or replaces the rule under name and returns v for
// chaining. Replacing keeps the original registration position, so
// iteration order stays stable. A nil rule panics, as in net/http's Handle:
// registration is setup, not input handling.
func (v *Validator) Register(name string, rule Rule) *Validator {
	if rule == nil {
		panic("validity: Register called with nil rule")
	}
	if _, ok := v.rules[name]; !ok {
		v.names = append(v.names, name)
	}
	v.rules[name] = rule
	return v
}

// Get returns the rule registered under name.
func (v *Validator) Get(name string) (Rule, bool) {
	rule, ok := v.rules[name]
	return rule, ok
}

// Names returns the registered names in registration order.
func (v *Validator) Names() []string {
	return slices.Clone(v.names)
}

// Len returns the number of registered rules.
func (v *Validator) Len() int {
	return len(v.names)
}

// ValidateOne looks up and runs a single rule against value. An absent name
// returns ErrRuleNotFound wrapped with the name; otherwise the outcome is
// the rule's own. Cross-field rules invoked this way see an empty sibling
// lookup.
func (v *Validator) ValidateOne(name string, value any) error {
	rule, ok := v.rules[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrRuleNotFound, name)
	}
	return Apply(rule, value, nil)
}

// ValidateAll validates a whole object: every registered rule runs against
// the field sharing its name, with fields serving as the sibling-value
// lookup for cross-field rules. A field absent from the mapping arrives as
// nil. Evaluation never stops at a failure; everything that failed is
// merged into one aggregate keyed by registration name in registration
// order. The return is nil when every field passed, and repeated calls over
// identical input yield identical error structures.
func (v *Validator) ValidateAll(fields *Fields) error {
	agg := NewAggregate()
	for _, name := range v.names {
		value, _ := fields.Get(name)
		if err := Apply(v.rules[name], value, fields); err != nil {
			agg.Add(name, Coerce(err))
		}
	}
	if agg.IsEmpty() {
		return nil
	}
	return agg
}
