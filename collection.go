package validity

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Each applies inner to every element of a sequence-shaped value
// independently. Per-index failures collect into an aggregate keyed by the
// stringified index in sequence order; an empty or nil sequence always
// passes. The sibling lookup is forwarded to cross-field inner rules.
func Each(inner Rule) Rule {
	if inner == nil {
		panic("validity: Each requires a rule")
	}
	return &eachRule{inner: inner}
}

type eachRule struct {
	inner Rule
}

func (r *eachRule) Validate(value any) error {
	return r.ValidateWithSiblings(value, nil)
}

func (r *eachRule) ValidateWithSiblings(value any, siblings *Fields) error {
	value = Indirect(value)
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return NewTypeError("a sequence", value)
	}
	agg := NewAggregate()
	for i := 0; i < rv.Len(); i++ {
		if err := Apply(r.inner, rv.Index(i).Interface(), siblings); err != nil {
			agg.Add(strconv.Itoa(i), Coerce(err))
		}
	}
	if agg.IsEmpty() {
		return nil
	}
	return agg
}

// Map applies keyRule to every key and valueRule to every value of a
// mapping-shaped value; either rule may be nil to skip that side. Failures
// for one entry merge under the stringified map key; entries are ordered by
// that key, since Go randomizes map iteration. A nil mapping passes.
func Map(keyRule, valueRule Rule) Rule {
	return &mapRule{keys: keyRule, values: valueRule}
}

type mapRule struct {
	keys   Rule
	values Rule
}

func (r *mapRule) Validate(value any) error {
	return r.ValidateWithSiblings(value, nil)
}

func (r *mapRule) ValidateWithSiblings(value any, siblings *Fields) error {
	value = Indirect(value)
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return NewTypeError("a mapping", value)
	}
	type entry struct {
		label    string
		key, val any
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key().Interface()
		entries = append(entries, entry{
			label: fmt.Sprint(key),
			key:   key,
			val:   iter.Value().Interface(),
		})
	}
	// Distinct keys of a map[any]any can share a label (1 and "1");
	// break the tie by type so the merge order is fixed.
	slices.SortFunc(entries, func(a, b entry) int {
		if c := strings.Compare(a.label, b.label); c != 0 {
			return c
		}
		return strings.Compare(fmt.Sprintf("%T", a.key), fmt.Sprintf("%T", b.key))
	})
	agg := NewAggregate()
	for _, en := range entries {
		var entryErr *ValidationError
		if r.keys != nil {
			if err := Apply(r.keys, en.key, siblings); err != nil {
				entryErr = entryErr.Merge(Coerce(err))
			}
		}
		if r.values != nil {
			if err := Apply(r.values, en.val, siblings); err != nil {
				entryErr = entryErr.Merge(Coerce(err))
			}
		}
		if entryErr != nil {
			agg.Add(en.label, entryErr)
		}
	}
	if agg.IsEmpty() {
		return nil
	}
	return agg
}

// All runs rules in order against the same value and stops at the first
// failure, which passes through unchanged.
func All(rules ...Rule) Rule {
	for _, rule := range rules {
		if rule == nil {
			panic("validity: All called with nil rule")
		}
	}
	return &allRule{rules: slices.Clone(rules)}
}

type allRule struct {
	rules []Rule
}

func (r *allRule) Validate(value any) error {
	return r.ValidateWithSiblings(value, nil)
}

func (r *allRule) ValidateWithSiblings(value any, siblings *Fields) error {
	for _, rule := range r.rules {
		if err := Apply(rule, value, siblings); err != nil {
			return err
		}
	}
	return nil
}

// Optional skips inner entirely for absent or empty values, the opt-in
// counterpart to rules that treat missing input as a failure.
func Optional(inner Rule) Rule {
	if inner == nil {
		panic("validity: Optional requires a rule")
	}
	return &optionalRule{inner: inner}
}

type optionalRule struct {
	inner Rule
}

func (r *optionalRule) Validate(value any) error {
	return r.ValidateWithSiblings(value, nil)
}

func (r *optionalRule) ValidateWithSiblings(value any, siblings *Fields) error {
	if IsEmpty(value) {
		return nil
	}
	return Apply(r.inner, value, siblings)
}

// Nested validates a composite value with its own Validator, so the error
// tree mirrors the object graph one aggregate level per nesting level.
// The value must be a *Fields or a map[string]any (converted with
// FieldsFromMap); nil validates as an empty mapping, letting required rules
// in the inner Validator report what is missing. The inner Validator scopes
// its own sibling lookup to the nested fields.
func Nested(v *Validator) Rule {
	if v == nil {
		panic("validity: Nested requires a Validator")
	}
	return &nestedRule{validator: v}
}

type nestedRule struct {
	validator *Validator
}

func (r *nestedRule) Validate(value any) error {
	// Checked before Indirect, which would dereference the pointer away.
	if fields, ok := value.(*Fields); ok {
		if fields == nil {
			return r.validator.ValidateAll(NewFields())
		}
		return r.validator.ValidateAll(fields)
	}
	switch v := Indirect(value).(type) {
	case nil:
		return r.validator.ValidateAll(NewFields())
	case map[string]any:
		return r.validator.ValidateAll(FieldsFromMap(v))
	default:
		return NewTypeError("an object", v)
	}
}
