package schema

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/dmitrymomot/validity"
)

// TagName is the struct tag holding a rule source.
const TagName = "validate"

type fieldPlan struct {
	name  string
	index int
	rule  validity.Rule // nil when the field only feeds sibling lookup
	dive  bool
}

type structPlan struct {
	fields []fieldPlan
}

// ValidateStruct validates s against its field tags using the Default
// compiler. See Compiler.ValidateStruct.
func ValidateStruct(s any) error {
	return Default.ValidateStruct(s)
}

// ValidateStruct validates a struct (or non-nil pointer to one) against
// the rule sources in its field tags. Fields are reported under their json
// tag name when present, otherwise the Go field name. Untagged exported
// fields still participate in cross-field lookups such as required_with.
// Struct-typed fields are validated recursively and reported as nested
// errors; time.Time values stay scalar.
//
// A malformed tag surfaces as a setup error wrapping ErrUnknownRule,
// ErrInvalidArgs or ErrInvalidRuleset rather than a *ValidationError, so
// callers can distinguish programmer mistakes from bad input.
func (c *Compiler) ValidateStruct(s any) error {
	v := reflect.ValueOf(s)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return fmt.Errorf("%w: nil pointer", ErrNotStruct)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %T", ErrNotStruct, s)
	}
	return c.validateStructValue(v)
}

func (c *Compiler) validateStructValue(v reflect.Value) error {
	plan, err := c.planFor(v.Type())
	if err != nil {
		return err
	}
	siblings := validity.NewFields()
	for i := range plan.fields {
		fp := &plan.fields[i]
		siblings.Set(fp.name, v.Field(fp.index).Interface())
	}
	agg := validity.NewAggregate()
	for i := range plan.fields {
		fp := &plan.fields[i]
		if fp.rule != nil {
			value, _ := siblings.Get(fp.name)
			if err := validity.Apply(fp.rule, value, siblings); err != nil {
				agg.Add(fp.name, validity.Coerce(err))
			}
		}
		if fp.dive {
			inner := v.Field(fp.index)
			for inner.Kind() == reflect.Pointer {
				if inner.IsNil() {
					inner = reflect.Value{}
					break
				}
				inner = inner.Elem()
			}
			if inner.IsValid() {
				if err := c.validateStructValue(inner); err != nil {
					verr, ok := validity.ExtractValidationError(err)
					if !ok {
						// A broken tag in the nested type is a setup
						// error, not a failure of this value.
						return err
					}
					agg.Add(fp.name, verr)
				}
			}
		}
	}
	if agg.IsEmpty() {
		return nil
	}
	return agg
}

// planFor compiles the tags of t once and caches the result. Compile
// failures are not cached: a tag naming a custom rule starts working as
// soon as its constructor is registered.
func (c *Compiler) planFor(t reflect.Type) (*structPlan, error) {
	if cached, ok := c.plans.Load(t); ok {
		return cached.(*structPlan), nil
	}
	plan := &structPlan{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f)
		if name == "" {
			continue
		}
		fp := fieldPlan{name: name, index: i, dive: diveable(f.Type)}
		if tag, ok := f.Tag.Lookup(TagName); ok && tag != "" && tag != "-" {
			rule, err := c.Compile(tag)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			fp.rule = rule
		}
		plan.fields = append(plan.fields, fp)
	}
	c.plans.Store(t, plan)
	return plan, nil
}

// fieldName prefers the json tag name so validation errors line up with
// the wire format. A json:"-" field is skipped entirely.
func fieldName(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

var timeType = reflect.TypeOf(time.Time{})

func diveable(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && t != timeType
}
