package validity

import "slices"

// Fields is an insertion-ordered mapping from field name to erased value.
// It is both the input to Validator.ValidateAll and the sibling-value
// lookup handed to cross-field rules during a validation pass. Populate it
// before validating; the engine only reads it.
type Fields struct {
	names  []string
	values map[string]any
}

// NewFields returns an empty mapping.
func NewFields() *Fields {
	return &Fields{values: make(map[string]any)}
}

// FieldsFromMap copies an unordered map into Fields, sorting keys so the
// resulting order is deterministic.
func FieldsFromMap(m map[string]any) *Fields {
	f := NewFields()
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		f.Set(key, m[key])
	}
	return f
}

// Set records value under name, keeping the original position when the name
// is already present. It returns f for chaining.
func (f *Fields) Set(name string, value any) *Fields {
	if _, ok := f.values[name]; !ok {
		f.names = append(f.names, name)
	}
	f.values[name] = value
	return f
}

// Get returns the value stored under name. A nil *Fields is an empty
// lookup.
func (f *Fields) Get(name string) (any, bool) {
	if f == nil {
		return nil, false
	}
	value, ok := f.values[name]
	return value, ok
}

// Has reports whether name is present.
func (f *Fields) Has(name string) bool {
	_, ok := f.Get(name)
	return ok
}

// Names returns the field names in insertion order.
func (f *Fields) Names() []string {
	if f == nil {
		return nil
	}
	return slices.Clone(f.names)
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.names)
}
