package validity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// MergeKey is the reserved aggregate key a bare message is filed under when
// it has to coexist with field-keyed entries during a merge.
const MergeKey = "_"

// ValidationError describes a failed validation. It has two shapes: a
// single error carries one message about one violation; an aggregate error
// maps field identifiers to nested ValidationErrors, preserving insertion
// order so reports are deterministic. Aggregates nest arbitrarily deep,
// mirroring the validated object graph.
//
// Validation entry points never return an empty aggregate; absence of
// failures is a nil error. Add and Merge take ownership of the errors they
// receive.
type ValidationError struct {
	message string
	keys    []string
	nested  map[string]*ValidationError
}

// NewError returns a single error with the given message.
func NewError(message string) *ValidationError {
	return &ValidationError{message: message}
}

// NewErrorf returns a single error with a formatted message.
func NewErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{message: fmt.Sprintf(format, args...)}
}

// NewAggregate returns an empty aggregate meant to be filled with Add.
// Callers building one return nil instead when IsEmpty reports true.
func NewAggregate() *ValidationError {
	return &ValidationError{nested: make(map[string]*ValidationError)}
}

// IsSingle reports whether e carries one message.
func (e *ValidationError) IsSingle() bool {
	return e != nil && e.nested == nil
}

// IsAggregate reports whether e maps fields to nested errors.
func (e *ValidationError) IsAggregate() bool {
	return e != nil && e.nested != nil
}

// IsEmpty reports an aggregate with no entries.
func (e *ValidationError) IsEmpty() bool {
	return e == nil || (e.nested != nil && len(e.keys) == 0)
}

// Message returns the message of a single error, "" for aggregates.
func (e *ValidationError) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Fields returns the aggregate keys in insertion order.
func (e *ValidationError) Fields() []string {
	if e == nil {
		return nil
	}
	return slices.Clone(e.keys)
}

// Len returns the number of aggregate entries, 0 for single errors.
func (e *ValidationError) Len() int {
	if e == nil {
		return 0
	}
	return len(e.keys)
}

// Get returns the nested error stored under field.
func (e *ValidationError) Get(field string) (*ValidationError, bool) {
	if e == nil {
		return nil, false
	}
	nested, ok := e.nested[field]
	return nested, ok
}

// Has reports whether an entry exists under field.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Get(field)
	return ok
}

// Add records err under field, keeping insertion order and merging on key
// collision. Calling Add on a single error first folds its message under
// MergeKey. It returns e for chaining.
func (e *ValidationError) Add(field string, err *ValidationError) *ValidationError {
	if err == nil {
		return e
	}
	if e.nested == nil {
		prev := e.message
		e.message = ""
		e.nested = make(map[string]*ValidationError)
		if prev != "" {
			e.keys = append(e.keys, MergeKey)
			e.nested[MergeKey] = NewError(prev)
		}
	}
	if existing, ok := e.nested[field]; ok {
		e.nested[field] = existing.Merge(err)
		return e
	}
	e.keys = append(e.keys, field)
	e.nested[field] = err
	return e
}

// Merge combines two errors into one, total and deterministic: nil is the
// identity; two aggregates union keys in order, recursing on collisions; a
// single folded into an aggregate lands under MergeKey; two singles join
// their messages with "; ".
func (e *ValidationError) Merge(other *ValidationError) *ValidationError {
	if e == nil {
		return other
	}
	if other == nil {
		return e
	}
	if e.nested == nil && other.nested == nil {
		e.message = e.message + "; " + other.message
		return e
	}
	if other.nested == nil {
		return e.Add(MergeKey, other)
	}
	for _, key := range other.keys {
		e.Add(key, other.nested[key])
	}
	return e
}

// Error renders the failure deterministically: a single error is its bare
// message; an aggregate concatenates dotted-path "field: message" pairs in
// insertion order after a "validation failed: " prefix.
func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.nested == nil {
		return e.message
	}
	if len(e.keys) == 0 {
		return "validation failed"
	}
	var pairs []string
	e.walk("", func(path, message string) {
		pairs = append(pairs, path+": "+message)
	})
	return "validation failed: " + strings.Join(pairs, "; ")
}

// Flatten maps dotted paths to leaf messages, readily serializable for HTTP
// responses. A single error is filed under the empty path.
func (e *ValidationError) Flatten() map[string]string {
	if e == nil {
		return nil
	}
	flat := make(map[string]string)
	e.walk("", func(path, message string) {
		flat[path] = message
	})
	return flat
}

func (e *ValidationError) walk(prefix string, fn func(path, message string)) {
	if e.nested == nil {
		fn(prefix, e.message)
		return
	}
	for _, key := range e.keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		e.nested[key].walk(path, fn)
	}
}

// MarshalJSON renders a single error as a JSON string and an aggregate as a
// JSON object with keys in insertion order. The object is built by hand
// because encoding/json sorts map keys, which would break determinism.
func (e *ValidationError) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	if e.nested == nil {
		return json.Marshal(e.message)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(e.nested[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Coerce converts any error into the structured form, wrapping foreign
// errors as a single carrying their message. A nil error stays nil.
func Coerce(err error) *ValidationError {
	if err == nil {
		return nil
	}
	if verr, ok := ExtractValidationError(err); ok {
		return verr
	}
	return NewError(err.Error())
}

// ExtractValidationError unwraps err down to a *ValidationError.
func ExtractValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// IsValidationError reports whether err wraps a *ValidationError, as
// opposed to setup failures such as ErrRuleNotFound.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
