package schema

import "errors"

var (
	// ErrUnknownRule reports a rule name with no registered constructor.
	ErrUnknownRule = errors.New("schema: unknown rule")
	// ErrInvalidArgs reports rule arguments that do not fit the constructor.
	ErrInvalidArgs = errors.New("schema: invalid rule arguments")
	// ErrInvalidRuleset reports a rule source or ruleset document that
	// cannot be parsed.
	ErrInvalidRuleset = errors.New("schema: invalid ruleset")
	// ErrNotStruct reports a ValidateStruct target that is not a struct or
	// a pointer to one.
	ErrNotStruct = errors.New("schema: target is not a struct")
)
