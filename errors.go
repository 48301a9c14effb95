package validity

import "errors"

var (
	// ErrRuleNotFound is returned by Validator.ValidateOne when no rule is
	// registered under the requested name.
	ErrRuleNotFound = errors.New("validity: rule not found")
)
