// Package schema compiles declarative rule definitions into validity rules,
// so struct tags and configuration files drive the same engine as
// hand-wired validators.
//
// # Rule sources
//
// A rule source is a small expression language:
//
//	required;length:3,20;each(email)
//
// Rules are separated by ";". Scalar arguments follow ":" separated by ","
// and may be identifiers, numbers, or quoted strings; arguments containing
// other characters (regexps, date layouts) must be quoted. A parenthesized
// ruleset turns a rule into a combinator over inner rules, as in
// each(length:2,30).
//
// The optional marker skips the remaining checks for absent values while
// the required family still runs, so "required_with:company;optional;length:8,14"
// reads: required when company is set, and when present, 8-14 characters.
//
// # Struct tags
//
//	type Signup struct {
//		Username string   `json:"username" validate:"required;length:3,20"`
//		Email    string   `json:"email" validate:"required;email"`
//		Links    []string `json:"links" validate:"optional;each(url:https)"`
//	}
//
//	err := schema.ValidateStruct(&signup)
//
// Error keys use the json tag name when present. The whole struct forms
// the sibling lookup for cross-field rules, and struct-typed fields
// (except time.Time) recurse so the error tree mirrors the object graph.
//
// # YAML rulesets
//
//	username: required;length:3,20
//	address:
//	    zip: required;length:5,5
//
// ParseRuleset builds a validity.Validator from such a mapping; nested
// mappings become nested sub-validators. Document order is preserved.
//
// # Custom rules
//
// Constructors registered on a Compiler (or the package-level Default)
// become available to every source form:
//
//	schema.Register("business_email", func(args schema.Args, _ validity.Rule) (validity.Rule, error) {
//		return validity.All(rules.Email(), rules.Match(corpPattern)), nil
//	})
package schema
