// Package rules is the leaf-rule catalogue for validity: concrete
// predicates covering strings, numbers, collections, and common formats.
//
// Every constructor returns a validity.Rule with its configuration fixed at
// construction and no mutable state afterwards, so rule values are safe to
// register once and share across goroutines. Leaf rules never consult
// sibling fields; each one downcasts the erased value itself and reports a
// shape it cannot interpret as an ordinary type-mismatch failure.
//
// Each source file groups one family, mirroring what it validates:
// common.go for strings and formats, numeric.go for numbers, collection.go
// for sequences and mappings, advanced.go for the richer formats
// (passwords, card numbers, versions, network addresses).
//
//	v := validity.New().
//		Register("username", validity.All(rules.Required(), rules.Length(3, 20))).
//		Register("age", rules.Min(18)).
//		Register("interests", validity.Each(rules.Length(2, 30)))
//
// Pointers are followed before downcasting; a nil pointer is the absent
// value, which only Required and the size rules treat as a failure.
package rules
