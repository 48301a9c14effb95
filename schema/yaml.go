package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/validity"
)

// ParseRuleset builds a Validator from a YAML mapping of field names to
// rule sources using the Default compiler.
func ParseRuleset(src []byte) (*validity.Validator, error) {
	return Default.ParseRuleset(src)
}

// LoadRuleset reads a YAML ruleset from disk using the Default compiler.
func LoadRuleset(path string) (*validity.Validator, error) {
	return Default.LoadRuleset(path)
}

// ParseRuleset builds a Validator from a YAML mapping of field names to
// rule sources. A nested mapping becomes a nested object validator for
// that field. Registration order follows the document, so errors render
// in the order fields are written.
func (c *Compiler) ParseRuleset(src []byte) (*validity.Validator, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(src, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleset, err)
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return validity.New(), nil
		}
		doc = doc.Content[0]
	}
	return c.rulesetFromNode(doc)
}

// LoadRuleset reads a YAML ruleset from disk.
func (c *Compiler) LoadRuleset(path string) (*validity.Validator, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load ruleset: %w", err)
	}
	return c.ParseRuleset(src)
}

func (c *Compiler) rulesetFromNode(node *yaml.Node) (*validity.Validator, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping of fields to rules, got %s", ErrInvalidRuleset, nodeKind(node))
	}
	v := validity.New()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: field name at line %d must be a scalar", ErrInvalidRuleset, key.Line)
		}
		switch value.Kind {
		case yaml.ScalarNode:
			rule, err := c.Compile(value.Value)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", key.Value, err)
			}
			v.Register(key.Value, rule)
		case yaml.MappingNode:
			sub, err := c.rulesetFromNode(value)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", key.Value, err)
			}
			v.Register(key.Value, validity.Nested(sub))
		default:
			return nil, fmt.Errorf("%w: field %q must map to a rule source or a nested mapping", ErrInvalidRuleset, key.Value)
		}
	}
	return v, nil
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "a document"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	}
	return "an empty document"
}
