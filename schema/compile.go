package schema

import (
	"fmt"
	"sync"

	"github.com/dmitrymomot/validity"
)

// Constructor builds a rule from parsed DSL arguments. For combinator forms
// such as each(...), inner holds the compiled inner ruleset; it is nil for
// plain rules, and scalar constructors are free to ignore it.
type Constructor func(args Args, inner validity.Rule) (validity.Rule, error)

// Compiler turns rule sources into executable rules and caches the struct
// plans derived from tags. The zero value is not usable; NewCompiler
// preloads every built-in constructor. Registering custom constructors is
// safe concurrently with compilation.
type Compiler struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
	plans        sync.Map // reflect.Type -> *structPlan
}

// NewCompiler returns a Compiler with the built-in rule set.
func NewCompiler() *Compiler {
	c := &Compiler{constructors: make(map[string]Constructor)}
	c.registerBuiltins()
	return c
}

// Register makes ctor available under name, replacing any previous
// constructor. It returns c for chaining.
func (c *Compiler) Register(name string, ctor Constructor) *Compiler {
	if ctor == nil {
		panic("schema: Register called with nil constructor")
	}
	c.mu.Lock()
	c.constructors[name] = ctor
	c.mu.Unlock()
	return c
}

// Compile parses src and builds the rule it describes. Multiple rules chain
// in order with validity.All. The optional marker wraps every non-implicit
// rule in validity.Optional, while the required family keeps running
// against absent values.
func (c *Compiler) Compile(src string) (validity.Rule, error) {
	parsed, err := parseSource(src)
	if err != nil {
		return nil, err
	}
	return c.compileRules(parsed.Rules)
}

// MustCompile is Compile that panics on error, for rules fixed at program
// start.
func (c *Compiler) MustCompile(src string) validity.Rule {
	rule, err := c.Compile(src)
	if err != nil {
		panic(err)
	}
	return rule
}

// implicitRules fire even against absent values; the optional marker never
// suppresses them.
var implicitRules = map[string]bool{
	"required":         true,
	"required_if":      true,
	"required_with":    true,
	"required_without": true,
}

func (c *Compiler) compileRules(exprs []*ruleExpr) (validity.Rule, error) {
	optional := false
	var gates, checks []validity.Rule
	for _, expr := range exprs {
		if expr.Name == "optional" && expr.Inner == nil && len(expr.Args) == 0 {
			optional = true
			continue
		}
		rule, err := c.compileRule(expr)
		if err != nil {
			return nil, err
		}
		if implicitRules[expr.Name] {
			gates = append(gates, rule)
		} else {
			checks = append(checks, rule)
		}
	}
	chain := gates
	if rest := combine(checks); rest != nil {
		if optional {
			rest = validity.Optional(rest)
		}
		chain = append(chain, rest)
	}
	if len(chain) == 0 {
		// Bare "optional" still needs a rule value.
		return validity.RuleFunc(func(any) error { return nil }), nil
	}
	return combine(chain), nil
}

func (c *Compiler) compileRule(expr *ruleExpr) (validity.Rule, error) {
	c.mu.RLock()
	ctor, ok := c.constructors[expr.Name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, expr.Name)
	}
	var inner validity.Rule
	if expr.Inner != nil {
		compiled, err := c.compileRules(expr.Inner.Rules)
		if err != nil {
			return nil, err
		}
		inner = compiled
	}
	rule, err := ctor(expr.Args, inner)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", expr.Name, err)
	}
	return rule, nil
}

func combine(rules []validity.Rule) validity.Rule {
	switch len(rules) {
	case 0:
		return nil
	case 1:
		return rules[0]
	default:
		return validity.All(rules...)
	}
}

// Default is the compiler behind the package-level helpers. Constructors
// registered here are visible to ValidateStruct and ruleset loading.
var Default = NewCompiler()

// Compile builds a rule from src with the Default compiler.
func Compile(src string) (validity.Rule, error) { return Default.Compile(src) }

// MustCompile builds a rule from src with the Default compiler, panicking
// on error.
func MustCompile(src string) validity.Rule { return Default.MustCompile(src) }

// Register adds a constructor to the Default compiler.
func Register(name string, ctor Constructor) { Default.Register(name, ctor) }
