package schema

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The rule-source grammar: rules separated by ";", scalar arguments after
// ":" separated by ",", and a parenthesized inner ruleset for combinator
// forms. A rule carries either arguments or an inner ruleset, never both.

type ruleSource struct {
	Rules []*ruleExpr `parser:"@@ ( ';' @@ )*"`
}

type ruleExpr struct {
	Name  string      `parser:"@Ident"`
	Inner *ruleSource `parser:"( '(' @@ ')' )?"`
	Args  Args        `parser:"( ':' @@ ( ',' @@ )* )?"`
}

type argExpr struct {
	Str    *string  `parser:"@String"`
	Number *float64 `parser:"| @Number"`
	Ident  *string  `parser:"| @Ident"`
}

var ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'[^']*'|"[^"]*"`},
	{Name: "Number", Pattern: `[-+]?\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[;:(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var ruleParser = participle.MustBuild[ruleSource](
	participle.Lexer(ruleLexer),
	participle.Elide("Whitespace"),
)

func parseSource(src string) (*ruleSource, error) {
	parsed, err := ruleParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleset, err)
	}
	return parsed, nil
}

// Args carries the parsed scalar arguments of one rule expression.
type Args []*argExpr

// Len returns the argument count.
func (a Args) Len() int { return len(a) }

// String returns argument i as text. Quoted arguments pass through
// verbatim with only the quotes stripped: there are no escape sequences,
// which keeps regexp and layout arguments readable, and a string simply
// cannot contain its own quote character (use the other quote style).
func (a Args) String(i int) (string, error) {
	if i >= len(a) {
		return "", fmt.Errorf("%w: missing argument %d", ErrInvalidArgs, i+1)
	}
	switch arg := a[i]; {
	case arg.Str != nil:
		s := *arg.Str
		return s[1 : len(s)-1], nil
	case arg.Ident != nil:
		return *arg.Ident, nil
	case arg.Number != nil:
		return strconv.FormatFloat(*arg.Number, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%w: empty argument %d", ErrInvalidArgs, i+1)
}

// Int returns argument i as an integer.
func (a Args) Int(i int) (int, error) {
	s, err := a.String(i)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: argument %d must be an integer, got %q", ErrInvalidArgs, i+1, s)
	}
	return n, nil
}

// Float returns argument i as a float64.
func (a Args) Float(i int) (float64, error) {
	s, err := a.String(i)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: argument %d must be a number, got %q", ErrInvalidArgs, i+1, s)
	}
	return n, nil
}

// Strings returns every argument as text.
func (a Args) Strings() []string {
	out := make([]string, 0, len(a))
	for i := range a {
		s, err := a.String(i)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}
