// Package formula turns formula text into a sequence of postfix calls
// against a builder.Visitor, using github.com/xuri/efp — the same
// Excel-formula tokenizer excelize's own calculation engine is built
// on — for lexing, and a hand-written precedence-climbing descent over
// its flat token stream for structure.
//
// Grammar, loosest to tightest binding:
//
//	comparison    := additive ( ('=' | '<>' | '<' | '<=' | '>' | '>=') additive )*
//	additive      := multiplicative ( ('+' | '-') multiplicative )*
//	multiplicative:= unary ( ('*' | '/') unary )*
//	unary         := '-' power | power
//	power         := primary ( '^' primary )*
//	primary       := operand | '(' comparison ')' | NAME '(' args ')'
//
// Unary minus is placed tighter than the additive/multiplicative tiers
// but looser than '^', so "-2^2" parses as "-(2^2)": mathematical
// convention, and the reading this engine's numeric worked examples
// require, rather than Excel's own (where unary minus binds tighter
// than '^').
package formula

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/efp"

	"github.com/basalt-labs/gospread/internal/builder"
)

// ErrMalformedFormula is returned for any formula text the parser
// cannot fit to the grammar above.
var ErrMalformedFormula = errors.New("formula: malformed expression")

// Parse tokenizes contents (without a leading '=') and drives v through
// the equivalent sequence of postfix Visitor calls. v.OpAdd, v.ValNumber,
// etc. are expected to record failures internally (as builder.Builder
// does); Parse itself only reports grammar-level failures such as
// running out of tokens or finding an unbalanced parenthesis.
func Parse(contents string, v builder.Visitor) error {
	p := efp.ExcelParser()
	toks := p.Parse(contents)
	if toks == nil {
		return fmt.Errorf("%w: tokenizer rejected input", ErrMalformedFormula)
	}
	c := &cursor{toks: filterSignificant(toks)}
	if err := c.comparison(v); err != nil {
		return err
	}
	if !c.atEnd() {
		return fmt.Errorf("%w: trailing tokens after expression", ErrMalformedFormula)
	}
	return nil
}

// filterSignificant drops the blank-valued noise tokens efp emits
// between operands and operators. Subexpression start/stop and function
// stop tokens also carry a blank TValue but are structural, so tokens of
// those two types are always kept.
func filterSignificant(toks []efp.Token) []efp.Token {
	out := make([]efp.Token, 0, len(toks))
	for _, t := range toks {
		structural := t.TType == efp.TokenTypeSubexpression || t.TType == efp.TokenTypeFunction
		if !structural && strings.TrimSpace(t.TValue) == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

type cursor struct {
	toks []efp.Token
	pos  int
}

func (c *cursor) atEnd() bool { return c.pos >= len(c.toks) }

func (c *cursor) peek() (efp.Token, bool) {
	if c.atEnd() {
		return efp.Token{}, false
	}
	return c.toks[c.pos], true
}

func (c *cursor) advance() (efp.Token, bool) {
	t, ok := c.peek()
	if ok {
		c.pos++
	}
	return t, ok
}

func isInfix(t efp.Token, symbols ...string) bool {
	if t.TType != efp.TokenTypeOperatorInfix {
		return false
	}
	for _, s := range symbols {
		if t.TValue == s {
			return true
		}
	}
	return false
}

func (c *cursor) comparison(v builder.Visitor) error {
	if err := c.additive(v); err != nil {
		return err
	}
	for {
		t, ok := c.peek()
		if !ok || !isInfix(t, "=", "<>", "<", "<=", ">", ">=") {
			return nil
		}
		c.advance()
		if err := c.additive(v); err != nil {
			return err
		}
		switch t.TValue {
		case "=":
			v.OpEq()
		case "<>":
			v.OpNe()
		case "<":
			v.OpLt()
		case "<=":
			v.OpLe()
		case ">":
			v.OpGt()
		case ">=":
			v.OpGe()
		}
	}
}

func (c *cursor) additive(v builder.Visitor) error {
	if err := c.multiplicative(v); err != nil {
		return err
	}
	for {
		t, ok := c.peek()
		if !ok || !isInfix(t, "+", "-") {
			return nil
		}
		c.advance()
		if err := c.multiplicative(v); err != nil {
			return err
		}
		if t.TValue == "+" {
			v.OpAdd()
		} else {
			v.OpSub()
		}
	}
}

func (c *cursor) multiplicative(v builder.Visitor) error {
	if err := c.unary(v); err != nil {
		return err
	}
	for {
		t, ok := c.peek()
		if !ok || !isInfix(t, "*", "/") {
			return nil
		}
		c.advance()
		if err := c.unary(v); err != nil {
			return err
		}
		if t.TValue == "*" {
			v.OpMul()
		} else {
			v.OpDiv()
		}
	}
}

func (c *cursor) unary(v builder.Visitor) error {
	if t, ok := c.peek(); ok && t.TType == efp.TokenTypeOperatorPrefix && t.TValue == "-" {
		c.advance()
		if err := c.power(v); err != nil {
			return err
		}
		v.OpNeg()
		return nil
	}
	return c.power(v)
}

func (c *cursor) power(v builder.Visitor) error {
	if err := c.primary(v); err != nil {
		return err
	}
	for {
		t, ok := c.peek()
		if !ok || !isInfix(t, "^") {
			return nil
		}
		c.advance()
		if err := c.primary(v); err != nil {
			return err
		}
		v.OpPow()
	}
}

func (c *cursor) primary(v builder.Visitor) error {
	t, ok := c.advance()
	if !ok {
		return fmt.Errorf("%w: unexpected end of formula", ErrMalformedFormula)
	}

	switch {
	case t.TType == efp.TokenTypeSubexpression && t.TSubType == efp.TokenSubTypeStart:
		if err := c.comparison(v); err != nil {
			return err
		}
		end, ok := c.advance()
		if !ok || end.TType != efp.TokenTypeSubexpression || end.TSubType != efp.TokenSubTypeStop {
			return fmt.Errorf("%w: unbalanced parenthesis", ErrMalformedFormula)
		}
		return nil

	case t.TType == efp.TokenTypeFunction && t.TSubType == efp.TokenSubTypeStart:
		name := strings.TrimSuffix(t.TValue, "(")
		argc, err := c.functionArgs(v)
		if err != nil {
			return err
		}
		v.FuncCall(name, argc)
		return nil

	case t.TType == efp.TokenTypeOperand:
		return c.operand(v, t)

	default:
		return fmt.Errorf("%w: unexpected token %q", ErrMalformedFormula, t.TValue)
	}
}

// functionArgs consumes tokens up to and including the matching
// TokenSubTypeStop, feeding each Argument-separated slot through
// comparison and returning the number consumed.
func (c *cursor) functionArgs(v builder.Visitor) (int, error) {
	if t, ok := c.peek(); ok && t.TType == efp.TokenTypeFunction && t.TSubType == efp.TokenSubTypeStop {
		c.advance()
		return 0, nil
	}

	argc := 0
	for {
		if err := c.comparison(v); err != nil {
			return 0, err
		}
		argc++

		t, ok := c.advance()
		if !ok {
			return 0, fmt.Errorf("%w: unterminated function call", ErrMalformedFormula)
		}
		switch {
		case t.TType == efp.TokenTypeArgument:
			continue
		case t.TType == efp.TokenTypeFunction && t.TSubType == efp.TokenSubTypeStop:
			return argc, nil
		default:
			return 0, fmt.Errorf("%w: malformed function argument list", ErrMalformedFormula)
		}
	}
}

// operand dispatches an already-consumed operand token to the matching
// Visitor call.
func (c *cursor) operand(v builder.Visitor, t efp.Token) error {
	switch t.TSubType {
	case efp.TokenSubTypeNumber:
		n, err := strconv.ParseFloat(t.TValue, 64)
		if err != nil {
			return fmt.Errorf("%w: bad numeric literal %q", ErrMalformedFormula, t.TValue)
		}
		v.ValNumber(n)
	case efp.TokenSubTypeText:
		v.ValString(unquoteText(t.TValue))
	case efp.TokenSubTypeLogical:
		if strings.EqualFold(t.TValue, "TRUE") {
			v.ValNumber(1)
		} else {
			v.ValNumber(0)
		}
	case efp.TokenSubTypeRange:
		if strings.Contains(t.TValue, ":") {
			v.ValRange(t.TValue)
		} else {
			v.ValReference(t.TValue)
		}
	default:
		return fmt.Errorf("%w: unsupported operand %q", ErrMalformedFormula, t.TValue)
	}
	return nil
}

// unquoteText strips efp's surrounding double quotes and collapses its
// doubled-quote escape back to a single embedded quote.
func unquoteText(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `""`, `"`)
}
