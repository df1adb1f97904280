package expr

import (
	"io"
	"strconv"

	"github.com/basalt-labs/gospread/internal/cellpos"
	"github.com/basalt-labs/gospread/internal/value"
)

// FormatNumber renders a float64 the way every numeric serialization in
// this engine does: fixed notation with six fractional digits, the
// platform default `to_string(double)` style spec.md calls for.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// QuoteText doubles every embedded quote and wraps the result in a pair
// of double quotes. Used to precompute the serialized form of a
// formula-origin string literal at parse time.
func QuoteText(s string) string {
	quoted := make([]byte, 0, len(s)+2)
	quoted = append(quoted, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			quoted = append(quoted, '"', '"')
			continue
		}
		quoted = append(quoted, s[i])
	}
	quoted = append(quoted, '"')
	return string(quoted)
}

// Literal is a numeric or textual constant. A text literal produced by
// valString during formula parsing also carries its precomputed
// double-quoted form; a text literal produced directly by setCell's
// non-formula path does not, and serializes as its raw string.
type Literal struct {
	val       value.Value
	quoted    string
	hasQuoted bool
	formula   bool
}

// NewNumberLiteral builds a numeric constant node.
func NewNumberLiteral(v float64) *Literal {
	return &Literal{val: value.Number(v)}
}

// NewRawTextLiteral builds a textual constant node from a raw, non-formula
// cell value (setCell without a leading '=' and without a numeric parse).
func NewRawTextLiteral(s string) *Literal {
	return &Literal{val: value.Text(s)}
}

// NewQuotedTextLiteral builds a textual constant node from a formula's
// valString call, caching the double-quoted serialization alongside the
// raw string.
func NewQuotedTextLiteral(s string) *Literal {
	return &Literal{val: value.Text(s), quoted: QuoteText(s), hasQuoted: true}
}

func (n *Literal) Evaluate(Table, map[cellpos.Key]struct{}) value.Value { return n.val }

func (n *Literal) Clone() Node {
	c := *n
	return &c
}

func (n *Literal) RewriteRefs(cellpos.Offset) {}

func (n *Literal) Serialize(w io.Writer) {
	switch n.val.Kind {
	case value.NumberKind:
		v, _ := n.val.AsNumber()
		io.WriteString(w, FormatNumber(v))
	case value.TextKind:
		if n.hasQuoted {
			io.WriteString(w, n.quoted)
			return
		}
		s, _ := n.val.AsText()
		io.WriteString(w, s)
	}
}

func (n *Literal) IsFormula() bool { return n.formula }
func (n *Literal) MarkFormula()    { n.formula = true }
