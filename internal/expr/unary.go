package expr

import (
	"io"

	"github.com/basalt-labs/gospread/internal/cellpos"
	"github.com/basalt-labs/gospread/internal/value"
)

// Unary is numeric negation, the sole unary operator this engine
// supports.
type Unary struct {
	Operand Node
	formula bool
}

// NewUnaryNeg builds a negation node wrapping operand.
func NewUnaryNeg(operand Node) *Unary { return &Unary{Operand: operand} }

func (n *Unary) Evaluate(t Table, visited map[cellpos.Key]struct{}) value.Value {
	v := n.Operand.Evaluate(t, visited)
	if num, ok := v.AsNumber(); ok {
		return value.Number(-num)
	}
	return value.Empty()
}

func (n *Unary) Clone() Node { return &Unary{Operand: n.Operand.Clone()} }

func (n *Unary) RewriteRefs(off cellpos.Offset) { n.Operand.RewriteRefs(off) }

func (n *Unary) Serialize(w io.Writer) {
	io.WriteString(w, "(-")
	n.Operand.Serialize(w)
	io.WriteString(w, ")")
}

func (n *Unary) IsFormula() bool { return n.formula }
func (n *Unary) MarkFormula()    { n.formula = true }
