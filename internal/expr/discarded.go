package expr

import (
	"io"

	"github.com/basalt-labs/gospread/internal/cellpos"
	"github.com/basalt-labs/gospread/internal/value"
)

// Discarded stands in for a range reference or function call: syntax
// the builder accepts but whose functionality is out of scope (see
// spec's Non-goals). It always evaluates to Empty, so a formula that
// embeds one in a larger expression still evaluates and serializes
// consistently instead of corrupting the operand stack.
type Discarded struct {
	formula bool
}

// NewDiscarded builds a placeholder node for an unsupported operand.
func NewDiscarded() *Discarded { return &Discarded{} }

func (n *Discarded) Evaluate(Table, map[cellpos.Key]struct{}) value.Value { return value.Empty() }

func (n *Discarded) Clone() Node { return &Discarded{} }

func (n *Discarded) RewriteRefs(cellpos.Offset) {}

func (n *Discarded) Serialize(w io.Writer) { io.WriteString(w, "") }

func (n *Discarded) IsFormula() bool { return n.formula }
func (n *Discarded) MarkFormula()    { n.formula = true }
