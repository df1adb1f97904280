package expr

import (
	"io"

	"github.com/basalt-labs/gospread/internal/cellpos"
	"github.com/basalt-labs/gospread/internal/value"
)

// Ref is an indirection to another cell, resolved through whichever
// Table is handed to Evaluate. It never caches the target node, so
// editing the referenced cell is visible on the very next evaluation.
type Ref struct {
	Pos     cellpos.Position
	formula bool
}

// NewRef builds a reference node bound to pos.
func NewRef(pos cellpos.Position) *Ref { return &Ref{Pos: pos} }

// Evaluate implements the cycle guard: a position already in visited, or
// absent from the table, collapses to Empty; otherwise the position is
// marked visited for the duration of the recursive evaluation and
// unmarked on return.
func (n *Ref) Evaluate(t Table, visited map[cellpos.Key]struct{}) value.Value {
	key := n.Pos.Key()
	if _, seen := visited[key]; seen {
		return value.Empty()
	}
	target, ok := t.Lookup(n.Pos)
	if !ok {
		return value.Empty()
	}
	visited[key] = struct{}{}
	result := target.Evaluate(t, visited)
	delete(visited, key)
	return result
}

func (n *Ref) Clone() Node { return &Ref{Pos: n.Pos} }

func (n *Ref) RewriteRefs(off cellpos.Offset) { n.Pos = n.Pos.Offset(off) }

func (n *Ref) Serialize(w io.Writer) { io.WriteString(w, n.Pos.String()) }

func (n *Ref) IsFormula() bool { return n.formula }
func (n *Ref) MarkFormula()    { n.formula = true }
