// Package builder implements the parser-visitor callback interface and
// the cell table it populates: an operand stack that lives for one
// formula parse, and a Position-to-Node table that persists across
// calls. It also exposes the sheet-level copy primitives (clone,
// install-cloned-at, rewrite-refs) that back copyRect and whole-sheet
// clone.
package builder

import (
	"sort"

	"github.com/basalt-labs/gospread/internal/cellpos"
	"github.com/basalt-labs/gospread/internal/expr"
)

// Table is the cell store: Position (by Key) to root Node. It is the
// sole owner of root nodes; expr.Ref nodes look positions up by key,
// never by pointer, which is what makes cloning a Table also redirect
// every Ref consistently.
type Table struct {
	cells map[cellpos.Key]expr.Node
}

// NewTable returns an empty cell table.
func NewTable() *Table {
	return &Table{cells: make(map[cellpos.Key]expr.Node)}
}

// Lookup implements expr.Table.
func (t *Table) Lookup(pos cellpos.Position) (expr.Node, bool) {
	n, ok := t.cells[pos.Key()]
	return n, ok
}

// Has reports whether pos has a root node.
func (t *Table) Has(pos cellpos.Position) bool {
	_, ok := t.cells[pos.Key()]
	return ok
}

// Set installs root at pos, replacing any prior binding.
func (t *Table) Set(pos cellpos.Position, root expr.Node) {
	t.cells[pos.Key()] = root
}

// Clone returns a deep structural copy of every root, ready to be
// wrapped in a new Builder. Ref nodes inside the clone need no explicit
// rebinding: they carry only a Position and consult whichever Table
// they're evaluated against.
func (t *Table) Clone() *Table {
	nt := NewTable()
	for k, n := range t.cells {
		nt.cells[k] = n.Clone()
	}
	return nt
}

// Positions returns every occupied position, in ascending (Col, Row)
// order.
func (t *Table) Positions() []cellpos.Position {
	positions := make([]cellpos.Position, 0, len(t.cells))
	for k := range t.cells {
		positions = append(positions, cellpos.Position{Col: k.Col, Row: k.Row})
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Less(positions[j]) })
	return positions
}
