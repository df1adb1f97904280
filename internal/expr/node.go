// Package expr implements the expression-tree node types: literals,
// cell references, and binary/unary operations. Nodes evaluate lazily
// against a Table handed in at call time, support structural cloning,
// reference-offset rewriting for copyRect, and expression-form
// serialization.
package expr

import (
	"io"

	"github.com/basalt-labs/gospread/internal/cellpos"
	"github.com/basalt-labs/gospread/internal/value"
)

// Table resolves a Position to the Node rooted there. Ref nodes take a
// Table as an evaluation-time parameter rather than storing one, so that
// cloning a cell table automatically redirects every Ref that walks
// through it — no node needs to be told about the clone.
type Table interface {
	Lookup(pos cellpos.Position) (Node, bool)
}

// Node is the tagged-sum expression tree: Literal, Ref, Binary, Unary,
// or the Discarded placeholder. Every variant implements all of the
// methods below.
type Node interface {
	// Evaluate computes this node's value against t, using visited to
	// detect reference cycles. visited is caller-owned and mutated only
	// for the duration of the recursive call chain it spans.
	Evaluate(t Table, visited map[cellpos.Key]struct{}) value.Value

	// Clone returns a deep structural copy. Ref children carry only a
	// Position, so they need no explicit rebinding: whichever Table is
	// passed to the clone's Evaluate call is the one it consults.
	Clone() Node

	// RewriteRefs applies off to every Ref reachable from this node,
	// honoring each Position's absolute-column/absolute-row flags.
	RewriteRefs(off cellpos.Offset)

	// Serialize writes this node's expression-text form to w.
	Serialize(w io.Writer)

	// IsFormula reports whether this node is a committed formula root.
	IsFormula() bool

	// MarkFormula sets IsFormula to true. Only ever called on the root
	// node of a freshly committed formula.
	MarkFormula()
}
