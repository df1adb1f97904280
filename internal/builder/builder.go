package builder

import (
	"errors"
	"fmt"

	"github.com/basalt-labs/gospread/internal/cellpos"
	"github.com/basalt-labs/gospread/internal/expr"
	"github.com/basalt-labs/gospread/internal/value"
)

// ErrUnderflow is returned when a parser op-code pops more operands than
// the stack holds — a malformed formula.
var ErrUnderflow = errors.New("builder: operand stack underflow")

// ErrMalformedReference is returned when valReference is handed a string
// that does not parse as a Position.
var ErrMalformedReference = errors.New("builder: malformed cell reference")

// Visitor is the callback interface an external formula parser drives,
// in postfix order, while walking a formula. This is the "builder
// interface" the core specifies for a black-box parser to consume; see
// internal/formula for this repository's implementation of that parser.
type Visitor interface {
	ValNumber(v float64)
	ValString(s string)
	ValReference(pos string)
	OpAdd()
	OpSub()
	OpMul()
	OpDiv()
	OpPow()
	OpEq()
	OpNe()
	OpLt()
	OpLe()
	OpGt()
	OpGe()
	OpNeg()
	ValRange(text string)
	FuncCall(name string, argc int)
}

// Builder is both the parser's Visitor sink and the sheet's cell store.
// The operand stack is transient — emptied by every Commit, successful
// or not — while the Table persists across formulas.
type Builder struct {
	table *Table
	stack []expr.Node
	err   error
}

// New returns a Builder over a fresh, empty cell table.
func New() *Builder {
	return &Builder{table: NewTable()}
}

// Table exposes the underlying cell table, e.g. for copyRect's
// clone-then-install two-phase write.
func (b *Builder) Table() *Table { return b.table }

func (b *Builder) push(n expr.Node) { b.stack = append(b.stack, n) }

func (b *Builder) pop() (expr.Node, bool) {
	if len(b.stack) == 0 {
		return nil, false
	}
	n := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return n, true
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// --- Visitor implementation, driven by internal/formula in postfix order ---

func (b *Builder) ValNumber(v float64) { b.push(expr.NewNumberLiteral(v)) }

func (b *Builder) ValString(s string) { b.push(expr.NewQuotedTextLiteral(s)) }

func (b *Builder) ValReference(s string) {
	p, err := cellpos.Parse(s)
	if err != nil {
		b.fail(fmt.Errorf("%w: %q", ErrMalformedReference, s))
		return
	}
	b.push(expr.NewRef(p))
}

func (b *Builder) binary(op expr.BinOp) {
	right, ok1 := b.pop()
	left, ok2 := b.pop()
	if !ok1 || !ok2 {
		b.fail(ErrUnderflow)
		return
	}
	b.push(expr.NewBinary(op, left, right))
}

func (b *Builder) OpAdd() { b.binary(expr.OpAdd) }
func (b *Builder) OpSub() { b.binary(expr.OpSub) }
func (b *Builder) OpMul() { b.binary(expr.OpMul) }
func (b *Builder) OpDiv() { b.binary(expr.OpDiv) }
func (b *Builder) OpPow() { b.binary(expr.OpPow) }
func (b *Builder) OpEq()  { b.binary(expr.OpEq) }
func (b *Builder) OpNe()  { b.binary(expr.OpNe) }
func (b *Builder) OpLt()  { b.binary(expr.OpLt) }
func (b *Builder) OpLe()  { b.binary(expr.OpLe) }
func (b *Builder) OpGt()  { b.binary(expr.OpGt) }
func (b *Builder) OpGe()  { b.binary(expr.OpGe) }

func (b *Builder) OpNeg() {
	operand, ok := b.pop()
	if !ok {
		b.fail(ErrUnderflow)
		return
	}
	b.push(expr.NewUnaryNeg(operand))
}

// ValRange and FuncCall are unsupported features (spec's Non-goals):
// accepted, and their operands discarded, but a single placeholder is
// still pushed so the stack arithmetic of a larger enclosing expression
// stays consistent.
func (b *Builder) ValRange(string) { b.push(expr.NewDiscarded()) }

func (b *Builder) FuncCall(_ string, argc int) {
	for i := 0; i < argc; i++ {
		if _, ok := b.pop(); !ok {
			b.fail(ErrUnderflow)
			break
		}
	}
	b.push(expr.NewDiscarded())
}

// --- Commit / storage ---

// Commit finishes a formula parse: if exactly one node remains on the
// stack and no op-code failed, it becomes pos's root, marked as a
// formula. Otherwise the stack is discarded and the table is left
// untouched.
func (b *Builder) Commit(pos cellpos.Position) bool {
	ok := b.err == nil && len(b.stack) == 1
	root := (expr.Node)(nil)
	if ok {
		root = b.stack[0]
	}
	b.stack = nil
	b.err = nil
	if !ok {
		return false
	}
	root.MarkFormula()
	b.table.Set(pos, root)
	return true
}

// AddValueNode installs a fresh, non-formula literal at pos.
func (b *Builder) AddValueNode(pos cellpos.Position, v value.Value) {
	var node expr.Node
	switch v.Kind {
	case value.NumberKind:
		n, _ := v.AsNumber()
		node = expr.NewNumberLiteral(n)
	case value.TextKind:
		s, _ := v.AsText()
		node = expr.NewRawTextLiteral(s)
	default:
		node = expr.NewDiscarded()
	}
	b.table.Set(pos, node)
}

// Has reports whether pos has a root node.
func (b *Builder) Has(pos cellpos.Position) bool { return b.table.Has(pos) }

// GetValue seeds the cycle guard with pos itself — so a self-referencing
// root collapses to Empty — and evaluates the root.
func (b *Builder) GetValue(pos cellpos.Position) value.Value {
	node, ok := b.table.Lookup(pos)
	if !ok {
		return value.Empty()
	}
	visited := map[cellpos.Key]struct{}{pos.Key(): {}}
	return node.Evaluate(b.table, visited)
}

// Abort discards a partially-built operand stack after a parser-level
// grammar failure that occurred before Commit was reached, so the next
// formula parse starts from a clean stack.
func (b *Builder) Abort() {
	b.stack = nil
	b.err = nil
}

// Clone returns a new Builder over a deep copy of this one's table. The
// new builder's operand stack starts empty regardless of this one's
// mid-parse state.
func (b *Builder) Clone() *Builder {
	return &Builder{table: b.table.Clone()}
}

// InstallClone writes a pre-cloned node at dst and rewrites every Ref it
// contains by off. Used by copyRect after the clone-first pass has
// materialized every source cell in the rectangle.
func (b *Builder) InstallClone(dst cellpos.Position, cloned expr.Node, off cellpos.Offset) {
	cloned.RewriteRefs(off)
	b.table.Set(dst, cloned)
}
