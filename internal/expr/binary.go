package expr

import (
	"io"
	"math"

	"github.com/basalt-labs/gospread/internal/cellpos"
	"github.com/basalt-labs/gospread/internal/value"
)

// BinOp identifies a binary operator kind.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// Binary is a two-child operation node.
type Binary struct {
	Op          BinOp
	Left, Right Node
	formula     bool
}

// NewBinary builds a binary operation node. op's children are evaluated
// left-then-right; the operator's own semantics decide how their values
// combine.
func NewBinary(op BinOp, left, right Node) *Binary {
	return &Binary{Op: op, Left: left, Right: right}
}

func (n *Binary) Evaluate(t Table, visited map[cellpos.Key]struct{}) value.Value {
	left := n.Left.Evaluate(t, visited)
	right := n.Right.Evaluate(t, visited)

	switch n.Op {
	case OpAdd:
		return evalAdd(left, right)
	case OpSub, OpMul, OpDiv, OpPow:
		return evalArithmetic(n.Op, left, right)
	default:
		return evalCompare(n.Op, left, right)
	}
}

// evalAdd implements the doubly-overloaded + operator: numeric addition,
// text concatenation, and a mixed numeric/text concatenation that
// coerces the number to its canonical decimal form.
func evalAdd(left, right value.Value) value.Value {
	if lv, ok := left.AsNumber(); ok {
		if rv, ok := right.AsNumber(); ok {
			return value.Number(lv + rv)
		}
		if rs, ok := right.AsText(); ok {
			return value.Text(FormatNumber(lv) + rs)
		}
		return value.Empty()
	}
	if ls, ok := left.AsText(); ok {
		if rs, ok := right.AsText(); ok {
			return value.Text(ls + rs)
		}
		if rv, ok := right.AsNumber(); ok {
			return value.Text(ls + FormatNumber(rv))
		}
		return value.Empty()
	}
	return value.Empty()
}

func evalArithmetic(op BinOp, left, right value.Value) value.Value {
	lv, ok1 := left.AsNumber()
	rv, ok2 := right.AsNumber()
	if !ok1 || !ok2 {
		return value.Empty()
	}
	switch op {
	case OpSub:
		return value.Number(lv - rv)
	case OpMul:
		return value.Number(lv * rv)
	case OpDiv:
		if rv == 0.0 {
			return value.Empty()
		}
		return value.Number(lv / rv)
	case OpPow:
		return value.Number(math.Pow(lv, rv))
	default:
		return value.Empty()
	}
}

// evalCompare implements the six comparison operators. Both operands
// must share the same variant (both Number or both Text); the result is
// always a Number, 1.0 or 0.0, never a boolean.
func evalCompare(op BinOp, left, right value.Value) value.Value {
	var cmp int
	switch {
	case left.Kind == value.NumberKind && right.Kind == value.NumberKind:
		lv, _ := left.AsNumber()
		rv, _ := right.AsNumber()
		cmp = compareFloat(lv, rv)
	case left.Kind == value.TextKind && right.Kind == value.TextKind:
		ls, _ := left.AsText()
		rs, _ := right.AsText()
		cmp = compareString(ls, rs)
	default:
		return value.Empty()
	}

	var result bool
	switch op {
	case OpEq:
		result = cmp == 0
	case OpNe:
		result = cmp != 0
	case OpLt:
		result = cmp < 0
	case OpLe:
		result = cmp <= 0
	case OpGt:
		result = cmp > 0
	case OpGe:
		result = cmp >= 0
	}
	if result {
		return value.Number(1.0)
	}
	return value.Number(0.0)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareString orders by code point, matching Go's native byte-wise
// string comparison for the ASCII range this engine is tested against.
func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (n *Binary) Clone() Node {
	return &Binary{Op: n.Op, Left: n.Left.Clone(), Right: n.Right.Clone()}
}

func (n *Binary) RewriteRefs(off cellpos.Offset) {
	n.Left.RewriteRefs(off)
	n.Right.RewriteRefs(off)
}

func (n *Binary) Serialize(w io.Writer) {
	io.WriteString(w, "(")
	n.Left.Serialize(w)
	io.WriteString(w, binOpSymbol(n.Op))
	n.Right.Serialize(w)
	io.WriteString(w, ")")
}

// binOpSymbol maps operators to their serialized form. Greater-equal
// serializes as "<=" — a reference-implementation quirk preserved here
// for wire compatibility; see DESIGN.md.
func binOpSymbol(op BinOp) string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	case OpEq:
		return "="
	case OpNe:
		return "<>"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return "<="
	default:
		return "?"
	}
}

func (n *Binary) IsFormula() bool { return n.formula }
func (n *Binary) MarkFormula()    { n.formula = true }
