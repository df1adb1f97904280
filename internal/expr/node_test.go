package expr

import (
	"strings"
	"testing"

	"github.com/basalt-labs/gospread/internal/cellpos"
	"github.com/basalt-labs/gospread/internal/value"
)

// fakeTable is a minimal Table backed by a plain map, for exercising
// node evaluation without pulling in the builder package.
type fakeTable map[cellpos.Key]Node

func (t fakeTable) Lookup(pos cellpos.Position) (Node, bool) {
	n, ok := t[pos.Key()]
	return n, ok
}

func pos(t *testing.T, s string) cellpos.Position {
	t.Helper()
	p, err := cellpos.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return p
}

func eval(n Node, tbl fakeTable) value.Value {
	return n.Evaluate(tbl, map[cellpos.Key]struct{}{})
}

func TestLiteralEvaluate(t *testing.T) {
	num := NewNumberLiteral(42)
	if v := eval(num, nil); v.Kind != value.NumberKind {
		t.Fatalf("expected number, got %v", v)
	}

	txt := NewRawTextLiteral("hello")
	if v := eval(txt, nil); v.Kind != value.TextKind {
		t.Fatalf("expected text, got %v", v)
	}
}

func TestRefAbsentIsEmpty(t *testing.T) {
	r := NewRef(pos(t, "A1"))
	v := eval(r, fakeTable{})
	if !v.IsEmpty() {
		t.Fatalf("expected Empty for absent reference, got %v", v)
	}
}

func TestRefResolvesLive(t *testing.T) {
	tbl := fakeTable{pos(t, "A1").Key(): NewNumberLiteral(10)}
	r := NewRef(pos(t, "A1"))
	if v, _ := eval(r, tbl).AsNumber(); v != 10 {
		t.Fatalf("expected 10, got %v", v)
	}

	// editing the target is visible without re-evaluating r itself.
	tbl[pos(t, "A1").Key()] = NewNumberLiteral(99)
	if v, _ := eval(r, tbl).AsNumber(); v != 99 {
		t.Fatalf("expected 99 after edit, got %v", v)
	}
}

func TestCycleCollapsesToEmpty(t *testing.T) {
	tbl := fakeTable{}
	a1 := NewRef(pos(t, "B1"))
	b1 := NewRef(pos(t, "A1"))
	tbl[pos(t, "A1").Key()] = a1
	tbl[pos(t, "B1").Key()] = b1

	visited := map[cellpos.Key]struct{}{pos(t, "A1").Key(): {}}
	if v := a1.Evaluate(tbl, visited); !v.IsEmpty() {
		t.Fatalf("expected Empty on cycle, got %v", v)
	}
}

func TestBinaryArithmetic(t *testing.T) {
	cases := []struct {
		op   BinOp
		l, r float64
		want float64
	}{
		{OpAdd, 2, 3, 5},
		{OpSub, 5, 3, 2},
		{OpMul, 4, 3, 12},
		{OpDiv, 9, 3, 3},
		{OpPow, 2, 10, 1024},
	}
	for _, tc := range cases {
		n := NewBinary(tc.op, NewNumberLiteral(tc.l), NewNumberLiteral(tc.r))
		got, ok := eval(n, nil).AsNumber()
		if !ok || got != tc.want {
			t.Errorf("op=%d: got %v (ok=%v), want %v", tc.op, got, ok, tc.want)
		}
	}
}

func TestDivisionByZeroIsEmpty(t *testing.T) {
	n := NewBinary(OpDiv, NewNumberLiteral(1), NewNumberLiteral(0))
	if v := eval(n, nil); !v.IsEmpty() {
		t.Fatalf("expected Empty, got %v", v)
	}
}

func TestAddConcatenatesText(t *testing.T) {
	n := NewBinary(OpAdd, NewRawTextLiteral("foo"), NewRawTextLiteral("bar"))
	got, _ := eval(n, nil).AsText()
	if got != "foobar" {
		t.Fatalf("got %q, want foobar", got)
	}
}

func TestAddMixedNumberAndTextCoerces(t *testing.T) {
	n := NewBinary(OpAdd, NewRawTextLiteral("x="), NewNumberLiteral(5))
	got, _ := eval(n, nil).AsText()
	if got != "x="+FormatNumber(5) {
		t.Fatalf("got %q", got)
	}
}

func TestArithmeticTypeMismatchIsEmpty(t *testing.T) {
	n := NewBinary(OpSub, NewRawTextLiteral("a"), NewNumberLiteral(1))
	if v := eval(n, nil); !v.IsEmpty() {
		t.Fatalf("expected Empty, got %v", v)
	}
}

func TestComparisonYieldsNumericBoolean(t *testing.T) {
	eq := NewBinary(OpEq, NewNumberLiteral(3), NewNumberLiteral(3))
	got, _ := eval(eq, nil).AsNumber()
	if got != 1.0 {
		t.Fatalf("expected 1.0, got %v", got)
	}

	lt := NewBinary(OpLt, NewRawTextLiteral("a"), NewRawTextLiteral("b"))
	got, _ = eval(lt, nil).AsNumber()
	if got != 1.0 {
		t.Fatalf("expected 1.0 for a<b, got %v", got)
	}
}

func TestComparisonMismatchIsEmpty(t *testing.T) {
	n := NewBinary(OpGt, NewNumberLiteral(1), NewRawTextLiteral("a"))
	if v := eval(n, nil); !v.IsEmpty() {
		t.Fatalf("expected Empty, got %v", v)
	}
}

func TestUnaryNegation(t *testing.T) {
	n := NewUnaryNeg(NewNumberLiteral(5))
	got, _ := eval(n, nil).AsNumber()
	if got != -5 {
		t.Fatalf("got %v, want -5", got)
	}

	bad := NewUnaryNeg(NewRawTextLiteral("x"))
	if v := eval(bad, nil); !v.IsEmpty() {
		t.Fatalf("expected Empty, got %v", v)
	}
}

func TestSerializeBinaryFullyParenthesized(t *testing.T) {
	n := NewBinary(OpAdd, NewNumberLiteral(1), NewBinary(OpMul, NewNumberLiteral(2), NewNumberLiteral(3)))
	var sb strings.Builder
	n.Serialize(&sb)
	want := "(" + FormatNumber(1) + "+(" + FormatNumber(2) + "*" + FormatNumber(3) + "))"
	if sb.String() != want {
		t.Fatalf("got %q, want %q", sb.String(), want)
	}
}

func TestSerializeGreaterEqualQuirk(t *testing.T) {
	n := NewBinary(OpGe, NewNumberLiteral(1), NewNumberLiteral(2))
	var sb strings.Builder
	n.Serialize(&sb)
	want := "(" + FormatNumber(1) + "<=" + FormatNumber(2) + ")"
	if sb.String() != want {
		t.Fatalf("got %q, want %q", sb.String(), want)
	}
}

func TestSerializeQuotedVsRawText(t *testing.T) {
	raw := NewRawTextLiteral(`say "hi"`)
	var rawBuf strings.Builder
	raw.Serialize(&rawBuf)
	if rawBuf.String() != `say "hi"` {
		t.Fatalf("raw literal should serialize verbatim, got %q", rawBuf.String())
	}

	quoted := NewQuotedTextLiteral(`say "hi"`)
	var quotedBuf strings.Builder
	quoted.Serialize(&quotedBuf)
	if quotedBuf.String() != `"say ""hi"""` {
		t.Fatalf("got %q", quotedBuf.String())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := NewBinary(OpAdd, NewRef(pos(t, "A1")), NewNumberLiteral(1))
	clone := original.Clone().(*Binary)

	clone.Left.(*Ref).Pos = pos(t, "B2")
	if original.Left.(*Ref).Pos.String() != "A1" {
		t.Fatalf("mutating the clone's Ref mutated the original")
	}
}

func TestRewriteRefsHonorsAbsoluteFlags(t *testing.T) {
	n := NewBinary(OpAdd, NewRef(pos(t, "$A1")), NewRef(pos(t, "A$1")))
	n.RewriteRefs(cellpos.Offset{DCol: 2, DRow: 3})

	left := n.Left.(*Ref).Pos.String()
	right := n.Right.(*Ref).Pos.String()
	if left != "$A4" {
		t.Errorf("left = %q, want $A4", left)
	}
	if right != "C$1" {
		t.Errorf("right = %q, want C$1", right)
	}
}

func TestDiscardedAlwaysEmpty(t *testing.T) {
	if v := eval(NewDiscarded(), nil); !v.IsEmpty() {
		t.Fatalf("expected Empty, got %v", v)
	}
}
