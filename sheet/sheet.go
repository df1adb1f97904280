// Package sheet is the outer façade: SetCell, GetValue, CopyRect,
// Clone, Save, Load. It owns a builder.Builder and drives
// internal/formula against it for formula cells, matching the
// "thin outer façade" described in this engine's design.
package sheet

import (
	"io"
	"strconv"
	"strings"

	"github.com/basalt-labs/gospread/internal/builder"
	"github.com/basalt-labs/gospread/internal/cellpos"
	"github.com/basalt-labs/gospread/internal/expr"
	"github.com/basalt-labs/gospread/internal/formula"
	"github.com/basalt-labs/gospread/internal/persist"
	"github.com/basalt-labs/gospread/internal/value"
)

// Sheet is a single in-memory spreadsheet.
type Sheet struct {
	b *builder.Builder
}

// New returns an empty sheet.
func New() *Sheet {
	return &Sheet{b: builder.New()}
}

// SetCell parses contents and installs it at pos. A leading '=' routes
// the remainder through the formula parser; anything else is stored as
// a Number if it parses as a decimal, otherwise as raw Text. On parser
// or commit failure the cell is left unchanged and SetCell returns
// false.
func (s *Sheet) SetCell(pos cellpos.Position, contents string) bool {
	if strings.HasPrefix(contents, "=") {
		if err := formula.Parse(contents[1:], s.b); err != nil {
			s.b.Abort()
			return false
		}
		return s.b.Commit(pos)
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(contents), 64); err == nil {
		s.b.AddValueNode(pos, value.Number(n))
		return true
	}
	s.b.AddValueNode(pos, value.Text(contents))
	return true
}

// GetValue returns pos's value, Empty if pos has never been set.
func (s *Sheet) GetValue(pos cellpos.Position) value.Value {
	return s.b.GetValue(pos)
}

// Has reports whether pos has ever been set.
func (s *Sheet) Has(pos cellpos.Position) bool {
	return s.b.Has(pos)
}

// IsFormula reports whether pos's contents were committed as a formula
// root, as opposed to a plain literal. False for an absent cell.
func (s *Sheet) IsFormula(pos cellpos.Position) bool {
	node, ok := s.b.Table().Lookup(pos)
	if !ok {
		return false
	}
	return node.IsFormula()
}

// CopyRect copies the w×h rectangle rooted at src to the rectangle
// rooted at dst, rewriting relative references by the rectangle's
// offset. Every source cell is cloned before any destination cell is
// written, so overlapping rectangles cannot corrupt themselves; cells
// absent from the source region leave their destination counterpart
// untouched.
func (s *Sheet) CopyRect(dst, src cellpos.Position, w, h int) {
	offset := cellpos.Offset{DCol: dst.Col - src.Col, DRow: dst.Row - src.Row}

	type cloneEntry struct {
		pos    cellpos.Position
		cloned expr.Node
	}
	pending := make([]cloneEntry, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sp := cellpos.Position{Col: src.Col + x, Row: src.Row + y}
			node, ok := s.b.Table().Lookup(sp)
			if !ok {
				continue
			}
			dp := cellpos.Position{Col: dst.Col + x, Row: dst.Row + y}
			pending = append(pending, cloneEntry{pos: dp, cloned: node.Clone()})
		}
	}
	for _, entry := range pending {
		s.b.InstallClone(entry.pos, entry.cloned, offset)
	}
}

// Clone returns a deep structural copy of s: every root node is
// duplicated and bound to a fresh table, so mutating one sheet never
// affects the other.
func (s *Sheet) Clone() *Sheet {
	return &Sheet{b: s.b.Clone()}
}

// Save serializes every occupied cell to w in the tilde-delimited
// record format, sorted by position for deterministic output.
func (s *Sheet) Save(w io.Writer) error {
	positions := s.b.Table().Positions()
	records := make([]persist.Record, 0, len(positions))
	for _, p := range positions {
		node, ok := s.b.Table().Lookup(p)
		if !ok {
			continue
		}
		var sb strings.Builder
		node.Serialize(&sb)
		contents := sb.String()
		if node.IsFormula() {
			contents = "=" + contents
		}
		records = append(records, persist.Record{Col: p.Col, Row: p.Row, Contents: contents})
	}
	return persist.Encode(w, records)
}

// Load replaces s's entire contents with the records read from r. The
// whole stream is decoded first; a malformed record returns false with
// s unchanged. Otherwise the sheet is reset before replay begins: a
// record that fails to commit stops the load and returns false, leaving
// whatever records were already applied in place rather than the
// sheet's pre-Load contents.
func (s *Sheet) Load(r io.Reader) bool {
	records, err := persist.Decode(r)
	if err != nil {
		return false
	}
	s.b = builder.New()
	for _, rec := range records {
		pos := cellpos.Position{Col: rec.Col, Row: rec.Row}
		if !s.SetCell(pos, rec.Contents) {
			return false
		}
	}
	return true
}
