package table

// OpenSpan is a row span that still covers rows not finished yet. Every column it
// covers maps to the same record, and the record holds the origin cell itself, so a
// lookup never goes through the row the span started in.
type OpenSpan struct {
	Cell    *Cell
	Row     int
	Col     int
	ColSpan int
	// Remaining counts the rows still to be finished below the origin row.
	Remaining int
}

func (s *OpenSpan) lastRow() int { return s.Row + s.Cell.rowSpan() - 1 }

// reserved reports whether a span started above row covers (row, col).
func (t *Table) reserved(row, col int) bool {
	sp := t.open[col]
	return sp != nil && sp.Row < row && row <= sp.lastRow()
}

func (t *Table) closeSpan(sp *OpenSpan) {
	for i := 0; i < sp.ColSpan; i++ {
		if c := sp.Col + i; c < len(t.open) && t.open[c] == sp {
			t.open[c] = nil
		}
	}
}

// OpenSpans returns a copy of the spans still open, ordered by column.
func (t *Table) OpenSpans() []OpenSpan {
	var out []OpenSpan
	for c, sp := range t.open {
		if sp != nil && sp.Col == c {
			out = append(out, *sp)
		}
	}
	return out
}

// RowSpanAbove returns the cell started in an earlier row that covers (row, col), or
// nil. Resident rows answer from their continuation slots; rows already flushed, or
// not created yet, answer from the open spans. It never fails: positions outside the
// grid are simply not covered.
func (t *Table) RowSpanAbove(row, col int) *Cell {
	if row < 0 || col < 0 || col >= t.columns {
		return nil
	}
	if r := t.Row(row); r != nil {
		if s := r.slots[col]; s.Kind == SlotContinuation {
			return s.Cell
		}
		return nil
	}
	if t.reserved(row, col) {
		return t.open[col].Cell
	}
	return nil
}
