package table

import (
	"fmt"
)

// Continuation is the state a table needs to carry on after a page split: the rows not
// flushed yet, the spans still open and the cursor. A Table built with Resume from a
// Continuation accepts further cells exactly as the table that produced it would.
type Continuation struct {
	Columns         int
	Widths          []float64
	TotalWidth      float64
	WidthPercentage float64
	SpacingBefore   float64
	SpacingAfter    float64
	KeepTogether    bool
	Complete        bool
	HeaderRows      int
	DefaultCell     Cell

	Header []*Row
	Rows   []*Row
	Spans  []OpenSpan

	NextRow      int
	NextCol      int
	RowCompleted bool
	Flushed      int
	Fragments    int
}

// Snapshot exports the current continuation state. Rows are copied; the cells they
// hold are shared with the table.
func (t *Table) Snapshot() Continuation {
	c := Continuation{
		Columns:         t.columns,
		Widths:          append([]float64(nil), t.widths...),
		TotalWidth:      t.totalWidth,
		WidthPercentage: t.widthPercentage,
		SpacingBefore:   t.spacingBefore,
		SpacingAfter:    t.spacingAfter,
		KeepTogether:    t.keepTogether,
		Complete:        t.complete,
		HeaderRows:      t.headerRows,
		DefaultCell:     t.defaultCell,
		Spans:           t.OpenSpans(),
		NextRow:         t.cursor.row,
		NextCol:         t.cursor.col,
		RowCompleted:    t.rowCompleted,
		Flushed:         t.flushed,
		Fragments:       t.fragments,
	}
	for _, r := range t.header {
		c.Header = append(c.Header, r.copy())
	}
	for _, r := range t.rows {
		c.Rows = append(c.Rows, r.copy())
	}
	return c
}

// Resume rebuilds a table from a continuation. Options apply on top of the restored
// configuration; the measurer and logger are not part of the continuation.
func Resume(c Continuation, opts ...Option) (*Table, error) {
	if c.Columns < 1 {
		return nil, fmt.Errorf("table: continuation has %d columns", c.Columns)
	}
	if c.NextCol < 0 || c.NextCol > c.Columns {
		return nil, fmt.Errorf("table: continuation cursor column %d out of range", c.NextCol)
	}
	t, err := New(c.Columns, opts...)
	if err != nil {
		return nil, err
	}
	t.rows = nil
	if c.Widths != nil {
		if err := t.SetWidths(c.Widths); err != nil {
			return nil, err
		}
	}
	t.totalWidth = c.TotalWidth
	t.widthPercentage = c.WidthPercentage
	t.spacingBefore, t.spacingAfter = c.SpacingBefore, c.SpacingAfter
	t.keepTogether = c.KeepTogether
	t.complete = c.Complete
	t.headerRows = c.HeaderRows
	t.defaultCell = c.DefaultCell

	for _, sp := range c.Spans {
		if sp.Cell == nil || sp.Col < 0 || sp.ColSpan < 1 || sp.Col+sp.ColSpan > c.Columns {
			return nil, fmt.Errorf("table: continuation span at row %d col %d is invalid", sp.Row, sp.Col)
		}
		open := sp
		for i := 0; i < sp.ColSpan; i++ {
			if t.open[sp.Col+i] != nil {
				return nil, fmt.Errorf("table: continuation spans overlap at col %d", sp.Col+i)
			}
			t.open[sp.Col+i] = &open
		}
	}
	for _, r := range c.Header {
		if len(r.slots) != c.Columns {
			return nil, fmt.Errorf("table: continuation header row %d has %d slots", r.Index, len(r.slots))
		}
		t.header = append(t.header, r.copy())
	}
	next := -1
	for _, r := range c.Rows {
		if len(r.slots) != c.Columns {
			return nil, fmt.Errorf("table: continuation row %d has %d slots", r.Index, len(r.slots))
		}
		if next >= 0 && r.Index != next {
			return nil, fmt.Errorf("table: continuation rows are not contiguous at %d", r.Index)
		}
		next = r.Index + 1
		t.rows = append(t.rows, r.copy())
	}
	t.cursor = position{row: c.NextRow, col: c.NextCol}
	t.rowCompleted = c.RowCompleted
	t.flushed = c.Flushed
	t.fragments = c.Fragments
	t.settle()
	return t, nil
}
