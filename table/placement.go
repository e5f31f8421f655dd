package table

import (
	"errors"

	"github.com/wudi/pdftable/observability"
)

// AddCell places a copy of c at the cursor. Columns reserved by row spans from earlier
// rows are skipped; reaching the last column finishes the row and moves the cursor to
// the next one.
func (t *Table) AddCell(c *Cell) error {
	if t.state == Complete {
		return &TableClosedError{Op: "add cell"}
	}
	if c == nil {
		return errors.New("table: nil cell")
	}
	if c.Table == t {
		return errors.New("table: a table cannot contain itself")
	}
	row := t.pending()
	at := t.cursor
	rs, cs := c.rowSpan(), c.colSpan()
	if err := t.fits(row, at, c.RowSpan, c.ColSpan); err != nil {
		return err
	}
	if t.state == AwaitingFlush {
		_ = t.transition(Filling)
	}

	cell := c.clone()
	cell.row, cell.col, cell.placed = at.row, at.col, true
	row.slots[at.col] = Slot{Kind: SlotOrigin, Cell: cell}
	for i := 1; i < cs; i++ {
		row.slots[at.col+i] = Slot{Kind: SlotSpanned, Cell: cell}
	}
	if rs > 1 {
		sp := &OpenSpan{Cell: cell, Row: at.row, Col: at.col, ColSpan: cs, Remaining: rs - 1}
		for i := 0; i < cs; i++ {
			t.open[at.col+i] = sp
		}
		t.log.Debug("row span opened",
			observability.Int("row", at.row),
			observability.Int("col", at.col),
			observability.Int("rowspan", rs),
			observability.Int("colspan", cs))
	}

	t.cursor.col += cs
	t.settle()
	t.rowCompleted = t.cursor.row != at.row
	return nil
}

// AddContent adds a copy of the default cell holding content.
func (t *Table) AddContent(content any) error {
	c := t.defaultCell
	c.Content = content
	c.Table = nil
	return t.AddCell(&c)
}

// AddTable adds a copy of the default cell holding a nested table.
func (t *Table) AddTable(nested *Table) error {
	c := t.defaultCell
	c.Content = nil
	c.Table = nested
	return t.AddCell(&c)
}

// CompleteRow pads the empty slots of the current row with copies of the default cell
// and finishes it. It does nothing when the last insertion already finished a row.
func (t *Table) CompleteRow() error {
	if t.state == Complete {
		return &TableClosedError{Op: "complete row"}
	}
	if t.rowCompleted {
		return nil
	}
	if t.state == AwaitingFlush {
		_ = t.transition(Filling)
	}
	row := t.pending()
	t.pad(row)
	t.finishRow(row)
	t.settle()
	t.rowCompleted = true
	return nil
}

// fits validates a span at the cursor without touching the grid.
func (t *Table) fits(row *Row, at position, rowSpan, colSpan int) error {
	fail := func(reason string) error {
		return &InvalidSpanError{
			Row: at.row, Col: at.col,
			RowSpan: rowSpan, ColSpan: colSpan,
			Columns: t.columns, Reason: reason,
		}
	}
	if rowSpan < 0 || colSpan < 0 {
		return fail("negative span")
	}
	rs, cs := max(rowSpan, 1), max(colSpan, 1)
	if cs > t.columns {
		return fail("colspan exceeds column count")
	}
	if at.col+cs > t.columns {
		return fail("colspan overruns the row")
	}
	for i := 1; i < cs; i++ {
		if row.slots[at.col+i].Kind != SlotEmpty {
			return fail("colspan overlaps a cell from an earlier row")
		}
	}
	if at.row < t.headerRows && at.row+rs > t.headerRows {
		return fail("rowspan crosses the header boundary")
	}
	return nil
}

// pending returns the row under the cursor, creating it when the previous one is
// finished. A new row starts with its continuation slots filled in.
func (t *Table) pending() *Row {
	if n := len(t.rows); n > 0 && !t.rows[n-1].finished {
		return t.rows[n-1]
	}
	row := newRow(t.cursor.row, t.columns)
	for c := 0; c < t.columns; c++ {
		if t.reserved(row.Index, c) {
			row.slots[c] = Slot{Kind: SlotContinuation, Cell: t.open[c].Cell}
		}
	}
	t.rows = append(t.rows, row)
	return row
}

// settle moves the cursor past occupied slots, finishing rows that fill up on the way.
func (t *Table) settle() {
	for {
		row := t.pending()
		for t.cursor.col < t.columns && row.slots[t.cursor.col].Kind != SlotEmpty {
			t.cursor.col++
		}
		if t.cursor.col < t.columns {
			return
		}
		t.finishRow(row)
	}
}

// finishRow marks the pending row finished, counts down the spans continuing through it
// and moves the cursor to the start of the next row.
func (t *Table) finishRow(row *Row) {
	row.finished = true
	for c := 0; c < t.columns; c++ {
		sp := t.open[c]
		if sp == nil || sp.Col != c || sp.Row >= row.Index {
			continue
		}
		sp.Remaining--
		if sp.Remaining <= 0 {
			t.closeSpan(sp)
		}
	}
	if row.Index < t.headerRows {
		t.rows = t.rows[:len(t.rows)-1]
		t.header = append(t.header, row)
	}
	t.cursor = position{row: row.Index + 1}
	t.log.Debug("row finished", observability.Int("row", row.Index))
}

func (t *Table) pad(row *Row) {
	for c := range row.slots {
		if row.slots[c].Kind != SlotEmpty {
			continue
		}
		cell := t.defaultCell.clone()
		cell.Content, cell.Table = nil, nil
		cell.RowSpan, cell.ColSpan = 1, 1
		cell.row, cell.col, cell.placed = row.Index, c, true
		row.slots[c] = Slot{Kind: SlotPadding, Cell: cell}
	}
}

// Cursor returns the position the next cell will be placed at.
func (t *Table) Cursor() (row, col int) { return t.cursor.row, t.cursor.col }
