package table

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for zero columns")
	}
	tbl, err := New(3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tbl.Columns() != 3 {
		t.Errorf("expected 3 columns, got %d", tbl.Columns())
	}
	if tbl.State() != Filling {
		t.Errorf("expected Filling, got %s", tbl.State())
	}
	if tbl.WidthPercentage() != 100 {
		t.Errorf("expected width percentage 100, got %f", tbl.WidthPercentage())
	}
	if len(tbl.Rows()) != 0 {
		t.Errorf("expected no finished rows, got %d", len(tbl.Rows()))
	}
}

func TestAddCell(t *testing.T) {
	t.Run("Fills rows left to right", func(t *testing.T) {
		tbl := newTable(t, 2)
		mustAdd(t, tbl, bare("a"), bare("b"), bare("c"))
		rows := tbl.Rows()
		if len(rows) != 1 {
			t.Fatalf("expected 1 finished row, got %d", len(rows))
		}
		if got := rows[0].Slot(1).Cell.Content; got != "b" {
			t.Errorf("expected b at (0,1), got %v", got)
		}
		c := tbl.Row(1).Slot(0).Cell
		if c.Content != "c" || c.Row() != 1 || c.Col() != 0 || !c.Placed() {
			t.Errorf("unexpected cell at (1,0): %+v", c)
		}
		if tbl.Row(1).Finished() {
			t.Error("expected row 1 unfinished")
		}
	})

	t.Run("Stores a copy", func(t *testing.T) {
		tbl := newTable(t, 2)
		c := bare("a")
		mustAdd(t, tbl, c, c)
		c.Content = "changed"
		row := tbl.Row(0)
		if row.Slot(0).Cell == c || row.Slot(0).Cell.Content != "a" {
			t.Error("expected the table to hold its own copy")
		}
		if c.Placed() {
			t.Error("expected the caller's cell untouched")
		}
	})

	t.Run("Colspan", func(t *testing.T) {
		tbl := newTable(t, 3)
		mustAdd(t, tbl, &Cell{Content: "wide", ColSpan: 2}, bare("c"))
		row := tbl.Row(0)
		if !row.Finished() {
			t.Fatal("expected row 0 finished")
		}
		if row.Slot(1).Kind != SlotSpanned || row.Slot(1).Cell != row.Slot(0).Cell {
			t.Errorf("expected (0,1) spanned by the origin cell, got %s", row.Slot(1).Kind)
		}
		if len(row.Cells()) != 2 {
			t.Errorf("expected 2 cells, got %d", len(row.Cells()))
		}
	})

	t.Run("Skips reserved columns", func(t *testing.T) {
		tbl := newTable(t, 3)
		mustAdd(t, tbl, bare("a"), &Cell{Content: "tall", RowSpan: 2}, bare("c"), bare("d"), bare("e"))
		row := tbl.Row(1)
		if !row.Finished() {
			t.Fatal("expected row 1 finished")
		}
		if row.Slot(1).Kind != SlotContinuation || row.Slot(1).Cell.Content != "tall" {
			t.Errorf("expected continuation of tall at (1,1), got %s", row.Slot(1).Kind)
		}
		if row.Slot(2).Cell.Content != "e" {
			t.Errorf("expected e at (1,2), got %v", row.Slot(2).Cell.Content)
		}
	})

	t.Run("Row fully covered by spans finishes itself", func(t *testing.T) {
		tbl := newTable(t, 2)
		mustAdd(t, tbl, &Cell{Content: "a", RowSpan: 3}, &Cell{Content: "b", RowSpan: 2}, bare("c"))
		if !tbl.Row(1).Finished() {
			t.Fatal("expected row 1 finished by continuations")
		}
		if got := tbl.Row(2).Slot(1).Cell.Content; got != "c" {
			t.Errorf("expected c at (2,1), got %v", got)
		}
	})

	t.Run("Zero spans mean one", func(t *testing.T) {
		tbl := newTable(t, 2)
		mustAdd(t, tbl, &Cell{Content: "a"}, &Cell{Content: "b", RowSpan: 0, ColSpan: 0})
		if !tbl.Row(0).Finished() {
			t.Error("expected row 0 finished")
		}
		if len(tbl.OpenSpans()) != 0 {
			t.Error("expected no open span")
		}
	})

	t.Run("Nil and self", func(t *testing.T) {
		tbl := newTable(t, 1)
		if err := tbl.AddCell(nil); err == nil {
			t.Error("expected error for nil cell")
		}
		if err := tbl.AddTable(tbl); err == nil {
			t.Error("expected error for self nesting")
		}
	})
}

func TestAddCellInvalidSpan(t *testing.T) {
	tests := []struct {
		name  string
		setup []*Cell
		cell  *Cell
	}{
		{"Colspan above column count", nil, &Cell{ColSpan: 4}},
		{"Colspan overruns row", []*Cell{bare("a"), bare("b")}, &Cell{ColSpan: 2}},
		{"Negative rowspan", nil, &Cell{RowSpan: -1}},
		{"Negative colspan", nil, &Cell{ColSpan: -2}},
		{"Colspan over continuation", []*Cell{bare("a"), bare("b"), &Cell{RowSpan: 2}}, &Cell{ColSpan: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := newTable(t, 3)
			mustAdd(t, tbl, tt.setup...)
			before := tbl.Snapshot()
			err := tbl.AddCell(tt.cell)
			if !errors.Is(err, ErrInvalidSpan) {
				t.Fatalf("expected ErrInvalidSpan, got %v", err)
			}
			var span *InvalidSpanError
			if !errors.As(err, &span) || span.Columns != 3 {
				t.Errorf("expected *InvalidSpanError with 3 columns, got %v", err)
			}
			after := tbl.Snapshot()
			if after.NextRow != before.NextRow || after.NextCol != before.NextCol {
				t.Errorf("expected cursor unchanged, got (%d,%d) want (%d,%d)",
					after.NextRow, after.NextCol, before.NextRow, before.NextCol)
			}
			if len(after.Spans) != len(before.Spans) {
				t.Errorf("expected open spans unchanged")
			}
		})
	}
}

func TestCompleteRow(t *testing.T) {
	t.Run("Pads the row", func(t *testing.T) {
		tbl := newTable(t, 3)
		tbl.DefaultCell().MinHeight = 4
		mustAdd(t, tbl, bare("a"))
		if err := tbl.CompleteRow(); err != nil {
			t.Fatalf("CompleteRow: %v", err)
		}
		row := tbl.Row(0)
		if !row.Finished() {
			t.Fatal("expected row 0 finished")
		}
		for c := 1; c < 3; c++ {
			s := row.Slot(c)
			if s.Kind != SlotPadding || s.Cell.Content != nil || s.Cell.MinHeight != 4 {
				t.Errorf("expected padding at (0,%d), got %s", c, s.Kind)
			}
		}
		if row.Slot(1).Cell == row.Slot(2).Cell {
			t.Error("expected a fresh padding cell per slot")
		}
		mustAdd(t, tbl, bare("b"))
		if got := tbl.Row(1).Slot(0).Cell.Content; got != "b" {
			t.Errorf("expected b at (1,0), got %v", got)
		}
	})

	t.Run("No-op after a row filled up", func(t *testing.T) {
		tbl := newTable(t, 2)
		mustAdd(t, tbl, bare("a"), bare("b"))
		if err := tbl.CompleteRow(); err != nil {
			t.Fatalf("CompleteRow: %v", err)
		}
		if err := tbl.CompleteRow(); err != nil {
			t.Fatalf("CompleteRow: %v", err)
		}
		if n := len(tbl.Rows()); n != 1 {
			t.Errorf("expected 1 finished row, got %d", n)
		}
	})

	t.Run("Repeated call adds no empty row", func(t *testing.T) {
		tbl := newTable(t, 2)
		mustAdd(t, tbl, bare("a"))
		_ = tbl.CompleteRow()
		_ = tbl.CompleteRow()
		mustAdd(t, tbl, bare("b"), bare("c"))
		if n := len(tbl.Rows()); n != 2 {
			t.Errorf("expected 2 finished rows, got %d", n)
		}
	})

	t.Run("Keeps continuations", func(t *testing.T) {
		tbl := newTable(t, 3)
		mustAdd(t, tbl, &Cell{Content: "tall", RowSpan: 2}, bare("b"), bare("c"), bare("d"))
		_ = tbl.CompleteRow()
		row := tbl.Row(1)
		if !row.Finished() {
			t.Fatal("expected row 1 finished")
		}
		if row.Slot(0).Kind != SlotContinuation {
			t.Errorf("expected continuation at (1,0), got %s", row.Slot(0).Kind)
		}
		if row.Slot(1).Cell.Content != "d" || row.Slot(2).Kind != SlotPadding {
			t.Error("expected d at (1,1) and padding at (1,2)")
		}
		if len(tbl.OpenSpans()) != 0 {
			t.Error("expected the span closed after its last row")
		}
	})
}

func TestHeaderRows(t *testing.T) {
	tbl := newTable(t, 2, WithHeaderRows(1))
	mustAdd(t, tbl, bare("h1"), bare("h2"), bare("a"))
	if err := tbl.AddCell(&Cell{RowSpan: 2}); err != nil {
		t.Fatalf("AddCell: %v", err)
	}

	hdr := newTable(t, 2, WithHeaderRows(1))
	err := hdr.AddCell(&Cell{RowSpan: 2})
	if !errors.Is(err, ErrInvalidSpan) {
		t.Errorf("expected span across the header boundary to fail, got %v", err)
	}
	if tbl.Row(0) == nil || tbl.Row(0).Slot(0).Cell.Content != "h1" {
		t.Error("expected header row 0 retrievable")
	}
}
