package table

import "testing"

func TestRowSpanAbove(t *testing.T) {
	tbl := newTable(t, 3)
	mustAdd(t, tbl,
		bare("a"), &Cell{Content: "tall", RowSpan: 3, ColSpan: 2},
		bare("b"),
	)

	t.Run("Covered positions", func(t *testing.T) {
		for row := 1; row <= 2; row++ {
			for col := 1; col <= 2; col++ {
				c := tbl.RowSpanAbove(row, col)
				if c == nil || c.Content != "tall" {
					t.Errorf("(%d,%d): expected tall, got %v", row, col, c)
				}
			}
		}
	})

	t.Run("Origin row is not above itself", func(t *testing.T) {
		if c := tbl.RowSpanAbove(0, 1); c != nil {
			t.Errorf("expected nil at the origin row, got %v", c.Content)
		}
	})

	t.Run("Uncovered positions", func(t *testing.T) {
		for _, p := range [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 1}, {100, 2}, {-1, 0}, {0, -1}, {1, 3}, {1, 99}} {
			if c := tbl.RowSpanAbove(p[0], p[1]); c != nil {
				t.Errorf("(%d,%d): expected nil, got %v", p[0], p[1], c.Content)
			}
		}
	})

	t.Run("Open spans", func(t *testing.T) {
		spans := tbl.OpenSpans()
		if len(spans) != 1 {
			t.Fatalf("expected 1 open span, got %d", len(spans))
		}
		sp := spans[0]
		if sp.Row != 0 || sp.Col != 1 || sp.ColSpan != 2 || sp.Remaining != 1 {
			t.Errorf("unexpected span %+v", sp)
		}
		mustAdd(t, tbl, bare("c"))
		if len(tbl.OpenSpans()) != 0 {
			t.Error("expected the span closed once its last row finished")
		}
		if c := tbl.RowSpanAbove(2, 2); c == nil || c.Content != "tall" {
			t.Error("expected resident row 2 to keep its continuation")
		}
	})
}

func TestRowSpanAboveAfterFlush(t *testing.T) {
	tbl := newTable(t, 2)
	mustAdd(t, tbl, &Cell{Content: "a", RowSpan: 10})
	for i := 0; i < 5; i++ {
		mustAdd(t, tbl, bare(float64(i)))
		if err := tbl.CompleteRow(); err != nil {
			t.Fatalf("CompleteRow: %v", err)
		}
	}
	for row := 0; row < 5; row++ {
		s := tbl.Row(row).Slot(0)
		if row == 0 && s.Kind != SlotOrigin {
			t.Errorf("expected origin at (0,0), got %s", s.Kind)
		}
		if row > 0 && (s.Kind != SlotContinuation || s.Cell.Content != "a") {
			t.Errorf("expected continuation of a at (%d,0), got %s", row, s.Kind)
		}
	}
	if c := tbl.RowSpanAbove(3, 0); c == nil || c.Content != "a" {
		t.Fatalf("expected a above (3,0), got %v", c)
	}

	frag, err := tbl.RequestFragment(1000)
	if err != nil || frag == nil {
		t.Fatalf("RequestFragment: %v, %v", frag, err)
	}
	if len(frag.Rows) != 5 || frag.Rows[0].Index != 0 {
		t.Fatalf("expected rows 0-4 flushed, got %d rows", len(frag.Rows))
	}
	if tbl.Row(0) != nil {
		t.Error("expected row 0 evicted")
	}

	check := func(t *testing.T, tbl *Table) {
		t.Helper()
		for i := 5; i < 8; i++ {
			mustAdd(t, tbl, bare(float64(i)))
		}
		for row := 0; row < 10; row++ {
			if c := tbl.RowSpanAbove(row, 0); row > 0 && (c == nil || c.Content != "a") {
				t.Errorf("Row %d: expected a above, got %v", row, c)
			}
		}
		if c := tbl.RowSpanAbove(6, 0); c == nil || c.Content != "a" {
			t.Errorf("expected a above (6,0), got %v", c)
		}
		if c := tbl.RowSpanAbove(6, 1); c != nil {
			t.Errorf("expected nil at (6,1), got %v", c.Content)
		}
		if c := tbl.RowSpanAbove(10, 0); c != nil {
			t.Errorf("expected nil past the span, got %v", c.Content)
		}
		if got := tbl.Row(7).Slot(1).Cell.Content; got != 7.0 {
			t.Errorf("expected cell 7 at (7,1), got %v", got)
		}
	}

	t.Run("Resumed continuation", func(t *testing.T) {
		resumed, err := Resume(frag.Continuation, WithMeasurer(heights))
		if err != nil {
			t.Fatalf("Resume: %v", err)
		}
		check(t, resumed)
	})

	t.Run("Same table", func(t *testing.T) {
		check(t, tbl)
	})
}
