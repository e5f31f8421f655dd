package table

import (
	"testing"
)

func TestSnapshotResume(t *testing.T) {
	tbl := newTable(t, 3, WithHeaderRows(1))
	if err := tbl.SetWidths([]float64{1, 2, 1}); err != nil {
		t.Fatalf("SetWidths: %v", err)
	}
	tbl.SetTotalWidth(400)
	tbl.SetSpacing(3, 4)
	tbl.DefaultCell().Padding = UniformPadding(0)
	mustAdd(t, tbl, bare("h1"), bare("h2"), bare("h3"))
	mustAdd(t, tbl, bare(1.0), &Cell{Content: 9.0, RowSpan: 3, ColSpan: 2})

	snap := tbl.Snapshot()
	if snap.NextRow != 2 || snap.NextCol != 0 {
		t.Errorf("expected cursor (2,0), got (%d,%d)", snap.NextRow, snap.NextCol)
	}
	if len(snap.Spans) != 1 || snap.Spans[0].Remaining != 2 {
		t.Fatalf("expected one span with 2 rows remaining, got %+v", snap.Spans)
	}

	resumed, err := Resume(snap, WithMeasurer(heights))
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if resumed.TotalWidth() != 400 || resumed.HeaderRows() != 1 || resumed.SpacingAfter() != 4 {
		t.Errorf("expected configuration restored, got width %f header %d", resumed.TotalWidth(), resumed.HeaderRows())
	}
	if w := resumed.AbsoluteWidths(); len(w) != 3 || w[1] != 200 {
		t.Errorf("expected absolute widths [100 200 100], got %v", w)
	}

	for _, target := range []*Table{tbl, resumed} {
		mustAdd(t, target, bare(3.0), bare(4.0))
		row := target.Row(2)
		if row == nil || !row.Finished() {
			t.Fatal("expected row 2 finished")
		}
		if row.Slot(1).Kind != SlotContinuation || row.Slot(2).Kind != SlotContinuation {
			t.Errorf("expected continuations at (2,1) and (2,2)")
		}
		if len(target.OpenSpans()) != 0 {
			t.Errorf("expected span closed, got %+v", target.OpenSpans())
		}
	}

	if len(snap.Rows) != 2 || snap.Rows[1].Finished() {
		t.Error("expected the snapshot unaffected by later insertions")
	}
}

func TestResumeSharesSpanAcrossColumns(t *testing.T) {
	tbl := newTable(t, 3)
	mustAdd(t, tbl, &Cell{Content: "wide", RowSpan: 4, ColSpan: 2}, bare(1.0))
	frag, err := tbl.RequestFragment(100)
	if err != nil || frag == nil {
		t.Fatalf("RequestFragment: %v, %v", frag, err)
	}

	resumed, err := Resume(frag.Continuation, WithMeasurer(heights))
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	for i := 0; i < 3; i++ {
		mustAdd(t, resumed, bare(2.0))
	}
	if len(resumed.OpenSpans()) != 0 {
		t.Errorf("expected the span closed on both columns, got %+v", resumed.OpenSpans())
	}
	if c := resumed.RowSpanAbove(4, 1); c != nil {
		t.Errorf("expected nil below the span, got %v", c.Content)
	}
	if got := resumed.Row(4).Slot(0).Kind; got != SlotEmpty {
		t.Errorf("expected (4,0) free, got %s", got)
	}
}

func TestResumeValidation(t *testing.T) {
	tests := []struct {
		name string
		c    Continuation
	}{
		{"No columns", Continuation{}},
		{"Cursor out of range", Continuation{Columns: 2, NextCol: 3}},
		{"Span without cell", Continuation{Columns: 2, Spans: []OpenSpan{{ColSpan: 1}}}},
		{"Span past the grid", Continuation{Columns: 2, Spans: []OpenSpan{{Cell: &Cell{}, Col: 1, ColSpan: 2}}}},
		{"Overlapping spans", Continuation{Columns: 2, Spans: []OpenSpan{
			{Cell: &Cell{}, Col: 0, ColSpan: 2},
			{Cell: &Cell{}, Col: 1, ColSpan: 1},
		}}},
		{"Short row", Continuation{Columns: 2, Rows: []*Row{newRow(0, 1)}}},
		{"Gap between rows", Continuation{Columns: 1, Rows: []*Row{newRow(0, 1), newRow(2, 1)}}},
		{"Bad widths", Continuation{Columns: 2, Widths: []float64{1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resume(tt.c); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		from, to State
		ok       bool
	}{
		{Filling, AwaitingFlush, true},
		{Filling, Complete, false},
		{AwaitingFlush, Filling, true},
		{AwaitingFlush, Complete, true},
		{Complete, Filling, false},
		{Complete, AwaitingFlush, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			tbl := &Table{state: tt.from}
			err := tbl.transition(tt.to)
			if (err == nil) != tt.ok {
				t.Errorf("expected ok=%v, got %v", tt.ok, err)
			}
			if tt.ok && tbl.State() != tt.to {
				t.Errorf("expected %s, got %s", tt.to, tbl.State())
			}
			if !tt.ok && tbl.State() != tt.from {
				t.Errorf("expected state unchanged, got %s", tbl.State())
			}
		})
	}
}
