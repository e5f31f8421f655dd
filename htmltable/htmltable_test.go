package htmltable

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/wudi/pdftable/table"
)

func parse(t *testing.T, src string, opts ...Option) []*table.Table {
	t.Helper()
	tables, err := Parse(strings.NewReader(src), opts...)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tables
}

func TestParseBasic(t *testing.T) {
	tables := parse(t, `
<p>before</p>
<table width="60%">
  <thead><tr><th>Name</th><th align="right">Qty</th></tr></thead>
  <tbody>
    <tr><td>Apples <b>red</b></td><td align="right" valign="bottom">3</td></tr>
    <tr><td>Pears<br>green</td><td>7</td></tr>
  </tbody>
</table>
<table><tr><td>second</td></tr></table>`)

	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	tbl := tables[0]
	if tbl.Columns() != 2 || tbl.HeaderRows() != 1 || !tbl.Complete() || tbl.WidthPercentage() != 60 {
		t.Errorf("unexpected table: %d columns, %d header rows", tbl.Columns(), tbl.HeaderRows())
	}
	rows := tbl.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if got := rows[0].Slot(1).Cell; got.Content != "Qty" || got.HAlign != table.HAlignRight {
		t.Errorf("unexpected header cell %+v", got)
	}
	if got := rows[1].Slot(0).Cell.Content; got != "Apples red" {
		t.Errorf("expected %q, got %q", "Apples red", got)
	}
	if got := rows[1].Slot(1).Cell.VAlign; got != table.VAlignBottom {
		t.Errorf("expected bottom alignment, got %q", got)
	}
	if got := rows[2].Slot(0).Cell.Content; got != "Pears\ngreen" {
		t.Errorf("expected a line break, got %q", got)
	}
}

func TestParseSpans(t *testing.T) {
	tables := parse(t, `<table>
<tr><td rowspan="2">A</td><td colspan="2">B</td></tr>
<tr><td>C</td><td>D</td></tr>
<tr><td>E</td><td rowspan="5">F</td></tr>
</table>`)
	tbl := tables[0]
	if tbl.Columns() != 3 {
		t.Fatalf("expected 3 columns, got %d", tbl.Columns())
	}
	rows := tbl.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if s := rows[1].Slot(0); s.Kind != table.SlotContinuation || s.Cell.Content != "A" {
		t.Errorf("expected A to continue into row 1, got %s", s.Kind)
	}
	if got := rows[1].Slot(2).Cell.Content; got != "D" {
		t.Errorf("expected D at (1,2), got %v", got)
	}
	if s := rows[2].Slot(2); s.Kind != table.SlotPadding {
		t.Errorf("expected the short last row padded, got %s", s.Kind)
	}
	if got := rows[2].Slot(1).Cell.RowSpan; got != 1 {
		t.Errorf("expected F clipped to the last row, got rowspan %d", got)
	}
}

func TestParseNested(t *testing.T) {
	tables := parse(t, `<table>
<tr><td><table><tr><td>x</td></tr><tr><td>y</td></tr></table></td><td>z</td></tr>
</table>`, WithTableOptions(table.WithMeasurer(table.MeasurerFunc(func(any, float64) table.Metrics {
		return table.Metrics{Height: 10}
	}))))
	if len(tables) != 1 {
		t.Fatalf("expected the nested table not to be listed, got %d tables", len(tables))
	}
	outer := tables[0]
	cell := outer.Rows()[0].Slot(0).Cell
	if cell.Table == nil || cell.Content != nil {
		t.Fatalf("expected a nested table cell, got %+v", cell)
	}
	if n := len(cell.Table.Rows()); n != 2 {
		t.Errorf("expected 2 nested rows, got %d", n)
	}
	outer.CalculateHeights()
	// two nested rows of 10 plus 2 points of padding each, inside 2 points of padding
	if got := outer.Rows()[0].MaxHeight(); got != 32 {
		t.Errorf("expected 32, got %f", got)
	}
}

func TestParseSetup(t *testing.T) {
	var seen int
	parse(t, `<table><tr><td><table><tr><td>x</td></tr></table></td></tr></table>`,
		WithSetup(func(t *table.Table) {
			seen++
			t.DefaultCell().Padding = table.UniformPadding(0)
		}))
	if seen != 2 {
		t.Errorf("expected setup on both tables, got %d", seen)
	}
}

func TestParseEmpty(t *testing.T) {
	tables := parse(t, `<table></table>`)
	if len(tables) != 1 || tables[0].Columns() != 1 || len(tables[0].Rows()) != 0 {
		t.Errorf("expected an empty one-column table")
	}
}

func TestParseSpanLimits(t *testing.T) {
	tables := parse(t, `<table><tr><td colspan="2000000">x</td></tr></table>`)
	if got := tables[0].Columns(); got != maxColSpan {
		t.Errorf("expected colspan capped to %d columns, got %d", maxColSpan, got)
	}

	td := &html.Node{Type: html.ElementNode, Data: "td", Attr: []html.Attribute{
		{Key: "rowspan", Val: "100000"},
		{Key: "colspan", Val: "0"},
	}}
	if got := span(td, "rowspan", maxRowSpan); got != maxRowSpan {
		t.Errorf("expected rowspan %d, got %d", maxRowSpan, got)
	}
	if got := span(td, "colspan", maxColSpan); got != 1 {
		t.Errorf("expected colspan 1, got %d", got)
	}
}

func TestParseOverlappingSpans(t *testing.T) {
	tables := parse(t, `<table>
<tr><td>a</td><td rowspan=2>b</td></tr>
<tr><td colspan=2>c</td></tr>
</table>`)
	tbl := tables[0]
	if tbl.Columns() != 2 {
		t.Fatalf("expected 2 columns, got %d", tbl.Columns())
	}
	rows := tbl.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if c := rows[1].Slot(0).Cell; c.Content != "c" || c.ColSpan != 1 {
		t.Errorf("expected c clipped to one column, got %+v", c)
	}
	if s := rows[1].Slot(1); s.Kind != table.SlotContinuation || s.Cell.Content != "b" {
		t.Errorf("expected b to continue into row 1, got %s", s.Kind)
	}
}
