package table

import (
	"math"
	"testing"
)

// heights measures float64 content as its own height and everything else as zero.
var heights = MeasurerFunc(func(content any, _ float64) Metrics {
	if h, ok := content.(float64); ok {
		return Metrics{Height: h, Ascent: h * 0.8, Descent: h * 0.2, Leading: h}
	}
	return Metrics{}
})

func bare(content any) *Cell { return &Cell{Content: content} }

func newTable(t *testing.T, columns int, opts ...Option) *Table {
	t.Helper()
	tbl, err := New(columns, append([]Option{WithMeasurer(heights)}, opts...)...)
	if err != nil {
		t.Fatalf("New(%d): %v", columns, err)
	}
	return tbl
}

func mustAdd(t *testing.T, tbl *Table, cells ...*Cell) {
	t.Helper()
	for _, c := range cells {
		if err := tbl.AddCell(c); err != nil {
			t.Fatalf("AddCell(%v): %v", c.Content, err)
		}
	}
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
