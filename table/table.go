// Package table lays cells out on a fixed-column grid, resolves the height of every row
// and hands the grid out in page-sized fragments. Row spans stay open across fragments:
// they are tracked per column rather than through the row they started in, so a row can
// be flushed and discarded while the cells it started keep covering later rows.
//
// A Table is not safe for concurrent use.
package table

import (
	"fmt"

	"github.com/wudi/pdftable/observability"
)

// Option configures a Table.
type Option func(*Table)

// WithMeasurer sets the measurer used to size cell content.
func WithMeasurer(m Measurer) Option {
	return func(t *Table) {
		if m != nil {
			t.measurer = m
			t.measurerSet = true
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l observability.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.log = l
		}
	}
}

// WithDefaultCell replaces the template used by AddContent and to pad rows.
func WithDefaultCell(c Cell) Option {
	return func(t *Table) {
		t.defaultCell = c
	}
}

// WithHeaderRows marks the first n rows as a header repeated on every fragment.
func WithHeaderRows(n int) Option {
	return func(t *Table) {
		t.SetHeaderRows(n)
	}
}

type position struct {
	row, col int
}

// Table is a grid of cells with a fixed number of columns.
type Table struct {
	columns         int
	widths          []float64
	totalWidth      float64
	widthPercentage float64
	spacingBefore   float64
	spacingAfter    float64
	keepTogether    bool
	complete        bool
	headerRows      int

	defaultCell Cell
	measurer    Measurer
	measurerSet bool
	log         observability.Logger

	// header holds finished header rows; they are never evicted.
	header []*Row
	// rows holds resident body rows in order; the last one may be unfinished.
	rows []*Row
	// open maps every column to the span covering it, if any.
	open []*OpenSpan

	cursor       position
	rowCompleted bool
	flushed      int
	fragments    int
	state        State
}

// New creates a table with the given number of columns.
func New(columns int, opts ...Option) (*Table, error) {
	if columns < 1 {
		return nil, fmt.Errorf("table: column count must be positive, got %d", columns)
	}
	t := &Table{
		columns:         columns,
		widthPercentage: 100,
		defaultCell: Cell{
			Border:      BorderBox,
			BorderWidth: 0.5,
			Padding:     UniformPadding(2),
		},
		measurer: zeroMeasurer{},
		log:      observability.NopLogger{},
		open:     make([]*OpenSpan, columns),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.settle()
	return t, nil
}

// Columns returns the immutable column count.
func (t *Table) Columns() int { return t.columns }

// State returns the pagination state.
func (t *Table) State() State { return t.state }

// DefaultCell returns the template used by AddContent, AddTable and CompleteRow.
// Changes affect later insertions only.
func (t *Table) DefaultCell() *Cell { return &t.defaultCell }

// SetWidths sets relative column widths.
func (t *Table) SetWidths(relative []float64) error {
	if len(relative) != t.columns {
		return fmt.Errorf("table: got %d widths for %d columns", len(relative), t.columns)
	}
	for i, w := range relative {
		if w <= 0 {
			return fmt.Errorf("table: width of column %d must be positive, got %g", i, w)
		}
	}
	t.widths = append([]float64(nil), relative...)
	return nil
}

// Widths returns the relative column widths; equal widths when none were set.
func (t *Table) Widths() []float64 {
	if t.widths != nil {
		return append([]float64(nil), t.widths...)
	}
	w := make([]float64, t.columns)
	for i := range w {
		w[i] = 1
	}
	return w
}

// SetTotalWidth sets the absolute width the columns are distributed over.
func (t *Table) SetTotalWidth(w float64) { t.totalWidth = w }

// TotalWidth returns the absolute width, zero when unset.
func (t *Table) TotalWidth() float64 { return t.totalWidth }

// AbsoluteWidths returns the column widths in points, or nil when no total width is set.
func (t *Table) AbsoluteWidths() []float64 {
	return absoluteWidths(t.Widths(), t.totalWidth)
}

func absoluteWidths(relative []float64, total float64) []float64 {
	if total <= 0 {
		return nil
	}
	var sum float64
	for _, w := range relative {
		sum += w
	}
	out := make([]float64, len(relative))
	for i, w := range relative {
		out[i] = total * w / sum
	}
	return out
}

// SetWidthPercentage sets the share of the available width the table occupies.
func (t *Table) SetWidthPercentage(pct float64) { t.widthPercentage = pct }

// WidthPercentage returns the share of the available width the table occupies.
func (t *Table) WidthPercentage() float64 { return t.widthPercentage }

// SetSpacing sets the space kept above the first and below the last fragment.
func (t *Table) SetSpacing(before, after float64) {
	t.spacingBefore = before
	t.spacingAfter = after
}

// SpacingBefore returns the space kept above the table.
func (t *Table) SpacingBefore() float64 { return t.spacingBefore }

// SpacingAfter returns the space kept below the table.
func (t *Table) SpacingAfter() float64 { return t.spacingAfter }

// SetKeepTogether forbids splitting the table while a page can hold it whole.
func (t *Table) SetKeepTogether(v bool) { t.keepTogether = v }

// KeepTogether reports whether the table avoids splitting.
func (t *Table) KeepTogether() bool { return t.keepTogether }

// SetComplete tells whether more rows may still be added. A table built incrementally
// across pages stays incomplete until its last rows are added. Once the table reached
// the Complete state the call has no effect.
func (t *Table) SetComplete(v bool) {
	if t.state == Complete {
		return
	}
	t.complete = v
}

// Complete reports whether the table was marked complete.
func (t *Table) Complete() bool { return t.complete }

// SetHeaderRows marks the first n rows as a header repeated on every fragment.
func (t *Table) SetHeaderRows(n int) {
	if n < 0 {
		n = 0
	}
	t.headerRows = n
}

// HeaderRows returns the number of header rows.
func (t *Table) HeaderRows() int { return t.headerRows }

// Rows returns the finished rows still held by the table: the header followed by the
// body rows not flushed yet.
func (t *Table) Rows() []*Row {
	out := append([]*Row(nil), t.header...)
	for _, r := range t.rows {
		if r.finished {
			out = append(out, r)
		}
	}
	return out
}

// Row returns the resident row with the given absolute index.
func (t *Table) Row(index int) *Row {
	if index < 0 {
		return nil
	}
	if index < len(t.header) && t.header[index].Index == index {
		return t.header[index]
	}
	if len(t.rows) == 0 {
		return nil
	}
	i := index - t.rows[0].Index
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return t.rows[i]
}

// Flushed returns the number of body rows already emitted in fragments.
func (t *Table) Flushed() int { return t.flushed }
