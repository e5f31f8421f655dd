// Package document composes tables onto pages. It drives the pagination of every
// table it is given with the space left on the current page and records where each
// fragment, row and cell lands.
package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wudi/pdftable/measure"
	"github.com/wudi/pdftable/observability"
	"github.com/wudi/pdftable/table"
)

// Composer places table fragments on pages. It is not safe for concurrent use.
type Composer struct {
	pageSize PageSize
	margins  Margins
	log      observability.Logger
	tracer   observability.Tracer

	plan    *Plan
	page    *Page
	cursorY float64
	tables  map[*table.Table]int
}

// Option configures a Composer.
type Option func(*Composer)

// WithPageSize sets the page format.
func WithPageSize(ps PageSize) Option {
	return func(c *Composer) {
		c.pageSize = ps
	}
}

// WithMargins sets the page margins.
func WithMargins(m Margins) Option {
	return func(c *Composer) {
		c.margins = m
	}
}

// WithLogger sets the logger.
func WithLogger(l observability.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(t observability.Tracer) Option {
	return func(c *Composer) {
		if t != nil {
			c.tracer = t
		}
	}
}

// New creates a composer with an empty plan.
func New(opts ...Option) *Composer {
	c := &Composer{
		pageSize: A4,
		margins:  Margins{Top: 36, Bottom: 36, Left: 36, Right: 36},
		log:      observability.NopLogger{},
		tracer:   observability.NopTracer(),
		tables:   make(map[*table.Table]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.plan = &Plan{ID: uuid.NewString(), Width: c.pageSize.Width, Height: c.pageSize.Height}
	return c
}

// Plan returns the plan composed so far.
func (c *Composer) Plan() *Plan { return c.plan }

// ContentWidth is the page width between the margins.
func (c *Composer) ContentWidth() float64 {
	return c.pageSize.Width - c.margins.Left - c.margins.Right
}

// Remaining is the vertical space left on the current page.
func (c *Composer) Remaining() float64 {
	if c.page == nil {
		return c.pageSize.Height - c.margins.Top - c.margins.Bottom
	}
	return c.pageSize.Height - c.margins.Bottom - c.cursorY
}

// NewPage ends the current page. It does nothing while the current page is empty.
func (c *Composer) NewPage() {
	if c.page == nil || len(c.page.Blocks) == 0 {
		return
	}
	c.page = nil
}

func (c *Composer) ensurePage() {
	if c.page != nil {
		return
	}
	c.page = &Page{Number: len(c.plan.Pages) + 1}
	c.plan.Pages = append(c.plan.Pages, c.page)
	c.cursorY = c.margins.Top
	c.log.Debug("page started", observability.Int("page", c.page.Number))
}

func (c *Composer) pageEmpty() bool {
	return c.page == nil || len(c.page.Blocks) == 0
}

// Add flushes every fragment t has ready. An incomplete table keeps its remaining
// state and can be passed to Add again once more rows were added. A table that does
// not fit the rest of the page, or that keeps together and does not fit whole, moves
// to the next page; on an empty page it is split regardless.
func (c *Composer) Add(ctx context.Context, t *table.Table) (err error) {
	ctx, span := c.tracer.StartSpan(ctx, observability.SpanComposeTable)
	defer func() {
		if err != nil {
			span.SetError(err)
		}
		span.Finish()
	}()

	id, ok := c.tables[t]
	if !ok {
		id = len(c.tables)
		c.tables[t] = id
	}
	if t.TotalWidth() <= 0 {
		t.SetTotalWidth(c.ContentWidth() * t.WidthPercentage() / 100)
	}
	log := c.log.With(observability.Int("table", id))

	var fragments, rows, deferred int
	for t.State() != table.Complete {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.ensurePage()
		budget := c.Remaining()
		frag, err := t.RequestFragment(budget)
		if err != nil {
			return fmt.Errorf("document: table %d: %w", id, err)
		}
		if frag == nil {
			if t.State() != table.AwaitingFlush {
				break
			}
			if !c.pageEmpty() {
				log.Debug("table moved to next page", observability.Float64("budget", budget))
				deferred++
				c.NewPage()
				continue
			}
			if frag, err = t.ForceFragment(budget); err != nil {
				return fmt.Errorf("document: table %d: %w", id, err)
			}
			if frag == nil {
				break
			}
			log.Warn("fragment forced onto an empty page", observability.Float64("budget", budget),
				observability.Float64("height", frag.Height))
		}
		c.place(id, t, frag)
		fragments++
		rows += len(frag.Rows)
		if frag.Last {
			break
		}
		if t.Ready() > 0 {
			c.NewPage()
		}
	}

	span.SetTag(observability.TagFragmentCount, fragments)
	span.SetTag(observability.TagRowsFlushed, rows)
	span.SetTag(observability.TagDeferredTables, deferred)
	span.SetTag(observability.TagPageCount, len(c.plan.Pages))
	log.Debug("table composed",
		observability.Int("fragments", fragments),
		observability.Int("rows", rows),
		observability.String("state", t.State().String()))
	return nil
}

func (c *Composer) place(id int, t *table.Table, frag *table.Fragment) {
	widths := t.AbsoluteWidths()
	var total float64
	for _, w := range widths {
		total += w
	}
	b := &Block{
		Table:    id,
		Fragment: frag.Index,
		X:        c.margins.Left + (c.ContentWidth()-total)/2,
		Y:        c.cursorY + frag.SpacingBefore,
		Width:    total,
		Last:     frag.Last,
	}
	colX := make([]float64, len(widths)+1)
	colX[0] = b.X
	for i, w := range widths {
		colX[i+1] = colX[i] + w
	}

	rows := append(append([]*table.Row(nil), frag.Header...), frag.Rows...)
	ys := make([]float64, len(rows)+1)
	ys[0] = b.Y
	for i, r := range rows {
		ys[i+1] = ys[i] + r.MaxHeight()
	}
	// extent returns how many rows of the fragment a span covers starting at row i.
	extent := func(i int, cell *table.Cell) (int, bool) {
		last := cell.Row() + max(cell.RowSpan, 1) - 1
		n := 1
		for i+n < len(rows) && rows[i+n].Index <= last && rows[i+n].Index > rows[i+n-1].Index {
			n++
		}
		return n, rows[i+n-1].Index < last
	}

	for i, r := range rows {
		pr := PlacedRow{Index: r.Index, Header: i < len(frag.Header), Y: ys[i], Height: r.MaxHeight()}
		firstBody := i == len(frag.Header)
		for col := 0; col < r.Columns(); col++ {
			s := r.Slot(col)
			switch s.Kind {
			case table.SlotOrigin, table.SlotPadding:
			case table.SlotContinuation:
				if !firstBody || s.Cell.Col() != col {
					continue
				}
			default:
				continue
			}
			n, clipped := extent(i, s.Cell)
			cs := max(s.Cell.ColSpan, 1)
			pc := PlacedCell{
				Row:       s.Cell.Row(),
				Col:       col,
				RowSpan:   s.Cell.RowSpan,
				ColSpan:   s.Cell.ColSpan,
				Y:         ys[i],
				Height:    ys[i+n] - ys[i],
				Nested:    s.Cell.Table != nil,
				Padding:   s.Kind == table.SlotPadding,
				Continued: s.Kind == table.SlotContinuation,
				Clipped:   clipped,
				Text:      text(s.Cell.Content),
			}
			if col+cs < len(colX) {
				pc.X, pc.Width = colX[col], colX[col+cs]-colX[col]
			}
			if !pc.Continued && !pc.Clipped {
				pc.TextOffset = textOffset(s.Cell, pc.Height)
			}
			pr.Cells = append(pr.Cells, pc)
		}
		b.Rows = append(b.Rows, pr)
	}
	b.Height = ys[len(rows)] - ys[0]

	c.page.Blocks = append(c.page.Blocks, b)
	c.cursorY += frag.Height
	c.log.Debug("fragment placed",
		observability.Int("table", id),
		observability.Int("fragment", frag.Index),
		observability.Int("page", c.page.Number),
		observability.Int("rows", len(frag.Rows)),
		observability.Float64("y", b.Y))
}

// textOffset is the distance from the top of the cell box to the top of its content
// for the cell's vertical alignment.
func textOffset(c *table.Cell, height float64) float64 {
	free := height - c.NaturalHeight()
	if free <= 0 {
		return 0
	}
	switch c.VAlign {
	case table.VAlignMiddle:
		return free / 2
	case table.VAlignBottom:
		return free
	}
	return 0
}

func text(content any) string {
	switch v := content.(type) {
	case string:
		return v
	case measure.Phrase:
		return v.Text
	case *measure.Phrase:
		if v != nil {
			return v.Text
		}
	case fmt.Stringer:
		return v.String()
	}
	return ""
}
