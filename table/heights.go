package table

// resolver computes natural heights for the cells of one table at fixed column widths.
type resolver struct {
	widths   []float64
	measurer Measurer
}

func (t *Table) resolver() *resolver {
	return &resolver{widths: t.AbsoluteWidths(), measurer: t.measurer}
}

// CalculateHeights resolves MaxHeight for every finished row the table still holds and
// returns their sum. Each row only depends on the cells starting in it and the cells
// spanning into it, so the result for a row does not change when rows are added or
// flushed later. Calling it again is harmless.
func (t *Table) CalculateHeights() float64 {
	res := t.resolver()
	var total float64
	for _, r := range t.header {
		total += res.row(r)
	}
	for _, r := range t.rows {
		if r.finished {
			total += res.row(r)
		}
	}
	return total
}

// TotalHeight is the height the resident rows would take as a single fragment:
// CalculateHeights plus spacing before when nothing was emitted yet, and spacing after
// when the table is complete.
func (t *Table) TotalHeight() float64 {
	h := t.CalculateHeights()
	if t.fragments == 0 {
		h += t.spacingBefore
	}
	if t.complete {
		h += t.spacingAfter
	}
	return h
}

func (res *resolver) row(r *Row) float64 {
	var h float64
	for _, s := range r.slots {
		switch s.Kind {
		case SlotOrigin, SlotPadding, SlotContinuation:
			if share := res.share(s.Cell); share > h {
				h = share
			}
		}
	}
	r.maxHeight = h
	return h
}

// share is the part of a cell's height charged to each row it spans. Every covered
// row gets the same share, so the shares always add up to the natural height.
func (res *resolver) share(c *Cell) float64 {
	return res.natural(c) / float64(c.rowSpan())
}

func (res *resolver) natural(c *Cell) float64 {
	width := res.contentWidth(c)
	if c.measured && c.Table == nil && c.naturalWidth == width {
		return c.natural
	}
	var h float64
	if c.FixedHeight > 0 {
		h = c.FixedHeight
	} else {
		if c.Table != nil {
			h = c.Table.heightAt(width, res.measurer)
		} else {
			m := res.measurer.Measure(c.Content, width)
			h = m.Height
			if h > 0 && c.UseAscender && m.Leading > 0 {
				h += m.Ascent - m.Leading
			}
			if h > 0 && c.UseDescender {
				h += m.Descent
			}
		}
		h += c.Padding.Top + c.Padding.Bottom
		if c.UseBorderPadding {
			h += c.borderVertical()
		}
		if h < c.MinHeight {
			h = c.MinHeight
		}
	}
	c.natural, c.naturalWidth, c.measured = h, width, true
	return h
}

// contentWidth is the width available to the content of c: the columns it spans less
// horizontal padding. Zero when the table has no total width.
func (res *resolver) contentWidth(c *Cell) float64 {
	if res.widths == nil {
		return 0
	}
	var w float64
	for i := c.col; i < c.col+c.colSpan() && i < len(res.widths); i++ {
		w += res.widths[i]
	}
	w -= c.Padding.Left + c.Padding.Right
	if c.UseBorderPadding {
		w -= c.borderHorizontal()
	}
	return max(w, 0)
}

// heightAt resolves a nested table laid out in a cell of the given content width and
// returns the sum of its rows. A nested table without a measurer of its own borrows
// the one of the enclosing table.
func (t *Table) heightAt(width float64, inherited Measurer) float64 {
	total := t.totalWidth
	if total <= 0 {
		total = width * t.widthPercentage / 100
	}
	m := t.measurer
	if !t.measurerSet && inherited != nil {
		m = inherited
	}
	res := &resolver{widths: absoluteWidths(t.Widths(), total), measurer: m}
	var h float64
	for _, r := range t.header {
		h += res.row(r)
	}
	for _, r := range t.rows {
		if r.finished {
			h += res.row(r)
		}
	}
	return h
}
