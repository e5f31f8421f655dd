package table

import (
	"github.com/wudi/pdftable/observability"
)

// Fragment is a run of finished rows handed out for one page. Header rows are repeated
// at the top of every fragment.
type Fragment struct {
	// Index counts the fragments of the table, starting at zero.
	Index  int
	Header []*Row
	Rows   []*Row
	// FirstRow is the absolute index of Rows[0], or of the next row when Rows is empty.
	FirstRow int
	// Height includes the header rows and the spacing charged to this fragment.
	Height        float64
	SpacingBefore float64
	SpacingAfter  float64
	// Last is set on the fragment that ends a complete table.
	Last bool
	// Continuation is the table state right after this fragment was cut.
	Continuation Continuation
}

// Ready returns the number of finished body rows waiting to be flushed.
func (t *Table) Ready() int {
	n := 0
	for _, r := range t.rows {
		if r.finished {
			n++
		}
	}
	return n
}

// RequestFragment cuts the longest run of finished rows that fits budget. It returns
// nil when nothing can be emitted: no finished rows yet, the first row does not fit, or
// the table keeps together and does not fit whole. In the last two cases the table
// stays AwaitingFlush until a later request. Once the table was marked complete and its
// last row is flushed the table turns Complete.
func (t *Table) RequestFragment(budget float64) (*Fragment, error) {
	return t.fragment(budget, false)
}

// ForceFragment is RequestFragment for an empty page: it ignores KeepTogether and
// emits at least one row even if that row is taller than budget.
func (t *Table) ForceFragment(budget float64) (*Fragment, error) {
	return t.fragment(budget, true)
}

func (t *Table) fragment(budget float64, force bool) (*Fragment, error) {
	if t.state == Complete {
		return nil, &TableClosedError{Op: "request fragment"}
	}
	if err := t.transition(AwaitingFlush); err != nil {
		return nil, err
	}
	if t.complete {
		t.closePending()
	}
	t.CalculateHeights()

	if len(t.header) < t.headerRows && !t.complete {
		// The header must be whole before any fragment can repeat it.
		return nil, t.transition(Filling)
	}
	body := make([]*Row, 0, len(t.rows))
	for _, r := range t.rows {
		if !r.finished {
			break
		}
		body = append(body, r)
	}
	drained := len(body) == len(t.rows)
	if len(body) == 0 && (!t.complete || !drained || t.fragments > 0 || len(t.header) == 0) {
		if t.complete && drained {
			t.close()
			return nil, nil
		}
		return nil, t.transition(Filling)
	}

	fixed := 0.0
	for _, r := range t.header {
		fixed += r.maxHeight
	}
	if t.fragments == 0 {
		fixed += t.spacingBefore
	}
	after := func(n int) float64 {
		if t.complete && drained && n == len(body) {
			return t.spacingAfter
		}
		return 0
	}

	n := 0
	used := fixed
	if t.keepTogether && !force {
		whole := fixed + after(len(body))
		for _, r := range body {
			whole += r.maxHeight
		}
		if whole > budget {
			t.log.Debug("table deferred",
				observability.Float64("height", whole),
				observability.Float64("budget", budget))
			return nil, nil
		}
		n, used = len(body), whole-after(len(body))
	} else {
		for n < len(body) && used+body[n].maxHeight+after(n+1) <= budget {
			used += body[n].maxHeight
			n++
		}
		if n == 0 && len(body) > 0 {
			if !force {
				return nil, nil
			}
			used += body[0].maxHeight
			n = 1
		}
		if len(body) == 0 && used+after(0) > budget && !force {
			return nil, nil
		}
	}

	frag := &Fragment{
		Index:  t.fragments,
		Header: append([]*Row(nil), t.header...),
		Rows:   append([]*Row(nil), body[:n]...),
		Height: used,
	}
	if t.fragments == 0 {
		frag.SpacingBefore = t.spacingBefore
	}
	if n > 0 {
		frag.FirstRow = body[0].Index
	} else {
		frag.FirstRow = t.cursor.row
	}
	if t.complete && drained && n == len(body) {
		frag.SpacingAfter = t.spacingAfter
		frag.Height += t.spacingAfter
		frag.Last = true
	}

	t.rows = append([]*Row(nil), t.rows[n:]...)
	t.flushed += n
	t.fragments++
	t.log.Debug("fragment emitted",
		observability.Int("fragment", frag.Index),
		observability.Int("rows", n),
		observability.Float64("height", frag.Height),
		observability.Bool("last", frag.Last))

	if frag.Last {
		t.close()
	} else if err := t.transition(Filling); err != nil {
		return nil, err
	}
	frag.Continuation = t.Snapshot()
	return frag, nil
}

// closePending ends a complete table's unfinished row: padded when the caller placed
// cells in it, dropped when it only carries continuations of spans reaching past the
// last row.
func (t *Table) closePending() {
	n := len(t.rows)
	if n == 0 || t.rows[n-1].finished {
		return
	}
	row := t.rows[n-1]
	if row.hasOrigin() {
		t.pad(row)
		t.finishRow(row)
		t.rowCompleted = true
		return
	}
	t.rows = t.rows[:n-1]
	t.cursor = position{row: row.Index}
	for _, s := range row.slots {
		if s.Kind == SlotContinuation {
			t.log.Warn("row span truncated at the end of the table",
				observability.Int("row", s.Cell.row),
				observability.Int("col", s.Cell.col),
				observability.Int("rowspan", s.Cell.rowSpan()),
				observability.Int("rows", row.Index-s.Cell.row))
			break
		}
	}
}

// close moves the table to its terminal state and drops the spans still open.
func (t *Table) close() {
	_ = t.transition(Complete)
	for c := range t.open {
		t.open[c] = nil
	}
	t.log.Debug("table complete",
		observability.Int("rows", t.flushed),
		observability.Int("fragments", t.fragments))
}
