package table

// SlotKind tells how a grid position of a row is occupied.
type SlotKind uint8

const (
	// SlotEmpty has not been resolved yet.
	SlotEmpty SlotKind = iota
	// SlotOrigin holds a cell starting at this position.
	SlotOrigin
	// SlotSpanned belongs to the cell starting further left in the same row.
	SlotSpanned
	// SlotContinuation is covered by a cell starting in an earlier row.
	SlotContinuation
	// SlotPadding holds a copy of the default cell added by CompleteRow.
	SlotPadding
)

func (k SlotKind) String() string {
	switch k {
	case SlotEmpty:
		return "empty"
	case SlotOrigin:
		return "origin"
	case SlotSpanned:
		return "spanned"
	case SlotContinuation:
		return "continuation"
	case SlotPadding:
		return "padding"
	}
	return "unknown"
}

// Slot is one grid position of a row. Cell is nil only for SlotEmpty.
type Slot struct {
	Kind SlotKind
	Cell *Cell
}

// Row is a fixed-length run of slots. Index is absolute: it keeps counting across
// fragments, so the first row of a later fragment does not restart at zero.
type Row struct {
	Index int

	slots     []Slot
	finished  bool
	maxHeight float64
}

func newRow(index, columns int) *Row {
	return &Row{Index: index, slots: make([]Slot, columns)}
}

// Columns returns the number of slots.
func (r *Row) Columns() int { return len(r.slots) }

// Slot returns the slot at col, or an empty slot when col is out of range.
func (r *Row) Slot(col int) Slot {
	if col < 0 || col >= len(r.slots) {
		return Slot{}
	}
	return r.slots[col]
}

// Finished reports whether every slot of the row is resolved.
func (r *Row) Finished() bool { return r.finished }

// MaxHeight returns the height resolved by the last CalculateHeights call.
func (r *Row) MaxHeight() float64 { return r.maxHeight }

// Cells returns the cells starting in this row, including padding, in column order.
func (r *Row) Cells() []*Cell {
	var cells []*Cell
	for _, s := range r.slots {
		if s.Kind == SlotOrigin || s.Kind == SlotPadding {
			cells = append(cells, s.Cell)
		}
	}
	return cells
}

func (r *Row) hasOrigin() bool {
	for _, s := range r.slots {
		if s.Kind == SlotOrigin {
			return true
		}
	}
	return false
}

func (r *Row) copy() *Row {
	cp := *r
	cp.slots = append([]Slot(nil), r.slots...)
	return &cp
}
