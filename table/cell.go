package table

// HAlign controls horizontal alignment of content within a cell.
type HAlign string

const (
	HAlignLeft    HAlign = "left"
	HAlignCenter  HAlign = "center"
	HAlignRight   HAlign = "right"
	HAlignJustify HAlign = "justify"
)

// VAlign controls vertical alignment of content within a cell.
type VAlign string

const (
	VAlignTop    VAlign = "top"
	VAlignMiddle VAlign = "middle"
	VAlignBottom VAlign = "bottom"
)

// Border selects the cell edges that carry a border.
type Border uint8

const (
	BorderTop Border = 1 << iota
	BorderBottom
	BorderLeft
	BorderRight
)

const (
	BorderNone Border = 0
	BorderBox         = BorderTop | BorderBottom | BorderLeft | BorderRight
)

// Padding defines per-side padding in points.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding returns the same padding on every side.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// Cell is one entry of the grid. Content is opaque to the table and is handed to the
// Measurer as is; Table, when set, makes the cell a container for a nested table and
// takes precedence over Content.
//
// A zero RowSpan or ColSpan means 1. The table stores a copy of every cell it is given,
// so a Cell value may be reused for several insertions.
type Cell struct {
	Content any
	Table   *Table

	RowSpan int
	ColSpan int

	HAlign      HAlign
	VAlign      VAlign
	Border      Border
	BorderWidth float64
	Padding     Padding

	// UseAscender measures the first line from the font ascender instead of the leading.
	UseAscender bool
	// UseDescender adds the descent of the last line.
	UseDescender bool
	// UseBorderPadding adds the border widths to the padding.
	UseBorderPadding bool

	MinHeight   float64
	FixedHeight float64

	row, col int
	placed   bool

	natural      float64
	naturalWidth float64
	measured     bool
}

// Row returns the absolute row index the cell starts on. Only meaningful for cells
// returned by the table.
func (c *Cell) Row() int { return c.row }

// Col returns the column index the cell starts on.
func (c *Cell) Col() int { return c.col }

// Placed reports whether the cell belongs to a table grid.
func (c *Cell) Placed() bool { return c.placed }

// NaturalHeight returns the last height computed for the cell by CalculateHeights,
// before it was divided among the rows it spans.
func (c *Cell) NaturalHeight() float64 { return c.natural }

func (c *Cell) rowSpan() int {
	if c.RowSpan < 1 {
		return 1
	}
	return c.RowSpan
}

func (c *Cell) colSpan() int {
	if c.ColSpan < 1 {
		return 1
	}
	return c.ColSpan
}

func (c *Cell) clone() *Cell {
	cp := *c
	cp.placed = false
	cp.measured = false
	cp.natural = 0
	cp.naturalWidth = 0
	return &cp
}

func (c *Cell) borderVertical() float64 {
	var w float64
	if c.Border&BorderTop != 0 {
		w += c.BorderWidth
	}
	if c.Border&BorderBottom != 0 {
		w += c.BorderWidth
	}
	return w
}

func (c *Cell) borderHorizontal() float64 {
	var w float64
	if c.Border&BorderLeft != 0 {
		w += c.BorderWidth
	}
	if c.Border&BorderRight != 0 {
		w += c.BorderWidth
	}
	return w
}
