package document

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Plan is the result of composing tables onto pages. Coordinates are in points, with y
// growing downwards from the top edge of the page.
type Plan struct {
	ID     string  `yaml:"id"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Pages  []*Page `yaml:"pages"`
}

// Page holds the fragments placed on one page.
type Page struct {
	Number int      `yaml:"number"`
	Blocks []*Block `yaml:"blocks,omitempty"`
}

// Block is one table fragment.
type Block struct {
	// Table is the position of the table in the order tables were first added.
	Table    int         `yaml:"table"`
	Fragment int         `yaml:"fragment"`
	X        float64     `yaml:"x"`
	Y        float64     `yaml:"y"`
	Width    float64     `yaml:"width"`
	Height   float64     `yaml:"height"`
	Last     bool        `yaml:"last,omitempty"`
	Rows     []PlacedRow `yaml:"rows"`
}

type PlacedRow struct {
	Index  int          `yaml:"index"`
	Header bool         `yaml:"header,omitempty"`
	Y      float64      `yaml:"y"`
	Height float64      `yaml:"height"`
	Cells  []PlacedCell `yaml:"cells"`
}

// PlacedCell is a cell drawn in a fragment. A row span cut by a page break is drawn
// once per fragment: Clipped marks the part continuing on a later fragment, Continued
// the part that started on an earlier one.
type PlacedCell struct {
	Row        int     `yaml:"row"`
	Col        int     `yaml:"col"`
	RowSpan    int     `yaml:"rowspan,omitempty"`
	ColSpan    int     `yaml:"colspan,omitempty"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	TextOffset float64 `yaml:"text_offset,omitempty"`
	Text       string  `yaml:"text,omitempty"`
	Nested     bool    `yaml:"nested,omitempty"`
	Padding    bool    `yaml:"padding,omitempty"`
	Continued  bool    `yaml:"continued,omitempty"`
	Clipped    bool    `yaml:"clipped,omitempty"`
}

// Fragments returns the number of blocks over all pages.
func (p *Plan) Fragments() int {
	n := 0
	for _, pg := range p.Pages {
		n += len(pg.Blocks)
	}
	return n
}

// WriteYAML encodes the plan.
func (p *Plan) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}
