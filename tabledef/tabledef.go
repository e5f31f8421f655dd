// Package tabledef builds tables from YAML definitions.
//
// A definition lists rows of cells. Cells flow into the grid the way AddCell places
// them, so a row entry groups cells for readability only; complete_row pads the
// pending row after the entry's cells were added. A cell with an expr is computed by a
// script that sees the table built so far:
//
//	tables:
//	  - columns: 3
//	    header_rows: 1
//	    rows:
//	      - cells: [{text: Item}, {text: Qty}, {text: Total}]
//	      - cells:
//	          - {text: Apples}
//	          - {text: "3"}
//	          - {expr: "cell(row, 1) * 2"}
package tabledef

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wudi/pdftable/measure"
	"github.com/wudi/pdftable/observability"
	"github.com/wudi/pdftable/scripting"
	"github.com/wudi/pdftable/table"
)

// File is the top level of a definition document.
type File struct {
	Tables []Definition `yaml:"tables"`
}

// Definition describes one table.
type Definition struct {
	Columns         int       `yaml:"columns"`
	Widths          []float64 `yaml:"widths,omitempty"`
	HeaderRows      int       `yaml:"header_rows,omitempty"`
	KeepTogether    bool      `yaml:"keep_together,omitempty"`
	WidthPercentage float64   `yaml:"width_percentage,omitempty"`
	SpacingBefore   float64   `yaml:"spacing_before,omitempty"`
	SpacingAfter    float64   `yaml:"spacing_after,omitempty"`
	// Open leaves the table incomplete so more rows can be added after Build.
	Open bool     `yaml:"open,omitempty"`
	Rows []RowDef `yaml:"rows"`
}

// RowDef is a group of cells, optionally followed by CompleteRow.
type RowDef struct {
	Cells       []CellDef `yaml:"cells"`
	CompleteRow bool      `yaml:"complete_row,omitempty"`
}

// CellDef describes one cell. Zero values keep the table's default cell settings.
type CellDef struct {
	Text        string      `yaml:"text,omitempty"`
	Expr        string      `yaml:"expr,omitempty"`
	Size        float64     `yaml:"size,omitempty"`
	Leading     float64     `yaml:"leading,omitempty"`
	RowSpan     int         `yaml:"rowspan,omitempty"`
	ColSpan     int         `yaml:"colspan,omitempty"`
	Align       string      `yaml:"align,omitempty"`
	VAlign      string      `yaml:"valign,omitempty"`
	Padding     *float64    `yaml:"padding,omitempty"`
	MinHeight   float64     `yaml:"min_height,omitempty"`
	FixedHeight float64     `yaml:"fixed_height,omitempty"`
	Table       *Definition `yaml:"table,omitempty"`
}

// Load decodes a definition document. Unknown keys are errors.
func Load(r io.Reader) ([]Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("tabledef: %w", err)
	}
	return f.Tables, nil
}

// Option configures Build.
type Option func(*options)

type options struct {
	tableOpts []table.Option
	setup     func(*table.Table)
	engine    func() scripting.Engine
	log       observability.Logger
}

// WithTableOptions passes options to every table created, nested ones included.
func WithTableOptions(opts ...table.Option) Option {
	return func(o *options) {
		o.tableOpts = append(o.tableOpts, opts...)
	}
}

// WithSetup runs fn on every table right after it is created and before the
// definition's own settings are applied.
func WithSetup(fn func(*table.Table)) Option {
	return func(o *options) {
		o.setup = fn
	}
}

// WithEngine sets the constructor of the script engines evaluating expr cells. One
// engine is created per table that has any.
func WithEngine(fn func() scripting.Engine) Option {
	return func(o *options) {
		o.engine = fn
	}
}

// WithLogger receives messages scripts pass to log().
func WithLogger(l observability.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// Build creates the table described by def. Nested tables are always complete.
func Build(ctx context.Context, def Definition, opts ...Option) (*table.Table, error) {
	o := options{
		engine: func() scripting.Engine { return scripting.NewEngine() },
		log:    observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o.build(ctx, def, false)
}

// BuildAll builds every definition of a document.
func BuildAll(ctx context.Context, defs []Definition, opts ...Option) ([]*table.Table, error) {
	tables := make([]*table.Table, 0, len(defs))
	for i, def := range defs {
		t, err := Build(ctx, def, opts...)
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (o *options) build(ctx context.Context, def Definition, nested bool) (*table.Table, error) {
	t, err := table.New(def.Columns, o.tableOpts...)
	if err != nil {
		return nil, fmt.Errorf("tabledef: %w", err)
	}
	if o.setup != nil {
		o.setup(t)
	}
	if len(def.Widths) > 0 {
		if err := t.SetWidths(def.Widths); err != nil {
			return nil, fmt.Errorf("tabledef: %w", err)
		}
	}
	t.SetHeaderRows(def.HeaderRows)
	t.SetKeepTogether(def.KeepTogether)
	if def.WidthPercentage > 0 {
		t.SetWidthPercentage(def.WidthPercentage)
	}
	if def.SpacingBefore != 0 || def.SpacingAfter != 0 {
		t.SetSpacing(def.SpacingBefore, def.SpacingAfter)
	}

	var engine scripting.Engine
	for ri, row := range def.Rows {
		for ci, cd := range row.Cells {
			if cd.Expr != "" && engine == nil {
				engine = o.engine()
				if err := engine.RegisterTable(scripting.TableView{T: t, Logger: o.log}); err != nil {
					return nil, fmt.Errorf("tabledef: %w", err)
				}
			}
			c, err := o.cell(ctx, t, engine, cd)
			if err != nil {
				return nil, fmt.Errorf("tabledef: row %d cell %d: %w", ri, ci, err)
			}
			if err := t.AddCell(c); err != nil {
				return nil, fmt.Errorf("tabledef: row %d cell %d: %w", ri, ci, err)
			}
		}
		if row.CompleteRow {
			if err := t.CompleteRow(); err != nil {
				return nil, fmt.Errorf("tabledef: row %d: %w", ri, err)
			}
		}
	}
	if nested || !def.Open {
		t.SetComplete(true)
	}
	return t, nil
}

func (o *options) cell(ctx context.Context, t *table.Table, engine scripting.Engine, cd CellDef) (*table.Cell, error) {
	c := *t.DefaultCell()
	c.Table = nil
	c.RowSpan, c.ColSpan = cd.RowSpan, cd.ColSpan
	if cd.MinHeight > 0 {
		c.MinHeight = cd.MinHeight
	}
	if cd.FixedHeight > 0 {
		c.FixedHeight = cd.FixedHeight
	}
	if cd.Padding != nil {
		c.Padding = table.UniformPadding(*cd.Padding)
	}
	switch cd.Align {
	case "":
	case "left", "center", "right", "justify":
		c.HAlign = table.HAlign(cd.Align)
	default:
		return nil, fmt.Errorf("unknown align %q", cd.Align)
	}
	switch cd.VAlign {
	case "":
	case "top", "middle", "bottom":
		c.VAlign = table.VAlign(cd.VAlign)
	default:
		return nil, fmt.Errorf("unknown valign %q", cd.VAlign)
	}

	if cd.Table != nil {
		nested, err := o.build(ctx, *cd.Table, true)
		if err != nil {
			return nil, err
		}
		c.Table = nested
		return &c, nil
	}

	text := cd.Text
	if cd.Expr != "" {
		row, col := t.Cursor()
		if err := engine.Set("row", row); err != nil {
			return nil, err
		}
		if err := engine.Set("col", col); err != nil {
			return nil, err
		}
		v, err := engine.Execute(ctx, cd.Expr)
		if err != nil {
			return nil, fmt.Errorf("expr %q: %w", cd.Expr, err)
		}
		text = format(v)
	}
	if cd.Size > 0 || cd.Leading > 0 {
		c.Content = measure.Phrase{Text: text, FontSize: cd.Size, Leading: cd.Leading}
	} else {
		c.Content = text
	}
	return &c, nil
}

func format(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}
