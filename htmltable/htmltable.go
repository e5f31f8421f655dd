// Package htmltable builds tables from HTML <table> elements.
package htmltable

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/wudi/pdftable/table"
)

// Option configures Parse.
type Option func(*options)

type options struct {
	tableOpts []table.Option
	setup     func(*table.Table)
}

// WithTableOptions passes options to every table created, nested ones included.
func WithTableOptions(opts ...table.Option) Option {
	return func(o *options) {
		o.tableOpts = append(o.tableOpts, opts...)
	}
}

// WithSetup runs fn on every table right after it is created.
func WithSetup(fn func(*table.Table)) Option {
	return func(o *options) {
		o.setup = fn
	}
}

// Parse returns a complete table for every top-level <table> in r. Rows of <thead>
// become header rows. A <table> inside a cell becomes a nested table of that cell.
func Parse(r io.Reader, opts ...Option) ([]*table.Table, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	var tables []*table.Table
	var walk func(*html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			t, err := o.build(n)
			if err != nil {
				return fmt.Errorf("htmltable: table %d: %w", len(tables), err)
			}
			tables = append(tables, t)
			return nil
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(doc); err != nil {
		return nil, err
	}
	return tables, nil
}

type htmlCell struct {
	node             *html.Node
	rowSpan, colSpan int
}

type htmlRow struct {
	cells []htmlCell
}

// rows returns the rows of a table element in document order and how many of them
// belong to <thead>.
func rows(n *html.Node) ([]htmlRow, int) {
	var head, body []htmlRow
	collect := func(section *html.Node, into *[]htmlRow) {
		for tr := section.FirstChild; tr != nil; tr = tr.NextSibling {
			if tr.Type == html.ElementNode && tr.DataAtom == atom.Tr {
				*into = append(*into, row(tr))
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Thead:
			collect(c, &head)
		case atom.Tbody, atom.Tfoot:
			collect(c, &body)
		case atom.Tr:
			body = append(body, row(c))
		}
	}
	return append(head, body...), len(head)
}

func row(tr *html.Node) htmlRow {
	var r htmlRow
	for td := tr.FirstChild; td != nil; td = td.NextSibling {
		if td.Type == html.ElementNode && (td.DataAtom == atom.Td || td.DataAtom == atom.Th) {
			r.cells = append(r.cells, htmlCell{
				node:    td,
				rowSpan: span(td, "rowspan", maxRowSpan),
				colSpan: span(td, "colspan", maxColSpan),
			})
		}
	}
	return r
}

// Span limits of the HTML table model.
const (
	maxColSpan = 1000
	maxRowSpan = 65534
)

func span(n *html.Node, name string, limit int) int {
	v, err := strconv.Atoi(strings.TrimSpace(attr(n, name)))
	if err != nil || v < 1 {
		return 1
	}
	return min(v, limit)
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// columns lays the cells out on an occupancy grid the way browsers do and returns the
// column count. Row spans are clipped to their section so they never reach past the
// last row or across the header boundary; a column span stops at the first column
// already taken by a row span from above.
func columns(rows []htmlRow, header int) int {
	occupied := make(map[[2]int]bool)
	n := 0
	for r := range rows {
		end := len(rows)
		if r < header {
			end = header
		}
		col := 0
		for i := range rows[r].cells {
			c := &rows[r].cells[i]
			for occupied[[2]int{r, col}] {
				col++
			}
			c.rowSpan = min(c.rowSpan, end-r)
			for dc := 1; dc < c.colSpan; dc++ {
				if occupied[[2]int{r, col + dc}] {
					c.colSpan = dc
					break
				}
			}
			for dr := 0; dr < c.rowSpan; dr++ {
				for dc := 0; dc < c.colSpan; dc++ {
					occupied[[2]int{r + dr, col + dc}] = true
				}
			}
			col += c.colSpan
			n = max(n, col)
		}
	}
	return n
}

func (o *options) build(n *html.Node) (*table.Table, error) {
	rs, header := rows(n)
	cols := columns(rs, header)
	if cols == 0 {
		cols = 1
	}
	t, err := table.New(cols, append([]table.Option{table.WithHeaderRows(header)}, o.tableOpts...)...)
	if err != nil {
		return nil, err
	}
	if o.setup != nil {
		o.setup(t)
	}
	if w := strings.TrimSpace(attr(n, "width")); strings.HasSuffix(w, "%") {
		if pct, err := strconv.ParseFloat(strings.TrimSuffix(w, "%"), 64); err == nil && pct > 0 {
			t.SetWidthPercentage(pct)
		}
	}
	for r, hr := range rs {
		for _, hc := range hr.cells {
			c := *t.DefaultCell()
			c.RowSpan, c.ColSpan = hc.rowSpan, hc.colSpan
			if a := hAlign(attr(hc.node, "align")); a != "" {
				c.HAlign = a
			}
			if a := vAlign(attr(hc.node, "valign")); a != "" {
				c.VAlign = a
			}
			if nested := nestedTable(hc.node); nested != nil {
				inner, err := o.build(nested)
				if err != nil {
					return nil, fmt.Errorf("row %d: nested table: %w", r, err)
				}
				c.Table = inner
			} else {
				c.Content = extractText(hc.node)
			}
			if err := t.AddCell(&c); err != nil {
				return nil, fmt.Errorf("row %d: %w", r, err)
			}
		}
		if err := t.CompleteRow(); err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
	}
	t.SetComplete(true)
	return t, nil
}

func nestedTable(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Table {
			return c
		}
		if t := nestedTable(c); t != nil {
			return t
		}
	}
	return nil
}

func hAlign(v string) table.HAlign {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "center":
		return table.HAlignCenter
	case "right":
		return table.HAlignRight
	case "justify":
		return table.HAlignJustify
	case "left":
		return table.HAlignLeft
	}
	return ""
}

func vAlign(v string) table.VAlign {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "middle", "center":
		return table.VAlignMiddle
	case "bottom":
		return table.VAlignBottom
	case "top":
		return table.VAlignTop
	}
	return ""
}

// extractText returns the text of n with runs of white space collapsed. <br> starts a
// new line.
func extractText(n *html.Node) string {
	var lines []string
	var sb strings.Builder
	flush := func() {
		lines = append(lines, strings.Join(strings.Fields(sb.String()), " "))
		sb.Reset()
	}
	var f func(*html.Node)
	f = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	flush()
	return strings.Join(lines, "\n")
}
