// Package mdtable builds tables from GitHub flavoured Markdown pipe tables.
package mdtable

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/wudi/pdftable/table"
)

// Option configures Parse.
type Option func(*options)

type options struct {
	tableOpts []table.Option
	setup     func(*table.Table)
}

// WithTableOptions passes options to every table created.
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

// Parse returns a complete table for every pipe table in src. The header line becomes
// a header row repeated on every page and the delimiter row sets column alignment.
func Parse(src []byte, opts ...Option) ([]*table.Table, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	var tables []*table.Table
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		tn, ok := n.(*east.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		t, err := o.build(tn, src)
		if err != nil {
			return ast.WalkStop, fmt.Errorf("mdtable: table %d: %w", len(tables), err)
		}
		tables = append(tables, t)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (o *options) build(tn *east.Table, src []byte) (*table.Table, error) {
	cols := len(tn.Alignments)
	header := 0
	for row := tn.FirstChild(); row != nil; row = row.NextSibling() {
		if _, ok := row.(*east.TableHeader); ok {
			header++
		}
		cols = max(cols, row.ChildCount())
	}
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
	r := 0
	for row := tn.FirstChild(); row != nil; row = row.NextSibling() {
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			c := *t.DefaultCell()
			c.Content = cellText(cell, src)
			if tc, ok := cell.(*east.TableCell); ok {
				if a := hAlign(tc.Alignment); a != "" {
					c.HAlign = a
				}
			}
			if err := t.AddCell(&c); err != nil {
				return nil, fmt.Errorf("row %d: %w", r, err)
			}
		}
		if err := t.CompleteRow(); err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		r++
	}
	t.SetComplete(true)
	return t, nil
}

func hAlign(a east.Alignment) table.HAlign {
	switch a {
	case east.AlignLeft:
		return table.HAlignLeft
	case east.AlignCenter:
		return table.HAlignCenter
	case east.AlignRight:
		return table.HAlignRight
	}
	return ""
}

// cellText concatenates the text of the inline nodes below n.
func cellText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
