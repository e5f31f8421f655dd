package scripting

import (
	"fmt"
	"strconv"

	"github.com/wudi/pdftable/measure"
	"github.com/wudi/pdftable/observability"
	"github.com/wudi/pdftable/table"
)

// TableView adapts a table to TableDOM. Cell contents are handed to scripts as numbers
// when they parse as one and as text otherwise.
type TableView struct {
	T      *table.Table
	Logger observability.Logger
}

var _ TableDOM = TableView{}

func (v TableView) Cell(row, col int) interface{} {
	var c *table.Cell
	if r := v.T.Row(row); r != nil {
		c = r.Slot(col).Cell
	} else {
		c = v.T.RowSpanAbove(row, col)
	}
	if c == nil {
		return nil
	}
	var text string
	switch content := c.Content.(type) {
	case nil:
		return nil
	case string:
		text = content
	case measure.Phrase:
		text = content.Text
	case *measure.Phrase:
		if content == nil {
			return nil
		}
		text = content.Text
	case float64, int:
		return content
	default:
		text = fmt.Sprint(content)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return text
}

func (v TableView) Rows() int {
	return len(v.T.Rows()) + v.T.Flushed()
}

func (v TableView) Columns() int { return v.T.Columns() }

func (v TableView) Log(message string) {
	if v.Logger != nil {
		v.Logger.Info("script", observability.String("message", message))
	}
}
