package table

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpan matches every *InvalidSpanError.
	ErrInvalidSpan = errors.New("invalid span")
	// ErrTableClosed matches every *TableClosedError.
	ErrTableClosed = errors.New("table closed")
)

// InvalidSpanError reports a cell that does not fit the column grid. Nothing is placed
// when it is returned.
type InvalidSpanError struct {
	Row, Col         int
	RowSpan, ColSpan int
	Columns          int
	Reason           string
}

func (e *InvalidSpanError) Error() string {
	return fmt.Sprintf("table: cell %dx%d at row %d, column %d of %d: %s",
		e.RowSpan, e.ColSpan, e.Row, e.Col, e.Columns, e.Reason)
}

func (e *InvalidSpanError) Is(target error) bool { return target == ErrInvalidSpan }

// TableClosedError reports an operation on a table that reached the Complete state.
type TableClosedError struct {
	Op string
}

func (e *TableClosedError) Error() string {
	return fmt.Sprintf("table: %s: table is complete and fully flushed", e.Op)
}

func (e *TableClosedError) Is(target error) bool { return target == ErrTableClosed }
