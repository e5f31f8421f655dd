package scripting

import (
	"context"
)

// Engine represents a scripting engine (e.g., JavaScript).
type Engine interface {
	// Execute runs a script and returns its exported result.
	Execute(ctx context.Context, script string) (interface{}, error)

	// Set binds a global variable visible to later scripts.
	Set(name string, value interface{}) error

	// RegisterTable exposes a table under construction to scripts.
	RegisterTable(dom TableDOM) error
}

// TableDOM is the read-only view of a table scripts get through cell(), rows(),
// columns() and log().
type TableDOM interface {
	// Cell returns the content covering (row, col), or nil.
	Cell(row, col int) interface{}

	// Rows returns the number of finished rows.
	Rows() int

	Columns() int

	// Log records a message from a script.
	Log(message string)
}
