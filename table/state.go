package table

import "fmt"

// State is the pagination state of a table.
type State uint8

const (
	// Filling accepts cells; finished rows accumulate until a fragment is requested.
	Filling State = iota
	// AwaitingFlush holds rows that were ready but did not fit the last budget offered.
	AwaitingFlush
	// Complete is terminal: the table was marked complete and every row was flushed.
	Complete
)

func (s State) String() string {
	switch s {
	case Filling:
		return "filling"
	case AwaitingFlush:
		return "awaiting-flush"
	case Complete:
		return "complete"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

var transitions = map[State][]State{
	Filling:       {Filling, AwaitingFlush},
	AwaitingFlush: {AwaitingFlush, Filling, Complete},
	Complete:      {},
}

func (t *Table) transition(to State) error {
	for _, s := range transitions[t.state] {
		if s == to {
			t.state = to
			return nil
		}
	}
	return fmt.Errorf("table: illegal state transition %s -> %s", t.state, to)
}
