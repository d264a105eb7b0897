package game

import "fmt"

// IllegalMoveError reports an action that violates one of its preconditions
// (wrong turn, wrong phase, wrong zone, insufficient mana). The triggering
// message is discarded and no state is mutated.
type IllegalMoveError struct {
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return "illegal move: " + e.Reason
}

func illegalMovef(format string, args ...any) error {
	return &IllegalMoveError{Reason: fmt.Sprintf(format, args...)}
}

// IndexOutOfRangeError reports an opcode argument that indexes past the
// bounds of the named zone. Stale client state can produce these routinely,
// so they are recovered locally and never mutate state.
type IndexOutOfRangeError struct {
	Zone   Zone
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for zone %s (length %d)", e.Index, e.Zone, e.Length)
}

// InvalidTargetError reports a chosen target that fails an ability-specific
// constraint (wrong zone, wrong ownership). The ability's effect does not
// occur.
type InvalidTargetError struct {
	Reason string
}

func (e *InvalidTargetError) Error() string {
	return "invalid target: " + e.Reason
}

// EndOfGame is the terminating game event. It is returned as an error so it
// propagates up through the action that caused it, stopping any further
// phase or turn processing for that action.
type EndOfGame struct {
	Winner *Player
}

func (e *EndOfGame) Error() string {
	if e.Winner == nil {
		return "end of game"
	}
	return "end of game: " + e.Winner.Name() + " wins"
}
