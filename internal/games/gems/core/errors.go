package core

import "errors"

// Sentinel errors returned by board and session operations. Rejected moves
// and busy sessions are ordinary outcomes a UI absorbs and moves on from;
// out-of-bounds coordinates indicate a caller bug and should be propagated.
var (
	ErrOutOfBounds     = errors.New("coordinate out of bounds")
	ErrNotAdjacent     = errors.New("cells are not adjacent")
	ErrInvalidMove     = errors.New("invalid move")
	ErrBusy            = errors.New("session is busy resolving")
	ErrUnsolvableBoard = errors.New("no solvable arrangement found")
)
