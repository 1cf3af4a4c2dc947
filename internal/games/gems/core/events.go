package core

// Event is one engine-side occurrence reported to the session's sink.
// Events carry everything a presentation or progression layer needs; the
// engine never calls back into its consumers and never waits on them.
type Event interface {
	gameEvent()
}

// Sink receives events in emission order. A nil sink drops them.
type Sink func(Event)

// TokenSpawned announces a refill token entering at its resting cell.
type TokenSpawned struct {
	ID     TokenID
	Type   GemType
	Column int
	Y      int
}

// TokenRemoved announces a matched token leaving the board.
type TokenRemoved struct {
	ID TokenID
}

// TokenMoved announces a token falling within its column.
type TokenMoved struct {
	ID     TokenID
	Column int
	FromY  int
	ToY    int
}

// MatchResolved announces one scored match of a cascade step.
type MatchResolved struct {
	Match  Match
	Points int
}

// ComboChanged announces the combo counter moving, in either direction.
type ComboChanged struct {
	Counter int
}

// ScoreChanged announces the running total after a scored step.
type ScoreChanged struct {
	Total int
}

// StateChanged announces a phase transition.
type StateChanged struct {
	From Phase
	To   Phase
}

// BoardShuffled announces a deadlock repair; the whole grid may have
// moved and consumers should redraw from scratch.
type BoardShuffled struct{}

func (TokenSpawned) gameEvent()  {}
func (TokenRemoved) gameEvent()  {}
func (TokenMoved) gameEvent()    {}
func (MatchResolved) gameEvent() {}
func (ComboChanged) gameEvent()  {}
func (ScoreChanged) gameEvent()  {}
func (StateChanged) gameEvent()  {}
func (BoardShuffled) gameEvent() {}
