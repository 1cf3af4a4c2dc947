package core

// Axis selects a board line for shift moves.
type Axis uint8

const (
	AxisRow Axis = iota
	AxisColumn
)

func (a Axis) String() string {
	if a == AxisRow {
		return "row"
	}
	return "column"
}

// MoveAction is a player move proposal. Concrete actions are SwapAction
// and ShiftAction.
type MoveAction interface {
	moveAction()
}

// SwapAction exchanges two edge-adjacent cells.
type SwapAction struct {
	A, B Coord
}

// ShiftAction rotates a whole row or column by Amount cells with
// wraparound. Positive amounts move toward +x for rows and +y for columns.
type ShiftAction struct {
	Axis   Axis
	Index  int
	Amount int
}

func (SwapAction) moveAction()  {}
func (ShiftAction) moveAction() {}

// SwapStep is one adjacent pairwise exchange. Shift actions normalize into
// an ordered sequence of these before validation.
type SwapStep struct {
	A, B Coord
}

// MoveOutcome reports how a proposal fared. An uncommitted move leaves the
// board exactly as it was; Swaps holds the normalized sequence either way
// so a presentation can animate the attempt.
type MoveOutcome struct {
	Committed bool
	Matches   []Match
	Swaps     []SwapStep
}

// Validator applies move proposals with commit-or-revert semantics.
type Validator struct {
	Detector *Detector
}

// Apply validates a proposal against the board. The whole normalized swap
// sequence is applied, the board rescanned, and on a miss every swap is
// undone in reverse order. Callers never observe an intermediate state.
func (v *Validator) Apply(b *Board, action MoveAction) (MoveOutcome, error) {
	switch a := action.(type) {
	case SwapAction:
		return v.applySwap(b, a)
	case ShiftAction:
		return v.applyShift(b, a)
	default:
		return MoveOutcome{}, ErrInvalidMove
	}
}

func (v *Validator) applySwap(b *Board, a SwapAction) (MoveOutcome, error) {
	if !b.In(a.A) || !b.In(a.B) {
		return MoveOutcome{}, ErrOutOfBounds
	}
	if !a.A.Adjacent(a.B) {
		return MoveOutcome{}, ErrNotAdjacent
	}
	return v.commit(b, []SwapStep{{a.A, a.B}}), nil
}

func (v *Validator) applyShift(b *Board, a ShiftAction) (MoveOutcome, error) {
	steps, err := NormalizeShift(b, a)
	if err != nil {
		return MoveOutcome{}, err
	}
	return v.commit(b, steps), nil
}

// commit plays the swap sequence, keeps it if it made a match, reverts it
// otherwise. Only the net effect is judged, never a component swap.
func (v *Validator) commit(b *Board, steps []SwapStep) MoveOutcome {
	for _, s := range steps {
		b.swap(s.A, s.B)
	}
	matches := v.Detector.Find(b)
	if len(matches) == 0 {
		for i := len(steps) - 1; i >= 0; i-- {
			b.swap(steps[i].A, steps[i].B)
		}
		return MoveOutcome{Swaps: steps}
	}
	return MoveOutcome{Committed: true, Matches: matches, Swaps: steps}
}

// NormalizeShift expands a wrapping row or column rotation into the
// adjacent swap sequence implementing it. Amount is reduced modulo the
// axis length and the direction chosen so no more than half a rotation is
// ever played. A zero net shift yields an empty sequence.
func NormalizeShift(b *Board, a ShiftAction) ([]SwapStep, error) {
	n, limit := b.W, b.H
	if a.Axis == AxisColumn {
		n, limit = b.H, b.W
	}
	if a.Index < 0 || a.Index >= limit {
		return nil, ErrOutOfBounds
	}
	k := ((a.Amount % n) + n) % n
	if k == 0 {
		return nil, nil
	}
	forward := true
	if k > n-k {
		forward = false
		k = n - k
	}
	cell := func(i int) Coord {
		if a.Axis == AxisRow {
			return Coord{i, a.Index}
		}
		return Coord{a.Index, i}
	}
	steps := make([]SwapStep, 0, k*(n-1))
	for range k {
		if forward {
			for i := n - 2; i >= 0; i-- {
				steps = append(steps, SwapStep{cell(i), cell(i + 1)})
			}
		} else {
			for i := 0; i < n-1; i++ {
				steps = append(steps, SwapStep{cell(i), cell(i + 1)})
			}
		}
	}
	return steps, nil
}
