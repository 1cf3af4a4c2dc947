package core

import "math/rand"

// FallEvent records one token dropping within its column.
type FallEvent struct {
	ID     TokenID
	Column int
	FromY  int
	ToY    int
}

// SpawnEvent records one refill token entering the board at its resting
// cell.
type SpawnEvent struct {
	ID     TokenID
	Type   GemType
	Column int
	Y      int
}

// ScoredMatch pairs a consolidated match with its points and the tokens it
// consumed, parallel to Match.Cells.
type ScoredMatch struct {
	Match
	Tokens []Token
	Points int
}

// Step is one remove→fall→refill round of a cascade. Falls are ordered
// nearest-to-bottom first within each column, columns left to right;
// spawns are ordered top-down within each column.
type Step struct {
	Depth   int
	Removed []ScoredMatch
	Fallen  []FallEvent
	Spawned []SpawnEvent
	Points  int
}

// Apply replays the step onto a board copy. Presentation layers drive
// their visible grid this way while pacing a trace; replaying every step
// over a clone taken before Resolve reproduces the resolved board exactly.
func (s Step) Apply(b *Board) {
	for _, m := range s.Removed {
		for _, c := range m.Cells {
			b.put(c, Token{})
		}
	}
	for _, f := range s.Fallen {
		t := b.at(Coord{f.Column, f.FromY})
		b.put(Coord{f.Column, f.ToY}, t)
		b.put(Coord{f.Column, f.FromY}, Token{})
	}
	for _, sp := range s.Spawned {
		b.put(Coord{sp.Column, sp.Y}, Token{ID: sp.ID, Type: sp.Type})
	}
}

// Trace is the complete deterministic outcome of resolving a board. The
// engine computes it up front and never waits; pacing belongs to the
// caller.
type Trace struct {
	Steps []Step
}

// TotalPoints sums the points of every step.
func (t Trace) TotalPoints() int {
	n := 0
	for _, s := range t.Steps {
		n += s.Points
	}
	return n
}

// Depth returns the number of cascade rounds.
func (t Trace) Depth() int { return len(t.Steps) }

// Resolver drains a board of matches: remove, settle, refill, rescan,
// until a full pass finds nothing.
type Resolver struct {
	Detector *Detector
	Scorer   *Scorer
	Types    int
}

// Resolve runs the full cascade on a board and returns the trace.
// comboBase offsets the combo depth fed to scoring, letting a combo still
// alive from earlier moves keep climbing. Within a step, removal completes
// before gravity, gravity before refill, refill before the rescan.
func (r *Resolver) Resolve(b *Board, rng *rand.Rand, ids *TokenSource, comboBase int) Trace {
	var tr Trace
	for depth := 0; ; depth++ {
		matches := r.Detector.Find(b)
		if len(matches) == 0 {
			return tr
		}
		step := Step{Depth: depth}
		for _, m := range matches {
			sm := ScoredMatch{Match: m, Points: r.Scorer.MatchPoints(m, comboBase+depth)}
			for _, c := range m.Cells {
				sm.Tokens = append(sm.Tokens, b.at(c))
				b.put(c, Token{})
			}
			step.Removed = append(step.Removed, sm)
			step.Points += sm.Points
		}
		step.Fallen = settle(b)
		step.Spawned = r.refill(b, rng, ids)
		tr.Steps = append(tr.Steps, step)
	}
}

// Fill populates every empty cell, column by column, using the same
// two-cell lookback rule refills use, so a fresh board starts matchless.
func (r *Resolver) Fill(b *Board, rng *rand.Rand, ids *TokenSource) {
	for x := range b.W {
		for y := range b.H {
			c := Coord{x, y}
			if !b.at(c).Empty() {
				continue
			}
			b.put(c, Token{ID: ids.Next(), Type: r.pickType(b, c, rng)})
		}
	}
}

// settle compacts every column toward the bottom as a single pass per
// column. Events come out nearest-to-bottom first within a column, columns
// left to right.
func settle(b *Board) []FallEvent {
	var falls []FallEvent
	for x := range b.W {
		write := b.H - 1
		for y := b.H - 1; y >= 0; y-- {
			t := b.at(Coord{x, y})
			if t.Empty() {
				continue
			}
			if write != y {
				b.put(Coord{x, write}, t)
				b.put(Coord{x, y}, Token{})
				falls = append(falls, FallEvent{ID: t.ID, Column: x, FromY: y, ToY: write})
			}
			write--
		}
	}
	return falls
}

// refill drops fresh tokens into the empty top of each column. After
// settle the empties of a column are exactly its topmost cells, so
// placement runs columns left to right, cells top-down.
func (r *Resolver) refill(b *Board, rng *rand.Rand, ids *TokenSource) []SpawnEvent {
	var spawns []SpawnEvent
	for x := range b.W {
		for y := range b.H {
			c := Coord{x, y}
			if !b.at(c).Empty() {
				break
			}
			t := Token{ID: ids.Next(), Type: r.pickType(b, c, rng)}
			b.put(c, t)
			spawns = append(spawns, SpawnEvent{ID: t.ID, Type: t.Type, Column: x, Y: y})
		}
	}
	return spawns
}

// pickType draws a type for c that cannot complete a run against an
// already-filled pair of neighbors: the two cells to its left, the two
// above, or the two below (refill spawns land on top of settled
// survivors). If the rule eliminates every type the full set is used
// instead and the rescan loop cleans up whatever spawns.
func (r *Resolver) pickType(b *Board, c Coord, rng *rand.Rand) GemType {
	var banned [3]GemType
	nb := 0
	for _, d := range [3]Coord{{-1, 0}, {0, -1}, {0, 1}} {
		if t, ok := pairType(b, c, d); ok {
			banned[nb] = t
			nb++
		}
	}
	allowed := make([]GemType, 0, r.Types)
	for g := range r.Types {
		gt := GemType(g)
		ok := true
		for i := range nb {
			if banned[i] == gt {
				ok = false
			}
		}
		if ok {
			allowed = append(allowed, gt)
		}
	}
	if len(allowed) == 0 {
		return GemType(rng.Intn(r.Types))
	}
	return allowed[rng.Intn(len(allowed))]
}

// pairType reports the shared type of the cells at c+d and c+2d when both
// are filled and equal.
func pairType(b *Board, c, d Coord) (GemType, bool) {
	p1 := c.Add(d)
	p2 := p1.Add(d)
	if !b.In(p1) || !b.In(p2) {
		return 0, false
	}
	t1, t2 := b.at(p1), b.at(p2)
	if t1.Empty() || t2.Empty() || t1.Type != t2.Type {
		return 0, false
	}
	return t1.Type, true
}
