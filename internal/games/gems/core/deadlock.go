package core

import "math/rand"

// HasValidMove reports whether at least one adjacent swap would create a
// match. Probing the right and down neighbor of every cell covers each
// adjacent pair exactly once; every probe is swap-check-revert on the live
// board.
func (d *Detector) HasValidMove(b *Board) bool {
	for y := range b.H {
		for x := range b.W {
			c := Coord{x, y}
			for _, n := range [2]Coord{{x + 1, y}, {x, y + 1}} {
				if !b.In(n) {
					continue
				}
				b.swap(c, n)
				hit := d.matchThrough(b, c) || d.matchThrough(b, n)
				b.swap(c, n)
				if hit {
					return true
				}
			}
		}
	}
	return false
}

// matchThrough reports whether a straight run of at least MinRun passes
// through c. A swap can only create runs through the two swapped cells, so
// probing those two is a complete check.
func (d *Detector) matchThrough(b *Board, c Coord) bool {
	t := b.at(c)
	if t.Empty() {
		return false
	}
	for _, step := range [2]Coord{{1, 0}, {0, 1}} {
		n := 1
		for p := c.Add(step); b.In(p) && b.at(p).Type == t.Type && !b.at(p).Empty(); p = p.Add(step) {
			n++
		}
		back := Coord{-step.X, -step.Y}
		for p := c.Add(back); b.In(p) && b.at(p).Type == t.Type && !b.at(p).Empty(); p = p.Add(back) {
			n++
		}
		if n >= d.MinRun {
			return true
		}
	}
	return false
}

// Reshuffle permutes the tokens already on the board until it is both
// matchless and movable, conserving the token multiset exactly: no token
// is minted or destroyed, identities included. Attempts are bounded; a
// composition that cannot be arranged into a playable position comes back
// as ErrUnsolvableBoard with the board left in its last arrangement.
func (d *Detector) Reshuffle(b *Board, rng *rand.Rand, maxAttempts int) error {
	idx := make([]int, 0, len(b.cells))
	toks := make([]Token, 0, len(b.cells))
	for i, t := range b.cells {
		if !t.Empty() {
			idx = append(idx, i)
			toks = append(toks, t)
		}
	}
	for range maxAttempts {
		rng.Shuffle(len(toks), func(i, j int) {
			toks[i], toks[j] = toks[j], toks[i]
		})
		for k, i := range idx {
			b.cells[i] = toks[k]
		}
		if len(d.Find(b)) == 0 && d.HasValidMove(b) {
			return nil
		}
	}
	return ErrUnsolvableBoard
}
