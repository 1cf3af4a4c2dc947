package core_test

import (
	"testing"

	"github.com/vovakirdan/gemfall/internal/games/gems/core"
)

// boardFrom builds a board from an ASCII picture: letters a..l are gem
// types, '.' is an empty cell. Token IDs run sequentially in row-major
// order so tests can reason about identity.
func boardFrom(t *testing.T, rows ...string) *core.Board {
	t.Helper()
	if len(rows) == 0 {
		t.Fatal("boardFrom: no rows")
	}
	b := core.NewBoard(len(rows[0]), len(rows))
	var ids core.TokenSource
	for y, row := range rows {
		if len(row) != b.W {
			t.Fatalf("boardFrom: row %d has %d cells, want %d", y, len(row), b.W)
		}
		for x, r := range row {
			if r == '.' {
				continue
			}
			if r < 'a' || r > 'l' {
				t.Fatalf("boardFrom: bad cell %q at (%d,%d)", r, x, y)
			}
			tok := core.Token{ID: ids.Next(), Type: core.GemType(r - 'a')}
			if err := b.Set(core.Coord{X: x, Y: y}, tok); err != nil {
				t.Fatalf("boardFrom: set (%d,%d): %v", x, y, err)
			}
		}
	}
	return b
}

// picture renders a board back to the boardFrom notation for comparisons
// and failure messages.
func picture(t *testing.T, b *core.Board) []string {
	t.Helper()
	rows := make([]string, b.H)
	for y := range b.H {
		line := make([]byte, b.W)
		for x := range b.W {
			tok, err := b.At(core.Coord{X: x, Y: y})
			if err != nil {
				t.Fatalf("picture: at (%d,%d): %v", x, y, err)
			}
			if tok.Empty() {
				line[x] = '.'
			} else {
				line[x] = byte('a') + byte(tok.Type)
			}
		}
		rows[y] = string(line)
	}
	return rows
}

func samePicture(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// tokenIDs collects every occupied cell's identity.
func tokenIDs(t *testing.T, b *core.Board) map[core.TokenID]bool {
	t.Helper()
	ids := make(map[core.TokenID]bool)
	for y := range b.H {
		for x := range b.W {
			tok, err := b.At(core.Coord{X: x, Y: y})
			if err != nil {
				t.Fatalf("tokenIDs: at (%d,%d): %v", x, y, err)
			}
			if tok.Empty() {
				continue
			}
			if ids[tok.ID] {
				t.Fatalf("tokenIDs: duplicate id %d on board", tok.ID)
			}
			ids[tok.ID] = true
		}
	}
	return ids
}

// typeCounts returns the gem multiset of the board.
func typeCounts(t *testing.T, b *core.Board) map[core.GemType]int {
	t.Helper()
	counts := make(map[core.GemType]int)
	for y := range b.H {
		for x := range b.W {
			tok, err := b.At(core.Coord{X: x, Y: y})
			if err != nil {
				t.Fatalf("typeCounts: at (%d,%d): %v", x, y, err)
			}
			if !tok.Empty() {
				counts[tok.Type]++
			}
		}
	}
	return counts
}

// findAnyMove locates a committing swap by probing clones, so the session
// under test is never disturbed.
func findAnyMove(t *testing.T, b *core.Board, minRun int) (core.SwapAction, bool) {
	t.Helper()
	det := core.Detector{MinRun: minRun}
	for y := range b.H {
		for x := range b.W {
			a := core.Coord{X: x, Y: y}
			for _, n := range []core.Coord{{X: x + 1, Y: y}, {X: x, Y: y + 1}} {
				if !b.In(n) {
					continue
				}
				probe := b.Clone()
				if err := probe.Swap(a, n); err != nil {
					t.Fatalf("findAnyMove: swap: %v", err)
				}
				if len(det.Find(probe)) > 0 {
					return core.SwapAction{A: a, B: n}, true
				}
			}
		}
	}
	return core.SwapAction{}, false
}
