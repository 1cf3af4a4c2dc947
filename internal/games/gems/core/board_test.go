package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/gemfall/internal/games/gems/core"
)

func TestBoardBounds(t *testing.T) {
	b := boardFrom(t,
		"abc",
		"cab",
		"bca",
	)

	bad := []core.Coord{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 3, Y: 0}, {X: 0, Y: 3}}
	for _, c := range bad {
		if _, err := b.At(c); !errors.Is(err, core.ErrOutOfBounds) {
			t.Errorf("At(%v): got %v, want ErrOutOfBounds", c, err)
		}
		if err := b.Set(c, core.Token{ID: 99, Type: 0}); !errors.Is(err, core.ErrOutOfBounds) {
			t.Errorf("Set(%v): got %v, want ErrOutOfBounds", c, err)
		}
	}
	if err := b.Swap(core.Coord{X: 0, Y: 0}, core.Coord{X: 0, Y: -1}); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("Swap off-board: got %v, want ErrOutOfBounds", err)
	}
	if _, err := b.Row(3); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("Row(3): got %v, want ErrOutOfBounds", err)
	}
	if _, err := b.Column(-1); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("Column(-1): got %v, want ErrOutOfBounds", err)
	}
}

func TestSwapAdjacency(t *testing.T) {
	b := boardFrom(t,
		"abc",
		"cab",
		"bca",
	)

	cases := []struct {
		name string
		a, c core.Coord
	}{
		{"diagonal", core.Coord{X: 0, Y: 0}, core.Coord{X: 1, Y: 1}},
		{"distant", core.Coord{X: 0, Y: 0}, core.Coord{X: 2, Y: 0}},
		{"self", core.Coord{X: 1, Y: 1}, core.Coord{X: 1, Y: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := b.Swap(tc.a, tc.c); !errors.Is(err, core.ErrNotAdjacent) {
				t.Fatalf("got %v, want ErrNotAdjacent", err)
			}
		})
	}

	before, _ := b.At(core.Coord{X: 0, Y: 0})
	after, _ := b.At(core.Coord{X: 1, Y: 0})
	if err := b.Swap(core.Coord{X: 0, Y: 0}, core.Coord{X: 1, Y: 0}); err != nil {
		t.Fatalf("adjacent swap: %v", err)
	}
	got0, _ := b.At(core.Coord{X: 0, Y: 0})
	got1, _ := b.At(core.Coord{X: 1, Y: 0})
	if got0 != after || got1 != before {
		t.Errorf("swap did not exchange cells: got %v,%v want %v,%v", got0, got1, after, before)
	}
}

func TestRowColumnReturnCopies(t *testing.T) {
	b := boardFrom(t,
		"abc",
		"cab",
		"bca",
	)
	want := picture(t, b)

	row, err := b.Row(1)
	if err != nil {
		t.Fatalf("Row(1): %v", err)
	}
	row[0] = core.Token{ID: 42, Type: 5}

	col, err := b.Column(2)
	if err != nil {
		t.Fatalf("Column(2): %v", err)
	}
	col[2] = core.Token{}

	if got := picture(t, b); !samePicture(got, want) {
		t.Errorf("mutating returned slices changed the board:\n got %v\nwant %v", got, want)
	}
}

func TestRowColumnIncludeEmpties(t *testing.T) {
	b := boardFrom(t,
		"a.c",
		"...",
		"b.a",
	)
	row, err := b.Row(0)
	if err != nil {
		t.Fatalf("Row(0): %v", err)
	}
	if !row[1].Empty() {
		t.Errorf("row position 1 should be empty, got %v", row[1])
	}
	col, err := b.Column(1)
	if err != nil {
		t.Fatalf("Column(1): %v", err)
	}
	for i, tok := range col {
		if !tok.Empty() {
			t.Errorf("column position %d should be empty, got %v", i, tok)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := boardFrom(t,
		"abc",
		"cab",
		"bca",
	)
	want := picture(t, b)

	clone := b.Clone()
	if err := clone.Set(core.Coord{X: 1, Y: 1}, core.Token{}); err != nil {
		t.Fatalf("set on clone: %v", err)
	}
	if got := picture(t, b); !samePicture(got, want) {
		t.Errorf("mutating clone changed the original:\n got %v\nwant %v", got, want)
	}
	if b.Count() != 9 || clone.Count() != 8 {
		t.Errorf("counts: original %d (want 9), clone %d (want 8)", b.Count(), clone.Count())
	}
}
