package core_test

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/gemfall/internal/games/gems/core"
)

func TestFindMatches(t *testing.T) {
	type want struct {
		cells int
		shape core.PatternShape
	}
	cases := []struct {
		name string
		rows []string
		want []want
	}{
		{
			name: "matchless checker",
			rows: []string{
				"ababa",
				"babab",
				"ababa",
			},
			want: nil,
		},
		{
			name: "row of three",
			rows: []string{
				"aaabc",
				"bcdef",
				"cdefa",
			},
			want: []want{{3, core.ShapeLine}},
		},
		{
			name: "column of four",
			rows: []string{
				"abc",
				"acb",
				"abc",
				"acb",
			},
			want: []want{{4, core.ShapeLine}},
		},
		{
			name: "row of five",
			rows: []string{
				"aaaaa",
				"bcdbc",
				"cbdcb",
			},
			want: []want{{5, core.ShapeLine}},
		},
		{
			name: "corner runs merge into an L",
			rows: []string{
				"abc",
				"acb",
				"aaa",
			},
			want: []want{{5, core.ShapeL}},
		},
		{
			name: "full block is irregular",
			rows: []string{
				"aaa",
				"aaa",
				"bcb",
			},
			want: []want{{6, core.ShapeIrregular}},
		},
		{
			name: "plus is a cross, not an L",
			rows: []string{
				".a.",
				"aaa",
				".a.",
			},
			want: []want{{5, core.ShapeCross}},
		},
		{
			name: "offset runs merge irregular",
			rows: []string{
				"aaab",
				"caaa",
			},
			want: []want{{6, core.ShapeIrregular}},
		},
		{
			name: "two separate matches",
			rows: []string{
				"aaa..",
				".....",
				"..bbb",
			},
			want: []want{{3, core.ShapeLine}, {3, core.ShapeLine}},
		},
	}

	det := core.Detector{MinRun: 3}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := boardFrom(t, tc.rows...)
			got := det.Find(b)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d matches, want %d: %+v", len(got), len(tc.want), got)
			}
			for i, w := range tc.want {
				if len(got[i].Cells) != w.cells {
					t.Errorf("match %d: got %d cells, want %d", i, len(got[i].Cells), w.cells)
				}
				if got[i].Shape != w.shape {
					t.Errorf("match %d: got shape %s, want %s", i, got[i].Shape, w.shape)
				}
			}
		})
	}
}

func TestFindMatchesLeavesBoardAlone(t *testing.T) {
	b := boardFrom(t,
		"aaabc",
		"bcdef",
		"cdefa",
	)
	want := picture(t, b)
	det := core.Detector{MinRun: 3}
	det.Find(b)
	if got := picture(t, b); !samePicture(got, want) {
		t.Errorf("Find mutated the board:\n got %v\nwant %v", got, want)
	}
}

func TestFindMatchesDeterministic(t *testing.T) {
	b := boardFrom(t,
		"aaa..",
		".....",
		"..bbb",
	)
	det := core.Detector{MinRun: 3}
	first := det.Find(b)
	second := det.Find(b)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two scans of the same board differ:\n%+v\n%+v", first, second)
	}
}

func TestMatchCellsSortedRowMajor(t *testing.T) {
	b := boardFrom(t,
		"abc",
		"acb",
		"aaa",
	)
	det := core.Detector{MinRun: 3}
	matches := det.Find(b)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	cells := matches[0].Cells
	for i := 1; i < len(cells); i++ {
		prev, cur := cells[i-1], cells[i]
		if cur.Y < prev.Y || (cur.Y == prev.Y && cur.X <= prev.X) {
			t.Fatalf("cells not sorted row-major: %v", cells)
		}
	}
}

func TestMinRunFour(t *testing.T) {
	b := boardFrom(t,
		"aaabc",
		"bcdef",
		"cdefa",
	)
	det := core.Detector{MinRun: 4}
	if got := det.Find(b); len(got) != 0 {
		t.Errorf("runs of three should not match under a minimum of four, got %+v", got)
	}
}
