package core

import "sort"

// PatternShape classifies the geometry of a consolidated match.
type PatternShape uint8

const (
	ShapeLine PatternShape = iota
	ShapeL
	ShapeT
	ShapeCross
	ShapeIrregular
)

func (p PatternShape) String() string {
	switch p {
	case ShapeLine:
		return "line"
	case ShapeL:
		return "L"
	case ShapeT:
		return "T"
	case ShapeCross:
		return "cross"
	default:
		return "irregular"
	}
}

// Match is one consolidated group of same-typed cells containing at least
// one straight run of minimum length. Cells are sorted row-major.
type Match struct {
	Type  GemType
	Cells []Coord
	Shape PatternShape
}

// Detector scans boards for matches.
type Detector struct {
	MinRun int
}

// Find returns every consolidated match on the board, ordered by their
// first cell in row-major order. Touching and overlapping runs of the same
// type merge into a single match before classification. The result depends
// only on board contents; calling Find twice yields identical slices.
func (d *Detector) Find(b *Board) []Match {
	seed := d.runMask(b)
	visited := make([]bool, len(seed))
	var out []Match
	for y := range b.H {
		for x := range b.W {
			i := y*b.W + x
			if !seed[i] || visited[i] {
				continue
			}
			cells := collect(b, seed, visited, Coord{x, y})
			sortCells(cells)
			out = append(out, Match{
				Type:  b.at(cells[0]).Type,
				Cells: cells,
				Shape: classify(cells),
			})
		}
	}
	return out
}

// runMask marks every cell belonging to a straight same-type run of at
// least MinRun cells, scanning rows then columns.
func (d *Detector) runMask(b *Board) []bool {
	mask := make([]bool, b.W*b.H)
	for y := range b.H {
		d.scanLine(b, mask, Coord{0, y}, Coord{1, 0}, b.W)
	}
	for x := range b.W {
		d.scanLine(b, mask, Coord{x, 0}, Coord{0, 1}, b.H)
	}
	return mask
}

// scanLine run-length encodes one row or column and marks qualifying runs.
func (d *Detector) scanLine(b *Board, mask []bool, start, step Coord, n int) {
	i := 0
	for i < n {
		first := b.at(lineCoord(start, step, i))
		j := i + 1
		for j < n {
			t := b.at(lineCoord(start, step, j))
			if first.Empty() || t.Empty() || t.Type != first.Type {
				break
			}
			j++
		}
		if !first.Empty() && j-i >= d.MinRun {
			for k := i; k < j; k++ {
				c := lineCoord(start, step, k)
				mask[c.Y*b.W+c.X] = true
			}
		}
		i = j
	}
}

func lineCoord(start, step Coord, k int) Coord {
	return Coord{start.X + step.X*k, start.Y + step.Y*k}
}

// collect gathers the connected group of seeded cells around c, same type
// only. Flood fill with an explicit stack; consolidated groups can span
// the whole board.
func collect(b *Board, seed, visited []bool, c Coord) []Coord {
	want := b.at(c).Type
	stack := []Coord{c}
	visited[c.Y*b.W+c.X] = true
	var cells []Coord
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cells = append(cells, cur)
		for _, d := range cardinal {
			n := cur.Add(d)
			if !b.In(n) {
				continue
			}
			i := n.Y*b.W + n.X
			if visited[i] || !seed[i] || b.at(n).Type != want {
				continue
			}
			visited[i] = true
			stack = append(stack, n)
		}
	}
	return cells
}

func sortCells(cells []Coord) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}

// classify names the geometry of a consolidated match. Order matters: a
// five-cell plus also spans a 3×3 box, so the cross test runs before the
// box test.
func classify(cells []Coord) PatternShape {
	minX, minY := cells[0].X, cells[0].Y
	maxX, maxY := minX, minY
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	w, h := maxX-minX+1, maxY-minY+1
	switch {
	case w == 1 || h == 1:
		return ShapeLine
	case w == 3 && h == 3 && isPlus(cells, minX, minY):
		return ShapeCross
	case w == 3 && h == 3:
		return ShapeL
	case ((w == 3 && h == 2) || (w == 2 && h == 3)) && len(cells) < w*h:
		// A long-axis run with a shorter perpendicular arm. The fully
		// filled block has no arms and falls through.
		return ShapeT
	default:
		return ShapeIrregular
	}
}

// isPlus reports the exact five-cell plus footprint: center, four arms,
// corners empty.
func isPlus(cells []Coord, minX, minY int) bool {
	if len(cells) != 5 {
		return false
	}
	cx, cy := minX+1, minY+1
	want := map[Coord]bool{
		{cx, cy}:     true,
		{cx - 1, cy}: true,
		{cx + 1, cy}: true,
		{cx, cy - 1}: true,
		{cx, cy + 1}: true,
	}
	for _, c := range cells {
		if !want[c] {
			return false
		}
	}
	return true
}
