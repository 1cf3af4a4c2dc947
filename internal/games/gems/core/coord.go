package core

// Coord addresses a board cell. Y grows downward, matching screen
// coordinates: gravity pulls toward higher Y.
type Coord struct {
	X, Y int
}

// Add returns the coordinate offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{c.X + d.X, c.Y + d.Y}
}

// Adjacent reports whether two coordinates share an edge.
func (c Coord) Adjacent(o Coord) bool {
	dx, dy := c.X-o.X, c.Y-o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// cardinal holds the four edge-neighbor offsets, in scan order.
var cardinal = [4]Coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
