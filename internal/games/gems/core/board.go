package core

// GemType identifies one of the playable gem kinds, numbered from zero.
// Equality is the only predicate matching ever uses.
type GemType uint8

// TokenID uniquely identifies a gem within a session. The zero ID is
// reserved for empty cells.
type TokenID uint64

// Token is a single gem: identity plus kind. Tokens are plain values with
// no behavior; the resolver moves them between cells, removal destroys
// them, refill mints new ones.
type Token struct {
	ID   TokenID
	Type GemType
}

// Empty reports whether the token is the empty-cell marker.
func (t Token) Empty() bool { return t.ID == 0 }

// TokenSource hands out session-unique token identifiers, starting at 1.
type TokenSource struct {
	last TokenID
}

// Next returns a fresh identifier.
func (s *TokenSource) Next() TokenID {
	s.last++
	return s.last
}

// Board is a fixed-size gem grid. The zero Token marks an empty cell.
// Boards are plain containers: match detection, move validation and
// cascade resolution live in their own types.
type Board struct {
	W, H  int
	cells []Token
}

// NewBoard returns an empty w×h board.
func NewBoard(w, h int) *Board {
	return &Board{W: w, H: h, cells: make([]Token, w*h)}
}

// In reports whether c lies on the board.
func (b *Board) In(c Coord) bool {
	return c.X >= 0 && c.X < b.W && c.Y >= 0 && c.Y < b.H
}

// At returns the token at c.
func (b *Board) At(c Coord) (Token, error) {
	if !b.In(c) {
		return Token{}, ErrOutOfBounds
	}
	return b.at(c), nil
}

// Set places a token, or the empty marker, at c.
func (b *Board) Set(c Coord, t Token) error {
	if !b.In(c) {
		return ErrOutOfBounds
	}
	b.put(c, t)
	return nil
}

// Swap exchanges two edge-adjacent cells in place.
func (b *Board) Swap(a, c Coord) error {
	if !b.In(a) || !b.In(c) {
		return ErrOutOfBounds
	}
	if !a.Adjacent(c) {
		return ErrNotAdjacent
	}
	b.swap(a, c)
	return nil
}

// Row returns a copy of row y, left to right, empty cells included.
func (b *Board) Row(y int) ([]Token, error) {
	if y < 0 || y >= b.H {
		return nil, ErrOutOfBounds
	}
	row := make([]Token, b.W)
	copy(row, b.cells[y*b.W:(y+1)*b.W])
	return row, nil
}

// Column returns a copy of column x, top to bottom, empty cells included.
func (b *Board) Column(x int) ([]Token, error) {
	if x < 0 || x >= b.W {
		return nil, ErrOutOfBounds
	}
	col := make([]Token, b.H)
	for y := range b.H {
		col[y] = b.cells[y*b.W+x]
	}
	return col, nil
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	n := &Board{W: b.W, H: b.H, cells: make([]Token, len(b.cells))}
	copy(n.cells, b.cells)
	return n
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	for _, t := range b.cells {
		if !t.Empty() {
			n++
		}
	}
	return n
}

func (b *Board) at(c Coord) Token     { return b.cells[c.Y*b.W+c.X] }
func (b *Board) put(c Coord, t Token) { b.cells[c.Y*b.W+c.X] = t }

func (b *Board) swap(a, c Coord) {
	i, j := a.Y*b.W+a.X, c.Y*b.W+c.X
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
}
