package gems

import (
	"strings"

	"github.com/vovakirdan/gemfall/internal/games/gems/core"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StateOutOfMoves  GameStateType = "out_of_moves"
	StateExhausted   GameStateType = "board_exhausted"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Mode       string
	Score      int
	Combo      int
	MovesLeft  int
	MovesUsed  int
	MaxCombo   int
	MaxCascade int
	CursorX    int
	CursorY    int
	Grabbed    bool
	Phase      core.Phase
	Board      string // row-major type picture of the settled engine board
	State      GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.unsolvable:
		state = StateExhausted
	case g.outOfMoves:
		state = StateOutOfMoves
	case g.pb.active():
		state = StateResolving
	}

	snap := Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		MovesLeft:  g.movesLeft,
		MovesUsed:  g.movesUsed,
		MaxCombo:   g.maxCombo,
		MaxCascade: g.maxCascade,
		CursorX:    g.cursor.X,
		CursorY:    g.cursor.Y,
		Grabbed:    g.grabbed,
		State:      state,
	}

	if g.session != nil {
		snap.Score = g.score()
		snap.Combo = g.session.Combo().Counter
		snap.Phase = g.session.Phase()
		snap.Board = boardPicture(g.session.Board())
	}

	return snap
}

// boardPicture serializes a board into a row-major string, one letter per
// gem type, '.' for empty cells, '/' between rows.
func boardPicture(b *core.Board) string {
	var sb strings.Builder
	for y := range b.H {
		if y > 0 {
			sb.WriteByte('/')
		}
		for x := range b.W {
			t, err := b.At(core.Coord{X: x, Y: y})
			if err != nil || t.Empty() {
				sb.WriteByte('.')
				continue
			}
			sb.WriteByte(byte('a' + t.Type))
		}
	}
	return sb.String()
}
