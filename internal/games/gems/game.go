// Package gems provides the gem-matching puzzle for the gemfall platform.
// It adapts the deterministic engine in gems/core to the platform's
// tick/render loop: the engine resolves every move instantly, and this
// layer paces the resulting trace into visible swap, flash and fall beats.
package gems

import (
	"github.com/vovakirdan/gemfall/internal/config"
	platformcore "github.com/vovakirdan/gemfall/internal/core"
	"github.com/vovakirdan/gemfall/internal/games/gems/core"
	"github.com/vovakirdan/gemfall/internal/progression"
	"github.com/vovakirdan/gemfall/internal/registry"
	"github.com/vovakirdan/gemfall/internal/storage"
)

// Mode represents the game mode.
type Mode string

const (
	// ModeClassic ends the run when the move budget is spent.
	ModeClassic Mode = "classic"
	// ModeZen has no move budget; the run ends only on an unsolvable board
	// or when the player leaves.
	ModeZen Mode = "zen"
)

// Game implements the gem-matching puzzle.
type Game struct {
	mode Mode
	cfg  config.GemsConfig
	tick uint64

	session *core.Session
	view    *core.Board
	pb      playback

	// Cursor state
	cursor  core.Coord
	grabbed bool

	// Classic mode move budget
	movesLeft int
	movesUsed int

	// Run statistics for the summary row
	maxCombo   int
	maxCascade int

	// Zen carries score across board regenerations
	banked int

	// Progression
	tracker    *progression.Tracker
	toastQueue []string
	toast      string
	toastTicks int

	// Screen dimensions and layout
	screenW   int
	screenH   int
	boardX    int
	boardY    int
	cellW     int
	cellH     int
	hudHeight int
	tickRate  int

	// Game state flags
	gameOver     bool
	outOfMoves   bool
	unsolvable   bool
	paused       bool
	tooSmall     bool
	viewStale    bool
	shuffleTicks int
	refreshTicks int
}

// Package-level variables for config
var (
	configPath       string
	difficultyPreset string
	progressionSaver progression.Saver
)

// SetConfigPath sets a custom config file path. Empty means the default
// search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset name (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetProgressionSaver wires achievement persistence. A nil saver disables
// achievement tracking entirely.
func SetProgressionSaver(s progression.Saver) {
	progressionSaver = s
}

// New creates a new classic mode game.
func New() *Game {
	return &Game{
		mode:      ModeClassic,
		cellW:     4,
		cellH:     2,
		hudHeight: 3,
	}
}

// NewZen creates a new zen mode game.
func NewZen() *Game {
	g := New()
	g.mode = ModeZen
	return g
}

func init() {
	registry.Register("gems", "Gemfall", func() registry.Game {
		return New()
	})
	registry.Register("gems_zen", "Gemfall (Zen)", func() registry.Game {
		return NewZen()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeZen {
		return "gems_zen"
	}
	return "gems"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Gemfall (Zen)"
	}
	return "Gemfall"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	g.gameOver = false
	g.outOfMoves = false
	g.unsolvable = false
	g.paused = false
	g.grabbed = false
	g.viewStale = false
	g.cursor = core.Coord{}
	g.movesUsed = 0
	g.maxCombo = 0
	g.maxCascade = 0
	g.banked = 0
	g.toastQueue = nil
	g.toast = ""
	g.toastTicks = 0
	g.shuffleTicks = 0
	g.refreshTicks = 0
	g.pb = playback{}

	// Load gameplay config with difficulty applied
	gc, err := config.LoadGems(configPath)
	if err != nil {
		gc = config.DefaultGemsConfig()
	}
	config.ApplyGemsPreset(&gc, config.ParsePreset(difficultyPreset))
	g.cfg = gc
	g.movesLeft = gc.Gameplay.MoveBudget

	// Fresh achievement tracker per run; session-scoped thresholds like
	// match counts start over here.
	g.tracker = nil
	if progressionSaver != nil {
		if t, terr := progression.NewTracker(progressionSaver); terr == nil {
			g.tracker = t
		}
	}

	sess, err := core.NewSession(EngineConfig(gc), cfg.Seed, g.onEvent)
	if err != nil {
		// A board that cannot be made solvable within the reshuffle limit
		// is unplayable from the start.
		g.unsolvable = true
		g.gameOver = true
		return
	}
	g.session = sess
	g.view = sess.Board().Clone()

	g.calculateLayout()
}

// EngineConfig maps the YAML gameplay config onto the engine rule set.
// Exported so headless drivers can build sessions from the same config.
func EngineConfig(c config.GemsConfig) core.Config {
	return core.Config{
		Width:      c.Board.Width,
		Height:     c.Board.Height,
		Types:      c.Board.GemTypes,
		MinRun:     c.Board.MinRun,
		LengthBase: c.Scoring.LengthBase,
		Bonus: core.ShapeBonus{
			Line:      c.Scoring.LineBonus,
			L:         c.Scoring.LBonus,
			T:         c.Scoring.TBonus,
			Cross:     c.Scoring.CrossBonus,
			Irregular: c.Scoring.IrregularBonus,
		},
		ComboScale:     c.Combo.Scale,
		ComboWindow:    c.Combo.WindowTicks,
		ReshuffleLimit: c.Board.ReshuffleLimit,
	}
}

// calculateLayout centers the board and checks the screen fits it.
func (g *Game) calculateLayout() {
	boardW := g.cfg.Board.Width*g.cellW + 1
	boardH := g.cfg.Board.Height*g.cellH + 1

	minW := boardW + 2
	minH := boardH + g.hudHeight + 3
	g.tooSmall = g.screenW < minW || g.screenH < minH

	g.boardX = (g.screenW - boardW) / 2
	g.boardY = g.hudHeight + 1
}

// onEvent receives engine events during trace acknowledgment. Board
// mutations are not applied here; the playback replays those from the
// trace at its own pace.
func (g *Game) onEvent(e core.Event) {
	switch ev := e.(type) {
	case core.MatchResolved:
		if g.tracker != nil {
			g.tracker.RecordMatch(len(ev.Match.Cells), ev.Match.Shape)
		}
	case core.ComboChanged:
		if ev.Counter > g.maxCombo {
			g.maxCombo = ev.Counter
		}
		if g.tracker != nil {
			g.tracker.RecordCombo(ev.Counter)
		}
	case core.BoardShuffled:
		g.shuffleTicks = shuffleNoticeTicks
		g.viewStale = true
		if g.tracker != nil {
			g.tracker.RecordReshuffle()
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.GameState {
	g.tick++

	if g.tooSmall || g.session == nil {
		return g.State()
	}

	// Handle pause
	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.State()
	}

	// Handle restart request; the platform performs the actual Reset
	if in.Has(platformcore.ActionRestart) && g.gameOver {
		return g.State()
	}

	// Feed the tick counter so combo windows expire on time
	g.session.Advance(g.tick)

	// Count down transient notices
	if g.shuffleTicks > 0 {
		g.shuffleTicks--
	}
	if g.refreshTicks > 0 {
		g.refreshTicks--
	}
	if g.toastTicks > 0 {
		g.toastTicks--
		if g.toastTicks == 0 {
			g.toast = ""
		}
	}
	if g.toast == "" {
		g.nextToast()
	}

	// While a move plays back, pacing owns the board
	if g.pb.active() {
		g.advancePlayback()
		return g.State()
	}

	if g.gameOver {
		return g.State()
	}

	g.handleMoveInput(in)

	return g.State()
}

// handleMoveInput turns input actions into cursor motion and move
// proposals. Only reachable on a settled board.
func (g *Game) handleMoveInput(in platformcore.InputFrame) {
	// Grab toggles between cursor motion and swapping
	if in.Has(platformcore.ActionGrab) {
		g.grabbed = !g.grabbed
	}

	if d, ok := directionOf(in); ok {
		if g.grabbed {
			g.proposeMove(core.SwapAction{A: g.cursor, B: g.cursor.Add(d)})
		} else {
			g.moveCursor(d)
		}
	}

	if a, ok := shiftOf(in, g.cursor); ok {
		g.proposeMove(a)
	}
}

// directionOf extracts a single direction from the frame. With several
// directions held the first match wins.
func directionOf(in platformcore.InputFrame) (core.Coord, bool) {
	switch {
	case in.Has(platformcore.ActionUp):
		return core.Coord{X: 0, Y: -1}, true
	case in.Has(platformcore.ActionDown):
		return core.Coord{X: 0, Y: 1}, true
	case in.Has(platformcore.ActionLeft):
		return core.Coord{X: -1, Y: 0}, true
	case in.Has(platformcore.ActionRight):
		return core.Coord{X: 1, Y: 0}, true
	}
	return core.Coord{}, false
}

// shiftOf extracts a row/column rotation for the cursor's lines.
func shiftOf(in platformcore.InputFrame, cur core.Coord) (core.ShiftAction, bool) {
	switch {
	case in.Has(platformcore.ActionShiftLeft):
		return core.ShiftAction{Axis: core.AxisRow, Index: cur.Y, Amount: -1}, true
	case in.Has(platformcore.ActionShiftRight):
		return core.ShiftAction{Axis: core.AxisRow, Index: cur.Y, Amount: 1}, true
	case in.Has(platformcore.ActionShiftUp):
		return core.ShiftAction{Axis: core.AxisColumn, Index: cur.X, Amount: -1}, true
	case in.Has(platformcore.ActionShiftDown):
		return core.ShiftAction{Axis: core.AxisColumn, Index: cur.X, Amount: 1}, true
	}
	return core.ShiftAction{}, false
}

// moveCursor clamps cursor motion to the board.
func (g *Game) moveCursor(d core.Coord) {
	n := g.cursor.Add(d)
	if g.view.In(n) {
		g.cursor = n
	}
}

// proposeMove hands a move to the engine and starts the matching playback.
func (g *Game) proposeMove(action core.MoveAction) {
	out, err := g.session.ProposeMove(action)
	if err != nil {
		// Off-board swap from an edge cell; nothing to animate
		return
	}
	g.grabbed = false

	if !out.Committed {
		// Fruitless move: show the swap bouncing back
		g.startReject(out.Swaps)
		return
	}

	g.movesUsed++
	if g.mode == ModeClassic {
		g.movesLeft--
	}

	tr := g.session.Resolve()
	if d := tr.Depth(); d > g.maxCascade {
		g.maxCascade = d
		if g.tracker != nil {
			g.tracker.RecordCascade(d)
		}
	}
	g.startPlayback(out.Swaps, tr)
}

// finishMove runs once the playback drained the trace and the engine is
// settled again.
func (g *Game) finishMove() {
	if g.mode == ModeClassic && g.movesLeft <= 0 {
		g.outOfMoves = true
		g.gameOver = true
	}
	g.flushAchievements()
}

// regenerateRelaxed replaces an exhausted board with a fresh session on a
// relaxed rule set, one gem type fewer down to the engine minimum. Zen
// runs continue this way instead of ending; the score earned so far is
// banked and keeps counting. Reports whether a playable board came up.
func (g *Game) regenerateRelaxed() bool {
	g.banked += g.session.Score()
	ec := g.session.Config()
	if ec.Types > 3 {
		ec.Types--
	}
	sess, err := core.NewSession(ec, g.session.Seed()+1, g.onEvent)
	if err != nil {
		return false
	}
	g.session = sess
	g.view = sess.Board().Clone()
	g.viewStale = false
	g.refreshTicks = shuffleNoticeTicks
	return true
}

// score is the run total: what the live session has earned plus anything
// banked from boards zen already replaced.
func (g *Game) score() int {
	s := g.banked
	if g.session != nil {
		s += g.session.Score()
	}
	return s
}

// nextToast promotes the next freshly unlocked achievement into the
// notice area, one at a time.
func (g *Game) nextToast() {
	if len(g.toastQueue) == 0 && g.tracker != nil {
		fresh := g.tracker.TakeFresh()
		if len(fresh) == 0 {
			return
		}
		for _, a := range fresh {
			g.toastQueue = append(g.toastQueue, a.Title)
		}
		g.flushAchievements()
	}
	if len(g.toastQueue) > 0 {
		g.toast = g.toastQueue[0]
		g.toastQueue = g.toastQueue[1:]
		g.toastTicks = toastDuration
	}
}

// flushAchievements persists unlocks best-effort; play continues on error.
func (g *Game) flushAchievements() {
	if g.tracker != nil {
		//nolint:errcheck // Best-effort save, game continues regardless
		g.tracker.Flush()
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score(),
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// RunSummary reports the finished run for the runs table.
func (g *Game) RunSummary() storage.RunEntry {
	secs := 0
	if g.tickRate > 0 {
		secs = int(g.tick) / g.tickRate
	}
	return storage.RunEntry{
		GameID:       g.ID(),
		Mode:         string(g.mode),
		Score:        g.score(),
		Moves:        g.movesUsed,
		MaxCombo:     g.maxCombo,
		MaxCascade:   g.maxCascade,
		DurationSecs: secs,
	}
}
