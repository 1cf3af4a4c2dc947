package gems

import (
	"fmt"

	platformcore "github.com/vovakirdan/gemfall/internal/core"
	"github.com/vovakirdan/gemfall/internal/games/gems/core"
)

// Glyph and color per gem type. The engine caps Types at the palette size.
var gemGlyphs = [...]rune{'◆', '●', '■', '▲', '♥', '★', '✦', '◎', '⬣', '✚', '❖', '◈'}

var gemColors = [...]platformcore.Color{
	platformcore.ColorRed,
	platformcore.ColorYellow,
	platformcore.ColorBlue,
	platformcore.ColorGreen,
	platformcore.ColorMagenta,
	platformcore.ColorCyan,
	platformcore.ColorBrightRed,
	platformcore.ColorBrightYellow,
	platformcore.ColorBrightBlue,
	platformcore.ColorBrightGreen,
	platformcore.ColorBrightMagenta,
	platformcore.ColorBrightCyan,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.session == nil {
		g.renderOverlay(dst, "No playable board", "Press R to retry")
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderNotices(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	msg := "Window too small"
	x := (g.screenW - len(msg)) / 2
	y := g.screenH / 2
	dst.DrawText(x, y, msg)

	hint := "Please resize terminal"
	hintX := (g.screenW - len(hint)) / 2
	dst.DrawText(hintX, y+1, hint)
}

// renderHUD draws the score, combo and move counters.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	boardW := g.cfg.Board.Width*g.cellW + 1

	title := g.Title()
	titleX := g.boardX + (boardW-len(title))/2
	dst.DrawTextWithColor(titleX, 0, title, platformcore.ColorCyan)

	scoreStr := fmt.Sprintf("Score: %d", g.score())
	dst.DrawText(g.boardX, 1, scoreStr)

	var infoStr string
	if g.mode == ModeClassic {
		infoStr = fmt.Sprintf("Moves: %d", g.movesLeft)
	} else {
		infoStr = fmt.Sprintf("Moves: %d", g.movesUsed)
	}
	infoX := g.boardX + boardW - len(infoStr)
	if infoX < g.boardX {
		infoX = g.boardX
	}
	dst.DrawText(infoX, 1, infoStr)

	// Combo counter shows only while one is alive
	if combo := g.session.Combo(); combo.Counter > 1 {
		comboStr := fmt.Sprintf("Combo x%d", combo.Counter)
		comboX := g.boardX + (boardW-len(comboStr))/2
		dst.DrawTextWithColor(comboX, 1, comboStr, platformcore.ColorBrightYellow)
	}

	// Controls hint changes with grab state
	var controls string
	if g.grabbed {
		controls = "[HOLD] Arrows: Swap | Space: Release"
	} else {
		controls = "Arrows: Move | Space: Grab | [ ] - =: Shift"
	}
	controlsX := platformcore.Max(g.boardX+(boardW-len(controls))/2, 0)
	dst.DrawTextWithColor(controlsX, 2, controls, platformcore.ColorGray)
}

// renderBoard draws the grid, the gems and the cursor.
func (g *Game) renderBoard(dst *platformcore.Screen) {
	w := g.cfg.Board.Width
	h := g.cfg.Board.Height

	// Grid borders
	for y := range h + 1 {
		for x := range w + 1 {
			px := g.boardX + x*g.cellW
			py := g.boardY + y*g.cellH

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == w:
				corner = '┐'
			case y == h && x == 0:
				corner = '└'
			case y == h && x == w:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == h:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == w:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetWithColor(px, py, corner, platformcore.ColorGray)

			if x < w {
				for i := 1; i < g.cellW; i++ {
					dst.SetWithColor(px+i, py, '─', platformcore.ColorGray)
				}
			}
			if y < h {
				for i := 1; i < g.cellH; i++ {
					dst.SetWithColor(px, py+i, '│', platformcore.ColorGray)
				}
			}
		}
	}

	flashing := g.flashSet()

	// Gems
	for y := range h {
		for x := range w {
			c := core.Coord{X: x, Y: y}
			t, err := g.view.At(c)
			if err != nil {
				continue
			}

			cx := g.boardX + x*g.cellW + g.cellW/2
			cy := g.boardY + y*g.cellH + g.cellH/2

			if t.Empty() {
				dst.SetWithColor(cx, cy, '·', platformcore.ColorGray)
				continue
			}

			glyph := gemGlyphs[int(t.Type)%len(gemGlyphs)]
			color := gemColors[int(t.Type)%len(gemColors)]
			if flashing[c] {
				// Blink by alternating glyph and blank
				if g.tick/3%2 == 0 {
					glyph = '✳'
					color = platformcore.ColorBrightWhite
				} else {
					glyph = ' '
				}
			}
			dst.SetWithColor(cx, cy, glyph, color)
		}
	}

	// Cursor brackets around the selected cell
	curX := g.boardX + g.cursor.X*g.cellW + g.cellW/2
	curY := g.boardY + g.cursor.Y*g.cellH + g.cellH/2
	curColor := platformcore.ColorBrightYellow
	if g.grabbed {
		curColor = platformcore.ColorBrightWhite
	}
	dst.SetWithColor(curX-1, curY, '[', curColor)
	dst.SetWithColor(curX+1, curY, ']', curColor)
}

// flashSet collects the currently blinking cells.
func (g *Game) flashSet() map[core.Coord]bool {
	cells := g.pb.flashCells()
	if len(cells) == 0 {
		return nil
	}
	set := make(map[core.Coord]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	return set
}

// renderNotices draws transient messages below the board.
func (g *Game) renderNotices(dst *platformcore.Screen) {
	boardW := g.cfg.Board.Width*g.cellW + 1
	boardH := g.cfg.Board.Height*g.cellH + 1
	noticeY := g.boardY + boardH + 1

	if g.shuffleTicks > 0 {
		msg := "No moves left - board shuffled!"
		x := g.boardX + (boardW-len(msg))/2
		dst.DrawTextWithColor(x, noticeY, msg, platformcore.ColorBrightCyan)
		noticeY++
	}

	if g.refreshTicks > 0 {
		msg := "Board exhausted - fresh gems!"
		x := g.boardX + (boardW-len(msg))/2
		dst.DrawTextWithColor(x, noticeY, msg, platformcore.ColorBrightCyan)
		noticeY++
	}

	if g.toast != "" {
		msg := fmt.Sprintf("Achievement: %s", g.toast)
		x := g.boardX + (boardW-len(msg))/2
		dst.DrawTextWithColor(x, noticeY, msg, platformcore.ColorBrightGreen)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen) {
	if g.paused {
		g.renderOverlay(dst, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		scoreStr := fmt.Sprintf("Final score: %d", g.score())
		switch {
		case g.unsolvable:
			g.renderOverlay(dst, "BOARD EXHAUSTED", scoreStr, "Press R to restart")
		case g.outOfMoves:
			g.renderOverlay(dst, "OUT OF MOVES", scoreStr, "Press R to restart")
		default:
			g.renderOverlay(dst, "GAME OVER", scoreStr, "Press R to restart")
		}
	}
}

// renderOverlay draws a centered text overlay.
func (g *Game) renderOverlay(dst *platformcore.Screen, lines ...string) {
	centerX := g.screenW / 2
	centerY := g.screenH / 2

	maxLen := 0
	for _, line := range lines {
		maxLen = platformcore.Max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	box := platformcore.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawText(x, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Grab | [ ]: Shift row | - =: Shift column | P: Pause | R: Restart | Q: Quit"
}
