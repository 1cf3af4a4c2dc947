package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/gemfall/internal/core"
)

// ansiPalette maps core colors to the terminal palette indices the
// renderer styles them with. Gem colors sit in the bright range so they
// pop against the board chrome.
var ansiPalette = []struct {
	color core.Color
	ansi  string
}{
	{core.ColorRed, "1"},
	{core.ColorGreen, "2"},
	{core.ColorYellow, "3"},
	{core.ColorBlue, "4"},
	{core.ColorMagenta, "5"},
	{core.ColorCyan, "6"},
	{core.ColorWhite, "7"},
	{core.ColorBrightRed, "9"},
	{core.ColorBrightGreen, "10"},
	{core.ColorBrightYellow, "11"},
	{core.ColorBrightBlue, "12"},
	{core.ColorBrightMagenta, "13"},
	{core.ColorBrightCyan, "14"},
	{core.ColorBrightWhite, "15"},
	{core.ColorOrange, "208"},
	{core.ColorGray, "245"},
}

// colorStyles is built once so concurrent SSH sessions can render
// without synchronizing.
var colorStyles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(ansiPalette)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for _, p := range ansiPalette {
		styles[p.color] = lipgloss.NewStyle().Foreground(lipgloss.Color(p.ansi))
	}
	return styles
}

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Extra room for the escape sequences around colored runs
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		renderRow(&sb, s, y)
	}
	return sb.String()
}

// renderRow styles one row, batching adjacent same-colored cells into a
// single styled run to keep the ANSI overhead down.
func renderRow(sb *strings.Builder, s *core.Screen, y int) {
	width := s.Width()
	for x := 0; x < width; {
		color := s.GetCell(x, y).Color

		var run strings.Builder
		for x < width {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				break
			}
			run.WriteRune(cell.Rune)
			x++
		}

		style, ok := colorStyles[color]
		if !ok {
			style = colorStyles[core.ColorDefault]
		}
		sb.WriteString(style.Render(run.String()))
	}
}
