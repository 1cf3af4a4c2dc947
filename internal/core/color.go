package core

// Color identifies a foreground color for a screen cell. Game code picks
// from this palette; the platform layer translates entries to terminal
// styles, so no escape codes leak into game logic.
type Color uint8

// Twelve distinct chromatic entries cover the maximum gem count; the rest
// is UI chrome (text, hints, borders).
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)
