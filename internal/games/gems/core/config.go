package core

import "fmt"

// Config carries the rule set of a session. The zero value is not usable;
// start from Default and override fields, or fill every one.
type Config struct {
	Width  int
	Height int
	Types  int
	MinRun int

	// LengthBase holds base points by run size: index 0 scores a match of
	// MinRun cells, longer matches clamp to the last entry.
	LengthBase []int
	Bonus      ShapeBonus
	ComboScale float64
	// ComboWindow is how many caller ticks a combo survives without a new
	// match before the counter resets.
	ComboWindow uint64

	ReshuffleLimit int
}

// Default returns the classic rule set: an 8×8 board, six gem types,
// three-in-a-row matches.
func Default() Config {
	return Config{
		Width:          8,
		Height:         8,
		Types:          6,
		MinRun:         3,
		LengthBase:     []int{100, 300, 1000, 3000},
		Bonus:          ShapeBonus{Line: 1, L: 1.5, T: 1.5, Cross: 2, Irregular: 1},
		ComboScale:     0.5,
		ComboWindow:    90,
		ReshuffleLimit: 64,
	}
}

// Validate rejects rule sets the engine cannot run.
func (c Config) Validate() error {
	switch {
	case c.Width < 3 || c.Height < 3:
		return fmt.Errorf("board %dx%d is too small", c.Width, c.Height)
	case c.Width > 32 || c.Height > 32:
		return fmt.Errorf("board %dx%d is too large", c.Width, c.Height)
	case c.Types < 3:
		return fmt.Errorf("%d gem types cannot avoid spawn matches", c.Types)
	case c.Types > 12:
		return fmt.Errorf("%d gem types exceeds the palette", c.Types)
	case c.MinRun < 3:
		return fmt.Errorf("minimum run %d is below 3", c.MinRun)
	case c.MinRun > c.Width && c.MinRun > c.Height:
		return fmt.Errorf("minimum run %d does not fit the board", c.MinRun)
	case len(c.LengthBase) == 0:
		return fmt.Errorf("empty length score table")
	case c.ComboScale < 0:
		return fmt.Errorf("negative combo scale")
	case c.ReshuffleLimit < 1:
		return fmt.Errorf("reshuffle limit %d is below 1", c.ReshuffleLimit)
	}
	return nil
}
