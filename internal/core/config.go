package core

// RuntimeConfig is handed to a game when it is created or reset. Screen
// dimensions let the game pick a board layout that fits the terminal; the
// seed makes every board fill and refill reproducible.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform layer picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is the per-tick status a game reports back to the platform.
// The platform uses it to drive the status bar, detect game over for
// score persistence, and gate restart handling.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
}
