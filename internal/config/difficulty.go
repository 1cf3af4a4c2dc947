package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset; unknown strings mean no preset.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyGemsPreset modifies the config based on a difficulty preset.
// Fewer gem types make matches easier to line up; the move budget and the
// combo window tighten as difficulty rises. Fixed keeps the config as
// loaded.
func ApplyGemsPreset(cfg *GemsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.GemTypes = 5
		cfg.Gameplay.MoveBudget = 40
		cfg.Combo.WindowTicks = 150
	case DifficultyNormal:
		cfg.Board.GemTypes = 6
		cfg.Gameplay.MoveBudget = 30
		cfg.Combo.WindowTicks = 90
	case DifficultyHard:
		cfg.Board.GemTypes = 7
		cfg.Board.Width = 9
		cfg.Board.Height = 9
		cfg.Gameplay.MoveBudget = 20
		cfg.Combo.WindowTicks = 60
	}
}
