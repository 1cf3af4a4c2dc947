// Package config provides YAML-based game configuration loading and
// difficulty presets for the gemfall platform.
package config

// GemsConfig contains all configuration for the gem-matching game.
type GemsConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Combo     ComboConfig     `yaml:"combo"`
	Gameplay  GameplayConfig  `yaml:"gameplay"`
	Animation AnimationConfig `yaml:"animation"`
}

// BoardConfig defines the grid the game plays on.
type BoardConfig struct {
	Width          int `yaml:"width"`
	Height         int `yaml:"height"`
	GemTypes       int `yaml:"gem_types"`
	MinRun         int `yaml:"min_run"`
	ReshuffleLimit int `yaml:"reshuffle_limit"`
}

// ScoringConfig defines base points and shape bonuses.
type ScoringConfig struct {
	// LengthBase holds base points by match size, starting at min_run.
	// Longer matches clamp to the last entry.
	LengthBase     []int   `yaml:"length_base"`
	LineBonus      float64 `yaml:"line_bonus"`
	LBonus         float64 `yaml:"l_bonus"`
	TBonus         float64 `yaml:"t_bonus"`
	CrossBonus     float64 `yaml:"cross_bonus"`
	IrregularBonus float64 `yaml:"irregular_bonus"`
}

// ComboConfig defines the cascade combo multiplier behavior.
type ComboConfig struct {
	// Scale is the growth factor of the combo multiplier:
	// 1 + log2(depth+1) * scale.
	Scale float64 `yaml:"scale"`
	// WindowTicks is how many simulation ticks a combo survives after the
	// board settles before the counter resets.
	WindowTicks uint64 `yaml:"window_ticks"`
}

// GameplayConfig defines mode rules.
type GameplayConfig struct {
	// MoveBudget limits classic mode; zen ignores it.
	MoveBudget int `yaml:"move_budget"`
}

// AnimationConfig defines playback pacing in simulation ticks per phase.
type AnimationConfig struct {
	SwapTicks  int `yaml:"swap_ticks"`
	FlashTicks int `yaml:"flash_ticks"`
	FallTicks  int `yaml:"fall_ticks"`
}
