package config

import (
	_ "embed"
)

//go:embed defaults/gems.yaml
var defaultGemsYAML []byte

// DefaultGemsConfig returns the default gem game configuration.
func DefaultGemsConfig() GemsConfig {
	return GemsConfig{
		Board: BoardConfig{
			Width:          8,
			Height:         8,
			GemTypes:       6,
			MinRun:         3,
			ReshuffleLimit: 64,
		},
		Scoring: ScoringConfig{
			LengthBase:     []int{100, 300, 1000, 3000},
			LineBonus:      1.0,
			LBonus:         1.5,
			TBonus:         1.5,
			CrossBonus:     2.0,
			IrregularBonus: 1.0,
		},
		Combo: ComboConfig{
			Scale:       0.5,
			WindowTicks: 90, // 1.5 seconds at 60fps
		},
		Gameplay: GameplayConfig{
			MoveBudget: 30,
		},
		Animation: AnimationConfig{
			SwapTicks:  6,
			FlashTicks: 12,
			FallTicks:  10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "gems", "gems_zen":
		return defaultGemsYAML
	default:
		return nil
	}
}
