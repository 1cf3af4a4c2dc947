package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gemfall/internal/core"
	"github.com/vovakirdan/gemfall/internal/games/gems"
	"github.com/vovakirdan/gemfall/internal/platform/tui"
	"github.com/vovakirdan/gemfall/internal/registry"
	"github.com/vovakirdan/gemfall/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMode       string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD - Move cursor (swap while grabbing)
  Space       - Grab/release the gem under the cursor
  [ ]         - Shift the cursor's row left/right
  - =         - Shift the cursor's column up/down
  P           - Pause
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - 5 gem colors, 40 moves, longer combo window
  normal - 6 gem colors, 30 moves
  hard   - 7 gem colors on a 9x9 board, 20 moves
  fixed  - No preset, plays the config file as-is

Examples:
  gemfall play gems
  gemfall play gems --mode zen
  gemfall play gems --difficulty hard
  gemfall play gems_zen --difficulty easy
  gemfall play gems --config ./my-gems.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: classic or zen (skips the mode picker)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'gemfall list' to see available games.")
		os.Exit(1)
	}

	// Get terminal size early for the mode menu
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		// Achievements persist through the same database
		gems.SetProgressionSaver(store)
		defer store.Close()
	}

	// Set config path and difficulty before creation
	gems.SetConfigPath(flagConfig)
	gems.SetDifficultyPreset(flagDifficulty)

	if gameID == "gems" {
		switch flagMode {
		case "classic":
			// Keep the base game
		case "zen":
			gameID = "gems_zen"
		case "":
			// Show the mode/difficulty menu, with a scoreboard detour
			selection, newCfg, ok := pickMode(store, cfg)
			if !ok {
				return
			}
			cfg = newCfg
			gameID = selection.Mode.GameID()
			if selection.Difficulty != "" {
				gems.SetDifficultyPreset(selection.Difficulty)
			}
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q (want classic or zen)\n", flagMode)
			os.Exit(1)
		}
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Run the game
	if runErr := tui.Run(game, store, cfg); runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// pickMode loops the main menu (and the scoreboard it can open) until
// the user picks a mode or quits. Returns ok=false on quit.
func pickMode(store *storage.Store, cfg core.RuntimeConfig) (tui.GemsSelection, core.RuntimeConfig, bool) {
	for {
		res, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return tui.GemsSelection{}, cfg, false
		}
		cfg = res.Config

		if res.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return tui.GemsSelection{}, cfg, false
			}
			continue
		}

		if res.Quit || res.Selection == nil {
			return tui.GemsSelection{}, cfg, false
		}
		return *res.Selection, cfg, true
	}
}
