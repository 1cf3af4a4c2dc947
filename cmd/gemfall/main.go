// gemfall is a falling-gems match puzzle played in the terminal.
//
// Usage:
//
//	gemfall list              - List available game modes
//	gemfall play <game>       - Play a game
//	gemfall menu              - Start menu to pick modes interactively
//	gemfall serve             - Start SSH server for remote play
//	gemfall scores <game>     - Show high scores for a mode
//	gemfall demo              - Run a headless scripted game
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.gemfall/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/gemfall/internal/games/gems"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gemfall",
	Short: "Gemfall - A falling-gems puzzle in your terminal",
	Long: `Gemfall is a terminal match-3 puzzle: swap and shift gems to line up
runs, chase cascades and combos, and climb the leaderboard.

Available commands:
  list     - Show all available game modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  demo     - Run a scripted game without a terminal UI

Examples:
  gemfall list
  gemfall play gems
  gemfall menu
  gemfall serve --ssh :2222
  gemfall scores gems`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gemfall/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(demoCmd)
}
