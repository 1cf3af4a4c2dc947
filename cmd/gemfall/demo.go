package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemfall/internal/config"
	"github.com/vovakirdan/gemfall/internal/games/gems"
	gemcore "github.com/vovakirdan/gemfall/internal/games/gems/core"
)

var (
	flagDemoMoves      int
	flagDemoConfig     string
	flagDemoDifficulty string
	flagDemoQuiet      bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a headless scripted game",
	Long: `Play a scripted game without a terminal UI.

A simple bot scans the board for the first swap that clears a match,
plays it, and lets the cascade resolve. Useful for smoke-testing rule
changes and custom configs, and for benchmarking seeds.

Examples:
  gemfall demo
  gemfall demo --moves 50
  gemfall demo --seed 42 --quiet
  gemfall demo --config ./my-gems.yaml --difficulty hard`,
	Run: runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&flagDemoMoves, "moves", 20, "Number of moves to play")
	demoCmd.Flags().StringVar(&flagDemoConfig, "config", "", "Path to custom game config YAML")
	demoCmd.Flags().StringVar(&flagDemoDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	demoCmd.Flags().BoolVar(&flagDemoQuiet, "quiet", false, "Only log the final summary")
}

func runDemo(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gemfall-demo",
	})

	gc, err := config.LoadGems(flagDemoConfig)
	if err != nil {
		logger.Warn("could not load config, using defaults", "error", err)
		gc = config.DefaultGemsConfig()
	}
	config.ApplyGemsPreset(&gc, config.ParsePreset(flagDemoDifficulty))

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Count the events the TUI would normally animate
	var gemsCleared, shuffles int
	sink := func(e gemcore.Event) {
		switch e.(type) {
		case gemcore.TokenRemoved:
			gemsCleared++
		case gemcore.BoardShuffled:
			shuffles++
		}
	}

	sess, err := gemcore.NewSession(gems.EngineConfig(gc), seed, sink)
	if err != nil {
		logger.Error("cannot start session", "error", err)
		os.Exit(1)
	}

	logger.Info("starting demo",
		"seed", seed,
		"board", fmt.Sprintf("%dx%d", gc.Board.Width, gc.Board.Height),
		"gem_types", gc.Board.GemTypes,
		"moves", flagDemoMoves,
	)

	det := gemcore.Detector{MinRun: gc.Board.MinRun}
	played, bestMove, maxDepth := 0, 0, 0

	for played < flagDemoMoves {
		action, ok := findDemoMove(sess.Board(), det)
		if !ok {
			// The session reshuffles dead boards on settle, so this means
			// the reshuffle limit was already hit
			logger.Warn("no valid move available, stopping early", "played", played)
			break
		}

		out, err := sess.ProposeMove(action)
		if err != nil {
			logger.Error("move rejected", "error", err)
			break
		}
		if !out.Committed {
			// The probe said this swap matches; a bounce-back means the
			// detector and validator disagree
			logger.Error("probed move did not commit", "swap", fmt.Sprintf("%v->%v", action.A, action.B))
			break
		}

		tr := sess.Resolve()
		if _, err := sess.RunUntilIdle(); err != nil {
			logger.Warn("board went unsolvable", "error", err, "played", played)
			break
		}
		played++

		pts := tr.TotalPoints()
		if pts > bestMove {
			bestMove = pts
		}
		if d := tr.Depth(); d > maxDepth {
			maxDepth = d
		}

		if !flagDemoQuiet {
			logger.Info("move resolved",
				"n", played,
				"swap", fmt.Sprintf("%v->%v", action.A, action.B),
				"points", pts,
				"depth", tr.Depth(),
				"combo", sess.Combo().Counter,
			)
		}
	}

	logger.Info("demo finished",
		"moves", played,
		"score", sess.Score(),
		"best_move", bestMove,
		"max_depth", maxDepth,
		"gems_cleared", gemsCleared,
		"reshuffles", shuffles,
	)
}

// findDemoMove probes adjacent swaps on a scratch board until one produces
// a match, scanning in row-major order.
func findDemoMove(b *gemcore.Board, det gemcore.Detector) (gemcore.SwapAction, bool) {
	probe := b.Clone()
	dirs := []gemcore.Coord{{X: 1, Y: 0}, {X: 0, Y: 1}}

	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			c := gemcore.Coord{X: x, Y: y}
			for _, d := range dirs {
				n := c.Add(d)
				if !probe.In(n) {
					continue
				}
				if err := probe.Swap(c, n); err != nil {
					continue
				}
				found := len(det.Find(probe)) > 0
				//nolint:errcheck // Both cells just swapped, so they are in bounds
				probe.Swap(c, n)
				if found {
					return gemcore.SwapAction{A: c, B: n}, true
				}
			}
		}
	}
	return gemcore.SwapAction{}, false
}
