package gems

import "github.com/vovakirdan/gemfall/internal/games/gems/core"

// Notice durations in ticks (~60fps).
const (
	shuffleNoticeTicks = 120 // 2 seconds
	toastDuration      = 150 // 2.5 seconds
)

// playbackPhase tracks which visual beat of a move is on screen.
type playbackPhase int

const (
	pbNone playbackPhase = iota
	pbSwap   // the proposed swaps slide into place
	pbReject // a fruitless move slides out and bounces back
	pbFlash  // matched gems blink before vanishing
	pbFall   // survivors drop and refills pour in
)

// playback paces one move across ticks. The engine already resolved the
// whole cascade at propose time; this replays it onto the view board beat
// by beat, acknowledging each engine phase with StepDone as the matching
// beat finishes.
type playback struct {
	phase     playbackPhase
	ticksLeft int
	swaps     []core.SwapStep
	steps     []core.Step
	stepIdx   int
	applied   bool // mid-beat board change already ran
}

func (p *playback) active() bool { return p.phase != pbNone }

// flashCells returns the matched coordinates of the current step while the
// flash beat runs.
func (p *playback) flashCells() []core.Coord {
	if p.phase != pbFlash || p.stepIdx >= len(p.steps) {
		return nil
	}
	var cells []core.Coord
	for _, m := range p.steps[p.stepIdx].Removed {
		cells = append(cells, m.Cells...)
	}
	return cells
}

// startPlayback begins pacing a committed move. The swap shows
// immediately; the cascade follows beat by beat.
func (g *Game) startPlayback(swaps []core.SwapStep, tr core.Trace) {
	g.replaySwaps(swaps)
	g.pb = playback{
		phase:     pbSwap,
		ticksLeft: g.cfg.Animation.SwapTicks,
		swaps:     swaps,
		steps:     tr.Steps,
	}
}

// startReject begins the bounce-back of an uncommitted move. The engine
// stays idle; only the view board moves, out and back again.
func (g *Game) startReject(swaps []core.SwapStep) {
	g.replaySwaps(swaps)
	g.pb = playback{
		phase:     pbReject,
		ticksLeft: g.cfg.Animation.SwapTicks * 2,
		swaps:     swaps,
	}
}

// advancePlayback runs one tick of move pacing.
func (g *Game) advancePlayback() {
	p := &g.pb
	p.ticksLeft--

	switch p.phase {
	case pbReject:
		// Bounce back at the midpoint
		if !p.applied && p.ticksLeft <= g.cfg.Animation.SwapTicks {
			g.revertSwaps(p.swaps)
			p.applied = true
		}
		if p.ticksLeft <= 0 {
			g.pb = playback{}
		}

	case pbSwap:
		if p.ticksLeft <= 0 {
			g.ackPhase()
		}

	case pbFlash:
		if p.ticksLeft <= 0 {
			// Flash is over: open the holes, then let gravity play
			g.clearRemoved(p.steps[p.stepIdx])
			g.ackPhase()
		}

	case pbFall:
		// Land the falls and refills at the midpoint so the holes are
		// visible for the first half of the beat
		if !p.applied && p.ticksLeft <= g.cfg.Animation.FallTicks/2 {
			p.steps[p.stepIdx].Apply(g.view)
			p.applied = true
		}
		if p.ticksLeft <= 0 {
			if !p.applied {
				p.steps[p.stepIdx].Apply(g.view)
			}
			g.ackPhase()
		}
	}
}

// ackPhase acknowledges the finished beat to the engine and lines up the
// next one.
func (g *Game) ackPhase() {
	ph, err := g.session.StepDone()
	if err != nil {
		// Reshuffle limit exhausted; the board has no playable arrangement.
		// Zen swaps in a fresh, easier board; classic ends the run here.
		if g.mode == ModeZen && g.regenerateRelaxed() {
			g.pb = playback{}
			g.finishMove()
			return
		}
		g.unsolvable = true
		g.gameOver = true
		g.syncView()
		g.pb = playback{}
		return
	}

	switch ph {
	case core.PhaseMatching:
		if g.pb.phase == pbFall {
			g.pb.stepIdx++
		}
		g.pb.phase = pbFlash
		g.pb.ticksLeft = g.cfg.Animation.FlashTicks
		g.pb.applied = false
	case core.PhaseRefilling:
		g.pb.phase = pbFall
		g.pb.ticksLeft = g.cfg.Animation.FallTicks
		g.pb.applied = false
	case core.PhaseIdle:
		if g.viewStale {
			g.syncView()
		}
		g.pb = playback{}
		g.finishMove()
	}
}

// syncView re-clones the engine board. Needed after a reshuffle, where no
// trace describes the change.
func (g *Game) syncView() {
	g.view = g.session.Board().Clone()
	g.viewStale = false
}

// replaySwaps plays a normalized swap sequence onto the view board.
func (g *Game) replaySwaps(swaps []core.SwapStep) {
	for _, s := range swaps {
		//nolint:errcheck // Steps come from the validator, always adjacent and in bounds
		g.view.Swap(s.A, s.B)
	}
}

// revertSwaps undoes a swap sequence in reverse order.
func (g *Game) revertSwaps(swaps []core.SwapStep) {
	for i := len(swaps) - 1; i >= 0; i-- {
		//nolint:errcheck // Same steps that were applied, still adjacent and in bounds
		g.view.Swap(swaps[i].A, swaps[i].B)
	}
}

// clearRemoved opens the matched cells on the view board.
func (g *Game) clearRemoved(st core.Step) {
	for _, m := range st.Removed {
		for _, c := range m.Cells {
			//nolint:errcheck // Match cells come from the detector, always in bounds
			g.view.Set(c, core.Token{})
		}
	}
}
