package core_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/gemfall/internal/games/gems/core"
)

func recorder(evs *[]core.Event) core.Sink {
	return func(e core.Event) { *evs = append(*evs, e) }
}

func newTestSession(t *testing.T, seed int64, sink core.Sink) *core.Session {
	t.Helper()
	s, err := core.NewSession(core.Default(), seed, sink)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

// mustMove finds a committing swap on the session board; a settled session
// always has one, the engine reshuffles otherwise.
func mustMove(t *testing.T, s *core.Session) core.SwapAction {
	t.Helper()
	act, ok := findAnyMove(t, s.Board(), s.Config().MinRun)
	if !ok {
		t.Fatal("settled session has no valid move")
	}
	return act
}

func sameBoards(t *testing.T, a, b *core.Board) bool {
	t.Helper()
	if a.W != b.W || a.H != b.H {
		return false
	}
	for y := range a.H {
		for x := range a.W {
			c := core.Coord{X: x, Y: y}
			ta, err := a.At(c)
			if err != nil {
				t.Fatalf("at (%d,%d): %v", x, y, err)
			}
			tb, err := b.At(c)
			if err != nil {
				t.Fatalf("at (%d,%d): %v", x, y, err)
			}
			if ta != tb {
				return false
			}
		}
	}
	return true
}

func TestSessionStartsSettledAndPlayable(t *testing.T) {
	det := core.Detector{MinRun: core.Default().MinRun}
	for seed := int64(0); seed < 10; seed++ {
		s := newTestSession(t, seed, nil)
		if got := s.Phase(); got != core.PhaseIdle {
			t.Errorf("seed %d: phase %v, want idle", seed, got)
		}
		if got, want := s.Board().Count(), 8*8; got != want {
			t.Errorf("seed %d: %d tokens, want %d", seed, got, want)
		}
		if m := det.Find(s.Board()); len(m) != 0 {
			t.Errorf("seed %d: fresh board has matches: %+v", seed, m)
		}
		if !s.HasValidMove() {
			t.Errorf("seed %d: fresh board is deadlocked", seed)
		}
		if s.Score() != 0 || s.Combo().Counter != 0 {
			t.Errorf("seed %d: score %d combo %d, want zeros", seed, s.Score(), s.Combo().Counter)
		}
		if s.Seed() != seed {
			t.Errorf("seed accessor: got %d, want %d", s.Seed(), seed)
		}
	}
}

func TestSessionRejectsBadConfig(t *testing.T) {
	cfg := core.Default()
	cfg.Width = 2
	if _, err := core.NewSession(cfg, 1, nil); err == nil {
		t.Fatal("2-wide board accepted")
	}
}

func TestSessionDeterminism(t *testing.T) {
	var evA, evB []core.Event
	a := newTestSession(t, 77, recorder(&evA))
	b := newTestSession(t, 77, recorder(&evB))
	if !sameBoards(t, a.Board(), b.Board()) {
		t.Fatal("same seed produced different boards")
	}

	for range 3 {
		act := mustMove(t, a)
		for _, s := range []*core.Session{a, b} {
			if _, err := s.ProposeMove(act); err != nil {
				t.Fatalf("propose %+v: %v", act, err)
			}
			if _, err := s.RunUntilIdle(); err != nil {
				t.Fatalf("drain: %v", err)
			}
		}
	}

	if !sameBoards(t, a.Board(), b.Board()) {
		t.Errorf("boards diverged:\n got %v\nwant %v", picture(t, a.Board()), picture(t, b.Board()))
	}
	if a.Score() != b.Score() {
		t.Errorf("scores diverged: %d vs %d", a.Score(), b.Score())
	}
	if !reflect.DeepEqual(evA, evB) {
		t.Errorf("event streams diverged: %d vs %d events", len(evA), len(evB))
	}
}

func TestSessionBusyDuringPlayback(t *testing.T) {
	s := newTestSession(t, 5, nil)
	act := mustMove(t, s)
	if _, err := s.ProposeMove(act); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if got := s.Phase(); got != core.PhaseMoving {
		t.Fatalf("phase after commit: %v, want moving", got)
	}
	if _, err := s.ProposeMove(act); !errors.Is(err, core.ErrBusy) {
		t.Errorf("second propose: got %v, want ErrBusy", err)
	}
	if err := s.Reshuffle(); !errors.Is(err, core.ErrBusy) {
		t.Errorf("reshuffle during playback: got %v, want ErrBusy", err)
	}
	if _, err := s.RunUntilIdle(); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if got := s.Phase(); got != core.PhaseIdle {
		t.Errorf("phase after drain: %v, want idle", got)
	}
}

func TestSessionPhaseWalk(t *testing.T) {
	s := newTestSession(t, 9, nil)
	if _, err := s.ProposeMove(mustMove(t, s)); err != nil {
		t.Fatalf("propose: %v", err)
	}
	depth := s.Resolve().Depth()
	if depth < 1 {
		t.Fatalf("committed move resolved to depth %d", depth)
	}

	var walk []core.Phase
	for s.Phase() != core.PhaseIdle {
		p, err := s.StepDone()
		if err != nil {
			t.Fatalf("ack %d: %v", len(walk), err)
		}
		walk = append(walk, p)
	}

	want := make([]core.Phase, 0, 2*depth+1)
	for range depth {
		want = append(want, core.PhaseMatching, core.PhaseRefilling)
	}
	want = append(want, core.PhaseIdle)
	if !reflect.DeepEqual(walk, want) {
		t.Errorf("phase walk %v, want %v", walk, want)
	}
}

func TestSessionEventOrderDuringPlayback(t *testing.T) {
	var evs []core.Event
	s := newTestSession(t, 21, recorder(&evs))
	act := mustMove(t, s)
	evs = evs[:0]
	if _, err := s.ProposeMove(act); err != nil {
		t.Fatalf("propose: %v", err)
	}
	tr := s.Resolve()
	if _, err := s.RunUntilIdle(); err != nil {
		t.Fatalf("drain: %v", err)
	}

	if len(evs) == 0 {
		t.Fatal("no events recorded")
	}
	first, ok := evs[0].(core.StateChanged)
	if !ok || first.From != core.PhaseIdle || first.To != core.PhaseMoving {
		t.Fatalf("first event %+v, want idle→moving transition", evs[0])
	}

	// Split the stream into per-phase chunks at each transition.
	type chunk struct {
		sc   core.StateChanged
		rest []core.Event
	}
	var chunks []chunk
	for _, e := range evs {
		if sc, ok := e.(core.StateChanged); ok {
			chunks = append(chunks, chunk{sc: sc})
			continue
		}
		last := &chunks[len(chunks)-1]
		last.rest = append(last.rest, e)
	}

	depth := tr.Depth()
	var wantTransitions []core.StateChanged
	wantTransitions = append(wantTransitions, core.StateChanged{From: core.PhaseIdle, To: core.PhaseMoving})
	from := core.PhaseMoving
	for range depth {
		wantTransitions = append(wantTransitions,
			core.StateChanged{From: from, To: core.PhaseMatching},
			core.StateChanged{From: core.PhaseMatching, To: core.PhaseRefilling},
		)
		from = core.PhaseRefilling
	}
	wantTransitions = append(wantTransitions, core.StateChanged{From: core.PhaseRefilling, To: core.PhaseIdle})
	if len(chunks) != len(wantTransitions) {
		t.Fatalf("%d transitions, want %d", len(chunks), len(wantTransitions))
	}
	for i, c := range chunks {
		if c.sc != wantTransitions[i] {
			t.Fatalf("transition %d is %+v, want %+v", i, c.sc, wantTransitions[i])
		}
	}

	runningScore := 0
	for i := range depth {
		matching := chunks[1+2*i]
		refilling := chunks[2+2*i]
		step := tr.Steps[i]

		removed := 0
		for _, e := range matching.rest {
			switch e.(type) {
			case core.MatchResolved, core.TokenRemoved, core.ComboChanged, core.ScoreChanged:
			default:
				t.Errorf("step %d: %T does not belong in the matching phase", i, e)
			}
			if _, ok := e.(core.TokenRemoved); ok {
				removed++
			}
		}
		if _, ok := matching.rest[0].(core.MatchResolved); !ok {
			t.Errorf("step %d: matching phase opens with %T, want MatchResolved", i, matching.rest[0])
		}
		wantRemoved := 0
		for _, m := range step.Removed {
			wantRemoved += len(m.Tokens)
		}
		if removed != wantRemoved {
			t.Errorf("step %d: %d TokenRemoved events, want %d", i, removed, wantRemoved)
		}
		n := len(matching.rest)
		combo, ok := matching.rest[n-2].(core.ComboChanged)
		if !ok || combo.Counter != i+1 {
			t.Errorf("step %d: penultimate event %+v, want ComboChanged{%d}", i, matching.rest[n-2], i+1)
		}
		runningScore += step.Points
		score, ok := matching.rest[n-1].(core.ScoreChanged)
		if !ok || score.Total != runningScore {
			t.Errorf("step %d: last event %+v, want ScoreChanged{%d}", i, matching.rest[n-1], runningScore)
		}

		spawned := 0
		for _, e := range refilling.rest {
			switch e.(type) {
			case core.TokenMoved, core.TokenSpawned:
			default:
				t.Errorf("step %d: %T does not belong in the refilling phase", i, e)
			}
			if _, ok := e.(core.TokenSpawned); ok {
				spawned++
			}
		}
		if spawned != len(step.Spawned) {
			t.Errorf("step %d: %d TokenSpawned events, want %d", i, spawned, len(step.Spawned))
		}
	}
}

func TestSessionScoreAccumulatesTracePoints(t *testing.T) {
	s := newTestSession(t, 33, nil)
	if _, err := s.ProposeMove(mustMove(t, s)); err != nil {
		t.Fatalf("propose: %v", err)
	}
	tr := s.Resolve()
	want := tr.TotalPoints()
	if want <= 0 {
		t.Fatalf("trace worth %d points", want)
	}
	if s.Score() != 0 {
		t.Fatalf("score %d before any acknowledged phase", s.Score())
	}
	if _, err := s.RunUntilIdle(); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if s.Score() != want {
		t.Errorf("score %d, want %d", s.Score(), want)
	}
	if s.Combo().Counter != tr.Depth() {
		t.Errorf("combo %d, want cascade depth %d", s.Combo().Counter, tr.Depth())
	}
	if rest := s.Resolve(); len(rest.Steps) != 0 {
		t.Errorf("settled session still reports %d pending steps", len(rest.Steps))
	}
}

func TestSessionComboExpires(t *testing.T) {
	var evs []core.Event
	s := newTestSession(t, 41, recorder(&evs))
	if _, err := s.ProposeMove(mustMove(t, s)); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if _, err := s.RunUntilIdle(); err != nil {
		t.Fatalf("drain: %v", err)
	}
	counter := s.Combo().Counter
	if counter < 1 {
		t.Fatalf("combo %d after a resolved move", counter)
	}
	window := s.Config().ComboWindow

	s.Advance(window)
	if got := s.Combo().Counter; got != counter {
		t.Fatalf("combo decayed to %d at the deadline", got)
	}

	evs = evs[:0]
	s.Advance(window + 1)
	if got := s.Combo().Counter; got != 0 {
		t.Errorf("combo %d past the deadline, want 0", got)
	}
	if len(evs) != 1 {
		t.Fatalf("%d events on expiry, want 1", len(evs))
	}
	if cc, ok := evs[0].(core.ComboChanged); !ok || cc.Counter != 0 {
		t.Errorf("expiry event %+v, want ComboChanged{0}", evs[0])
	}

	// Expiry is one-shot.
	evs = evs[:0]
	s.Advance(window + 2)
	if len(evs) != 0 {
		t.Errorf("expired combo reset again: %+v", evs)
	}
}

func TestSessionComboCarriesIntoNextMove(t *testing.T) {
	s := newTestSession(t, 58, nil)
	if _, err := s.ProposeMove(mustMove(t, s)); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if _, err := s.RunUntilIdle(); err != nil {
		t.Fatalf("drain: %v", err)
	}
	base := s.Combo().Counter
	if base < 1 {
		t.Fatalf("combo %d after first move", base)
	}

	// No ticks pass, so the second move scores on top of the live combo.
	if _, err := s.ProposeMove(mustMove(t, s)); err != nil {
		t.Fatalf("second propose: %v", err)
	}
	cfg := s.Config()
	sc := core.Scorer{
		MinRun:     cfg.MinRun,
		LengthBase: cfg.LengthBase,
		Bonus:      cfg.Bonus,
		ComboScale: cfg.ComboScale,
	}
	for i, step := range s.Resolve().Steps {
		for _, m := range step.Removed {
			if got, want := m.Points, sc.MatchPoints(m.Match, base+i); got != want {
				t.Errorf("step %d match at %v: %d points, want %d (combo base %d)",
					i, m.Cells, got, want, base)
			}
		}
	}
	if _, err := s.RunUntilIdle(); err != nil {
		t.Fatalf("drain: %v", err)
	}
}

func TestSessionRejectsBadTopology(t *testing.T) {
	var evs []core.Event
	s := newTestSession(t, 4, recorder(&evs))
	before := picture(t, s.Board())
	evs = evs[:0]

	cases := []struct {
		name   string
		action core.MoveAction
		want   error
	}{
		{"distant swap", core.SwapAction{A: core.Coord{X: 0, Y: 0}, B: core.Coord{X: 4, Y: 4}}, core.ErrNotAdjacent},
		{"off-board swap", core.SwapAction{A: core.Coord{X: 7, Y: 7}, B: core.Coord{X: 8, Y: 7}}, core.ErrOutOfBounds},
		{"bad shift index", core.ShiftAction{Axis: core.AxisColumn, Index: 8, Amount: 1}, core.ErrOutOfBounds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.ProposeMove(tc.action); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
			if got := s.Phase(); got != core.PhaseIdle {
				t.Errorf("phase %v after rejection, want idle", got)
			}
		})
	}
	if after := picture(t, s.Board()); !samePicture(after, before) {
		t.Errorf("rejected moves touched the board:\n got %v\nwant %v", after, before)
	}
	if len(evs) != 0 {
		t.Errorf("rejected moves emitted events: %+v", evs)
	}
}

func TestSessionFruitlessMoveStaysIdle(t *testing.T) {
	var evs []core.Event
	s := newTestSession(t, 16, recorder(&evs))
	before := picture(t, s.Board())
	evs = evs[:0]

	det := core.Detector{MinRun: s.Config().MinRun}
	var fruitless core.SwapAction
	found := false
probe:
	for y := 0; y < 8; y++ {
		for x := 0; x < 7; x++ {
			a, n := core.Coord{X: x, Y: y}, core.Coord{X: x + 1, Y: y}
			clone := s.Board().Clone()
			if err := clone.Swap(a, n); err != nil {
				t.Fatalf("probe swap: %v", err)
			}
			if len(det.Find(clone)) == 0 {
				fruitless, found = core.SwapAction{A: a, B: n}, true
				break probe
			}
		}
	}
	if !found {
		t.Fatal("every horizontal swap matches, pick another seed")
	}

	out, err := s.ProposeMove(fruitless)
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if out.Committed {
		t.Fatal("fruitless swap committed")
	}
	if got := s.Phase(); got != core.PhaseIdle {
		t.Errorf("phase %v, want idle", got)
	}
	if after := picture(t, s.Board()); !samePicture(after, before) {
		t.Errorf("reverted move left traces:\n got %v\nwant %v", after, before)
	}
	if len(evs) != 0 {
		t.Errorf("reverted move emitted events: %+v", evs)
	}
	if tr := s.Resolve(); len(tr.Steps) != 0 {
		t.Errorf("reverted move left %d pending steps", len(tr.Steps))
	}
}

func TestSessionStepDoneIdleIsNoop(t *testing.T) {
	var evs []core.Event
	s := newTestSession(t, 2, recorder(&evs))
	evs = evs[:0]
	p, err := s.StepDone()
	if err != nil || p != core.PhaseIdle {
		t.Errorf("got (%v, %v), want (idle, nil)", p, err)
	}
	if len(evs) != 0 {
		t.Errorf("idle ack emitted events: %+v", evs)
	}
}

func TestSessionTraceReplaysOntoSnapshot(t *testing.T) {
	s := newTestSession(t, 93, nil)
	snapshot := s.Board().Clone()
	act := mustMove(t, s)

	out, err := s.ProposeMove(act)
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	tr := s.Resolve()
	if _, err := s.RunUntilIdle(); err != nil {
		t.Fatalf("drain: %v", err)
	}

	for _, sw := range out.Swaps {
		if err := snapshot.Swap(sw.A, sw.B); err != nil {
			t.Fatalf("replay swap: %v", err)
		}
	}
	for _, step := range tr.Steps {
		step.Apply(snapshot)
	}
	if !sameBoards(t, snapshot, s.Board()) {
		t.Errorf("replayed snapshot diverged from the live board:\n got %v\nwant %v",
			picture(t, snapshot), picture(t, s.Board()))
	}
}

func TestSessionForcedReshuffle(t *testing.T) {
	var evs []core.Event
	s := newTestSession(t, 7, recorder(&evs))
	wantTypes := typeCounts(t, s.Board())
	evs = evs[:0]

	if err := s.Reshuffle(); err != nil {
		t.Fatalf("reshuffle: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("%d events, want a single BoardShuffled", len(evs))
	}
	if _, ok := evs[0].(core.BoardShuffled); !ok {
		t.Errorf("got %T, want BoardShuffled", evs[0])
	}
	det := core.Detector{MinRun: s.Config().MinRun}
	if m := det.Find(s.Board()); len(m) != 0 {
		t.Errorf("shuffled board has matches: %+v", m)
	}
	if !s.HasValidMove() {
		t.Error("shuffled board is deadlocked")
	}
	gotTypes := typeCounts(t, s.Board())
	if !reflect.DeepEqual(gotTypes, wantTypes) {
		t.Errorf("gem multiset changed: got %v, want %v", gotTypes, wantTypes)
	}
}
