package core

import (
	"fmt"
	"math/rand"
)

// ComboState tracks consecutive matches. The counter feeds the combo
// multiplier of the next cascade step and resets once Deadline passes with
// no new match. Deadlines are caller ticks fed through Advance, never
// wall-clock time.
type ComboState struct {
	Counter  int
	Deadline uint64
}

// Session is the engine facade: one board, one rule set, one seeded
// stream of randomness. Every method is synchronous and none block; pacing
// lives entirely with the caller, which acknowledges presentation phases
// through StepDone. Sessions are not safe for concurrent use; the single-
// writer discipline is the caller's.
type Session struct {
	cfg       Config
	seed      int64
	board     *Board
	rng       *rand.Rand
	ids       TokenSource
	detector  Detector
	validator Validator
	scorer    Scorer
	resolver  Resolver
	m         machine
	sink      Sink

	score   int
	combo   ComboState
	tick    uint64
	pending []Step
	next    int
}

// NewSession builds a playable session: the board fills under the spawn
// exclusion rule, so it starts matchless, and reshuffles if it happens to
// start dead. A nil sink drops events.
func NewSession(cfg Config, seed int64, sink Sink) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	s := &Session{
		cfg:   cfg,
		seed:  seed,
		board: NewBoard(cfg.Width, cfg.Height),
		rng:   rand.New(rand.NewSource(seed)),
		sink:  sink,
	}
	s.detector = Detector{MinRun: cfg.MinRun}
	s.scorer = Scorer{
		MinRun:     cfg.MinRun,
		LengthBase: cfg.LengthBase,
		Bonus:      cfg.Bonus,
		ComboScale: cfg.ComboScale,
	}
	s.validator = Validator{Detector: &s.detector}
	s.resolver = Resolver{Detector: &s.detector, Scorer: &s.scorer, Types: cfg.Types}
	s.resolver.Fill(s.board, s.rng, &s.ids)
	if !s.detector.HasValidMove(s.board) {
		if err := s.detector.Reshuffle(s.board, s.rng, cfg.ReshuffleLimit); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Board returns the live board. Callers must treat it as read-only;
// during trace playback it already holds the settled end state.
func (s *Session) Board() *Board { return s.board }

// Phase returns the machine position.
func (s *Session) Phase() Phase { return s.m.phase }

// Score returns the running total as acknowledged so far. It never
// decreases.
func (s *Session) Score() int { return s.score }

// Combo returns the current combo state.
func (s *Session) Combo() ComboState { return s.combo }

// Config returns the rule set the session runs under.
func (s *Session) Config() Config { return s.cfg }

// Seed returns the seed the session was built with.
func (s *Session) Seed() int64 { return s.seed }

// Advance feeds the caller's tick counter. An expired combo resets here,
// once the board is settled; mid-cascade the counter never decays.
func (s *Session) Advance(tick uint64) {
	s.tick = tick
	if s.m.phase == PhaseIdle && s.combo.Counter > 0 && tick > s.combo.Deadline {
		s.combo = ComboState{}
		s.emit(ComboChanged{Counter: 0})
	}
}

// ProposeMove validates a move. A commit computes the entire cascade here
// and enters Moving; the caller then plays the trace back, acknowledging
// each presentation phase with StepDone. Rejected and uncommitted moves
// leave the board untouched and the machine in Idle.
func (s *Session) ProposeMove(action MoveAction) (MoveOutcome, error) {
	if s.m.phase != PhaseIdle {
		return MoveOutcome{}, ErrBusy
	}
	out, err := s.validator.Apply(s.board, action)
	if err != nil || !out.Committed {
		return out, err
	}
	tr := s.resolver.Resolve(s.board, s.rng, &s.ids, s.combo.Counter)
	s.pending = tr.Steps
	s.next = 0
	s.toPhase(PhaseMoving)
	return out, nil
}

// Resolve returns the trace of the move currently being played back. On a
// settled board the trace is empty; resolving twice changes nothing.
func (s *Session) Resolve() Trace {
	return Trace{Steps: s.pending}
}

// StepDone acknowledges that the presentation finished its current phase.
// It advances Moving→Matching→Refilling→…→Idle, emitting each step's
// events and applying its points as the phase is entered. On settling back
// to Idle the deadlock check runs, reshuffling if needed; a board that
// cannot be repaired surfaces ErrUnsolvableBoard. Acknowledging an idle
// session is a no-op.
func (s *Session) StepDone() (Phase, error) {
	switch s.m.phase {
	case PhaseIdle:
		return PhaseIdle, nil
	case PhaseMoving:
		s.enterMatching()
	case PhaseMatching:
		s.enterRefilling()
	case PhaseRefilling:
		if s.next+1 < len(s.pending) {
			s.next++
			s.enterMatching()
			break
		}
		s.pending = nil
		s.next = 0
		s.toPhase(PhaseIdle)
		if !s.detector.HasValidMove(s.board) {
			if err := s.detector.Reshuffle(s.board, s.rng, s.cfg.ReshuffleLimit); err != nil {
				return PhaseIdle, err
			}
			s.emit(BoardShuffled{})
		}
	}
	return s.m.phase, nil
}

// RunUntilIdle drains the pending trace without presentation pacing, for
// headless callers. It returns the number of acknowledged phases.
func (s *Session) RunUntilIdle() (int, error) {
	n := 0
	for s.m.phase != PhaseIdle {
		if _, err := s.StepDone(); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// HasValidMove reports whether the board still offers a matching swap.
func (s *Session) HasValidMove() bool {
	return s.detector.HasValidMove(s.board)
}

// Reshuffle forces a deadlock repair. Only a settled board may shuffle.
func (s *Session) Reshuffle() error {
	if s.m.phase != PhaseIdle {
		return ErrBusy
	}
	if err := s.detector.Reshuffle(s.board, s.rng, s.cfg.ReshuffleLimit); err != nil {
		return err
	}
	s.emit(BoardShuffled{})
	return nil
}

func (s *Session) enterMatching() {
	st := s.pending[s.next]
	s.toPhase(PhaseMatching)
	for _, m := range st.Removed {
		s.emit(MatchResolved{Match: m.Match, Points: m.Points})
		for _, t := range m.Tokens {
			s.emit(TokenRemoved{ID: t.ID})
		}
	}
	s.combo.Counter++
	s.combo.Deadline = s.tick + s.cfg.ComboWindow
	s.score += st.Points
	s.emit(ComboChanged{Counter: s.combo.Counter})
	s.emit(ScoreChanged{Total: s.score})
}

func (s *Session) enterRefilling() {
	st := s.pending[s.next]
	s.toPhase(PhaseRefilling)
	for _, f := range st.Fallen {
		s.emit(TokenMoved{ID: f.ID, Column: f.Column, FromY: f.FromY, ToY: f.ToY})
	}
	for _, sp := range st.Spawned {
		s.emit(TokenSpawned{ID: sp.ID, Type: sp.Type, Column: sp.Column, Y: sp.Y})
	}
}

func (s *Session) toPhase(p Phase) {
	from := s.m.phase
	s.m.step(p)
	s.emit(StateChanged{From: from, To: p})
}

func (s *Session) emit(e Event) {
	if s.sink != nil {
		s.sink(e)
	}
}
