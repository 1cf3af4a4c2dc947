package core

import "fmt"

// Phase is where a session stands in its move lifecycle. Idle accepts move
// proposals; every other phase rejects them as busy.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseMoving
	PhaseMatching
	PhaseRefilling
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseMoving:
		return "moving"
	case PhaseMatching:
		return "matching"
	case PhaseRefilling:
		return "refilling"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// phaseEdges is the legal transition graph. There is no terminal phase;
// the machine runs for the lifetime of the session.
var phaseEdges = map[Phase][]Phase{
	PhaseIdle:      {PhaseMoving},
	PhaseMoving:    {PhaseMatching},
	PhaseMatching:  {PhaseRefilling},
	PhaseRefilling: {PhaseMatching, PhaseIdle},
}

// machine guards the phase graph. The session drives it as the caller
// acknowledges presentation steps; an illegal jump is a session bug, not
// player input, and fails loudly.
type machine struct {
	phase Phase
}

func (m *machine) step(to Phase) {
	for _, next := range phaseEdges[m.phase] {
		if next == to {
			m.phase = to
			return
		}
	}
	panic(fmt.Sprintf("illegal phase transition %s -> %s", m.phase, to))
}
