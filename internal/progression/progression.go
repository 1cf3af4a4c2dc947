// Package progression tracks gameplay milestones and unlocks achievements.
// The engine knows nothing about it; the game adapter feeds engine events
// into a Tracker, and persistence goes through the narrow Saver interface.
package progression

import (
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/gemfall/internal/games/gems/core"
)

// Achievement describes one unlockable milestone.
type Achievement struct {
	ID          string
	Title       string
	Description string
}

// Saver persists unlocked achievements. Implementations must be idempotent:
// saving an already-unlocked achievement is not an error.
type Saver interface {
	SaveAchievement(id string) error
	LoadAchievements() (map[string]time.Time, error)
}

// Catalog lists every achievement the tracker can unlock, in display order.
func Catalog() []Achievement {
	return []Achievement{
		{"first_match", "First Sparkle", "Clear your first match"},
		{"match_50", "Gem Hoarder", "Clear 50 matches in one session"},
		{"big_match", "Six Pack", "Clear a match of six or more gems"},
		{"first_cross", "Crossing Over", "Clear a cross-shaped match"},
		{"all_shapes", "Shape Collector", "Clear an L, T, cross and irregular match in one session"},
		{"combo_5", "Chain Lightning", "Reach a combo counter of 5"},
		{"cascade_4", "Deep Drop", "Trigger a cascade four levels deep"},
		{"fresh_start", "Fresh Start", "Play on after a board reshuffle"},
	}
}

// Tracker accumulates session counters and fires achievements when
// thresholds pass. Unlocks are remembered across sessions via the Saver;
// counters are per-session.
type Tracker struct {
	saver    Saver
	unlocked map[string]bool
	fresh    []string

	matches    int
	shapesSeen map[core.PatternShape]bool
}

// NewTracker builds a tracker, preloading already-unlocked achievements so
// they never fire twice. A nil saver keeps everything in memory.
func NewTracker(s Saver) (*Tracker, error) {
	t := &Tracker{
		saver:      s,
		unlocked:   make(map[string]bool),
		shapesSeen: make(map[core.PatternShape]bool),
	}
	if s != nil {
		existing, err := s.LoadAchievements()
		if err != nil {
			return nil, fmt.Errorf("progression: load achievements: %w", err)
		}
		for id := range existing {
			t.unlocked[id] = true
		}
	}
	return t, nil
}

// RecordMatch registers one cleared match of the given size and shape.
func (t *Tracker) RecordMatch(length int, shape core.PatternShape) {
	t.matches++
	t.unlock("first_match")
	if t.matches >= 50 {
		t.unlock("match_50")
	}
	if length >= 6 {
		t.unlock("big_match")
	}
	t.RecordSpecialPattern(shape)
}

// RecordSpecialPattern registers the shape of a cleared match.
func (t *Tracker) RecordSpecialPattern(shape core.PatternShape) {
	if shape == core.ShapeLine {
		return
	}
	t.shapesSeen[shape] = true
	if shape == core.ShapeCross {
		t.unlock("first_cross")
	}
	if t.shapesSeen[core.ShapeL] && t.shapesSeen[core.ShapeT] &&
		t.shapesSeen[core.ShapeCross] && t.shapesSeen[core.ShapeIrregular] {
		t.unlock("all_shapes")
	}
}

// RecordCombo registers the current combo counter.
func (t *Tracker) RecordCombo(counter int) {
	if counter >= 5 {
		t.unlock("combo_5")
	}
}

// RecordCascade registers the depth of a resolved cascade.
func (t *Tracker) RecordCascade(depth int) {
	if depth >= 4 {
		t.unlock("cascade_4")
	}
}

// RecordReshuffle registers a deadlock repair.
func (t *Tracker) RecordReshuffle() {
	t.unlock("fresh_start")
}

// unlock marks an achievement the first time only, queuing it for Flush.
func (t *Tracker) unlock(id string) {
	if t.unlocked[id] {
		return
	}
	t.unlocked[id] = true
	t.fresh = append(t.fresh, id)
}

// Unlocked returns every unlocked achievement in catalog order.
func (t *Tracker) Unlocked() []Achievement {
	var out []Achievement
	for _, a := range Catalog() {
		if t.unlocked[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

// TakeFresh drains achievements unlocked since the last call, in unlock
// order, for transient UI banners.
func (t *Tracker) TakeFresh() []Achievement {
	if len(t.fresh) == 0 {
		return nil
	}
	byID := make(map[string]Achievement, len(t.fresh))
	for _, a := range Catalog() {
		byID[a.ID] = a
	}
	out := make([]Achievement, 0, len(t.fresh))
	for _, id := range t.fresh {
		out = append(out, byID[id])
	}
	t.fresh = nil
	return out
}

// Flush persists every pending unlock through the saver. Already-persisted
// achievements are skipped. With no saver it is a no-op.
func (t *Tracker) Flush() error {
	if t.saver == nil {
		return nil
	}
	existing, err := t.saver.LoadAchievements()
	if err != nil {
		return fmt.Errorf("progression: load achievements: %w", err)
	}
	ids := make([]string, 0, len(t.unlocked))
	for id := range t.unlocked {
		if _, saved := existing[id]; !saved {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := t.saver.SaveAchievement(id); err != nil {
			return fmt.Errorf("progression: save achievement %s: %w", id, err)
		}
	}
	return nil
}
