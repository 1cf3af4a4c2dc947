package core

import (
	"fmt"
	"math"
)

// ShapeBonus multiplies the base points of special match geometries.
type ShapeBonus struct {
	Line      float64
	L         float64
	T         float64
	Cross     float64
	Irregular float64
}

// For returns the multiplier for a shape.
func (s ShapeBonus) For(p PatternShape) float64 {
	switch p {
	case ShapeL:
		return s.L
	case ShapeT:
		return s.T
	case ShapeCross:
		return s.Cross
	case ShapeIrregular:
		return s.Irregular
	default:
		return s.Line
	}
}

// Scorer turns matches into points: a base by run size, a shape bonus and
// a combo multiplier growing with cascade depth.
type Scorer struct {
	MinRun     int
	LengthBase []int
	Bonus      ShapeBonus
	ComboScale float64
}

// MatchPoints scores one match at the given combo depth. The result is
// floor(base × shape bonus × combo multiplier). Matches shorter than the
// minimum run cannot come out of the detector; being handed one is a
// caller bug and fails loudly.
func (s *Scorer) MatchPoints(m Match, depth int) int {
	n := len(m.Cells)
	if n < s.MinRun {
		panic(fmt.Sprintf("scoring a %d-cell match, minimum run is %d", n, s.MinRun))
	}
	k := n - s.MinRun
	if k >= len(s.LengthBase) {
		k = len(s.LengthBase) - 1
	}
	total := float64(s.LengthBase[k]) * s.Bonus.For(m.Shape) * ComboMultiplier(depth, s.ComboScale)
	return int(math.Floor(total))
}

// ComboMultiplier is 1 at depth zero and grows sublinearly after that:
// 1 + log2(depth+1)·scale.
func ComboMultiplier(depth int, scale float64) float64 {
	if depth <= 0 {
		return 1
	}
	return 1 + math.Log2(float64(depth)+1)*scale
}
