package metrics

import (
	"github.com/san-kum/gravbox/internal/physics"
	"github.com/san-kum/gravbox/internal/vec"
)

// Stability is the fraction of observations in which every active body is
// finite and within threshold of the system's center of mass.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(w *physics.World, t float64) {
	s.samples++

	com, ok := CenterOfMass(w)
	if !ok {
		return
	}
	limit := s.threshold * s.threshold
	for _, b := range w.Bodies() {
		if !b.Active {
			continue
		}
		if !b.Finite() || vec.DistSq(b.Pos, com) > limit {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// CenterOfMass returns the mass-weighted mean position of active bodies.
func CenterOfMass(w *physics.World) (vec.Vec2, bool) {
	var sum vec.Vec2
	total := 0.0
	for _, b := range w.Bodies() {
		if !b.Active {
			continue
		}
		sum = sum.Add(b.Pos.Scale(b.Mass))
		total += b.Mass
	}
	if total == 0 {
		return vec.Vec2{}, false
	}
	return sum.Scale(1 / total), true
}
