// Package metrics observes a physics.World over a run and reduces it to
// scalar diagnostics.
package metrics

import "github.com/san-kum/gravbox/internal/physics"

type Metric interface {
	Name() string
	Observe(w *physics.World, t float64)
	Value() float64
	Reset()
}

// Defaults returns the metric set recorded by headless runs.
func Defaults(escapeRadius float64) []Metric {
	return []Metric{
		NewEnergyDrift(),
		NewMomentumDrift(),
		NewBodyCount(),
		NewStability(escapeRadius),
	}
}

type BodyCount struct {
	last int
}

func NewBodyCount() *BodyCount { return &BodyCount{} }

func (b *BodyCount) Name() string                        { return "bodies" }
func (b *BodyCount) Observe(w *physics.World, t float64) { b.last = w.ActiveCount() }
func (b *BodyCount) Value() float64                      { return float64(b.last) }
func (b *BodyCount) Reset()                              { b.last = 0 }
