package metrics

import (
	"math"

	"github.com/san-kum/gravbox/internal/physics"
)

// EnergyDrift tracks the largest relative change in total energy since the
// first observation.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(w *physics.World, t float64) {
	energy := w.Energy()

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the largest absolute change in total momentum since
// the first observation. Merges conserve momentum, so any drift comes from
// integration or edits.
type MomentumDrift struct {
	px0, py0 float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(w *physics.World, t float64) {
	px, py := w.Momentum()
	if m.samples == 0 {
		m.px0, m.py0 = px, py
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, math.Hypot(px-m.px0, py-m.py0))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.px0, m.py0 = 0, 0
	m.maxDrift = 0
	m.samples = 0
}
