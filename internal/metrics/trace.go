package metrics

import (
	"math"

	"github.com/san-kum/gravbox/internal/physics"
)

// TraceColumns names the columns recorded by Trace, in order.
var TraceColumns = []string{"bodies", "total_mass", "energy", "momentum"}

// Trace samples instantaneous world quantities for plotting and export.
type Trace struct {
	Times []float64
	Rows  [][]float64
}

func NewTrace(capacity int) *Trace {
	return &Trace{
		Times: make([]float64, 0, capacity),
		Rows:  make([][]float64, 0, capacity),
	}
}

func (tr *Trace) Observe(w *physics.World, t float64) {
	px, py := w.Momentum()
	tr.Times = append(tr.Times, t)
	tr.Rows = append(tr.Rows, []float64{
		float64(w.ActiveCount()),
		w.TotalMass(),
		w.Energy(),
		math.Hypot(px, py),
	})
}

// Column extracts one column by index.
func (tr *Trace) Column(i int) []float64 {
	out := make([]float64, len(tr.Rows))
	for j, row := range tr.Rows {
		if i < len(row) {
			out[j] = row[i]
		}
	}
	return out
}

func (tr *Trace) Len() int { return len(tr.Times) }
