package physics

import (
	"image/color"
	"math"

	"github.com/san-kum/gravbox/internal/vec"
)

const (
	DefaultG             = 100000.0
	DefaultNewBodyMass   = 1.0
	DefaultNewBodyRadius = 10.0
	DefaultMassIncrement = 10.0
)

// DefaultBodyColor is used for bodies added at runtime.
var DefaultBodyColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Params holds the tunable constants of a World.
type Params struct {
	// G is tuned for orbits at display scale, not SI units.
	G             float64
	NewBodyMass   float64
	NewBodyRadius float64
	NewBodyColor  color.RGBA
	MassIncrement float64
}

func DefaultParams() Params {
	return Params{
		G:             DefaultG,
		NewBodyMass:   DefaultNewBodyMass,
		NewBodyRadius: DefaultNewBodyRadius,
		NewBodyColor:  DefaultBodyColor,
		MassIncrement: DefaultMassIncrement,
	}
}

// World is the body collection. It is not safe for concurrent use.
type World struct {
	Params Params

	bodies []Body
	index  map[Handle]int
	next   Handle
}

func NewWorld(p Params) *World {
	return &World{
		Params: p,
		bodies: make([]Body, 0, 16),
		index:  make(map[Handle]int),
	}
}

// Spawn appends b as a new active body and returns its handle. Any ID set
// on b is replaced.
func (w *World) Spawn(b Body) Handle {
	w.next++
	b.ID = w.next
	b.Active = true
	w.index[b.ID] = len(w.bodies)
	w.bodies = append(w.bodies, b)
	return b.ID
}

// Len returns the number of bodies in the collection, including any
// deactivated ones awaiting compaction.
func (w *World) Len() int { return len(w.bodies) }

// Bodies returns the live collection. The slice is invalidated by any call
// that adds or removes bodies.
func (w *World) Bodies() []Body { return w.bodies }

// At returns the body in slot i.
func (w *World) At(i int) *Body { return &w.bodies[i] }

// Get resolves a handle. It fails for handles of removed bodies.
func (w *World) Get(h Handle) (*Body, bool) {
	i, ok := w.index[h]
	if !ok {
		return nil, false
	}
	return &w.bodies[i], true
}

// ActiveCount returns the number of active bodies.
func (w *World) ActiveCount() int {
	n := 0
	for i := range w.bodies {
		if w.bodies[i].Active {
			n++
		}
	}
	return n
}

// Deactivate marks the body inactive. It stays in the collection until the
// next Compact.
func (w *World) Deactivate(h Handle) bool {
	b, ok := w.Get(h)
	if !ok || !b.Active {
		return false
	}
	b.Active = false
	return true
}

// Compact removes every inactive body by swapping the last body into its
// slot and shrinking the collection. It returns the number removed.
func (w *World) Compact() int {
	removed := 0
	for i := 0; i < len(w.bodies); {
		if w.bodies[i].Active {
			i++
			continue
		}
		delete(w.index, w.bodies[i].ID)
		last := len(w.bodies) - 1
		w.bodies[i] = w.bodies[last]
		w.bodies[last] = Body{}
		w.bodies = w.bodies[:last]
		if i < last {
			w.index[w.bodies[i].ID] = i
		}
		removed++
	}
	return removed
}

// Finite reports whether every active body has finite kinematic state.
func (w *World) Finite() bool {
	for i := range w.bodies {
		if w.bodies[i].Active && !w.bodies[i].Finite() {
			return false
		}
	}
	return true
}

// Bounds returns the box enclosing every active body including its radius.
func (w *World) Bounds() (lo, hi vec.Vec2, ok bool) {
	lo = vec.New(math.Inf(1), math.Inf(1))
	hi = vec.New(math.Inf(-1), math.Inf(-1))
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.Active {
			continue
		}
		lo.X = math.Min(lo.X, b.Pos.X-b.Radius)
		lo.Y = math.Min(lo.Y, b.Pos.Y-b.Radius)
		hi.X = math.Max(hi.X, b.Pos.X+b.Radius)
		hi.Y = math.Max(hi.Y, b.Pos.Y+b.Radius)
		ok = true
	}
	if !ok {
		return vec.Vec2{}, vec.Vec2{}, false
	}
	return lo, hi, true
}
