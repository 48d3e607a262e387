package physics

import (
	"image/color"

	"github.com/san-kum/gravbox/internal/vec"
)

// Handle identifies a body for the lifetime of its World. Zero is never
// assigned and means "no body".
type Handle uint64

type Body struct {
	ID     Handle
	Pos    vec.Vec2
	Vel    vec.Vec2
	Acc    vec.Vec2
	Mass   float64
	Radius float64
	Active bool
	Color  color.RGBA

	// ArrowEnd is the world-space tip of the velocity indicator as last
	// drawn. It is the pick target for velocity dragging.
	ArrowEnd vec.Vec2

	// Center marks the body the camera follows.
	Center bool
}

// ArrowTip returns where the velocity indicator ends for the given display
// scale. The Y component is flipped into screen space.
func (b *Body) ArrowTip(scale float64) vec.Vec2 {
	return vec.New(b.Pos.X+scale*b.Vel.X, b.Pos.Y-scale*b.Vel.Y)
}

// VelocityFromArrow inverts ArrowTip: it returns the velocity whose
// indicator would end at tip.
func (b *Body) VelocityFromArrow(tip vec.Vec2, scale float64) vec.Vec2 {
	d := tip.Sub(b.Pos).Scale(1 / scale)
	return vec.New(d.X, -d.Y)
}

// Hit reports whether p lands on the body. The threshold compares the
// squared distance against the plain radius, which is tighter than the
// drawn circle for any radius above 1.
func (b *Body) Hit(p vec.Vec2) bool {
	return vec.DistSq(b.Pos, p) < b.Radius
}

// Finite reports whether position, velocity and acceleration are all finite.
func (b *Body) Finite() bool {
	return b.Pos.IsFinite() && b.Vel.IsFinite() && b.Acc.IsFinite()
}
