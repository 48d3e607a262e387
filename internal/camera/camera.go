// Package camera maps between world and screen space and updates the
// view from pointer drags, zoom keys and a followed body.
//
// State is a value type: every update returns a new State, so the transform
// math can be exercised without a window.
package camera

import (
	"math"

	"github.com/san-kum/gravbox/internal/physics"
	"github.com/san-kum/gravbox/internal/vec"
)

const (
	DefaultZoomRate = 0.3
	DefaultMinZoom  = 0.01
)

type State struct {
	Pan      vec.Vec2
	Zoom     float64
	Dragging bool
	Anchor   vec.Vec2

	// Follow is the body the view is locked on, zero when free.
	Follow physics.Handle
}

// Controls is the per-frame camera input.
type Controls struct {
	Pointer  vec.Vec2
	PanHeld  bool
	PanUp    bool
	ZoomIn   bool
	ZoomOut  bool
	ZoomRate float64
	MinZoom  float64
}

func New() State {
	return State{Zoom: 1}
}

// ToScreen maps a world point to screen space.
func (s State) ToScreen(world vec.Vec2) vec.Vec2 {
	return world.Scale(s.Zoom).Add(s.Pan)
}

// ToWorld maps a screen point to world space.
func (s State) ToWorld(screen vec.Vec2) vec.Vec2 {
	return screen.Sub(s.Pan).Scale(1 / s.Zoom)
}

// ScaleLength converts a world length to screen pixels.
func (s State) ScaleLength(l float64) float64 {
	return l * s.Zoom
}

// Update applies panning and zooming for one frame. started reports whether
// a pan drag began this frame; callers must drop any center lock when it
// does.
func (s State) Update(c Controls, dt float64) (next State, started bool) {
	next = s

	if c.PanHeld && !next.Dragging {
		next.Anchor = c.Pointer
		next.Dragging = true
		next.Follow = 0
		started = true
	}
	if next.Dragging {
		next.Pan = next.Pan.Add(c.Pointer.Sub(next.Anchor))
		next.Anchor = c.Pointer
	}
	if c.PanUp || (!c.PanHeld && next.Dragging) {
		next.Dragging = false
	}

	rate := c.ZoomRate
	if rate == 0 {
		rate = DefaultZoomRate
	}
	factor := 1.0
	if c.ZoomIn {
		factor = 1 + rate*dt
	} else if c.ZoomOut {
		factor = 1 - rate*dt
	}
	if factor > 0 {
		next.Zoom *= factor
	}

	minZoom := c.MinZoom
	if minZoom <= 0 {
		minZoom = DefaultMinZoom
	}
	if next.Zoom < minZoom {
		next.Zoom = minZoom
	}

	return next, started
}

// CenterOn recomputes the pan so target renders at the screen center. It
// has no effect while dragging.
func (s State) CenterOn(h physics.Handle, target, screen vec.Vec2) State {
	if s.Dragging {
		return s
	}
	s.Follow = h
	s.Pan = screen.Scale(0.5).Sub(target.Scale(s.Zoom))
	return s
}

// Release drops the follow target without moving the view.
func (s State) Release() State {
	s.Follow = 0
	return s
}

// Fit zooms and pans so the box [lo, hi] fills screen less margin pixels on
// every side. A degenerate box is centered without changing the zoom.
func (s State) Fit(lo, hi, screen vec.Vec2, margin float64) State {
	size := hi.Sub(lo)
	availX, availY := screen.X-2*margin, screen.Y-2*margin

	zoom := math.Inf(1)
	if size.X > 0 {
		zoom = availX / size.X
	}
	if size.Y > 0 {
		zoom = math.Min(zoom, availY/size.Y)
	}
	if !math.IsInf(zoom, 1) && zoom > 0 {
		s.Zoom = zoom
	}

	center := lo.Add(hi).Scale(0.5)
	s.Pan = screen.Scale(0.5).Sub(center.Scale(s.Zoom))
	return s
}
