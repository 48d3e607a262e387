// Package interact turns polled input into edits of the world: adding,
// deleting and feeding bodies, picking the followed body, and dragging a
// body's velocity arrow while the simulation is paused.
package interact

import (
	"github.com/go-logr/logr"
	"github.com/san-kum/gravbox/internal/camera"
	"github.com/san-kum/gravbox/internal/physics"
)

const (
	DefaultVectorScale = 0.5
	DefaultPickRadius  = 20.0
)

type Settings struct {
	// VectorScale converts velocity to arrow length in world units.
	VectorScale float64
	// PickRadius is how close to an arrow tip a click must land.
	PickRadius float64
}

func DefaultSettings() Settings {
	return Settings{VectorScale: DefaultVectorScale, PickRadius: DefaultPickRadius}
}

// Result describes what one Apply call changed.
type Result struct {
	Quit      bool
	Added     physics.Handle
	Deleted   int
	Fed       int
	Centered  physics.Handle
	Committed physics.Handle
}

// Controller holds the interaction state that survives between frames.
type Controller struct {
	Settings    Settings
	Paused      bool
	ShowVectors bool

	dragging physics.Handle
	log      logr.Logger
}

func NewController(s Settings, log logr.Logger) *Controller {
	return &Controller{Settings: s, log: log}
}

// Dragging returns the body whose arrow is being dragged.
func (c *Controller) Dragging() (physics.Handle, bool) {
	return c.dragging, c.dragging != 0
}

// Apply interprets one frame of input. Edits are mutually exclusive per
// click and checked in order: add, delete, add mass, toggle center, then
// velocity drag.
func (c *Controller) Apply(in *Input, cam camera.State, w *physics.World) Result {
	var res Result

	if in.Pressed(Pause) {
		c.Paused = !c.Paused
	}
	if in.Pressed(ToggleVectors) {
		c.ShowVectors = !c.ShowVectors
	}
	if in.Pressed(Exit) {
		res.Quit = true
	}

	if c.dragging != 0 && !c.canDrag() {
		c.log.V(1).Info("velocity drag abandoned", "body", c.dragging)
		c.dragging = 0
	}

	p := cam.ToWorld(in.Pointer)

	if in.Primary.Pressed {
		switch {
		case in.Held(AddBody):
			res.Added = w.AddBodyAt(p)
			c.log.V(1).Info("body added", "body", res.Added, "x", p.X, "y", p.Y)
		case in.Held(DeleteBody):
			res.Deleted = w.DeleteBodyAt(p)
			c.log.V(1).Info("bodies deleted", "count", res.Deleted)
		case in.Held(AddMass):
			res.Fed = w.AddMassAt(p)
			c.log.V(1).Info("mass added", "count", res.Fed)
		case in.Held(ToggleCenter):
			res.Centered, _ = w.ToggleCenterAt(p)
			c.log.V(1).Info("center toggled", "body", res.Centered)
		case c.dragging == 0 && c.canDrag():
			if h, ok := w.PickArrow(p, c.Settings.PickRadius); ok {
				c.dragging = h
				c.log.V(1).Info("velocity drag started", "body", h)
			}
		}
	}

	if c.dragging == 0 {
		return res
	}

	b, ok := w.Get(c.dragging)
	if !ok || !b.Active {
		c.log.V(1).Info("velocity drag target gone", "body", c.dragging)
		c.dragging = 0
		return res
	}

	if in.Primary.Held {
		b.ArrowEnd = p
		return res
	}

	b.Vel = b.VelocityFromArrow(b.ArrowEnd, c.Settings.VectorScale)
	res.Committed = b.ID
	c.log.V(1).Info("velocity set", "body", b.ID, "vx", b.Vel.X, "vy", b.Vel.Y)
	c.dragging = 0
	return res
}

func (c *Controller) canDrag() bool {
	return c.Paused && c.ShowVectors
}
