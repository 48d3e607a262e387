package physics

import "github.com/san-kum/gravbox/internal/vec"

// AddBodyAt spawns a body at rest at p using the world's new-body params.
func (w *World) AddBodyAt(p vec.Vec2) Handle {
	return w.Spawn(Body{
		Pos:      p,
		Mass:     w.Params.NewBodyMass,
		Radius:   w.Params.NewBodyRadius,
		Color:    w.Params.NewBodyColor,
		ArrowEnd: p,
	})
}

// DeleteBodyAt removes every active body hit by p and returns how many
// were removed.
func (w *World) DeleteBodyAt(p vec.Vec2) int {
	hit := 0
	for i := range w.bodies {
		b := &w.bodies[i]
		if b.Active && b.Hit(p) {
			b.Active = false
			b.Center = false
			hit++
		}
	}
	if hit > 0 {
		w.Compact()
	}
	return hit
}

// AddMassAt adds the mass increment to every active body hit by p and
// returns how many were changed.
func (w *World) AddMassAt(p vec.Vec2) int {
	hit := 0
	for i := range w.bodies {
		b := &w.bodies[i]
		if b.Active && b.Hit(p) {
			b.Mass += w.Params.MassIncrement
			hit++
		}
	}
	return hit
}

// ToggleCenterAt flips the center flag of the last body hit by p and clears
// it on all others. It returns the handle of the body left flagged, if any.
func (w *World) ToggleCenterAt(p vec.Vec2) (Handle, bool) {
	hit := -1
	for i := range w.bodies {
		if b := &w.bodies[i]; b.Active && b.Hit(p) {
			hit = i
		}
	}

	var centered Handle
	for i := range w.bodies {
		b := &w.bodies[i]
		if i != hit {
			b.Center = false
			continue
		}
		b.Center = !b.Center
		if b.Center {
			centered = b.ID
		}
	}
	return centered, centered != 0
}

// ClearCenter drops the center flag from every body.
func (w *World) ClearCenter() {
	for i := range w.bodies {
		w.bodies[i].Center = false
	}
}

// CenterBody returns the body the camera should follow. It only succeeds
// when exactly one active body is flagged.
func (w *World) CenterBody() (*Body, bool) {
	var found *Body
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.Active || !b.Center {
			continue
		}
		if found != nil {
			return nil, false
		}
		found = b
	}
	return found, found != nil
}

// RefreshArrows recomputes every active body's ArrowEnd from its velocity,
// except for the body identified by hold, whose arrow is being dragged.
func (w *World) RefreshArrows(scale float64, hold Handle) {
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.Active || (hold != 0 && b.ID == hold) {
			continue
		}
		b.ArrowEnd = b.ArrowTip(scale)
	}
}

// PickArrow returns the last active body whose ArrowEnd lies within radius
// of p.
func (w *World) PickArrow(p vec.Vec2, radius float64) (Handle, bool) {
	var picked Handle
	for i := range w.bodies {
		b := &w.bodies[i]
		if b.Active && vec.DistSq(b.ArrowEnd, p) < radius*radius {
			picked = b.ID
		}
	}
	return picked, picked != 0
}
