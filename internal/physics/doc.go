// Package physics provides the N-body world driven by the sandbox.
//
// A [World] owns an unordered collection of [Body] values. Each frame the
// caller runs [World.UpdateGravity] (forces plus inelastic merges) and,
// unless paused, [World.UpdateVelAndPos]:
//
//	w := physics.NewWorld(physics.DefaultParams())
//	w.Spawn(physics.Body{Pos: vec.New(400, 400), Mass: 100, Radius: 35})
//	merges := w.UpdateGravity()
//	w.UpdateVelAndPos(dt)
//
// # Identity
//
// Removal swaps the last body into the vacated slot, so slot indices are
// only meaningful within a single call. Anything that must refer to a body
// across frames holds its [Handle] and resolves it with [World.Get].
//
// # Coordinates
//
// Positions are screen-convention (Y down) while velocities and
// accelerations are math-convention (Y up); [World.UpdateVelAndPos]
// subtracts the Y velocity from the Y position.
package physics
