package physics

import (
	"math"

	"github.com/san-kum/gravbox/internal/vec"
)

// Merge records one inelastic collision resolved by UpdateGravity.
type Merge struct {
	Survivor Handle
	Absorbed Handle
}

// UpdateGravity recomputes every active body's acceleration and resolves
// collisions.
//
// Forces and collision pairs are computed against the positions and masses
// at the start of the pass. Merges are then applied in pair order, skipping
// pairs that lost a member to an earlier merge, and absorbed bodies are
// compacted once at the end.
func (w *World) UpdateGravity() []Merge {
	n := len(w.bodies)
	for i := 0; i < n; i++ {
		if w.bodies[i].Active {
			w.bodies[i].Acc = vec.Vec2{}
		}
	}

	var pairs [][2]int
	for out := 0; out < n; out++ {
		bo := &w.bodies[out]
		if !bo.Active {
			continue
		}
		for in := 0; in < n; in++ {
			bi := &w.bodies[in]
			if in == out || !bi.Active {
				continue
			}

			rSq := vec.DistSq(bi.Pos, bo.Pos)
			if rSq != 0 {
				g := w.Params.G * bi.Mass / rSq
				bo.Acc.X += g * bo.Pos.CosAngleBetween(bi.Pos)
				bo.Acc.Y += g * bo.Pos.SinAngleBetween(bi.Pos)
			}

			if in > out {
				minDist := bi.Radius/2 + bo.Radius/2
				if rSq < minDist*minDist {
					pairs = append(pairs, [2]int{out, in})
				}
			}
		}
	}

	var merges []Merge
	for _, p := range pairs {
		if !w.bodies[p[0]].Active || !w.bodies[p[1]].Active {
			continue
		}
		merges = append(merges, w.ResolveCollision(p[0], p[1]))
	}
	if len(merges) > 0 {
		w.Compact()
	}
	return merges
}

// ResolveCollision merges the bodies in slots i1 and i2. The heavier body
// survives; on equal mass the body in i1 survives. The survivor takes the
// momentum-weighted velocity, the summed mass and a radius of
// sqrt(r1²+r2²). Two massless bodies keep the survivor's velocity. The
// absorbed body is deactivated but not compacted.
func (w *World) ResolveCollision(i1, i2 int) Merge {
	b1, b2 := &w.bodies[i1], &w.bodies[i2]

	survivor, absorbed := b1, b2
	if b2.Mass > b1.Mass {
		survivor, absorbed = b2, b1
	}

	total := b1.Mass + b2.Mass
	vel := survivor.Vel
	if total != 0 {
		vel = vec.New(
			(b1.Mass*b1.Vel.X+b2.Mass*b2.Vel.X)/total,
			(b1.Mass*b1.Vel.Y+b2.Mass*b2.Vel.Y)/total,
		)
	}
	radius := math.Sqrt(b1.Radius*b1.Radius + b2.Radius*b2.Radius)

	survivor.Vel = vel
	survivor.Radius = radius
	survivor.Mass = total
	survivor.Center = survivor.Center || absorbed.Center
	absorbed.Active = false
	absorbed.Center = false

	return Merge{Survivor: survivor.ID, Absorbed: absorbed.ID}
}

// UpdateVelAndPos advances every active body by dt with semi-implicit
// Euler. Velocity is up-positive while position is down-positive, so the Y
// position moves against the Y velocity.
func (w *World) UpdateVelAndPos(dt float64) {
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.Active {
			continue
		}
		b.Vel.X += b.Acc.X * dt
		b.Vel.Y += b.Acc.Y * dt
		b.Pos.X += b.Vel.X * dt
		b.Pos.Y -= b.Vel.Y * dt
	}
}

// TotalMass sums the mass of active bodies.
func (w *World) TotalMass() float64 {
	m := 0.0
	for i := range w.bodies {
		if w.bodies[i].Active {
			m += w.bodies[i].Mass
		}
	}
	return m
}

// Momentum returns the total linear momentum of active bodies in the
// velocity frame (Y up).
func (w *World) Momentum() (px, py float64) {
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.Active {
			continue
		}
		px += b.Mass * b.Vel.X
		py += b.Mass * b.Vel.Y
	}
	return
}

// Energy returns kinetic plus gravitational potential energy of active
// bodies. Coincident pairs contribute no potential.
func (w *World) Energy() float64 {
	ke, pe := 0.0, 0.0
	n := len(w.bodies)
	for i := 0; i < n; i++ {
		bi := &w.bodies[i]
		if !bi.Active {
			continue
		}
		ke += 0.5 * bi.Mass * bi.Vel.MagSq()

		for j := i + 1; j < n; j++ {
			bj := &w.bodies[j]
			if !bj.Active {
				continue
			}
			r := bi.Pos.Dist(bj.Pos)
			if r > 0 {
				pe -= w.Params.G * bi.Mass * bj.Mass / r
			}
		}
	}
	return ke + pe
}
