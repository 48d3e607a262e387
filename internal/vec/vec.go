// Package vec provides the 2D vector used for world and screen coordinates.
//
// Angles follow the screen convention of the rest of the module: Y grows
// downward on screen, so SinAngleBetween is negated to give an up-positive
// sine, and AngleBetween measures from the +Y axis (atan2 of dx over dy).
package vec

import "math"

// Vec2 is a 2D vector with value semantics.
type Vec2 struct {
	X, Y float64
}

// New creates a Vec2.
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v1 + v2.
func Add(v1, v2 Vec2) Vec2 {
	return Vec2{v1.X + v2.X, v1.Y + v2.Y}
}

// DistSq returns the squared distance between v1 and v2.
func DistSq(v1, v2 Vec2) float64 {
	dx := v2.X - v1.X
	dy := v2.Y - v1.Y
	return dx*dx + dy*dy
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by factor.
func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{v.X * factor, v.Y * factor}
}

// Mag returns the length of v.
func (v Vec2) Mag() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// MagSq returns the squared length of v.
func (v Vec2) MagSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dist returns the distance from v to o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Sqrt(DistSq(v, o))
}

// AngleBetween returns the angle in radians of the direction from v to o,
// measured as atan2(dx, dy).
func (v Vec2) AngleBetween(o Vec2) float64 {
	return math.Atan2(o.X-v.X, o.Y-v.Y)
}

// SinAngleBetween returns opposite over hypotenuse for the direction from v
// to o, with the screen Y axis flipped. Coincident points yield 0.
func (v Vec2) SinAngleBetween(o Vec2) float64 {
	d := v.Dist(o)
	if d == 0 {
		return 0
	}
	return -((o.Y - v.Y) / d)
}

// CosAngleBetween returns adjacent over hypotenuse for the direction from v
// to o. Coincident points yield 0.
func (v Vec2) CosAngleBetween(o Vec2) float64 {
	d := v.Dist(o)
	if d == 0 {
		return 0
	}
	return (o.X - v.X) / d
}

// TanAngleBetween returns SinAngleBetween / CosAngleBetween.
func (v Vec2) TanAngleBetween(o Vec2) float64 {
	return v.SinAngleBetween(o) / v.CosAngleBetween(o)
}

// Normalize returns the unit vector in the direction of v. The zero vector
// normalizes to itself so NaN never reaches body state.
func (v Vec2) Normalize() Vec2 {
	m := v.Mag()
	if m == 0 {
		return v
	}
	return Vec2{v.X / m, v.Y / m}
}

// Clamp bounds the magnitude of v to [min, max]. Only one bound applies:
// a vector shorter than min is stretched to min, one longer than max is
// shortened to max, anything else is returned unchanged.
func (v Vec2) Clamp(min, max float64) Vec2 {
	m := v.Mag()
	if m < min {
		return v.Normalize().Scale(min)
	} else if m > max {
		return v.Normalize().Scale(max)
	}
	return v
}

// IsFinite reports whether both components are neither NaN nor Inf.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
