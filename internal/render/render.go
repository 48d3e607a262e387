// Package render turns the world into screen-space draw calls. It applies
// the camera transform exactly once; a Drawer only ever sees pixels.
package render

import (
	"image/color"
	"math"

	"github.com/san-kum/gravbox/internal/camera"
	"github.com/san-kum/gravbox/internal/physics"
	"github.com/san-kum/gravbox/internal/vec"
)

const (
	headAngle   = math.Pi / 6
	minHeadSize = 0.1
	maxHeadSize = 20.0
)

// VectorColor is the color of velocity arrows.
var VectorColor = color.RGBA{R: 255, G: 60, B: 60, A: 255}

// Drawer is the drawing capability supplied by a presentation layer.
type Drawer interface {
	FillCircle(center vec.Vec2, radius float64, c color.RGBA)
	DrawLine(a, b vec.Vec2, c color.RGBA)
}

// Scene draws every active body and, when vectors is set, its velocity
// arrow from the body center to its ArrowEnd.
func Scene(d Drawer, bodies []physics.Body, cam camera.State, vectors bool) {
	for i := range bodies {
		b := &bodies[i]
		if !b.Active {
			continue
		}
		d.FillCircle(cam.ToScreen(b.Pos), cam.ScaleLength(b.Radius), b.Color)
	}

	if !vectors {
		return
	}
	for i := range bodies {
		b := &bodies[i]
		if !b.Active {
			continue
		}
		Arrow(d, cam.ToScreen(b.Pos), cam.ToScreen(b.ArrowEnd), VectorColor)
	}
}

// Arrow draws a shaft from origin to tip with a two-stroke head at ±30°.
// The head length is the squared shaft length over 100, kept within
// [0.1, 20].
func Arrow(d Drawer, origin, tip vec.Vec2, c color.RGBA) {
	d.DrawLine(origin, tip, c)
	for _, h := range ArrowHead(origin, tip) {
		d.DrawLine(tip, h, c)
	}
}

// ArrowHead returns the far ends of the two head strokes.
func ArrowHead(origin, tip vec.Vec2) [2]vec.Vec2 {
	size := HeadSize(vec.DistSq(origin, tip))
	angle := origin.AngleBetween(tip)

	var out [2]vec.Vec2
	for i, a := range [2]float64{angle + headAngle, angle - headAngle} {
		out[i] = vec.New(tip.X-size*math.Sin(a), tip.Y-size*math.Cos(a))
	}
	return out
}

// HeadSize maps a squared shaft length to an arrowhead length.
func HeadSize(shaftLenSq float64) float64 {
	return math.Max(minHeadSize, math.Min(shaftLenSq/100, maxHeadSize))
}
