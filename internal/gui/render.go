package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/gravbox/internal/vec"
)

// drawer satisfies render.Drawer with raylib primitives. It must be used
// between BeginDrawing and EndDrawing.
type drawer struct{}

func toVector2(v vec.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func (drawer) FillCircle(center vec.Vec2, radius float64, c color.RGBA) {
	rl.DrawCircleV(toVector2(center), float32(radius), toColor(c))
}

func (drawer) DrawLine(a, b vec.Vec2, c color.RGBA) {
	rl.DrawLineV(toVector2(a), toVector2(b), toColor(c))
}
