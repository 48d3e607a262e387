// Package export writes rendered frames to static image formats.
package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/gravbox/internal/camera"
	"github.com/san-kum/gravbox/internal/physics"
	"github.com/san-kum/gravbox/internal/render"
	"github.com/san-kum/gravbox/internal/vec"
)

const background = "#0a0a0a"

// SVG collects draw calls as SVG elements. It satisfies render.Drawer.
type SVG struct {
	Width, Height int
	sb            strings.Builder
}

func NewSVG(width, height int) *SVG {
	return &SVG{Width: width, Height: height}
}

// hex drops alpha, which is carried by the opacity attribute instead.
func hex(c color.RGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// opacity is omitted from the markup when the color is opaque.
func opacity(c color.RGBA) string {
	if c.A == 255 {
		return ""
	}
	return fmt.Sprintf(` opacity="%.2f"`, float64(c.A)/255)
}

func (s *SVG) FillCircle(center vec.Vec2, radius float64, c color.RGBA) {
	if radius <= 0 {
		return
	}
	fmt.Fprintf(&s.sb, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"%s/>`+"\n",
		center.X, center.Y, radius, hex(c), opacity(c))
}

func (s *SVG) DrawLine(a, b vec.Vec2, c color.RGBA) {
	fmt.Fprintf(&s.sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"%s/>`+"\n",
		a.X, a.Y, b.X, b.Y, hex(c), opacity(c))
}

// WriteTo emits the document with everything drawn so far.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, background)
	sb.WriteString(s.sb.String())
	sb.WriteString("</svg>\n")

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// Snapshot renders the world through cam into a width by height SVG.
func Snapshot(w io.Writer, world *physics.World, cam camera.State, width, height int, vectors bool) error {
	s := NewSVG(width, height)
	render.Scene(s, world.Bodies(), cam, vectors)
	_, err := s.WriteTo(w)
	return err
}
