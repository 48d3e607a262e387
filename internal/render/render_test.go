package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/san-kum/gravbox/internal/camera"
	"github.com/san-kum/gravbox/internal/physics"
	"github.com/san-kum/gravbox/internal/vec"
)

type circle struct {
	Center vec.Vec2
	Radius float64
	Color  color.RGBA
}

type line struct {
	A, B vec.Vec2
}

type recorder struct {
	circles []circle
	lines   []line
}

func (r *recorder) FillCircle(center vec.Vec2, radius float64, c color.RGBA) {
	r.circles = append(r.circles, circle{center, radius, c})
}

func (r *recorder) DrawLine(a, b vec.Vec2, c color.RGBA) {
	r.lines = append(r.lines, line{a, b})
}

func TestHeadSize(t *testing.T) {
	tests := []struct {
		lenSq float64
		want  float64
	}{
		{0, 0.1},
		{5, 0.1},
		{100, 1},
		{1500, 15},
		{1e6, 20},
	}

	for _, tt := range tests {
		if got := HeadSize(tt.lenSq); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("HeadSize(%v) = %v, want %v", tt.lenSq, got, tt.want)
		}
	}
}

func TestArrowHeadGeometry(t *testing.T) {
	origin := vec.New(0, 0)
	tip := vec.New(0, 100)

	head := ArrowHead(origin, tip)
	size := 20.0

	want := [2]vec.Vec2{
		vec.New(-size*math.Sin(math.Pi/6), 100-size*math.Cos(math.Pi/6)),
		vec.New(size*math.Sin(math.Pi/6), 100-size*math.Cos(math.Pi/6)),
	}
	if diff := cmp.Diff(want, head, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("arrowhead mismatch (-want +got):\n%s", diff)
	}

	for _, h := range head {
		if d := h.Dist(tip); math.Abs(d-size) > 1e-9 {
			t.Errorf("stroke length %v, want %v", d, size)
		}
		// strokes point back toward the origin
		if h.Y >= tip.Y {
			t.Errorf("stroke end %v is not behind the tip", h)
		}
	}
}

func TestSceneAppliesCamera(t *testing.T) {
	cam := camera.State{Pan: vec.New(10, 20), Zoom: 2}
	red := color.RGBA{R: 255, A: 255}
	bodies := []physics.Body{
		{Pos: vec.New(5, 5), Radius: 3, Active: true, Color: red, ArrowEnd: vec.New(15, 5)},
		{Pos: vec.New(50, 50), Radius: 3, Active: false},
	}

	r := &recorder{}
	Scene(r, bodies, cam, false)

	want := []circle{{Center: vec.New(20, 30), Radius: 6, Color: red}}
	if diff := cmp.Diff(want, r.circles); diff != "" {
		t.Errorf("circles mismatch (-want +got):\n%s", diff)
	}
	if len(r.lines) != 0 {
		t.Errorf("vectors hidden but %d lines drawn", len(r.lines))
	}

	r = &recorder{}
	Scene(r, bodies, cam, true)
	if len(r.lines) != 3 {
		t.Fatalf("expected shaft plus two head strokes, got %d lines", len(r.lines))
	}
	if diff := cmp.Diff(line{vec.New(20, 30), vec.New(40, 30)}, r.lines[0]); diff != "" {
		t.Errorf("shaft mismatch (-want +got):\n%s", diff)
	}
}
