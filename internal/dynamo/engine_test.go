package dynamo

import (
	"math"
	"testing"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/san-kum/gravbox/internal/interact"
	"github.com/san-kum/gravbox/internal/physics"
	"github.com/san-kum/gravbox/internal/vec"
)

func newEngine(bodies ...physics.Body) (*Engine, []physics.Handle) {
	w := physics.NewWorld(physics.DefaultParams())
	var hs []physics.Handle
	for _, b := range bodies {
		hs = append(hs, w.Spawn(b))
	}
	ctrl := interact.NewController(interact.DefaultSettings(), logr.Discard())
	return NewEngine(w, ctrl, DefaultEngineConfig(), logr.Discard()), hs
}

func frame(dt, fps float64) *interact.Input {
	return &interact.Input{Dt: dt, FPS: fps, Screen: vec.New(800, 600)}
}

func TestEngineIntegrationGate(t *testing.T) {
	tests := []struct {
		name   string
		paused bool
		fps    float64
		moved  bool
	}{
		{"running", false, 60, true},
		{"paused", true, 60, false},
		{"slow frame", false, 5, false},
		{"at threshold", false, DefaultMinFPS, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, hs := newEngine(
				physics.Body{Pos: vec.New(0, 0), Mass: 100, Radius: 10},
				physics.Body{Pos: vec.New(300, 0), Mass: 1, Radius: 5},
			)
			e.Controller.Paused = tt.paused

			f := e.Step(frame(0.01, tt.fps))

			b, _ := e.World.Get(hs[1])
			if b.Acc.X >= 0 {
				t.Errorf("forces not refreshed: acc = %v", b.Acc)
			}
			if f.Integrated != tt.moved {
				t.Errorf("integrated = %v, want %v", f.Integrated, tt.moved)
			}
			if moved := b.Pos.X != 300; moved != tt.moved {
				t.Errorf("body moved = %v, want %v", moved, tt.moved)
			}
		})
	}
}

func TestEngineCenterLock(t *testing.T) {
	e, hs := newEngine(physics.Body{Pos: vec.New(100, 50), Mass: 1, Radius: 10})
	e.Controller.Paused = true

	in := frame(0.016, 60)
	in.Pointer = vec.New(100, 50)
	in.Primary = interact.Button{Pressed: true, Held: true}
	in.Hold(interact.ToggleCenter)
	e.Step(in)

	if e.Camera.Follow != hs[0] {
		t.Fatalf("follow = %d, want %d", e.Camera.Follow, hs[0])
	}
	b, _ := e.World.Get(hs[0])
	if diff := cmp.Diff(vec.New(400, 300), e.Camera.ToScreen(b.Pos), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("centered body screen position (-want +got):\n%s", diff)
	}

	pan := frame(0.016, 60)
	pan.Pointer = vec.New(10, 10)
	pan.Secondary = interact.Button{Pressed: true, Held: true}
	e.Step(pan)

	if e.Camera.Follow != 0 {
		t.Errorf("pan drag should release follow, got %d", e.Camera.Follow)
	}
	if b.Center {
		t.Error("pan drag should clear the center flag")
	}
}

func TestEngineZoom(t *testing.T) {
	e, _ := newEngine()
	in := frame(1, 60)
	in.Hold(interact.ZoomIn)
	e.Step(in)

	if math.Abs(e.Camera.Zoom-1.3) > 1e-12 {
		t.Errorf("zoom = %v, want 1.3", e.Camera.Zoom)
	}
}

func TestEngineArrowsHeldDuringDrag(t *testing.T) {
	e, hs := newEngine(physics.Body{Pos: vec.New(0, 0), Vel: vec.New(10, 0), Mass: 1, Radius: 1})
	e.Controller.Paused = true
	e.Controller.ShowVectors = true

	e.Step(frame(0.016, 60))
	b, _ := e.World.Get(hs[0])
	if diff := cmp.Diff(vec.New(5, 0), b.ArrowEnd); diff != "" {
		t.Fatalf("arrow end (-want +got):\n%s", diff)
	}

	grab := frame(0.016, 60)
	grab.Pointer = vec.New(5, 0)
	grab.Primary = interact.Button{Pressed: true, Held: true}
	e.Step(grab)

	hold := frame(0.016, 60)
	hold.Pointer = vec.New(0, -20)
	hold.Primary = interact.Button{Held: true}
	e.Step(hold)

	if diff := cmp.Diff(vec.New(0, -20), b.ArrowEnd); diff != "" {
		t.Errorf("dragged arrow was refreshed (-want +got):\n%s", diff)
	}

	release := frame(0.016, 60)
	release.Pointer = vec.New(0, -20)
	release.Primary = interact.Button{Released: true}
	f := e.Step(release)

	if f.Input.Committed != hs[0] {
		t.Fatalf("committed = %d", f.Input.Committed)
	}
	if diff := cmp.Diff(vec.New(0, 40), b.Vel); diff != "" {
		t.Errorf("velocity (-want +got):\n%s", diff)
	}
}

func TestEngineReportsMerges(t *testing.T) {
	e, _ := newEngine(
		physics.Body{Pos: vec.New(0, 0), Mass: 2, Radius: 10},
		physics.Body{Pos: vec.New(3, 0), Mass: 1, Radius: 10},
	)
	f := e.Step(frame(0.01, 60))

	if len(f.Merges) != 1 {
		t.Fatalf("merges = %d, want 1", len(f.Merges))
	}
	if e.World.Len() != 1 {
		t.Errorf("world len = %d, want 1", e.World.Len())
	}
}

func TestEngineInvalidState(t *testing.T) {
	e, _ := newEngine(physics.Body{Pos: vec.New(0, 0), Vel: vec.New(math.Inf(1), 0), Mass: 1, Radius: 1})
	f := e.Step(frame(0.01, 60))

	if f.Err == nil {
		t.Fatal("expected invalid state error")
	}
}
