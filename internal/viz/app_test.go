package viz

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/dynamo"
	"github.com/san-kum/gravbox/internal/interact"
	"github.com/san-kum/gravbox/internal/vec"
)

func newTestModel(t *testing.T) (Model, *dynamo.Engine) {
	t.Helper()
	cfg := config.DefaultConfig()
	w, err := cfg.BuildWorld()
	if err != nil {
		t.Fatal(err)
	}
	eng := dynamo.NewEngine(w, interact.NewController(cfg.InteractSettings(), logr.Discard()), cfg.EngineConfig(), logr.Discard())
	m := NewModel(eng, cfg.KeyBindings(), ThemeMinimal, logr.Discard())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model), eng
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelFitsWorldOnResize(t *testing.T) {
	m, eng := newTestModel(t)

	if m.canvas.Width != 80 || m.canvas.Height != 24-hudLines {
		t.Fatalf("canvas = %dx%d", m.canvas.Width, m.canvas.Height)
	}
	size := m.canvas.Size()
	for _, b := range eng.World.Bodies() {
		p := eng.Camera.ToScreen(b.Pos)
		if p.X < 0 || p.Y < 0 || p.X > size.X || p.Y > size.Y {
			t.Errorf("body %d off screen at %v", b.ID, p)
		}
	}
}

func TestModelPauseAndQuit(t *testing.T) {
	m, eng := newTestModel(t)
	now := time.Now()

	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, cmd := send(m, TickMsg(now))
	if !eng.Controller.Paused {
		t.Fatal("space should pause")
	}
	if cmd == nil {
		t.Fatal("expected the next tick to be scheduled")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnd})
	_, cmd = send(m, TickMsg(now.Add(frameInterval)))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("end should quit")
	}
}

func TestModelStickyAddBody(t *testing.T) {
	m, eng := newTestModel(t)
	before := eng.World.Len()
	now := time.Now()

	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = send(m, TickMsg(now))

	m, _ = send(m, runes("a"))
	if !m.armed[interact.AddBody] {
		t.Fatal("add body should be armed")
	}

	m, _ = send(m, tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(m, TickMsg(now.Add(frameInterval)))

	if eng.World.Len() != before+1 {
		t.Fatalf("bodies = %d, want %d", eng.World.Len(), before+1)
	}
	if len(m.armed) != 0 {
		t.Error("click should consume the armed modifier")
	}

	added := eng.World.At(eng.World.Len() - 1)
	want := eng.Camera.ToWorld(vec.New(11, 14))
	if added.Pos.Dist(want) > 1e-6 {
		t.Errorf("body added at %v, want %v", added.Pos, want)
	}
}

func TestModelArmToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, runes("d"))
	m, _ = send(m, runes("d"))
	if len(m.armed) != 0 {
		t.Errorf("second press should disarm, armed = %v", m.armed)
	}
}

func TestModelZoomHoldWindow(t *testing.T) {
	m, eng := newTestModel(t)
	now := time.Now()
	zoom := eng.Camera.Zoom

	m.handleKey("x", now)
	m, _ = send(m, TickMsg(now.Add(frameInterval)))
	if eng.Camera.Zoom <= zoom {
		t.Fatalf("zoom did not increase: %v -> %v", zoom, eng.Camera.Zoom)
	}

	zoom = eng.Camera.Zoom
	m, _ = send(m, TickMsg(now.Add(2*holdWindow)))
	if eng.Camera.Zoom != zoom {
		t.Errorf("zoom kept changing after the hold window: %v -> %v", zoom, eng.Camera.Zoom)
	}
}

func TestModelPanWithRightDrag(t *testing.T) {
	m, eng := newTestModel(t)
	now := time.Now()
	pan := eng.Camera.Pan

	m, _ = send(m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m, _ = send(m, TickMsg(now))
	m, _ = send(m, tea.MouseMsg{X: 15, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonRight})
	m, _ = send(m, TickMsg(now.Add(frameInterval)))
	m, _ = send(m, tea.MouseMsg{X: 15, Y: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	m, _ = send(m, TickMsg(now.Add(2*frameInterval)))

	if got := eng.Camera.Pan.X - pan.X; got != 10 {
		t.Errorf("pan moved %v sub-pixels, want 10", got)
	}
	if eng.Camera.Dragging {
		t.Error("release should end the pan drag")
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, TickMsg(time.Now()))

	if m.View() == "" {
		t.Error("empty view")
	}
	if len(m.energy) != 1 {
		t.Errorf("energy history = %d", len(m.energy))
	}
}

func TestKeyMap(t *testing.T) {
	keys := KeyMap(config.DefaultConfig().KeyBindings())

	tests := []struct {
		key  string
		want interact.Action
	}{
		{" ", interact.Pause},
		{"x", interact.ZoomIn},
		{"-", interact.ZoomOut},
		{"end", interact.Exit},
		{"q", interact.Exit},
		{"a", interact.AddBody},
	}
	for _, tt := range tests {
		if got, ok := keys[tt.key]; !ok || got != tt.want {
			t.Errorf("keys[%q] = %v, %v; want %v", tt.key, got, ok, tt.want)
		}
	}

	if _, ok := TermKey("shift"); ok {
		t.Error("shift has no terminal form")
	}
	if k, _ := TermKey("escape"); k != "esc" {
		t.Errorf("escape = %q", k)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != Themes[0].Name {
		t.Error("unknown theme should fall back to the first")
	}
	last := Themes[len(Themes)-1]
	if NextTheme(last).Name != Themes[0].Name {
		t.Error("NextTheme should wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length mismatch")
	}
}
