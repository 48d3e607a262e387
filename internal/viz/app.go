package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/dynamo"
	"github.com/san-kum/gravbox/internal/interact"
	"github.com/san-kum/gravbox/internal/render"
	"github.com/san-kum/gravbox/internal/vec"
)

const (
	frameInterval = time.Second / 60
	// holdWindow bridges the gap between key auto-repeat events.
	holdWindow      = 250 * time.Millisecond
	hudLines        = 3
	fitMargin       = 4.0
	historyCapacity = 200
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type button struct {
	down, pressed, released bool
}

func (b *button) frame() interact.Button {
	out := interact.Button{Pressed: b.pressed, Held: b.down, Released: b.released}
	b.pressed, b.released = false, false
	return out
}

// Model is the bubbletea model driving a dynamo.Engine from the terminal.
type Model struct {
	engine *dynamo.Engine
	keys   map[string]interact.Action
	theme  Theme
	st     styles
	canvas *Canvas

	width, height int
	pointer       vec.Vec2
	buttons       [3]button
	pending       map[interact.Action]bool
	lastSeen      map[interact.Action]time.Time
	armed         map[interact.Action]bool

	lastFrame time.Time
	fps       float64
	energy    []float64
	fitted    bool
	log       logr.Logger
}

func NewModel(eng *dynamo.Engine, bindings []config.Binding, theme Theme, log logr.Logger) Model {
	return Model{
		engine:   eng,
		keys:     KeyMap(bindings),
		theme:    theme,
		st:       newStyles(theme),
		pending:  make(map[interact.Action]bool),
		lastSeen: make(map[interact.Action]time.Time),
		armed:    make(map[interact.Action]bool),
		energy:   make([]float64, 0, historyCapacity),
		log:      log,
	}
}

// Run blocks until the exit action fires.
func Run(eng *dynamo.Engine, cfg *config.Config, theme Theme, log logr.Logger) error {
	p := tea.NewProgram(NewModel(eng, cfg.KeyBindings(), theme, log), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		m.handleKey(msg.String(), time.Now())
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg, time.Now())
		return m, nil
	case TickMsg:
		if m.step(time.Time(msg)) {
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	rows := max(h-hudLines, 1)
	m.canvas = NewCanvas(max(w, 1), rows)
	if !m.fitted {
		m.fit()
	}
}

// fit frames every body on the canvas.
func (m *Model) fit() {
	if m.canvas == nil {
		return
	}
	if lo, hi, ok := m.engine.World.Bounds(); ok {
		m.engine.Camera = m.engine.Camera.Fit(lo, hi, m.canvas.Size(), fitMargin)
		m.fitted = true
	}
}

func (m *Model) handleKey(key string, now time.Time) {
	a, ok := m.keys[key]
	if !ok {
		switch key {
		case "t":
			m.theme = NextTheme(m.theme)
			m.st = newStyles(m.theme)
		case "f":
			m.fit()
		}
		return
	}

	switch {
	case sticky(a):
		m.armed[a] = !m.armed[a]
		if !m.armed[a] {
			delete(m.armed, a)
		}
	case continuous(a):
		m.lastSeen[a] = now
		m.pending[a] = true
	default:
		m.pending[a] = true
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg, now time.Time) {
	m.pointer = vec.New(float64(msg.X*2+1), float64(msg.Y*4+2))

	idx := -1
	switch msg.Button {
	case tea.MouseButtonLeft:
		idx = 0
	case tea.MouseButtonRight:
		idx = 1
	case tea.MouseButtonMiddle:
		idx = 2
	case tea.MouseButtonWheelUp:
		m.lastSeen[interact.ZoomIn] = now
		return
	case tea.MouseButtonWheelDown:
		m.lastSeen[interact.ZoomOut] = now
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if idx >= 0 && !m.buttons[idx].down {
			m.buttons[idx].down = true
			m.buttons[idx].pressed = true
		}
	case tea.MouseActionRelease:
		for i := range m.buttons {
			// Some terminals report releases without a button.
			if (idx < 0 || idx == i) && m.buttons[i].down {
				m.buttons[i].down = false
				m.buttons[i].released = true
			}
		}
	}
}

// step advances one frame and reports whether the exit action fired.
func (m *Model) step(now time.Time) bool {
	if m.canvas == nil {
		return false
	}

	dt := frameInterval.Seconds()
	if !m.lastFrame.IsZero() {
		dt = now.Sub(m.lastFrame).Seconds()
	}
	m.lastFrame = now
	if dt > 0 {
		m.fps = 1 / dt
	}

	in := &interact.Input{
		Pointer:   m.pointer,
		Primary:   m.buttons[0].frame(),
		Secondary: m.buttons[1].frame(),
		Tertiary:  m.buttons[2].frame(),
		Dt:        dt,
		FPS:       m.fps,
		Screen:    m.canvas.Size(),
	}
	for a := range m.pending {
		in.Press(a)
	}
	clear(m.pending)
	for a, seen := range m.lastSeen {
		if now.Sub(seen) < holdWindow {
			in.Hold(a)
		} else {
			delete(m.lastSeen, a)
		}
	}
	for a := range m.armed {
		in.Hold(a)
	}
	if in.Primary.Pressed {
		clear(m.armed)
	}

	f := m.engine.Step(in)
	if f.Err != nil {
		m.log.Error(f.Err, "frame failed")
	}

	if len(m.energy) == historyCapacity {
		m.energy = m.energy[1:]
	}
	m.energy = append(m.energy, m.engine.World.Energy())

	return f.Input.Quit
}

func (m Model) View() string {
	if m.canvas == nil {
		return "starting..."
	}

	m.canvas.Clear()
	e := m.engine
	render.Scene(m.canvas, e.World.Bodies(), e.Camera, e.Controller.ShowVectors)

	var b strings.Builder
	b.WriteString(m.canvas.Render())
	b.WriteByte('\n')
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(m.st.label.Render("energy ") + m.st.sparkline(m.energy, max(m.width-8, 0)))
	b.WriteByte('\n')
	b.WriteString(m.hintLine())
	return b.String()
}

func (m Model) statusLine() string {
	e := m.engine
	status := m.st.running.Render("RUNNING")
	if e.Controller.Paused {
		status = m.st.paused.Render("PAUSED")
	}

	parts := []string{
		m.st.title.Render("gravbox"),
		status,
		m.st.label.Render("bodies ") + m.st.value.Render(fmt.Sprint(e.World.ActiveCount())),
		m.st.label.Render("zoom ") + m.st.value.Render(fmt.Sprintf("%.3f", e.Camera.Zoom)),
		m.st.label.Render("fps ") + m.st.value.Render(fmt.Sprintf("%.0f", m.fps)),
	}
	if e.Controller.ShowVectors {
		parts = append(parts, m.st.value.Render("vectors"))
	}
	if e.Camera.Follow != 0 {
		parts = append(parts, m.st.label.Render("following ")+m.st.value.Render(fmt.Sprintf("#%d", e.Camera.Follow)))
	}
	return strings.Join(parts, "  ")
}

func (m Model) hintLine() string {
	if len(m.armed) > 0 {
		names := make([]string, 0, len(m.armed))
		for a := range m.armed {
			names = append(names, a.String())
		}
		sort.Strings(names)
		return m.st.paused.Render("armed: " + strings.Join(names, ", ") + "  (click to apply)")
	}
	return m.st.hint.Render("click: edit/drag  right-drag: pan  wheel: zoom  t: theme  f: fit")
}
