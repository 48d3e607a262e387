// Package gui is the raylib front end: it polls the window into
// interact.Input, steps the engine and draws the scene and HUD.
package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-logr/logr"
	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/dynamo"
	"github.com/san-kum/gravbox/internal/interact"
	"github.com/san-kum/gravbox/internal/render"
	"github.com/san-kum/gravbox/internal/vec"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColPaused  = rl.NewColor(255, 80, 80, 255)
)

type App struct {
	Engine *dynamo.Engine
	Keys   map[interact.Action]int32
	Font   rl.Font
	Title  string

	help string
	log  logr.Logger
}

func initWindow(w config.WindowConfig) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	rl.SetTargetFPS(int32(w.TargetFPS))
	rl.SetExitKey(0)
}

// loadFont prefers Liberation Mono and falls back to raylib's built-in font.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Run opens the window and blocks until the exit action fires or the
// window is closed.
func Run(cfg *config.Config, eng *dynamo.Engine, log logr.Logger) error {
	keys, err := KeyMap(cfg.KeyBindings())
	if err != nil {
		return err
	}

	initWindow(cfg.Window)
	defer rl.CloseWindow()

	app := &App{
		Engine: eng,
		Keys:   keys,
		Font:   loadFont(),
		Title:  cfg.Window.Title,
		help:   helpLine(cfg.KeyBindings()),
		log:    log,
	}
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func button(pressed, held, released bool) interact.Button {
	return interact.Button{Pressed: pressed, Held: held, Released: released}
}

// poll samples the window into one frame of input.
func (a *App) poll() *interact.Input {
	mouse := rl.GetMousePosition()
	in := &interact.Input{
		Pointer: vec.New(float64(mouse.X), float64(mouse.Y)),
		Primary: button(
			rl.IsMouseButtonPressed(rl.MouseLeftButton),
			rl.IsMouseButtonDown(rl.MouseLeftButton),
			rl.IsMouseButtonReleased(rl.MouseLeftButton),
		),
		Secondary: button(
			rl.IsMouseButtonPressed(rl.MouseRightButton),
			rl.IsMouseButtonDown(rl.MouseRightButton),
			rl.IsMouseButtonReleased(rl.MouseRightButton),
		),
		Tertiary: button(
			rl.IsMouseButtonPressed(rl.MouseMiddleButton),
			rl.IsMouseButtonDown(rl.MouseMiddleButton),
			rl.IsMouseButtonReleased(rl.MouseMiddleButton),
		),
		Dt:     float64(rl.GetFrameTime()),
		FPS:    float64(rl.GetFPS()),
		Screen: vec.New(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())),
	}
	for action, key := range a.Keys {
		in.Keys[action] = interact.Key{
			Pressed: rl.IsKeyPressed(key),
			Held:    rl.IsKeyDown(key),
		}
	}
	return in
}

// Update steps one frame. It returns false once the exit action fires.
func (a *App) Update() bool {
	f := a.Engine.Step(a.poll())
	if f.Err != nil {
		a.log.Error(f.Err, "frame failed")
	}
	return !f.Input.Quit
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	render.Scene(drawer{}, a.Engine.World.Bodies(), a.Engine.Camera, a.Engine.Controller.ShowVectors)
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	e := a.Engine
	h := rl.GetScreenHeight()
	w := rl.GetScreenWidth()

	a.drawText(a.Title, 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %d bodies  zoom %.2f", e.World.ActiveCount(), e.Camera.Zoom), 150, 34, 16, ColText)
	if e.Camera.Follow != 0 {
		a.drawText(fmt.Sprintf("following #%d", e.Camera.Follow), 30, 60, 14, ColText)
	}

	status, col := "RUNNING", ColSelect
	if e.Controller.Paused {
		status, col = "PAUSED", ColPaused
	}
	a.drawText(status, w-130, 30, 16, col)
	if e.Controller.ShowVectors {
		a.drawText("VECTORS", w-130, 50, 14, ColText)
	}

	a.drawText(a.help, 30, h-60, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS  t=%.2f", rl.GetFPS(), e.Time()), 30, h-35, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// helpLine lists the bindings as "[KEY] action" pairs.
func helpLine(bindings []config.Binding) string {
	parts := make([]string, 0, len(bindings)+2)
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("[%s] %s", strings.ToUpper(b.Key), strings.ReplaceAll(b.Action.String(), "_", " ")))
	}
	parts = append(parts, "[RMB] pan", "[LMB] edit")
	return strings.Join(parts, "  ")
}
