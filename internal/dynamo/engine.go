package dynamo

import (
	"github.com/go-logr/logr"
	"github.com/san-kum/gravbox/internal/camera"
	"github.com/san-kum/gravbox/internal/interact"
	"github.com/san-kum/gravbox/internal/physics"
)

const DefaultMinFPS = 10.0

// EngineConfig holds the per-frame tunables that are not part of the world
// or the interaction settings.
type EngineConfig struct {
	// MinFPS gates integration: frames measured below it skip the
	// velocity and position update but still refresh forces and arrows.
	MinFPS   float64
	ZoomRate float64
	MinZoom  float64
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MinFPS:   DefaultMinFPS,
		ZoomRate: camera.DefaultZoomRate,
		MinZoom:  camera.DefaultMinZoom,
	}
}

// Frame reports what one Step did.
type Frame struct {
	Input      interact.Result
	Merges     []physics.Merge
	Integrated bool
	// Err is set when integration produced a non-finite body.
	Err error
}

// Engine owns the interactive loop state.
type Engine struct {
	World      *physics.World
	Camera     camera.State
	Controller *interact.Controller
	Config     EngineConfig

	frame int
	time  float64
	log   logr.Logger
}

func NewEngine(w *physics.World, ctrl *interact.Controller, cfg EngineConfig, log logr.Logger) *Engine {
	return &Engine{
		World:      w,
		Camera:     camera.New(),
		Controller: ctrl,
		Config:     cfg,
		log:        log,
	}
}

// Time returns the simulated time integrated so far.
func (e *Engine) Time() float64 { return e.time }

// Frames returns the number of Step calls made.
func (e *Engine) Frames() int { return e.frame }

// Step advances one frame of input.
func (e *Engine) Step(in *interact.Input) Frame {
	var f Frame
	e.frame++

	f.Input = e.Controller.Apply(in, e.Camera, e.World)

	f.Merges = e.World.UpdateGravity()
	for _, m := range f.Merges {
		e.log.V(1).Info("bodies merged", "survivor", m.Survivor, "absorbed", m.Absorbed)
	}

	if !e.Controller.Paused {
		if in.FPS >= e.Config.MinFPS {
			e.World.UpdateVelAndPos(in.Dt)
			e.time += in.Dt
			f.Integrated = true
			if err := checkFinite(e.World, e.frame, e.time); err != nil {
				e.log.Error(err, "integration produced an invalid body")
				f.Err = err
			}
		} else {
			e.log.V(2).Info("integration skipped", "fps", in.FPS, "min", e.Config.MinFPS)
		}
	}

	cam, started := e.Camera.Update(camera.Controls{
		Pointer:  in.Pointer,
		PanHeld:  in.Secondary.Held,
		PanUp:    in.Secondary.Released,
		ZoomIn:   in.Held(interact.ZoomIn),
		ZoomOut:  in.Held(interact.ZoomOut),
		ZoomRate: e.Config.ZoomRate,
		MinZoom:  e.Config.MinZoom,
	}, in.Dt)
	if started {
		e.World.ClearCenter()
	}
	if b, ok := e.World.CenterBody(); ok {
		cam = cam.CenterOn(b.ID, b.Pos, in.Screen)
	} else {
		cam = cam.Release()
	}
	e.Camera = cam

	hold, _ := e.Controller.Dragging()
	e.World.RefreshArrows(e.Controller.Settings.VectorScale, hold)

	return f
}
