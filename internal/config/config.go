package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravbox/internal/camera"
	"github.com/san-kum/gravbox/internal/dynamo"
	"github.com/san-kum/gravbox/internal/interact"
	"github.com/san-kum/gravbox/internal/physics"
	"github.com/san-kum/gravbox/internal/vec"
)

const (
	DefaultWidth        = 1280
	DefaultHeight       = 800
	DefaultTargetFPS    = 60
	DefaultScenario     = "solar"
	DefaultDt           = 0.001
	DefaultDuration     = 10.0
	DefaultSampleEvery  = 10
	DefaultEscapeRadius = 5000.0
)

var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Window   WindowConfig      `yaml:"window"`
	Physics  PhysicsConfig     `yaml:"physics"`
	Camera   CameraConfig      `yaml:"camera"`
	Vectors  VectorConfig      `yaml:"vectors"`
	Keys     map[string]string `yaml:"keys"`
	Scenario string            `yaml:"scenario"`
	// Bodies replaces the scenario when non-empty.
	Bodies []BodySpec `yaml:"bodies,omitempty"`
	Run    RunConfig  `yaml:"run"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
}

type PhysicsConfig struct {
	G             float64 `yaml:"g"`
	MinFPS        float64 `yaml:"min_fps"`
	NewBodyMass   float64 `yaml:"new_body_mass"`
	NewBodyRadius float64 `yaml:"new_body_radius"`
	NewBodyColor  string  `yaml:"new_body_color"`
	MassIncrement float64 `yaml:"mass_increment"`
}

type CameraConfig struct {
	ZoomRate float64 `yaml:"zoom_rate"`
	MinZoom  float64 `yaml:"min_zoom"`
}

type VectorConfig struct {
	Scale      float64 `yaml:"scale"`
	PickRadius float64 `yaml:"pick_radius"`
	Show       bool    `yaml:"show"`
}

// RunConfig controls headless runs.
type RunConfig struct {
	Dt           float64 `yaml:"dt"`
	Duration     float64 `yaml:"duration"`
	SampleEvery  int     `yaml:"sample_every"`
	EscapeRadius float64 `yaml:"escape_radius"`
}

type BodySpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"`
	Center bool    `yaml:"center,omitempty"`
}

// DefaultKeys binds every action to a key name understood by both front
// ends.
func DefaultKeys() map[string]string {
	return map[string]string{
		interact.ZoomIn.String():        "x",
		interact.ZoomOut.String():       "shift",
		interact.Pause.String():         "space",
		interact.Exit.String():          "end",
		interact.AddBody.String():       "a",
		interact.DeleteBody.String():    "d",
		interact.AddMass.String():       "m",
		interact.ToggleVectors.String(): "v",
		interact.ToggleCenter.String():  "c",
	}
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Title:     "gravbox",
			TargetFPS: DefaultTargetFPS,
		},
		Physics: PhysicsConfig{
			G:             physics.DefaultG,
			MinFPS:        dynamo.DefaultMinFPS,
			NewBodyMass:   physics.DefaultNewBodyMass,
			NewBodyRadius: physics.DefaultNewBodyRadius,
			NewBodyColor:  "#ffffff",
			MassIncrement: physics.DefaultMassIncrement,
		},
		Camera: CameraConfig{
			ZoomRate: camera.DefaultZoomRate,
			MinZoom:  camera.DefaultMinZoom,
		},
		Vectors: VectorConfig{
			Scale:      interact.DefaultVectorScale,
			PickRadius: interact.DefaultPickRadius,
		},
		Keys:     DefaultKeys(),
		Scenario: DefaultScenario,
		Run: RunConfig{
			Dt:           DefaultDt,
			Duration:     DefaultDuration,
			SampleEvery:  DefaultSampleEvery,
			EscapeRadius: DefaultEscapeRadius,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	// A partial keys section only overrides the actions it names.
	keys := DefaultKeys()
	for k, v := range cfg.Keys {
		keys[k] = v
	}
	cfg.Keys = keys

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Physics.G >= 0, "g must not be negative, got %f", c.Physics.G)
	check(c.Physics.NewBodyMass > 0, "new_body_mass must be positive, got %f", c.Physics.NewBodyMass)
	check(c.Physics.NewBodyRadius > 0, "new_body_radius must be positive, got %f", c.Physics.NewBodyRadius)
	check(c.Camera.ZoomRate > 0, "zoom_rate must be positive, got %f", c.Camera.ZoomRate)
	check(c.Camera.MinZoom > 0, "min_zoom must be positive, got %f", c.Camera.MinZoom)
	check(c.Vectors.Scale > 0, "vectors.scale must be positive, got %f", c.Vectors.Scale)
	check(c.Run.Dt > 0, "run.dt must be positive, got %f", c.Run.Dt)
	check(c.Run.Duration > 0, "run.duration must be positive, got %f", c.Run.Duration)

	if _, err := ParseColor(c.Physics.NewBodyColor); err != nil {
		errs = append(errs, err)
	}
	for action := range c.Keys {
		if _, err := interact.ParseAction(action); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
		}
	}
	if len(c.Bodies) == 0 {
		if _, ok := Presets[c.Scenario]; !ok {
			errs = append(errs, fmt.Errorf("%w: unknown scenario %q", ErrInvalid, c.Scenario))
		}
	}
	for i, b := range c.Bodies {
		check(b.Mass > 0, "bodies[%d]: mass must be positive", i)
		check(b.Radius >= 0, "bodies[%d]: radius must not be negative", i)
		if _, err := ParseColor(b.Color); err != nil {
			errs = append(errs, fmt.Errorf("bodies[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

// ParseColor accepts "#rrggbb" hex. An empty string is white.
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return physics.DefaultBodyColor, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q: %w", ErrInvalid, s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func (c *Config) PhysicsParams() physics.Params {
	p := physics.Params{
		G:             c.Physics.G,
		NewBodyMass:   c.Physics.NewBodyMass,
		NewBodyRadius: c.Physics.NewBodyRadius,
		MassIncrement: c.Physics.MassIncrement,
	}
	p.NewBodyColor, _ = ParseColor(c.Physics.NewBodyColor)
	return p
}

func (c *Config) InteractSettings() interact.Settings {
	return interact.Settings{VectorScale: c.Vectors.Scale, PickRadius: c.Vectors.PickRadius}
}

func (c *Config) EngineConfig() dynamo.EngineConfig {
	return dynamo.EngineConfig{
		MinFPS:   c.Physics.MinFPS,
		ZoomRate: c.Camera.ZoomRate,
		MinZoom:  c.Camera.MinZoom,
	}
}

func (c *Config) RunConfig() dynamo.RunConfig {
	return dynamo.RunConfig{
		Dt:          c.Run.Dt,
		Duration:    c.Run.Duration,
		SampleEvery: c.Run.SampleEvery,
	}
}

// BuildWorld seeds a world from the explicit body list or, when it is
// empty, from the named scenario.
func (c *Config) BuildWorld() (*physics.World, error) {
	specs := c.Bodies
	if len(specs) == 0 {
		p, ok := Presets[c.Scenario]
		if !ok {
			return nil, fmt.Errorf("%w: unknown scenario %q", ErrInvalid, c.Scenario)
		}
		specs = p.Bodies
	}

	w := physics.NewWorld(c.PhysicsParams())
	for i, s := range specs {
		col, err := ParseColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("bodies[%d]: %w", i, err)
		}
		w.Spawn(physics.Body{
			Pos:    vec.New(s.X, s.Y),
			Vel:    vec.New(s.VX, s.VY),
			Mass:   s.Mass,
			Radius: s.Radius,
			Color:  col,
			Center: s.Center,
		})
	}
	return w, nil
}

// KeyBindings returns the bound actions in declaration order.
func (c *Config) KeyBindings() []Binding {
	out := make([]Binding, 0, len(c.Keys))
	for _, a := range interact.Actions() {
		if k, ok := c.Keys[a.String()]; ok {
			out = append(out, Binding{Action: a, Key: k})
		}
	}
	return out
}

type Binding struct {
	Action interact.Action
	Key    string
}
