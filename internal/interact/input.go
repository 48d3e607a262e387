package interact

import (
	"fmt"

	"github.com/san-kum/gravbox/internal/vec"
)

// Action is a bindable key action.
type Action int

const (
	ZoomIn Action = iota
	ZoomOut
	Pause
	Exit
	AddBody
	DeleteBody
	AddMass
	ToggleVectors
	ToggleCenter
	numActions
)

var actionNames = [numActions]string{
	ZoomIn:        "zoom_in",
	ZoomOut:       "zoom_out",
	Pause:         "pause",
	Exit:          "exit",
	AddBody:       "add_body",
	DeleteBody:    "delete_body",
	AddMass:       "add_mass",
	ToggleVectors: "toggle_vectors",
	ToggleCenter:  "toggle_center",
}

// Actions lists every action in declaration order.
func Actions() []Action {
	out := make([]Action, numActions)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

func (a Action) String() string {
	if a < 0 || a >= numActions {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction maps a config name such as "zoom_in" to its Action.
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action: %s", name)
}

// Button is the per-frame state of a pointer button.
type Button struct {
	Pressed  bool
	Held     bool
	Released bool
}

// Key is the per-frame state of a bound action key.
type Key struct {
	Pressed bool
	Held    bool
}

// Input is everything the core reads from the presentation layer in one
// frame. Pointer and Screen are in screen pixels.
type Input struct {
	Pointer   vec.Vec2
	Primary   Button
	Secondary Button
	Tertiary  Button
	Keys      [numActions]Key
	Dt        float64
	FPS       float64
	Screen    vec.Vec2
}

func (in *Input) Pressed(a Action) bool { return in.Keys[a].Pressed }
func (in *Input) Held(a Action) bool    { return in.Keys[a].Held }

// Press marks a as pressed and held this frame.
func (in *Input) Press(a Action) {
	in.Keys[a] = Key{Pressed: true, Held: true}
}

// Hold marks a as held without a fresh press.
func (in *Input) Hold(a Action) {
	in.Keys[a].Held = true
}
