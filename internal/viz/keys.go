package viz

import (
	"strings"

	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/interact"
)

var termNames = map[string]string{
	"space":    " ",
	"escape":   "esc",
	"pageup":   "pgup",
	"pagedown": "pgdown",
	"minus":    "-",
	"equal":    "=",
}

// Modifier keys are never reported on their own by a terminal.
var modifierKeys = map[string]bool{
	"shift": true, "rshift": true,
	"ctrl": true, "rctrl": true,
	"alt": true, "ralt": true,
}

// TermKey translates a config key name into the string bubbletea reports
// for that key.
func TermKey(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || modifierKeys[name] {
		return "", false
	}
	if t, ok := termNames[name]; ok {
		return t, true
	}
	return name, true
}

// fallbackKeys keep zoom and exit reachable when their bindings are
// modifier keys.
var fallbackKeys = []struct {
	key    string
	action interact.Action
}{
	{"+", interact.ZoomIn},
	{"=", interact.ZoomIn},
	{"-", interact.ZoomOut},
	{"q", interact.Exit},
	{"ctrl+c", interact.Exit},
}

// KeyMap maps terminal key strings to actions. Configured bindings win over
// the fallbacks.
func KeyMap(bindings []config.Binding) map[string]interact.Action {
	keys := make(map[string]interact.Action, len(bindings)+len(fallbackKeys))
	for _, b := range bindings {
		if k, ok := TermKey(b.Key); ok {
			keys[k] = b.Action
		}
	}
	for _, f := range fallbackKeys {
		if _, taken := keys[f.key]; !taken {
			keys[f.key] = f.action
		}
	}
	return keys
}

// sticky reports whether an action acts as a click modifier. Terminals
// cannot report a key held during a click, so these toggle on and stay
// armed until the next click.
func sticky(a interact.Action) bool {
	switch a {
	case interact.AddBody, interact.DeleteBody, interact.AddMass, interact.ToggleCenter:
		return true
	}
	return false
}

// continuous reports whether an action acts while held.
func continuous(a interact.Action) bool {
	return a == interact.ZoomIn || a == interact.ZoomOut
}
