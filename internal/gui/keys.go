package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/interact"
)

var namedKeys = map[string]int32{
	"space":     rl.KeySpace,
	"enter":     rl.KeyEnter,
	"escape":    rl.KeyEscape,
	"tab":       rl.KeyTab,
	"backspace": rl.KeyBackspace,
	"insert":    rl.KeyInsert,
	"delete":    rl.KeyDelete,
	"home":      rl.KeyHome,
	"end":       rl.KeyEnd,
	"pageup":    rl.KeyPageUp,
	"pagedown":  rl.KeyPageDown,
	"up":        rl.KeyUp,
	"down":      rl.KeyDown,
	"left":      rl.KeyLeft,
	"right":     rl.KeyRight,
	"shift":     rl.KeyLeftShift,
	"rshift":    rl.KeyRightShift,
	"ctrl":      rl.KeyLeftControl,
	"rctrl":     rl.KeyRightControl,
	"alt":       rl.KeyLeftAlt,
	"ralt":      rl.KeyRightAlt,
	"minus":     rl.KeyMinus,
	"equal":     rl.KeyEqual,
}

// KeyCode resolves a config key name to a raylib key. Single letters and
// digits map to themselves.
func KeyCode(name string) (int32, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := namedKeys[name]; ok {
		return k, nil
	}
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return rl.KeyA + int32(c-'a'), nil
		case c >= '0' && c <= '9':
			return rl.KeyZero + int32(c-'0'), nil
		}
	}
	return 0, fmt.Errorf("gui: unknown key %q", name)
}

// KeyMap resolves every binding. Actions without a binding stay unbound.
func KeyMap(bindings []config.Binding) (map[interact.Action]int32, error) {
	keys := make(map[interact.Action]int32, len(bindings))
	for _, b := range bindings {
		k, err := KeyCode(b.Key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Action, err)
		}
		keys[b.Action] = k
	}
	return keys, nil
}
