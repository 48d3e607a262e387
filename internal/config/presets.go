package config

import "sort"

// Preset is a named seed scenario.
type Preset struct {
	Description string
	Bodies      []BodySpec
}

const (
	blue   = "#0000ff"
	yellow = "#ffff00"
	grey   = "#c0c0c0"
	red    = "#ff4040"
	cyan   = "#40e0ff"
)

func solar(dx float64) []BodySpec {
	return []BodySpec{
		{X: 750 + dx, Y: 400, VX: 0, VY: 150, Mass: 1, Radius: 9, Color: blue},
		{X: 400 + dx, Y: 400, Mass: 100, Radius: 35, Color: yellow},
		{X: 790 + dx, Y: 400, VX: 0, VY: 100, Mass: 0.01, Radius: 3, Color: grey},
	}
}

var Presets = map[string]Preset{
	"solar": {
		Description: "sun, planet and moon",
		Bodies:      solar(0),
	},
	"triple": {
		Description: "three solar systems side by side",
		Bodies:      append(append(solar(0), solar(1000)...), solar(-1000)...),
	},
	"collision": {
		Description: "two bodies on a collision course",
		Bodies: []BodySpec{
			{X: 600, Y: 600, VX: -160, VY: 200, Mass: 1, Radius: 30, Color: blue},
			{X: 400, Y: 400, VX: 50, VY: 0, Mass: 10, Radius: 30, Color: yellow},
		},
	},
	"binary": {
		Description: "equal-mass stars in a circular orbit",
		Bodies: []BodySpec{
			{X: 250, Y: 400, VX: 0, VY: 91.29, Mass: 50, Radius: 20, Color: red},
			{X: 550, Y: 400, VX: 0, VY: -91.29, Mass: 50, Radius: 20, Color: cyan},
		},
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
