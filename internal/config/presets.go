package config

import "sort"

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"single": {
		Title: DefaultTitle, Width: DefaultWidth, Height: DefaultHeight, FPS: DefaultFPS, Backend: DefaultBackend,
		Pendulums: []PendulumConfig{
			{X: 400, Y: 40, Length: 300},
		},
	},
	"cradle": {
		Title: DefaultTitle, Width: DefaultWidth, Height: DefaultHeight, FPS: DefaultFPS, Backend: DefaultBackend,
		Pendulums: []PendulumConfig{
			{X: 160, Y: 20, Length: 260},
			{X: 280, Y: 20, Length: 280},
			{X: 400, Y: 20, Length: 300},
			{X: 520, Y: 20, Length: 320},
			{X: 640, Y: 20, Length: 340},
		},
	},
	"nested": {
		Title: DefaultTitle, Width: DefaultWidth, Height: DefaultHeight, FPS: DefaultFPS, Backend: DefaultBackend,
		Pendulums: []PendulumConfig{
			{X: 400, Y: 0, Length: 120},
			{X: 400, Y: 0, Length: 240},
			{X: 400, Y: 0, Length: 360},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
