package config

var Presets = map[string]map[string]*Config{
	"network": {
		"sparse": {
			View: "network", Count: 25, Width: DefaultWidth, Height: DefaultHeight, FPS: 60, Fade: 0.1,
		},
		"dense": {
			View: "network", Count: 2000, Width: DefaultWidth, Height: DefaultHeight, FPS: 60, Fade: 0.1,
		},
		"swarm": {
			View: "network", Count: 20000, Width: DefaultWidth, Height: DefaultHeight, FPS: 30, Fade: 0.2,
		},
	},
	"chip": {
		"board": {
			View: "chip", Count: 12, Width: DefaultWidth, Height: DefaultHeight, FPS: 60, Fade: 0.1,
		},
		"cluster": {
			View: "chip", Count: 48, Width: DefaultWidth, Height: DefaultHeight, FPS: 60, Fade: 0.05,
		},
	},
}

// GetPreset returns a copy of the named preset with ambient fields filled
// from the defaults, or nil when it does not exist.
func GetPreset(view, preset string) *Config {
	viewPresets, ok := Presets[view]
	if !ok {
		return nil
	}
	p, ok := viewPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.View, cfg.Count, cfg.Width, cfg.Height, cfg.FPS, cfg.Fade = p.View, p.Count, p.Width, p.Height, p.FPS, p.Fade
	return cfg
}

func ListPresets(view string) []string {
	viewPresets, ok := Presets[view]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(viewPresets))
	for name := range viewPresets {
		names = append(names, name)
	}
	return names
}
