package config

// Presets are named tunings for the playground.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"moon": {
		Physics:   PhysicsConfig{Gravity: 162, Friction: 0.998, Bounce: 0.9, RestThreshold: 10},
		Ball:      BallConfig{Radius: 25, X: 400, Y: 300},
		Area:      AreaConfig{Width: 800, Height: 600},
		CadenceHz: 60,
	},
	"bouncy": {
		Physics:   PhysicsConfig{Gravity: 980, Friction: 0.999, Bounce: 0.95, RestThreshold: 15},
		Ball:      BallConfig{Radius: 25, X: 400, Y: 300},
		Area:      AreaConfig{Width: 800, Height: 600},
		CadenceHz: 60,
	},
	"syrup": {
		Physics:   PhysicsConfig{Gravity: 980, Friction: 0.9, Bounce: 0.3, RestThreshold: 30},
		Ball:      BallConfig{Radius: 30, X: 400, Y: 300},
		Area:      AreaConfig{Width: 800, Height: 600},
		CadenceHz: 60,
	},
}

// GetPreset returns the named preset, or nil when unknown.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
