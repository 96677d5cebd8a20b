package config

import "sort"

var Presets = map[string]*Config{
	"line": {
		Generator: "minjerk", Dt: 0.01, Duration: 6.0, Tolerance: 1e-2,
		Gains: GainConfig{Kp: 100, Kd: 20},
		Waypoints: []WaypointConfig{
			{Time: 0, Position: []float64{0, 0, 0}},
			{Time: 2, Position: []float64{1, 0, 0}},
			{Time: 4, Position: []float64{1, 1, 0}},
		},
	},
	"square": {
		Generator: "linear", Dt: 0.01, Duration: 8.0, Tolerance: 2e-2, Relative: true,
		Gains: GainConfig{Kp: 80, Ki: 1, Kd: 18},
		Waypoints: []WaypointConfig{
			{Time: 0, Position: []float64{0, 0}},
			{Time: 1, Position: []float64{1, 0}},
			{Time: 1, Position: []float64{1, 1}},
			{Time: 1, Position: []float64{0, 1}},
			{Time: 1, Position: []float64{0, 0}},
		},
	},
	"hover": {
		Generator: "minjerk", Dt: 0.005, Duration: 10.0, Tolerance: 1e-2,
		Gains: GainConfig{Kp: 120, Kd: 22},
		Waypoints: []WaypointConfig{
			{Time: 0, Kind: "pose", Position: []float64{0, 0, 0}},
			{Time: 2, Kind: "pose", Position: []float64{0, 0, 1.5}, RPY: []float64{0, 0, 0}},
			{Time: 5, Kind: "pose", Position: []float64{0, 0, 1.5}, RPY: []float64{0, 0, 1.5707963267948966}},
			{Time: 7, Kind: "pose", Position: []float64{0, 0, 0}, RPY: []float64{0, 0, 1.5707963267948966}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
