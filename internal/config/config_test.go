package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/san-kum/trajgen/internal/waypoint"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Generator != "minjerk" {
		t.Errorf("expected generator minjerk, got %s", cfg.Generator)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("default config has no waypoints, expected ErrInvalidConfig, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("line")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Waypoints) != 3 {
		t.Errorf("expected 3 waypoints, got %d", len(cfg.Waypoints))
	}

	cfg.Waypoints[0].Position[0] = 42
	if Presets["line"].Waypoints[0].Position[0] != 0 {
		t.Error("preset must not be modified through a returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	expected := []string{"hover", "line", "square"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d presets, got %d", len(expected), len(names))
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected %s at %d, got %s", expected[i], i, names[i])
		}
	}
}

func TestPresetsBuild(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
			continue
		}
		set, err := cfg.BuildSet()
		if err != nil {
			t.Errorf("preset %s: %v", name, err)
			continue
		}
		if set.Len() != len(cfg.Waypoints) {
			t.Errorf("preset %s: expected %d waypoints, got %d", name, len(cfg.Waypoints), set.Len())
		}
	}
}

func TestBuildSetRelative(t *testing.T) {
	set, err := GetPreset("square").BuildSet()
	if err != nil {
		t.Fatal(err)
	}
	expected := []float64{0, 1, 2, 3, 4}
	times := set.Times()
	for i := range expected {
		if times[i] != expected[i] {
			t.Errorf("expected time %f at %d, got %f", expected[i], i, times[i])
		}
	}
}

func TestBuildSetPose(t *testing.T) {
	set, err := GetPreset("hover").BuildSet()
	if err != nil {
		t.Fatal(err)
	}
	if set.Dimension() != 7 {
		t.Errorf("expected pose dimension 7, got %d", set.Dimension())
	}
	w, err := set.At(2)
	if err != nil {
		t.Fatal(err)
	}
	if w.Kind() != waypoint.KindPose {
		t.Errorf("expected pose kind, got %s", w.Kind())
	}
	q, err := w.Rotation()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(q.Kmag-math.Sqrt2/2) > 1e-9 {
		t.Errorf("expected quarter turn about z, got %v", q)
	}
}

func TestWaypointConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		wc   WaypointConfig
	}{
		{"empty vector", WaypointConfig{}},
		{"unknown kind", WaypointConfig{Kind: "spline", Position: []float64{1}}},
		{"short pose", WaypointConfig{Kind: "pose", Position: []float64{1, 2}}},
		{"bad quaternion", WaypointConfig{Kind: "orientation", Quaternion: []float64{1, 0}}},
		{"bad rpy", WaypointConfig{Kind: "pose", RPY: []float64{0}}},
		{"short wrench", WaypointConfig{Kind: "wrench", Position: []float64{1, 2, 3}}},
		{"negative time", WaypointConfig{Time: -1, Position: []float64{1}}},
	}

	for _, tt := range tests {
		if _, err := tt.wc.Waypoint(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestValidate(t *testing.T) {
	base := GetPreset("line")
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no generator", func(c *Config) { c.Generator = "" }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"negative tolerance", func(c *Config) { c.Tolerance = -0.1 }},
		{"bad waypoint", func(c *Config) { c.Waypoints[1].Kind = "bogus" }},
	}

	for _, tt := range tests {
		cfg := base.Clone()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

func TestBuildSetKeepsTimeOrder(t *testing.T) {
	cfg := GetPreset("line")
	cfg.Waypoints[2].Time = 1
	set, err := cfg.BuildSet()
	if err != nil {
		t.Fatalf("expected set with unsorted times, got %v", err)
	}
	expected := []float64{0, 2, 1}
	for i, ti := range set.Times() {
		if ti != expected[i] {
			t.Errorf("expected time %f at %d, got %f", expected[i], i, ti)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("hover")
	cfg.Gains.Kp = 55

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Gains.Kp != 55 {
		t.Errorf("expected kp 55, got %f", loaded.Gains.Kp)
	}
	if len(loaded.Waypoints) != 4 || loaded.Waypoints[3].Kind != "pose" {
		t.Errorf("waypoints not restored: %+v", loaded.Waypoints)
	}
}

func TestTrackerFromGains(t *testing.T) {
	cfg := GetPreset("square")
	params := cfg.Tracker(2).GetParams()
	if params["Kp"] != 80 || params["Ki"] != 1 || params["Kd"] != 18 {
		t.Errorf("unexpected tracker gains %v", params)
	}
	if cfg.PlantConfig().Dt != cfg.Dt {
		t.Error("plant dt should follow config")
	}
}
