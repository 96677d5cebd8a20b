package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/trajgen/internal/geometry"
	"github.com/san-kum/trajgen/internal/plant"
	"github.com/san-kum/trajgen/internal/waypoint"
	"gonum.org/v1/gonum/num/quat"
	"gopkg.in/yaml.v3"
)

func tracer() tracing.Trace {
	return tracing.Select("trajgen.config")
}

const (
	DefaultGenerator = "minjerk"
	DefaultDt        = 0.01
	DefaultDuration  = 10.0
	DefaultTolerance = 1e-3
	DefaultKp        = 100.0
	DefaultKi        = 0.0
	DefaultKd        = 20.0
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Generator string           `yaml:"generator"`
	Dt        float64          `yaml:"dt"`
	Duration  float64          `yaml:"duration"`
	Tolerance float64          `yaml:"tolerance"`
	Relative  bool             `yaml:"relative"`
	Gains     GainConfig       `yaml:"gains"`
	Waypoints []WaypointConfig `yaml:"waypoints"`
}

type GainConfig struct {
	Kp float64 `yaml:"kp"`
	Ki float64 `yaml:"ki"`
	Kd float64 `yaml:"kd"`
}

// WaypointConfig describes one waypoint. Position holds the coordinates of a
// vector, the translation of a pose or frame, and force followed by torque
// for a wrench. Orientation comes from Quaternion [w x y z] when set,
// otherwise from RPY.
type WaypointConfig struct {
	Time       float64   `yaml:"time"`
	Kind       string    `yaml:"kind,omitempty"`
	Name       string    `yaml:"name,omitempty"`
	Position   []float64 `yaml:"position,omitempty"`
	RPY        []float64 `yaml:"rpy,omitempty"`
	Quaternion []float64 `yaml:"quaternion,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Generator: DefaultGenerator,
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		Tolerance: DefaultTolerance,
		Gains: GainConfig{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	tracer().Infof("loaded %s: generator %s, %d waypoints", path, cfg.Generator, len(cfg.Waypoints))
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
	if c.Generator == "" {
		return fmt.Errorf("%w: generator is empty", ErrInvalidConfig)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, c.Duration)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must not be negative, got %f", ErrInvalidConfig, c.Tolerance)
	}
	if len(c.Waypoints) == 0 {
		return fmt.Errorf("%w: no waypoints", ErrInvalidConfig)
	}
	for i, wc := range c.Waypoints {
		if _, err := wc.Waypoint(); err != nil {
			return fmt.Errorf("%w: waypoint %d: %v", ErrInvalidConfig, i, err)
		}
	}
	return nil
}

// BuildSet converts the configured waypoints into a set. With Relative the
// waypoint times are deltas appended to the previous time.
func (c *Config) BuildSet() (*waypoint.Set, error) {
	ws := make([]waypoint.Waypoint, 0, len(c.Waypoints))
	for i, wc := range c.Waypoints {
		w, err := wc.Waypoint()
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}
		ws = append(ws, w)
	}
	set := waypoint.NewSet()
	var err error
	if c.Relative {
		err = set.AppendAll(ws)
	} else {
		err = set.InsertAll(ws)
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

func (c *Config) GeneratorParams() map[string]float64 {
	return map[string]float64{
		"tolerance": c.Tolerance,
	}
}

func (c *Config) PlantConfig() plant.Config {
	pc := plant.DefaultConfig()
	pc.Dt = c.Dt
	pc.Duration = c.Duration
	return pc
}

// Tracker builds a tracking controller for dim axes from the configured gains.
func (c *Config) Tracker(dim int) *plant.Tracker {
	return plant.NewTracker(dim, c.Gains.Kp, c.Gains.Ki, c.Gains.Kd)
}

func (wc WaypointConfig) Waypoint() (waypoint.Waypoint, error) {
	kind := waypoint.KindVector
	if wc.Kind != "" {
		k, err := waypoint.ParseKind(wc.Kind)
		if err != nil {
			return waypoint.New(), err
		}
		kind = k
	}

	var p waypoint.Payload
	switch kind {
	case waypoint.KindVector:
		if len(wc.Position) == 0 {
			return waypoint.New(), fmt.Errorf("%w: vector waypoint without position", waypoint.ErrInvalidArgument)
		}
		p = waypoint.PlainVector(wc.Position)
	case waypoint.KindPose, waypoint.KindFrame:
		pos, err := position3(wc.Position)
		if err != nil {
			return waypoint.New(), err
		}
		q, err := wc.orientation()
		if err != nil {
			return waypoint.New(), err
		}
		if kind == waypoint.KindPose {
			p = waypoint.Pose{Position: pos, Orientation: q}
		} else {
			p = waypoint.Frame{Name: wc.Name, Position: pos, Orientation: q}
		}
	case waypoint.KindOrientation:
		q, err := wc.orientation()
		if err != nil {
			return waypoint.New(), err
		}
		p = waypoint.Orientation{Rotation: q}
	case waypoint.KindWrench:
		if len(wc.Position) != 6 {
			return waypoint.New(), &waypoint.DimensionError{Index: -1, Want: 6, Got: len(wc.Position)}
		}
		v := wc.Position
		p = waypoint.Wrench{
			Force:  [3]float64{v[0], v[1], v[2]},
			Torque: [3]float64{v[3], v[4], v[5]},
		}
	default:
		return waypoint.New(), fmt.Errorf("%w: kind %s cannot be configured", waypoint.ErrInvalidArgument, kind)
	}
	return waypoint.FromPayloadAt(p, wc.Time)
}

func (wc WaypointConfig) orientation() (quat.Number, error) {
	switch {
	case len(wc.Quaternion) == 4:
		q := wc.Quaternion
		return geometry.Normalize(quat.Number{Real: q[0], Imag: q[1], Jmag: q[2], Kmag: q[3]}), nil
	case len(wc.Quaternion) != 0:
		return waypoint.Identity, &waypoint.DimensionError{Index: -1, Want: 4, Got: len(wc.Quaternion)}
	case len(wc.RPY) == 3:
		return geometry.QuatFromRPY(wc.RPY[0], wc.RPY[1], wc.RPY[2]), nil
	case len(wc.RPY) != 0:
		return waypoint.Identity, &waypoint.DimensionError{Index: -1, Want: 3, Got: len(wc.RPY)}
	}
	return waypoint.Identity, nil
}

func position3(v []float64) ([3]float64, error) {
	if len(v) == 0 {
		return [3]float64{}, nil
	}
	if len(v) != 3 {
		return [3]float64{}, &waypoint.DimensionError{Index: -1, Want: 3, Got: len(v)}
	}
	return [3]float64{v[0], v[1], v[2]}, nil
}

func (c *Config) Clone() *Config {
	out := *c
	out.Waypoints = make([]WaypointConfig, len(c.Waypoints))
	for i, wc := range c.Waypoints {
		wc.Position = append([]float64(nil), wc.Position...)
		wc.RPY = append([]float64(nil), wc.RPY...)
		wc.Quaternion = append([]float64(nil), wc.Quaternion...)
		out.Waypoints[i] = wc
	}
	return &out
}
