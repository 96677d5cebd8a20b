package plant

import (
	"fmt"

	"github.com/san-kum/trajgen/internal/trajectory"
	"github.com/san-kum/trajgen/internal/waypoint"
)

type State = waypoint.Vector

type Control = waypoint.Vector

// System is an ODE model.
type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

// Controller turns the measured state and the current reference into a
// control input.
type Controller interface {
	Compute(x State, ref trajectory.Reference, t float64) Control
}

// Metric accumulates a figure of merit over a run.
type Metric interface {
	Name() string
	Observe(x State, ref trajectory.Reference, u Control, t float64)
	Value() float64
	Reset()
}

// Configurable parameters can be read and tuned while a loop is live.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrParameterBounds, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrParameterBounds, c.Duration)
	}
	return nil
}

type Result struct {
	Times      []float64
	States     []State
	References []trajectory.Reference
	Controls   []Control
	Statuses   []trajectory.Status
	Metrics    map[string]float64
	Finished   bool
	StepsTaken int
}

// Positions returns the position part of every recorded state.
func (r *Result) Positions() []waypoint.Vector {
	ps := make([]waypoint.Vector, len(r.States))
	for i, x := range r.States {
		ps[i] = x[:len(x)/2].Clone()
	}
	return ps
}
