package plant

import (
	"fmt"

	"github.com/san-kum/trajgen/internal/trajectory"
)

// Tracker is a per-axis PID on the position error with a velocity error
// derivative term and mass-scaled acceleration feed-forward.
type Tracker struct {
	Dim  int
	Kp   float64
	Ki   float64
	Kd   float64
	Mass float64

	integral State
	prevT    float64
	first    bool
}

func NewTracker(dim int, kp, ki, kd float64) *Tracker {
	return &Tracker{
		Dim:      dim,
		Kp:       kp,
		Ki:       ki,
		Kd:       kd,
		Mass:     1.0,
		integral: make(State, dim),
		first:    true,
	}
}

func (p *Tracker) Compute(x State, ref trajectory.Reference, t float64) Control {
	u := make(Control, p.Dim)

	dt := 0.0
	if !p.first {
		dt = t - p.prevT
	}
	p.prevT = t
	p.first = false

	for i := range u {
		err := ref.Position[i] - x[i]
		errVel := ref.Velocity[i] - x[p.Dim+i]
		if dt > 0 {
			p.integral[i] += err * dt
		}
		u[i] = p.Mass*ref.Acceleration[i] + p.Kp*err + p.Ki*p.integral[i] + p.Kd*errVel
	}
	return u
}

// Reset clears integral state
func (p *Tracker) Reset() {
	for i := range p.integral {
		p.integral[i] = 0
	}
	p.prevT = 0
	p.first = true
}

// GetParams returns tunable parameters for live adjustment
func (p *Tracker) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":   p.Kp,
		"Ki":   p.Ki,
		"Kd":   p.Kd,
		"Mass": p.Mass,
	}
}

// SetParam adjusts a tracker parameter
func (p *Tracker) SetParam(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%w: %s must be >= 0, got %f", ErrParameterBounds, name, value)
	}
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	case "Mass":
		p.Mass = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParameter, name)
	}
	return nil
}
