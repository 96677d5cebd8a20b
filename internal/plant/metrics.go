package plant

import (
	"math"

	"github.com/san-kum/trajgen/internal/trajectory"
)

// TrackingError is the RMS distance between measured and desired position.
type TrackingError struct {
	sumSq   float64
	samples int
}

func NewTrackingError() *TrackingError {
	return &TrackingError{}
}

func (m *TrackingError) Name() string { return "tracking_rms" }

func (m *TrackingError) Observe(x State, ref trajectory.Reference, u Control, t float64) {
	m.sumSq += positionError(x, ref) * positionError(x, ref)
	m.samples++
}

func (m *TrackingError) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return math.Sqrt(m.sumSq / float64(m.samples))
}

func (m *TrackingError) Reset() {
	m.sumSq = 0
	m.samples = 0
}

// PeakError is the largest distance between measured and desired position.
type PeakError struct {
	peak float64
}

func NewPeakError() *PeakError {
	return &PeakError{}
}

func (m *PeakError) Name() string { return "tracking_peak" }

func (m *PeakError) Observe(x State, ref trajectory.Reference, u Control, t float64) {
	m.peak = math.Max(m.peak, positionError(x, ref))
}

func (m *PeakError) Value() float64 { return m.peak }
func (m *PeakError) Reset()         { m.peak = 0 }

// ControlEffort is the mean absolute control input.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{}
}

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(x State, ref trajectory.Reference, u Control, t float64) {
	for _, val := range u {
		c.sum += math.Abs(val)
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

func positionError(x State, ref trajectory.Reference) float64 {
	sum := 0.0
	for i, p := range ref.Position {
		d := p - x[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
