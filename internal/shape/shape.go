package shape

import (
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/trajgen/internal/trajectory"
	"github.com/san-kum/trajgen/internal/waypoint"
)

// tracer writes to trace with key 'trajgen.shape'
func tracer() tracing.Trace {
	return tracing.Select("trajgen.shape")
}

// DefaultTolerance is the closed-loop arrival radius.
const DefaultTolerance = 1e-3

// Shape blends consecutive waypoints with a Profile.
type Shape struct {
	name      string
	profile   Profile
	Tolerance float64
}

// New returns a shape using profile p.
func New(name string, p Profile) *Shape {
	return &Shape{name: name, profile: p, Tolerance: DefaultTolerance}
}

func NewLinear() *Shape  { return New("linear", linearProfile) }
func NewMinJerk() *Shape { return New("minjerk", minJerkProfile) }

func (s *Shape) Name() string { return s.name }

func (s *Shape) Generate(wps *waypoint.Set, t float64, desired *trajectory.Reference) (trajectory.Status, error) {
	n := wps.Len()
	if n == 0 {
		return trajectory.StatusError, trajectory.ErrNoWaypoints
	}
	ts := wps.Times()
	if !sort.Float64sAreSorted(ts) {
		tracer().P("shape", s.name).Errorf("waypoint times are not sorted: %v", ts)
		return trajectory.StatusError, fmt.Errorf("%w: %s needs non-decreasing waypoint times",
			waypoint.ErrInvalidArgument, s.name)
	}

	if t >= ts[n-1] {
		return s.hold(wps, n-1, desired)
	}
	if t <= ts[0] {
		st, err := s.hold(wps, 0, desired)
		if st == trajectory.StatusFinished {
			st = trajectory.StatusRunning
		}
		return st, err
	}

	// ts[i] <= t < ts[i+1], so the segment has positive duration
	i := sort.Search(n, func(j int) bool { return ts[j] > t }) - 1
	p0, err := wps.Coordinates(i)
	if err != nil {
		return trajectory.StatusError, err
	}
	p1, err := wps.Coordinates(i + 1)
	if err != nil {
		return trajectory.StatusError, err
	}
	dur := ts[i+1] - ts[i]
	sv, ds, dds := s.profile((t - ts[i]) / dur)

	for k := range desired.Position {
		delta := p1[k] - p0[k]
		desired.Position[k] = p0[k] + delta*sv
		desired.Velocity[k] = delta * ds / dur
		desired.Acceleration[k] = delta * dds / (dur * dur)
	}
	return trajectory.StatusRunning, nil
}

// hold writes waypoint i as a resting reference and reports
// StatusFinished.
func (s *Shape) hold(wps *waypoint.Set, i int, desired *trajectory.Reference) (trajectory.Status, error) {
	p, err := wps.Coordinates(i)
	if err != nil {
		return trajectory.StatusError, err
	}
	copy(desired.Position, p)
	return trajectory.StatusFinished, nil
}

// GenerateClosedLoop follows the open-loop reference but holds the final
// waypoint, reporting StatusRunning, until the measured position is within
// Tolerance of it.
func (s *Shape) GenerateClosedLoop(wps *waypoint.Set, t float64, current trajectory.Reference, desired *trajectory.Reference) (trajectory.Status, error) {
	st, err := s.Generate(wps, t, desired)
	if st != trajectory.StatusFinished || len(current.Position) == 0 {
		return st, err
	}
	if d := distance(current.Position, desired.Position); d > s.Tolerance {
		tracer().P("shape", s.name).Debugf("holding final waypoint, %.4g from target", d)
		return trajectory.StatusRunning, nil
	}
	return st, err
}

func distance(a, b waypoint.Vector) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
