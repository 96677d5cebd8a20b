package waypoint

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Set is an ordered, dimension-consistent collection of waypoints. Indices
// are dense, 0..Len()-1, in insertion order, and times never decrease with
// the index.
//
// Every mutation validates its whole input first and rejects it as a unit: a
// batch with a single mismatched dimension changes nothing. After a successful
// mutation the flattened coordinate, time and time-prefixed buffers are
// rebuilt in the same call, so matrix views never observe stale contents.
type Set struct {
	points []Waypoint
	dim    int

	flat  []float64 // waypoint-major coordinates, Len()*dim
	times []float64 // Len()
	timed []float64 // waypoint-major [t, coords...], Len()*(dim+1)
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{}
}

// NewSetFromVectors builds a set of plain-vector waypoints, all at time 0.
func NewSetFromVectors(vs []Vector) (*Set, error) {
	s := NewSet()
	if err := s.SetVectors(vs); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSetFromTimedVectors builds a set of plain-vector waypoints at the given
// times. Both slices must have the same length.
func NewSetFromTimedVectors(vs []Vector, ts []float64) (*Set, error) {
	s := NewSet()
	if err := s.SetTimedVectors(vs, ts); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSetFromWaypoints builds a set from prepared waypoints.
func NewSetFromWaypoints(ws []Waypoint) (*Set, error) {
	s := NewSet()
	if err := s.SetWaypoints(ws); err != nil {
		return nil, err
	}
	return s, nil
}

// SetWaypoints discards the current contents and stores ws. The first
// waypoint fixes the dimension; untimed waypoints inherit the time of their
// predecessor (0 for the first).
func (s *Set) SetWaypoints(ws []Waypoint) error {
	points, err := stage(nil, ws, false)
	if err != nil {
		return err
	}
	s.commit(points)
	return nil
}

// SetVectors discards the current contents and stores vs at time 0.
func (s *Set) SetVectors(vs []Vector) error {
	ts := make([]float64, len(vs))
	return s.SetTimedVectors(vs, ts)
}

// SetTimedVectors discards the current contents and stores vs at times ts.
func (s *Set) SetTimedVectors(vs []Vector, ts []float64) error {
	if len(vs) != len(ts) {
		tracer().Errorf("%d waypoints but %d waypoint times", len(vs), len(ts))
		return fmt.Errorf("%w: %d waypoints, %d times", ErrSizeMismatch, len(vs), len(ts))
	}
	ws := make([]Waypoint, len(vs))
	for i := range vs {
		w, err := NewVectorAt(vs[i], ts[i])
		if err != nil {
			return fmt.Errorf("waypoint %d: %w", i, err)
		}
		ws[i] = w
	}
	return s.SetWaypoints(ws)
}

// Insert adds w after the last waypoint. Its time is absolute.
func (s *Set) Insert(w Waypoint) error {
	return s.InsertAll([]Waypoint{w})
}

// InsertAll adds ws after the last waypoint, in order. Times are absolute.
func (s *Set) InsertAll(ws []Waypoint) error {
	points, err := stage(s.points, ws, false)
	if err != nil {
		return err
	}
	s.commit(points)
	return nil
}

// Append adds w after the last waypoint. Its time is a delta added to the
// current last time; an untimed waypoint counts as delta 0.
func (s *Set) Append(w Waypoint) error {
	return s.AppendAll([]Waypoint{w})
}

// AppendAll appends ws in order, each time relative to its predecessor.
func (s *Set) AppendAll(ws []Waypoint) error {
	points, err := stage(s.points, ws, true)
	if err != nil {
		return err
	}
	s.commit(points)
	return nil
}

// Clear removes all waypoints.
func (s *Set) Clear() {
	s.commit(nil)
}

// stage validates ws against base and returns the combined, time-stamped
// waypoint list. base is never modified.
func stage(base, ws []Waypoint, relative bool) ([]Waypoint, error) {
	dim := 0
	last := 0.0
	if len(base) > 0 {
		dim = base[0].Dimension()
		last = base[len(base)-1].time
	} else if len(ws) > 0 {
		dim = ws[0].Dimension()
	}

	points := make([]Waypoint, len(base), len(base)+len(ws))
	copy(points, base)

	for i, w := range ws {
		if w.Dimension() == 0 {
			tracer().Errorf("waypoint %d is empty", i)
			return nil, fmt.Errorf("%w: waypoint %d is empty", ErrInvalidArgument, i)
		}
		if w.Dimension() != dim {
			tracer().Errorf("waypoint %d has dimension %d, expected %d; rejecting batch", i, w.Dimension(), dim)
			return nil, &DimensionError{Index: i, Want: dim, Got: w.Dimension()}
		}

		c := w.Clone()
		switch {
		case relative && w.timed:
			c.time = last + w.time
		case relative, !w.timed:
			c.time = last
		}
		c.timed = true
		last = c.time
		points = append(points, c)
	}
	return points, nil
}

// commit installs points and rebuilds all flattened buffers.
func (s *Set) commit(points []Waypoint) {
	s.points = points
	s.dim = 0
	s.flat, s.times, s.timed = nil, nil, nil
	if len(points) == 0 {
		return
	}

	n := len(points)
	s.dim = points[0].Dimension()
	s.flat = make([]float64, 0, n*s.dim)
	s.times = make([]float64, 0, n)
	s.timed = make([]float64, 0, n*(s.dim+1))
	for _, p := range points {
		s.flat = append(s.flat, p.coords...)
		s.times = append(s.times, p.time)
		s.timed = append(s.timed, p.time)
		s.timed = append(s.timed, p.coords...)
	}
	tracer().Debugf("rebuilt waypoint caches: n=%d dim=%d", n, s.dim)
}

// AsMatrix returns the waypoints as a matrix with one column per waypoint
// (dim x n), or one row per waypoint when rowMajor is set. With includeTimes
// the time occupies the first row (or column). The result shares storage with
// the set and must be treated as read-only; it is invalidated by the next
// mutation. An empty set yields a 0x0 matrix.
func (s *Set) AsMatrix(includeTimes, rowMajor bool) mat.Matrix {
	if len(s.points) == 0 {
		return &mat.Dense{}
	}
	cols, data := s.dim, s.flat
	if includeTimes {
		cols, data = s.dim+1, s.timed
	}
	m := mat.NewDense(len(s.points), cols, data)
	if rowMajor {
		return m
	}
	return m.T()
}

// Times returns the waypoint times in index order.
func (s *Set) Times() []float64 {
	ts := make([]float64, len(s.times))
	copy(ts, s.times)
	return ts
}

// LastTime returns the time of the last waypoint, or 0 for an empty set.
func (s *Set) LastTime() float64 {
	if len(s.times) == 0 {
		return 0
	}
	return s.times[len(s.times)-1]
}

// Dimension returns the common coordinate length, or 0 for an empty set.
func (s *Set) Dimension() int { return s.dim }

func (s *Set) Len() int      { return len(s.points) }
func (s *Set) IsEmpty() bool { return len(s.points) == 0 }

// At returns a copy of the waypoint at index i.
func (s *Set) At(i int) (Waypoint, error) {
	if err := s.checkIndex(i); err != nil {
		return New(), err
	}
	return s.points[i].Clone(), nil
}

func (s *Set) checkIndex(i int) error {
	if i < 0 || i >= len(s.points) {
		tracer().Errorf("index %d outside a set of %d waypoints", i, len(s.points))
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.points))
	}
	return nil
}

// Waypoints returns copies of all waypoints in index order.
func (s *Set) Waypoints() []Waypoint {
	ws := make([]Waypoint, len(s.points))
	for i, p := range s.points {
		ws[i] = p.Clone()
	}
	return ws
}

// Coordinates returns a copy of the coordinates at index i, read from the
// flat cache.
func (s *Set) Coordinates(i int) (Vector, error) {
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	return s.coordinates(i), nil
}

func (s *Set) coordinates(i int) Vector {
	return Vector(s.flat[i*s.dim : (i+1)*s.dim]).Clone()
}

// AtTime returns the coordinates of the first waypoint whose time equals t
// exactly. A miss returns a zero vector of the set dimension and ErrNotFound.
func (s *Set) AtTime(t float64) (Vector, error) {
	for i, ti := range s.times {
		if ti == t {
			return s.coordinates(i), nil
		}
	}
	tracer().Errorf("no waypoint at t=%g among %d waypoints", t, len(s.points))
	return Zero(s.dim), fmt.Errorf("%w: t=%g", ErrNotFound, t)
}

// Clone returns a deep copy.
func (s *Set) Clone() *Set {
	c := NewSet()
	c.commit(s.Waypoints())
	return c
}
