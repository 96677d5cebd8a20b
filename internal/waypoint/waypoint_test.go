package waypoint

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
)

func TestWaypointConstructors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	ones := Vector{1, 1, 1}

	empty := New()
	assert.Equal(t, 0, empty.Dimension())
	assert.Equal(t, KindNone, empty.Kind())
	assert.False(t, empty.HasTime())
	assert.Equal(t, TimeUnset, empty.Time())

	w := NewVector(ones)
	assert.True(t, w.Get(false).Equal(ones))
	assert.Equal(t, KindVector, w.Kind())

	wt, err := NewVectorAt(ones, 0.0)
	require.NoError(t, err)
	assert.True(t, wt.HasTime())
	assert.Equal(t, 0.0, wt.Time())

	_, err = NewVectorAt(ones, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWaypointRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	coords := Vector{0.5, -2, 7}
	var w Waypoint
	require.NoError(t, w.SetAt(PlainVector(coords), 1.5))

	assert.Equal(t, coords, w.Get(false))
	assert.Equal(t, Vector{1.5, 0.5, -2, 7}, w.Get(true))

	got := w.Get(false)
	got[0] = 99
	assert.Equal(t, 0.5, w.Get(false)[0], "Get must not alias internal storage")

	coords[1] = 42
	assert.Equal(t, -2.0, w.Get(false)[1], "Set must copy caller's slice")

	untimed := NewVector(Vector{3, 4})
	assert.Equal(t, Vector{TimeUnset, 3, 4}, untimed.Get(true))
	assert.Equal(t, untimed.Time(), untimed.Get(true)[0])
}

func TestWaypointDimensionCheck(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	zeros := Vector{0, 0, 0}
	ones := Vector{1, 1, 1}
	twos := Vector{2, 2}

	var w Waypoint
	assert.NoError(t, w.Set(PlainVector(zeros)))

	w0, _ := NewVectorAt(zeros, 0.0)
	assert.NoError(t, w0.Set(PlainVector(ones)))

	w1, _ := NewVectorAt(ones, 0.5)
	err := w1.SetAt(PlainVector(twos), 3.0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	var dimErr *DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 3, dimErr.Want)
	assert.Equal(t, 2, dimErr.Got)

	assert.Equal(t, ones, w1.Get(false), "rejected set must keep coordinates")
	assert.Equal(t, 0.5, w1.Time(), "rejected set must keep time")
}

func TestWaypointTypeImmutable(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	w := FromPayload(Wrench{Force: [3]float64{1, 2, 3}})
	assert.Equal(t, KindWrench, w.Kind())
	assert.Equal(t, 6, w.Dimension())

	err := w.Set(PlainVector{1, 2, 3, 4, 5, 6})
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Equal(t, KindWrench, w.Kind())
	assert.Equal(t, Vector{1, 2, 3, 0, 0, 0}, w.Get(false))

	assert.NoError(t, w.Set(Wrench{Torque: [3]float64{4, 5, 6}}))
	assert.Equal(t, Vector{0, 0, 0, 4, 5, 6}, w.Get(false))
}

func TestWaypointSetRejectsNegativeTime(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	w, err := NewVectorAt(Vector{1}, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, w.SetTime(-0.1), ErrInvalidArgument)
	assert.Equal(t, 2.0, w.Time())

	assert.ErrorIs(t, w.SetAt(PlainVector{5}, -3), ErrInvalidArgument)
	assert.Equal(t, Vector{1}, w.Get(false), "invalid time must not leak a partial write")

	assert.NoError(t, w.SetTime(0))
	assert.Equal(t, 0.0, w.Time())
}

func TestWaypointRotation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	q := quat.Number{Real: 0, Imag: 1}
	pose := FromPayload(Pose{Position: [3]float64{1, 2, 3}, Orientation: q})
	assert.True(t, pose.HasRotation())
	assert.Equal(t, 7, pose.Dimension())
	assert.Equal(t, Vector{1, 2, 3, 0, 1, 0, 0}, pose.Get(false))

	r, err := pose.Rotation()
	require.NoError(t, err)
	assert.Equal(t, q, r)

	plain := NewVector(Vector{1, 2, 3})
	assert.False(t, plain.HasRotation())
	r, err = plain.Rotation()
	assert.ErrorIs(t, err, ErrNoOrientation)
	assert.Equal(t, Identity, r)
}

func TestWaypointPayloadRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	payloads := []Payload{
		PlainVector{1, 2},
		Pose{Position: [3]float64{1, 2, 3}, Orientation: Identity},
		Orientation{Rotation: quat.Number{Jmag: 1}},
		Wrench{Force: [3]float64{1, 0, 0}, Torque: [3]float64{0, 0, 1}},
		Frame{Position: [3]float64{4, 5, 6}, Orientation: Identity},
	}
	for _, p := range payloads {
		t.Run(p.Kind().String(), func(t *testing.T) {
			w := FromPayload(p)
			back := FromPayload(w.Payload())
			assert.True(t, w.Equal(back))
			assert.Equal(t, p.Kind(), back.Kind())
		})
	}

	_, err := PayloadOf(KindPose, Vector{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestWaypointFrameKeepsName(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	w := FromPayload(Frame{Name: "base", Position: [3]float64{1, 2, 3}, Orientation: Identity})
	f, ok := w.Payload().(Frame)
	require.True(t, ok)
	assert.Equal(t, "base", f.Name)
	assert.Equal(t, "base", w.Clone().Payload().(Frame).Name)

	require.NoError(t, w.Set(Frame{Position: [3]float64{0, 0, 0}, Orientation: Identity}))
	assert.Equal(t, "", w.Payload().(Frame).Name)
}

func TestVectorLengthMismatch(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{1, 2}

	assert.Panics(t, func() { a.Add(b) })
	assert.Panics(t, func() { a.Sub(b) })
	assert.Panics(t, func() { b.Sub(a) })
	assert.Equal(t, Vector{2, 4, 6}, a.Add(a))
	assert.Equal(t, Vector{0, 0, 0}, a.Sub(a))
}

func TestWaypointArithmetic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	zeros, _ := NewVectorAt(Vector{0, 0, 0}, 0)
	a, _ := NewVectorAt(Vector{1, 1, 1}, 0)
	b, _ := NewVectorAt(Vector{2, 2, 2}, 0)
	c, _ := NewVectorAt(Vector{3, 3, 3}, 0)

	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(zeros))

	sum, err := a.Add(a)
	require.NoError(t, err)
	assert.True(t, sum.Equal(b))

	diff, err := c.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Equal(a))

	assert.True(t, a.Scale(2.0).Equal(b))

	half, err := b.Div(2.0)
	require.NoError(t, err)
	assert.True(t, half.Equal(a))
}

func TestWaypointArithmeticErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	a := NewVector(Vector{1, 1, 1})
	short := NewVector(Vector{1, 1})

	tests := []struct {
		name string
		op   func() (Waypoint, error)
		want error
	}{
		{"add mismatch", func() (Waypoint, error) { return a.Add(short) }, ErrDimensionMismatch},
		{"sub mismatch", func() (Waypoint, error) { return a.Sub(short) }, ErrDimensionMismatch},
		{"div zero", func() (Waypoint, error) { return a.Div(0) }, ErrInvalidArgument},
		{"div negative", func() (Waypoint, error) { return a.Div(-2) }, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := tt.op()
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, w.Dimension())
			assert.Equal(t, KindNone, w.Kind())
		})
	}
}

func TestWaypointEqualityIgnoresTimeAndRotation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	a, _ := NewVectorAt(Vector{1, 2}, 0)
	b, _ := NewVectorAt(Vector{1, 2}, 9)
	assert.True(t, a.Equal(b))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("pose")
	require.NoError(t, err)
	assert.Equal(t, KindPose, k)

	_, err = ParseKind("spline")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
