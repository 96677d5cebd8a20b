package trajectory

import "time"

// ClockState is the phase of the evaluator's internal clock.
type ClockState int

const (
	ClockArmed ClockState = iota
	ClockRunning
	ClockFinished
)

func (c ClockState) String() string {
	switch c {
	case ClockArmed:
		return "armed"
	case ClockRunning:
		return "running"
	case ClockFinished:
		return "finished"
	}
	return "unknown"
}

// Clock measures elapsed time from the first query after arming. The start
// timestamp is only meaningful while the clock is not armed.
type Clock struct {
	now   func() time.Time
	armed bool
	start time.Time
}

// NewClock returns an armed clock reading time from now; nil selects
// time.Now, whose readings carry a monotonic component.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, armed: true}
}

// Arm makes the next Elapsed call restart the clock.
func (c *Clock) Arm() { c.armed = true }

func (c *Clock) Armed() bool { return c.armed }

// Elapsed returns the seconds since the clock started. If the clock was
// armed it starts now, returns 0 and reports started.
func (c *Clock) Elapsed() (seconds float64, started bool) {
	if c.armed {
		c.start = c.now()
		c.armed = false
		return 0, true
	}
	return c.now().Sub(c.start).Seconds(), false
}
