package trajectory

import "fmt"

// Status is the outcome of an evaluation or query.
type Status int

const (
	StatusError Status = iota - 1
	StatusWarning
	StatusOK
	StatusStart
	StatusRunning
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusWarning:
		return "warning"
	case StatusOK:
		return "ok"
	case StatusStart:
		return "start"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Failed reports whether s is StatusError.
func (s Status) Failed() bool { return s == StatusError }

// inFlight reports whether s describes a trajectory that is still being
// followed.
func (s Status) inFlight() bool {
	return s == StatusOK || s == StatusStart || s == StatusRunning
}
