package transition

// Status is a controller's position in the enter/exit lifecycle.
type Status string

const (
	// StatusEntered is the settled, visible state.
	StatusEntered Status = "entered"
	// StatusExited is the settled, hidden state. Nothing is rendered.
	StatusExited Status = "exited"
	// StatusEntering means a show request is waiting for its commit timer.
	StatusEntering Status = "entering"
	// StatusExiting means a hide request is waiting for its commit timer.
	StatusExiting Status = "exiting"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is one of the four known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusEntered, StatusExited, StatusEntering, StatusExiting:
		return true
	default:
		return false
	}
}

// IsSettled returns true for the terminal states, which never have a pending
// commit.
func (s Status) IsSettled() bool {
	return s == StatusEntered || s == StatusExited
}

// IsVisible returns true if the host should paint the element in this status.
func (s Status) IsVisible() bool {
	return s != StatusExited
}

// transitional returns the status a request moves to immediately.
func transitional(shouldMount bool) Status {
	if shouldMount {
		return StatusEntering
	}

	return StatusExiting
}

// settled returns the status a request commits to when its timer fires.
func settled(shouldMount bool) Status {
	if shouldMount {
		return StatusEntered
	}

	return StatusExited
}

// direction labels a request for logs, spans and metrics.
func direction(shouldMount bool) string {
	if shouldMount {
		return "enter"
	}

	return "exit"
}
