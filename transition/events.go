package transition

import "time"

// Callbacks are the lifecycle notifications a controller delivers. Any of
// them may be nil. A started callback fires when a request is made; the
// matching finished callback fires only if that request's commit timer is
// not superseded by a later request.
type Callbacks struct {
	// OnEnter fires when a show request moves the controller to entering.
	OnEnter func()
	// OnEntered fires when the enter commit lands on entered.
	OnEntered func()
	// OnExit fires when a hide request moves the controller to exiting.
	OnExit func()
	// OnExited fires when the exit commit lands on exited.
	OnExited func()
}

func (c Callbacks) started(shouldMount bool) func() {
	if shouldMount {
		return c.OnEnter
	}

	return c.OnExit
}

func (c Callbacks) finished(shouldMount bool) func() {
	if shouldMount {
		return c.OnEntered
	}

	return c.OnExited
}

// StatusChange is delivered to listeners whenever a controller's status moves.
type StatusChange struct {
	ControllerID string
	From         Status
	To           Status
	At           time.Time
}

// StatusListener receives status changes. Listeners run synchronously on the
// goroutine that caused the change.
type StatusListener func(change StatusChange)

type listenerEntry struct {
	id uint64
	fn StatusListener
}
