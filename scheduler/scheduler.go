// Package scheduler provides the deferred-callback capability used by transition
// controllers. A Scheduler arms one-shot callbacks and hands back a cancellable
// Handle; implementations guarantee that a cancelled callback never runs.
//
// Two implementations are provided:
//   - Loop: a real-time scheduler that runs every callback on a single serial
//     worker, the way a UI event loop does.
//   - Virtual: a manually advanced clock for deterministic tests.
package scheduler

import (
	"errors"
	"time"
)

// ErrLoopStopped is returned when work is posted to a stopped Loop.
var ErrLoopStopped = errors.New("scheduler loop is stopped")

// Scheduler arms one-shot callbacks.
type Scheduler interface {
	// Schedule arranges for fn to run once after delay. A delay <= 0 still
	// defers fn; it never runs synchronously inside Schedule.
	Schedule(delay time.Duration, fn func()) Handle

	// Now returns the scheduler's notion of the current time.
	Now() time.Time
}

// Handle identifies a single armed callback.
type Handle interface {
	// Cancel prevents the callback from running. It returns true if the
	// callback had not run yet and never will; false if it already ran or
	// was already cancelled.
	Cancel() bool
}
