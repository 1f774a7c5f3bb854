package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/atomic"
)

const (
	handleArmed int32 = iota
	handleFired
	handleCancelled
)

// Loop is a real-time Scheduler whose callbacks all run on one serial worker.
// Work posted with Do and timer callbacks share the same queue, so code that
// only ever runs on the loop needs no locking.
type Loop struct {
	pool pond.Pool
}

// NewLoop starts a loop. The loop stops accepting work once ctx is done.
func NewLoop(ctx context.Context) *Loop {
	return &Loop{
		pool: pond.NewPool(1, pond.WithContext(ctx)),
	}
}

// Do posts fn to the loop and returns immediately.
func (l *Loop) Do(fn func()) error {
	err := l.pool.Go(fn)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoopStopped, err)
	}

	return nil
}

// Run posts fn to the loop and blocks until it has run.
func (l *Loop) Run(fn func()) error {
	if l.pool.Stopped() {
		return ErrLoopStopped
	}

	err := l.pool.Submit(fn).Wait()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoopStopped, err)
	}

	return nil
}

// Stop waits for queued work to drain and stops the loop. Timers that fire
// afterwards are dropped.
func (l *Loop) Stop() {
	l.pool.StopAndWait()
}

// Now returns the wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Schedule arms fn to run on the loop after delay.
func (l *Loop) Schedule(delay time.Duration, fn func()) Handle { //nolint:ireturn
	handle := &loopHandle{state: atomic.NewInt32(handleArmed)}

	handle.timer = time.AfterFunc(delay, func() {
		// The timer may have fired while Cancel was racing it; the state
		// check on the loop is what decides.
		if handle.state.Load() != handleArmed {
			return
		}

		err := l.pool.Go(func() {
			if !handle.state.CompareAndSwap(handleArmed, handleFired) {
				return
			}

			fn()
		})
		if err != nil {
			slog.Debug("scheduler loop stopped, dropping timer callback", "error", err)
		}
	})

	return handle
}

type loopHandle struct {
	state *atomic.Int32
	timer *time.Timer
}

func (h *loopHandle) Cancel() bool {
	if !h.state.CompareAndSwap(handleArmed, handleCancelled) {
		return false
	}

	h.timer.Stop()

	return true
}
