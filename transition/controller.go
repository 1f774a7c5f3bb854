// Package transition drives enter/exit transitions for an element whose
// presence is controlled by a boolean mounted flag.
//
// A Controller tracks a Status (entered, exited, entering, exiting). A
// visibility request moves it to entering or exiting at once and arms a
// commit timer; when the timer fires the controller settles on entered or
// exited. A newer request always cancels the pending commit, so only the
// most recent request ever settles.
//
// A Controller is not safe for concurrent use. All calls, and the
// scheduler's callbacks, must run on one serial queue such as a
// scheduler.Loop.
package transition

import (
	"context"
	"log/slog"
	"time"

	"github.com/amp-labs/amp-transition/scheduler"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Controller is the transition state machine for one element occurrence.
type Controller struct {
	id   string
	name string

	status        Status
	pending       scheduler.Handle
	generation    uint64
	effective     time.Duration
	reducedMotion bool
	armedAt       time.Time
	requestCtx    context.Context //nolint:containedctx // Carries the request span to the commit
	span          trace.Span
	closed        bool

	scheduler      scheduler.Scheduler
	styles         StyleFunc
	timingFunction string
	callbacks      Callbacks
	logger         Logger

	listeners    []listenerEntry
	nextListener uint64
}

// New creates a controller settled on entered if initialMounted is true,
// else exited. No timer is armed.
func New(initialMounted bool, sched scheduler.Scheduler, opts ...Option) *Controller {
	ctrl := &Controller{
		id:             uuid.NewString(),
		status:         settled(initialMounted),
		scheduler:      sched,
		styles:         MapStyles,
		timingFunction: DefaultTimingFunction,
		logger:         NewDefaultLogger(),
	}

	for _, opt := range opts {
		opt(ctrl)
	}

	activeControllers.WithLabelValues(sanitizeElement(ctrl.name)).Inc()

	return ctrl
}

// ID returns the controller's unique ID.
func (c *Controller) ID() string {
	return c.id
}

// Name returns the element name given with WithName.
func (c *Controller) Name() string {
	return c.name
}

// Status returns the current lifecycle position.
func (c *Controller) Status() Status {
	return c.status
}

// Pending reports whether a commit timer is armed.
func (c *Controller) Pending() bool {
	return c.pending != nil
}

// EffectiveDuration returns the style duration of the latest request: its
// duration, or zero if reduced motion was requested.
func (c *Controller) EffectiveDuration() time.Duration {
	return c.effective
}

// ShouldRender reports whether the host should paint the element at all.
// Only exited omits it, so exit animations play out before removal.
func (c *Controller) ShouldRender() bool {
	return c.status.IsVisible()
}

// CurrentStyle asks the style mapping for the snapshot of the current status.
// Duration is replaced by zero when the latest request asked for reduced
// motion; an empty timingFunction falls back to the controller default. It
// never returns nil.
func (c *Controller) CurrentStyle(def Definition, duration time.Duration, timingFunction string) Style {
	if c.reducedMotion {
		duration = 0
	}

	if timingFunction == "" {
		timingFunction = c.timingFunction
	}

	style := c.styles(def, duration, c.status, timingFunction)
	if style == nil {
		return Style{}
	}

	return style
}

// RequestVisibility starts a transition towards shown (shouldMount) or
// hidden. The status moves to entering or exiting immediately; any pending
// commit is cancelled; a new commit is armed for duration. Reduced motion
// zeroes the style duration but not the commit delay.
//
// Call it only when the mounted input actually changes.
func (c *Controller) RequestVisibility(ctx context.Context, shouldMount bool, duration time.Duration, reducedMotion bool) {
	if c.closed {
		slog.WarnContext(ctx, "Visibility requested on closed controller",
			"controller_id", c.id,
			"direction", direction(shouldMount),
		)

		return
	}

	if duration < 0 {
		duration = 0
	}

	effective := duration
	if reducedMotion {
		effective = 0
	}

	from := c.status
	c.effective = effective
	c.reducedMotion = reducedMotion
	c.status = transitional(shouldMount)

	if c.pending != nil {
		c.supersede(from)
	}

	element := sanitizeElement(c.name)

	spanCtx, span := startTransitionSpan(ctx, c, shouldMount, duration, effective, reducedMotion)
	c.requestCtx = context.WithoutCancel(spanCtx)
	c.span = span
	c.armedAt = c.scheduler.Now()
	c.generation++

	generation := c.generation
	c.pending = c.scheduler.Schedule(duration, func() {
		c.commit(generation, shouldMount)
	})

	requestsTotal.WithLabelValues(element, direction(shouldMount)).Inc()
	c.logger.VisibilityRequested(spanCtx, c.id, from, c.status, duration, effective)

	call(c.callbacks.started(shouldMount))
	c.notify(from, c.status)
}

// Close tears the controller down, cancelling any pending commit. It is safe
// to call more than once.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}

	c.closed = true
	hadPending := c.pending != nil

	ctx := context.Background()
	if c.requestCtx != nil {
		ctx = c.requestCtx
	}

	if hadPending {
		c.pending.Cancel()
		c.pending = nil

		endTransitionSpan(c.span, outcomeClosed, c.status)
		c.span = nil
	}

	activeControllers.WithLabelValues(sanitizeElement(c.name)).Dec()
	c.logger.ControllerClosed(ctx, c.id, c.status, hadPending)

	c.listeners = nil

	return nil
}

// Subscribe registers a listener for status changes and returns a function
// that removes it.
func (c *Controller) Subscribe(listener StatusListener) func() {
	c.nextListener++
	id := c.nextListener

	c.listeners = append(c.listeners, listenerEntry{id: id, fn: listener})

	return func() {
		for i, entry := range c.listeners {
			if entry.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)

				return
			}
		}
	}
}

// supersede cancels the pending commit of the request that held status prev.
func (c *Controller) supersede(prev Status) {
	c.pending.Cancel()
	c.pending = nil

	pendingFor := c.scheduler.Now().Sub(c.armedAt)
	supersededTotal.WithLabelValues(sanitizeElement(c.name), direction(prev == StatusEntering)).Inc()
	c.logger.TransitionSuperseded(c.requestCtx, c.id, prev, pendingFor)

	endTransitionSpan(c.span, outcomeSuperseded, prev)
	c.span = nil
}

// commit runs when the timer armed by request number generation fires.
func (c *Controller) commit(generation uint64, shouldMount bool) {
	// Stale: a later request or Close replaced this timer.
	if c.closed || generation != c.generation || c.pending == nil {
		return
	}

	from := c.status
	c.status = settled(shouldMount)
	c.pending = nil

	elapsed := c.scheduler.Now().Sub(c.armedAt)
	element := sanitizeElement(c.name)

	commitsTotal.WithLabelValues(element, c.status.String()).Inc()
	commitDelay.WithLabelValues(element, direction(shouldMount)).Observe(elapsed.Seconds())
	c.logger.TransitionCommitted(c.requestCtx, c.id, c.status, elapsed)

	endTransitionSpan(c.span, outcomeCommitted, c.status)
	c.span = nil

	// Finished goes out before listeners run, since a listener may start the
	// next request.
	call(c.callbacks.finished(shouldMount))
	c.notify(from, c.status)
}

func (c *Controller) notify(from, to Status) {
	if from == to {
		return
	}

	change := StatusChange{
		ControllerID: c.id,
		From:         from,
		To:           to,
		At:           c.scheduler.Now(),
	}

	for _, entry := range c.listeners {
		entry.fn(change)
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
