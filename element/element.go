// Package element hosts one transitioned element: it watches the mounted
// flag, drives a transition.Controller on changes and repaints on every
// status change.
//
// An Element is not safe for concurrent use. Create it, call its methods and
// let its scheduler fire on the same serial queue.
package element

import (
	"context"
	"time"

	"github.com/amp-labs/amp-transition/detector"
	"github.com/amp-labs/amp-transition/logger"
	"github.com/amp-labs/amp-transition/motion"
	"github.com/amp-labs/amp-transition/scheduler"
	"github.com/amp-labs/amp-transition/transition"
)

// DefaultDuration is used when WithDuration is not given.
const DefaultDuration = 250 * time.Millisecond

// Painter draws the element. Paint is called whenever the element should be
// visible, Clear once when it stops being rendered.
type Painter interface {
	Paint(name string, status transition.Status, style transition.Style)
	Clear(name string)
}

// Element binds a controller to a painter.
type Element struct {
	name       string
	definition transition.Definition
	duration   time.Duration
	timing     string
	preference motion.Preference
	painter    Painter

	ctrl        *transition.Controller
	changes     *detector.Detector[bool]
	unsubscribe func()
	painted     bool

	ctrlOpts []transition.Option
}

// Option configures an Element.
type Option func(*Element)

// WithDefinition sets the styles painted for each status.
func WithDefinition(def transition.Definition) Option {
	return func(e *Element) {
		e.definition = def
	}
}

// WithDuration sets the duration passed with every visibility request.
// Negative values are treated as zero.
func WithDuration(d time.Duration) Option {
	return func(e *Element) {
		e.duration = max(d, 0)
	}
}

// WithTimingFunction sets the timing function painted with every style.
func WithTimingFunction(timing string) Option {
	return func(e *Element) {
		e.timing = timing
	}
}

// WithPreference sets where the reduced-motion preference is read from.
func WithPreference(pref motion.Preference) Option {
	return func(e *Element) {
		if pref != nil {
			e.preference = pref
		}
	}
}

// WithControllerOptions passes options through to transition.New.
func WithControllerOptions(opts ...transition.Option) Option {
	return func(e *Element) {
		e.ctrlOpts = append(e.ctrlOpts, opts...)
	}
}

// New creates the element settled on mounted and paints it once if visible.
func New(
	ctx context.Context,
	name string,
	mounted bool,
	sched scheduler.Scheduler,
	painter Painter,
	opts ...Option,
) *Element {
	elem := &Element{
		name:       name,
		duration:   DefaultDuration,
		timing:     transition.DefaultTimingFunction,
		preference: motion.Static(false),
		painter:    painter,
		changes:    detector.New(mounted),
	}

	for _, opt := range opts {
		opt(elem)
	}

	ctrlLogger := transition.NewSlogLogger(logger.Get(logger.WithElement(ctx, name)))

	ctrlOpts := append([]transition.Option{
		transition.WithName(name),
		transition.WithTimingFunction(elem.timing),
		transition.WithReducedMotion(elem.preference.ReducedMotion()),
		transition.WithLogger(ctrlLogger),
	}, elem.ctrlOpts...)

	elem.ctrl = transition.New(mounted, sched, ctrlOpts...)
	elem.unsubscribe = elem.ctrl.Subscribe(func(transition.StatusChange) {
		elem.Render()
	})

	elem.Render()

	return elem
}

// Name returns the element name.
func (e *Element) Name() string {
	return e.name
}

// Status returns the controller's current status.
func (e *Element) Status() transition.Status {
	return e.ctrl.Status()
}

// Controller exposes the underlying controller.
func (e *Element) Controller() *transition.Controller {
	return e.ctrl
}

// Duration returns the duration sent with visibility requests.
func (e *Element) Duration() time.Duration {
	return e.duration
}

// SetDuration changes the duration for later requests and repaints, so the
// current frame shows the new value. A pending commit keeps its timer.
func (e *Element) SetDuration(d time.Duration) {
	e.duration = max(d, 0)
	e.Render()
}

// Update feeds the current mounted flag. A visibility request is made only
// if it differs from the previous value; it reports whether one was made.
func (e *Element) Update(ctx context.Context, mounted bool) bool {
	if !e.changes.Observe(mounted) {
		return false
	}

	e.ctrl.RequestVisibility(ctx, mounted, e.duration, e.preference.ReducedMotion())

	return true
}

// Render paints the style for the current status, or clears the element once
// it has exited.
func (e *Element) Render() {
	if !e.ctrl.ShouldRender() {
		if e.painted {
			e.painted = false
			e.painter.Clear(e.name)
		}

		return
	}

	e.painted = true
	e.painter.Paint(e.name, e.ctrl.Status(), e.ctrl.CurrentStyle(e.definition, e.duration, e.timing))
}

// Close stops listening and tears the controller down.
func (e *Element) Close() error {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}

	return e.ctrl.Close()
}
