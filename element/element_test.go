package element

import (
	"testing"
	"time"

	"github.com/amp-labs/amp-transition/motion"
	"github.com/amp-labs/amp-transition/scheduler"
	"github.com/amp-labs/amp-transition/transition"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fade = transition.Definition{
	Property: "opacity",
	In:       transition.Style{"opacity": "1"},
	Out:      transition.Style{"opacity": "0"},
}

type frame struct {
	status transition.Status
	style  transition.Style
}

// recorder is a Painter that keeps every call.
type recorder struct {
	frames  []frame
	cleared int
}

func (r *recorder) Paint(_ string, status transition.Status, style transition.Style) {
	r.frames = append(r.frames, frame{status: status, style: style})
}

func (r *recorder) Clear(string) {
	r.cleared++
}

func (r *recorder) last(t *testing.T) frame {
	t.Helper()
	require.NotEmpty(t, r.frames)

	return r.frames[len(r.frames)-1]
}

func newTestElement(t *testing.T, mounted bool, opts ...Option) (*Element, *recorder, *scheduler.Virtual) {
	t.Helper()

	clock := scheduler.NewVirtual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	painter := &recorder{}

	opts = append([]Option{
		WithDefinition(fade),
		WithDuration(200 * time.Millisecond),
		WithControllerOptions(transition.WithLogger(transition.NewSlogLogger(slogt.New(t)))),
	}, opts...)

	elem := New(t.Context(), "drawer", mounted, clock, painter, opts...)
	t.Cleanup(func() { _ = elem.Close() })

	return elem, painter, clock
}

func TestNewPaintsOnlyWhenVisible(t *testing.T) {
	t.Parallel()

	_, hidden, _ := newTestElement(t, false)
	assert.Empty(t, hidden.frames)

	_, shown, _ := newTestElement(t, true)
	require.Len(t, shown.frames, 1)
	assert.Equal(t, transition.StatusEntered, shown.frames[0].status)
	assert.Equal(t, "1", shown.frames[0].style["opacity"])
}

func TestShowThenHide(t *testing.T) {
	t.Parallel()

	elem, painter, clock := newTestElement(t, false)

	require.True(t, elem.Update(t.Context(), true))
	assert.Equal(t, transition.StatusEntering, painter.last(t).status)
	assert.Equal(t, "200ms", painter.last(t).style[transition.PropertyTransitionDuration])
	assert.Equal(t, "ease", painter.last(t).style[transition.PropertyTransitionTimingFunction])

	clock.Advance(200 * time.Millisecond)
	assert.Equal(t, transition.StatusEntered, painter.last(t).status)

	require.True(t, elem.Update(t.Context(), false))
	assert.Equal(t, transition.StatusExiting, painter.last(t).status)
	assert.Equal(t, "0", painter.last(t).style["opacity"])
	assert.Zero(t, painter.cleared)

	clock.Advance(200 * time.Millisecond)
	assert.Equal(t, transition.StatusExited, elem.Status())
	assert.Equal(t, 1, painter.cleared)
	assert.Len(t, painter.frames, 3)
}

func TestUpdateIgnoresUnchangedInput(t *testing.T) {
	t.Parallel()

	elem, painter, clock := newTestElement(t, true)

	assert.False(t, elem.Update(t.Context(), true))
	assert.False(t, elem.Controller().Pending())
	assert.Zero(t, clock.Pending())
	assert.Len(t, painter.frames, 1)
}

func TestRapidToggleSettlesOnLastRequest(t *testing.T) {
	t.Parallel()

	elem, painter, clock := newTestElement(t, false)

	elem.Update(t.Context(), true)
	clock.Advance(50 * time.Millisecond)
	elem.Update(t.Context(), false)
	clock.Advance(50 * time.Millisecond)
	elem.Update(t.Context(), true)

	clock.Advance(time.Second)

	assert.Equal(t, transition.StatusEntered, elem.Status())
	assert.Zero(t, painter.cleared)

	statuses := make([]transition.Status, 0, len(painter.frames))
	for _, f := range painter.frames {
		statuses = append(statuses, f.status)
	}

	assert.Equal(t, []transition.Status{
		transition.StatusEntering,
		transition.StatusExiting,
		transition.StatusEntering,
		transition.StatusEntered,
	}, statuses)
}

func TestReducedMotionZeroesPaintedDuration(t *testing.T) {
	t.Parallel()

	pref := motion.NewToggle(true)
	elem, painter, clock := newTestElement(t, false, WithPreference(pref))

	elem.Update(t.Context(), true)
	assert.Equal(t, "0ms", painter.last(t).style[transition.PropertyTransitionDuration])

	clock.Advance(199 * time.Millisecond)
	assert.Equal(t, transition.StatusEntering, elem.Status(), "commit still waits for the full duration")

	clock.Advance(time.Millisecond)
	assert.Equal(t, transition.StatusEntered, elem.Status())

	pref.Set(false)
	elem.Update(t.Context(), false)
	assert.Equal(t, "200ms", painter.last(t).style[transition.PropertyTransitionDuration])
}

func TestInitialPaintHonoursReducedMotion(t *testing.T) {
	t.Parallel()

	_, painter, _ := newTestElement(t, true, WithPreference(motion.Static(true)))

	require.Len(t, painter.frames, 1)
	assert.Equal(t, "0ms", painter.last(t).style[transition.PropertyTransitionDuration])
}

func TestSetDuration(t *testing.T) {
	t.Parallel()

	elem, painter, clock := newTestElement(t, true)

	elem.SetDuration(400 * time.Millisecond)
	assert.Equal(t, 400*time.Millisecond, elem.Duration())
	assert.Equal(t, "400ms", painter.last(t).style[transition.PropertyTransitionDuration])

	elem.Update(t.Context(), false)
	clock.Advance(399 * time.Millisecond)
	assert.Equal(t, transition.StatusExiting, elem.Status())

	clock.Advance(time.Millisecond)
	assert.Equal(t, transition.StatusExited, elem.Status())

	elem.SetDuration(-time.Second)
	assert.Zero(t, elem.Duration())
	assert.Equal(t, 1, painter.cleared, "an exited element is not repainted")
}

func TestCustomTimingFunction(t *testing.T) {
	t.Parallel()

	elem, painter, _ := newTestElement(t, false, WithTimingFunction("linear"))

	elem.Update(t.Context(), true)
	assert.Equal(t, "linear", painter.last(t).style[transition.PropertyTransitionTimingFunction])
}

func TestCloseStopsPainting(t *testing.T) {
	t.Parallel()

	elem, painter, clock := newTestElement(t, false)

	elem.Update(t.Context(), true)
	require.NoError(t, elem.Close())

	clock.Advance(time.Second)

	assert.Len(t, painter.frames, 1)
	assert.Equal(t, transition.StatusEntering, elem.Status())
	require.NoError(t, elem.Close())
}

func TestNegativeDurationOption(t *testing.T) {
	t.Parallel()

	elem, painter, clock := newTestElement(t, false, WithDuration(-time.Second))

	elem.Update(t.Context(), true)
	assert.Equal(t, "0ms", painter.last(t).style[transition.PropertyTransitionDuration])

	clock.Advance(0)
	assert.Equal(t, transition.StatusEntered, elem.Status())
}
