package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/amp-labs/amp-transition/transition"
	"github.com/stretchr/testify/assert"
)

func TestFormatStyle(t *testing.T) {
	t.Parallel()

	style := transition.Style{
		"opacity":                    "1",
		"transition-duration":        "250ms",
		"transition-timing-function": "ease",
	}

	assert.Equal(t, "opacity=1 transition-duration=250ms transition-timing-function=ease", formatStyle(style))
	assert.Empty(t, formatStyle(transition.Style{}))
}

func TestTermPainter(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	var buf bytes.Buffer

	painter := newTermPainter(&buf, clock)

	now = now.Add(250 * time.Millisecond)
	painter.Paint("drawer", transition.StatusEntered, transition.Style{"opacity": "1"})
	painter.Clear("drawer")

	assert.Equal(t,
		"[   250ms] drawer   entered   opacity=1\n"+
			"[   250ms] drawer   exited    (removed)\n",
		buf.String())
}
