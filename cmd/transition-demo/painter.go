package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/amp-labs/amp-transition/transition"
)

// termPainter prints one line per frame.
type termPainter struct {
	mut   sync.Mutex
	out   io.Writer
	start time.Time
	now   func() time.Time
}

func newTermPainter(out io.Writer, now func() time.Time) *termPainter {
	return &termPainter{out: out, start: now(), now: now}
}

func (p *termPainter) Paint(name string, status transition.Status, style transition.Style) {
	p.write(fmt.Sprintf("%-8s %-9s %s", name, status, formatStyle(style)))
}

func (p *termPainter) Clear(name string) {
	p.write(fmt.Sprintf("%-8s %-9s (removed)", name, transition.StatusExited))
}

func (p *termPainter) write(line string) {
	p.mut.Lock()
	defer p.mut.Unlock()

	elapsed := p.now().Sub(p.start).Round(time.Millisecond)

	_, _ = fmt.Fprintf(p.out, "[%8s] %s\n", elapsed, line)
}

// formatStyle renders a style as sorted key=value pairs.
func formatStyle(style transition.Style) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + style[k]
	}

	return strings.Join(parts, " ")
}
