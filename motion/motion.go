// Package motion provides reduced-motion preference observers. A host reads
// the preference once per visibility request.
package motion

import (
	"context"

	"github.com/amp-labs/amp-transition/envutil"
	"go.uber.org/atomic"
)

// EnvReducedMotion is the environment variable read by FromEnv.
const EnvReducedMotion = "REDUCED_MOTION"

// Preference reports whether the user prefers reduced motion.
type Preference interface {
	ReducedMotion() bool
}

// Static is a fixed preference.
type Static bool

// ReducedMotion returns the fixed value.
func (s Static) ReducedMotion() bool {
	return bool(s)
}

// Toggle is a preference that can be flipped at runtime, for example when the
// host learns that the platform setting changed. It is safe for concurrent use.
type Toggle struct {
	reduced *atomic.Bool
}

// NewToggle creates a toggle with the given initial value.
func NewToggle(reduced bool) *Toggle {
	return &Toggle{reduced: atomic.NewBool(reduced)}
}

// ReducedMotion returns the current value.
func (t *Toggle) ReducedMotion() bool {
	return t.reduced.Load()
}

// Set changes the preference and returns the previous value.
func (t *Toggle) Set(reduced bool) bool {
	return t.reduced.Swap(reduced)
}

// FromEnv returns a Toggle initialised from REDUCED_MOTION (default false).
func FromEnv(ctx context.Context) *Toggle {
	reduced := envutil.Bool(ctx, EnvReducedMotion, envutil.Default(false)).ValueOrElse(false)

	return NewToggle(reduced)
}
