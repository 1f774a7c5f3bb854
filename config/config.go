// Package config loads transition host configuration from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amp-labs/amp-transition/envutil"
	"github.com/amp-labs/amp-transition/transition"
)

const (
	// DefaultDuration is the transition duration when none is configured.
	DefaultDuration = 250 * time.Millisecond
	// DefaultTransition is the definition name looked up when none is configured.
	DefaultTransition = "fade"
)

// ErrNegativeDuration is returned when TRANSITION_DURATION is below zero.
var ErrNegativeDuration = errors.New("duration must not be negative")

// Config holds everything a transition host needs at startup. The
// reduced-motion preference is read separately by motion.FromEnv.
type Config struct {
	Duration        time.Duration
	TimingFunction  string
	DefinitionsPath string
	Transition      string
	MetricsAddr     string
}

// Load reads the configuration from the environment (or context overrides).
func Load(ctx context.Context) (*Config, error) {
	duration, err := envutil.Milliseconds(ctx, "TRANSITION_DURATION",
		envutil.Default(DefaultDuration),
		envutil.Validate(func(d time.Duration) error {
			if d < 0 {
				return ErrNegativeDuration
			}

			return nil
		})).Value()
	if err != nil {
		return nil, fmt.Errorf("failed to load transition duration: %w", err)
	}

	timing, err := envutil.String(ctx, "TRANSITION_TIMING_FUNCTION",
		envutil.Default(transition.DefaultTimingFunction)).Value()
	if err != nil {
		return nil, err
	}

	name, err := envutil.String(ctx, "TRANSITION_NAME", envutil.Default(DefaultTransition)).Value()
	if err != nil {
		return nil, err
	}

	return &Config{
		Duration:        duration,
		TimingFunction:  timing,
		DefinitionsPath: envutil.String(ctx, "TRANSITION_DEFINITIONS").ValueOrElse(""),
		Transition:      name,
		MetricsAddr:     envutil.String(ctx, "METRICS_ADDR").ValueOrElse(""),
	}, nil
}
