package motion

import (
	"testing"

	"github.com/amp-labs/amp-transition/envutil"
	"github.com/stretchr/testify/assert"
)

func TestStatic(t *testing.T) {
	t.Parallel()

	assert.True(t, Static(true).ReducedMotion())
	assert.False(t, Static(false).ReducedMotion())
}

func TestToggle(t *testing.T) {
	t.Parallel()

	pref := NewToggle(false)
	assert.False(t, pref.ReducedMotion())

	assert.False(t, pref.Set(true))
	assert.True(t, pref.ReducedMotion())
	assert.True(t, pref.Set(false))
}

func TestFromEnv(t *testing.T) {
	t.Parallel()

	ctx := envutil.WithEnvOverride(t.Context(), EnvReducedMotion, "1")
	assert.True(t, FromEnv(ctx).ReducedMotion())

	ctx = envutil.WithEnvOverride(t.Context(), EnvReducedMotion, "garbage")
	assert.False(t, FromEnv(ctx).ReducedMotion(), "bad values fall back to full motion")
}
