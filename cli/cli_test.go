package cli

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	t.Parallel()

	d, err := parseDuration(" 300ms ", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, d)

	d, err = parseDuration("", time.Second)
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)

	_, err = parseDuration("-1s", 0)
	require.ErrorIs(t, err, errNegativeDuration)

	require.Error(t, validateDuration("fast"))
	require.NoError(t, validateDuration(""))
}

func TestMatchChoice(t *testing.T) {
	t.Parallel()

	show := Choice{Key: "show", Label: "Show element"}

	assert.True(t, matchChoice(show, ""))
	assert.True(t, matchChoice(show, "sh"))
	assert.True(t, matchChoice(show, "SHOW el"))
	assert.False(t, matchChoice(show, "hide"))
}

func TestInterrupted(t *testing.T) {
	t.Parallel()

	assert.True(t, Interrupted(promptui.ErrInterrupt))
	assert.True(t, Interrupted(fmt.Errorf("select: %w", promptui.ErrEOF)))
	assert.False(t, Interrupted(errors.New("other")))
	assert.False(t, Interrupted(nil))
}
