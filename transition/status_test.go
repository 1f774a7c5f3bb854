package transition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status  Status
		settled bool
		visible bool
	}{
		{StatusEntered, true, true},
		{StatusExited, true, false},
		{StatusEntering, false, true},
		{StatusExiting, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			t.Parallel()

			assert.True(t, tt.status.IsValid())
			assert.Equal(t, tt.settled, tt.status.IsSettled())
			assert.Equal(t, tt.visible, tt.status.IsVisible())
		})
	}

	assert.False(t, Status("paused").IsValid())
}

func TestRequestTargets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusEntering, transitional(true))
	assert.Equal(t, StatusExiting, transitional(false))
	assert.Equal(t, StatusEntered, settled(true))
	assert.Equal(t, StatusExited, settled(false))
	assert.Equal(t, "enter", direction(true))
	assert.Equal(t, "exit", direction(false))
}
