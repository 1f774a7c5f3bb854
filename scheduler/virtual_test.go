package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestVirtualRunsInDueOrder(t *testing.T) {
	t.Parallel()

	v := NewVirtual(epoch)

	var order []string

	v.Schedule(30*time.Millisecond, func() { order = append(order, "c") })
	v.Schedule(10*time.Millisecond, func() { order = append(order, "a") })
	v.Schedule(10*time.Millisecond, func() { order = append(order, "b") })

	v.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, v.Pending())

	v.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, v.Pending())
	assert.Equal(t, epoch.Add(30*time.Millisecond), v.Now())
}

func TestVirtualCancel(t *testing.T) {
	t.Parallel()

	v := NewVirtual(epoch)
	ran := false

	handle := v.Schedule(time.Second, func() { ran = true })

	require.True(t, handle.Cancel())
	assert.False(t, handle.Cancel(), "second cancel reports nothing to cancel")

	v.Advance(2 * time.Second)
	assert.False(t, ran)
}

func TestVirtualCancelAfterRun(t *testing.T) {
	t.Parallel()

	v := NewVirtual(epoch)
	count := 0

	handle := v.Schedule(time.Millisecond, func() { count++ })
	v.Advance(time.Millisecond)

	assert.Equal(t, 1, count)
	assert.False(t, handle.Cancel())
}

func TestVirtualClockAtCallbackTime(t *testing.T) {
	t.Parallel()

	v := NewVirtual(epoch)

	var seen time.Time

	v.Schedule(150*time.Millisecond, func() { seen = v.Now() })
	v.Advance(time.Second)

	assert.Equal(t, epoch.Add(150*time.Millisecond), seen)
	assert.Equal(t, epoch.Add(time.Second), v.Now())
}

func TestVirtualNestedScheduling(t *testing.T) {
	t.Parallel()

	v := NewVirtual(epoch)

	var order []int

	v.Schedule(10*time.Millisecond, func() {
		order = append(order, 1)

		v.Schedule(10*time.Millisecond, func() { order = append(order, 2) })
		v.Schedule(time.Second, func() { order = append(order, 3) })
	})

	v.Advance(50 * time.Millisecond)

	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 1, v.Pending())
}

func TestVirtualZeroDelayIsDeferred(t *testing.T) {
	t.Parallel()

	v := NewVirtual(epoch)
	ran := false

	v.Schedule(0, func() { ran = true })
	assert.False(t, ran)

	v.Advance(0)
	assert.True(t, ran)
}
