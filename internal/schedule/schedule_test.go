package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestVirtualFiresInDeadlineOrder(t *testing.T) {
	t.Parallel()

	clock := NewVirtual(epoch)
	var fired []string
	clock.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "c") })
	clock.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "a") })
	clock.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "b") })

	clock.Advance(99 * time.Millisecond)
	require.Empty(t, fired)

	clock.Advance(time.Millisecond)
	require.Equal(t, []string{"a", "b"}, fired)
	require.Equal(t, 1, clock.Pending())

	clock.Advance(time.Second)
	require.Equal(t, []string{"a", "b", "c"}, fired)
	require.Equal(t, epoch.Add(1100*time.Millisecond), clock.Now())
}

func TestVirtualRunsCallbacksScheduledDuringAdvance(t *testing.T) {
	t.Parallel()

	clock := NewVirtual(epoch)
	var at []time.Duration
	clock.AfterFunc(10*time.Millisecond, func() {
		at = append(at, clock.Now().Sub(epoch))
		clock.AfterFunc(10*time.Millisecond, func() {
			at = append(at, clock.Now().Sub(epoch))
		})
	})

	clock.Advance(50 * time.Millisecond)
	require.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, at)
}

func TestVirtualStop(t *testing.T) {
	t.Parallel()

	clock := NewVirtual(epoch)
	fired := false
	timer := clock.AfterFunc(time.Millisecond, func() { fired = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop())
	clock.Advance(time.Second)
	require.False(t, fired)
}

func TestVirtualZeroDelayFiresOnAdvanceZero(t *testing.T) {
	t.Parallel()

	clock := NewVirtual(epoch)
	fired := false
	clock.AfterFunc(-time.Second, func() { fired = true })

	clock.Advance(0)
	require.True(t, fired)
}

func TestTasks(t *testing.T) {
	t.Parallel()

	t.Run("schedule replaces pending task under same key", func(t *testing.T) {
		t.Parallel()
		clock := NewVirtual(epoch)
		tasks := NewTasks(clock)

		var fired []string
		tasks.Schedule("open", 100*time.Millisecond, func() { fired = append(fired, "first") })
		tasks.Schedule("open", 100*time.Millisecond, func() { fired = append(fired, "second") })
		require.Equal(t, 1, tasks.Len())

		clock.Advance(time.Second)
		require.Equal(t, []string{"second"}, fired)
		require.False(t, tasks.Pending("open"))
	})

	t.Run("cancel prevents callback", func(t *testing.T) {
		t.Parallel()
		clock := NewVirtual(epoch)
		tasks := NewTasks(clock)

		fired := false
		tasks.Schedule("close", 300*time.Millisecond, func() { fired = true })
		require.True(t, tasks.Pending("close"))
		require.True(t, tasks.Cancel("close"))
		require.False(t, tasks.Cancel("close"))

		clock.Advance(time.Second)
		require.False(t, fired)
		require.Equal(t, 0, clock.Pending())
	})

	t.Run("close cancels everything and rejects new tasks", func(t *testing.T) {
		t.Parallel()
		clock := NewVirtual(epoch)
		tasks := NewTasks(clock)

		count := 0
		tasks.Schedule("a", time.Millisecond, func() { count++ })
		tasks.Schedule("b", time.Millisecond, func() { count++ })
		tasks.Close()
		tasks.Schedule("c", time.Millisecond, func() { count++ })

		clock.Advance(time.Second)
		require.Zero(t, count)
		require.True(t, tasks.Closed())
		require.Zero(t, tasks.Len())
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		clock := NewVirtual(epoch)
		tasks := NewTasks(clock)

		var fired []string
		tasks.Schedule("open", 10*time.Millisecond, func() { fired = append(fired, "open") })
		tasks.Schedule("settle", 20*time.Millisecond, func() { fired = append(fired, "settle") })
		tasks.Cancel("open")

		clock.Advance(time.Second)
		require.Equal(t, []string{"settle"}, fired)
	})
}
