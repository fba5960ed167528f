package schedule

import "time"

// Tasks is the set of scheduled callbacks owned by one widget instance.
type Tasks struct {
	clock  Clock
	timers map[string]Timer
	gen    map[string]uint64
	closed bool
}

// NewTasks creates an empty task set on the given clock.
func NewTasks(clock Clock) *Tasks {
	return &Tasks{
		clock:  clock,
		timers: make(map[string]Timer),
		gen:    make(map[string]uint64),
	}
}

// Schedule runs fn after d under key, replacing any task already pending
// under the same key. It is a no-op once the set is closed.
func (t *Tasks) Schedule(key string, d time.Duration, fn func()) {
	if t.closed {
		return
	}
	t.Cancel(key)

	t.gen[key]++
	gen := t.gen[key]
	t.timers[key] = t.clock.AfterFunc(d, func() {
		// a replaced or cancelled task may still be in flight on a real clock
		if t.closed || t.gen[key] != gen {
			return
		}
		delete(t.timers, key)
		fn()
	})
}

// Cancel stops the task under key. It reports whether a task was pending.
func (t *Tasks) Cancel(key string) bool {
	timer, ok := t.timers[key]
	if !ok {
		return false
	}
	delete(t.timers, key)
	t.gen[key]++
	timer.Stop()
	return true
}

// Pending reports whether a task is scheduled under key.
func (t *Tasks) Pending(key string) bool {
	_, ok := t.timers[key]
	return ok
}

// Len returns the number of pending tasks.
func (t *Tasks) Len() int {
	return len(t.timers)
}

// Close cancels every pending task and rejects future ones.
func (t *Tasks) Close() {
	for key := range t.timers {
		t.Cancel(key)
	}
	t.closed = true
}

// Closed reports whether Close has been called.
func (t *Tasks) Closed() bool {
	return t.closed
}
