// Package schedule models delayed widget transitions as cancellable tasks.
//
// Widgets never start free-floating timers. Each instance owns a Tasks set
// keyed by purpose ("open", "close", "settle"); rescheduling a key replaces
// the previous task and Close cancels everything, so no callback can fire
// against an unmounted widget.
package schedule

import (
	"sort"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped a
	// timer that had not yet fired.
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Virtual is a manually advanced clock. Callbacks run synchronously inside
// Advance on the caller's goroutine, which keeps every widget transition on
// the event loop that drives the clock.
type Virtual struct {
	now     time.Time
	seq     uint64
	pending []*virtualTimer
}

type virtualTimer struct {
	clock    *Virtual
	deadline time.Time
	seq      uint64
	fn       func()
	done     bool
}

// NewVirtual creates a virtual clock starting at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

// Now returns the current virtual time.
func (v *Virtual) Now() time.Time {
	return v.now
}

// AfterFunc schedules fn to run once the clock has advanced by d.
// Non-positive durations fire on the next Advance, even Advance(0).
func (v *Virtual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	v.seq++
	t := &virtualTimer{clock: v, deadline: v.now.Add(d), seq: v.seq, fn: fn}
	v.pending = append(v.pending, t)
	return t
}

// Advance moves the clock forward by d and fires every due callback in
// deadline order. Callbacks scheduled by a firing callback also run if they
// fall due within the same window.
func (v *Virtual) Advance(d time.Duration) {
	v.AdvanceTo(v.now.Add(d))
}

// AdvanceTo moves the clock to target. A target in the past only fires
// already-due callbacks.
func (v *Virtual) AdvanceTo(target time.Time) {
	for {
		next := v.nextDue(target)
		if next == nil {
			break
		}
		if next.deadline.After(v.now) {
			v.now = next.deadline
		}
		next.done = true
		v.remove(next)
		next.fn()
	}
	if target.After(v.now) {
		v.now = target
	}
}

// Pending returns the number of scheduled callbacks that have not fired.
func (v *Virtual) Pending() int {
	return len(v.pending)
}

func (v *Virtual) nextDue(target time.Time) *virtualTimer {
	if len(v.pending) == 0 {
		return nil
	}
	sort.SliceStable(v.pending, func(i, j int) bool {
		a, b := v.pending[i], v.pending[j]
		if a.deadline.Equal(b.deadline) {
			return a.seq < b.seq
		}
		return a.deadline.Before(b.deadline)
	})
	if v.pending[0].deadline.After(target) {
		return nil
	}
	return v.pending[0]
}

func (v *Virtual) remove(t *virtualTimer) {
	for i, p := range v.pending {
		if p == t {
			v.pending = append(v.pending[:i], v.pending[i+1:]...)
			return
		}
	}
}

func (t *virtualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.clock.remove(t)
	return true
}
