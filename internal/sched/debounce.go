// Package sched provides the delay-and-cancel scheduling used to
// debounce filter-driven refreshes: each new schedule cancels the
// pending one, so only the trailing edge of a burst fires.
package sched

import (
	"sync"
	"time"
)

// DefaultQuietWindow is the input quiescence a refresh waits for.
const DefaultQuietWindow = 250 * time.Millisecond

// CancelFunc cancels a scheduled task. It reports whether the task was
// still pending (true) or had already fired or been cancelled (false).
type CancelFunc func() bool

// Scheduler runs tasks after a delay. The zero-value stdlib timer is
// wrapped behind this interface so tests can substitute a manual clock.
type Scheduler interface {
	ScheduleAfter(d time.Duration, task func()) CancelFunc
}

// TimerScheduler schedules on real time via time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) ScheduleAfter(d time.Duration, task func()) CancelFunc {
	t := time.AfterFunc(d, task)
	return t.Stop
}

// Debouncer coalesces bursts of calls into one trailing invocation per
// quiet window. A newly scheduled task cancels the pending one; a task
// already in flight is never interrupted.
type Debouncer struct {
	mu     sync.Mutex
	sched  Scheduler
	window time.Duration
	cancel CancelFunc
}

// NewDebouncer creates a debouncer with the given quiet window; a
// non-positive window falls back to DefaultQuietWindow.
func NewDebouncer(sched Scheduler, window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultQuietWindow
	}
	return &Debouncer{sched: sched, window: window}
}

// Call schedules task after the quiet window, cancelling any pending
// earlier task.
func (d *Debouncer) Call(task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = d.sched.ScheduleAfter(d.window, task)
}

// Stop cancels the pending task, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
