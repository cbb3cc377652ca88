package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler lets tests fire or cancel scheduled tasks explicitly.
type manualScheduler struct {
	pending []*manualTask
}

type manualTask struct {
	delay     time.Duration
	task      func()
	cancelled bool
	fired     bool
}

func (s *manualScheduler) ScheduleAfter(d time.Duration, task func()) CancelFunc {
	mt := &manualTask{delay: d, task: task}
	s.pending = append(s.pending, mt)
	return func() bool {
		if mt.cancelled || mt.fired {
			return false
		}
		mt.cancelled = true
		return true
	}
}

// fireAll runs every task that is still live.
func (s *manualScheduler) fireAll() {
	for _, mt := range s.pending {
		if !mt.cancelled && !mt.fired {
			mt.fired = true
			mt.task()
		}
	}
}

func TestDebouncerCollapsesBursts(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDebouncer(sched, 250*time.Millisecond)

	fired := 0
	for i := 0; i < 5; i++ {
		d.Call(func() { fired++ })
	}

	// One schedule per call, but only the last one is still live.
	require.Len(t, sched.pending, 5)
	sched.fireAll()
	assert.Equal(t, 1, fired)
}

func TestDebouncerSchedulesWithWindow(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDebouncer(sched, 100*time.Millisecond)

	d.Call(func() {})
	require.Len(t, sched.pending, 1)
	assert.Equal(t, 100*time.Millisecond, sched.pending[0].delay)
}

func TestDebouncerDefaultWindow(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDebouncer(sched, 0)

	d.Call(func() {})
	require.Len(t, sched.pending, 1)
	assert.Equal(t, DefaultQuietWindow, sched.pending[0].delay)
}

func TestDebouncerStop(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDebouncer(sched, 250*time.Millisecond)

	fired := false
	d.Call(func() { fired = true })
	d.Stop()

	sched.fireAll()
	assert.False(t, fired)

	// Stop with nothing pending is a no-op.
	d.Stop()
}

func TestDebouncerSeparateBursts(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDebouncer(sched, 250*time.Millisecond)

	fired := 0
	d.Call(func() { fired++ })
	sched.fireAll()

	d.Call(func() { fired++ })
	sched.fireAll()

	assert.Equal(t, 2, fired)
}

func TestTimerScheduler(t *testing.T) {
	done := make(chan struct{})
	TimerScheduler{}.ScheduleAfter(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled task never fired")
	}
}

func TestLatest(t *testing.T) {
	var l Latest

	first := l.Next()
	assert.True(t, l.IsLatest(first))

	second := l.Next()
	assert.False(t, l.IsLatest(first))
	assert.True(t, l.IsLatest(second))
}
