package state

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimer records cancellation; fire runs the armed callback by hand.
type fakeTimer struct {
	stopped bool
	f       func()
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

// fakeClock captures every armed timer so tests drive expiry explicitly.
type fakeClock struct {
	timers []*fakeTimer
	delays []time.Duration
}

func (c *fakeClock) after(d time.Duration, f func()) Timer {
	t := &fakeTimer{f: f}
	c.timers = append(c.timers, t)
	c.delays = append(c.delays, d)
	return t
}

func (c *fakeClock) last() *fakeTimer { return c.timers[len(c.timers)-1] }

func newTestScheduler(save SaveFunc, active func() bool) (*Scheduler, *fakeClock) {
	clock := &fakeClock{}
	s := NewScheduler(900*time.Millisecond, 10*time.Millisecond, save, active)
	s.SetAfterFunc(clock.after)
	return s, clock
}

func TestSchedulerDebounceRearms(t *testing.T) {
	saves := 0
	s, clock := newTestScheduler(func() error { saves++; return nil }, func() bool { return true })

	s.Schedule(false)
	s.Schedule(false)
	s.Schedule(false)

	require.Len(t, clock.timers, 3)
	assert.True(t, clock.timers[0].stopped, "first timer should be canceled")
	assert.True(t, clock.timers[1].stopped, "second timer should be canceled")
	assert.False(t, clock.last().stopped)

	clock.last().f()
	assert.Equal(t, 1, saves, "a run of schedules collapses to one save")
}

func TestSchedulerImmediateDelay(t *testing.T) {
	s, clock := newTestScheduler(func() error { return nil }, func() bool { return true })

	s.Schedule(false)
	s.Schedule(true)

	require.Len(t, clock.delays, 2)
	assert.Equal(t, 900*time.Millisecond, clock.delays[0])
	assert.Equal(t, 10*time.Millisecond, clock.delays[1])
}

func TestSchedulerDropsWhenInactive(t *testing.T) {
	saves := 0
	s, clock := newTestScheduler(func() error { saves++; return nil }, func() bool { return false })

	s.Schedule(true)
	clock.last().f()

	assert.Zero(t, saves, "expiry without an edit session must not save")
}

func TestSchedulerExpiryFailureKeepsStateUsable(t *testing.T) {
	fail := true
	s, clock := newTestScheduler(func() error {
		if fail {
			return errors.New("store offline")
		}
		return nil
	}, func() bool { return true })

	s.Schedule(true)
	clock.last().f()

	// A failed save leaves the scheduler idle; the next schedule works.
	fail = false
	s.Schedule(true)
	clock.last().f()
	assert.Len(t, clock.timers, 2)
}

func TestSchedulerFlush(t *testing.T) {
	saves := 0
	s, clock := newTestScheduler(func() error { saves++; return nil }, func() bool { return true })

	s.Schedule(false)
	s.Flush()

	assert.True(t, clock.last().stopped, "flush cancels the pending timer")
	assert.Equal(t, 1, saves, "flush saves synchronously")
}

func TestSchedulerFlushSkippedWhenInactive(t *testing.T) {
	saves := 0
	s, _ := newTestScheduler(func() error { saves++; return nil }, func() bool { return false })

	s.Schedule(false)
	s.Flush()
	assert.Zero(t, saves)
}

func TestSchedulerStop(t *testing.T) {
	saves := 0
	s, clock := newTestScheduler(func() error { saves++; return nil }, func() bool { return true })

	s.Schedule(false)
	s.Stop()
	assert.True(t, clock.last().stopped)

	// Stop on an idle scheduler is harmless.
	s.Stop()
	assert.Zero(t, saves)
}
