package state

import (
	"log"
	"sync"
	"time"
)

// SaveFunc performs outbound reconciliation plus the remote write.
type SaveFunc func() error

// Timer is the handle a scheduler keeps on an armed delay. time.Timer
// satisfies it; tests inject their own.
type Timer interface {
	Stop() bool
}

// AfterFunc arms a delay that runs f on expiry. The default production value
// wraps time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

// Scheduler debounces and sequences saves of reconciled state. It is a two
// state machine: idle, and pending with exactly one armed timer. Scheduling
// while pending cancels and re-arms the timer, so at most one save intent is
// in flight. On expiry the save runs only while an edit session is active;
// otherwise the intent is silently dropped.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	rush    time.Duration
	save    SaveFunc
	active  func() bool
	after   AfterFunc
	pending Timer
}

// NewScheduler builds a scheduler. delay is the debounce interval, rush the
// near-zero interval used by immediate triggers, active reports whether an
// edit session currently exists.
func NewScheduler(delay, rush time.Duration, save SaveFunc, active func() bool) *Scheduler {
	return &Scheduler{
		delay:  delay,
		rush:   rush,
		save:   save,
		active: active,
		after: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
}

// SetAfterFunc replaces the timer source. Tests use this to drive expiry
// without real time.
func (s *Scheduler) SetAfterFunc(after AfterFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.after = after
}

// Schedule (re)arms the save timer, canceling any previously armed one.
// With immediate set, the near-zero delay is used instead of the debounce
// interval.
func (s *Scheduler) Schedule(immediate bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		s.pending.Stop()
	}
	d := s.delay
	if immediate {
		d = s.rush
	}
	s.pending = s.after(d, s.expire)
}

// expire fires when the armed timer elapses: back to idle, then save if an
// edit session is active.
func (s *Scheduler) expire() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()

	if !s.active() {
		return
	}
	if err := s.save(); err != nil {
		log.Printf("scheduled save failed: %v", err)
	}
}

// Flush cancels any pending timer and saves synchronously, best effort. It
// is skipped entirely when no edit session is active. Used on teardown.
func (s *Scheduler) Flush() {
	s.Stop()
	if !s.active() {
		return
	}
	if err := s.save(); err != nil {
		log.Printf("flush save failed: %v", err)
	}
}

// Stop cancels any pending save intent and returns to idle.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}
