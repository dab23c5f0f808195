// Package reminder produces timed messages for the pet's speech bubble.
//
// A Scheduler holds an immutable, round-robin list of reminders and a single
// pending slot. The update loop calls Tick once per frame; whoever handles
// the user's click consumes the pending message with Message. While a
// message is pending no new one is produced, so an unacknowledged reminder
// holds back the rest of the queue.
package reminder

import (
	"sync"
	"time"
)

// DefaultInterval is the wall-clock time between two reminders.
const DefaultInterval = 1800 * time.Second

// Scheduler is safe for concurrent use. The lock is held only for the
// duration of each method call.
type Scheduler struct {
	mu sync.Mutex

	reminders []string
	interval  time.Duration

	index        int
	lastReminder time.Time
	pending      string
	hasPending   bool
}

// NewScheduler creates a scheduler whose first reminder becomes due one
// interval after now. The reminders slice is copied.
func NewScheduler(reminders []string, interval time.Duration, now time.Time) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	list := make([]string, len(reminders))
	copy(list, reminders)
	return &Scheduler{
		reminders:    list,
		interval:     interval,
		lastReminder: now,
	}
}

// Tick moves the next reminder into the pending slot when the interval has
// elapsed and the slot is empty. It reports whether a reminder was produced.
func (s *Scheduler) Tick(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasPending || len(s.reminders) == 0 {
		return false
	}
	if now.Sub(s.lastReminder) < s.interval {
		return false
	}

	s.pending = s.reminders[s.index%len(s.reminders)]
	s.hasPending = true
	s.index = (s.index + 1) % len(s.reminders)
	s.lastReminder = now
	return true
}

// HasMessageReady reports whether a reminder is waiting to be shown.
func (s *Scheduler) HasMessageReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasPending
}

// Message takes the pending reminder and clears the slot. The second return
// value is false when nothing was pending.
func (s *Scheduler) Message() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasPending {
		return "", false
	}
	msg := s.pending
	s.pending = ""
	s.hasPending = false
	return msg, true
}

// Len returns the number of loaded reminders.
func (s *Scheduler) Len() int {
	return len(s.reminders)
}

// Interval returns the configured cadence.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}
