// Package timer runs one-shot and interval callbacks on the frame goroutine.
// Nothing fires on its own; the owner calls Poll once per frame.
package timer

import (
	"time"
)

type ID uint64

// MaxCatchUp is the most firings one interval timer gets from a single Poll.
// A timer further behind skips the older periods and keeps its phase.
const MaxCatchUp = 5

// Callback receives the time the timer was due, not the time Poll ran.
type Callback func(due time.Time)

type entry struct {
	id     ID
	due    time.Time
	period time.Duration
	fn     Callback
}

type Scheduler struct {
	clock  Clock
	nextID ID
	timers []*entry
}

func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock}
}

func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// After fires fn once, d after now.
func (s *Scheduler) After(d time.Duration, fn Callback) ID {
	return s.add(d, 0, fn)
}

// Every fires fn each period, first one period from now. Periods missed
// between polls are fired in order on the next Poll, up to MaxCatchUp.
func (s *Scheduler) Every(period time.Duration, fn Callback) ID {
	if period <= 0 {
		period = time.Millisecond
	}
	return s.add(period, period, fn)
}

func (s *Scheduler) add(d, period time.Duration, fn Callback) ID {
	s.nextID++
	s.timers = append(s.timers, &entry{
		id:     s.nextID,
		due:    s.clock.Now().Add(d),
		period: period,
		fn:     fn,
	})
	return s.nextID
}

// Cancel stops a timer. Reports whether it was still pending.
func (s *Scheduler) Cancel(id ID) bool {
	for i, e := range s.timers {
		if e.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scheduler) Pending(id ID) bool {
	for _, e := range s.timers {
		if e.id == id {
			return true
		}
	}
	return false
}

func (s *Scheduler) Len() int {
	return len(s.timers)
}

func (s *Scheduler) Clear() {
	s.timers = nil
}

// Poll fires every timer due at the current clock reading, earliest first,
// and returns how many callbacks ran. Callbacks may schedule or cancel
// timers.
func (s *Scheduler) Poll() int {
	now := s.clock.Now()
	for _, e := range s.timers {
		e.skipBehind(now)
	}
	fired := 0
	for {
		e := s.earliestDue(now)
		if e == nil {
			return fired
		}
		due := e.due
		if e.period > 0 {
			e.due = e.due.Add(e.period)
		} else {
			s.Cancel(e.id)
		}
		if e.fn != nil {
			e.fn(due)
		}
		fired++
	}
}

func (s *Scheduler) earliestDue(now time.Time) *entry {
	var best *entry
	for _, e := range s.timers {
		if e.due.After(now) {
			continue
		}
		if best == nil || e.due.Before(best.due) || (e.due.Equal(best.due) && e.id < best.id) {
			best = e
		}
	}
	return best
}

// skipBehind drops whole periods so at most MaxCatchUp remain due at now.
func (e *entry) skipBehind(now time.Time) {
	if e.period <= 0 || e.due.After(now) {
		return
	}
	behind := int64(now.Sub(e.due)/e.period) + 1
	if behind <= MaxCatchUp {
		return
	}
	e.due = e.due.Add(time.Duration(behind-MaxCatchUp) * e.period)
}
