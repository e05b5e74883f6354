// Package sched provides the single-threaded event loop that drives every
// recurring callback in the game: the countdown tick, spawn waves, movement
// steps, animation frames and continuations posted back from goroutines.
//
// Time is virtual. The game loop calls Advance once per tick with the elapsed
// duration and every due callback runs inside that call, on the caller's
// goroutine. Only Post may be called from other goroutines.
package sched

import (
	"sort"
	"sync"
	"time"
)

// Handle identifies a scheduled callback.
type Handle struct {
	id uint64
	s  *Scheduler
}

// Cancel deregisters the callback. Cancelling a zero, fired or already
// cancelled handle does nothing.
func (h Handle) Cancel() {
	if h.s == nil {
		return
	}
	delete(h.s.tasks, h.id)
}

// Active reports whether the callback is still registered.
func (h Handle) Active() bool {
	if h.s == nil {
		return false
	}
	_, ok := h.s.tasks[h.id]
	return ok
}

type task struct {
	id       uint64
	due      time.Duration
	interval time.Duration // zero for one-shot tasks
	fn       func()
}

// Scheduler runs timers and intervals against a virtual clock.
type Scheduler struct {
	now    time.Duration
	nextID uint64
	tasks  map[uint64]*task

	mu     sync.Mutex
	posted []func()
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{tasks: make(map[uint64]*task)}
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every runs fn each interval until the handle is cancelled.
func (s *Scheduler) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return s.add(interval, interval, fn)
}

// After runs fn once after delay.
func (s *Scheduler) After(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	return s.add(delay, 0, fn)
}

func (s *Scheduler) add(delay, interval time.Duration, fn func()) Handle {
	s.nextID++
	s.tasks[s.nextID] = &task{
		id:       s.nextID,
		due:      s.now + delay,
		interval: interval,
		fn:       fn,
	}
	return Handle{id: s.nextID, s: s}
}

// Active returns the number of registered timers and intervals.
func (s *Scheduler) Active() int {
	return len(s.tasks)
}

// Post queues fn to run on the loop at the start of the next Advance.
// It is safe to call from any goroutine.
func (s *Scheduler) Post(fn func()) {
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
}

// Advance moves the clock forward by dt, running posted continuations first
// and then every callback that falls due, in due order.
func (s *Scheduler) Advance(dt time.Duration) {
	s.drainPosted()

	target := s.now + dt
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			delete(s.tasks, t.id)
		}
		t.fn()
	}
	s.now = target
}

func (s *Scheduler) drainPosted() {
	s.mu.Lock()
	posted := s.posted
	s.posted = nil
	s.mu.Unlock()

	for _, fn := range posted {
		fn()
	}
}

// nextDue returns the earliest task due at or before target. Ties go to the
// task registered first.
func (s *Scheduler) nextDue(target time.Duration) *task {
	var due []*task
	for _, t := range s.tasks {
		if t.due <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})
	return due[0]
}
