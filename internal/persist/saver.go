package persist

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler schedules on the runtime timer.
type SystemScheduler struct{}

// AfterFunc wraps time.AfterFunc.
func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// FlushFunc writes the current state.
type FlushFunc func(ctx context.Context) error

// Saver is a trailing debounce over state changes.
//
// MarkDirty sets the dirty flag and re-arms a timer for the quiet period.
// When the timer fires and the state is still dirty, the flag is cleared and
// the state is written. Nothing is scheduled until Arm is called, so a
// startup load can finish before the first write.
type Saver struct {
	mu     sync.Mutex
	delay  time.Duration
	sched  Scheduler
	flush  FlushFunc
	logger *log.Logger

	armed  bool
	closed bool
	dirty  bool
	timer  Timer
	gen    uint64 // Bumped on every reschedule; stale timers see a mismatch
}

// NewSaver creates a disarmed saver.
func NewSaver(delay time.Duration, sched Scheduler, flush FlushFunc, logger *log.Logger) *Saver {
	if sched == nil {
		sched = SystemScheduler{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Saver{delay: delay, sched: sched, flush: flush, logger: logger}
}

// Arm enables saving. Changes marked before arming are scheduled now.
func (s *Saver) Arm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.armed || s.closed {
		return
	}
	s.armed = true
	if s.dirty {
		s.schedule()
	}
}

// MarkDirty records a state change and restarts the quiet period.
func (s *Saver) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.dirty = true
	if s.armed {
		s.schedule()
	}
}

// Dirty reports whether there are unsaved changes.
func (s *Saver) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Pending reports whether a flush is scheduled.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// schedule must be called with mu held.
func (s *Saver) schedule() {
	s.stopTimer()
	s.gen++
	gen := s.gen
	s.timer = s.sched.AfterFunc(s.delay, func() { s.fire(gen) })
}

func (s *Saver) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Saver) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.closed {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	s.mu.Unlock()

	if err := s.flush(context.Background()); err != nil {
		s.logger.Error("failed to persist state", "error", err)
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
	}
}

// Flush writes pending changes now. A disarmed saver writes nothing.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	s.stopTimer()
	s.gen++
	if !s.armed || !s.dirty {
		s.mu.Unlock()
		return nil
	}
	s.dirty = false
	s.mu.Unlock()

	if err := s.flush(ctx); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return err
	}
	return nil
}

// Close flushes and stops accepting changes.
func (s *Saver) Close(ctx context.Context) error {
	err := s.Flush(ctx)
	s.mu.Lock()
	s.closed = true
	s.stopTimer()
	s.mu.Unlock()
	return err
}
