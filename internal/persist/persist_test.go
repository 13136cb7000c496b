package persist

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// manualScheduler runs timers only when told to.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// FireAll runs every timer ever created, stopped or not, the way a timer
// that already fired past Stop would.
func (s *manualScheduler) FireAll() {
	s.mu.Lock()
	timers := s.timers
	s.mu.Unlock()
	for _, t := range timers {
		t.f()
	}
}

// FireLive runs timers that were not stopped.
func (s *manualScheduler) FireLive() {
	s.mu.Lock()
	timers := s.timers
	s.mu.Unlock()
	for _, t := range timers {
		if !t.stopped {
			t.stopped = true
			t.f()
		}
	}
}

func (s *manualScheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

type countingFlush struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *countingFlush) Flush(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.err
}

func (c *countingFlush) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newTestSaver() (*Saver, *manualScheduler, *countingFlush) {
	sched := &manualScheduler{}
	flush := &countingFlush{}
	return NewSaver(450*time.Millisecond, sched, flush.Flush, nil), sched, flush
}

func TestSaverDisarmedSchedulesNothing(t *testing.T) {
	s, sched, flush := newTestSaver()

	s.MarkDirty()
	if sched.Count() != 0 {
		t.Error("a disarmed saver must not schedule")
	}
	if err := s.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if flush.Calls() != 0 {
		t.Error("a disarmed saver must not write")
	}

	s.Arm()
	if sched.Count() != 1 {
		t.Fatalf("arming with pending changes should schedule once, got %d", sched.Count())
	}
	sched.FireLive()
	if flush.Calls() != 1 {
		t.Errorf("expected 1 write, got %d", flush.Calls())
	}
}

func TestSaverTrailingDebounce(t *testing.T) {
	s, sched, flush := newTestSaver()
	s.Arm()

	for i := 0; i < 5; i++ {
		s.MarkDirty()
	}
	if sched.Count() != 5 {
		t.Fatalf("each change should reschedule, got %d timers", sched.Count())
	}
	if sched.timers[0].d != 450*time.Millisecond {
		t.Errorf("delay = %v", sched.timers[0].d)
	}

	// Even stale timers that slip past Stop write only once.
	sched.FireAll()
	if flush.Calls() != 1 {
		t.Errorf("expected exactly 1 write, got %d", flush.Calls())
	}
	if s.Dirty() || s.Pending() {
		t.Error("saver should be clean and idle after the write")
	}
}

func TestSaverFireWhenClean(t *testing.T) {
	s, sched, flush := newTestSaver()
	s.Arm()
	s.MarkDirty()

	if err := s.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	sched.FireAll()
	if flush.Calls() != 1 {
		t.Errorf("timer after an explicit flush must not write again, got %d", flush.Calls())
	}
}

func TestSaverRetriesAfterError(t *testing.T) {
	s, sched, flush := newTestSaver()
	flush.err = errors.New("disk full")
	s.Arm()
	s.MarkDirty()

	sched.FireLive()
	if !s.Dirty() {
		t.Fatal("a failed write should leave the state dirty")
	}

	flush.err = nil
	if err := s.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if flush.Calls() != 2 || s.Dirty() {
		t.Errorf("calls=%d dirty=%v", flush.Calls(), s.Dirty())
	}
}

func TestSaverClose(t *testing.T) {
	s, sched, flush := newTestSaver()
	s.Arm()
	s.MarkDirty()

	if err := s.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	if flush.Calls() != 1 {
		t.Errorf("Close should flush, got %d writes", flush.Calls())
	}

	s.MarkDirty()
	sched.FireAll()
	if flush.Calls() != 1 || s.Dirty() {
		t.Error("a closed saver must ignore changes")
	}
}

func TestSnapshotShape(t *testing.T) {
	s := Snapshot{
		Canvas: CanvasState{Instances: []InstanceRecord{
			{InstanceID: "a", DefinitionID: "001", XNorm: 0.25, YNorm: 0.5},
		}},
		Collection: CollectionState{DiscoveredByCombine: []string{"101"}, Favorites: []string{"001"}},
		AdHint:     AdHint{Date: "2026-03-14", Used: 1, Limit: 3},
	}

	data, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{
		`"canvas":{"instances":[{"instanceId":"a","definitionId":"001","xNorm":0.25,"yNorm":0.5}]}`,
		`"collection":{"discoveredByCombine":["101"],"favorites":["001"]}`,
		`"ui":{"lastWorkspaceTapPoint":null}`,
		`"adHint":{"date":"2026-03-14","used":1,"limit":3}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("encoded snapshot missing %s\n%s", want, got)
		}
	}
}

func TestDecodeCorrupt(t *testing.T) {
	tests := []string{
		`{`,
		`not json`,
		`{"canvas":{"instances":"nope"}}`,
	}
	for _, in := range tests {
		if _, err := Decode([]byte(in)); !errors.Is(err, ErrCorrupt) {
			t.Errorf("Decode(%q) = %v, expected ErrCorrupt", in, err)
		}
	}
}

func TestDecodePartial(t *testing.T) {
	s, err := Decode([]byte(`{"ui":{"lastWorkspaceTapPoint":{"x":3,"y":4}}}`))
	if err != nil {
		t.Fatal(err)
	}
	if p := s.UI.LastWorkspaceTapPoint; p == nil || p.X != 3 || p.Y != 4 {
		t.Errorf("tap point = %+v", p)
	}
	if len(s.Canvas.Instances) != 0 {
		t.Error("missing sections should decode empty")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	if _, err := m.Load(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := m.Save(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if v, err := m.Load(ctx, "k"); err != nil || string(v) != "v" {
		t.Errorf("Load = %q %v", v, err)
	}
	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Load(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if m.Saves() != 1 {
		t.Errorf("Saves() = %d", m.Saves())
	}
}
