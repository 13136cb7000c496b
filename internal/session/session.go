// Package session is the single owner of a player's canvas, gestures,
// discoveries and persistence. Every mutation goes through one mutex, so
// operations never interleave.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/genesis/internal/canvas"
	"github.com/vovakirdan/genesis/internal/catalog"
	"github.com/vovakirdan/genesis/internal/config"
	"github.com/vovakirdan/genesis/internal/core"
	"github.com/vovakirdan/genesis/internal/discovery"
	"github.com/vovakirdan/genesis/internal/gesture"
	"github.com/vovakirdan/genesis/internal/persist"
)

// ErrEmptySlot is returned for a quick slot with no favorite assigned.
var ErrEmptySlot = errors.New("session: quick slot is empty")

// DiscoveryJournal receives first discoveries.
type DiscoveryJournal interface {
	RecordDiscovery(ctx context.Context, definitionID string) error
}

// Session holds all state for one player.
type Session struct {
	mu sync.Mutex

	cfg      config.Config
	canvas   *canvas.Manager
	gestures *gesture.Interpreter
	tracker  *discovery.Tracker

	store   persist.Store
	key     string
	saver   *persist.Saver
	journal DiscoveryJournal
	logger  *log.Logger

	notices []Notice
	started bool

	// pending holds first discoveries not yet written to the journal.
	pending []string
	// pristine is the loaded snapshot while the canvas is untouched. Its
	// canvas and UI parts are saved back as-is so a differently sized
	// session does not shift positions it never changed.
	pristine *persist.Snapshot
}

type options struct {
	clock   gesture.Clock
	sched   persist.Scheduler
	ids     canvas.IDGenerator
	journal DiscoveryJournal
	logger  *log.Logger
	key     string
}

// Option configures a Session.
type Option func(*options)

// WithClock sets the clock used for double taps and the hint day.
func WithClock(c gesture.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithScheduler sets the scheduler behind debounced saves.
func WithScheduler(s persist.Scheduler) Option {
	return func(o *options) { o.sched = s }
}

// WithIDGenerator sets the instance id generator.
func WithIDGenerator(g canvas.IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

// WithJournal records first discoveries in j.
func WithJournal(j DiscoveryJournal) Option {
	return func(o *options) { o.journal = j }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithKey overrides the store key from the config.
func WithKey(key string) Option {
	return func(o *options) { o.key = key }
}

// New creates a session on a canvas of w×h pixels. Nothing is loaded or
// saved until Start.
func New(cfg config.Config, store persist.Store, w, h float64, opts ...Option) *Session {
	o := options{
		clock: gesture.SystemClock,
		ids:   canvas.UUIDv7(),
		key:   cfg.Persistence.Key,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "genesis",
		})
	}

	s := &Session{
		cfg:     cfg,
		store:   store,
		key:     o.key,
		journal: o.journal,
		logger:  o.logger,
	}
	s.canvas = canvas.New(cfg, w, h, canvas.WithIDGenerator(o.ids))
	s.gestures = gesture.New(cfg.Gesture, s.canvas, o.clock)
	s.tracker = discovery.New(cfg, o.clock)
	s.saver = persist.NewSaver(cfg.Persistence.Debounce(), o.sched, s.flush, o.logger)
	return s
}

// Start loads saved state, then arms saving. A missing, unreadable or corrupt
// snapshot leaves a fresh canvas; a corrupt one is also deleted.
func (s *Session) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("session: start: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	s.started = true
	s.load(ctx)
	s.saver.Arm()
	return nil
}

func (s *Session) load(ctx context.Context) {
	data, err := s.store.Load(ctx, s.key)
	switch {
	case errors.Is(err, persist.ErrNotFound):
		s.logger.Debug("no saved state", "key", s.key)
		return
	case err != nil:
		s.logger.Warn("failed to read saved state", "key", s.key, "error", err)
		return
	}

	snap, err := persist.Decode(data)
	if err != nil {
		s.logger.Warn("discarding corrupt saved state", "key", s.key, "error", err)
		if delErr := s.store.Delete(ctx, s.key); delErr != nil {
			s.logger.Error("failed to delete corrupt state", "key", s.key, "error", delErr)
		}
		return
	}

	s.apply(snap)
	s.pristine = &snap
	s.logger.Info("restored saved state", "key", s.key, "instances", s.canvas.Len())
}

// flush writes the current snapshot and journals new discoveries. Called by
// the saver off the interactive path.
func (s *Session) flush(ctx context.Context) error {
	s.mu.Lock()
	snap, ok := s.snapshot()
	s.mu.Unlock()

	s.writeJournal(ctx)
	if !ok {
		return nil
	}

	data, err := persist.Encode(snap)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("session: save %s: %w", s.key, err)
	}
	return nil
}

// writeJournal hands queued discoveries to the journal without holding the
// session lock. Failed entries are queued again for the next flush.
func (s *Session) writeJournal(ctx context.Context) {
	s.mu.Lock()
	ids := s.pending
	s.pending = nil
	s.mu.Unlock()
	if s.journal == nil || len(ids) == 0 {
		return
	}

	var failed []string
	for _, id := range ids {
		if err := s.journal.RecordDiscovery(ctx, id); err != nil {
			s.logger.Warn("failed to journal discovery", "id", id, "error", err)
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		s.mu.Lock()
		s.pending = append(failed, s.pending...)
		s.mu.Unlock()
	}
}

// Close flushes pending changes and stops the save timer.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	s.gestures.Reset()
	s.mu.Unlock()
	err := s.saver.Close(ctx)
	s.writeJournal(ctx)
	return err
}

// Tap handles a tap at canvas position (x, y).
func (s *Session) Tap(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatch(s.gestures.Tap(core.Pt(x, y)))
}

// DragGrant starts a drag on instance id touched at (x, y).
func (s *Session) DragGrant(id string, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatch(s.gestures.Grant(id, core.Pt(x, y)))
}

// DragMove reports cumulative travel since the grant.
func (s *Session) DragMove(id string, dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatch(s.gestures.DragMove(id, dx, dy))
}

// DragRelease ends a drag with cumulative travel since the grant.
func (s *Session) DragRelease(id string, dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatch(s.gestures.Release(id, dx, dy))
}

// DragTerminate abandons a drag. The instance stays where the last move put it.
func (s *Session) DragTerminate(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gestures.Terminate(id)
}

// InstanceAt returns the topmost instance under (x, y).
func (s *Session) InstanceAt(x, y float64) (canvas.Instance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.HitTest(core.Pt(x, y))
}

// QuickSpawn places a discovered element near the last tap point.
func (s *Session) QuickSpawn(defID string) (canvas.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quickSpawn(defID)
}

// QuickSlot spawns the favorite in slot i (0-based).
func (s *Session) QuickSlot(i int) (canvas.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defID, ok := s.tracker.QuickSlot(i)
	if !ok {
		s.fail("quick slot", ErrEmptySlot)
		return canvas.Instance{}, ErrEmptySlot
	}
	return s.quickSpawn(defID)
}

func (s *Session) quickSpawn(defID string) (canvas.Instance, error) {
	if !s.tracker.IsDiscovered(defID) {
		err := fmt.Errorf("%w: %s", discovery.ErrNotDiscovered, catalog.Name(defID))
		s.fail("spawn", err)
		return canvas.Instance{}, err
	}
	return s.spawn(defID, nil)
}

// ToggleFavorite adds or removes a favorite. Returns whether it is now a favorite.
func (s *Session) ToggleFavorite(defID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added, err := s.tracker.ToggleFavorite(defID)
	if err != nil {
		s.fail("favorite", err)
		return false, err
	}
	s.emit(FavoriteNotice{DefinitionID: defID, Added: added})
	s.saver.MarkDirty()
	return added, nil
}

// RequestHint spends one of today's hints.
func (s *Session) RequestHint() (discovery.Hint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.tracker.RequestHint()
	if err != nil {
		s.fail("hint", err)
		return discovery.Hint{}, err
	}
	s.emit(HintNotice{Hint: h, Quota: s.tracker.Quota()})
	s.saver.MarkDirty()
	return h, nil
}

// Resize follows a canvas size change. An active drag is abandoned.
func (s *Session) Resize(w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.canvas.Bounds()
	if b.W == w && b.H == h {
		return
	}
	s.gestures.Reset()
	s.canvas.Resize(w, h)
	s.touch()
}

// DrainNotices returns and clears pending notices.
func (s *Session) DrainNotices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

func (s *Session) dispatch(intents []gesture.Intent) {
	for _, in := range intents {
		switch in := in.(type) {
		case gesture.RecordTap:
			s.canvas.SetLastTap(in.At)
			s.touch()
		case gesture.SpawnQuad:
			s.spawnQuad(in.At)
		case gesture.Duplicate:
			at := in.At
			_, _ = s.spawn(in.DefinitionID, &at)
		case gesture.Move:
			if _, err := s.canvas.Move(in.InstanceID, in.To); err == nil {
				s.touch()
			}
		case gesture.Delete:
			if inst, err := s.canvas.Remove(in.InstanceID); err == nil {
				s.emit(DeletedNotice{Instance: inst})
				s.touch()
			}
		case gesture.Drop:
			s.drop(in)
		}
	}
}

func (s *Session) spawn(defID string, anchor *core.Point) (canvas.Instance, error) {
	inst, err := s.canvas.Spawn(defID, anchor)
	if err != nil {
		s.fail("spawn", err)
		return canvas.Instance{}, err
	}
	s.emit(SpawnedNotice{Instances: []canvas.Instance{inst}})
	s.touch()
	return inst, nil
}

func (s *Session) spawnQuad(at core.Point) {
	res, err := s.canvas.SpawnBaseQuad(at)
	if err != nil {
		s.fail("spawn", err)
		return
	}
	s.emit(SpawnedNotice{Instances: res.Spawned})
	if res.Partial() {
		s.emit(PartialSpawnNotice{Count: len(res.Spawned), Requested: res.Requested})
	}
	s.touch()
}

func (s *Session) drop(d gesture.Drop) {
	if _, err := s.canvas.Move(d.InstanceID, d.At); err != nil {
		return
	}
	s.touch()

	out, err := s.canvas.Combine(d.InstanceID, d.At)
	if err != nil {
		s.fail("combine", err)
	}
	if out.Combined {
		s.emit(CombinedNotice{
			A:      out.Source.DefinitionID,
			B:      out.Target.DefinitionID,
			Result: out.Result,
		})
		s.discover(out.Result.DefinitionID)
		return
	}

	if inst, moved, err := s.canvas.Settle(d.InstanceID, d.From); err == nil && moved {
		s.logger.Debug("settled dropped instance", "id", inst.ID, "x", inst.Pos.X, "y", inst.Pos.Y)
	}
}

func (s *Session) discover(defID string) {
	if !s.tracker.Record(defID) {
		return
	}
	def, _ := catalog.Lookup(defID)
	s.emit(DiscoveredNotice{Definition: def})
	s.logger.Info("discovered", "element", def.Name, "id", def.ID)
	s.pending = append(s.pending, defID)
	s.saver.MarkDirty()
}

// touch marks a canvas change. From here on the live canvas is what gets saved.
func (s *Session) touch() {
	s.pristine = nil
	s.saver.MarkDirty()
}

func (s *Session) emit(n Notice) {
	s.notices = append(s.notices, n)
}

func (s *Session) fail(op string, err error) {
	s.emit(FailureNotice{Op: op, Err: err})
}
