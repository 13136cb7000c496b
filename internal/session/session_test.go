package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/genesis/internal/canvas"
	"github.com/vovakirdan/genesis/internal/catalog"
	"github.com/vovakirdan/genesis/internal/config"
	"github.com/vovakirdan/genesis/internal/core"
	"github.com/vovakirdan/genesis/internal/discovery"
	"github.com/vovakirdan/genesis/internal/gesture"
	"github.com/vovakirdan/genesis/internal/persist"
)

const key = "genesis-v1-state"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// heldScheduler never fires on its own; tests flush explicitly.
type heldScheduler struct {
	mu    sync.Mutex
	count int
}

type heldTimer struct{}

func (heldTimer) Stop() bool { return true }

func (h *heldScheduler) AfterFunc(time.Duration, func()) persist.Timer {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	return heldTimer{}
}

func (h *heldScheduler) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// recordingJournal notes every write and whether the session lock was held
// when it arrived.
type recordingJournal struct {
	mu      sync.Mutex
	ids     []string
	s       *Session
	underMu bool
}

func (j *recordingJournal) RecordDiscovery(_ context.Context, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ids = append(j.ids, id)
	if j.s != nil {
		if j.s.mu.TryLock() {
			j.s.mu.Unlock()
		} else {
			j.underMu = true
		}
	}
	return nil
}

func (j *recordingJournal) written() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Clone(j.ids)
}

type harness struct {
	s       *Session
	store   *persist.MemoryStore
	clock   *fakeClock
	sched   *heldScheduler
	journal *recordingJournal
}

func newHarness(t *testing.T, store *persist.MemoryStore, opts ...Option) *harness {
	t.Helper()
	return newSizedHarness(t, store, 400, 800, opts...)
}

func newSizedHarness(t *testing.T, store *persist.MemoryStore, w, h float64, opts ...Option) *harness {
	t.Helper()
	hs := &harness{
		store:   store,
		clock:   &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)},
		sched:   &heldScheduler{},
		journal: &recordingJournal{},
	}
	base := []Option{
		WithClock(hs.clock),
		WithScheduler(hs.sched),
		WithIDGenerator(canvas.Sequential("el")),
		WithJournal(hs.journal),
		WithLogger(log.New(io.Discard)),
	}
	hs.s = New(config.DefaultConfig(), store, w, h, append(base, opts...)...)
	hs.journal.s = hs.s
	if err := hs.s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return hs
}

// doubleTap taps twice at (x, y) inside the double-tap window.
func (h *harness) doubleTap(x, y float64) {
	h.s.Tap(x, y)
	h.clock.now = h.clock.now.Add(100 * time.Millisecond)
	h.s.Tap(x, y)
	h.clock.now = h.clock.now.Add(time.Second)
}

// drag grasps id and drags it by (dx, dy) in two moves.
func (h *harness) drag(id string, dx, dy float64) {
	h.s.DragGrant(id, 0, 0)
	h.s.DragMove(id, dx/2, dy/2)
	h.s.DragMove(id, dx, dy)
	h.s.DragRelease(id, dx, dy)
}

func byDef(v View, defID string) (canvas.Instance, bool) {
	for _, inst := range v.Instances {
		if inst.DefinitionID == defID {
			return inst, true
		}
	}
	return canvas.Instance{}, false
}

func noticesOf[T Notice](ns []Notice) []T {
	var out []T
	for _, n := range ns {
		if v, ok := n.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func checkSeparation(t *testing.T, v View) {
	t.Helper()
	gap := config.DefaultConfig().Element.MinGap()
	for i, a := range v.Instances {
		for _, b := range v.Instances[i+1:] {
			if d := a.Pos.Dist(b.Pos); d < gap-1e-9 {
				t.Errorf("%s and %s are %.2f apart", a.ID, b.ID, d)
			}
		}
	}
}

func TestDoubleTapSpawnsQuad(t *testing.T) {
	h := newHarness(t, persist.NewMemoryStore())

	h.doubleTap(100, 100)
	v := h.s.View()
	if len(v.Instances) != 4 {
		t.Fatalf("expected 4 instances, got %d", len(v.Instances))
	}
	for _, id := range []string{catalog.Fire, catalog.Water, catalog.Wind, catalog.Earth} {
		if _, ok := byDef(v, id); !ok {
			t.Errorf("missing %s", catalog.Name(id))
		}
	}
	checkSeparation(t, v)

	spawned := noticesOf[SpawnedNotice](h.s.DrainNotices())
	if len(spawned) != 1 || len(spawned[0].Instances) != 4 {
		t.Errorf("expected one SpawnedNotice with 4 instances, got %v", spawned)
	}
	if v.LastTap == nil || *v.LastTap != core.Pt(100, 100) {
		t.Errorf("last tap = %v", v.LastTap)
	}
}

func TestDragCombineDiscovers(t *testing.T) {
	h := newHarness(t, persist.NewMemoryStore())
	h.doubleTap(200, 400)
	h.s.DrainNotices()

	fire, _ := byDef(h.s.View(), catalog.Fire)   // (200, 344)
	water, _ := byDef(h.s.View(), catalog.Water) // (256, 400)
	h.drag(fire.ID, water.Pos.X-fire.Pos.X, water.Pos.Y-fire.Pos.Y)

	v := h.s.View()
	if len(v.Instances) != 3 {
		t.Fatalf("expected 3 instances after combine, got %d", len(v.Instances))
	}
	steam, ok := byDef(v, catalog.Steam)
	if !ok {
		t.Fatal("steam was not created")
	}
	if steam.Pos != water.Pos {
		t.Errorf("steam at %v, expected the midpoint %v", steam.Pos, water.Pos)
	}
	if v.Mode != gesture.ModeNormal {
		t.Error("mode should return to normal after release")
	}
	checkSeparation(t, v)

	ns := h.s.DrainNotices()
	if len(noticesOf[CombinedNotice](ns)) != 1 {
		t.Error("expected a CombinedNotice")
	}
	if d := noticesOf[DiscoveredNotice](ns); len(d) != 1 || d[0].Definition.ID != catalog.Steam {
		t.Errorf("expected steam discovery, got %v", d)
	}
	if got := h.journal.written(); len(got) != 0 {
		t.Errorf("journal written during the drag: %v", got)
	}
	if err := h.s.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := h.journal.written(); !slices.Equal(got, []string{catalog.Steam}) {
		t.Errorf("journal = %v", got)
	}
	if h.journal.underMu {
		t.Error("journal was written while the session lock was held")
	}
	found := false
	for _, def := range v.Compendium {
		found = found || def.ID == catalog.Steam
	}
	if !found {
		t.Error("steam should be in the compendium")
	}
}

func TestDragUnknownCombination(t *testing.T) {
	h := newHarness(t, persist.NewMemoryStore())
	h.doubleTap(200, 400)
	h.s.DrainNotices()

	wind, _ := byDef(h.s.View(), catalog.Wind)
	earth, _ := byDef(h.s.View(), catalog.Earth)
	h.drag(wind.ID, earth.Pos.X-wind.Pos.X, earth.Pos.Y-wind.Pos.Y)

	v := h.s.View()
	if len(v.Instances) != 4 {
		t.Fatalf("no instance should be added or removed, got %d", len(v.Instances))
	}
	if after, _ := byDef(v, catalog.Earth); after.Pos != earth.Pos {
		t.Errorf("target moved from %v to %v", earth.Pos, after.Pos)
	}
	checkSeparation(t, v)

	fails := noticesOf[FailureNotice](h.s.DrainNotices())
	if len(fails) != 1 || !errors.Is(fails[0].Err, canvas.ErrUnknownCombination) {
		t.Errorf("expected UnknownCombination failure, got %v", fails)
	}
}

func TestDragToTrash(t *testing.T) {
	h := newHarness(t, persist.NewMemoryStore())
	h.doubleTap(200, 400)
	h.s.DrainNotices()

	earth, _ := byDef(h.s.View(), catalog.Earth) // (144, 400)
	h.drag(earth.ID, -100, 0)

	v := h.s.View()
	if _, ok := byDef(v, catalog.Earth); ok {
		t.Error("earth should be deleted on the trash rail")
	}
	if len(noticesOf[DeletedNotice](h.s.DrainNotices())) != 1 {
		t.Error("expected a DeletedNotice")
	}
}

func TestDoubleTapInstanceDuplicates(t *testing.T) {
	h := newHarness(t, persist.NewMemoryStore())
	h.doubleTap(200, 400)

	fire, _ := byDef(h.s.View(), catalog.Fire)
	for i := 0; i < 2; i++ {
		h.s.DragGrant(fire.ID, fire.Pos.X, fire.Pos.Y)
		h.s.DragRelease(fire.ID, 1, 1)
		h.clock.now = h.clock.now.Add(100 * time.Millisecond)
	}

	v := h.s.View()
	fires := 0
	for _, inst := range v.Instances {
		if inst.DefinitionID == catalog.Fire {
			fires++
		}
	}
	if fires != 2 {
		t.Errorf("expected 2 fire instances, got %d", fires)
	}
	checkSeparation(t, v)
}

func TestQuickSpawnCapacity(t *testing.T) {
	cfg := config.DefaultConfig()
	records := make([]persist.InstanceRecord, cfg.Devices.Phone.Capacity)
	for i := range records {
		records[i] = persist.InstanceRecord{
			InstanceID:   fmt.Sprintf("full-%d", i),
			DefinitionID: catalog.Fire,
			XNorm:        0.1 + 0.08*float64(i%10),
			YNorm:        0.05 + 0.1*float64(i/10),
		}
	}
	data, _ := persist.Encode(persist.Snapshot{Canvas: persist.CanvasState{Instances: records}})
	store := persist.NewMemoryStore()
	_ = store.Save(context.Background(), key, data)

	h := newHarness(t, store)
	if v := h.s.View(); v.Remaining != 0 {
		t.Fatalf("expected a full canvas, %d left", v.Remaining)
	}

	if _, err := h.s.QuickSpawn(catalog.Water); !errors.Is(err, canvas.ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
	if n := len(h.s.View().Instances); n != len(records) {
		t.Errorf("instance count changed to %d", n)
	}
	fails := noticesOf[FailureNotice](h.s.DrainNotices())
	if len(fails) != 1 || fails[0].Message() != "The canvas is full" {
		t.Errorf("failure notices = %v", fails)
	}
}

func TestQuickSpawnUndiscovered(t *testing.T) {
	h := newHarness(t, persist.NewMemoryStore())
	if _, err := h.s.QuickSpawn(catalog.Storm); !errors.Is(err, discovery.ErrNotDiscovered) {
		t.Errorf("expected ErrNotDiscovered, got %v", err)
	}
}

func TestQuickSlot(t *testing.T) {
	h := newHarness(t, persist.NewMemoryStore())

	if _, err := h.s.QuickSlot(0); !errors.Is(err, ErrEmptySlot) {
		t.Errorf("expected ErrEmptySlot, got %v", err)
	}
	if _, err := h.s.ToggleFavorite(catalog.Earth); err != nil {
		t.Fatal(err)
	}
	inst, err := h.s.QuickSlot(0)
	if err != nil {
		t.Fatalf("QuickSlot: %v", err)
	}
	if inst.DefinitionID != catalog.Earth {
		t.Errorf("spawned %s, expected earth", inst.DefinitionID)
	}
}

func TestRequestHintQuota(t *testing.T) {
	h := newHarness(t, persist.NewMemoryStore())

	for i := 1; i <= 3; i++ {
		hint, err := h.s.RequestHint()
		if err != nil {
			t.Fatalf("hint %d: %v", i, err)
		}
		if hint.Result.ID != catalog.Steam {
			t.Errorf("hint %d = %s", i, hint)
		}
		if used := h.s.View().Quota.Used; used != i {
			t.Errorf("used = %d after hint %d", used, i)
		}
	}
	if _, err := h.s.RequestHint(); !errors.Is(err, discovery.ErrQuotaExhausted) {
		t.Errorf("expected ErrQuotaExhausted, got %v", err)
	}

	fails := noticesOf[FailureNotice](h.s.DrainNotices())
	if len(fails) != 1 || fails[0].Message() != "No hints left today" {
		t.Errorf("failure notices = %v", fails)
	}
}

func TestSaveReloadRoundTrip(t *testing.T) {
	store := persist.NewMemoryStore()
	h := newHarness(t, store)

	h.doubleTap(200, 400)
	fire, _ := byDef(h.s.View(), catalog.Fire)
	water, _ := byDef(h.s.View(), catalog.Water)
	h.drag(fire.ID, water.Pos.X-fire.Pos.X, water.Pos.Y-fire.Pos.Y)
	if _, err := h.s.ToggleFavorite(catalog.Steam); err != nil {
		t.Fatal(err)
	}
	if _, err := h.s.RequestHint(); err != nil {
		t.Fatal(err)
	}
	h.s.Tap(300, 700)
	before := h.s.View()

	if err := h.s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if store.Saves() != 1 {
		t.Errorf("expected one write on close, got %d", store.Saves())
	}

	reloaded := newHarness(t, store)
	after := reloaded.s.View()

	if len(after.Instances) != len(before.Instances) {
		t.Fatalf("instances: %d -> %d", len(before.Instances), len(after.Instances))
	}
	for i := range before.Instances {
		a, b := before.Instances[i], after.Instances[i]
		if a.ID != b.ID || a.DefinitionID != b.DefinitionID || a.Pos.Dist(b.Pos) > 1e-9 {
			t.Errorf("instance %d: %+v -> %+v", i, a, b)
		}
	}
	if !slices.Equal(before.Favorites, after.Favorites) {
		t.Errorf("favorites: %v -> %v", before.Favorites, after.Favorites)
	}
	if len(before.Compendium) != len(after.Compendium) {
		t.Errorf("compendium: %d -> %d", len(before.Compendium), len(after.Compendium))
	}
	if before.Quota != after.Quota {
		t.Errorf("quota: %+v -> %+v", before.Quota, after.Quota)
	}
	if after.LastTap == nil || *after.LastTap != *before.LastTap {
		t.Errorf("last tap: %v -> %v", before.LastTap, after.LastTap)
	}
}

func TestCorruptSnapshotColdStart(t *testing.T) {
	store := persist.NewMemoryStore()
	_ = store.Save(context.Background(), key, []byte("{not json"))

	var buf bytes.Buffer
	h := newHarness(t, store, WithLogger(log.New(&buf)))

	if n := len(h.s.View().Instances); n != 0 {
		t.Errorf("expected an empty canvas, got %d instances", n)
	}
	if _, err := store.Load(context.Background(), key); !errors.Is(err, persist.ErrNotFound) {
		t.Errorf("corrupt snapshot should be deleted, got %v", err)
	}
	if !strings.Contains(buf.String(), "corrupt") {
		t.Errorf("expected a warning, log was %q", buf.String())
	}
	if len(h.s.DrainNotices()) != 0 {
		t.Error("load failures must not reach the player")
	}
}

func TestSavingArmedOnlyAfterLoad(t *testing.T) {
	store := persist.NewMemoryStore()
	sched := &heldScheduler{}
	s := New(config.DefaultConfig(), store, 400, 800,
		WithScheduler(sched),
		WithLogger(log.New(io.Discard)),
	)

	s.Tap(100, 100)
	if sched.Count() != 0 {
		t.Error("nothing may be scheduled before Start")
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.Saves() != 0 {
		t.Error("a session that never loaded must not overwrite saved state")
	}

	s = New(config.DefaultConfig(), store, 400, 800,
		WithScheduler(sched),
		WithLogger(log.New(io.Discard)),
	)
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	s.Tap(100, 100)
	if sched.Count() != 1 {
		t.Errorf("expected one scheduled save after Start, got %d", sched.Count())
	}
}

func TestRestoreDropsBadEntries(t *testing.T) {
	store := persist.NewMemoryStore()
	data, _ := persist.Encode(persist.Snapshot{
		Canvas: persist.CanvasState{Instances: []persist.InstanceRecord{
			{InstanceID: "a", DefinitionID: catalog.Fire, XNorm: 0.5, YNorm: 0.5},
			{InstanceID: "b", DefinitionID: "999", XNorm: 0.2, YNorm: 0.2},
		}},
		Collection: persist.CollectionState{Favorites: []string{catalog.Fire}},
		AdHint:     persist.AdHint{Date: "2020-01-01", Used: 3, Limit: 3},
	})
	_ = store.Save(context.Background(), key, data)

	h := newHarness(t, store)
	v := h.s.View()
	if len(v.Instances) != 1 || v.Instances[0].Pos.X != 200 || v.Instances[0].Pos.Y != 400 {
		t.Errorf("instances = %+v", v.Instances)
	}
	if v.Quota.Used != 0 || v.Quota.Date != "2026-03-14" {
		t.Errorf("stale quota should reset, got %+v", v.Quota)
	}
	if !v.IsFavorite(catalog.Fire) {
		t.Error("favorite should survive")
	}
}

func TestResizeRescales(t *testing.T) {
	h := newHarness(t, persist.NewMemoryStore())
	h.doubleTap(200, 400)
	fire, _ := byDef(h.s.View(), catalog.Fire)

	h.s.Resize(800, 400)
	v := h.s.View()
	if v.Class != config.DevicePad {
		t.Errorf("class = %v", v.Class)
	}
	moved, _ := byDef(v, catalog.Fire)
	if math.Abs(moved.Pos.X-fire.Pos.X*2) > 1e-9 || math.Abs(moved.Pos.Y-fire.Pos.Y/2) > 1e-9 {
		t.Errorf("fire %v -> %v", fire.Pos, moved.Pos)
	}
}

func TestFailureMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{canvas.ErrCapacityExceeded, "The canvas is full"},
		{canvas.ErrNoFreeSlot, "No room to place that"},
		{discovery.ErrFavoritesFull, "Favorites are full"},
		{discovery.ErrNoCandidates, "No undiscovered combination is reachable right now"},
		{errors.New("boom"), "spawn failed: boom"},
	}
	for _, tc := range tests {
		if got := (FailureNotice{Op: "spawn", Err: tc.err}).Message(); got != tc.want {
			t.Errorf("Message(%v) = %q, expected %q", tc.err, got, tc.want)
		}
	}
}

type failingJournal struct {
	mu    sync.Mutex
	fails int
	ids   []string
}

func (j *failingJournal) RecordDiscovery(_ context.Context, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.fails > 0 {
		j.fails--
		return errors.New("database is locked")
	}
	j.ids = append(j.ids, id)
	return nil
}

func TestJournalRetriedAfterFailure(t *testing.T) {
	j := &failingJournal{fails: 1}
	h := newHarness(t, persist.NewMemoryStore(), WithJournal(j))
	h.doubleTap(200, 400)
	fire, _ := byDef(h.s.View(), catalog.Fire)
	water, _ := byDef(h.s.View(), catalog.Water)
	h.drag(fire.ID, water.Pos.X-fire.Pos.X, water.Pos.Y-fire.Pos.Y)

	if err := h.s.flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(j.ids) != 0 {
		t.Fatalf("journal = %v after a failed write", j.ids)
	}
	if err := h.s.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(j.ids, []string{catalog.Steam}) {
		t.Errorf("journal = %v, expected the failed write retried", j.ids)
	}
}

func TestSurplusSurvivesPhoneRestart(t *testing.T) {
	const n = 100
	records := make([]persist.InstanceRecord, n)
	for i := range records {
		records[i] = persist.InstanceRecord{
			InstanceID:   fmt.Sprintf("pad-%d", i),
			DefinitionID: catalog.Earth,
			XNorm:        0.05 + 0.09*float64(i%10),
			YNorm:        0.05 + 0.09*float64(i/10),
		}
	}
	data, _ := persist.Encode(persist.Snapshot{Canvas: persist.CanvasState{Instances: records}})
	store := persist.NewMemoryStore()
	_ = store.Save(context.Background(), key, data)

	pad := newSizedHarness(t, store, 1024, 768)
	if v := pad.s.View(); len(v.Instances) != n || v.Remaining != 20 {
		t.Fatalf("pad: %d instances, %d remaining", len(v.Instances), v.Remaining)
	}
	pad.s.Tap(97, 72)
	if err := pad.s.Close(context.Background()); err != nil {
		t.Fatal(err)
	}

	phone := newHarness(t, store)
	v := phone.s.View()
	if v.Class != config.DevicePhone || v.Capacity != 80 {
		t.Fatalf("class %v capacity %d", v.Class, v.Capacity)
	}
	if len(v.Instances) != n {
		t.Errorf("%d of %d instances survived the restart", len(v.Instances), n)
	}
	if v.Remaining != 0 {
		t.Errorf("Remaining = %d over capacity, expected 0", v.Remaining)
	}
	if _, err := phone.s.QuickSpawn(catalog.Fire); !errors.Is(err, canvas.ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}

	phone.s.Tap(200, 400)
	if err := phone.s.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	saved, _ := store.Load(context.Background(), key)
	snap, err := persist.Decode(saved)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Canvas.Instances) != n {
		t.Errorf("saved %d instances from the phone, expected %d", len(snap.Canvas.Instances), n)
	}
}

func TestUntouchedCanvasSavedAsLoaded(t *testing.T) {
	records := []persist.InstanceRecord{
		{InstanceID: "edge", DefinitionID: catalog.Fire, XNorm: 0.01, YNorm: 0.99},
		{InstanceID: "near", DefinitionID: catalog.Water, XNorm: 0.5, YNorm: 0.5},
		{InstanceID: "close", DefinitionID: catalog.Wind, XNorm: 0.52, YNorm: 0.5},
	}
	data, _ := persist.Encode(persist.Snapshot{
		Canvas: persist.CanvasState{Instances: records},
		UI:     persist.UIState{LastWorkspaceTapPoint: &persist.Point{X: 900, Y: 700}},
	})
	store := persist.NewMemoryStore()
	_ = store.Save(context.Background(), key, data)

	// A small canvas clamps the edge instance and separates the close pair.
	h := newSizedHarness(t, store, 640, 336)
	if _, err := h.s.RequestHint(); err != nil {
		t.Fatal(err)
	}
	if err := h.s.Close(context.Background()); err != nil {
		t.Fatal(err)
	}

	saved, _ := store.Load(context.Background(), key)
	snap, err := persist.Decode(saved)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(snap.Canvas.Instances, records) {
		t.Errorf("canvas rewritten: %+v", snap.Canvas.Instances)
	}
	if p := snap.UI.LastWorkspaceTapPoint; p == nil || *p != (persist.Point{X: 900, Y: 700}) {
		t.Errorf("last tap rewritten: %v", p)
	}
	if snap.AdHint.Used != 1 {
		t.Errorf("hint use not saved: %+v", snap.AdHint)
	}

	// Any canvas change saves the live canvas instead.
	h = newSizedHarness(t, store, 640, 336)
	h.s.Tap(100, 100)
	if err := h.s.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	saved, _ = store.Load(context.Background(), key)
	snap, _ = persist.Decode(saved)
	if p := snap.UI.LastWorkspaceTapPoint; p == nil || *p != (persist.Point{X: 100, Y: 100}) {
		t.Errorf("last tap = %v after a tap", p)
	}
	if snap.Canvas.Instances[0].XNorm == records[0].XNorm {
		t.Error("edge instance should be saved at its clamped position")
	}
}
