// Package canvas owns the live element instances and every operation that
// places, moves, removes or combines them.
package canvas

import (
	"fmt"

	"github.com/vovakirdan/genesis/internal/catalog"
	"github.com/vovakirdan/genesis/internal/config"
	"github.com/vovakirdan/genesis/internal/core"
	"github.com/vovakirdan/genesis/internal/placement"
)

// Instance is one element on the canvas.
type Instance struct {
	ID           string
	DefinitionID string
	Pos          core.Point
}

// QuadResult reports how a base quad spawn went.
type QuadResult struct {
	Spawned   []Instance
	Requested int // Slots attempted after the capacity cap
}

// Partial reports whether fewer than all four base elements were placed.
func (r QuadResult) Partial() bool {
	return len(r.Spawned) < len(catalog.BaseQuad())
}

// CombineOutcome describes a finished drop onto the canvas.
type CombineOutcome struct {
	Combined bool     // False when nothing was under the drop point
	Source   Instance // Consumed inputs when Combined
	Target   Instance
	Result   Instance
}

// Manager owns the instance list. Order is z-order: later instances draw on top.
type Manager struct {
	cfg     config.Config
	bounds  core.Rect
	class   config.DeviceClass
	profile config.DeviceProfile

	instances []Instance
	lastTap   *core.Point
	newID     IDGenerator
}

// Option configures a Manager.
type Option func(*Manager)

// WithIDGenerator sets the instance id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(m *Manager) { m.newID = gen }
}

// New creates an empty canvas of the given pixel size.
func New(cfg config.Config, w, h float64, opts ...Option) *Manager {
	m := &Manager{
		cfg:   cfg,
		newID: UUIDv7(),
	}
	for _, o := range opts {
		o(m)
	}
	m.setBounds(w, h)
	return m
}

func (m *Manager) setBounds(w, h float64) {
	m.bounds = core.NewRect(0, 0, w, h)
	m.class = m.cfg.Classify(w, h)
	m.profile = m.cfg.Profile(m.class)
}

// Bounds returns the full canvas rectangle.
func (m *Manager) Bounds() core.Rect {
	return m.bounds
}

// Class returns the current device class.
func (m *Manager) Class() config.DeviceClass {
	return m.class
}

// Capacity returns the instance limit for the current device class.
func (m *Manager) Capacity() int {
	return m.profile.Capacity
}

// Len returns the number of live instances.
func (m *Manager) Len() int {
	return len(m.instances)
}

// Remaining returns how many more instances fit under the capacity.
func (m *Manager) Remaining() int {
	return core.Max(0, m.profile.Capacity-len(m.instances))
}

// SpawnRadius returns the distance fresh spawns keep from their anchor.
func (m *Manager) SpawnRadius() float64 {
	return m.profile.SpawnRadius(m.cfg.Element.Radius)
}

// TrashZone returns the drop-to-delete rectangle: a left rail on phones and
// a bottom rail on wider canvases.
func (m *Manager) TrashZone() core.Rect {
	rail := m.profile.TrashRail
	if m.class == config.DevicePhone {
		return core.NewRect(0, 0, rail, m.bounds.H)
	}
	return core.NewRect(0, m.bounds.H-rail, m.bounds.W, rail)
}

// Instances returns a copy of the live instances in z-order.
func (m *Manager) Instances() []Instance {
	out := make([]Instance, len(m.instances))
	copy(out, m.instances)
	return out
}

// Get returns the instance with the given id.
func (m *Manager) Get(id string) (Instance, bool) {
	if i := m.index(id); i >= 0 {
		return m.instances[i], true
	}
	return Instance{}, false
}

// HitTest returns the topmost instance whose center is within one radius of p.
func (m *Manager) HitTest(p core.Point) (Instance, bool) {
	for i := len(m.instances) - 1; i >= 0; i-- {
		if m.instances[i].Pos.Dist(p) <= m.cfg.Element.Radius {
			return m.instances[i], true
		}
	}
	return Instance{}, false
}

// LastTap returns the last empty-canvas tap point, if any.
func (m *Manager) LastTap() (core.Point, bool) {
	if m.lastTap == nil {
		return core.Point{}, false
	}
	return *m.lastTap, true
}

// SetLastTap records the fallback anchor for spawns without an explicit one.
func (m *Manager) SetLastTap(p core.Point) {
	m.lastTap = &p
}

// ClearLastTap forgets the fallback anchor.
func (m *Manager) ClearLastTap() {
	m.lastTap = nil
}

// Spawn places a new instance of defID near anchor. A nil anchor falls back
// to the last tap point, then to the canvas center.
func (m *Manager) Spawn(defID string, anchor *core.Point) (Instance, error) {
	if _, ok := catalog.Lookup(defID); !ok {
		return Instance{}, fmt.Errorf("%w: %q", ErrUnknownElement, defID)
	}
	if m.Remaining() <= 0 {
		return Instance{}, ErrCapacityExceeded
	}

	at := m.bounds.Center()
	switch {
	case anchor != nil:
		at = *anchor
	case m.lastTap != nil:
		at = *m.lastTap
	}

	pos, ok := placement.FindFreeSlot(at, m.occupied(), m.params(m.SpawnRadius()))
	if !ok {
		return Instance{}, ErrNoFreeSlot
	}
	return m.insert(defID, pos), nil
}

// SpawnBaseQuad places up to four base elements at the cardinal offsets
// around anchor. Each slot tries its exact point first and falls back to a
// tighter ring search. Partial placement is a valid result.
func (m *Manager) SpawnBaseQuad(anchor core.Point) (QuadResult, error) {
	remaining := m.Remaining()
	if remaining <= 0 {
		return QuadResult{}, ErrCapacityExceeded
	}

	slots := catalog.BaseQuad()
	if remaining < len(slots) {
		slots = slots[:remaining]
	}

	base := m.SpawnRadius()
	fallback := m.params(base * m.cfg.Placement.QuadStartRatio)
	result := QuadResult{Requested: len(slots)}

	for _, slot := range slots {
		dx, dy := slot.Dir.Offset()
		target := anchor.Add(dx*base, dy*base)

		occupied := m.occupied()
		pos := target
		if !placement.Fits(target, occupied, fallback) {
			var ok bool
			pos, ok = placement.FindFreeSlot(target, occupied, fallback)
			if !ok {
				continue
			}
		}
		result.Spawned = append(result.Spawned, m.insert(slot.DefinitionID, pos))
	}

	if len(result.Spawned) == 0 {
		return result, ErrNoFreeSlot
	}
	return result, nil
}

// Move puts an instance at p clamped into bounds. Separation is not enforced
// while moving; see Settle.
func (m *Manager) Move(id string, p core.Point) (Instance, error) {
	i := m.index(id)
	if i < 0 {
		return Instance{}, fmt.Errorf("%w: %s", ErrUnknownInstance, id)
	}
	m.instances[i].Pos = m.Clamp(p)
	return m.instances[i], nil
}

// Clamp restricts p to the area element centers may occupy.
func (m *Manager) Clamp(p core.Point) core.Point {
	return m.bounds.Inset(m.cfg.Element.Radius).Clamp(p)
}

// Remove deletes an instance.
func (m *Manager) Remove(id string) (Instance, error) {
	i := m.index(id)
	if i < 0 {
		return Instance{}, fmt.Errorf("%w: %s", ErrUnknownInstance, id)
	}
	inst := m.instances[i]
	m.instances = append(m.instances[:i], m.instances[i+1:]...)
	return inst, nil
}

// Combine drops sourceID at drop. The first other instance within one radius
// of the drop point is the target; with no target the outcome is a no-op.
// Combining is atomic: on any error both inputs stay exactly where they were.
func (m *Manager) Combine(sourceID string, drop core.Point) (CombineOutcome, error) {
	src, ok := m.Get(sourceID)
	if !ok {
		return CombineOutcome{}, fmt.Errorf("%w: %s", ErrUnknownInstance, sourceID)
	}

	var tgt Instance
	found := false
	for _, inst := range m.instances {
		if inst.ID != sourceID && inst.Pos.Dist(drop) <= m.cfg.Element.Radius {
			tgt, found = inst, true
			break
		}
	}
	if !found {
		return CombineOutcome{}, nil
	}

	resultID, ok := catalog.Combine(src.DefinitionID, tgt.DefinitionID)
	if !ok {
		return CombineOutcome{}, fmt.Errorf("%w: %s", ErrUnknownCombination,
			catalog.ComboKey(src.DefinitionID, tgt.DefinitionID))
	}

	remaining := m.occupied(src.ID, tgt.ID)
	start := m.SpawnRadius() * m.cfg.Placement.CombineStartRatio
	pos, ok := placement.FindFreeSlot(src.Pos.Mid(tgt.Pos), remaining, m.params(start))
	if !ok {
		return CombineOutcome{}, ErrNoFreeSlot
	}

	m.drop(src.ID, tgt.ID)
	return CombineOutcome{
		Combined: true,
		Source:   src,
		Target:   tgt,
		Result:   m.insert(resultID, pos),
	}, nil
}

// Settle restores separation for an instance at rest. If it overlaps another
// instance it moves to the nearest free slot around where it lies, then
// around fallback; failing both it returns to fallback.
func (m *Manager) Settle(id string, fallback core.Point) (Instance, bool, error) {
	i := m.index(id)
	if i < 0 {
		return Instance{}, false, fmt.Errorf("%w: %s", ErrUnknownInstance, id)
	}

	others := m.occupied(id)
	if !m.collides(m.instances[i].Pos, others) {
		return m.instances[i], false, nil
	}

	params := m.params(0)
	pos, ok := placement.FindFreeSlot(m.instances[i].Pos, others, params)
	if !ok {
		pos, ok = placement.FindFreeSlot(fallback, others, params)
	}
	if !ok {
		pos = m.Clamp(fallback)
	}
	m.instances[i].Pos = pos
	return m.instances[i], true, nil
}

// Resize changes the canvas size, rescaling positions proportionally.
// The device class follows the new shape. A shrink can pull instances closer
// than the minimum gap, so separation is restored afterwards. Instances past
// a smaller capacity are kept; Remaining reports zero until enough are gone.
func (m *Manager) Resize(w, h float64) {
	old := m.bounds
	m.setBounds(w, h)
	if old.Empty() || (old.W == w && old.H == h) {
		return
	}

	sx, sy := w/old.W, h/old.H
	for i := range m.instances {
		p := m.instances[i].Pos
		m.instances[i].Pos = m.Clamp(core.Pt(p.X*sx, p.Y*sy))
	}
	if m.lastTap != nil {
		p := core.Pt(m.lastTap.X*sx, m.lastTap.Y*sy)
		m.lastTap = &p
	}
	m.separate()
}

// Restore replaces the canvas contents with saved instances. Entries with
// unknown definitions, duplicate ids or non-finite positions are dropped.
// A surplus over the capacity is kept, as Resize does. Overlaps left by a
// different canvas shape are separated. Returns the number of dropped entries.
func (m *Manager) Restore(saved []Instance) int {
	m.instances = m.instances[:0]
	seen := make(map[string]bool, len(saved))
	dropped := 0

	for _, inst := range saved {
		_, known := catalog.Lookup(inst.DefinitionID)
		switch {
		case !known, inst.ID == "", seen[inst.ID], !inst.Pos.IsFinite():
			dropped++
			continue
		}
		seen[inst.ID] = true
		inst.Pos = m.Clamp(inst.Pos)
		m.instances = append(m.instances, inst)
	}
	m.separate()
	return dropped
}

// separate walks the instances in z-order and moves any that overlap an
// earlier one to the nearest free slot around where it lies. An instance
// with no free slot stays put.
func (m *Manager) separate() {
	params := m.params(0)
	for i := range m.instances {
		inst := &m.instances[i]
		earlier := make([]core.Point, i)
		for j := range earlier {
			earlier[j] = m.instances[j].Pos
		}
		if !m.collides(inst.Pos, earlier) {
			continue
		}
		if pos, ok := placement.FindFreeSlot(inst.Pos, m.occupied(inst.ID), params); ok {
			inst.Pos = pos
		}
	}
}

// params builds the ring search parameters for a given first ring.
func (m *Manager) params(start float64) placement.Params {
	return placement.Params{
		Bounds:      m.bounds,
		Radius:      m.cfg.Element.Radius,
		MinGap:      m.cfg.Element.MinGap(),
		StartRadius: start,
		Step:        m.cfg.RingStep(),
		MaxRadius:   m.SpawnRadius() * m.cfg.Placement.MaxRingRatio,
	}
}

// occupied returns the positions of all instances except the given ids.
func (m *Manager) occupied(except ...string) []core.Point {
	out := make([]core.Point, 0, len(m.instances))
next:
	for _, inst := range m.instances {
		for _, id := range except {
			if inst.ID == id {
				continue next
			}
		}
		out = append(out, inst.Pos)
	}
	return out
}

func (m *Manager) collides(p core.Point, others []core.Point) bool {
	minGap := m.cfg.Element.MinGap()
	for _, o := range others {
		if o.Dist(p) < minGap {
			return true
		}
	}
	return false
}

func (m *Manager) insert(defID string, pos core.Point) Instance {
	inst := Instance{ID: m.newID(), DefinitionID: defID, Pos: pos}
	m.instances = append(m.instances, inst)
	return inst
}

func (m *Manager) drop(ids ...string) {
	kept := m.instances[:0]
next:
	for _, inst := range m.instances {
		for _, id := range ids {
			if inst.ID == id {
				continue next
			}
		}
		kept = append(kept, inst)
	}
	m.instances = kept
}

func (m *Manager) index(id string) int {
	for i := range m.instances {
		if m.instances[i].ID == id {
			return i
		}
	}
	return -1
}
