package session

import (
	"github.com/vovakirdan/genesis/internal/canvas"
	"github.com/vovakirdan/genesis/internal/core"
	"github.com/vovakirdan/genesis/internal/discovery"
	"github.com/vovakirdan/genesis/internal/persist"
)

// snapshot captures the current state. Returns false while the canvas has no
// size, since positions cannot be normalized. An untouched canvas is saved
// exactly as it was loaded.
func (s *Session) snapshot() (persist.Snapshot, bool) {
	b := s.canvas.Bounds()
	if b.Empty() {
		return persist.Snapshot{}, false
	}

	insts := s.canvas.Instances()
	records := make([]persist.InstanceRecord, 0, len(insts))
	for _, inst := range insts {
		records = append(records, persist.InstanceRecord{
			InstanceID:   inst.ID,
			DefinitionID: inst.DefinitionID,
			XNorm:        inst.Pos.X / b.W,
			YNorm:        inst.Pos.Y / b.H,
		})
	}

	state := s.tracker.State()
	snap := persist.Snapshot{
		Canvas: persist.CanvasState{Instances: records},
		Collection: persist.CollectionState{
			DiscoveredByCombine: nonNil(state.DiscoveredByCombine),
			Favorites:           nonNil(state.Favorites),
		},
		AdHint: persist.AdHint{
			Date:  state.Quota.Date,
			Used:  state.Quota.Used,
			Limit: state.Quota.Limit,
		},
	}
	if p, ok := s.canvas.LastTap(); ok {
		snap.UI.LastWorkspaceTapPoint = &persist.Point{X: p.X, Y: p.Y}
	}
	if s.pristine != nil {
		snap.Canvas = s.pristine.Canvas
		snap.UI = s.pristine.UI
	}
	return snap, true
}

// apply restores a snapshot against the current canvas size.
func (s *Session) apply(snap persist.Snapshot) {
	b := s.canvas.Bounds()
	insts := make([]canvas.Instance, 0, len(snap.Canvas.Instances))
	for _, r := range snap.Canvas.Instances {
		insts = append(insts, canvas.Instance{
			ID:           r.InstanceID,
			DefinitionID: r.DefinitionID,
			Pos:          core.Pt(r.XNorm*b.W, r.YNorm*b.H),
		})
	}
	if dropped := s.canvas.Restore(insts); dropped > 0 {
		s.logger.Warn("dropped invalid saved instances", "count", dropped)
	}

	s.canvas.ClearLastTap()
	if p := snap.UI.LastWorkspaceTapPoint; p != nil {
		if pt := core.Pt(p.X, p.Y); pt.IsFinite() {
			s.canvas.SetLastTap(s.canvas.Clamp(pt))
		}
	}

	s.tracker.Restore(discovery.State{
		DiscoveredByCombine: snap.Collection.DiscoveredByCombine,
		Favorites:           snap.Collection.Favorites,
		Quota: discovery.HintQuota{
			Date:  snap.AdHint.Date,
			Used:  snap.AdHint.Used,
			Limit: snap.AdHint.Limit,
		},
	})
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
