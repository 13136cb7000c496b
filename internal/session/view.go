package session

import (
	"github.com/vovakirdan/genesis/internal/canvas"
	"github.com/vovakirdan/genesis/internal/catalog"
	"github.com/vovakirdan/genesis/internal/config"
	"github.com/vovakirdan/genesis/internal/core"
	"github.com/vovakirdan/genesis/internal/discovery"
	"github.com/vovakirdan/genesis/internal/gesture"
)

// View is a read-only projection of the session for rendering.
type View struct {
	Instances  []canvas.Instance
	Mode       gesture.Mode
	Grasped    string // Instance id while dragging
	Bounds     core.Rect
	Class      config.DeviceClass
	TrashZone  core.Rect
	Remaining  int
	Capacity   int
	Compendium []catalog.Definition
	Favorites  []string
	Quota      discovery.HintQuota
	LastTap    *core.Point
}

// View returns the current projection.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Instances:  s.canvas.Instances(),
		Mode:       s.gestures.Mode(),
		Bounds:     s.canvas.Bounds(),
		Class:      s.canvas.Class(),
		TrashZone:  s.canvas.TrashZone(),
		Remaining:  s.canvas.Remaining(),
		Capacity:   s.canvas.Capacity(),
		Compendium: s.tracker.Compendium(),
		Favorites:  s.tracker.Favorites(),
		Quota:      s.tracker.Quota(),
	}
	v.Grasped, _ = s.gestures.Grasped()
	if p, ok := s.canvas.LastTap(); ok {
		v.LastTap = &p
	}
	return v
}

// IsFavorite reports whether defID is a favorite.
func (v View) IsFavorite(defID string) bool {
	for _, id := range v.Favorites {
		if id == defID {
			return true
		}
	}
	return false
}
