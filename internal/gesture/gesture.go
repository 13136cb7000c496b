// Package gesture turns raw tap and drag events into intents.
//
// Two independent machines live here. Tap memory recognizes double taps on
// either an instance or empty canvas. The drag machine moves between Idle and
// Grasped, following grant, move*, then release or terminate.
package gesture

import (
	"time"

	"github.com/vovakirdan/genesis/internal/canvas"
	"github.com/vovakirdan/genesis/internal/config"
	"github.com/vovakirdan/genesis/internal/core"
)

// Mode is the global interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDragging
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeDragging {
		return "dragging"
	}
	return "normal"
}

// Surface is the read-only canvas view the interpreter needs.
type Surface interface {
	HitTest(p core.Point) (canvas.Instance, bool)
	Get(id string) (canvas.Instance, bool)
	Clamp(p core.Point) core.Point
	TrashZone() core.Rect
}

// tapMemory is the previous tap; target is an instance id or "" for empty canvas.
type tapMemory struct {
	point  core.Point
	at     time.Time
	target string
}

// grasp tracks the active drag.
type grasp struct {
	id       string
	start    core.Point
	contact  core.Point
	dragging bool // Travel has exceeded the drag threshold
}

// Interpreter owns tap memory and the drag state machine.
type Interpreter struct {
	cfg     config.GestureConfig
	surface Surface
	clock   Clock

	pending *tapMemory
	active  *grasp
}

// New creates an interpreter reading geometry from surface.
func New(cfg config.GestureConfig, surface Surface, clock Clock) *Interpreter {
	if clock == nil {
		clock = SystemClock
	}
	return &Interpreter{cfg: cfg, surface: surface, clock: clock}
}

// Mode reports whether a drag is in progress.
func (in *Interpreter) Mode() Mode {
	if in.active != nil {
		return ModeDragging
	}
	return ModeNormal
}

// Grasped returns the id of the grasped instance, if any.
func (in *Interpreter) Grasped() (string, bool) {
	if in.active == nil {
		return "", false
	}
	return in.active.id, true
}

// Tap handles a tap on the canvas at p. Taps are ignored while dragging.
func (in *Interpreter) Tap(p core.Point) []Intent {
	if in.active != nil {
		return nil
	}
	target := ""
	if inst, ok := in.surface.HitTest(p); ok {
		target = inst.ID
	}
	return in.tap(p, target)
}

func (in *Interpreter) tap(p core.Point, target string) []Intent {
	now := in.clock.Now()
	intents := []Intent{RecordTap{At: p}}

	prev := in.pending
	if prev != nil &&
		prev.target == target &&
		now.Sub(prev.at) <= in.cfg.DoubleTapWindow() &&
		prev.point.Dist(p) <= in.cfg.TapSlop {
		in.pending = nil
		if target == "" {
			return append(intents, SpawnQuad{At: p})
		}
		if inst, ok := in.surface.Get(target); ok {
			return append(intents, Duplicate{
				InstanceID:   inst.ID,
				DefinitionID: inst.DefinitionID,
				At:           inst.Pos,
			})
		}
		return intents
	}

	in.pending = &tapMemory{point: p, at: now, target: target}
	return intents
}

// Grant starts a drag on instance id contacted at p. Repeated grants for the
// grasped instance and grants for a second instance are ignored.
func (in *Interpreter) Grant(id string, p core.Point) []Intent {
	if in.active != nil {
		return nil
	}
	inst, ok := in.surface.Get(id)
	if !ok {
		return nil
	}
	in.active = &grasp{id: id, start: inst.Pos, contact: p}
	return nil
}

// DragMove handles cumulative travel (dx, dy) since the grant.
func (in *Interpreter) DragMove(id string, dx, dy float64) []Intent {
	g := in.grasped(id)
	if g == nil {
		return nil
	}
	if !g.dragging {
		if core.Pt(0, 0).Dist(core.Pt(dx, dy)) <= in.cfg.DragStart {
			return nil
		}
		g.dragging = true
	}
	return []Intent{Move{InstanceID: id, To: in.surface.Clamp(g.start.Add(dx, dy))}}
}

// Release ends the drag with cumulative travel (dx, dy). A release that never
// crossed the drag threshold counts as a tap on the instance.
func (in *Interpreter) Release(id string, dx, dy float64) []Intent {
	g := in.grasped(id)
	if g == nil {
		return nil
	}
	in.active = nil

	if !g.dragging {
		return in.tap(g.contact.Add(dx, dy), id)
	}

	at := in.surface.Clamp(g.start.Add(dx, dy))
	if in.surface.TrashZone().Contains(at) {
		return []Intent{Delete{InstanceID: id}}
	}
	return []Intent{Drop{InstanceID: id, At: at, From: g.start}}
}

// Terminate abandons the drag with no side effect.
func (in *Interpreter) Terminate(id string) {
	if in.grasped(id) != nil {
		in.active = nil
	}
}

// Reset drops any drag and tap memory, e.g. after the canvas was replaced.
func (in *Interpreter) Reset() {
	in.active = nil
	in.pending = nil
}

func (in *Interpreter) grasped(id string) *grasp {
	if in.active == nil || in.active.id != id {
		return nil
	}
	return in.active
}
