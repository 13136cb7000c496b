package gesture

import "github.com/vovakirdan/genesis/internal/core"

// Intent is a decision the interpreter hands back to its owner.
// The interpreter never mutates the canvas itself.
type Intent interface {
	intent()
}

// RecordTap remembers At as the fallback spawn anchor.
type RecordTap struct {
	At core.Point
}

// SpawnQuad spawns the base quad around At.
type SpawnQuad struct {
	At core.Point
}

// Duplicate spawns another copy of an instance's definition next to it.
type Duplicate struct {
	InstanceID   string
	DefinitionID string
	At           core.Point
}

// Move writes a live drag position.
type Move struct {
	InstanceID string
	To         core.Point
}

// Delete removes an instance dropped on the trash zone.
type Delete struct {
	InstanceID string
}

// Drop ends a drag outside the trash zone. From is where the drag started.
type Drop struct {
	InstanceID string
	At         core.Point
	From       core.Point
}

func (RecordTap) intent() {}
func (SpawnQuad) intent() {}
func (Duplicate) intent() {}
func (Move) intent()      {}
func (Delete) intent()    {}
func (Drop) intent()      {}
