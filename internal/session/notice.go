package session

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/genesis/internal/canvas"
	"github.com/vovakirdan/genesis/internal/catalog"
	"github.com/vovakirdan/genesis/internal/discovery"
)

// Notice is a user-facing outcome for the presentation layer to show.
type Notice interface {
	notice()
}

// SpawnedNotice reports new instances from a spawn, duplicate or quad.
type SpawnedNotice struct {
	Instances []canvas.Instance
}

func (SpawnedNotice) notice() {}

// PartialSpawnNotice reports a base quad that placed fewer than four elements.
type PartialSpawnNotice struct {
	Count     int
	Requested int
}

func (PartialSpawnNotice) notice() {}

// CombinedNotice reports a successful combine.
type CombinedNotice struct {
	A, B   string // Consumed definition ids
	Result canvas.Instance
}

func (CombinedNotice) notice() {}

// DiscoveredNotice reports a first discovery.
type DiscoveredNotice struct {
	Definition catalog.Definition
}

func (DiscoveredNotice) notice() {}

// DeletedNotice reports an instance dropped on the trash zone.
type DeletedNotice struct {
	Instance canvas.Instance
}

func (DeletedNotice) notice() {}

// FavoriteNotice reports a favorite toggle.
type FavoriteNotice struct {
	DefinitionID string
	Added        bool
}

func (FavoriteNotice) notice() {}

// HintNotice reports a granted hint.
type HintNotice struct {
	Hint  discovery.Hint
	Quota discovery.HintQuota
}

func (HintNotice) notice() {}

// FailureNotice reports a declined operation. Nothing changed.
type FailureNotice struct {
	Op  string
	Err error
}

func (FailureNotice) notice() {}

// Message returns the text shown to the player.
func (n FailureNotice) Message() string {
	switch {
	case errors.Is(n.Err, canvas.ErrCapacityExceeded):
		return "The canvas is full"
	case errors.Is(n.Err, canvas.ErrNoFreeSlot):
		return "No room to place that"
	case errors.Is(n.Err, canvas.ErrUnknownCombination):
		return "Those two don't combine (yet)"
	case errors.Is(n.Err, discovery.ErrFavoritesFull):
		return "Favorites are full"
	case errors.Is(n.Err, discovery.ErrNotDiscovered):
		return "Discover that element first"
	case errors.Is(n.Err, discovery.ErrQuotaExhausted):
		return "No hints left today"
	case errors.Is(n.Err, discovery.ErrNoCandidates):
		return "No undiscovered combination is reachable right now"
	case errors.Is(n.Err, ErrEmptySlot):
		return "That quick slot is empty"
	default:
		return fmt.Sprintf("%s failed: %v", n.Op, n.Err)
	}
}
