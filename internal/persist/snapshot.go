// Package persist defines the saved-state snapshot, the blob store it is
// written to, and the debounced saver that writes it.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorrupt marks a snapshot that could not be decoded.
var ErrCorrupt = errors.New("persist: corrupt snapshot")

// Snapshot is the single saved record. Instance positions are normalized to
// 0..1 by the canvas size at save time.
type Snapshot struct {
	Canvas     CanvasState     `json:"canvas"`
	Collection CollectionState `json:"collection"`
	UI         UIState         `json:"ui"`
	AdHint     AdHint          `json:"adHint"`
}

// CanvasState holds the saved instances.
type CanvasState struct {
	Instances []InstanceRecord `json:"instances"`
}

// InstanceRecord is one saved instance.
type InstanceRecord struct {
	InstanceID   string  `json:"instanceId"`
	DefinitionID string  `json:"definitionId"`
	XNorm        float64 `json:"xNorm"`
	YNorm        float64 `json:"yNorm"`
}

// CollectionState holds discoveries beyond the defaults and favorites.
type CollectionState struct {
	DiscoveredByCombine []string `json:"discoveredByCombine"`
	Favorites           []string `json:"favorites"`
}

// UIState holds presentation hints that survive restarts.
type UIState struct {
	LastWorkspaceTapPoint *Point `json:"lastWorkspaceTapPoint"`
}

// Point is an absolute canvas position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AdHint is the saved hint quota.
type AdHint struct {
	Date  string `json:"date"`
	Used  int    `json:"used"`
	Limit int    `json:"limit"`
}

// Encode serializes a snapshot.
func Encode(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("persist: encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot. Any parse failure wraps ErrCorrupt.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return s, nil
}
