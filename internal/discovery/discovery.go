// Package discovery tracks which elements the player has unlocked, their
// favorites, and the daily hint quota.
package discovery

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/genesis/internal/catalog"
	"github.com/vovakirdan/genesis/internal/config"
)

var (
	ErrFavoritesFull  = errors.New("discovery: favorites full")
	ErrNotDiscovered  = errors.New("discovery: element not discovered")
	ErrQuotaExhausted = errors.New("discovery: hint quota exhausted")
	ErrNoCandidates   = errors.New("discovery: no hint candidates")
)

// Clock supplies the current time for the hint day.
type Clock interface {
	Now() time.Time
}

// DateLayout is the calendar day format stored with the quota.
const DateLayout = "2006-01-02"

// Today returns the UTC calendar day of t.
func Today(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// HintQuota counts hints granted on Date.
type HintQuota struct {
	Date  string
	Used  int
	Limit int
}

// Remaining returns the hints left for the day.
func (q HintQuota) Remaining() int {
	return max(0, q.Limit-q.Used)
}

// Hint names a recipe whose inputs are known and whose result is not.
type Hint struct {
	A, B   catalog.Definition
	Result catalog.Definition
}

// String renders the hint as "A + B = Result".
func (h Hint) String() string {
	return fmt.Sprintf("%s + %s = %s", h.A.Name, h.B.Name, h.Result.Name)
}

// State is the persisted part of a tracker.
type State struct {
	DiscoveredByCombine []string
	Favorites           []string
	Quota               HintQuota
}

// Tracker owns the discovery set, favorites and hint quota.
type Tracker struct {
	favoritesMax int
	dailyLimit   int
	clock        Clock

	known     map[string]bool // Defaults plus everything combined
	combined  []string        // In discovery order
	favorites []string
	quota     HintQuota
}

// New creates a tracker seeded with the default-discovered elements.
func New(cfg config.Config, clock Clock) *Tracker {
	t := &Tracker{
		favoritesMax: cfg.Collection.FavoritesMax,
		dailyLimit:   cfg.Hint.DailyLimit,
		clock:        clock,
	}
	t.reset()
	return t
}

func (t *Tracker) reset() {
	t.known = make(map[string]bool)
	for _, id := range catalog.Defaults() {
		t.known[id] = true
	}
	t.combined = nil
	t.favorites = nil
	t.quota = t.freshQuota()
}

func (t *Tracker) freshQuota() HintQuota {
	return HintQuota{Date: Today(t.clock.Now()), Limit: t.dailyLimit}
}

// Restore replaces the tracker state with saved state. Unknown ids and
// duplicates are dropped, favorites are cut to the maximum, and a quota from
// another day is replaced by a fresh one.
func (t *Tracker) Restore(s State) {
	t.reset()
	for _, id := range s.DiscoveredByCombine {
		t.Record(id)
	}
	for _, id := range s.Favorites {
		if len(t.favorites) >= t.favoritesMax {
			break
		}
		if t.known[id] && !slices.Contains(t.favorites, id) {
			t.favorites = append(t.favorites, id)
		}
	}
	t.quota = s.Quota
	t.normalize()
}

// State returns a snapshot of the persisted state.
func (t *Tracker) State() State {
	return State{
		DiscoveredByCombine: slices.Clone(t.combined),
		Favorites:           slices.Clone(t.favorites),
		Quota:               t.quota,
	}
}

// Record marks id discovered. Returns true only on first discovery.
func (t *Tracker) Record(id string) bool {
	if _, ok := catalog.Lookup(id); !ok || t.known[id] {
		return false
	}
	t.known[id] = true
	t.combined = append(t.combined, id)
	return true
}

// IsDiscovered reports whether id is unlocked.
func (t *Tracker) IsDiscovered(id string) bool {
	return t.known[id]
}

// Compendium returns the unlocked definitions sorted by id.
func (t *Tracker) Compendium() []catalog.Definition {
	var out []catalog.Definition
	for _, def := range catalog.Definitions() {
		if t.known[def.ID] {
			out = append(out, def)
		}
	}
	return out
}

// Favorites returns the favorites in insertion order.
func (t *Tracker) Favorites() []string {
	return slices.Clone(t.favorites)
}

// IsFavorite reports whether id is a favorite.
func (t *Tracker) IsFavorite(id string) bool {
	return slices.Contains(t.favorites, id)
}

// ToggleFavorite removes id if present, otherwise appends it.
// Returns whether id is now a favorite.
func (t *Tracker) ToggleFavorite(id string) (bool, error) {
	if i := slices.Index(t.favorites, id); i >= 0 {
		t.favorites = slices.Delete(t.favorites, i, i+1)
		return false, nil
	}
	if !t.known[id] {
		return false, fmt.Errorf("%w: %s", ErrNotDiscovered, catalog.Name(id))
	}
	if len(t.favorites) >= t.favoritesMax {
		return false, ErrFavoritesFull
	}
	t.favorites = append(t.favorites, id)
	return true, nil
}

// QuickSlot returns the favorite assigned to slot i.
func (t *Tracker) QuickSlot(i int) (string, bool) {
	if i < 0 || i >= len(t.favorites) {
		return "", false
	}
	return t.favorites[i], true
}

// Quota returns the hint quota for today.
func (t *Tracker) Quota() HintQuota {
	t.normalize()
	return t.quota
}

func (t *Tracker) normalize() {
	if t.quota.Date != Today(t.clock.Now()) {
		t.quota = t.freshQuota()
	}
}

// Candidates returns every hint available now, in recipe table order.
func (t *Tracker) Candidates() []Hint {
	var out []Hint
	for _, r := range catalog.Recipes() {
		if t.known[r.Result] || !t.known[r.A] || !t.known[r.B] {
			continue
		}
		a, _ := catalog.Lookup(r.A)
		b, _ := catalog.Lookup(r.B)
		res, _ := catalog.Lookup(r.Result)
		out = append(out, Hint{A: a, B: b, Result: res})
	}
	return out
}

// RequestHint spends one hint on the first available candidate.
// The quota is only charged when a hint is returned.
func (t *Tracker) RequestHint() (Hint, error) {
	t.normalize()
	if t.quota.Used >= t.quota.Limit {
		return Hint{}, ErrQuotaExhausted
	}
	candidates := t.Candidates()
	if len(candidates) == 0 {
		return Hint{}, ErrNoCandidates
	}
	t.quota.Used++
	return candidates[0], nil
}
