// Package catalog holds the fixed element definitions and the recipe table.
// Both are compile-time data: nothing here is mutated at runtime.
package catalog

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/genesis/internal/core"
)

// Definition describes one kind of element.
type Definition struct {
	ID                  string
	Name                string
	Icon                string
	Color               core.Color
	DiscoveredByDefault bool
}

// Recipe combines two definitions into a third.
type Recipe struct {
	A, B   string
	Result string
}

// Key returns the canonical pair key of the recipe inputs.
func (r Recipe) Key() string {
	return ComboKey(r.A, r.B)
}

// Direction is a cardinal offset used by the base quad spawn.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Offset returns the unit vector for the direction in screen coordinates (y grows down).
func (d Direction) Offset() (dx, dy float64) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// String returns the compass letter.
func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return "?"
	}
}

// QuadSlot pairs a cardinal direction with the base element spawned there.
type QuadSlot struct {
	Dir          Direction
	DefinitionID string
}

// Element ids.
const (
	Fire  = "001"
	Water = "002"
	Wind  = "003"
	Earth = "004"
	Steam = "101"
	Mud   = "102"
	Lava  = "103"
	Storm = "104"
)

var definitions = []Definition{
	{ID: Fire, Name: "Fire", Icon: "🔥", Color: core.ColorRed, DiscoveredByDefault: true},
	{ID: Water, Name: "Water", Icon: "💧", Color: core.ColorBlue, DiscoveredByDefault: true},
	{ID: Wind, Name: "Wind", Icon: "💨", Color: core.ColorBrightCyan, DiscoveredByDefault: true},
	{ID: Earth, Name: "Earth", Icon: "🪨", Color: core.ColorBrown, DiscoveredByDefault: true},
	{ID: Steam, Name: "Steam", Icon: "☁️", Color: core.ColorBrightWhite},
	{ID: Mud, Name: "Mud", Icon: "🟫", Color: core.ColorYellow},
	{ID: Lava, Name: "Lava", Icon: "🌋", Color: core.ColorOrange},
	{ID: Storm, Name: "Storm", Icon: "⛈️", Color: core.ColorMagenta},
}

// recipes is ordered; hint selection walks it front to back.
var recipes = []Recipe{
	{A: Fire, B: Water, Result: Steam},
	{A: Water, B: Earth, Result: Mud},
	{A: Fire, B: Earth, Result: Lava},
	{A: Fire, B: Wind, Result: Storm},
}

var baseQuad = []QuadSlot{
	{Dir: North, DefinitionID: Fire},
	{Dir: East, DefinitionID: Water},
	{Dir: South, DefinitionID: Wind},
	{Dir: West, DefinitionID: Earth},
}

var (
	byID     map[string]Definition
	byCombo  map[string]string
	defaults []string
)

func init() {
	if err := build(); err != nil {
		panic(err)
	}
}

// build indexes the tables and checks every reference.
func build() error {
	byID = make(map[string]Definition, len(definitions))
	defaults = nil
	for _, d := range definitions {
		if _, dup := byID[d.ID]; dup {
			return fmt.Errorf("catalog: duplicate definition %q", d.ID)
		}
		byID[d.ID] = d
		if d.DiscoveredByDefault {
			defaults = append(defaults, d.ID)
		}
	}

	byCombo = make(map[string]string, len(recipes))
	for _, r := range recipes {
		for _, id := range []string{r.A, r.B, r.Result} {
			if _, ok := byID[id]; !ok {
				return fmt.Errorf("catalog: recipe %s references unknown definition %q", r.Key(), id)
			}
		}
		if _, dup := byCombo[r.Key()]; dup {
			return fmt.Errorf("catalog: duplicate recipe %s", r.Key())
		}
		byCombo[r.Key()] = r.Result
	}

	for _, s := range baseQuad {
		if _, ok := byID[s.DefinitionID]; !ok {
			return fmt.Errorf("catalog: base quad references unknown definition %q", s.DefinitionID)
		}
	}
	return nil
}

// ComboKey canonicalizes an unordered pair of ids by sorting and joining them.
func ComboKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "+" + b
}

// Lookup returns the definition with the given id.
func Lookup(id string) (Definition, bool) {
	d, ok := byID[id]
	return d, ok
}

// Name returns the display name for an id, or the id itself if unknown.
func Name(id string) string {
	if d, ok := byID[id]; ok {
		return d.Name
	}
	return id
}

// Combine returns the result of combining a and b, in either order.
// An unlisted pair is simply not a recipe.
func Combine(a, b string) (string, bool) {
	r, ok := byCombo[ComboKey(a, b)]
	return r, ok
}

// Recipes returns the recipe table in declaration order.
func Recipes() []Recipe {
	out := make([]Recipe, len(recipes))
	copy(out, recipes)
	return out
}

// Definitions returns every definition sorted by id.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Defaults returns the ids discovered from the start.
func Defaults() []string {
	out := make([]string, len(defaults))
	copy(out, defaults)
	return out
}

// BaseQuad returns the four base elements and their cardinal slots.
func BaseQuad() []QuadSlot {
	out := make([]QuadSlot, len(baseQuad))
	copy(out, baseQuad)
	return out
}
