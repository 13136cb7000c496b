package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// slotKeys are the quick slot keys in slot order.
var slotKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"}

// KeyMap defines the canvas key bindings.
type KeyMap struct {
	Compendium key.Binding
	Hint       key.Binding
	Slot       key.Binding
	Cancel     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Compendium, k.Hint, k.Slot, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Compendium, k.Hint, k.Slot},
		{k.Cancel, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Compendium: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "compendium"),
		),
		Hint: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hint"),
		),
		Slot: key.NewBinding(
			key.WithKeys(slotKeys...),
			key.WithHelp("1-0", "quick slot"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SlotIndex returns the quick slot (0-based) a key selects.
func SlotIndex(msg tea.KeyMsg) (int, bool) {
	k := msg.String()
	for i, s := range slotKeys {
		if k == s {
			return i, true
		}
	}
	return 0, false
}
