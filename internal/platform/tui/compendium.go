package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/genesis/internal/catalog"
	"github.com/vovakirdan/genesis/internal/session"
)

// CompendiumKeyMap defines the key bindings for the compendium.
type CompendiumKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Favorite key.Binding
	Place    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k CompendiumKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Favorite, k.Place, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k CompendiumKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Favorite, k.Place},
		{k.Back, k.Quit},
	}
}

// DefaultCompendiumKeyMap returns default key bindings.
func DefaultCompendiumKeyMap() CompendiumKeyMap {
	return CompendiumKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f", " "),
			key.WithHelp("f", "favorite"),
		),
		Place: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "place"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "c", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// CompendiumModel lists discovered elements. It is shown over the canvas.
type CompendiumModel struct {
	sess    *session.Session
	entries []catalog.Definition
	table   table.Model
	help    help.Model
	keys    CompendiumKeyMap
	width   int
	height  int
	closed  bool
	quit    bool
}

// NewCompendiumModel creates a compendium over sess.
func NewCompendiumModel(sess *session.Session, width, height int) CompendiumModel {
	h := help.New()
	h.ShowAll = false

	m := CompendiumModel{
		sess:   sess,
		keys:   DefaultCompendiumKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.refresh()
	return m
}

// createTable creates a new table sized to the window.
func (m *CompendiumModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "No.", Width: 5},
		{Title: "Element", Width: 14},
		{Title: "Slot", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// refresh reloads entries from the session, keeping the cursor.
func (m *CompendiumModel) refresh() {
	v := m.sess.View()
	m.entries = v.Compendium

	rows := make([]table.Row, len(m.entries))
	for i, def := range m.entries {
		slot := ""
		for si, id := range v.Favorites {
			if id == def.ID {
				slot = "★ " + slotKeys[si]
			}
		}
		rows[i] = table.Row{def.ID, def.Name, slot}
	}

	cursor := m.table.Cursor()
	m.table.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	m.table.SetCursor(max(0, cursor))
}

// selected returns the highlighted element.
func (m CompendiumModel) selected() (catalog.Definition, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return catalog.Definition{}, false
	}
	return m.entries[i], true
}

// Init initializes the compendium model.
func (m CompendiumModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the compendium.
func (m CompendiumModel) Update(msg tea.Msg) (CompendiumModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.closed = true
			return m, nil

		case key.Matches(msg, m.keys.Favorite):
			if def, ok := m.selected(); ok {
				_, _ = m.sess.ToggleFavorite(def.ID)
				m.refresh()
			}
			return m, nil

		case key.Matches(msg, m.keys.Place):
			if def, ok := m.selected(); ok {
				if _, err := m.sess.QuickSpawn(def.ID); err == nil {
					m.closed = true
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.refresh()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the compendium.
func (m CompendiumModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "COMPENDIUM"
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.table.View())))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Closed reports whether the player left the compendium.
func (m CompendiumModel) Closed() bool {
	return m.closed
}

// Quitting reports whether the player asked to quit from the compendium.
func (m CompendiumModel) Quitting() bool {
	return m.quit
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
