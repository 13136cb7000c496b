package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/genesis/internal/core"
	"github.com/vovakirdan/genesis/internal/session"
)

// chromeRows is the number of rows under the canvas: status, slots, help.
const chromeRows = 3

// dragState tracks a mouse drag on an instance.
type dragState struct {
	id     string
	origin core.Point // Canvas position of the press
}

// Model is the Bubble Tea model for the canvas.
type Model struct {
	sess       *session.Session
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	drag       *dragState
	compendium *CompendiumModel
	toasts     []toast
	quitting   bool
}

// NewModel creates a model over a started session.
func NewModel(sess *session.Session, cfg core.RuntimeConfig) Model {
	return Model{
		sess:   sess,
		screen: core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1)),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

// CanvasConfig returns the part of cfg covered by the canvas, without the
// chrome rows underneath it.
func CanvasConfig(cfg core.RuntimeConfig) core.RuntimeConfig {
	cfg.ScreenH = max(1, cfg.ScreenH-chromeRows)
	return cfg
}

// canvasRows returns the number of terminal rows given to the canvas.
func (m Model) canvasRows() int {
	return CanvasConfig(m.config).ScreenH
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m = m.handleResize(wsm)
	}

	if m.compendium != nil {
		return m.updateCompendium(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		now := time.Time(msg)
		m.pushNotices(now)
		m.expireToasts(now)
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.cancelDrag()

	case key.Matches(msg, m.keys.Compendium):
		m.cancelDrag()
		c := NewCompendiumModel(m.sess, m.config.ScreenW, m.config.ScreenH)
		m.compendium = &c

	case key.Matches(msg, m.keys.Hint):
		_, _ = m.sess.RequestHint()

	case key.Matches(msg, m.keys.Slot):
		if i, ok := SlotIndex(msg); ok {
			_, _ = m.sess.QuickSlot(i)
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case msg.String() == "ctrl+s":
		m.saveScreenshot()
	}

	m.pushNotices(time.Now())
	return m, nil
}

// handleMouse maps presses, motion and releases to session gestures.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := m.config.ToCanvas(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y >= m.canvasRows() {
			return m, nil
		}
		m.cancelDrag()
		if inst, ok := m.sess.InstanceAt(p.X, p.Y); ok {
			m.sess.DragGrant(inst.ID, p.X, p.Y)
			m.drag = &dragState{id: inst.ID, origin: p}
		} else {
			m.sess.Tap(p.X, p.Y)
		}

	case tea.MouseActionMotion:
		if m.drag != nil {
			m.sess.DragMove(m.drag.id, p.X-m.drag.origin.X, p.Y-m.drag.origin.Y)
		}

	case tea.MouseActionRelease:
		if m.drag != nil {
			m.sess.DragRelease(m.drag.id, p.X-m.drag.origin.X, p.Y-m.drag.origin.Y)
			m.drag = nil
		}
	}

	m.pushNotices(time.Now())
	return m, nil
}

// cancelDrag abandons a drag whose release was never seen.
func (m *Model) cancelDrag() {
	if m.drag != nil {
		m.sess.DragTerminate(m.drag.id)
		m.drag = nil
	}
}

// handleResize processes window resize events. The canvas keeps its layout
// proportionally.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-1))
	m.help.Width = msg.Width
	m.drag = nil
	m.sess.Resize(CanvasConfig(m.config).CanvasSize())
	return m
}

// updateCompendium routes messages to the compendium overlay.
func (m Model) updateCompendium(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tick, ok := msg.(TickMsg); ok {
		now := time.Time(tick)
		m.pushNotices(now)
		m.expireToasts(now)
		return m, tickCmd(m.config.TickRate)
	}

	c, cmd := m.compendium.Update(msg)
	m.compendium = &c
	if c.Quitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if c.Closed() {
		m.compendium = nil
	}
	return m, cmd
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	dir := filepath.Join(os.Getenv("HOME"), ".genesis", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("canvas_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, play continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// render paints the canvas and chrome into the screen buffer.
func (m Model) render() {
	v := m.sess.View()
	rows := m.canvasRows()

	m.screen.Clear()
	drawCanvas(m.screen, v, m.config, rows)
	drawStatus(m.screen, v, rows)
	if n := len(m.toasts); n > 0 {
		drawToast(m.screen, m.toasts[n-1], rows+1)
	} else {
		drawSlots(m.screen, v, rows+1)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.compendium != nil {
		return m.compendium.View()
	}

	m.render()

	// The help row is styled by bubbles, so it sits outside the cell buffer.
	out := RenderScreen(m.screen)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return out + "\n" + helpStyle.Render(" "+m.help.View(m.keys))
}

// Run starts the Bubble Tea program over sess and closes the session on exit.
func Run(sess *session.Session, cfg core.RuntimeConfig) error {
	model := NewModel(sess, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Press, drag motion and release
	)

	_, err := p.Run()
	if closeErr := sess.Close(context.Background()); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
