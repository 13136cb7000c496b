package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/genesis/internal/catalog"
	"github.com/vovakirdan/genesis/internal/core"
	"github.com/vovakirdan/genesis/internal/gesture"
	"github.com/vovakirdan/genesis/internal/session"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightBlue:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightCyan:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorBrown:       lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// drawCanvas paints the canvas area (rows [0, rows)) of the screen.
func drawCanvas(s *core.Screen, v session.View, cfg core.RuntimeConfig, rows int) {
	if v.Mode == gesture.ModeDragging {
		drawTrash(s, v.TrashZone, cfg, rows)
	}

	if v.LastTap != nil {
		col, row := cfg.ToCell(*v.LastTap)
		if row < rows {
			s.SetColored(col, row, '+', core.ColorGray)
		}
	}

	if len(v.Instances) == 0 && rows > 2 {
		s.DrawTextCentered(rows/2, "double-click anywhere to summon the four elements", core.ColorGray)
	}

	for _, inst := range v.Instances {
		def, ok := catalog.Lookup(inst.DefinitionID)
		if !ok {
			continue
		}
		col, row := cfg.ToCell(inst.Pos)
		if row >= rows {
			continue
		}

		label := "(" + def.Name + ")"
		color := def.Color
		if inst.ID == v.Grasped {
			label = "[" + def.Name + "]"
			color = core.ColorBrightWhite
		}
		s.DrawTextColored(col-len(label)/2, row, label, color)
	}
}

// drawTrash shades the drop-to-delete rail.
func drawTrash(s *core.Screen, zone core.Rect, cfg core.RuntimeConfig, rows int) {
	c0, r0 := cfg.ToCell(core.Pt(zone.X, zone.Y))
	c1, r1 := cfg.ToCell(core.Pt(zone.Right(), zone.Bottom()))
	r1 = core.Min(r1, rows)
	s.FillArea(c0, r0, c1-c0, r1-r0, '░', core.ColorGray)
	s.DrawBox(c0, r0, c1-c0, r1-r0, core.ColorRed)

	label := " DROP TO DELETE "
	if c1-c0 < len(label) {
		label = " DEL "
	}
	s.DrawTextColored(c0+(c1-c0-len(label))/2, r0+(r1-r0)/2, label, core.ColorBrightRed)
}

// drawStatus paints the status line at row y.
func drawStatus(s *core.Screen, v session.View, y int) {
	s.FillArea(0, y, s.Width(), 1, '─', core.ColorGray)
	s.DrawTextColored(1, y, " GENESIS ", core.ColorBrightWhite)

	info := fmt.Sprintf(" elements %d/%d  discovered %d/%d  hints %d/%d ",
		len(v.Instances), v.Capacity,
		len(v.Compendium), len(catalog.Definitions()),
		v.Quota.Used, v.Quota.Limit,
	)
	s.DrawTextColored(s.Width()-len(info)-1, y, info, core.ColorGray)
}

// drawSlots paints the quick slot bar at row y.
func drawSlots(s *core.Screen, v session.View, y int) {
	x := 1
	for i, k := range slotKeys {
		name := "-"
		color := core.ColorGray
		if i < len(v.Favorites) {
			if def, ok := catalog.Lookup(v.Favorites[i]); ok {
				name, color = def.Name, def.Color
			}
		}
		s.DrawTextColored(x, y, k+":", core.ColorGray)
		s.DrawTextColored(x+2, y, name, color)
		x += len(name) + 4
	}
}

// drawToast paints a toast over row y.
func drawToast(s *core.Screen, t toast, y int) {
	s.FillArea(0, y, s.Width(), 1, ' ', core.ColorDefault)
	color := core.ColorBrightCyan
	if t.failure {
		color = core.ColorBrightRed
	}
	s.DrawTextColored(1, y, t.text, color)
}
