package core

// RuntimeConfig contains configuration passed to the presentation layer at startup.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // UI refresh ticks per second (default 30)

	// CellW and CellH convert terminal cells to canvas pixels.
	// The engine works in pixels; the terminal only approximates them.
	CellW float64
	CellH float64
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		CellW:    8,
		CellH:    16,
	}
}

// CanvasSize returns the canvas dimensions in pixels for the configured screen.
func (c RuntimeConfig) CanvasSize() (w, h float64) {
	return float64(c.ScreenW) * c.CellW, float64(c.ScreenH) * c.CellH
}

// ToCanvas converts a terminal cell to the pixel at its center.
func (c RuntimeConfig) ToCanvas(col, row int) Point {
	return Point{X: (float64(col) + 0.5) * c.CellW, Y: (float64(row) + 0.5) * c.CellH}
}

// ToCell converts a canvas pixel to the terminal cell containing it.
func (c RuntimeConfig) ToCell(p Point) (col, row int) {
	return int(p.X / c.CellW), int(p.Y / c.CellH)
}
