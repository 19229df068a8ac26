// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package terminal

// Grid is a minimal terminal emulator: a fixed-size character grid with a
// cursor that understands "\r", "\n", "\b" and the CSI sequences "2J"
// (erase screen) and "H" (cursor home). Other escape sequences are consumed.
// Writing past the right edge wraps; moving below the last row scrolls.
type Grid struct {
	width, height int
	cells         [][]rune
	x, y          int

	esc    int // 0 outside a sequence, 1 after ESC, 2 inside CSI
	params []rune
}

// NewGrid creates a blank grid of the given size.
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Resize(width, height)
	return g
}

// Size returns the grid dimensions.
func (g *Grid) Size() (int, int) {
	return g.width, g.height
}

// Cursor returns the cursor position.
func (g *Grid) Cursor() (int, int) {
	return g.x, g.y
}

// Cell returns the rune at x, y; blank cells are spaces.
func (g *Grid) Cell(x, y int) rune {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return ' '
	}
	return g.cells[y][x]
}

// Row returns row y as a string with trailing blanks kept.
func (g *Grid) Row(y int) string {
	if y < 0 || y >= g.height {
		return ""
	}
	return string(g.cells[y])
}

// Resize changes the grid size, keeping the bottom rows and clamping the
// cursor.
func (g *Grid) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	cells := make([][]rune, height)
	for i := range cells {
		cells[i] = blankRow(width)
	}
	shift := 0
	if g.y >= height {
		shift = g.y - height + 1
	}
	for y := 0; y < height && y+shift < g.height; y++ {
		copy(cells[y], g.cells[y+shift])
	}
	g.cells = cells
	g.width, g.height = width, height
	g.y -= shift
	if g.x >= width {
		g.x = width - 1
	}
}

// Write interprets text at the cursor.
func (g *Grid) Write(text string) {
	for _, r := range text {
		if g.esc > 0 || r == escape {
			g.escapeRune(r)
			continue
		}
		switch r {
		case '\r':
			g.x = 0
		case '\n':
			g.lineFeed()
		case '\b':
			if g.x > 0 {
				g.x--
			}
		default:
			if r < 0x20 || r == 0x7f {
				continue
			}
			if g.x >= g.width {
				g.x = 0
				g.lineFeed()
			}
			g.cells[g.y][g.x] = r
			g.x++
		}
	}
}

func (g *Grid) escapeRune(r rune) {
	switch g.esc {
	case 0:
		g.esc = 1
		g.params = g.params[:0]
	case 1:
		if r == '[' {
			g.esc = 2
		} else {
			g.esc = 0
		}
	case 2:
		if r < 0x40 || r > 0x7e {
			g.params = append(g.params, r)
			return
		}
		g.esc = 0
		switch {
		case r == 'J' && string(g.params) == "2":
			for y := range g.cells {
				g.cells[y] = blankRow(g.width)
			}
		case r == 'H' && len(g.params) == 0:
			g.x, g.y = 0, 0
		}
	}
}

func (g *Grid) lineFeed() {
	if g.y < g.height-1 {
		g.y++
		return
	}
	copy(g.cells, g.cells[1:])
	g.cells[g.height-1] = blankRow(g.width)
}

func blankRow(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	return row
}
