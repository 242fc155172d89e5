// Package puzzle holds the crossword model shared by extraction and encoding:
// the black/white grid, its numbered slots, the bound clues and the metadata.
package puzzle

import (
	"fmt"
	"strings"

	"img2puz/internal/errors"
)

// MaxDimension is the largest width or height the puzzle file can describe.
const MaxDimension = 255

// Cell is one grid position. Solution is zero when the answer letter is unknown.
type Cell struct {
	Row      int
	Col      int
	IsBlack  bool
	Solution byte
}

// Grid is a rectangular, row-major sequence of cells.
type Grid struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewGrid builds a grid from a row-major black mask.
func NewGrid(width, height int, black []bool) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, errors.NewExtraction("grid must be at least 1x1, got %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return nil, errors.NewExtraction("grid must be at most %dx%d, got %dx%d", MaxDimension, MaxDimension, width, height)
	}
	if len(black) != width*height {
		return nil, errors.NewExtraction("grid mask has %d cells, want %d", len(black), width*height)
	}

	g := &Grid{Width: width, Height: height, Cells: make([]Cell, 0, width*height)}
	white := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			isBlack := black[y*width+x]
			if !isBlack {
				white++
			}
			g.Cells = append(g.Cells, Cell{Row: y, Col: x, IsBlack: isBlack})
		}
	}
	if white == 0 {
		return nil, errors.NewGridTopology("grid has no white cells")
	}
	return g, nil
}

// Index returns the flat index of (row, col).
func (g *Grid) Index(row, col int) int {
	return row*g.Width + col
}

// IsWhite reports whether (row, col) is inside the grid and fillable.
func (g *Grid) IsWhite(row, col int) bool {
	if row < 0 || col < 0 || row >= g.Height || col >= g.Width {
		return false
	}
	return !g.Cells[g.Index(row, col)].IsBlack
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Width: g.Width, Height: g.Height, Cells: cells}
}

// SetSolution fills answer letters from newline separated rows. '.' and '#'
// mark black cells, '-', '?' and ' ' leave a white cell unknown.
func (g *Grid) SetSolution(text string) error {
	rows := strings.Split(strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n"), "\n")
	if len(rows) != g.Height {
		return errors.NewInvalidRequest(fmt.Sprintf("solution has %d rows, grid has %d", len(rows), g.Height))
	}

	letters := make([]byte, len(g.Cells))
	for y, row := range rows {
		row = strings.TrimRight(row, "\t ")
		if len(row) > g.Width {
			return errors.NewInvalidRequest(fmt.Sprintf("solution row %d has %d cells, grid has %d", y+1, len(row), g.Width))
		}
		row += strings.Repeat(" ", g.Width-len(row))
		for x := 0; x < g.Width; x++ {
			c := row[x]
			cell := g.Cells[g.Index(y, x)]
			switch {
			case c == '.' || c == '#':
				if !cell.IsBlack {
					return errors.NewInvalidRequest(fmt.Sprintf("solution marks (%d,%d) black but the image shows a white cell", y, x))
				}
			case c == '-' || c == '?' || c == ' ':
				if cell.IsBlack {
					return errors.NewInvalidRequest(fmt.Sprintf("solution leaves black cell (%d,%d) open", y, x))
				}
			case (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
				if cell.IsBlack {
					return errors.NewInvalidRequest(fmt.Sprintf("solution puts %q in black cell (%d,%d)", c, y, x))
				}
				if c >= 'a' && c <= 'z' {
					c -= 'a' - 'A'
				}
				letters[g.Index(y, x)] = c
			default:
				return errors.NewInvalidRequest(fmt.Sprintf("solution has unsupported character %q at (%d,%d)", c, y, x))
			}
		}
	}

	for i := range g.Cells {
		g.Cells[i].Solution = letters[i]
	}
	return nil
}

// String renders the grid with '#' for black cells and the solution letter
// (or '.') for white cells, one line per row.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.Cells[g.Index(y, x)]
			switch {
			case c.IsBlack:
				b.WriteByte('#')
			case c.Solution != 0:
				b.WriteByte(c.Solution)
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseGrid builds a grid from rows of '#' (black) and any other byte (white).
// Letters A-Z are kept as solutions. It is mostly useful for fixtures.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, errors.NewExtraction("grid has no rows")
	}
	width := len(rows[0])
	black := make([]bool, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, errors.NewExtraction("row %d has %d cells, want %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			black = append(black, row[x] == '#')
		}
	}
	g, err := NewGrid(width, len(rows), black)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		for x := 0; x < width; x++ {
			if c := row[x]; c >= 'A' && c <= 'Z' {
				g.Cells[g.Index(y, x)].Solution = c
			}
		}
	}
	return g, nil
}
