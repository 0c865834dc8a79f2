package game

import (
	"math"
	"strings"
)

// Cell is an integer grid coordinate (column, row).
type Cell struct {
	X, Y int
}

// Point is a continuous position in playfield units.
type Point struct {
	X, Y float64
}

// Grid is the maze: a row-major wall bitmap plus the pixel size of one cell.
type Grid struct {
	Cols     int
	Rows     int
	CellSize int
	walls    []bool // row-major: index = row*Cols + col
}

// NewGrid creates a grid with every cell set to wall.
func NewGrid(cols, rows, cellSize int) *Grid {
	walls := make([]bool, cols*rows)
	for i := range walls {
		walls[i] = true
	}
	return &Grid{Cols: cols, Rows: rows, CellSize: cellSize, walls: walls}
}

// ParseGrid builds a grid from text rows where '#' is a wall and anything
// else is open floor. Rows shorter than the longest are padded with walls.
func ParseGrid(layout []string, cellSize int) *Grid {
	cols := 0
	for _, line := range layout {
		if len(line) > cols {
			cols = len(line)
		}
	}
	g := NewGrid(cols, len(layout), cellSize)
	for y, line := range layout {
		for x, ch := range line {
			if ch != '#' {
				g.SetWall(x, y, false)
			}
		}
	}
	return g
}

// InBounds returns true if (col, row) is within the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// IsWall reports whether (col, row) is a wall. Out-of-bounds cells count as walls.
func (g *Grid) IsWall(col, row int) bool {
	if !g.InBounds(col, row) {
		return true
	}
	return g.walls[row*g.Cols+col]
}

// SetWall sets the wall flag for a cell.
func (g *Grid) SetWall(col, row int, wall bool) {
	if !g.InBounds(col, row) {
		return
	}
	g.walls[row*g.Cols+col] = wall
}

// Width returns the playfield width in units.
func (g *Grid) Width() float64 { return float64(g.Cols * g.CellSize) }

// Height returns the playfield height in units.
func (g *Grid) Height() float64 { return float64(g.Rows * g.CellSize) }

// CellCenter returns the centre point of a cell.
func (g *Grid) CellCenter(c Cell) Point {
	half := float64(g.CellSize) / 2
	return Point{
		X: float64(c.X*g.CellSize) + half,
		Y: float64(c.Y*g.CellSize) + half,
	}
}

// CellAt returns the cell containing the point (x, y).
func (g *Grid) CellAt(x, y float64) Cell {
	cs := float64(g.CellSize)
	return Cell{X: int(math.Floor(x / cs)), Y: int(math.Floor(y / cs))}
}

// OpenCells returns every non-wall cell in row-major order.
func (g *Grid) OpenCells() []Cell {
	var out []Cell
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if !g.walls[y*g.Cols+x] {
				out = append(out, Cell{X: x, Y: y})
			}
		}
	}
	return out
}

// String renders the grid with '#' for walls and '.' for floor.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			if g.walls[y*g.Cols+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
