package game

import "github.com/sirupsen/logrus"

// carveDirs are the lattice steps in up, right, down, left order.
var carveDirs = [4]Cell{{0, -2}, {2, 0}, {0, 2}, {-2, 0}}

// CarveMaze generates a maze by randomized depth-first carving on the odd
// lattice. Every open cell is reachable from start and the border stays solid.
func CarveMaze(cols, rows, cellSize int, start Cell, rng Rand) *Grid {
	g := NewGrid(cols, rows, cellSize)
	if cols < 3 || rows < 3 {
		return g
	}
	start = snapToLattice(start, cols, rows)

	g.SetWall(start.X, start.Y, false)
	stack := []Cell{start}
	neighbors := make([]Cell, 0, 4)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		neighbors = neighbors[:0]
		for _, d := range carveDirs {
			n := Cell{X: cur.X + d.X, Y: cur.Y + d.Y}
			if n.X > 0 && n.X < cols-1 && n.Y > 0 && n.Y < rows-1 && g.IsWall(n.X, n.Y) {
				neighbors = append(neighbors, n)
			}
		}
		if len(neighbors) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := neighbors[rng.Intn(len(neighbors))]
		g.SetWall(next.X, next.Y, false)
		g.SetWall(cur.X+(next.X-cur.X)/2, cur.Y+(next.Y-cur.Y)/2, false)
		stack = append(stack, next)
	}
	return g
}

// snapToLattice moves a start cell onto the nearest odd interior cell.
func snapToLattice(c Cell, cols, rows int) Cell {
	snap := func(v, size int) int {
		if v < 1 {
			v = 1
		}
		if v > size-2 {
			v = size - 2
		}
		if v%2 == 0 {
			v--
		}
		return v
	}
	s := Cell{X: snap(c.X, cols), Y: snap(c.Y, rows)}
	if s != c {
		mazeLog.WithFields(logrus.Fields{
			"requested": c,
			"snapped":   s,
		}).Warn("maze start is not an odd interior cell")
	}
	return s
}
