package game

import "math"

// Body is the shared physical shape of the player and the stalker.
type Body struct {
	X, Y   float64
	Radius float64
	Speed  float64 // units per second
}

// Collides reports whether a circle of radius r centred at (x,y) overlaps any
// wall cell. A centre outside the grid or inside a wall always collides.
func Collides(g *Grid, x, y, r float64) bool {
	c := g.CellAt(x, y)
	if g.IsWall(c.X, c.Y) {
		return true
	}
	if r <= 0 {
		return false
	}

	cs := float64(g.CellSize)
	reach := int(math.Ceil(r / cs))
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			col, row := c.X+dx, c.Y+dy
			if !g.InBounds(col, row) || !g.IsWall(col, row) {
				continue
			}
			left, top := float64(col)*cs, float64(row)*cs
			closestX := math.Max(left, math.Min(x, left+cs))
			closestY := math.Max(top, math.Min(y, top+cs))
			if math.Hypot(x-closestX, y-closestY) < r {
				return true
			}
		}
	}
	return false
}

// ResolveMove applies (dx,dy) to b one axis at a time, dropping any axis whose
// move would collide, then clamps the result inside the playfield. Sliding
// along walls falls out of the per-axis test.
func ResolveMove(g *Grid, b Body, dx, dy float64) (float64, float64) {
	x, y := b.X, b.Y
	if dx != 0 && !Collides(g, x+dx, y, b.Radius) {
		x += dx
	}
	if dy != 0 && !Collides(g, x, y+dy, b.Radius) {
		y += dy
	}
	x = clamp(x, b.Radius, g.Width()-b.Radius)
	y = clamp(y, b.Radius, g.Height()-b.Radius)
	return x, y
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
