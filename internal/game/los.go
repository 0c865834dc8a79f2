package game

import "math"

// HasLineOfSight marches sample points every step units from (ax,ay) to
// (bx,by) and returns false as soon as one lands in a wall cell or outside
// the grid. Both endpoints are sampled.
func HasLineOfSight(g *Grid, ax, ay, bx, by, step float64) bool {
	dist := math.Hypot(bx-ax, by-ay)
	steps := int(math.Ceil(dist / step))
	if steps == 0 {
		c := g.CellAt(ax, ay)
		return !g.IsWall(c.X, c.Y)
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c := g.CellAt(ax+(bx-ax)*t, ay+(by-ay)*t)
		if g.IsWall(c.X, c.Y) {
			return false
		}
	}
	return true
}

// ClipRay returns the endpoint of a ray of length maxLen from (ox,oy) at
// angle, shortened to the first wall cell it enters. Used to shape the
// flashlight beam.
func ClipRay(g *Grid, ox, oy, angle, maxLen float64) (float64, float64) {
	dx, dy := math.Cos(angle), math.Sin(angle)
	ex, ey := ox+dx*maxLen, oy+dy*maxLen

	// Only wall cells inside the ray's bounding box can be hit.
	cs := float64(g.CellSize)
	minC := g.CellAt(math.Min(ox, ex), math.Min(oy, ey))
	maxC := g.CellAt(math.Max(ox, ex), math.Max(oy, ey))

	nearest, blocked := 1.0, false
	for row := minC.Y; row <= maxC.Y; row++ {
		for col := minC.X; col <= maxC.X; col++ {
			if !g.InBounds(col, row) || !g.IsWall(col, row) {
				continue
			}
			x0, y0 := float64(col)*cs, float64(row)*cs
			t, hit := rayAABBHitT(ox, oy, ex, ey, x0, y0, x0+cs, y0+cs)
			if hit && t < nearest {
				nearest, blocked = t, true
			}
		}
	}

	if !blocked {
		return ex, ey
	}
	return ox + (ex-ox)*nearest, oy + (ey-oy)*nearest
}

// rayAABBHitT clips the segment (ox,oy)->(ex,ey) against a box with the slab
// method and returns the entry parameter t in [0,1]. A segment starting inside
// the box enters at t=0.
func rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY float64) (float64, bool) {
	enter, exit := 0.0, 1.0
	slabs := [2]struct{ o, d, lo, hi float64 }{
		{ox, ex - ox, minX, maxX},
		{oy, ey - oy, minY, maxY},
	}
	for _, sl := range slabs {
		if math.Abs(sl.d) < 1e-12 {
			// Parallel to this slab: inside it or never.
			if sl.o < sl.lo || sl.o > sl.hi {
				return 0, false
			}
			continue
		}
		near, far := (sl.lo-sl.o)/sl.d, (sl.hi-sl.o)/sl.d
		if near > far {
			near, far = far, near
		}
		enter = math.Max(enter, near)
		exit = math.Min(exit, far)
		if enter > exit {
			return 0, false
		}
	}
	return enter, true
}
