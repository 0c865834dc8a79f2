package game

import "math"

// Cone describes a flashlight beam: half of its angular width, its reach,
// and the sampling step used for the line-of-sight march.
type Cone struct {
	HalfAngle float64 // radians
	Range     float64 // units
	Step      float64 // units between LOS samples
}

// InCone returns true if (tx,ty) lies within the cone's angle and range as
// seen from (ox,oy) facing the given heading. Walls are not considered.
func (c Cone) InCone(ox, oy, facing, tx, ty float64) bool {
	dist := math.Hypot(tx-ox, ty-oy)
	if dist > c.Range {
		return false
	}
	diff := normalizeAngle(math.Atan2(ty-oy, tx-ox) - facing)
	return math.Abs(diff) <= c.HalfAngle
}

// IsVisible is the single visibility primitive: cone angle, range, and an
// unobstructed line through the grid must all hold.
func IsVisible(g *Grid, ox, oy, facing, tx, ty float64, c Cone) bool {
	if !c.InCone(ox, oy, facing, tx, ty) {
		return false
	}
	return HasLineOfSight(g, ox, oy, tx, ty, c.Step)
}

// HeadingTo returns the angle in radians from (ox,oy) toward (tx,ty).
func HeadingTo(ox, oy, tx, ty float64) float64 {
	return math.Atan2(ty-oy, tx-ox)
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
