package game

import (
	"math"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// PickupKind identifies what a pickup does when collected.
type PickupKind int

const (
	PickupRelic       PickupKind = iota // primary collectible
	PickupRedirect                      // player item: send the stalker away
	PickupStalkerItem                   // stalker item: jump next to the player
)

func (k PickupKind) String() string {
	switch k {
	case PickupRelic:
		return "relic"
	case PickupRedirect:
		return "redirect"
	case PickupStalkerItem:
		return "stalker_item"
	default:
		return "unknown"
	}
}

// Pickup is an item lying on a cell. Found only ever goes false -> true.
type Pickup struct {
	Kind  PickupKind
	Cell  Cell
	Found bool
}

// Pickups groups the three collections of a session.
type Pickups struct {
	Relics       []Pickup
	Redirects    []Pickup
	StalkerItems []Pickup
}

// randomInteriorCell returns a uniform cell strictly inside the border.
func randomInteriorCell(g *Grid, rng Rand) Cell {
	return Cell{X: rng.Intn(g.Cols-2) + 1, Y: rng.Intn(g.Rows-2) + 1}
}

// PlacePickups scatters up to spec.Count items of one kind on open cells.
// A candidate is rejected if excluded reports it taken, if it repeats a cell
// of this kind, or if it lies closer than spec.MinSpacing on both axes to an
// item already placed. Items that cannot be placed within attempts tries are
// dropped, so the result may be shorter than requested.
func PlacePickups(g *Grid, kind PickupKind, spec PickupSpec, attempts int, excluded func(Cell) bool, rng Rand) []Pickup {
	placed := make([]Pickup, 0, spec.Count)
	if g.Cols < 3 || g.Rows < 3 {
		return placed
	}
	for i := 0; i < spec.Count; i++ {
		for attempt := 0; attempt < attempts; attempt++ {
			c := randomInteriorCell(g, rng)
			if g.IsWall(c.X, c.Y) {
				continue
			}
			if excluded != nil && excluded(c) {
				continue
			}
			if tooCloseToAny(c, placed, spec.MinSpacing) {
				continue
			}
			placed = append(placed, Pickup{Kind: kind, Cell: c})
			break
		}
	}
	if len(placed) < spec.Count {
		placementLog.WithFields(logrus.Fields{
			"kind":      kind.String(),
			"requested": spec.Count,
			"placed":    len(placed),
		}).Debug("placement budget exhausted")
	}
	return placed
}

// tooCloseToAny reports whether c repeats a placed cell or is within
// minSpacing of one on both axes (Chebyshev distance below minSpacing).
func tooCloseToAny(c Cell, placed []Pickup, minSpacing int) bool {
	for _, p := range placed {
		if p.Cell == c {
			return true
		}
		if absInt(p.Cell.X-c.X) < minSpacing && absInt(p.Cell.Y-c.Y) < minSpacing {
			return true
		}
	}
	return false
}

// PlaceAllPickups places relics, then redirects (avoiding relic cells), then
// stalker items (avoiding both).
func PlaceAllPickups(g *Grid, cfg PickupsConfig, rng Rand) Pickups {
	occupied := mapset.New[Cell]()
	mark := func(ps []Pickup) {
		for _, p := range ps {
			occupied.Put(p.Cell)
		}
	}

	var out Pickups
	out.Relics = PlacePickups(g, PickupRelic, cfg.Relics, cfg.Attempts, nil, rng)
	mark(out.Relics)
	out.Redirects = PlacePickups(g, PickupRedirect, cfg.Redirects, cfg.Attempts, occupied.Has, rng)
	mark(out.Redirects)
	out.StalkerItems = PlacePickups(g, PickupStalkerItem, cfg.StalkerItems, cfg.Attempts, occupied.Has, rng)
	return out
}

// FindStalkerSpawn picks a random open cell whose centre is farther than
// minDist from the player's start. It falls back to the cell one step in
// from the bottom-right corner.
func FindStalkerSpawn(g *Grid, playerStart Point, attempts int, minDist float64, rng Rand) Point {
	for attempt := 0; attempt < attempts; attempt++ {
		c := randomInteriorCell(g, rng)
		if g.IsWall(c.X, c.Y) {
			continue
		}
		p := g.CellCenter(c)
		if math.Hypot(p.X-playerStart.X, p.Y-playerStart.Y) > minDist {
			return p
		}
	}
	placementLog.WithField("attempts", attempts).Debug("stalker spawn fell back to corner")
	return g.CellCenter(Cell{X: g.Cols - 2, Y: g.Rows - 2})
}

// GeneratePatrolRoute samples up to maxPoints open cell centres at least
// minSep apart. Short routes are padded with nine fixed points spread over the
// maze so the stalker always has somewhere to walk.
func GeneratePatrolRoute(g *Grid, cfg StalkerConfig, rng Rand) []Point {
	route := make([]Point, 0, cfg.PatrolMaxPoints)
	for i := 0; i < cfg.PatrolMaxPoints; i++ {
		for attempt := 0; attempt < cfg.PatrolAttempts; attempt++ {
			c := randomInteriorCell(g, rng)
			if g.IsWall(c.X, c.Y) {
				continue
			}
			p := g.CellCenter(c)
			if nearAnyPoint(p, route, cfg.PatrolMinSeparation) {
				continue
			}
			route = append(route, p)
			break
		}
	}

	if len(route) < cfg.PatrolMinPoints {
		placementLog.WithField("points", len(route)).Debug("patrol route padded with fallback points")
		cols, rows := g.Cols, g.Rows
		for _, c := range []Cell{
			{2, 2}, {cols - 2, 2}, {2, rows - 2}, {cols - 2, rows - 2},
			{cols / 2, 2}, {cols / 2, rows - 2},
			{2, rows / 2}, {cols - 2, rows / 2},
			{cols / 2, rows / 2},
		} {
			route = append(route, g.CellCenter(c))
		}
	}
	return route
}

func nearAnyPoint(p Point, pts []Point, minSep float64) bool {
	for _, q := range pts {
		if math.Hypot(p.X-q.X, p.Y-q.Y) < minSep {
			return true
		}
	}
	return false
}

// FindRedirectLanding picks a random open cell centre at least minDist from
// the player. ok is false when every attempt failed.
func FindRedirectLanding(g *Grid, player Point, attempts int, minDist float64, rng Rand) (Point, bool) {
	for attempt := 0; attempt < attempts; attempt++ {
		c := randomInteriorCell(g, rng)
		if g.IsWall(c.X, c.Y) {
			continue
		}
		p := g.CellCenter(c)
		if math.Hypot(p.X-player.X, p.Y-player.Y) >= minDist {
			return p, true
		}
	}
	return Point{}, false
}

// FindAmbushLanding picks a point on the minR..maxR annulus around the player,
// snapped to the centre of its cell. Candidates in walls, outside the grid, or
// closer than minR after snapping are retried.
func FindAmbushLanding(g *Grid, player Point, attempts int, minR, maxR float64, rng Rand) (Point, bool) {
	for attempt := 0; attempt < attempts; attempt++ {
		angle := rng.Float64() * math.Pi * 2
		dist := minR + rng.Float64()*(maxR-minR)
		c := g.CellAt(player.X+math.Cos(angle)*dist, player.Y+math.Sin(angle)*dist)
		if g.IsWall(c.X, c.Y) {
			continue
		}
		p := g.CellCenter(c)
		if math.Hypot(p.X-player.X, p.Y-player.Y) < minR {
			continue
		}
		return p, true
	}
	return Point{}, false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
