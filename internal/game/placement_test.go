package game

import (
	"math"
	"testing"
)

func carvedDefault(seed int64) (*Grid, Rand) {
	rng := NewRand(seed)
	return CarveMaze(24, 16, 40, Cell{X: 1, Y: 1}, rng), rng
}

func TestPlaceAllPickups_Invariants(t *testing.T) {
	cfg := DefaultConfig().Pickups
	for seed := int64(1); seed <= 30; seed++ {
		g, rng := carvedDefault(seed)
		ps := PlaceAllPickups(g, cfg, rng)

		if len(ps.Relics) > cfg.Relics.Count || len(ps.Redirects) > cfg.Redirects.Count || len(ps.StalkerItems) > cfg.StalkerItems.Count {
			t.Fatalf("seed %d: placed more than requested", seed)
		}
		if len(ps.Relics) == 0 {
			t.Fatalf("seed %d: expected at least one relic", seed)
		}

		cells := map[Cell]PickupKind{}
		for _, group := range []struct {
			items   []Pickup
			spacing int
		}{
			{ps.Relics, cfg.Relics.MinSpacing},
			{ps.Redirects, cfg.Redirects.MinSpacing},
			{ps.StalkerItems, cfg.StalkerItems.MinSpacing},
		} {
			for i, a := range group.items {
				if g.IsWall(a.Cell.X, a.Cell.Y) {
					t.Fatalf("seed %d: %s placed on a wall at %v", seed, a.Kind, a.Cell)
				}
				if a.Found {
					t.Fatalf("seed %d: %s starts found", seed, a.Kind)
				}
				if other, dup := cells[a.Cell]; dup {
					t.Fatalf("seed %d: %s shares cell %v with %s", seed, a.Kind, a.Cell, other)
				}
				cells[a.Cell] = a.Kind
				for _, b := range group.items[i+1:] {
					dx, dy := absInt(a.Cell.X-b.Cell.X), absInt(a.Cell.Y-b.Cell.Y)
					if dx < group.spacing && dy < group.spacing {
						t.Fatalf("seed %d: %s at %v and %v closer than %d", seed, a.Kind, a.Cell, b.Cell, group.spacing)
					}
				}
			}
		}
	}
}

func TestPlacePickups_ExhaustionReturnsFewer(t *testing.T) {
	g := testGrid(
		"#####",
		"#...#",
		"#####",
	)
	spec := PickupSpec{Count: 5, MinSpacing: 4}
	got := PlacePickups(g, PickupRelic, spec, 200, nil, NewRand(1))
	if len(got) != 1 {
		t.Fatalf("a 3-cell corridor fits one relic at spacing 4, got %d", len(got))
	}
}

func TestPlacePickups_RespectsExclusion(t *testing.T) {
	g := testGrid(
		"####",
		"#..#",
		"####",
	)
	taken := func(c Cell) bool { return c == (Cell{X: 1, Y: 1}) }
	got := PlacePickups(g, PickupRedirect, PickupSpec{Count: 2, MinSpacing: 0}, 50, taken, NewRand(4))
	if len(got) != 1 || got[0].Cell != (Cell{X: 2, Y: 1}) {
		t.Fatalf("expected a single redirect at (2,1), got %+v", got)
	}
}

func TestFindStalkerSpawn_FarFromPlayer(t *testing.T) {
	cfg := DefaultConfig().Stalker
	for seed := int64(1); seed <= 20; seed++ {
		g, rng := carvedDefault(seed)
		start := g.CellCenter(Cell{X: 1, Y: 1})
		p := FindStalkerSpawn(g, start, cfg.SpawnAttempts, cfg.SpawnMinDistance, rng)
		c := g.CellAt(p.X, p.Y)
		if g.IsWall(c.X, c.Y) {
			t.Fatalf("seed %d: spawn in a wall", seed)
		}
		if math.Hypot(p.X-start.X, p.Y-start.Y) <= cfg.SpawnMinDistance {
			t.Fatalf("seed %d: spawn too close to the player", seed)
		}
	}
}

func TestFindStalkerSpawn_FallsBackToCorner(t *testing.T) {
	g := testGrid(
		"#####",
		"#...#",
		"#...#",
		"#####",
	)
	start := g.CellCenter(Cell{X: 1, Y: 1})
	p := FindStalkerSpawn(g, start, 100, 1000, NewRand(1))
	if want := g.CellCenter(Cell{X: 3, Y: 2}); p != want {
		t.Fatalf("expected fallback %v, got %v", want, p)
	}
}

func TestGeneratePatrolRoute_SeparatedOpenPoints(t *testing.T) {
	cfg := DefaultConfig().Stalker
	g, rng := carvedDefault(11)
	route := GeneratePatrolRoute(g, cfg, rng)
	if len(route) < cfg.PatrolMinPoints {
		t.Fatalf("expected at least %d points, got %d", cfg.PatrolMinPoints, len(route))
	}
	for i, a := range route {
		c := g.CellAt(a.X, a.Y)
		if g.IsWall(c.X, c.Y) {
			t.Fatalf("waypoint %d in a wall", i)
		}
		for _, b := range route[i+1:] {
			if math.Hypot(a.X-b.X, a.Y-b.Y) < cfg.PatrolMinSeparation {
				t.Fatalf("waypoints %v and %v closer than %.0f", a, b, cfg.PatrolMinSeparation)
			}
		}
	}
}

func TestGeneratePatrolRoute_PadsSmallMaze(t *testing.T) {
	cfg := DefaultConfig().Stalker
	g := testGrid(
		"#####",
		"#...#",
		"#####",
	)
	route := GeneratePatrolRoute(g, cfg, NewRand(2))
	// Three open cells 40 apart give at most three points, so the nine
	// fallback points are appended.
	if len(route) < 9 || len(route) > 12 {
		t.Fatalf("expected sampled points plus 9 fallbacks, got %d", len(route))
	}
}

func TestFindRedirectLanding_AwayFromPlayer(t *testing.T) {
	g, rng := carvedDefault(5)
	player := g.CellCenter(Cell{X: 1, Y: 1})
	p, ok := FindRedirectLanding(g, player, 50, 100, rng)
	if !ok {
		t.Fatal("expected a landing in a full maze")
	}
	if math.Hypot(p.X-player.X, p.Y-player.Y) < 100 {
		t.Fatalf("landing %v too close to player", p)
	}
}

func TestFindRedirectLanding_Exhausted(t *testing.T) {
	g := testGrid(
		"####",
		"#..#",
		"####",
	)
	if _, ok := FindRedirectLanding(g, g.CellCenter(Cell{X: 1, Y: 1}), 50, 100, NewRand(1)); ok {
		t.Fatal("a tiny room has no cell 100 units away")
	}
}

func TestFindAmbushLanding_OnAnnulus(t *testing.T) {
	cfg := DefaultConfig().Stalker
	g := testGrid(
		"############",
		"#..........#",
		"#..........#",
		"#..........#",
		"#..........#",
		"#..........#",
		"#..........#",
		"############",
	)
	player := g.CellCenter(Cell{X: 5, Y: 4})
	for seed := int64(1); seed <= 20; seed++ {
		p, ok := FindAmbushLanding(g, player, cfg.AmbushAttempts, cfg.AmbushMinRadius, cfg.AmbushMaxRadius, NewRand(seed))
		if !ok {
			t.Fatalf("seed %d: expected an ambush landing in an open room", seed)
		}
		d := math.Hypot(p.X-player.X, p.Y-player.Y)
		// Snapping to a cell centre can push the point out by half a diagonal.
		if d < cfg.AmbushMinRadius || d > cfg.AmbushMaxRadius+30 {
			t.Fatalf("seed %d: landing at distance %.1f", seed, d)
		}
		c := g.CellAt(p.X, p.Y)
		if g.IsWall(c.X, c.Y) {
			t.Fatalf("seed %d: landing in a wall", seed)
		}
	}
}
