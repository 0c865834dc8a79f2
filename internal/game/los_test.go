package game

import (
	"math"
	"testing"
)

// testGrid parses a layout at 40 units per cell.
func testGrid(rows ...string) *Grid {
	return ParseGrid(rows, 40)
}

var openRoom = []string{
	"########",
	"#......#",
	"#......#",
	"#......#",
	"#......#",
	"########",
}

func TestLOS_ClearLine(t *testing.T) {
	g := testGrid(openRoom...)
	if !HasLineOfSight(g, 60, 60, 260, 180, 6) {
		t.Fatal("expected clear LOS across an open room")
	}
}

func TestLOS_BlockedByWall(t *testing.T) {
	g := testGrid(
		"#######",
		"#..#..#",
		"#..#..#",
		"#######",
	)
	// Ray from the left room to the right room crosses column 3.
	if HasLineOfSight(g, 60, 60, 220, 60, 6) {
		t.Fatal("expected LOS blocked by the dividing wall")
	}
}

func TestLOS_VerticalRay_Blocked(t *testing.T) {
	g := testGrid(
		"#####",
		"#...#",
		"#####",
		"#...#",
		"#####",
	)
	if HasLineOfSight(g, 100, 60, 100, 140, 6) {
		t.Fatal("expected vertical ray blocked by horizontal wall")
	}
}

func TestLOS_DiagonalRay_Blocked(t *testing.T) {
	g := testGrid(
		"######",
		"#....#",
		"#.#..#",
		"#....#",
		"######",
	)
	// (60,60) -> (140,140) passes through the centre of cell (2,2).
	if HasLineOfSight(g, 60, 60, 140, 140, 6) {
		t.Fatal("diagonal ray should be blocked by the pillar")
	}
}

func TestLOS_EndpointOutsideGrid(t *testing.T) {
	g := testGrid(openRoom...)
	if HasLineOfSight(g, 60, 60, -20, 60, 6) {
		t.Fatal("a target outside the grid is never visible")
	}
}

func TestLOS_ZeroLength(t *testing.T) {
	g := testGrid(openRoom...)
	if !HasLineOfSight(g, 60, 60, 60, 60, 6) {
		t.Fatal("a point in an open cell sees itself")
	}
	if HasLineOfSight(g, 20, 20, 20, 20, 6) {
		t.Fatal("a point inside a wall is not visible")
	}
}

func TestClipRay_StopsAtWall(t *testing.T) {
	g := testGrid(openRoom...)
	// Facing right from x=60 the room ends at x=280.
	ex, ey := ClipRay(g, 60, 60, 0, 500)
	if math.Abs(ex-280) > 1e-6 || math.Abs(ey-60) > 1e-6 {
		t.Fatalf("expected ray clipped at (280,60), got (%.2f,%.2f)", ex, ey)
	}
}

func TestClipRay_ShortRayUntouched(t *testing.T) {
	g := testGrid(openRoom...)
	ex, ey := ClipRay(g, 60, 60, math.Pi/2, 50)
	if math.Abs(ex-60) > 1e-6 || math.Abs(ey-110) > 1e-6 {
		t.Fatalf("expected full-length ray to (60,110), got (%.2f,%.2f)", ex, ey)
	}
}

func TestRayAABBHitT_InsideBox(t *testing.T) {
	// Both endpoints inside: the segment is inside from t=0.
	tHit, hit := rayAABBHitT(10, 10, 20, 20, 0, 0, 100, 100)
	if !hit || tHit != 0 {
		t.Fatalf("expected hit at t=0, got hit=%v t=%.3f", hit, tHit)
	}
}

func TestRayAABBHitT_Miss(t *testing.T) {
	// Segment passes entirely to the left of the box.
	if _, hit := rayAABBHitT(0, 0, 0, 100, 50, 0, 150, 100); hit {
		t.Fatal("segment left of the box should not hit")
	}
}

func TestRayAABBHitT_EntryParameter(t *testing.T) {
	tHit, hit := rayAABBHitT(0, 50, 200, 50, 100, 0, 150, 100)
	if !hit || math.Abs(tHit-0.5) > 1e-9 {
		t.Fatalf("expected entry at t=0.5, got hit=%v t=%.3f", hit, tHit)
	}
}
