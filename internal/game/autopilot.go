package game

import "github.com/zyedidia/generic/mapset"

// Autopilot is a simple bot that plays the player side: it walks the shortest
// cell path to the nearest unfound relic, aims along the path, and spends a
// redirect when an aware stalker gets close. In co-op mode it also drives the
// stalker straight at the player.
type Autopilot struct {
	PanicDistance float64 // redirect when an aware stalker is closer than this
	deadZone      float64
}

// NewAutopilot returns a bot with the default panic distance.
func NewAutopilot() *Autopilot {
	return &Autopilot{PanicDistance: 100, deadZone: 2}
}

// Next chooses the input for the coming tick.
func (a *Autopilot) Next(sn Snapshot) Input {
	var in Input
	if sn.State != StatePlaying {
		return in
	}
	g := sn.Grid
	from := g.CellAt(sn.Player.X, sn.Player.Y)

	targets := make(map[Cell]bool, len(sn.Relics))
	for _, r := range sn.Relics {
		if !r.Found {
			targets[r.Cell] = true
		}
	}
	path := ShortestPath(g, from, func(c Cell) bool { return targets[c] })

	aim := g.CellCenter(from)
	switch {
	case len(path) >= 2:
		aim = g.CellCenter(path[1])
	case len(path) == 1:
		aim = g.CellCenter(path[0])
	}
	in.P1 = a.steer(sn.Player.X, sn.Player.Y, aim.X, aim.Y)
	in.AimX, in.AimY = aim.X, aim.Y

	st := sn.Stalker
	if sn.Player.Redirects > 0 && st.Aware && dist(st.X, st.Y, sn.Player.X, sn.Player.Y) < a.PanicDistance {
		in.Actions |= ActRedirect
	}
	if sn.Mode == ModeCoop {
		in.P2 = a.steer(st.X, st.Y, sn.Player.X, sn.Player.Y)
		if st.Items > 0 && dist(st.X, st.Y, sn.Player.X, sn.Player.Y) > 200 {
			in.Actions |= ActStalkerTeleport
		}
	}
	return in
}

// steer converts a desired heading into held direction keys.
func (a *Autopilot) steer(x, y, tx, ty float64) Dir {
	dx, dy := tx-x, ty-y
	return Dir{
		Left:  dx < -a.deadZone,
		Right: dx > a.deadZone,
		Up:    dy < -a.deadZone,
		Down:  dy > a.deadZone,
	}
}

var pathDirs = [4]Cell{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// ShortestPath runs a breadth-first search over open cells from start and
// returns the cell path (start first) to the nearest cell accepted by goal,
// or nil if none is reachable.
func ShortestPath(g *Grid, start Cell, goal func(Cell) bool) []Cell {
	if g.IsWall(start.X, start.Y) {
		return nil
	}
	visited := mapset.New[Cell]()
	visited.Put(start)
	parent := make(map[Cell]Cell)
	queue := []Cell{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if goal(cur) {
			return unwindPath(parent, start, cur)
		}
		for _, d := range pathDirs {
			n := Cell{X: cur.X + d.X, Y: cur.Y + d.Y}
			if g.IsWall(n.X, n.Y) || visited.Has(n) {
				continue
			}
			visited.Put(n)
			parent[n] = cur
			queue = append(queue, n)
		}
	}
	return nil
}

func unwindPath(parent map[Cell]Cell, start, end Cell) []Cell {
	path := []Cell{end}
	for c := end; c != start; {
		c = parent[c]
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Reachable counts the open cells reachable from start.
func Reachable(g *Grid, start Cell) int {
	n := 0
	ShortestPath(g, start, func(Cell) bool {
		n++
		return false
	})
	return n
}
