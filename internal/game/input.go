package game

import "math"

// Dir is the set of movement keys held by one player during a tick.
type Dir struct {
	Up, Down, Left, Right bool
}

// Vector returns the unit movement intent, or (0,0) when nothing (or only
// opposing keys) is held.
func (d Dir) Vector() (float64, float64) {
	var x, y float64
	if d.Up {
		y--
	}
	if d.Down {
		y++
	}
	if d.Left {
		x--
	}
	if d.Right {
		x++
	}
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// Action is a bitset of one-shot triggers pressed since the previous tick.
type Action uint8

const (
	ActRestart         Action = 1 << iota // start over once the session has ended
	ActSelectMode                         // switch to Input.Mode and start over
	ActRedirect                           // player spends a redirect item
	ActStalkerTeleport                    // co-op: stalker spends a teleport item
)

// Input is everything the session reads from the outside world for a tick.
type Input struct {
	P1   Dir // player movement
	P2   Dir // stalker movement in co-op mode
	AimX float64
	AimY float64

	Actions Action
	Mode    Mode // target of ActSelectMode
}

// Has reports whether the action was triggered this tick.
func (in Input) Has(a Action) bool {
	return in.Actions&a != 0
}
