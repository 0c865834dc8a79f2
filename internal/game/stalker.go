package game

import "math"

// StalkerState is the autonomous stalker's behaviour state.
type StalkerState int

const (
	StalkerPatrol      StalkerState = iota // walking the waypoint loop
	StalkerInvestigate                     // heading to where the player was heard
	StalkerChase                           // player seen recently
)

func (s StalkerState) String() string {
	switch s {
	case StalkerPatrol:
		return "patrol"
	case StalkerInvestigate:
		return "investigate"
	case StalkerChase:
		return "chase"
	default:
		return "unknown"
	}
}

// Mind is the part of the stalker the state machine reads and writes.
// Timestamps are clock ms; -Inf means the event never happened.
type Mind struct {
	State     StalkerState
	Aware     bool
	LastHeard float64
	LastSeen  float64
	TargetX   float64
	TargetY   float64
}

// NewMind returns an unaware patrolling mind targeting (x,y).
func NewMind(x, y float64) Mind {
	return Mind{
		State:     StalkerPatrol,
		LastHeard: math.Inf(-1),
		LastSeen:  math.Inf(-1),
		TargetX:   x,
		TargetY:   y,
	}
}

// HeardAny reports whether the player has ever made noise.
func (m Mind) HeardAny() bool { return !math.IsInf(m.LastHeard, -1) }

// Sensors is what the stalker perceives this tick.
type Sensors struct {
	PlayerVisible bool // stalker inside the player's beam with clear LOS
	PlayerX       float64
	PlayerY       float64
}

// Think is the transition function of the stalker state machine. It returns
// the next mind and whether the player was just spotted (unaware -> seen).
func Think(m Mind, s Sensors, now float64, cfg StalkerConfig) (Mind, bool) {
	switch {
	case s.PlayerVisible:
		spotted := !m.Aware
		m.Aware = true
		m.LastSeen = now
		m.State = StalkerChase
		m.TargetX, m.TargetY = s.PlayerX, s.PlayerY
		return m, spotted

	case now-m.LastHeard < cfg.HearingMs:
		m.Aware = true
		if m.State == StalkerPatrol {
			m.State = StalkerInvestigate
			m.TargetX, m.TargetY = s.PlayerX, s.PlayerY
		}

	case now-m.LastSeen > cfg.ForgetMs:
		m.Aware = false
		m.State = StalkerPatrol
	}
	return m, false
}

// Stalker is the adversary.
type Stalker struct {
	Body
	Mind
	Patrol      []Point
	PatrolIndex int
	Items       int // held self-teleport items
}

// NewStalker creates an unaware stalker at p walking route.
func NewStalker(p Point, route []Point, cfg StalkerConfig) Stalker {
	return Stalker{
		Body:   Body{X: p.X, Y: p.Y, Radius: cfg.Radius, Speed: cfg.Speed},
		Mind:   NewMind(p.X, p.Y),
		Patrol: route,
	}
}

// Pos returns the stalker's position.
func (st *Stalker) Pos() Point { return Point{X: st.X, Y: st.Y} }

// waypoint returns the current patrol point, or the stalker's own position
// when the route is empty.
func (st *Stalker) waypoint() Point {
	if len(st.Patrol) == 0 {
		return st.Pos()
	}
	return st.Patrol[st.PatrolIndex%len(st.Patrol)]
}

// steer moves the autonomous stalker one tick toward its goal. Patrol heads
// for the current waypoint; the other states head for the recorded target.
// A small random jitter keeps the path from being perfectly straight.
func (st *Stalker) steer(g *Grid, dt float64, cfg StalkerConfig, rng Rand) {
	tx, ty := st.TargetX, st.TargetY
	if st.State == StalkerPatrol {
		wp := st.waypoint()
		tx, ty = wp.X, wp.Y
		st.TargetX, st.TargetY = tx, ty
	}

	jx := (rng.Float64() - 0.5) * cfg.Jitter
	jy := (rng.Float64() - 0.5) * cfg.Jitter
	dx := tx - st.X + jx*cfg.JitterScale
	dy := ty - st.Y + jy*cfg.JitterScale
	if d := math.Hypot(dx, dy); d > 0 {
		step := st.Speed * dt
		st.X, st.Y = ResolveMove(g, st.Body, dx/d*step, dy/d*step)
	}

	// Off the patrol route: occasionally give up on the target and search a waypoint.
	if st.State != StalkerPatrol && len(st.Patrol) > 0 && rng.Float64() < cfg.WanderChance {
		wp := st.Patrol[rng.Intn(len(st.Patrol))]
		st.TargetX, st.TargetY = wp.X, wp.Y
	}

	if st.State == StalkerPatrol && len(st.Patrol) > 0 {
		wp := st.waypoint()
		if dist(st.X, st.Y, wp.X, wp.Y) < cfg.WaypointReach {
			st.PatrolIndex = (st.PatrolIndex + 1) % len(st.Patrol)
		}
	}
}

// drive moves a player-controlled stalker along the given direction keys.
// Awareness and state are pinned so presentation shows it as hunting.
func (st *Stalker) drive(g *Grid, d Dir, dt float64) {
	vx, vy := d.Vector()
	if vx != 0 || vy != 0 {
		step := st.Speed * dt
		st.X, st.Y = ResolveMove(g, st.Body, vx*step, vy*step)
	} else {
		st.X, st.Y = ResolveMove(g, st.Body, 0, 0)
	}
	st.Aware = true
	st.State = StalkerChase
}

// wantsAmbush rolls the per-tick self-teleport chance. Farther than
// TeleportDistanceHeard with any recorded noise uses the higher chance;
// otherwise beyond TeleportDistanceFar uses the lower one.
func (st *Stalker) wantsAmbush(playerDist float64, cfg StalkerConfig, rng Rand) bool {
	if st.Items <= 0 {
		return false
	}
	if playerDist > cfg.TeleportDistanceHeard && st.HeardAny() && rng.Float64() < cfg.TeleportChanceHeard {
		return true
	}
	return playerDist > cfg.TeleportDistanceFar && rng.Float64() < cfg.TeleportChanceFar
}
