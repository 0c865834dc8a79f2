package game

import "math"

// Player is the flashlight carrier.
type Player struct {
	Body
	Health       int
	MaxHealth    int
	Invulnerable bool
	InvulnAt     float64 // clock ms when the last hit landed
	Redirects    int     // held redirect items
	Facing       float64 // radians, toward the aim point
}

// NewPlayer creates a player at p with full health.
func NewPlayer(p Point, cfg PlayerConfig) Player {
	return Player{
		Body:      Body{X: p.X, Y: p.Y, Radius: cfg.Radius, Speed: cfg.Speed},
		Health:    cfg.MaxHealth,
		MaxHealth: cfg.MaxHealth,
		InvulnAt:  math.Inf(-1),
	}
}

// Pos returns the player's position.
func (p *Player) Pos() Point { return Point{X: p.X, Y: p.Y} }

// Effects are presentation-only timestamps and intensities. Gameplay never
// reads them; they are joined with actor state in Snapshot.
type Effects struct {
	SpottedAt    float64 // stalker noticed in the beam after being unaware
	RedirectedAt float64 // player sent the stalker away
	AmbushedAt   float64 // stalker jumped next to the player
	Glow         float64 // 0..1, rises while the stalker is aware
}

func newEffects() Effects {
	return Effects{
		SpottedAt:    math.Inf(-1),
		RedirectedAt: math.Inf(-1),
		AmbushedAt:   math.Inf(-1),
	}
}

// updateGlow ramps the glow toward 1 while aware and back toward 0 otherwise.
func (e *Effects) updateGlow(aware bool, dt float64, cfg StalkerConfig) {
	if aware {
		e.Glow = math.Min(1, e.Glow+dt*cfg.GlowRise)
	} else {
		e.Glow = math.Max(0, e.Glow-dt*cfg.GlowFall)
	}
}

func dist(ax, ay, bx, by float64) float64 {
	return math.Hypot(ax-bx, ay-by)
}
