package game

// PlayerView is the read-only player state handed to presentation.
type PlayerView struct {
	X, Y         float64
	Radius       float64
	Facing       float64
	Health       int
	MaxHealth    int
	Invulnerable bool
	Redirects    int
}

// StalkerView is the read-only stalker state joined with its effects.
type StalkerView struct {
	X, Y   float64
	Radius float64
	State  StalkerState
	Aware  bool
	Items  int
	Glow   float64

	SpottedAt    float64
	RedirectedAt float64
	AmbushedAt   float64
}

// Snapshot is a copy of everything a frame needs to draw. The grid is shared
// because it never changes after generation; the pickup slices are copied.
type Snapshot struct {
	Grid    *Grid
	State   SessionState
	Mode    Mode
	Clock   float64
	Cone    Cone
	Player  PlayerView
	Stalker StalkerView

	Relics       []Pickup
	Redirects    []Pickup
	StalkerItems []Pickup

	RelicsFound int
}

// Snapshot copies the current state for drawing.
func (s *Session) Snapshot() Snapshot {
	p, st := &s.player, &s.stalker
	return Snapshot{
		Grid:  s.grid,
		State: s.state,
		Mode:  s.mode,
		Clock: s.now,
		Cone:  s.cone,
		Player: PlayerView{
			X: p.X, Y: p.Y,
			Radius:       p.Radius,
			Facing:       p.Facing,
			Health:       p.Health,
			MaxHealth:    p.MaxHealth,
			Invulnerable: p.Invulnerable,
			Redirects:    p.Redirects,
		},
		Stalker: StalkerView{
			X: st.X, Y: st.Y,
			Radius:       st.Radius,
			State:        st.State,
			Aware:        st.Aware,
			Items:        st.Items,
			Glow:         s.effects.Glow,
			SpottedAt:    s.effects.SpottedAt,
			RedirectedAt: s.effects.RedirectedAt,
			AmbushedAt:   s.effects.AmbushedAt,
		},
		Relics:       append([]Pickup(nil), s.pickups.Relics...),
		Redirects:    append([]Pickup(nil), s.pickups.Redirects...),
		StalkerItems: append([]Pickup(nil), s.pickups.StalkerItems...),
		RelicsFound:  s.RelicsFound(),
	}
}

// Lit reports whether a world point is inside the player's beam with a clear
// line of sight. The UI uses it to decide which pickups to draw.
func (sn Snapshot) Lit(x, y float64) bool {
	return IsVisible(sn.Grid, sn.Player.X, sn.Player.Y, sn.Player.Facing, x, y, sn.Cone)
}

// Since returns the ms elapsed since an effect timestamp; +Inf if it never fired.
func (sn Snapshot) Since(at float64) float64 {
	return sn.Clock - at
}
