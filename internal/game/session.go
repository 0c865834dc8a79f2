package game

import (
	"fmt"

	"github.com/Garsondee/Relic-Stalker/internal/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Mode selects who controls the stalker.
type Mode int

const (
	ModeSingle Mode = iota // autonomous stalker
	ModeCoop               // second player drives the stalker
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeCoop:
		return "coop"
	default:
		return "unknown"
	}
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "single":
		return ModeSingle, nil
	case "coop":
		return ModeCoop, nil
	}
	return ModeSingle, fmt.Errorf("unknown mode %q (want single or coop)", s)
}

// SessionState is the outcome of a session so far.
type SessionState int

const (
	StatePlaying SessionState = iota
	StateWon
	StateLost
)

func (s SessionState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Session owns one game: the maze, both actors, the pickups and the clock.
// It is driven by a single goroutine through Tick.
type Session struct {
	ID uuid.UUID

	state   SessionState
	mode    Mode
	grid    *Grid
	player  Player
	stalker Stalker
	effects Effects
	pickups Pickups

	now  float64 // simulated ms
	tick int

	sounds []Sound
	events *SimLog

	cfg  Config
	cone Cone
	rng  Rand
	log  *logrus.Entry
}

// world is everything rebuilt on start, restart and mode switch.
type world struct {
	grid    *Grid
	player  Player
	stalker Stalker
	pickups Pickups
}

// NewSession generates a fresh world and starts playing.
func NewSession(cfg Config, mode Mode, rng Rand) *Session {
	s := &Session{
		cfg:    cfg,
		cone:   cfg.Cone(),
		rng:    rng,
		events: NewSimLog(),
	}
	s.reset(mode)
	return s
}

// generateWorld carves a maze and populates it.
func generateWorld(cfg Config, rng Rand) world {
	start := snapToLattice(Cell{X: cfg.Maze.StartX, Y: cfg.Maze.StartY}, cfg.Maze.Cols, cfg.Maze.Rows)
	g := CarveMaze(cfg.Maze.Cols, cfg.Maze.Rows, cfg.Maze.CellSize, start, rng)
	playerStart := g.CellCenter(start)

	pickups := PlaceAllPickups(g, cfg.Pickups, rng)
	spawn := FindStalkerSpawn(g, playerStart, cfg.Stalker.SpawnAttempts, cfg.Stalker.SpawnMinDistance, rng)
	route := GeneratePatrolRoute(g, cfg.Stalker, rng)

	return world{
		grid:    g,
		player:  NewPlayer(playerStart, cfg.Player),
		stalker: NewStalker(spawn, route, cfg.Stalker),
		pickups: pickups,
	}
}

// reset rebuilds the whole session in the given mode. Nothing survives.
func (s *Session) reset(mode Mode) {
	s.mode = mode
	s.install(generateWorld(s.cfg, s.rng))
}

// install replaces the world and clears clock, effects and log.
func (s *Session) install(w world) {
	s.ID = uuid.New()
	s.log = logger.Log.WithFields(logrus.Fields{
		"component": "session",
		"session":   s.ID.String(),
	})
	s.state = StatePlaying
	s.grid = w.grid
	s.player = w.player
	s.stalker = w.stalker
	s.pickups = w.pickups
	s.effects = newEffects()
	s.now = 0
	s.tick = 0
	s.events.reset()

	s.record("--", CatSession, "reset", fmt.Sprintf("mode=%s relics=%d", s.mode, len(s.pickups.Relics)), 0)
	s.log.WithFields(logrus.Fields{
		"mode":       s.mode.String(),
		"relics":     len(s.pickups.Relics),
		"redirects":  len(s.pickups.Redirects),
		"stalker_it": len(s.pickups.StalkerItems),
		"patrol":     len(s.stalker.Patrol),
	}).Info("session started")
}

// record appends to the SimLog and mirrors the event at debug level.
func (s *Session) record(actor, category, key, value string, num float64) {
	s.events.Add(s.tick, s.now, actor, category, key, value, num)
	s.log.WithFields(logrus.Fields{
		"tick":     s.tick,
		"actor":    actor,
		"category": category,
		"key":      key,
	}).Debug(value)
}

func (s *Session) emit(snd Sound) {
	s.sounds = append(s.sounds, snd)
}

// Tick advances the session by dt seconds of input.
func (s *Session) Tick(in Input, dt float64) {
	if in.Has(ActSelectMode) {
		s.emit(SoundButton)
		s.reset(in.Mode)
		return
	}
	if in.Has(ActRestart) && s.state != StatePlaying {
		s.emit(SoundButton)
		s.reset(s.mode)
		return
	}
	if s.state != StatePlaying {
		return
	}

	s.tick++
	s.now += dt * 1000

	if in.Has(ActRedirect) {
		s.redirectStalker()
	}
	if in.Has(ActStalkerTeleport) && s.mode == ModeCoop {
		s.ambush()
	}

	if s.player.Invulnerable && s.now-s.player.InvulnAt > s.cfg.Player.InvulnerableMs {
		s.player.Invulnerable = false
		s.record("player", CatHit, "vulnerable", "invulnerability expired", 0)
	}

	ix, iy := in.P1.Vector()
	step := s.player.Speed * dt
	s.player.X, s.player.Y = ResolveMove(s.grid, s.player.Body, ix*step, iy*step)
	s.player.Facing = HeadingTo(s.player.X, s.player.Y, in.AimX, in.AimY)

	s.collectPlayerPickups()
	s.collectStalkerItems()

	if ix*ix+iy*iy > 0.01*0.01 {
		s.stalker.LastHeard = s.now
	}

	s.updateStalker(in, dt)

	if s.state == StatePlaying && s.RelicsFound() == len(s.pickups.Relics) {
		s.state = StateWon
		s.emit(SoundWin)
		s.record("--", CatSession, "won", fmt.Sprintf("all %d relics found", len(s.pickups.Relics)), s.now)
		s.log.WithField("clock_ms", s.now).Info("session won")
	}
}

// visibleToPlayer reports whether (x,y) is lit by the flashlight.
func (s *Session) visibleToPlayer(x, y float64) bool {
	return IsVisible(s.grid, s.player.X, s.player.Y, s.player.Facing, x, y, s.cone)
}

func (s *Session) collectPlayerPickups() {
	r := s.cfg.Pickups.CollectRadius
	for i := range s.pickups.Relics {
		p := &s.pickups.Relics[i]
		if p.Found {
			continue
		}
		c := s.grid.CellCenter(p.Cell)
		if s.visibleToPlayer(c.X, c.Y) && dist(c.X, c.Y, s.player.X, s.player.Y) < r {
			p.Found = true
			s.emit(SoundRelic)
			s.record("player", CatPickup, "relic",
				fmt.Sprintf("relic at (%d,%d) %d/%d", p.Cell.X, p.Cell.Y, s.RelicsFound(), len(s.pickups.Relics)), float64(s.RelicsFound()))
		}
	}
	for i := range s.pickups.Redirects {
		p := &s.pickups.Redirects[i]
		if p.Found {
			continue
		}
		c := s.grid.CellCenter(p.Cell)
		if s.visibleToPlayer(c.X, c.Y) && dist(c.X, c.Y, s.player.X, s.player.Y) < r {
			p.Found = true
			s.player.Redirects++
			s.emit(SoundTeleportItem)
			s.record("player", CatPickup, "redirect",
				fmt.Sprintf("redirect at (%d,%d) held=%d", p.Cell.X, p.Cell.Y, s.player.Redirects), float64(s.player.Redirects))
		}
	}
}

func (s *Session) collectStalkerItems() {
	for i := range s.pickups.StalkerItems {
		p := &s.pickups.StalkerItems[i]
		if p.Found {
			continue
		}
		c := s.grid.CellCenter(p.Cell)
		if dist(c.X, c.Y, s.stalker.X, s.stalker.Y) < s.cfg.Stalker.CollectRadius {
			p.Found = true
			s.stalker.Items++
			s.emit(SoundMonsterTeleportItem)
			s.record("stalker", CatPickup, "stalker_item",
				fmt.Sprintf("item at (%d,%d) held=%d", p.Cell.X, p.Cell.Y, s.stalker.Items), float64(s.stalker.Items))
		}
	}
}

// redirectStalker spends one player item to move the stalker far away.
func (s *Session) redirectStalker() {
	if s.player.Redirects <= 0 {
		return
	}
	s.emit(SoundButton)
	p, ok := FindRedirectLanding(s.grid, s.player.Pos(), s.cfg.Pickups.RedirectAttempts, s.cfg.Pickups.RedirectMinDistance, s.rng)
	if !ok {
		s.record("player", CatAction, "exhausted", "no redirect landing found", 0)
		return
	}
	s.stalker.X, s.stalker.Y = p.X, p.Y
	s.player.Redirects--
	s.effects.RedirectedAt = s.now
	s.record("player", CatAction, "redirect", fmt.Sprintf("stalker sent to (%.0f,%.0f)", p.X, p.Y), float64(s.player.Redirects))
}

// ambush spends one stalker item to land near the player.
func (s *Session) ambush() {
	if s.stalker.Items <= 0 {
		return
	}
	s.emit(SoundButton)
	c := s.cfg.Stalker
	p, ok := FindAmbushLanding(s.grid, s.player.Pos(), c.AmbushAttempts, c.AmbushMinRadius, c.AmbushMaxRadius, s.rng)
	if !ok {
		s.record("stalker", CatAction, "exhausted", "no ambush landing found", 0)
		return
	}
	s.stalker.X, s.stalker.Y = p.X, p.Y
	s.stalker.Items--
	s.effects.AmbushedAt = s.now
	s.record("stalker", CatStalker, "ambush", fmt.Sprintf("jumped to (%.0f,%.0f)", p.X, p.Y), float64(s.stalker.Items))
}

// updateStalker runs perception, movement, glow and contact for one tick.
func (s *Session) updateStalker(in Input, dt float64) {
	st := &s.stalker
	prev := st.State

	if s.mode == ModeCoop {
		st.drive(s.grid, in.P2, dt)
	} else {
		sensors := Sensors{
			PlayerVisible: s.visibleToPlayer(st.X, st.Y),
			PlayerX:       s.player.X,
			PlayerY:       s.player.Y,
		}
		next, spotted := Think(st.Mind, sensors, s.now, s.cfg.Stalker)
		st.Mind = next
		if spotted {
			s.effects.SpottedAt = s.now
			s.record("stalker", CatStalker, "spotted", "caught in the beam", 0)
		}
		if st.wantsAmbush(dist(st.X, st.Y, s.player.X, s.player.Y), s.cfg.Stalker, s.rng) {
			s.ambush()
		}
		st.steer(s.grid, dt, s.cfg.Stalker, s.rng)
	}

	if st.State != prev {
		s.record("stalker", CatStalker, "state", fmt.Sprintf("%s -> %s", prev, st.State), 0)
	}

	s.effects.updateGlow(st.Aware, dt, s.cfg.Stalker)

	if !s.player.Invulnerable && dist(st.X, st.Y, s.player.X, s.player.Y) < st.Radius+s.player.Radius {
		s.hitPlayer()
	}
}

func (s *Session) hitPlayer() {
	s.player.Health--
	s.player.Invulnerable = true
	s.player.InvulnAt = s.now
	s.emit(SoundHealthLoss)
	s.record("player", CatHit, "damage", fmt.Sprintf("health %d/%d", s.player.Health, s.player.MaxHealth), float64(s.player.Health))

	if s.player.Health <= 0 {
		s.player.Health = 0
		s.state = StateLost
		s.emit(SoundGameOver)
		s.record("--", CatSession, "lost", "health ran out", s.now)
		s.log.WithField("clock_ms", s.now).Info("session lost")
	}
}

// RelicsFound counts collected relics.
func (s *Session) RelicsFound() int {
	n := 0
	for _, r := range s.pickups.Relics {
		if r.Found {
			n++
		}
	}
	return n
}

// DrainSounds returns the sounds emitted since the last call and clears the queue.
func (s *Session) DrainSounds() []Sound {
	out := s.sounds
	s.sounds = nil
	return out
}

// Events returns the session's event log. It is cleared on every reset.
func (s *Session) Events() *SimLog { return s.events }

// State returns the current outcome.
func (s *Session) State() SessionState { return s.state }

// Mode returns who controls the stalker.
func (s *Session) Mode() Mode { return s.mode }

// Now returns the simulated clock in ms.
func (s *Session) Now() float64 { return s.now }

// Grid returns the immutable maze.
func (s *Session) Grid() *Grid { return s.grid }
