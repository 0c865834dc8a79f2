package game

// TestSim is a headless session harness used by tests and the headless
// report. It builds a Session from options, drives it at a fixed frame rate
// and exposes its SimLog.
type TestSim struct {
	Session *Session
	FPS     float64
	Script  func(ts *TestSim) Input

	cfg    Config
	mode   Mode
	seed   int64
	layout []string

	playerAt     *Cell
	stalkerAt    *Cell
	patrol       []Cell
	health       int
	relics       []Cell
	redirects    []Cell
	stalkerItems []Cell
	heldRedirect int
	heldItems    int

	tick int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // config, seed, layout, mode: applied before the world exists
	simOptWorld                      // actors and pickups: applied to the built world
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.seed = seed }}
}

// WithConfig replaces the default tuning.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg = cfg }}
}

// WithMode selects single or co-op play.
func WithMode(m Mode) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.mode = m }}
}

// WithFPS sets the fixed frame rate used to derive dt.
func WithFPS(fps float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.FPS = fps }}
}

// WithLayout uses a hand-drawn maze ('#' = wall) instead of carving one.
// A layout world only has the pickups added with the With*At options, so a
// layout without relics is won on the first tick.
func WithLayout(rows ...string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.layout = rows }}
}

// WithScript supplies the per-tick input.
func WithScript(fn func(ts *TestSim) Input) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Script = fn }}
}

// WithPlayerAt places the player at the centre of a cell.
func WithPlayerAt(x, y int) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) { ts.playerAt = &Cell{X: x, Y: y} }}
}

// WithStalkerAt places the stalker at the centre of a cell.
func WithStalkerAt(x, y int) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) { ts.stalkerAt = &Cell{X: x, Y: y} }}
}

// WithPatrol replaces the stalker's route with the given cell centres.
func WithPatrol(cells ...Cell) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) { ts.patrol = cells }}
}

// WithHealth sets the player's starting health.
func WithHealth(h int) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) { ts.health = h }}
}

// WithRelicAt adds a relic.
func WithRelicAt(x, y int) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) { ts.relics = append(ts.relics, Cell{X: x, Y: y}) }}
}

// WithRedirectAt adds a redirect pickup.
func WithRedirectAt(x, y int) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) { ts.redirects = append(ts.redirects, Cell{X: x, Y: y}) }}
}

// WithStalkerItemAt adds a stalker teleport item.
func WithStalkerItemAt(x, y int) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) { ts.stalkerItems = append(ts.stalkerItems, Cell{X: x, Y: y}) }}
}

// WithHeldItems gives the player redirects and the stalker teleport items up front.
func WithHeldItems(redirects, stalkerItems int) SimOption {
	return SimOption{simOptWorld, func(ts *TestSim) {
		ts.heldRedirect = redirects
		ts.heldItems = stalkerItems
	}}
}

// NewTestSim constructs a TestSim from the given options in two passes:
//  1. Infrastructure (config, seed, mode, layout)
//  2. World overrides (actors, pickups)
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg:  DefaultConfig(),
		seed: 1,
		FPS:  60,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptWorld {
			o.fn(ts)
		}
	}

	rng := NewRand(ts.seed)
	var w world
	if ts.layout != nil {
		w = ts.layoutWorld()
	} else {
		w = generateWorld(ts.cfg, rng)
	}
	ts.applyOverrides(&w)

	s := &Session{
		cfg:    ts.cfg,
		cone:   ts.cfg.Cone(),
		rng:    rng,
		mode:   ts.mode,
		events: NewSimLog(),
	}
	s.install(w)
	ts.Session = s
	return ts
}

// layoutWorld builds an empty world on the hand-drawn grid. The player
// defaults to the configured start cell and the stalker to the far corner.
func (ts *TestSim) layoutWorld() world {
	g := ParseGrid(ts.layout, ts.cfg.Maze.CellSize)
	start := g.CellCenter(Cell{X: ts.cfg.Maze.StartX, Y: ts.cfg.Maze.StartY})
	corner := g.CellCenter(Cell{X: g.Cols - 2, Y: g.Rows - 2})
	return world{
		grid:    g,
		player:  NewPlayer(start, ts.cfg.Player),
		stalker: NewStalker(corner, nil, ts.cfg.Stalker),
	}
}

func (ts *TestSim) applyOverrides(w *world) {
	g := w.grid
	if ts.playerAt != nil {
		p := g.CellCenter(*ts.playerAt)
		w.player.X, w.player.Y = p.X, p.Y
	}
	if ts.stalkerAt != nil {
		p := g.CellCenter(*ts.stalkerAt)
		w.stalker.X, w.stalker.Y = p.X, p.Y
		w.stalker.TargetX, w.stalker.TargetY = p.X, p.Y
	}
	if ts.patrol != nil {
		route := make([]Point, 0, len(ts.patrol))
		for _, c := range ts.patrol {
			route = append(route, g.CellCenter(c))
		}
		w.stalker.Patrol = route
		w.stalker.PatrolIndex = 0
	}
	if ts.health > 0 {
		w.player.Health = ts.health
	}
	w.player.Redirects += ts.heldRedirect
	w.stalker.Items += ts.heldItems

	add := func(dst []Pickup, kind PickupKind, cells []Cell) []Pickup {
		for _, c := range cells {
			dst = append(dst, Pickup{Kind: kind, Cell: c})
		}
		return dst
	}
	w.pickups.Relics = add(w.pickups.Relics, PickupRelic, ts.relics)
	w.pickups.Redirects = add(w.pickups.Redirects, PickupRedirect, ts.redirects)
	w.pickups.StalkerItems = add(w.pickups.StalkerItems, PickupStalkerItem, ts.stalkerItems)
}

// Log returns the session's event log.
func (ts *TestSim) Log() *SimLog { return ts.Session.Events() }

// CurrentTick returns how many frames the harness has stepped.
func (ts *TestSim) CurrentTick() int { return ts.tick }

// Step advances one frame with the scripted input (or no input).
func (ts *TestSim) Step() {
	var in Input
	if ts.Script != nil {
		in = ts.Script(ts)
	}
	ts.StepWith(in)
}

// StepWith advances one frame with an explicit input.
func (ts *TestSim) StepWith(in Input) {
	ts.tick++
	ts.Session.Tick(in, 1/ts.FPS)
}

// RunTicks advances the simulation n frames.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Step()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step()
		if predicate(ts) {
			return ts.tick
		}
	}
	return -1
}

// Ended reports whether the session is won or lost.
func (ts *TestSim) Ended() bool {
	return ts.Session.State() != StatePlaying
}

// Player and Stalker expose live actor state to tests.
func (ts *TestSim) Player() *Player { return &ts.Session.player }
func (ts *TestSim) Stalker() *Stalker { return &ts.Session.stalker }
