package game

import (
	"math"
	"strings"
	"testing"
)

// A corridor for the player and a sealed cell for the stalker.
var splitCorridor = []string{
	"##########",
	"#......#.#",
	"##########",
}

func walkRight(ts *TestSim) Input {
	p := ts.Player()
	return Input{P1: Dir{Right: true}, AimX: p.X + 100, AimY: p.Y}
}

func hasSound(sounds []Sound, want Sound) int {
	n := 0
	for _, s := range sounds {
		if s == want {
			n++
		}
	}
	return n
}

func TestSession_NewSessionInvariants(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(cfg, ModeSingle, NewRand(42))
	sn := s.Snapshot()
	if sn.State != StatePlaying || sn.Mode != ModeSingle || sn.Clock != 0 {
		t.Fatalf("unexpected start %s/%s clock=%.0f", sn.State, sn.Mode, sn.Clock)
	}
	start := sn.Grid.CellCenter(Cell{X: 1, Y: 1})
	if sn.Player.X != start.X || sn.Player.Y != start.Y {
		t.Fatal("player starts on the start cell centre")
	}
	if sn.Player.Health != 3 || sn.Player.Redirects != 0 || sn.Stalker.Items != 0 {
		t.Fatal("fresh session has full health and no held items")
	}
	if math.Hypot(sn.Stalker.X-start.X, sn.Stalker.Y-start.Y) <= 100 {
		t.Fatal("stalker spawns more than 100 units away")
	}
	if sn.Stalker.State != StalkerPatrol || sn.Stalker.Aware {
		t.Fatal("stalker starts as an unaware patrol")
	}
	if len(sn.Relics) == 0 {
		t.Fatal("expected relics")
	}
	if s.Events().CountCategory(CatSession, "reset") != 1 {
		t.Fatal("expected a reset event")
	}
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s := NewSession(DefaultConfig(), ModeSingle, NewRand(3))
	sn := s.Snapshot()
	sn.Relics[0].Found = true
	if s.Snapshot().Relics[0].Found {
		t.Fatal("mutating a snapshot must not touch the session")
	}
}

func TestSession_WinByCollectingRelic(t *testing.T) {
	ts := NewTestSim(
		WithLayout(splitCorridor...),
		WithPlayerAt(1, 1),
		WithStalkerAt(8, 1),
		WithRelicAt(3, 1),
		WithScript(walkRight),
	)
	if tick := ts.RunUntil((*TestSim).Ended, 300); tick < 0 {
		t.Fatalf("expected a win within 300 ticks\n%s", ts.Log().Format())
	}
	if ts.Session.State() != StateWon {
		t.Fatalf("expected won, got %s", ts.Session.State())
	}
	sounds := ts.Session.DrainSounds()
	if hasSound(sounds, SoundRelic) != 1 || hasSound(sounds, SoundWin) != 1 {
		t.Fatalf("expected one relic and one win sound, got %v", sounds)
	}
	if len(ts.Session.DrainSounds()) != 0 {
		t.Fatal("drain should empty the queue")
	}
	if !ts.Log().HasEntry(CatSession, "won", "all 1 relics") {
		t.Fatalf("missing win event\n%s", ts.Log().Format())
	}

	// A finished session ignores further ticks.
	clock := ts.Session.Now()
	ts.RunTicks(10)
	if ts.Session.Now() != clock || ts.Session.State() != StateWon {
		t.Fatal("ended session should not advance")
	}
}

func TestSession_RelicNeedsTheBeam(t *testing.T) {
	ts := NewTestSim(
		WithLayout(splitCorridor...),
		WithPlayerAt(1, 1),
		WithStalkerAt(8, 1),
		WithRelicAt(3, 1),
		WithScript(func(ts *TestSim) Input {
			relic := ts.Session.Grid().CellCenter(Cell{X: 3, Y: 1})
			p := ts.Player()
			// Close in on the relic while pointing the flashlight backwards.
			in := Input{AimX: p.X - 100, AimY: p.Y}
			if p.X < relic.X-20 {
				in.P1.Right = true
			}
			return in
		}),
	)
	ts.RunTicks(120)
	relic := ts.Session.Grid().CellCenter(Cell{X: 3, Y: 1})
	p := ts.Player()
	if d := dist(p.X, p.Y, relic.X, relic.Y); d >= DefaultConfig().Pickups.CollectRadius {
		t.Fatalf("player should be within reach of the relic, dist=%.1f", d)
	}
	if ts.Session.RelicsFound() != 0 {
		t.Fatal("an unlit relic must not be collected")
	}

	// Turning the beam onto it collects it.
	ts.StepWith(Input{AimX: relic.X, AimY: relic.Y})
	if ts.Session.RelicsFound() != 1 || ts.Session.State() != StateWon {
		t.Fatalf("lit relic should be collected, found=%d state=%v", ts.Session.RelicsFound(), ts.Session.State())
	}
}

func TestSession_FoundFlagIsMonotonic(t *testing.T) {
	ts := NewTestSim(
		WithLayout(splitCorridor...),
		WithPlayerAt(1, 1),
		WithStalkerAt(8, 1),
		WithRelicAt(2, 1),
		WithRelicAt(6, 1),
		WithScript(func(ts *TestSim) Input {
			// Hover over the first relic, lighting it every tick.
			target := ts.Session.Grid().CellCenter(Cell{X: 2, Y: 1})
			p := ts.Player()
			in := Input{AimX: target.X, AimY: target.Y}
			if p.X < target.X-4 {
				in.P1.Right = true
			}
			return in
		}),
	)
	ts.RunTicks(240)
	if n := ts.Log().CountCategory(CatPickup, "relic"); n != 1 {
		t.Fatalf("relic collected %d times", n)
	}
	if ts.Session.RelicsFound() != 1 || ts.Session.State() != StatePlaying {
		t.Fatal("one of two relics found, still playing")
	}
}

func TestSession_RedirectCollectedOnce(t *testing.T) {
	ts := NewTestSim(
		WithLayout(splitCorridor...),
		WithPlayerAt(1, 1),
		WithStalkerAt(8, 1),
		WithRedirectAt(2, 1),
		WithRelicAt(6, 1),
		WithScript(func(ts *TestSim) Input {
			// Hover over the redirect, lighting it every tick.
			target := ts.Session.Grid().CellCenter(Cell{X: 2, Y: 1})
			p := ts.Player()
			in := Input{AimX: target.X, AimY: target.Y}
			if p.X < target.X-4 {
				in.P1.Right = true
			}
			return in
		}),
	)
	ts.RunTicks(240)
	if got := ts.Player().Redirects; got != 1 {
		t.Fatalf("player holds %d redirects, want 1", got)
	}
	if n := ts.Log().CountCategory(CatPickup, "redirect"); n != 1 {
		t.Fatalf("redirect collected %d times", n)
	}
}

func TestSession_LossAfterRepeatedHits(t *testing.T) {
	ts := NewTestSim(
		WithLayout(splitCorridor...),
		WithMode(ModeCoop),
		WithPlayerAt(1, 1),
		WithStalkerAt(3, 1),
		WithRelicAt(6, 1),
		WithHealth(2),
		WithScript(func(*TestSim) Input {
			return Input{P2: Dir{Left: true}}
		}),
	)
	if ts.RunUntil((*TestSim).Ended, 600) < 0 {
		t.Fatalf("expected a loss within 600 ticks\n%s", ts.Log().Format())
	}
	if ts.Session.State() != StateLost {
		t.Fatalf("expected lost, got %s", ts.Session.State())
	}
	hits := ts.Log().Filter(CatHit, "damage")
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if gap := hits[1].Clock - hits[0].Clock; gap <= 1000 {
		t.Fatalf("second hit landed %.0fms after the first, inside invulnerability", gap)
	}
	sounds := ts.Session.DrainSounds()
	if hasSound(sounds, SoundHealthLoss) != 2 || hasSound(sounds, SoundGameOver) != 1 {
		t.Fatalf("unexpected sounds %v", sounds)
	}
	if ts.Player().Health != 0 {
		t.Fatalf("expected health 0, got %d", ts.Player().Health)
	}
}

// A stalker that cannot move makes the perception timeline easy to observe.
func frozenStalkerConfig() Config {
	cfg := DefaultConfig()
	cfg.Stalker.Speed = 0
	return cfg
}

func TestSession_SpotThenForget(t *testing.T) {
	lookAtStalker := true
	ts := NewTestSim(
		WithConfig(frozenStalkerConfig()),
		WithLayout(splitCorridor...),
		WithPlayerAt(1, 1),
		WithStalkerAt(4, 1),
		WithRelicAt(6, 1),
		WithScript(func(ts *TestSim) Input {
			p := ts.Player()
			if lookAtStalker {
				return Input{AimX: p.X + 100, AimY: p.Y}
			}
			return Input{AimX: p.X - 100, AimY: p.Y}
		}),
	)
	ts.Step()
	st := ts.Stalker()
	if st.State != StalkerChase || !st.Aware {
		t.Fatalf("expected chase after being lit, got %s", st.State)
	}
	if !ts.Log().HasEntry(CatStalker, "spotted", "") {
		t.Fatal("expected a spotted event")
	}
	if sn := ts.Session.Snapshot(); sn.Stalker.SpottedAt != sn.Clock {
		t.Fatal("spotted effect should be stamped this tick")
	}

	lookAtStalker = false
	tick := ts.RunUntil(func(ts *TestSim) bool { return ts.Stalker().State == StalkerPatrol }, 400)
	if tick < 0 {
		t.Fatalf("stalker never gave up\n%s", ts.Log().Format())
	}
	if ms := ts.Session.Now(); ms <= 3000 {
		t.Fatalf("forgot too early at %.0fms", ms)
	}
	if ts.Stalker().Aware {
		t.Fatal("patrol after forgetting is unaware")
	}
	if !ts.Log().HasEntry(CatStalker, "state", "chase -> patrol") {
		t.Fatalf("missing transition\n%s", ts.Log().Format())
	}
}

func TestSession_NoiseStartsInvestigation(t *testing.T) {
	ts := NewTestSim(
		WithConfig(frozenStalkerConfig()),
		WithLayout(splitCorridor...),
		WithPlayerAt(1, 1),
		WithStalkerAt(8, 1),
		WithRelicAt(6, 1),
		WithScript(func(ts *TestSim) Input {
			p := ts.Player()
			return Input{P1: Dir{Down: true}, AimX: p.X - 100, AimY: p.Y}
		}),
	)
	ts.Step()
	st := ts.Stalker()
	if st.State != StalkerInvestigate || !st.Aware {
		t.Fatalf("expected investigate after noise, got %s", st.State)
	}
	if st.TargetX != ts.Player().X {
		t.Fatal("investigation targets the noisy player")
	}
}

func TestSession_GlowRisesWhileAware(t *testing.T) {
	ts := NewTestSim(
		WithConfig(frozenStalkerConfig()),
		WithLayout(splitCorridor...),
		WithPlayerAt(1, 1),
		WithStalkerAt(4, 1),
		WithRelicAt(6, 1),
		WithScript(func(ts *TestSim) Input {
			p := ts.Player()
			return Input{AimX: p.X + 100, AimY: p.Y}
		}),
	)
	ts.RunTicks(15) // 0.25s at +2/s
	if g := ts.Session.Snapshot().Stalker.Glow; math.Abs(g-0.5) > 1e-6 {
		t.Fatalf("expected glow 0.5, got %.3f", g)
	}
	ts.RunTicks(60)
	if g := ts.Session.Snapshot().Stalker.Glow; g != 1 {
		t.Fatalf("glow caps at 1, got %.3f", g)
	}
}

func TestSession_RedirectPickupAndUse(t *testing.T) {
	ts := NewTestSim(
		WithConfig(frozenStalkerConfig()),
		WithLayout(openRoom...),
		WithPlayerAt(1, 1),
		WithStalkerAt(3, 2),
		WithRedirectAt(2, 1),
		WithRelicAt(6, 4),
		WithScript(walkRight),
	)
	ts.RunUntil(func(ts *TestSim) bool { return ts.Player().Redirects > 0 }, 120)
	if ts.Player().Redirects != 1 {
		t.Fatalf("expected one held redirect\n%s", ts.Log().Format())
	}
	if hasSound(ts.Session.DrainSounds(), SoundTeleportItem) != 1 {
		t.Fatal("expected the pickup sound")
	}

	ts.StepWith(Input{Actions: ActRedirect})
	p, st := ts.Player(), ts.Stalker()
	if p.Redirects != 0 {
		t.Fatal("redirect should be spent")
	}
	if d := math.Hypot(st.X-p.X, st.Y-p.Y); d < 100 {
		t.Fatalf("stalker landed only %.0f units away", d)
	}
	if hasSound(ts.Session.DrainSounds(), SoundButton) != 1 {
		t.Fatal("expected the button sound")
	}
	if sn := ts.Session.Snapshot(); sn.Stalker.RedirectedAt != sn.Clock {
		t.Fatal("redirect effect should be stamped")
	}

	// Nothing held: the action is ignored.
	before := *ts.Stalker()
	ts.StepWith(Input{Actions: ActRedirect})
	if ts.Stalker().X != before.X || ts.Stalker().Y != before.Y {
		t.Fatal("redirect without items must not move the stalker")
	}
}

func TestSession_StalkerCollectsItemWithoutBeam(t *testing.T) {
	ts := NewTestSim(
		WithMode(ModeCoop),
		WithLayout(splitCorridor...),
		WithPlayerAt(1, 1),
		WithStalkerAt(8, 1),
		WithStalkerItemAt(8, 1),
		WithRelicAt(6, 1),
	)
	ts.Step()
	if ts.Stalker().Items != 1 {
		t.Fatal("stalker should pick up the item it stands on")
	}
	if hasSound(ts.Session.DrainSounds(), SoundMonsterTeleportItem) != 1 {
		t.Fatal("expected the stalker item sound")
	}
	ts.RunTicks(5)
	if n := ts.Log().CountCategory(CatPickup, "stalker_item"); n != 1 {
		t.Fatalf("item collected %d times", n)
	}
}

func TestSession_CoopAmbushAction(t *testing.T) {
	ts := NewTestSim(
		WithMode(ModeCoop),
		WithLayout(
			"############",
			"#..........#",
			"#..........#",
			"#..........#",
			"#..........#",
			"#..........#",
			"#..........#",
			"############",
		),
		WithPlayerAt(5, 4),
		WithStalkerAt(10, 1),
		WithRelicAt(1, 6),
		WithHeldItems(0, 1),
	)
	ts.StepWith(Input{Actions: ActStalkerTeleport})
	p, st := ts.Player(), ts.Stalker()
	if st.Items != 0 {
		t.Fatalf("expected the item to be spent\n%s", ts.Log().Format())
	}
	if d := math.Hypot(st.X-p.X, st.Y-p.Y); d < 60 || d > 150 {
		t.Fatalf("ambush landed %.0f units away", d)
	}
	if !ts.Log().HasEntry(CatStalker, "ambush", "") {
		t.Fatal("expected an ambush event")
	}
}

func TestSession_AmbushActionIgnoredInSingle(t *testing.T) {
	cfg := frozenStalkerConfig()
	cfg.Stalker.TeleportChanceFar = 0
	ts := NewTestSim(
		WithConfig(cfg),
		WithLayout(splitCorridor...),
		WithPlayerAt(1, 1),
		WithStalkerAt(8, 1),
		WithRelicAt(6, 1),
		WithHeldItems(0, 1),
	)
	ts.StepWith(Input{Actions: ActStalkerTeleport})
	if ts.Stalker().Items != 1 {
		t.Fatal("the stalker action key belongs to co-op mode only")
	}
}

func TestSession_RestartOnlyAfterEnd(t *testing.T) {
	ts := NewTestSim(
		WithLayout(splitCorridor...),
		WithPlayerAt(1, 1),
		WithStalkerAt(8, 1),
		WithRelicAt(3, 1),
		WithScript(walkRight),
	)
	id := ts.Session.ID
	ts.StepWith(Input{Actions: ActRestart})
	if ts.Session.ID != id {
		t.Fatal("restart while playing must be ignored")
	}

	ts.RunUntil((*TestSim).Ended, 300)
	ts.Session.DrainSounds()
	ts.StepWith(Input{Actions: ActRestart})
	s := ts.Session
	if s.ID == id || s.State() != StatePlaying || s.Now() != 0 {
		t.Fatal("restart after the end starts a fresh session")
	}
	if s.Grid().Cols != 24 || s.Grid().Rows != 16 {
		t.Fatal("restart carves a new default maze")
	}
	if hasSound(s.DrainSounds(), SoundButton) != 1 {
		t.Fatal("restart plays the button sound")
	}
	if s.Events().CountCategory(CatSession, "won") != 0 {
		t.Fatal("the event log is cleared on reset")
	}
}

func TestSession_SelectModeAnyTime(t *testing.T) {
	s := NewSession(DefaultConfig(), ModeSingle, NewRand(8))
	id := s.ID
	s.Tick(Input{Actions: ActSelectMode, Mode: ModeCoop}, 1.0/60)
	if s.Mode() != ModeCoop || s.ID == id || s.State() != StatePlaying {
		t.Fatal("mode switch rebuilds the session in the new mode")
	}
	if s.Now() != 0 {
		t.Fatal("the switching tick does not advance the clock")
	}
}

func TestSession_DeterministicForSeed(t *testing.T) {
	run := func() string {
		ap := NewAutopilot()
		ts := NewTestSim(WithSeed(77), WithScript(func(ts *TestSim) Input {
			return ap.Next(ts.Session.Snapshot())
		}))
		ts.RunTicks(600)
		return ts.Log().Format() + ts.Session.annotatedMaze()
	}
	if a, b := run(), run(); a != b {
		t.Fatal("same seed and inputs should replay identically")
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeSingle, ModeCoop} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("round trip of %s failed: %v", m, err)
		}
	}
	if _, err := ParseMode("versus"); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}

func TestSession_ReportMentionsOutcome(t *testing.T) {
	ts := NewTestSim(
		WithLayout(splitCorridor...),
		WithPlayerAt(1, 1),
		WithStalkerAt(8, 1),
		WithRelicAt(3, 1),
		WithScript(walkRight),
	)
	ts.RunUntil((*TestSim).Ended, 300)
	rep := ts.Session.Report()
	for _, want := range []string{"state=won", "relics=1/1", "escaped", "S#", "won"} {
		if !strings.Contains(rep, want) {
			t.Fatalf("report missing %q:\n%s", want, rep)
		}
	}
	o := ts.Session.Outcome()
	if o.State != StateWon || o.RelicsFound != 1 || o.Hits != 0 {
		t.Fatalf("unexpected outcome %+v", o)
	}
}
