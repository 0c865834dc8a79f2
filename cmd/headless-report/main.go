package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/Relic-Stalker/internal/game"
	"github.com/Garsondee/Relic-Stalker/internal/logger"
)

type runStats struct {
	runIndex int
	seed     int64
	outcome  game.Outcome

	firstRelicTick   int
	firstSpottedTick int
	firstHitTick     int
	firstAmbushTick  int

	chases       int
	investigates int
	exhausted    int
	bySource     map[string]int
}

func main() {
	var runs int
	var seconds float64
	var fps float64
	var seedBase int64
	var seedStep int64
	var modeName string
	var configPath string
	var logLevel string

	flag.IntVar(&runs, "runs", 5, "number of headless sessions")
	flag.Float64Var(&seconds, "seconds", 180, "simulated seconds per session before giving up")
	flag.Float64Var(&fps, "fps", 60, "simulated frames per second")
	flag.Int64Var(&seedBase, "seed-base", 42, "world seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&modeName, "mode", "single", "game mode (single, coop)")
	flag.StringVar(&configPath, "config", "", "YAML tuning file overlaid on the defaults")
	flag.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.Log
	if err := logger.SetLevel(logLevel); err != nil {
		log.Fatal(err)
	}
	if runs <= 0 {
		log.Fatal("-runs must be > 0")
	}
	if seconds <= 0 || fps <= 0 {
		log.Fatal("-seconds and -fps must be > 0")
	}
	mode, err := game.ParseMode(modeName)
	if err != nil {
		log.Fatal(err)
	}
	cfg := game.DefaultConfig()
	if configPath != "" {
		if cfg, err = game.LoadConfig(configPath); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("=== Headless Session Report ===\n")
	fmt.Printf("mode=%s runs=%d seconds=%.0f fps=%.0f seed_base=%d seed_step=%d\n\n", mode, runs, seconds, fps, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runSession(i+1, seed, cfg, mode, fps, seconds)
		all = append(all, stats)
		printRun(stats)
	}
	printAggregate(all)
}

// runSession plays one bot-driven session until it ends or runs out of time.
func runSession(runIndex int, seed int64, cfg game.Config, mode game.Mode, fps, seconds float64) runStats {
	bot := game.NewAutopilot()
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithConfig(cfg),
		game.WithMode(mode),
		game.WithFPS(fps),
		game.WithScript(func(ts *game.TestSim) game.Input {
			return bot.Next(ts.Session.Snapshot())
		}),
	)
	ts.RunUntil((*game.TestSim).Ended, int(seconds*fps))
	return collectStats(runIndex, seed, ts.Session.Outcome(), ts.Log().Entries())
}

func collectStats(runIndex int, seed int64, o game.Outcome, entries []game.SimLogEntry) runStats {
	rs := runStats{
		runIndex:         runIndex,
		seed:             seed,
		outcome:          o,
		firstRelicTick:   firstTick(entries, game.CatPickup, "relic", ""),
		firstSpottedTick: firstTick(entries, game.CatStalker, "spotted", ""),
		firstHitTick:     firstTick(entries, game.CatHit, "damage", ""),
		firstAmbushTick:  firstTick(entries, game.CatStalker, "ambush", ""),
		bySource:         map[string]int{},
	}
	for _, e := range entries {
		switch {
		case e.Category == game.CatStalker && e.Key == "state":
			if strings.HasSuffix(e.Value, "-> chase") {
				rs.chases++
			} else if strings.HasSuffix(e.Value, "-> investigate") {
				rs.investigates++
			}
		case e.Key == "exhausted":
			rs.exhausted++
		}
		rs.bySource[e.Actor]++
	}
	return rs
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// verdict is the one-word result of a run; a session still playing when the
// clock ran out is a timeout.
func verdict(o game.Outcome) string {
	switch o.State {
	case game.StateWon:
		return "won"
	case game.StateLost:
		return "lost"
	default:
		return "timeout"
	}
}

func printRun(rs runStats) {
	o := rs.outcome
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result=%s %s\n", verdict(o), o.Description)
	fmt.Printf("phase_markers: first_relic=%d first_spotted=%d first_hit=%d first_ambush=%d\n",
		rs.firstRelicTick, rs.firstSpottedTick, rs.firstHitTick, rs.firstAmbushTick)
	fmt.Printf("event_totals: relics=%d/%d hits=%d spotted=%d ambushes=%d redirects=%d state_changes=%d\n",
		o.RelicsFound, o.RelicsTotal, o.Hits, o.Spotted, o.Ambushes, o.Redirects, o.StateChanges)
	fmt.Printf("stalker_modes: chase=%d investigate=%d exhausted_placements=%d\n",
		rs.chases, rs.investigates, rs.exhausted)
	fmt.Printf("events_by_actor: %s\n", joinCounts(rs.bySource))
	fmt.Println()
}

func tally(all []runStats) (wins, losses, timeouts int) {
	for _, rs := range all {
		switch verdict(rs.outcome) {
		case "won":
			wins++
		case "lost":
			losses++
		default:
			timeouts++
		}
	}
	return wins, losses, timeouts
}

func printAggregate(all []runStats) {
	totalRelics := 0
	totalHits := 0
	totalSpotted := 0
	totalAmbush := 0
	totalRedirect := 0
	totalState := 0

	winTimes := make([]int, 0, len(all))
	relicTicks := make([]int, 0, len(all))
	spottedTicks := make([]int, 0, len(all))
	hitTicks := make([]int, 0, len(all))

	for _, rs := range all {
		o := rs.outcome
		totalRelics += o.RelicsFound
		totalHits += o.Hits
		totalSpotted += o.Spotted
		totalAmbush += o.Ambushes
		totalRedirect += o.Redirects
		totalState += o.StateChanges
		if o.State == game.StateWon {
			winTimes = append(winTimes, o.Ticks)
		}
		if rs.firstRelicTick >= 0 {
			relicTicks = append(relicTicks, rs.firstRelicTick)
		}
		if rs.firstSpottedTick >= 0 {
			spottedTicks = append(spottedTicks, rs.firstSpottedTick)
		}
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
	}

	wins, losses, timeouts := tally(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d won=%d lost=%d timeout=%d win_rate=%.0f%%\n",
		len(all), wins, losses, timeouts, 100*avg(wins, len(all)))
	fmt.Printf("avg_per_run: relics=%.1f hits=%.1f spotted=%.1f ambushes=%.1f redirects=%.1f state_changes=%.1f\n",
		avg(totalRelics, len(all)), avg(totalHits, len(all)), avg(totalSpotted, len(all)),
		avg(totalAmbush, len(all)), avg(totalRedirect, len(all)), avg(totalState, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_relic=%s first_spotted=%s first_hit=%s win=%s\n",
		avgTickString(relicTicks), avgTickString(spottedTicks), avgTickString(hitTicks), avgTickString(winTimes))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}
