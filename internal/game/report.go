package game

import (
	"fmt"
	"strings"
)

// Outcome summarises how a session ended, for reports and headless runs.
type Outcome struct {
	State        SessionState
	Mode         Mode
	ClockMs      float64
	Ticks        int
	RelicsFound  int
	RelicsTotal  int
	Health       int
	Hits         int
	Spotted      int
	Ambushes     int
	Redirects    int
	StateChanges int
	Description  string
}

// Outcome counts the session's events into a summary.
func (s *Session) Outcome() Outcome {
	ev := s.events
	o := Outcome{
		State:        s.state,
		Mode:         s.mode,
		ClockMs:      s.now,
		Ticks:        s.tick,
		RelicsFound:  s.RelicsFound(),
		RelicsTotal:  len(s.pickups.Relics),
		Health:       s.player.Health,
		Hits:         ev.CountCategory(CatHit, "damage"),
		Spotted:      ev.CountCategory(CatStalker, "spotted"),
		Ambushes:     ev.CountCategory(CatStalker, "ambush"),
		Redirects:    ev.CountCategory(CatAction, "redirect"),
		StateChanges: ev.CountCategory(CatStalker, "state"),
	}
	switch s.state {
	case StateWon:
		o.Description = fmt.Sprintf("escaped with %d/%d health after %.1fs", o.Health, s.player.MaxHealth, o.ClockMs/1000)
	case StateLost:
		o.Description = fmt.Sprintf("caught with %d/%d relics after %.1fs", o.RelicsFound, o.RelicsTotal, o.ClockMs/1000)
	default:
		o.Description = fmt.Sprintf("still playing, %d/%d relics", o.RelicsFound, o.RelicsTotal)
	}
	return o
}

// Report renders a plain-text session report: outcome, the maze, and the
// most recent events. The UI copies it to the clipboard.
func (s *Session) Report() string {
	return s.report(40)
}

func (s *Session) report(lastEvents int) string {
	o := s.Outcome()
	var b strings.Builder
	fmt.Fprintf(&b, "--- Relic Stalker session report ---\n")
	fmt.Fprintf(&b, "session=%s mode=%s state=%s\n", s.ID, o.Mode, o.State)
	fmt.Fprintf(&b, "clock=%.0fms ticks=%d relics=%d/%d health=%d/%d\n",
		o.ClockMs, o.Ticks, o.RelicsFound, o.RelicsTotal, o.Health, s.player.MaxHealth)
	fmt.Fprintf(&b, "hits=%d spotted=%d ambushes=%d redirects=%d stalker_state_changes=%d\n",
		o.Hits, o.Spotted, o.Ambushes, o.Redirects, o.StateChanges)
	fmt.Fprintf(&b, "outcome: %s\n\n", o.Description)

	b.WriteString("== maze ==\n")
	b.WriteString(s.annotatedMaze())
	b.WriteByte('\n')

	entries := s.events.Entries()
	if lastEvents > 0 && len(entries) > lastEvents {
		fmt.Fprintf(&b, "== events (last %d of %d) ==\n", lastEvents, len(entries))
		entries = entries[len(entries)-lastEvents:]
	} else {
		fmt.Fprintf(&b, "== events (%d) ==\n", len(entries))
	}
	for _, e := range entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// annotatedMaze draws the grid with P (player), S (stalker), R/r (relic
// unfound/found), T (redirect) and M (stalker item).
func (s *Session) annotatedMaze() string {
	g := s.grid
	rows := make([][]byte, g.Rows)
	for y := 0; y < g.Rows; y++ {
		row := make([]byte, g.Cols)
		for x := 0; x < g.Cols; x++ {
			if g.IsWall(x, y) {
				row[x] = '#'
			} else {
				row[x] = '.'
			}
		}
		rows[y] = row
	}
	put := func(c Cell, ch byte) {
		if g.InBounds(c.X, c.Y) {
			rows[c.Y][c.X] = ch
		}
	}
	for _, p := range s.pickups.StalkerItems {
		if !p.Found {
			put(p.Cell, 'M')
		}
	}
	for _, p := range s.pickups.Redirects {
		if !p.Found {
			put(p.Cell, 'T')
		}
	}
	for _, p := range s.pickups.Relics {
		if p.Found {
			put(p.Cell, 'r')
		} else {
			put(p.Cell, 'R')
		}
	}
	put(g.CellAt(s.stalker.X, s.stalker.Y), 'S')
	put(g.CellAt(s.player.X, s.player.Y), 'P')

	var b strings.Builder
	for _, row := range rows {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
