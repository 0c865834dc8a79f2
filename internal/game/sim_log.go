package game

import (
	"fmt"
	"strings"
)

// Event categories recorded by a session.
const (
	CatSession = "session" // reset, mode, won, lost
	CatPickup  = "pickup"  // relic, redirect, stalker_item
	CatStalker = "stalker" // state, spotted, ambush
	CatAction  = "action"  // redirect, exhausted
	CatHit     = "hit"     // damage, invulnerable
)

// SimLogEntry is one recorded session event.
type SimLogEntry struct {
	Tick     int
	Clock    float64 // simulated ms
	Actor    string  // "player", "stalker", or "--" for session-wide events
	Category string
	Key      string // specific event name within the category
	Value    string // human-readable detail
	NumVal   float64
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042 1400ms] stalker  stalker   state   patrol -> chase
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d %6.0fms] %-8s %-8s %-12s %s",
		e.Tick, e.Clock, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events for one session. It is unbounded and
// cleared on every reset; the UI event panel keeps its own short tail.
type SimLog struct {
	entries []SimLogEntry
}

// NewSimLog creates an empty SimLog.
func NewSimLog() *SimLog {
	return &SimLog{}
}

// Add appends an event.
func (sl *SimLog) Add(tick int, clock float64, actor, category, key, value string, num float64) {
	sl.entries = append(sl.entries, SimLogEntry{tick, clock, actor, category, key, value, num})
}

// Entries returns every event in order. The slice is shared; do not modify.
func (sl *SimLog) Entries() []SimLogEntry { return sl.entries }

// Len returns the number of recorded entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// Since returns the entries recorded after the first n.
func (sl *SimLog) Since(n int) []SimLogEntry {
	if n >= len(sl.entries) {
		return nil
	}
	if n < 0 {
		n = 0
	}
	return sl.entries[n:]
}

// matches reports whether e has the category and key; empty strings match anything.
func (e SimLogEntry) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// Filter returns the entries with the given category and key ("" = any).
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.matches(category, key) {
			out = append(out, e)
		}
	}
	return out
}

// FilterActor returns entries for one actor.
func (sl *SimLog) FilterActor(actor string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == actor {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory counts entries with the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range sl.entries {
		if e.matches(category, key) {
			n++
		}
	}
	return n
}

// LastOf returns the newest entry with the given category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if sl.entries[i].matches(category, key) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry reports whether some entry matches category and key and has a
// value containing substr.
func (sl *SimLog) HasEntry(category, key, substr string) bool {
	for _, e := range sl.entries {
		if e.matches(category, key) && strings.Contains(e.Value, substr) {
			return true
		}
	}
	return false
}

// Format renders one line per entry for test failure output.
func (sl *SimLog) Format() string {
	lines := make([]string, len(sl.entries))
	for i, e := range sl.entries {
		lines[i] = e.String() + "\n"
	}
	return strings.Join(lines, "")
}

func (sl *SimLog) reset() {
	sl.entries = nil
}
