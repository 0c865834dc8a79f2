package ui

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Relic-Stalker/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelWidth      = 320
	panelMaxEntries = 60
	panelLineHeight = 14
	panelHighlight  = 3
)

// categoryColors tints the marker beside each panel row.
var categoryColors = map[string]color.RGBA{
	game.CatSession: {R: 140, G: 140, B: 140, A: 255},
	game.CatPickup:  {R: 255, G: 170, B: 0, A: 255},
	game.CatStalker: {R: 220, G: 60, B: 60, A: 255},
	game.CatAction:  {R: 0, G: 220, B: 220, A: 255},
	game.CatHit:     {R: 255, G: 90, B: 160, A: 255},
	catUI:           {R: 120, G: 200, B: 120, A: 255},
}

// catUI marks rows that come from the window rather than the session.
const catUI = "ui"

// eventPanel is a ring buffer of recent session events drawn beside the maze.
type eventPanel struct {
	entries []game.SimLogEntry
	head    int
	count   int
}

func newEventPanel() *eventPanel {
	return &eventPanel{entries: make([]game.SimLogEntry, panelMaxEntries)}
}

func (p *eventPanel) add(e game.SimLogEntry) {
	p.entries[p.head] = e
	p.head = (p.head + 1) % panelMaxEntries
	if p.count < panelMaxEntries {
		p.count++
	}
}

func (p *eventPanel) reset() {
	p.head, p.count = 0, 0
}

// recent returns entries oldest first.
func (p *eventPanel) recent() []game.SimLogEntry {
	out := make([]game.SimLogEntry, p.count)
	for i := 0; i < p.count; i++ {
		idx := (p.head - p.count + i + panelMaxEntries) % panelMaxEntries
		out[i] = p.entries[idx]
	}
	return out
}

func panelLine(e game.SimLogEntry) string {
	if e.Value == "" {
		return fmt.Sprintf("%5.1fs %s", e.Clock/1000, e.Key)
	}
	return fmt.Sprintf("%5.1fs %s: %s", e.Clock/1000, e.Key, e.Value)
}

func (p *eventPanel) draw(screen *ebiten.Image, panelX, panelH int) {
	x := float32(panelX)
	vector.FillRect(screen, x, 0, panelWidth, float32(panelH), color.RGBA{R: 10, G: 10, B: 12, A: 248}, false)
	vector.StrokeLine(screen, x, 0, x, float32(panelH), 1.0, color.RGBA{R: 60, G: 60, B: 70, A: 255}, false)

	vector.FillRect(screen, x, 0, panelWidth, 16, color.RGBA{R: 24, G: 24, B: 30, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS   [C] copy report", panelX+8, 0)
	vector.StrokeLine(screen, x, 16, x+panelWidth, 16, 1.0, color.RGBA{R: 60, G: 60, B: 80, A: 200}, false)

	entries := p.recent()
	maxVisible := (panelH - 24) / panelLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-panelHighlight {
			vector.FillRect(screen, x+2, float32(y), panelWidth-4, panelLineHeight, color.RGBA{R: 34, G: 30, B: 40, A: 160}, false)
		}
		c, ok := categoryColors[e.Category]
		if !ok {
			c = categoryColors[game.CatSession]
		}
		vector.FillRect(screen, x+5, float32(y+4), 3, 6, c, false)
		ebitenutil.DebugPrintAt(screen, panelLine(e), panelX+12, y-1)
		y += panelLineHeight
	}
}
