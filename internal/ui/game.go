// Package ui is the ebiten window for a Relic Stalker session: it turns
// keyboard and mouse into session input, draws snapshots and plays sounds.
package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/Garsondee/Relic-Stalker/internal/game"
	"github.com/Garsondee/Relic-Stalker/internal/logger"
	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/tanema/gween/ease"
)

const (
	tweenRedirect = "redirect"
	tweenAmbush   = "ambush"
	tweenPulse    = "pulse"
)

// Game implements ebiten.Game around one session.
type Game struct {
	session *game.Session

	width, height int
	mazeW, mazeH  int

	worldBuf *ebiten.Image
	beamBuf  *ebiten.Image

	faces  *faces
	sounds *soundBoard
	panel  *eventPanel
	tweens *tweens

	lastFrame    time.Time
	sessionID    uuid.UUID
	seenEvents   int
	redirectedAt float64
	ambushedAt   float64
	ended        bool

	log *logrus.Entry
}

// New builds the window state for a fresh session.
func New(cfg game.Config, mode game.Mode, seed int64) (*Game, error) {
	f, err := loadFaces()
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	log := logger.Component("ui")
	s := game.NewSession(cfg, mode, game.NewRand(seed))
	grid := s.Grid()
	mw, mh := int(grid.Width()), int(grid.Height())

	g := &Game{
		session:      s,
		mazeW:        mw,
		mazeH:        mh,
		width:        mw + panelWidth,
		height:       mh + hudHeight,
		worldBuf:     ebiten.NewImage(mw, mh),
		beamBuf:      ebiten.NewImage(mw, mh),
		faces:        f,
		sounds:       newSoundBoard(log),
		panel:        newEventPanel(),
		tweens:       newTweens(),
		redirectedAt: math.Inf(-1),
		ambushedAt:   math.Inf(-1),
		log:          log,
	}
	log.WithFields(logrus.Fields{"seed": seed, "mode": mode, "size": fmt.Sprintf("%dx%d", g.width, g.height)}).Info("window ready")
	return g, nil
}

// WindowSize is the size the window should open at.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}

func (g *Game) Update() error {
	now := time.Now()
	dt := 1.0 / float64(ebiten.TPS())
	if !g.lastFrame.IsZero() {
		dt = now.Sub(g.lastFrame).Seconds()
	}
	g.lastFrame = now

	cx, cy := ebiten.CursorPosition()
	in, copyReport := readInput(ebitenKeys{}, float64(cx), float64(cy-hudHeight))
	g.session.Tick(in, dt)

	for _, s := range g.session.DrainSounds() {
		g.sounds.play(s)
	}
	g.syncEvents()
	g.syncEffects()
	g.tweens.update(float32(dt))

	if copyReport {
		g.copyReport()
	}
	return nil
}

// syncEvents feeds new session events to the panel, starting over when the
// session was reset.
func (g *Game) syncEvents() {
	if g.session.ID != g.sessionID {
		g.sessionID = g.session.ID
		g.seenEvents = 0
		g.panel.reset()
		g.tweens.clear()
		g.ended = false
	}
	for _, e := range g.session.Events().Since(g.seenEvents) {
		g.panel.add(e)
	}
	g.seenEvents = g.session.Events().Len()
}

// syncEffects starts banner fades when an effect timestamp moves and the
// end-screen pulse when the session finishes.
func (g *Game) syncEffects() {
	sn := g.session.Snapshot()
	if at := sn.Stalker.RedirectedAt; at != g.redirectedAt {
		g.redirectedAt = at
		if !math.IsInf(at, -1) {
			g.tweens.start(tweenRedirect, 1, 0, bannerMs/1000.0, ease.InQuad, nil)
		}
	}
	if at := sn.Stalker.AmbushedAt; at != g.ambushedAt {
		g.ambushedAt = at
		if !math.IsInf(at, -1) {
			g.tweens.start(tweenAmbush, 1, 0, bannerMs/1000.0, ease.InQuad, nil)
		}
	}
	if ended := sn.State != game.StatePlaying; ended != g.ended {
		g.ended = ended
		if ended {
			g.tweens.pulse(tweenPulse)
		} else {
			g.tweens.stop(tweenPulse)
		}
	}
}

func (g *Game) copyReport() {
	if err := clipboard.WriteAll(g.session.Report()); err != nil {
		g.log.WithError(err).Warn("copy report to clipboard")
		g.panel.add(game.SimLogEntry{Clock: g.session.Now(), Category: catUI, Key: "clipboard", Value: "copy failed"})
		return
	}
	g.log.Info("report copied to clipboard")
	g.panel.add(game.SimLogEntry{Clock: g.session.Now(), Category: catUI, Key: "clipboard", Value: "report copied"})
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 4, G: 4, B: 6, A: 255})
	sn := g.session.Snapshot()

	g.drawWorld(g.worldBuf, sn)
	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(0, hudHeight)
	screen.DrawImage(g.worldBuf, &blit)

	g.drawHUD(screen, sn)
	g.drawEndScreen(screen, sn)
	g.panel.draw(screen, g.mazeW, g.height)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
