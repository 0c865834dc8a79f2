package ui

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Relic-Stalker/internal/game"
	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// hudHeight is the status bar above the maze.
const hudHeight = 28

// faces holds every text face the window draws with.
type faces struct {
	hud   text.Face
	label text.Face
	small text.Face
	title text.Face
	sub   text.Face
}

func newFace(tt *truetype.Font, size float64) text.Face {
	return text.NewGoXFace(truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
}

func loadFaces() (*faces, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &faces{
		hud:   newFace(regular, 16),
		label: newFace(bold, 14),
		small: newFace(bold, 11),
		title: newFace(bold, 64),
		sub:   newFace(bold, 28),
	}, nil
}

// drawText draws s with its anchor at (x,y). align applies horizontally and
// the text is vertically centred on y.
func drawText(dst *ebiten.Image, s string, face text.Face, x, y float64, align text.Align, c color.Color, alpha float32) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(alpha)
	text.Draw(dst, s, face, op)
}

// hudLine is the text shown to the left of the hearts.
func hudLine(sn game.Snapshot) string {
	return fmt.Sprintf("Relics %d/%d   Redirects %d   Stalker items %d   Mode %s",
		sn.RelicsFound, len(sn.Relics), sn.Player.Redirects, sn.Stalker.Items, sn.Mode)
}

func keyHelp(mode game.Mode) string {
	if mode == game.ModeCoop {
		return "WASD+mouse P1  IJKL P2  E redirect  U ambush  1/2 mode"
	}
	return "WASD+mouse move  E redirect  1/2 mode"
}

func (g *Game) drawHUD(screen *ebiten.Image, sn game.Snapshot) {
	w := float32(g.mazeW)
	vector.FillRect(screen, 0, 0, w, hudHeight, color.RGBA{R: 14, G: 14, B: 18, A: 255}, false)
	vector.StrokeLine(screen, 0, hudHeight-1, w, hudHeight-1, 1.0, color.RGBA{R: 60, G: 60, B: 70, A: 255}, false)

	mid := float64(hudHeight) / 2
	drawText(screen, hudLine(sn), g.faces.hud, 8, mid, text.AlignStart, color.White, 1)

	// Hearts: filled for remaining health.
	hx := float32(g.mazeW) - 16
	for i := sn.Player.MaxHealth - 1; i >= 0; i-- {
		c := color.RGBA{R: 70, G: 30, B: 30, A: 255}
		if i < sn.Player.Health {
			c = color.RGBA{R: 230, G: 40, B: 50, A: 255}
		}
		vector.FillCircle(screen, hx, float32(mid), 7, c, true)
		hx -= 20
	}
	drawText(screen, keyHelp(sn.Mode), g.faces.small, float64(hx)-8, mid, text.AlignEnd, color.RGBA{R: 150, G: 150, B: 160, A: 255}, 1)
}

// endScreen is the overlay text for a finished session.
type endScreen struct {
	title, subtitle string
	titleColor      color.RGBA
	wash            color.RGBA
}

func endScreenFor(state game.SessionState) (endScreen, bool) {
	switch state {
	case game.StateWon:
		return endScreen{
			title:      "YOU ESCAPED!",
			subtitle:   "All relics collected!",
			titleColor: color.RGBA{R: 0, G: 255, B: 120, A: 255},
			wash:       color.RGBA{R: 0, G: 255, B: 0, A: 255},
		}, true
	case game.StateLost:
		return endScreen{
			title:      "GAME OVER",
			subtitle:   "The stalker caught you!",
			titleColor: color.RGBA{R: 255, G: 0, B: 0, A: 255},
			wash:       color.RGBA{R: 255, G: 0, B: 0, A: 255},
		}, true
	}
	return endScreen{}, false
}

func (g *Game) drawEndScreen(screen *ebiten.Image, sn game.Snapshot) {
	es, ok := endScreenFor(sn.State)
	if !ok {
		return
	}
	pulse := g.tweens.value(tweenPulse)
	w, h := float32(g.mazeW), float32(g.mazeH)
	oy := float32(hudHeight)
	vector.FillRect(screen, 0, oy, w, h, color.RGBA{A: 230}, false)

	wash := es.wash
	wash.A = uint8(25 * pulse)
	vector.FillRect(screen, 0, oy, w, h, wash, false)

	cx := float64(w) / 2
	cy := float64(oy) + float64(h)/2
	drawText(screen, es.title, g.faces.title, cx, cy-80, text.AlignCenter, es.titleColor, pulse)
	drawText(screen, es.subtitle, g.faces.sub, cx, cy-20, text.AlignCenter, color.White, 1)
	drawText(screen, fmt.Sprintf("Relics %d/%d in %.1fs", sn.RelicsFound, len(sn.Relics), sn.Clock/1000),
		g.faces.hud, cx, cy+20, text.AlignCenter, color.RGBA{R: 200, G: 200, B: 200, A: 255}, 1)
	drawText(screen, "Press R to restart  1/2 to switch mode  C to copy the report",
		g.faces.hud, cx, cy+50, text.AlignCenter, color.RGBA{R: 200, G: 200, B: 200, A: 255}, 1)
}
