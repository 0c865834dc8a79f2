package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Garsondee/Relic-Stalker/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	coneSteps      = 36
	detectionRing  = 100
	ringDashes     = 32
	bannerMs       = 1000
	spottedCueMs   = 1000
	teleportSpokes = 8
)

var (
	floorColor   = color.RGBA{R: 8, G: 8, B: 8, A: 255}
	wallColor    = color.RGBA{R: 51, G: 51, B: 51, A: 255}
	beamTint     = color.RGBA{R: 255, G: 255, B: 200, A: 255}
	relicColor   = color.RGBA{R: 255, G: 170, B: 0, A: 255}
	redirColor   = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	flameOuter   = color.RGBA{R: 255, G: 102, B: 0, A: 255}
	flameInner   = color.RGBA{R: 255, G: 170, B: 0, A: 255}
	playerColor  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	hurtColor    = color.RGBA{R: 255, G: 170, B: 170, A: 255}
	huntingColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	patrolColor  = color.RGBA{R: 204, G: 0, B: 0, A: 255}
)

// drawWorld renders the maze and everything on it into dst at world scale.
func (g *Game) drawWorld(dst *ebiten.Image, sn game.Snapshot) {
	dst.Fill(floorColor)
	grid := sn.Grid
	cs := float32(grid.CellSize)
	for y := 0; y < grid.Rows; y++ {
		for x := 0; x < grid.Cols; x++ {
			if grid.IsWall(x, y) {
				vector.FillRect(dst, float32(x)*cs, float32(y)*cs, cs, cs, wallColor, false)
			}
		}
	}

	g.drawBeam(dst, sn)
	drawPickups(dst, sn)
	g.drawStalker(dst, sn)
	g.drawPlayer(dst, sn)
}

// beamPath traces the flashlight fan out to reach, each ray clipped at the
// first wall it meets.
func beamPath(sn game.Snapshot, reach float64) *vector.Path {
	p, cone := sn.Player, sn.Cone
	var path vector.Path
	path.MoveTo(float32(p.X), float32(p.Y))
	for i := 0; i <= coneSteps; i++ {
		a := p.Facing - cone.HalfAngle + (2*cone.HalfAngle/coneSteps)*float64(i)
		x, y := game.ClipRay(sn.Grid, p.X, p.Y, a, reach)
		path.LineTo(float32(x), float32(y))
	}
	path.Close()
	return &path
}

// drawBeam fills the fan into an offscreen buffer and composites it with one
// tint and opacity so overlapping triangles never blow out.
func (g *Game) drawBeam(dst *ebiten.Image, sn game.Snapshot) {
	buf := g.beamBuf
	buf.Clear()
	vector.FillPath(buf, beamPath(sn, sn.Cone.Range), &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true})

	opts := &ebiten.DrawImageOptions{}
	opts.ColorScale.ScaleWithColor(beamTint)
	opts.ColorScale.ScaleAlpha(0.12)
	dst.DrawImage(buf, opts)

	// Brighter core near the lamp.
	drawFilled(dst, beamPath(sn, sn.Cone.Range*0.6), withAlpha(beamTint, 24))
}

// drawPickups draws lit relics and redirect items. Stalker items are always
// drawn; the stalker knows where they are.
func drawPickups(dst *ebiten.Image, sn game.Snapshot) {
	for _, r := range sn.Relics {
		if r.Found {
			continue
		}
		c := sn.Grid.CellCenter(r.Cell)
		if !sn.Lit(c.X, c.Y) {
			continue
		}
		x, y := float32(c.X), float32(c.Y)
		vector.FillCircle(dst, x, y, 14, withAlpha(relicColor, 50), true)
		vector.FillCircle(dst, x, y, 8, relicColor, true)
	}
	for _, r := range sn.Redirects {
		if r.Found {
			continue
		}
		c := sn.Grid.CellCenter(r.Cell)
		if !sn.Lit(c.X, c.Y) {
			continue
		}
		x, y := float32(c.X), float32(c.Y)
		vector.FillCircle(dst, x, y, 11, withAlpha(redirColor, 45), true)
		var d vector.Path
		d.MoveTo(x, y-8)
		d.LineTo(x+6, y)
		d.LineTo(x, y+8)
		d.LineTo(x-6, y)
		d.Close()
		drawFilled(dst, &d, redirColor)
	}
	for _, r := range sn.StalkerItems {
		if r.Found {
			continue
		}
		c := sn.Grid.CellCenter(r.Cell)
		drawFlame(dst, float32(c.X), float32(c.Y))
	}
}

func drawFlame(dst *ebiten.Image, x, y float32) {
	vector.FillCircle(dst, x, y, 11, withAlpha(flameOuter, 40), true)
	var outer vector.Path
	outer.MoveTo(x, y-8)
	outer.LineTo(x-4, y+4)
	outer.LineTo(x-2, y+8)
	outer.LineTo(x+2, y+8)
	outer.LineTo(x+4, y+4)
	outer.Close()
	drawFilled(dst, &outer, flameOuter)

	var inner vector.Path
	inner.MoveTo(x, y-6)
	inner.LineTo(x-2, y+2)
	inner.LineTo(x-1, y+6)
	inner.LineTo(x+1, y+6)
	inner.LineTo(x+2, y+2)
	inner.Close()
	drawFilled(dst, &inner, flameInner)
}

// drawFilled fills a path with a solid colour.
func drawFilled(dst *ebiten.Image, p *vector.Path, c color.RGBA) {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.FillPath(dst, p, &vector.FillOptions{}, op)
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	// Premultiplied: scale the channels with alpha.
	f := float32(a) / 255
	return color.RGBA{R: uint8(float32(c.R) * f), G: uint8(float32(c.G) * f), B: uint8(float32(c.B) * f), A: a}
}

func (g *Game) drawStalker(dst *ebiten.Image, sn game.Snapshot) {
	st := sn.Stalker
	x, y, r := float32(st.X), float32(st.Y), float32(st.Radius)

	// Halo grows with the awareness glow.
	if st.Aware {
		halo := r + 6 + float32(st.Glow)*14
		vector.FillCircle(dst, x, y, halo, withAlpha(huntingColor, uint8(40+float64(60)*st.Glow)), true)
	} else {
		vector.FillCircle(dst, x, y, r+5, withAlpha(color.RGBA{R: 102, G: 102, B: 102, A: 255}, 40), true)
	}

	body, edge := patrolColor, color.RGBA{R: 136, G: 136, B: 136, A: 255}
	if st.Aware {
		body, edge = huntingColor, color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	vector.FillCircle(dst, x, y, r, body, true)
	vector.StrokeCircle(dst, x, y, r, 2, edge, true)

	if st.Aware {
		for _, ex := range []float32{x - 4, x + 4} {
			vector.FillCircle(dst, ex, y-4, 3, color.White, true)
			vector.FillCircle(dst, ex, y-4, 1, color.Black, true)
		}
	}

	if sn.Mode == game.ModeSingle && (st.State == game.StalkerInvestigate || st.State == game.StalkerChase) {
		ring := flameInner
		if st.Aware {
			ring = huntingColor
		}
		drawDashedCircle(dst, x, y, detectionRing, ring)
	}

	label := "AI"
	if sn.Mode == game.ModeCoop {
		label = "P2"
	}
	drawText(dst, label, g.faces.label, st.X, st.Y-st.Radius-15, text.AlignCenter, color.White, 1)
	if st.Items > 0 {
		drawText(dst, fmt.Sprintf("x%d", st.Items), g.faces.small, st.X, st.Y+st.Radius+12, text.AlignCenter, flameOuter, 1)
	}

	// Spotted cue: a short stroke and a dot.
	if sn.Since(st.SpottedAt) < spottedCueMs {
		topY := y - r - 22
		c := color.RGBA{R: 255, G: 255, B: 0, A: 255}
		vector.StrokeLine(dst, x, topY, x, topY+9, 3, c, true)
		vector.FillCircle(dst, x, topY+13, 2, c, true)
	}

	if a := g.tweens.value(tweenRedirect); g.tweens.running(tweenRedirect) {
		drawTeleportBurst(dst, st, "TELEPORTED!", redirColor, a, g.faces.sub)
	}
	if a := g.tweens.value(tweenAmbush); g.tweens.running(tweenAmbush) {
		drawTeleportBurst(dst, st, "TELEPORTED TO PLAYER!", flameOuter, a, g.faces.sub)
	}
}

func drawTeleportBurst(dst *ebiten.Image, st game.StalkerView, msg string, c color.RGBA, alpha float32, face text.Face) {
	drawText(dst, msg, face, st.X, st.Y-st.Radius-30, text.AlignCenter, c, alpha)
	sc := withAlpha(c, uint8(255*alpha))
	for i := 0; i < teleportSpokes; i++ {
		a := float64(i) / teleportSpokes * 2 * math.Pi
		cos, sin := math.Cos(a), math.Sin(a)
		x1, y1 := st.X+cos*(st.Radius+10), st.Y+sin*(st.Radius+10)
		x2, y2 := st.X+cos*(st.Radius+25), st.Y+sin*(st.Radius+25)
		vector.StrokeLine(dst, float32(x1), float32(y1), float32(x2), float32(y2), 3, sc, true)
	}
}

func drawDashedCircle(dst *ebiten.Image, cx, cy, r float32, c color.RGBA) {
	step := 2 * math.Pi / ringDashes
	for i := 0; i < ringDashes; i += 2 {
		a0, a1 := float64(i)*step, float64(i+1)*step
		x0, y0 := cx+r*float32(math.Cos(a0)), cy+r*float32(math.Sin(a0))
		x1, y1 := cx+r*float32(math.Cos(a1)), cy+r*float32(math.Sin(a1))
		vector.StrokeLine(dst, x0, y0, x1, y1, 2, c, true)
	}
}

func (g *Game) drawPlayer(dst *ebiten.Image, sn game.Snapshot) {
	p := sn.Player
	x, y, r := float32(p.X), float32(p.Y), float32(p.Radius)
	vector.FillCircle(dst, x, y, r+6, withAlpha(playerColor, 40), true)
	body := playerColor
	if p.Invulnerable {
		body = hurtColor
	}
	vector.FillCircle(dst, x, y, r, body, true)
	vector.StrokeCircle(dst, x, y, r, 2, color.White, true)
	vector.FillCircle(dst, x, y, 2, color.White, true)
	if sn.Mode == game.ModeCoop {
		drawText(dst, "P1", g.faces.label, p.X, p.Y-p.Radius-15, text.AlignCenter, color.White, 1)
	}
}
