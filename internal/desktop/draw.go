package desktop

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/loop"
	"github.com/tomz197/spacedodge/internal/object"
	"github.com/tomz197/spacedodge/internal/physics"
)

var (
	colorBackground   = color.RGBA{0x05, 0x05, 0x12, 0xff}
	colorPlayer       = color.RGBA{0x00, 0xe5, 0xff, 0xff}
	colorAsteroid     = color.RGBA{0x8b, 0x8b, 0x83, 0xff}
	colorAsteroidEdge = color.RGBA{0x5a, 0x5a, 0x54, 0xff}
	colorAlien        = color.RGBA{0x32, 0xcd, 0x32, 0xff}
	colorAlienDome    = color.RGBA{0xa0, 0xff, 0xa0, 0xff}
	colorLaser        = color.RGBA{0xff, 0x40, 0x40, 0xff}
	colorStarNear     = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	colorStarFar      = color.RGBA{0x60, 0x60, 0x60, 0xff}
	colorSpark        = color.RGBA{0xff, 0xd2, 0x4d, 0xff}
	colorRing         = color.RGBA{0xff, 0x6a, 0x00, 0xff}
	colorTitle        = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	colorText         = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorMessage      = color.RGBA{0xff, 0xff, 0x00, 0xff}
	colorHint         = color.RGBA{0x87, 0xce, 0xeb, 0xff}
	colorDanger       = color.RGBA{0xff, 0x30, 0x30, 0xff}
	colorFaint        = color.RGBA{0x90, 0x90, 0x90, 0xff}
	colorButton       = color.RGBA{0x1e, 0x2a, 0x3a, 0xff}
	colorButtonHot    = color.RGBA{0x46, 0x82, 0xb4, 0xff}
)

// Text scales over the 6x12 bitmap font.
const (
	textSmall = 2.0
	textLarge = 3.0
	textTitle = 8.0
)

// ringRadius is how far an explosion ring grows over its lifetime.
const ringRadius = 120.0

// Draw renders the current screen.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	a.drawStars(screen)

	s := a.client.Screen()
	if s == loop.ScreenPlaying || s == loop.ScreenLost {
		a.drawWorld(screen, s == loop.ScreenPlaying)
	}
	a.drawBlasts(screen)
	a.drawParticles(screen)

	if idle, left := a.client.IdleWarning(); idle {
		a.drawIdle(screen, int(math.Ceil(left.Seconds())))
	} else {
		a.drawScreen(screen, s)
	}

	if a.showFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %0.1f FPS: %0.1f", ebiten.ActualTPS(), ebiten.ActualFPS()), 4, 4)
	}
}

func (a *App) drawScreen(screen *ebiten.Image, s loop.Screen) {
	cx := float64(config.FieldWidth) / 2
	cy := float64(config.FieldHeight) / 2

	switch s {
	case loop.ScreenMenu:
		a.text(screen, "SPACE DODGE", cx, 120, textTitle, colorTitle, text.AlignCenter)
		a.drawButtons(screen, s, a.client.MenuIndex())
		a.text(screen, "Up/Down select . Enter choose . Q quit", cx, 740, textSmall, colorFaint, text.AlignCenter)
	case loop.ScreenPlaying:
		a.drawHUD(screen)
	case loop.ScreenLost:
		a.drawHUD(screen)
		if a.client.ShowLostBanner() {
			a.text(screen, "You lost!", cx, cy-40, textTitle, colorDanger, text.AlignCenter)
		}
	case loop.ScreenNameEntry:
		a.text(screen, fmt.Sprintf("Score: %d", a.client.Game().FinalScore()), cx, 200, textLarge*2, colorTitle, text.AlignCenter)
		a.text(screen, "New high score! Enter your name:", cx, 320, textLarge, colorText, text.AlignCenter)
		field := centeredButton(400, 600)
		vector.DrawFilledRect(screen, float32(field.X), float32(field.Y), float32(field.W), float32(field.H), colorButton, false)
		vector.StrokeRect(screen, float32(field.X), float32(field.Y), float32(field.W), float32(field.H), 3, colorButtonHot, false)
		a.text(screen, a.client.Name()+"_", cx, field.Y+field.H/2-18, textLarge, colorText, text.AlignCenter)
		a.drawButtons(screen, s, -1)
	case loop.ScreenPlayAgain:
		a.text(screen, fmt.Sprintf("Score: %d", a.client.Game().FinalScore()), cx, 220, textLarge*2, colorTitle, text.AlignCenter)
		a.text(screen, "Play again? (Y/N)", cx, 340, textLarge, colorText, text.AlignCenter)
		a.drawButtons(screen, s, -1)
	case loop.ScreenTopScores:
		a.drawTopScores(screen, cx)
	case loop.ScreenOptions:
		a.drawOptions(screen, cx)
	}
}

// text draws s with its top edge at y. The alignment is relative to x.
func (a *App) text(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, a.face, op)
}

func (a *App) drawStars(screen *ebiten.Image) {
	for i, layer := range a.client.Stars().Layers {
		clr, size := colorStarNear, float32(3)
		if i > 0 {
			clr, size = colorStarFar, 2
		}
		for _, s := range layer.Stars {
			vector.DrawFilledRect(screen, float32(s.X), float32(s.Y), size, size, clr, false)
		}
	}
}

func (a *App) drawWorld(screen *ebiten.Image, showPlayer bool) {
	session := a.client.Game().Session()
	if session == nil {
		return
	}

	for _, e := range session.Asteroids() {
		r := e.Rect()
		fillRect(screen, r, colorAsteroid)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 3, colorAsteroidEdge, false)
	}
	for _, e := range session.Aliens() {
		drawAlien(screen, e)
	}
	for _, l := range session.Lasers() {
		fillRect(screen, l.Rect(), colorLaser)
	}
	if showPlayer {
		a.drawPlayer(screen, session.Player())
	}
}

func fillRect(dst *ebiten.Image, r physics.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

// drawAlien draws a hull with a dome on top.
func drawAlien(dst *ebiten.Image, e *object.Entity) {
	r := e.Rect()
	hull := physics.Rect{X: r.X, Y: r.Y + r.H*0.45, W: r.W, H: r.H * 0.55}
	fillRect(dst, hull, colorAlien)
	cx, _ := r.Center()
	vector.DrawFilledCircle(dst, float32(cx), float32(r.Y+r.H*0.45), float32(r.H*0.4), colorAlienDome, true)
}

// drawPlayer fills the ship's triangle.
func (a *App) drawPlayer(dst *ebiten.Image, p *object.Player) {
	r := p.Rect()
	var path vector.Path
	path.MoveTo(float32(r.X+r.W/2), float32(r.Y))
	path.LineTo(float32(r.Right()), float32(r.Bottom()))
	path.LineTo(float32(r.X), float32(r.Bottom()))
	path.Close()

	a.vertices, a.indices = path.AppendVerticesAndIndicesForFilling(a.vertices[:0], a.indices[:0])
	cr, cg, cb, ca := colorPlayer.RGBA()
	for i := range a.vertices {
		v := &a.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = float32(cr) / 0xffff
		v.ColorG = float32(cg) / 0xffff
		v.ColorB = float32(cb) / 0xffff
		v.ColorA = float32(ca) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(a.vertices, a.indices, a.white, op)
}

// drawBlasts draws a ring that grows and fades for each explosion.
func (a *App) drawBlasts(dst *ebiten.Image) {
	for _, b := range a.client.Blasts() {
		t := b.Age.Seconds() / config.ExplosionDuration.Seconds()
		clr := colorRing
		clr.A = uint8(255 * (1 - t))
		// color.RGBA is premultiplied.
		clr.R = uint8(float64(clr.R) * (1 - t))
		clr.G = uint8(float64(clr.G) * (1 - t))
		clr.B = uint8(float64(clr.B) * (1 - t))
		vector.StrokeCircle(dst, float32(b.X), float32(b.Y), float32(10+ringRadius*t), 6, clr, true)
	}
}

func (a *App) drawParticles(dst *ebiten.Image) {
	for _, p := range a.client.Particles() {
		life := p.Life()
		if life <= 0 {
			continue
		}
		clr := colorSpark
		if life < 0.5 {
			clr = colorRing
		}
		vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), float32(2+3*life), clr, true)
	}
}

func (a *App) drawHUD(dst *ebiten.Image) {
	session := a.client.Game().Session()
	if session == nil {
		return
	}
	st := session.State()
	cx := float64(config.FieldWidth) / 2

	a.text(dst, fmt.Sprintf("Score: %d", st.Score), 20, 16, textLarge, colorText, text.AlignStart)
	a.text(dst, fmt.Sprintf("Time: %ds", int(st.Elapsed.Seconds())), 20, 60, textLarge, colorText, text.AlignStart)
	a.text(dst, fmt.Sprintf("Level: %d", st.Level), config.FieldWidth-20, 16, textLarge, colorText, text.AlignEnd)

	for i, m := range a.client.Messages() {
		a.text(dst, m.Text, cx, 200+float64(i)*50, textLarge, colorMessage, text.AlignCenter)
	}
	if hint := session.Hint(); hint != "" {
		a.text(dst, hint, cx, config.FieldHeight-60, textSmall, colorHint, text.AlignCenter)
	}
}

// drawButtons draws the screen's buttons. The one under the cursor or at
// index selected is highlighted.
func (a *App) drawButtons(dst *ebiten.Image, s loop.Screen, selected int) {
	bs := buttons(s)
	hot := buttonAt(bs, a.cursorX, a.cursorY)
	for i, b := range bs {
		clr := colorButton
		if i == hot || i == selected {
			clr = colorButtonHot
		}
		fillRect(dst, b.rect, clr)
		vector.StrokeRect(dst, float32(b.rect.X), float32(b.rect.Y), float32(b.rect.W), float32(b.rect.H), 2, colorFaint, false)
		cx, cy := b.rect.Center()
		a.text(dst, b.label, cx, cy-18, textLarge, colorText, text.AlignCenter)
	}
}

func (a *App) drawTopScores(dst *ebiten.Image, cx float64) {
	a.text(dst, "Top Scores", cx, 140, textLarge*2, colorTitle, text.AlignCenter)
	entries := a.client.TopScores()
	if len(entries) == 0 {
		a.text(dst, "No scores yet!", cx, 300, textLarge, colorText, text.AlignCenter)
		return
	}
	for i, e := range entries {
		line := fmt.Sprintf("%d. %-*s %6d", i+1, config.MaxUsernameLength, e.Name, e.Score)
		a.text(dst, line, cx, 280+float64(i)*60, textLarge, colorText, text.AlignCenter)
	}
}

func (a *App) drawOptions(dst *ebiten.Image, cx float64) {
	engine := a.client.Audio()
	a.text(dst, "Options", cx, 140, textLarge*2, colorTitle, text.AlignCenter)
	a.text(dst, fmt.Sprintf("Volume: %3d%%", int(math.Round(engine.Volume()*100))), cx, 347, textLarge, colorText, text.AlignCenter)
	sound := "Sound: on"
	if engine.Muted() {
		sound = "Sound: off"
	}
	a.text(dst, sound, cx, 410, textSmall, colorHint, text.AlignCenter)
	if !engine.Enabled() {
		a.text(dst, "(no audio device)", cx, 680, textSmall, colorFaint, text.AlignCenter)
	}
	a.drawButtons(dst, loop.ScreenOptions, -1)
}

func (a *App) drawIdle(dst *ebiten.Image, secondsLeft int) {
	cx := float64(config.FieldWidth) / 2
	a.text(dst, "INACTIVITY WARNING", cx, 260, textLarge*2, colorDanger, text.AlignCenter)
	a.text(dst, fmt.Sprintf("You will be disconnected in %d seconds.", secondsLeft), cx, 380, textLarge, colorText, text.AlignCenter)
	a.text(dst, "Press any key to continue", cx, 460, textSmall, colorHint, text.AlignCenter)
}
