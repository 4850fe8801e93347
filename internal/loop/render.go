package loop

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/object"
)

// textLine is overlay text at a 1-based canvas position.
type textLine struct {
	col, row int
	text     string
}

// drawFrame draws the current frame.
func (t *Terminal) drawFrame() error {
	cw := t.chunkWriter
	screen := t.client.Screen()
	idle, _ := t.client.IdleWarning()

	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	if screen != t.prevScreen || idle != t.prevIdle {
		draw.ClearScreen(cw)
		t.canvas.ForceRedraw()
		t.prevScreen = screen
		t.prevIdle = idle
		t.prevOverlay = ""
	}

	t.overlay = t.overlay[:0]
	t.layoutText()
	if key := overlayKey(t.overlay); key != t.prevOverlay {
		t.canvas.MarkTextDirty()
		t.prevOverlay = key
	}

	t.canvas.Clear()
	t.drawStars()
	if screen == ScreenPlaying || screen == ScreenLost {
		t.drawWorld(screen == ScreenPlaying)
	}
	t.drawParticles()

	t.canvas.Render(cw)
	t.canvas.RenderBorder(cw)

	for _, l := range t.overlay {
		cw.WriteAt(l.col, l.row, l.text)
	}

	return cw.Flush()
}

// overlayKey describes where overlay text sits. Text that keeps its
// position and width overwrites itself, so only layout changes need a repaint.
func overlayKey(lines []textLine) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strconv.Itoa(l.col))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(l.row))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(lipgloss.Width(l.text)))
		b.WriteByte(';')
	}
	return b.String()
}

func (t *Terminal) drawStars() {
	colors := []draw.Color{colorStarNear, colorStarFar}
	for i, layer := range t.client.Stars().Layers {
		color := colors[min(i, len(colors)-1)]
		for _, s := range layer.Stars {
			t.canvas.SetFloat(s.X, s.Y, color)
		}
	}
}

func (t *Terminal) drawWorld(showPlayer bool) {
	session := t.client.Game().Session()
	if session == nil {
		return
	}

	for _, a := range session.Asteroids() {
		t.canvas.FillRect(a.Rect(), colorAsteroid)
	}
	for _, a := range session.Aliens() {
		t.drawAlien(a)
	}
	for _, l := range session.Lasers() {
		t.canvas.FillRect(l.Rect(), colorLaser)
	}
	if showPlayer {
		t.drawPlayer(session.Player())
	}
}

// drawPlayer draws the ship as a triangle pointing up.
func (t *Terminal) drawPlayer(p *object.Player) {
	r := p.Rect()
	t.canvas.DrawPolygon([]draw.Point{
		{X: r.X + r.W/2, Y: r.Y},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.X, Y: r.Bottom()},
	}, colorPlayer, true)
}

// drawAlien draws a saucer: a dome on top of a wide hull.
func (t *Terminal) drawAlien(a *object.Entity) {
	r := a.Rect()
	t.canvas.DrawPolygon([]draw.Point{
		{X: r.X + r.W*0.3, Y: r.Y},
		{X: r.X + r.W*0.7, Y: r.Y},
		{X: r.Right(), Y: r.Y + r.H*0.6},
		{X: r.X + r.W*0.8, Y: r.Bottom()},
		{X: r.X + r.W*0.2, Y: r.Bottom()},
		{X: r.X, Y: r.Y + r.H*0.6},
	}, colorAlien, true)
}

func (t *Terminal) drawParticles() {
	for _, p := range t.client.Particles() {
		life := p.Life()
		switch {
		case life < 0.15:
			continue
		case life > 0.5:
			t.canvas.SetFloat(p.X, p.Y, colorSpark)
		default:
			t.canvas.SetFloat(p.X, p.Y, colorEmber)
		}
	}
}

func (t *Terminal) text(col, row int, s string) {
	t.overlay = append(t.overlay, textLine{col: col, row: row, text: s})
}

// centered adds s centered on the canvas at row.
func (t *Terminal) centered(row int, s string) {
	col := (t.canvas.TerminalWidth()-lipgloss.Width(s))/2 + 1
	t.text(max(col, 1), row, s)
}

// layoutText fills t.overlay for the current screen.
func (t *Terminal) layoutText() {
	centerY := t.canvas.TerminalHeight() / 2

	if idle, left := t.client.IdleWarning(); idle {
		t.layoutIdle(centerY, int(math.Ceil(left.Seconds())))
		return
	}

	switch t.client.Screen() {
	case ScreenMenu:
		t.layoutMenu(centerY)
	case ScreenPlaying:
		t.layoutHUD()
	case ScreenLost:
		t.layoutHUD()
		if t.client.ShowLostBanner() {
			t.centered(centerY, t.theme.Danger.Render("You lost!"))
		}
	case ScreenNameEntry:
		t.layoutNameEntry(centerY)
	case ScreenPlayAgain:
		t.layoutPlayAgain(centerY)
	case ScreenTopScores:
		t.layoutTopScores(centerY)
	case ScreenOptions:
		t.layoutOptions(centerY)
	}
}

func (t *Terminal) layoutIdle(centerY, secondsLeft int) {
	th := t.theme
	t.centered(centerY-2, th.Danger.Render("INACTIVITY WARNING"))
	t.centered(centerY, th.HUD.Render(fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %3d seconds.", secondsLeft)))
	t.centered(centerY+2, th.Hint.Render("Press any key to continue"))
}

func (t *Terminal) layoutMenu(centerY int) {
	th := t.theme
	titleArt := []string{
		` ___                   ___         _          `,
		`/ __|_ __  __ _ __ ___|   \ ___ __| |__ _ ___ `,
		`\__ \ '_ \/ _' / _/ -_) |) / _ \ _' / _' / -_)`,
		`|___/ .__/\__,_\__\___|___/\___\__,_\__, \___|`,
		`    |_|                             |___/     `,
	}
	titleY := centerY - len(titleArt) - 3
	if titleY < 1 || lipgloss.Width(titleArt[0]) > t.canvas.TerminalWidth() {
		titleArt = []string{"S P A C E   D O D G E"}
		titleY = max(centerY-5, 1)
	}
	artWidth := 0
	for _, line := range titleArt {
		artWidth = max(artWidth, lipgloss.Width(line))
	}
	artCol := max((t.canvas.TerminalWidth()-artWidth)/2+1, 1)
	for i, line := range titleArt {
		t.text(artCol, titleY+i, th.Title.Render(line))
	}

	for i, item := range MenuItems {
		label := fmt.Sprintf("  %-10s  ", item)
		style := th.Item
		if i == t.client.MenuIndex() {
			label = fmt.Sprintf("> %-10s <", item)
			style = th.Selected
		}
		t.centered(centerY+i, style.Render(label))
	}

	t.centered(centerY+len(MenuItems)+2,
		th.Faint.Render("Up/Down select . Enter choose . Q quit"))
}

// layoutHUD draws score, time and level, plus banners and the level hint.
// Fields use fixed widths so shrinking values don't leave stale characters.
func (t *Terminal) layoutHUD() {
	session := t.client.Game().Session()
	if session == nil {
		return
	}
	th := t.theme
	st := session.State()
	width := t.canvas.TerminalWidth()
	height := t.canvas.TerminalHeight()

	t.text(2, 1, th.HUD.Render(fmt.Sprintf("Score: %-6d", st.Score)))
	t.text(2, 2, th.HUD.Render(fmt.Sprintf("Time: %-5s", fmt.Sprintf("%ds", int(st.Elapsed.Seconds())))))
	level := fmt.Sprintf("Level: %-3d", st.Level)
	t.text(max(width-lipgloss.Width(level), 1), 1, th.HUD.Render(level))

	for i, m := range t.client.Messages() {
		t.centered(height/2-4+i, th.Message.Render(m.Text))
	}
	if hint := session.Hint(); hint != "" {
		t.centered(height-1, th.Hint.Render(hint))
	}
}

func (t *Terminal) layoutNameEntry(centerY int) {
	th := t.theme
	t.centered(centerY-3, th.Title.Render(fmt.Sprintf("Score: %d", t.client.Game().FinalScore())))
	t.centered(centerY-1, th.HUD.Render("New high score! Enter your name:"))
	field := fmt.Sprintf("%-*s", config.MaxUsernameLength+1, t.client.Name()+"_")
	t.centered(centerY+1, th.Selected.Render(" "+field+" "))
	t.centered(centerY+3, th.Faint.Render("Enter confirm . Backspace delete"))
}

func (t *Terminal) layoutPlayAgain(centerY int) {
	th := t.theme
	t.centered(centerY-2, th.Title.Render(fmt.Sprintf("Score: %d", t.client.Game().FinalScore())))
	t.centered(centerY, th.HUD.Render("Play again? (Y/N)"))
}

func (t *Terminal) layoutTopScores(centerY int) {
	th := t.theme
	entries := t.client.TopScores()
	top := centerY - 2 - len(entries)/2
	t.centered(top, th.Title.Render("Top Scores"))
	if len(entries) == 0 {
		t.centered(top+2, th.HUD.Render("No scores yet!"))
		return
	}
	for i, e := range entries {
		t.centered(top+2+i, th.HUD.Render(fmt.Sprintf("%d. %-*s %6d", i+1, config.MaxUsernameLength, e.Name, e.Score)))
	}
}

func (t *Terminal) layoutOptions(centerY int) {
	th := t.theme
	engine := t.client.Audio()
	t.centered(centerY-3, th.Title.Render("Options"))
	t.centered(centerY-1, th.HUD.Render(fmt.Sprintf("Volume: < %3d%% >", int(math.Round(engine.Volume()*100)))))
	sound := "on "
	if engine.Muted() {
		sound = "off"
	}
	t.centered(centerY, th.HUD.Render("Sound: "+sound))
	if !engine.Enabled() {
		t.centered(centerY+2, th.Faint.Render("(no audio device)"))
	}
	t.centered(centerY+4, th.Faint.Render("Left/Right volume . M mute . Enter back"))
}
