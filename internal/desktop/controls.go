package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/loop"
	"github.com/tomz197/spacedodge/internal/physics"
)

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// readControls samples the keyboard. Keys are reported as held; the client
// finds the presses itself.
func (a *App) readControls() loop.Controls {
	ctl := loop.Controls{
		Left:      anyPressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		Right:     anyPressed(ebiten.KeyD, ebiten.KeyArrowRight),
		Up:        anyPressed(ebiten.KeyW, ebiten.KeyArrowUp),
		Down:      anyPressed(ebiten.KeyS, ebiten.KeyArrowDown),
		Fire:      anyPressed(ebiten.KeySpace),
		Confirm:   anyPressed(ebiten.KeyEnter, ebiten.KeyNumpadEnter),
		Back:      anyPressed(ebiten.KeyEscape),
		Backspace: anyPressed(ebiten.KeyBackspace),
		Quit:      anyPressed(ebiten.KeyQ),
	}
	ctl.Text = string(ebiten.AppendInputChars(nil))

	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	ctl.AnyKey = len(a.keys) > 0
	return ctl
}

var digitKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4}

// digitChoice returns the menu entry whose number was just pressed, or -1.
func digitChoice() int {
	for i, k := range digitKeys {
		if inpututil.IsKeyJustPressed(k) {
			return i
		}
	}
	return -1
}

// button is a clickable area. Menu buttons pick a menu entry; the others
// add to the frame's controls.
type button struct {
	label string
	rect  physics.Rect
	item  int // Menu entry, -1 if none
	press func(ctl *loop.Controls)
}

const (
	buttonWidth  = 360
	buttonHeight = 70
	buttonGap    = 25
	menuTop      = 330
)

// centeredButton returns a button rect centered on the field at y.
func centeredButton(y, width float64) physics.Rect {
	return physics.Rect{X: (config.FieldWidth - width) / 2, Y: y, W: width, H: buttonHeight}
}

func menuButton(i int) physics.Rect {
	return centeredButton(menuTop+float64(i)*(buttonHeight+buttonGap), buttonWidth)
}

func control(label string, rect physics.Rect, press func(ctl *loop.Controls)) button {
	return button{label: label, rect: rect, item: -1, press: press}
}

// buttons lists the clickable areas of a screen.
func buttons(screen loop.Screen) []button {
	cx := float64(config.FieldWidth) / 2
	switch screen {
	case loop.ScreenMenu:
		bs := make([]button, len(loop.MenuItems))
		for i, item := range loop.MenuItems {
			bs[i] = button{label: item.String(), rect: menuButton(i), item: i}
		}
		return bs
	case loop.ScreenOptions:
		return []button{
			control("-", physics.Rect{X: cx - 280, Y: 330, W: 80, H: buttonHeight},
				func(ctl *loop.Controls) { ctl.Left = true }),
			control("+", physics.Rect{X: cx + 200, Y: 330, W: 80, H: buttonHeight},
				func(ctl *loop.Controls) { ctl.Right = true }),
			control("Mute", centeredButton(450, buttonWidth),
				func(ctl *loop.Controls) { ctl.Text += "m" }),
			control("Back", centeredButton(570, buttonWidth),
				func(ctl *loop.Controls) { ctl.Back = true }),
		}
	case loop.ScreenNameEntry:
		return []button{
			control("OK", centeredButton(520, buttonWidth),
				func(ctl *loop.Controls) { ctl.Confirm = true }),
		}
	case loop.ScreenPlayAgain:
		return []button{
			control("Yes", physics.Rect{X: cx - 220, Y: 450, W: 200, H: buttonHeight},
				func(ctl *loop.Controls) { ctl.Text += "y" }),
			control("No", physics.Rect{X: cx + 20, Y: 450, W: 200, H: buttonHeight},
				func(ctl *loop.Controls) { ctl.Text += "n" }),
		}
	}
	return nil
}

// buttonAt returns the index of the button under (x, y), or -1.
func buttonAt(bs []button, x, y float64) int {
	for i, b := range bs {
		if b.rect.Contains(x, y) {
			return i
		}
	}
	return -1
}

// handlePointer tracks the cursor in field coordinates and applies a click
// to ctl. It returns the clicked menu entry, or -1. Any click counts as
// activity.
func (a *App) handlePointer(ctl *loop.Controls) int {
	x, y := ebiten.CursorPosition()
	a.cursorX, a.cursorY = float64(x), float64(y)

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return -1
	}
	ctl.AnyKey = true
	bs := buttons(a.client.Screen())
	i := buttonAt(bs, a.cursorX, a.cursorY)
	if i < 0 {
		return -1
	}
	if bs[i].press != nil {
		bs[i].press(ctl)
	}
	return bs[i].item
}
