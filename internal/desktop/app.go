// Package desktop is the windowed frontend. It drives the same Client as
// the terminal and draws the field at its native size with ebiten.
package desktop

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/loop"
)

// Options configures the window.
type Options struct {
	Client  loop.ClientOptions
	Scale   float64 // Window size relative to the field, 0 means 0.5
	ShowFPS bool
}

// App implements ebiten.Game around a loop.Client.
type App struct {
	client  *loop.Client
	logger  *log.Logger
	face    text.Face
	white   *ebiten.Image
	showFPS bool

	cursorX, cursorY float64
	keys             []ebiten.Key
	vertices         []ebiten.Vertex
	indices          []uint16
}

var _ ebiten.Game = (*App)(nil)

// New creates the app. It does not open a window.
func New(opts Options) *App {
	logger := opts.Client.Logger
	if logger == nil {
		logger = log.Default()
		opts.Client.Logger = logger
	}

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	return &App{
		client:  loop.NewClient(opts.Client),
		logger:  logger,
		face:    text.NewGoXFace(bitmapfont.Face),
		white:   white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		showFPS: opts.ShowFPS,
	}
}

// Client returns the screen flow the app renders.
func (a *App) Client() *loop.Client {
	return a.client
}

// Update reads input and advances the client by one tick.
func (a *App) Update() (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("panic in update", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	ctl := a.readControls()
	if ebiten.IsWindowBeingClosed() {
		ctl.Interrupt = true
	}
	choice := a.handlePointer(&ctl)
	if choice < 0 {
		choice = digitChoice()
	}

	a.client.Update(ctl, time.Second/time.Duration(ebiten.TPS()))
	// Menu picks land after the tick so the click itself doesn't also
	// dismiss the screen it opens.
	a.client.Choose(choice)
	if !a.client.Running() {
		return ebiten.Termination
	}
	return nil
}

// Layout keeps the logical screen at the field size; ebiten scales it to
// the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	f := a.client.Field()
	return int(f.Width), int(f.Height)
}

// Run opens the window and blocks until the player quits or closes it.
func Run(opts Options) error {
	scale := opts.Scale
	if scale <= 0 {
		scale = 0.5
	}

	app := New(opts)
	defer app.client.Stop()

	ebiten.SetWindowTitle("Space Dodge")
	ebiten.SetWindowSize(int(config.FieldWidth*scale), int(config.FieldHeight*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(config.ClientTargetFPS)

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
