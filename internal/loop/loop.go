// Package loop runs the game's screen flow and its terminal frontend.
//
// Client owns the menu, session and game-over screens and is driven by
// any frontend. Terminal feeds it raw terminal input and renders frames
// with half-block characters, either on a local TTY or over SSH.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/input"
)

// Options configures a terminal frontend.
type Options struct {
	Client       ClientOptions
	TermSizeFunc draw.TermSizeFunc
	Renderer     *lipgloss.Renderer // nil uses the default renderer
}

// Terminal renders a Client to a terminal and feeds it keyboard input.
type Terminal struct {
	client       *Client
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	theme        Theme
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	colsPerRow   float64

	prevScreen  Screen
	prevIdle    bool
	prevOverlay string
	overlay     []textLine
}

// NewTerminal creates a terminal frontend reading keys from r and drawing to w.
func NewTerminal(r *bufio.Reader, w io.Writer, opts Options) *Terminal {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	client := NewClient(opts.Client)
	field := client.Field()
	theme := NewTheme(opts.Renderer)

	// Sub-pixels are roughly square, so the canvas keeps the field's shape
	// at two sub-pixel rows per terminal row.
	colsPerRow := 2 * field.Width / field.Height

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(
		termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight, colsPerRow)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, field.Width, field.Height, theme.Palette())
	canvas.SetOffset(offsetCol, offsetRow)

	return &Terminal{
		client:       client,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		theme:        theme,
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		colsPerRow:   colsPerRow,
		prevScreen:   -1,
	}
}

// Client returns the screen flow driven by this terminal.
func (t *Terminal) Client() *Client {
	return t.client
}

// Run starts the frame loop. It blocks until the player exits, the input
// ends or ctx is cancelled. A panic inside a frame is returned as an error
// so one broken session cannot take down a shared server.
func (t *Terminal) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			t.client.logger.Error("frame panic", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("terminal frontend panic: %v", r)
		}
	}()

	draw.HideCursor(t.writer)
	defer draw.ShowCursor(t.writer)
	draw.ClearScreen(t.writer)

	lastTime := time.Now()

	for t.client.Running() {
		if ctx.Err() != nil {
			t.client.Stop()
			break
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		t.step(input.ReadInput(t.inputStream), delta)
		if t.inputStream.Closed() {
			t.client.Stop()
		}

		t.updateScreen()

		if err := t.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			select {
			case <-ctx.Done():
			case <-time.After(config.ClientTargetFrameTime - elapsed):
			}
		}
	}

	draw.ClearScreen(t.writer)
	return nil
}

// Run plays on a terminal until the player exits or ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewTerminal(r, w, opts).Run(ctx)
}

// step feeds one frame of input to the client. A digit on the menu picks
// the entry of that number. Held keys are dropped when the screen changes.
func (t *Terminal) step(in input.Input, delta time.Duration) {
	before := t.client.Screen()
	t.client.Update(controlsFromInput(in), delta)
	if before == ScreenMenu && t.client.Screen() == ScreenMenu && in.Number >= 1 {
		t.client.Choose(in.Number - 1)
	}
	if t.client.Screen() != before {
		input.ResetKeyInput(t.inputStream)
	}
}

func controlsFromInput(in input.Input) Controls {
	return Controls{
		Left:      in.Left,
		Right:     in.Right,
		Up:        in.Up,
		Down:      in.Down,
		Fire:      in.Space,
		Confirm:   in.Enter,
		Back:      in.Escape,
		Backspace: in.Backspace,
		Quit:      in.Quit,
		Interrupt: in.Interrupt,
		Text:      in.Typed,
		AnyKey:    len(in.Pressed) > 0,
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (t *Terminal) updateScreen() {
	termWidth, termHeight, err := t.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(
		termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight, t.colsPerRow)

	if renderWidth != t.canvas.TerminalWidth() || renderHeight != t.canvas.TerminalHeight() ||
		offsetCol != t.canvas.OffsetCol() || offsetRow != t.canvas.OffsetRow() {
		draw.ClearScreen(t.writer)
		t.canvas.ForceRedraw()
		t.prevOverlay = ""
	}

	t.canvas.Resize(renderWidth, renderHeight)
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.chunkWriter.SetOffset(offsetCol, offsetRow)
}
