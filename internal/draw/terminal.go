package draw

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"

	"golang.org/x/term"
)

// maxChunkSize caps each write so a frame leaves in packets that fit a
// typical 1500 byte MTU.
const maxChunkSize = 1400

// Escape sequences for whole-terminal control.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// ChunkWriter collects one frame of terminal output and sends it in
// MTU-sized pieces on Flush. Cursor positions are canvas coordinates and
// get the writer's offset added.
type ChunkWriter struct {
	frame  []byte
	out    *bufio.Writer
	offCol int
	offRow int
}

var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter creates a ChunkWriter for w with the canvas at
// (offsetCol, offsetRow) inside the terminal.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		frame:  make([]byte, 0, 8192),
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the canvas origin, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

// MoveCursor queues a cursor move to the 1-based canvas cell (col, row).
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.frame = append(cw.frame, "\033["...)
	cw.frame = strconv.AppendInt(cw.frame, int64(row+cw.offRow), 10)
	cw.frame = append(cw.frame, ';')
	cw.frame = strconv.AppendInt(cw.frame, int64(col+cw.offCol), 10)
	cw.frame = append(cw.frame, 'H')
}

// Write queues p. It never fails.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.frame = append(cw.frame, p...)
	return len(p), nil
}

// WriteString queues s.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame = append(cw.frame, s...)
}

// WriteAt queues s at the 1-based canvas cell (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.WriteString(s)
}

// Flush sends the queued frame and empties the queue.
func (cw *ChunkWriter) Flush() error {
	defer func() { cw.frame = cw.frame[:0] }()
	for rest := cw.frame; len(rest) > 0; {
		n := min(len(rest), maxChunkSize)
		if _, err := cw.out.Write(rest[:n]); err != nil {
			return err
		}
		rest = rest[n:]
	}
	return cw.out.Flush()
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc asks the terminal behind stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen blanks the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, seqClear)
}

// HideCursor hides the cursor while frames are drawn.
func HideCursor(w io.Writer) {
	io.WriteString(w, seqHideCursor)
}

// ShowCursor restores the cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, seqShowCursor)
}

// ClampTermSize fits the render area inside the terminal, capped at maxWidth x maxHeight.
// A positive colsPerRow keeps the area at that shape. Offsets center the area.
func ClampTermSize(termWidth, termHeight, maxWidth, maxHeight int, colsPerRow float64) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 1), maxWidth)
	renderHeight = min(max(termHeight, 1), maxHeight)
	if colsPerRow > 0 {
		if h := int(math.Round(float64(renderWidth) / colsPerRow)); h < renderHeight {
			renderHeight = max(h, 1)
		} else if w := int(math.Round(float64(renderHeight) * colsPerRow)); w < renderWidth {
			renderWidth = max(w, 1)
		}
	}
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}
