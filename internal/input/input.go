// Package input decodes raw terminal bytes into per-frame key state.
package input

import (
	"bufio"
	"time"
	"unicode/utf8"
)

// keyHoldDuration bridges the gap between terminal key repeats: a key
// counts as held this long after its last byte arrived.
// Terminals only report presses, so holding a key relies on auto-repeat.
const keyHoldDuration = 30 * time.Millisecond

// Input is what the keyboard said during one frame.
type Input struct {
	Quit      bool // q or Q
	Interrupt bool // Ctrl-C, honoured on every screen
	Left      bool
	Right     bool
	Up        bool
	Down      bool
	Space     bool
	Enter     bool
	Backspace bool
	Escape    bool
	Number    int    // Last digit pressed, -1 if none
	Typed     string // Printable text typed this frame, escape sequences removed
	Pressed   []byte // Raw bytes that arrived this frame
}

// keyState remembers when each key last arrived.
type keyState struct {
	quit      time.Time
	left      time.Time
	right     time.Time
	up        time.Time
	down      time.Time
	space     time.Time
	enter     time.Time
	backspace time.Time
	escape    time.Time
	number    time.Time
	numberVal int
}

// Stream carries raw bytes from the reader goroutine and keeps key state
// between frames.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool

	// pending holds an escape sequence or UTF-8 rune cut off at the end of
	// the last drain, since pendingSince.
	pending      []byte
	pendingSince time.Time
}

// StartStream reads r on its own goroutine until EOF or an error.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:    make(chan byte, 128),
		state: keyState{numberVal: -1},
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended (EOF or error).
func (s *Stream) Closed() bool {
	return s.closed
}

// ResetKeyInput forgets held keys so a press on one screen does not leak
// into the next.
func ResetKeyInput(s *Stream) {
	s.state = keyState{numberVal: -1}
}

// ReadInput consumes whatever bytes are waiting without blocking.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	var fresh []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			fresh = append(fresh, b)
		default:
			break drain
		}
	}

	// A cut-off prefix is completed by the next bytes. If none come within
	// keyHoldDuration it was typed on its own, e.g. a bare Escape.
	flush := s.closed || (len(fresh) == 0 && now.Sub(s.pendingSince) >= keyHoldDuration)
	buf := append(append([]byte(nil), s.pending...), fresh...)

	in, rest := parse(&s.state, buf, now, flush)
	if len(rest) == 0 {
		s.pending = nil
	} else {
		if len(s.pending) == 0 {
			s.pendingSince = now
		}
		s.pending = append([]byte(nil), rest...)
	}
	in.Pressed = fresh
	return in
}

// parse applies buf to the key state and builds the frame input.
// Keys are pressed if seen within keyHoldDuration of now. An escape sequence
// or UTF-8 rune cut off at the end of buf is returned as rest, unless flush
// is set: then a dangling ESC prefix counts as Escape and a broken rune is
// dropped.
func parse(state *keyState, buf []byte, now time.Time, flush bool) (Input, []byte) {
	var typed, rest []byte
	interrupt := false

scan:
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			n, complete := escapeLen(buf[i:])
			switch {
			case !complete && !flush:
				rest = buf[i:]
				break scan
			case !complete:
				state.escape = now
				break scan
			case n > 1:
				// CSI (ESC [) and SS3 (ESC O); only plain arrows are used.
				if n == 3 {
					applyArrow(state, buf[i+2], now)
				}
				i += n - 1
				continue
			}
		}

		if b >= utf8.RuneSelf && !utf8.FullRune(buf[i:]) {
			if !flush {
				rest = buf[i:]
			}
			break
		}

		if b == 0x03 {
			interrupt = true
			continue
		}
		if b >= 0x20 && b != 0x7f {
			typed = append(typed, b)
		}
		applyByteToState(state, b, now)
	}

	in := Input{
		Interrupt: interrupt,
		Quit:      now.Sub(state.quit) < keyHoldDuration,
		Left:      now.Sub(state.left) < keyHoldDuration,
		Right:     now.Sub(state.right) < keyHoldDuration,
		Up:        now.Sub(state.up) < keyHoldDuration,
		Down:      now.Sub(state.down) < keyHoldDuration,
		Space:     now.Sub(state.space) < keyHoldDuration,
		Enter:     now.Sub(state.enter) < keyHoldDuration,
		Backspace: now.Sub(state.backspace) < keyHoldDuration,
		Escape:    now.Sub(state.escape) < keyHoldDuration,
		Number:    -1,
		Typed:     string(typed),
	}
	if now.Sub(state.number) < keyHoldDuration {
		in.Number = state.numberVal
	}
	return in, rest
}

// escapeLen returns the length of the sequence starting with ESC at seq[0]
// and whether it is complete. ESC followed by anything other than [ or O
// is a bare Escape of length 1.
func escapeLen(seq []byte) (int, bool) {
	if len(seq) < 2 {
		return 1, false
	}
	switch seq[1] {
	case 'O':
		if len(seq) < 3 {
			return 2, false
		}
		return 3, true
	case '[':
		j := 2
		for j < len(seq) && seq[j] >= 0x20 && seq[j] < 0x40 {
			j++
		}
		if j == len(seq) {
			return j, false
		}
		return j + 1, true
	}
	return 1, true
}

func applyArrow(state *keyState, code byte, now time.Time) bool {
	switch code {
	case 'A':
		state.up = now
	case 'B':
		state.down = now
	case 'C':
		state.right = now
	case 'D':
		state.left = now
	default:
		return false
	}
	return true
}

// applyByteToState stamps the key that b stands for.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case 's', 'S', 'k', 'K':
		state.down = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\b', '\x7f':
		state.backspace = now
	case '\x1b':
		state.escape = now
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		state.number = now
		state.numberVal = int(b - '0')
	}
}
