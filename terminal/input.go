package terminal

import (
	"bytes"
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
)

// inputReader handles raw stdin parsing
type inputReader struct {
	backend Backend
	eventCh chan input.Event
	errCh   chan error
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer for stream assembly, not fixed size zero-alloc to avoid corrupting partial UTF-8 at boundary
	buf []byte

	// Bracketed paste accumulation between ESC[200~ and ESC[201~
	pasting bool
	paste   []byte
}

// escapeTimeout is the duration to wait after ESC to distinguish
// standalone ESC from escape sequence start
const escapeTimeout = 50 * time.Millisecond

// newInputReader creates a new input reader
func newInputReader(backend Backend) *inputReader {
	return &inputReader{
		backend: backend,
		eventCh: make(chan input.Event, 256),
		errCh:   make(chan error, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

// start begins reading input in a goroutine
func (r *inputReader) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

// stop signals the reader to stop
func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	// Wait with timeout - don't block forever if read is stuck
	select {
	case <-r.doneCh:
	case <-time.After(100 * time.Millisecond):
		// Reader stuck on blocking read, proceed anyway
	}
}

// events returns the event channel
func (r *inputReader) events() <-chan input.Event {
	return r.eventCh
}

// errors delivers at most one read failure, after which the reader stops
func (r *inputReader) errors() <-chan error {
	return r.errCh
}

// readLoop is the main input reading goroutine
func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	// Panic recovery for raw input reader
	defer func() {
		if r := recover(); r != nil {
			EmergencyReset(os.Stdout)
			// Use \r\n for clean output
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		// Blocking read from backend
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			r.errCh <- fmt.Errorf("terminal read: %w", err)
			return
		}

		if len(data) == 0 {
			// Timeout (Unix poll) or empty read
			// Emit pending standalone ESC if present
			if !r.pasting && len(r.buf) == 1 && r.buf[0] == 0x1b {
				r.sendEvent(keyEvent(input.KeyEscape, 0, input.ModNone))
				r.buf = r.buf[:0]
			}
			select {
			case <-r.stopCh:
				return
			default:
				continue
			}
		}

		// Append to persistent buffer
		r.buf = append(r.buf, data...)

		// Parse as much as possible, get consumed count
		consumed := r.parseInput(r.buf)

		// Compact buffer
		if consumed > 0 {
			if consumed >= len(r.buf) {
				r.buf = r.buf[:0]
			} else {
				copy(r.buf, r.buf[consumed:])
				r.buf = r.buf[:len(r.buf)-consumed]
			}
		}
	}
}

// parseInput parses raw bytes into events and returns bytes consumed (stop on incomplete sequence)
func (r *inputReader) parseInput(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		select {
		case <-r.stopCh:
			return i
		default:
		}

		if r.pasting {
			consumed, done := r.parsePaste(data[i:])
			i += consumed
			if !done {
				return i
			}
			continue
		}

		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			r.sendEvent(keyEvent(input.KeyRune, rune(b), input.ModNone))
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			// Need at least 2 bytes to determine sequence type
			if i+1 >= n {
				return i // Wait for more data
			}

			consumed, ev, ok := r.parseEscape(data[i:])
			if consumed == 0 {
				// Incomplete sequence, wait for more data
				return i
			}

			// Unknown sequences are swallowed
			if ok {
				r.sendEvent(ev)
			}
			i += consumed
			continue
		}

		// Control characters
		if b < 0x20 {
			r.sendEvent(r.parseControl(b))
			i++
			continue
		}

		// DEL
		if b == 0x7f {
			r.sendEvent(keyEvent(input.KeyBackspace, 0, input.ModNone))
			i++
			continue
		}

		// UTF-8 multibyte, possibly split across reads
		if !utf8.FullRune(data[i:]) {
			return i
		}
		rn, size := utf8.DecodeRune(data[i:])
		if rn != utf8.RuneError || size > 1 {
			r.sendEvent(keyEvent(input.KeyRune, rn, input.ModNone))
		}
		i += size
	}
	return i
}

// parsePaste accumulates paste content, returns bytes consumed and whether the end marker was seen
func (r *inputReader) parsePaste(data []byte) (int, bool) {
	idx := bytes.Index(data, pasteEnd)
	if idx < 0 {
		// Hold back a tail that may be the start of a split end marker
		keep := len(pasteEnd) - 1
		if len(data) <= keep {
			return 0, false
		}
		r.paste = append(r.paste, data[:len(data)-keep]...)
		return len(data) - keep, false
	}

	r.paste = append(r.paste, data[:idx]...)
	r.sendEvent(input.Event{Kind: input.EventPaste, Text: string(r.paste)})
	r.paste = r.paste[:0]
	r.pasting = false
	return idx + len(pasteEnd), true
}

// parseEscape attempts to parse an escape sequence, returns 0 on incomplete
// ok is false for recognized-but-ignored sequences that must still be consumed
func (r *inputReader) parseEscape(data []byte) (int, input.Event, bool) {
	if len(data) < 2 {
		return 0, input.Event{}, false
	}

	// ESC ESC -> Alt+Escape
	if data[1] == 0x1b {
		return 2, keyEvent(input.KeyEscape, 0, input.ModAlt), true
	}

	if data[1] == '[' {
		return r.parseCSI(data)
	}
	if data[1] == 'O' {
		return r.parseSS3(data)
	}

	// Alt+Control character (ESC + 0x00-0x1F)
	if data[1] < 0x20 {
		ev := r.parseControl(data[1])
		ev.Modifiers |= input.ModAlt
		return 2, ev, ev.Key != input.KeyNone
	}

	// Alt+printable
	if data[1] >= 0x20 && data[1] < 0x7f {
		return 2, keyEvent(input.KeyRune, rune(data[1]), input.ModAlt), true
	}

	// ESC followed by a non-ASCII byte: report standalone escape, leave the rest
	return 1, keyEvent(input.KeyEscape, 0, input.ModNone), true
}

// parseCSI parses CSI sequence without allocation
func (r *inputReader) parseCSI(data []byte) (int, input.Event, bool) {
	if len(data) < 3 {
		return 0, input.Event{}, false
	}

	// SGR mouse: ESC [ < Btn ; X ; Y M/m
	if data[2] == '<' {
		return r.parseSGRMouse(data)
	}

	end := 2
	maxScan := len(data)
	if maxScan > 16 {
		maxScan = 16
	}

	found := false
	for end < maxScan {
		b := data[end]
		end++
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			found = true
			break
		}
		if b < 0x20 || b > 0x7e {
			// Malformed, consume the introducer only
			return 2, input.Event{}, false
		}
	}
	if !found {
		if maxScan == 16 {
			// Overlong sequence, drop the introducer
			return 2, input.Event{}, false
		}
		return 0, input.Event{}, false // Incomplete
	}

	seq := data[2:end]
	switch string(seq) {
	case "200~":
		r.pasting = true
		return end, input.Event{}, false
	case "201~":
		// Stray end marker
		return end, input.Event{}, false
	case "I":
		return end, input.Event{Kind: input.EventFocusGained}, true
	case "O":
		return end, input.Event{Kind: input.EventFocusLost}, true
	}

	if key, mod, ok := lookupCSI(seq); ok {
		return end, keyEvent(key, 0, mod), true
	}

	// Unknown but valid CSI syntax
	return end, input.Event{}, false
}

// parseSS3 parses SS3 sequence without allocation, returns length even for unknown sequences
func (r *inputReader) parseSS3(data []byte) (int, input.Event, bool) {
	if len(data) < 3 {
		return 0, input.Event{}, false
	}
	if key, mod, ok := lookupSS3(data[2:3]); ok {
		return 3, keyEvent(key, 0, mod), true
	}
	return 3, input.Event{}, false
}

// controlKeys are the control bytes with a dedicated key; other bytes up to 0x1a are Ctrl+letter
var controlKeys = map[byte]input.Key{
	0x00: input.KeyCtrlSpace,
	0x08: input.KeyBackspace,
	0x09: input.KeyTab,
	0x0a: input.KeyEnter,
	0x0d: input.KeyEnter,
	0x1b: input.KeyEscape,
	0x1c: input.KeyCtrlBackslash,
	0x1d: input.KeyCtrlBracketRight,
	0x1e: input.KeyCtrlCaret,
	0x1f: input.KeyCtrlUnderscore,
}

// parseControl maps a C0 control byte to a key press
func (r *inputReader) parseControl(b byte) input.Event {
	if k, ok := controlKeys[b]; ok {
		return keyEvent(k, 0, input.ModNone)
	}
	if b >= 0x01 && b <= 0x1a {
		return keyEvent(input.KeyCtrlA+input.Key(b-0x01), 0, input.ModNone)
	}
	return keyEvent(input.KeyNone, 0, input.ModNone)
}

// parseSGRMouse parses mouse SGR sequences
func (r *inputReader) parseSGRMouse(data []byte) (int, input.Event, bool) {
	// Format: ESC [ < Btn ; X ; Y M/m
	// Minimum: ESC [ < 0 ; 1 ; 1 M = 9 bytes
	if len(data) < 9 {
		return 0, input.Event{}, false
	}

	// Find terminator M or m
	end := 3
	for end < len(data) && end < 32 {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= len(data) {
		if end >= 32 {
			return 3, input.Event{}, false
		}
		return 0, input.Event{}, false
	}
	if data[end] != 'M' && data[end] != 'm' {
		return 3, input.Event{}, false
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return end + 1, input.Event{}, false
	}

	ev := input.Event{Position: geom.Pos(uint16(max(x-1, 0)), uint16(max(y-1, 0)))} // Convert to 0-indexed

	// Bits 0-1: button (0=left, 1=middle, 2=right, 3=none)
	// Bits 2-4: shift, alt, ctrl
	// Bit 5 (32): motion
	// Bit 6 (64): wheel
	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isWheel := btn&64 != 0

	if btn&4 != 0 {
		ev.Modifiers |= input.ModShift
	}
	if btn&8 != 0 {
		ev.Modifiers |= input.ModAlt
	}
	if btn&16 != 0 {
		ev.Modifiers |= input.ModCtrl
	}

	if isWheel {
		// Wheel: 0=up, 1=down, 2=left, 3=right; only press is meaningful
		if data[end] == 'm' {
			return end + 1, input.Event{}, false
		}
		ev.Kind = input.EventMouseWheel
		ev.Vertical = buttonID < 2
		if buttonID == 0 || buttonID == 2 {
			ev.Delta = -1
		} else {
			ev.Delta = 1
		}
		return end + 1, ev, true
	}

	switch buttonID {
	case 0:
		ev.Button = input.MouseLeft
	case 1:
		ev.Button = input.MouseMiddle
	case 2:
		ev.Button = input.MouseRight
	default:
		ev.Button = input.MouseNone
	}

	switch {
	case data[end] == 'm':
		ev.Kind = input.EventMouseUp
	case isMotion:
		ev.Kind = input.EventMouseMove
	default:
		ev.Kind = input.EventMouseDown
	}

	return end + 1, ev, true
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y" format
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0 // 0=btn, 1=x, 2=y
	val := 0

	for _, b := range data {
		if b == ';' {
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			if state > 2 {
				return 0, 0, 0, false
			}
		} else if b >= '0' && b <= '9' {
			val = val*10 + int(b-'0')
			if val > 9999 { // Sanity limit
				return 0, 0, 0, false
			}
		} else {
			return 0, 0, 0, false
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}

// keyEvent builds a key press event
func keyEvent(key input.Key, ch rune, mod input.Modifier) input.Event {
	return input.Event{Kind: input.EventKeyPress, Key: key, Rune: ch, Modifiers: mod}
}

// sendEvent sends an event to the channel, non-blocking
func (r *inputReader) sendEvent(ev input.Event) {
	select {
	case r.eventCh <- ev:
	default:
		// Channel full, drop event
	}
}
