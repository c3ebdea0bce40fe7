// @lixen: #focus{sys[term,lifecycle]}
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
)

var (
	ErrNotTerminal = errors.New("stdin is not a terminal")
	ErrClosed      = errors.New("terminal closed")
)

// MouseMode controls which mouse events are reported (bitmask)
type MouseMode uint8

const (
	MouseModeNone   MouseMode = 0
	MouseModeClick  MouseMode = 1 << 0 // Press/release and wheel events
	MouseModeDrag   MouseMode = 1 << 1 // Motion while a button is held
	MouseModeMotion MouseMode = 1 << 2 // All motion events
)

// Options selects the terminal modes enabled on Enter
type Options struct {
	ColorMode    ColorMode
	Mouse        MouseMode
	Paste        bool // Bracketed paste
	FocusReports bool // Window focus in/out events
}

// Screen is a native ANSI terminal acting as both output sink and input source.
// Drawing goes to a back buffer; Flush diffs it onto the terminal.
type Screen struct {
	*buffer.Memory

	backend Backend
	opts    Options
	output  *outputBuffer
	reader  *inputReader

	resizeCh chan geom.Size

	pending    input.Event
	hasPending bool

	mu           sync.Mutex
	entered      bool
	closed       bool
	cursorHidden bool
	initialized  bool
}

// New creates a screen over the process tty
func New(opts Options) *Screen {
	return NewWithBackend(newBackend(), opts)
}

// NewWithBackend creates a screen over an arbitrary backend
func NewWithBackend(b Backend, opts Options) *Screen {
	return &Screen{
		Memory:   buffer.NewMemory(geom.Size{}),
		backend:  b,
		opts:     opts,
		output:   newOutputBuffer(backendWriter{b}, opts.ColorMode),
		resizeCh: make(chan geom.Size, 1),
	}
}

// Enter switches the terminal to raw mode on the alternate screen and starts input
func (s *Screen) Enter() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.entered {
		return nil
	}
	if err := s.backend.Init(); err != nil {
		return err
	}
	s.entered = true

	w := s.output.writer
	w.Write(csiAltScreenEnter)
	w.Write(csiCursorHide)
	w.Write(csiAutoWrapOff)
	s.cursorHidden = true

	if s.opts.Mouse != MouseModeNone {
		w.Write(csiMouseClickOn)
		if s.opts.Mouse&MouseModeDrag != 0 {
			w.Write(csiMouseDragOn)
		}
		if s.opts.Mouse&MouseModeMotion != 0 {
			w.Write(csiMouseMotionOn)
		}
		w.Write(csiMouseSGROn)
	}
	if s.opts.Paste {
		w.Write(csiPasteOn)
	}
	if s.opts.FocusReports {
		w.Write(csiFocusOn)
	}

	s.syncSize()
	if err := s.output.clear(); err != nil {
		return fmt.Errorf("terminal enter: %w", err)
	}

	s.backend.SetResizeHandler(func(width, height int) {
		sz := geom.Sz(uint16(max(width, 0)), uint16(max(height, 0)))
		// Latest size wins
		select {
		case <-s.resizeCh:
		default:
		}
		s.resizeCh <- sz
	})

	if s.reader == nil {
		s.reader = newInputReader(s.backend)
	}
	s.reader.start()
	return nil
}

// Exit restores the modes changed by Enter and leaves raw mode
func (s *Screen) Exit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitLocked()
}

func (s *Screen) exitLocked() error {
	if !s.entered {
		return nil
	}
	s.entered = false

	if s.reader != nil {
		s.reader.stop()
		s.reader = nil
	}

	w := s.output.writer
	if s.opts.FocusReports {
		w.Write(csiFocusOff)
	}
	if s.opts.Paste {
		w.Write(csiPasteOff)
	}
	if s.opts.Mouse != MouseModeNone {
		w.Write(csiMouseSGROff)
		w.Write(csiMouseMotionOff)
		w.Write(csiMouseDragOff)
		w.Write(csiMouseClickOff)
	}
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiCursorShow)
	s.cursorHidden = false
	w.Write(csiAltScreenExit)
	err := w.Flush()

	s.backend.Fini()
	return err
}

// Close exits the terminal modes and restores cursor visibility if it was hidden
func (s *Screen) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	err := s.exitLocked()
	if s.cursorHidden {
		w := s.output.writer
		w.Write(csiCursorShow)
		s.cursorHidden = false
		if ferr := w.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

// SetCursorVisible shows or hides the hardware cursor
func (s *Screen) SetCursorVisible(visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if visible {
		s.output.writer.Write(csiCursorShow)
	} else {
		s.output.writer.Write(csiCursorHide)
	}
	s.cursorHidden = !visible
	s.output.invalidateCursor()
	return s.output.writer.Flush()
}

// Size reports the current terminal extent, reallocating the back buffer when it changed
func (s *Screen) Size() geom.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncSize()
}

func (s *Screen) syncSize() geom.Size {
	w, h := s.backend.Size()
	sz := geom.Sz(uint16(max(w, 0)), uint16(max(h, 0)))
	if sz != s.Memory.Size() || !s.initialized {
		s.Memory.Resize(sz)
		s.output.resize(int(sz.Width), int(sz.Height))
		s.initialized = true
	}
	return sz
}

// Flush writes the changed cells of the back buffer to the terminal
func (s *Screen) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	sz := s.Memory.Size()
	return s.output.flush(s.Memory.Cells(), int(sz.Width), int(sz.Height))
}

// Sync forces the next Flush to rewrite every cell
func (s *Screen) Sync() {
	s.mu.Lock()
	s.output.forceFullRedraw()
	s.mu.Unlock()
}

// Poll waits up to timeout for an event; a zero timeout only checks
func (s *Screen) Poll(timeout time.Duration) (bool, error) {
	if s.hasPending {
		return true, nil
	}
	events, errs := s.channels()
	if events == nil {
		return false, ErrClosed
	}

	if timeout <= 0 {
		select {
		case ev := <-events:
			s.pending, s.hasPending = ev, true
		case sz := <-s.resizeCh:
			s.pending, s.hasPending = resizeEvent(sz), true
		case err := <-errs:
			return false, err
		default:
		}
		return s.hasPending, nil
	}

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case ev := <-events:
		s.pending, s.hasPending = ev, true
	case sz := <-s.resizeCh:
		s.pending, s.hasPending = resizeEvent(sz), true
	case err := <-errs:
		return false, err
	case <-t.C:
	}
	return s.hasPending, nil
}

// Read returns the next event, blocking until one is available
func (s *Screen) Read() (input.Event, error) {
	if s.hasPending {
		s.hasPending = false
		return s.pending, nil
	}
	events, errs := s.channels()
	if events == nil {
		return input.Event{}, ErrClosed
	}

	select {
	case ev := <-events:
		return ev, nil
	case sz := <-s.resizeCh:
		return resizeEvent(sz), nil
	case err := <-errs:
		return input.Event{}, err
	}
}

func resizeEvent(sz geom.Size) input.Event {
	return input.Event{Kind: input.EventResize, Size: sz}
}

func (s *Screen) channels() (<-chan input.Event, <-chan error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reader == nil || !s.entered {
		return nil, nil
	}
	return s.reader.events(), s.reader.errors()
}

// EmergencyReset restores terminal state without a Screen, for crash handlers
func EmergencyReset(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	w.Write(csiMouseSGROff)
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiPasteOff)
	w.Write(csiFocusOff)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	resetTerminalMode()
}
