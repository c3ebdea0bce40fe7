package tcellterm

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
	"github.com/lixenwraith/termvis/style"
)

var ErrClosed = errors.New("tcellterm: screen closed")

// Options selects the terminal features enabled on Enter
type Options struct {
	Mouse        bool
	Paste        bool
	FocusReports bool
}

// Screen wraps a tcell.Screen as a cell sink and event source
type Screen struct {
	screen tcell.Screen
	opts   Options

	events chan tcell.Event
	quit   chan struct{}

	queue   []input.Event
	mouse   mouseTracker
	paste   strings.Builder
	pasting bool
	inited  bool

	entered bool
	closed  bool

	// tcell has no invisible attribute; hidden cells are shown blank and kept here
	hidden map[geom.Position]buffer.Cell
}

// New creates a screen on the process terminal
func New(opts Options) (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcell screen: %w", err)
	}
	return Wrap(scr, opts), nil
}

// Wrap adapts an existing, uninitialized tcell screen
func Wrap(scr tcell.Screen, opts Options) *Screen {
	return &Screen{screen: scr, opts: opts}
}

// Enter initializes the terminal and starts delivering events
func (s *Screen) Enter() error {
	if s.closed {
		return ErrClosed
	}
	if s.entered {
		return nil
	}
	if !s.inited {
		if err := s.screen.Init(); err != nil {
			return fmt.Errorf("tcell init: %w", err)
		}
		s.inited = true
	}
	s.entered = true

	if s.opts.Mouse {
		s.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	}
	if s.opts.Paste {
		s.screen.EnablePaste()
	}
	if s.opts.FocusReports {
		s.screen.EnableFocus()
	}
	s.screen.HideCursor()
	s.screen.Clear()

	s.events = make(chan tcell.Event, 64)
	s.quit = make(chan struct{})
	go s.screen.ChannelEvents(s.events, s.quit)
	return nil
}

// Exit stops event delivery and restores the terminal
func (s *Screen) Exit() error {
	if !s.entered {
		return nil
	}
	s.entered = false
	close(s.quit)

	if s.opts.FocusReports {
		s.screen.DisableFocus()
	}
	if s.opts.Paste {
		s.screen.DisablePaste()
	}
	if s.opts.Mouse {
		s.screen.DisableMouse()
	}
	s.screen.ShowCursor(-1, -1)
	s.screen.Fini()
	s.inited = false
	return nil
}

// Close exits and marks the screen unusable
func (s *Screen) Close() error {
	if s.closed {
		return nil
	}
	err := s.Exit()
	s.closed = true
	return err
}

func (s *Screen) Size() geom.Size {
	w, h := s.screen.Size()
	return geom.Sz(uint16(max(w, 0)), uint16(max(h, 0)))
}

// Flush makes pending cell changes visible
func (s *Screen) Flush() error {
	if s.closed {
		return ErrClosed
	}
	s.screen.Show()
	return nil
}

// Sync repaints every cell on the next Flush
func (s *Screen) Sync() {
	s.screen.Sync()
}

func (s *Screen) check(p geom.Position) error {
	if sz := s.Size(); p.X >= sz.Width || p.Y >= sz.Height {
		return fmt.Errorf("%w: %v not in %v", buffer.ErrOutOfBounds, p, sz)
	}
	return nil
}

func (s *Screen) cell(p geom.Position) (buffer.Cell, error) {
	if err := s.check(p); err != nil {
		return buffer.Cell{}, err
	}
	if h, ok := s.hidden[p]; ok {
		return h, nil
	}
	r, _, st, _ := s.screen.GetContent(int(p.X), int(p.Y))
	return fromTcell(r, st), nil
}

func (s *Screen) setCell(p geom.Position, c buffer.Cell) {
	if !c.Attrs.Has(style.AttrHidden) {
		delete(s.hidden, p)
		s.screen.SetContent(int(p.X), int(p.Y), c.Rune, nil, c.TcellStyle())
		return
	}

	if s.hidden == nil {
		s.hidden = make(map[geom.Position]buffer.Cell)
	}
	s.hidden[p] = c
	shown := c
	shown.Attrs &^= style.AttrUnderline | style.AttrStrike
	st := shown.TcellStyle()
	s.screen.SetContent(int(p.X), int(p.Y), ' ', nil, st)
	if w, _ := s.screen.Size(); runewidth.RuneWidth(c.Rune) == 2 && int(p.X)+1 < w {
		s.screen.SetContent(int(p.X)+1, int(p.Y), ' ', nil, st)
	}
}

// Cell returns the whole cell at p
func (s *Screen) Cell(p geom.Position) (buffer.Cell, error) {
	return s.cell(p)
}

// SetCell replaces the whole cell at p
func (s *Screen) SetCell(p geom.Position, c buffer.Cell) error {
	if err := s.check(p); err != nil {
		return err
	}
	s.setCell(p, c)
	return nil
}

// update applies fn to the cell at p
func (s *Screen) update(p geom.Position, fn func(*buffer.Cell)) error {
	c, err := s.cell(p)
	if err != nil {
		return err
	}
	fn(&c)
	s.setCell(p, c)
	return nil
}

func (s *Screen) Symbol(p geom.Position) (rune, error) {
	c, err := s.cell(p)
	return c.Rune, err
}

func (s *Screen) Forecolor(p geom.Position) (tcell.Color, error) {
	c, err := s.cell(p)
	return c.Fg, err
}

func (s *Screen) Backcolor(p geom.Position) (tcell.Color, error) {
	c, err := s.cell(p)
	return c.Bg, err
}

func (s *Screen) Attribute(p geom.Position) (style.Attr, error) {
	c, err := s.cell(p)
	return c.Attrs, err
}

func (s *Screen) SetSymbol(p geom.Position, r rune) error {
	return s.update(p, func(c *buffer.Cell) { c.Rune = r })
}

func (s *Screen) SetForecolor(p geom.Position, col tcell.Color) error {
	return s.update(p, func(c *buffer.Cell) { c.Fg = col })
}

func (s *Screen) SetBackcolor(p geom.Position, col tcell.Color) error {
	return s.update(p, func(c *buffer.Cell) { c.Bg = col })
}

func (s *Screen) SetAttribute(p geom.Position, a style.Attr) error {
	return s.update(p, func(c *buffer.Cell) { c.Attrs = a })
}

// WriteSymbols writes a run; tcell places the trailing half of wide runes itself
func (s *Screen) WriteSymbols(p geom.Position, text string, st style.Style) error {
	width := buffer.TextWidth(text)
	if sz := s.Size(); p.Y >= sz.Height || int(p.X)+width > int(sz.Width) {
		return fmt.Errorf("%w: run of width %d at %v in %v", buffer.ErrOutOfBounds, width, p, sz)
	}

	x := int(p.X)
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		at := geom.Pos(uint16(x), p.Y)
		c, _ := s.cell(at)
		c = c.Styled(st)
		c.Rune = r
		s.setCell(at, c)
		x += w
	}
	return nil
}

func (s *Screen) WriteBuffer(p geom.Position, src buffer.ReadBuffer) error {
	ext := src.Size()
	sz := s.Size()
	if uint32(p.X)+uint32(ext.Width) > uint32(sz.Width) || uint32(p.Y)+uint32(ext.Height) > uint32(sz.Height) {
		return fmt.Errorf("%w: %v at %v in %v", buffer.ErrOutOfBounds, ext, p, sz)
	}

	for y := uint16(0); y < ext.Height; y++ {
		for x := uint16(0); x < ext.Width; x++ {
			c, err := buffer.ReadCell(src, geom.Pos(x, y))
			if err != nil {
				return err
			}
			// Trailing half of a wide rune was placed with its head
			if c.Rune == 0 {
				continue
			}
			s.setCell(geom.Pos(p.X+x, p.Y+y), c)
		}
	}
	return nil
}

func (s *Screen) Clear() error {
	s.screen.Clear()
	s.hidden = nil
	return nil
}

func (s *Screen) ClearRegion(r geom.Rect) error {
	sz := s.Size()
	if uint32(r.Right()) > uint32(sz.Width) || uint32(r.Bottom()) > uint32(sz.Height) {
		return fmt.Errorf("%w: clear %v in %v", buffer.ErrOutOfBounds, r, sz)
	}
	for y := int(r.Y); y < int(r.Bottom()); y++ {
		for x := int(r.X); x < int(r.Right()); x++ {
			s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
	for p := range s.hidden {
		if r.Contains(p) {
			delete(s.hidden, p)
		}
	}
	return nil
}

// Poll waits up to timeout for an event; a zero timeout only checks
func (s *Screen) Poll(timeout time.Duration) (bool, error) {
	if len(s.queue) > 0 {
		return true, nil
	}
	if !s.entered {
		return false, ErrClosed
	}

	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	for len(s.queue) == 0 {
		if timer == nil {
			select {
			case ev, ok := <-s.events:
				if !ok {
					return false, ErrClosed
				}
				s.translate(ev)
			default:
				return false, nil
			}
			continue
		}

		select {
		case ev, ok := <-s.events:
			if !ok {
				return false, ErrClosed
			}
			s.translate(ev)
		case <-timer:
			return false, nil
		}
	}
	return true, nil
}

// Read returns the next event, blocking until one is available
func (s *Screen) Read() (input.Event, error) {
	for len(s.queue) == 0 {
		if !s.entered {
			return input.Event{}, ErrClosed
		}
		ev, ok := <-s.events
		if !ok {
			return input.Event{}, ErrClosed
		}
		s.translate(ev)
	}
	ev := s.queue[0]
	s.queue = s.queue[1:]
	return ev, nil
}

// translate converts one tcell event into zero or more engine events
func (s *Screen) translate(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventPaste:
		if ev.Start() {
			s.paste.Reset()
			s.pasting = true
			return
		}
		if s.pasting {
			s.queue = append(s.queue, input.Event{Kind: input.EventPaste, Text: s.paste.String()})
			s.paste.Reset()
			s.pasting = false
		}

	case *tcell.EventKey:
		// Keys between paste markers are content
		if s.pasting {
			if r, ok := pasteRune(ev); ok {
				s.paste.WriteRune(r)
			}
			return
		}
		if out, ok := convertKey(ev); ok {
			s.queue = append(s.queue, out)
		}

	case *tcell.EventMouse:
		s.queue = append(s.queue, s.mouse.convert(ev)...)

	case *tcell.EventResize:
		w, h := ev.Size()
		for p := range s.hidden {
			if int(p.X) >= w || int(p.Y) >= h {
				delete(s.hidden, p)
			}
		}
		s.queue = append(s.queue, input.Event{
			Kind: input.EventResize,
			Size: geom.Sz(uint16(max(w, 0)), uint16(max(h, 0))),
		})

	case *tcell.EventFocus:
		kind := input.EventFocusLost
		if ev.Focused {
			kind = input.EventFocusGained
		}
		s.queue = append(s.queue, input.Event{Kind: kind})
	}
}

// pasteRune recovers the character a key event carried inside a paste
func pasteRune(ev *tcell.EventKey) (rune, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return ev.Rune(), true
	case tcell.KeyEnter, tcell.KeyLF:
		return '\n', true
	case tcell.KeyTab:
		return '\t', true
	}
	return 0, false
}
