// Package app drives a visual tree: it owns the root, polls the input source on a
// fixed tick, routes each event through the tree and applies the effects handlers asked for.
package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/lixenwraith/termvis/action"
	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
	"github.com/lixenwraith/termvis/visual"
)

// DefaultTickRate is the poll interval used when none is configured
const DefaultTickRate = 250 * time.Millisecond

// maxFocusDepth bounds SetFocus requests issued from focus handlers
const maxFocusDepth = 8

var ErrFocusLoop = errors.New("app: focus change nested too deeply")

// Sink is the output surface: a write buffer sized to the terminal, flushed once per redraw
type Sink interface {
	buffer.WriteBuffer
	Flush() error
}

// ModeController is implemented by sinks and sources that switch the terminal into
// a raw mode for the lifetime of Run
type ModeController interface {
	Enter() error
	Exit() error
}

// App owns one root visual and one sink
type App struct {
	root   visual.Visual
	sink   Sink
	source input.Source

	tick   time.Duration
	logger *log.Logger
	onTick func(action.Context)

	// Window focus as last set through SetFocus or the platform
	focused bool

	// Pending effects, applied after each routed event
	needMeasure bool
	needDraw    bool
	region      geom.Rect
	hasRegion   bool

	// Root size from the last measure
	desired geom.Size

	terminated bool
	code       int
	focusDepth int
}

// Option configures an App
type Option func(*App)

// WithTickRate sets the poll interval; non-positive values keep the default
func WithTickRate(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.tick = d
		}
	}
}

// WithLogger routes driver diagnostics to l
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTickHook runs fn with the live context each time the tick interval elapses
func WithTickHook(fn func(action.Context)) Option {
	return func(a *App) {
		a.onTick = fn
	}
}

// New creates a driver for root drawing into sink and reading from source
func New(root visual.Visual, sink Sink, source input.Source, opts ...Option) *App {
	a := &App{
		root:    root,
		sink:    sink,
		source:  source,
		tick:    DefaultTickRate,
		logger:  log.New(io.Discard, "", 0),
		focused: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Focused reports the window focus state
func (a *App) Focused() bool {
	return a.focused
}

// Desired returns the root's size from the last measure
func (a *App) Desired() geom.Size {
	return a.desired
}

// Run enters raw mode, draws, and loops until a Terminate action surfaces.
// It returns the terminate code, or 1 with the error when the sink or source fails.
// Terminal modes are restored on every exit path, including panics, which are re-raised.
func (a *App) Run() (code int, err error) {
	modes := a.controllers()
	entered := 0
	defer func() {
		r := recover()
		for i := entered - 1; i >= 0; i-- {
			if xerr := modes[i].Exit(); xerr != nil {
				a.logger.Printf("restore terminal: %v", xerr)
				if err == nil && r == nil {
					code, err = 1, fmt.Errorf("restore terminal: %w", xerr)
				}
			}
		}
		if r != nil {
			panic(r)
		}
	}()

	for _, m := range modes {
		if err := m.Enter(); err != nil {
			return 1, fmt.Errorf("enter terminal mode: %w", err)
		}
		entered++
	}

	a.remeasure(a.sink.Size())
	if err := a.draw(); err != nil {
		return 1, err
	}

	last := time.Now()
	for !a.terminated {
		timeout := a.tick - time.Since(last)
		if timeout < 0 {
			timeout = 0
		}

		ready, err := a.source.Poll(timeout)
		if err != nil {
			return 1, fmt.Errorf("poll input: %w", err)
		}
		if ready {
			ev, err := a.source.Read()
			if err != nil {
				return 1, fmt.Errorf("read input: %w", err)
			}
			a.Dispatch(ev)
			if err := a.flushPending(); err != nil {
				return 1, err
			}
		}

		if time.Since(last) >= a.tick {
			last = time.Now()
			if a.onTick != nil {
				a.onTick(live{a})
				if err := a.flushPending(); err != nil {
					return 1, err
				}
			}
		}
	}

	a.logger.Printf("terminated with code %d", a.code)
	return a.code, nil
}

// controllers collects the distinct mode controllers among sink and source
func (a *App) controllers() []ModeController {
	var modes []ModeController
	if m, ok := a.sink.(ModeController); ok {
		modes = append(modes, m)
	}
	if m, ok := a.source.(ModeController); ok {
		if len(modes) == 0 || any(modes[0]) != any(m) {
			modes = append(modes, m)
		}
	}
	return modes
}

// Dispatch routes one event through the root and applies the collected actions.
// Effects that need the sink are left pending until the next flush.
func (a *App) Dispatch(ev input.Event) {
	var acts action.Log
	rc := action.Retain(&acts)

	switch ev.Kind {
	case input.EventFocusGained:
		a.focused = true
		a.root.OnGotFocus(rc)
	case input.EventFocusLost:
		a.focused = false
		a.root.OnLostFocus(rc)
	case input.EventKeyPress:
		a.root.OnKeyPress(ev.KeyArgs(), rc)
	case input.EventKeyRelease:
		a.root.OnKeyRelease(ev.KeyArgs(), rc)
	case input.EventMouseDown:
		a.root.OnMouseDown(ev.ButtonArgs(), rc)
	case input.EventMouseUp:
		a.root.OnMouseUp(ev.ButtonArgs(), rc)
	case input.EventMouseMove:
		a.root.OnMouseMove(ev.MouseArgs(), rc)
	case input.EventMouseWheel:
		a.root.OnMouseWheel(ev.WheelArgs(), rc)
	case input.EventPaste:
		a.root.OnPaste(ev.PasteArgs(), rc)
	case input.EventResize:
		a.logger.Printf("resize to %v", ev.Size)
		a.remeasure(ev.Size)
		a.needDraw = true
	default:
		a.logger.Printf("ignoring event %v", ev)
	}

	if acts.Len() > 0 {
		a.logger.Printf("%v: %v", ev.Kind, acts.Actions())
	}
	acts.Replay(live{a})
}

// Terminated reports whether a Terminate action was applied, and its code
func (a *App) Terminated() (bool, int) {
	return a.terminated, a.code
}

func (a *App) remeasure(constraint geom.Size) {
	a.desired = a.root.Measure(constraint)
	a.needMeasure = false
}

// flushPending performs the redraw work requested since the last flush
func (a *App) flushPending() error {
	if a.terminated {
		return nil
	}
	if a.needMeasure {
		a.remeasure(a.sink.Size())
		a.needDraw = true
	}
	if a.needDraw {
		return a.draw()
	}
	if a.hasRegion {
		return a.redrawRegion()
	}
	return nil
}

// viewport is the root's drawing window: its desired size clipped to the terminal
func (a *App) viewport() (*buffer.Virtual, geom.Size) {
	extent := a.desired.Clip(a.sink.Size())
	window := geom.Rect{Width: extent.Width, Height: extent.Height}
	return buffer.NewVirtual(a.sink, window), extent
}

func (a *App) draw() error {
	a.needDraw, a.hasRegion = false, false

	if err := a.sink.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	view, extent := a.viewport()
	if _, err := a.root.Draw(view, extent); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	if err := a.sink.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func (a *App) redrawRegion() error {
	region := a.region
	a.hasRegion = false

	view, extent := a.viewport()
	if err := visual.Redraw(a.root, view, extent, region); err != nil {
		return fmt.Errorf("redraw %v: %w", region, err)
	}
	if err := a.sink.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// live applies actions to the running application
type live struct {
	a *App
}

func (l live) Redraw() {
	l.a.needDraw = true
}

// RedrawRegion accumulates regions into their bounding rectangle
func (l live) RedrawRegion(r geom.Rect) {
	if r.IsEmpty() {
		return
	}
	if l.a.hasRegion {
		l.a.region = l.a.region.Union(r)
	} else {
		l.a.region, l.a.hasRegion = r, true
	}
}

func (l live) Remeasure() {
	l.a.needMeasure = true
}

// SetFocus changes window focus and broadcasts the matching event to the tree.
// Actions the broadcast produces are applied in turn.
func (l live) SetFocus(focused bool) {
	a := l.a
	if a.focused == focused {
		return
	}
	if a.focusDepth >= maxFocusDepth {
		a.logger.Printf("dropping focus change to %t: %v", focused, ErrFocusLoop)
		return
	}
	a.focused = focused

	a.focusDepth++
	defer func() { a.focusDepth-- }()

	var acts action.Log
	rc := action.Retain(&acts)
	if focused {
		a.root.OnGotFocus(rc)
	} else {
		a.root.OnLostFocus(rc)
	}
	acts.Replay(l)
}

// Terminate stops the loop after the current event; the last code requested wins
func (l live) Terminate(code int) {
	l.a.terminated = true
	l.a.code = code
}
