package tcellterm

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
	"github.com/lixenwraith/termvis/style"
)

func newSim(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s := Wrap(sim, Options{Mouse: true, Paste: true, FocusReports: true})
	require.NoError(t, s.Enter())
	sim.SetSize(w, h)
	t.Cleanup(func() { s.Close() })
	return s, sim
}

func readEvent(t *testing.T, s *Screen) input.Event {
	t.Helper()
	ready, err := s.Poll(time.Second)
	require.NoError(t, err)
	require.True(t, ready, "expected an event")
	ev, err := s.Read()
	require.NoError(t, err)
	return ev
}

func TestWriteSymbolsReachesScreen(t *testing.T) {
	s, sim := newSim(t, 10, 2)
	assert.Equal(t, geom.Sz(10, 2), s.Size())

	red := style.New().WithFg(tcell.ColorRed).WithAttr(style.AttrBold)
	require.NoError(t, s.WriteSymbols(geom.Pos(1, 1), "hey", red))
	require.NoError(t, s.Flush())

	cells, w, _ := sim.GetContents()
	c := cells[1*w+1]
	assert.Equal(t, []rune{'h'}, c.Runes)
	fg, _, attrs := c.Style.Decompose()
	assert.Equal(t, tcell.ColorRed, fg)
	assert.NotZero(t, attrs&tcell.AttrBold)

	sym, err := s.Symbol(geom.Pos(3, 1))
	require.NoError(t, err)
	assert.Equal(t, 'y', sym)
	a, err := s.Attribute(geom.Pos(3, 1))
	require.NoError(t, err)
	assert.True(t, a.Has(style.AttrBold))
}

func TestWriteBoundsChecked(t *testing.T) {
	s, _ := newSim(t, 4, 1)
	assert.ErrorIs(t, s.WriteSymbols(geom.Pos(2, 0), "abc", style.New()), buffer.ErrOutOfBounds)
	assert.ErrorIs(t, s.SetSymbol(geom.Pos(4, 0), 'x'), buffer.ErrOutOfBounds)
	assert.ErrorIs(t, s.ClearRegion(geom.Rect{X: 0, Y: 0, Width: 5, Height: 1}), buffer.ErrOutOfBounds)
}

func TestWriteBufferBlitsMemory(t *testing.T) {
	s, _ := newSim(t, 6, 2)
	m := buffer.NewMemory(geom.Sz(2, 1))
	require.NoError(t, m.WriteSymbols(geom.Pos(0, 0), "ok", style.New()))

	require.NoError(t, s.WriteBuffer(geom.Pos(3, 1), m))
	r, err := s.Symbol(geom.Pos(4, 1))
	require.NoError(t, err)
	assert.Equal(t, 'k', r)
}

func TestHiddenCellsShowBlank(t *testing.T) {
	s, sim := newSim(t, 6, 1)
	hidden := style.New().WithFg(tcell.ColorRed).WithAttr(style.AttrHidden)
	require.NoError(t, s.WriteSymbols(geom.Pos(0, 0), "pw", hidden))
	require.NoError(t, s.WriteSymbols(geom.Pos(2, 0), "ok", style.New()))
	require.NoError(t, s.Flush())

	cells, _, _ := sim.GetContents()
	assert.Equal(t, []rune{' '}, cells[0].Runes)
	assert.Equal(t, []rune{' '}, cells[1].Runes)
	assert.Equal(t, []rune{'o'}, cells[2].Runes)

	c, err := s.Cell(geom.Pos(1, 0))
	require.NoError(t, err)
	assert.Equal(t, 'w', c.Rune)
	assert.Equal(t, tcell.ColorRed, c.Fg)
	assert.True(t, c.Attrs.Has(style.AttrHidden))

	// Clearing the hidden bit reveals the kept rune
	require.NoError(t, s.SetAttribute(geom.Pos(1, 0), style.AttrNone))
	require.NoError(t, s.Flush())
	cells, _, _ = sim.GetContents()
	assert.Equal(t, []rune{'w'}, cells[1].Runes)

	require.NoError(t, s.ClearRegion(geom.Rect{Width: 1, Height: 1}))
	a, err := s.Attribute(geom.Pos(0, 0))
	require.NoError(t, err)
	assert.False(t, a.Has(style.AttrHidden))
}

func TestWriteBufferKeepsUnderlineColor(t *testing.T) {
	s, _ := newSim(t, 4, 1)
	m := buffer.NewMemory(geom.Sz(1, 1))
	require.NoError(t, m.SetCell(geom.Pos(0, 0), buffer.Cell{Rune: 'u', Underline: tcell.ColorBlue, Attrs: style.AttrUnderline}))

	clip := buffer.NewClip(s, geom.Rect{X: 2, Width: 1, Height: 1})
	require.NoError(t, clip.WriteBuffer(geom.Pos(2, 0), m))
	c, err := s.Cell(geom.Pos(2, 0))
	require.NoError(t, err)
	assert.Equal(t, 'u', c.Rune)
	assert.Equal(t, tcell.ColorBlue, c.Underline)
}

func TestKeyEvents(t *testing.T) {
	s, sim := newSim(t, 10, 2)

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	ev := readEvent(t, s)
	assert.Equal(t, input.EventKeyPress, ev.Kind)
	assert.Equal(t, input.KeyRune, ev.Key)
	assert.Equal(t, 'q', ev.Rune)

	sim.InjectKey(tcell.KeyCtrlC, 'c', tcell.ModCtrl)
	ev = readEvent(t, s)
	assert.Equal(t, input.KeyCtrlC, ev.Key)
	assert.Equal(t, input.ModNone, ev.Modifiers)

	sim.InjectKey(tcell.KeyUp, 0, tcell.ModShift)
	ev = readEvent(t, s)
	assert.Equal(t, input.KeyUp, ev.Key)
	assert.Equal(t, input.ModShift, ev.Modifiers)
}

func TestMouseEdges(t *testing.T) {
	s, sim := newSim(t, 10, 5)

	sim.InjectMouse(2, 3, tcell.Button1, tcell.ModNone)
	ev := readEvent(t, s)
	assert.Equal(t, input.EventMouseDown, ev.Kind)
	assert.Equal(t, input.MouseLeft, ev.Button)
	assert.Equal(t, geom.Pos(2, 3), ev.Position)

	sim.InjectMouse(2, 3, tcell.ButtonNone, tcell.ModNone)
	ev = readEvent(t, s)
	assert.Equal(t, input.EventMouseUp, ev.Kind)
	assert.Equal(t, input.MouseLeft, ev.Button)

	sim.InjectMouse(4, 1, tcell.ButtonNone, tcell.ModNone)
	ev = readEvent(t, s)
	assert.Equal(t, input.EventMouseMove, ev.Kind)
	assert.Equal(t, geom.Pos(4, 1), ev.Position)

	sim.InjectMouse(4, 1, tcell.WheelDown, tcell.ModNone)
	ev = readEvent(t, s)
	assert.Equal(t, input.EventMouseWheel, ev.Kind)
	assert.Equal(t, int16(1), ev.Delta)
	assert.True(t, ev.Vertical)
}

func TestPasteAccumulates(t *testing.T) {
	s, sim := newSim(t, 10, 2)

	require.NoError(t, sim.PostEvent(tcell.NewEventPaste(true)))
	sim.InjectKey(tcell.KeyRune, 'h', tcell.ModNone)
	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'i', tcell.ModNone)
	require.NoError(t, sim.PostEvent(tcell.NewEventPaste(false)))

	ev := readEvent(t, s)
	assert.Equal(t, input.EventPaste, ev.Kind)
	assert.Equal(t, "h\ni", ev.Text)
}

func TestResizeAndFocus(t *testing.T) {
	s, sim := newSim(t, 10, 2)

	require.NoError(t, sim.PostEvent(tcell.NewEventResize(30, 8)))
	ev := readEvent(t, s)
	assert.Equal(t, input.EventResize, ev.Kind)
	assert.Equal(t, geom.Sz(30, 8), ev.Size)

	require.NoError(t, sim.PostEvent(tcell.NewEventFocus(false)))
	ev = readEvent(t, s)
	assert.Equal(t, input.EventFocusLost, ev.Kind)
}

func TestClosedScreen(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s := Wrap(sim, Options{})
	require.NoError(t, s.Enter())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Flush(), ErrClosed)
	_, err := s.Read()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Enter(), ErrClosed)
}
