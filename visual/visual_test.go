package visual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termvis/action"
	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
	"github.com/lixenwraith/termvis/style"
)

// spy is a leaf that records what reached it and optionally claims keys
type spy struct {
	input.NopReceiver
	name    string
	trace   *[]string
	claim   bool
	emit    func(action.Context)
	lastPos geom.Position
	size    geom.Size
}

func (s *spy) Measure(c geom.Size) geom.Size { return s.size.Clip(c) }

func (s *spy) Draw(buf buffer.WriteBuffer, available geom.Size) (geom.Size, error) {
	return s.size.Clip(available), nil
}

func (s *spy) OnKeyPress(a input.KeyArgs, ctx action.Context) bool {
	*s.trace = append(*s.trace, s.name)
	if s.emit != nil {
		s.emit(ctx)
	}
	return s.claim
}

func (s *spy) OnMouseDown(a input.ButtonArgs, ctx action.Context) bool {
	*s.trace = append(*s.trace, s.name)
	s.lastPos = a.Position
	return s.claim
}

func (s *spy) OnGotFocus(ctx action.Context) {
	*s.trace = append(*s.trace, s.name+":got")
}

func (s *spy) OnLostFocus(ctx action.Context) {
	*s.trace = append(*s.trace, s.name+":lost")
}

// recorder wraps a handler with tracing hooks
func recorder(name string, trace *[]string, tunnelClaims bool) *input.Funcs {
	return &input.Funcs{
		OnTunnelKeyPress: func(a input.KeyArgs, c action.Context) bool {
			*trace = append(*trace, name+":tunnel")
			return tunnelClaims
		},
		OnBubbleKeyPress: func(a input.KeyArgs, c action.Context) bool {
			*trace = append(*trace, name+":bubble")
			return false
		},
		OnGotFocus: func(c action.Context) {
			*trace = append(*trace, name+":got")
		},
	}
}

func TestVStackOfTextBlocks(t *testing.T) {
	root := VStack(NewTextBlock("hello"), NewTextBlock("twelve chars"), NewTextBlock("four"))
	buf := buffer.NewMemory(geom.Sz(20, 2))

	assert.Equal(t, geom.Sz(12, 2), root.Measure(geom.Sz(20, 2)))

	used, err := root.Draw(buf, geom.Sz(20, 2))
	require.NoError(t, err)
	assert.Equal(t, geom.Sz(12, 2), used)
	assert.Equal(t, 2, root.Arrangement().Len())
	assert.Equal(t, "hello               \ntwelve chars        ", buf.String())
}

func TestTextBlockTruncates(t *testing.T) {
	tb := NewTextBlock("truncate me")
	buf := buffer.NewMemory(geom.Sz(5, 1))
	used, err := tb.Draw(buffer.NewVirtual(buf, geom.NewRect(0, 0, 5, 1)), geom.Sz(5, 1))
	require.NoError(t, err)
	assert.Equal(t, geom.Sz(5, 1), used)
	assert.Equal(t, "trunc", buf.String())
	assert.Equal(t, geom.Size{}, tb.Measure(geom.Sz(5, 0)))
}

func TestTunnelClaimStopsRouting(t *testing.T) {
	var trace []string
	leaf := &spy{name: "leaf", trace: &trace}
	inner := NewTree(nil, []Visual{leaf}, WithFocus(0), WithHandler(recorder("inner", &trace, false)))
	root := NewTree(nil, []Visual{inner}, WithFocus(0), WithHandler(recorder("root", &trace, true)))

	var log action.Log
	handled := root.OnKeyPress(input.KeyArgs{Key: input.KeyEnter}, action.Retain(&log))

	assert.True(t, handled)
	assert.Equal(t, []string{"root:tunnel"}, trace)
}

func TestRoutingOrderWhenUnclaimed(t *testing.T) {
	var trace []string
	leaf := &spy{name: "leaf", trace: &trace}
	inner := NewTree(nil, []Visual{leaf}, WithFocus(0), WithHandler(recorder("inner", &trace, false)))
	root := NewTree(nil, []Visual{inner}, WithFocus(0), WithHandler(recorder("root", &trace, false)))

	var log action.Log
	handled := root.OnKeyPress(input.KeyArgs{Key: input.KeyEnter}, action.Retain(&log))

	assert.False(t, handled)
	assert.Equal(t, []string{"root:tunnel", "inner:tunnel", "leaf", "inner:bubble", "root:bubble"}, trace)
}

func TestUnfocusedTreeSkipsChildren(t *testing.T) {
	var trace []string
	leaf := &spy{name: "leaf", trace: &trace, claim: true}
	root := NewTree(nil, []Visual{leaf}, WithHandler(recorder("root", &trace, false)))

	var log action.Log
	assert.False(t, root.OnKeyPress(input.KeyArgs{}, action.Retain(&log)))
	assert.Equal(t, []string{"root:tunnel", "root:bubble"}, trace)
}

func TestActionsReplayInEmissionOrder(t *testing.T) {
	var trace []string
	leaf := &spy{name: "leaf", trace: &trace, emit: func(c action.Context) { c.Redraw() }}
	h := &input.Funcs{
		OnTunnelKeyPress: func(a input.KeyArgs, c action.Context) bool {
			c.SetFocus(false)
			return false
		},
		OnBubbleKeyPress: func(a input.KeyArgs, c action.Context) bool {
			c.Terminate(3)
			return true
		},
	}
	root := NewTree(nil, []Visual{leaf}, WithFocus(0), WithHandler(h))

	var log action.Log
	require.True(t, root.OnKeyPress(input.KeyArgs{}, action.Retain(&log)))
	assert.Equal(t, []action.Action{action.SetFocus(false), action.Redraw(), action.Terminate(3)}, log.Actions())
}

func TestNestedBubbleTerminateReachesRoot(t *testing.T) {
	var trace []string
	h := &input.Funcs{
		OnBubbleKeyPress: func(a input.KeyArgs, c action.Context) bool {
			c.Terminate(0)
			return true
		},
	}
	leafTree := NewTree(nil, []Visual{&spy{name: "leaf", trace: &trace}}, WithFocus(0), WithHandler(h))
	var v Visual = leafTree
	for i := 0; i < 5; i++ {
		v = NewTree(nil, []Visual{v}, WithFocus(0))
	}
	root := NewContent(v, WithFocus(0))

	var log action.Log
	require.True(t, root.OnKeyPress(input.KeyArgs{Key: input.KeyRune, Rune: 'q'}, action.Retain(&log)))
	assert.Equal(t, []action.Action{action.Terminate(0)}, log.Actions())
}

func TestFocusEventsBroadcastToAllChildren(t *testing.T) {
	var trace []string
	a := &spy{name: "a", trace: &trace}
	b := &spy{name: "b", trace: &trace}
	root := NewTree(nil, []Visual{a, b}, WithFocus(1), WithHandler(recorder("root", &trace, false)))

	var log action.Log
	root.OnGotFocus(action.Retain(&log))
	root.OnLostFocus(action.Retain(&log))
	assert.Equal(t, []string{"root:got", "a:got", "b:got", "a:lost", "b:lost"}, trace)
}

func TestFocusInvalidation(t *testing.T) {
	var trace []string
	mk := func(n string) *spy { return &spy{name: n, trace: &trace} }
	tree := NewTree(nil, []Visual{mk("a"), mk("b"), mk("c")}, WithFocus(2))

	require.NoError(t, tree.Remove(0))
	i, ok := tree.Focused()
	assert.True(t, ok)
	assert.Equal(t, 1, i, "focus follows its child when an earlier sibling is removed")

	require.NoError(t, tree.Remove(1))
	_, ok = tree.Focused()
	assert.False(t, ok, "removing the focused child clears focus")

	require.NoError(t, tree.Focus(0))
	tree.SetChildren([]Visual{mk("x")})
	_, ok = tree.Focused()
	assert.False(t, ok, "replacing children clears focus")

	assert.ErrorIs(t, tree.Focus(4), ErrNoSuchChild)
	assert.ErrorIs(t, tree.Remove(-1), ErrNoSuchChild)

	invalid := NewTree(nil, []Visual{mk("a")}, WithFocus(3))
	_, ok = invalid.Focused()
	assert.False(t, ok)
}

func TestTabCycling(t *testing.T) {
	var trace []string
	mk := func(n string) *spy { return &spy{name: n, trace: &trace} }
	tree := NewTree(nil, []Visual{mk("a"), mk("b"), mk("c")}, WithTabCycling())

	var log action.Log
	ctx := action.Retain(&log)

	assert.True(t, tree.OnKeyPress(input.KeyArgs{Key: input.KeyTab}, ctx))
	i, _ := tree.Focused()
	assert.Equal(t, 0, i)

	tree.OnKeyPress(input.KeyArgs{Key: input.KeyBacktab}, ctx)
	i, _ = tree.Focused()
	assert.Equal(t, 2, i)

	assert.Equal(t, 2, log.Len(), "each focus move requests a redraw")

	// Other keys are left alone
	assert.False(t, tree.OnKeyPress(input.KeyArgs{Key: input.KeyEnter}, ctx))
}

func TestClickFocusTranslatesPosition(t *testing.T) {
	var trace []string
	a := &spy{name: "a", trace: &trace, size: geom.Sz(10, 2)}
	b := &spy{name: "b", trace: &trace, size: geom.Sz(10, 3)}
	tree := NewTree(nil, []Visual{a, b}, WithClickFocus())

	_, err := tree.Draw(buffer.NewMemory(geom.Sz(10, 5)), geom.Sz(10, 5))
	require.NoError(t, err)

	var log action.Log
	tree.OnMouseDown(input.ButtonArgs{Position: geom.Pos(4, 3), Button: input.MouseLeft}, action.Retain(&log))

	i, ok := tree.Focused()
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, []string{"b"}, trace)
	assert.Equal(t, geom.Pos(4, 1), b.lastPos, "child sees coordinates relative to its own rect")
	assert.Equal(t, []action.Action{action.Redraw()}, log.Actions())
}

func TestContentDelegatesOnlyWhenFocused(t *testing.T) {
	var trace []string
	leaf := &spy{name: "leaf", trace: &trace, claim: true}
	c := NewContent(leaf)

	var log action.Log
	assert.False(t, c.OnKeyPress(input.KeyArgs{}, action.Retain(&log)))
	assert.Empty(t, trace)

	c.FocusChild(true)
	assert.True(t, c.OnKeyPress(input.KeyArgs{}, action.Retain(&log)))
	assert.Equal(t, []string{"leaf"}, trace)

	c.SetChild(&spy{name: "other", trace: &trace})
	assert.False(t, c.IsChildFocused(), "replacing the child clears focus")
}

func TestPaddedContentDraw(t *testing.T) {
	c := Padded(NewTextBlock("abc"), geom.Uniform(1))
	buf := buffer.NewMemory(geom.Sz(5, 3))

	assert.Equal(t, geom.Sz(5, 3), c.Measure(geom.Sz(5, 3)))
	used, err := c.Draw(buf, geom.Sz(5, 3))
	require.NoError(t, err)
	assert.Equal(t, geom.Sz(5, 3), used)
	assert.Equal(t, "     \n abc \n     ", buf.String())
}

func TestRedrawRegion(t *testing.T) {
	root := VStack(NewTextBlock("aaaa"), NewTextBlock("bbbb"))
	buf := buffer.NewMemory(geom.Sz(4, 2))
	for y := uint16(0); y < 2; y++ {
		buf.WriteSymbols(geom.Pos(0, y), "....", style.New())
	}

	require.NoError(t, Redraw(root, buf, geom.Sz(4, 2), geom.NewRect(1, 1, 2, 1)))
	assert.Equal(t, "....\n.bb.", buf.String())
}
