package visual

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/termvis/action"
	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
	"github.com/lixenwraith/termvis/layout"
)

// Tree is a composite of N children placed by a Layout.
// Child order is paint, hit-test, and tab order. At most one child holds focus,
// tracked by index and cleared whenever the child it names goes away.
type Tree struct {
	layout   layout.Layout
	handler  input.Handler
	children []Visual
	focused  int

	tabCycling bool
	clickFocus bool

	// geometry of the last Draw, used to map pointer positions to children
	arrangement layout.Arrangement
}

// NewTree builds a composite over children
func NewTree(l layout.Layout, children []Visual, opts ...Option) *Tree {
	o := buildOptions(l, opts)
	t := &Tree{
		layout:     o.layout,
		handler:    o.handler,
		children:   slices.Clone(children),
		focused:    -1,
		tabCycling: o.tab,
		clickFocus: o.click,
	}
	if o.focus >= 0 && o.focus < len(t.children) {
		t.focused = o.focus
	}
	return t
}

func (t *Tree) Layout() layout.Layout           { return t.layout }
func (t *Tree) SetLayout(l layout.Layout)       { t.layout = l }
func (t *Tree) Handler() input.Handler          { return t.handler }
func (t *Tree) Arrangement() layout.Arrangement { return t.arrangement }
func (t *Tree) Len() int                        { return len(t.children) }

// SetHandler installs hooks; nil restores the default that claims nothing
func (t *Tree) SetHandler(h input.Handler) {
	if h == nil {
		h = input.NopHandler{}
	}
	t.handler = h
}

// Child returns child i
func (t *Tree) Child(i int) (Visual, bool) {
	if i < 0 || i >= len(t.children) {
		return nil, false
	}
	return t.children[i], true
}

// Children returns a copy of the child list
func (t *Tree) Children() []Visual {
	return slices.Clone(t.children)
}

// SetChildren replaces every child and drops focus and the previous arrangement
func (t *Tree) SetChildren(children []Visual) {
	t.children = slices.Clone(children)
	t.focused = -1
	t.arrangement = layout.Arrangement{}
}

// Append adds children after the existing ones; focus is unaffected
func (t *Tree) Append(children ...Visual) {
	t.children = append(t.children, children...)
}

// Remove deletes child i. Focus on i is cleared, focus after i follows its child.
func (t *Tree) Remove(i int) error {
	if i < 0 || i >= len(t.children) {
		return fmt.Errorf("%w: remove %d of %d", ErrNoSuchChild, i, len(t.children))
	}
	t.children = slices.Delete(t.children, i, i+1)
	switch {
	case t.focused == i:
		t.focused = -1
	case t.focused > i:
		t.focused--
	}
	t.arrangement = layout.Arrangement{}
	return nil
}

// Focus makes child i the focus target
func (t *Tree) Focus(i int) error {
	if i < 0 || i >= len(t.children) {
		return fmt.Errorf("%w: focus %d of %d", ErrNoSuchChild, i, len(t.children))
	}
	t.focused = i
	return nil
}

// Blur clears the focus target
func (t *Tree) Blur() {
	t.focused = -1
}

// Focused returns the focused index
func (t *Tree) Focused() (int, bool) {
	return t.focused, t.focused >= 0
}

// FocusedChild returns the focus target or nil
func (t *Tree) FocusedChild() Visual {
	if t.focused < 0 {
		return nil
	}
	return t.children[t.focused]
}

// FocusNext moves focus to the next child, wrapping; with nothing focused it picks the first
func (t *Tree) FocusNext() bool {
	n := len(t.children)
	if n == 0 {
		return false
	}
	next := 0
	if t.focused >= 0 {
		next = (t.focused + 1) % n
	}
	changed := next != t.focused
	t.focused = next
	return changed
}

// FocusPrev moves focus to the previous child, wrapping; with nothing focused it picks the last
func (t *Tree) FocusPrev() bool {
	n := len(t.children)
	if n == 0 {
		return false
	}
	prev := n - 1
	if t.focused >= 0 {
		prev = (t.focused - 1 + n) % n
	}
	changed := prev != t.focused
	t.focused = prev
	return changed
}

func (t *Tree) Measure(constraints geom.Size) geom.Size {
	return t.layout.Measure(layout.Slice[Visual](t.children), constraints)
}

func (t *Tree) Draw(buf buffer.WriteBuffer, available geom.Size) (geom.Size, error) {
	arr, err := t.layout.Draw(layout.Slice[Visual](t.children), buf, available)
	if err != nil {
		return geom.Size{}, err
	}
	t.arrangement = arr
	return arr.Size(), nil
}

// childOrigin is where child i was last drawn, zero if it was not
func (t *Tree) childOrigin(i int) geom.Position {
	r, _ := t.arrangement.Rect(i)
	return r.Position()
}

func (t *Tree) OnGotFocus(ctx action.Context) {
	children := slices.Clone(t.children)
	action.Collect(ctx, func(c action.Context) bool {
		t.handler.GotFocus(c)
		for _, child := range children {
			child.OnGotFocus(c)
		}
		return false
	})
}

func (t *Tree) OnLostFocus(ctx action.Context) {
	children := slices.Clone(t.children)
	action.Collect(ctx, func(c action.Context) bool {
		t.handler.LostFocus(c)
		for _, child := range children {
			child.OnLostFocus(c)
		}
		return false
	})
}

func (t *Tree) OnPaste(a input.PasteArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(c action.Context) bool { return t.handler.TunnelPaste(a, c) },
		func(c action.Context) bool {
			child := t.FocusedChild()
			return child != nil && child.OnPaste(a, c)
		},
		func(c action.Context) bool { return t.handler.BubblePaste(a, c) },
	)
}

func (t *Tree) OnKeyPress(a input.KeyArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(c action.Context) bool { return t.handler.TunnelKeyPress(a, c) },
		func(c action.Context) bool {
			child := t.FocusedChild()
			return child != nil && child.OnKeyPress(a, c)
		},
		func(c action.Context) bool { return t.handler.BubbleKeyPress(a, c) },
		func(c action.Context) bool { return t.cycleFocus(a, c) },
	)
}

func (t *Tree) OnKeyRelease(a input.KeyArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(c action.Context) bool { return t.handler.TunnelKeyRelease(a, c) },
		func(c action.Context) bool {
			child := t.FocusedChild()
			return child != nil && child.OnKeyRelease(a, c)
		},
		func(c action.Context) bool { return t.handler.BubbleKeyRelease(a, c) },
	)
}

func (t *Tree) OnMouseMove(a input.MouseArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(c action.Context) bool { return t.handler.TunnelMouseMove(a, c) },
		func(c action.Context) bool {
			child := t.FocusedChild()
			return child != nil && child.OnMouseMove(a.Local(t.childOrigin(t.focused)), c)
		},
		func(c action.Context) bool { return t.handler.BubbleMouseMove(a, c) },
	)
}

func (t *Tree) OnMouseWheel(a input.WheelArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(c action.Context) bool { return t.handler.TunnelMouseWheel(a, c) },
		func(c action.Context) bool {
			child := t.FocusedChild()
			return child != nil && child.OnMouseWheel(a.Local(t.childOrigin(t.focused)), c)
		},
		func(c action.Context) bool { return t.handler.BubbleMouseWheel(a, c) },
	)
}

func (t *Tree) OnMouseUp(a input.ButtonArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(c action.Context) bool { return t.handler.TunnelMouseUp(a, c) },
		func(c action.Context) bool {
			child := t.FocusedChild()
			return child != nil && child.OnMouseUp(a.Local(t.childOrigin(t.focused)), c)
		},
		func(c action.Context) bool { return t.handler.BubbleMouseUp(a, c) },
	)
}

func (t *Tree) OnMouseDown(a input.ButtonArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(c action.Context) bool { return t.handler.TunnelMouseDown(a, c) },
		func(c action.Context) bool { return t.clickToFocus(a.Position, c) },
		func(c action.Context) bool {
			child := t.FocusedChild()
			return child != nil && child.OnMouseDown(a.Local(t.childOrigin(t.focused)), c)
		},
		func(c action.Context) bool { return t.handler.BubbleMouseDown(a, c) },
	)
}

// cycleFocus handles Tab/BackTab when tab cycling is on and nothing else claimed the key
func (t *Tree) cycleFocus(a input.KeyArgs, c action.Context) bool {
	if !t.tabCycling {
		return false
	}
	var moved bool
	switch a.Key {
	case input.KeyTab:
		moved = t.FocusNext()
	case input.KeyBacktab:
		moved = t.FocusPrev()
	default:
		return false
	}
	if moved {
		c.Redraw()
	}
	return moved
}

// clickToFocus retargets focus to the child under p; it never claims the event
func (t *Tree) clickToFocus(p geom.Position, c action.Context) bool {
	if !t.clickFocus {
		return false
	}
	if i, ok := t.arrangement.HitTest(p); ok && i != t.focused && i < len(t.children) {
		t.focused = i
		c.Redraw()
	}
	return false
}
