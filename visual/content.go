package visual

import (
	"github.com/lixenwraith/termvis/action"
	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
	"github.com/lixenwraith/termvis/layout"
)

// Content wraps exactly one child. Delegation is governed by a focus flag
// instead of an index; replacing the child clears the flag.
type Content struct {
	layout       layout.Layout
	handler      input.Handler
	child        Visual
	childFocused bool

	arrangement layout.Arrangement
}

// NewContent wraps child with a Fill layout; WithFocus(0) starts with the child focused
func NewContent(child Visual, opts ...Option) *Content {
	o := buildOptions(layout.Fill{}, opts)
	return &Content{
		layout:       o.layout,
		handler:      o.handler,
		child:        child,
		childFocused: child != nil && o.focus == 0,
	}
}

// Padded wraps child inside margin m
func Padded(child Visual, m geom.Margin, opts ...Option) *Content {
	return NewContent(child, append([]Option{WithLayout(layout.Padding{Margin: m})}, opts...)...)
}

func (c *Content) Child() Visual                   { return c.child }
func (c *Content) IsChildFocused() bool            { return c.childFocused }
func (c *Content) Arrangement() layout.Arrangement { return c.arrangement }

// SetChild replaces the child and clears focus
func (c *Content) SetChild(v Visual) {
	c.child = v
	c.childFocused = false
	c.arrangement = layout.Arrangement{}
}

// FocusChild sets whether events are delegated to the child
func (c *Content) FocusChild(focused bool) {
	c.childFocused = focused && c.child != nil
}

// SetHandler installs hooks; nil restores the default that claims nothing
func (c *Content) SetHandler(h input.Handler) {
	if h == nil {
		h = input.NopHandler{}
	}
	c.handler = h
}

func (c *Content) children() layout.Children {
	if c.child == nil {
		return layout.Slice[Visual](nil)
	}
	return layout.Slice[Visual]{c.child}
}

func (c *Content) Measure(constraints geom.Size) geom.Size {
	return c.layout.Measure(c.children(), constraints)
}

func (c *Content) Draw(buf buffer.WriteBuffer, available geom.Size) (geom.Size, error) {
	arr, err := c.layout.Draw(c.children(), buf, available)
	if err != nil {
		return geom.Size{}, err
	}
	c.arrangement = arr
	return arr.Size(), nil
}

// target is the child events are delegated to, nil when unfocused
func (c *Content) target() Visual {
	if !c.childFocused {
		return nil
	}
	return c.child
}

func (c *Content) origin() geom.Position {
	r, _ := c.arrangement.Rect(0)
	return r.Position()
}

func (c *Content) OnGotFocus(ctx action.Context) {
	child := c.child
	action.Collect(ctx, func(rc action.Context) bool {
		c.handler.GotFocus(rc)
		if child != nil {
			child.OnGotFocus(rc)
		}
		return false
	})
}

func (c *Content) OnLostFocus(ctx action.Context) {
	child := c.child
	action.Collect(ctx, func(rc action.Context) bool {
		c.handler.LostFocus(rc)
		if child != nil {
			child.OnLostFocus(rc)
		}
		return false
	})
}

func (c *Content) OnPaste(a input.PasteArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(rc action.Context) bool { return c.handler.TunnelPaste(a, rc) },
		func(rc action.Context) bool {
			t := c.target()
			return t != nil && t.OnPaste(a, rc)
		},
		func(rc action.Context) bool { return c.handler.BubblePaste(a, rc) },
	)
}

func (c *Content) OnKeyPress(a input.KeyArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(rc action.Context) bool { return c.handler.TunnelKeyPress(a, rc) },
		func(rc action.Context) bool {
			t := c.target()
			return t != nil && t.OnKeyPress(a, rc)
		},
		func(rc action.Context) bool { return c.handler.BubbleKeyPress(a, rc) },
	)
}

func (c *Content) OnKeyRelease(a input.KeyArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(rc action.Context) bool { return c.handler.TunnelKeyRelease(a, rc) },
		func(rc action.Context) bool {
			t := c.target()
			return t != nil && t.OnKeyRelease(a, rc)
		},
		func(rc action.Context) bool { return c.handler.BubbleKeyRelease(a, rc) },
	)
}

func (c *Content) OnMouseMove(a input.MouseArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(rc action.Context) bool { return c.handler.TunnelMouseMove(a, rc) },
		func(rc action.Context) bool {
			t := c.target()
			return t != nil && t.OnMouseMove(a.Local(c.origin()), rc)
		},
		func(rc action.Context) bool { return c.handler.BubbleMouseMove(a, rc) },
	)
}

func (c *Content) OnMouseWheel(a input.WheelArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(rc action.Context) bool { return c.handler.TunnelMouseWheel(a, rc) },
		func(rc action.Context) bool {
			t := c.target()
			return t != nil && t.OnMouseWheel(a.Local(c.origin()), rc)
		},
		func(rc action.Context) bool { return c.handler.BubbleMouseWheel(a, rc) },
	)
}

func (c *Content) OnMouseUp(a input.ButtonArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(rc action.Context) bool { return c.handler.TunnelMouseUp(a, rc) },
		func(rc action.Context) bool {
			t := c.target()
			return t != nil && t.OnMouseUp(a.Local(c.origin()), rc)
		},
		func(rc action.Context) bool { return c.handler.BubbleMouseUp(a, rc) },
	)
}

func (c *Content) OnMouseDown(a input.ButtonArgs, ctx action.Context) bool {
	return action.Collect(ctx,
		func(rc action.Context) bool { return c.handler.TunnelMouseDown(a, rc) },
		func(rc action.Context) bool {
			t := c.target()
			return t != nil && t.OnMouseDown(a.Local(c.origin()), rc)
		},
		func(rc action.Context) bool { return c.handler.BubbleMouseDown(a, rc) },
	)
}
