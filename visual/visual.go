// Package visual composes drawables and input receivers into a retained tree.
//
// Composite nodes route every pointer, key, and paste event through three steps: their
// own tunnel hook, the focused child, then their own bubble hook. The first step to
// claim the event ends routing. Window focus changes are the exception and reach every
// node. Requested effects are collected per node and replayed into the caller's context
// only after all steps have returned.
package visual

import (
	"errors"

	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
	"github.com/lixenwraith/termvis/layout"
)

// ErrNoSuchChild is returned for a child index outside the current children
var ErrNoSuchChild = errors.New("visual: no such child")

// Visual is a node of the tree
type Visual interface {
	layout.Drawable
	input.Receiver
}

// Redrawer is implemented by visuals that can repaint part of themselves directly
type Redrawer interface {
	Redraw(buf buffer.WriteBuffer, available geom.Size, region geom.Rect) error
}

// Redraw repaints region of v. Visuals without their own Redrawer are cleared over the
// region and drawn in full through a clipping view.
func Redraw(v Visual, buf buffer.WriteBuffer, available geom.Size, region geom.Rect) error {
	if r, ok := v.(Redrawer); ok {
		return r.Redraw(buf, available, region)
	}
	clip := buffer.NewClip(buf, region)
	if clip.Region().IsEmpty() {
		return nil
	}
	if err := clip.Clear(); err != nil {
		return err
	}
	_, err := v.Draw(clip, available)
	return err
}

type options struct {
	layout  layout.Layout
	handler input.Handler
	focus   int
	tab     bool
	click   bool
}

// Option configures a Tree or Content
type Option func(*options)

// WithLayout replaces the placement strategy. A nil layout means VStack.
func WithLayout(l layout.Layout) Option {
	return func(o *options) { o.layout = l }
}

// WithHandler installs tunnel/bubble hooks
func WithHandler(h input.Handler) Option {
	return func(o *options) { o.handler = h }
}

// WithFocus focuses child i at construction; an invalid index leaves nothing focused
func WithFocus(i int) Option {
	return func(o *options) { o.focus = i }
}

// WithTabCycling moves focus on unclaimed Tab and BackTab
func WithTabCycling() Option {
	return func(o *options) { o.tab = true }
}

// WithClickFocus focuses the child under an unclaimed-at-tunnel mouse down
func WithClickFocus() Option {
	return func(o *options) { o.click = true }
}

func buildOptions(def layout.Layout, opts []Option) options {
	o := options{layout: def, handler: input.NopHandler{}, focus: -1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.handler == nil {
		o.handler = input.NopHandler{}
	}
	if o.layout == nil {
		o.layout = layout.VStack{}
	}
	return o
}

// VStack returns a Tree stacking children top to bottom
func VStack(children ...Visual) *Tree {
	return NewTree(layout.VStack{}, children)
}

// HStack returns a Tree stacking children left to right
func HStack(children ...Visual) *Tree {
	return NewTree(layout.HStack{}, children)
}
