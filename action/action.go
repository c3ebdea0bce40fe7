// Package action defines the deferred-effect context passed to input handlers.
//
// Handlers never touch application state. They ask a Context for effects; composites
// hand their children a Retained context over a fresh Log and replay that log into
// their own context once every sub-handler has returned.
package action

import (
	"fmt"

	"github.com/lixenwraith/termvis/geom"
)

// Context receives effect requests during event routing
type Context interface {
	Redraw()
	RedrawRegion(r geom.Rect)
	Remeasure()
	SetFocus(focused bool)
	Terminate(code int)
}

// Kind tags an Action
type Kind uint8

const (
	KindRedraw Kind = iota
	KindRedrawRegion
	KindRemeasure
	KindSetFocus
	KindTerminate
)

var kindNames = [...]string{
	KindRedraw:       "redraw",
	KindRedrawRegion: "redraw-region",
	KindRemeasure:    "remeasure",
	KindSetFocus:     "set-focus",
	KindTerminate:    "terminate",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Action is one requested effect. Only the field matching Kind is meaningful.
type Action struct {
	Kind    Kind
	Region  geom.Rect
	Focused bool
	Code    int
}

func Redraw() Action                  { return Action{Kind: KindRedraw} }
func RedrawRegion(r geom.Rect) Action { return Action{Kind: KindRedrawRegion, Region: r} }
func Remeasure() Action               { return Action{Kind: KindRemeasure} }
func SetFocus(focused bool) Action    { return Action{Kind: KindSetFocus, Focused: focused} }
func Terminate(code int) Action       { return Action{Kind: KindTerminate, Code: code} }

// Apply performs a against ctx
func (a Action) Apply(ctx Context) {
	switch a.Kind {
	case KindRedraw:
		ctx.Redraw()
	case KindRedrawRegion:
		ctx.RedrawRegion(a.Region)
	case KindRemeasure:
		ctx.Remeasure()
	case KindSetFocus:
		ctx.SetFocus(a.Focused)
	case KindTerminate:
		ctx.Terminate(a.Code)
	}
}

func (a Action) String() string {
	switch a.Kind {
	case KindRedrawRegion:
		return fmt.Sprintf("%s %v", a.Kind, a.Region)
	case KindSetFocus:
		return fmt.Sprintf("%s %t", a.Kind, a.Focused)
	case KindTerminate:
		return fmt.Sprintf("%s %d", a.Kind, a.Code)
	}
	return a.Kind.String()
}
