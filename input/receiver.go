package input

import "github.com/lixenwraith/termvis/action"

// Receiver is the input half of a visual. Each method reports whether the event was claimed.
// Focus lifecycle events are broadcast and cannot be claimed.
type Receiver interface {
	OnPaste(a PasteArgs, ctx action.Context) bool
	OnGotFocus(ctx action.Context)
	OnLostFocus(ctx action.Context)
	OnKeyPress(a KeyArgs, ctx action.Context) bool
	OnKeyRelease(a KeyArgs, ctx action.Context) bool
	OnMouseMove(a MouseArgs, ctx action.Context) bool
	OnMouseWheel(a WheelArgs, ctx action.Context) bool
	OnMouseUp(a ButtonArgs, ctx action.Context) bool
	OnMouseDown(a ButtonArgs, ctx action.Context) bool
}

// NopReceiver leaves every event unhandled; embed it in leaf visuals
type NopReceiver struct{}

func (NopReceiver) OnPaste(PasteArgs, action.Context) bool      { return false }
func (NopReceiver) OnGotFocus(action.Context)                   {}
func (NopReceiver) OnLostFocus(action.Context)                  {}
func (NopReceiver) OnKeyPress(KeyArgs, action.Context) bool     { return false }
func (NopReceiver) OnKeyRelease(KeyArgs, action.Context) bool   { return false }
func (NopReceiver) OnMouseMove(MouseArgs, action.Context) bool  { return false }
func (NopReceiver) OnMouseWheel(WheelArgs, action.Context) bool { return false }
func (NopReceiver) OnMouseUp(ButtonArgs, action.Context) bool   { return false }
func (NopReceiver) OnMouseDown(ButtonArgs, action.Context) bool { return false }
