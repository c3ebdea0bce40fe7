package input

import "github.com/lixenwraith/termvis/action"

// Handler is the pre/post hook pair a composite runs around delegation.
// Tunnel hooks run before the focused child sees the event, Bubble hooks after it
// declined. Returning true claims the event.
type Handler interface {
	TunnelPaste(a PasteArgs, ctx action.Context) bool
	BubblePaste(a PasteArgs, ctx action.Context) bool

	GotFocus(ctx action.Context)
	LostFocus(ctx action.Context)

	TunnelKeyPress(a KeyArgs, ctx action.Context) bool
	BubbleKeyPress(a KeyArgs, ctx action.Context) bool
	TunnelKeyRelease(a KeyArgs, ctx action.Context) bool
	BubbleKeyRelease(a KeyArgs, ctx action.Context) bool

	TunnelMouseMove(a MouseArgs, ctx action.Context) bool
	BubbleMouseMove(a MouseArgs, ctx action.Context) bool
	TunnelMouseWheel(a WheelArgs, ctx action.Context) bool
	BubbleMouseWheel(a WheelArgs, ctx action.Context) bool
	TunnelMouseUp(a ButtonArgs, ctx action.Context) bool
	BubbleMouseUp(a ButtonArgs, ctx action.Context) bool
	TunnelMouseDown(a ButtonArgs, ctx action.Context) bool
	BubbleMouseDown(a ButtonArgs, ctx action.Context) bool
}

// NopHandler claims nothing; embed it to override only some hooks
type NopHandler struct{}

func (NopHandler) TunnelPaste(PasteArgs, action.Context) bool      { return false }
func (NopHandler) BubblePaste(PasteArgs, action.Context) bool      { return false }
func (NopHandler) GotFocus(action.Context)                         {}
func (NopHandler) LostFocus(action.Context)                        {}
func (NopHandler) TunnelKeyPress(KeyArgs, action.Context) bool     { return false }
func (NopHandler) BubbleKeyPress(KeyArgs, action.Context) bool     { return false }
func (NopHandler) TunnelKeyRelease(KeyArgs, action.Context) bool   { return false }
func (NopHandler) BubbleKeyRelease(KeyArgs, action.Context) bool   { return false }
func (NopHandler) TunnelMouseMove(MouseArgs, action.Context) bool  { return false }
func (NopHandler) BubbleMouseMove(MouseArgs, action.Context) bool  { return false }
func (NopHandler) TunnelMouseWheel(WheelArgs, action.Context) bool { return false }
func (NopHandler) BubbleMouseWheel(WheelArgs, action.Context) bool { return false }
func (NopHandler) TunnelMouseUp(ButtonArgs, action.Context) bool   { return false }
func (NopHandler) BubbleMouseUp(ButtonArgs, action.Context) bool   { return false }
func (NopHandler) TunnelMouseDown(ButtonArgs, action.Context) bool { return false }
func (NopHandler) BubbleMouseDown(ButtonArgs, action.Context) bool { return false }

// Funcs adapts optional functions to Handler. Nil fields claim nothing.
type Funcs struct {
	OnTunnelPaste      func(PasteArgs, action.Context) bool
	OnBubblePaste      func(PasteArgs, action.Context) bool
	OnGotFocus         func(action.Context)
	OnLostFocus        func(action.Context)
	OnTunnelKeyPress   func(KeyArgs, action.Context) bool
	OnBubbleKeyPress   func(KeyArgs, action.Context) bool
	OnTunnelKeyRelease func(KeyArgs, action.Context) bool
	OnBubbleKeyRelease func(KeyArgs, action.Context) bool
	OnTunnelMouseMove  func(MouseArgs, action.Context) bool
	OnBubbleMouseMove  func(MouseArgs, action.Context) bool
	OnTunnelMouseWheel func(WheelArgs, action.Context) bool
	OnBubbleMouseWheel func(WheelArgs, action.Context) bool
	OnTunnelMouseUp    func(ButtonArgs, action.Context) bool
	OnBubbleMouseUp    func(ButtonArgs, action.Context) bool
	OnTunnelMouseDown  func(ButtonArgs, action.Context) bool
	OnBubbleMouseDown  func(ButtonArgs, action.Context) bool
}

func call[A any](fn func(A, action.Context) bool, a A, ctx action.Context) bool {
	if fn == nil {
		return false
	}
	return fn(a, ctx)
}

func (f *Funcs) TunnelPaste(a PasteArgs, ctx action.Context) bool {
	return call(f.OnTunnelPaste, a, ctx)
}

func (f *Funcs) BubblePaste(a PasteArgs, ctx action.Context) bool {
	return call(f.OnBubblePaste, a, ctx)
}

func (f *Funcs) GotFocus(ctx action.Context) {
	if f.OnGotFocus != nil {
		f.OnGotFocus(ctx)
	}
}

func (f *Funcs) LostFocus(ctx action.Context) {
	if f.OnLostFocus != nil {
		f.OnLostFocus(ctx)
	}
}

func (f *Funcs) TunnelKeyPress(a KeyArgs, ctx action.Context) bool {
	return call(f.OnTunnelKeyPress, a, ctx)
}

func (f *Funcs) BubbleKeyPress(a KeyArgs, ctx action.Context) bool {
	return call(f.OnBubbleKeyPress, a, ctx)
}

func (f *Funcs) TunnelKeyRelease(a KeyArgs, ctx action.Context) bool {
	return call(f.OnTunnelKeyRelease, a, ctx)
}

func (f *Funcs) BubbleKeyRelease(a KeyArgs, ctx action.Context) bool {
	return call(f.OnBubbleKeyRelease, a, ctx)
}

func (f *Funcs) TunnelMouseMove(a MouseArgs, ctx action.Context) bool {
	return call(f.OnTunnelMouseMove, a, ctx)
}

func (f *Funcs) BubbleMouseMove(a MouseArgs, ctx action.Context) bool {
	return call(f.OnBubbleMouseMove, a, ctx)
}

func (f *Funcs) TunnelMouseWheel(a WheelArgs, ctx action.Context) bool {
	return call(f.OnTunnelMouseWheel, a, ctx)
}

func (f *Funcs) BubbleMouseWheel(a WheelArgs, ctx action.Context) bool {
	return call(f.OnBubbleMouseWheel, a, ctx)
}

func (f *Funcs) TunnelMouseUp(a ButtonArgs, ctx action.Context) bool {
	return call(f.OnTunnelMouseUp, a, ctx)
}

func (f *Funcs) BubbleMouseUp(a ButtonArgs, ctx action.Context) bool {
	return call(f.OnBubbleMouseUp, a, ctx)
}

func (f *Funcs) TunnelMouseDown(a ButtonArgs, ctx action.Context) bool {
	return call(f.OnTunnelMouseDown, a, ctx)
}

func (f *Funcs) BubbleMouseDown(a ButtonArgs, ctx action.Context) bool {
	return call(f.OnBubbleMouseDown, a, ctx)
}
