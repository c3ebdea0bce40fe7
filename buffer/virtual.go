package buffer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/style"
)

// Virtual is a view of outer restricted to window. Callers address it in window-local
// coordinates; every write is checked against the window size and then shifted by the
// window origin. A write that does not fit panics with an error wrapping ErrWindowOverrun.
//
// A Virtual owns no cells. Only one view should be writing a given region at a time.
type Virtual struct {
	outer  WriteBuffer
	window geom.Rect
}

// NewVirtual returns a view of outer through window
func NewVirtual(outer WriteBuffer, window geom.Rect) *Virtual {
	return &Virtual{outer: outer, window: window}
}

// Window returns the window in outer coordinates
func (v *Virtual) Window() geom.Rect {
	return v.window
}

// Size returns the window extent
func (v *Virtual) Size() geom.Size {
	return v.window.Size()
}

func (v *Virtual) overrun(op string, p geom.Position, ext geom.Size) {
	panic(fmt.Errorf("%w: %s %v at %v, window %v", ErrWindowOverrun, op, ext, p, v.window))
}

func (v *Virtual) checkCell(op string, p geom.Position) {
	if !inside(v.window.Size(), p) {
		v.overrun(op, p, geom.Sz(1, 1))
	}
}

func (v *Virtual) translate(p geom.Position) geom.Position {
	return p.Add(v.window.Position())
}

func (v *Virtual) SetSymbol(p geom.Position, r rune) error {
	v.checkCell("symbol", p)
	return v.outer.SetSymbol(v.translate(p), r)
}

func (v *Virtual) SetForecolor(p geom.Position, c tcell.Color) error {
	v.checkCell("forecolor", p)
	return v.outer.SetForecolor(v.translate(p), c)
}

func (v *Virtual) SetBackcolor(p geom.Position, c tcell.Color) error {
	v.checkCell("backcolor", p)
	return v.outer.SetBackcolor(v.translate(p), c)
}

func (v *Virtual) SetAttribute(p geom.Position, a style.Attr) error {
	v.checkCell("attribute", p)
	return v.outer.SetAttribute(v.translate(p), a)
}

// SetCell replaces the whole cell when outer supports it
func (v *Virtual) SetCell(p geom.Position, c Cell) error {
	v.checkCell("cell", p)
	return WriteCell(v.outer, v.translate(p), c)
}

func (v *Virtual) WriteSymbols(p geom.Position, text string, st style.Style) error {
	ext := geom.Sz(uint16(min(TextWidth(text), 0xFFFF)), 1)
	if !fits(v.window.Size(), p, ext) {
		v.overrun("symbols", p, ext)
	}
	return v.outer.WriteSymbols(v.translate(p), text, st)
}

func (v *Virtual) WriteBuffer(p geom.Position, src ReadBuffer) error {
	if ext := src.Size(); !fits(v.window.Size(), p, ext) {
		v.overrun("buffer", p, ext)
	}
	return v.outer.WriteBuffer(v.translate(p), src)
}

// Clear clears the whole window in outer
func (v *Virtual) Clear() error {
	return v.outer.ClearRegion(v.window)
}

func (v *Virtual) ClearRegion(r geom.Rect) error {
	if !fits(v.window.Size(), r.Position(), r.Size()) {
		v.overrun("clear", r.Position(), r.Size())
	}
	p := v.translate(r.Position())
	return v.outer.ClearRegion(geom.Rect{X: p.X, Y: p.Y, Width: r.Width, Height: r.Height})
}
