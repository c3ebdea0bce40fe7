package layout

import (
	"fmt"

	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
)

// Fill gives every child the full available area, painting later children over earlier ones
type Fill struct{}

func (Fill) Measure(children Children, constraints geom.Size) geom.Size {
	var out geom.Size
	for i := 0; i < children.Len(); i++ {
		s := children.At(i).Measure(constraints).Clip(constraints)
		out = geom.Sz(max(out.Width, s.Width), max(out.Height, s.Height))
	}
	return out
}

func (Fill) Draw(children Children, buf buffer.WriteBuffer, available geom.Size) (Arrangement, error) {
	return drawInset(children, buf, available, geom.Margin{})
}

// Padding is Fill inside a margin
type Padding struct {
	Margin geom.Margin
}

func (p Padding) Measure(children Children, constraints geom.Size) geom.Size {
	inner := geom.Rect{Width: constraints.Width, Height: constraints.Height}.Inner(p.Margin)
	if inner.IsEmpty() {
		return geom.Size{}
	}
	s := Fill{}.Measure(children, inner.Size())
	return geom.Sz(s.Width+p.Margin.Horizontal(), s.Height+p.Margin.Vertical())
}

func (p Padding) Draw(children Children, buf buffer.WriteBuffer, available geom.Size) (Arrangement, error) {
	return drawInset(children, buf, available, p.Margin)
}

func drawInset(children Children, buf buffer.WriteBuffer, available geom.Size, m geom.Margin) (Arrangement, error) {
	area := geom.Rect{Width: available.Width, Height: available.Height}.Inner(m)
	if area.IsEmpty() {
		return NewArrangement(geom.Size{}, nil), nil
	}

	rects := make([]geom.Rect, 0, children.Len())
	var w, h uint16
	for i := 0; i < children.Len(); i++ {
		got, err := children.At(i).Draw(buffer.NewVirtual(buf, area), area.Size())
		if err != nil {
			return Arrangement{}, fmt.Errorf("fill child %d: %w", i, err)
		}
		if !got.Fits(area.Size()) {
			panic(fmt.Errorf("%w: fill child %d used %v of %v", ErrOverrun, i, got, area.Size()))
		}
		rects = append(rects, geom.Rect{X: area.X, Y: area.Y, Width: got.Width, Height: got.Height})
		w = max(w, got.Width)
		h = max(h, got.Height)
	}
	if len(rects) == 0 {
		return NewArrangement(geom.Size{}, rects), nil
	}
	return NewArrangement(geom.Sz(w+m.Horizontal(), h+m.Vertical()), rects), nil
}
