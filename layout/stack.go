package layout

import (
	"fmt"

	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
)

// VStack stacks children top to bottom at full available width
type VStack struct{}

func (VStack) Measure(children Children, constraints geom.Size) geom.Size {
	return measureStack(children, constraints, vertical)
}

func (VStack) Draw(children Children, buf buffer.WriteBuffer, available geom.Size) (Arrangement, error) {
	return drawStack(children, buf, available, vertical)
}

// HStack stacks children left to right at full available height
type HStack struct{}

func (HStack) Measure(children Children, constraints geom.Size) geom.Size {
	return measureStack(children, constraints, horizontal)
}

func (HStack) Draw(children Children, buf buffer.WriteBuffer, available geom.Size) (Arrangement, error) {
	return drawStack(children, buf, available, horizontal)
}

// axis maps between (main, cross) extents and geom types
type axis bool

const (
	vertical   axis = true
	horizontal axis = false
)

func (a axis) split(s geom.Size) (main, cross uint16) {
	if a == vertical {
		return s.Height, s.Width
	}
	return s.Width, s.Height
}

func (a axis) size(main, cross uint16) geom.Size {
	if a == vertical {
		return geom.Size{Width: cross, Height: main}
	}
	return geom.Size{Width: main, Height: cross}
}

func (a axis) rect(offset uint16, s geom.Size) geom.Rect {
	if a == vertical {
		return geom.Rect{X: 0, Y: offset, Width: s.Width, Height: s.Height}
	}
	return geom.Rect{X: offset, Y: 0, Width: s.Width, Height: s.Height}
}

func (a axis) String() string {
	if a == vertical {
		return "vstack"
	}
	return "hstack"
}

// measureStack sums main extents and takes the widest cross extent.
// Each child is measured against what is left on the main axis.
func measureStack(children Children, constraints geom.Size, ax axis) geom.Size {
	limit, crossLimit := ax.split(constraints)
	var used, cross uint16
	for i := 0; i < children.Len(); i++ {
		if used >= limit {
			break
		}
		band := ax.size(limit-used, crossLimit)
		m, c := ax.split(children.At(i).Measure(band).Clip(band))
		used += m
		cross = max(cross, c)
		if cross >= crossLimit && used >= limit {
			break
		}
	}
	return ax.size(used, cross)
}

// drawStack gives each child the remaining band and records what it used
func drawStack(children Children, buf buffer.WriteBuffer, available geom.Size, ax axis) (Arrangement, error) {
	limit, crossLimit := ax.split(available)
	rects := make([]geom.Rect, 0, children.Len())
	var used, cross uint16

	for i := 0; i < children.Len() && used < limit; i++ {
		band := ax.size(limit-used, crossLimit)
		view := buffer.NewVirtual(buf, ax.rect(used, band))

		got, err := children.At(i).Draw(view, band)
		if err != nil {
			return Arrangement{}, fmt.Errorf("%s child %d: %w", ax, i, err)
		}
		if !got.Fits(band) {
			panic(fmt.Errorf("%w: %s child %d used %v of %v", ErrOverrun, ax, i, got, band))
		}

		rects = append(rects, ax.rect(used, got))
		m, c := ax.split(got)
		used += m
		cross = max(cross, c)
	}
	return NewArrangement(ax.size(used, cross), rects), nil
}
