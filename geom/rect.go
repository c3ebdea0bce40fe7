package geom

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned cell rectangle
type Rect struct {
	X, Y          uint16
	Width, Height uint16
}

// NewRect builds a Rect whose area fits in uint16.
// Oversized extents are shrunk keeping the width/height ratio.
func NewRect(x, y, width, height uint16) Rect {
	w, h := width, height
	if uint32(w)*uint32(h) > math.MaxUint16 {
		aspect := float64(w) / float64(h)
		hf := math.Sqrt(float64(math.MaxUint16) / aspect)
		wf := hf * aspect
		w = uint16(wf)
		h = uint16(hf)
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// NewRectFromSize returns a Rect at the origin with the given extent
func NewRectFromSize(s Size) Rect {
	return NewRect(0, 0, s.Width, s.Height)
}

// RectAt returns a Rect at p with extent s
func RectAt(p Position, s Size) Rect {
	return NewRect(p.X, p.Y, s.Width, s.Height)
}

// Area returns Width*Height, saturating
func (r Rect) Area() uint16 {
	return satMul(r.Width, r.Height)
}

// IsEmpty reports whether the rect covers no cells
func (r Rect) IsEmpty() bool {
	return r.Width == 0 || r.Height == 0
}

func (r Rect) Left() uint16   { return r.X }
func (r Rect) Top() uint16    { return r.Y }
func (r Rect) Right() uint16  { return satAdd(r.X, r.Width) }
func (r Rect) Bottom() uint16 { return satAdd(r.Y, r.Height) }

// Position returns the top-left corner
func (r Rect) Position() Position {
	return Position{X: r.X, Y: r.Y}
}

// Size returns the extent
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Inner shrinks r by m; the result is empty when m exceeds the extent
func (r Rect) Inner(m Margin) Rect {
	if r.Width < m.Horizontal() || r.Height < m.Vertical() {
		return Rect{}
	}
	return Rect{
		X:      satAdd(r.X, m.Left),
		Y:      satAdd(r.Y, m.Top),
		Width:  r.Width - m.Horizontal(),
		Height: r.Height - m.Vertical(),
	}
}

// Offset translates r, keeping it within [0, MaxUint16-extent] on each axis
func (r Rect) Offset(o Offset) Rect {
	return Rect{
		X:      clampAxis(int64(r.X)+int64(o.X), r.Width),
		Y:      clampAxis(int64(r.Y)+int64(o.Y), r.Height),
		Width:  r.Width,
		Height: r.Height,
	}
}

func clampAxis(v int64, extent uint16) uint16 {
	hi := int64(math.MaxUint16) - int64(extent)
	if v < 0 {
		return 0
	}
	if v > hi {
		return uint16(hi)
	}
	return uint16(v)
}

// Union returns the smallest rect containing both r and other
func (r Rect) Union(other Rect) Rect {
	x1 := min(r.X, other.X)
	y1 := min(r.Y, other.Y)
	x2 := max(r.Right(), other.Right())
	y2 := max(r.Bottom(), other.Bottom())
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Intersection returns the overlap of r and other, empty if disjoint
func (r Rect) Intersection(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())
	if x2 < x1 || y2 < y1 {
		return Rect{X: x1, Y: y1}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Intersects reports whether r and other overlap in at least one cell
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Clamp moves r inside container, shrinking only when r is larger than it
func (r Rect) Clamp(container Rect) Rect {
	w := min(r.Width, container.Width)
	h := min(r.Height, container.Height)
	x := clampRange(r.X, container.X, satSub(container.Right(), w))
	y := clampRange(r.Y, container.Y, satSub(container.Bottom(), h))
	return Rect{X: x, Y: y, Width: w, Height: h}
}

func clampRange(v, lo, hi uint16) uint16 {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}
