package layout

import "github.com/lixenwraith/termvis/geom"

// Arrangement is the geometry produced by one draw pass.
// Rect i belongs to child i; children the pass never reached have no rect.
type Arrangement struct {
	size  geom.Size
	rects []geom.Rect
}

// NewArrangement builds an arrangement from a total size and per-child rects
func NewArrangement(size geom.Size, rects []geom.Rect) Arrangement {
	return Arrangement{size: size, rects: rects}
}

// Size returns the total consumed extent
func (a Arrangement) Size() geom.Size {
	return a.size
}

// Len returns the number of placed children
func (a Arrangement) Len() int {
	return len(a.rects)
}

// Rect returns the rect of child i, false if it was not placed
func (a Arrangement) Rect(i int) (geom.Rect, bool) {
	if i < 0 || i >= len(a.rects) {
		return geom.Rect{}, false
	}
	return a.rects[i], true
}

// ChildSize returns the size child i consumed
func (a Arrangement) ChildSize(i int) (geom.Size, bool) {
	r, ok := a.Rect(i)
	return r.Size(), ok
}

// Rects returns a copy of all placed rects
func (a Arrangement) Rects() []geom.Rect {
	out := make([]geom.Rect, len(a.rects))
	copy(out, a.rects)
	return out
}

// HitTest returns the first child, in paint order, whose rect contains p
func (a Arrangement) HitTest(p geom.Position) (int, bool) {
	for i, r := range a.rects {
		if r.Contains(p) {
			return i, true
		}
	}
	return -1, false
}
