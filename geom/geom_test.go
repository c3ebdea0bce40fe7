package geom

import (
	"math"
	"testing"
)

func TestSizeClip(t *testing.T) {
	sizes := []Size{{0, 0}, {1, 5}, {80, 24}, {100, 30}, {math.MaxUint16, 3}, {7, math.MaxUint16}}
	for _, a := range sizes {
		for _, b := range sizes {
			c := a.Clip(b)
			if c.Width > min(a.Width, b.Width) || c.Height > min(a.Height, b.Height) {
				t.Errorf("Clip(%v, %v) = %v exceeds component-wise minimum", a, b, c)
			}
			if c != b.Clip(a) {
				t.Errorf("Clip not symmetric for %v, %v", a, b)
			}
		}
	}
}

func TestNewRectClipsArea(t *testing.T) {
	r := NewRect(0, 0, 1000, 1000)
	if uint32(r.Width)*uint32(r.Height) > math.MaxUint16 {
		t.Fatalf("Expected area within uint16, got %dx%d", r.Width, r.Height)
	}
	if r.Width != r.Height {
		t.Errorf("Expected square aspect preserved, got %dx%d", r.Width, r.Height)
	}

	small := NewRect(3, 4, 10, 20)
	if small != (Rect{3, 4, 10, 20}) {
		t.Errorf("Expected small rect untouched, got %v", small)
	}
}

func TestRectEdgesSaturate(t *testing.T) {
	r := Rect{X: math.MaxUint16 - 2, Y: 10, Width: 10, Height: 5}
	if r.Right() != math.MaxUint16 {
		t.Errorf("Expected Right to saturate, got %d", r.Right())
	}
	if r.Bottom() != 15 {
		t.Errorf("Expected Bottom 15, got %d", r.Bottom())
	}
	if (Rect{Width: 300, Height: 300}).Area() != math.MaxUint16 {
		t.Error("Expected Area to saturate")
	}
}

func TestRectInner(t *testing.T) {
	r := Rect{X: 2, Y: 2, Width: 10, Height: 6}
	got := r.Inner(Margin{Top: 1, Left: 2, Right: 3, Bottom: 1})
	want := Rect{X: 4, Y: 3, Width: 5, Height: 4}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if !r.Inner(Uniform(4)).IsEmpty() {
		t.Error("Expected empty rect when margin exceeds extent")
	}
}

func TestRectOffset(t *testing.T) {
	r := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	tests := []struct {
		off  Offset
		want Position
	}{
		{Offset{3, -2}, Position{8, 3}},
		{Offset{-100, -100}, Position{0, 0}},
		{Offset{math.MaxInt32, math.MaxInt32}, Position{math.MaxUint16 - 10, math.MaxUint16 - 10}},
	}
	for _, tt := range tests {
		got := r.Offset(tt.off)
		if got.Position() != tt.want || got.Size() != r.Size() {
			t.Errorf("Offset(%v): expected %v with size kept, got %v", tt.off, tt.want, got)
		}
	}
}

func TestRectUnionIntersection(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 4, Height: 4}
	b := Rect{X: 2, Y: 2, Width: 4, Height: 4}
	c := Rect{X: 10, Y: 10, Width: 1, Height: 1}

	if u := a.Union(b); u != (Rect{0, 0, 6, 6}) {
		t.Errorf("Union: got %v", u)
	}
	if i := a.Intersection(b); i != (Rect{2, 2, 2, 2}) {
		t.Errorf("Intersection: got %v", i)
	}
	if !a.Intersects(b) {
		t.Error("Expected a and b to intersect")
	}
	if a.Intersects(c) || !a.Intersection(c).IsEmpty() {
		t.Error("Expected a and c disjoint")
	}
	// Touching edges share no cell
	if a.Intersects(Rect{X: 4, Y: 0, Width: 2, Height: 2}) {
		t.Error("Expected edge-adjacent rects not to intersect")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 1, Y: 1, Width: 2, Height: 2}
	in := []Position{{1, 1}, {2, 2}, {1, 2}}
	out := []Position{{0, 0}, {3, 1}, {1, 3}}
	for _, p := range in {
		if !r.Contains(p) {
			t.Errorf("Expected %v inside %v", p, r)
		}
	}
	for _, p := range out {
		if r.Contains(p) {
			t.Errorf("Expected %v outside %v", p, r)
		}
	}
}

func TestRectClampNeverLarger(t *testing.T) {
	container := Rect{X: 10, Y: 10, Width: 20, Height: 8}
	rects := []Rect{
		{0, 0, 5, 5},
		{25, 15, 10, 10},
		{12, 12, 100, 100},
		{15, 12, 3, 2},
	}
	for _, r := range rects {
		c := r.Clamp(container)
		if c.Width > container.Width || c.Height > container.Height {
			t.Errorf("Clamp(%v) = %v larger than container", r, c)
		}
		if c.X < container.X || c.Right() > container.Right() || c.Y < container.Y || c.Bottom() > container.Bottom() {
			t.Errorf("Clamp(%v) = %v escapes container %v", r, c, container)
		}
	}
	// Already inside: unchanged
	if got := rects[3].Clamp(container); got != rects[3] {
		t.Errorf("Expected inside rect unchanged, got %v", got)
	}
}

func TestPositionArithmetic(t *testing.T) {
	if p := Pos(math.MaxUint16-1, 3).Add(Pos(5, 4)); p != Pos(math.MaxUint16, 7) {
		t.Errorf("Add: got %v", p)
	}
	if p := Pos(2, 10).Sub(Pos(5, 4)); p != Pos(0, 6) {
		t.Errorf("Sub: got %v", p)
	}
}
