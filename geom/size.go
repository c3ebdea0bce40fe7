package geom

import "fmt"

// Size is a grid extent in cells
type Size struct {
	Width, Height uint16
}

// Sz is shorthand for Size{Width: w, Height: h}
func Sz(w, h uint16) Size {
	return Size{Width: w, Height: h}
}

// Clip returns the component-wise minimum of s and other
func (s Size) Clip(other Size) Size {
	return Size{Width: min(s.Width, other.Width), Height: min(s.Height, other.Height)}
}

// IsEmpty reports whether either dimension is zero
func (s Size) IsEmpty() bool {
	return s.Width == 0 || s.Height == 0
}

// Fits reports whether s fits inside other in both dimensions
func (s Size) Fits(other Size) bool {
	return s.Width <= other.Width && s.Height <= other.Height
}

// Area returns Width*Height, saturating
func (s Size) Area() uint16 {
	return satMul(s.Width, s.Height)
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
