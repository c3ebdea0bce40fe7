package geom

// Margin is the amount trimmed from each edge of a Rect by Inner
type Margin struct {
	Top, Left, Right, Bottom uint16
}

// Uniform returns a margin of n on every edge
func Uniform(n uint16) Margin {
	return Margin{Top: n, Left: n, Right: n, Bottom: n}
}

// Symmetric returns a margin of h on left/right and v on top/bottom
func Symmetric(h, v uint16) Margin {
	return Margin{Top: v, Left: h, Right: h, Bottom: v}
}

// Horizontal returns Left+Right, saturating
func (m Margin) Horizontal() uint16 {
	return satAdd(m.Left, m.Right)
}

// Vertical returns Top+Bottom, saturating
func (m Margin) Vertical() uint16 {
	return satAdd(m.Top, m.Bottom)
}

// Offset is a signed translation applied by Rect.Offset
type Offset struct {
	X, Y int32
}
