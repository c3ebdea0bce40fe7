package geom

import "fmt"

// Position is a cell coordinate, column X and row Y, origin top-left
type Position struct {
	X, Y uint16
}

// Pos is shorthand for Position{X: x, Y: y}
func Pos(x, y uint16) Position {
	return Position{X: x, Y: y}
}

// Add translates p by o, saturating at the coordinate maximum
func (p Position) Add(o Position) Position {
	return Position{X: satAdd(p.X, o.X), Y: satAdd(p.Y, o.Y)}
}

// Sub translates p back by o, saturating at zero
func (p Position) Sub(o Position) Position {
	return Position{X: satSub(p.X, o.X), Y: satSub(p.Y, o.Y)}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// satAdd adds without wrapping past MaxUint16
func satAdd(a, b uint16) uint16 {
	s := uint32(a) + uint32(b)
	if s > 0xFFFF {
		return 0xFFFF
	}
	return uint16(s)
}

// satSub subtracts without wrapping below zero
func satSub(a, b uint16) uint16 {
	if b > a {
		return 0
	}
	return a - b
}

// satMul multiplies without wrapping past MaxUint16
func satMul(a, b uint16) uint16 {
	m := uint32(a) * uint32(b)
	if m > 0xFFFF {
		return 0xFFFF
	}
	return uint16(m)
}
