// Package layout places drawables inside the space a parent was given.
//
// A Layout measures a child list against constraints and draws it, handing every child
// a buffer.Virtual scoped to the band it may use. The result is an Arrangement that
// remembers where each child landed, for later hit-testing.
package layout

import (
	"errors"

	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
)

// ErrOverrun is the panic value class for a child that reports more space than it was given
var ErrOverrun = errors.New("layout: child exceeded its allotted size")

// Drawable is anything a Layout can measure and draw
type Drawable interface {
	// Measure returns the desired size under constraints without side effects
	Measure(constraints geom.Size) geom.Size
	// Draw renders into buf and returns the size actually used, never more than available
	Draw(buf buffer.WriteBuffer, available geom.Size) (geom.Size, error)
}

// Children is an index-addressed child sequence in paint order
type Children interface {
	Len() int
	At(i int) Drawable
}

// Slice adapts a slice of drawables to Children
type Slice[T Drawable] []T

func (s Slice[T]) Len() int          { return len(s) }
func (s Slice[T]) At(i int) Drawable { return s[i] }

// Layout is a placement strategy for a child sequence
type Layout interface {
	Measure(children Children, constraints geom.Size) geom.Size
	Draw(children Children, buf buffer.WriteBuffer, available geom.Size) (Arrangement, error)
}
