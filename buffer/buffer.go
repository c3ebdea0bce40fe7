// Package buffer defines the cell grid contracts and the views layered over them.
//
// Memory is the owned grid. Virtual is a translating window over any WriteBuffer and
// treats out-of-window writes as programming errors. Clip passes through only the writes
// that land inside a region and is used for partial redraws.
package buffer

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/style"
)

var (
	// ErrOutOfBounds is returned when a position or extent falls outside the buffer
	ErrOutOfBounds = errors.New("buffer: out of bounds")

	// ErrWindowOverrun is the panic value class raised by Virtual on any write outside its window
	ErrWindowOverrun = errors.New("buffer: write outside virtual window")
)

// ReadBuffer exposes per-cell contents of a grid
type ReadBuffer interface {
	Size() geom.Size
	Symbol(p geom.Position) (rune, error)
	Forecolor(p geom.Position) (tcell.Color, error)
	Backcolor(p geom.Position) (tcell.Color, error)
	Attribute(p geom.Position) (style.Attr, error)
}

// WriteBuffer accepts per-cell and run writes into a grid of Size()
type WriteBuffer interface {
	Size() geom.Size
	SetSymbol(p geom.Position, r rune) error
	SetForecolor(p geom.Position, c tcell.Color) error
	SetBackcolor(p geom.Position, c tcell.Color) error
	SetAttribute(p geom.Position, a style.Attr) error
	// WriteSymbols writes text as one horizontal run starting at p.
	// The whole run must fit in the row.
	WriteSymbols(p geom.Position, text string, st style.Style) error
	// WriteBuffer blits the full extent of src with its top-left at p
	WriteBuffer(p geom.Position, src ReadBuffer) error
	Clear() error
	ClearRegion(r geom.Rect) error
}

// CellReader is implemented by grids that can return a whole cell, underline color included
type CellReader interface {
	Cell(p geom.Position) (Cell, error)
}

// CellWriter is implemented by grids that can replace a whole cell
type CellWriter interface {
	SetCell(p geom.Position, c Cell) error
}

// Buffer is a grid that can be both read and written
type Buffer interface {
	ReadBuffer
	WriteBuffer
}

// inside reports whether p addresses a cell of s
func inside(s geom.Size, p geom.Position) bool {
	return p.X < s.Width && p.Y < s.Height
}

// fits reports whether an extent placed at p stays within s
func fits(s geom.Size, p geom.Position, ext geom.Size) bool {
	return uint32(p.X)+uint32(ext.Width) <= uint32(s.Width) &&
		uint32(p.Y)+uint32(ext.Height) <= uint32(s.Height)
}

// WriteCell stores c at p, through SetCell when dst has it. Otherwise the
// underline color is lost.
func WriteCell(dst WriteBuffer, p geom.Position, c Cell) error {
	if cw, ok := dst.(CellWriter); ok {
		return cw.SetCell(p, c)
	}
	if err := dst.SetSymbol(p, c.Rune); err != nil {
		return err
	}
	if err := dst.SetForecolor(p, c.Fg); err != nil {
		return err
	}
	if err := dst.SetBackcolor(p, c.Bg); err != nil {
		return err
	}
	return dst.SetAttribute(p, c.Attrs)
}
