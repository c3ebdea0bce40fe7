package buffer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/style"
)

// Clip forwards writes to outer unchanged, dropping any cell outside region.
// Coordinates are not translated.
type Clip struct {
	outer  WriteBuffer
	region geom.Rect
}

// NewClip returns a view of outer that only touches region
func NewClip(outer WriteBuffer, region geom.Rect) *Clip {
	size := outer.Size()
	return &Clip{outer: outer, region: region.Intersection(geom.Rect{Width: size.Width, Height: size.Height})}
}

// Region returns the effective region, already intersected with the outer extent
func (c *Clip) Region() geom.Rect {
	return c.region
}

func (c *Clip) Size() geom.Size {
	return c.outer.Size()
}

func (c *Clip) SetSymbol(p geom.Position, r rune) error {
	if !c.region.Contains(p) {
		return nil
	}
	return c.outer.SetSymbol(p, r)
}

func (c *Clip) SetForecolor(p geom.Position, col tcell.Color) error {
	if !c.region.Contains(p) {
		return nil
	}
	return c.outer.SetForecolor(p, col)
}

func (c *Clip) SetBackcolor(p geom.Position, col tcell.Color) error {
	if !c.region.Contains(p) {
		return nil
	}
	return c.outer.SetBackcolor(p, col)
}

func (c *Clip) SetAttribute(p geom.Position, a style.Attr) error {
	if !c.region.Contains(p) {
		return nil
	}
	return c.outer.SetAttribute(p, a)
}

// WriteSymbols keeps the row-fit contract of outer and forwards only the runes inside region
func (c *Clip) WriteSymbols(p geom.Position, text string, st style.Style) error {
	size := c.outer.Size()
	if p.Y >= size.Height || int(p.X)+TextWidth(text) > int(size.Width) {
		return c.outer.WriteSymbols(p, text, st)
	}
	if p.Y < c.region.Y || p.Y >= c.region.Bottom() {
		return nil
	}

	x := p.X
	for _, r := range text {
		w := uint16(TextWidth(string(r)))
		if w == 0 {
			continue
		}
		if x >= c.region.X && x+w <= c.region.Right() {
			if err := c.outer.WriteSymbols(geom.Pos(x, p.Y), string(r), st); err != nil {
				return err
			}
		}
		x += w
	}
	return nil
}

func (c *Clip) WriteBuffer(p geom.Position, src ReadBuffer) error {
	ext := src.Size()
	if !fits(c.outer.Size(), p, ext) {
		return c.outer.WriteBuffer(p, src)
	}
	for y := uint16(0); y < ext.Height; y++ {
		for x := uint16(0); x < ext.Width; x++ {
			dst := geom.Pos(p.X+x, p.Y+y)
			if !c.region.Contains(dst) {
				continue
			}
			cell, err := ReadCell(src, geom.Pos(x, y))
			if err != nil {
				return err
			}
			if err := WriteCell(c.outer, dst, cell); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetCell replaces the whole cell inside region
func (c *Clip) SetCell(p geom.Position, cell Cell) error {
	if !c.region.Contains(p) {
		return nil
	}
	return WriteCell(c.outer, p, cell)
}

// Clear clears only the region
func (c *Clip) Clear() error {
	if c.region.IsEmpty() {
		return nil
	}
	return c.outer.ClearRegion(c.region)
}

func (c *Clip) ClearRegion(r geom.Rect) error {
	if !fits(c.outer.Size(), r.Position(), r.Size()) {
		return c.outer.ClearRegion(r)
	}
	in := r.Intersection(c.region)
	if in.IsEmpty() {
		return nil
	}
	return c.outer.ClearRegion(in)
}
