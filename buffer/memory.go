package buffer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/style"
)

// Memory is an owned row-major cell grid
type Memory struct {
	size  geom.Size
	cells []Cell
}

// NewMemory allocates a blank grid
func NewMemory(size geom.Size) *Memory {
	m := &Memory{}
	m.Resize(size)
	return m
}

// Resize reallocates the grid and blanks every cell
func (m *Memory) Resize(size geom.Size) {
	n := int(size.Width) * int(size.Height)
	if cap(m.cells) < n {
		m.cells = make([]Cell, n)
	} else {
		m.cells = m.cells[:n]
	}
	m.size = size
	for i := range m.cells {
		m.cells[i] = Blank
	}
}

func (m *Memory) Size() geom.Size {
	return m.size
}

// Cells returns the backing row-major slice; callers must not retain it across Resize
func (m *Memory) Cells() []Cell {
	return m.cells
}

func (m *Memory) index(p geom.Position) int {
	return int(p.Y)*int(m.size.Width) + int(p.X)
}

func (m *Memory) cell(p geom.Position) (*Cell, error) {
	if !inside(m.size, p) {
		return nil, fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, p, m.size)
	}
	return &m.cells[m.index(p)], nil
}

// Cell returns a copy of the cell at p
func (m *Memory) Cell(p geom.Position) (Cell, error) {
	c, err := m.cell(p)
	if err != nil {
		return Cell{}, err
	}
	return *c, nil
}

// SetCell replaces the cell at p
func (m *Memory) SetCell(p geom.Position, c Cell) error {
	dst, err := m.cell(p)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}

func (m *Memory) Symbol(p geom.Position) (rune, error) {
	c, err := m.cell(p)
	if err != nil {
		return 0, err
	}
	return c.Rune, nil
}

func (m *Memory) Forecolor(p geom.Position) (tcell.Color, error) {
	c, err := m.cell(p)
	if err != nil {
		return tcell.ColorDefault, err
	}
	return c.Fg, nil
}

func (m *Memory) Backcolor(p geom.Position) (tcell.Color, error) {
	c, err := m.cell(p)
	if err != nil {
		return tcell.ColorDefault, err
	}
	return c.Bg, nil
}

func (m *Memory) Attribute(p geom.Position) (style.Attr, error) {
	c, err := m.cell(p)
	if err != nil {
		return style.AttrNone, err
	}
	return c.Attrs, nil
}

func (m *Memory) SetSymbol(p geom.Position, r rune) error {
	c, err := m.cell(p)
	if err != nil {
		return err
	}
	c.Rune = r
	return nil
}

func (m *Memory) SetForecolor(p geom.Position, col tcell.Color) error {
	c, err := m.cell(p)
	if err != nil {
		return err
	}
	c.Fg = col
	return nil
}

func (m *Memory) SetBackcolor(p geom.Position, col tcell.Color) error {
	c, err := m.cell(p)
	if err != nil {
		return err
	}
	c.Bg = col
	return nil
}

func (m *Memory) SetAttribute(p geom.Position, a style.Attr) error {
	c, err := m.cell(p)
	if err != nil {
		return err
	}
	c.Attrs = a
	return nil
}

// WriteSymbols writes text left to right. Wide runes take two cells, the second holding rune 0.
// Zero-width runes are dropped.
func (m *Memory) WriteSymbols(p geom.Position, text string, st style.Style) error {
	width := TextWidth(text)
	if p.Y >= m.size.Height || int(p.X)+width > int(m.size.Width) {
		return fmt.Errorf("%w: run of width %d at %v in %v", ErrOutOfBounds, width, p, m.size)
	}

	idx := m.index(p)
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c := m.cells[idx].Styled(st)
		c.Rune = r
		m.cells[idx] = c
		idx++
		if w == 2 {
			c.Rune = 0
			m.cells[idx] = c
			idx++
		}
	}
	return nil
}

// TextWidth is the number of cells WriteSymbols uses for text
func TextWidth(text string) int {
	w := 0
	for _, r := range text {
		w += runewidth.RuneWidth(r)
	}
	return w
}

// WriteBuffer copies src cell by cell; rows of a *Memory source are copied whole
func (m *Memory) WriteBuffer(p geom.Position, src ReadBuffer) error {
	ext := src.Size()
	if !fits(m.size, p, ext) {
		return fmt.Errorf("%w: %v at %v in %v", ErrOutOfBounds, ext, p, m.size)
	}

	if mem, ok := src.(*Memory); ok {
		for y := uint16(0); y < ext.Height; y++ {
			row := mem.cells[int(y)*int(ext.Width) : int(y+1)*int(ext.Width)]
			copy(m.cells[m.index(geom.Pos(p.X, p.Y+y)):], row)
		}
		return nil
	}

	for y := uint16(0); y < ext.Height; y++ {
		for x := uint16(0); x < ext.Width; x++ {
			c, err := ReadCell(src, geom.Pos(x, y))
			if err != nil {
				return err
			}
			m.cells[m.index(geom.Pos(p.X+x, p.Y+y))] = c
		}
	}
	return nil
}

// ReadCell returns the cell at p. Sources without CellReader yield a default underline color.
func ReadCell(src ReadBuffer, p geom.Position) (Cell, error) {
	if cr, ok := src.(CellReader); ok {
		return cr.Cell(p)
	}
	var c Cell
	var err error
	if c.Rune, err = src.Symbol(p); err != nil {
		return c, err
	}
	if c.Fg, err = src.Forecolor(p); err != nil {
		return c, err
	}
	if c.Bg, err = src.Backcolor(p); err != nil {
		return c, err
	}
	if c.Attrs, err = src.Attribute(p); err != nil {
		return c, err
	}
	return c, nil
}

func (m *Memory) Clear() error {
	for i := range m.cells {
		m.cells[i] = Blank
	}
	return nil
}

func (m *Memory) ClearRegion(r geom.Rect) error {
	if !fits(m.size, r.Position(), r.Size()) {
		return fmt.Errorf("%w: clear %v in %v", ErrOutOfBounds, r, m.size)
	}
	for y := r.Y; y < r.Bottom(); y++ {
		start := m.index(geom.Pos(r.X, y))
		for i := start; i < start+int(r.Width); i++ {
			m.cells[i] = Blank
		}
	}
	return nil
}

// String renders the symbols row by row, wide-rune tails omitted
func (m *Memory) String() string {
	buf := make([]rune, 0, len(m.cells)+int(m.size.Height))
	for y := 0; y < int(m.size.Height); y++ {
		for x := 0; x < int(m.size.Width); x++ {
			if r := m.cells[y*int(m.size.Width)+x].Rune; r != 0 {
				buf = append(buf, r)
			}
		}
		if y < int(m.size.Height)-1 {
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}

// Truncate returns the longest prefix of text that fits in width cells, and its width
func Truncate(text string, width int) (string, int) {
	w := 0
	for i, r := range text {
		rw := runewidth.RuneWidth(r)
		if w+rw > width {
			return text[:i], w
		}
		w += rw
	}
	return text, w
}
