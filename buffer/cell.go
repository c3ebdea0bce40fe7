package buffer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termvis/style"
)

// Cell is one grid position. Rune 0 marks the trailing half of a wide rune.
type Cell struct {
	Rune      rune
	Fg        tcell.Color
	Bg        tcell.Color
	Underline tcell.Color
	Attrs     style.Attr
}

// Blank is the cleared cell
var Blank = Cell{Rune: ' '}

// Styled returns c with st overlaid
func (c Cell) Styled(st style.Style) Cell {
	if st.Fg != tcell.ColorDefault {
		c.Fg = st.Fg
	}
	if st.Bg != tcell.ColorDefault {
		c.Bg = st.Bg
	}
	if st.Underline != tcell.ColorDefault {
		c.Underline = st.Underline
	}
	c.Attrs = st.Attrs(c.Attrs)
	return c
}

// TcellStyle converts the cell's colors and attributes
func (c Cell) TcellStyle() tcell.Style {
	st := tcell.StyleDefault.Foreground(c.Fg).Background(c.Bg)
	return style.ApplyAttrs(st, c.Attrs, c.Underline)
}
