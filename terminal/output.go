// @lixen: #focus{sys[term,io,output]}
// @lixen: #interact{trigger[output,ansi]}
package terminal

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/style"
)

// invalidCell never matches a real cell, forcing a write on next flush
var invalidCell = buffer.Cell{Rune: -1}

// outputBuffer manages double-buffered terminal output with diffing
type outputBuffer struct {
	front     []buffer.Cell
	width     int
	height    int
	colorMode ColorMode
	writer    *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	last      buffer.Cell
	lastValid bool
}

// newOutputBuffer creates a new output buffer
func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	return &outputBuffer{
		writer:    bufio.NewWriterSize(w, 131072), // 128KB buffer
		colorMode: colorMode,
	}
}

// resize updates buffer dimensions and invalidates the front buffer
func (o *outputBuffer) resize(width, height int) {
	size := width * height
	if cap(o.front) < size {
		o.front = make([]buffer.Cell, size)
	} else {
		o.front = o.front[:size]
	}
	o.width = width
	o.height = height
	o.forceFullRedraw()
}

// sameStyle compares the style portion of two cells
func sameStyle(a, b buffer.Cell) bool {
	return a.Fg == b.Fg && a.Bg == b.Bg && a.Underline == b.Underline && a.Attrs == b.Attrs
}

// flush writes the back buffer to terminal, diffing against front buffer
func (o *outputBuffer) flush(cells []buffer.Cell, width, height int) error {
	if width != o.width || height != o.height {
		o.resize(width, height)
	}
	if len(cells) < width*height {
		return nil
	}

	w := o.writer

	for y := 0; y < height; y++ {
		rowStart := y * width
		x := 0

		for x < width {
			idx := rowStart + x
			if cells[idx] == o.front[idx] {
				x++
				continue
			}

			// Position cursor once for this dirty region
			if !o.cursorValid || x != o.cursorX || y != o.cursorY {
				if o.cursorValid && y == o.cursorY && x > o.cursorX {
					writeCursorForward(w, x-o.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				o.cursorX = x
				o.cursorY = y
				o.cursorValid = true
			}

			// Write all contiguous dirty cells, emitting style only when changed
			for x < width {
				cidx := rowStart + x
				c := cells[cidx]
				if c == o.front[cidx] {
					break
				}

				o.writeStyle(w, c)

				r := c.Rune
				cw := 1
				switch {
				case r == 0 || r == invalidCell.Rune:
					// Orphan continuation cell
					r = ' '
				case r >= 0x80:
					cw = runewidth.RuneWidth(r)
				}

				if cw == 2 && x+1 < width {
					if r < 0x80 {
						w.WriteByte(byte(r))
					} else {
						w.WriteRune(r)
					}
					// The terminal advanced over the continuation cell
					o.front[cidx] = c
					o.front[cidx+1] = cells[cidx+1]
					o.cursorX += 2
					x += 2
					continue
				}
				if cw != 1 {
					r = ' '
				}

				if r < utf8.RuneSelf {
					w.WriteByte(byte(r))
				} else {
					w.WriteRune(r)
				}
				o.front[cidx] = c
				o.cursorX++
				x++
			}
		}
	}

	w.Write(csiSGR0)
	o.lastValid = false

	return w.Flush()
}

// writeStyle emits a single combined SGR sequence when style changes
func (o *outputBuffer) writeStyle(w *bufio.Writer, c buffer.Cell) {
	if o.lastValid && sameStyle(c, o.last) {
		return
	}

	attrChanged := !o.lastValid || c.Attrs != o.last.Attrs

	w.Write(csi)
	if attrChanged {
		// Attributes can only be cleared by a reset, which also drops colors
		w.WriteByte('0')
		writeAttrs(w, c.Attrs)
		o.writeColor(w, 38, c.Fg)
		o.writeColor(w, 48, c.Bg)
		if c.Underline != tcell.ColorDefault {
			o.writeColor(w, 58, c.Underline)
		}
	} else {
		// Only colors changed, emit minimal sequence
		first := true
		emit := func(base int, col tcell.Color) {
			if first {
				first = false
				o.writeColorParams(w, base, col)
				return
			}
			o.writeColor(w, base, col)
		}
		if c.Fg != o.last.Fg {
			emit(38, c.Fg)
		}
		if c.Bg != o.last.Bg {
			emit(48, c.Bg)
		}
		if c.Underline != o.last.Underline {
			emit(58, c.Underline)
		}
	}
	w.WriteByte('m')

	o.last = c
	o.lastValid = true
}

var attrSGR = [...]struct {
	attr style.Attr
	code byte
}{
	{style.AttrBold, '1'},
	{style.AttrDim, '2'},
	{style.AttrItalic, '3'},
	{style.AttrUnderline, '4'},
	{style.AttrBlink, '5'},
	{style.AttrReverse, '7'},
	{style.AttrHidden, '8'},
	{style.AttrStrike, '9'},
}

// writeAttrs writes ;N for each set attribute
func writeAttrs(w *bufio.Writer, a style.Attr) {
	for _, s := range attrSGR {
		if a.Has(s.attr) {
			w.WriteByte(';')
			w.WriteByte(s.code)
		}
	}
}

// writeColor writes ;<params> for one color slot (base 38 fg, 48 bg, 58 underline)
func (o *outputBuffer) writeColor(w *bufio.Writer, base int, c tcell.Color) {
	w.WriteByte(';')
	o.writeColorParams(w, base, c)
}

// writeColorParams writes color parameters with no leading separator
func (o *outputBuffer) writeColorParams(w *bufio.Writer, base int, c tcell.Color) {
	kind, v := classify(c)
	switch kind {
	case colorDefault:
		// 39, 49, 59
		writeInt(w, base+1)
	case colorPalette:
		writeInt(w, base)
		w.Write(sgrPalette)
		writeInt(w, int(v))
	case colorRGB:
		r, g, b := uint8(v>>16), uint8(v>>8), uint8(v)
		writeInt(w, base)
		if o.colorMode == ColorModeTrueColor {
			w.Write(sgrRGB)
			writeInt(w, int(r))
			w.WriteByte(';')
			writeInt(w, int(g))
			w.WriteByte(';')
			writeInt(w, int(b))
		} else {
			w.Write(sgrPalette)
			writeInt(w, int(RGBTo256(r, g, b)))
		}
	}
}

// forceFullRedraw clears front buffer to force complete redraw
func (o *outputBuffer) forceFullRedraw() {
	for i := range o.front {
		o.front[i] = invalidCell
	}
	o.lastValid = false
	o.cursorValid = false
}

// clear writes a clear screen and marks the front buffer blank
func (o *outputBuffer) clear() error {
	w := o.writer
	w.Write(csiSGR0)
	w.Write(csiClear)

	o.lastValid = false
	o.cursorValid = false

	for i := range o.front {
		o.front[i] = buffer.Blank
	}
	return w.Flush()
}

// invalidateCursor marks cursor position as unknown
func (o *outputBuffer) invalidateCursor() {
	o.cursorValid = false
}
