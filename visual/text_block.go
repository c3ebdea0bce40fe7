package visual

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
	"github.com/lixenwraith/termvis/style"
)

// TextBlock draws one line of styled text, truncated to the available width.
// It handles no input.
type TextBlock struct {
	input.NopReceiver
	text  string
	style style.Style
}

func NewTextBlock(text string) *TextBlock {
	return &TextBlock{text: text}
}

func (b *TextBlock) Text() string           { return b.text }
func (b *TextBlock) SetText(text string)    { b.text = text }
func (b *TextBlock) Style() style.Style     { return b.style }
func (b *TextBlock) SetStyle(s style.Style) { b.style = s }

func (b *TextBlock) WithStyle(s style.Style) *TextBlock {
	b.style = s
	return b
}

func (b *TextBlock) WithFg(c tcell.Color) *TextBlock {
	b.style = b.style.WithFg(c)
	return b
}

func (b *TextBlock) WithBg(c tcell.Color) *TextBlock {
	b.style = b.style.WithBg(c)
	return b
}

func (b *TextBlock) WithAttr(a style.Attr) *TextBlock {
	b.style = b.style.WithAttr(a)
	return b
}

// Measure is one row of min(text width, constraint width); nothing fits in an empty constraint
func (b *TextBlock) Measure(constraints geom.Size) geom.Size {
	if constraints.IsEmpty() {
		return geom.Size{}
	}
	_, w := buffer.Truncate(b.text, int(constraints.Width))
	return geom.Sz(uint16(w), 1)
}

func (b *TextBlock) Draw(buf buffer.WriteBuffer, available geom.Size) (geom.Size, error) {
	if available.IsEmpty() {
		return geom.Size{}, nil
	}
	text, w := buffer.Truncate(b.text, int(available.Width))
	if w > 0 {
		if err := buf.WriteSymbols(geom.Position{}, text, b.style); err != nil {
			return geom.Size{}, err
		}
	}
	return geom.Sz(uint16(w), 1), nil
}
