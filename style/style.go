// Package style holds the opaque color and attribute values the engine stores and forwards.
//
// Colors are tcell.Color values. tcell.ColorDefault (the zero value) means "not set" and
// leaves whatever is underneath untouched; tcell.ColorReset asks the sink to use the
// terminal's own default.
package style

import "github.com/gdamore/tcell/v2"

// Style is a set of independently optional overrides
type Style struct {
	Fg        tcell.Color
	Bg        tcell.Color
	Underline tcell.Color
	// Add lists attributes switched on, Sub lists attributes switched off
	Add Attr
	Sub Attr
}

// New returns an empty style that overrides nothing
func New() Style {
	return Style{}
}

// Reset returns a style that resets colors to terminal defaults and clears all attributes
func Reset() Style {
	return Style{
		Fg:        tcell.ColorReset,
		Bg:        tcell.ColorReset,
		Underline: tcell.ColorReset,
		Sub:       ^AttrNone,
	}
}

func (s Style) WithFg(c tcell.Color) Style {
	s.Fg = c
	return s
}

func (s Style) WithBg(c tcell.Color) Style {
	s.Bg = c
	return s
}

func (s Style) WithUnderline(c tcell.Color) Style {
	s.Underline = c
	return s
}

// WithAttr switches a on, cancelling any earlier removal of the same bits
func (s Style) WithAttr(a Attr) Style {
	s.Add |= a
	s.Sub &^= a
	return s
}

// WithoutAttr switches a off, cancelling any earlier addition of the same bits
func (s Style) WithoutAttr(a Attr) Style {
	s.Sub |= a
	s.Add &^= a
	return s
}

// Patch overlays other onto s: set colors replace, attribute changes accumulate
func (s Style) Patch(other Style) Style {
	if other.Fg != tcell.ColorDefault {
		s.Fg = other.Fg
	}
	if other.Bg != tcell.ColorDefault {
		s.Bg = other.Bg
	}
	if other.Underline != tcell.ColorDefault {
		s.Underline = other.Underline
	}
	s.Add = (s.Add &^ other.Sub) | other.Add
	s.Sub = (s.Sub &^ other.Add) | other.Sub
	return s
}

// Attrs resolves the effective attribute set when applied over base
func (s Style) Attrs(base Attr) Attr {
	return (base &^ s.Sub) | s.Add
}

// IsZero reports whether the style overrides nothing
func (s Style) IsZero() bool {
	return s == Style{}
}

// TcellStyle converts to a tcell.Style over base attributes
func (s Style) TcellStyle(base Attr) tcell.Style {
	st := tcell.StyleDefault
	if s.Fg != tcell.ColorDefault {
		st = st.Foreground(s.Fg)
	}
	if s.Bg != tcell.ColorDefault {
		st = st.Background(s.Bg)
	}
	return ApplyAttrs(st, s.Attrs(base), s.Underline)
}

// ApplyAttrs sets the attribute bits of a on st. tcell has no hidden attribute,
// so AttrHidden is left to the sink.
func ApplyAttrs(st tcell.Style, a Attr, underline tcell.Color) tcell.Style {
	st = st.Bold(a&AttrBold != 0).
		Dim(a&AttrDim != 0).
		Italic(a&AttrItalic != 0).
		Blink(a&AttrBlink != 0).
		Reverse(a&AttrReverse != 0).
		StrikeThrough(a&AttrStrike != 0)
	if a&AttrUnderline != 0 {
		if underline != tcell.ColorDefault && underline != tcell.ColorReset {
			st = st.Underline(true, underline)
		} else {
			st = st.Underline(true)
		}
	}
	return st
}
