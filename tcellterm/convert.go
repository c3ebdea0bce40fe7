package tcellterm

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
	"github.com/lixenwraith/termvis/style"
)

var keyMap = map[tcell.Key]input.Key{
	tcell.KeyEnter:     input.KeyEnter,
	tcell.KeyTab:       input.KeyTab,
	tcell.KeyBacktab:   input.KeyBacktab,
	tcell.KeyBackspace: input.KeyBackspace,
	tcell.KeyEscape:    input.KeyEscape,
	tcell.KeyDelete:    input.KeyDelete,
	tcell.KeyInsert:    input.KeyInsert,
	tcell.KeyUp:        input.KeyUp,
	tcell.KeyDown:      input.KeyDown,
	tcell.KeyLeft:      input.KeyLeft,
	tcell.KeyRight:     input.KeyRight,
	tcell.KeyHome:      input.KeyHome,
	tcell.KeyEnd:       input.KeyEnd,
	tcell.KeyPgUp:      input.KeyPageUp,
	tcell.KeyPgDn:      input.KeyPageDown,

	tcell.KeyCtrlSpace:      input.KeyCtrlSpace,
	tcell.KeyCtrlBackslash:  input.KeyCtrlBackslash,
	tcell.KeyCtrlRightSq:    input.KeyCtrlBracketRight,
	tcell.KeyCtrlCarat:      input.KeyCtrlCaret,
	tcell.KeyCtrlUnderscore: input.KeyCtrlUnderscore,
}

// convertKey maps a tcell key event; ok is false for keys with no engine equivalent
func convertKey(ev *tcell.EventKey) (input.Event, bool) {
	out := input.Event{Kind: input.EventKeyPress, Modifiers: convertMod(ev.Modifiers())}
	k := ev.Key()

	switch {
	case k == tcell.KeyRune:
		out.Key = input.KeyRune
		out.Rune = ev.Rune()
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		out.Key = input.KeyF1 + input.Key(k-tcell.KeyF1)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		// The key already names the modifier
		out.Key = input.KeyCtrlA + input.Key(k-tcell.KeyCtrlA)
		out.Modifiers &^= input.ModCtrl
	default:
		if mapped, ok := keyMap[k]; ok {
			out.Key = mapped
			break
		}
		// Raw control codes that tcell left unnamed
		if k >= tcell.KeySOH && k <= tcell.KeySUB {
			out.Key = input.KeyCtrlA + input.Key(k-tcell.KeySOH)
			out.Modifiers &^= input.ModCtrl
			break
		}
		return input.Event{}, false
	}
	return out, true
}

func convertMod(m tcell.ModMask) input.Modifier {
	var out input.Modifier
	if m&tcell.ModShift != 0 {
		out |= input.ModShift
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		out |= input.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= input.ModCtrl
	}
	return out
}

var buttonMap = []struct {
	mask   tcell.ButtonMask
	button input.MouseButton
}{
	{tcell.Button1, input.MouseLeft},
	{tcell.Button3, input.MouseMiddle},
	{tcell.Button2, input.MouseRight},
}

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// mouseTracker turns tcell's button-state mouse events into press, release, move and wheel edges
type mouseTracker struct {
	buttons tcell.ButtonMask
	pos     geom.Position
}

func (t *mouseTracker) convert(ev *tcell.EventMouse) []input.Event {
	x, y := ev.Position()
	base := input.Event{
		Position:  geom.Pos(uint16(max(x, 0)), uint16(max(y, 0))),
		Modifiers: convertMod(ev.Modifiers()),
	}
	btns := ev.Buttons()

	var out []input.Event
	if w := btns & wheelMask; w != 0 {
		e := base
		e.Kind = input.EventMouseWheel
		switch {
		case w&tcell.WheelUp != 0:
			e.Delta, e.Vertical = -1, true
		case w&tcell.WheelDown != 0:
			e.Delta, e.Vertical = 1, true
		case w&tcell.WheelLeft != 0:
			e.Delta = -1
		default:
			e.Delta = 1
		}
		out = append(out, e)
	}

	pressed := btns &^ wheelMask
	changed := false
	for _, b := range buttonMap {
		was := t.buttons&b.mask != 0
		is := pressed&b.mask != 0
		if was == is {
			continue
		}
		e := base
		e.Button = b.button
		if is {
			e.Kind = input.EventMouseDown
		} else {
			e.Kind = input.EventMouseUp
		}
		out = append(out, e)
		changed = true
	}

	if !changed && len(out) == 0 && base.Position != t.pos {
		e := base
		e.Kind = input.EventMouseMove
		out = append(out, e)
	}

	t.buttons = pressed
	t.pos = base.Position
	return out
}

var attrPairs = []struct {
	tc tcell.AttrMask
	a  style.Attr
}{
	{tcell.AttrBold, style.AttrBold},
	{tcell.AttrDim, style.AttrDim},
	{tcell.AttrItalic, style.AttrItalic},
	{tcell.AttrBlink, style.AttrBlink},
	{tcell.AttrReverse, style.AttrReverse},
	{tcell.AttrStrikeThrough, style.AttrStrike},
}

// fromTcell converts tcell cell content back to an engine cell
func fromTcell(r rune, st tcell.Style) buffer.Cell {
	fg, bg, attrs := st.Decompose()
	var a style.Attr
	for _, p := range attrPairs {
		if attrs&p.tc != 0 {
			a |= p.a
		}
	}
	if st.GetUnderlineStyle() != tcell.UnderlineStyleNone {
		a |= style.AttrUnderline
	}
	if r == 0 {
		r = ' '
	}
	return buffer.Cell{Rune: r, Fg: fg, Bg: bg, Underline: st.GetUnderlineColor(), Attrs: a}
}
