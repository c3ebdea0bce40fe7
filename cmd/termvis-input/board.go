package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termvis/action"
	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
	"github.com/lixenwraith/termvis/style"
)

const (
	maxLog = 10
	marker = "[X]"
)

var (
	logStyle    = style.New().WithFg(tcell.NewRGBColor(180, 180, 180))
	markerStyle = style.New().WithFg(tcell.NewRGBColor(100, 255, 100)).WithBg(tcell.NewRGBColor(40, 40, 60)).WithAttr(style.AttrBold)
	dragStyle   = markerStyle.WithFg(tcell.NewRGBColor(255, 255, 100))
)

// board logs every event it receives and holds a marker that can be dragged with the left button
type board struct {
	entries []string

	// Marker position in board coordinates
	obj      geom.Position
	dragging bool
	placed   bool

	// Extent of the last draw
	extent geom.Size
}

func (b *board) addLog(s string) {
	if len(b.entries) >= maxLog {
		copy(b.entries, b.entries[1:])
		b.entries = b.entries[:maxLog-1]
	}
	b.entries = append(b.entries, s)
}

// Measure takes the whole band
func (b *board) Measure(constraints geom.Size) geom.Size {
	return constraints
}

func (b *board) Draw(buf buffer.WriteBuffer, available geom.Size) (geom.Size, error) {
	b.extent = available
	if !b.placed && available.Width >= 3 {
		b.obj = geom.Pos(available.Width/2, available.Height/2)
		b.placed = true
	}
	b.clamp()

	for i, entry := range b.entries {
		y := uint16(i)
		if y >= available.Height {
			break
		}
		text, w := buffer.Truncate(entry, int(available.Width)-1)
		if w == 0 {
			continue
		}
		if err := buf.WriteSymbols(geom.Pos(1, y), text, logStyle); err != nil {
			return geom.Size{}, err
		}
	}

	if b.placed && b.obj.Y < available.Height && int(b.obj.X)+len(marker) <= int(available.Width) {
		st := markerStyle
		if b.dragging {
			st = dragStyle
		}
		if err := buf.WriteSymbols(b.obj, marker, st); err != nil {
			return geom.Size{}, err
		}
	}
	return available, nil
}

// clamp keeps the marker inside the last drawn extent
func (b *board) clamp() {
	if b.extent.Width >= uint16(len(marker)) {
		b.obj.X = min(b.obj.X, b.extent.Width-uint16(len(marker)))
	}
	if b.extent.Height > 0 {
		b.obj.Y = min(b.obj.Y, b.extent.Height-1)
	}
}

func (b *board) onMarker(p geom.Position) bool {
	return b.placed && p.Y == b.obj.Y && p.X >= b.obj.X && p.X < b.obj.X+uint16(len(marker))
}

func (b *board) OnPaste(a input.PasteArgs, ctx action.Context) bool {
	b.addLog(fmt.Sprintf("PASTE: %d bytes %q", len(a.Text), a.Text))
	ctx.Redraw()
	return true
}

func (b *board) OnGotFocus(ctx action.Context) {
	b.addLog("FOCUS: gained")
	ctx.Redraw()
}

func (b *board) OnLostFocus(ctx action.Context) {
	b.addLog("FOCUS: lost")
	b.dragging = false
	ctx.Redraw()
}

func (b *board) OnKeyPress(a input.KeyArgs, ctx action.Context) bool {
	b.addLog(formatKey(a))
	ctx.Redraw()
	return true
}

func (b *board) OnKeyRelease(a input.KeyArgs, ctx action.Context) bool {
	return false
}

func (b *board) OnMouseMove(a input.MouseArgs, ctx action.Context) bool {
	b.addLog(fmt.Sprintf("MOUSE: %smove @ %v", modPrefix(a.Modifiers), a.Position))
	if b.dragging {
		b.obj = a.Position
		b.clamp()
	}
	ctx.Redraw()
	return true
}

func (b *board) OnMouseWheel(a input.WheelArgs, ctx action.Context) bool {
	dir := "horizontal"
	if a.Vertical {
		dir = "vertical"
	}
	b.addLog(fmt.Sprintf("MOUSE: %swheel %s %+d @ %v", modPrefix(a.Modifiers), dir, a.Delta, a.Position))
	ctx.Redraw()
	return true
}

func (b *board) OnMouseDown(a input.ButtonArgs, ctx action.Context) bool {
	b.addLog(fmt.Sprintf("MOUSE: %s%s press @ %v", modPrefix(a.Modifiers), a.Button, a.Position))
	if a.Button == input.MouseLeft && b.onMarker(a.Position) {
		b.dragging = true
	}
	ctx.Redraw()
	return true
}

func (b *board) OnMouseUp(a input.ButtonArgs, ctx action.Context) bool {
	b.addLog(fmt.Sprintf("MOUSE: %s%s release @ %v", modPrefix(a.Modifiers), a.Button, a.Position))
	b.dragging = false
	ctx.Redraw()
	return true
}

func modPrefix(m input.Modifier) string {
	var mods string
	if m&input.ModShift != 0 {
		mods += "Shift+"
	}
	if m&input.ModAlt != 0 {
		mods += "Alt+"
	}
	if m&input.ModCtrl != 0 {
		mods += "Ctrl+"
	}
	return mods
}

func formatKey(a input.KeyArgs) string {
	name := a.Key.String()
	if a.Key == input.KeyRune {
		if a.Rune >= 0x20 && a.Rune < 0x7f {
			name = fmt.Sprintf("'%c'", a.Rune)
		} else {
			name = fmt.Sprintf("U+%04X", a.Rune)
		}
	}
	return fmt.Sprintf("KEY: %s%s", modPrefix(a.Modifiers), name)
}
