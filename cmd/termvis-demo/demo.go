package main

import (
	"fmt"

	"github.com/lixenwraith/termvis/action"
	"github.com/lixenwraith/termvis/buffer"
	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
	"github.com/lixenwraith/termvis/layout"
	"github.com/lixenwraith/termvis/style"
	"github.com/lixenwraith/termvis/visual"
)

// Theme holds the resolved styles of the demo
type Theme struct {
	Normal style.Style
	Focus  style.Style
	Status style.Style
}

// focusList restyles its rows from the tree's focus before each draw
type focusList struct {
	*visual.Tree
	rows  []*visual.TextBlock
	theme Theme
}

func (l *focusList) Draw(buf buffer.WriteBuffer, available geom.Size) (geom.Size, error) {
	cur, ok := l.Focused()
	for i, row := range l.rows {
		if ok && i == cur {
			row.SetStyle(l.theme.Focus)
		} else {
			row.SetStyle(l.theme.Normal)
		}
	}
	return l.Tree.Draw(buf, available)
}

// demo is the widget tree of the demo binary
type demo struct {
	root   *visual.Tree
	title  *visual.TextBlock
	list   *focusList
	status *visual.TextBlock
	ticks  int
}

var demoItems = []string{
	"Tab / Shift+Tab moves focus",
	"Click a row to focus it",
	"Paste text to see its length",
	"q, Esc or Ctrl+C quits",
}

func newDemo(theme Theme) *demo {
	d := &demo{
		title:  visual.NewTextBlock("").WithAttr(style.AttrBold),
		status: visual.NewTextBlock("ready").WithStyle(theme.Status),
	}
	d.setTitle()

	rows := make([]*visual.TextBlock, len(demoItems))
	children := make([]visual.Visual, len(demoItems))
	for i, text := range demoItems {
		rows[i] = visual.NewTextBlock(fmt.Sprintf(" %d. %s ", i+1, text))
		children[i] = visual.Padded(rows[i], geom.Margin{Left: 2})
	}
	d.list = &focusList{
		Tree: visual.NewTree(layout.VStack{}, children,
			visual.WithFocus(0),
			visual.WithTabCycling(),
			visual.WithClickFocus(),
		),
		rows:  rows,
		theme: theme,
	}

	d.root = visual.NewTree(layout.VStack{},
		[]visual.Visual{d.title, d.list, d.status},
		visual.WithFocus(1),
	)
	d.root.SetHandler(&input.Funcs{
		OnTunnelKeyPress:  d.quitKeys,
		OnBubbleKeyPress:  d.reportKey,
		OnTunnelPaste:     d.reportPaste,
		OnTunnelMouseDown: d.reportClick,
		OnGotFocus:        func(c action.Context) { d.report(c, "window focused") },
		OnLostFocus:       func(c action.Context) { d.report(c, "window unfocused") },
	})
	return d
}

func (d *demo) setTitle() {
	d.title.SetText(fmt.Sprintf("termvis demo  tick %6d", d.ticks))
}

// report shows msg on the status row, which may change the root's width
func (d *demo) report(c action.Context, msg string) {
	d.status.SetText(msg)
	c.Remeasure()
}

func (d *demo) quitKeys(a input.KeyArgs, c action.Context) bool {
	switch {
	case a.IsRune('q'), a.Key == input.KeyEscape, a.Key == input.KeyCtrlC:
		c.Terminate(0)
		return true
	}
	return false
}

func (d *demo) reportKey(a input.KeyArgs, c action.Context) bool {
	if a.Key == input.KeyRune {
		d.report(c, fmt.Sprintf("key %q %s", a.Rune, a.Modifiers))
	} else {
		d.report(c, fmt.Sprintf("key %s %s", a.Key, a.Modifiers))
	}
	return false
}

func (d *demo) reportPaste(a input.PasteArgs, c action.Context) bool {
	d.report(c, fmt.Sprintf("pasted %d bytes", len(a.Text)))
	return true
}

func (d *demo) reportClick(a input.ButtonArgs, c action.Context) bool {
	d.report(c, fmt.Sprintf("%s click at %v", a.Button, a.Position))
	return false
}

// tick advances the title counter and repaints only the title row
func (d *demo) tick(c action.Context) {
	d.ticks++
	d.setTitle()
	if r, ok := d.root.Arrangement().Rect(0); ok {
		c.RedrawRegion(r)
	}
}
