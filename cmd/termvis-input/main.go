package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termvis/action"
	"github.com/lixenwraith/termvis/app"
	"github.com/lixenwraith/termvis/input"
	"github.com/lixenwraith/termvis/layout"
	"github.com/lixenwraith/termvis/style"
	"github.com/lixenwraith/termvis/terminal"
	"github.com/lixenwraith/termvis/visual"
)

const title = "Input Test - Press keys, move mouse, drag the [X] - Press Ctrl+C to quit"

// inspector is the event inspector tree: title, status line, and the board
type inspector struct {
	root   *visual.Tree
	status *visual.TextBlock
	board  *board
}

func newInspector() *inspector {
	in := &inspector{
		status: visual.NewTextBlock("").WithFg(tcell.NewRGBColor(140, 140, 160)),
		board:  &board{},
	}
	in.updateStatus()

	head := visual.NewTextBlock(title).
		WithFg(tcell.NewRGBColor(200, 200, 200)).
		WithBg(tcell.NewRGBColor(40, 40, 60)).
		WithAttr(style.AttrBold)

	in.root = visual.NewTree(layout.VStack{},
		[]visual.Visual{head, in.status, in.board},
		visual.WithFocus(2),
		visual.WithHandler(&input.Funcs{OnTunnelKeyPress: quitKeys}),
	)
	return in
}

func quitKeys(a input.KeyArgs, c action.Context) bool {
	if a.Key == input.KeyCtrlC || a.Key == input.KeyCtrlQ {
		c.Terminate(0)
		return true
	}
	return false
}

func (in *inspector) updateStatus() {
	b := in.board
	in.status.SetText(fmt.Sprintf("Size: %dx%d | Object: (%d,%d) | Dragging: %v",
		b.extent.Width, b.extent.Height, b.obj.X, b.obj.Y, b.dragging))
}

// tick refreshes the status line in place
func (in *inspector) tick(c action.Context) {
	in.updateStatus()
	if r, ok := in.root.Arrangement().Rect(1); ok {
		r.Width = in.root.Arrangement().Size().Width
		c.RedrawRegion(r)
	}
}

func main() {
	scr := terminal.New(terminal.Options{
		ColorMode:    terminal.DetectColorMode(),
		Mouse:        terminal.MouseModeClick | terminal.MouseModeDrag | terminal.MouseModeMotion,
		Paste:        true,
		FocusReports: true,
	})

	in := newInspector()
	code, err := app.New(in.root, scr, scr, app.WithTickHook(in.tick)).Run()
	scr.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "input test: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}
