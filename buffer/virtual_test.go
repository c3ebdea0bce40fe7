package buffer

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/style"
)

// expectOverrun runs fn and fails unless it panics with ErrWindowOverrun
func expectOverrun(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("%s: expected panic", name)
			return
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrWindowOverrun) {
			t.Errorf("%s: expected ErrWindowOverrun, got %v", name, r)
		}
	}()
	fn()
}

func TestVirtualTranslatesWrites(t *testing.T) {
	windows := []geom.Rect{
		geom.NewRect(0, 0, 3, 2),
		geom.NewRect(2, 1, 3, 2),
		geom.NewRect(5, 3, 1, 1),
	}
	for _, w := range windows {
		for y := uint16(0); y < w.Height; y++ {
			for x := uint16(0); x < w.Width; x++ {
				outer := NewMemory(geom.Sz(8, 6))
				v := NewVirtual(outer, w)
				if err := v.SetSymbol(geom.Pos(x, y), '#'); err != nil {
					t.Fatalf("SetSymbol failed: %v", err)
				}
				want := geom.Pos(x+w.X, y+w.Y)
				if r, _ := outer.Symbol(want); r != '#' {
					t.Errorf("Window %v: write at (%d,%d) not observed at %v", w, x, y, want)
				}
			}
		}
	}
}

func TestVirtualRejectsOutsideWindow(t *testing.T) {
	outer := NewMemory(geom.Sz(10, 10))
	v := NewVirtual(outer, geom.NewRect(2, 2, 3, 2))

	expectOverrun(t, "symbol column", func() { v.SetSymbol(geom.Pos(3, 0), 'x') })
	expectOverrun(t, "symbol row", func() { v.SetSymbol(geom.Pos(0, 2), 'x') })
	expectOverrun(t, "attribute", func() { v.SetAttribute(geom.Pos(9, 9), style.AttrBold) })
	expectOverrun(t, "symbols run", func() { v.WriteSymbols(geom.Pos(1, 0), "abc", style.New()) })
	expectOverrun(t, "clear region", func() { v.ClearRegion(geom.NewRect(0, 0, 4, 1)) })
	expectOverrun(t, "blit", func() { v.WriteBuffer(geom.Pos(0, 0), NewMemory(geom.Sz(4, 1))) })

	// Nothing may have leaked into the outer grid
	for _, c := range outer.Cells() {
		if c != Blank {
			t.Fatalf("Expected no partial write, found %+v", c)
		}
	}
}

func TestVirtualWriteSymbolsAndClear(t *testing.T) {
	outer := NewMemory(geom.Sz(6, 3))
	for y := uint16(0); y < 3; y++ {
		outer.WriteSymbols(geom.Pos(0, y), "......", style.New())
	}
	v := NewVirtual(outer, geom.NewRect(1, 1, 4, 2))

	if err := v.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := v.WriteSymbols(geom.Pos(0, 1), "abcd", style.New()); err != nil {
		t.Fatal(err)
	}
	if got := outer.String(); got != "......\n.    .\n.abcd." {
		t.Errorf("Unexpected grid:\n%q", got)
	}
}

func TestVirtualNested(t *testing.T) {
	outer := NewMemory(geom.Sz(10, 10))
	a := NewVirtual(outer, geom.NewRect(2, 3, 6, 6))
	b := NewVirtual(a, geom.NewRect(1, 1, 2, 2))

	b.SetSymbol(geom.Pos(1, 1), 'z')
	if r, _ := outer.Symbol(geom.Pos(4, 5)); r != 'z' {
		t.Errorf("Expected nested translation to (4,5), got %q there", r)
	}
	expectOverrun(t, "inner window", func() { b.SetSymbol(geom.Pos(2, 0), 'x') })
}

func TestClipDropsOutsideRegion(t *testing.T) {
	outer := NewMemory(geom.Sz(6, 2))
	c := NewClip(outer, geom.NewRect(2, 0, 2, 1))

	if err := c.WriteSymbols(geom.Pos(0, 0), "abcdef", style.New()); err != nil {
		t.Fatal(err)
	}
	if err := c.WriteSymbols(geom.Pos(0, 1), "ghijkl", style.New()); err != nil {
		t.Fatal(err)
	}
	if got := outer.String(); got != "  cd  \n      " {
		t.Errorf("Unexpected grid:\n%q", got)
	}

	if err := c.WriteSymbols(geom.Pos(1, 0), "abcdef", style.New()); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected row-fit contract kept, got %v", err)
	}
}

func TestClipClear(t *testing.T) {
	outer := NewMemory(geom.Sz(4, 1))
	outer.WriteSymbols(geom.Pos(0, 0), "abcd", style.New())
	c := NewClip(outer, geom.NewRect(1, 0, 10, 10))
	if c.Region() != geom.NewRect(1, 0, 3, 1) {
		t.Errorf("Expected region intersected with outer, got %v", c.Region())
	}
	c.Clear()
	if got := outer.String(); got != "a   " {
		t.Errorf("Expected region cleared, got %q", got)
	}
}

func TestClipBlitKeepsUnderlineColor(t *testing.T) {
	src := NewMemory(geom.Sz(3, 1))
	st := style.New().WithFg(tcell.ColorGreen).WithUnderline(tcell.ColorRed).WithAttr(style.AttrUnderline)
	if err := src.WriteSymbols(geom.Pos(0, 0), "abc", st); err != nil {
		t.Fatal(err)
	}

	outer := NewMemory(geom.Sz(6, 2))
	view := NewVirtual(outer, geom.NewRect(1, 1, 5, 1))
	c := NewClip(view, geom.NewRect(1, 0, 2, 1))
	if err := c.WriteBuffer(geom.Pos(0, 0), src); err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		x    uint16
		want Cell
	}{
		{1, Blank},
		{2, Cell{Rune: 'b', Fg: tcell.ColorGreen, Bg: tcell.ColorDefault, Underline: tcell.ColorRed, Attrs: style.AttrUnderline}},
		{3, Cell{Rune: 'c', Fg: tcell.ColorGreen, Bg: tcell.ColorDefault, Underline: tcell.ColorRed, Attrs: style.AttrUnderline}},
		{4, Blank},
	} {
		got, err := outer.Cell(geom.Pos(tt.x, 1))
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("x=%d: expected %+v, got %+v", tt.x, tt.want, got)
		}
	}
}
