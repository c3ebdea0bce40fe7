package style

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestBuilderIndependentFields(t *testing.T) {
	s := New().WithFg(tcell.ColorRed).WithAttr(AttrBold)
	if s.Fg != tcell.ColorRed {
		t.Errorf("Expected fg red, got %v", s.Fg)
	}
	if s.Bg != tcell.ColorDefault {
		t.Errorf("Expected bg unset, got %v", s.Bg)
	}
	if !s.Add.Has(AttrBold) {
		t.Error("Expected bold added")
	}

	s = s.WithoutAttr(AttrBold)
	if s.Add.Has(AttrBold) || !s.Sub.Has(AttrBold) {
		t.Errorf("Expected bold moved to removal set, got add=%v sub=%v", s.Add, s.Sub)
	}
}

func TestPatchKeepsUnsetFields(t *testing.T) {
	base := New().WithFg(tcell.ColorRed).WithBg(tcell.ColorBlue).WithAttr(AttrItalic)
	over := New().WithFg(tcell.ColorGreen).WithAttr(AttrBold).WithoutAttr(AttrItalic)

	got := base.Patch(over)
	if got.Fg != tcell.ColorGreen {
		t.Errorf("Expected fg overridden, got %v", got.Fg)
	}
	if got.Bg != tcell.ColorBlue {
		t.Errorf("Expected bg kept, got %v", got.Bg)
	}
	if attrs := got.Attrs(AttrNone); attrs != AttrBold {
		t.Errorf("Expected bold only, got %v", attrs)
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := Reset()
	if s.Fg != tcell.ColorReset || s.Bg != tcell.ColorReset {
		t.Error("Expected reset colors")
	}
	if a := s.Attrs(AttrBold | AttrUnderline); a != AttrNone {
		t.Errorf("Expected all attributes cleared, got %v", a)
	}
}

func TestTcellStyle(t *testing.T) {
	st := New().WithFg(tcell.ColorYellow).WithAttr(AttrBold | AttrReverse).TcellStyle(AttrNone)
	fg, _, attrs := st.Decompose()
	if fg != tcell.ColorYellow {
		t.Errorf("Expected yellow fg, got %v", fg)
	}
	if attrs&tcell.AttrBold == 0 || attrs&tcell.AttrReverse == 0 {
		t.Errorf("Expected bold and reverse, got %v", attrs)
	}
}

func TestAttrString(t *testing.T) {
	if s := (AttrBold | AttrUnderline).String(); s != "bold|underline" {
		t.Errorf("Expected bold|underline, got %q", s)
	}
	if AttrNone.String() != "none" {
		t.Error("Expected none")
	}
}
