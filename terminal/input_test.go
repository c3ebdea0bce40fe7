package terminal

import (
	"testing"

	"github.com/lixenwraith/termvis/geom"
	"github.com/lixenwraith/termvis/input"
)

// feed runs chunks through the parser the way readLoop assembles them
func feed(r *inputReader, chunks ...string) []input.Event {
	for _, c := range chunks {
		r.buf = append(r.buf, c...)
		consumed := r.parseInput(r.buf)
		r.buf = append(r.buf[:0], r.buf[consumed:]...)
	}

	var out []input.Event
	for {
		select {
		case ev := <-r.eventCh:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestParsePrintableAndUTF8(t *testing.T) {
	r := newInputReader(nil)
	evs := feed(r, "a", "\xe4\xb8", "\x96") // 'a', then 世 split across reads

	if len(evs) != 2 {
		t.Fatalf("Expected 2 events, got %d: %v", len(evs), evs)
	}
	if evs[0].Key != input.KeyRune || evs[0].Rune != 'a' {
		t.Errorf("Expected rune 'a', got %v", evs[0])
	}
	if evs[1].Rune != '世' {
		t.Errorf("Expected rune 世, got %q", evs[1].Rune)
	}
}

func TestParseControlKeys(t *testing.T) {
	r := newInputReader(nil)
	evs := feed(r, "\x03\x7f\r\t")

	want := []input.Key{input.KeyCtrlC, input.KeyBackspace, input.KeyEnter, input.KeyTab}
	if len(evs) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(evs))
	}
	for i, k := range want {
		if evs[i].Kind != input.EventKeyPress || evs[i].Key != k {
			t.Errorf("Event %d: expected %s, got %v", i, k, evs[i])
		}
	}
}

func TestParseCSIModifiers(t *testing.T) {
	tests := []struct {
		seq string
		key input.Key
		mod input.Modifier
	}{
		{"\x1b[A", input.KeyUp, input.ModNone},
		{"\x1b[1;5A", input.KeyUp, input.ModCtrl},
		{"\x1b[1;2D", input.KeyLeft, input.ModShift},
		{"\x1b[1;3C", input.KeyRight, input.ModAlt},
		{"\x1b[15;2~", input.KeyF5, input.ModShift},
		{"\x1b[3;5~", input.KeyDelete, input.ModCtrl},
		{"\x1b[Z", input.KeyBacktab, input.ModShift},
		{"\x1bOP", input.KeyF1, input.ModNone},
		{"\x1bx", input.KeyRune, input.ModAlt},
	}

	for _, tt := range tests {
		r := newInputReader(nil)
		evs := feed(r, tt.seq)
		if len(evs) != 1 {
			t.Errorf("%q: expected 1 event, got %d", tt.seq, len(evs))
			continue
		}
		if evs[0].Key != tt.key || evs[0].Modifiers != tt.mod {
			t.Errorf("%q: expected %s mod=%s, got %v", tt.seq, tt.key, tt.mod, evs[0])
		}
	}
}

func TestParseIncompleteSequenceWaits(t *testing.T) {
	r := newInputReader(nil)
	if evs := feed(r, "\x1b[1;5"); len(evs) != 0 {
		t.Fatalf("Expected no events for partial sequence, got %v", evs)
	}
	evs := feed(r, "B")
	if len(evs) != 1 || evs[0].Key != input.KeyDown || evs[0].Modifiers != input.ModCtrl {
		t.Errorf("Expected ctrl+down after completion, got %v", evs)
	}
}

func TestParseUnknownCSISwallowed(t *testing.T) {
	r := newInputReader(nil)
	evs := feed(r, "\x1b[99zq")
	if len(evs) != 1 || evs[0].Rune != 'q' {
		t.Errorf("Expected only 'q', got %v", evs)
	}
}

func TestParseBracketedPasteSplit(t *testing.T) {
	r := newInputReader(nil)
	evs := feed(r, "\x1b[200~hel", "lo\x1b[20", "1~x")

	if len(evs) != 2 {
		t.Fatalf("Expected paste and key, got %v", evs)
	}
	if evs[0].Kind != input.EventPaste || evs[0].Text != "hello" {
		t.Errorf("Expected paste \"hello\", got %v %q", evs[0], evs[0].Text)
	}
	if evs[1].Key != input.KeyRune || evs[1].Rune != 'x' {
		t.Errorf("Expected 'x' after paste, got %v", evs[1])
	}
}

func TestParsePasteKeepsEscapes(t *testing.T) {
	r := newInputReader(nil)
	evs := feed(r, "\x1b[200~a\x1b[Ab\x1b[201~")
	if len(evs) != 1 || evs[0].Text != "a\x1b[Ab" {
		t.Errorf("Expected raw paste content, got %v", evs)
	}
}

func TestParseFocusReports(t *testing.T) {
	r := newInputReader(nil)
	evs := feed(r, "\x1b[I\x1b[O")
	if len(evs) != 2 {
		t.Fatalf("Expected 2 events, got %v", evs)
	}
	if evs[0].Kind != input.EventFocusGained || evs[1].Kind != input.EventFocusLost {
		t.Errorf("Expected gained then lost, got %v", evs)
	}
}

func TestShortMouseReportNotHeld(t *testing.T) {
	r := newInputReader(nil)
	evs := feed(r, "\x1b[<0;5;3M")
	if len(evs) != 1 || evs[0].Kind != input.EventMouseDown || evs[0].Position != geom.Pos(4, 2) {
		t.Fatalf("Expected immediate press at (4,2), got %+v", evs)
	}
	if len(r.buf) != 0 {
		t.Errorf("Expected empty read buffer, got %q", r.buf)
	}

	evs = feed(r, "\x1b[<0;5;3m", "x")
	if len(evs) != 2 || evs[0].Kind != input.EventMouseUp || evs[1].Rune != 'x' {
		t.Errorf("Expected release then 'x', got %+v", evs)
	}

	// A prefix of a short report still waits for the rest
	if evs = feed(r, "\x1b[<0;5;"); len(evs) != 0 {
		t.Errorf("Expected partial report held, got %+v", evs)
	}
	if evs = feed(r, "3M"); len(evs) != 1 || evs[0].Kind != input.EventMouseDown {
		t.Errorf("Expected press once completed, got %+v", evs)
	}
}

func TestParseSGRMouse(t *testing.T) {
	tests := []struct {
		seq      string
		kind     input.EventKind
		button   input.MouseButton
		pos      geom.Position
		mod      input.Modifier
		delta    int16
		vertical bool
	}{
		{"\x1b[<0;5;3M", input.EventMouseDown, input.MouseLeft, geom.Pos(4, 2), input.ModNone, 0, false},
		{"\x1b[<2;1;1M", input.EventMouseDown, input.MouseRight, geom.Pos(0, 0), input.ModNone, 0, false},
		{"\x1b[<0;5;3m", input.EventMouseUp, input.MouseLeft, geom.Pos(4, 2), input.ModNone, 0, false},
		{"\x1b[<16;1;1M", input.EventMouseDown, input.MouseLeft, geom.Pos(0, 0), input.ModCtrl, 0, false},
		{"\x1b[<35;2;2M", input.EventMouseMove, input.MouseNone, geom.Pos(1, 1), input.ModNone, 0, false},
		{"\x1b[<64;1;1M", input.EventMouseWheel, input.MouseNone, geom.Pos(0, 0), input.ModNone, -1, true},
		{"\x1b[<65;1;1M", input.EventMouseWheel, input.MouseNone, geom.Pos(0, 0), input.ModNone, 1, true},
		{"\x1b[<66;1;1M", input.EventMouseWheel, input.MouseNone, geom.Pos(0, 0), input.ModNone, -1, false},
		{"\x1b[<67;1;1M", input.EventMouseWheel, input.MouseNone, geom.Pos(0, 0), input.ModNone, 1, false},
	}

	for _, tt := range tests {
		r := newInputReader(nil)
		evs := feed(r, tt.seq)
		if len(evs) != 1 {
			t.Errorf("%q: expected 1 event, got %d", tt.seq, len(evs))
			continue
		}
		ev := evs[0]
		if ev.Kind != tt.kind || ev.Button != tt.button || ev.Position != tt.pos ||
			ev.Modifiers != tt.mod || ev.Delta != tt.delta || ev.Vertical != tt.vertical {
			t.Errorf("%q: got %+v", tt.seq, ev)
		}
	}
}
