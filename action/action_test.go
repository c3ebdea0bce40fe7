package action

import (
	"testing"

	"github.com/lixenwraith/termvis/geom"
)

func TestRetainedRecordsInOrder(t *testing.T) {
	var log Log
	rc := Retain(&log)
	rc.Redraw()
	rc.RedrawRegion(geom.NewRect(1, 2, 3, 4))
	rc.Remeasure()
	rc.SetFocus(true)
	rc.Terminate(7)

	want := []Action{Redraw(), RedrawRegion(geom.NewRect(1, 2, 3, 4)), Remeasure(), SetFocus(true), Terminate(7)}
	got := log.Actions()
	if len(got) != len(want) {
		t.Fatalf("Expected %d actions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Action %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestReplayEmptiesLog(t *testing.T) {
	var src, dst Log
	Retain(&src).Terminate(3)
	Retain(&src).Redraw()

	src.Replay(Retain(&dst))
	if src.Len() != 0 {
		t.Errorf("Expected source log emptied, got %d", src.Len())
	}
	got := dst.Actions()
	if len(got) != 2 || got[0] != Terminate(3) || got[1] != Redraw() {
		t.Errorf("Unexpected replayed actions: %v", got)
	}
}

func TestCollectOrderAndShortCircuit(t *testing.T) {
	var out Log
	var ran []string

	handled := Collect(Retain(&out),
		func(c Context) bool { ran = append(ran, "pre"); c.SetFocus(false); return false },
		func(c Context) bool { ran = append(ran, "child"); c.Redraw(); return true },
		func(c Context) bool { ran = append(ran, "post"); c.Terminate(1); return true },
	)

	if !handled {
		t.Error("Expected handled")
	}
	if len(ran) != 2 || ran[0] != "pre" || ran[1] != "child" {
		t.Errorf("Expected pre then child only, got %v", ran)
	}
	got := out.Actions()
	if len(got) != 2 || got[0] != SetFocus(false) || got[1] != Redraw() {
		t.Errorf("Expected actions in emission order, got %v", got)
	}
}

func TestCollectDefersUntilDone(t *testing.T) {
	var out Log
	Collect(Retain(&out),
		func(c Context) bool {
			c.Redraw()
			if out.Len() != 0 {
				t.Error("Expected no action applied mid-traversal")
			}
			return false
		},
	)
	if out.Len() != 1 {
		t.Errorf("Expected one action after collect, got %d", out.Len())
	}
}

func TestKindString(t *testing.T) {
	if Terminate(0).String() != "terminate 0" {
		t.Errorf("Unexpected string %q", Terminate(0).String())
	}
	if Kind(99).String() != "kind(99)" {
		t.Errorf("Unexpected string %q", Kind(99).String())
	}
}
