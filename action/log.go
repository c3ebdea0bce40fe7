package action

import "github.com/lixenwraith/termvis/geom"

// Log is an append-only action sequence in emission order
type Log struct {
	actions []Action
}

// Append records a
func (l *Log) Append(a Action) {
	l.actions = append(l.actions, a)
}

// Len returns the number of recorded actions
func (l *Log) Len() int {
	return len(l.actions)
}

// Actions returns a copy of the recorded actions
func (l *Log) Actions() []Action {
	out := make([]Action, len(l.actions))
	copy(out, l.actions)
	return out
}

// Replay applies every action to ctx in order, then empties the log
func (l *Log) Replay(ctx Context) {
	actions := l.actions
	l.actions = nil
	for _, a := range actions {
		a.Apply(ctx)
	}
}

// Retained is a Context that only records into a Log
type Retained struct {
	log *Log
}

// Retain returns a Context that appends to log
func Retain(log *Log) Retained {
	return Retained{log: log}
}

func (r Retained) Redraw()                  { r.log.Append(Redraw()) }
func (r Retained) RedrawRegion(g geom.Rect) { r.log.Append(RedrawRegion(g)) }
func (r Retained) Remeasure()               { r.log.Append(Remeasure()) }
func (r Retained) SetFocus(focused bool)    { r.log.Append(SetFocus(focused)) }
func (r Retained) Terminate(code int)       { r.log.Append(Terminate(code)) }

// Collect runs each step against one fresh retained log and replays it into ctx
// after the last step returns. Steps run in order until one reports handled.
func Collect(ctx Context, steps ...func(Context) bool) bool {
	var log Log
	rc := Retain(&log)
	handled := false
	for _, step := range steps {
		if handled = step(rc); handled {
			break
		}
	}
	log.Replay(ctx)
	return handled
}
