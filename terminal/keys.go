// @lixen: #focus{sys[io],input[keys]}
package terminal

import (
	"bytes"

	"github.com/lixenwraith/termvis/input"
)

// escapeSequence maps escape sequences to keys
// Key: sequence after ESC [ (e.g., "A" for up arrow)
type escapeSequence struct {
	seq string
	key input.Key
	mod input.Modifier
}

// Known escape sequences (CSI sequences: ESC [ ...)
var csiSequences = []escapeSequence{
	// Arrow keys
	{"A", input.KeyUp, input.ModNone},
	{"B", input.KeyDown, input.ModNone},
	{"C", input.KeyRight, input.ModNone},
	{"D", input.KeyLeft, input.ModNone},
	{"Z", input.KeyBacktab, input.ModShift}, // Shift+Tab

	// Navigation
	{"H", input.KeyHome, input.ModNone},
	{"F", input.KeyEnd, input.ModNone},
	{"1~", input.KeyHome, input.ModNone},
	{"4~", input.KeyEnd, input.ModNone},
	{"5~", input.KeyPageUp, input.ModNone},
	{"6~", input.KeyPageDown, input.ModNone},
	{"2~", input.KeyInsert, input.ModNone},
	{"3~", input.KeyDelete, input.ModNone},

	// Function keys (xterm)
	{"11~", input.KeyF1, input.ModNone},
	{"12~", input.KeyF2, input.ModNone},
	{"13~", input.KeyF3, input.ModNone},
	{"14~", input.KeyF4, input.ModNone},
	{"15~", input.KeyF5, input.ModNone},
	{"17~", input.KeyF6, input.ModNone},
	{"18~", input.KeyF7, input.ModNone},
	{"19~", input.KeyF8, input.ModNone},
	{"20~", input.KeyF9, input.ModNone},
	{"21~", input.KeyF10, input.ModNone},
	{"23~", input.KeyF11, input.ModNone},
	{"24~", input.KeyF12, input.ModNone},

	// Function keys (vt style)
	{"[A", input.KeyF1, input.ModNone},
	{"[B", input.KeyF2, input.ModNone},
	{"[C", input.KeyF3, input.ModNone},
	{"[D", input.KeyF4, input.ModNone},
	{"[E", input.KeyF5, input.ModNone},
}

// SS3 sequences (ESC O ...)
var ss3Sequences = []escapeSequence{
	{"A", input.KeyUp, input.ModNone},
	{"B", input.KeyDown, input.ModNone},
	{"C", input.KeyRight, input.ModNone},
	{"D", input.KeyLeft, input.ModNone},
	{"H", input.KeyHome, input.ModNone},
	{"F", input.KeyEnd, input.ModNone},
	{"P", input.KeyF1, input.ModNone},
	{"Q", input.KeyF2, input.ModNone},
	{"R", input.KeyF3, input.ModNone},
	{"S", input.KeyF4, input.ModNone},
}

var csiMap = buildSequenceMap(csiSequences)
var ss3Map = buildSequenceMap(ss3Sequences)

func buildSequenceMap(seqs []escapeSequence) map[string]escapeSequence {
	m := make(map[string]escapeSequence, len(seqs))
	for _, s := range seqs {
		m[s.seq] = s
	}
	return m
}

// lookupCSI performs zero-alloc map lookup via compiler optimization
// The string([]byte) conversion inline in map access does not allocate
// xterm modifier forms (ESC [ 1 ; m X and ESC [ n ; m ~) resolve to the base key
func lookupCSI(seq []byte) (input.Key, input.Modifier, bool) {
	if s, ok := csiMap[string(seq)]; ok {
		return s.key, s.mod, true
	}

	semi := bytes.IndexByte(seq, ';')
	if semi < 0 || len(seq) < semi+3 {
		return input.KeyNone, input.ModNone, false
	}
	param := seq[semi+1 : len(seq)-1]
	if len(param) != 1 || param[0] < '2' || param[0] > '8' {
		return input.KeyNone, input.ModNone, false
	}
	// xterm encodes modifiers as 1 + (shift=1 | alt=2 | ctrl=4)
	mod := input.Modifier(param[0]-'1') & (input.ModShift | input.ModAlt | input.ModCtrl)

	final := seq[len(seq)-1]
	var base string
	if final == '~' {
		base = string(seq[:semi]) + "~"
	} else {
		base = string(final)
	}
	if s, ok := csiMap[base]; ok {
		return s.key, s.mod | mod, true
	}
	return input.KeyNone, input.ModNone, false
}

// lookupSS3 performs zero-alloc map lookup
func lookupSS3(seq []byte) (input.Key, input.Modifier, bool) {
	if s, ok := ss3Map[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return input.KeyNone, input.ModNone, false
}
