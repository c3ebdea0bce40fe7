// @lixen: #focus{sys[term]}
// Package terminal is the native output sink and input source for the engine.
//
// Features:
//   - True color (24-bit) and 256-color palette output from tcell colors
//   - Double-buffered output with cell-level diffing
//   - Raw stdin parsing into input events: keys, SGR mouse, bracketed paste, focus reports
//   - SIGWINCH resize detection
//   - Cursor visibility and cooked mode restored on exit and on panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
