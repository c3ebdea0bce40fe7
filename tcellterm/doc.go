// Package tcellterm adapts a tcell.Screen into the engine's output sink and input source.
//
// tcell resolves terminfo, wide characters and platform differences; the adapter only
// translates cells and events. Use it where the native terminal package's xterm-only
// assumptions do not hold.
package tcellterm
