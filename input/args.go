package input

import "github.com/lixenwraith/termvis/geom"

// KeyState distinguishes press, repeat, and release for key arguments
type KeyState uint8

const (
	KeyPressed KeyState = iota
	KeyRepeated
	KeyReleased
)

// KeyArgs carries a key press or release
type KeyArgs struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
	State     KeyState
}

// IsRune reports whether the key is the printable rune r with no ctrl/alt
func (a KeyArgs) IsRune(r rune) bool {
	return a.Key == KeyRune && a.Rune == r && a.Modifiers&(ModCtrl|ModAlt) == 0
}

// MouseArgs carries a pointer move
type MouseArgs struct {
	Position  geom.Position
	Modifiers Modifier
}

// Local returns a with Position relative to origin
func (a MouseArgs) Local(origin geom.Position) MouseArgs {
	a.Position = a.Position.Sub(origin)
	return a
}

// WheelArgs carries a wheel step. Delta is +1 for down/right and -1 for up/left.
type WheelArgs struct {
	Position  geom.Position
	Modifiers Modifier
	Delta     int16
	Vertical  bool
}

func (a WheelArgs) Local(origin geom.Position) WheelArgs {
	a.Position = a.Position.Sub(origin)
	return a
}

// ButtonArgs carries a button press or release
type ButtonArgs struct {
	Position  geom.Position
	Modifiers Modifier
	Button    MouseButton
}

func (a ButtonArgs) Local(origin geom.Position) ButtonArgs {
	a.Position = a.Position.Sub(origin)
	return a
}

// PasteArgs carries bracketed paste content
type PasteArgs struct {
	Text string
}
