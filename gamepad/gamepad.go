// Package gamepad models the DMG's 8-button input surface.
//
// It holds nothing but button state: which of the 8 buttons are
// currently pressed. The memory bus reads this state through DpadNibble
// and ButtonsNibble when servicing reads of the P1 (0xFF00) register; the emulator
// itself never writes to a gamepad.
package gamepad

// Button identifies one of the 8 DMG buttons.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// Gamepad holds the pressed/released state of all 8 buttons.
//
// Buttons are stored split into the two hardware-matched groups (d-pad,
// face/start buttons) so either half can be read independently,
// matching the P1 selector protocol. Bit value 0 means pressed, 1 means
// released, matching DMG polarity.
type Gamepad struct {
	dpad    uint8
	buttons uint8
}

// New returns a Gamepad with all buttons released.
func New() *Gamepad {
	return &Gamepad{dpad: 0x0F, buttons: 0x0F}
}

// SetButton updates the pressed/released state of one button.
func (g *Gamepad) SetButton(b Button, pressed bool) {
	switch b {
	case Right:
		g.dpad = setBit(g.dpad, 0, !pressed)
	case Left:
		g.dpad = setBit(g.dpad, 1, !pressed)
	case Up:
		g.dpad = setBit(g.dpad, 2, !pressed)
	case Down:
		g.dpad = setBit(g.dpad, 3, !pressed)
	case A:
		g.buttons = setBit(g.buttons, 0, !pressed)
	case B:
		g.buttons = setBit(g.buttons, 1, !pressed)
	case Select:
		g.buttons = setBit(g.buttons, 2, !pressed)
	case Start:
		g.buttons = setBit(g.buttons, 3, !pressed)
	}
}

// IsPressed reports whether a single button is currently pressed.
func (g *Gamepad) IsPressed(b Button) bool {
	switch b {
	case Right:
		return g.dpad&1 == 0
	case Left:
		return g.dpad&2 == 0
	case Up:
		return g.dpad&4 == 0
	case Down:
		return g.dpad&8 == 0
	case A:
		return g.buttons&1 == 0
	case B:
		return g.buttons&2 == 0
	case Select:
		return g.buttons&4 == 0
	case Start:
		return g.buttons&8 == 0
	default:
		return false
	}
}

// DpadNibble returns the low nibble for the d-pad group (Down/Up/Left/
// Right in bits 3..0), as read when P15 is selected.
func (g *Gamepad) DpadNibble() uint8 {
	return g.dpad & 0x0F
}

// ButtonsNibble returns the low nibble for the face/start group
// (Start/Select/B/A in bits 3..0), as read when P14 is selected.
func (g *Gamepad) ButtonsNibble() uint8 {
	return g.buttons & 0x0F
}

func setBit(value uint8, index uint8, set bool) uint8 {
	if set {
		return value | (1 << index)
	}
	return value &^ (1 << index)
}
