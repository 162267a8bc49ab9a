package gamepad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReleasesAllButtons(t *testing.T) {
	g := New()

	for _, b := range []Button{Right, Left, Up, Down, A, B, Select, Start} {
		assert.False(t, g.IsPressed(b))
	}
	assert.Equal(t, uint8(0x0F), g.DpadNibble())
	assert.Equal(t, uint8(0x0F), g.ButtonsNibble())
}

func TestSetButtonPressAndRelease(t *testing.T) {
	g := New()

	g.SetButton(A, true)
	assert.True(t, g.IsPressed(A))
	assert.False(t, g.IsPressed(B))
	assert.Equal(t, uint8(0x0E), g.ButtonsNibble())

	g.SetButton(A, false)
	assert.False(t, g.IsPressed(A))
	assert.Equal(t, uint8(0x0F), g.ButtonsNibble())
}

func TestDpadAndButtonsAreIndependent(t *testing.T) {
	g := New()

	g.SetButton(Up, true)
	assert.True(t, g.IsPressed(Up))
	assert.Equal(t, uint8(0x0F), g.ButtonsNibble())
	assert.Equal(t, uint8(0x0B), g.DpadNibble())
}
