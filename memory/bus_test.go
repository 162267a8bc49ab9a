package memory

import (
	"testing"

	"github.com/kayvane/dmgcore/addr"
	"github.com/kayvane/dmgcore/gamepad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadROMRejectsWrongSize(t *testing.T) {
	b := New(gamepad.New())

	err := b.LoadROM(make([]byte, ROMSize-1))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidROMSize)
}

func TestLoadROMAcceptsExactSize(t *testing.T) {
	b := New(gamepad.New())
	rom := make([]byte, ROMSize)
	rom[0x100] = 0xAB

	require.NoError(t, b.LoadROM(rom))
	assert.Equal(t, uint8(0xAB), b.Read8(0x0100))
}

func TestReadWrite16LittleEndian(t *testing.T) {
	b := New(gamepad.New())

	b.Write16(0xC000, 0xBEEF)

	assert.Equal(t, uint8(0xEF), b.Read8(0xC000))
	assert.Equal(t, uint8(0xBE), b.Read8(0xC001))
	assert.Equal(t, uint16(0xBEEF), b.Read16(0xC000))
}

func TestPowerUpIODefaults(t *testing.T) {
	b := New(gamepad.New())

	assert.Equal(t, uint8(0x91), b.Read8(addr.LCDC))
	assert.Equal(t, uint8(0xFC), b.Read8(addr.BGP))
	assert.Equal(t, uint8(0x00), b.Read8(addr.IE))
}

func TestJoypadSelectButtonsGroup(t *testing.T) {
	pad := gamepad.New()
	pad.SetButton(gamepad.A, true)
	b := New(pad)

	b.Write8(addr.P1, 0x20) // select buttons group

	v := b.Read8(addr.P1)
	assert.Equal(t, uint8(0), v&0x01)
}

func TestJoypadSelectDpadGroup(t *testing.T) {
	pad := gamepad.New()
	pad.SetButton(gamepad.Up, true)
	b := New(pad)

	b.Write8(addr.P1, 0x10) // select d-pad group

	v := b.Read8(addr.P1)
	assert.Equal(t, uint8(0), v&0x04, "Up is bit 2 of the d-pad nibble")
}

func TestJoypadUnusedBitsAlwaysReadOne(t *testing.T) {
	b := New(gamepad.New())

	b.Write8(addr.P1, 0x30) // deselect both groups, no buttons pressed

	assert.Equal(t, uint8(0xFF), b.Read8(addr.P1))
}

func TestJoypadHighNibbleReflectsSelector(t *testing.T) {
	b := New(gamepad.New())

	b.Write8(addr.P1, 0x20) // select buttons group
	assert.Equal(t, uint8(0xE0), b.Read8(addr.P1)&0xF0)

	b.Write8(addr.P1, 0x10) // select d-pad group
	assert.Equal(t, uint8(0xD0), b.Read8(addr.P1)&0xF0)

	b.Write8(addr.P1, 0x30) // deselect both groups
	assert.Equal(t, uint8(0xF0), b.Read8(addr.P1)&0xF0)
}

func TestRequestInterruptSetsIFBit(t *testing.T) {
	b := New(gamepad.New())

	b.RequestInterrupt(addr.TimerInterrupt)

	assert.True(t, b.ReadBit(addr.TimerInterrupt.Bit(), addr.IF))
}

func TestIFUnusedBitsAlwaysReadOne(t *testing.T) {
	b := New(gamepad.New())

	b.Write8(addr.IF, 0x00)

	assert.Equal(t, uint8(0xE0), b.Read8(addr.IF))
}
