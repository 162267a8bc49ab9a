package cpu

import (
	"testing"

	"github.com/kayvane/dmgcore/gamepad"
	"github.com/kayvane/dmgcore/memory"
	"github.com/stretchr/testify/assert"
)

func newTestCPU(t *testing.T) *CPU {
	t.Helper()
	bus := memory.New(gamepad.New())
	return New(bus)
}

func TestSetFMasksLowNibble(t *testing.T) {
	c := newTestCPU(t)

	c.setF(0xFF)
	assert.Equal(t, uint8(0xF0), c.f, "F's low nibble must always read zero")
}

func TestSetAFMasksLowNibble(t *testing.T) {
	c := newTestCPU(t)

	c.setAF(0x1234)
	assert.Equal(t, uint8(0x12), c.a)
	assert.Equal(t, uint8(0x30), c.f)
}

func TestRegisterPairRoundTrip(t *testing.T) {
	c := newTestCPU(t)

	c.setBC(0xBEEF)
	assert.Equal(t, uint16(0xBEEF), c.getBC())
	assert.Equal(t, uint8(0xBE), c.b)
	assert.Equal(t, uint8(0xEF), c.c)

	c.setDE(0xCAFE)
	assert.Equal(t, uint16(0xCAFE), c.getDE())

	c.setHL(0x1337)
	assert.Equal(t, uint16(0x1337), c.getHL())
}

func TestFlagHelpers(t *testing.T) {
	c := newTestCPU(t)
	c.setF(0x00)

	c.setFlag(zeroFlag)
	assert.True(t, c.isSetFlag(zeroFlag))
	assert.Equal(t, uint8(1), c.flagToBit(zeroFlag))

	c.resetFlag(zeroFlag)
	assert.False(t, c.isSetFlag(zeroFlag))
	assert.Equal(t, uint8(0), c.flagToBit(zeroFlag))

	c.setFlagToCondition(carryFlag, true)
	assert.True(t, c.isSetFlag(carryFlag))
	c.setFlagToCondition(carryFlag, false)
	assert.False(t, c.isSetFlag(carryFlag))
}
