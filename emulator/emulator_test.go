package emulator

import (
	"testing"

	"github.com/kayvane/dmgcore/gamepad"
	"github.com/kayvane/dmgcore/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func romOf(size int, fill func(rom []byte)) []byte {
	rom := make([]byte, size)
	if fill != nil {
		fill(rom)
	}
	return rom
}

func TestLoadROMRejectsWrongSize(t *testing.T) {
	e := New()

	err := e.LoadROM(make([]byte, 100))

	require.Error(t, err)
	assert.ErrorIs(t, err, memory.ErrInvalidROMSize)
}

func TestStepRetiresNOPAndReportsCycles(t *testing.T) {
	e := New()
	e.DisablePacing()
	rom := romOf(memory.ROMSize, func(rom []byte) {
		rom[0x100] = 0x00 // NOP
	})
	require.NoError(t, e.LoadROM(rom))

	cycles, err := e.Step()

	require.NoError(t, err)
	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint16(0x0101), e.CPU().PC())
}

func TestStepConvertsUnsupportedOpcodePanicToError(t *testing.T) {
	e := New()
	e.DisablePacing()
	rom := romOf(memory.ROMSize, func(rom []byte) {
		rom[0x100] = 0xD3 // invalid on DMG
	})
	require.NoError(t, e.LoadROM(rom))

	_, err := e.Step()

	require.Error(t, err)
}

func TestSetButtonReachesGamepadThroughBus(t *testing.T) {
	e := New()
	e.SetButton(gamepad.A, true)

	e.Bus().Write8(0xFF00, 0x20) // select buttons group (bit4/P14 clear, bit5/P15 set)
	v := e.Bus().Read8(0xFF00)

	assert.Equal(t, uint8(0), v&0x01, "A pressed should read as 0")
}

func TestRunFrameInvokesVBlankHookExactlyOnce(t *testing.T) {
	e := New()
	e.DisablePacing()
	rom := romOf(memory.ROMSize, func(rom []byte) {
		for i := 0x100; i < memory.ROMSize; i++ {
			rom[i] = 0x00 // NOP forever
		}
	})
	require.NoError(t, e.LoadROM(rom))

	calls := 0
	e.OnVBlank(func() { calls++ })

	require.NoError(t, e.RunFrame())

	assert.Equal(t, 1, calls)
}
