package ppu

import (
	"testing"

	"github.com/kayvane/dmgcore/addr"
	"github.com/kayvane/dmgcore/gamepad"
	"github.com/kayvane/dmgcore/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPPU(t *testing.T) (*PPU, *memory.Bus) {
	t.Helper()
	bus := memory.New(gamepad.New())
	bus.Write8(addr.LCDC, 0x80) // LCD on, nothing else set
	return New(bus), bus
}

func TestScenarioLineCounterCyclesThroughModes(t *testing.T) {
	p, bus := newTestPPU(t)
	p.mode = ModeHBlank
	p.line = 0
	p.cycles = 0
	p.writeLY(0)
	p.writeMode(ModeHBlank)

	p.Tick(scanlineCycles)

	assert.Equal(t, 1, p.Line())
	assert.Equal(t, uint8(1), bus.Read8(addr.LY))
	assert.Equal(t, ModeHBlank, p.Mode())
}

func TestLCDCDisabledFreezesLineAndMode(t *testing.T) {
	p, bus := newTestPPU(t)
	bus.Write8(addr.LCDC, 0x00) // LCD off
	p.mode = ModeOAM
	p.line = 10
	startStat := bus.Read8(addr.STAT)

	p.Tick(100000)

	assert.Equal(t, 10, p.Line())
	assert.Equal(t, ModeOAM, p.Mode())
	assert.Equal(t, startStat, bus.Read8(addr.STAT))
}

func TestVBlankRequestsInterruptAndInvokesHook(t *testing.T) {
	p, bus := newTestPPU(t)
	p.mode = ModeHBlank
	p.line = visibleLines - 1
	p.cycles = hblankCycles

	called := false
	p.OnVBlank(func() { called = true })

	p.Tick(0)

	require.True(t, called)
	assert.Equal(t, ModeVBlank, p.Mode())
	assert.True(t, bus.ReadBit(addr.VBlankInterrupt.Bit(), addr.IF))
}

func TestVBlankWrapsAfterTenLines(t *testing.T) {
	p, bus := newTestPPU(t)
	p.mode = ModeVBlank
	p.line = totalLines - 1
	p.cycles = scanlineCycles

	p.Tick(0)

	assert.Equal(t, 0, p.Line())
	assert.Equal(t, ModeOAM, p.Mode())
	assert.Equal(t, uint8(0), bus.Read8(addr.LY))
}

func TestLYCCoincidenceSetsStatBit(t *testing.T) {
	p, bus := newTestPPU(t)
	bus.Write8(addr.LYC, 5)

	p.writeLY(5)

	assert.True(t, bus.ReadBit(statCoincBit, addr.STAT))

	p.writeLY(6)

	assert.False(t, bus.ReadBit(statCoincBit, addr.STAT))
}
