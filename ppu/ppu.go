// Package ppu implements the DMG's pixel-processing-unit timing state
// machine: the mode sequence, scanline counter, and STAT/VBlank
// interrupt requests. Pixel rasterization is out of scope — this
// package only tracks when a frame is ready and keeps LY/STAT
// consistent for anything that reads them off the bus.
package ppu

import (
	"github.com/kayvane/dmgcore/addr"
	"github.com/kayvane/dmgcore/bit"
	"github.com/kayvane/dmgcore/memory"
)

// Mode identifies the PPU's current stage, matching STAT bits 1-0.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeVRAM   Mode = 3
)

const (
	oamCycles      = 80
	vramCycles     = 172
	hblankCycles   = 204
	scanlineCycles = oamCycles + vramCycles + hblankCycles // 456
	visibleLines   = 144
	totalLines     = 154
	vblankLines    = totalLines - visibleLines // 10
)

const (
	statLYCBit    = 6
	statOAMBit    = 5
	statVBlankBit = 4
	statHBlankBit = 3
	statCoincBit  = 2
)

// PPU owns the mode/line counters and drives STAT/LY/VBlank bus state.
type PPU struct {
	bus *memory.Bus

	mode   Mode
	line   int
	cycles int

	// onVBlank is the optional frame-completion hook: called with no
	// payload exactly once per frame, on entering VBlank.
	onVBlank func()
}

// New returns a PPU wired to bus, starting in OAM-scan at line 0, the
// state the DMG boot ROM hands control over in.
func New(bus *memory.Bus) *PPU {
	p := &PPU{bus: bus, mode: ModeOAM, line: 0}
	p.writeMode(ModeOAM)
	p.writeLY(0)
	return p
}

// OnVBlank registers the optional frame-completion hook. Passing nil
// clears it. The core functions with no hook registered at all.
func (p *PPU) OnVBlank(hook func()) {
	p.onVBlank = hook
}

// Mode returns the PPU's current mode.
func (p *PPU) Mode() Mode { return p.mode }

// Line returns the current value of LY (0..153).
func (p *PPU) Line() int { return p.line }

func (p *PPU) lcdEnabled() bool {
	return p.bus.ReadBit(7, addr.LCDC)
}

// Tick advances the PPU state machine by cycles worth of clock ticks.
// If LCDC bit 7 is clear, LY/STAT/mode are frozen.
func (p *PPU) Tick(cycles int) {
	if !p.lcdEnabled() {
		return
	}

	p.cycles += cycles

	for {
		advanced := false

		switch p.mode {
		case ModeOAM:
			if p.cycles < oamCycles {
				return
			}
			p.cycles -= oamCycles
			p.enterMode(ModeVRAM)
			advanced = true
		case ModeVRAM:
			if p.cycles < vramCycles {
				return
			}
			p.cycles -= vramCycles
			p.enterMode(ModeHBlank)
			advanced = true
		case ModeHBlank:
			if p.cycles < hblankCycles {
				return
			}
			p.cycles -= hblankCycles
			p.advanceLine()
			advanced = true
		case ModeVBlank:
			if p.cycles < scanlineCycles {
				return
			}
			p.cycles -= scanlineCycles
			p.advanceVBlankLine()
			advanced = true
		}

		if !advanced {
			return
		}
	}
}

func (p *PPU) advanceLine() {
	p.writeLY(p.line + 1)
	if p.line >= visibleLines {
		p.enterMode(ModeVBlank)
		p.bus.RequestInterrupt(addr.VBlankInterrupt)
		if p.statInterruptArmed(statVBlankBit) {
			p.bus.RequestInterrupt(addr.LCDSTATInterrupt)
		}
		if p.onVBlank != nil {
			p.onVBlank()
		}
		return
	}
	p.enterMode(ModeOAM)
	if p.statInterruptArmed(statOAMBit) {
		p.bus.RequestInterrupt(addr.LCDSTATInterrupt)
	}
}

func (p *PPU) advanceVBlankLine() {
	nextLine := p.line + 1
	if nextLine >= totalLines {
		p.writeLY(0)
		p.enterMode(ModeOAM)
		if p.statInterruptArmed(statOAMBit) {
			p.bus.RequestInterrupt(addr.LCDSTATInterrupt)
		}
		return
	}
	p.writeLY(nextLine)
}

func (p *PPU) enterMode(mode Mode) {
	p.mode = mode
	p.writeMode(mode)
	if mode == ModeHBlank && p.statInterruptArmed(statHBlankBit) {
		p.bus.RequestInterrupt(addr.LCDSTATInterrupt)
	}
}

func (p *PPU) writeMode(mode Mode) {
	stat := p.bus.Read8(addr.STAT)
	stat = (stat &^ 0x03) | uint8(mode)
	p.bus.Write8(addr.STAT, stat)
}

func (p *PPU) writeLY(line int) {
	p.line = line
	p.bus.Write8(addr.LY, uint8(line))

	lyc := p.bus.Read8(addr.LYC)
	coincident := uint8(line) == lyc
	p.bus.SetBit(statCoincBit, addr.STAT, coincident)

	if coincident && p.statInterruptArmed(statLYCBit) {
		p.bus.RequestInterrupt(addr.LCDSTATInterrupt)
	}
}

func (p *PPU) statInterruptArmed(bitIndex uint8) bool {
	return bit.IsSet(bitIndex, p.bus.Read8(addr.STAT))
}
