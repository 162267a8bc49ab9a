// Package memory implements the DMG's 64 KiB memory bus: a flat byte
// array with a fixed region layout, typed 8/16-bit access, and the I/O
// register side effects the core requires (joypad select, power-up
// defaults).
package memory

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/kayvane/dmgcore/addr"
	"github.com/kayvane/dmgcore/bit"
	"github.com/kayvane/dmgcore/gamepad"
)

// ROMSize is the only accepted cartridge ROM size: no bank switching is
// modeled, so the whole 32 KiB ROM area is loaded verbatim.
const ROMSize = 0x8000

// ErrInvalidROMSize is returned by LoadROM when the supplied data is not
// exactly ROMSize bytes long.
var ErrInvalidROMSize = errors.New("memory: invalid ROM size")

// Bus owns the full 64 KiB DMG address space.
type Bus struct {
	data    [0x10000]byte
	romSize int
	pad     *gamepad.Gamepad
}

// New returns a Bus with no ROM loaded and the documented power-up I/O
// defaults applied.
func New(pad *gamepad.Gamepad) *Bus {
	b := &Bus{pad: pad}
	b.applyPowerUpIO()
	return b
}

// LoadROM fills the first 32 KiB of the address space with rom. Any size
// other than ROMSize is rejected.
func (b *Bus) LoadROM(rom []byte) error {
	if len(rom) != ROMSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidROMSize, len(rom), ROMSize)
	}
	copy(b.data[0:ROMSize], rom)
	b.romSize = len(rom)
	return nil
}

// Read8 returns the byte at addr.
func (b *Bus) Read8(address uint16) uint8 {
	if address == addr.P1 {
		return b.readJoypad()
	}
	if address == addr.IF {
		// The upper 3 bits of IF are unused and always read as 1.
		return b.data[address] | 0xE0
	}
	return b.data[address]
}

// Read16 returns the little-endian 16-bit value at addr/addr+1.
func (b *Bus) Read16(address uint16) uint16 {
	lo := b.Read8(address)
	hi := b.Read8(address + 1)
	return bit.Combine(hi, lo)
}

// Write8 stores v at addr, applying the joypad-select side effect when
// addr is the P1 register.
func (b *Bus) Write8(address uint16, v uint8) {
	switch address {
	case addr.P1:
		// Only bits 4-5 (the selector) are writable.
		b.data[address] = v & 0x30
	case addr.IF:
		b.data[address] = v | 0xE0
	default:
		b.data[address] = v
	}
}

// Write16 stores v little-endian at addr/addr+1.
func (b *Bus) Write16(address uint16, v uint16) {
	b.Write8(address, bit.Low(v))
	b.Write8(address+1, bit.High(v))
}

// ReadBit reports whether the given bit of the byte at addr is set.
func (b *Bus) ReadBit(index uint8, address uint16) bool {
	return bit.IsSet(index, b.Read8(address))
}

// SetBit sets or clears a single bit of the byte at addr.
func (b *Bus) SetBit(index uint8, address uint16, set bool) {
	v := b.Read8(address)
	if set {
		v = bit.Set(index, v)
	} else {
		v = bit.Reset(index, v)
	}
	b.Write8(address, v)
}

// RequestInterrupt sets the IF bit for the given interrupt source.
func (b *Bus) RequestInterrupt(i addr.Interrupt) {
	flags := b.Read8(addr.IF)
	b.Write8(addr.IF, bit.Set(i.Bit(), flags))
}

// readJoypad computes the P1 register read value: the selector bits
// (4, 5) choose which button nibble, if any, is reflected in the low
// nibble. Bits 6-7 are unused and always read as 1, same as IF's unused
// bits above.
func (b *Bus) readJoypad() uint8 {
	selector := b.data[addr.P1] & 0x30
	selectButtons := !bit.IsSet(4, selector) // bit 4 clear -> P14 selected
	selectDpad := !bit.IsSet(5, selector)    // bit 5 clear -> P15 selected

	var low uint8
	switch {
	case selectButtons && !selectDpad:
		low = b.pad.ButtonsNibble()
	case selectDpad && !selectButtons:
		low = b.pad.DpadNibble()
	default:
		low = 0x0F
	}

	return 0xC0 | selector | low
}

// applyPowerUpIO writes the documented post-boot I/O register table
// verbatim.
func (b *Bus) applyPowerUpIO() {
	table := map[uint16]uint8{
		addr.TIMA: 0x00,
		addr.TMA:  0x00,
		addr.TAC:  0x00,
		addr.NR10: 0x80,
		addr.NR11: 0xBF,
		addr.NR12: 0xF3,
		addr.NR14: 0xBF,
		addr.NR21: 0x3F,
		addr.NR22: 0x00,
		addr.NR24: 0xBF,
		addr.NR30: 0x7F,
		addr.NR31: 0xFF,
		addr.NR32: 0x9F,
		addr.NR33: 0xBF,
		addr.NR41: 0xFF,
		addr.NR42: 0x00,
		addr.NR43: 0x00,
		addr.NR44: 0xBF,
		addr.NR50: 0x77,
		addr.NR51: 0xF3,
		addr.NR52: 0xF1,
		addr.LCDC: 0x91,
		addr.SCY:  0x00,
		addr.SCX:  0x00,
		addr.LYC:  0x00,
		addr.BGP:  0xFC,
		addr.OBP0: 0xFF,
		addr.OBP1: 0xFF,
		addr.WY:   0x00,
		addr.WX:   0x00,
		addr.IE:   0x00,
	}

	for a, v := range table {
		b.data[a] = v
	}

	slog.Debug("applied power-up I/O defaults", "registers", len(table))
}
