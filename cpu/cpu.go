// Package cpu implements the Sharp LR35902 instruction decoder and
// executor: registers, flags, opcode dispatch, and interrupt dispatch.
package cpu

import (
	"fmt"

	"github.com/kayvane/dmgcore/memory"
)

// pendingIMETransition models the one-instruction delay on EI/DI as a
// single pending transition.
type pendingIMETransition uint8

const (
	pendingNone pendingIMETransition = iota
	pendingEnable
	pendingDisable
)

// CPU holds the full register, flag, and interrupt state of the Sharp
// LR35902.
type CPU struct {
	bus *memory.Bus

	a, f   uint8
	b, c   uint8
	d, e   uint8
	h, l   uint8
	sp, pc uint16

	currentOpcode uint16

	interruptsEnabled bool
	pendingIME        pendingIMETransition

	halted  bool
	haltBug bool

	cycles uint64
}

// UnsupportedOpcodeError is returned (as a panic value, recovered by the
// top-level emulator loop) when the decoder encounters a byte it does
// not implement.
type UnsupportedOpcodeError struct {
	Opcode uint16
	PC     uint16
}

func (e *UnsupportedOpcodeError) Error() string {
	return fmt.Sprintf("cpu: unsupported opcode 0x%04X at PC=0x%04X", e.Opcode, e.PC)
}

// ImpossibleInterruptStateError is the panic value handleInterrupts
// raises if a pending interrupt bit matches no entry of addr.Priority.
// Pending bits are masked to the five standard sources before the scan,
// so non-standard bits written into IE/IF are ignored rather than
// reported, and this error is not raised in practice.
type ImpossibleInterruptStateError struct {
	IE, IF uint8
}

func (e *ImpossibleInterruptStateError) Error() string {
	return fmt.Sprintf("cpu: impossible interrupt state, IE=0x%02X IF=0x%02X match no priority bit", e.IE, e.IF)
}

// New returns a CPU wired to bus, initialized to the documented DMG
// power-up register state.
func New(bus *memory.Bus) *CPU {
	c := &CPU{bus: bus}
	c.powerUp()
	return c
}

// powerUp sets the documented post-boot register values.
func (c *CPU) powerUp() {
	c.a = 0x01
	c.setF(0xB0) // Z=1, N=0, H=1, C=1
	c.setBC(0x0013)
	c.setDE(0x00D8)
	c.setHL(0x014D)
	c.sp = 0xFFFE
	c.pc = 0x0100
	c.interruptsEnabled = false
	c.pendingIME = pendingNone
	c.halted = false
	c.haltBug = false
}

// PC returns the current program counter, mainly for diagnostics/tests.
func (c *CPU) PC() uint16 { return c.pc }

// SP returns the current stack pointer, mainly for diagnostics/tests.
func (c *CPU) SP() uint16 { return c.sp }

// IME reports whether the interrupt master enable is currently set.
func (c *CPU) IME() bool { return c.interruptsEnabled }

// Halted reports whether the CPU is currently halted (HALT executed,
// waiting for an interrupt).
func (c *CPU) Halted() bool { return c.halted }

// Step decodes and executes a single instruction (or, if halted, a
// no-op "wait" step), applies the EI/DI delay, dispatches at most one
// pending interrupt, and returns the number of cycles retired.
//
// Step panics with *UnsupportedOpcodeError or
// *ImpossibleInterruptStateError on the two unrecoverable error kinds;
// callers that want to turn those into ordinary errors should recover
// at the call site (see the emulator package).
func (c *CPU) Step() int {
	var cycles int

	// A pending IME transition from the instruction before this one
	// becomes visible now, at the start of this step, so that EI's
	// effect is live for this step's own end-of-step interrupt check but
	// was not live during EI's own step.
	c.applyPendingIME()

	if c.halted {
		cycles = 4
		if c.interruptPending() {
			c.halted = false
			if !c.interruptsEnabled {
				c.haltBug = true
			}
		}
	} else {
		opcode := Decode(c)
		if c.haltBug {
			// HALT bug: PC fails to advance past this opcode, so the
			// next fetch re-reads the same byte.
			c.haltBug = false
			cycles = opcode(c)
		} else {
			c.advancePastOpcode()
			cycles = opcode(c)
		}
	}

	if c.interruptsEnabled {
		dispatched, dispatchCycles := c.handleInterrupts()
		if dispatched {
			cycles += dispatchCycles
		}
	}

	c.cycles += uint64(cycles)
	return cycles
}

func (c *CPU) applyPendingIME() {
	switch c.pendingIME {
	case pendingEnable:
		c.interruptsEnabled = true
		c.pendingIME = pendingNone
	case pendingDisable:
		c.interruptsEnabled = false
		c.pendingIME = pendingNone
	}
}

// readImmediate reads the byte immediately following the opcode and
// advances PC by one. Used for n-type operands.
func (c *CPU) readImmediate() uint8 {
	v := c.bus.Read8(c.pc)
	c.pc++
	return v
}

// readImmediateWord reads the 16-bit value immediately following the
// opcode and advances PC by two. Used for nn-type operands.
func (c *CPU) readImmediateWord() uint16 {
	v := c.bus.Read16(c.pc)
	c.pc += 2
	return v
}
