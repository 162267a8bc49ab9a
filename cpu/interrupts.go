package cpu

import "github.com/kayvane/dmgcore/addr"

// interruptPending reports whether any interrupt source is both enabled
// (IE) and flagged (IF), regardless of IME. This is what wakes the CPU
// from HALT even when interrupts are globally disabled.
func (c *CPU) interruptPending() bool {
	ie := c.bus.Read8(addr.IE)
	iflags := c.bus.Read8(addr.IF)
	return ie&iflags&0x1F != 0
}

// handleInterrupts dispatches the single highest-priority pending
// interrupt, if IME is set and one is pending. Dispatch clears IME,
// clears the corresponding IF bit (not IE), pushes PC, jumps to the
// source's vector, and charges the fixed 20-cycle dispatch cost.
func (c *CPU) handleInterrupts() (dispatched bool, cycles int) {
	ie := c.bus.Read8(addr.IE)
	iflags := c.bus.Read8(addr.IF)
	pending := ie & iflags & 0x1F

	if pending == 0 {
		return false, 0
	}

	for _, source := range addr.Priority {
		if pending&uint8(source) == 0 {
			continue
		}

		c.interruptsEnabled = false
		c.pendingIME = pendingNone
		c.bus.Write8(addr.IF, iflags&^uint8(source))
		c.pushStack(c.pc)
		c.pc = source.Vector()
		return true, 20
	}

	panic(&ImpossibleInterruptStateError{IE: ie, IF: iflags})
}
