package cpu

import "github.com/kayvane/dmgcore/bit"

func (c *CPU) pushStack(v uint16) {
	c.sp--
	c.bus.Write8(c.sp, bit.High(v))
	c.sp--
	c.bus.Write8(c.sp, bit.Low(v))
}

func (c *CPU) popStack() uint16 {
	lo := c.bus.Read8(c.sp)
	c.sp++
	hi := c.bus.Read8(c.sp)
	c.sp++
	return bit.Combine(hi, lo)
}

// inc increments an 8-bit register in place, updating Z/H (N cleared,
// C preserved).
func (c *CPU) inc(r *uint8) {
	halfCarry := (*r & 0x0F) == 0x0F
	*r++
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, halfCarry)
}

// dec decrements an 8-bit register in place, updating Z/H (N set,
// C preserved).
//
// H is set when the borrow propagates out of bit 4, i.e. when the low
// nibble of the pre-decrement value is 0.
func (c *CPU) dec(r *uint8) {
	halfCarry := (*r & 0x0F) == 0
	*r--
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, halfCarry)
}

func (c *CPU) addToA(value uint8) {
	a := c.a
	result := a + value

	c.setFlagToCondition(zeroFlag, result == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (a&0xF)+(value&0xF) > 0xF)
	c.setFlagToCondition(carryFlag, uint16(a)+uint16(value) > 0xFF)

	c.a = result
}

func (c *CPU) adcToA(value uint8) {
	a := c.a
	carry := c.flagToBit(carryFlag)
	result := int(a) + int(value) + int(carry)

	c.setFlagToCondition(zeroFlag, uint8(result) == 0)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (a&0xF)+(value&0xF)+carry > 0xF)
	c.setFlagToCondition(carryFlag, result > 0xFF)

	c.a = uint8(result)
}

// addToHL adds a 16-bit value into HL, updating H/C (bit 11→12 and
// bit 15→16 respectively).
func (c *CPU) addToHL(value uint16) {
	hl := c.getHL()
	result := hl + value

	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (hl&0x0FFF)+(value&0x0FFF) > 0x0FFF)
	c.setFlagToCondition(carryFlag, uint32(hl)+uint32(value) > 0xFFFF)

	c.setHL(result)
}

// sub subtracts value from A, setting the straight borrow-out in H/C.
func (c *CPU) sub(value uint8) {
	a := c.a
	result := a - value

	c.setFlagToCondition(zeroFlag, result == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (a&0xF) < (value&0xF))
	c.setFlagToCondition(carryFlag, a < value)

	c.a = result
}

// sbc subtracts value and the carry flag from A. The subtraction is
// performed in a wider type so that value==0xFF with carry==1 does not
// silently overflow before the borrow is folded in.
func (c *CPU) sbc(value uint8) {
	a := c.a
	carry := int(c.flagToBit(carryFlag))
	wide := int(value) + carry
	result := int(a) - wide

	c.setFlagToCondition(zeroFlag, uint8(result) == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, int(a&0xF)-int(value&0xF)-carry < 0)
	c.setFlagToCondition(carryFlag, result < 0)

	c.a = uint8(result)
}

func (c *CPU) cp(value uint8) {
	a := c.a
	result := a - value

	c.setFlagToCondition(zeroFlag, result == 0)
	c.setFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (a&0xF) < (value&0xF))
	c.setFlagToCondition(carryFlag, a < value)
}

func (c *CPU) and(value uint8) {
	c.a &= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) or(value uint8) {
	c.a |= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) xor(value uint8) {
	c.a ^= value
	c.setFlagToCondition(zeroFlag, c.a == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

func (c *CPU) cpl() {
	c.a = ^c.a
	c.setFlag(subFlag)
	c.setFlag(halfCarryFlag)
}

func (c *CPU) scf() {
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlag(carryFlag)
}

// rlca rotates A left, bit 7 into both bit 0 and the carry flag. Z is
// always cleared (it operates only on A, never zero-tested).
func (c *CPU) rlca() {
	carryOut := c.a&0x80 != 0
	c.a = (c.a << 1) | bit.GetBitValue(7, c.a)
	c.resetFlag(zeroFlag)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carryOut)
}

// rrca rotates A right, bit 0 into both bit 7 and the carry flag.
func (c *CPU) rrca() {
	carryOut := c.a&0x01 != 0
	c.a = (c.a >> 1) | (bit.GetBitValue(0, c.a) << 7)
	c.resetFlag(zeroFlag)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carryOut)
}

// rlc rotates r left through no carry-in, carry-out to C, updating Z.
func (c *CPU) rlc(r *uint8) {
	carryOut := *r&0x80 != 0
	*r = (*r << 1) | bit.GetBitValue(7, *r)
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carryOut)
}

func (c *CPU) rrc(r *uint8) {
	carryOut := *r&0x01 != 0
	*r = (*r >> 1) | (bit.GetBitValue(0, *r) << 7)
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carryOut)
}

// rl rotates r left through the carry flag.
func (c *CPU) rl(r *uint8) {
	carryIn := c.flagToBit(carryFlag)
	carryOut := *r&0x80 != 0
	*r = (*r << 1) | carryIn
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carryOut)
}

// rr rotates r right through the carry flag.
func (c *CPU) rr(r *uint8) {
	carryIn := c.flagToBit(carryFlag)
	carryOut := *r&0x01 != 0
	*r = (*r >> 1) | (carryIn << 7)
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carryOut)
}

func (c *CPU) sla(r *uint8) {
	carryOut := *r&0x80 != 0
	*r <<= 1
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carryOut)
}

// sra shifts r right, preserving bit 7 (arithmetic shift).
func (c *CPU) sra(r *uint8) {
	carryOut := *r&0x01 != 0
	topBit := *r & 0x80
	*r = (*r >> 1) | topBit
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carryOut)
}

// srl shifts r right, clearing bit 7 (logical shift).
func (c *CPU) srl(r *uint8) {
	carryOut := *r&0x01 != 0
	*r >>= 1
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carryOut)
}

// swap exchanges the high and low nibbles of r.
func (c *CPU) swap(r *uint8) {
	*r = (*r >> 4) | (*r << 4)
	c.setFlagToCondition(zeroFlag, *r == 0)
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.resetFlag(carryFlag)
}

// bitTest sets Z to the complement of bit index of value, sets H, clears
// N, and preserves C. It never modifies value.
func (c *CPU) bitTest(index uint8, value uint8) {
	c.setFlagToCondition(zeroFlag, !bit.IsSet(index, value))
	c.resetFlag(subFlag)
	c.setFlag(halfCarryFlag)
}

// res clears bit index of *r, leaving all flags untouched.
func (c *CPU) res(index uint8, r *uint8) {
	*r = bit.Reset(index, *r)
}

// set sets bit index of *r, leaving all flags untouched.
func (c *CPU) set(index uint8, r *uint8) {
	*r = bit.Set(index, *r)
}

// jr adds a signed 8-bit offset to PC (the offset byte itself has
// already been consumed by readImmediate by the time this is called).
func (c *CPU) jr(offset uint8) {
	c.pc = uint16(int32(c.pc) + int32(int8(offset)))
}
