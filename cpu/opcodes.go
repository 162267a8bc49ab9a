package cpu

// registerUnprefixedOpcodes fills every unprefixed opcode slot that
// isn't part of the regular LD r,r' or ALU A,r8 grids (those are built
// by registerLDGrid/registerALUGrid). Invalid DMG opcodes are left
// unregistered; Decode reports them via UnsupportedOpcodeError.
func registerUnprefixedOpcodes() {
	opcodeMap[0x00] = opNOP
	opcodeMap[0x01] = opLDRPnn(rpBC)
	opcodeMap[0x02] = opLDMemA(func(c *CPU) uint16 { return c.getBC() })
	opcodeMap[0x03] = opIncRP(rpBC)
	opcodeMap[0x04] = opIncR8(r8B)
	opcodeMap[0x05] = opDecR8(r8B)
	opcodeMap[0x06] = opLDRn(r8B)
	opcodeMap[0x07] = opRLCA
	opcodeMap[0x08] = opLDAddrSP
	opcodeMap[0x09] = opAddHLRP(rpBC)
	opcodeMap[0x0A] = opLDAMem(func(c *CPU) uint16 { return c.getBC() })
	opcodeMap[0x0B] = opDecRP(rpBC)
	opcodeMap[0x0C] = opIncR8(r8C)
	opcodeMap[0x0D] = opDecR8(r8C)
	opcodeMap[0x0E] = opLDRn(r8C)
	opcodeMap[0x0F] = opRRCA

	opcodeMap[0x10] = opSTOP
	opcodeMap[0x11] = opLDRPnn(rpDE)
	opcodeMap[0x12] = opLDMemA(func(c *CPU) uint16 { return c.getDE() })
	opcodeMap[0x13] = opIncRP(rpDE)
	opcodeMap[0x14] = opIncR8(r8D)
	opcodeMap[0x15] = opDecR8(r8D)
	opcodeMap[0x16] = opLDRn(r8D)
	opcodeMap[0x17] = opRLA
	opcodeMap[0x18] = opJR
	opcodeMap[0x19] = opAddHLRP(rpDE)
	opcodeMap[0x1A] = opLDAMem(func(c *CPU) uint16 { return c.getDE() })
	opcodeMap[0x1B] = opDecRP(rpDE)
	opcodeMap[0x1C] = opIncR8(r8E)
	opcodeMap[0x1D] = opDecR8(r8E)
	opcodeMap[0x1E] = opLDRn(r8E)
	opcodeMap[0x1F] = opRRA

	opcodeMap[0x20] = opJRcc(ccNZ)
	opcodeMap[0x21] = opLDRPnn(rpHL)
	opcodeMap[0x22] = opLDHLIncA
	opcodeMap[0x23] = opIncRP(rpHL)
	opcodeMap[0x24] = opIncR8(r8H)
	opcodeMap[0x25] = opDecR8(r8H)
	opcodeMap[0x26] = opLDRn(r8H)
	opcodeMap[0x27] = opDAA
	opcodeMap[0x28] = opJRcc(ccZ)
	opcodeMap[0x29] = opAddHLRP(rpHL)
	opcodeMap[0x2A] = opLDAHLInc
	opcodeMap[0x2B] = opDecRP(rpHL)
	opcodeMap[0x2C] = opIncR8(r8L)
	opcodeMap[0x2D] = opDecR8(r8L)
	opcodeMap[0x2E] = opLDRn(r8L)
	opcodeMap[0x2F] = opCPL

	opcodeMap[0x30] = opJRcc(ccNC)
	opcodeMap[0x31] = opLDRPnn(rpSP)
	opcodeMap[0x32] = opLDHLDecA
	opcodeMap[0x33] = opIncRP(rpSP)
	opcodeMap[0x34] = opIncHLInd
	opcodeMap[0x35] = opDecHLInd
	opcodeMap[0x36] = opLDHLn
	opcodeMap[0x37] = opSCF
	opcodeMap[0x38] = opJRcc(ccC)
	opcodeMap[0x39] = opAddHLRP(rpSP)
	opcodeMap[0x3A] = opLDAHLDec
	opcodeMap[0x3B] = opDecRP(rpSP)
	opcodeMap[0x3C] = opIncR8(r8A)
	opcodeMap[0x3D] = opDecR8(r8A)
	opcodeMap[0x3E] = opLDRn(r8A)
	opcodeMap[0x3F] = opCCF

	opcodeMap[0x76] = opHALT

	opcodeMap[0xC0] = opRETcc(ccNZ)
	opcodeMap[0xC1] = opPOP(stkBC)
	opcodeMap[0xC2] = opJPcc(ccNZ)
	opcodeMap[0xC3] = opJP
	opcodeMap[0xC4] = opCALLcc(ccNZ)
	opcodeMap[0xC5] = opPUSH(stkBC)
	opcodeMap[0xC6] = opALUImm((*CPU).addToA)
	opcodeMap[0xC7] = opRST(0x00)
	opcodeMap[0xC8] = opRETcc(ccZ)
	opcodeMap[0xC9] = opRET
	opcodeMap[0xCA] = opJPcc(ccZ)
	opcodeMap[0xCC] = opCALLcc(ccZ)
	opcodeMap[0xCD] = opCALL
	opcodeMap[0xCE] = opALUImm((*CPU).adcToA)
	opcodeMap[0xCF] = opRST(0x08)

	opcodeMap[0xD0] = opRETcc(ccNC)
	opcodeMap[0xD1] = opPOP(stkDE)
	opcodeMap[0xD2] = opJPcc(ccNC)
	opcodeMap[0xD4] = opCALLcc(ccNC)
	opcodeMap[0xD5] = opPUSH(stkDE)
	opcodeMap[0xD6] = opALUImm((*CPU).sub)
	opcodeMap[0xD7] = opRST(0x10)
	opcodeMap[0xD8] = opRETcc(ccC)
	opcodeMap[0xD9] = opRETI
	opcodeMap[0xDA] = opJPcc(ccC)
	opcodeMap[0xDC] = opCALLcc(ccC)
	opcodeMap[0xDE] = opALUImm((*CPU).sbc)
	opcodeMap[0xDF] = opRST(0x18)

	opcodeMap[0xE0] = opLDHnA
	opcodeMap[0xE1] = opPOP(stkHL)
	opcodeMap[0xE2] = opLDCA
	opcodeMap[0xE5] = opPUSH(stkHL)
	opcodeMap[0xE6] = opALUImm((*CPU).and)
	opcodeMap[0xE7] = opRST(0x20)
	opcodeMap[0xE8] = opAddSPn
	opcodeMap[0xE9] = opJPHL
	opcodeMap[0xEA] = opLDAddrA
	opcodeMap[0xEE] = opALUImm((*CPU).xor)
	opcodeMap[0xEF] = opRST(0x28)

	opcodeMap[0xF0] = opLDHAn
	opcodeMap[0xF1] = opPOP(stkAF)
	opcodeMap[0xF2] = opLDAC
	opcodeMap[0xF3] = opDI
	opcodeMap[0xF5] = opPUSH(stkAF)
	opcodeMap[0xF6] = opALUImm((*CPU).or)
	opcodeMap[0xF7] = opRST(0x30)
	opcodeMap[0xF8] = opLDHLSPn
	opcodeMap[0xF9] = opLDSPHL
	opcodeMap[0xFA] = opLDAAddr
	opcodeMap[0xFB] = opEI
	opcodeMap[0xFE] = opALUImm((*CPU).cp)
	opcodeMap[0xFF] = opRST(0x38)
}

func opNOP(c *CPU) int { return 4 }

func opSTOP(c *CPU) int {
	c.readImmediate() // STOP is followed by a padding byte, conventionally 0x00
	return 4
}

func opHALT(c *CPU) int {
	c.halted = true
	return 4
}

func opDI(c *CPU) int {
	c.pendingIME = pendingDisable
	return 4
}

func opEI(c *CPU) int {
	c.pendingIME = pendingEnable
	return 4
}

func opRLCA(c *CPU) int { c.rlca(); return 4 }
func opRRCA(c *CPU) int { c.rrca(); return 4 }

func opRLA(c *CPU) int {
	c.rl(&c.a)
	c.resetFlag(zeroFlag)
	return 4
}

func opRRA(c *CPU) int {
	c.rr(&c.a)
	c.resetFlag(zeroFlag)
	return 4
}

func opCPL(c *CPU) int { c.cpl(); return 4 }
func opSCF(c *CPU) int { c.scf(); return 4 }

func opCCF(c *CPU) int {
	c.resetFlag(subFlag)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, !c.isSetFlag(carryFlag))
	return 4
}

// opDAA adjusts A to valid packed-BCD after an 8-bit add/sub, following
// the documented N/H/C-driven correction table.
func opDAA(c *CPU) int {
	a := c.a
	var adjust uint8
	carry := false

	if c.isSetFlag(subFlag) {
		if c.isSetFlag(halfCarryFlag) {
			adjust += 0x06
		}
		if c.isSetFlag(carryFlag) {
			adjust += 0x60
			carry = true
		}
		a -= adjust
	} else {
		if c.isSetFlag(halfCarryFlag) || a&0x0F > 0x09 {
			adjust += 0x06
		}
		if c.isSetFlag(carryFlag) || a > 0x99 {
			adjust += 0x60
			carry = true
		}
		a += adjust
	}

	c.a = a
	c.setFlagToCondition(zeroFlag, a == 0)
	c.resetFlag(halfCarryFlag)
	c.setFlagToCondition(carryFlag, carry)
	return 4
}

func opLDRn(dst uint8) Opcode {
	return func(c *CPU) int {
		c.setR8(dst, c.readImmediate())
		return 8
	}
}

func opLDHLn(c *CPU) int {
	c.bus.Write8(c.getHL(), c.readImmediate())
	return 12
}

func opLDRPnn(rp uint8) Opcode {
	return func(c *CPU) int {
		c.setRP(rp, c.readImmediateWord())
		return 12
	}
}

func opLDAddrSP(c *CPU) int {
	addr := c.readImmediateWord()
	c.bus.Write16(addr, c.sp)
	return 20
}

func opLDMemA(addrOf func(*CPU) uint16) Opcode {
	return func(c *CPU) int {
		c.bus.Write8(addrOf(c), c.a)
		return 8
	}
}

func opLDAMem(addrOf func(*CPU) uint16) Opcode {
	return func(c *CPU) int {
		c.a = c.bus.Read8(addrOf(c))
		return 8
	}
}

func opLDHLIncA(c *CPU) int {
	hl := c.getHL()
	c.bus.Write8(hl, c.a)
	c.setHL(hl + 1)
	return 8
}

func opLDHLDecA(c *CPU) int {
	hl := c.getHL()
	c.bus.Write8(hl, c.a)
	c.setHL(hl - 1)
	return 8
}

func opLDAHLInc(c *CPU) int {
	hl := c.getHL()
	c.a = c.bus.Read8(hl)
	c.setHL(hl + 1)
	return 8
}

func opLDAHLDec(c *CPU) int {
	hl := c.getHL()
	c.a = c.bus.Read8(hl)
	c.setHL(hl - 1)
	return 8
}

func opLDAddrA(c *CPU) int {
	c.bus.Write8(c.readImmediateWord(), c.a)
	return 16
}

func opLDAAddr(c *CPU) int {
	c.a = c.bus.Read8(c.readImmediateWord())
	return 16
}

func opLDHnA(c *CPU) int {
	offset := c.readImmediate()
	c.bus.Write8(0xFF00+uint16(offset), c.a)
	return 12
}

func opLDHAn(c *CPU) int {
	offset := c.readImmediate()
	c.a = c.bus.Read8(0xFF00 + uint16(offset))
	return 12
}

func opLDCA(c *CPU) int {
	c.bus.Write8(0xFF00+uint16(c.c), c.a)
	return 8
}

func opLDAC(c *CPU) int {
	c.a = c.bus.Read8(0xFF00 + uint16(c.c))
	return 8
}

// opIncR8 builds INC for the seven plain 8-bit registers; (HL) has its
// own opIncHLInd since it has no addressable Go variable.
func opIncR8(idx uint8) Opcode {
	return func(c *CPU) int {
		c.inc(c.r8Ptr(idx))
		return 4
	}
}

func opDecR8(idx uint8) Opcode {
	return func(c *CPU) int {
		c.dec(c.r8Ptr(idx))
		return 4
	}
}

func opIncHLInd(c *CPU) int {
	hl := c.getHL()
	v := c.bus.Read8(hl)
	c.inc(&v)
	c.bus.Write8(hl, v)
	return 12
}

func opDecHLInd(c *CPU) int {
	hl := c.getHL()
	v := c.bus.Read8(hl)
	c.dec(&v)
	c.bus.Write8(hl, v)
	return 12
}

func opIncRP(rp uint8) Opcode {
	return func(c *CPU) int {
		c.setRP(rp, c.getRP(rp)+1)
		return 8
	}
}

func opDecRP(rp uint8) Opcode {
	return func(c *CPU) int {
		c.setRP(rp, c.getRP(rp)-1)
		return 8
	}
}

func opAddHLRP(rp uint8) Opcode {
	return func(c *CPU) int {
		c.addToHL(c.getRP(rp))
		return 8
	}
}

func opALUImm(op func(*CPU, uint8)) Opcode {
	return func(c *CPU) int {
		op(c, c.readImmediate())
		return 8
	}
}

// addSPSigned adds a signed 8-bit immediate to a 16-bit base, with H/C
// computed from the unsigned low byte as DMG hardware does for both
// ADD SP,n and LD HL,SP+n.
func addSPSigned(c *CPU, base uint16, offset uint8) uint16 {
	result := uint16(int32(base) + int32(int8(offset)))
	c.resetFlag(zeroFlag)
	c.resetFlag(subFlag)
	c.setFlagToCondition(halfCarryFlag, (base&0x0F)+uint16(offset&0x0F) > 0x0F)
	c.setFlagToCondition(carryFlag, (base&0xFF)+uint16(offset) > 0xFF)
	return result
}

func opAddSPn(c *CPU) int {
	offset := c.readImmediate()
	c.sp = addSPSigned(c, c.sp, offset)
	return 16
}

func opLDHLSPn(c *CPU) int {
	offset := c.readImmediate()
	c.setHL(addSPSigned(c, c.sp, offset))
	return 12
}

func opLDSPHL(c *CPU) int {
	c.sp = c.getHL()
	return 8
}

func opPUSH(stk uint8) Opcode {
	return func(c *CPU) int {
		c.pushStack(c.getStackPair(stk))
		return 16
	}
}

func opPOP(stk uint8) Opcode {
	return func(c *CPU) int {
		c.setStackPair(stk, c.popStack())
		return 12
	}
}

func opJR(c *CPU) int {
	offset := c.readImmediate()
	c.jr(offset)
	return 12
}

func opJRcc(cc uint8) Opcode {
	return func(c *CPU) int {
		offset := c.readImmediate()
		if c.checkCondition(cc) {
			c.jr(offset)
			return 12
		}
		return 8
	}
}

func opJP(c *CPU) int {
	c.pc = c.readImmediateWord()
	return 16
}

func opJPcc(cc uint8) Opcode {
	return func(c *CPU) int {
		target := c.readImmediateWord()
		if c.checkCondition(cc) {
			c.pc = target
			return 16
		}
		return 12
	}
}

func opJPHL(c *CPU) int {
	c.pc = c.getHL()
	return 4
}

func opCALL(c *CPU) int {
	target := c.readImmediateWord()
	c.pushStack(c.pc)
	c.pc = target
	return 24
}

func opCALLcc(cc uint8) Opcode {
	return func(c *CPU) int {
		target := c.readImmediateWord()
		if c.checkCondition(cc) {
			c.pushStack(c.pc)
			c.pc = target
			return 24
		}
		return 12
	}
}

func opRET(c *CPU) int {
	c.pc = c.popStack()
	return 16
}

func opRETcc(cc uint8) Opcode {
	return func(c *CPU) int {
		if c.checkCondition(cc) {
			c.pc = c.popStack()
			return 20
		}
		return 8
	}
}

func opRETI(c *CPU) int {
	c.pc = c.popStack()
	c.interruptsEnabled = true
	c.pendingIME = pendingNone
	return 16
}

func opRST(vector uint16) Opcode {
	return func(c *CPU) int {
		c.pushStack(c.pc)
		c.pc = vector
		return 16
	}
}
