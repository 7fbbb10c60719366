/*
Copyright (C) 2019-2020 The z80core Authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

package cpu

import (
	"github.com/z80sim/z80core/processor"
	"github.com/z80sim/z80core/processor/validator"
)

// Step executes exactly one instruction (or, while RESET is held, does
// nothing and reports that) and returns the number of T-states it consumed
// together with the fault, if any, that stopped it partway through. A
// fault leaves the register file exactly as it stood at the last completed
// instruction boundary; the cycle counter keeps only the T-states ticked
// before the fault, and memory or port writes that completed before it stay.
func (c *CPU) Step() (int, error) {
	c.err = nil
	c.stepCycles = 0

	if c.resetLine {
		return 0, processor.ErrCPUReset
	}

	regsBefore := c.Registers
	if c.serviceInterrupts() {
		if c.err != nil {
			c.Registers = regsBefore
		}
		return c.stepCycles, c.err
	}

	if c.Halted {
		c.tick(4)
		return c.stepCycles, c.err
	}

	startPC := c.PC
	if c.trace != nil {
		if err := c.trace.Step(startPC, &c.Registers); err != nil {
			return c.stepCycles, err
		}
	}

	c.dispValid = false
	op := c.fetchOpcodeByte()
	m := modeHL
	for op == 0xDD || op == 0xFD {
		c.tick(4)
		if op == 0xDD {
			m = modeIX
		} else {
			m = modeIY
		}
		op = c.fetchOpcodeByte()
	}

	validator.Begin(op, startPC, regsBefore)

	switch op {
	case 0xCB:
		if m != modeHL {
			c.executeIndexedCB(m)
		} else {
			c.executeCB()
		}
	case 0xED:
		c.executeED()
	default:
		c.executeBase(op, m)
	}

	if c.err == nil {
		c.stats.NumInstructions++
		validator.End(c.Registers, c.cycles)
	} else {
		c.Registers = regsBefore
		validator.Discard()
	}
	return c.stepCycles, c.err
}

// Run steps the CPU until at least n T-states have elapsed, stopping early
// on the first fault or on a RESET being asserted, and returns the number
// of T-states actually consumed. Because Run never steps a partial
// instruction, the result can overshoot n; it returns less than n only
// when it stopped early on a fault or on RESET.
func (c *CPU) Run(n int) (int, error) {
	total := 0
	for total < n {
		got, err := c.Step()
		total += got
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (c *CPU) aluOp(grp byte, b byte) {
	switch grp {
	case 0:
		c.A, c.F = add8(c.A, b, false)
	case 1:
		c.A, c.F = add8(c.A, b, c.F.GetBool(processor.FlagC))
	case 2:
		c.A, c.F = sub8(c.A, b, false)
	case 3:
		c.A, c.F = sub8(c.A, b, c.F.GetBool(processor.FlagC))
	case 4:
		c.A, c.F = and8(c.A, b)
	case 5:
		c.A, c.F = xor8(c.A, b)
	case 6:
		c.A, c.F = or8(c.A, b)
	case 7:
		_, c.F = sub8(c.A, b, false) // CP: flags only
	}
}

func (c *CPU) executeBase(op byte, m mode) {
	switch {
	case op == 0x00: // NOP
		c.tick(4)
	case op == 0x76: // HALT
		c.Halted = true
		c.tick(4)
	case op&0xC0 == 0x40: // LD r,r'
		dst, src := (op>>3)&7, op&7
		v := c.reg8(src, m)
		c.setReg8(dst, m, v)
		if m != modeHL && (dst == 6 || src == 6) {
			c.tick(15) // 19T total, less the 4T prefix already ticked
		} else {
			c.tick(4)
		}
	case op&0xC0 == 0x80: // ALU A,r
		grp, r := (op>>3)&7, op&7
		v := c.reg8(r, m)
		c.aluOp(grp, v)
		if m != modeHL && r == 6 {
			c.tick(15) // 19T total, less the 4T prefix already ticked
		} else {
			c.tick(4)
		}
	case op&0xC7 == 0x06: // LD r,n
		r := (op >> 3) & 7
		var addr uint16
		if m != modeHL && r == 6 {
			addr = c.dispAddr(m)
		}
		n := c.fetchByte()
		if m != modeHL && r == 6 {
			c.writeMem(addr, n)
			c.tick(15) // 19T total, less the 4T prefix already ticked
		} else {
			c.setReg8(r, m, n)
			c.tick(7)
		}
	case op&0xC7 == 0x04: // INC r
		r := (op >> 3) & 7
		v := c.reg8(r, m)
		old := c.F & processor.FlagC
		v, c.F = inc8(v)
		c.F |= old
		c.setReg8(r, m, v)
		if r == 6 {
			if m == modeHL {
				c.tick(11)
			} else {
				c.tick(19) // 23T total, less the 4T prefix already ticked
			}
		} else {
			c.tick(4)
		}
	case op&0xC7 == 0x05: // DEC r
		r := (op >> 3) & 7
		v := c.reg8(r, m)
		old := c.F & processor.FlagC
		v, c.F = dec8(v)
		c.F |= old
		c.setReg8(r, m, v)
		if r == 6 {
			if m == modeHL {
				c.tick(11)
			} else {
				c.tick(19) // 23T total, less the 4T prefix already ticked
			}
		} else {
			c.tick(4)
		}
	case op&0xC7 == 0xC6: // ALU A,n
		grp := (op >> 3) & 7
		n := c.fetchByte()
		c.aluOp(grp, n)
		c.tick(7)
	case op&0xCF == 0x01: // LD rr,nn
		nn := c.fetchWord()
		c.setReg16((op>>4)&3, m, nn)
		if m == modeHL {
			c.tick(10)
		} else {
			c.tick(10) // 14T total, less the 4T prefix already ticked
		}
	case op&0xCF == 0x03: // INC rr
		c.setReg16((op>>4)&3, m, c.reg16((op>>4)&3, m)+1)
		if m == modeHL {
			c.tick(6)
		} else {
			c.tick(6) // 10T total, less the 4T prefix already ticked
		}
	case op&0xCF == 0x0B: // DEC rr
		c.setReg16((op>>4)&3, m, c.reg16((op>>4)&3, m)-1)
		if m == modeHL {
			c.tick(6)
		} else {
			c.tick(6) // 10T total, less the 4T prefix already ticked
		}
	case op&0xCF == 0x09: // ADD HL/IX/IY,rr
		a := c.indexVal(m)
		b := c.reg16((op>>4)&3, m)
		var r uint16
		r, c.F = addIndexNoFlags(a, b, c.F)
		c.setIndexVal(m, r)
		if m == modeHL {
			c.tick(11)
		} else {
			c.tick(11) // 15T total, less the 4T prefix already ticked
		}
	case op&0xCF == 0xC1: // POP rr
		c.setReg16Stack((op>>4)&3, m, c.pop16())
		if m == modeHL {
			c.tick(10)
		} else {
			c.tick(10) // 14T total, less the 4T prefix already ticked
		}
	case op&0xCF == 0xC5: // PUSH rr
		c.push16(c.reg16Stack((op>>4)&3, m))
		if m == modeHL {
			c.tick(11)
		} else {
			c.tick(11) // 15T total, less the 4T prefix already ticked
		}
	case op&0xC7 == 0xC0: // RET cc
		if c.condTrue((op >> 3) & 7) {
			c.PC = c.pop16()
			c.tick(11)
		} else {
			c.tick(5)
		}
	case op&0xC7 == 0xC2: // JP cc,nn
		nn := c.fetchWord()
		if c.condTrue((op >> 3) & 7) {
			c.PC = nn
		}
		c.tick(10)
	case op&0xC7 == 0xC4: // CALL cc,nn
		nn := c.fetchWord()
		if c.condTrue((op >> 3) & 7) {
			c.push16(c.PC)
			c.PC = nn
			c.tick(17)
		} else {
			c.tick(10)
		}
	case op&0xC7 == 0xC7: // RST p
		p := op & 0x38
		c.push16(c.PC)
		c.PC = processor.RSTVectors[p>>3]
		c.tick(11)
	case op&0xE7 == 0x20: // JR cc,e
		e := int8(c.fetchByte())
		if c.condTrue((op >> 3) & 3) {
			c.PC = uint16(int32(c.PC) + int32(e))
			c.tick(12)
		} else {
			c.tick(7)
		}
	default:
		c.executeBaseIrregular(op, m)
	}
}

// executeBaseIrregular handles the base-page opcodes that don't fall into
// any of the regular bit-field patterns above.
func (c *CPU) executeBaseIrregular(op byte, m mode) {
	switch op {
	case 0x02:
		c.writeMem(c.BC(), c.A)
		c.tick(7)
	case 0x0A:
		c.A = c.readMem(c.BC())
		c.tick(7)
	case 0x12:
		c.writeMem(c.DE(), c.A)
		c.tick(7)
	case 0x1A:
		c.A = c.readMem(c.DE())
		c.tick(7)
	case 0x07:
		v, carry := rlc(c.A)
		c.A = v
		c.F = fastRotFlags(c.F, carry)
		c.tick(4)
	case 0x0F:
		v, carry := rrc(c.A)
		c.A = v
		c.F = fastRotFlags(c.F, carry)
		c.tick(4)
	case 0x17:
		v, carry := rl(c.A, c.F.GetBool(processor.FlagC))
		c.A = v
		c.F = fastRotFlags(c.F, carry)
		c.tick(4)
	case 0x1F:
		v, carry := rr(c.A, c.F.GetBool(processor.FlagC))
		c.A = v
		c.F = fastRotFlags(c.F, carry)
		c.tick(4)
	case 0x08:
		c.ExchangeAF()
		c.tick(4)
	case 0x10: // DJNZ e
		e := int8(c.fetchByte())
		c.B--
		if c.B != 0 {
			c.PC = uint16(int32(c.PC) + int32(e))
			c.tick(13)
		} else {
			c.tick(8)
		}
	case 0x18: // JR e
		e := int8(c.fetchByte())
		c.PC = uint16(int32(c.PC) + int32(e))
		c.tick(12)
	case 0x22: // LD (nn),HL/IX/IY
		nn := c.fetchWord()
		c.writeWord(nn, c.indexVal(m))
		if m == modeHL {
			c.tick(16)
		} else {
			c.tick(16) // 20T total, less the 4T prefix already ticked
		}
	case 0x2A: // LD HL/IX/IY,(nn)
		nn := c.fetchWord()
		c.setIndexVal(m, c.readWord(nn))
		if m == modeHL {
			c.tick(16)
		} else {
			c.tick(16) // 20T total, less the 4T prefix already ticked
		}
	case 0x27:
		c.A, c.F = daa(c.A, c.F)
		c.tick(4)
	case 0x2F:
		c.A = ^c.A
		c.F |= processor.FlagH | processor.FlagN
		c.tick(4)
	case 0x32: // LD (nn),A
		nn := c.fetchWord()
		c.writeMem(nn, c.A)
		c.tick(13)
	case 0x3A: // LD A,(nn)
		nn := c.fetchWord()
		c.A = c.readMem(nn)
		c.tick(13)
	case 0x37:
		c.F = (c.F &^ (processor.FlagH | processor.FlagN)) | processor.FlagC
		c.tick(4)
	case 0x3F:
		wasC := c.F.GetBool(processor.FlagC)
		c.F &^= processor.FlagN
		c.F.SetBool(processor.FlagH, wasC)
		c.F.SetBool(processor.FlagC, !wasC)
		c.tick(4)
	case 0xC3: // JP nn
		c.PC = c.fetchWord()
		c.tick(10)
	case 0xC9:
		c.PC = c.pop16()
		c.tick(10)
	case 0xCD: // CALL nn
		nn := c.fetchWord()
		c.push16(c.PC)
		c.PC = nn
		c.tick(17)
	case 0xD3: // OUT (n),A
		n := c.fetchByte()
		c.portOut(n, c.A)
		c.tick(11)
	case 0xDB: // IN A,(n)
		n := c.fetchByte()
		c.A = c.portIn(n)
		c.tick(11)
	case 0xD9:
		c.Exx()
		c.tick(4)
	case 0xE3: // EX (SP),HL/IX/IY
		v := c.indexVal(m)
		sp := c.readWord(c.SP)
		c.writeWord(c.SP, v)
		c.setIndexVal(m, sp)
		if m == modeHL {
			c.tick(19)
		} else {
			c.tick(19) // 23T total, less the 4T prefix already ticked
		}
	case 0xE9: // JP (HL)/(IX)/(IY)
		c.PC = c.indexVal(m)
		if m == modeHL {
			c.tick(4)
		} else {
			c.tick(4) // 8T total, less the 4T prefix already ticked
		}
	case 0xEB:
		c.ExchangeDEHL()
		c.tick(4)
	case 0xF3:
		c.IFF1 = false
		c.IFF2 = false
		c.tick(4)
	case 0xF9: // LD SP,HL/IX/IY
		c.SP = c.indexVal(m)
		if m == modeHL {
			c.tick(6)
		} else {
			c.tick(6) // 10T total, less the 4T prefix already ticked
		}
	case 0xFB:
		c.IFF1 = true
		c.IFF2 = true
		c.tick(4)
	default:
		c.fail(&processor.UnknownOpcodeError{Address: c.PC - 1, Opcode: op, Page: pageName(m)})
		if c.policy == processor.NopSilently {
			c.err = nil
			c.tick(4)
		}
	}
}

func pageName(m mode) string {
	switch m {
	case modeIX:
		return "DD"
	case modeIY:
		return "FD"
	default:
		return "base"
	}
}
