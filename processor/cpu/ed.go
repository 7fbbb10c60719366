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

import "github.com/z80sim/z80core/processor"

// executeED decodes and runs one ED-prefixed instruction: the regular
// 0x40-0x7F block (IN/OUT/SBC-ADC HL,rr/LD rr,(nn)/the single irregular
// opcodes) plus the 0xA0-0xBB block-transfer/search/IO group.
func (c *CPU) executeED() {
	op := c.fetchOpcodeByte()

	if op >= 0x40 && op <= 0x7F {
		c.executeEDRegular(op)
		return
	}

	switch op {
	case 0xA0:
		c.ldi()
		c.tick(16)
	case 0xA1:
		c.cpi()
		c.tick(16)
	case 0xA2:
		c.ini()
		c.tick(16)
	case 0xA3:
		c.outi()
		c.tick(16)
	case 0xA8:
		c.ldd()
		c.tick(16)
	case 0xA9:
		c.cpd()
		c.tick(16)
	case 0xAA:
		c.ind()
		c.tick(16)
	case 0xAB:
		c.outd()
		c.tick(16)
	case 0xB0:
		c.ldi()
		if c.BC() != 0 {
			c.PC -= 2
			c.tick(21)
		} else {
			c.tick(16)
		}
	case 0xB1:
		c.cpi()
		if c.BC() != 0 && !c.F.GetBool(processor.FlagZ) {
			c.PC -= 2
			c.tick(21)
		} else {
			c.tick(16)
		}
	case 0xB2:
		c.ini()
		if c.B != 0 {
			c.PC -= 2
			c.tick(21)
		} else {
			c.tick(16)
		}
	case 0xB3:
		c.outi()
		if c.B != 0 {
			c.PC -= 2
			c.tick(21)
		} else {
			c.tick(16)
		}
	case 0xB8:
		c.ldd()
		if c.BC() != 0 {
			c.PC -= 2
			c.tick(21)
		} else {
			c.tick(16)
		}
	case 0xB9:
		c.cpd()
		if c.BC() != 0 && !c.F.GetBool(processor.FlagZ) {
			c.PC -= 2
			c.tick(21)
		} else {
			c.tick(16)
		}
	case 0xBA:
		c.ind()
		if c.B != 0 {
			c.PC -= 2
			c.tick(21)
		} else {
			c.tick(16)
		}
	case 0xBB:
		c.outd()
		if c.B != 0 {
			c.PC -= 2
			c.tick(21)
		} else {
			c.tick(16)
		}
	default:
		c.fail(&processor.UnknownOpcodeError{Address: c.PC - 2, Opcode: op, Page: "ED"})
		if c.policy == processor.NopSilently {
			c.err = nil
			c.tick(8)
		}
	}
}

func (c *CPU) executeEDRegular(op byte) {
	switch op & 0x07 {
	case 0x00: // IN r,(C)
		r := (op >> 3) & 7
		v := c.portIn(c.C)
		if r != 6 {
			c.setReg8(r, modeHL, v)
		}
		c.F = (c.F & processor.FlagC) | szFlags(v)
		if parity(v) {
			c.F |= processor.FlagPV
		}
		c.tick(12)
	case 0x01: // OUT (C),r
		r := (op >> 3) & 7
		v := byte(0)
		if r != 6 {
			v = c.reg8(r, modeHL)
		}
		c.portOut(c.C, v)
		c.tick(12)
	case 0x02: // SBC/ADC HL,rr
		rr := c.reg16((op>>4)&3, modeHL)
		var result uint16
		if op&0x08 == 0 {
			result, c.F = sub16(c.HL(), rr, c.F.GetBool(processor.FlagC))
		} else {
			result, c.F = add16(c.HL(), rr, c.F.GetBool(processor.FlagC))
		}
		c.SetHL(result)
		c.tick(15)
	case 0x03: // LD (nn),rr / LD rr,(nn)
		idx := (op >> 4) & 3
		nn := c.fetchWord()
		if op&0x08 == 0 {
			c.writeWord(nn, c.reg16(idx, modeHL))
		} else {
			c.setReg16(idx, modeHL, c.readWord(nn))
		}
		c.tick(20)
	case 0x04:
		c.A, c.F = sub8(0, c.A, false)
		c.tick(8)
	case 0x05:
		// RETN and RETI (0x4D): distinct mnemonics, identical effect here.
		c.PC = c.pop16()
		c.IFF1 = c.IFF2
		c.tick(14)
	case 0x06:
		switch op {
		case 0x46, 0x66:
			c.IM = processor.IM0
		case 0x56, 0x76:
			c.IM = processor.IM1
		default:
			c.IM = processor.IM2
		}
		c.tick(8)
	default: // 0x07
		switch op {
		case 0x47:
			c.I = c.A
			c.tick(9)
		case 0x4F:
			c.R = c.A
			c.tick(9)
		case 0x57:
			c.A = c.I
			c.F = (c.F & processor.FlagC) | szFlags(c.A)
			c.F.SetBool(processor.FlagPV, c.IFF2)
			c.tick(9)
		case 0x5F:
			c.A = c.R
			c.F = (c.F & processor.FlagC) | szFlags(c.A)
			c.F.SetBool(processor.FlagPV, c.IFF2)
			c.tick(9)
		case 0x67:
			c.rrd()
			c.tick(18)
		case 0x6F:
			c.rld()
			c.tick(18)
		default: // 0x77, 0x7F
			c.tick(8)
		}
	}
}

func (c *CPU) ldi() {
	v := c.readMem(c.HL())
	c.writeMem(c.DE(), v)
	c.SetHL(c.HL() + 1)
	c.SetDE(c.DE() + 1)
	c.SetBC(c.BC() - 1)
	f := c.F & (processor.FlagS | processor.FlagZ | processor.FlagC)
	if c.BC() != 0 {
		f |= processor.FlagPV
	}
	c.F = f
}

func (c *CPU) ldd() {
	v := c.readMem(c.HL())
	c.writeMem(c.DE(), v)
	c.SetHL(c.HL() - 1)
	c.SetDE(c.DE() - 1)
	c.SetBC(c.BC() - 1)
	f := c.F & (processor.FlagS | processor.FlagZ | processor.FlagC)
	if c.BC() != 0 {
		f |= processor.FlagPV
	}
	c.F = f
}

func (c *CPU) cpi() {
	v := c.readMem(c.HL())
	_, f := sub8(c.A, v, false)
	c.SetHL(c.HL() + 1)
	c.SetBC(c.BC() - 1)
	f = f&(processor.FlagS|processor.FlagZ|processor.FlagH|processor.FlagN) | (c.F & processor.FlagC)
	if c.BC() != 0 {
		f |= processor.FlagPV
	}
	c.F = f
}

func (c *CPU) cpd() {
	v := c.readMem(c.HL())
	_, f := sub8(c.A, v, false)
	c.SetHL(c.HL() - 1)
	c.SetBC(c.BC() - 1)
	f = f&(processor.FlagS|processor.FlagZ|processor.FlagH|processor.FlagN) | (c.F & processor.FlagC)
	if c.BC() != 0 {
		f |= processor.FlagPV
	}
	c.F = f
}

// ini/ind/outi/outd use a simplified, documented-subset flag model: Z
// reflects the post-decrement B register and N mirrors the input/output
// byte's sign bit; the remaining undocumented H/C/PV behavior on real
// silicon (derived from B+-1 arithmetic against the transferred byte) is
// not modeled.
func (c *CPU) ini() {
	v := c.portIn(c.C)
	c.writeMem(c.HL(), v)
	c.SetHL(c.HL() + 1)
	c.B--
	f := szFlags(c.B)
	if v&0x80 != 0 {
		f |= processor.FlagN
	}
	c.F = f | (c.F & processor.FlagC)
}

func (c *CPU) ind() {
	v := c.portIn(c.C)
	c.writeMem(c.HL(), v)
	c.SetHL(c.HL() - 1)
	c.B--
	f := szFlags(c.B)
	if v&0x80 != 0 {
		f |= processor.FlagN
	}
	c.F = f | (c.F & processor.FlagC)
}

func (c *CPU) outi() {
	v := c.readMem(c.HL())
	c.portOut(c.C, v)
	c.SetHL(c.HL() + 1)
	c.B--
	f := szFlags(c.B)
	if v&0x80 != 0 {
		f |= processor.FlagN
	}
	c.F = f | (c.F & processor.FlagC)
}

func (c *CPU) outd() {
	v := c.readMem(c.HL())
	c.portOut(c.C, v)
	c.SetHL(c.HL() - 1)
	c.B--
	f := szFlags(c.B)
	if v&0x80 != 0 {
		f |= processor.FlagN
	}
	c.F = f | (c.F & processor.FlagC)
}

func (c *CPU) rrd() {
	m := c.readMem(c.HL())
	result := (c.A << 4) | (m >> 4)
	newA := (c.A & 0xF0) | (m & 0x0F)
	c.writeMem(c.HL(), result)
	c.A = newA
	f := szFlags(c.A) | (c.F & processor.FlagC)
	if parity(c.A) {
		f |= processor.FlagPV
	}
	c.F = f
}

func (c *CPU) rld() {
	m := c.readMem(c.HL())
	result := (m << 4) | (c.A & 0x0F)
	newA := (c.A & 0xF0) | (m >> 4)
	c.writeMem(c.HL(), result)
	c.A = newA
	f := szFlags(c.A) | (c.F & processor.FlagC)
	if parity(c.A) {
		f |= processor.FlagPV
	}
	c.F = f
}
