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

// mode selects which index register (if any) the current instruction's
// HL-shaped operand fields are bound to. The base page always uses
// modeHL; a leading DD or FD byte switches the rest of the instruction
// to modeIX/modeIY, with every (HL)/H/L field reinterpreted as
// (IX+d)/(IY+d)/IXH/IXL/IYH/IYL and every other field unaffected.
type mode byte

const (
	modeHL mode = iota
	modeIX
	modeIY
)

func (c *CPU) indexVal(m mode) uint16 {
	switch m {
	case modeIX:
		return c.IX
	case modeIY:
		return c.IY
	default:
		return c.HL()
	}
}

func (c *CPU) setIndexVal(m mode, v uint16) {
	switch m {
	case modeIX:
		c.IX = v
	case modeIY:
		c.IY = v
	default:
		c.SetHL(v)
	}
}

// dispAddr returns the effective (IX+d)/(IY+d) address for the current
// instruction, fetching the displacement byte on first use and caching
// it so an instruction that reads and writes the same operand (INC
// (IX+d), BIT n,(IX+d), ...) only pays for the fetch once.
func (c *CPU) dispAddr(m mode) uint16 {
	if m == modeHL {
		return c.HL()
	}
	if !c.dispValid {
		d := c.fetchByte()
		c.dispAddrVal = c.indexVal(m) + uint16(int16(int8(d)))
		c.dispValid = true
	}
	return c.dispAddrVal
}

// reg8 reads the 8-bit field named by idx (Z80 bit-field order: B C D E H
// L (HL) A) under the given index mode.
func (c *CPU) reg8(idx byte, m mode) byte {
	if m != modeHL {
		switch idx {
		case 4:
			return byte(c.indexVal(m) >> 8)
		case 5:
			return byte(c.indexVal(m))
		case 6:
			return c.readMem(c.dispAddr(m))
		}
	}
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.readMem(c.HL())
	default:
		return c.A
	}
}

func (c *CPU) setReg8(idx byte, m mode, v byte) {
	if m != modeHL {
		switch idx {
		case 4:
			c.setIndexVal(m, uint16(v)<<8|uint16(byte(c.indexVal(m))))
			return
		case 5:
			c.setIndexVal(m, c.indexVal(m)&0xFF00|uint16(v))
			return
		case 6:
			c.writeMem(c.dispAddr(m), v)
			return
		}
	}
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.writeMem(c.HL(), v)
	default:
		c.A = v
	}
}

func (c *CPU) reg16(idx byte, m mode) uint16 {
	if idx == 2 {
		return c.indexVal(m)
	}
	switch idx {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	default:
		return c.SP
	}
}

func (c *CPU) setReg16(idx byte, m mode, v uint16) {
	if idx == 2 {
		c.setIndexVal(m, v)
		return
	}
	switch idx {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	default:
		c.SP = v
	}
}

// reg16Stack is the PUSH/POP-table variant: slot 3 is AF, never an index
// register, unlike the general reg16 table where slot 3 is SP.
func (c *CPU) reg16Stack(idx byte, m mode) uint16 {
	if idx == 2 {
		return c.indexVal(m)
	}
	switch idx {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	default:
		return c.AF()
	}
}

func (c *CPU) setReg16Stack(idx byte, m mode, v uint16) {
	if idx == 2 {
		c.setIndexVal(m, v)
		return
	}
	switch idx {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	default:
		c.SetAF(v)
	}
}

// condTrue evaluates one of the eight Z80 condition codes against the
// current flags.
func (c *CPU) condTrue(cc byte) bool {
	switch cc & 7 {
	case 0:
		return !c.F.GetBool(processor.FlagZ)
	case 1:
		return c.F.GetBool(processor.FlagZ)
	case 2:
		return !c.F.GetBool(processor.FlagC)
	case 3:
		return c.F.GetBool(processor.FlagC)
	case 4:
		return !c.F.GetBool(processor.FlagPV)
	case 5:
		return c.F.GetBool(processor.FlagPV)
	case 6:
		return !c.F.GetBool(processor.FlagS)
	default:
		return c.F.GetBool(processor.FlagS)
	}
}
