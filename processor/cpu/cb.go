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

func (c *CPU) rotShiftOp(idx byte, v byte) (byte, bool) {
	switch idx {
	case 0:
		return rlc(v)
	case 1:
		return rrc(v)
	case 2:
		return rl(v, c.F.GetBool(processor.FlagC))
	case 3:
		return rr(v, c.F.GetBool(processor.FlagC))
	case 4:
		return sla(v)
	case 5:
		return sra(v)
	case 6:
		return sll(v)
	default:
		return srl(v)
	}
}

func bitFlags(v, bit byte, old processor.Flags) processor.Flags {
	set := v&(1<<bit) != 0
	f := old & processor.FlagC
	f |= processor.FlagH
	if !set {
		f |= processor.FlagZ | processor.FlagPV
	}
	if bit == 7 && set {
		f |= processor.FlagS
	}
	return f
}

// executeCB decodes and runs one base-page CB-prefixed opcode: rotate/
// shift, BIT, RES or SET on a plain register or (HL).
func (c *CPU) executeCB() {
	cb := c.fetchOpcodeByte()
	r := cb & 7
	grp := cb >> 6
	sub := (cb >> 3) & 7
	v := c.reg8(r, modeHL)

	switch grp {
	case 1: // BIT
		c.F = bitFlags(v, sub, c.F)
	case 2: // RES
		c.setReg8(r, modeHL, v&^(1<<sub))
	case 3: // SET
		c.setReg8(r, modeHL, v|(1<<sub))
	default: // rotate/shift
		result, carry := c.rotShiftOp(sub, v)
		c.F = rotFlags(result, carry)
		c.setReg8(r, modeHL, result)
	}

	if r == 6 {
		if grp == 1 {
			c.tick(12)
		} else {
			c.tick(15)
		}
	} else {
		c.tick(8)
	}
}

// executeIndexedCB decodes and runs one composed DD CB/FD CB opcode. The
// operand is always the (IX+d)/(IY+d) memory cell; the bit-field "r"
// register, when not 6, additionally receives an undocumented copy of
// the result on real silicon, which this core does not model.
func (c *CPU) executeIndexedCB(m mode) {
	addr := c.dispAddr(m)
	cb := c.fetchOpcodeByte()
	sub := (cb >> 3) & 7
	grp := cb >> 6
	v := c.readMem(addr)

	switch grp {
	case 1: // BIT
		c.F = bitFlags(v, sub, c.F)
		c.tick(16) // 20T total, less the 4T DD/FD prefix the caller already ticked
		return
	case 2: // RES
		c.writeMem(addr, v&^(1<<sub))
	case 3: // SET
		c.writeMem(addr, v|(1<<sub))
	default:
		result, carry := c.rotShiftOp(sub, v)
		c.F = rotFlags(result, carry)
		c.writeMem(addr, result)
	}
	c.tick(19) // 23T total, less the 4T DD/FD prefix the caller already ticked
}
