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

import "github.com/z80sim/z80core/processor/validator"

// This file wraps every Bus access with the CPU's sticky-fault check: once
// c.err is set mid-instruction, every further bus access and tick becomes a
// no-op, so a fault partway through a multi-byte instruction never leaves
// cycle state advanced past the point where it happened. Step restores the
// register file to its pre-instruction state when a fault is recorded.

// fetchOpcodeByte reads the next opcode-stream byte (the kind that counts
// towards memory refresh) and advances PC and R.
func (c *CPU) fetchOpcodeByte() byte {
	v := c.fetchByte()
	c.IncR(1)
	return v
}

// fetchByte reads the next byte at PC without touching R; used for
// immediate operands and displacement bytes, which are not M1 cycles.
func (c *CPU) fetchByte() byte {
	if c.err != nil {
		return 0
	}
	v, err := c.bus.MemRead(c.PC)
	if err != nil {
		c.fail(err)
		return 0
	}
	c.PC++
	return v
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) readMem(addr uint16) byte {
	if c.err != nil {
		return 0
	}
	v, err := c.bus.MemRead(addr)
	if err != nil {
		c.fail(err)
		return 0
	}
	validator.ReadByte(addr, v)
	return v
}

func (c *CPU) writeMem(addr uint16, v byte) {
	if c.err != nil {
		return
	}
	if err := c.bus.MemWrite(addr, v); err != nil {
		c.fail(err)
		return
	}
	validator.WriteByte(addr, v)
}

func (c *CPU) readWord(addr uint16) uint16 {
	lo := c.readMem(addr)
	hi := c.readMem(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) writeWord(addr uint16, v uint16) {
	c.writeMem(addr, byte(v))
	c.writeMem(addr+1, byte(v>>8))
}

func (c *CPU) portIn(port byte) byte {
	if c.err != nil {
		return 0
	}
	v, err := c.bus.PortIn(port)
	if err != nil {
		c.fail(err)
		return 0
	}
	validator.PortRead(port, v)
	return v
}

func (c *CPU) portOut(port byte, v byte) {
	if c.err != nil {
		return
	}
	if err := c.bus.PortOut(port, v); err != nil {
		c.fail(err)
		return
	}
	validator.PortWrite(port, v)
}

func (c *CPU) push16(v uint16) {
	c.writeMem(c.SP-1, byte(v>>8))
	c.writeMem(c.SP-2, byte(v))
	if c.err == nil {
		c.SP -= 2
	}
}

func (c *CPU) pop16() uint16 {
	v := c.readWord(c.SP)
	c.SP += 2
	return v
}
