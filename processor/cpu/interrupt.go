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

// serviceInterrupts runs the NMI/INT acknowledge sequence ahead of the
// next fetch, if one is pending. NMI always takes priority over a
// maskable INT, and both clear HALT. It returns true when an interrupt
// was serviced (the caller's Step should not also decode an instruction
// this cycle).
func (c *CPU) serviceInterrupts() bool {
	if c.nmiLatched {
		c.nmiLatched = false
		c.Halted = false
		c.IFF2 = c.IFF1
		c.IFF1 = false
		c.push16(c.PC)
		c.PC = processor.NMIVector
		c.tick(11)
		c.stats.NumNMI++
		if c.trace != nil {
			c.trace.Marker("*** NMI! ***")
		}
		return true
	}

	if c.intLine && c.IFF1 {
		c.Halted = false
		c.IFF1 = false
		c.IFF2 = false
		c.serviceINT()
		c.stats.NumInterrupts++
		if c.trace != nil {
			c.trace.Marker("*** IRQ! ***")
		}
		return true
	}

	return false
}

func (c *CPU) serviceINT() {
	switch c.IM {
	case processor.IM0:
		op := byte(0xFF) // default: RST 38h, as if no device drove the bus
		if c.im0Injected != nil {
			op = *c.im0Injected
		}
		c.tick(2)
		c.executeBase(op, modeHL)
	case processor.IM1:
		c.push16(c.PC)
		c.PC = processor.IM1Vector
		c.tick(13)
	default: // IM2
		lo := byte(0)
		if c.im2Injected != nil {
			lo = *c.im2Injected
		}
		addr := uint16(c.I)<<8 | uint16(lo)
		target := c.readWord(addr)
		c.push16(c.PC)
		c.PC = target
		c.tick(19)
	}
}
