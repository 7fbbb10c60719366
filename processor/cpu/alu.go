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

func parity(v byte) bool {
	p := true
	for v != 0 {
		p = !p
		v &= v - 1
	}
	return p
}

func szFlags(v byte) processor.Flags {
	var f processor.Flags
	if v == 0 {
		f |= processor.FlagZ
	}
	if v&0x80 != 0 {
		f |= processor.FlagS
	}
	return f
}

func (c *CPU) setFlags(f processor.Flags) {
	c.F = f
}

// add8 computes a+b(+carry) and the resulting flag set, without touching
// any register; callers store the result themselves.
func add8(a, b byte, carryIn bool) (byte, processor.Flags) {
	cin := byte(0)
	if carryIn {
		cin = 1
	}
	sum := int(a) + int(b) + int(cin)
	result := byte(sum)
	f := szFlags(result)
	if (a&0x0F)+(b&0x0F)+cin > 0x0F {
		f |= processor.FlagH
	}
	if sum > 0xFF {
		f |= processor.FlagC
	}
	if (a^b)&0x80 == 0 && (a^result)&0x80 != 0 {
		f |= processor.FlagPV
	}
	return result, f
}

func sub8(a, b byte, borrowIn bool) (byte, processor.Flags) {
	bin := byte(0)
	if borrowIn {
		bin = 1
	}
	diff := int(a) - int(b) - int(bin)
	result := byte(diff)
	f := szFlags(result) | processor.FlagN
	if int(a&0x0F)-int(b&0x0F)-int(bin) < 0 {
		f |= processor.FlagH
	}
	if diff < 0 {
		f |= processor.FlagC
	}
	if (a^b)&0x80 != 0 && (a^result)&0x80 != 0 {
		f |= processor.FlagPV
	}
	return result, f
}

func and8(a, b byte) (byte, processor.Flags) {
	result := a & b
	f := szFlags(result) | processor.FlagH
	if parity(result) {
		f |= processor.FlagPV
	}
	return result, f
}

func or8(a, b byte) (byte, processor.Flags) {
	result := a | b
	f := szFlags(result)
	if parity(result) {
		f |= processor.FlagPV
	}
	return result, f
}

func xor8(a, b byte) (byte, processor.Flags) {
	result := a ^ b
	f := szFlags(result)
	if parity(result) {
		f |= processor.FlagPV
	}
	return result, f
}

// inc8 and dec8 leave the carry flag untouched; callers OR in the old C.
func inc8(a byte) (byte, processor.Flags) {
	result := a + 1
	f := szFlags(result)
	if a&0x0F == 0x0F {
		f |= processor.FlagH
	}
	if result == 0x80 {
		f |= processor.FlagPV
	}
	return result, f
}

func dec8(a byte) (byte, processor.Flags) {
	result := a - 1
	f := szFlags(result) | processor.FlagN
	if a&0x0F == 0x00 {
		f |= processor.FlagH
	}
	if result == 0x7F {
		f |= processor.FlagPV
	}
	return result, f
}

// add16/sub16 implement ADC/SBC HL,rr (the only 16-bit ALU ops besides the
// carry-less ADD HL,rr/ADD IX,rr in addIndexNoFlags).
func add16(a, b uint16, carryIn bool) (uint16, processor.Flags) {
	cin := uint16(0)
	if carryIn {
		cin = 1
	}
	sum := uint32(a) + uint32(b) + uint32(cin)
	result := uint16(sum)
	var f processor.Flags
	if result == 0 {
		f |= processor.FlagZ
	}
	if result&0x8000 != 0 {
		f |= processor.FlagS
	}
	if (a&0x0FFF)+(b&0x0FFF)+cin > 0x0FFF {
		f |= processor.FlagH
	}
	if sum > 0xFFFF {
		f |= processor.FlagC
	}
	if (a^b)&0x8000 == 0 && (a^result)&0x8000 != 0 {
		f |= processor.FlagPV
	}
	return result, f
}

func sub16(a, b uint16, borrowIn bool) (uint16, processor.Flags) {
	bin := uint16(0)
	if borrowIn {
		bin = 1
	}
	diff := int32(a) - int32(b) - int32(bin)
	result := uint16(diff)
	f := processor.FlagN
	if result == 0 {
		f |= processor.FlagZ
	}
	if result&0x8000 != 0 {
		f |= processor.FlagS
	}
	if int32(a&0x0FFF)-int32(b&0x0FFF)-int32(bin) < 0 {
		f |= processor.FlagH
	}
	if diff < 0 {
		f |= processor.FlagC
	}
	if (a^b)&0x8000 != 0 && (a^result)&0x8000 != 0 {
		f |= processor.FlagPV
	}
	return result, f
}

// addIndexNoFlags implements plain ADD HL,rr / ADD IX,rr / ADD IY,rr:
// S, Z and PV are left exactly as they were; only H, N (cleared), and C
// are affected.
func addIndexNoFlags(a, b uint16, keep processor.Flags) (uint16, processor.Flags) {
	sum := uint32(a) + uint32(b)
	result := uint16(sum)
	f := keep &^ (processor.FlagH | processor.FlagN | processor.FlagC)
	if (a&0x0FFF)+(b&0x0FFF) > 0x0FFF {
		f |= processor.FlagH
	}
	if sum > 0xFFFF {
		f |= processor.FlagC
	}
	return result, f
}

// daa implements the documented Z80 DAA correction table.
func daa(a byte, f processor.Flags) (byte, processor.Flags) {
	n := f.GetBool(processor.FlagN)
	carry := f.GetBool(processor.FlagC)
	half := f.GetBool(processor.FlagH)

	var diff byte
	if half || a&0x0F > 9 {
		diff |= 0x06
	}
	if carry || a > 0x99 {
		diff |= 0x60
	}

	var newCarry bool
	var newHalf bool
	var result byte
	if n {
		// Subtraction never derives carry from magnitude: the preceding
		// SUB/SBC already reflects a decimal borrow correctly, so DAA
		// leaves C exactly as it found it.
		newCarry = carry
		newHalf = half && a&0x0F < 6
		result = a - diff
	} else {
		newCarry = carry || a > 0x99
		newHalf = a&0x0F > 9
		result = a + diff
	}

	out := szFlags(result)
	if n {
		out |= processor.FlagN
	}
	if newHalf {
		out |= processor.FlagH
	}
	if newCarry {
		out |= processor.FlagC
	}
	if parity(result) {
		out |= processor.FlagPV
	}
	return result, out
}
