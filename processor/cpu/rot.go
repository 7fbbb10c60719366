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

// The eight rotate/shift primitives shared by the CB page and the four
// fast accumulator rotates (RLCA/RRCA/RLA/RRA). Each returns the shifted
// byte and the bit that fell out into the carry.

func rlc(v byte) (byte, bool) {
	carry := v&0x80 != 0
	result := v << 1
	if carry {
		result |= 1
	}
	return result, carry
}

func rrc(v byte) (byte, bool) {
	carry := v&0x01 != 0
	result := v >> 1
	if carry {
		result |= 0x80
	}
	return result, carry
}

func rl(v byte, cin bool) (byte, bool) {
	carry := v&0x80 != 0
	result := v << 1
	if cin {
		result |= 1
	}
	return result, carry
}

func rr(v byte, cin bool) (byte, bool) {
	carry := v&0x01 != 0
	result := v >> 1
	if cin {
		result |= 0x80
	}
	return result, carry
}

func sla(v byte) (byte, bool) {
	return v << 1, v&0x80 != 0
}

func sra(v byte) (byte, bool) {
	carry := v&0x01 != 0
	return (v >> 1) | (v & 0x80), carry
}

// sll is the undocumented "shift left, set bit 0" op (sometimes written
// SL1), present for encoding completeness.
func sll(v byte) (byte, bool) {
	carry := v&0x80 != 0
	return (v << 1) | 1, carry
}

func srl(v byte) (byte, bool) {
	carry := v&0x01 != 0
	return v >> 1, carry
}

// rotFlags computes the full CB-page flag set for a rotate/shift result.
func rotFlags(result byte, carry bool) processor.Flags {
	f := szFlags(result)
	if parity(result) {
		f |= processor.FlagPV
	}
	if carry {
		f |= processor.FlagC
	}
	return f
}

// fastRotFlags computes the flag set for the four fast accumulator
// rotates (RLCA/RRCA/RLA/RRA), which leave S, Z and PV untouched.
func fastRotFlags(old processor.Flags, carry bool) processor.Flags {
	f := old &^ (processor.FlagH | processor.FlagN | processor.FlagC)
	if carry {
		f |= processor.FlagC
	}
	return f
}
