/*
Copyright (c) 2019-2021 The z80core Authors

This software is provided 'as-is', without any express or implied
warranty. In no event will the authors be held liable for any damages
arising from the use of this software.

Permission is granted to anyone to use this software for any purpose,
including commercial applications, and to alter it and redistribute it
freely, subject to the following restrictions:

1. The origin of this software must not be misrepresented; you must not
   claim that you wrote the original software. If you use this software
   in a product, an acknowledgment in the product documentation would be
   appreciated but is not required.
2. Altered source versions must be plainly marked as such, and must not be
   misrepresented as being the original software.
3. This notice may not be removed or altered from any source distribution.
*/

package disasm

import "github.com/z80sim/z80core/processor"

func decodeED(c *cursor) (string, error) {
	op, err := c.fetch()
	if err != nil {
		return "", err
	}

	if op >= 0x40 && op <= 0x7F {
		return decodeEDRegular(c, op)
	}

	switch op {
	case 0xA0:
		return "LDI", nil
	case 0xA1:
		return "CPI", nil
	case 0xA2:
		return "INI", nil
	case 0xA3:
		return "OUTI", nil
	case 0xA8:
		return "LDD", nil
	case 0xA9:
		return "CPD", nil
	case 0xAA:
		return "IND", nil
	case 0xAB:
		return "OUTD", nil
	case 0xB0:
		return "LDIR", nil
	case 0xB1:
		return "CPIR", nil
	case 0xB2:
		return "INIR", nil
	case 0xB3:
		return "OTIR", nil
	case 0xB8:
		return "LDDR", nil
	case 0xB9:
		return "CPDR", nil
	case 0xBA:
		return "INDR", nil
	case 0xBB:
		return "OTDR", nil
	default:
		return "", &processor.UnknownOpcodeError{Address: c.pc, Opcode: op, Page: "ED"}
	}
}

// decodeEDRegular handles the regular 0x40-0x7F block: IN r,(C), OUT (C),r,
// SBC/ADC HL,rr, LD (nn),rr / LD rr,(nn) by row, plus the irregular single
// opcodes (NEG, RETN/RETI, IM, LD I/R/A, RRD/RLD) at their fixed bytes.
func decodeEDRegular(c *cursor, op byte) (string, error) {
	switch op & 0x07 {
	case 0x00:
		r := (op >> 3) & 7
		if r == 6 {
			return "IN (C)", nil
		}
		return mnem("IN", reg8Name(r, modeHL, 0), "(C)"), nil
	case 0x01:
		r := (op >> 3) & 7
		if r == 6 {
			return mnem("OUT", "(C)", "#00h"), nil
		}
		return mnem("OUT", "(C)", reg8Name(r, modeHL, 0)), nil
	case 0x02:
		rr := reg16Name((op>>4)&3, modeHL)
		if op&0x08 == 0 {
			return mnem("SBC", "HL", rr), nil
		}
		return mnem("ADC", "HL", rr), nil
	case 0x03:
		rr := reg16Name((op>>4)&3, modeHL)
		nn, err := c.fetch16()
		if err != nil {
			return "", err
		}
		if op&0x08 == 0 {
			return mnem("LD", addrOperand(nn), rr), nil
		}
		return mnem("LD", rr, addrOperand(nn)), nil
	case 0x04:
		return "NEG", nil
	case 0x05:
		if op == 0x4D {
			return "RETI", nil
		}
		return "RETN", nil
	case 0x06:
		switch op {
		case 0x46, 0x66:
			return "IM 0", nil
		case 0x56, 0x76:
			return "IM 1", nil
		default: // 0x4E, 0x5E, 0x6E, 0x7E
			return "IM 2", nil
		}
	default: // 0x07
		switch op {
		case 0x47:
			return "LD I, A", nil
		case 0x4F:
			return "LD R, A", nil
		case 0x57:
			return "LD A, I", nil
		case 0x5F:
			return "LD A, R", nil
		case 0x67:
			return "RRD", nil
		case 0x6F:
			return "RLD", nil
		default: // 0x77, 0x7F: undocumented no-op
			return "NOP", nil
		}
	}
}
