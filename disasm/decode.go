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

import (
	"fmt"

	"github.com/z80sim/z80core/processor"
)

// decodeOne decodes exactly one instruction from the cursor's current
// position, consuming bytes as it goes, and returns its mnemonic text.
func decodeOne(c *cursor) (string, error) {
	op, err := c.fetch()
	if err != nil {
		return "", err
	}

	m := modeHL
	for op == 0xDD || op == 0xFD {
		if op == 0xDD {
			m = modeIX
		} else {
			m = modeIY
		}
		op, err = c.fetch()
		if err != nil {
			return "", err
		}
	}

	switch op {
	case 0xCB:
		if m != modeHL {
			return decodeIndexedCB(c, m)
		}
		return decodeCB(c)
	case 0xED:
		return decodeED(c)
	default:
		return decodeBase(c, op, m)
	}
}

// displacementIfNeeded reads the (IX+d)/(IY+d) signed byte when operand index 6
// is referenced under a non-HL mode; callers pass the field index so it
// is only read when actually needed.
func (c *cursor) displacementIfNeeded(idx byte, m mode) (int8, error) {
	if m == modeHL || idx != 6 {
		return 0, nil
	}
	b, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return int8(b), nil
}

func decodeBase(c *cursor, op byte, m mode) (string, error) {
	switch {
	case op == 0x00:
		return "NOP", nil
	case op == 0x76:
		return "HALT", nil
	case op&0xC0 == 0x40: // LD r,r'
		dst, src := (op>>3)&7, op&7
		dd, err := c.displacementIfNeeded(dst, m)
		if err != nil {
			return "", err
		}
		ds, err := c.displacementIfNeeded(src, m)
		if err != nil {
			return "", err
		}
		d := dd
		if dst != 6 {
			d = ds
		}
		return mnem("LD", reg8Name(dst, m, d), reg8Name(src, m, d)), nil
	case op&0xC0 == 0x80: // ALU A,r
		grp, r := (op>>3)&7, op&7
		d, err := c.displacementIfNeeded(r, m)
		if err != nil {
			return "", err
		}
		return mnem(aluMnemonic(grp), "A", reg8Name(r, m, d)), nil
	case op&0xC7 == 0x06: // LD r,n / LD (HL),n
		r := (op >> 3) & 7
		d, err := c.displacementIfNeeded(r, m)
		if err != nil {
			return "", err
		}
		n, err := c.fetch()
		if err != nil {
			return "", err
		}
		return mnem("LD", reg8Name(r, m, d), imm8(n)), nil
	case op&0xC7 == 0x04: // INC r
		r := (op >> 3) & 7
		d, err := c.displacementIfNeeded(r, m)
		if err != nil {
			return "", err
		}
		return mnem("INC", reg8Name(r, m, d)), nil
	case op&0xC7 == 0x05: // DEC r
		r := (op >> 3) & 7
		d, err := c.displacementIfNeeded(r, m)
		if err != nil {
			return "", err
		}
		return mnem("DEC", reg8Name(r, m, d)), nil
	case op&0xC7 == 0xC6: // ADD A,n ... CP n
		grp := (op >> 3) & 7
		n, err := c.fetch()
		if err != nil {
			return "", err
		}
		return mnem(aluMnemonic(grp), "A", imm8(n)), nil
	case op&0xCF == 0x01: // LD rr,nn
		nn, err := c.fetch16()
		if err != nil {
			return "", err
		}
		return mnem("LD", reg16Name((op>>4)&3, m), imm16(nn)), nil
	case op&0xCF == 0x03: // INC rr
		return mnem("INC", reg16Name((op>>4)&3, m)), nil
	case op&0xCF == 0x0B: // DEC rr
		return mnem("DEC", reg16Name((op>>4)&3, m)), nil
	case op&0xCF == 0x09: // ADD HL,rr
		return mnem("ADD", m.indexReg(), reg16Name((op>>4)&3, m)), nil
	case op&0xCF == 0xC1: // POP rr
		return mnem("POP", reg16StackName((op>>4)&3, m)), nil
	case op&0xCF == 0xC5: // PUSH rr
		return mnem("PUSH", reg16StackName((op>>4)&3, m)), nil
	case op&0xC7 == 0xC0: // RET cc
		return mnem("RET", ccName((op>>3)&7)), nil
	case op&0xC7 == 0xC2: // JP cc,nn
		nn, err := c.fetch16()
		if err != nil {
			return "", err
		}
		return mnem("JP", ccName((op>>3)&7), imm16(nn)), nil
	case op&0xC7 == 0xC4: // CALL cc,nn
		nn, err := c.fetch16()
		if err != nil {
			return "", err
		}
		return mnem("CALL", ccName((op>>3)&7), imm16(nn)), nil
	case op&0xC7 == 0xC7: // RST p
		p := op & 0x38
		return mnem("RST", imm8(p)), nil
	case op&0xE7 == 0x20: // JR cc,e (NZ,Z,NC,C only)
		e, err := c.fetch()
		if err != nil {
			return "", err
		}
		target := relTarget(c.pc, int8(e))
		return mnem("JR", ccName((op>>3)&3), dispTarget(int8(e), target)), nil
	default:
		switch op {
		case 0x02:
			return "LD (BC), A", nil
		case 0x0A:
			return "LD A, (BC)", nil
		case 0x12:
			return "LD (DE), A", nil
		case 0x1A:
			return "LD A, (DE)", nil
		case 0x07:
			return "RLCA", nil
		case 0x0F:
			return "RRCA", nil
		case 0x17:
			return "RLA", nil
		case 0x1F:
			return "RRA", nil
		case 0x08:
			return "EX AF, AF'", nil
		case 0x10: // DJNZ e
			e, err := c.fetch()
			if err != nil {
				return "", err
			}
			target := relTarget(c.pc, int8(e))
			return mnem("DJNZ", dispTarget(int8(e), target)), nil
		case 0x18: // JR e
			e, err := c.fetch()
			if err != nil {
				return "", err
			}
			target := relTarget(c.pc, int8(e))
			return mnem("JR", dispTarget(int8(e), target)), nil
		case 0x22: // LD (nn),HL
			nn, err := c.fetch16()
			if err != nil {
				return "", err
			}
			return mnem("LD", addrOperand(nn), m.indexReg()), nil
		case 0x2A: // LD HL,(nn)
			nn, err := c.fetch16()
			if err != nil {
				return "", err
			}
			return mnem("LD", m.indexReg(), addrOperand(nn)), nil
		case 0x27:
			return "DAA", nil
		case 0x2F:
			return "CPL", nil
		case 0x32: // LD (nn),A
			nn, err := c.fetch16()
			if err != nil {
				return "", err
			}
			return mnem("LD", addrOperand(nn), "A"), nil
		case 0x3A: // LD A,(nn)
			nn, err := c.fetch16()
			if err != nil {
				return "", err
			}
			return mnem("LD", "A", addrOperand(nn)), nil
		case 0x37:
			return "SCF", nil
		case 0x3F:
			return "CCF", nil
		case 0xC3: // JP nn
			nn, err := c.fetch16()
			if err != nil {
				return "", err
			}
			return mnem("JP", imm16(nn)), nil
		case 0xC9:
			return "RET", nil
		case 0xCD: // CALL nn
			nn, err := c.fetch16()
			if err != nil {
				return "", err
			}
			return mnem("CALL", imm16(nn)), nil
		case 0xD3: // OUT (n),A
			n, err := c.fetch()
			if err != nil {
				return "", err
			}
			return mnem("OUT", addrOperand8(n), "A"), nil
		case 0xDB: // IN A,(n)
			n, err := c.fetch()
			if err != nil {
				return "", err
			}
			return mnem("IN", "A", addrOperand8(n)), nil
		case 0xD9:
			return "EXX", nil
		case 0xE3:
			return mnem("EX", "(SP)", m.indexReg()), nil
		case 0xE9:
			return mnem("JP", "("+m.indexReg()+")"), nil
		case 0xEB:
			return "EX DE, HL", nil
		case 0xF3:
			return "DI", nil
		case 0xF9:
			return mnem("LD", "SP", m.indexReg()), nil
		case 0xFB:
			return "EI", nil
		default:
			return "", &processor.UnknownOpcodeError{Address: c.pc, Opcode: op, Page: pageName(m)}
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

func aluMnemonic(grp byte) string {
	return [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}[grp]
}

func addrOperand8(n byte) string {
	return imm8(n)
}

func dispTarget(d int8, target uint16) string {
	sign := "+"
	v := int(d)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d (-> %04Xh)", sign, v, target)
}
