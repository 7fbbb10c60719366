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

import "fmt"

// mode mirrors the cpu package's mode type without importing it: base page uses HL/
// (HL); DD/FD pages substitute IX/IY and (IX+d)/(IY+d).
type mode byte

const (
	modeHL mode = iota
	modeIX
	modeIY
)

func (m mode) indexReg() string {
	switch m {
	case modeIX:
		return "IX"
	case modeIY:
		return "IY"
	default:
		return "HL"
	}
}

var reg8Names = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// reg8Name names register-field index idx (0..7, Z80 bit-field order)
// under the given indexing mode. Index 6 ((HL)) needs the displacement
// byte d when mode != modeHL; callers pass 0 when it doesn't apply.
func reg8Name(idx byte, m mode, d int8) string {
	if m == modeHL {
		return reg8Names[idx]
	}
	switch idx {
	case 4:
		return m.indexReg() + "H"
	case 5:
		return m.indexReg() + "L"
	case 6:
		return indexedOperand(m.indexReg(), d)
	default:
		return reg8Names[idx]
	}
}

var reg16Names = [4]string{"BC", "DE", "HL", "SP"}
var reg16StackNames = [4]string{"BC", "DE", "HL", "AF"}
var ccNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

func reg16Name(idx byte, m mode) string {
	if idx == 2 {
		return m.indexReg()
	}
	return reg16Names[idx]
}

func reg16StackName(idx byte, m mode) string {
	if idx == 2 {
		return m.indexReg()
	}
	return reg16StackNames[idx]
}

func ccName(idx byte) string {
	return ccNames[idx&7]
}

func imm8(n byte) string {
	return fmt.Sprintf("#%02Xh", n)
}

func imm16(n uint16) string {
	return fmt.Sprintf("%04Xh", n)
}

func addrOperand(n uint16) string {
	return fmt.Sprintf("(%04Xh)", n)
}

func indexedOperand(reg string, d int8) string {
	if d < 0 {
		return fmt.Sprintf("(%s-%d)", reg, -int(d))
	}
	return fmt.Sprintf("(%s+%d)", reg, d)
}

func relTarget(from uint16, d int8) uint16 {
	return uint16(int32(from) + int32(d))
}

func mnem(op string, operands ...string) string {
	if len(operands) == 0 {
		return op
	}
	s := op
	for i, o := range operands {
		if i == 0 {
			s += " " + o
		} else {
			s += ", " + o
		}
	}
	return s
}
