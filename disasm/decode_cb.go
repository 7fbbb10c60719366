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

var rotNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}

// cbMnemonic renders one CB-page opcode given the already-resolved text
// for its operand field (a plain register name or an indexed memory
// reference); the bit-group/bit-number decomposition is identical for
// both the base CB page and the DD CB/FD CB composed page.
func cbMnemonic(cb byte, operand string) string {
	grp := cb >> 6
	bit := fmt.Sprintf("%d", (cb>>3)&7)
	switch grp {
	case 0:
		return mnem(rotNames[(cb>>3)&7], operand)
	case 1:
		return mnem("BIT", bit, operand)
	case 2:
		return mnem("RES", bit, operand)
	default:
		return mnem("SET", bit, operand)
	}
}

func decodeCB(c *cursor) (string, error) {
	cb, err := c.fetch()
	if err != nil {
		return "", err
	}
	return cbMnemonic(cb, reg8Name(cb&7, modeHL, 0)), nil
}

// decodeIndexedCB decodes the composed DD CB/FD CB page: the DD/FD and CB
// bytes are already consumed by the caller; the wire order from here is
// displacement byte, then the CB-style sub-opcode.
func decodeIndexedCB(c *cursor, m mode) (string, error) {
	d, err := c.fetch()
	if err != nil {
		return "", err
	}
	cb, err := c.fetch()
	if err != nil {
		return "", err
	}
	return cbMnemonic(cb, indexedOperand(m.indexReg(), int8(d))), nil
}
