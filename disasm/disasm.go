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

// Package disasm statically decodes a Z80 instruction stream into
// mnemonic text. It shares no mutable state with the CPU engine — it
// only ever reads through the bus — and never advances the CPU's own
// program counter.
package disasm

import (
	"fmt"
	"strings"

	"github.com/z80sim/z80core/memory"
	"github.com/z80sim/z80core/processor"
)

// Line is one decoded instruction: its address, the raw bytes it
// occupies, and the formatted mnemonic.
type Line struct {
	Address  uint16
	Bytes    []byte
	Mnemonic string
}

// String renders the line in the spec's fixed-column format:
//
//	<ADDR:4-hex> : <byte-hex list padded to column 24> : <mnemonic>
func (l Line) String() string {
	hexBytes := make([]string, len(l.Bytes))
	for i, b := range l.Bytes {
		hexBytes[i] = fmt.Sprintf("%02X", b)
	}
	hexCol := strings.Join(hexBytes, " ")
	return fmt.Sprintf("%04X : %-21s : %s\r\n", l.Address, hexCol, l.Mnemonic)
}

// Disassembler decodes a Z80 instruction stream through a Bus. Its
// cursor is local state, independent of any CPU's PC.
type Disassembler struct {
	bus    memory.Bus
	policy processor.InvalidOpcodePolicy
}

// New builds a Disassembler reading through bus.
func New(bus memory.Bus) *Disassembler {
	return &Disassembler{bus: bus, policy: processor.RaiseError}
}

func (d *Disassembler) SetInvalidOpcodePolicy(p processor.InvalidOpcodePolicy) {
	d.policy = p
}

// DisassembleAt decodes exactly one instruction starting at addr and
// returns the decoded Line plus the address immediately following it.
func (d *Disassembler) DisassembleAt(addr uint16) (Line, uint16, error) {
	c := &cursor{bus: d.bus, pc: addr}
	mnemonic, err := decodeOne(c)
	if err != nil {
		if unk, ok := err.(*processor.UnknownOpcodeError); ok && d.policy == processor.NopSilently {
			return Line{Address: addr, Bytes: c.bytes, Mnemonic: "NOP"}, c.pc, nil
		} else if ok {
			return Line{}, addr, unk
		}
		return Line{}, addr, err
	}
	return Line{Address: addr, Bytes: c.bytes, Mnemonic: mnemonic}, c.pc, nil
}

// DisassembleMany decodes n consecutive instructions starting at addr.
func (d *Disassembler) DisassembleMany(addr uint16, n int) ([]Line, error) {
	lines := make([]Line, 0, n)
	for i := 0; i < n; i++ {
		line, next, err := d.DisassembleAt(addr)
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
		addr = next
	}
	return lines, nil
}

// DisassembleRange decodes instructions from `from` up to (and possibly
// slightly past) `to`; the final instruction may extend past `to`.
func (d *Disassembler) DisassembleRange(from, to uint16) ([]Line, error) {
	var lines []Line
	addr := from
	for addr <= to {
		line, next, err := d.DisassembleAt(addr)
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
		if next <= addr { // defend against a zero-length decode looping forever
			break
		}
		addr = next
	}
	return lines, nil
}

// cursor tracks the bytes consumed while decoding a single instruction,
// for both the opcode-stream position and the accumulated raw bytes used
// in Line.Bytes.
type cursor struct {
	bus   memory.Bus
	pc    uint16
	bytes []byte
}

func (c *cursor) fetch() (byte, error) {
	v, err := c.bus.MemRead(c.pc)
	if err != nil {
		return 0, err
	}
	c.bytes = append(c.bytes, v)
	c.pc++
	return v, nil
}

func (c *cursor) fetch16() (uint16, error) {
	lo, err := c.fetch()
	if err != nil {
		return 0, err
	}
	hi, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}
