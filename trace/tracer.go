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

// Package trace renders a running CPU's instruction stream and register
// file as human-readable text, one line pair per executed instruction,
// onto a caller-supplied sink.
package trace

import (
	"fmt"

	"github.com/z80sim/z80core/disasm"
	"github.com/z80sim/z80core/memory"
	"github.com/z80sim/z80core/processor"
)

// LineWriter receives one already-terminated line of trace text at a
// time. *os.File and bufio.Writer both satisfy it once wrapped with a
// trivial adapter; cmd/z80mon wraps its -trace output file that way.
type LineWriter interface {
	WriteLine(string) error
}

// Tracer disassembles the instruction about to execute and dumps the
// register file as it stands before that instruction, independent of the
// CPU's own bus traffic. No dump is written after the instruction completes.
type Tracer struct {
	dis  *disasm.Disassembler
	sink LineWriter
}

// New builds a Tracer reading the same bus as the CPU it is attached to.
func New(bus memory.Bus, sink LineWriter) *Tracer {
	d := disasm.New(bus)
	d.SetInvalidOpcodePolicy(processor.NopSilently)
	return &Tracer{dis: d, sink: sink}
}

// Step records one instruction about to execute at pc and the register
// file as it stood immediately before that instruction.
func (t *Tracer) Step(pc uint16, r *processor.Registers) error {
	var text string
	line, _, err := t.dis.DisassembleAt(pc)
	if err != nil {
		text = fmt.Sprintf("%04X : ????????????????????? : ???\r\n", pc)
	} else {
		text = line.String()
	}
	if err := t.sink.WriteLine(text); err != nil {
		return err
	}
	return t.sink.WriteLine(regDump(r))
}

// Marker writes a one-line annotation, used for RESET/NMI/IRQ events that
// fall outside the normal instruction stream.
func (t *Tracer) Marker(text string) error {
	return t.sink.WriteLine(text + "\r\n")
}

func regDump(r *processor.Registers) string {
	return fmt.Sprintf(
		"  AF=%04X BC=%04X DE=%04X HL=%04X IX=%04X IY=%04X SP=%04X PC=%04X I=%02X R=%02X IFF1=%v IFF2=%v IM=%s\r\n",
		r.AF(), r.BC(), r.DE(), r.HL(), r.IX, r.IY, r.SP, r.PC, r.I, r.R, r.IFF1, r.IFF2, r.IM,
	)
}
