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

package trace

import (
	"strings"
	"testing"

	"github.com/z80sim/z80core/memory"
	"github.com/z80sim/z80core/processor"
)

type bufSink struct {
	lines []string
}

func (b *bufSink) WriteLine(s string) error {
	b.lines = append(b.lines, s)
	return nil
}

func TestStepWritesDisasmAndRegisterLines(t *testing.T) {
	ram := memory.NewRAM(true)
	ram.LoadAt(0, []byte{0x3E, 0x42}) // LD A,42h
	sink := &bufSink{}
	tr := New(ram, sink)

	var r processor.Registers
	r.PC = 0
	r.A = 0x99

	if err := tr.Step(0, &r); err != nil {
		t.Fatal(err)
	}
	if len(sink.lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(sink.lines))
	}
	if !strings.Contains(sink.lines[0], "LD A, #42h") {
		t.Fatalf("disasm line = %q, want it to contain the mnemonic", sink.lines[0])
	}
	if !strings.Contains(sink.lines[1], "AF=9900") {
		t.Fatalf("register line = %q, want AF=9900", sink.lines[1])
	}
}

func TestStepOnUndecodableByteStillWritesBothLines(t *testing.T) {
	ram := memory.NewRAM(true)
	ram.LoadAt(0, []byte{0xED, 0xFF}) // not a defined ED-page opcode
	sink := &bufSink{}
	tr := New(ram, sink)

	var r processor.Registers
	if err := tr.Step(0, &r); err != nil {
		t.Fatal(err)
	}
	if len(sink.lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(sink.lines))
	}
}

func TestMarkerWritesOneLine(t *testing.T) {
	sink := &bufSink{}
	tr := New(memory.NewRAM(true), sink)
	if err := tr.Marker("*** RESET! ***"); err != nil {
		t.Fatal(err)
	}
	if len(sink.lines) != 1 || sink.lines[0] != "*** RESET! ***\r\n" {
		t.Fatalf("lines = %v", sink.lines)
	}
}
