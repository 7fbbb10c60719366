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

import (
	"testing"

	"github.com/z80sim/z80core/memory"
	"github.com/z80sim/z80core/processor"
)

func newTestCPU(program ...byte) (*CPU, *memory.RAM) {
	ram := memory.NewRAM(true)
	ram.LoadAt(0, program)
	c := New(ram)
	c.Reset()
	return c, ram
}

func step(t *testing.T, c *CPU, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func TestLoadImmediate(t *testing.T) {
	c, _ := newTestCPU(0x3E, 0x42) // LD A,42h
	step(t, c, 1)
	if c.A != 0x42 {
		t.Fatalf("A = %02X, want 42", c.A)
	}
	if c.Cycles() != 7 {
		t.Fatalf("cycles = %d, want 7", c.Cycles())
	}
}

func TestArithmeticFlags(t *testing.T) {
	c, _ := newTestCPU(
		0x3E, 0xFF, // LD A,FFh
		0xC6, 0x01, // ADD A,01h
	)
	step(t, c, 2)
	if c.A != 0x00 {
		t.Fatalf("A = %02X, want 00", c.A)
	}
	if !c.F.GetBool(processor.FlagZ) || !c.F.GetBool(processor.FlagC) || !c.F.GetBool(processor.FlagH) {
		t.Fatalf("flags = %08b, want Z,C,H set", c.F)
	}
}

func TestIndexedAddressing(t *testing.T) {
	c, ram := newTestCPU(
		0x21, 0x00, 0x10, // LD HL,1000h
		0xDD, 0x21, 0x00, 0x10, // LD IX,1000h
		0xDD, 0x36, 0x05, 0x99, // LD (IX+5),99h
	)
	step(t, c, 3)
	if c.IX != 0x1000 {
		t.Fatalf("IX = %04X, want 1000", c.IX)
	}
	if v, _ := ram.MemRead(0x1005); v != 0x99 {
		t.Fatalf("(1005h) = %02X, want 99", v)
	}
	if c.stepCycles != 19 {
		t.Fatalf("last instruction cost %d cycles, want 19", c.stepCycles)
	}
}

func TestStackPushPop(t *testing.T) {
	c, _ := newTestCPU(
		0x01, 0x34, 0x12, // LD BC,1234h
		0xC5,             // PUSH BC
		0x11, 0x00, 0x00, // LD DE,0000h
		0xD1, // POP DE
	)
	c.SP = 0xFFF0
	step(t, c, 4)
	if c.DE() != 0x1234 {
		t.Fatalf("DE = %04X, want 1234", c.DE())
	}
	if c.SP != 0xFFF0 {
		t.Fatalf("SP = %04X, want FFF0", c.SP)
	}
}

func TestConditionalJump(t *testing.T) {
	c, _ := newTestCPU(
		0xAF,             // XOR A  (sets Z)
		0xCA, 0x10, 0x00, // JP Z,0010h
		0x00, // NOP (should be skipped)
	)
	step(t, c, 2)
	if c.PC != 0x0010 {
		t.Fatalf("PC = %04X, want 0010", c.PC)
	}
}

func TestCallAndRet(t *testing.T) {
	c, _ := newTestCPU(
		0xCD, 0x10, 0x00, // CALL 0010h
		0x00, // NOP, return target
	)
	c.SP = 0xFFF0
	step(t, c, 1)
	if c.PC != 0x0010 {
		t.Fatalf("PC = %04X, want 0010 after CALL", c.PC)
	}
	// Plant a RET at the call target and verify it returns here.
	c.Bus().MemWrite(0x0010, 0xC9)
	step(t, c, 1)
	if c.PC != 0x0003 {
		t.Fatalf("PC = %04X, want 0003 after RET", c.PC)
	}
}

func TestBlockLDIR(t *testing.T) {
	c, ram := newTestCPU(
		0xED, 0xB0, // LDIR
	)
	c.SetHL(0x2000)
	c.SetDE(0x3000)
	c.SetBC(0x0003)
	ram.LoadAt(0x2000, []byte{0xAA, 0xBB, 0xCC})

	for c.BC() != 0 {
		if _, err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	for i, want := range []byte{0xAA, 0xBB, 0xCC} {
		if v, _ := ram.MemRead(0x3000 + uint16(i)); v != want {
			t.Fatalf("dest[%d] = %02X, want %02X", i, v, want)
		}
	}
	if c.HL() != 0x2003 || c.DE() != 0x3003 {
		t.Fatalf("HL/DE = %04X/%04X after LDIR", c.HL(), c.DE())
	}
}

func TestHaltResumesOnInterrupt(t *testing.T) {
	c, _ := newTestCPU(0x76) // HALT
	step(t, c, 1)
	if !c.Halted {
		t.Fatal("expected HALT state")
	}
	cyclesBeforeNMI := c.Cycles()
	c.TriggerNMI()
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Halted {
		t.Fatal("NMI should clear HALT")
	}
	if c.Cycles() == cyclesBeforeNMI {
		t.Fatal("NMI should consume cycles")
	}
}

func TestResetClearsCyclesNotGeneralRegisters(t *testing.T) {
	c, _ := newTestCPU(0x3E, 0x77) // LD A,77h
	step(t, c, 1)
	if c.A != 0x77 {
		t.Fatal("setup failed")
	}
	c.Reset()
	if c.Cycles() != 0 {
		t.Fatalf("Reset should zero the cycle counter, got %d", c.Cycles())
	}
	if c.A != 0x77 {
		t.Fatal("Reset should not touch general registers")
	}
	if c.PC != 0 || c.IFF1 || c.IFF2 {
		t.Fatal("Reset should clear PC and the interrupt flip-flops")
	}
}

func TestGetStatsResets(t *testing.T) {
	c, _ := newTestCPU(0x00, 0x00)
	step(t, c, 2)
	stats := c.GetStats()
	if stats.NumInstructions != 2 {
		t.Fatalf("NumInstructions = %d, want 2", stats.NumInstructions)
	}
	if again := c.GetStats(); again.NumInstructions != 0 {
		t.Fatalf("GetStats should reset the counters, got %d", again.NumInstructions)
	}
	if c.Cycles() == 0 {
		t.Fatal("Cycles() must survive GetStats")
	}
}

func TestUnknownOpcodeFault(t *testing.T) {
	c, _ := newTestCPU(0xED, 0xFF) // ED FF is not a defined ED-page opcode
	_, err := c.Step()
	if err == nil {
		t.Fatal("expected a fault")
	}
	var unk *processor.UnknownOpcodeError
	if e, ok := err.(*processor.UnknownOpcodeError); !ok {
		t.Fatalf("err = %T, want *processor.UnknownOpcodeError", err)
	} else {
		unk = e
	}
	if unk.Page != "ED" {
		t.Fatalf("Page = %q, want ED", unk.Page)
	}
}

func TestUnknownOpcodeNopSilently(t *testing.T) {
	c, _ := newTestCPU(0xED, 0xFF, 0x00)
	c.SetInvalidOpcodePolicy(processor.NopSilently)
	if _, err := c.Step(); err != nil {
		t.Fatalf("unexpected fault: %v", err)
	}
}
