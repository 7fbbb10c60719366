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

	"github.com/z80sim/z80core/processor"
)

func TestNMIPushesPCAndJumpsToVectorRegardlessOfIFF1(t *testing.T) {
	c, _ := newTestCPU(0x00) // NOP at 0
	c.SP = 0xFFF0
	c.PC = 0x1234
	c.IFF1 = true
	c.IFF2 = true
	c.TriggerNMI()

	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.PC != processor.NMIVector {
		t.Fatalf("PC = %04X, want %04X", c.PC, processor.NMIVector)
	}
	if c.IFF1 {
		t.Fatal("NMI must clear IFF1")
	}
	if !c.IFF2 {
		t.Fatal("NMI must copy the pre-NMI IFF1 into IFF2, not clear it")
	}
	if c.SP != 0xFFEE {
		t.Fatalf("SP = %04X, want FFEE", c.SP)
	}
	ret := c.readWord(c.SP)
	if ret != 0x1234 {
		t.Fatalf("pushed return address = %04X, want 1234", ret)
	}
}

// TestNestedNMIDoesNotSpuriouslyReenableInterrupts covers the case the
// IFF1->IFF2 copy guards against: a second NMI firing before the first is
// retired. Without the copy, IFF2 would still hold the enabled state from
// before the first NMI, and a RETN after the second NMI would wrongly
// re-enable interrupts.
func TestNestedNMIDoesNotSpuriouslyReenableInterrupts(t *testing.T) {
	c, _ := newTestCPU(0x00)
	c.SP = 0xFFF0
	c.PC = 0x1234
	c.IFF1 = true
	c.IFF2 = true

	c.TriggerNMI()
	if _, err := c.Step(); err != nil { // first NMI: IFF2 <- true, IFF1 <- false
		t.Fatal(err)
	}

	c.TriggerNMI()
	if _, err := c.Step(); err != nil { // second NMI, fired before any RETN
		t.Fatal(err)
	}
	if c.IFF2 {
		t.Fatal("second NMI must copy the still-disabled IFF1 into IFF2, not leave it enabled")
	}
}

func TestMaskableINTIgnoredWhenIFF1Clear(t *testing.T) {
	c, _ := newTestCPU(0x00)
	c.PC = 0x1000
	c.IFF1 = false
	c.SetIntLine(true)

	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.PC != 0x1001 {
		t.Fatalf("PC = %04X, want 1001 (INT should have been ignored, NOP executed)", c.PC)
	}
}

func TestIM1INTVectorsToFixedAddress(t *testing.T) {
	c, _ := newTestCPU(0x00)
	c.SP = 0xFFF0
	c.PC = 0x2000
	c.IFF1 = true
	c.IFF2 = true
	c.IM = processor.IM1
	c.SetIntLine(true)

	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.PC != processor.IM1Vector {
		t.Fatalf("PC = %04X, want %04X", c.PC, processor.IM1Vector)
	}
	if c.IFF1 || c.IFF2 {
		t.Fatal("INT acknowledgement must clear both IFF1 and IFF2")
	}
}

func TestIM2INTReadsVectorTableEntry(t *testing.T) {
	c, ram := newTestCPU(0x00)
	c.SP = 0xFFF0
	c.PC = 0x2000
	c.IFF1 = true
	c.IM = processor.IM2
	c.I = 0x40
	c.SetIM2InjectedVector(0x10)
	ram.LoadAt(0x4010, []byte{0x00, 0x50}) // little-endian target 0x5000
	c.SetIntLine(true)

	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.PC != 0x5000 {
		t.Fatalf("PC = %04X, want 5000", c.PC)
	}
}

func TestIM0INTExecutesInjectedOpcode(t *testing.T) {
	c, _ := newTestCPU(0x00)
	c.SP = 0xFFF0
	c.PC = 0x2000
	c.IFF1 = true
	c.IM = processor.IM0
	c.SetIM0InjectedOpcode(0xCF) // RST 08h
	c.SetIntLine(true)

	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.PC != 0x0008 {
		t.Fatalf("PC = %04X, want 0008 (RST 08h injected)", c.PC)
	}
}

func TestNMITakesPriorityOverMaskableINT(t *testing.T) {
	c, _ := newTestCPU(0x00)
	c.SP = 0xFFF0
	c.PC = 0x3000
	c.IFF1 = true
	c.IM = processor.IM1
	c.SetIntLine(true)
	c.TriggerNMI()

	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.PC != processor.NMIVector {
		t.Fatalf("PC = %04X, want NMI vector %04X (NMI must win)", c.PC, processor.NMIVector)
	}
}
