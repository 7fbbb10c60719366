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

// Package cpu implements the Z80 instruction fetch/decode/execute engine:
// the five opcode pages, the ALU, the interrupt/RESET state machine, and
// the T-state accounting stepper.
package cpu

import (
	"github.com/z80sim/z80core/memory"
	"github.com/z80sim/z80core/processor"
	"github.com/z80sim/z80core/trace"
)

// CPU is a Z80 core bound to a caller-supplied Bus. The zero value is not
// usable; construct with New.
type CPU struct {
	processor.Registers

	bus memory.Bus

	policy processor.InvalidOpcodePolicy
	stats  processor.Stats
	cycles uint64 // monotonic, survives GetStats; cleared only by Reset

	stepCycles int
	err        error

	nmiLatched bool
	nmiLine    bool
	intLine    bool
	resetLine  bool

	im0Injected *byte
	im2Injected *byte

	trace *trace.Tracer

	// decode scratch, valid only for the duration of one instruction.
	dispValid   bool
	dispAddrVal uint16
}

// New constructs a CPU bound to bus. The register file starts zeroed,
// matching a freshly RESET part; call Reset explicitly if you want the
// documented RESET semantics applied to an already-running CPU.
func New(bus memory.Bus) *CPU {
	return &CPU{bus: bus, policy: processor.RaiseError}
}

// SetInvalidOpcodePolicy controls what Step does when the decoder finds
// no defined behavior for a byte sequence. Default is RaiseError.
func (c *CPU) SetInvalidOpcodePolicy(p processor.InvalidOpcodePolicy) {
	c.policy = p
}

func (c *CPU) InvalidOpcodePolicy() processor.InvalidOpcodePolicy {
	return c.policy
}

// GetStats returns the accumulated stats and resets the counters.
func (c *CPU) GetStats() processor.Stats {
	s := c.stats
	c.stats = processor.Stats{}
	return s
}

// Cycles returns the lifetime monotonic T-state counter. Unlike Stats,
// this is never reset by GetStats; only Reset clears it.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// SetTraceSink attaches a line-oriented text sink; setting it builds a
// fresh disassembler bound to the CPU's bus. Passing nil detaches any
// existing tracer; the old sink is not flushed (LineWriter has no flush
// operation).
func (c *CPU) SetTraceSink(sink trace.LineWriter) {
	if sink == nil {
		c.trace = nil
		return
	}
	c.trace = trace.New(c.bus, sink)
}

// Reset puts the CPU into its post-RESET configuration: PC, I, R cleared,
// IFF1/IFF2 cleared, IM0, HALT cleared, cycle counter zeroed. General and
// alternate registers are left untouched, matching real hardware.
func (c *CPU) Reset() {
	c.Registers.Reset()
	c.resetLine = false
	c.nmiLatched = false
	c.intLine = false
	c.stats = processor.Stats{}
	c.cycles = 0
	if c.trace != nil {
		c.trace.Marker("*** RESET! ***")
	}
}

// TriggerNMI latches an NMI edge to be serviced before the next fetch.
// Equivalent to SetNMILine observing a low->high transition.
func (c *CPU) TriggerNMI() {
	c.nmiLatched = true
}

// SetNMILine updates the level of the NMI input; a low->high transition
// latches an edge exactly like TriggerNMI.
func (c *CPU) SetNMILine(high bool) {
	if high && !c.nmiLine {
		c.nmiLatched = true
	}
	c.nmiLine = high
}

func (c *CPU) SetIntLine(high bool) {
	c.intLine = high
}

func (c *CPU) SetResetLine(high bool) {
	c.resetLine = high
}

// SetIM0InjectedOpcode supplies the opcode byte a peripheral places on the
// data bus during an IM 0 interrupt acknowledge cycle. Without it, IM 0
// acknowledgement behaves as RST 38h (0xFF), per spec.
func (c *CPU) SetIM0InjectedOpcode(op byte) {
	v := op
	c.im0Injected = &v
}

// SetIM2InjectedVector supplies the vector byte a peripheral places on
// the data bus during an IM 2 interrupt acknowledge cycle. Without it,
// the vector defaults to 0.
func (c *CPU) SetIM2InjectedVector(v byte) {
	b := v
	c.im2Injected = &b
}

func (c *CPU) ClearInjectedInterruptData() {
	c.im0Injected = nil
	c.im2Injected = nil
}

func (c *CPU) Bus() memory.Bus {
	return c.bus
}

func (c *CPU) tick(n int) {
	if c.err != nil {
		return
	}
	c.stepCycles += n
	c.stats.TStates += uint64(n)
	c.cycles += uint64(n)
}

func (c *CPU) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}
