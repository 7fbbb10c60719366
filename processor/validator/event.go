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

// Package validator records one Event per executed instruction — the
// opcode, the register file before and after, and the memory/port data
// accesses in between (opcode and operand fetches are not recorded, and
// at most eight memory reads, eight memory writes and four port accesses
// each way are kept) — so two independently-built cores can be run over
// the same program and diffed instruction-by-instruction. Built without
// the validator tag it compiles down to no-ops (see novalidator.go).
package validator

import (
	"math"

	"github.com/z80sim/z80core/processor"
)

const (
	DefaultQueueSize  = 1024
	DefaultBufferSize = 1024 * 1024
)

type MemOp struct {
	Addr uint16
	Data byte
}

type PortOp struct {
	Port byte
	Data byte
}

var emptyMemOp = MemOp{math.MaxUint16, 0}
var emptyPortOp = PortOp{0xFF, 0}

type Event struct {
	Opcode byte
	PC     uint16
	Cycles uint64

	Before, After processor.Registers

	Reads, Writes         [8]MemOp
	PortReads, PortWrites [4]PortOp
}

var EmptyEvent = Event{
	Reads:      [8]MemOp{emptyMemOp, emptyMemOp, emptyMemOp, emptyMemOp, emptyMemOp, emptyMemOp, emptyMemOp, emptyMemOp},
	Writes:     [8]MemOp{emptyMemOp, emptyMemOp, emptyMemOp, emptyMemOp, emptyMemOp, emptyMemOp, emptyMemOp, emptyMemOp},
	PortReads:  [4]PortOp{emptyPortOp, emptyPortOp, emptyPortOp, emptyPortOp},
	PortWrites: [4]PortOp{emptyPortOp, emptyPortOp, emptyPortOp, emptyPortOp},
}
