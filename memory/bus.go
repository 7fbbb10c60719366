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

// Package memory defines the bus abstraction the Z80 core is driven
// through, and a plain RAM-backed implementation useful for tests and
// small tools.
package memory

import (
	"crypto/rand"
	"fmt"
)

// Bus is the capability surface the CPU and disassembler depend on. The
// caller owns the concrete layout (ROM, RAM, banked memory, memory-mapped
// devices); the core makes no assumption about it beyond these four calls.
type Bus interface {
	MemRead(addr uint16) (byte, error)
	MemWrite(addr uint16, value byte) error
	PortIn(port byte) (byte, error)
	PortOut(port byte, value byte) error
}

// UnreadableAddressError is returned by a Bus when a memory read cannot
// be satisfied.
type UnreadableAddressError struct {
	Address uint16
}

func (e *UnreadableAddressError) Error() string {
	return fmt.Sprintf("z80: unreadable memory address 0x%04X", e.Address)
}

// UnwritableAddressError is returned by a Bus when a memory write cannot
// be satisfied.
type UnwritableAddressError struct {
	Address uint16
	Value   byte
}

func (e *UnwritableAddressError) Error() string {
	return fmt.Sprintf("z80: unwritable memory address 0x%04X (value 0x%02X)", e.Address, e.Value)
}

// UnreadablePortError is returned by a Bus when a port input cannot be
// satisfied.
type UnreadablePortError struct {
	Port byte
}

func (e *UnreadablePortError) Error() string {
	return fmt.Sprintf("z80: unreadable port 0x%02X", e.Port)
}

// UnwritablePortError is returned by a Bus when a port output cannot be
// satisfied.
type UnwritablePortError struct {
	Port  byte
	Value byte
}

func (e *UnwritablePortError) Error() string {
	return fmt.Sprintf("z80: unwritable port 0x%02X (value 0x%02X)", e.Port, e.Value)
}

// RAM is a flat 64KB memory, 256-port IO bus backed by plain slices. It
// never faults; it exists for tests and for cmd/z80mon's default bus.
type RAM struct {
	Mem   [0x10000]byte
	Ports [0x100]byte
}

// NewRAM returns a RAM bus with scrambled (non-zero) memory, matching
// the "uninitialized RAM is garbage, not zero" convention real hardware
// exhibits. Pass clear=true for a zeroed bus (handy in golden tests).
func NewRAM(clear bool) *RAM {
	r := &RAM{}
	if !clear {
		scramble(r.Mem[:])
	}
	return r
}

func (r *RAM) MemRead(addr uint16) (byte, error) {
	return r.Mem[addr], nil
}

func (r *RAM) MemWrite(addr uint16, value byte) error {
	r.Mem[addr] = value
	return nil
}

func (r *RAM) PortIn(port byte) (byte, error) {
	return r.Ports[port], nil
}

func (r *RAM) PortOut(port byte, value byte) error {
	r.Ports[port] = value
	return nil
}

func scramble(mem []byte) {
	rand.Read(mem) // Garbage memory, not zeroed.
}

// LoadAt copies program bytes into memory starting at addr, wrapping at
// the top of the address space.
func (r *RAM) LoadAt(addr uint16, program []byte) {
	for _, b := range program {
		r.Mem[addr] = b
		addr++
	}
}
