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

package memory

import "testing"

func TestRAMReadWriteRoundTrip(t *testing.T) {
	r := NewRAM(true)
	if err := r.MemWrite(0x1234, 0xAB); err != nil {
		t.Fatal(err)
	}
	v, err := r.MemRead(0x1234)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xAB {
		t.Fatalf("MemRead = %02X, want AB", v)
	}
}

func TestRAMClearedIsZeroed(t *testing.T) {
	r := NewRAM(true)
	for _, v := range r.Mem {
		if v != 0 {
			t.Fatal("NewRAM(true) should start fully zeroed")
		}
	}
}

func TestRAMPortRoundTrip(t *testing.T) {
	r := NewRAM(true)
	if err := r.PortOut(0x42, 0x99); err != nil {
		t.Fatal(err)
	}
	v, err := r.PortIn(0x42)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x99 {
		t.Fatalf("PortIn = %02X, want 99", v)
	}
}

func TestLoadAtWrapsAtTopOfAddressSpace(t *testing.T) {
	r := NewRAM(true)
	r.LoadAt(0xFFFE, []byte{0x11, 0x22, 0x33})
	if r.Mem[0xFFFE] != 0x11 || r.Mem[0xFFFF] != 0x22 || r.Mem[0x0000] != 0x33 {
		t.Fatal("LoadAt should wrap the trailing byte to address 0")
	}
}

func TestErrorMessages(t *testing.T) {
	if (&UnreadableAddressError{Address: 0x1000}).Error() == "" {
		t.Fatal("empty error message")
	}
	if (&UnwritableAddressError{Address: 0x1000, Value: 1}).Error() == "" {
		t.Fatal("empty error message")
	}
	if (&UnreadablePortError{Port: 1}).Error() == "" {
		t.Fatal("empty error message")
	}
	if (&UnwritablePortError{Port: 1, Value: 1}).Error() == "" {
		t.Fatal("empty error message")
	}
}
