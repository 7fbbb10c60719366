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

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/z80sim/z80core/disasm"
)

// runHeadless is a minimal line-oriented stepper for scripted use or a
// plain terminal with no screen redraw: each keystroke executes exactly
// one step, or 'r' free-runs until a fault or the breakpoint. It takes
// the terminal into raw mode so single keystrokes arrive unbuffered,
// without needing a full-screen view.
func runHeadless(m *monitor) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "z80mon: not a terminal, running to completion:", err)
		runToCompletion(m)
		return
	}
	defer term.Restore(fd, oldState)

	fmt.Print("\r\nz80mon headless: [s] step  [r] run  [q] quit\r\n")
	buf := make([]byte, 1)
	running := false
	for {
		if running {
			if _, err := m.cpu.Step(); err != nil || m.atBreak() {
				running = false
				printState(m, err)
			}
			continue
		}
		if _, err := os.Stdin.Read(buf); err != nil {
			return
		}
		switch buf[0] {
		case 'q', 'Q', 3: // 3 = Ctrl-C
			return
		case 's', 'S':
			_, err := m.cpu.Step()
			printState(m, err)
		case 'r', 'R':
			running = true
		}
	}
}

func runToCompletion(m *monitor) {
	for {
		if _, err := m.cpu.Step(); err != nil {
			printState(m, err)
			return
		}
		if m.atBreak() {
			printState(m, nil)
			return
		}
	}
}

func printState(m *monitor, err error) {
	d := disasm.New(m.bus)
	line, _, decErr := d.DisassembleAt(m.cpu.PC)
	if decErr == nil {
		fmt.Print("\r\n" + line.String())
	}
	r := &m.cpu.Registers
	fmt.Printf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X\r\n", r.AF(), r.BC(), r.DE(), r.HL(), r.SP, r.PC)
	if err != nil {
		fmt.Printf("fault: %v\r\n", err)
	}
}
