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
	"log"

	"github.com/gdamore/tcell"

	"github.com/z80sim/z80core/disasm"
	"github.com/z80sim/z80core/processor"
)

// runDashboard drives the full-screen tcell view: press 's' to single
// step, 'r' to free-run until a fault/breakpoint, 'q' to quit.
func runDashboard(m *monitor) {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	screen.Clear()
	defaultStyle := tcell.StyleDefault
	running := false
	var lastErr error

	draw := func() {
		screen.Clear()
		drawRegisters(screen, defaultStyle, m)
		drawDisasm(screen, defaultStyle, m)
		if lastErr != nil {
			drawString(screen, defaultStyle, 0, 20, "fault: "+lastErr.Error())
		}
		drawString(screen, defaultStyle, 0, 22, "[s] step  [r] run  [q] quit")
		screen.Show()
	}

	draw()
	for {
		if running {
			if _, lastErr = m.cpu.Step(); lastErr != nil || m.atBreak() {
				running = false
			}
			draw()
			continue
		}

		ev := screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventKey:
			switch e.Rune() {
			case 'q', 'Q':
				return
			case 's', 'S':
				_, lastErr = m.cpu.Step()
				draw()
			case 'r', 'R':
				running = true
			}
			if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC {
				return
			}
		case *tcell.EventResize:
			screen.Sync()
			draw()
		}
	}
}

func drawRegisters(s tcell.Screen, style tcell.Style, m *monitor) {
	r := &m.cpu.Registers
	lines := []string{
		fmt.Sprintf("PC=%04X  SP=%04X  IX=%04X  IY=%04X", r.PC, r.SP, r.IX, r.IY),
		fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X", r.AF(), r.BC(), r.DE(), r.HL()),
		fmt.Sprintf("AF'=%04X BC'=%04X DE'=%04X HL'=%04X", uint16(r.A2)<<8|uint16(r.F2), r.BC2(), r.DE2(), r.HL2()),
		fmt.Sprintf("I=%02X R=%02X IFF1=%v IFF2=%v IM=%s HALT=%v", r.I, r.R, r.IFF1, r.IFF2, r.IM, r.Halted),
		fmt.Sprintf("cycles=%d", m.cpu.Cycles()),
	}
	for i, l := range lines {
		drawString(s, style, 0, i, l)
	}
}

func drawDisasm(s tcell.Screen, style tcell.Style, m *monitor) {
	d := disasm.New(m.bus)
	d.SetInvalidOpcodePolicy(processor.NopSilently) // keep scrolling past unknown bytes in the view
	lines, _ := d.DisassembleMany(m.cpu.PC, 12)
	for i, l := range lines {
		drawString(s, style, 0, 7+i, l.String())
	}
}

func drawString(s tcell.Screen, style tcell.Style, x, y int, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}
