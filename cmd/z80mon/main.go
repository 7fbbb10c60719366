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

// Command z80mon is a terminal monitor for the z80core engine: it loads
// a raw binary image into RAM, then single-steps or free-runs a CPU
// against it while showing the register file and a disassembly window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/afero"

	"github.com/z80sim/z80core/memory"
	"github.com/z80sim/z80core/processor/cpu"
	"github.com/z80sim/z80core/version"
)

func main() {
	var (
		image     = flag.String("image", "", "path to a raw binary program image")
		org       = flag.String("org", "0", "load address / entry point, hex")
		breakAddr = flag.String("break", "", "address to stop at, hex (optional)")
		traceFile = flag.String("trace", "", "write an instruction trace to this file")
		headless  = flag.Bool("headless", false, "run with raw-keystroke stepping instead of the full dashboard")
	)
	flag.Parse()

	log.SetFlags(0)
	if *image == "" {
		fmt.Fprintln(os.Stderr, "z80mon", version.Current, "- usage: z80mon -image <file> [-org HHHH] [-break HHHH] [-trace FILE] [-headless]")
		os.Exit(2)
	}

	orgAddr, err := parseHex16(*org)
	if err != nil {
		log.Fatalf("bad -org: %v", err)
	}

	var brk uint16
	hasBreak := false
	if *breakAddr != "" {
		hasBreak = true
		if brk, err = parseHex16(*breakAddr); err != nil {
			log.Fatalf("bad -break: %v", err)
		}
	}

	ram := memory.NewRAM(false)
	if err := loadImage(afero.NewOsFs(), *image, orgAddr, ram); err != nil {
		log.Fatalf("loading %s: %v", *image, err)
	}

	c := cpu.New(ram)
	c.Reset()
	c.PC = orgAddr

	if *traceFile != "" {
		fp, err := os.Create(*traceFile)
		if err != nil {
			log.Fatal(err)
		}
		defer fp.Close()
		c.SetTraceSink(&fileLineWriter{fp})
	}

	mon := &monitor{cpu: c, bus: ram, hasBreak: hasBreak, brk: brk}

	if *headless {
		runHeadless(mon)
		return
	}
	runDashboard(mon)
}

func parseHex16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 16, 16)
	return uint16(v), err
}

// fileLineWriter adapts an *os.File to trace.LineWriter.
type fileLineWriter struct {
	fp *os.File
}

func (w *fileLineWriter) WriteLine(s string) error {
	_, err := w.fp.WriteString(s)
	return err
}

// monitor bundles the pieces both UI modes drive identically.
type monitor struct {
	cpu      *cpu.CPU
	bus      *memory.RAM
	hasBreak bool
	brk      uint16
}

func (m *monitor) atBreak() bool {
	return m.hasBreak && m.cpu.PC == m.brk
}
