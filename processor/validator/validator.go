// +build validator

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

package validator

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"math"
	"os"

	"github.com/z80sim/z80core/processor"
)

const Enabled = true

var outputFile string

var (
	inScope      bool
	currentEvent Event
	outputChan   chan Event
	quitChan     chan struct{}
)

func Initialize(output string, queueSize, bufferSize int) {
	if outputFile = output; output == "" {
		return
	}

	outputChan = make(chan Event, queueSize)
	quitChan = make(chan struct{})

	fp, err := os.Create(outputFile)
	if err != nil {
		log.Panic(err)
	}

	go func() {
		var buffer bytes.Buffer

		defer fp.Close()
		defer func() { io.Copy(fp, &buffer); quitChan <- struct{}{} }()

		enc := json.NewEncoder(&buffer)

		for ev := range outputChan {
			if err := enc.Encode(ev); err != nil {
				log.Print(err)
				return
			}
			if buffer.Len() >= bufferSize {
				if _, err := io.Copy(fp, &buffer); err != nil {
					log.Print(err)
					return
				}
			}
		}
	}()
}

func Begin(opcode byte, pc uint16, before processor.Registers) {
	if outputFile == "" {
		return
	}
	inScope = true
	currentEvent = EmptyEvent
	currentEvent.Opcode = opcode
	currentEvent.PC = pc
	currentEvent.Before = before
}

func End(after processor.Registers, cycles uint64) {
	if !inScope {
		return
	}
	inScope = false
	currentEvent.After = after
	currentEvent.Cycles = cycles
	outputChan <- currentEvent
}

func Discard() {
	inScope = false
}

func ReadByte(addr uint16, data byte) {
	if !inScope {
		return
	}
	for i, op := range currentEvent.Reads {
		if op.Addr == math.MaxUint16 {
			currentEvent.Reads[i] = MemOp{addr, data}
			return
		}
	}
}

func WriteByte(addr uint16, data byte) {
	if !inScope {
		return
	}
	for i, op := range currentEvent.Writes {
		if op.Addr == math.MaxUint16 {
			currentEvent.Writes[i] = MemOp{addr, data}
			return
		}
	}
}

func PortRead(port, data byte) {
	if !inScope {
		return
	}
	for i, op := range currentEvent.PortReads {
		if op.Port == 0xFF {
			currentEvent.PortReads[i] = PortOp{port, data}
			return
		}
	}
}

func PortWrite(port, data byte) {
	if !inScope {
		return
	}
	for i, op := range currentEvent.PortWrites {
		if op.Port == 0xFF {
			currentEvent.PortWrites[i] = PortOp{port, data}
			return
		}
	}
}

func Shutdown() {
	if outputFile == "" {
		return
	}
	close(outputChan)
	<-quitChan
}
