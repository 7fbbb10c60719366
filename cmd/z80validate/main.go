/*
Copyright (c) 2019-2020 The z80core Authors

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

// Command z80validate diffs two recorded validator.Event streams,
// produced by running the same program against two independently
// built cores under the validator build tag, and reports the first
// point of divergence.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/z80sim/z80core/processor"
	"github.com/z80sim/z80core/processor/validator"
)

var (
	coreInput = "z80core.json"
	refInput  = "reference.json"
)

func init() {
	flag.StringVar(&coreInput, "core", coreInput, "this engine's recorded event stream")
	flag.StringVar(&refInput, "reference", refInput, "the reference engine's recorded event stream")
}

func main() {
	flag.Parse()
	log.SetFlags(0)

	coreFp, err := os.Open(coreInput)
	if err != nil {
		log.Fatal(err)
	}
	defer coreFp.Close()

	refFp, err := os.Open(refInput)
	if err != nil {
		log.Fatal(err)
	}
	defer refFp.Close()

	coreDec := json.NewDecoder(coreFp)
	refDec := json.NewDecoder(refFp)

	var numEq, numTotal int
	for {
		var a, b validator.Event
		aErr := coreDec.Decode(&a)
		bErr := refDec.Decode(&b)
		if aErr != nil || bErr != nil {
			break
		}
		numTotal++
		if equalOpcodeAndLocation(&a, &b) {
			numEq++
			continue
		}
		log.Printf("divergence at instruction %d: PC=%04X opcode=%02X (reference PC=%04X opcode=%02X)",
			numTotal, a.PC, a.Opcode, b.PC, b.Opcode)
		break
	}
	log.Printf("%d/%d instructions matched before the stream ended or diverged", numEq, numTotal)
}

func equalAll(a, b *validator.Event) bool {
	return *a == *b
}

func equalOpcodeAndLocation(a, b *validator.Event) bool {
	return a.Opcode == b.Opcode && a.PC == b.PC
}

func equalInputData(a, b *validator.Event) bool {
	for i, read := range a.Reads {
		if read != b.Reads[i] {
			return false
		}
	}
	return equalRegs(&a.Before, &b.Before) && a.Opcode == b.Opcode
}

func equalRegs(a, b *processor.Registers) bool {
	return *a == *b
}
