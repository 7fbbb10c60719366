// +build !validator

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
	"testing"

	"github.com/z80sim/z80core/processor"
)

func TestNoValidatorBuildIsInert(t *testing.T) {
	if Enabled {
		t.Fatal("Enabled must be false in a non-validator build")
	}
	// None of these should panic or block; they are no-ops by design.
	Initialize("", 0, 0)
	Begin(0, 0, processor.Registers{})
	ReadByte(0, 0)
	WriteByte(0, 0)
	PortRead(0, 0)
	PortWrite(0, 0)
	End(processor.Registers{}, 0)
	Discard()
	Shutdown()
}
