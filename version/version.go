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

//go:generate go run ../cmd/gen-version -file version.go

package version

import "fmt"

// Version is a four-part Major.Minor.Patch.Build number.
type Version struct {
	Major, Minor, Patch int
	Build               string
}

func (v Version) String() string {
	if v.Build == "" {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d.%d.%s", v.Major, v.Minor, v.Patch, v.Build)
}

var (
	Current   = Version{0, 1, 0, ""}
	Copyright = "Copyright (c) 2026 The z80core Authors"
	Hash      = ""
)
