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
	"github.com/spf13/afero"

	"github.com/z80sim/z80core/memory"
)

// loadImage reads path off fs and drops it into ram starting at org,
// indirected through afero.Fs so tests can exercise the loader against
// an in-memory filesystem instead of the real one.
func loadImage(fs afero.Fs, path string, org uint16, ram *memory.RAM) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}
	ram.LoadAt(org, data)
	return nil
}
