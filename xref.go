// seehuhn.de/go/minipdf - write minimal single-page PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package minipdf

import (
	"fmt"
	"io"
)

type xRefEntry struct {
	Pos        int64
	Generation uint16
	Free       bool
}

// writeXRefTable writes a cross-reference table with a single subsection,
// followed by the trailer dictionary.  Entry 0 must be the head of the
// free list.  Each entry is a fixed-width line: a 10-digit offset, a 5-digit
// generation number, and the letter "n" (in use) or "f" (free).
func writeXRefTable(w io.Writer, entries []*xRefEntry, trailer Dict) error {
	_, err := fmt.Fprintf(w, "xref\n0 %d\n", len(entries))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Free {
			_, err = fmt.Fprintf(w, "%010d %05d f\n", entry.Pos, entry.Generation)
		} else {
			_, err = fmt.Fprintf(w, "%010d %05d n\n", entry.Pos, entry.Generation)
		}
		if err != nil {
			return err
		}
	}

	_, err = w.Write([]byte("trailer\n"))
	if err != nil {
		return err
	}
	return trailer.PDF(w)
}
