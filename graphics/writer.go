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

package graphics

import (
	"fmt"
	"io"
	"strconv"

	"seehuhn.de/go/minipdf"
)

// Writer writes a PDF content stream.
//
// Errors are sticky: once Err is set, all further operators are ignored.
type Writer struct {
	Content io.Writer
	Err     error

	currentObject objectType
	nesting       []pairType

	// Fonts records the font resource names used in the content stream.
	Fonts []minipdf.Name

	fontSet bool
}

type objectType byte

// Graphics objects, see figure 9 in section 8.2 of ISO 32000-2:2020.
// Only the states needed for text are implemented.
const (
	objPage objectType = 1 << iota
	objText
)

func (s objectType) String() string {
	switch s {
	case objPage:
		return "page"
	case objText:
		return "text"
	default:
		return "objectType(" + strconv.Itoa(int(s)) + ")"
	}
}

type pairType byte

const (
	pairTypeBT pairType = iota + 1 // BT ... ET
)

// NewWriter allocates a new Writer object.
func NewWriter(out io.Writer) *Writer {
	return &Writer{
		Content:       out,
		currentObject: objPage,
	}
}

// Close checks that all text objects have been ended.
// It returns the first error encountered while writing.
func (w *Writer) Close() error {
	if w.Err != nil {
		return w.Err
	}
	if len(w.nesting) > 0 {
		w.Err = fmt.Errorf("%d unclosed text objects", len(w.nesting))
	}
	return w.Err
}

// isValid returns true, if the current graphics object is one of the given
// types and if w.Err is nil.  Otherwise it sets w.Err and returns false.
func (w *Writer) isValid(cmd string, ss objectType) bool {
	if w.Err != nil {
		return false
	}

	if w.currentObject&ss != 0 {
		return true
	}

	w.Err = fmt.Errorf("unexpected state %q for %q", w.currentObject, cmd)
	return false
}

func (w *Writer) coord(x float64) string {
	return format(x)
}

// format writes a number in the shortest form which represents x exactly.
// No exponent notation is used.
func format(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
