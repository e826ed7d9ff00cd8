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
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/minipdf"
)

// This file implements the text-related PDF operators needed to show a
// single line of text.  The operators are defined in tables 105, 106 and
// 107 of ISO 32000-2:2020.

// TextStart starts a new text object.
//
// This implements the PDF graphics operator "BT".
func (w *Writer) TextStart() {
	if !w.isValid("TextStart", objPage) {
		return
	}
	w.currentObject = objText

	w.nesting = append(w.nesting, pairTypeBT)

	_, w.Err = fmt.Fprintln(w.Content, "BT")
}

// TextEnd ends the current text object.
//
// This implements the PDF graphics operator "ET".
func (w *Writer) TextEnd() {
	if !w.isValid("TextEnd", objText) {
		return
	}
	w.currentObject = objPage

	if len(w.nesting) == 0 || w.nesting[len(w.nesting)-1] != pairTypeBT {
		w.Err = errors.New("TextEnd: no matching TextStart")
		return
	}
	w.nesting = w.nesting[:len(w.nesting)-1]

	_, w.Err = fmt.Fprintln(w.Content, "ET")
}

// TextSetFont sets the font and font size.  The font is identified by its
// name in the /Font resource dictionary of the page.
//
// This implements the PDF graphics operator "Tf".
func (w *Writer) TextSetFont(name minipdf.Name, size float64) {
	if !w.isValid("TextSetFont", objText|objPage) {
		return
	}
	if name == "" {
		w.Err = errors.New("TextSetFont: empty font name")
		return
	}
	if size <= 0 || !isFinite(size) {
		w.Err = fmt.Errorf("TextSetFont: invalid font size %g", size)
		return
	}

	w.fontSet = true
	w.addFont(name)

	err := name.PDF(w.Content)
	if err != nil {
		w.Err = err
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, "", w.coord(size), "Tf")
}

// TextFirstLine moves to the start of the next line of text.
// Inside a new text object, this sets the start of the first line.
//
// This implements the PDF graphics operator "Td".
func (w *Writer) TextFirstLine(dx, dy float64) {
	if !w.isValid("TextFirstLine", objText) {
		return
	}
	if !isFinite(dx) || !isFinite(dy) {
		w.Err = fmt.Errorf("TextFirstLine: invalid offset (%g, %g)", dx, dy)
		return
	}

	_, w.Err = fmt.Fprintln(w.Content, w.coord(dx), w.coord(dy), "Td")
}

// TextShowRaw shows an already encoded text in the PDF file.
// The string is written as a literal string, with all special characters
// escaped.
//
// This implements the PDF graphics operator "Tj".
func (w *Writer) TextShowRaw(s minipdf.String) {
	if !w.isValid("TextShowRaw", objText) {
		return
	}
	if !w.fontSet {
		w.Err = errors.New("TextShowRaw: no font set")
		return
	}

	w.Err = s.PDF(w.Content)
	if w.Err != nil {
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, " Tj")
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func (w *Writer) addFont(name minipdf.Name) {
	for _, f := range w.Fonts {
		if f == name {
			return
		}
	}
	w.Fonts = append(w.Fonts, name)
}
