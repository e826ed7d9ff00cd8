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

package document

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/minipdf"
)

// EncodingError is returned when text cannot be represented in
// WinAnsiEncoding.
type EncodingError struct {
	// Offset is the byte offset of the offending character in the
	// NFC-normalized text.  For invalid UTF-8, it is the offset in the
	// original text.
	Offset int

	// Rune is the character which cannot be encoded.
	Rune rune

	// Invalid is set if the text is not valid UTF-8.
	Invalid bool
}

func (err *EncodingError) Error() string {
	if err.Invalid {
		return fmt.Sprintf("invalid UTF-8 at byte %d", err.Offset)
	}
	return fmt.Sprintf("character %q (U+%04X) at byte %d cannot be encoded in WinAnsiEncoding",
		err.Rune, err.Rune, err.Offset)
}

// EncodeText converts a UTF-8 string to WinAnsiEncoding, the encoding used
// for the text on the page.  The text is normalized to NFC first, so that
// combining sequences like "e" followed by U+0301 turn into a single
// character where possible.  ASCII text is returned unchanged.
//
// The second return value reports whether the result contains any bytes
// outside the ASCII range.
func EncodeText(s string) (minipdf.String, bool, error) {
	if !utf8.ValidString(s) {
		for i, r := range s {
			if r == utf8.RuneError {
				if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
					return nil, false, &EncodingError{Offset: i, Rune: utf8.RuneError, Invalid: true}
				}
			}
		}
	}

	s = norm.NFC.String(s)

	res := make(minipdf.String, 0, len(s))
	nonASCII := false
	for i, r := range s {
		if r < utf8.RuneSelf {
			res = append(res, byte(r))
			continue
		}
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			return nil, false, &EncodingError{Offset: i, Rune: r}
		}
		res = append(res, c)
		nonASCII = true
	}
	return res, nonASCII, nil
}
