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
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/minipdf"
)

// Default paper sizes, in PDF units (1/72 inch).
var (
	A4     = rect.Rect{URx: 595, URy: 842}
	A5     = rect.Rect{URx: 420, URy: 595}
	Letter = rect.Rect{URx: 612, URy: 792}
)

// Layout describes where and how the text is placed on the page.
type Layout struct {
	// PageSize is used as the /MediaBox of the page.
	PageSize rect.Rect

	// FontName is the name of the font in the page resource dictionary.
	FontName minipdf.Name

	// BaseFont is the PostScript name of one of the standard fonts,
	// for example "Helvetica".  The font is not embedded.
	BaseFont minipdf.Name

	FontSize float64

	// X and Y give the start of the text line, measured from the
	// lower left corner of the page.
	X, Y float64
}

// DefaultLayout places 24pt Helvetica text near the top left of an A4
// page.
var DefaultLayout = &Layout{
	PageSize: A4,
	FontName: "F1",
	BaseFont: "Helvetica",
	FontSize: 24,
	X:        100,
	Y:        700,
}
