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

// Package minipdf writes PDF files as a sequence of indirect objects,
// followed by a classic cross-reference table and the file trailer.
//
// A [Writer] is used to write the objects of a new PDF file:
//
//	w, err := minipdf.Create("out.pdf", minipdf.V1_4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	catalog := w.Alloc()
//	pages := w.Alloc()
//	... write the objects using w.Put() ...
//	err = w.Close(catalog)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The output only appears under the given name once Close has succeeded.
//
// The following types implement the PDF object types used by this package.
// All of these implement the [Object] interface:
//
//	Array
//	Dict
//	Integer
//	Name
//	Number
//	Real
//	Reference
//	Stream
//	String
//
// [SequentialScan] can be used to re-read a file and to check that the
// cross-reference table matches the file contents.
//
// The subpackage document builds a complete single-page document containing
// one line of text.
package minipdf
