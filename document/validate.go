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
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/minipdf"
)

// These errors are wrapped by [ValidationError] and can be tested for
// using [errors.Is].
var (
	ErrNumbering         = errors.New("object numbers must be 1, 2, 3, ... without gaps")
	ErrDanglingReference = errors.New("reference to missing object")
	ErrWrongType         = errors.New("reference to object of wrong type")
	ErrCountMismatch     = errors.New("/Count does not match the number of /Kids")
	ErrPageCount         = errors.New("document must have exactly one page")
	ErrMediaBox          = errors.New("invalid /MediaBox")
	ErrFont              = errors.New("invalid font")
)

// ValidationError indicates an inconsistency in the object graph of a
// [Document].  Ref identifies the object where the problem was found.
type ValidationError struct {
	Ref minipdf.Reference
	Err error
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("invalid document: object %d: %v", err.Ref.Number(), err.Err)
}

func (err *ValidationError) Unwrap() error {
	return err.Err
}

// Validate checks the consistency of the object graph.
func (doc *Document) Validate() error {
	refs := doc.Refs()
	for i, ref := range refs {
		if ref != minipdf.NewReference(uint32(i+1), 0) {
			return &ValidationError{Ref: ref, Err: ErrNumbering}
		}
	}
	for _, ref := range refs {
		for _, target := range doc.objects[ref].References() {
			if _, ok := doc.objects[target]; !ok {
				return &ValidationError{
					Ref: ref,
					Err: fmt.Errorf("%w %d", ErrDanglingReference, target.Number()),
				}
			}
		}
	}

	catalog, ok := doc.objects[doc.Root].(*Catalog)
	if !ok || catalog != doc.Catalog {
		return &ValidationError{Ref: doc.Root, Err: fmt.Errorf("%w: /Root is not the catalog", ErrWrongType)}
	}

	pages, ok := doc.objects[catalog.Pages].(*PageTree)
	if !ok || pages != doc.Pages {
		return &ValidationError{Ref: doc.Root, Err: fmt.Errorf("%w: /Pages is not a page tree", ErrWrongType)}
	}
	if pages.Count != len(pages.Kids) {
		return &ValidationError{Ref: catalog.Pages, Err: ErrCountMismatch}
	}
	if len(pages.Kids) != 1 {
		return &ValidationError{Ref: catalog.Pages, Err: ErrPageCount}
	}

	pageRef := pages.Kids[0]
	page, ok := doc.objects[pageRef].(*Page)
	if !ok || page != doc.Page {
		return &ValidationError{Ref: catalog.Pages, Err: fmt.Errorf("%w: kid is not a page", ErrWrongType)}
	}
	if page.Parent != catalog.Pages {
		return &ValidationError{Ref: pageRef, Err: fmt.Errorf("%w: /Parent is not the page tree", ErrWrongType)}
	}
	box := page.MediaBox
	for _, x := range []float64{box.LLx, box.LLy, box.URx, box.URy} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return &ValidationError{Ref: pageRef, Err: ErrMediaBox}
		}
	}
	if !(box.URx > box.LLx && box.URy > box.LLy) {
		return &ValidationError{Ref: pageRef, Err: ErrMediaBox}
	}

	contents, ok := doc.objects[page.Contents].(*ContentStream)
	if !ok || contents != doc.Contents {
		return &ValidationError{Ref: pageRef, Err: fmt.Errorf("%w: /Contents is not a content stream", ErrWrongType)}
	}

	_, used, err := contents.render()
	if err != nil {
		return &ValidationError{Ref: page.Contents, Err: err}
	}

	// Every font used in the content stream must be in the page resources.
	for _, name := range used {
		fontRef, ok := page.Fonts[name]
		if !ok {
			return &ValidationError{
				Ref: page.Contents,
				Err: fmt.Errorf("%w: font %q not in page resources", ErrFont, name),
			}
		}
		font, ok := doc.objects[fontRef].(*FontResource)
		if !ok || font != doc.Font {
			return &ValidationError{Ref: pageRef, Err: fmt.Errorf("%w: /%s is not a font", ErrWrongType, name)}
		}
		if font.Name != name || font.BaseFont == "" {
			return &ValidationError{Ref: fontRef, Err: ErrFont}
		}
	}

	return nil
}
