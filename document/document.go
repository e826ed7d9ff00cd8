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

// Package document builds complete single-page PDF documents, each
// showing one line of text in one of the standard fonts.
//
// A document consists of five indirect objects, numbered in this order:
// the catalog, the page tree, the page, the content stream and the font.
package document

import (
	"io"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/minipdf"
)

// DefaultFileName is the output file used by [Create].
const DefaultFileName = "manual.pdf"

// Document is the object graph of a single-page PDF file.
// A Document is not modified after it has been constructed by [New].
type Document struct {
	Version minipdf.Version

	// Root is the reference of the document catalog.
	Root minipdf.Reference

	Catalog  *Catalog
	Pages    *PageTree
	Page     *Page
	Contents *ContentStream
	Font     *FontResource

	objects map[minipdf.Reference]Object
}

// New constructs the object graph for a page showing the given text.
// If layout is nil, [DefaultLayout] is used.
func New(text string, layout *Layout) (*Document, error) {
	if layout == nil {
		layout = DefaultLayout
	}

	encoded, nonASCII, err := EncodeText(text)
	if err != nil {
		return nil, err
	}

	a := &minipdf.Allocator{}
	catalogRef := a.Alloc()
	pagesRef := a.Alloc()
	pageRef := a.Alloc()
	contentsRef := a.Alloc()
	fontRef := a.Alloc()

	font := &FontResource{
		Name:     layout.FontName,
		Subtype:  "Type1",
		BaseFont: layout.BaseFont,
	}
	if nonASCII {
		font.Encoding = "WinAnsiEncoding"
	}

	doc := &Document{
		Version: minipdf.V1_4,
		Root:    catalogRef,

		Catalog: &Catalog{Pages: pagesRef},
		Pages: &PageTree{
			Kids:  []minipdf.Reference{pageRef},
			Count: 1,
		},
		Page: &Page{
			Parent:   pagesRef,
			MediaBox: layout.PageSize,
			Contents: contentsRef,
			Fonts: map[minipdf.Name]minipdf.Reference{
				layout.FontName: fontRef,
			},
		},
		Contents: &ContentStream{
			Text:     text,
			Encoded:  encoded,
			Font:     layout.FontName,
			FontSize: layout.FontSize,
			X:        layout.X,
			Y:        layout.Y,
		},
		Font: font,
	}
	doc.objects = map[minipdf.Reference]Object{
		catalogRef:  doc.Catalog,
		pagesRef:    doc.Pages,
		pageRef:     doc.Page,
		contentsRef: doc.Contents,
		fontRef:     doc.Font,
	}

	err = doc.Validate()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Refs returns the references of all objects in the document, in
// increasing order.
func (doc *Document) Refs() []minipdf.Reference {
	refs := make([]minipdf.Reference, 0, len(doc.objects))
	for ref := range doc.objects {
		refs = append(refs, ref)
	}
	slices.Sort(refs)
	return refs
}

// Get returns the object with the given reference, or nil if there is no
// such object.
func (doc *Document) Get(ref minipdf.Reference) Object {
	return doc.objects[ref]
}

// Write writes the document to w, as a complete PDF file.
func (doc *Document) Write(w io.Writer) error {
	out, err := minipdf.NewWriter(w, doc.Version)
	if err != nil {
		return err
	}
	return doc.WriteObjects(out)
}

// WriteFile writes the document to the named file.  If writing fails, the
// file is not created and an existing file of the same name is left
// unchanged.
func (doc *Document) WriteFile(name string) error {
	out, err := minipdf.Create(name, doc.Version)
	if err != nil {
		return err
	}
	return doc.WriteObjects(out)
}

// WriteObjects writes all objects of the document to out, in increasing
// order of object numbers, and then closes out.  If an error occurs, out
// is aborted.
func (doc *Document) WriteObjects(out *minipdf.Writer) error {
	err := doc.Validate()
	if err != nil {
		out.Abort()
		return err
	}

	for _, ref := range doc.Refs() {
		obj, err := doc.objects[ref].AsPDF()
		if err != nil {
			out.Abort()
			return err
		}
		err = out.Put(ref, obj)
		if err != nil {
			out.Abort()
			return err
		}
	}

	return out.Close(doc.Root)
}

// Create writes a single-page PDF file showing text to [DefaultFileName]
// in the current directory.
func Create(text string) error {
	doc, err := New(text, nil)
	if err != nil {
		return err
	}
	return doc.WriteFile(DefaultFileName)
}
