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
	"bytes"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/minipdf"
	"seehuhn.de/go/minipdf/graphics"
)

// Object is a node in the object graph of a document.
type Object interface {
	// AsPDF returns the body of the indirect object.
	AsPDF() (minipdf.Object, error)

	// References returns the indirect objects this object refers to.
	References() []minipdf.Reference
}

// Catalog is the document catalog, the root of the object graph.
//
// The catalog is documented in section 7.7.2 of ISO 32000-2:2020.
type Catalog struct {
	Pages minipdf.Reference
}

// AsPDF implements the [Object] interface.
func (c *Catalog) AsPDF() (minipdf.Object, error) {
	return minipdf.Dict{
		"Type":  minipdf.Name("Catalog"),
		"Pages": c.Pages,
	}, nil
}

// References implements the [Object] interface.
func (c *Catalog) References() []minipdf.Reference {
	return []minipdf.Reference{c.Pages}
}

// PageTree is the root node of the page tree.
// Count must equal the number of kids.
type PageTree struct {
	Kids  []minipdf.Reference
	Count int
}

// AsPDF implements the [Object] interface.
func (t *PageTree) AsPDF() (minipdf.Object, error) {
	kids := make(minipdf.Array, len(t.Kids))
	for i, kid := range t.Kids {
		kids[i] = kid
	}
	return minipdf.Dict{
		"Type":  minipdf.Name("Pages"),
		"Kids":  kids,
		"Count": minipdf.Integer(t.Count),
	}, nil
}

// References implements the [Object] interface.
func (t *PageTree) References() []minipdf.Reference {
	return t.Kids
}

// Page is a leaf of the page tree.
type Page struct {
	Parent   minipdf.Reference
	MediaBox rect.Rect
	Contents minipdf.Reference

	// Fonts maps font resource names to font dictionaries.
	Fonts map[minipdf.Name]minipdf.Reference
}

// AsPDF implements the [Object] interface.
func (p *Page) AsPDF() (minipdf.Object, error) {
	fonts := minipdf.Dict{}
	for name, ref := range p.Fonts {
		fonts[name] = ref
	}
	box := p.MediaBox
	return minipdf.Dict{
		"Type":   minipdf.Name("Page"),
		"Parent": p.Parent,
		"MediaBox": minipdf.Array{
			minipdf.Number(box.LLx),
			minipdf.Number(box.LLy),
			minipdf.Number(box.URx),
			minipdf.Number(box.URy),
		},
		"Contents": p.Contents,
		"Resources": minipdf.Dict{
			"Font": fonts,
		},
	}, nil
}

// References implements the [Object] interface.
func (p *Page) References() []minipdf.Reference {
	res := []minipdf.Reference{p.Parent, p.Contents}
	for _, ref := range p.Fonts {
		res = append(res, ref)
	}
	return res
}

// ContentStream holds the text shown on the page.
type ContentStream struct {
	// Text is the text as given by the caller.
	Text string

	// Encoded is Text, converted to the encoding of the font.
	Encoded minipdf.String

	Font     minipdf.Name
	FontSize float64
	X, Y     float64
}

// Operators returns the content stream data: a single text object which
// shows the encoded text.
func (cs *ContentStream) Operators() ([]byte, error) {
	data, _, err := cs.render()
	return data, err
}

// render returns the content stream data, together with the names of the
// fonts used.
func (cs *ContentStream) render() ([]byte, []minipdf.Name, error) {
	buf := &bytes.Buffer{}
	w := graphics.NewWriter(buf)
	w.TextStart()
	w.TextSetFont(cs.Font, cs.FontSize)
	w.TextFirstLine(cs.X, cs.Y)
	w.TextShowRaw(cs.Encoded)
	w.TextEnd()
	err := w.Close()
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), w.Fonts, nil
}

// AsPDF implements the [Object] interface.
// The /Length of the stream is the number of bytes returned by
// [ContentStream.Operators].
func (cs *ContentStream) AsPDF() (minipdf.Object, error) {
	data, err := cs.Operators()
	if err != nil {
		return nil, err
	}
	return &minipdf.Stream{Data: data}, nil
}

// References implements the [Object] interface.
func (cs *ContentStream) References() []minipdf.Reference {
	return nil
}

// FontResource describes one of the standard fonts.  The font program is
// not embedded.
type FontResource struct {
	// Name is the key of the font in the page resource dictionary.
	// It is not part of the font dictionary.
	Name minipdf.Name

	Subtype  minipdf.Name
	BaseFont minipdf.Name

	// Encoding, if set, overrides the built-in encoding of the font.
	Encoding minipdf.Name
}

// AsPDF implements the [Object] interface.
func (f *FontResource) AsPDF() (minipdf.Object, error) {
	dict := minipdf.Dict{
		"Type":     minipdf.Name("Font"),
		"Subtype":  f.Subtype,
		"BaseFont": f.BaseFont,
	}
	if f.Encoding != "" {
		dict["Encoding"] = f.Encoding
	}
	return dict, nil
}

// References implements the [Object] interface.
func (f *FontResource) References() []minipdf.Reference {
	return nil
}
