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
	"errors"
	"fmt"
	"io"
)

// Writer represents a PDF file open for writing.
//
// Objects are written sequentially using [Writer.Put].  Before each object
// is written, the current position of the output is recorded; these
// positions make up the cross-reference table written by [Writer.Close].
// After the first failure, all methods return the same error.
type Writer struct {
	Version Version

	w     Sink
	xref  map[uint32]*xRefEntry // objects written so far
	alloc Allocator

	err    error
	closed bool
}

// NewWriter prepares a PDF file for writing and writes the file header.
// If w implements [Sink], its Position method is used to determine object
// offsets.  Otherwise the bytes written to w are counted.
func NewWriter(w io.Writer, ver Version) (*Writer, error) {
	if ver != V1_4 {
		return nil, errVersion
	}
	sink, ok := w.(Sink)
	if !ok {
		sink = &posWriter{w: w}
	}

	pdf := &Writer{
		Version: ver,

		w:    sink,
		xref: make(map[uint32]*xRefEntry),
	}

	versionString, err := ver.ToString()
	if err != nil {
		return nil, err
	}
	err = pdf.writeString("%PDF-" + versionString + "\n")
	if err != nil {
		return nil, err
	}

	return pdf, nil
}

// Create creates the named PDF file and opens it for output.  The data is
// written to a temporary file, which replaces the named file only once
// [Writer.Close] has completed successfully.  If writing fails, or if
// [Writer.Abort] is called, the temporary file is removed.
func Create(name string, ver Version) (*Writer, error) {
	f, err := CreateFile(name)
	if err != nil {
		return nil, err
	}
	pdf, err := NewWriter(f, ver)
	if err != nil {
		f.Discard()
		return nil, err
	}
	return pdf, nil
}

// Alloc allocates an object number for an indirect object.
// Object numbers are allocated in increasing order, starting after the
// highest object number used so far.
func (pdf *Writer) Alloc() Reference {
	return pdf.alloc.Alloc()
}

// Put writes obj to the PDF file, as the indirect object ref.
func (pdf *Writer) Put(ref Reference, obj Object) error {
	if pdf.err != nil {
		return pdf.err
	}

	number := ref.Number()
	if number == 0 {
		return errors.New("invalid object number 0")
	}
	if _, seen := pdf.xref[number]; seen {
		return fmt.Errorf("object %d already written", number)
	}
	if number > pdf.alloc.last {
		pdf.alloc.last = number
	}

	pos, err := pdf.w.Position()
	if err != nil {
		return pdf.fail(&SinkError{Op: OpPosition, Err: err})
	}

	err = pdf.writeString(fmt.Sprintf("%d %d obj\n", ref.Number(), ref.Generation()))
	if err != nil {
		return err
	}
	err = writeObject(pdf.out(), obj)
	if err != nil {
		return pdf.fail(err)
	}
	err = pdf.writeString("\nendobj\n")
	if err != nil {
		return err
	}

	pdf.xref[number] = &xRefEntry{Pos: pos, Generation: ref.Generation()}

	return nil
}

// Offset returns the byte offset at which the indirect object ref was
// written.  The second return value is false if the object has not been
// written.
func (pdf *Writer) Offset(ref Reference) (int64, bool) {
	entry, ok := pdf.xref[ref.Number()]
	if !ok {
		return 0, false
	}
	return entry.Pos, true
}

// Close writes the cross-reference table and the file trailer.  Root must
// refer to the document catalog.  If the output was opened by [Create], the
// file is moved into place.  Other outputs are left open.
//
// All objects allocated or written must form a contiguous range of object
// numbers starting at 1.
func (pdf *Writer) Close(root Reference) error {
	if pdf.err != nil {
		pdf.Abort()
		return pdf.err
	}

	size := pdf.alloc.Count() + 1
	entries := make([]*xRefEntry, 1, len(pdf.xref)+1)
	entries[0] = &xRefEntry{Pos: 0, Generation: 65535, Free: true}
	for number := 1; number < size; number++ {
		entry := pdf.xref[uint32(number)]
		if entry == nil {
			pdf.Abort()
			return fmt.Errorf("object %d was allocated but not written", number)
		}
		entries = append(entries, entry)
	}
	if int(root.Number()) >= size || root.Number() == 0 {
		pdf.Abort()
		return errors.New("missing /Root object")
	}

	xRefPos, err := pdf.w.Position()
	if err != nil {
		pdf.fail(&SinkError{Op: OpPosition, Err: err})
		pdf.Abort()
		return pdf.err
	}

	trailer := Dict{
		"Size": Integer(size),
		"Root": root,
	}
	err = writeXRefTable(pdf.out(), entries, trailer)
	if err == nil {
		err = pdf.writeString(fmt.Sprintf("\nstartxref\n%d\n%%%%EOF", xRefPos))
	}
	if err != nil {
		pdf.fail(err)
		pdf.Abort()
		return pdf.err
	}

	end := pdf.pos()
	pdf.closed = true
	pdf.fail(errClosed)

	if w, ok := pdf.w.(committer); ok {
		err = w.Commit()
		if err != nil {
			return &SinkError{Op: OpCommit, Pos: end, Err: err}
		}
	}
	return nil
}

// Abort discards all output, if the underlying sink supports this.  After
// Abort has been called, the Writer cannot be used any more.  Calling Abort
// after a successful call to Close has no effect.
func (pdf *Writer) Abort() {
	if pdf.closed {
		return
	}
	pdf.closed = true
	pdf.fail(errClosed)
	if w, ok := pdf.w.(committer); ok {
		w.Discard()
	}
}

// fail records the first error encountered.
func (pdf *Writer) fail(err error) error {
	if pdf.err == nil {
		pdf.err = err
	}
	return pdf.err
}

func (pdf *Writer) writeString(s string) error {
	_, err := pdf.out().Write([]byte(s))
	if err != nil {
		return pdf.fail(err)
	}
	return nil
}

func (pdf *Writer) out() io.Writer {
	return sinkWriter{pdf}
}

// pos returns the current sink position for error messages.
func (pdf *Writer) pos() int64 {
	pos, _ := pdf.w.Position()
	return pos
}

// sinkWriter reports failed writes as a [SinkError].
type sinkWriter struct {
	pdf *Writer
}

func (w sinkWriter) Write(p []byte) (int, error) {
	if w.pdf.err != nil {
		return 0, w.pdf.err
	}
	n, err := w.pdf.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return n, w.pdf.fail(&SinkError{Op: OpWrite, Pos: w.pdf.pos(), Err: err})
	}
	return n, nil
}
