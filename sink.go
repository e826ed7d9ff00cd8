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
	"io"
	"os"
	"path/filepath"
)

// Sink is the destination of a PDF file.
//
// Position must return the number of bytes written to the sink so far.
// The value must reflect all previous calls to Write; the byte offsets
// in the cross-reference table are taken from it.
type Sink interface {
	io.Writer
	Position() (int64, error)
}

// posWriter turns an arbitrary io.Writer into a Sink, by counting the
// bytes written.
type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}

func (w *posWriter) Position() (int64, error) {
	return w.pos, nil
}

// A committer is a sink which only becomes visible once the output is
// complete.
type committer interface {
	Commit() error
	Discard() error
}

// File is a [Sink] which writes to a temporary file next to the final
// destination.  The temporary file is renamed to the destination by
// [File.Commit], and removed by [File.Discard].  Until Commit succeeds, an
// existing file at the destination is left untouched.
type File struct {
	name string
	tmp  *os.File
	done bool
}

// CreateFile creates a temporary file in the directory of name.
func CreateFile(name string) (*File, error) {
	dir, base := filepath.Split(name)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, &SinkError{Op: OpCreate, Err: err}
	}
	return &File{name: name, tmp: tmp}, nil
}

// Name returns the name of the final destination.
func (f *File) Name() string {
	return f.name
}

// Write implements the [io.Writer] interface.
func (f *File) Write(p []byte) (int, error) {
	if f.done {
		return 0, os.ErrClosed
	}
	return f.tmp.Write(p)
}

// Position implements the [Sink] interface.
// Writes to an [os.File] are not buffered, so the current file offset
// always includes all data written so far.
func (f *File) Position() (int64, error) {
	if f.done {
		return 0, os.ErrClosed
	}
	return f.tmp.Seek(0, io.SeekCurrent)
}

// Commit flushes the temporary file to disk and moves it to the
// destination.  If any of these steps fails, the temporary file is removed.
func (f *File) Commit() error {
	if f.done {
		return os.ErrClosed
	}
	f.done = true

	tmpName := f.tmp.Name()
	err := f.tmp.Sync()
	if err == nil {
		err = f.tmp.Chmod(0o644)
	}
	err = errors.Join(err, f.tmp.Close())
	if err == nil {
		err = os.Rename(tmpName, f.name)
	}
	if err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Discard closes and removes the temporary file.  Calling Discard after
// Commit has no effect.
func (f *File) Discard() error {
	if f.done {
		return nil
	}
	f.done = true

	err := f.tmp.Close()
	return errors.Join(err, os.Remove(f.tmp.Name()))
}
