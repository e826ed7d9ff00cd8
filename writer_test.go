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
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, V1_4)
	if err != nil {
		t.Fatal(err)
	}

	catalog := w.Alloc()
	pages := w.Alloc()
	err = w.Put(catalog, Dict{"Type": Name("Catalog"), "Pages": pages})
	if err != nil {
		t.Fatal(err)
	}
	err = w.Put(pages, Dict{"Type": Name("Pages"), "Kids": Array{}, "Count": Integer(0)})
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close(catalog)
	if err != nil {
		t.Fatal(err)
	}

	expected := "%PDF-1.4\n" +
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n" +
		"2 0 obj\n<< /Type /Pages /Count 0 /Kids [] >>\nendobj\n" +
		"xref\n0 3\n" +
		"0000000000 65535 f\n" +
		"0000000009 00000 n\n" +
		"0000000058 00000 n\n" +
		"trailer\n<< /Root 1 0 R /Size 3 >>\n" +
		"startxref\n110\n%%EOF"
	if d := cmp.Diff(expected, buf.String()); d != "" {
		t.Errorf("unexpected output (-want +got):\n%s", d)
	}
}

func TestWriterOffsets(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, V1_4)
	if err != nil {
		t.Fatal(err)
	}

	var refs []Reference
	for i := 0; i < 10; i++ {
		ref := w.Alloc()
		err = w.Put(ref, String(fmt.Sprintf("object (%d)", i)))
		if err != nil {
			t.Fatal(err)
		}
		refs = append(refs, ref)
	}
	err = w.Close(refs[0])
	if err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	for _, ref := range refs {
		pos, ok := w.Offset(ref)
		if !ok {
			t.Fatalf("no offset for %s", ref)
		}
		marker := fmt.Sprintf("\n%d 0 obj\n", ref.Number())
		idx := bytes.Index(data, []byte(marker))
		if idx < 0 || int64(idx+1) != pos {
			t.Errorf("%s: recorded offset %d, found at %d", ref, pos, idx+1)
		}
	}

	if _, ok := w.Offset(NewReference(11, 0)); ok {
		t.Error("offset reported for unwritten object")
	}
}

func TestWriterVersion(t *testing.T) {
	for _, v := range []Version{V1_0, V1_3, V1_5, V1_7, V2_0} {
		_, err := NewWriter(&bytes.Buffer{}, v)
		if err != errVersion {
			t.Errorf("%s: expected errVersion, got %v", v, err)
		}
	}
}

func TestWriterNumbering(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{}, V1_4)
	if err != nil {
		t.Fatal(err)
	}
	a := w.Alloc()
	w.Alloc()
	c := w.Alloc()

	err = w.Put(a, Integer(1))
	if err != nil {
		t.Fatal(err)
	}
	err = w.Put(a, Integer(1))
	if err == nil {
		t.Error("writing an object twice should fail")
	}
	err = w.Put(0, Integer(1))
	if err == nil {
		t.Error("object number 0 should be rejected")
	}
	err = w.Put(c, Integer(3))
	if err != nil {
		t.Fatal(err)
	}

	err = w.Close(a)
	if err == nil {
		t.Error("missing object 2 not detected")
	}
}

func TestWriterPutBumpsAllocator(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{}, V1_4)
	if err != nil {
		t.Fatal(err)
	}
	err = w.Put(NewReference(1, 0), Integer(1))
	if err != nil {
		t.Fatal(err)
	}
	if ref := w.Alloc(); ref != NewReference(2, 0) {
		t.Errorf("expected object 2, got %s", ref)
	}
}

// failWriter fails once more than limit bytes have been written.
type failWriter struct {
	limit int
	n     int
}

var errTest = errors.New("test error")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > w.limit {
		k := w.limit - w.n
		w.n = w.limit
		return k, errTest
	}
	w.n += len(p)
	return len(p), nil
}

func TestWriterWriteError(t *testing.T) {
	out := &failWriter{limit: 20}
	w, err := NewWriter(out, V1_4)
	if err != nil {
		t.Fatal(err)
	}

	ref := w.Alloc()
	err = w.Put(ref, Dict{"Type": Name("Catalog")})
	var sinkErr *SinkError
	if !errors.As(err, &sinkErr) || sinkErr.Op != OpWrite {
		t.Fatalf("expected a write error, got %v", err)
	}
	if !errors.Is(err, errTest) {
		t.Errorf("underlying error not wrapped: %v", err)
	}

	// Errors are sticky.
	n := out.n
	err2 := w.Put(w.Alloc(), Integer(1))
	if err2 != err {
		t.Errorf("expected %v, got %v", err, err2)
	}
	err2 = w.Close(ref)
	if err2 != err {
		t.Errorf("expected %v, got %v", err, err2)
	}
	if out.n != n {
		t.Error("data written after failure")
	}
}

func TestWriterHeaderError(t *testing.T) {
	_, err := NewWriter(&failWriter{limit: 3}, V1_4)
	var sinkErr *SinkError
	if !errors.As(err, &sinkErr) || sinkErr.Op != OpWrite {
		t.Errorf("expected a write error, got %v", err)
	}
}

// brokenSink cannot report its position.
type brokenSink struct {
	bytes.Buffer
}

func (s *brokenSink) Position() (int64, error) {
	return 0, errTest
}

func TestWriterPositionError(t *testing.T) {
	w, err := NewWriter(&brokenSink{}, V1_4)
	if err != nil {
		t.Fatal(err)
	}
	err = w.Put(w.Alloc(), Integer(1))
	var sinkErr *SinkError
	if !errors.As(err, &sinkErr) || sinkErr.Op != OpPosition {
		t.Errorf("expected a position error, got %v", err)
	}
}

func TestWriterInvalidObject(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{}, V1_4)
	if err != nil {
		t.Fatal(err)
	}
	err = w.Put(w.Alloc(), Array{Reference(0)})
	if err == nil {
		t.Fatal("invalid reference not detected")
	}
	var sinkErr *SinkError
	if errors.As(err, &sinkErr) {
		t.Errorf("unexpected sink error %v", err)
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "test.pdf")

	w, err := Create(name, V1_4)
	if err != nil {
		t.Fatal(err)
	}
	ref := w.Alloc()
	err = w.Put(ref, Dict{"Type": Name("Catalog")})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Errorf("output visible before Close: %v", err)
	}

	err = w.Close(ref)
	if err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "test.pdf" {
		t.Errorf("unexpected directory contents: %v", entries)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-1.4\n1 0 obj\n")) || !bytes.HasSuffix(data, []byte("\n%%EOF")) {
		t.Errorf("unexpected file contents %q", data)
	}

	w.Abort() // no effect after Close
	if _, err := os.Stat(name); err != nil {
		t.Error(err)
	}
}

func TestCreateAbort(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "test.pdf")
	err := os.WriteFile(name, []byte("old"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	w, err := Create(name, V1_4)
	if err != nil {
		t.Fatal(err)
	}
	err = w.Put(w.Alloc(), Integer(1))
	if err != nil {
		t.Fatal(err)
	}
	// Object 2 is never written, so Close fails and discards the output.
	w.Alloc()
	err = w.Close(NewReference(1, 0))
	if err == nil {
		t.Fatal("Close should fail")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary file not removed: %v", entries)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "old" {
		t.Errorf("existing file modified: %q", data)
	}
}

func TestCreateMissingDirectory(t *testing.T) {
	name := filepath.Join(t.TempDir(), "missing", "test.pdf")
	_, err := Create(name, V1_4)
	var sinkErr *SinkError
	if !errors.As(err, &sinkErr) || sinkErr.Op != OpCreate {
		t.Errorf("expected a create error, got %v", err)
	}
}

func TestWriterLargeObjectNumber(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{}, V1_4)
	if err != nil {
		t.Fatal(err)
	}
	ref := NewReference(50_000_000, 0)
	err = w.Put(ref, Integer(1))
	if err != nil {
		t.Fatal(err)
	}
	if pos, ok := w.Offset(ref); !ok || pos != 9 {
		t.Errorf("wrong offset %d, %t", pos, ok)
	}
	if len(w.xref) != 1 {
		t.Errorf("%d xref entries stored, expected 1", len(w.xref))
	}

	err = w.Close(ref)
	if err == nil || !strings.Contains(err.Error(), "object 1 ") {
		t.Errorf("expected missing object 1, got %v", err)
	}
}

// closeRecorder records whether Close was called.
type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (w *closeRecorder) Close() error {
	w.closed = true
	return nil
}

func TestWriterLeavesOutputOpen(t *testing.T) {
	out := &closeRecorder{}
	w, err := NewWriter(out, V1_4)
	if err != nil {
		t.Fatal(err)
	}
	ref := w.Alloc()
	err = w.Put(ref, Dict{"Type": Name("Catalog")})
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close(ref)
	if err != nil {
		t.Fatal(err)
	}
	if out.closed {
		t.Error("output was closed by the writer")
	}
	if !bytes.HasSuffix(out.Bytes(), []byte("%%EOF")) {
		t.Error("output incomplete")
	}
}
