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
	"bytes"
	"math"
	"testing"

	"seehuhn.de/go/minipdf"
)

func TestTextLine(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	w.TextStart()
	w.TextSetFont("F1", 24)
	w.TextFirstLine(100, 700)
	w.TextShowRaw(minipdf.String("Hello"))
	w.TextEnd()
	err := w.Close()
	if err != nil {
		t.Fatal(err)
	}

	expected := "BT\n/F1 24 Tf\n100 700 Td\n(Hello) Tj\nET\n"
	if got := buf.String(); got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
	if len(buf.Bytes()) != 38 {
		t.Errorf("expected 38 bytes, got %d", len(buf.Bytes()))
	}
	if len(w.Fonts) != 1 || w.Fonts[0] != "F1" {
		t.Errorf("unexpected fonts %v", w.Fonts)
	}
}

func TestTextEscaping(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	w.TextStart()
	w.TextSetFont("F1", 10.5)
	w.TextFirstLine(-1.25, 0)
	w.TextShowRaw(minipdf.String("a(b)c\\d\n"))
	w.TextEnd()
	err := w.Close()
	if err != nil {
		t.Fatal(err)
	}

	expected := "BT\n/F1 10.5 Tf\n-1.25 0 Td\n(a\\(b\\)c\\\\d\\n) Tj\nET\n"
	if got := buf.String(); got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestStateErrors(t *testing.T) {
	cases := []struct {
		name string
		ops  func(w *Writer)
	}{
		{"Tj without font", func(w *Writer) {
			w.TextStart()
			w.TextShowRaw(minipdf.String("x"))
			w.TextEnd()
		}},
		{"Tj outside text object", func(w *Writer) {
			w.TextSetFont("F1", 12)
			w.TextShowRaw(minipdf.String("x"))
		}},
		{"ET without BT", func(w *Writer) {
			w.TextEnd()
		}},
		{"nested BT", func(w *Writer) {
			w.TextStart()
			w.TextStart()
		}},
		{"unclosed BT", func(w *Writer) {
			w.TextStart()
		}},
		{"Td outside text object", func(w *Writer) {
			w.TextFirstLine(1, 2)
		}},
		{"empty font name", func(w *Writer) {
			w.TextStart()
			w.TextSetFont("", 12)
		}},
		{"bad font size", func(w *Writer) {
			w.TextStart()
			w.TextSetFont("F1", 0)
		}},
		{"NaN position", func(w *Writer) {
			w.TextStart()
			w.TextFirstLine(math.NaN(), 700)
		}},
		{"infinite position", func(w *Writer) {
			w.TextStart()
			w.TextFirstLine(100, math.Inf(-1))
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWriter(&bytes.Buffer{})
			c.ops(w)
			if err := w.Close(); err == nil {
				t.Error("error not detected")
			}
		})
	}
}

func TestStickyError(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	w.TextEnd()
	err := w.Err
	if err == nil {
		t.Fatal("error not detected")
	}
	w.TextStart()
	w.TextSetFont("F1", 12)
	if w.Err != err {
		t.Errorf("error changed to %v", w.Err)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in  float64
		out string
	}{
		{0, "0"},
		{1, "1"},
		{-700, "-700"},
		{0.5, "0.5"},
		{1e-7, "0.0000001"},
		{123456789, "123456789"},
	}
	for _, c := range cases {
		if got := format(c.in); got != c.out {
			t.Errorf("format(%g) = %q, want %q", c.in, got, c.out)
		}
	}
}
