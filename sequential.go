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
	"regexp"
	"strconv"
)

// FileInfo describes the structure of a PDF file, as found by
// [SequentialScan].
type FileInfo struct {
	Size          int64
	StartPos      int64
	HeaderVersion string
	Version       Version // 0 if HeaderVersion is not a known version

	Objects []*FileObject

	XRefPos      int64
	XRef         []XRefEntry
	TrailerPos   int64
	TrailerSize  int
	Root         Reference
	StartXRefPos int64
	StartXRef    int64
	EOFPos       int64
}

// FileObject gives the location of an indirect object in a PDF file.
type FileObject struct {
	Pos        int64
	Number     uint32
	Generation uint16
}

// XRefEntry is one line of a cross-reference table.
type XRefEntry struct {
	Pos        int64
	Generation uint16
	InUse      bool
}

// SequentialScan reads a PDF file sequentially, extracting information
// about the file structure and the location of indirect objects.
// Only files with a single cross-reference table are supported.
func SequentialScan(r io.ReadSeeker) (*FileInfo, error) {
	_, err := r.Seek(0, io.SeekStart)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	info := &FileInfo{
		Size:         int64(len(data)),
		XRefPos:      -1,
		TrailerPos:   -1,
		StartXRefPos: -1,
		EOFPos:       -1,
	}

	m := startRegexp.FindSubmatchIndex(data)
	if m == nil {
		return nil, ErrNoPDF
	}
	info.StartPos = int64(m[0])
	info.HeaderVersion = string(data[m[2]:m[3]])
	info.Version, _ = ParseVersion(info.HeaderVersion)

	for _, m := range markerRegexp.FindAllSubmatchIndex(data, -1) {
		pos := int64(m[2])
		keyword := string(data[m[2]:m[3]])
		switch {
		case m[4] >= 0:
			// m[4:6] is the whole "N G obj", m[6:10] are the two numbers.
			n, err := strconv.ParseUint(string(data[m[6]:m[7]]), 10, 32)
			if err != nil {
				continue
			}
			g, err := strconv.ParseUint(string(data[m[8]:m[9]]), 10, 16)
			if err != nil {
				continue
			}
			info.Objects = append(info.Objects, &FileObject{
				Pos:        pos,
				Number:     uint32(n),
				Generation: uint16(g),
			})
		case keyword == "xref":
			err = setOnce(&info.XRefPos, pos, keyword)
		case keyword == "trailer":
			err = setOnce(&info.TrailerPos, pos, keyword)
		case keyword == "startxref":
			err = setOnce(&info.StartXRefPos, pos, keyword)
		case keyword == "%%EOF":
			err = setOnce(&info.EOFPos, pos, keyword)
		default:
			panic("unreachable")
		}
		if err != nil {
			return nil, err
		}
	}

	if info.XRefPos < 0 || info.TrailerPos < 0 || info.StartXRefPos < 0 || info.EOFPos < 0 {
		return nil, &MalformedFileError{Err: errors.New("incomplete file trailer")}
	}
	if !(info.XRefPos < info.TrailerPos && info.TrailerPos < info.StartXRefPos && info.StartXRefPos < info.EOFPos) {
		return nil, &MalformedFileError{Pos: info.XRefPos, Err: errors.New("file trailer out of order")}
	}

	err = info.readXRef(data[info.XRefPos:info.TrailerPos])
	if err != nil {
		return nil, err
	}
	err = info.readTrailer(data[info.TrailerPos:info.StartXRefPos])
	if err != nil {
		return nil, err
	}

	m = startXRefRegexp.FindSubmatchIndex(data[info.StartXRefPos:])
	if m == nil {
		return nil, &MalformedFileError{Pos: info.StartXRefPos, Err: errors.New("malformed startxref")}
	}
	info.StartXRef, err = strconv.ParseInt(string(data[info.StartXRefPos+int64(m[2]):info.StartXRefPos+int64(m[3])]), 10, 64)
	if err != nil {
		return nil, &MalformedFileError{Pos: info.StartXRefPos, Err: err}
	}

	return info, nil
}

func setOnce(field *int64, pos int64, keyword string) error {
	if *field >= 0 {
		return &MalformedFileError{
			Pos: pos,
			Err: fmt.Errorf("unexpected second %q (incremental updates are not supported)", keyword),
		}
	}
	*field = pos
	return nil
}

func (info *FileInfo) readXRef(buf []byte) error {
	m := xRefHeaderRegexp.FindSubmatch(buf)
	if m == nil {
		return &MalformedFileError{Pos: info.XRefPos, Err: errors.New("malformed xref subsection header")}
	}
	start, _ := strconv.Atoi(string(m[1]))
	count, _ := strconv.Atoi(string(m[2]))
	if start != 0 {
		return &MalformedFileError{Pos: info.XRefPos, Err: errors.New("xref subsection does not start at 0")}
	}

	pos := len(m[0])
	for i := 0; i < count; i++ {
		e := xRefEntryRegexp.FindSubmatch(buf[pos:])
		if e == nil {
			return &MalformedFileError{
				Pos: info.XRefPos + int64(pos),
				Err: fmt.Errorf("malformed xref entry %d", i),
			}
		}
		offset, _ := strconv.ParseInt(string(e[1]), 10, 64)
		gen, _ := strconv.ParseUint(string(e[2]), 10, 16)
		info.XRef = append(info.XRef, XRefEntry{
			Pos:        offset,
			Generation: uint16(gen),
			InUse:      e[3][0] == 'n',
		})
		pos += len(e[0])
	}
	return nil
}

func (info *FileInfo) readTrailer(buf []byte) error {
	m := trailerSizeRegexp.FindSubmatch(buf)
	if m == nil {
		return &MalformedFileError{Pos: info.TrailerPos, Err: errors.New("missing /Size in trailer")}
	}
	info.TrailerSize, _ = strconv.Atoi(string(m[1]))

	m = trailerRootRegexp.FindSubmatch(buf)
	if m == nil {
		return &MalformedFileError{Pos: info.TrailerPos, Err: errors.New("missing /Root in trailer")}
	}
	n, err := strconv.ParseUint(string(m[1]), 10, 32)
	if err != nil {
		return &MalformedFileError{Pos: info.TrailerPos, Err: err}
	}
	g, err := strconv.ParseUint(string(m[2]), 10, 16)
	if err != nil {
		return &MalformedFileError{Pos: info.TrailerPos, Err: err}
	}
	info.Root = NewReference(uint32(n), uint16(g))
	return nil
}

// Check verifies that the header gives a known PDF version, and that the
// cross-reference information of the file is consistent with the file
// contents: startxref must point to the xref
// keyword, the xref table must have /Size entries, and every entry in use
// must give the position of the corresponding "N G obj" line.
func (info *FileInfo) Check() error {
	if info.Version == 0 {
		return &MalformedFileError{
			Pos: info.StartPos,
			Err: fmt.Errorf("unknown PDF version %q", info.HeaderVersion),
		}
	}
	if info.StartXRef != info.XRefPos {
		return &MalformedFileError{
			Pos: info.StartXRefPos,
			Err: fmt.Errorf("startxref is %d, but xref starts at %d", info.StartXRef, info.XRefPos),
		}
	}
	if len(info.XRef) != info.TrailerSize {
		return &MalformedFileError{
			Pos: info.XRefPos,
			Err: fmt.Errorf("xref has %d entries, trailer /Size is %d", len(info.XRef), info.TrailerSize),
		}
	}
	if len(info.XRef) == 0 || info.XRef[0].InUse || info.XRef[0].Generation != 65535 {
		return &MalformedFileError{Pos: info.XRefPos, Err: errors.New("xref entry 0 must be free with generation 65535")}
	}

	found := make(map[uint32]*FileObject, len(info.Objects))
	for _, obj := range info.Objects {
		if _, seen := found[obj.Number]; seen {
			return &MalformedFileError{Pos: obj.Pos, Err: fmt.Errorf("object %d defined twice", obj.Number)}
		}
		found[obj.Number] = obj
	}
	for number, entry := range info.XRef {
		if !entry.InUse {
			continue
		}
		obj := found[uint32(number)]
		if obj == nil {
			return &MalformedFileError{Pos: info.XRefPos, Err: fmt.Errorf("object %d not found", number)}
		}
		if obj.Pos != entry.Pos || obj.Generation != entry.Generation {
			return &MalformedFileError{
				Pos: obj.Pos,
				Err: fmt.Errorf("object %d is at byte %d, xref says %d", number, obj.Pos, entry.Pos),
			}
		}
		delete(found, uint32(number))
	}
	for _, obj := range info.Objects {
		if found[obj.Number] == obj {
			return &MalformedFileError{Pos: obj.Pos, Err: fmt.Errorf("object %d missing from xref", obj.Number)}
		}
	}

	rootNumber := int(info.Root.Number())
	if rootNumber == 0 || rootNumber >= len(info.XRef) || !info.XRef[rootNumber].InUse {
		return &MalformedFileError{Pos: info.TrailerPos, Err: errors.New("/Root does not refer to an object")}
	}
	return nil
}

var (
	// ErrNoPDF is returned by [SequentialScan] if no PDF header is found.
	ErrNoPDF = errors.New("PDF header not found")
)

var (
	startRegexp = regexp.MustCompile(`%PDF-([12]\.[0-9])[^0-9]`)

	whiteSpacePat = `[\000\011\014 ]+`
	eolPat        = `(?:\r|\n|\r\n)`
	objectPat     = `([0-9]+)` + whiteSpacePat + `([0-9]+)` + whiteSpacePat + `obj`
	markerPat     = eolPat + `(` + `(` + objectPat + `)` + `|xref|trailer|startxref|%%EOF)\b`
	markerRegexp  = regexp.MustCompile(markerPat)

	xRefHeaderRegexp  = regexp.MustCompile(`^xref[ \r\n]+([0-9]+) ([0-9]+)[ ]*(?:\r\n|\r|\n)`)
	xRefEntryRegexp   = regexp.MustCompile(`^([0-9]{10}) ([0-9]{5}) ([nf])(?: \r| \n|\r\n|\r|\n)`)
	trailerSizeRegexp = regexp.MustCompile(`/Size[\000\011\012\014\015 ]+([0-9]+)`)
	trailerRootRegexp = regexp.MustCompile(`/Root[\000\011\012\014\015 ]+([0-9]+)[\000\011\012\014\015 ]+([0-9]+)[\000\011\012\014\015 ]+R`)
	startXRefRegexp   = regexp.MustCompile(`^startxref[\000\011\012\014\015 ]+([0-9]+)[\000\011\012\014\015 ]+%%EOF`)
)
