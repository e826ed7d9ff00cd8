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
	"strconv"
)

var (
	errVersion = errors.New("unsupported PDF version")
	errClosed  = errors.New("PDF writer is closed")
)

// Op identifies the operation on the output sink which failed.
type Op string

// These are the sink operations reported in a [SinkError].
const (
	OpCreate   Op = "create"
	OpWrite    Op = "write"
	OpPosition Op = "position"
	OpCommit   Op = "commit"
)

// SinkError indicates that an operation on the output sink failed.
// Pos gives the sink position reached before the failure.
type SinkError struct {
	Op  Op
	Pos int64
	Err error
}

func (err *SinkError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	return "cannot " + string(err.Op) + " PDF output" + middle +
		" (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
}

func (err *SinkError) Unwrap() error {
	return err.Err
}

// MalformedFileError indicates that the PDF file could not be parsed.
type MalformedFileError struct {
	Pos int64
	Err error
}

func (err *MalformedFileError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "not a valid PDF file" + middle + tail
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}
