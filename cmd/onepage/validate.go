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

package main

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Do not create a pdfcpu configuration directory.
	model.ConfigPath = "disable"
}

// validate reads the PDF file using pdfcpu and checks the object graph
// against the rules of ISO 32000.  It returns the number of pages.
func validate(r io.ReadSeeker) (int, error) {
	_, err := r.Seek(0, io.SeekStart)
	if err != nil {
		return 0, err
	}

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadContext(r, conf)
	if err != nil {
		return 0, fmt.Errorf("cannot read PDF: %w", err)
	}
	err = api.ValidateContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("invalid PDF: %w", err)
	}
	return ctx.PageCount, nil
}
