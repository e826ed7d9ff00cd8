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

// Onepage writes a PDF file with a single page, showing one line of text.
//
// Usage:
//
//	onepage [-o out.pdf] [-v] text...
//	onepage -check [-v] file.pdf...
//
// The words given on the command line are joined by spaces.  The output
// file is only created once it has been written completely.
//
// With -check, the cross-reference table of each file is compared to the
// object positions found by scanning the file, and the object graph is
// validated using pdfcpu.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"seehuhn.de/go/minipdf"
	"seehuhn.de/go/minipdf/document"
)

func main() {
	out := flag.String("o", document.DefaultFileName, "output file name, or \"-\" for standard output")
	check := flag.Bool("check", false, "verify the structure of existing PDF files")
	verbose := flag.Bool("v", false, "list the objects in the file")
	flag.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintf(w, "usage: %s [-o out.pdf] [-v] text...\n", os.Args[0])
		fmt.Fprintf(w, "       %s -check [-v] file.pdf...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("onepage: ")

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	if *check {
		failed := false
		for _, fname := range flag.Args() {
			err := checkFile(fname, *verbose)
			if err != nil {
				log.Print(err)
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
		return
	}

	text := strings.Join(flag.Args(), " ")
	err := run(*out, text)
	if err != nil {
		log.Fatal(err)
	}
	if *verbose && *out != "-" {
		err = checkFile(*out, true)
		if err != nil {
			log.Fatal(err)
		}
	}
}

func run(out, text string) error {
	doc, err := document.New(text, nil)
	if err != nil {
		return err
	}

	if out == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write PDF data to a terminal")
		}
		return doc.Write(os.Stdout)
	}
	return doc.WriteFile(out)
}

func checkFile(fname string, verbose bool) error {
	fd, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer fd.Close()

	info, err := minipdf.SequentialScan(fd)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	err = info.Check()
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	pages, err := validate(fd)
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}

	if verbose {
		log.Printf("%s: PDF-%s, %d bytes, %d page(s)", fname, info.Version, info.Size, pages)
		for _, obj := range info.Objects {
			log.Printf("  object %d %d at byte %d", obj.Number, obj.Generation, obj.Pos)
		}
		log.Printf("  xref at byte %d, /Size %d, /Root %d %d R",
			info.XRefPos, info.TrailerSize, info.Root.Number(), info.Root.Generation())
	}
	return nil
}
