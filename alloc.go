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

// An Allocator hands out object numbers for indirect objects.  Numbers are
// allocated in increasing order, without gaps, starting from 1.  All
// references have generation number 0.
//
// The zero value is ready to use.
type Allocator struct {
	last uint32
}

// Alloc allocates a new object number.
func (a *Allocator) Alloc() Reference {
	a.last++
	return NewReference(a.last, 0)
}

// Count returns the number of references allocated so far.
func (a *Allocator) Count() int {
	return int(a.last)
}
