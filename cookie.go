// seehuhn.de/go/interp - a PDF content stream interpreter
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

package interp

import "sync/atomic"

// A Cookie allows a caller to observe and stop a running interpreter from
// another goroutine.  The zero value is ready to use.
type Cookie struct {
	abort      atomic.Bool
	incomplete atomic.Bool
	errors     atomic.Int64
	warnings   atomic.Int64
}

// Abort requests that interpretation stops at the next operator boundary.
// All open groups, masks, layers and structure elements are still closed.
func (c *Cookie) Abort() {
	c.abort.Store(true)
}

// Aborted reports whether Abort has been called.
func (c *Cookie) Aborted() bool {
	return c.abort.Load()
}

// SetIncomplete can be called by a device to signal that some content
// could not be rendered.
func (c *Cookie) SetIncomplete() {
	c.incomplete.Store(true)
}

// Incomplete reports whether the output is known to be incomplete, either
// because a device said so or because errors were skipped.
func (c *Cookie) Incomplete() bool {
	return c.incomplete.Load()
}

// Errors returns the number of recoverable errors encountered so far.
func (c *Cookie) Errors() int {
	return int(c.errors.Load())
}

// Warnings returns the number of warnings reported so far.
func (c *Cookie) Warnings() int {
	return int(c.warnings.Load())
}
