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

// Package interp runs PDF content streams against an abstract output device.
//
// An [Interpreter] receives a sequence of already decoded content stream
// operators and translates them into calls on a [Device].  Along the way it
// maintains the PDF graphics state: the current transformation matrix, fill
// and stroke materials, the clipping stack, transparency settings, the text
// state, optional content layers and the logical structure tree.
//
// Nested content (form XObjects, tiling patterns, soft masks and Type 3
// glyph procedures) is executed recursively.  Self-referential resources
// are detected and skipped, and every begin/end pair issued to the device
// is balanced on all exit paths, including errors and cancellation.
//
// An Interpreter is not safe for concurrent use, and it processes exactly
// one content stream.
package interp
