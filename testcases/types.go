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

package testcases

import (
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/oc"

	"seehuhn.de/go/interp"
)

// TestCase defines a single interpreter test.
type TestCase struct {
	Name      string // lowercase a-z and _ only
	Content   string // content stream in PDF syntax
	Resources *content.Resources
	CTM       matrix.Matrix // zero-value means no transform

	// Stream, if set, is used instead of Content.  This allows to test
	// operator sequences which the content stream reader would repair.
	Stream content.Stream

	// Hidden lists the names of optional content groups which are
	// switched off.
	Hidden []string

	// StructTree, if set, is used to resolve marked-content identifiers.
	StructTree interp.StructTree

	// CacheTiles makes the trace device report repeated tiles as cached.
	CacheTiles bool

	// Width and Height give the canvas size for raster devices.
	// Zero values mean that the case is not meant to be rasterised.
	Width, Height int

	// Want lists the expected device calls, as recorded by the trace
	// device.  If Want is nil, only the balance of the calls is checked.
	Want []string
}

// Ops returns the decoded content stream of the test case.
func (tc *TestCase) Ops() content.Stream {
	if tc.Stream != nil {
		return tc.Stream
	}
	return Parse(tc.Content)
}

// Options returns the interpreter options for the test case.
func (tc *TestCase) Options() *interp.Options {
	opt := &interp.Options{
		CTM:        tc.CTM,
		StructTree: tc.StructTree,
	}
	if len(tc.Hidden) > 0 {
		opt.OCStates = make(map[*oc.Group]bool)
		for _, name := range tc.Hidden {
			opt.OCStates[&oc.Group{Name: name}] = false
		}
	}
	return opt
}

// Parse decodes a content stream given in PDF syntax.
// Syntax errors are ignored.
func Parse(src string) content.Stream {
	return parse(src, content.Form)
}

// ParseGlyph decodes the content stream of a Type 3 glyph.
func ParseGlyph(src string) content.Stream {
	return parse(src, content.Glyph)
}

func parse(src string, ct content.Type) content.Stream {
	ops, _ := content.ReadStream(strings.NewReader(src), pdf.V2_0, ct, &content.Resources{})
	return ops
}

// Op returns a content stream consisting of a single operator.
func Op(name content.OpName, args ...pdf.Object) content.Stream {
	return content.Stream{{Name: name, Args: args}}
}

// Join concatenates content streams.  Together with [Op], this allows
// to build operator sequences which [Parse] would repair.
func Join(parts ...content.Stream) content.Stream {
	var res content.Stream
	for _, part := range parts {
		res = append(res, part...)
	}
	return res
}
