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

import (
	"errors"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/shading"
	"seehuhn.de/go/pdf/oc"
	"seehuhn.de/go/pdf/property"
)

// StructTree gives access to the structure elements which own marked
// content sequences.
type StructTree interface {
	// Lookup returns the structure element for the marked-content
	// sequence mcid in the content stream with the given StructParents
	// key, or nil.
	Lookup(structParent, mcid int) *StructElem
}

// StructElem is a node in the logical structure tree.
type StructElem struct {
	Type   pdf.Name
	Parent *StructElem // nil for children of the structure tree root
	UID    int

	Metatext map[MetatextKind]string
}

// formMatrix returns the matrix of a form or pattern, treating the zero
// matrix as the identity.
func formMatrix(m matrix.Matrix) matrix.Matrix {
	if m == (matrix.Matrix{}) {
		return matrix.Identity
	}
	return m
}

// pdfRect converts an optional PDF rectangle.  Nil gives the zero
// rectangle.
func pdfRect(r *pdf.Rectangle) rect.Rect {
	if r == nil {
		return rect.Rect{}
	}
	return rect.Rect(*r)
}

// shadingBBox returns the BBox entry of a shading dictionary.  The zero
// rectangle means that the shading is unbounded.
func shadingBBox(sh graphics.Shading) rect.Rect {
	switch sh := sh.(type) {
	case *shading.Type1:
		return pdfRect(sh.BBox)
	case *shading.Type2:
		return pdfRect(sh.BBox)
	case *shading.Type3:
		return pdfRect(sh.BBox)
	case *shading.Type4:
		return pdfRect(sh.BBox)
	case *shading.Type5:
		return pdfRect(sh.BBox)
	case *shading.Type6:
		return pdfRect(sh.BBox)
	case *shading.Type7:
		return pdfRect(sh.BBox)
	}
	return rect.Rect{}
}

var metatextKeys = map[pdf.Name]MetatextKind{
	"ActualText": MetatextActualText,
	"Alt":        MetatextAlt,
	"E":          MetatextAbbreviation,
	"T":          MetatextTitle,
}

// listMCID returns the marked-content identifier of a property list.
func listMCID(list property.List) (int, bool) {
	if list == nil {
		return 0, false
	}
	obj, err := list.Get("MCID")
	if err != nil {
		return 0, false
	}
	mcid, ok := obj.AsPDF(0).(pdf.Integer)
	if !ok || mcid < 0 {
		return 0, false
	}
	return int(mcid), true
}

// listMetatext returns the ActualText, Alt, E and T entries of a property
// list.
func listMetatext(list property.List) map[MetatextKind]string {
	if list == nil {
		return nil
	}
	var res map[MetatextKind]string
	for key, kind := range metatextKeys {
		obj, err := list.Get(key)
		if err != nil {
			continue
		}
		s, ok := obj.AsPDF(0).(pdf.String)
		if !ok {
			continue
		}
		if res == nil {
			res = make(map[MetatextKind]string)
		}
		res[kind] = string(s.AsTextString())
	}
	return res
}

// listConditional interprets the property list of an /OC marked-content
// sequence as an optional content group or membership dictionary.
func listConditional(list property.List) (oc.Conditional, error) {
	if c, ok := list.(oc.Conditional); ok {
		return c, nil
	}
	if list == nil {
		return nil, errors.New("missing optional content dictionary")
	}
	dict := pdf.Dict{}
	for _, key := range list.Keys() {
		obj, err := list.Get(key)
		if err != nil {
			continue
		}
		dict[key] = obj.AsPDF(0)
	}
	return oc.ExtractConditional(pdf.NewExtractor(nil), dict)
}

// ocGroup maps g to the group of the same name in the configured
// optional content states.  Groups which are not configured are visible.
func (p *Interpreter) ocGroup(g *oc.Group) *oc.Group {
	if g == nil {
		return nil
	}
	if _, ok := p.ocStates[g]; ok {
		return g
	}
	if known, ok := p.ocNames[g.Name]; ok {
		return known
	}
	p.ocStates[g] = true
	p.ocNames[g.Name] = g
	return g
}

// canonicalOC replaces the groups in c by the configured ones.
func (p *Interpreter) canonicalOC(c oc.Conditional) oc.Conditional {
	switch c := c.(type) {
	case *oc.Group:
		return p.ocGroup(c)
	case *oc.Membership:
		m := *c
		m.OCGs = make([]*oc.Group, len(c.OCGs))
		for i, g := range c.OCGs {
			m.OCGs[i] = p.ocGroup(g)
		}
		return &m
	}
	return c
}

// ocHidden reports whether content governed by c is hidden.
func (p *Interpreter) ocHidden(c oc.Conditional) bool {
	if c == nil {
		return false
	}
	return !p.canonicalOC(c).IsVisible(p.ocStates)
}
