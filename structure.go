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
	"fmt"

	"seehuhn.de/go/pdf"
)

// StructureType is a standard structure type.
type StructureType uint8

// The standard structure types from section 14.8.4 of ISO 32000-2:2020.
const (
	StructInvalid StructureType = iota

	StructDocument
	StructDocumentFragment
	StructPart
	StructArt
	StructSect
	StructDiv
	StructBlockQuote
	StructCaption
	StructTOC
	StructTOCI
	StructIndex
	StructNonStruct
	StructPrivate
	StructAside

	StructTitle
	StructFENote
	StructSub
	StructP
	StructH
	StructH1
	StructH2
	StructH3
	StructH4
	StructH5
	StructH6

	StructL
	StructLI
	StructLbl
	StructLBody

	StructTable
	StructTR
	StructTH
	StructTD
	StructTHead
	StructTBody
	StructTFoot

	StructSpan
	StructQuote
	StructNote
	StructReference
	StructBibEntry
	StructCode
	StructLink
	StructAnnot
	StructEm
	StructStrong

	StructRuby
	StructRB
	StructRT
	StructRP
	StructWarichu
	StructWT
	StructWP

	StructFigure
	StructFormula
	StructForm
	StructArtifact
)

var structureNames = [...]pdf.Name{
	StructInvalid:          "Invalid",
	StructDocument:         "Document",
	StructDocumentFragment: "DocumentFragment",
	StructPart:             "Part",
	StructArt:              "Art",
	StructSect:             "Sect",
	StructDiv:              "Div",
	StructBlockQuote:       "BlockQuote",
	StructCaption:          "Caption",
	StructTOC:              "TOC",
	StructTOCI:             "TOCI",
	StructIndex:            "Index",
	StructNonStruct:        "NonStruct",
	StructPrivate:          "Private",
	StructAside:            "Aside",
	StructTitle:            "Title",
	StructFENote:           "FENote",
	StructSub:              "Sub",
	StructP:                "P",
	StructH:                "H",
	StructH1:               "H1",
	StructH2:               "H2",
	StructH3:               "H3",
	StructH4:               "H4",
	StructH5:               "H5",
	StructH6:               "H6",
	StructL:                "L",
	StructLI:               "LI",
	StructLbl:              "Lbl",
	StructLBody:            "LBody",
	StructTable:            "Table",
	StructTR:               "TR",
	StructTH:               "TH",
	StructTD:               "TD",
	StructTHead:            "THead",
	StructTBody:            "TBody",
	StructTFoot:            "TFoot",
	StructSpan:             "Span",
	StructQuote:            "Quote",
	StructNote:             "Note",
	StructReference:        "Reference",
	StructBibEntry:         "BibEntry",
	StructCode:             "Code",
	StructLink:             "Link",
	StructAnnot:            "Annot",
	StructEm:               "Em",
	StructStrong:           "Strong",
	StructRuby:             "Ruby",
	StructRB:               "RB",
	StructRT:               "RT",
	StructRP:               "RP",
	StructWarichu:          "Warichu",
	StructWT:               "WT",
	StructWP:               "WP",
	StructFigure:           "Figure",
	StructFormula:          "Formula",
	StructForm:             "Form",
	StructArtifact:         "Artifact",
}

var structureByName = func() map[pdf.Name]StructureType {
	m := make(map[pdf.Name]StructureType, len(structureNames))
	for i, name := range structureNames {
		if i > 0 {
			m[name] = StructureType(i)
		}
	}
	return m
}()

func (t StructureType) String() string {
	if int(t) < len(structureNames) {
		return string(structureNames[t])
	}
	return fmt.Sprintf("StructureType(%d)", t)
}

// structureType maps a structure type name to a standard type, following
// the role map.
func (p *Interpreter) structureType(name pdf.Name) StructureType {
	seen := make(map[pdf.Name]bool)
	for !seen[name] {
		if t, ok := structureByName[name]; ok {
			return t
		}
		seen[name] = true
		next, ok := p.roleMap[name]
		if !ok {
			break
		}
		name = next
	}
	return StructInvalid
}

// openStructure makes elem the innermost open structure element on the
// device.  Elements of the current path which are not ancestors of elem
// are closed first.
func (p *Interpreter) openStructure(elem *StructElem) error {
	common, err := commonAncestor(p.openStruct, elem)
	if err != nil {
		return err
	}
	p.popStructureTo(common)

	for p.openStruct != elem {
		next := elem
		for next.Parent != p.openStruct {
			next = next.Parent
		}
		p.dev.BeginStructure(p.structureType(next.Type), string(next.Type), next.UID)
		p.openStruct = next
	}
	return nil
}

// popStructureTo closes open structure elements until target is the
// innermost one.  A nil target closes everything.
func (p *Interpreter) popStructureTo(target *StructElem) {
	for p.openStruct != nil && p.openStruct != target {
		p.dev.EndStructure()
		p.openStruct = p.openStruct.Parent
	}
}

// structDepth returns the number of ancestors of e.
func structDepth(e *StructElem) (int, error) {
	seen := make(map[*StructElem]bool)
	depth := 0
	for e != nil {
		if seen[e] {
			return 0, ErrMalformedStructure
		}
		seen[e] = true
		e = e.Parent
		depth++
	}
	return depth, nil
}

// commonAncestor returns the most recent common ancestor of a and b.
// Each element counts as an ancestor of itself.  The result is nil if
// the two elements are in different subtrees of the root.
func commonAncestor(a, b *StructElem) (*StructElem, error) {
	da, err := structDepth(a)
	if err != nil {
		return nil, err
	}
	db, err := structDepth(b)
	if err != nil {
		return nil, err
	}
	for ; da > db; da-- {
		a = a.Parent
	}
	for ; db > da; db-- {
		b = b.Parent
	}
	for a != b {
		a = a.Parent
		b = b.Parent
	}
	return a, nil
}
